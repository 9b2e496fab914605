package libdg

import (
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
)

// pathTag classifies the planar geometry chosen for a 1-4 path.
type pathTag byte

const (
	pathCis pathTag = iota
	pathTrans
	pathOther
)

// path14 records an angular decision for a three-bond path, consumed by the
// 1-5 pass.
type path14 struct {
	bid1, bid2, bid3 int
	tag              pathTag
}

// computedData carries the per-pass results forward through the pipeline. It
// is owned by a single SetTopolBounds invocation and never shared across
// molecules.
type computedData struct {
	nb          int
	bondLengths []float64 // per bond, filled by the 1-2 pass
	bondAngles  []float64 // nb x nb symmetric, -1 until assigned
	bondAdj     []int     // nb x nb symmetric, shared atom of two bonds, -1 until assigned

	paths14    []path14
	cisPaths   *treeset.Set // keys: bid1*nb*nb + bid2*nb + bid3 and the reverse
	transPaths *treeset.Set
	set15Atoms []bool // na x na, pairs already bounded by the 1-5 pass
}

func newComputedData(na, nb int) *computedData {
	cd := &computedData{
		nb:          nb,
		bondLengths: make([]float64, nb),
		bondAngles:  make([]float64, nb*nb),
		bondAdj:     make([]int, nb*nb),
		cisPaths:    treeset.NewWith(utils.UInt64Comparator),
		transPaths:  treeset.NewWith(utils.UInt64Comparator),
		set15Atoms:  make([]bool, na*na),
	}
	for i := range cd.bondAngles {
		cd.bondAngles[i] = -1
	}
	for i := range cd.bondAdj {
		cd.bondAdj[i] = -1
	}
	return cd
}

func (cd *computedData) symIdx(b1, b2 int) int {
	if b1 > b2 {
		b1, b2 = b2, b1
	}
	return b1*cd.nb + b2
}

func (cd *computedData) bondAngle(b1, b2 int) float64 {
	return cd.bondAngles[cd.symIdx(b1, b2)]
}

func (cd *computedData) setBondAngle(b1, b2 int, angle float64) {
	cd.bondAngles[cd.symIdx(b1, b2)] = angle
}

// sharedAtom returns the atom joining two bonds as recorded by the 1-3 pass,
// or -1.
func (cd *computedData) sharedAtom(b1, b2 int) int {
	return cd.bondAdj[cd.symIdx(b1, b2)]
}

func (cd *computedData) setSharedAtom(b1, b2, aid int) {
	cd.bondAdj[cd.symIdx(b1, b2)] = aid
}

// pathKey packs an ordered bond triple into one comparable key. The bond
// count is range-checked at entry so the packing cannot overflow.
func (cd *computedData) pathKey(b1, b2, b3 int) uint64 {
	nb := uint64(cd.nb)
	return uint64(b1)*nb*nb + uint64(b2)*nb + uint64(b3)
}

func (cd *computedData) addCisPath(b1, b2, b3 int) {
	cd.cisPaths.Add(cd.pathKey(b1, b2, b3))
	cd.cisPaths.Add(cd.pathKey(b3, b2, b1))
}

func (cd *computedData) addTransPath(b1, b2, b3 int) {
	cd.transPaths.Add(cd.pathKey(b1, b2, b3))
	cd.transPaths.Add(cd.pathKey(b3, b2, b1))
}
