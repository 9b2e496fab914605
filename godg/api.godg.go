package godg

// Hybridization shapes the assumed bond angles at an atom.
type Hybridization byte

const (
	HybridOther Hybridization = iota
	HybridSP
	HybridSP2
	HybridSP3
	HybridSP3D
	HybridSP3D2
)

func (h Hybridization) String() string {
	return [...]string{"other", "sp", "sp2", "sp3", "sp3d", "sp3d2"}[h]
}

// BondType is the discrete bond classification used by the topology passes.
type BondType byte

const (
	BondNil BondType = iota
	BondSingle
	BondDouble
	BondTriple
	BondAromatic
)

// Order returns the bond order as a double (aromatic bonds count 1.5).
func (bt BondType) Order() float64 {
	return [...]float64{0, 1, 2, 3, 1.5}[bt]
}

func (bt BondType) String() string {
	return [...]string{"nil", "-", "=", "#", ":"}[bt]
}

// BondStereo tags double-bond stereochemistry.
// StereoZ/StereoE are anchored by the bond's stereo atoms;
// StereoCis/StereoTrans refer directly to the stereo atoms' sides.
type BondStereo byte

const (
	StereoNone BondStereo = iota
	StereoAny
	StereoZ
	StereoE
	StereoCis
	StereoTrans
)

func (st BondStereo) String() string {
	return [...]string{"none", "any", "Z", "E", "cis", "trans"}[st]
}

// ChiralTag is the atom-level chirality marker.
type ChiralTag byte

const (
	ChiralNone ChiralTag = iota
	ChiralTetCW
	ChiralTetCCW
	ChiralSquarePlanar
	ChiralTrigonalBipyramidal
	ChiralOctahedral
)

// NonTetrahedral reports whether the tag names an extended-coordination geometry.
func (ct ChiralTag) NonTetrahedral() bool {
	return ct >= ChiralSquarePlanar
}

// RingInfo is the read-only ring-perception view consumed by the bounds passes.
//
// AtomRings and BondRings return aligned cyclic walks: BondRings()[r][i] is the
// bond joining AtomRings()[r][i] and AtomRings()[r][(i+1) % size].
type RingInfo interface {
	IsInitialized() bool
	NumRings() int
	NumAtomRings(aid int) int
	NumBondRings(bid int) int
	IsAtomInRingOfSize(aid, size int) bool
	IsBondInRingOfSize(bid, size int) bool
	AtomRings() [][]int
	BondRings() [][]int
}

// Mol is the read-only molecule view the bounds engine consumes.
// Implementations must be safe for concurrent readers once ring info and the
// distance matrix have been materialized (see DistanceMatrix).
type Mol interface {
	NumAtoms() int
	NumBonds() int

	// per-atom queries
	AtomicNumber(aid int) int
	Hybridization(aid int) Hybridization
	Degree(aid int) int
	// TotalNumHs counts hydrogens on the atom, including neighbors that are
	// explicit H atoms in the graph.
	TotalNumHs(aid int) int
	ChiralTag(aid int) ChiralTag
	// HasChiralPermutation reports whether an explicit coordination
	// permutation was assigned along with a non-tetrahedral chiral tag.
	HasChiralPermutation(aid int) bool
	// IdealAngleBetweenLigands returns the idealized angle (degrees) between
	// two ligands of an atom carrying a non-tetrahedral chiral tag.
	IdealAngleBetweenLigands(aid, lig1, lig2 int) float64
	AtomBonds(aid int) []int

	// per-bond queries
	BondEnds(bid int) (beg, end int)
	BondType(bid int) BondType
	BondOrder(bid int) float64
	IsConjugated(bid int) bool
	BondStereo(bid int) BondStereo
	// StereoAtoms returns the two reference atoms anchoring a Z/E or
	// cis/trans assignment; ok is false when none are recorded.
	StereoAtoms(bid int) (sa1, sa2 int, ok bool)
	OtherBondAtom(bid, aid int) int

	// BondBetween returns the bond joining two atoms, or ok=false.
	BondBetween(aid1, aid2 int) (bid int, ok bool)

	// Rings returns the molecule's ring perception. It must be initialized
	// before the bounds passes run.
	Rings() RingInfo

	// DistanceMatrix returns the N*N topological distance matrix: entry
	// [i*N+j] is the length in bonds of the shortest path from i to j.
	// Computed lazily, at most once; the returned slice is read-only.
	DistanceMatrix() []float64
}

// ParamOracle resolves force-field parameters for bond rest lengths.
type ParamOracle interface {
	// AtomTypes returns one opaque parameter record per atom; entries are nil
	// where no parameters exist. allFound is true when every atom resolved.
	AtomTypes(mol Mol) (params []AtomParams, allFound bool)
}

// AtomParams is the per-atom parameter record handed back by a ParamOracle.
type AtomParams interface {
	// RestLengthWith returns the equilibrium length of a bond of the given
	// order between this atom and another.
	RestLengthWith(other AtomParams, order float64) float64
}

// TopolOpts selects the optional behaviors of SetTopolBounds.
type TopolOpts struct {
	Set15            bool // run the 1-5 pass
	ScaleVdw         bool // topological scaling of the van der Waals floor
	Macrocycle14     bool // macrocycle treatment of rings with >= 9 bonds
	ForceTransAmides bool // pin amide/ester 1-4 contacts instead of bracketing
	// Macrocycle15ForceTrans selects the force-trans branch for the 1-5
	// amide/ester partner inside macrocycles. Off by default to match the
	// non-macrocycle behavior.
	Macrocycle15ForceTrans bool
}

// DefaultTopolOpts matches the conformer generator's defaults.
var DefaultTopolOpts = TopolOpts{
	Set15:            true,
	ScaleVdw:         true,
	ForceTransAmides: true,
}

// AngleRec is one entry of the angle collection produced by
// SetTopolBoundsCollect: the three atoms of a bond-angle path plus a flag that
// is 1 when either bond is triple, or both are double around a two-coordinate
// center (a linear arrangement).
type AngleRec [4]int

// BondRec is one bonded atom pair.
type BondRec [2]int
