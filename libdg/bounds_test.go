package libdg

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/distgeom-systems/godg/godg"
)

func TestCheckAndSetBounds(t *testing.T) {
	mm := godg.NewBoundsMat(3)
	mm.Init(0, godg.MaxUpper)

	// first write installs
	require.NoError(t, checkAndSetBounds(0, 1, 1.5, 2.5, mm))
	assert.Equal(t, 1.5, mm.Lower(0, 1))
	assert.Equal(t, 2.5, mm.Upper(0, 1))
	assert.Equal(t, 1.5, mm.Lower(1, 0), "bounds must be symmetric")
	assert.Equal(t, 2.5, mm.Upper(1, 0))

	// subsequent writes only tighten
	require.NoError(t, checkAndSetBounds(0, 1, 1.0, 3.0, mm))
	assert.Equal(t, 1.5, mm.Lower(0, 1), "looser lower must not widen")
	assert.Equal(t, 2.5, mm.Upper(0, 1), "looser upper must not widen")

	require.NoError(t, checkAndSetBounds(0, 1, 1.8, 2.2, mm))
	assert.Equal(t, 1.8, mm.Lower(0, 1))
	assert.Equal(t, 2.2, mm.Upper(0, 1))

	// inverted input is an invariant violation
	err := checkAndSetBounds(1, 2, 2.0, 1.0, mm)
	assert.ErrorIs(t, err, godg.ErrBoundsInversion)

	// a vanishing lower bound on an unset pair is rejected
	err = checkAndSetBounds(1, 2, 0.0, 1.0, mm)
	assert.ErrorIs(t, err, godg.ErrBadLowerBound)
}

func TestPathKeySets(t *testing.T) {
	cd := newComputedData(5, 4)
	cd.addCisPath(1, 2, 3)

	assert.True(t, cd.cisPaths.Contains(cd.pathKey(1, 2, 3)))
	assert.True(t, cd.cisPaths.Contains(cd.pathKey(3, 2, 1)), "reverse path must also be present")
	assert.False(t, cd.cisPaths.Contains(cd.pathKey(2, 1, 3)))
	assert.False(t, cd.transPaths.Contains(cd.pathKey(1, 2, 3)))

	cd.addTransPath(0, 2, 3)
	assert.True(t, cd.transPaths.Contains(cd.pathKey(3, 2, 0)))
}

func TestAccumulatorInit(t *testing.T) {
	cd := newComputedData(3, 2)
	for b1 := 0; b1 < 2; b1++ {
		for b2 := 0; b2 < 2; b2++ {
			assert.Equal(t, -1.0, cd.bondAngle(b1, b2))
			assert.Equal(t, -1, cd.sharedAtom(b1, b2))
		}
	}
	cd.setBondAngle(0, 1, math.Pi/2)
	assert.Equal(t, math.Pi/2, cd.bondAngle(1, 0), "angle table is symmetric")
	cd.setSharedAtom(1, 0, 2)
	assert.Equal(t, 2, cd.sharedAtom(0, 1))
}

func TestCompute13Dist(t *testing.T) {
	// right angle: hypotenuse
	assert.InDelta(t, math.Sqrt2, compute13Dist(1, 1, math.Pi/2), 1e-12)
	// straight line: sum of lengths
	assert.InDelta(t, 2.0, compute13Dist(1, 1, math.Pi), 1e-12)
	// equilateral
	assert.InDelta(t, 1.5, compute13Dist(1.5, 1.5, math.Pi/3), 1e-12)
}

func TestCompute14Dists(t *testing.T) {
	const bl = 1.514
	ang := 109.5 * math.Pi / 180

	cis := compute14DistCis(bl, bl, bl, ang, ang)
	trans := compute14DistTrans(bl, bl, bl, ang, ang)
	assert.Less(t, cis, trans, "syn must be closer than anti")

	// the generic torsion formula agrees with the planar cases
	assert.InDelta(t, cis, compute14Dist3D(bl, bl, bl, ang, ang, 0), 1e-9)
	assert.InDelta(t, trans, compute14Dist3D(bl, bl, bl, ang, ang, math.Pi), 1e-9)

	mid := compute14Dist3D(bl, bl, bl, ang, ang, math.Pi/2)
	assert.Greater(t, mid, cis)
	assert.Less(t, mid, trans)
}

func TestCompute15Dists(t *testing.T) {
	const bl = 1.5
	ang := 109.5 * math.Pi / 180

	cc := compute15DistCisCis(bl, bl, bl, bl, ang, ang, ang)
	ct := compute15DistCisTrans(bl, bl, bl, bl, ang, ang, ang)
	tc := compute15DistTransCis(bl, bl, bl, bl, ang, ang, ang)
	tt := compute15DistTransTrans(bl, bl, bl, bl, ang, ang, ang)

	// both torsions anti stretches the chain furthest; both syn folds it up
	assert.Less(t, cc, ct)
	assert.Less(t, tc, tt)
	assert.Greater(t, tt, ct)
	for _, d := range []float64{cc, ct, tc, tt} {
		assert.Greater(t, d, 0.0)
		assert.Less(t, d, 4*bl)
	}
}

func TestRingAngleTable(t *testing.T) {
	deg := func(rad float64) float64 { return rad * 180 / math.Pi }

	assert.InDelta(t, 60.0, deg(ringAngle(godg.HybridSP3, 3)), 1e-9)
	assert.InDelta(t, 90.0, deg(ringAngle(godg.HybridSP3, 4)), 1e-9)
	assert.InDelta(t, 104.0, deg(ringAngle(godg.HybridSP3, 5)), 1e-9)
	assert.InDelta(t, 109.5, deg(ringAngle(godg.HybridSP3, 6)), 1e-9)
	assert.InDelta(t, 120.0, deg(ringAngle(godg.HybridSP2, 6)), 1e-9)
	assert.InDelta(t, 135.0, deg(ringAngle(godg.HybridSP2, 8)), 1e-9)
	// sp2 in a macrocycle falls back to the default
	assert.InDelta(t, 120.0, deg(ringAngle(godg.HybridSP2, 12)), 1e-9)
	assert.InDelta(t, 105.0, deg(ringAngle(godg.HybridSP3D, 6)), 1e-9)
	assert.InDelta(t, 90.0, deg(ringAngle(godg.HybridSP3D2, 6)), 1e-9)
}
