package libdg_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/distgeom-systems/godg/godg"
	"github.com/distgeom-systems/godg/libdg"
	"github.com/distgeom-systems/godg/libdg/smiles"
	"github.com/distgeom-systems/godg/libdg/uff"
)

// planar 1-4 distances, restated locally so the scenarios check the pipeline
// against independent arithmetic
func dist14Cis(d1, d2, d3, a12, a23 float64) float64 {
	dx := d2 - d3*math.Cos(a23) - d1*math.Cos(a12)
	dy := d3*math.Sin(a23) - d1*math.Sin(a12)
	return math.Hypot(dx, dy)
}

func dist14Trans(d1, d2, d3, a12, a23 float64) float64 {
	dx := d2 - d3*math.Cos(a23) - d1*math.Cos(a12)
	dy := d3*math.Sin(a23) + d1*math.Sin(a12)
	return math.Hypot(dx, dy)
}

func dist14Torsion(d1, d2, d3, a12, a23, phi float64) float64 {
	return math.Sqrt(d1*d1 + d2*d2 + d3*d3 -
		2*d1*d2*math.Cos(a12) - 2*d2*d3*math.Cos(a23) +
		2*d1*d3*(math.Cos(a12)*math.Cos(a23)-math.Sin(a12)*math.Sin(a23)*math.Cos(phi)))
}

func restLength(t *testing.T, mol *libdg.Mol, aid1, aid2 int) float64 {
	t.Helper()
	params, allFound := uff.DefaultOracle.AtomTypes(mol)
	require.True(t, allFound)
	bid, ok := mol.BondBetween(aid1, aid2)
	require.True(t, ok)
	return params[aid1].RestLengthWith(params[aid2], mol.BondOrder(bid))
}

func computeBounds(t *testing.T, smi string, opts godg.TopolOpts) (*libdg.Mol, *godg.BoundsMat) {
	t.Helper()
	mol, err := smiles.Parse(smi)
	require.NoError(t, err)
	mm := godg.NewBoundsMat(mol.NumAtoms())
	libdg.InitBoundsMat(mm, 0, godg.MaxUpper)
	require.NoError(t, libdg.SetTopolBounds(mol, mm, opts))
	return mol, mm
}

const tetAngle = 109.5 * math.Pi / 180

func TestButane14Bounds(t *testing.T) {
	mol, mm := computeBounds(t, "CCCC", godg.DefaultTopolOpts)

	bl := restLength(t, mol, 0, 1)
	cis := dist14Cis(bl, bl, bl, tetAngle, tetAngle)
	trans := dist14Trans(bl, bl, bl, tetAngle, tetAngle)

	assert.InDelta(t, cis, mm.Lower(0, 3), 1e-9)
	assert.InDelta(t, trans, mm.Upper(0, 3), 1e-9)

	// 1-2 and 1-3 sanity on the way
	assert.InDelta(t, bl, (mm.Lower(0, 1)+mm.Upper(0, 1))/2, 1e-9)
	d13 := math.Sqrt(2 * bl * bl * (1 - math.Cos(tetAngle)))
	assert.InDelta(t, d13, (mm.Lower(0, 2)+mm.Upper(0, 2))/2, 1e-9)
}

func TestBenzene14Cis(t *testing.T) {
	mol, mm := computeBounds(t, "c1ccccc1", godg.DefaultTopolOpts)

	bl := restLength(t, mol, 0, 1)
	ringAngle := 2 * math.Pi / 3
	cis := dist14Cis(bl, bl, bl, ringAngle, ringAngle)
	assert.InDelta(t, 2*bl, cis, 1e-9, "the para distance in a regular hexagon is twice the edge")

	for _, pair := range [][2]int{{0, 3}, {1, 4}, {2, 5}} {
		lo := mm.Lower(pair[0], pair[1])
		hi := mm.Upper(pair[0], pair[1])
		assert.InDelta(t, 0.12, hi-lo, 1e-9)
		assert.InDelta(t, cis, (lo+hi)/2, 1e-9)
	}
}

func TestEthyleneExplicitTrans(t *testing.T) {
	mol, mm := computeBounds(t, "[H]/C=C/[H]", godg.DefaultTopolOpts)

	blCH := restLength(t, mol, 0, 1)
	blCC := restLength(t, mol, 1, 2)
	a := 2 * math.Pi / 3
	cis := dist14Cis(blCH, blCC, blCH, a, a)
	trans := dist14Trans(blCH, blCC, blCH, a, a)

	lo := mm.Lower(0, 3)
	hi := mm.Upper(0, 3)
	assert.LessOrEqual(t, lo, trans)
	assert.GreaterOrEqual(t, hi, trans)
	assert.Greater(t, lo, cis, "an explicit trans bond must exclude the syn distance")
	assert.InDelta(t, 0.12, hi-lo, 1e-9)
}

func TestAmideForceTrans(t *testing.T) {
	// N-methylacetamide with the amide hydrogen in the graph:
	// C0 C1(=O2) N3(H4) C5
	mol, mm := computeBounds(t, "CC(=O)N([H])C", godg.DefaultTopolOpts)

	blNH := restLength(t, mol, 3, 4)
	blCN := restLength(t, mol, 1, 3)
	blCO := restLength(t, mol, 1, 2)
	aN := tetAngle        // sp3 nitrogen center
	aC := 2 * math.Pi / 3 // sp2 carbonyl carbon

	// H is pinned trans to the carbonyl O
	trans := dist14Trans(blNH, blCN, blCO, aN, aC)
	assert.InDelta(t, trans-0.06, mm.Lower(4, 2), 1e-9)
	assert.InDelta(t, trans+0.06, mm.Upper(4, 2), 1e-9)

	// the N-methyl goes cis to the O
	blNC := restLength(t, mol, 3, 5)
	cis := dist14Cis(blNC, blCN, blCO, aN, aC)
	assert.InDelta(t, cis-0.06, mm.Lower(5, 2), 1e-9)
	assert.InDelta(t, cis+0.06, mm.Upper(5, 2), 1e-9)
}

func TestAmideBracketWithoutForce(t *testing.T) {
	opts := godg.DefaultTopolOpts
	opts.ForceTransAmides = false
	mol, mm := computeBounds(t, "CC(=O)N([H])C", opts)

	blNH := restLength(t, mol, 3, 4)
	blCN := restLength(t, mol, 1, 3)
	blCO := restLength(t, mol, 1, 2)
	cis := dist14Cis(blNH, blCN, blCO, tetAngle, 2*math.Pi/3)
	trans := dist14Trans(blNH, blCN, blCO, tetAngle, 2*math.Pi/3)

	assert.InDelta(t, cis, mm.Lower(4, 2), 1e-9)
	assert.InDelta(t, trans, mm.Upper(4, 2), 1e-9)
}

func TestDisulfideTorsion(t *testing.T) {
	mol, mm := computeBounds(t, "CSSC", godg.DefaultTopolOpts)

	blCS := restLength(t, mol, 0, 1)
	blSS := restLength(t, mol, 1, 2)
	d90 := dist14Torsion(blCS, blSS, blCS, tetAngle, tetAngle, math.Pi/2)

	lo := mm.Lower(0, 3)
	hi := mm.Upper(0, 3)
	assert.InDelta(t, 0.12, hi-lo, 1e-9)
	assert.InDelta(t, d90, (lo+hi)/2, 1e-9)
}

func TestCyclononaneMacrocycle(t *testing.T) {
	opts := godg.DefaultTopolOpts
	opts.Macrocycle14 = true
	mol, mm := computeBounds(t, "C1CCCCCCCC1", opts)

	bl := restLength(t, mol, 0, 1)
	cis := dist14Cis(bl, bl, bl, tetAngle, tetAngle)
	trans := dist14Trans(bl, bl, bl, tetAngle, tetAngle)

	// ring 1-4 pairs bracket the full torsion range
	assert.InDelta(t, cis, mm.Lower(0, 3), 1e-9)
	assert.InDelta(t, trans, mm.Upper(0, 3), 1e-9)
}

func TestMacrolactamTransAmide(t *testing.T) {
	// 9-membered lactam: C0..C6, C7(=O8), N9(H10), ring closed N9-C0
	opts := godg.DefaultTopolOpts
	opts.Macrocycle14 = true
	mol, mm := computeBounds(t, "C1CCCCCCC(=O)N1[H]", opts)

	require.Equal(t, 11, mol.NumAtoms())
	require.True(t, mol.Rings().IsAtomInRingOfSize(9, 9))

	// the in-ring amide path C6-C7(=O)-N9-C0 pins trans with extra slack
	bl1 := restLength(t, mol, 6, 7)
	bl2 := restLength(t, mol, 7, 9)
	bl3 := restLength(t, mol, 9, 0)
	aC7 := 2 * math.Pi / 3 // sp2 carbonyl in a macrocycle
	aN9 := tetAngle
	trans := dist14Trans(bl1, bl2, bl3, aC7, aN9)

	lo := mm.Lower(6, 0)
	hi := mm.Upper(6, 0)
	assert.InDelta(t, 0.12, hi-lo, 1e-9)
	assert.InDelta(t, trans+0.1, (lo+hi)/2, 1e-9)
}

func TestHexafluoroethaneNoInversions(t *testing.T) {
	mol, mm := computeBounds(t, "FC(F)(F)C(F)(F)F", godg.DefaultTopolOpts)
	require.Equal(t, 8, mol.NumAtoms())
	assertBoundsInvariants(t, mm)

	// geminal F..F pairs are 1-3 constrained
	blCF := restLength(t, mol, 0, 1)
	d13 := math.Sqrt(2 * blCF * blCF * (1 - math.Cos(tetAngle)))
	assert.InDelta(t, d13, (mm.Lower(0, 2)+mm.Upper(0, 2))/2, 1e-9)
}

func TestMethane13Angles(t *testing.T) {
	mol, mm := computeBounds(t, "C([H])([H])([H])[H]", godg.DefaultTopolOpts)
	require.Equal(t, 5, mol.NumAtoms())

	blCH := restLength(t, mol, 0, 1)
	d13 := math.Sqrt(2 * blCH * blCH * (1 - math.Cos(tetAngle)))
	for _, pair := range [][2]int{{1, 2}, {1, 3}, {1, 4}, {2, 3}, {2, 4}, {3, 4}} {
		center := (mm.Lower(pair[0], pair[1]) + mm.Upper(pair[0], pair[1])) / 2
		assert.InDelta(t, d13, center, 1e-9, "pair %v", pair)
	}
}

func TestCyclopropane13(t *testing.T) {
	mol, mm := computeBounds(t, "C1CC1", godg.DefaultTopolOpts)

	// 60 degree interior angles make the 1-3 distance the bond length itself
	bl := restLength(t, mol, 0, 1)
	for _, pair := range [][2]int{{0, 1}, {1, 2}, {0, 2}} {
		center := (mm.Lower(pair[0], pair[1]) + mm.Upper(pair[0], pair[1])) / 2
		assert.InDelta(t, bl, center, 1e-9, "pair %v", pair)
	}
}

func assertBoundsInvariants(t *testing.T, mm *godg.BoundsMat) {
	t.Helper()
	n := mm.Len()
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			lo := mm.Lower(i, j)
			hi := mm.Upper(i, j)
			assert.Greater(t, lo, 0.0, "pair (%d,%d)", i, j)
			assert.LessOrEqual(t, lo, hi, "pair (%d,%d)", i, j)
			assert.Equal(t, lo, mm.Lower(j, i))
			assert.Equal(t, hi, mm.Upper(j, i))
		}
	}
}

func TestBoundsInvariantsAcrossMolecules(t *testing.T) {
	for _, smi := range []string{
		"CCCC",
		"c1ccccc1",
		"C1CC1CC",
		"c1ccc2ccccc2c1",
		"CC(=O)N([H])C",
		"C/C=C/C",
		"CSSC",
		"C#CC=C=C",
		"C1CCCCCCCC1",
		"O=C(N)C",
	} {
		_, mm := computeBounds(t, smi, godg.DefaultTopolOpts)
		assertBoundsInvariants(t, mm)
	}
}

func TestSetTopolBoundsIdempotent(t *testing.T) {
	mol := smiles.MustParse("CC(=O)N([H])C")
	mm := godg.NewBoundsMat(mol.NumAtoms())
	libdg.InitBoundsMat(mm, 0, godg.MaxUpper)

	require.NoError(t, libdg.SetTopolBounds(mol, mm, godg.DefaultTopolOpts))
	first := mm.AppendEncodingTo(nil)
	require.NoError(t, libdg.SetTopolBounds(mol, mm, godg.DefaultTopolOpts))
	second := mm.AppendEncodingTo(nil)

	assert.Equal(t, first, second, "a converged matrix must not move")
}

func TestVdwLowerBounds(t *testing.T) {
	// n-hexane: pair (0,5) is five bonds apart, pair (0,4) four
	mol, mm := computeBounds(t, "CCCCCC", godg.DefaultTopolOpts)
	require.Equal(t, 6, mol.NumAtoms())

	vsum := 2 * libdg.Rvdw(6)
	assert.InDelta(t, 0.7*vsum, mm.Lower(0, 4), 1e-9)
	assert.InDelta(t, 0.85*vsum, mm.Lower(0, 5), 1e-9)
	assert.Equal(t, godg.MaxUpper, mm.Upper(0, 5), "no upper bound beyond the 1-5 horizon")
}

func TestEmptyMol(t *testing.T) {
	mol := libdg.NewMol()
	mm := godg.NewBoundsMat(0)
	err := libdg.SetTopolBounds(mol, mm, godg.DefaultTopolOpts)
	assert.ErrorIs(t, err, godg.ErrNoAtoms)
}
