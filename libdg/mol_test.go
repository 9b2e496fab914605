package libdg_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/distgeom-systems/godg/godg"
	"github.com/distgeom-systems/godg/libdg"
	"github.com/distgeom-systems/godg/libdg/smiles"
)

func TestDistanceMatrix(t *testing.T) {
	mol := smiles.MustParse("CCCC")
	dmat := mol.DistanceMatrix()
	na := mol.NumAtoms()

	assert.Equal(t, 0.0, dmat[0])
	assert.Equal(t, 1.0, dmat[0*na+1])
	assert.Equal(t, 2.0, dmat[0*na+2])
	assert.Equal(t, 3.0, dmat[0*na+3])
	assert.Equal(t, 3.0, dmat[3*na+0], "distances are symmetric")

	// in a six-ring the far side is three bonds away either direction
	mol = smiles.MustParse("C1CCCCC1")
	dmat = mol.DistanceMatrix()
	na = mol.NumAtoms()
	assert.Equal(t, 3.0, dmat[0*na+3])
	assert.Equal(t, 2.0, dmat[0*na+4])
	assert.Equal(t, 1.0, dmat[0*na+5])
}

func TestRingPerception(t *testing.T) {
	mol := smiles.MustParse("C1CC1CC")
	rinfo := mol.Rings()
	require.True(t, rinfo.IsInitialized())
	assert.Equal(t, 1, rinfo.NumRings())
	assert.Equal(t, 1, rinfo.NumAtomRings(0))
	assert.Equal(t, 0, rinfo.NumAtomRings(3))
	assert.True(t, rinfo.IsAtomInRingOfSize(1, 3))
	assert.False(t, rinfo.IsAtomInRingOfSize(1, 4))

	// aligned walks: bond i joins atoms i and i+1
	atomRings := rinfo.AtomRings()
	bondRings := rinfo.BondRings()
	require.Len(t, atomRings, 1)
	ring := atomRings[0]
	bring := bondRings[0]
	require.Equal(t, len(ring), len(bring))
	for i := range ring {
		beg, end := mol.BondEnds(bring[i])
		next := ring[(i+1)%len(ring)]
		assert.True(t,
			(beg == ring[i] && end == next) || (end == ring[i] && beg == next),
			"bond ring misaligned at %d", i)
	}
}

func TestFusedRingMembership(t *testing.T) {
	mol := smiles.MustParse("c1ccc2ccccc2c1")
	rinfo := mol.Rings()
	assert.Equal(t, 2, rinfo.NumRings())

	fused := 0
	for bid := 0; bid < mol.NumBonds(); bid++ {
		if rinfo.NumBondRings(bid) == 2 {
			fused++
		}
	}
	assert.Equal(t, 1, fused, "naphthalene has exactly one fusion bond")
}

func TestMolEncoding(t *testing.T) {
	m1 := smiles.MustParse("O=C(N)C")
	m2 := smiles.MustParse("O=C(N)C")
	m3 := smiles.MustParse("O=C(C)N")

	assert.Equal(t, m1.AppendEncodingTo(nil), m2.AppendEncodingTo(nil))
	assert.NotEqual(t, m1.AppendEncodingTo(nil), m3.AppendEncodingTo(nil))
}

func TestIdealAngleBetweenLigands(t *testing.T) {
	mol := smiles.MustParse("F[Si@SP1](F)(F)F")
	// bond-order ligand sites 0 and 2 sit across the square
	assert.InDelta(t, 180.0, mol.IdealAngleBetweenLigands(1, 0, 3), 1e-9)
	assert.InDelta(t, 90.0, mol.IdealAngleBetweenLigands(1, 0, 2), 1e-9)
}

func TestBoundsMatEncoding(t *testing.T) {
	mm := godg.NewBoundsMat(4)
	mm.Init(0, godg.MaxUpper)
	mm.SetLower(0, 3, 1.25)
	mm.SetUpper(0, 3, 2.5)

	enc := mm.AppendEncodingTo(nil)
	out := godg.NewBoundsMat(0)
	require.NoError(t, out.InitFromEncoding(enc))
	assert.Equal(t, 4, out.Len())
	assert.Equal(t, 1.25, out.Lower(3, 0))
	assert.Equal(t, 2.5, out.Upper(3, 0))
	assert.Equal(t, godg.MaxUpper, out.Upper(1, 2))
}

func TestCollectBondsAndAngles(t *testing.T) {
	mol := smiles.MustParse("C#CC=C=C")
	bonds, angles := libdg.CollectBondsAndAngles(mol)
	assert.Len(t, bonds, 4)
	require.Len(t, angles, 3)

	flagged := 0
	for _, rec := range angles {
		if rec[3] == 1 {
			flagged++
		}
	}
	// the triple-bond angle and the cumulene center are linear
	assert.Equal(t, 2, flagged)
}
