package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/distgeom-systems/godg/godg"
	"github.com/distgeom-systems/godg/libdg"
	"github.com/distgeom-systems/godg/libdg/catalog"
	"github.com/distgeom-systems/godg/libdg/smiles"
)

func boundsFor(t *testing.T, smi string) (*libdg.Mol, *godg.BoundsMat) {
	t.Helper()
	mol, err := smiles.Parse(smi)
	require.NoError(t, err)
	mm := godg.NewBoundsMat(mol.NumAtoms())
	libdg.InitBoundsMat(mm, 0, godg.MaxUpper)
	require.NoError(t, libdg.SetTopolBounds(mol, mm, godg.DefaultTopolOpts))
	return mol, mm
}

func TestCatalogRoundTrip(t *testing.T) {
	cat, err := catalog.OpenCatalog(catalog.Opts{})
	require.NoError(t, err)
	defer cat.Close()

	mol, mm := boundsFor(t, "CCCC")
	assert.True(t, cat.TryAdd(mol, mm))
	assert.False(t, cat.TryAdd(mol, mm), "second add of the same molecule is a no-op")
	assert.EqualValues(t, 1, cat.NumMols())

	got, found := cat.Lookup(mol)
	require.True(t, found)
	assert.Equal(t, mm.AppendEncodingTo(nil), got.AppendEncodingTo(nil))

	other := smiles.MustParse("c1ccccc1")
	_, found = cat.Lookup(other)
	assert.False(t, found)
}

func TestCatalogSeparateMols(t *testing.T) {
	cat, err := catalog.OpenCatalog(catalog.Opts{})
	require.NoError(t, err)
	defer cat.Close()

	for _, smi := range []string{"CCCC", "c1ccccc1", "CSSC"} {
		mol, mm := boundsFor(t, smi)
		assert.True(t, cat.TryAdd(mol, mm))
	}
	assert.EqualValues(t, 3, cat.NumMols())
}

func TestCatalogReadOnlyNeedsPath(t *testing.T) {
	_, err := catalog.OpenCatalog(catalog.Opts{ReadOnly: true})
	assert.ErrorIs(t, err, godg.ErrBadCatalogParam)
}

func TestMolSet(t *testing.T) {
	set := catalog.NewMolSet()
	defer set.Close()

	m1 := smiles.MustParse("CCCC")
	m2 := smiles.MustParse("CCCC")
	m3 := smiles.MustParse("CCC")

	assert.True(t, set.TryAdd(m1))
	assert.False(t, set.TryAdd(m2), "an equivalent molecule is already present")
	assert.True(t, set.TryAdd(m3))
}
