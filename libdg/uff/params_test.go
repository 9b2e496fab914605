package uff_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/distgeom-systems/godg/godg"
	"github.com/distgeom-systems/godg/libdg"
	"github.com/distgeom-systems/godg/libdg/uff"
)

func ethaneMol() *libdg.Mol {
	m := libdg.NewMol()
	c1 := m.AddAtom(libdg.Atom{Num: 6, NumHs: 3})
	c2 := m.AddAtom(libdg.Atom{Num: 6, NumHs: 3})
	m.AddBond(libdg.Bond{Beg: c1, End: c2, Type: godg.BondSingle})
	m.Finish()
	return m
}

func TestAtomTypes(t *testing.T) {
	mol := ethaneMol()
	params, allFound := uff.DefaultOracle.AtomTypes(mol)
	require.True(t, allFound)
	require.Len(t, params, 2)
	require.NotNil(t, params[0])
	require.NotNil(t, params[1])
}

func TestRestLengths(t *testing.T) {
	mol := ethaneMol()
	params, _ := uff.DefaultOracle.AtomTypes(mol)

	// identical atoms: no electronegativity correction, single bond
	ccSingle := params[0].RestLengthWith(params[1], 1.0)
	assert.InDelta(t, 1.514, ccSingle, 1e-6)

	// higher order means shorter
	ccDouble := params[0].RestLengthWith(params[1], 2.0)
	assert.Less(t, ccDouble, ccSingle)
	ccAromatic := params[0].RestLengthWith(params[1], 1.5)
	assert.Greater(t, ccAromatic, ccDouble)
	assert.Less(t, ccAromatic, ccSingle)
}

func TestRestLengthElectronegativity(t *testing.T) {
	m := libdg.NewMol()
	c := m.AddAtom(libdg.Atom{Num: 6, NumHs: 3})
	o := m.AddAtom(libdg.Atom{Num: 8, NumHs: 1})
	m.AddBond(libdg.Bond{Beg: c, End: o, Type: godg.BondSingle})
	m.Finish()

	params, allFound := uff.DefaultOracle.AtomTypes(m)
	require.True(t, allFound)

	co := params[0].RestLengthWith(params[1], 1.0)
	// the rEN correction shortens the bond below the plain radius sum
	assert.Less(t, co, 0.757+0.658)
	assert.Greater(t, co, 1.2)

	// the formula is symmetric
	oc := params[1].RestLengthWith(params[0], 1.0)
	assert.InDelta(t, co, oc, 1e-12)
}

func TestUnknownElement(t *testing.T) {
	m := libdg.NewMol()
	fe := m.AddAtom(libdg.Atom{Num: 26})
	c := m.AddAtom(libdg.Atom{Num: 6, NumHs: 3})
	m.AddBond(libdg.Bond{Beg: fe, End: c, Type: godg.BondSingle})
	m.Finish()

	params, allFound := uff.DefaultOracle.AtomTypes(m)
	assert.False(t, allFound)
	assert.Nil(t, params[0])
	assert.NotNil(t, params[1])
}
