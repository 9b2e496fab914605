// Package uff resolves UFF-style atom parameters and equilibrium bond
// lengths for the bounds engine's 1-2 pass.
package uff

import (
	"math"

	"github.com/distgeom-systems/godg/godg"
)

// AtomParams carries the two per-atom parameters the rest-length formula
// needs: the valence bond radius r1 and the GMP electronegativity chi.
type AtomParams struct {
	Label string
	R1    float64 // Angstroms
	Chi   float64
}

// RestLengthWith returns the natural bond length toward another typed atom:
//
//	r0 = r1 + r2 + rBO - rEN
//
// with the bond-order correction rBO = -0.1332 (r1+r2) ln(n) and the
// electronegativity correction rEN = r1 r2 (sqrt(x1)-sqrt(x2))^2 / (x1 r1 + x2 r2).
func (p *AtomParams) RestLengthWith(other godg.AtomParams, order float64) float64 {
	q := other.(*AtomParams)
	rSum := p.R1 + q.R1
	rBO := -0.1332 * rSum * math.Log(order)
	dChi := math.Sqrt(p.Chi) - math.Sqrt(q.Chi)
	rEN := p.R1 * q.R1 * dChi * dChi / (p.Chi*p.R1 + q.Chi*q.R1)
	return rSum + rBO - rEN
}

type typeKey struct {
	z   int
	hyb godg.Hybridization
}

// paramTable covers the organic subset per hybridization state; elements with
// a single entry ignore hybridization.
var paramTable = map[typeKey]*AtomParams{
	{6, godg.HybridSP}:   {"C_1", 0.706, 5.343},
	{6, godg.HybridSP2}:  {"C_2", 0.732, 5.343},
	{6, godg.HybridSP3}:  {"C_3", 0.757, 5.343},
	{7, godg.HybridSP}:   {"N_1", 0.656, 6.899},
	{7, godg.HybridSP2}:  {"N_2", 0.685, 6.899},
	{7, godg.HybridSP3}:  {"N_3", 0.700, 6.899},
	{8, godg.HybridSP}:   {"O_1", 0.639, 8.741},
	{8, godg.HybridSP2}:  {"O_2", 0.634, 8.741},
	{8, godg.HybridSP3}:  {"O_3", 0.658, 8.741},
	{16, godg.HybridSP2}: {"S_R", 1.077, 6.928},
	{16, godg.HybridSP3}: {"S_3", 1.064, 6.928},
	{5, godg.HybridSP2}:  {"B_2", 0.828, 5.110},
	{5, godg.HybridSP3}:  {"B_3", 0.838, 5.110},
}

var elementTable = map[int]*AtomParams{
	1:  {"H_", 0.354, 4.528},
	9:  {"F_", 0.668, 10.874},
	14: {"Si3", 1.117, 4.168},
	15: {"P_3", 1.101, 5.463},
	17: {"Cl", 1.044, 8.564},
	35: {"Br", 1.192, 7.790},
	53: {"I_", 1.382, 6.822},
}

// Oracle types the atoms of a molecule against the parameter tables.
type Oracle struct{}

// DefaultOracle is the oracle SetTopolBounds uses.
var DefaultOracle = Oracle{}

// AtomTypes returns one parameter record per atom, nil where no type exists;
// allFound is true when every atom resolved. Callers fall back to crude van
// der Waals bounds for unresolved atoms.
func (Oracle) AtomTypes(mol godg.Mol) ([]godg.AtomParams, bool) {
	na := mol.NumAtoms()
	params := make([]godg.AtomParams, na)
	allFound := true
	for aid := 0; aid < na; aid++ {
		z := mol.AtomicNumber(aid)
		p, ok := paramTable[typeKey{z, mol.Hybridization(aid)}]
		if !ok {
			p, ok = elementTable[z]
		}
		if !ok {
			allFound = false
			continue
		}
		params[aid] = p
	}
	return params, allFound
}
