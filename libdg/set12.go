package libdg

import (
	"github.com/distgeom-systems/godg/godg"
	"github.com/pkg/errors"
)

// set12Bounds writes bond-length bounds for every bonded pair and fills the
// accumulator's bondLengths. Rest lengths come from the parameter oracle; a
// small tolerance turns each into a tight bracket. Atoms without parameters
// fall back to crude van der Waals bounds.
func set12Bounds(mol godg.Mol, mm *godg.BoundsMat, cd *computedData, oracle godg.ParamOracle) error {
	if mm.Len() != mol.NumAtoms() {
		return errors.Wrap(godg.ErrMatrixSize, "set12")
	}
	params, _ := oracle.AtomTypes(mol)

	// Larger heteroatoms on conjugated bonds of 5-rings need extra slack:
	// their idealized rest lengths over-constrain the ring.
	squish := make([]bool, mol.NumAtoms())
	rinfo := mol.Rings()
	for bid := 0; bid < mol.NumBonds(); bid++ {
		beg, end := mol.BondEnds(bid)
		if mol.IsConjugated(bid) &&
			(mol.AtomicNumber(beg) > 10 || mol.AtomicNumber(end) > 10) &&
			rinfo.IsInitialized() && rinfo.IsBondInRingOfSize(bid, 5) {
			squish[beg] = true
			squish[end] = true
		}
	}

	for bid := 0; bid < mol.NumBonds(); bid++ {
		beg, end := mol.BondEnds(bid)
		order := mol.BondOrder(bid)
		if params[beg] != nil && params[end] != nil && order > 0 {
			bl := params[beg].RestLengthWith(params[end], order)

			extraSquish := 0.0
			if squish[beg] || squish[end] {
				extraSquish = 0.2 // empirical
			}

			cd.bondLengths[bid] = bl
			mm.SetUpper(beg, end, bl+extraSquish+dist12Delta)
			mm.SetLower(beg, end, bl-extraSquish-dist12Delta)
		} else {
			// no parameters for one of the atoms, so very crude bounds
			vw1 := Rvdw(mol.AtomicNumber(beg))
			vw2 := Rvdw(mol.AtomicNumber(end))
			bl := (vw1 + vw2) / 2
			cd.bondLengths[bid] = bl
			mm.SetUpper(beg, end, 1.5*bl)
			mm.SetLower(beg, end, 0.5*bl)
		}
	}
	return nil
}
