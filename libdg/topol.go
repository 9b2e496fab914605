package libdg

import (
	"github.com/distgeom-systems/godg/godg"
	"github.com/distgeom-systems/godg/libdg/uff"
)

// SetTopolBounds runs the full bounds pipeline over mol, writing into mm:
// 1-2 bond lengths, 1-3 angle distances, 1-4 torsion ranges, optionally 1-5
// chain distances, and finally van der Waals lower bounds for everything the
// topology left unset.
//
// The accumulator lives on this call's stack: concurrent invocations on
// distinct matrices are safe once the molecule's ring info and distance
// matrix have been materialized.
func SetTopolBounds(mol godg.Mol, mm *godg.BoundsMat, opts godg.TopolOpts) error {
	if mol == nil {
		return godg.ErrNilMol
	}
	na := mol.NumAtoms()
	nb := mol.NumBonds()
	if na == 0 {
		return godg.ErrNoAtoms
	}
	if nb >= maxNumBonds {
		return godg.ErrTooManyBonds
	}

	cd := newComputedData(na, nb)
	dmat := mol.DistanceMatrix()

	if err := set12Bounds(mol, mm, cd, uff.DefaultOracle); err != nil {
		return err
	}
	if err := set13Bounds(mol, mm, cd); err != nil {
		return err
	}
	if err := set14Bounds(mol, mm, cd, dmat, opts); err != nil {
		return err
	}
	if opts.Set15 {
		if err := set15Bounds(mol, mm, cd, dmat); err != nil {
			return err
		}
	}
	setLowerBoundVDW(mol, mm, opts.ScaleVdw, dmat)
	return nil
}

// CollectBondsAndAngles gathers every bonded atom pair and every bond-angle
// path. An angle record's flag is 1 when either bond is triple, or both are
// double around a two-coordinate center: the path is then linear and gets no
// torsional term downstream.
func CollectBondsAndAngles(mol godg.Mol) (bonds []godg.BondRec, angles []godg.AngleRec) {
	nb := mol.NumBonds()
	bonds = make([]godg.BondRec, 0, nb)
	for bi := 0; bi < nb; bi++ {
		beg, end := mol.BondEnds(bi)
		bonds = append(bonds, godg.BondRec{beg, end})

		for bj := bi + 1; bj < nb; bj++ {
			aid11, aid12 := beg, end
			aid21, aid22 := mol.BondEnds(bj)
			if aid11 != aid21 && aid11 != aid22 && aid12 != aid21 && aid12 != aid22 {
				continue
			}
			var rec godg.AngleRec
			switch {
			case aid12 == aid21:
				rec = godg.AngleRec{aid11, aid12, aid22, 0}
			case aid12 == aid22:
				rec = godg.AngleRec{aid11, aid12, aid21, 0}
			case aid11 == aid21:
				rec = godg.AngleRec{aid12, aid11, aid22, 0}
			default:
				rec = godg.AngleRec{aid12, aid11, aid21, 0}
			}

			ti := mol.BondType(bi)
			tj := mol.BondType(bj)
			if ti == godg.BondTriple || tj == godg.BondTriple {
				rec[3] = 1
			} else if ti == godg.BondDouble && tj == godg.BondDouble &&
				mol.Degree(rec[1]) == 2 {
				rec[3] = 1
			}
			angles = append(angles, rec)
		}
	}
	return bonds, angles
}

// SetTopolBoundsCollect is SetTopolBounds plus the bond and angle collection
// used by downstream minimizers.
func SetTopolBoundsCollect(mol godg.Mol, mm *godg.BoundsMat, opts godg.TopolOpts) (bonds []godg.BondRec, angles []godg.AngleRec, err error) {
	if err = SetTopolBounds(mol, mm, opts); err != nil {
		return nil, nil, err
	}
	bonds, angles = CollectBondsAndAngles(mol)
	return bonds, angles, nil
}
