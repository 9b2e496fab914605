package libdg

import (
	"github.com/distgeom-systems/godg/godg"
)

// set15BoundsHelper extends one recorded 1-4 path by every bond hanging off
// its far end and writes 1-5 bounds. The 1-4 tag fixes the first torsion; the
// second comes from a cis/trans path-set lookup on the trailing three bonds.
func set15BoundsHelper(mol godg.Mol, bid1, bid2, bid3 int, tag pathTag, cd *computedData, mm *godg.BoundsMat, dmat []float64) error {
	nb := mol.NumBonds()
	na := mol.NumAtoms()

	aid2 := cd.sharedAtom(bid1, bid2)
	aid1 := mol.OtherBondAtom(bid1, aid2)
	aid3 := cd.sharedAtom(bid2, bid3)
	aid4 := mol.OtherBondAtom(bid3, aid3)
	d1 := cd.bondLengths[bid1]
	d2 := cd.bondLengths[bid2]
	d3 := cd.bondLengths[bid3]
	ang12 := cd.bondAngle(bid1, bid2)
	ang23 := cd.bondAngle(bid2, bid3)

	for bid4 := 0; bid4 < nb; bid4++ {
		if cd.sharedAtom(bid3, bid4) != aid4 {
			continue
		}
		aid5 := mol.OtherBondAtom(bid4, aid4)

		// four-membered rings can walk back onto the first atom; also check
		// the pair really is a 1-5 contact
		lo, hi := aid1, aid5
		if lo > hi {
			lo, hi = hi, lo
		}
		if dmat[hi*na+lo] < 3.9 {
			continue
		}
		if aid1 == aid5 {
			continue
		}
		pid1 := aid1*na + aid5
		pid2 := aid5*na + aid1
		if mm.Lower(aid1, aid5) >= dist12Delta && !cd.set15Atoms[pid1] && !cd.set15Atoms[pid2] {
			continue
		}

		d4 := cd.bondLengths[bid4]
		ang34 := cd.bondAngle(bid3, bid4)
		pathID := cd.pathKey(bid2, bid3, bid4)

		du := -1.0
		dl := 0.0
		switch tag {
		case pathCis:
			if cd.cisPaths.Contains(pathID) {
				dl = compute15DistCisCis(d1, d2, d3, d4, ang12, ang23, ang34)
				du = dl + dist15Tol
				dl -= dist15Tol
			} else if cd.transPaths.Contains(pathID) {
				dl = compute15DistCisTrans(d1, d2, d3, d4, ang12, ang23, ang34)
				du = dl + dist15Tol
				dl -= dist15Tol
			} else {
				dl = compute15DistCisCis(d1, d2, d3, d4, ang12, ang23, ang34) - dist15Tol
				du = compute15DistCisTrans(d1, d2, d3, d4, ang12, ang23, ang34) + dist15Tol
			}
		case pathTrans:
			if cd.cisPaths.Contains(pathID) {
				dl = compute15DistTransCis(d1, d2, d3, d4, ang12, ang23, ang34)
				du = dl + dist15Tol
				dl -= dist15Tol
			} else if cd.transPaths.Contains(pathID) {
				dl = compute15DistTransTrans(d1, d2, d3, d4, ang12, ang23, ang34)
				du = dl + dist15Tol
				dl -= dist15Tol
			} else {
				dl = compute15DistTransCis(d1, d2, d3, d4, ang12, ang23, ang34) - dist15Tol
				du = compute15DistTransTrans(d1, d2, d3, d4, ang12, ang23, ang34) + dist15Tol
			}
		default:
			// the leading torsion is unconstrained; bracket using the
			// trailing torsion, walking the path back to front
			if cd.cisPaths.Contains(pathID) {
				dl = compute15DistCisCis(d4, d3, d2, d1, ang34, ang23, ang12) - dist15Tol
				du = compute15DistCisTrans(d4, d3, d2, d1, ang34, ang23, ang12) + dist15Tol
			} else if cd.transPaths.Contains(pathID) {
				dl = compute15DistTransCis(d4, d3, d2, d1, ang34, ang23, ang12) - dist15Tol
				du = compute15DistTransTrans(d4, d3, d2, d1, ang34, ang23, ang12) + dist15Tol
			} else {
				vw1 := Rvdw(mol.AtomicNumber(aid1))
				vw5 := Rvdw(mol.AtomicNumber(aid5))
				dl = vdwScale15 * (vw1 + vw5)
			}
		}
		if du < 0 {
			du = maxUpper
		}

		if err := checkAndSetBounds(aid1, aid5, dl, du, mm); err != nil {
			return err
		}
		cd.set15Atoms[pid1] = true
		cd.set15Atoms[pid2] = true
	}
	return nil
}

// set15Bounds writes 1-5 bounds by composing every recorded 1-4 path, taken
// in both directions, with each bond adjacent to its far end.
func set15Bounds(mol godg.Mol, mm *godg.BoundsMat, cd *computedData, dmat []float64) error {
	for _, pt := range cd.paths14 {
		if err := set15BoundsHelper(mol, pt.bid1, pt.bid2, pt.bid3, pt.tag, cd, mm, dmat); err != nil {
			return err
		}
		if err := set15BoundsHelper(mol, pt.bid3, pt.bid2, pt.bid1, pt.tag, cd, mm, dmat); err != nil {
			return err
		}
	}
	return nil
}
