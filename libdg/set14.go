package libdg

import (
	"math"

	"github.com/distgeom-systems/godg/godg"
	"github.com/pkg/errors"
)

// maxNumBonds caps the bond count so packed path keys cannot overflow uint64.
var maxNumBonds = int(math.Cbrt(float64(math.MaxUint64)))

// effectiveBondStereo returns the stereo of a bond as seen from the path end
// atoms aid1 and aid4: when exactly one of the recorded stereo atoms differs
// from the observed end atom, the assignment flips (Z<->E, cis<->trans).
func effectiveBondStereo(mol godg.Mol, bid, aid1, aid4 int) godg.BondStereo {
	stype := mol.BondStereo(bid)
	if stype > godg.StereoAny {
		if sa1, sa2, ok := mol.StereoAtoms(bid); ok {
			if (sa1 != aid1) != (sa2 != aid4) {
				switch stype {
				case godg.StereoZ:
					stype = godg.StereoE
				case godg.StereoE:
					stype = godg.StereoZ
				case godg.StereoCis:
					stype = godg.StereoTrans
				case godg.StereoTrans:
					stype = godg.StereoCis
				}
			}
		}
	}
	return stype
}

// path14Geometry resolves the shared atoms, end atoms, bond lengths, and bond
// angles of a three-bond path from the accumulator.
type path14Geometry struct {
	bid1, bid2, bid3 int
	atm2, atm3       int
	aid1, aid4       int
	bl1, bl2, bl3    float64
	ba12, ba23       float64
}

func (cd *computedData) path14Geom(mol godg.Mol, bid1, bid2, bid3 int) (g path14Geometry, err error) {
	g.bid1, g.bid2, g.bid3 = bid1, bid2, bid3
	g.atm2 = cd.sharedAtom(bid1, bid2)
	g.atm3 = cd.sharedAtom(bid2, bid3)
	if g.atm2 < 0 || g.atm3 < 0 {
		return g, errors.Wrapf(godg.ErrBadBondAngle, "unadjacent bonds on 1-4 path (%d,%d,%d)", bid1, bid2, bid3)
	}
	g.aid1 = mol.OtherBondAtom(bid1, g.atm2)
	g.aid4 = mol.OtherBondAtom(bid3, g.atm3)
	g.bl1 = cd.bondLengths[bid1]
	g.bl2 = cd.bondLengths[bid2]
	g.bl3 = cd.bondLengths[bid3]
	g.ba12 = cd.bondAngle(bid1, bid2)
	g.ba23 = cd.bondAngle(bid2, bid3)
	if g.ba12 <= 0 || g.ba23 <= 0 {
		return g, errors.Wrapf(godg.ErrBadBondAngle, "1-4 path (%d,%d,%d)", bid1, bid2, bid3)
	}
	return g, nil
}

// is14Contact rejects pairs whose bond-path distance is shorter than a true
// 1-4 contact (end atoms sharing a small ring).
func is14Contact(mol godg.Mol, dmat []float64, aid1, aid4 int) bool {
	npt := mol.NumAtoms()
	lo, hi := aid1, aid4
	if lo > hi {
		lo, hi = hi, lo
	}
	return dmat[hi*npt+lo] >= 2.9
}

// setInRing14Bounds handles a 1-4 path lying inside one ring. A ringSize of 0
// disables the small-ring cis preference (used by the shared-bond and
// different-ring dispatches, which reduce to this policy).
func setInRing14Bounds(mol godg.Mol, bid1, bid2, bid3 int, cd *computedData, mm *godg.BoundsMat, dmat []float64, ringSize int) error {
	g, err := cd.path14Geom(mol, bid1, bid2, bid3)
	if err != nil {
		return err
	}
	if !is14Contact(mol, dmat, g.aid1, g.aid4) {
		return nil
	}

	ahyb2 := mol.Hybridization(g.atm2)
	ahyb3 := mol.Hybridization(g.atm3)
	rinfo := mol.Rings()
	stype := effectiveBondStereo(mol, bid2, g.aid1, g.aid4)

	preferCis := false
	preferTrans := false
	// No reason to assume cis bonds in larger rings, hence the size check.
	if ringSize <= 8 && ringSize > 0 && ahyb2 == godg.HybridSP2 && ahyb3 == godg.HybridSP2 &&
		stype != godg.StereoE && stype != godg.StereoTrans {
		if rinfo.NumBondRings(bid2) > 1 {
			// the central bond is fused; only prefer cis when bid1 and bid3
			// close the same face
			if rinfo.NumBondRings(bid1) == 1 && rinfo.NumBondRings(bid3) == 1 {
				for _, bring := range rinfo.BondRings() {
					has1 := false
					for _, b := range bring {
						if b == bid1 {
							has1 = true
							break
						}
					}
					if has1 {
						for _, b := range bring {
							if b == bid3 {
								preferCis = true
								break
							}
						}
						break
					}
				}
			}
		} else {
			preferCis = true
		}
	} else if stype == godg.StereoZ || stype == godg.StereoCis {
		preferCis = true
	} else if stype == godg.StereoE || stype == godg.StereoTrans {
		preferTrans = true
	}

	var dl, du float64
	tag := pathOther
	if preferCis {
		dl = compute14DistCis(g.bl1, g.bl2, g.bl3, g.ba12, g.ba23) - genDistTol
		du = dl + 2*genDistTol
		tag = pathCis
		cd.addCisPath(bid1, bid2, bid3)
	} else if preferTrans {
		dl = compute14DistTrans(g.bl1, g.bl2, g.bl3, g.ba12, g.ba23) - genDistTol
		du = dl + 2*genDistTol
		tag = pathTrans
		cd.addTransPath(bid1, bid2, bid3)
	} else {
		// anything from 0 to 180 allowed
		dl = compute14DistCis(g.bl1, g.bl2, g.bl3, g.ba12, g.ba23)
		du = compute14DistTrans(g.bl1, g.bl2, g.bl3, g.ba12, g.ba23)
		if du < dl {
			dl, du = du, dl
		}
		if math.Abs(du-dl) < dist12Delta {
			dl -= genDistTol
			du += genDistTol
		}
	}

	if err := checkAndSetBounds(g.aid1, g.aid4, dl, du, mm); err != nil {
		return err
	}
	cd.paths14 = append(cd.paths14, path14{bid1, bid2, bid3, tag})
	return nil
}

// setTwoInDiffRing14Bounds handles paths whose adjacent bond pairs belong to
// different rings of a fused system. This reduces to the in-ring policy with
// the ring-size cis preference disabled: unless the central bond carries
// stereo, sp2 and other central atoms alike get the full 0-180 range.
func setTwoInDiffRing14Bounds(mol godg.Mol, bid1, bid2, bid3 int, cd *computedData, mm *godg.BoundsMat, dmat []float64) error {
	return setInRing14Bounds(mol, bid1, bid2, bid3, cd, mm, dmat, 0)
}

// setShareRingBond14Bounds handles paths whose middle bond alone is a ring
// bond; again the in-ring policy with no size preference.
func setShareRingBond14Bounds(mol godg.Mol, bid1, bid2, bid3 int, cd *computedData, mm *godg.BoundsMat, dmat []float64) error {
	return setInRing14Bounds(mol, bid1, bid2, bid3, cd, mm, dmat, 0)
}

// setTwoInSameRing14Bounds handles paths whose first two or last two bonds
// share a ring: a flat ring with an external substituent when both central
// atoms are sp2, anything goes otherwise.
func setTwoInSameRing14Bounds(mol godg.Mol, bid1, bid2, bid3 int, cd *computedData, mm *godg.BoundsMat, dmat []float64) error {
	g, err := cd.path14Geom(mol, bid1, bid2, bid3)
	if err != nil {
		return err
	}
	if !is14Contact(mol, dmat, g.aid1, g.aid4) {
		return nil
	}
	// in fused rings this may not be a 1-4 contact at all
	if _, ok := mol.BondBetween(g.aid1, g.atm3); ok {
		return nil
	}
	if _, ok := mol.BondBetween(g.aid4, g.atm2); ok {
		return nil
	}

	var dl, du float64
	tag := pathOther
	if mol.Hybridization(g.atm2) == godg.HybridSP2 && mol.Hybridization(g.atm3) == godg.HybridSP2 {
		dl = compute14DistTrans(g.bl1, g.bl2, g.bl3, g.ba12, g.ba23)
		du = dl + genDistTol
		dl -= genDistTol
		tag = pathTrans
		cd.addTransPath(bid1, bid2, bid3)
	} else {
		dl = compute14DistCis(g.bl1, g.bl2, g.bl3, g.ba12, g.ba23)
		du = compute14DistTrans(g.bl1, g.bl2, g.bl3, g.ba12, g.ba23)
		// in highly-strained situations these can get mixed up
		if du < dl {
			dl, du = du, dl
		}
		if math.Abs(du-dl) < dist12Delta {
			dl -= genDistTol
			du += genDistTol
		}
	}
	if err := checkAndSetBounds(g.aid1, g.aid4, dl, du, mm); err != nil {
		return err
	}
	cd.paths14 = append(cd.paths14, path14{bid1, bid2, bid3, tag})
	return nil
}

// checkAmideEster14 matches the path against the amide/ester fragment:
//
//	     4    <- 4 is the O (or N)
//	     |    <- double bond
//	 1   3
//	  \ / \
//	   2   5  <- 2 is an oxygen or a secondary-amide nitrogen
func checkAmideEster14(mol godg.Mol, bid1, bid3, atm2, atm3, atm4 int) bool {
	return mol.AtomicNumber(atm3) == 6 &&
		mol.BondType(bid3) == godg.BondDouble &&
		(mol.AtomicNumber(atm4) == 8 || mol.AtomicNumber(atm4) == 7) &&
		mol.BondType(bid1) == godg.BondSingle &&
		(mol.AtomicNumber(atm2) == 8 ||
			(mol.AtomicNumber(atm2) == 7 && mol.TotalNumHs(atm2) == 1))
}

func isCarbonyl(mol godg.Mol, aid int) bool {
	if mol.AtomicNumber(aid) == 6 && mol.Degree(aid) > 2 {
		for _, bid := range mol.AtomBonds(aid) {
			nbr := mol.OtherBondAtom(bid, aid)
			z := mol.AtomicNumber(nbr)
			if (z == 8 || z == 7) && mol.BondType(bid) == godg.BondDouble {
				return true
			}
		}
	}
	return false
}

// checkAmideEster15 matches the 1-5 partner of the amide/ester fragment: the
// path runs through the heteroatom into the carbonyl carbon sideways.
func checkAmideEster15(mol godg.Mol, bid1, bid3, atm2, atm3 int) bool {
	z2 := mol.AtomicNumber(atm2)
	if z2 == 8 || (z2 == 7 && mol.TotalNumHs(atm2) == 1) {
		if mol.BondType(bid1) == godg.BondSingle {
			if mol.AtomicNumber(atm3) == 6 && mol.BondType(bid3) == godg.BondSingle &&
				isCarbonyl(mol, atm3) {
				return true
			}
		}
	}
	return false
}

// isSecondaryAmideH reports whether aidH is a hydrogen on a secondary-amide
// nitrogen aidN.
func isSecondaryAmideH(mol godg.Mol, aidH, aidN int) bool {
	return mol.AtomicNumber(aidH) == 1 && mol.AtomicNumber(aidN) == 7 &&
		mol.Degree(aidN) == 3 && mol.TotalNumHs(aidN) == 1
}

// setChain14Bounds handles 1-4 paths whose middle bond is not in a ring.
func setChain14Bounds(mol godg.Mol, bid1, bid2, bid3 int, cd *computedData, mm *godg.BoundsMat, forceTransAmides bool) error {
	g, err := cd.path14Geom(mol, bid1, bid2, bid3)
	if err != nil {
		return err
	}
	atm1, atm4 := g.aid1, g.aid4

	cis := func() float64 { return compute14DistCis(g.bl1, g.bl2, g.bl3, g.ba12, g.ba23) }
	trans := func() float64 { return compute14DistTrans(g.bl1, g.bl2, g.bl3, g.ba12, g.ba23) }

	var dl, du float64
	tag := pathOther
	switch mol.BondType(bid2) {
	case godg.BondDouble:
		if mol.BondType(bid1) == godg.BondDouble || mol.BondType(bid3) == godg.BondDouble {
			// cumulated double bonds, CC=C=C: torsion is zero
			dl = cis() - genDistTol
			du = dl + 2*genDistTol
			tag = pathCis
			cd.addCisPath(bid1, bid2, bid3)
		} else if mol.BondStereo(bid2) > godg.StereoAny {
			stype := effectiveBondStereo(mol, bid2, g.aid1, g.aid4)
			if stype == godg.StereoZ || stype == godg.StereoCis {
				dl = cis() - genDistTol
				du = dl + 2*genDistTol
				tag = pathCis
				cd.addCisPath(bid1, bid2, bid3)
			} else {
				du = trans()
				dl = du - genDistTol
				du += genDistTol
				tag = pathTrans
				cd.addTransPath(bid1, bid2, bid3)
			}
		} else {
			// double bond with no stereo setting can be 0 or 180
			dl = cis()
			du = trans()
		}
	case godg.BondSingle:
		if mol.AtomicNumber(g.atm2) == 16 && mol.AtomicNumber(g.atm3) == 16 {
			// disulfide: the torsion angle sits at 90 degrees
			dl = compute14Dist3D(g.bl1, g.bl2, g.bl3, g.ba12, g.ba23, math.Pi/2) - genDistTol
			du = dl + 2*genDistTol
		} else if checkAmideEster14(mol, bid1, bid3, g.atm2, g.atm3, atm4) ||
			checkAmideEster14(mol, bid3, bid1, g.atm3, g.atm2, atm1) {
			// amide/ester 1-4 contact between atoms 1 and 4 of the fragment
			if forceTransAmides {
				if isSecondaryAmideH(mol, atm1, g.atm2) || isSecondaryAmideH(mol, atm4, g.atm3) {
					// the N-H hydrogen sits trans to the carbonyl O
					dl = trans()
					tag = pathTrans
					cd.addTransPath(bid1, bid2, bid3)
				} else {
					dl = cis()
					tag = pathCis
					cd.addCisPath(bid1, bid2, bid3)
				}
				du = dl + genDistTol
				dl -= genDistTol
			} else {
				// let the distance roam from cis to trans and leave
				// planarization to the force field
				dl = cis()
				du = trans()
			}
		} else if checkAmideEster15(mol, bid1, bid3, g.atm2, g.atm3) ||
			checkAmideEster15(mol, bid3, bid1, g.atm3, g.atm2) {
			// the 1-5 partner of the amide/ester fragment: the 1-4 contact
			// through the hetero side
			if forceTransAmides {
				if isSecondaryAmideH(mol, atm1, g.atm2) || isSecondaryAmideH(mol, atm4, g.atm3) {
					// the N-H hydrogen is cis to atom 5
					dl = cis()
					tag = pathCis
					cd.addCisPath(bid1, bid2, bid3)
				} else {
					dl = trans()
					tag = pathTrans
					cd.addTransPath(bid1, bid2, bid3)
				}
				du = dl + genDistTol
				dl -= genDistTol
			} else {
				dl = cis()
				du = trans()
			}
		} else {
			dl = cis()
			du = trans()
		}
	default:
		dl = cis()
		du = trans()
	}

	if math.Abs(du-dl) < dist12Delta {
		dl -= genDistTol
		du += genDistTol
	}
	if err := checkAndSetBounds(g.aid1, g.aid4, dl, du, mm); err != nil {
		return err
	}
	cd.paths14 = append(cd.paths14, path14{bid1, bid2, bid3, tag})
	return nil
}

// record14Path stores a 1-4 path without writing bounds: inside rings of five
// bonds or fewer the 1-3 ring bounds already pin the pair, but the 1-5 pass
// still needs the path and its planarity.
func record14Path(mol godg.Mol, bid1, bid2, bid3 int, cd *computedData) error {
	g, err := cd.path14Geom(mol, bid1, bid2, bid3)
	if err != nil {
		return err
	}
	tag := pathOther
	if mol.Hybridization(g.atm2) == godg.HybridSP2 && mol.Hybridization(g.atm3) == godg.HybridSP2 {
		tag = pathCis
		cd.addCisPath(bid1, bid2, bid3)
	}
	cd.paths14 = append(cd.paths14, path14{bid1, bid2, bid3, tag})
	return nil
}

// checkMacrocycleAllInSameRingAmideEster14 is the amide/ester match used when
// all three bonds lie in a macrocycle ring. Unlike checkAmideEster14 it does
// not require a hydrogen on the nitrogen, so methylated amides match too.
func checkMacrocycleAllInSameRingAmideEster14(mol godg.Mol, atm1, atm2, atm3, atm4 int) bool {
	if mol.AtomicNumber(atm3) != 6 {
		return false
	}
	z2 := mol.AtomicNumber(atm2)
	if z2 != 7 && z2 != 8 {
		return false
	}
	if mol.Degree(atm2) != 3 || mol.Degree(atm3) != 3 {
		return false
	}
	for _, bid := range mol.AtomBonds(atm2) {
		nbr := mol.OtherBondAtom(bid, atm2)
		if nbr != atm1 && nbr != atm3 {
			z := mol.AtomicNumber(nbr)
			if (z != 6 && z != 1) || mol.BondType(bid) != godg.BondSingle {
				return false
			}
			break
		}
	}
	for _, bid := range mol.AtomBonds(atm3) {
		nbr := mol.OtherBondAtom(bid, atm3)
		if nbr != atm2 && nbr != atm4 {
			if mol.AtomicNumber(nbr) != 8 || mol.BondType(bid) != godg.BondDouble {
				return false
			}
			break
		}
	}
	return true
}

// checkMacrocycleTwoInSameRingAmideEster14 relaxes checkAmideEster14 for the
// macrocycle two-in-same-ring dispatch: no H-count constraint on the
// nitrogen, but atom 1 must be a heavy atom.
func checkMacrocycleTwoInSameRingAmideEster14(mol godg.Mol, bid1, bid3, atm1, atm2, atm3, atm4 int) bool {
	z2 := mol.AtomicNumber(atm2)
	return mol.AtomicNumber(atm1) != 1 &&
		mol.AtomicNumber(atm3) == 6 &&
		mol.BondType(bid3) == godg.BondDouble &&
		(mol.AtomicNumber(atm4) == 8 || mol.AtomicNumber(atm4) == 7) &&
		mol.BondType(bid1) == godg.BondSingle &&
		(z2 == 8 || z2 == 7)
}

// setMacrocycleTwoInSameRing14Bounds treats the extended amide pattern as cis
// when the middle bond belongs to a macrocycle.
func setMacrocycleTwoInSameRing14Bounds(mol godg.Mol, bid1, bid2, bid3 int, cd *computedData, mm *godg.BoundsMat, dmat []float64) error {
	g, err := cd.path14Geom(mol, bid1, bid2, bid3)
	if err != nil {
		return err
	}
	if !is14Contact(mol, dmat, g.aid1, g.aid4) {
		return nil
	}
	if _, ok := mol.BondBetween(g.aid1, g.atm3); ok {
		return nil
	}
	if _, ok := mol.BondBetween(g.aid4, g.atm2); ok {
		return nil
	}

	var dl, du float64
	tag := pathOther
	if checkMacrocycleTwoInSameRingAmideEster14(mol, bid1, bid3, g.aid1, g.atm2, g.atm3, g.aid4) ||
		checkMacrocycleTwoInSameRingAmideEster14(mol, bid3, bid1, g.aid4, g.atm3, g.atm2, g.aid1) {
		dl = compute14DistCis(g.bl1, g.bl2, g.bl3, g.ba12, g.ba23)
		tag = pathCis
		cd.addCisPath(bid1, bid2, bid3)
		du = dl + genDistTol
		dl -= genDistTol
	} else {
		dl = compute14DistCis(g.bl1, g.bl2, g.bl3, g.ba12, g.ba23)
		du = compute14DistTrans(g.bl1, g.bl2, g.bl3, g.ba12, g.ba23)
		if du < dl {
			dl, du = du, dl
		}
		if math.Abs(du-dl) < dist12Delta {
			dl -= genDistTol
			du += genDistTol
		}
	}
	if err := checkAndSetBounds(g.aid1, g.aid4, dl, du, mm); err != nil {
		return err
	}
	cd.paths14 = append(cd.paths14, path14{bid1, bid2, bid3, tag})
	return nil
}

// setMacrocycleAllInSameRing14Bounds is the chain policy adapted for paths
// whose three bonds all belong to a macrocycle: amides force trans with extra
// slack so the ring can close.
func setMacrocycleAllInSameRing14Bounds(mol godg.Mol, bid1, bid2, bid3 int, cd *computedData, mm *godg.BoundsMat, force15Trans bool) error {
	g, err := cd.path14Geom(mol, bid1, bid2, bid3)
	if err != nil {
		return err
	}
	atm1, atm4 := g.aid1, g.aid4

	cis := func() float64 { return compute14DistCis(g.bl1, g.bl2, g.bl3, g.ba12, g.ba23) }
	trans := func() float64 { return compute14DistTrans(g.bl1, g.bl2, g.bl3, g.ba12, g.ba23) }

	setTheBound := true
	var dl, du float64
	tag := pathOther
	switch mol.BondType(bid2) {
	case godg.BondDouble:
		if mol.BondType(bid1) == godg.BondDouble || mol.BondType(bid3) == godg.BondDouble {
			dl = cis() - genDistTol
			du = dl + 2*genDistTol
			tag = pathCis
			cd.addCisPath(bid1, bid2, bid3)
		} else if mol.BondStereo(bid2) > godg.StereoAny {
			stype := effectiveBondStereo(mol, bid2, g.aid1, g.aid4)
			if stype == godg.StereoZ || stype == godg.StereoCis {
				dl = cis() - genDistTol
				du = dl + 2*genDistTol
				tag = pathCis
				cd.addCisPath(bid1, bid2, bid3)
			} else {
				du = trans()
				dl = du - genDistTol
				du += genDistTol
				tag = pathTrans
				cd.addTransPath(bid1, bid2, bid3)
			}
		} else {
			dl = cis()
			du = trans()
		}
	case godg.BondSingle:
		if mol.AtomicNumber(g.atm2) == 16 && mol.AtomicNumber(g.atm3) == 16 {
			dl = compute14Dist3D(g.bl1, g.bl2, g.bl3, g.ba12, g.ba23, math.Pi/2) - genDistTol
			du = dl + 2*genDistTol
		} else if checkMacrocycleAllInSameRingAmideEster14(mol, atm1, g.atm2, g.atm3, atm4) ||
			checkMacrocycleAllInSameRingAmideEster14(mol, atm4, g.atm3, g.atm2, atm1) {
			// trans, with slack beyond the planar maximum so triangle
			// smoothing keeps a feasible window
			dl = trans() + 0.1
			tag = pathTrans
			cd.addTransPath(bid1, bid2, bid3)
			du = dl + genDistTol
			dl -= genDistTol
		} else if checkAmideEster15(mol, bid1, bid3, g.atm2, g.atm3) ||
			checkAmideEster15(mol, bid3, bid1, g.atm3, g.atm2) {
			if force15Trans {
				// amide is trans, we're cis
				dl = cis()
				tag = pathCis
				cd.addCisPath(bid1, bid2, bid3)
			} else {
				// amide is cis, we're trans
				if mol.AtomicNumber(g.atm2) == 7 && mol.Degree(g.atm2) == 3 &&
					mol.AtomicNumber(atm1) == 1 && mol.TotalNumHs(g.atm2) == 1 {
					// secondary amide, this is the H
					setTheBound = false
				} else {
					dl = trans()
					tag = pathTrans
					cd.addTransPath(bid1, bid2, bid3)
				}
			}
			du = dl + genDistTol
			dl -= genDistTol
		} else {
			dl = cis()
			du = trans()
		}
	default:
		dl = cis()
		du = trans()
	}

	if setTheBound {
		if math.Abs(du-dl) < dist12Delta {
			dl -= genDistTol
			du += genDistTol
		}
		if err := checkAndSetBounds(g.aid1, g.aid4, dl, du, mm); err != nil {
			return err
		}
		cd.paths14 = append(cd.paths14, path14{bid1, bid2, bid3, tag})
	}
	return nil
}

// set14Bounds writes the 1-4 bounds and fills paths14 and the cis/trans path
// sets. Ring bond triples go first; the remaining paths dispatch on how their
// bonds sit relative to the ring system.
func set14Bounds(mol godg.Mol, mm *godg.BoundsMat, cd *computedData, dmat []float64, opts godg.TopolOpts) error {
	if mm.Len() != mol.NumAtoms() {
		return errors.Wrap(godg.ErrMatrixSize, "set14")
	}
	if mol.NumBonds() >= maxNumBonds {
		return godg.ErrTooManyBonds
	}
	rinfo := mol.Rings()
	if !rinfo.IsInitialized() {
		return godg.ErrMissingRingInfo
	}

	nb := uint64(mol.NumBonds())
	ringBondPairs := make(map[uint64]struct{})
	donePaths := make(map[uint64]struct{})
	bidIsMacrocycle := make(map[int]struct{})

	for _, bring := range rinfo.BondRings() {
		rSize := len(bring)
		if rSize < 3 {
			continue
		}
		bid1 := bring[rSize-1]
		for i := 0; i < rSize; i++ {
			bid2 := bring[i]
			bid3 := bring[(i+1)%rSize]
			ringBondPairs[uint64(bid1)*nb+uint64(bid2)] = struct{}{}
			ringBondPairs[uint64(bid2)*nb+uint64(bid1)] = struct{}{}
			donePaths[cd.pathKey(bid1, bid2, bid3)] = struct{}{}
			donePaths[cd.pathKey(bid3, bid2, bid1)] = struct{}{}

			var err error
			if rSize > 5 {
				if opts.Macrocycle14 && rSize >= minMacrocycleRingSize {
					err = setMacrocycleAllInSameRing14Bounds(mol, bid1, bid2, bid3, cd, mm, opts.Macrocycle15ForceTrans)
					bidIsMacrocycle[bid2] = struct{}{}
				} else {
					err = setInRing14Bounds(mol, bid1, bid2, bid3, cd, mm, dmat, rSize)
				}
			} else {
				err = record14Path(mol, bid1, bid2, bid3, cd)
			}
			if err != nil {
				return err
			}
			bid1 = bid2
		}
	}

	for bid2 := 0; bid2 < mol.NumBonds(); bid2++ {
		aid2, aid3 := mol.BondEnds(bid2)
		for _, bid1 := range mol.AtomBonds(aid2) {
			if bid1 == bid2 {
				continue
			}
			for _, bid3 := range mol.AtomBonds(aid3) {
				if bid3 == bid2 {
					continue
				}
				if _, done := donePaths[cd.pathKey(bid1, bid2, bid3)]; done {
					continue
				}
				if _, done := donePaths[cd.pathKey(bid3, bid2, bid1)]; done {
					continue
				}

				_, rp1 := ringBondPairs[uint64(bid1)*nb+uint64(bid2)]
				_, rp2 := ringBondPairs[uint64(bid2)*nb+uint64(bid1)]
				_, rp3 := ringBondPairs[uint64(bid2)*nb+uint64(bid3)]
				_, rp4 := ringBondPairs[uint64(bid3)*nb+uint64(bid2)]

				var err error
				switch {
				case rp1 || rp2 || rp3 || rp4:
					// two adjacent bonds of the path share a ring (all three
					// cannot: those paths were handled above)
					if _, mc := bidIsMacrocycle[bid2]; opts.Macrocycle14 && mc {
						err = setMacrocycleTwoInSameRing14Bounds(mol, bid1, bid2, bid3, cd, mm, dmat)
					} else {
						err = setTwoInSameRing14Bounds(mol, bid1, bid2, bid3, cd, mm, dmat)
					}
				case (rinfo.NumBondRings(bid1) > 0 && rinfo.NumBondRings(bid2) > 0) ||
					(rinfo.NumBondRings(bid2) > 0 && rinfo.NumBondRings(bid3) > 0):
					// adjacent ring bonds from different rings of a fused system
					err = setTwoInDiffRing14Bounds(mol, bid1, bid2, bid3, cd, mm, dmat)
				case rinfo.NumBondRings(bid2) > 0:
					// only the middle bond is a ring bond
					err = setShareRingBond14Bounds(mol, bid1, bid2, bid3, cd, mm, dmat)
				default:
					err = setChain14Bounds(mol, bid1, bid2, bid3, cd, mm, opts.ForceTransAmides)
				}
				if err != nil {
					return err
				}
			}
		}
	}
	return nil
}
