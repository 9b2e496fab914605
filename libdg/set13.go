package libdg

import (
	"math"
	"sort"

	"github.com/distgeom-systems/godg/godg"
	"github.com/pkg/errors"
)

// isLargerSP2Atom flags sp2 ring atoms outside the first row of the periodic
// table; 1-3 tolerances double for each one in the triple.
func isLargerSP2Atom(mol godg.Mol, aid int) bool {
	return mol.AtomicNumber(aid) > 13 &&
		mol.Hybridization(aid) == godg.HybridSP2 &&
		mol.Rings().NumAtomRings(aid) > 0
}

// set13BoundsHelper writes the 1-3 bounds for the path aid1-aid2-aid3 given
// the angle at aid2, using the law of cosines over the recorded bond lengths.
func set13BoundsHelper(mol godg.Mol, aid1, aid2, aid3 int, angle float64, cd *computedData, mm *godg.BoundsMat) error {
	bid1, ok1 := mol.BondBetween(aid1, aid2)
	bid2, ok2 := mol.BondBetween(aid2, aid3)
	if !ok1 || !ok2 {
		return errors.Wrapf(godg.ErrBadBondAngle, "no bond on 1-3 path %d-%d-%d", aid1, aid2, aid3)
	}
	dl := compute13Dist(cd.bondLengths[bid1], cd.bondLengths[bid2], angle)
	distTol := dist13Tol
	if isLargerSP2Atom(mol, aid1) {
		distTol *= 2
	}
	if isLargerSP2Atom(mol, aid2) {
		distTol *= 2
	}
	if isLargerSP2Atom(mol, aid3) {
		distTol *= 2
	}
	du := dl + distTol
	dl -= distTol
	return checkAndSetBounds(aid1, aid3, dl, du, mm)
}

// ringAngle returns the assumed interior angle at a ring atom from its
// hybridization and the ring size. All angles in one ring are assumed equal,
// which is not exact for heteroaromatics but is what the downstream smoothing
// tolerates.
func ringAngle(ahyb godg.Hybridization, ringSize int) float64 {
	switch {
	case (ahyb == godg.HybridSP2 && ringSize <= 8) || ringSize == 3 || ringSize == 4:
		return math.Pi * (1 - 2.0/float64(ringSize))
	case ahyb == godg.HybridSP3:
		if ringSize == 5 {
			return 104 * math.Pi / 180
		}
		return 109.5 * math.Pi / 180
	case ahyb == godg.HybridSP3D:
		return 105 * math.Pi / 180
	case ahyb == godg.HybridSP3D2:
		return 90 * math.Pi / 180
	}
	return 120 * math.Pi / 180
}

// set13Bounds writes the 1-3 bounds and fills bondAngles and bondAdj.
//
// Ring interiors go first, smallest rings first, tracking the ring atoms
// already used as angle centers. Bridged atoms shared by several ring walks
// are visited once per distinct bond pair, not once per ring. Then leftover
// angles at visited (ring) centers, then plain non-ring centers.
func set13Bounds(mol godg.Mol, mm *godg.BoundsMat, cd *computedData) error {
	npt := mm.Len()
	if npt != mol.NumAtoms() {
		return errors.Wrap(godg.ErrMatrixSize, "set13")
	}
	rinfo := mol.Rings()
	if !rinfo.IsInitialized() {
		return godg.ErrMissingRingInfo
	}

	nb := mol.NumBonds()
	visited := make([]int, npt)
	angleTaken := make([]float64, npt)
	donePaths := make([]bool, nb*nb)

	atomRings := append([][]int(nil), rinfo.AtomRings()...)
	sort.SliceStable(atomRings, func(i, j int) bool {
		return len(atomRings[i]) < len(atomRings[j])
	})

	for _, ring := range atomRings {
		rSize := len(ring)
		aid1 := ring[rSize-1]
		for i := 0; i < rSize; i++ {
			aid2 := ring[i]
			aid3 := ring[(i+1)%rSize]
			bid1, ok1 := mol.BondBetween(aid1, aid2)
			bid2, ok2 := mol.BondBetween(aid2, aid3)
			if !ok1 || !ok2 {
				return errors.Wrapf(godg.ErrMissingRingInfo, "broken ring walk at atom %d", aid2)
			}
			if !donePaths[nb*bid1+bid2] && !donePaths[nb*bid2+bid1] {
				angle := ringAngle(mol.Hybridization(aid2), rSize)
				if err := set13BoundsHelper(mol, aid1, aid2, aid3, angle, cd, mm); err != nil {
					return err
				}
				cd.setBondAngle(bid1, bid2, angle)
				cd.setSharedAtom(bid1, bid2, aid2)
				visited[aid2]++
				angleTaken[aid2] += angle
				donePaths[nb*bid1+bid2] = true
				donePaths[nb*bid2+bid1] = true
			}
			aid1 = aid2
		}
	}

	for aid2 := 0; aid2 < npt; aid2++ {
		deg := mol.Degree(aid2)
		n13 := deg * (deg - 1) / 2
		if n13 == visited[aid2] {
			continue
		}
		ahyb := mol.Hybridization(aid2)
		abonds := mol.AtomBonds(aid2)

		if visited[aid2] >= 1 {
			// ring centers with leftover angles: non-ring substituents around
			// a ring atom, or ring atoms of different rings in a fused system
			for i1, bid1 := range abonds {
				aid1 := mol.OtherBondAtom(bid1, aid2)
				for i2 := 0; i2 < i1; i2++ {
					bid2 := abonds[i2]
					aid3 := mol.OtherBondAtom(bid2, aid2)
					if cd.bondAngle(bid1, bid2) >= 0 {
						continue
					}
					var angle float64
					switch {
					case ahyb == godg.HybridSP2:
						// planar center: divide what remains of the full turn
						// among the unassigned angles (normally just one)
						angle = (2*math.Pi - angleTaken[aid2]) / float64(n13-visited[aid2])
					case ahyb == godg.HybridSP3:
						angle = 109.5 * math.Pi / 180
						if rinfo.IsAtomInRingOfSize(aid2, 3) {
							angle = 116.0 * math.Pi / 180
						} else if rinfo.IsAtomInRingOfSize(aid2, 4) {
							angle = 112.0 * math.Pi / 180
						}
					case mol.ChiralTag(aid2).NonTetrahedral():
						angle = mol.IdealAngleBetweenLigands(aid2, aid1, aid3) * math.Pi / 180
					default:
						switch deg {
						case 5:
							angle = 105.0 * math.Pi / 180
						case 6:
							angle = 135.0 * math.Pi / 180
						default:
							angle = 120.0 * math.Pi / 180
						}
					}
					if err := set13BoundsHelper(mol, aid1, aid2, aid3, angle, cd, mm); err != nil {
						return err
					}
					cd.setBondAngle(bid1, bid2, angle)
					cd.setSharedAtom(bid1, bid2, aid2)
					angleTaken[aid2] += angle
					visited[aid2]++
				}
			}
		} else {
			// non-ring centers: angles follow hybridization alone
			for i1, bid1 := range abonds {
				aid1 := mol.OtherBondAtom(bid1, aid2)
				for i2 := 0; i2 < i1; i2++ {
					bid2 := abonds[i2]
					aid3 := mol.OtherBondAtom(bid2, aid2)
					var angle float64
					if mol.ChiralTag(aid2).NonTetrahedral() {
						angle = mol.IdealAngleBetweenLigands(aid2, aid1, aid3) * math.Pi / 180
					} else {
						switch ahyb {
						case godg.HybridSP:
							angle = math.Pi
						case godg.HybridSP2:
							angle = 2 * math.Pi / 3
						case godg.HybridSP3:
							angle = 109.5 * math.Pi / 180
						case godg.HybridSP3D:
							angle = 105.0 * math.Pi / 180
						case godg.HybridSP3D2:
							angle = 135.0 * math.Pi / 180
						default:
							angle = 120.0 * math.Pi / 180
						}
					}
					if deg <= 4 ||
						(mol.ChiralTag(aid2).NonTetrahedral() && mol.HasChiralPermutation(aid2)) {
						if err := set13BoundsHelper(mol, aid1, aid2, aid3, angle, cd, mm); err != nil {
							return err
						}
					} else {
						// crowded center, no assigned permutation: crude range
						dmax := cd.bondLengths[bid1] + cd.bondLengths[bid2]
						if err := checkAndSetBounds(aid1, aid3, 1.0, dmax*1.2, mm); err != nil {
							return err
						}
					}
					cd.setBondAngle(bid1, bid2, angle)
					cd.setSharedAtom(bid1, bid2, aid2)
					angleTaken[aid2] += angle
					visited[aid2]++
				}
			}
		}
	}
	return nil
}
