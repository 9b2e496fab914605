package libdg

import (
	"github.com/distgeom-systems/godg/godg"
)

// setLowerBoundVDW floors every still-unset lower bound with the sum of the
// pair's van der Waals radii. With topological scaling on, atoms four bonds
// apart may come as close as 0.7 of the sum and atoms five bonds apart 0.85,
// since intervening geometry can pull them together.
func setLowerBoundVDW(mol godg.Mol, mm *godg.BoundsMat, useTopolScaling bool, dmat []float64) {
	npt := mm.Len()
	for i := 1; i < npt; i++ {
		vw1 := Rvdw(mol.AtomicNumber(i))
		for j := 0; j < i; j++ {
			if mm.Lower(i, j) >= dist12Delta {
				continue
			}
			vw2 := Rvdw(mol.AtomicNumber(j))
			d := dmat[i*npt+j]
			switch {
			case useTopolScaling && d == 4.0:
				mm.SetLower(i, j, vdwScale15*(vw1+vw2))
			case useTopolScaling && d == 5.0:
				mm.SetLower(i, j, (vdwScale15+0.5*(1.0-vdwScale15))*(vw1+vw2))
			default:
				mm.SetLower(i, j, vw1+vw2)
			}
		}
	}
}
