package libdg

import (
	"github.com/distgeom-systems/godg/godg"
	"github.com/pkg/errors"
)

// Empirical tolerances of the bounds pipeline (Angstroms).
const (
	dist12Delta = 0.01 // bond length tolerance; also the "unset lower" threshold
	dist13Tol   = 0.04 // 1-3 distance tolerance
	genDistTol  = 0.06 // general 1-4 distance tolerance
	dist15Tol   = 0.08 // 1-5 distance tolerance
	vdwScale15  = 0.7  // van der Waals scaling for 1-5 contacts
	maxUpper    = godg.MaxUpper

	minMacrocycleRingSize = 9
)

// InitBoundsMat fills mm with the working defaults: lower bounds to
// defaultMin and upper bounds to defaultMax.
func InitBoundsMat(mm *godg.BoundsMat, defaultMin, defaultMax float64) {
	mm.Init(defaultMin, defaultMax)
}

// checkAndSetBounds is the write path for the 1-3, 1-4, and 1-5 passes; the
// 1-2 pass and the van der Waals floor assign their entries directly. The
// first write installs the pair's bounds; every later write can only tighten:
// the lower bound never decreases and the upper bound never increases.
func checkAndSetBounds(i, j int, lb, ub float64, mm *godg.BoundsMat) error {
	clb := mm.Lower(i, j)
	cub := mm.Upper(i, j)

	if ub <= lb {
		return errors.Wrapf(godg.ErrBoundsInversion, "pair (%d,%d): lb=%g ub=%g", i, j, lb, ub)
	}
	if lb <= dist12Delta && clb <= dist12Delta {
		return errors.Wrapf(godg.ErrBadLowerBound, "pair (%d,%d): lb=%g", i, j, lb)
	}

	if clb <= dist12Delta {
		mm.SetLower(i, j, lb)
	} else if lb > clb && lb > dist12Delta {
		mm.SetLower(i, j, lb)
	}

	if cub >= maxUpper {
		mm.SetUpper(i, j, ub)
	} else if ub < cub && ub < maxUpper {
		mm.SetUpper(i, j, ub)
	}
	return nil
}
