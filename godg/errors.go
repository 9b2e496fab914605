package godg

import "errors"

// Errors
var (
	ErrNoAtoms          = errors.New("molecule has no atoms")
	ErrTooManyBonds     = errors.New("too many bonds in the molecule, cannot compute 1-4 bounds")
	ErrMissingRingInfo  = errors.New("ring perception is not initialized")
	ErrBoundsInversion  = errors.New("upper bound not greater than lower bound")
	ErrBadLowerBound    = errors.New("bad lower bound")
	ErrMatrixSize       = errors.New("wrong size bounds matrix")
	ErrBadBondAngle     = errors.New("bond angle not assigned")
	ErrBadSmiles        = errors.New("bad smiles input")
	ErrBadCatalogParam  = errors.New("bad catalog param")
	ErrUnmarshal        = errors.New("unmarshal failed")
	ErrNilMol           = errors.New("nil molecule")
	ErrMissingAtomParam = errors.New("missing atom parameters")
)
