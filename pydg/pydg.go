// Package pydg exposes the bounds engine to gpython scripts: parse SMILES,
// compute topological bounds, read them back, and catalog them.
//
// Import for side effects and run scripts through gpython:
//
//	import _pydg
//	mol = _pydg.ParseSmiles("O=C(N)C")
//	mm = mol.SetTopolBounds()
//	print(mm.Lower(0, 3), mm.Upper(0, 3))
package pydg

import (
	"strings"

	"github.com/go-python/gpython/py"

	"github.com/distgeom-systems/godg/godg"
	"github.com/distgeom-systems/godg/libdg"
	"github.com/distgeom-systems/godg/libdg/catalog"
	"github.com/distgeom-systems/godg/libdg/smiles"
)

var LIB_VERSION = "v1.2026.1"

var (
	pyMolType     = py.NewType("Mol", "a molecular graph")
	pyBoundsType  = py.NewType("BoundsMat", "a symmetric pair-distance bounds matrix")
	pyCatalogType = py.NewType("Catalog", "a catalog of computed bounds matrices")
)

// SetTopolBounds flag bits
const (
	MACROCYCLE14          = 0x01
	NO_SET15              = 0x02
	NO_SCALE_VDW          = 0x04
	NO_FORCE_TRANS_AMIDES = 0x08

	READ_ONLY = 0x01
)

type pyMol struct {
	*libdg.Mol
}

func (mol pyMol) Type() *py.Type {
	return pyMolType
}

func (mol pyMol) M__str__() (py.Object, error) {
	writer := strings.Builder{}
	mol.WriteAsString(&writer)
	return py.String(writer.String()), nil
}

func (mol pyMol) M__repr__() (py.Object, error) {
	return mol.M__str__()
}

type pyBounds struct {
	*godg.BoundsMat
}

func (mm pyBounds) Type() *py.Type {
	return pyBoundsType
}

type pyCatalog struct {
	catalog.Catalog
}

func (cat pyCatalog) Type() *py.Type {
	return pyCatalogType
}

func py_ParseSmiles(module py.Object, args py.Tuple) (py.Object, error) {
	var smi string
	err := py.LoadTuple(args, []interface{}{&smi})
	if err != nil {
		return nil, err
	}
	mol, err := smiles.Parse(smi)
	if err != nil {
		return nil, py.ExceptionNewf(py.ValueError, "%v", err)
	}
	return py.Object(pyMol{mol}), nil
}

func py_Mol_NumAtoms(self py.Object, args py.Tuple) (py.Object, error) {
	mol := self.(pyMol)
	return py.Int(mol.NumAtoms()), nil
}

func py_Mol_NumBonds(self py.Object, args py.Tuple) (py.Object, error) {
	mol := self.(pyMol)
	return py.Int(mol.NumBonds()), nil
}

func py_Mol_SetTopolBounds(self py.Object, args py.Tuple) (py.Object, error) {
	mol := self.(pyMol)

	flags := 0
	if len(args) > 0 {
		v, err := py.GetInt(args[0])
		if err != nil {
			return nil, err
		}
		flags = int(v)
	}
	opts := godg.DefaultTopolOpts
	opts.Macrocycle14 = flags&MACROCYCLE14 != 0
	opts.Set15 = flags&NO_SET15 == 0
	opts.ScaleVdw = flags&NO_SCALE_VDW == 0
	opts.ForceTransAmides = flags&NO_FORCE_TRANS_AMIDES == 0

	mm := godg.NewBoundsMat(mol.NumAtoms())
	mm.Init(0, godg.MaxUpper)
	if err := libdg.SetTopolBounds(mol.Mol, mm, opts); err != nil {
		return nil, py.ExceptionNewf(py.RuntimeError, "%v", err)
	}
	return py.Object(pyBounds{mm}), nil
}

func py_Bounds_NumRows(self py.Object, args py.Tuple) (py.Object, error) {
	mm := self.(pyBounds)
	return py.Int(mm.Len()), nil
}

func boundsPair(args py.Tuple) (i, j int, err error) {
	var pi, pj py.Object
	if err = py.ParseTuple(args, "ii", &pi, &pj); err != nil {
		return
	}
	return int(pi.(py.Int)), int(pj.(py.Int)), nil
}

func py_Bounds_Lower(self py.Object, args py.Tuple) (py.Object, error) {
	mm := self.(pyBounds)
	i, j, err := boundsPair(args)
	if err != nil {
		return nil, err
	}
	return py.Float(mm.Lower(i, j)), nil
}

func py_Bounds_Upper(self py.Object, args py.Tuple) (py.Object, error) {
	mm := self.(pyBounds)
	i, j, err := boundsPair(args)
	if err != nil {
		return nil, err
	}
	return py.Float(mm.Upper(i, j)), nil
}

func py_OpenCatalog(module py.Object, args py.Tuple) (py.Object, error) {
	var pathname string
	var flags int32
	err := py.LoadTuple(args, []interface{}{&pathname, &flags})
	if err != nil {
		return nil, err
	}
	cat, err := catalog.OpenCatalog(catalog.Opts{
		DbPathName: pathname,
		ReadOnly:   flags&READ_ONLY != 0,
	})
	if err != nil {
		return nil, py.ExceptionNewf(py.RuntimeError, "%v", err)
	}
	return py.Object(pyCatalog{cat}), nil
}

func py_Catalog_TryAdd(self py.Object, args py.Tuple) (py.Object, error) {
	cat := self.(pyCatalog)
	if len(args) < 2 {
		return nil, py.ExceptionNewf(py.TypeError, "TryAdd expects (mol, bounds)")
	}
	mol, ok1 := args[0].(pyMol)
	mm, ok2 := args[1].(pyBounds)
	if !ok1 || !ok2 {
		return nil, py.ExceptionNewf(py.TypeError, "TryAdd expects (Mol, BoundsMat)")
	}
	if cat.TryAdd(mol.Mol, mm.BoundsMat) {
		return py.True, nil
	}
	return py.False, nil
}

func py_Catalog_Lookup(self py.Object, args py.Tuple) (py.Object, error) {
	cat := self.(pyCatalog)
	if len(args) < 1 {
		return nil, py.ExceptionNewf(py.TypeError, "Lookup expects (mol)")
	}
	mol, ok := args[0].(pyMol)
	if !ok {
		return nil, py.ExceptionNewf(py.TypeError, "Lookup expects (Mol)")
	}
	mm, found := cat.Lookup(mol.Mol)
	if !found {
		return py.None, nil
	}
	return py.Object(pyBounds{mm}), nil
}

func py_Catalog_NumMols(self py.Object, args py.Tuple) (py.Object, error) {
	cat := self.(pyCatalog)
	return py.Int(cat.NumMols()), nil
}

func py_Catalog_Close(self py.Object, args py.Tuple) (py.Object, error) {
	cat := self.(pyCatalog)
	if cat.Catalog != nil {
		cat.Catalog.Close()
	}
	return py.None, nil
}

func init() {

	/////////////////////////////////
	// Mol
	{
		pyMolType.Dict["NumAtoms"] = py.MustNewMethod("NumAtoms", py_Mol_NumAtoms, 0, "")
		pyMolType.Dict["NumBonds"] = py.MustNewMethod("NumBonds", py_Mol_NumBonds, 0, "")
		pyMolType.Dict["SetTopolBounds"] = py.MustNewMethod("SetTopolBounds", py_Mol_SetTopolBounds, 0,
			"computes this Mol's topological distance bounds matrix")
	}

	/////////////////////////////////
	// BoundsMat
	{
		pyBoundsType.Dict["NumRows"] = py.MustNewMethod("NumRows", py_Bounds_NumRows, 0, "")
		pyBoundsType.Dict["Lower"] = py.MustNewMethod("Lower", py_Bounds_Lower, 0, "")
		pyBoundsType.Dict["Upper"] = py.MustNewMethod("Upper", py_Bounds_Upper, 0, "")
	}

	/////////////////////////////////
	// Catalog
	{
		pyCatalogType.Dict["TryAdd"] = py.MustNewMethod("TryAdd", py_Catalog_TryAdd, 0, "")
		pyCatalogType.Dict["Lookup"] = py.MustNewMethod("Lookup", py_Catalog_Lookup, 0, "")
		pyCatalogType.Dict["NumMols"] = py.MustNewMethod("NumMols", py_Catalog_NumMols, 0, "")
		pyCatalogType.Dict["Close"] = py.MustNewMethod("Close", py_Catalog_Close, 0, "")
	}

	{
		methods := []*py.Method{
			py.MustNewMethod("ParseSmiles", py_ParseSmiles, 0, ""),
			py.MustNewMethod("OpenCatalog", py_OpenCatalog, 0, ""),
		}
		globals := py.StringDict{
			"LIB_VERSION":           py.String(LIB_VERSION),
			"MACROCYCLE14":          py.Int(MACROCYCLE14),
			"NO_SET15":              py.Int(NO_SET15),
			"NO_SCALE_VDW":          py.Int(NO_SCALE_VDW),
			"NO_FORCE_TRANS_AMIDES": py.Int(NO_FORCE_TRANS_AMIDES),
			"READ_ONLY":             py.Int(READ_ONLY),
		}

		py.RegisterModule(&py.ModuleImpl{
			Info: py.ModuleInfo{
				Name: "_pydg",
				Doc:  "distance-geometry bounds gpython module",
			},
			Methods: methods,
			Globals: globals,
		})
	}
}
