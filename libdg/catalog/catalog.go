// Package catalog persists computed bounds matrices keyed by molecule
// encodings, backed by a badger LSM store (on disk or in memory).
package catalog

import (
	"encoding/binary"
	"runtime"

	"github.com/dgraph-io/badger/v3"
	"github.com/pkg/errors"

	"github.com/distgeom-systems/godg/godg"
	"github.com/distgeom-systems/godg/libdg"
)

var gCatalogStateKey = []byte{0x00, 0x00, 0x01}

const (
	catalogMajorVers = 2026
	catalogMinorVers = 1
)

// Opts specifies params for opening a bounds Catalog.
type Opts struct {
	DbPathName string // omit for an in-memory db
	ReadOnly   bool   // open in read-only mode
}

// Catalog maps molecule encodings to their computed bounds matrices.
type Catalog interface {

	// TryAdd stores the bounds for the given molecule.
	// Returns false (and stores nothing) when the molecule is already present.
	TryAdd(mol *libdg.Mol, mm *godg.BoundsMat) bool

	// Lookup fetches the bounds previously stored for an equivalent molecule.
	Lookup(mol *libdg.Mol) (*godg.BoundsMat, bool)

	// NumMols returns the number of stored molecules.
	NumMols() int64

	IsReadOnly() bool

	Close() error
}

type catalogState struct {
	MajorVers int64
	MinorVers int64
	NumMols   int64
}

func (st *catalogState) Marshal(in []byte) []byte {
	var scrap [binary.MaxVarintLen64]byte
	for _, v := range [...]int64{st.MajorVers, st.MinorVers, st.NumMols} {
		n := binary.PutVarint(scrap[:], v)
		in = append(in, scrap[:n]...)
	}
	return in
}

func (st *catalogState) Unmarshal(in []byte) error {
	for _, dst := range [...]*int64{&st.MajorVers, &st.MinorVers, &st.NumMols} {
		v, n := binary.Varint(in)
		if n <= 0 {
			return godg.ErrUnmarshal
		}
		*dst = v
		in = in[n:]
	}
	return nil
}

type catalog struct {
	readOnly   bool
	state      catalogState
	stateDirty bool
	db         *badger.DB
}

// OpenCatalog opens (or creates) a bounds catalog.
func OpenCatalog(opts Opts) (Catalog, error) {
	cat := &catalog{
		readOnly: opts.ReadOnly,
	}

	dbOpts := badger.DefaultOptions(opts.DbPathName)
	dbOpts.ReadOnly = opts.ReadOnly
	dbOpts.DetectConflicts = false
	dbOpts.Logger = nil
	dbOpts.MetricsEnabled = false

	// Badger for windows currently does not support read-only mode
	if runtime.GOOS == "windows" {
		dbOpts.ReadOnly = false
	}

	if len(opts.DbPathName) == 0 {
		if opts.ReadOnly {
			return nil, errors.Wrap(godg.ErrBadCatalogParam, "DbPathName must be specified for read-only catalog")
		}
		dbOpts.InMemory = true
	}

	var err error
	cat.db, err = badger.Open(dbOpts)
	if err != nil {
		return nil, err
	}

	err = cat.loadState()
	if err == badger.ErrKeyNotFound {
		err = nil
		cat.stateDirty = true
		cat.state.MajorVers = catalogMajorVers
		cat.state.MinorVers = catalogMinorVers
	}
	if err == nil &&
		(cat.state.MajorVers != catalogMajorVers || cat.state.MinorVers != catalogMinorVers) {
		err = errors.New("catalog version is incompatible")
	}
	if err != nil {
		cat.db.Close()
		return nil, err
	}
	return cat, nil
}

func (cat *catalog) loadState() error {
	return cat.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(gCatalogStateKey)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return cat.state.Unmarshal(val)
		})
	})
}

func (cat *catalog) flushState() {
	if !cat.stateDirty || cat.readOnly {
		return
	}
	err := cat.db.Update(func(txn *badger.Txn) error {
		return txn.Set(gCatalogStateKey, cat.state.Marshal(nil))
	})
	if err != nil {
		panic(err)
	}
	cat.stateDirty = false
}

func (cat *catalog) TryAdd(mol *libdg.Mol, mm *godg.BoundsMat) bool {
	if cat.readOnly {
		return false
	}
	key := molKey(mol)
	added := false
	err := cat.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get(key)
		if err == nil {
			return nil
		}
		if err != badger.ErrKeyNotFound {
			return err
		}
		added = true
		return txn.Set(key, mm.AppendEncodingTo(nil))
	})
	if err != nil {
		panic(err)
	}
	if added {
		cat.state.NumMols++
		cat.stateDirty = true
	}
	return added
}

func (cat *catalog) Lookup(mol *libdg.Mol) (*godg.BoundsMat, bool) {
	var mm *godg.BoundsMat
	err := cat.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(molKey(mol))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			out := godg.NewBoundsMat(0)
			if err := out.InitFromEncoding(val); err != nil {
				return err
			}
			mm = out
			return nil
		})
	})
	if err != nil {
		return nil, false
	}
	return mm, true
}

func (cat *catalog) NumMols() int64 {
	return cat.state.NumMols
}

func (cat *catalog) IsReadOnly() bool {
	return cat.readOnly
}

func (cat *catalog) Close() error {
	if cat.db == nil {
		return nil
	}
	cat.flushState()
	err := cat.db.Close()
	cat.db = nil
	return err
}

// molKey builds the lookup key from the molecule's graph encoding, prefixed
// so molecule entries sort after the state key.
func molKey(mol *libdg.Mol) []byte {
	key := []byte{0x01}
	return mol.AppendEncodingTo(key)
}
