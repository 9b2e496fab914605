package catalog

import (
	"github.com/dgraph-io/badger/v3"

	"github.com/distgeom-systems/godg/libdg"
)

// MolSet allows adding molecule encodings and reports whether an equivalent
// molecule has already been added.
type MolSet interface {

	// TryAdd adds the given molecule if it is not already present.
	//
	// If an equivalent molecule is already in this MolSet, this call has no
	// effect and TryAdd() returns false.
	//
	// After one or more calls to TryAdd(), call Close() for cleanup.
	TryAdd(mol *libdg.Mol) bool

	// Close removes all previously added items from this set.
	//
	// If you make subsequent calls to TryAdd(), be sure you call Close()
	// when you're done.
	Close()
}

// NewMolSet returns an empty in-memory MolSet.
func NewMolSet() MolSet {
	return &molSet{}
}

type molSet struct {
	lsmSet
}

func (ms *molSet) TryAdd(mol *libdg.Mol) bool {
	return ms.tryAdd(mol.AppendEncodingTo(nil))
}

type lsmSet struct {
	db *badger.DB
}

func (set *lsmSet) autoOpen() {
	if set.db == nil {
		dbOpts := badger.DefaultOptions("").WithInMemory(true)
		dbOpts.Logger = nil
		dbOpts.MetricsEnabled = false

		var err error
		set.db, err = badger.Open(dbOpts)
		if err != nil {
			panic(err)
		}
	}
}

func (set *lsmSet) tryAdd(key []byte) bool {
	set.autoOpen()

	txn := set.db.NewTransaction(true)
	defer txn.Commit()

	added := false
	_, err := txn.Get(key)
	if err == badger.ErrKeyNotFound {
		err = txn.Set(key, nil)
		added = true
	}
	if err != nil && err != badger.ErrKeyNotFound {
		panic(err)
	}
	return added
}

func (set *lsmSet) Close() {
	if set.db != nil {
		set.db.Close()
		set.db = nil
	}
}
