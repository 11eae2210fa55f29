package badger

import (
	"context"
	"errors"

	"github.com/dgraph-io/badger/v4"
	"github.com/debugonezero/codex/storage"
)

// Ledger implements storage.IngestLedger for BadgerDB.
type Ledger struct {
	backend *Backend
}

var _ storage.IngestLedger = (*Ledger)(nil)

// NewLedger opens an ingest ledger at the given path.
//
// Returns storage.IngestLedger interface to enforce abstraction.
func NewLedger(path string) (storage.IngestLedger, error) {
	backend, err := OpenBackend(path, false)
	if err != nil {
		return nil, err
	}
	return &Ledger{backend: backend}, nil
}

// newLedger wraps an already-open backend. Used by the in-memory test
// constructor.
func newLedger(backend *Backend) *Ledger {
	return &Ledger{backend: backend}
}

// Get retrieves the ledger entry for a file path.
func (l *Ledger) Get(ctx context.Context, path string) (*storage.LedgerEntry, error) {
	if l.backend.IsClosed() {
		return nil, storage.ErrStorageClosed
	}

	var entry *storage.LedgerEntry
	err := l.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeLedgerKey(path))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return storage.ErrNotFound
			}
			return err
		}
		return item.Value(func(val []byte) error {
			var err error
			entry, err = storage.UnmarshalLedgerEntry(val)
			return err
		})
	}, false)
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// Put records or replaces the entry for the entry's path.
func (l *Ledger) Put(ctx context.Context, entry *storage.LedgerEntry) error {
	if l.backend.IsClosed() {
		return storage.ErrStorageClosed
	}

	return l.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeLedgerKey(entry.Path), storage.MarshalLedgerEntry(entry)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// Close closes the underlying database.
func (l *Ledger) Close() error {
	return l.backend.Close()
}
