package storage

import (
	"context"
	"time"

	"github.com/debugonezero/codex/core"
)

// VectorStore persists memory points and answers similarity queries.
// Implementations must be thread-safe and support concurrent access.
type VectorStore interface {
	// EnsureCollection creates the named collection with the given vector
	// dimension if it does not already exist. Idempotent: calling it
	// against an existing collection is a no-op and never recreates it.
	EnsureCollection(ctx context.Context, name string, vectorSize uint64) error

	// UpsertBatch writes points to the collection, overwriting any point
	// with the same ID. The write is acknowledged only after the store
	// has durably applied it.
	UpsertBatch(ctx context.Context, name string, points []*core.MemoryPoint) error

	// Search returns up to limit points nearest to the query vector,
	// ordered by descending similarity, payloads included.
	Search(ctx context.Context, name string, vector []float32, limit int) ([]*core.SearchResult, error)

	// Count returns the exact number of points in the collection.
	Count(ctx context.Context, name string) (uint64, error)

	// Close closes the store client and releases resources.
	Close() error
}

// LedgerEntry records one completed ingestion of a session file.
type LedgerEntry struct {
	// Path is the absolute path of the ingested file.
	Path string

	// ContentDigest is the BLAKE2b digest of the file bytes at the time
	// of ingestion. A matching digest on a later pass means the file is
	// unchanged and can be skipped.
	ContentDigest uint64

	// PointCount is the number of points the file produced.
	PointCount int

	// IngestedAt is when the ingestion completed.
	IngestedAt time.Time
}

// IngestLedger tracks which session files have been ingested and with what
// content. The ledger is advisory: it exists to avoid redundant work, and
// every caller treats its failures as log-and-continue, never as a reason
// to abort ingestion.
type IngestLedger interface {
	// Get retrieves the entry for a file path.
	// Returns ErrNotFound if the path has never been recorded.
	Get(ctx context.Context, path string) (*LedgerEntry, error)

	// Put records or replaces the entry for the entry's path.
	Put(ctx context.Context, entry *LedgerEntry) error

	// Close closes the ledger backend and releases resources.
	Close() error
}
