package ingestion

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/debugonezero/codex/ai"
	"github.com/debugonezero/codex/archive"
	"github.com/debugonezero/codex/core"
	"github.com/debugonezero/codex/storage"
)

// Pipeline orchestrates batch ingestion of a session archive: discover
// files, transform each into memory points, upsert them, and cross-check
// the store's count at the end.
type Pipeline struct {
	store      storage.VectorStore
	ledger     storage.IngestLedger
	proc       *processor
	collection string
	vectorSize int
	force      bool
	progress   *ProgressTracker
	logger     *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithLedger attaches an ingest ledger. With a ledger in place, files whose
// content digest matches their last recorded ingestion are skipped.
func WithLedger(ledger storage.IngestLedger) Option {
	return func(p *Pipeline) error {
		p.ledger = ledger
		return nil
	}
}

// WithForce disables ledger-based skipping: every discovered file is
// re-ingested even if its content is unchanged.
func WithForce(force bool) Option {
	return func(p *Pipeline) error {
		p.force = force
		return nil
	}
}

// WithChunker overrides the default chunking parameters.
func WithChunker(chunker core.Chunker) Option {
	return func(p *Pipeline) error {
		p.proc.chunker = chunker
		return nil
	}
}

// WithProgress attaches a progress tracker for the batch run.
func WithProgress(progress *ProgressTracker) Option {
	return func(p *Pipeline) error {
		p.progress = progress
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		p.proc.logger = logger
		return nil
	}
}

// NewPipeline creates an ingestion pipeline writing to the named collection.
// vectorSize is the embedding dimension and must match the provider's model.
func NewPipeline(
	store storage.VectorStore,
	provider ai.Provider,
	collection string,
	vectorSize int,
	opts ...Option,
) (*Pipeline, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if provider == nil {
		return nil, ErrProviderRequired
	}

	logger := slog.Default().With("component", "ingestion")

	p := &Pipeline{
		store:      store,
		proc:       newProcessor(provider.Embedder(), core.DefaultChunker(), vectorSize, logger),
		collection: collection,
		vectorSize: vectorSize,
		logger:     logger,
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			return nil, optErr
		}
	}

	return p, nil
}

// Summary reports the outcome of a batch run.
type Summary struct {
	FilesProcessed int    // files that produced an upsert
	FilesSkipped   int    // unreadable files plus unchanged files
	PointsAdded    int    // points upserted during this run
	StoreCount     uint64 // the store's authoritative post-run count
}

// Run performs one full pass over the archive root.
//
// The collection is ensured once at the start. Files are processed
// strictly in order, one at a time. A file that cannot be read or parsed
// is logged and skipped; the rest of the archive still ingests. Embedding
// or store failures abort the run, since every remaining file would hit
// the same broken service.
func (p *Pipeline) Run(ctx context.Context, root string) (*Summary, error) {
	if err := p.store.EnsureCollection(ctx, p.collection, uint64(p.vectorSize)); err != nil {
		return nil, err
	}

	files, err := (archive.Scanner{Root: root}).Scan()
	if err != nil {
		return nil, err
	}
	p.logger.Info("found session files", "count", len(files), "root", root)

	if p.progress != nil {
		p.progress.SetTotal(len(files))
		p.progress.Start()
	}

	summary := &Summary{}
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		added, err := p.ingestOne(ctx, path)
		if err != nil {
			if errors.Is(err, archive.ErrUnreadableSession) {
				p.logger.Warn("skipping unreadable session file", "err", err)
				summary.FilesSkipped++
				p.advance()
				continue
			}
			return nil, err
		}
		if added < 0 {
			summary.FilesSkipped++
		} else {
			summary.FilesProcessed++
			summary.PointsAdded += added
		}
		p.advance()
	}

	if p.progress != nil {
		p.progress.Finish()
	}

	count, err := p.store.Count(ctx, p.collection)
	if err != nil {
		return nil, err
	}
	summary.StoreCount = count

	p.logger.Info("batch ingestion complete",
		"files_processed", summary.FilesProcessed,
		"files_skipped", summary.FilesSkipped,
		"points_added", summary.PointsAdded,
		"store_count", summary.StoreCount)
	return summary, nil
}

func (p *Pipeline) advance() {
	if p.progress != nil {
		p.progress.Increment(1)
	}
}

// IngestFile transforms a single session file and upserts its points.
// The collection is ensured first, so the live watcher can ingest into a
// fresh store. Returns the number of points written.
func (p *Pipeline) IngestFile(ctx context.Context, path string) (int, error) {
	if err := p.store.EnsureCollection(ctx, p.collection, uint64(p.vectorSize)); err != nil {
		return 0, err
	}
	added, err := p.ingestOne(ctx, path)
	if err != nil {
		return 0, err
	}
	if added < 0 {
		return 0, nil
	}
	return added, nil
}

// ingestOne runs one file end to end. Returns -1 when the ledger marked
// the file unchanged and it was skipped.
func (p *Pipeline) ingestOne(ctx context.Context, path string) (int, error) {
	digest, haveDigest := p.fileDigest(path)

	if haveDigest && !p.force {
		if prev := p.lookupLedger(ctx, path); prev != nil && prev.ContentDigest == digest {
			p.logger.Debug("file unchanged since last ingestion", "file", path)
			return -1, nil
		}
	}

	points, err := p.proc.processFile(ctx, path)
	if err != nil {
		return 0, err
	}
	if len(points) == 0 {
		p.logger.Info("no valid entries in file", "file", path)
		return 0, nil
	}

	if err := p.store.UpsertBatch(ctx, p.collection, points); err != nil {
		return 0, err
	}
	p.logger.Info("upserted points", "file", path, "count", len(points))

	if p.ledger != nil && haveDigest {
		entry := &storage.LedgerEntry{
			Path:          path,
			ContentDigest: digest,
			PointCount:    len(points),
			IngestedAt:    time.Now().UTC(),
		}
		// Ledger writes are advisory. A failed write only means the file
		// may be re-ingested next run, which the deterministic point ids
		// make harmless.
		if err := p.ledger.Put(ctx, entry); err != nil {
			p.logger.Warn("failed to record ledger entry", "file", path, "err", err)
		}
	}

	return len(points), nil
}

func (p *Pipeline) fileDigest(path string) (uint64, bool) {
	if p.ledger == nil {
		return 0, false
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, false
	}
	return core.ContentDigest(data), true
}

func (p *Pipeline) lookupLedger(ctx context.Context, path string) *storage.LedgerEntry {
	entry, err := p.ledger.Get(ctx, path)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			p.logger.Warn("ledger lookup failed", "file", path, "err", err)
		}
		return nil
	}
	return entry
}
