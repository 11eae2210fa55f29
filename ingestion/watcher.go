package ingestion

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/panjf2000/ants/v2"

	"github.com/debugonezero/codex/archive"
)

const (
	// DefaultSettleDelay is how long the watcher waits after a creation
	// event before reading the file, so a file still being written is not
	// ingested half-finished.
	DefaultSettleDelay = 1 * time.Second

	defaultQueueDepth  = 64
	releaseWaitTimeout = 30 * time.Second
)

// FileIngester ingests a single session file. The batch Pipeline satisfies
// it, which keeps live ingestion on the exact same transformation path.
type FileIngester interface {
	IngestFile(ctx context.Context, path string) (int, error)
}

// Watcher performs live ingestion: it subscribes to filesystem creation
// events under an archive root and feeds matching session files to a
// single-worker queue. One file is processed to completion before the next
// starts, so store writes from this process are never concurrent.
type Watcher struct {
	root     string
	ingester FileIngester
	settle   time.Duration
	watcher  *fsnotify.Watcher
	pool     *ants.Pool
	logger   *slog.Logger

	settleTimers map[string]*time.Timer
	timersMu     sync.Mutex

	stopCh chan struct{}
	wg     sync.WaitGroup
}

// WatcherOption configures a Watcher.
type WatcherOption func(*watcherConfig)

type watcherConfig struct {
	settle     time.Duration
	queueDepth int
	logger     *slog.Logger
}

// WithSettleDelay overrides the wait between a creation event and the read.
func WithSettleDelay(d time.Duration) WatcherOption {
	return func(c *watcherConfig) {
		c.settle = d
	}
}

// WithQueueDepth bounds how many detected files may wait behind the one
// being processed. Events past the bound are dropped with a warning; the
// next batch run picks those files up.
func WithQueueDepth(depth int) WatcherOption {
	return func(c *watcherConfig) {
		if depth > 0 {
			c.queueDepth = depth
		}
	}
}

// WithWatcherLogger sets a custom logger.
func WithWatcherLogger(logger *slog.Logger) WatcherOption {
	return func(c *watcherConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewWatcher creates a live ingestion watcher over the archive root.
func NewWatcher(root string, ingester FileIngester, opts ...WatcherOption) (*Watcher, error) {
	if ingester == nil {
		return nil, ErrIngesterRequired
	}

	cfg := watcherConfig{
		settle:     DefaultSettleDelay,
		queueDepth: defaultQueueDepth,
		logger:     slog.Default().With("component", "watcher"),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Pool size 1 keeps ingestion serialized; blocked submissions form
	// the pending queue behind the in-flight file.
	pool, err := ants.NewPool(1, ants.WithMaxBlockingTasks(cfg.queueDepth))
	if err != nil {
		fsWatcher.Close()
		return nil, err
	}

	return &Watcher{
		root:         root,
		ingester:     ingester,
		settle:       cfg.settle,
		watcher:      fsWatcher,
		pool:         pool,
		logger:       cfg.logger,
		settleTimers: make(map[string]*time.Timer),
		stopCh:       make(chan struct{}),
	}, nil
}

// Start begins watching. It registers the root and every existing
// subdirectory, then reacts to events until Stop is called.
func (w *Watcher) Start() error {
	if err := w.addDirRecursive(w.root); err != nil {
		return err
	}

	w.logger.Info("watching for new session files", "root", w.root, "settle_delay", w.settle)

	w.wg.Add(1)
	go w.watchLoop()
	return nil
}

// Stop shuts the watcher down. Pending settle timers are cancelled and the
// in-flight file, if any, is allowed to finish before Stop returns.
func (w *Watcher) Stop() {
	w.logger.Info("stopping watcher")

	close(w.stopCh)
	w.watcher.Close()
	w.wg.Wait()

	w.timersMu.Lock()
	for _, timer := range w.settleTimers {
		timer.Stop()
	}
	w.timersMu.Unlock()

	if err := w.pool.ReleaseTimeout(releaseWaitTimeout); err != nil {
		w.logger.Warn("timed out waiting for in-flight ingestion", "err", err)
	}

	w.logger.Info("watcher stopped")
}

// addDirRecursive registers dir and all subdirectories for events.
// New subdirectories created later are registered from their Create events.
func (w *Watcher) addDirRecursive(dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.watcher.Add(path); err != nil {
			w.logger.Warn("failed to watch directory", "path", path, "err", err)
			return nil
		}
		w.logger.Debug("watching directory", "path", path)
		return nil
	})
}

func (w *Watcher) watchLoop() {
	defer w.wg.Done()

	for {
		select {
		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("watch error", "err", err)
		}
	}
}

// handleEvent reacts to creation events only. New directories extend the
// watch; new session files are scheduled after the settle delay; everything
// else is ignored.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Create) {
		return
	}

	if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
		if err := w.addDirRecursive(event.Name); err != nil {
			w.logger.Warn("failed to watch new directory", "path", event.Name, "err", err)
		}
		return
	}

	if !archive.MatchesSessionFile(event.Name) {
		return
	}

	w.logger.Info("new session file detected", "path", event.Name)
	w.scheduleIngest(event.Name)
}

// scheduleIngest arms (or re-arms) the settle timer for a path. Duplicate
// creation events within the settle window collapse into one ingestion.
func (w *Watcher) scheduleIngest(path string) {
	w.timersMu.Lock()
	defer w.timersMu.Unlock()

	if timer, ok := w.settleTimers[path]; ok {
		timer.Stop()
	}
	w.settleTimers[path] = time.AfterFunc(w.settle, func() {
		w.timersMu.Lock()
		delete(w.settleTimers, path)
		w.timersMu.Unlock()
		w.enqueue(path)
	})
}

func (w *Watcher) enqueue(path string) {
	err := w.pool.Submit(func() {
		added, err := w.ingester.IngestFile(context.Background(), path)
		if err != nil {
			w.logger.Error("failed to ingest file", "path", path, "err", err)
			return
		}
		w.logger.Info("ingested file", "path", path, "points", added)
	})
	if err != nil {
		w.logger.Warn("dropping detected file", "path", path, "err", err)
	}
}
