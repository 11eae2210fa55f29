// Copyright 2025 The Codex Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package codex

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/debugonezero/codex/ai"
	"github.com/debugonezero/codex/ai/openai"
	"github.com/debugonezero/codex/ingestion"
	"github.com/debugonezero/codex/search"
	"github.com/debugonezero/codex/storage"
	"github.com/debugonezero/codex/storage/badger"
	"github.com/debugonezero/codex/storage/qdrant"
)

const (
	// DefaultCollection is the vector collection holding session memories.
	DefaultCollection = "codex_history"

	// DefaultQdrantHost and DefaultQdrantPort locate the vector store's
	// gRPC endpoint.
	DefaultQdrantHost = "localhost"
	DefaultQdrantPort = 6334

	ledgerDirName = ".codex-ledger"
)

// DefaultArchiveRoot returns the session archive directory scanned during
// ingestion, ~/.gemini/tmp under the current user's home.
func DefaultArchiveRoot() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".gemini", "tmp")
	}
	return filepath.Join(home, ".gemini", "tmp")
}

// Codex wires the embedding provider, vector store and ingest ledger
// behind a single handle. Pipelines, watchers and searchers built from
// the same Codex share those connections.
type Codex struct {
	store      storage.VectorStore
	ledger     storage.IngestLedger
	provider   ai.Provider
	collection string
	vectorSize int
	logger     *slog.Logger
}

// CodexOption configures a Codex.
type CodexOption func(*codexOptions)

type codexOptions struct {
	aiConfig   *ai.Config
	qdrantHost string
	qdrantPort int
	collection string
	ledgerPath string
	noLedger   bool
	store      storage.VectorStore
	ledger     storage.IngestLedger
	provider   ai.Provider
}

// WithAIConfig overrides the embedding provider configuration.
func WithAIConfig(config *ai.Config) CodexOption {
	return func(o *codexOptions) {
		o.aiConfig = config
	}
}

// WithQdrant points the vector store at a non-default endpoint.
func WithQdrant(host string, port int) CodexOption {
	return func(o *codexOptions) {
		o.qdrantHost = host
		o.qdrantPort = port
	}
}

// WithCollection overrides the vector collection name.
func WithCollection(name string) CodexOption {
	return func(o *codexOptions) {
		o.collection = name
	}
}

// WithLedgerPath places the ingest ledger at an explicit directory
// instead of alongside the archive.
func WithLedgerPath(path string) CodexOption {
	return func(o *codexOptions) {
		o.ledgerPath = path
	}
}

// WithoutLedger disables change tracking; every file is re-ingested on
// each run.
func WithoutLedger() CodexOption {
	return func(o *codexOptions) {
		o.noLedger = true
	}
}

// WithVectorStore injects an already-constructed vector store, bypassing
// the qdrant connection. Intended for tests.
func WithVectorStore(store storage.VectorStore) CodexOption {
	return func(o *codexOptions) {
		o.store = store
	}
}

// WithIngestLedger injects an already-open ingest ledger. Intended for
// tests.
func WithIngestLedger(ledger storage.IngestLedger) CodexOption {
	return func(o *codexOptions) {
		o.ledger = ledger
	}
}

// WithProvider injects an already-constructed embedding provider.
// Intended for tests.
func WithProvider(provider ai.Provider) CodexOption {
	return func(o *codexOptions) {
		o.provider = provider
	}
}

// New opens the vector store, the ingest ledger and the embedding
// provider. archiveRoot anchors the default ledger location; pass
// DefaultArchiveRoot() for the standard layout.
func New(archiveRoot string, opts ...CodexOption) (*Codex, error) {
	options := &codexOptions{
		aiConfig:   ai.DefaultConfig(),
		qdrantHost: DefaultQdrantHost,
		qdrantPort: DefaultQdrantPort,
		collection: DefaultCollection,
	}
	for _, opt := range opts {
		opt(options)
	}

	if err := options.aiConfig.Validate(); err != nil {
		return nil, err
	}

	store := options.store
	if store == nil {
		var err error
		store, err = qdrant.NewStore(options.qdrantHost, options.qdrantPort)
		if err != nil {
			return nil, err
		}
	}

	ledger := options.ledger
	if ledger == nil && !options.noLedger {
		ledgerPath := options.ledgerPath
		if ledgerPath == "" {
			ledgerPath = filepath.Join(archiveRoot, ledgerDirName)
		}
		var err error
		ledger, err = badger.NewLedger(ledgerPath)
		if err != nil {
			store.Close()
			return nil, err
		}
	}

	provider := options.provider
	if provider == nil {
		var err error
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			if ledger != nil {
				ledger.Close()
			}
			store.Close()
			return nil, err
		}
	}

	return &Codex{
		store:      store,
		ledger:     ledger,
		provider:   provider,
		collection: options.collection,
		vectorSize: options.aiConfig.VectorSize,
		logger:     slog.Default(),
	}, nil
}

func (c *Codex) Close() error {
	if err := c.provider.Close(); err != nil {
		c.logger.Error("error closing AI provider", "err", err)
	}

	if c.ledger != nil {
		if err := c.ledger.Close(); err != nil {
			c.logger.Error("error closing ingest ledger", "err", err)
			return err
		}
	}

	if err := c.store.Close(); err != nil {
		c.logger.Error("error closing vector store", "err", err)
		return err
	}
	return nil
}

// Collection returns the vector collection name in use.
func (c *Codex) Collection() string {
	return c.collection
}

// VectorStore exposes the underlying store for direct queries.
func (c *Codex) VectorStore() storage.VectorStore {
	return c.store
}

func (c *Codex) NewIngestionPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	if c.ledger != nil {
		opts = append([]ingestion.Option{ingestion.WithLedger(c.ledger)}, opts...)
	}
	return ingestion.NewPipeline(c.store, c.provider, c.collection, c.vectorSize, opts...)
}

// NewWatcher builds a live watcher whose ingester is a pipeline created
// with the given options.
func (c *Codex) NewWatcher(archiveRoot string, pipelineOpts []ingestion.Option, opts ...ingestion.WatcherOption) (*ingestion.Watcher, error) {
	pipeline, err := c.NewIngestionPipeline(pipelineOpts...)
	if err != nil {
		return nil, err
	}
	return ingestion.NewWatcher(archiveRoot, pipeline, opts...)
}

func (c *Codex) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	return search.NewSearcher(c.store, c.provider, c.collection, opts...)
}
