package search

import (
	"context"
	"log/slog"
	"strings"

	"github.com/debugonezero/codex/ai"
	"github.com/debugonezero/codex/core"
	"github.com/debugonezero/codex/storage"
)

// DefaultMaxHits is how many memories a query returns unless overridden.
const DefaultMaxHits = 3

// Searcher provides semantic retrieval over the memory collection.
type Searcher struct {
	store      storage.VectorStore
	embedder   ai.Embedder
	collection string
	maxHits    int
	logger     *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithMaxHits sets how many results a query returns.
// Default is DefaultMaxHits.
func WithMaxHits(maxHits int) Option {
	return func(s *Searcher) error {
		if maxHits < 1 {
			return ErrInvalidMaxHits
		}
		s.maxHits = maxHits
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSearcher creates a searcher over the named collection.
func NewSearcher(
	store storage.VectorStore,
	provider ai.Provider,
	collection string,
	opts ...Option,
) (*Searcher, error) {
	if store == nil {
		return nil, ErrStoreRequired
	}
	if provider == nil {
		return nil, ErrProviderRequired
	}

	s := &Searcher{
		store:      store,
		embedder:   provider.Embedder(),
		collection: collection,
		maxHits:    DefaultMaxHits,
		logger:     slog.Default().With("component", "search"),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// FindSimilar embeds the query and returns the nearest memories, best match
// first. An empty result slice means the collection holds nothing similar;
// it is not an error.
func (s *Searcher) FindSimilar(ctx context.Context, query string) ([]*core.SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}

	embedding, err := s.embedder.EmbedText(ctx, query)
	if err != nil {
		s.logger.Error("error generating embedding for query", "err", err)
		return nil, err
	}

	results, err := s.store.Search(ctx, s.collection, embedding, s.maxHits)
	if err != nil {
		s.logger.Error("error querying for similar memories", "err", err)
		return nil, err
	}

	s.logger.Debug("query completed", "hits", len(results))
	return results, nil
}

// AnswerQuery is the tool boundary: it runs FindSimilar and renders the
// outcome as plain text. It never returns an error; failures become a
// descriptive message, since the caller on the other side of the tool
// boundary can only consume text.
func (s *Searcher) AnswerQuery(ctx context.Context, query string) string {
	results, err := s.FindSimilar(ctx, query)
	if err != nil {
		return FormatError(err)
	}
	return FormatResults(results)
}
