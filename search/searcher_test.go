package search

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/debugonezero/codex/ai/mock"
	"github.com/debugonezero/codex/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubStore implements storage.VectorStore returning canned results.
type stubStore struct {
	mu         sync.Mutex
	results    []*core.SearchResult
	searchErr  error
	lastLimit  int
	lastVector []float32
}

func (s *stubStore) EnsureCollection(ctx context.Context, name string, vectorSize uint64) error {
	return nil
}

func (s *stubStore) UpsertBatch(ctx context.Context, name string, points []*core.MemoryPoint) error {
	return nil
}

func (s *stubStore) Search(ctx context.Context, name string, vector []float32, limit int) ([]*core.SearchResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastLimit = limit
	s.lastVector = vector
	if s.searchErr != nil {
		return nil, s.searchErr
	}
	if len(s.results) > limit {
		return s.results[:limit], nil
	}
	return s.results, nil
}

func (s *stubStore) Count(ctx context.Context, name string) (uint64, error) { return 0, nil }
func (s *stubStore) Close() error                                           { return nil }

func hit(score float32, content string) *core.SearchResult {
	return &core.SearchResult{
		ID:    core.PointID("session-1.json", content, 0),
		Score: score,
		Payload: core.PointPayload{
			Content:    content,
			Timestamp:  "2024-01-01T00:00:00Z",
			SourceFile: "session-1.json",
			CommitID:   "c1",
		},
	}
}

func TestNewSearcher(t *testing.T) {
	provider := mock.NewMockProvider()

	t.Run("valid configuration", func(t *testing.T) {
		searcher, err := NewSearcher(&stubStore{}, provider, "codex_history")
		require.NoError(t, err)
		assert.NotNil(t, searcher)
	})

	t.Run("with nil logger falls back to default", func(t *testing.T) {
		searcher, err := NewSearcher(&stubStore{}, provider, "codex_history", WithLogger(nil))
		require.NoError(t, err)
		assert.NotNil(t, searcher)
	})

	t.Run("with custom logger", func(t *testing.T) {
		searcher, err := NewSearcher(&stubStore{}, provider, "codex_history", WithLogger(slog.Default()))
		require.NoError(t, err)
		assert.NotNil(t, searcher)
	})

	t.Run("nil store", func(t *testing.T) {
		_, err := NewSearcher(nil, provider, "codex_history")
		assert.Equal(t, ErrStoreRequired, err)
	})

	t.Run("nil provider", func(t *testing.T) {
		_, err := NewSearcher(&stubStore{}, nil, "codex_history")
		assert.Equal(t, ErrProviderRequired, err)
	})

	t.Run("invalid max hits", func(t *testing.T) {
		_, err := NewSearcher(&stubStore{}, provider, "codex_history", WithMaxHits(0))
		assert.Equal(t, ErrInvalidMaxHits, err)
	})
}

func TestFindSimilar(t *testing.T) {
	store := &stubStore{results: []*core.SearchResult{
		hit(0.91, "top match"),
		hit(0.72, "second match"),
	}}
	searcher, err := NewSearcher(store, mock.NewMockProvider(), "codex_history")
	require.NoError(t, err)

	results, err := searcher.FindSimilar(context.Background(), "what happened yesterday")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "top match", results[0].Payload.Content)
	assert.Equal(t, DefaultMaxHits, store.lastLimit)
	assert.Len(t, store.lastVector, 384)
}

func TestFindSimilar_MaxHits(t *testing.T) {
	store := &stubStore{results: []*core.SearchResult{
		hit(0.9, "a"), hit(0.8, "b"), hit(0.7, "c"), hit(0.6, "d"), hit(0.5, "e"),
	}}
	searcher, err := NewSearcher(store, mock.NewMockProvider(), "codex_history", WithMaxHits(5))
	require.NoError(t, err)

	results, err := searcher.FindSimilar(context.Background(), "query")
	require.NoError(t, err)
	assert.Len(t, results, 5)
	assert.Equal(t, 5, store.lastLimit)
}

func TestFindSimilar_EmptyQuery(t *testing.T) {
	searcher, err := NewSearcher(&stubStore{}, mock.NewMockProvider(), "codex_history")
	require.NoError(t, err)

	for _, query := range []string{"", "   ", "\n\t"} {
		_, err := searcher.FindSimilar(context.Background(), query)
		assert.ErrorIs(t, err, ErrEmptyQuery)
	}
}

func TestFindSimilar_EmbedderError(t *testing.T) {
	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
		return nil, errors.New("model not loaded")
	}
	searcher, err := NewSearcher(&stubStore{}, mock.NewMockProviderWithEmbedder(embedder), "codex_history")
	require.NoError(t, err)

	_, err = searcher.FindSimilar(context.Background(), "query")
	assert.Error(t, err)
}

func TestAnswerQuery(t *testing.T) {
	t.Run("with hits", func(t *testing.T) {
		store := &stubStore{results: []*core.SearchResult{hit(0.9123, "Hello world")}}
		searcher, err := NewSearcher(store, mock.NewMockProvider(), "codex_history")
		require.NoError(t, err)

		answer := searcher.AnswerQuery(context.Background(), "hello")
		assert.Contains(t, answer, "I found the following relevant memories:")
		assert.Contains(t, answer, "--- Memory 1 (Score: 0.9123) ---")
		assert.Contains(t, answer, "Content: Hello world")
	})

	t.Run("no hits", func(t *testing.T) {
		searcher, err := NewSearcher(&stubStore{}, mock.NewMockProvider(), "codex_history")
		require.NoError(t, err)

		answer := searcher.AnswerQuery(context.Background(), "anything")
		assert.Equal(t, NoMemoriesMessage, answer)
	})

	t.Run("store error becomes text", func(t *testing.T) {
		store := &stubStore{searchErr: errors.New("connection refused")}
		searcher, err := NewSearcher(store, mock.NewMockProvider(), "codex_history")
		require.NoError(t, err)

		answer := searcher.AnswerQuery(context.Background(), "anything")
		assert.Contains(t, answer, "An error occurred while querying my memory:")
		assert.Contains(t, answer, "connection refused")
	})
}
