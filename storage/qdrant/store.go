package qdrant

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/debugonezero/codex/core"
	"github.com/debugonezero/codex/storage"
	"github.com/qdrant/go-client/qdrant"
)

// Store implements storage.VectorStore backed by a Qdrant instance over gRPC.
type Store struct {
	client *qdrant.Client
	logger *slog.Logger
}

var _ storage.VectorStore = (*Store)(nil)

// NewStore connects to a Qdrant instance. Port is the gRPC port (6334 by
// default in a standard deployment).
//
// Returns storage.VectorStore interface to enforce abstraction.
func NewStore(host string, port int) (storage.VectorStore, error) {
	client, err := qdrant.NewClient(&qdrant.Config{
		Host: host,
		Port: port,
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to qdrant at %s:%d: %w", host, port, err)
	}

	return &Store{
		client: client,
		logger: slog.Default().With("component", "qdrant-store"),
	}, nil
}

// EnsureCollection creates the collection with cosine distance if it does
// not already exist. The check runs against the live collection list, so an
// existing collection is never recreated and its points are preserved.
func (s *Store) EnsureCollection(ctx context.Context, name string, vectorSize uint64) error {
	existing, err := s.client.ListCollections(ctx)
	if err != nil {
		return fmt.Errorf("listing collections: %w", err)
	}

	for _, collection := range existing {
		if collection == name {
			s.logger.Debug("collection already exists", "collection", name)
			return nil
		}
	}

	s.logger.Info("creating collection", "collection", name, "vector_size", vectorSize)
	err = s.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: name,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("creating collection %s: %w", name, err)
	}
	return nil
}

// UpsertBatch writes points with wait enabled, so the call returns only
// after the store has applied the batch. Points sharing an ID with an
// existing point overwrite it.
func (s *Store) UpsertBatch(ctx context.Context, name string, points []*core.MemoryPoint) error {
	if len(points) == 0 {
		return nil
	}

	structs := make([]*qdrant.PointStruct, len(points))
	for i, point := range points {
		structs[i] = &qdrant.PointStruct{
			Id:      qdrant.NewID(point.ID),
			Vectors: qdrant.NewVectors(point.Vector...),
			Payload: payloadToValueMap(point.Payload),
		}
	}

	_, err := s.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: name,
		Points:         structs,
		Wait:           qdrant.PtrOf(true),
	})
	if err != nil {
		return fmt.Errorf("upserting %d points to %s: %w", len(points), name, err)
	}

	s.logger.Debug("upserted points", "collection", name, "count", len(points))
	return nil
}

// Search returns the limit nearest points by cosine similarity, payloads
// included, best match first.
func (s *Store) Search(ctx context.Context, name string, vector []float32, limit int) ([]*core.SearchResult, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be positive", storage.ErrInvalidQuery)
	}

	max := uint64(limit)
	hits, err := s.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: name,
		Query:          qdrant.NewQuery(vector...),
		Limit:          &max,
		WithPayload:    qdrant.NewWithPayload(true),
	})
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", name, err)
	}

	results := make([]*core.SearchResult, 0, len(hits))
	for _, hit := range hits {
		results = append(results, &core.SearchResult{
			ID:      hit.GetId().GetUuid(),
			Score:   hit.GetScore(),
			Payload: payloadFromValueMap(hit.GetPayload()),
		})
	}
	return results, nil
}

// Count returns the exact point count for the collection.
func (s *Store) Count(ctx context.Context, name string) (uint64, error) {
	count, err := s.client.Count(ctx, &qdrant.CountPoints{
		CollectionName: name,
		Exact:          qdrant.PtrOf(true),
	})
	if err != nil {
		return 0, fmt.Errorf("counting points in %s: %w", name, err)
	}
	return count, nil
}

// Close closes the gRPC connection.
func (s *Store) Close() error {
	return s.client.Close()
}
