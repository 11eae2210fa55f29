package ingestion

import "errors"

var (
	// ErrStoreRequired is returned when a vector store is not provided.
	ErrStoreRequired = errors.New("vector store required")

	// ErrProviderRequired is returned when an embedding provider is not provided.
	ErrProviderRequired = errors.New("embedding provider required")

	// ErrIngesterRequired is returned when a watcher is built without a
	// file ingester.
	ErrIngesterRequired = errors.New("file ingester required")
)
