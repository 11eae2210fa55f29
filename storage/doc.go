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


// Package storage provides the storage abstraction layer for Codex.
//
// This package defines the interfaces that decouple storage implementations
// from the ingestion and retrieval logic:
//
//   - VectorStore: the memory collection (points, similarity search, counts)
//   - IngestLedger: the local record of which files have been ingested
//
// # Constructor Return Type Pattern
//
// Implementation sub-packages follow a strict "return interface" pattern for
// public constructors to enforce abstraction:
//
//	store, err := qdrant.NewStore(host, port)  // returns storage.VectorStore
//	ledger, err := badger.NewLedger(path)      // returns storage.IngestLedger
//
// # Usage
//
//	store, err := qdrant.NewStore("localhost", 6334)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer store.Close()
//
// Use in tests with an in-memory ledger:
//
//	ledger, err := badger.NewMemoryLedger()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer ledger.Close()
//
// # Thread Safety
//
// All implementations must be thread-safe and support concurrent access
// from multiple goroutines.
//
// # Context Support
//
// All methods accept context.Context for cancellation and timeout support.
package storage
