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


package core

import "errors"

// Domain validation errors
var (
	// ErrInvalidChunking indicates a chunker configuration that cannot
	// cover the input (non-positive window, or overlap >= window).
	ErrInvalidChunking = errors.New("invalid chunking configuration")

	// ErrInvalidPoint indicates a MemoryPoint failed validation.
	ErrInvalidPoint = errors.New("invalid memory point")

	// ErrEmptyContent indicates the payload Content field is empty.
	ErrEmptyContent = errors.New("content cannot be empty")

	// ErrEmptyVector indicates a point carries no embedding vector.
	ErrEmptyVector = errors.New("vector cannot be empty")

	// ErrVectorSize indicates a vector whose dimension does not match
	// the collection's configured size.
	ErrVectorSize = errors.New("vector dimension mismatch")

	// ErrMissingProvenance indicates a payload without a source file.
	ErrMissingProvenance = errors.New("source file cannot be empty")
)
