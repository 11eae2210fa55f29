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

import "fmt"

// ValidatePoint validates a MemoryPoint before it is written to a store.
//
// Validation rules:
//   - ID must not be empty
//   - Vector must be non-empty and match vectorSize when vectorSize > 0
//   - Payload.Content must not be empty
//   - Payload.SourceFile must not be empty
//
// NOT validated:
//   - Timestamp, EventType and OriginalMessageID (transcripts may omit them)
// ValidateMessage reports whether a transcript message is worth ingesting.
// Only the content matters: id, type and timestamp may all be absent.
func ValidateMessage(message Message) error {
	if message.Content == "" {
		return fmt.Errorf("%w: message %q", ErrEmptyContent, message.ID)
	}
	return nil
}

func ValidatePoint(point *MemoryPoint, vectorSize int) error {
	if point == nil {
		return fmt.Errorf("%w: point is nil", ErrInvalidPoint)
	}

	if point.ID == "" {
		return fmt.Errorf("%w: missing id", ErrInvalidPoint)
	}

	if len(point.Vector) == 0 {
		return fmt.Errorf("%w: %w", ErrInvalidPoint, ErrEmptyVector)
	}

	if vectorSize > 0 && len(point.Vector) != vectorSize {
		return fmt.Errorf("%w: %w: got %d, want %d", ErrInvalidPoint, ErrVectorSize, len(point.Vector), vectorSize)
	}

	if point.Payload.Content == "" {
		return fmt.Errorf("%w: %w", ErrInvalidPoint, ErrEmptyContent)
	}

	if point.Payload.SourceFile == "" {
		return fmt.Errorf("%w: %w", ErrInvalidPoint, ErrMissingProvenance)
	}

	return nil
}
