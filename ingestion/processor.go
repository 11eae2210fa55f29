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


package ingestion

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/debugonezero/codex/ai"
	"github.com/debugonezero/codex/archive"
	"github.com/debugonezero/codex/core"
)

// processor turns one session file into memory points:
// parse, chunk each message, embed every chunk, assemble points.
// Both the batch pipeline and the live watcher run files through it, so
// the two paths cannot drift apart.
type processor struct {
	embedder   ai.Embedder
	chunker    core.Chunker
	vectorSize int
	logger     *slog.Logger
}

func newProcessor(embedder ai.Embedder, chunker core.Chunker, vectorSize int, logger *slog.Logger) *processor {
	return &processor{
		embedder:   embedder,
		chunker:    chunker,
		vectorSize: vectorSize,
		logger:     logger,
	}
}

// processFile produces the points for one session file.
//
// Errors wrapping archive.ErrUnreadableSession describe a single bad file;
// callers log and move on. Embedding errors describe a broken service and
// propagate as-is. A readable file with no usable messages yields zero
// points and no error.
func (p *processor) processFile(ctx context.Context, path string) ([]*core.MemoryPoint, error) {
	record, err := archive.ParseSessionFile(path)
	if err != nil {
		return nil, err
	}

	type pending struct {
		message   core.Message
		messageID string
		chunk     core.Chunk
	}
	var work []pending
	for ordinal, message := range record.Messages {
		// Transcripts without message ids fall back to the message's
		// position so two id-less messages never collapse into one point.
		messageID := message.ID
		if messageID == "" {
			messageID = fmt.Sprintf("#%d", ordinal)
		}
		for _, chunk := range p.chunker.Split(message.Content) {
			work = append(work, pending{message: message, messageID: messageID, chunk: chunk})
		}
	}
	if len(work) == 0 {
		p.logger.Debug("no usable messages in file", "file", record.SourceFile)
		return nil, nil
	}

	texts := make([]string, len(work))
	for i, w := range work {
		texts[i] = w.chunk.Text
	}

	vectors, err := p.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embedding %d chunks from %s: %w", len(texts), record.SourceFile, err)
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("embedder returned %d vectors for %d chunks from %s", len(vectors), len(texts), record.SourceFile)
	}

	points := make([]*core.MemoryPoint, len(work))
	for i, w := range work {
		point := &core.MemoryPoint{
			ID:     core.PointID(record.SourceFile, w.messageID, w.chunk.Index),
			Vector: vectors[i],
			Payload: core.PointPayload{
				Content:           w.chunk.Text,
				Timestamp:         w.message.Timestamp,
				EventType:         w.message.Type,
				OriginalMessageID: w.message.ID,
				SourceFile:        record.SourceFile,
				CommitID:          record.CommitID,
				ChunkIndex:        w.chunk.Index,
			},
		}
		if err := core.ValidatePoint(point, p.vectorSize); err != nil {
			return nil, fmt.Errorf("point %d of %s: %w", i, record.SourceFile, err)
		}
		points[i] = point
	}

	return points, nil
}
