package qdrant

import (
	"github.com/debugonezero/codex/core"
	"github.com/qdrant/go-client/qdrant"
)

// Payload field names as stored in the collection. These are the wire
// contract with existing collections, so they never change even when the
// Go field names do.
const (
	fieldContent           = "content"
	fieldTimestamp         = "timestamp"
	fieldEventType         = "event_type"
	fieldOriginalMessageID = "original_message_id"
	fieldSourceFile        = "source_file"
	fieldCommitID          = "commit_id"
	fieldChunkIndex        = "chunk_index"
)

func payloadToValueMap(p core.PointPayload) map[string]*qdrant.Value {
	return qdrant.NewValueMap(map[string]any{
		fieldContent:           p.Content,
		fieldTimestamp:         p.Timestamp,
		fieldEventType:         p.EventType,
		fieldOriginalMessageID: p.OriginalMessageID,
		fieldSourceFile:        p.SourceFile,
		fieldCommitID:          p.CommitID,
		fieldChunkIndex:        int64(p.ChunkIndex),
	})
}

func payloadFromValueMap(values map[string]*qdrant.Value) core.PointPayload {
	return core.PointPayload{
		Content:           extractStringValue(values[fieldContent]),
		Timestamp:         extractStringValue(values[fieldTimestamp]),
		EventType:         extractStringValue(values[fieldEventType]),
		OriginalMessageID: extractStringValue(values[fieldOriginalMessageID]),
		SourceFile:        extractStringValue(values[fieldSourceFile]),
		CommitID:          extractStringValue(values[fieldCommitID]),
		ChunkIndex:        int(extractIntValue(values[fieldChunkIndex])),
	}
}

// extractStringValue extracts a string from a qdrant.Value.
func extractStringValue(val *qdrant.Value) string {
	if val == nil {
		return ""
	}
	return val.GetStringValue()
}

// extractIntValue extracts an integer from a qdrant.Value, accepting
// doubles for payloads written by clients that encode numbers as floats.
func extractIntValue(val *qdrant.Value) int64 {
	if val == nil {
		return 0
	}
	if intVal := val.GetIntegerValue(); intVal != 0 {
		return intVal
	}
	if dblVal := val.GetDoubleValue(); dblVal != 0 {
		return int64(dblVal)
	}
	return 0
}
