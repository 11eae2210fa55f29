package qdrant

import (
	"testing"

	"github.com/debugonezero/codex/core"
	"github.com/stretchr/testify/assert"
)

func TestPayloadValueMapRoundTrip(t *testing.T) {
	payload := core.PointPayload{
		Content:           "Hello world",
		Timestamp:         "2024-01-01T00:00:00Z",
		EventType:         "user",
		OriginalMessageID: "m1",
		SourceFile:        "session-1.json",
		CommitID:          "c1",
		ChunkIndex:        3,
	}

	got := payloadFromValueMap(payloadToValueMap(payload))
	assert.Equal(t, payload, got)
}

func TestPayloadValueMapRoundTrip_EmptyOptionalFields(t *testing.T) {
	payload := core.PointPayload{
		Content:    "body only",
		SourceFile: "session-2.json",
		CommitID:   "c2",
	}

	got := payloadFromValueMap(payloadToValueMap(payload))
	assert.Equal(t, payload, got)
}

func TestPayloadFromValueMap_MissingFields(t *testing.T) {
	got := payloadFromValueMap(nil)
	assert.Equal(t, core.PointPayload{}, got)
}
