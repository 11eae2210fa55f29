package search

import (
	"errors"
	"testing"

	"github.com/debugonezero/codex/core"
	"github.com/stretchr/testify/assert"
)

func TestFormatResults_Empty(t *testing.T) {
	assert.Equal(t, "I found no memories matching that query.", FormatResults(nil))
	assert.Equal(t, NoMemoriesMessage, FormatResults([]*core.SearchResult{}))
}

func TestFormatResults_Blocks(t *testing.T) {
	results := []*core.SearchResult{
		{
			Score: 0.98765,
			Payload: core.PointPayload{
				Content:    "first memory",
				Timestamp:  "2024-01-01T00:00:00Z",
				SourceFile: "session-1.json",
			},
		},
		{
			Score: 0.5,
			Payload: core.PointPayload{
				Content:    "second memory",
				SourceFile: "session-2.json",
			},
		},
	}

	got := FormatResults(results)
	want := "I found the following relevant memories:\n\n" +
		"--- Memory 1 (Score: 0.9877) ---\n" +
		"Timestamp: 2024-01-01T00:00:00Z\n" +
		"Source: session-1.json\n" +
		"Content: first memory\n\n" +
		"--- Memory 2 (Score: 0.5000) ---\n" +
		"Timestamp: \n" +
		"Source: session-2.json\n" +
		"Content: second memory\n\n"
	assert.Equal(t, want, got)
}

func TestFormatError(t *testing.T) {
	got := FormatError(errors.New("connection refused"))
	assert.Equal(t, "An error occurred while querying my memory: connection refused", got)
}
