package search

import (
	"fmt"
	"strings"

	"github.com/debugonezero/codex/core"
)

// NoMemoriesMessage is returned verbatim when a query matches nothing.
// Existing tool consumers string-match on it, so it is part of the contract.
const NoMemoriesMessage = "I found no memories matching that query."

// FormatResults renders retrieval hits as the tool-boundary text block:
// a preamble, then one block per memory with its rank, score, timestamp,
// source file, and content.
func FormatResults(results []*core.SearchResult) string {
	if len(results) == 0 {
		return NoMemoriesMessage
	}

	var sb strings.Builder
	sb.WriteString("I found the following relevant memories:\n\n")
	for i, result := range results {
		fmt.Fprintf(&sb, "--- Memory %d (Score: %.4f) ---\n", i+1, result.Score)
		fmt.Fprintf(&sb, "Timestamp: %s\n", result.Payload.Timestamp)
		fmt.Fprintf(&sb, "Source: %s\n", result.Payload.SourceFile)
		fmt.Fprintf(&sb, "Content: %s\n\n", result.Payload.Content)
	}
	return sb.String()
}

// FormatError renders a retrieval failure as tool-boundary text.
func FormatError(err error) string {
	return fmt.Sprintf("An error occurred while querying my memory: %v", err)
}
