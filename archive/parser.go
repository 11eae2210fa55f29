package archive

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/debugonezero/codex/core"
)

// sessionMessage mirrors one entry of a transcript's messages array.
// Fields are decoded as any because archived transcripts are not uniform:
// ids may be numbers, content may be a nested object. Only string content
// is ingested; other fields are coerced to strings where a scalar allows.
type sessionMessage struct {
	ID        any `json:"id"`
	Type      any `json:"type"`
	Content   any `json:"content"`
	Timestamp any `json:"timestamp"`
}

type sessionFile struct {
	Messages []sessionMessage `json:"messages"`
}

// ParseSessionFile reads one transcript and returns its messages in order.
// Messages whose content is missing, empty, or not a string are dropped.
// Read and decode failures return an error wrapping ErrUnreadableSession;
// they describe a single bad file, not a broken service, and callers are
// expected to log and move on.
//
// The record's CommitID is the name of the directory two levels above the
// file, matching the <commit>/chats/<session>.json archive layout.
func ParseSessionFile(path string) (*core.SessionRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadableSession, filepath.Base(path), err)
	}

	var parsed sessionFile
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadableSession, filepath.Base(path), err)
	}

	record := &core.SessionRecord{
		Path:       path,
		SourceFile: filepath.Base(path),
		CommitID:   CommitID(path),
	}

	for _, entry := range parsed.Messages {
		content, ok := entry.Content.(string)
		if !ok {
			continue
		}
		message := core.Message{
			ID:        scalarString(entry.ID),
			Type:      scalarString(entry.Type),
			Content:   content,
			Timestamp: scalarString(entry.Timestamp),
		}
		if core.ValidateMessage(message) != nil {
			continue
		}
		record.Messages = append(record.Messages, message)
	}

	return record, nil
}

// CommitID derives the session group from the archive layout: the base of
// the directory two levels above the session file.
func CommitID(path string) string {
	return filepath.Base(filepath.Dir(filepath.Dir(path)))
}

// scalarString renders a decoded JSON scalar as a string. Strings pass
// through, numbers and bools are formatted, everything else (null, arrays,
// objects) becomes empty.
func scalarString(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case float64, bool:
		return fmt.Sprintf("%v", s)
	default:
		return ""
	}
}
