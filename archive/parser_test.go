package archive

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSession(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func sessionDir(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "abc123", "chats")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	return dir
}

func TestParseSessionFile(t *testing.T) {
	dir := sessionDir(t)
	path := writeSession(t, dir, "session-1.json", `{
		"messages": [
			{"id": "m1", "type": "user", "content": "Hello world", "timestamp": "2024-01-01T00:00:00Z"},
			{"id": "m2", "type": "gemini", "content": "Hi there", "timestamp": "2024-01-01T00:00:05Z"}
		]
	}`)

	record, err := ParseSessionFile(path)
	require.NoError(t, err)

	assert.Equal(t, path, record.Path)
	assert.Equal(t, "session-1.json", record.SourceFile)
	assert.Equal(t, "abc123", record.CommitID)
	require.Len(t, record.Messages, 2)
	assert.Equal(t, "m1", record.Messages[0].ID)
	assert.Equal(t, "user", record.Messages[0].Type)
	assert.Equal(t, "Hello world", record.Messages[0].Content)
	assert.Equal(t, "2024-01-01T00:00:00Z", record.Messages[0].Timestamp)
	assert.Equal(t, "Hi there", record.Messages[1].Content)
}

func TestParseSessionFile_DropsEmptyAndNonStringContent(t *testing.T) {
	dir := sessionDir(t)
	path := writeSession(t, dir, "session-2.json", `{
		"messages": [
			{"id": "m1", "content": ""},
			{"id": "m2", "content": null},
			{"id": "m3", "content": {"nested": true}},
			{"id": "m4", "content": 42},
			{"id": "m5", "content": "kept"}
		]
	}`)

	record, err := ParseSessionFile(path)
	require.NoError(t, err)
	require.Len(t, record.Messages, 1)
	assert.Equal(t, "m5", record.Messages[0].ID)
	assert.Equal(t, "kept", record.Messages[0].Content)
}

func TestParseSessionFile_ScalarCoercion(t *testing.T) {
	dir := sessionDir(t)
	path := writeSession(t, dir, "session-3.json", `{
		"messages": [
			{"id": 7, "type": true, "content": "x", "timestamp": null}
		]
	}`)

	record, err := ParseSessionFile(path)
	require.NoError(t, err)
	require.Len(t, record.Messages, 1)
	assert.Equal(t, "7", record.Messages[0].ID)
	assert.Equal(t, "true", record.Messages[0].Type)
	assert.Equal(t, "", record.Messages[0].Timestamp)
}

func TestParseSessionFile_MalformedJSON(t *testing.T) {
	dir := sessionDir(t)
	path := writeSession(t, dir, "session-4.json", `{"messages": [`)

	record, err := ParseSessionFile(path)
	assert.Nil(t, record)
	assert.True(t, errors.Is(err, ErrUnreadableSession))
}

func TestParseSessionFile_Missing(t *testing.T) {
	record, err := ParseSessionFile(filepath.Join(t.TempDir(), "chats", "session-9.json"))
	assert.Nil(t, record)
	assert.True(t, errors.Is(err, ErrUnreadableSession))
}

func TestParseSessionFile_NoMessagesKey(t *testing.T) {
	dir := sessionDir(t)
	path := writeSession(t, dir, "session-5.json", `{"other": 1}`)

	record, err := ParseSessionFile(path)
	require.NoError(t, err)
	assert.Empty(t, record.Messages)
}
