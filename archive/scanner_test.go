package archive

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchesSessionFile(t *testing.T) {
	tests := []struct {
		name string
		path string
		want bool
	}{
		{name: "session file in chats", path: "/a/commit/chats/session-1.json", want: true},
		{name: "wrong extension", path: "/a/commit/chats/session-1.txt", want: false},
		{name: "wrong prefix", path: "/a/commit/chats/notes.json", want: false},
		{name: "outside chats", path: "/a/commit/logs/session-1.json", want: false},
		{name: "chats nested deeper", path: "/a/b/c/chats/session-x.json", want: true},
		{name: "bare filename", path: "session-1.json", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchesSessionFile(tt.path))
		})
	}
}

func TestScanner_Scan(t *testing.T) {
	root := t.TempDir()
	mk := func(parts ...string) string {
		path := filepath.Join(append([]string{root}, parts...)...)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))
		return path
	}

	b := mk("commit-b", "chats", "session-2.json")
	a := mk("commit-a", "chats", "session-1.json")
	mk("commit-a", "chats", "readme.txt")
	mk("commit-a", "logs", "session-3.json")
	mk("commit-c", "chats", "other.json")

	files, err := Scanner{Root: root}.Scan()
	require.NoError(t, err)
	assert.Equal(t, []string{a, b}, files)
}

func TestScanner_Scan_Empty(t *testing.T) {
	files, err := Scanner{Root: t.TempDir()}.Scan()
	assert.Nil(t, files)
	assert.True(t, errors.Is(err, ErrNoSessionFiles))
}
