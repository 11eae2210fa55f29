package archive

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// chatsDir is the directory name that holds session transcripts inside
// each session group.
const chatsDir = "chats"

// MatchesSessionFile reports whether a path names a session transcript:
// a .json file whose base name starts with "session-" inside a chats
// directory. The watcher applies the same test to creation events so batch
// and live ingestion agree on what counts as a session file.
func MatchesSessionFile(path string) bool {
	base := filepath.Base(path)
	if filepath.Ext(base) != ".json" {
		return false
	}
	if !strings.HasPrefix(base, "session-") {
		return false
	}
	return filepath.Base(filepath.Dir(path)) == chatsDir
}

// Scanner discovers session files under an archive root.
type Scanner struct {
	Root string
}

// Scan walks the root and returns every session file path in sorted order,
// so repeated runs process files deterministically. Returns
// ErrNoSessionFiles when the walk completes without a single match;
// directories that cannot be read abort the walk.
func (s Scanner) Scan() ([]string, error) {
	var files []string
	err := filepath.WalkDir(s.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if MatchesSessionFile(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning archive %s: %w", s.Root, err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: under %s", ErrNoSessionFiles, s.Root)
	}
	sort.Strings(files)
	return files, nil
}
