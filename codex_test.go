package codex

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/debugonezero/codex/ai"
	"github.com/debugonezero/codex/ai/mock"
	"github.com/debugonezero/codex/storage/badger"
)

func TestNew_Defaults(t *testing.T) {
	root := t.TempDir()

	c, err := New(root)
	require.NoError(t, err)
	defer c.Close()

	assert.Equal(t, DefaultCollection, c.Collection())
	assert.NotNil(t, c.VectorStore())

	// The ingest ledger lives alongside the archive.
	_, err = os.Stat(filepath.Join(root, ledgerDirName))
	assert.NoError(t, err)
}

func TestNew_WithoutLedger(t *testing.T) {
	root := t.TempDir()

	c, err := New(root, WithoutLedger())
	require.NoError(t, err)
	defer c.Close()

	_, err = os.Stat(filepath.Join(root, ledgerDirName))
	assert.True(t, os.IsNotExist(err))
}

func TestNew_WithLedgerPath(t *testing.T) {
	root := t.TempDir()
	ledgerPath := filepath.Join(t.TempDir(), "ledger")

	c, err := New(root, WithLedgerPath(ledgerPath))
	require.NoError(t, err)
	defer c.Close()

	_, err = os.Stat(ledgerPath)
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(root, ledgerDirName))
	assert.True(t, os.IsNotExist(err))
}

func TestNew_WithCollection(t *testing.T) {
	c, err := New(t.TempDir(), WithoutLedger(), WithCollection("scratch"))
	require.NoError(t, err)
	defer c.Close()

	assert.Equal(t, "scratch", c.Collection())
}

func TestNew_InvalidAIConfig(t *testing.T) {
	_, err := New(t.TempDir(), WithAIConfig(&ai.Config{}))
	assert.Error(t, err)
}

func TestNew_WithInjectedComponents(t *testing.T) {
	ledger, err := badger.NewMemoryLedger()
	require.NoError(t, err)

	root := t.TempDir()
	c, err := New(root,
		WithProvider(mock.NewMockProvider()),
		WithIngestLedger(ledger))
	require.NoError(t, err)
	defer c.Close()

	// The injected ledger is used in place of an on-disk one.
	_, err = os.Stat(filepath.Join(root, ledgerDirName))
	assert.True(t, os.IsNotExist(err))

	pipeline, err := c.NewIngestionPipeline()
	require.NoError(t, err)
	assert.NotNil(t, pipeline)
}

func TestCodex_Constructors(t *testing.T) {
	c, err := New(t.TempDir(), WithoutLedger())
	require.NoError(t, err)
	defer c.Close()

	pipeline, err := c.NewIngestionPipeline()
	require.NoError(t, err)
	assert.NotNil(t, pipeline)

	watcher, err := c.NewWatcher(t.TempDir(), nil)
	require.NoError(t, err)
	assert.NotNil(t, watcher)
	defer watcher.Stop()

	searcher, err := c.NewSearcher()
	require.NoError(t, err)
	assert.NotNil(t, searcher)
}
