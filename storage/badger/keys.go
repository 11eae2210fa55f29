package badger

import "fmt"

// Key prefixes for different data types
const (
	ledgerEntryPrefix = "ingrec"
)

// makeLedgerKey generates a key for an ingest ledger entry by file path.
// Paths are unique within an archive, so the path itself is the key.
func makeLedgerKey(path string) []byte {
	return []byte(fmt.Sprintf("%s:%s", ledgerEntryPrefix, path))
}
