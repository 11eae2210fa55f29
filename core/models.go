package core

import (
	"encoding/binary"
	"fmt"

	"github.com/go-crypt/x/blake2b"
	"github.com/google/uuid"
)

// pointNamespace is the fixed UUIDv5 namespace for memory point identity.
// Changing it would re-key every stored point, so it stays constant for the
// lifetime of a collection.
var pointNamespace = uuid.MustParse("b3a7f0d2-4c1e-4f7a-9e25-8c60d1a25c14")

// Message is a single entry in a session transcript. Timestamp is kept as
// the transcript's original string; the pipeline never interprets it, only
// carries it into the stored payload.
type Message struct {
	ID        string
	Type      string
	Content   string
	Timestamp string
}

// SessionRecord is one parsed transcript file: an ordered sequence of
// messages plus the provenance needed to trace points back to their origin.
type SessionRecord struct {
	Path       string // absolute path the record was read from
	SourceFile string // base name, stored in point payloads
	CommitID   string // session group, derived from the directory layout
	Messages   []Message
}

// Chunk is a bounded window of one message's content, the unit of
// embedding. Index is the chunk's ordinal within its message, from 0.
type Chunk struct {
	Text  string
	Index int
}

// PointPayload enumerates every field persisted alongside a vector.
// Content, SourceFile, CommitID and ChunkIndex are always populated;
// Timestamp, EventType and OriginalMessageID mirror whatever the
// transcript held and may be empty.
type PointPayload struct {
	Content           string
	Timestamp         string
	EventType         string
	OriginalMessageID string
	SourceFile        string
	CommitID          string
	ChunkIndex        int
}

// MemoryPoint is the persisted unit: a deterministic identifier, an
// embedding vector, and full provenance.
type MemoryPoint struct {
	ID      string
	Vector  []float32
	Payload PointPayload
}

// SearchResult is one retrieval hit, ranked by descending similarity.
type SearchResult struct {
	ID      string
	Score   float32
	Payload PointPayload
}

// PointID derives the deterministic identifier for one chunk of one
// message. Identical (sourceFile, messageID, chunkIndex) triples always map
// to the same UUID, which makes re-ingesting an unchanged file a no-op
// upsert instead of a duplicate. The string fields are quoted so a
// separator character inside one field cannot alias another triple.
func PointID(sourceFile, messageID string, chunkIndex int) string {
	name := fmt.Sprintf("%q|%q|%d", sourceFile, messageID, chunkIndex)
	return uuid.NewSHA1(pointNamespace, []byte(name)).String()
}

// ContentDigest hashes raw file content with BLAKE2b down to 64 bits.
// The ingest ledger compares digests to detect unchanged files.
func ContentDigest(data []byte) uint64 {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write(data)
	sum := h.Sum(nil)
	return binary.LittleEndian.Uint64(sum)
}
