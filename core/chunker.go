package core

// Default windowing parameters. 1000-character windows with a 200-character
// overlap keep sentence fragments that straddle a boundary present in both
// neighboring chunks.
const (
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 200
)

// Chunker splits message content into overlapping fixed-size windows.
// The zero value is not usable; construct with NewChunker.
type Chunker struct {
	size    int
	overlap int
}

// NewChunker returns a Chunker with the given window size and overlap,
// both measured in characters. Size must be positive and overlap must be
// non-negative and strictly smaller than size, otherwise the windows could
// not advance.
func NewChunker(size, overlap int) (Chunker, error) {
	if size <= 0 {
		return Chunker{}, ErrInvalidChunking
	}
	if overlap < 0 || overlap >= size {
		return Chunker{}, ErrInvalidChunking
	}
	return Chunker{size: size, overlap: overlap}, nil
}

// DefaultChunker returns a Chunker with the default window parameters.
func DefaultChunker() Chunker {
	c, _ := NewChunker(DefaultChunkSize, DefaultChunkOverlap)
	return c
}

// ChunkText splits text with one-off window parameters and returns the
// chunk texts in order. Most callers hold a Chunker and use Split; this is
// the convenience form.
func ChunkText(text string, size, overlap int) ([]string, error) {
	c, err := NewChunker(size, overlap)
	if err != nil {
		return nil, err
	}
	chunks := c.Split(text)
	texts := make([]string, len(chunks))
	for i, chunk := range chunks {
		texts[i] = chunk.Text
	}
	return texts, nil
}

// Split cuts text into windows of at most the configured size, each window
// starting overlap characters before the previous one ended. Every
// character of the input appears in at least one chunk, chunks preserve
// input order, and splitting stops at the first window that reaches the end
// of the text. Empty input yields no chunks; input no longer than one
// window yields a single chunk.
//
// Windows are measured in runes so multi-byte characters are never split.
func (c Chunker) Split(text string) []Chunk {
	if text == "" {
		return nil
	}
	runes := []rune(text)
	if len(runes) <= c.size {
		return []Chunk{{Text: text, Index: 0}}
	}

	step := c.size - c.overlap
	var chunks []Chunk
	for start := 0; start < len(runes); start += step {
		end := start + c.size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, Chunk{Text: string(runes[start:end]), Index: len(chunks)})
		if end == len(runes) {
			break
		}
	}
	return chunks
}
