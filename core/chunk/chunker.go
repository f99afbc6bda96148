// Package chunk splits rendered interview documents into word-bounded chunks
// for embedding. Words approximate tokens; chunks do not overlap.
package chunk

import "strings"

// Chunker packs whole lines into chunks of at most ChunkSize words.
type Chunker struct {
	ChunkSize int // number of words per chunk
}

// New creates a Chunker with the given chunk size.
// Defaults to 512 if chunkSize <= 0.
func New(chunkSize int) *Chunker {
	if chunkSize <= 0 {
		chunkSize = 512
	}
	return &Chunker{ChunkSize: chunkSize}
}

// Chunk splits text on line boundaries, packing consecutive lines while they
// fit. A single line longer than ChunkSize is cut into word windows.
// Line breaks inside a chunk are kept.
func (c *Chunker) Chunk(text string) []string {
	var (
		chunks  []string
		current []string
		words   int
	)
	flush := func() {
		if len(current) > 0 {
			chunks = append(chunks, strings.TrimSpace(strings.Join(current, "\n")))
		}
		current, words = nil, 0
	}

	for _, line := range strings.Split(text, "\n") {
		fields := strings.Fields(line)
		n := len(fields)
		if n > c.ChunkSize {
			flush()
			for i := 0; i < n; i += c.ChunkSize {
				end := min(i+c.ChunkSize, n)
				chunks = append(chunks, strings.Join(fields[i:end], " "))
			}
			continue
		}
		if words+n > c.ChunkSize {
			flush()
		}
		current = append(current, line)
		words += n
	}
	flush()

	out := chunks[:0]
	for _, ch := range chunks {
		if ch != "" {
			out = append(out, ch)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// ChunkDocument chunks a rendered document and repeats its header line
// ("Company: ... | Role: ...") at the top of every chunk after the first, so
// each chunk stays attributable when retrieved on its own.
func (c *Chunker) ChunkDocument(doc string) []string {
	chunks := c.Chunk(doc)
	header, _, _ := strings.Cut(doc, "\n")
	if !strings.HasPrefix(header, "Company:") && !strings.HasPrefix(header, "Role:") {
		return chunks
	}
	for i := 1; i < len(chunks); i++ {
		if !strings.HasPrefix(chunks[i], header) {
			chunks[i] = header + "\n" + chunks[i]
		}
	}
	return chunks
}
