package chunk

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestChunkPacksLines(t *testing.T) {
	c := New(4)
	got := c.Chunk("a b\nc d\ne f\n\ng")
	assert.Equal(t, []string{"a b\nc d", "e f\n\ng"}, got)
}

func TestChunkSplitsLongLine(t *testing.T) {
	c := New(2)
	got := c.Chunk("one two three four five")
	assert.Equal(t, []string{"one two", "three four", "five"}, got)
}

func TestChunkEmpty(t *testing.T) {
	assert.Nil(t, New(10).Chunk(""))
	assert.Nil(t, New(10).Chunk("  \n \n"))
}

func TestNewDefaultSize(t *testing.T) {
	assert.Equal(t, 512, New(0).ChunkSize)
}

func TestChunkDocumentRepeatsHeader(t *testing.T) {
	doc := strings.Join([]string{
		"Company: Acme | Role: SDE",
		"Application Method: Campus",
		"Eligibility: N/A",
	}, "\n")
	got := New(5).ChunkDocument(doc)
	assert.Len(t, got, 2)
	for _, ch := range got {
		assert.True(t, strings.HasPrefix(ch, "Company: Acme | Role: SDE"), ch)
	}
}
