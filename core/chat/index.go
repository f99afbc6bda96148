package chat

import (
	"context"
	"fmt"

	"github.com/gaurav-prasanna/interviewdigest/core"
	"github.com/gaurav-prasanna/interviewdigest/core/chunk"
	"github.com/gaurav-prasanna/interviewdigest/core/vectorstore"
)

// upsertBatch is the number of points sent per upsert call.
const upsertBatch = 64

// Store is the write side of the vector store.
type Store interface {
	Recreate(ctx context.Context, collection string, dimensions int) error
	Upsert(ctx context.Context, collection string, points []vectorstore.Point) error
}

// Indexer embeds documents into a freshly recreated collection.
type Indexer struct {
	Embedder core.Embedder
	Store    Store
	Chunker  *chunk.Chunker
	// OnChunk, when non-nil, is called after each chunk is embedded.
	OnChunk func(done, total int)
}

// Index chunks every document, embeds the chunks and replaces the collection
// with them. The collection is sized from the first embedding. It returns
// the number of points written; no documents leaves the collection alone.
func (ix *Indexer) Index(ctx context.Context, collection string, documents []string) (int, error) {
	type piece struct {
		text string
		doc  int
	}
	var pieces []piece
	for i, doc := range documents {
		for _, c := range ix.Chunker.ChunkDocument(doc) {
			pieces = append(pieces, piece{text: c, doc: i})
		}
	}
	if len(pieces) == 0 {
		return 0, nil
	}

	points := make([]vectorstore.Point, 0, len(pieces))
	for i, p := range pieces {
		vector, err := ix.Embedder.Embed(ctx, p.text)
		if err != nil {
			return 0, fmt.Errorf("embedding chunk %d: %w", i, err)
		}
		if len(points) > 0 && len(vector) != len(points[0].Vector) {
			return 0, fmt.Errorf("embedding chunk %d: got %d dimensions, want %d", i, len(vector), len(points[0].Vector))
		}
		points = append(points, vectorstore.NewPoint(vector, p.text, map[string]any{"document": p.doc}))
		if ix.OnChunk != nil {
			ix.OnChunk(i+1, len(pieces))
		}
	}

	if err := ix.Store.Recreate(ctx, collection, len(points[0].Vector)); err != nil {
		return 0, err
	}
	for start := 0; start < len(points); start += upsertBatch {
		end := min(start+upsertBatch, len(points))
		if err := ix.Store.Upsert(ctx, collection, points[start:end]); err != nil {
			return start, err
		}
	}
	return len(points), nil
}
