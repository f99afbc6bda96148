package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/interviewdigest/core/chat"
	"github.com/gaurav-prasanna/interviewdigest/core/chunk"
	"github.com/gaurav-prasanna/interviewdigest/core/embed"
	"github.com/gaurav-prasanna/interviewdigest/core/parse"
	"github.com/gaurav-prasanna/interviewdigest/core/render"
	"github.com/gaurav-prasanna/interviewdigest/core/vectorstore"
)

var (
	flagCollection string
	flagChunkSize  int
)

var indexCmd = &cobra.Command{
	Use:   "index <batch.json>",
	Short: "Embed a batch into the vector store for chat",
	Long: `Index extracts the batch, renders one document per interview, chunks long
documents, embeds the chunks with Ollama and replaces the Qdrant collection
with them.

Examples:
  interviewdigest index amazon_sde_1.json
  interviewdigest index amazon_sde_1.json --collection amazon --chunk_size 256`,
	Args: cobra.ExactArgs(1),
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)

	indexCmd.Flags().StringVar(&flagCollection, "collection", "", "Qdrant collection (default from config)")
	indexCmd.Flags().IntVar(&flagChunkSize, "chunk_size", 0, "Words per chunk (default from config)")
}

func runIndex(cmd *cobra.Command, args []string) error {
	items, _, _, err := loadBatch(args[0], "", "")
	if err != nil {
		return err
	}
	documents := render.Documents(parse.ExtractBatch(items))
	collection := collectionName()

	bar := newProgress("embedding")
	indexer := &chat.Indexer{
		Embedder: embed.NewOllama(cfg.Embed.BaseURL, cfg.Embed.Model),
		Store:    vectorstore.NewQdrant(cfg.Qdrant.URL),
		Chunker:  chunk.New(orDefault(flagChunkSize, cfg.Embed.ChunkSize)),
		OnChunk:  bar.update,
	}
	n, err := indexer.Index(cmd.Context(), collection, documents)
	bar.stop()
	if err != nil {
		return fmt.Errorf("indexing: %w", err)
	}
	logger.Info("indexed", "collection", collection, "documents", len(documents), "points", n)
	fmt.Fprintf(os.Stdout, "✓ Indexed %d chunks into %s\n", n, collection)
	return nil
}

func collectionName() string {
	if flagCollection != "" {
		return flagCollection
	}
	return cfg.Qdrant.Collection
}
