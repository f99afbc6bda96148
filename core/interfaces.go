// Package core defines the pipeline interfaces and the interview document model.
// Each adapter stage is a small interface so commands can swap implementations
// and tests can stub them.
package core

import "context"

// FetchResult holds the raw HTML and response metadata from a fetch.
type FetchResult struct {
	URL        string
	StatusCode int
	HTML       string
}

// Listing is one interview link discovered on a listing or index page.
type Listing struct {
	Company string  `json:"company"`
	Role    string  `json:"role"`
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Years   float64 `json:"years,omitempty"`
}

// Fetcher retrieves raw HTML from a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}

// ContentExtractor pulls the main content from raw HTML, stripping noise.
type ContentExtractor interface {
	Extract(html string) (string, error)
}

// Normalizer converts cleaned HTML into Markdown.
type Normalizer interface {
	Normalize(html string) (string, error)
}

// Summarizer sends a single prompt to a language model and returns its reply.
type Summarizer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Embedder generates a vector embedding for a text input.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
