// JSON and plain-text batch renderers. Absent fields encode as null in JSON.

package render

import (
	"encoding/json"
	"fmt"

	"github.com/gaurav-prasanna/interviewdigest/core"
)

// JSONRenderer produces indented JSON for a batch of records.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// Render converts records into JSON bytes. A nil batch renders as [].
func (r *JSONRenderer) Render(records []core.InterviewRecord) ([]byte, error) {
	if records == nil {
		records = []core.InterviewRecord{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return data, nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}

// DocumentRenderer joins flat documents into one text file.
type DocumentRenderer struct{}

// NewDocumentRenderer creates a DocumentRenderer.
func NewDocumentRenderer() *DocumentRenderer {
	return &DocumentRenderer{}
}

// DocumentSeparator sits between documents in the text output.
const DocumentSeparator = "\n\n---\n\n"

// Render joins the documents of all records.
func (r *DocumentRenderer) Render(records []core.InterviewRecord) ([]byte, error) {
	docs := Documents(records)
	if len(docs) == 0 {
		return nil, fmt.Errorf("no interview records to render")
	}
	out := ""
	for i, d := range docs {
		if i > 0 {
			out += DocumentSeparator
		}
		out += d
	}
	return []byte(out + "\n"), nil
}

// Extension returns the file extension for document output.
func (r *DocumentRenderer) Extension() string {
	return ".txt"
}

// Renderer turns a batch of records into one output file body.
type Renderer interface {
	Render(records []core.InterviewRecord) ([]byte, error)
	Extension() string
}

// ForFormat returns the batch renderer for a --format value.
func ForFormat(format string) (Renderer, error) {
	switch format {
	case "txt", "text", "":
		return NewDocumentRenderer(), nil
	case "json":
		return NewJSONRenderer(), nil
	case "md", "markdown":
		return NewMarkdownRenderer(), nil
	default:
		return nil, fmt.Errorf("unknown format %q (want txt, json or md)", format)
	}
}
