// Package output handles file naming, batch files and writing for
// interviewdigest outputs. Filenames are derived from the company and role
// (e.g., amazon_sde_1.json).
package output

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gaurav-prasanna/interviewdigest/core"
)

// defaultStem names outputs that have neither company nor role.
const defaultStem = "interviews"

// Writer writes rendered output to disk.
type Writer struct {
	OutputDir string
}

// New creates a Writer targeting the given output directory.
// If outputDir is empty, it defaults to the current working directory.
func New(outputDir string) (*Writer, error) {
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		outputDir = wd
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Writer{OutputDir: outputDir}, nil
}

// Path returns the output path for a company and role with the given
// extension.
func (w *Writer) Path(company, role, ext string) string {
	return filepath.Join(w.OutputDir, Stem(company, role)+ext)
}

// Write writes data under the name derived from company and role.
func (w *Writer) Write(company, role string, data []byte, ext string) (string, error) {
	path := w.Path(company, role, ext)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}

// WriteBatch writes scraped write-ups as an indented JSON array.
func (w *Writer) WriteBatch(company, role string, items []core.RawInterview) (string, error) {
	if items == nil {
		items = []core.RawInterview{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encoding batch: %w", err)
	}
	return w.Write(company, role, append(data, '\n'), ".json")
}

// ReadBatch loads a batch written by WriteBatch.
func ReadBatch(path string) ([]core.RawInterview, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading batch: %w", err)
	}
	var items []core.RawInterview
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decoding batch %s: %w", path, err)
	}
	return items, nil
}

// Stem joins the sanitized, lower-cased company and role.
// Example: ("Amazon", "SDE - 1") → amazon_sde_1
func Stem(company, role string) string {
	var parts []string
	for _, s := range []string{company, role} {
		if p := sanitize(strings.ToLower(s)); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return defaultStem
	}
	return strings.Join(parts, "_")
}

// sanitize replaces runs of non-alphanumeric characters with one underscore
// and trims underscores at either end.
func sanitize(s string) string {
	var b strings.Builder
	underscore := false
	for _, ch := range s {
		if (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') {
			b.WriteRune(ch)
			underscore = false
		} else if !underscore {
			b.WriteRune('_')
			underscore = true
		}
	}
	return strings.Trim(b.String(), "_")
}
