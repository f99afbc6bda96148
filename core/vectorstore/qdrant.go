// Package vectorstore stores embedded document chunks in Qdrant and searches
// them by similarity.
package vectorstore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultBaseURL = "http://localhost:6333"
	// TextKey is the payload key holding the chunk text.
	TextKey = "text"
)

// Point is one vector with its payload.
type Point struct {
	ID      string         `json:"id"`
	Vector  []float32      `json:"vector"`
	Payload map[string]any `json:"payload"`
}

// NewPoint builds a point with a fresh UUID, which Qdrant accepts as an ID.
func NewPoint(vector []float32, text string, meta map[string]any) Point {
	payload := make(map[string]any, len(meta)+1)
	for k, v := range meta {
		payload[k] = v
	}
	payload[TextKey] = text
	return Point{ID: uuid.NewString(), Vector: vector, Payload: payload}
}

// Hit is one search result.
type Hit struct {
	ID      string         `json:"id"`
	Score   float32        `json:"score"`
	Payload map[string]any `json:"payload"`
}

// Text returns the chunk text stored with the hit.
func (h Hit) Text() string {
	s, _ := h.Payload[TextKey].(string)
	return s
}

// Qdrant talks to Qdrant's REST API.
type Qdrant struct {
	baseURL string
	client  *http.Client
}

// NewQdrant creates a store for the given base URL.
func NewQdrant(baseURL string) *Qdrant {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Qdrant{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

// Recreate drops the collection if present and creates it empty with
// cosine distance over vectors of the given size.
func (q *Qdrant) Recreate(ctx context.Context, collection string, dimensions int) error {
	exists, err := q.exists(ctx, collection)
	if err != nil {
		return err
	}
	if exists {
		if err := q.do(ctx, http.MethodDelete, "/collections/"+collection, nil, nil); err != nil {
			return fmt.Errorf("deleting collection %s: %w", collection, err)
		}
	}
	body := map[string]any{
		"vectors": map[string]any{"size": dimensions, "distance": "Cosine"},
	}
	if err := q.do(ctx, http.MethodPut, "/collections/"+collection, body, nil); err != nil {
		return fmt.Errorf("creating collection %s: %w", collection, err)
	}
	return nil
}

// Upsert writes points and waits until they are searchable.
func (q *Qdrant) Upsert(ctx context.Context, collection string, points []Point) error {
	if len(points) == 0 {
		return nil
	}
	body := map[string]any{"points": points}
	if err := q.do(ctx, http.MethodPut, "/collections/"+collection+"/points?wait=true", body, nil); err != nil {
		return fmt.Errorf("upserting %d points: %w", len(points), err)
	}
	return nil
}

// Search returns up to limit points nearest to vector, best first.
func (q *Qdrant) Search(ctx context.Context, collection string, vector []float32, limit int) ([]Hit, error) {
	body := map[string]any{
		"vector":       vector,
		"limit":        limit,
		"with_payload": true,
	}
	var out struct {
		Result []struct {
			ID      any            `json:"id"`
			Score   float32        `json:"score"`
			Payload map[string]any `json:"payload"`
		} `json:"result"`
	}
	if err := q.do(ctx, http.MethodPost, "/collections/"+collection+"/points/search", body, &out); err != nil {
		return nil, fmt.Errorf("searching %s: %w", collection, err)
	}

	hits := make([]Hit, 0, len(out.Result))
	for _, r := range out.Result {
		h := Hit{Score: r.Score, Payload: r.Payload}
		switch id := r.ID.(type) {
		case string:
			h.ID = id
		case float64:
			h.ID = fmt.Sprintf("%d", int64(id))
		}
		hits = append(hits, h)
	}
	return hits, nil
}

func (q *Qdrant) exists(ctx context.Context, collection string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, q.baseURL+"/collections/"+collection, nil)
	if err != nil {
		return false, fmt.Errorf("creating request: %w", err)
	}
	resp, err := q.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("calling Qdrant: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		body, _ := io.ReadAll(resp.Body)
		return false, fmt.Errorf("qdrant error (status %d): %s", resp.StatusCode, string(body))
	}
}

// do sends a JSON request and decodes the response into out when non-nil.
func (q *Qdrant) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, q.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := q.client.Do(req)
	if err != nil {
		return fmt.Errorf("calling Qdrant: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("qdrant error (status %d): %s", resp.StatusCode, string(respBody))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
