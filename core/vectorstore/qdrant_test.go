package vectorstore

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPoint(t *testing.T) {
	p := NewPoint([]float32{1, 2}, "chunk", map[string]any{"company": "Acme"})
	_, err := uuid.Parse(p.ID)
	require.NoError(t, err)
	assert.Equal(t, "chunk", p.Payload[TextKey])
	assert.Equal(t, "Acme", p.Payload["company"])
}

func TestRecreateDropsExisting(t *testing.T) {
	var (
		mu    sync.Mutex
		calls []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		calls = append(calls, r.Method+" "+r.URL.Path)
		mu.Unlock()
		if r.Method == http.MethodPut {
			var body map[string]map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, float64(768), body["vectors"]["size"])
			assert.Equal(t, "Cosine", body["vectors"]["distance"])
		}
		_, _ = w.Write([]byte(`{"result":true}`))
	}))
	defer srv.Close()

	require.NoError(t, NewQdrant(srv.URL).Recreate(context.Background(), "interviews", 768))
	assert.Equal(t, []string{
		"GET /collections/interviews",
		"DELETE /collections/interviews",
		"PUT /collections/interviews",
	}, calls)
}

func TestRecreateMissingCollection(t *testing.T) {
	var calls []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method)
		if r.Method == http.MethodGet {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"result":true}`))
	}))
	defer srv.Close()

	require.NoError(t, NewQdrant(srv.URL).Recreate(context.Background(), "c", 3))
	assert.Equal(t, []string{http.MethodGet, http.MethodPut}, calls)
}

func TestUpsertAndSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/collections/c/points":
			assert.Equal(t, "true", r.URL.Query().Get("wait"))
			var body struct {
				Points []Point `json:"points"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Len(t, body.Points, 1)
			_, _ = w.Write([]byte(`{"result":{"status":"completed"}}`))
		case "/collections/c/points/search":
			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, float64(5), body["limit"])
			assert.Equal(t, true, body["with_payload"])
			_, _ = w.Write([]byte(`{"result":[{"id":"a","score":0.9,"payload":{"text":"Round 1"}},{"id":7,"score":0.5,"payload":{}}]}`))
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	store := NewQdrant(srv.URL)
	ctx := context.Background()
	require.NoError(t, store.Upsert(ctx, "c", []Point{NewPoint([]float32{1}, "Round 1", nil)}))
	require.NoError(t, store.Upsert(ctx, "c", nil))

	hits, err := store.Search(ctx, "c", []float32{1}, 5)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, "a", hits[0].ID)
	assert.Equal(t, "Round 1", hits[0].Text())
	assert.Equal(t, "7", hits[1].ID)
	assert.Equal(t, "", hits[1].Text())
}

func TestSearchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"status":{"error":"wrong dim"}}`))
	}))
	defer srv.Close()

	_, err := NewQdrant(srv.URL).Search(context.Background(), "c", []float32{1}, 5)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wrong dim")
}
