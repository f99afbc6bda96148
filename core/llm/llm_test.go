package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/openai/openai-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCleanJSON(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: `{"a":1}`, want: `{"a":1}`},
		{name: "json fence", in: "```json\n{\"a\":1}\n```", want: `{"a":1}`},
		{name: "bare fence", in: "```\n{\"a\":1}```", want: `{"a":1}`},
		{name: "padded", in: "  \n```json\n{}\n```\n ", want: `{}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanJSON(tt.in))
		})
	}
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(RoundSchema, []byte(`{"overview":"OA","problem_links":["https://x.com"]}`)))
	assert.Error(t, Validate(RoundSchema, []byte(`{"coding_questions":[]}`)))
	assert.Error(t, Validate(RoundSchema, []byte(`{"overview":"OA","problem_links":"oops"}`)))
	assert.Error(t, Validate(JourneySchema, []byte(`not json`)))
}

func TestDecode(t *testing.T) {
	var out struct {
		Summary string   `json:"summary_paragraph"`
		Tips    []string `json:"key_tips"`
	}
	err := Decode("```json\n{\"summary_paragraph\":\"Prep\",\"key_tips\":[\"a\"]}\n```", JourneySchema, &out)
	require.NoError(t, err)
	assert.Equal(t, "Prep", out.Summary)
	assert.Equal(t, []string{"a"}, out.Tips)
}

func TestBuildMessages(t *testing.T) {
	tests := []struct {
		name         string
		instructions string
		history      []Message
		wantLen      int
	}{
		{name: "input only", wantLen: 1},
		{name: "with instructions", instructions: "be brief", wantLen: 2},
		{
			name:         "with history",
			instructions: "be brief",
			history:      []Message{{Role: "user", Content: "hi"}, {Role: "assistant", Content: "hello"}},
			wantLen:      4,
		},
		{name: "blank history skipped", history: []Message{{Role: "user", Content: "  "}}, wantLen: 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Len(t, buildMessages(tt.instructions, "question", tt.history), tt.wantLen)
		})
	}
}

func TestExtractText(t *testing.T) {
	assert.Equal(t, "", extractText(nil))
	assert.Equal(t, "", extractText(&openai.ChatCompletion{}))
	assert.Equal(t, "Hello", extractText(&openai.ChatCompletion{
		Choices: []openai.ChatCompletionChoice{{Message: openai.ChatCompletionMessage{Content: "  Hello "}}},
	}))
}

func completionServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "test-model", body["model"])

		w.Header().Set("Content-Type", "application/json")
		resp := map[string]any{
			"id":      "cmpl-1",
			"object":  "chat.completion",
			"created": 0,
			"model":   "test-model",
			"choices": []any{map[string]any{
				"index":         0,
				"finish_reason": "stop",
				"message":       map[string]any{"role": "assistant", "content": content},
			}},
		}
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
}

func TestComplete(t *testing.T) {
	srv := completionServer(t, " The answer \n")
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, APIKey: "test-key", Model: "test-model"})
	got, err := c.Complete(context.Background(), "question")
	require.NoError(t, err)
	assert.Equal(t, "The answer", got)
}

func TestCompleteEmpty(t *testing.T) {
	srv := completionServer(t, "   ")
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, APIKey: "test-key", Model: "test-model"})
	_, err := c.Complete(context.Background(), "question")
	assert.True(t, errors.Is(err, ErrEmptyResponse))
}

func TestCompleteServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"bad key"}}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, APIKey: "k"})
	_, err := c.Complete(context.Background(), "q")
	assert.Error(t, err)
}
