// Package chat answers questions about an indexed interview batch by
// retrieving the closest chunks and handing them to a chat model together
// with the conversation so far.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/interviewdigest/core"
	"github.com/gaurav-prasanna/interviewdigest/core/llm"
	"github.com/gaurav-prasanna/interviewdigest/core/vectorstore"
)

// DefaultTopK is the number of chunks retrieved per question.
const DefaultTopK = 5

// NotAvailable is the answer the model is told to give when the context
// does not cover the question.
const NotAvailable = "The information is not available in the provided transcript."

// instructions is the system prompt for every answer.
const instructions = `You are a helpful assistant answering questions about interview experiences.
The context holds details of interview rounds from one or more candidates for the same job.
Treat the interviews as if one person gave them all: give a generalized answer, never one per candidate.
Give a medium length answer. Avoid excessive asterisks; emojis are welcome.
Problem links for questions are listed after "Problem Links:" separated by commas; when asked for links, take them from there.
Use only the context. If it lacks the details needed, answer exactly:
**"` + NotAvailable + `"**`

// ErrEmptyQuestion is returned by Ask for a blank question.
var ErrEmptyQuestion = errors.New("empty question")

// Searcher finds the stored chunks closest to a vector.
type Searcher interface {
	Search(ctx context.Context, collection string, vector []float32, limit int) ([]vectorstore.Hit, error)
}

// Chatter sends a system instruction, prior turns and a new message to a
// chat model.
type Chatter interface {
	Chat(ctx context.Context, instructions string, history []llm.Message, input string) (string, error)
}

// Assistant keeps the conversation history of one session.
type Assistant struct {
	embedder   core.Embedder
	searcher   Searcher
	chatter    Chatter
	collection string
	topK       int
	history    []llm.Message
}

// New creates an Assistant over a collection. topK <= 0 uses DefaultTopK.
func New(embedder core.Embedder, searcher Searcher, chatter Chatter, collection string, topK int) *Assistant {
	if topK <= 0 {
		topK = DefaultTopK
	}
	return &Assistant{
		embedder:   embedder,
		searcher:   searcher,
		chatter:    chatter,
		collection: collection,
		topK:       topK,
	}
}

// Ask answers one question and appends the exchange to the history.
// A failed call leaves the history untouched.
func (a *Assistant) Ask(ctx context.Context, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", ErrEmptyQuestion
	}

	vector, err := a.embedder.Embed(ctx, question)
	if err != nil {
		return "", fmt.Errorf("embedding question: %w", err)
	}
	hits, err := a.searcher.Search(ctx, a.collection, vector, a.topK)
	if err != nil {
		return "", fmt.Errorf("searching %s: %w", a.collection, err)
	}

	answer, err := a.chatter.Chat(ctx, instructions, a.history, Prompt(hits, question))
	if err != nil {
		return "", fmt.Errorf("answering: %w", err)
	}
	a.history = append(a.history,
		llm.Message{Role: "user", Content: question},
		llm.Message{Role: "assistant", Content: answer},
	)
	return answer, nil
}

// History returns a copy of the turns so far.
func (a *Assistant) History() []llm.Message {
	return append([]llm.Message(nil), a.history...)
}

// Reset clears the conversation.
func (a *Assistant) Reset() {
	a.history = nil
}

// Prompt builds the user message from the retrieved chunks and the question.
func Prompt(hits []vectorstore.Hit, question string) string {
	var b strings.Builder
	b.WriteString("Context:\n")
	n := 0
	for _, h := range hits {
		text := strings.TrimSpace(h.Text())
		if text == "" {
			continue
		}
		if n > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(text)
		n++
	}
	if n == 0 {
		b.WriteString("(none)")
	}
	fmt.Fprintf(&b, "\n\nQuestion: %s\n\nAnswer:", question)
	return b.String()
}

// IsExit reports whether input ends the session.
func IsExit(input string) bool {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "exit", "quit", "bye":
		return true
	}
	return false
}
