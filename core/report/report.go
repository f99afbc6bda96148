// Package report assembles the interview insights report from a reshaped
// table: a preparation-journey summary, one summary per round and the coding
// topic distribution.
package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/gaurav-prasanna/interviewdigest/core"
	"github.com/gaurav-prasanna/interviewdigest/core/llm"
	"github.com/gaurav-prasanna/interviewdigest/core/normalize"
	"github.com/gaurav-prasanna/interviewdigest/core/reshape"
	"github.com/gaurav-prasanna/interviewdigest/core/stats"
)

// SampleSeparator joins the values of one column into a prompt sample.
const SampleSeparator = "\n---\n"

// JourneySummary is the summary of all preparation journeys.
type JourneySummary struct {
	Summary  string   `json:"summary_paragraph"`
	Mistakes []string `json:"mistakes_to_avoid"`
	Tips     []string `json:"key_tips"`
}

// RoundSummary is the summary of one round across interviews.
type RoundSummary struct {
	Number    int      `json:"-"`
	Overview  string   `json:"overview"`
	Questions []string `json:"coding_questions"`
	Links     []string `json:"problem_links"`
	// Samples is the number of interviews that reached this round.
	Samples int `json:"-"`
}

// Report is everything the PDF renderer lays out.
type Report struct {
	Company     string
	Role        string
	GeneratedAt time.Time
	Interviews  int
	Journey     JourneySummary
	Rounds      []RoundSummary
	Topics      stats.Counts
}

// Options tunes Build.
type Options struct {
	Company string
	Role    string
	// Topics is the vocabulary for the distribution; nil uses stats.DefaultTopics.
	Topics []string
	Logger *log.Logger
	Now    func() time.Time
}

// Build summarizes the table. A nil summarizer builds the report offline:
// summaries stay empty and round links come from the text itself. A failed
// or malformed summary degrades the same way for that section only.
func Build(ctx context.Context, table reshape.Table, summarizer core.Summarizer, opts Options) (*Report, error) {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Topics == nil {
		opts.Topics = stats.DefaultTopics
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	rep := &Report{
		Company:     opts.Company,
		Role:        opts.Role,
		GeneratedAt: opts.Now(),
		Interviews:  len(table.Records),
	}

	if samples := Samples(table.Column(reshape.JourneyColumn)); len(samples) > 0 && summarizer != nil {
		prompt := JourneyPrompt(samples)
		if err := summarize(ctx, summarizer, prompt, llm.JourneySchema, &rep.Journey); err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			logger.Warn("journey summary unavailable", "err", err)
			rep.Journey = JourneySummary{}
		}
	}

	for i, col := range table.RoundColumns() {
		n := i + 1
		samples := Samples(table.Column(col))
		round := RoundSummary{Number: n, Samples: len(samples)}
		if len(samples) > 0 && summarizer != nil {
			if err := summarize(ctx, summarizer, RoundPrompt(n, samples), llm.RoundSchema, &round); err != nil {
				if ctx.Err() != nil {
					return nil, ctx.Err()
				}
				logger.Warn("round summary unavailable", "round", n, "err", err)
				round = RoundSummary{Number: n, Samples: len(samples)}
			}
		}
		if len(round.Links) == 0 {
			round.Links = uniqueLinks(samples)
		}
		rep.Rounds = append(rep.Rounds, round)
	}

	rep.Topics = stats.CountTopics(roundDocuments(table), opts.Topics)
	return rep, nil
}

func summarize(ctx context.Context, s core.Summarizer, prompt string, schema map[string]any, out any) error {
	answer, err := s.Complete(ctx, prompt)
	if err != nil {
		return fmt.Errorf("completing prompt: %w", err)
	}
	return llm.Decode(answer, schema, out)
}

// Samples returns the trimmed non-empty values of a column.
func Samples(column []core.Field) []string {
	var out []string
	for _, f := range column {
		if v, ok := f.Get(); ok {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}

// roundDocuments joins the round cells of each record into one document, so
// topic counts measure how many interviews mention a topic.
func roundDocuments(table reshape.Table) []string {
	cols := table.RoundColumns()
	docs := make([]string, 0, len(table.Records))
	for _, rec := range table.Records {
		var parts []string
		for _, col := range cols {
			if v, ok := rec[col].Get(); ok {
				parts = append(parts, v)
			}
		}
		docs = append(docs, strings.Join(parts, "\n"))
	}
	return docs
}

func uniqueLinks(samples []string) []string {
	var links []string
	seen := map[string]bool{}
	for _, s := range samples {
		for _, l := range normalize.Links(s) {
			if !seen[l] {
				seen[l] = true
				links = append(links, l)
			}
		}
	}
	return links
}
