// Package render turns structured interview records into output formats:
// flat documents for the retrieval index, JSON, and the PDF report.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gaurav-prasanna/interviewdigest/core"
	"github.com/gaurav-prasanna/interviewdigest/core/normalize"
	"github.com/gaurav-prasanna/interviewdigest/core/parse"
)

// Documents renders one flat text document per record, in input order.
// The layout is the unit indexed for question answering, so section order and
// the "N/A" defaults are part of the output contract.
func Documents(records []core.InterviewRecord) []string {
	docs := make([]string, 0, len(records))
	for _, rec := range records {
		docs = append(docs, Document(rec))
	}
	return docs
}

// Document renders a single record.
func Document(rec core.InterviewRecord) string {
	var lines []string
	add := func(format string, args ...any) {
		lines = append(lines, fmt.Sprintf(format, args...))
	}

	if header := headerLine(rec); header != "" {
		lines = append(lines, header)
	}

	add("Application Method: %s", rec.ApplicationMethod)
	add("Eligibility: %s", rec.Eligibility)
	add("Preparation Duration: %s", rec.PreparationDuration)
	topics := core.NotAvailable
	if len(rec.Topics) > 0 {
		topics = strings.Join(rec.Topics, ", ")
	}
	add("Topics Covered: %s", topics)

	if len(rec.Tips) > 0 {
		add("\nGeneral Tips:")
		for _, tip := range rec.Tips {
			add("- %s", tip)
		}
	}
	if len(rec.ResumeTips) > 0 {
		add("\nResume Tips:")
		for _, tip := range rec.ResumeTips {
			add("- %s", tip)
		}
	}

	if len(rec.Rounds) > 0 {
		add("\nInterview Rounds:")
	}
	for _, r := range rec.Rounds {
		lines = append(lines, roundLines(r)...)
	}

	return strings.TrimSpace(strings.Join(lines, "\n"))
}

func headerLine(rec core.InterviewRecord) string {
	var parts []string
	if c, ok := rec.Company.Get(); ok {
		parts = append(parts, "Company: "+c)
	}
	if r, ok := rec.Role.Get(); ok {
		parts = append(parts, "Role: "+r)
	}
	return strings.Join(parts, " | ")
}

func roundLines(r core.RoundRecord) []string {
	lines := []string{
		fmt.Sprintf("\nRound %d | Mode: %s | Duration: %s | Date: %s", r.Number, r.Mode, r.Duration, r.InterviewDate),
	}

	if len(r.Questions) > 0 {
		lines = append(lines, "Questions:")
		for i, q := range r.Questions {
			title := q.Title
			if title == "" {
				title = fmt.Sprintf("Question %d", i+1)
			}
			if q.Difficulty != "" && q.Difficulty != core.Unknown {
				title = fmt.Sprintf("%s (%s)", title, q.Difficulty)
			}
			lines = append(lines, "  • "+title)
			if q.Approach != "" {
				lines = append(lines, "    Approach: "+q.Approach)
			}
			if q.Link != "" {
				lines = append(lines, "    Link: "+q.Link)
			}
		}
	} else {
		lines = append(lines, "  No questions listed.")
	}

	if sd := r.SystemDesign; sd != nil && sd.Question != "" {
		lines = append(lines, "System Design Question:", "  Question: "+sd.Question)
		if sd.Approach != "" {
			lines = append(lines, "  Approach: "+sd.Approach)
		}
	}

	if len(r.Links) > 0 {
		lines = append(lines, "  Links:")
		for _, l := range r.Links {
			lines = append(lines, "    - "+l)
		}
	}
	return lines
}

// RoundLinks returns the links of round n found directly in raw text, from
// the "### Round <n>" heading to the next round heading. It returns nil when
// the round is absent.
func RoundLinks(raw string, n int) []string {
	_, body, ok := strings.Cut(raw, parse.RoundMarker+" "+strconv.Itoa(n))
	if !ok {
		return nil
	}
	body, _, _ = strings.Cut(body, parse.RoundMarker)
	return normalize.Links(body)
}
