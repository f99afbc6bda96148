package render

import (
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/interviewdigest/core"
)

// MarkdownRenderer writes records as a Markdown digest: one "##" section per
// interview and one "###" section per round.
type MarkdownRenderer struct{}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// Render converts records into Markdown bytes.
func (r *MarkdownRenderer) Render(records []core.InterviewRecord) ([]byte, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("no interview records to render")
	}

	var b strings.Builder
	b.WriteString("# Interview Digest\n")
	for i, rec := range records {
		title := headerLine(rec)
		if title == "" {
			title = fmt.Sprintf("Interview %d", i+1)
		}
		fmt.Fprintf(&b, "\n## %s\n\n", title)
		fmt.Fprintf(&b, "- **Application Method:** %s\n", rec.ApplicationMethod)
		fmt.Fprintf(&b, "- **Eligibility:** %s\n", rec.Eligibility)
		fmt.Fprintf(&b, "- **Preparation Duration:** %s\n", rec.PreparationDuration)
		if len(rec.Topics) > 0 {
			fmt.Fprintf(&b, "- **Topics:** %s\n", strings.Join(rec.Topics, ", "))
		}
		writeList(&b, "Tips", rec.Tips)
		writeList(&b, "Resume Tips", rec.ResumeTips)

		for _, round := range rec.Rounds {
			fmt.Fprintf(&b, "\n### Round %d\n\n", round.Number)
			fmt.Fprintf(&b, "Mode: %s · Duration: %s\n\n", round.Mode, round.Duration)
			for j, q := range round.Questions {
				line := q.Title
				if q.Link != "" {
					line = fmt.Sprintf("[%s](%s)", q.Title, q.Link)
				}
				if q.Difficulty != core.Unknown && q.Difficulty != "" {
					line += fmt.Sprintf(" *(%s)*", q.Difficulty)
				}
				fmt.Fprintf(&b, "%d. %s\n", j+1, line)
				if q.Approach != "" {
					fmt.Fprintf(&b, "   - %s\n", q.Approach)
				}
			}
			if sd := round.SystemDesign; sd != nil {
				fmt.Fprintf(&b, "\n**System design:** %s\n", sd.Question)
				if sd.Approach != "" {
					fmt.Fprintf(&b, "\n> %s\n", sd.Approach)
				}
			}
		}
	}
	return []byte(b.String()), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}

func writeList(b *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "\n**%s**\n\n", heading)
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
}
