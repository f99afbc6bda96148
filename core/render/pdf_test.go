package render

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/interviewdigest/core/report"
	"github.com/gaurav-prasanna/interviewdigest/core/stats"
)

func TestRenderReport(t *testing.T) {
	rep := &report.Report{
		Company:     "Acme",
		Role:        "SDE - 1",
		GeneratedAt: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		Interviews:  2,
		Journey: report.JourneySummary{
			Summary:  "Most candidates prepared for two months – café style.",
			Mistakes: []string{"• Skipping mocks"},
			Tips:     []string{"Practice 🚀 daily"},
		},
		Rounds: []report.RoundSummary{
			{Number: 1, Samples: 2, Overview: "Online test", Questions: []string{"Two Sum (Array)"}, Links: []string{"https://x.com/a"}},
			{Number: 2, Samples: 1},
		},
		Topics: stats.Counts{{Topic: "Array", Count: 2}, {Topic: "DP", Count: 1}},
	}

	data, err := NewPDFRenderer().RenderReport(rep)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestRenderReportEmpty(t *testing.T) {
	data, err := NewPDFRenderer().RenderReport(&report.Report{})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))

	_, err = NewPDFRenderer().RenderReport(nil)
	assert.Error(t, err)
}

func TestAsciiPunct(t *testing.T) {
	assert.Equal(t, `"it's" - ok `, asciiPunct("“it’s” – ok 🚀"))
	assert.Equal(t, "café", asciiPunct("café"))
}
