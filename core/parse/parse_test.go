package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/interviewdigest/core"
)

const endToEndRaw = "## Interview Preparation Journey\nWorked hard.\n\n## Interview Rounds\n\n### Round 1\nMode: Virtual\n1. Two Sum\nEasy\nProblem approach\nUse hashmap\n\nProblem Links: https://x.com/p1"

const fullRaw = `## Interview Preparation Journey
Application process
Where: Campus
Eligibility: Above 7 CGPA
Preparation
Duration: 3 months
Topics: Arrays, Dynamic Programming ,Graphs
Tip 1: Practice daily
Tip 2: Revise core subjects
Resume tip
Tip 1: Keep it to one page
and quantify impact
Tip 2: Mention projects

## Interview Rounds

### Round 1
Duration: 60 minutes
Interview date: 12 Jan 2024
Mode: Online coding test
1. Two Sum
Easy
Problem approach
Use a hashmap
of seen values
Solve later
2. Merge K Sorted Lists
Hard
Problem approach
Min-heap of heads
Solve later

🔗 Problem Links: https://x.com/two-sum, https://x.com/merge-k

### Round 2
Mode: Video call
System design: Design a URL shortener
Design approach: Hash plus key-value store
1. LRU Cache
Moderate

🔗 Problem Links: null
`

func TestExtractEndToEnd(t *testing.T) {
	records := Extract(endToEndRaw)
	require.Len(t, records, 1)

	rec := records[0]
	require.Len(t, rec.Rounds, 1)
	round := rec.Rounds[0]
	assert.Equal(t, 1, round.Number)
	assert.Equal(t, core.Found("Virtual"), round.Mode)
	assert.Equal(t, core.NotFound, round.Duration)
	require.Len(t, round.Questions, 1)
	assert.Equal(t, "Two Sum", round.Questions[0].Title)
	assert.Equal(t, core.Easy, round.Questions[0].Difficulty)
	assert.Equal(t, "Use hashmap", round.Questions[0].Approach)
	assert.Equal(t, []string{"https://x.com/p1"}, round.Links)
}

func TestExtractFullRecord(t *testing.T) {
	records := Extract(fullRaw)
	require.Len(t, records, 1)
	rec := records[0]

	assert.Equal(t, core.Found("Campus"), rec.ApplicationMethod)
	assert.Equal(t, core.Found("Above 7 CGPA"), rec.Eligibility)
	assert.Equal(t, core.Found("3 months"), rec.PreparationDuration)
	assert.Equal(t, []string{"Arrays", "Dynamic Programming", "Graphs"}, rec.Topics)
	assert.Equal(t, []string{
		"Practice daily",
		"Revise core subjects",
		"Keep it to one page",
		"Mention projects",
	}, rec.Tips)
	assert.Equal(t, []string{"Keep it to one page and quantify impact"}, rec.ResumeTips)

	require.Len(t, rec.Rounds, 2)

	r1 := rec.Rounds[0]
	assert.Equal(t, core.Found("Online coding test"), r1.Mode)
	assert.Equal(t, core.Found("60 minutes"), r1.Duration)
	assert.Equal(t, core.NotFound, r1.InterviewDate)
	require.Len(t, r1.Questions, 2)
	assert.Equal(t, core.QuestionRecord{
		Title:      "Two Sum",
		Difficulty: core.Easy,
		Approach:   "Use a hashmap of seen values",
		Link:       "https://x.com/two-sum",
	}, r1.Questions[0])
	assert.Equal(t, "Merge K Sorted Lists", r1.Questions[1].Title)
	assert.Equal(t, core.Hard, r1.Questions[1].Difficulty)
	assert.Equal(t, "Min-heap of heads", r1.Questions[1].Approach)
	assert.Equal(t, "https://x.com/merge-k", r1.Questions[1].Link)
	assert.Equal(t, []string{"https://x.com/two-sum", "https://x.com/merge-k"}, r1.Links)
	assert.Nil(t, r1.SystemDesign)

	r2 := rec.Rounds[1]
	assert.Equal(t, 2, r2.Number)
	assert.Equal(t, core.Found("Video call"), r2.Mode)
	// Round 1's duration must not leak into round 2.
	assert.Equal(t, core.NotFound, r2.Duration)
	require.Len(t, r2.Questions, 1)
	assert.Equal(t, core.Moderate, r2.Questions[0].Difficulty)
	assert.Equal(t, "", r2.Questions[0].Approach)
	assert.Empty(t, r2.Links)
	require.NotNil(t, r2.SystemDesign)
	assert.Equal(t, "Design a URL shortener", r2.SystemDesign.Question)
	assert.Equal(t, "Hash plus key-value store", r2.SystemDesign.Approach)
}

func TestExtractEmptyInput(t *testing.T) {
	assert.Empty(t, Extract(""))
	assert.Empty(t, Extract("  \n\t "))
	assert.Empty(t, Extract(JourneyMarker+"\n  \n"+JourneyMarker))
}

func TestExtractNoMarkers(t *testing.T) {
	records := Extract("Just a paragraph about the interview.")
	require.Len(t, records, 1)
	rec := records[0]
	assert.Equal(t, core.NotFound, rec.ApplicationMethod)
	assert.Equal(t, core.NotFound, rec.Eligibility)
	assert.Equal(t, core.NotFound, rec.PreparationDuration)
	assert.Empty(t, rec.Topics)
	assert.Empty(t, rec.Tips)
	assert.Empty(t, rec.ResumeTips)
	assert.Empty(t, rec.Rounds)
}

func TestExtractSplitsOnJourneyMarker(t *testing.T) {
	raw := JourneyMarker + "\nEligibility: A\n" + JourneyMarker + "\nEligibility: B\n### Round 1\n1. X\nHard\n"
	records := Extract(raw)
	require.Len(t, records, 2)
	assert.Equal(t, core.Found("A"), records[0].Eligibility)
	assert.Empty(t, records[0].Rounds)
	assert.Equal(t, core.Found("B"), records[1].Eligibility)
	require.Len(t, records[1].Rounds, 1)
}

func TestRoundDiscoveryStopsAtGap(t *testing.T) {
	raw := "### Round 1\n1. A\nEasy\n### Round 3\n1. B\nHard\n### Round 4\n"
	records := Extract(raw)
	require.Len(t, records, 1)
	require.Len(t, records[0].Rounds, 1)
	assert.Equal(t, 1, records[0].Rounds[0].Number)
	// The span of round 1 ends at the round 3 marker.
	require.Len(t, records[0].Rounds[0].Questions, 1)
	assert.Equal(t, "A", records[0].Rounds[0].Questions[0].Title)
}

func TestRoundDiscoveryNeedsRoundOne(t *testing.T) {
	records := Extract("### Round 2\nMode: Virtual\n")
	require.Len(t, records, 1)
	assert.Empty(t, records[0].Rounds)
}

func TestRoundMarkerWithoutBody(t *testing.T) {
	records := Extract("### Round 1")
	require.Len(t, records, 1)
	require.Len(t, records[0].Rounds, 1)
	round := records[0].Rounds[0]
	assert.Equal(t, core.NotFound, round.Mode)
	assert.Empty(t, round.Questions)
}

func TestPairQuestionsPositional(t *testing.T) {
	got := pairQuestions([]string{"Two Sum", "Merge Lists"}, []string{"Easy"}, nil)
	require.Len(t, got, 2)
	assert.Equal(t, core.Easy, got[0].Difficulty)
	assert.Equal(t, core.Unknown, got[1].Difficulty)
	assert.Equal(t, "", got[1].Approach)
}

func TestModeDoesNotMatchModerate(t *testing.T) {
	records := Extract("### Round 1\n1. Two Sum\nModerate\n")
	require.Len(t, records, 1)
	assert.Equal(t, core.NotFound, records[0].Rounds[0].Mode)
	assert.Equal(t, core.Moderate, records[0].Rounds[0].Questions[0].Difficulty)
}

func TestModeAndDurationSkipSeparators(t *testing.T) {
	tests := []struct {
		span     string
		mode     string
		duration string
	}{
		{span: "Mode: Online\nDuration: 45 mins", mode: "Online", duration: "45 mins"},
		{span: "Round duration - 60 minutes\nMode – Offline", mode: "Offline", duration: "60 minutes"},
		{span: "Interview mode is video\nDuration was 30 minutes", mode: "video", duration: "30 minutes"},
	}
	for _, tt := range tests {
		t.Run(tt.span, func(t *testing.T) {
			got := applyRules(tt.span, roundRules)
			assert.Equal(t, []string{tt.mode}, got[fieldMode])
			assert.Equal(t, []string{tt.duration}, got[fieldDuration])
		})
	}
}

// A lone resume tip has no following tip marker, so it runs to the end of
// its segment.
func TestSingleResumeTipRunsToSegmentEnd(t *testing.T) {
	got := applyRules("Resume tip\nTip 1: Keep it short\nno fluff", interviewRules)
	assert.Equal(t, []string{"Keep it short no fluff"}, got[fieldResumeTips])
}

func TestLinksNotAssignedWhenCountsDiffer(t *testing.T) {
	raw := "### Round 1\n1. A\nEasy\n2. B\nHard\n\n🔗 Problem Links: https://x.com/a\n"
	round := Extract(raw)[0].Rounds[0]
	require.Len(t, round.Questions, 2)
	assert.Empty(t, round.Questions[0].Link)
	assert.Equal(t, []string{"https://x.com/a"}, round.Links)
}

func TestScalarFirstMatchWins(t *testing.T) {
	rec := Extract("Eligibility: first\nEligibility: second\n")[0]
	assert.Equal(t, core.Found("first"), rec.Eligibility)
}

func TestExtractBatchStampsSource(t *testing.T) {
	items := []core.RawInterview{
		{Company: "Acme", Role: "SDE - 1", Description: endToEndRaw},
		{Company: "Blank", Description: "   "},
		{Description: "Eligibility: none"},
	}
	records := ExtractBatch(items)
	require.Len(t, records, 2)
	assert.Equal(t, core.Found("Acme"), records[0].Company)
	assert.Equal(t, core.Found("SDE - 1"), records[0].Role)
	assert.Equal(t, core.NotFound, records[1].Company)
	assert.Equal(t, core.Found("none"), records[1].Eligibility)
}

func TestApplyRulesBounded(t *testing.T) {
	span := "Problem approach\nfirst\nline\nSolve later\nProblem approach\nsecond\n3. Next"
	got := applyRules(span, questionRules)
	assert.Equal(t, []string{"first line", "second"}, got[fieldApproach])
	_, ok := got[fieldQuestionTitles]
	assert.False(t, ok)
}
