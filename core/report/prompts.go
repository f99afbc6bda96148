package report

import (
	"fmt"
	"strings"
)

const journeyPrompt = `You are an expert interview coach. Analyze the provided candidate journeys.
Return a single JSON object with keys: "summary_paragraph", "mistakes_to_avoid", and "key_tips".
- "summary_paragraph": A concise paragraph covering preparation timeframes and strategies.
- "mistakes_to_avoid": A list of key mistakes candidates should avoid.
- "key_tips": A list of actionable tips for success.

Journeys data:
%s`

const roundPrompt = `You are a senior technical interviewer. Summarize the interview experiences for Round %d.
Return a single JSON object with keys: "overview", "coding_questions", and "problem_links".
- "overview": A paragraph on the round's format, duration, and difficulty.
- "coding_questions": A list of strings, each describing a question and its topic.
- "problem_links": A list of all unique problem URLs mentioned.

Round %d data:
%s`

// JourneyPrompt builds the journey summary prompt from column samples.
func JourneyPrompt(samples []string) string {
	return fmt.Sprintf(journeyPrompt, strings.Join(samples, SampleSeparator))
}

// RoundPrompt builds the summary prompt for round n.
func RoundPrompt(n int, samples []string) string {
	return fmt.Sprintf(roundPrompt, n, n, strings.Join(samples, SampleSeparator))
}
