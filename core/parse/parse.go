// Package parse turns raw interview write-ups into structured records.
//
// The input dialect is the one produced by the listing scraper: an optional
// "## Interview Preparation Journey" section, then "### Round N" sections whose
// bodies hold numbered questions, difficulty tokens, "Problem approach" blocks
// and a "Problem Links:" trailer. Every lookup is a pattern match; a missing
// marker degrades the field to its default and never stops extraction.
package parse

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/gaurav-prasanna/interviewdigest/core"
	"github.com/gaurav-prasanna/interviewdigest/core/normalize"
)

const (
	// JourneyMarker separates interviews in concatenated raw text.
	JourneyMarker = "## Interview Preparation Journey"
	// RoundsMarker opens the rounds section of one write-up.
	RoundsMarker = "## Interview Rounds"
	// RoundMarker prefixes every round heading.
	RoundMarker = "### Round"
)

var (
	roundMarkerRegex = regexp.MustCompile(`### Round (\d+)`)
	trailerRegex     = regexp.MustCompile(`(?m)^.*Problem Links:`)
)

// Extract splits raw text on the journey marker and parses each non-blank
// segment into one record. Empty or whitespace-only input yields nil.
func Extract(raw string) []core.InterviewRecord {
	var records []core.InterviewRecord
	for _, segment := range normalize.SplitNonBlank(normalize.Text(raw), JourneyMarker) {
		records = append(records, extractInterview(segment))
	}
	return records
}

// ExtractBatch extracts every scraped write-up and stamps the company and
// role of its source row on the resulting records. Output order follows items.
func ExtractBatch(items []core.RawInterview) []core.InterviewRecord {
	var records []core.InterviewRecord
	for _, item := range items {
		for _, rec := range Extract(item.Description) {
			if c := strings.TrimSpace(item.Company); c != "" {
				rec.Company = core.Found(c)
			}
			if r := strings.TrimSpace(item.Role); r != "" {
				rec.Role = core.Found(r)
			}
			records = append(records, rec)
		}
	}
	return records
}

func extractInterview(segment string) core.InterviewRecord {
	values := applyRules(segment, interviewRules)

	rec := core.InterviewRecord{
		ApplicationMethod:   scalar(values, fieldApplication),
		Eligibility:         scalar(values, fieldEligibility),
		PreparationDuration: scalar(values, fieldPrepDuration),
		Tips:                values[fieldTips],
		ResumeTips:          values[fieldResumeTips],
		Rounds:              extractRounds(segment),
	}
	if topics, ok := values[fieldTopics]; ok {
		rec.Topics = normalize.SplitTrim(topics[0], ",")
	}
	return rec
}

// roundSpan is the text owned by one "### Round N" marker.
type roundSpan struct {
	number int
	text   string
}

// findRoundSpans locates round markers and keeps the unbroken run 1, 2, 3...
// Discovery stops at the first marker whose number breaks the sequence, so
// "Round 1 ... Round 3" yields only round 1. Each span ends where the next
// marker begins, whatever its number.
func findRoundSpans(segment string) []roundSpan {
	matches := roundMarkerRegex.FindAllStringSubmatchIndex(segment, -1)

	var spans []roundSpan
	for i, m := range matches {
		n, err := strconv.Atoi(segment[m[2]:m[3]])
		if err != nil || n != len(spans)+1 {
			break
		}
		end := len(segment)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}
		spans = append(spans, roundSpan{number: n, text: segment[m[1]:end]})
	}
	return spans
}

func extractRounds(segment string) []core.RoundRecord {
	var rounds []core.RoundRecord
	for _, span := range findRoundSpans(segment) {
		rounds = append(rounds, extractRound(span))
	}
	return rounds
}

func extractRound(span roundSpan) core.RoundRecord {
	values := applyRules(span.text, roundRules)
	body, trailer := splitTrailer(span.text)

	round := core.RoundRecord{
		Number:    span.number,
		Mode:      scalar(values, fieldMode),
		Duration:  scalar(values, fieldDuration),
		Questions: extractQuestions(body),
		Links:     values[fieldLinks],
	}
	if q, ok := scalar(values, fieldDesignQuestion).Get(); ok {
		round.SystemDesign = &core.SystemDesignQuestion{
			Question: q,
			Approach: scalar(values, fieldDesignApproach).Or(""),
		}
	}

	// One resolved link per question means the trailer lines up with them.
	trailerLinks := applyRules(trailer, roundRules)[fieldLinks]
	if len(trailerLinks) > 0 && len(trailerLinks) == len(round.Questions) {
		for i := range round.Questions {
			round.Questions[i].Link = trailerLinks[i]
		}
	}
	return round
}

// splitTrailer cuts the "Problem Links:" trailer line off a round body.
func splitTrailer(span string) (body, trailer string) {
	loc := trailerRegex.FindStringIndex(span)
	if loc == nil {
		return span, ""
	}
	return span[:loc[0]], span[loc[0]:]
}

func extractQuestions(body string) []core.QuestionRecord {
	values := applyRules(body, questionRules)
	return pairQuestions(
		values[fieldQuestionTitles],
		values[fieldQuestionDifficulties],
		values[fieldApproach],
	)
}

// pairQuestions zips the three independently matched lists by position.
// A title without a difficulty at the same index gets Unknown and one
// without an approach gets "", rather than borrowing a later entry.
func pairQuestions(titles, difficulties, approaches []string) []core.QuestionRecord {
	var questions []core.QuestionRecord
	for i, title := range titles {
		q := core.QuestionRecord{
			Title:      title,
			Difficulty: core.Unknown,
		}
		if i < len(difficulties) {
			q.Difficulty = core.ParseDifficulty(difficulties[i])
		}
		if i < len(approaches) {
			q.Approach = approaches[i]
		}
		questions = append(questions, q)
	}
	return questions
}
