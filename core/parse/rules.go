package parse

import (
	"regexp"
	"strings"

	"github.com/gaurav-prasanna/interviewdigest/core"
	"github.com/gaurav-prasanna/interviewdigest/core/normalize"
)

// multiplicity says whether a rule stops at its first match.
type multiplicity int

const (
	firstMatch multiplicity = iota
	allMatches
)

// fieldRule is one labeled-field lookup evaluated against a bounded span.
//
// Without until, the value is capture group 1 of start. With until, the value
// is the text between the end of a start match and the first until match
// after it (or the end of the span), and scanning resumes where the value ends.
type fieldRule struct {
	name         string
	start        *regexp.Regexp
	until        *regexp.Regexp
	multiplicity multiplicity
	flatten      bool
}

// Rule names, also used as keys of the map returned by applyRules.
const (
	fieldApplication  = "application_method"
	fieldEligibility  = "eligibility"
	fieldPrepDuration = "preparation_duration"
	fieldTopics       = "topics"
	fieldTips         = "tips"
	fieldResumeTips   = "resume_tips"

	fieldMode                 = "mode"
	fieldDuration             = "duration"
	fieldDesignQuestion       = "system_design_question"
	fieldDesignApproach       = "system_design_approach"
	fieldApproach             = "approach"
	fieldLinks                = "links"
	fieldQuestionTitles       = "question_titles"
	fieldQuestionDifficulties = "question_difficulties"
)

// interviewRules apply to a whole interview segment.
var interviewRules = []fieldRule{
	{name: fieldApplication, start: regexp.MustCompile(`Application process\nWhere: (.+)`)},
	{name: fieldEligibility, start: regexp.MustCompile(`Eligibility: ([^\n]+)`)},
	{name: fieldPrepDuration, start: regexp.MustCompile(`Preparation\nDuration: ([^\n]+)`)},
	{name: fieldTopics, start: regexp.MustCompile(`Topics: ([^\n]+)`)},
	{name: fieldTips, start: regexp.MustCompile(`Tip \d+: (.+)`), multiplicity: allMatches},
	{
		name:         fieldResumeTips,
		start:        regexp.MustCompile(`Resume tip\n(?:Tip \d+: )?`),
		until:        regexp.MustCompile(`\nTip \d+:`),
		multiplicity: allMatches,
		flatten:      true,
	},
}

// roundRules apply to one round span only, so a label in round 2 can never
// fill a field of round 1.
var roundRules = []fieldRule{
	{name: fieldMode, start: regexp.MustCompile(`(?i)\bmode\b(?:\s+(?:is|was)\b)?[\s:–-]*([^\n]+)`)},
	{name: fieldDuration, start: regexp.MustCompile(`(?i)\bduration\b(?:\s+(?:is|was)\b)?[\s:–-]*([^\n]+)`)},
	{name: fieldDesignQuestion, start: regexp.MustCompile(`(?i)system design(?: question)?\s*:\s*([^\n]+)`)},
	{name: fieldDesignApproach, start: regexp.MustCompile(`(?i)design approach\s*:\s*([^\n]+)`)},
	{name: fieldLinks, start: regexp.MustCompile(`(https?://[^\s,)]+)`), multiplicity: allMatches},
}

// questionRules apply to a round body with its links trailer removed.
// Titles and difficulties are collected independently and zipped by index.
var questionRules = []fieldRule{
	{name: fieldQuestionTitles, start: regexp.MustCompile(`\d+\.\s+(.+?)\n(?:Easy|Moderate|Hard)`), multiplicity: allMatches},
	{name: fieldQuestionDifficulties, start: regexp.MustCompile(`\d+\.\s+.+?\n(Easy|Moderate|Hard)`), multiplicity: allMatches},
	{
		name:         fieldApproach,
		start:        regexp.MustCompile(`Problem approach\n`),
		until:        regexp.MustCompile(`\nSolve later|\n\d+\.\s`),
		multiplicity: allMatches,
		flatten:      true,
	},
}

// applyRules evaluates every rule against span. Rules that match nothing
// have no key in the result. Empty captures are kept so parallel lists stay
// aligned by index.
func applyRules(span string, rules []fieldRule) map[string][]string {
	out := make(map[string][]string, len(rules))
	for _, r := range rules {
		if values := r.find(span); len(values) > 0 {
			out[r.name] = values
		}
	}
	return out
}

func (r fieldRule) find(span string) []string {
	if r.until != nil {
		return r.findBounded(span)
	}

	limit := -1
	if r.multiplicity == firstMatch {
		limit = 1
	}
	var values []string
	for _, m := range r.start.FindAllStringSubmatch(span, limit) {
		values = append(values, r.clean(m[1]))
	}
	return values
}

func (r fieldRule) findBounded(span string) []string {
	var values []string
	pos := 0
	for pos < len(span) {
		loc := r.start.FindStringIndex(span[pos:])
		if loc == nil {
			break
		}
		bodyStart := pos + loc[1]
		rest := span[bodyStart:]
		end := len(rest)
		if u := r.until.FindStringIndex(rest); u != nil {
			end = u[0]
		}
		values = append(values, r.clean(rest[:end]))
		if r.multiplicity == firstMatch {
			break
		}
		next := bodyStart + end
		if next <= pos {
			next = pos + 1
		}
		pos = next
	}
	return values
}

func (r fieldRule) clean(v string) string {
	if r.flatten {
		return normalize.FlattenLines(v)
	}
	return strings.TrimSpace(v)
}

// scalar returns the first non-empty value under name as a Field.
func scalar(values map[string][]string, name string) core.Field {
	vs := values[name]
	if len(vs) == 0 || vs[0] == "" {
		return core.NotFound
	}
	return core.Found(vs[0])
}
