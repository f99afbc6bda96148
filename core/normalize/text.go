package normalize

import (
	"regexp"
	"strings"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	whitespaceRegex = regexp.MustCompile(`\s+`)
	blankLinesRegex = regexp.MustCompile(`\n\s*\n\s*\n+`)
	linkRegex       = regexp.MustCompile(`https?://[^\s,)]+`)
)

// Text prepares scraped text for pattern matching: NFC composition and
// Unix line endings. Regex labels like "Tip 1:" then match regardless of
// how the browser serialized the page.
func Text(s string) string {
	out, _, err := transform.String(transform.Chain(norm.NFC), s)
	if err != nil {
		out = s
	}
	out = strings.ReplaceAll(out, "\r\n", "\n")
	return strings.ReplaceAll(out, "\r", "\n")
}

// CollapseWhitespace replaces every whitespace run with a single space.
func CollapseWhitespace(s string) string {
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(s, " "))
}

// FlattenLines trims s and turns internal line breaks into spaces.
func FlattenLines(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), "\n", " ")
}

// CollapseBlankLines squeezes runs of blank lines down to one.
func CollapseBlankLines(s string) string {
	return strings.TrimSpace(blankLinesRegex.ReplaceAllString(s, "\n\n"))
}

// SplitTrim splits s on sep, trims each part and drops empty ones.
func SplitTrim(s, sep string) []string {
	var out []string
	for _, part := range strings.Split(s, sep) {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// SplitNonBlank splits s on a literal marker and drops whitespace-only segments.
func SplitNonBlank(s, marker string) []string {
	var out []string
	for _, seg := range strings.Split(s, marker) {
		if strings.TrimSpace(seg) != "" {
			out = append(out, seg)
		}
	}
	return out
}

// Links returns every URL-looking token in s, in order of appearance.
func Links(s string) []string {
	return linkRegex.FindAllString(s, -1)
}
