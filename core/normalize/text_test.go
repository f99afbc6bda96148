package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestText(t *testing.T) {
	// "e" + combining acute composes to a single rune under NFC.
	assert.Equal(t, "caf\u00e9\nline", Text("cafe\u0301\r\nline"))
	assert.Equal(t, "a\nb", Text("a\rb"))
}

func TestCollapseWhitespace(t *testing.T) {
	assert.Equal(t, "a b c", CollapseWhitespace("  a \n\t b   c \n"))
	assert.Equal(t, "", CollapseWhitespace(" \n "))
}

func TestFlattenLines(t *testing.T) {
	assert.Equal(t, "Keep it one page and quantify", FlattenLines("\nKeep it one page\nand quantify\n"))
}

func TestCollapseBlankLines(t *testing.T) {
	assert.Equal(t, "a\n\nb", CollapseBlankLines("a\n\n \n\n\nb\n"))
}

func TestSplitTrim(t *testing.T) {
	assert.Equal(t, []string{"Arrays", "DP", "Graphs"}, SplitTrim(" Arrays, DP ,, Graphs ", ","))
	assert.Nil(t, SplitTrim(" , ", ","))
}

func TestSplitNonBlank(t *testing.T) {
	got := SplitNonBlank("\n## J\nfirst\n## J\n  \n## J\nsecond", "## J")
	assert.Equal(t, []string{"\nfirst\n", "\nsecond"}, got)
}

func TestMarkdownNormalizer(t *testing.T) {
	md, err := New().Normalize("<div><h3>Round 1</h3><p>Two Sum</p><p>Easy</p></div>")
	require.NoError(t, err)
	assert.Contains(t, md, "### Round 1")
	assert.Contains(t, md, "Two Sum")
}

func TestLinks(t *testing.T) {
	got := Links("see https://a.com/x, (http://b.org/y) and https://c.io/z\nnull")
	assert.Equal(t, []string{"https://a.com/x", "http://b.org/y", "https://c.io/z"}, got)
	assert.Empty(t, Links("Problem Links: null"))
}
