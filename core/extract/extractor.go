// Package extract implements the ContentExtractor interface for second-site
// write-ups. It isolates the main content from a full HTML page by:
//  1. Removing noise elements (nav, footer, scripts, images, etc.)
//  2. Finding the best content container (div.text, div.entry-content,
//     article, div.content, then body)
//  3. Sectioning the container on round headings
package extract

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/gaurav-prasanna/interviewdigest/core"
)

// noiseSelectors are HTML elements removed before extraction.
var noiseSelectors = []string{
	"script", "style", "noscript",
	"nav", "footer", "header",
	"img", "picture", "figure", "figcaption",
	"iframe", "video", "audio",
	"svg", "canvas",
	"form", "button", "input", "select", "textarea",
	".sidebar", ".menu", ".navigation", ".ads", ".advertisement",
}

// containerSelectors are tried in order; the first match holds the write-up.
var containerSelectors = []string{"div.text", "div.entry-content", "article", "div.content", "body"}

// headingSelector finds candidate round headings inside the container.
const headingSelector = "strong, h2, h3, h4"

// roundHeadingRegex matches heading text that opens an interview round.
var roundHeadingRegex = regexp.MustCompile(`(?i)round|interview|telephonic|f2f|phone|onsite|technical|\bhr\b|managerial|written|coding|design|screening|assessment|test`)

// Section is one round heading and the HTML that follows it.
type Section struct {
	Title string
	HTML  string
}

// Page is a write-up split into its parts.
type Page struct {
	// Intro is the HTML before the first round heading, when the headings
	// sit directly in the container.
	Intro    string
	Sections []Section
	// Body is the cleaned container HTML.
	Body string
}

// HTMLExtractor strips noise from HTML and returns the main content fragment.
type HTMLExtractor struct{}

var _ core.ContentExtractor = (*HTMLExtractor)(nil)

// New creates an HTMLExtractor.
func New() *HTMLExtractor {
	return &HTMLExtractor{}
}

// Extract returns the round sections as <h3> blocks, or the whole container
// when the page has no round headings.
func (e *HTMLExtractor) Extract(raw string) (string, error) {
	page, err := e.Parse(raw)
	if err != nil {
		return "", err
	}
	if len(page.Sections) == 0 {
		return page.Body, nil
	}
	var b strings.Builder
	for i, s := range page.Sections {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "<h3>%s</h3>\n%s\n", html.EscapeString(s.Title), s.HTML)
	}
	return b.String(), nil
}

// Parse cleans the page and splits its content container into sections.
// A heading section runs until the next round heading among its siblings;
// headings whose section is empty are dropped.
func (e *HTMLExtractor) Parse(raw string) (Page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return Page{}, fmt.Errorf("parsing HTML: %w", err)
	}

	for _, sel := range noiseSelectors {
		doc.Find(sel).Remove()
	}

	var content *goquery.Selection
	for _, sel := range containerSelectors {
		if found := doc.Find(sel); found.Length() > 0 {
			content = found.First()
			break
		}
	}
	if content == nil {
		return Page{}, fmt.Errorf("no content container found in HTML")
	}

	body, err := goquery.OuterHtml(content)
	if err != nil {
		return Page{}, fmt.Errorf("serializing content: %w", err)
	}
	page := Page{Body: body}

	seen := make(map[*html.Node]bool)
	var firstAnchor *html.Node
	content.Find(headingSelector).Each(func(_ int, s *goquery.Selection) {
		title := strings.TrimSpace(s.Text())
		if !roundHeadingRegex.MatchString(title) {
			return
		}
		anchor := headingBlock(s.Nodes[0], content.Nodes[0])
		if seen[anchor] {
			return
		}
		seen[anchor] = true

		var buf bytes.Buffer
		for n := anchor.NextSibling; n != nil && !isRoundHeading(n); n = n.NextSibling {
			if n.Type == html.CommentNode {
				continue
			}
			if err := html.Render(&buf, n); err != nil {
				return
			}
		}
		section := strings.TrimSpace(buf.String())
		if section == "" {
			return
		}
		if firstAnchor == nil {
			firstAnchor = anchor
		}
		page.Sections = append(page.Sections, Section{Title: title, HTML: section})
	})

	if firstAnchor != nil && firstAnchor.Parent == content.Nodes[0] {
		var buf bytes.Buffer
		for n := content.Nodes[0].FirstChild; n != nil && n != firstAnchor; n = n.NextSibling {
			if n.Type != html.CommentNode {
				_ = html.Render(&buf, n)
			}
		}
		page.Intro = strings.TrimSpace(buf.String())
	}
	return page, nil
}

// headingBlock widens a heading to its enclosing block when the block holds
// nothing but the heading, as in <p><strong>Round 1</strong></p>.
func headingBlock(n, container *html.Node) *html.Node {
	for p := n.Parent; p != nil && p != container && p.Type == html.ElementNode; p = p.Parent {
		if !isBlock(p.Data) || strings.TrimSpace(nodeText(p)) != strings.TrimSpace(nodeText(n)) {
			break
		}
		n = p
	}
	return n
}

// isRoundHeading reports whether n is, or is a block made only of, a heading
// whose text opens a round.
func isRoundHeading(n *html.Node) bool {
	if n.Type != html.ElementNode {
		return false
	}
	switch n.Data {
	case "strong", "h2", "h3", "h4":
		return roundHeadingRegex.MatchString(nodeText(n))
	}
	if !isBlock(n.Data) {
		return false
	}
	text := strings.TrimSpace(nodeText(n))
	if text == "" {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode && strings.TrimSpace(c.Data) == "" {
			continue
		}
		return strings.TrimSpace(nodeText(c)) == text && isRoundHeading(c)
	}
	return false
}

func isBlock(tag string) bool {
	switch tag {
	case "p", "div", "h2", "h3", "h4", "b", "span":
		return true
	}
	return false
}

func nodeText(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(nodeText(c))
	}
	return b.String()
}
