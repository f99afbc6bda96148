// Package crawl discovers interview write-ups on the listing sites and
// scrapes them into raw text, keeping site-specific crawling separate from
// the extraction pipeline.
package crawl

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/gaurav-prasanna/interviewdigest/core"
)

// DefaultIndexURL is the company-wise index of experienced-hire write-ups.
const DefaultIndexURL = "https://www.geeksforgeeks.org/interview-experiences/experienced-interview-experiences-company-wise/"

// ErrCompanyNotFound is returned when the index has no block for a company.
var ErrCompanyNotFound = errors.New("company not found in index")

// labelRegex matches the "Name :" text that opens each company block.
var labelRegex = regexp.MustCompile(`^\s*[A-Za-z0-9 &]+\s*:$`)

// DiscoverCompany fetches the index page and returns the write-up links
// listed under the company's label, up to the next company label. Off-site
// links and static assets are skipped. Roles and years are inferred from each
// link title.
func DiscoverCompany(ctx context.Context, fetcher core.Fetcher, indexURL, company string) ([]core.Listing, error) {
	label := CompanyLabel(company)
	if label == "" {
		return nil, fmt.Errorf("empty company name")
	}

	result, err := fetcher.Fetch(ctx, indexURL)
	if err != nil {
		return nil, fmt.Errorf("fetching index: %w", err)
	}
	doc, err := html.Parse(strings.NewReader(result.HTML))
	if err != nil {
		return nil, fmt.Errorf("parsing index: %w", err)
	}
	base, _ := url.Parse(indexURL)

	nodes := flatten(doc)
	start := -1
	for i, n := range nodes {
		if n.Type == html.TextNode && strings.EqualFold(strings.TrimSpace(n.Data), label) {
			start = i
			break
		}
	}
	if start < 0 {
		return nil, fmt.Errorf("%q: %w", company, ErrCompanyNotFound)
	}

	name := strings.TrimSuffix(label, " :")
	queue := NewQueue()
	for _, n := range nodes[start+1:] {
		if n.Type == html.TextNode && !insideAnchor(n) {
			text := strings.TrimSpace(n.Data)
			if labelRegex.MatchString(text) && !strings.EqualFold(text, label) {
				break
			}
			continue
		}
		if n.Type != html.ElementNode || n.Data != "a" {
			continue
		}
		href := attr(n, "href")
		if href == "" {
			continue
		}
		link := resolveURL(href, base)
		if link == "" || IsStaticAsset(link) || (base != nil && !IsSameDomain(link, base.Host)) {
			continue
		}
		title := strings.TrimSpace(textContent(n))
		years, role := InferRole(title)
		queue.Add(core.Listing{Company: name, Role: role, Title: title, URL: link, Years: years})
	}
	return queue.All(), nil
}

// flatten lists every node of the tree in document order.
func flatten(root *html.Node) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		out = append(out, n)
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return out
}

func insideAnchor(n *html.Node) bool {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && p.Data == "a" {
			return true
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var b strings.Builder
	for _, d := range flatten(n) {
		if d.Type == html.TextNode {
			b.WriteString(d.Data)
		}
	}
	return b.String()
}

// resolveURL resolves a potentially relative URL against a base.
func resolveURL(href string, base *url.URL) string {
	if strings.HasPrefix(href, "mailto:") || strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "tel:") || strings.HasPrefix(href, "#") {
		return ""
	}

	parsed, err := url.Parse(href)
	if err != nil {
		return ""
	}
	if base == nil {
		return parsed.String()
	}
	resolved := base.ResolveReference(parsed)
	resolved.Fragment = ""
	return resolved.String()
}
