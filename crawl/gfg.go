package crawl

import (
	"context"
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/interviewdigest/core"
	"github.com/gaurav-prasanna/interviewdigest/core/extract"
	"github.com/gaurav-prasanna/interviewdigest/core/normalize"
)

// PageScraper reads second-site write-ups over plain HTTP.
type PageScraper struct {
	Fetcher    core.Fetcher
	Extractor  *extract.HTMLExtractor
	Normalizer core.Normalizer
}

// NewPageScraper wires a fetcher to the default extractor and Markdown
// normalizer.
func NewPageScraper(fetcher core.Fetcher) *PageScraper {
	return &PageScraper{
		Fetcher:    fetcher,
		Extractor:  extract.New(),
		Normalizer: normalize.New(),
	}
}

// Scrape fetches one write-up and composes its round sections into the
// extractor's dialect. It implements the per-job function handed to Run.
func (s *PageScraper) Scrape(ctx context.Context, l core.Listing) (core.RawInterview, error) {
	result, err := s.Fetcher.Fetch(ctx, l.URL)
	if err != nil {
		return core.RawInterview{}, err
	}
	desc, err := s.Compose(result.HTML)
	if err != nil {
		return core.RawInterview{}, fmt.Errorf("reading %s: %w", l.URL, err)
	}
	if desc == "" {
		return core.RawInterview{}, fmt.Errorf("no content at %s", l.URL)
	}
	return core.RawInterview{
		Company:     l.Company,
		Role:        l.Role,
		Title:       l.Title,
		URL:         l.URL,
		Years:       l.Years,
		Description: desc,
	}, nil
}

// Compose turns a write-up page into raw text. Each round heading becomes a
// numbered round whose first line is the heading; links found in the round
// become its problem links. Pages without round headings yield their whole
// content as Markdown.
func (s *PageScraper) Compose(page string) (string, error) {
	parsed, err := s.Extractor.Parse(page)
	if err != nil {
		return "", err
	}

	var d Detail
	if parsed.Intro != "" {
		if d.Journey, err = s.Normalizer.Normalize(parsed.Intro); err != nil {
			return "", err
		}
	}
	for _, sec := range parsed.Sections {
		md, err := s.Normalizer.Normalize(sec.HTML)
		if err != nil {
			return "", err
		}
		d.Rounds = append(d.Rounds, RoundText{
			Text:  sec.Title + "\n" + md,
			Links: normalize.Links(md),
		})
	}
	if len(d.Rounds) == 0 {
		if d.Fallback, err = s.Normalizer.Normalize(parsed.Body); err != nil {
			return "", err
		}
	}
	return strings.TrimSpace(ComposeDescription(d)), nil
}
