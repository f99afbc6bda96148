// Headless-browser scraper for the listing site, whose pages are rendered
// client-side.

package crawl

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/chromedp/chromedp"

	"github.com/gaurav-prasanna/interviewdigest/core"
	"github.com/gaurav-prasanna/interviewdigest/core/parse"
)

// DefaultListingURL is the listing page the filters are applied on.
const DefaultListingURL = "https://www.naukri.com/code360/interview-experiences"

// Selectors used on the listing and detail pages.
const (
	cardSelector           = "codingninjas-interview-experience-card-v2"
	companyDropdown        = "#right-section-container codingninjas-ie-company-dropdown-widget > div"
	companySearch          = "input[placeholder='Search']"
	companyOption          = "mat-radio-button.mat-radio-button"
	roleDropdown           = "#right-section-container codingninjas-ie-roles-dropdown-widget:nth-child(2) > div"
	roleSearch             = "codingninjas-ie-roles-dropdown-widget input[placeholder='Search']"
	roleOption             = "codingninjas-ie-roles-dropdown-widget mat-checkbox"
	userAgent              = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
	problemLinksLabel      = "🔗 Problem Links:"
	noProblemLinks         = "null"
	defaultSettleDelay     = 5 * time.Second
	defaultFilterDelay     = 2 * time.Second
	defaultPageTimeout     = 60 * time.Second
	defaultListingPageWait = 2 * time.Second
)

// collectCardsJS returns {title, url} for every card on the current page.
const collectCardsJS = `(() => Array.from(document.querySelectorAll("` + cardSelector + ` a.interview-exp-title"))
	.map(a => ({title: (a.innerText || "").trim(), url: a.href || ""}))
	.filter(c => c.title && c.url))()`

// nextPageJS clicks the numbered page link %d and reports whether it existed.
const nextPageJS = `(() => {
	const a = Array.from(document.querySelectorAll("codingninjas-page-nav-v2 a"))
		.find(a => a.textContent.trim() === "%d");
	if (!a) return false;
	a.click();
	return true;
})()`

// detailJS expands the journey and reads the journey, every consecutive
// round container and the fallback blog body.
const detailJS = `(() => {
	const more = document.querySelector("#continue-reading-ie-cta-container button");
	if (more) more.click();
	const text = el => el ? (el.innerText || "").trim() : "";
	const out = {journey: text(document.querySelector("#ie-overall-user-experience")), rounds: [], fallback: ""};
	for (let i = 1; ; i++) {
		const el = document.getElementById("interview-round-v2-" + i);
		if (!el) break;
		const links = Array.from(el.querySelectorAll("codingninjas-interview-round-problem .try-now-solve-later-container a"))
			.map(a => a.href || "")
			.filter(h => h.startsWith("http"));
		out.rounds.push({text: text(el), links: links});
	}
	out.fallback = text(document.querySelector("div.blog-body-content"));
	return out;
})()`

// Card is one listing-page entry.
type Card struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// RoundText is the visible text of one round container and its problem links.
type RoundText struct {
	Text  string   `json:"text"`
	Links []string `json:"links"`
}

// Detail is what a write-up page yields before composition.
type Detail struct {
	Journey  string      `json:"journey"`
	Rounds   []RoundText `json:"rounds"`
	Fallback string      `json:"fallback"`
}

// BrowserOptions configures a Browser.
type BrowserOptions struct {
	ListingURL string
	// SettleDelay is how long a detail page may keep rendering after load.
	SettleDelay time.Duration
	PageTimeout time.Duration
	Logger      *log.Logger
}

// Browser drives one headless Chrome; every operation runs in its own tab.
type Browser struct {
	opts          BrowserOptions
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc
}

// NewBrowser starts headless Chrome.
func NewBrowser(opts BrowserOptions) (*Browser, error) {
	if opts.ListingURL == "" {
		opts.ListingURL = DefaultListingURL
	}
	if opts.SettleDelay == 0 {
		opts.SettleDelay = defaultSettleDelay
	}
	if opts.PageTimeout == 0 {
		opts.PageTimeout = defaultPageTimeout
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.DisableGPU,
		chromedp.NoSandbox,
		chromedp.Headless,
		chromedp.WindowSize(1920, 1080),
		chromedp.UserAgent(userAgent),
	)
	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	// Start the browser now so a missing Chrome fails here, not per job.
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("starting browser: %w", err)
	}
	return &Browser{opts: opts, allocCancel: allocCancel, browserCtx: browserCtx, browserCancel: browserCancel}, nil
}

// Close shuts the browser down.
func (b *Browser) Close() {
	b.browserCancel()
	b.allocCancel()
}

// tab opens a new tab bound to ctx and the page timeout.
func (b *Browser) tab(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	tabCtx, tabCancel := chromedp.NewContext(b.browserCtx)
	timeoutCtx, timeoutCancel := context.WithTimeout(tabCtx, timeout)
	stop := context.AfterFunc(ctx, timeoutCancel)
	return timeoutCtx, func() {
		stop()
		timeoutCancel()
		tabCancel()
	}
}

// CollectLinks applies the company and role filters on the listing page and
// gathers card links from up to pages pages. Pagination stops early when the
// next page link is missing. role is passed through NormalizeRole.
func (b *Browser) CollectLinks(ctx context.Context, company, role string, pages int) ([]core.Listing, error) {
	if pages < 1 {
		pages = 1
	}
	tabCtx, cancel := b.tab(ctx, b.opts.PageTimeout*time.Duration(pages+1))
	defer cancel()

	err := chromedp.Run(tabCtx,
		chromedp.Navigate(b.opts.ListingURL),
		chromedp.WaitVisible(cardSelector, chromedp.ByQuery),

		chromedp.Click(companyDropdown, chromedp.ByQuery),
		chromedp.WaitVisible(companySearch, chromedp.ByQuery),
		chromedp.SendKeys(companySearch, company, chromedp.ByQuery),
		chromedp.Sleep(defaultFilterDelay),
		chromedp.Click(companyOption, chromedp.ByQuery),
		chromedp.Sleep(defaultFilterDelay/2),

		chromedp.Click(roleDropdown, chromedp.ByQuery),
		chromedp.WaitVisible(roleSearch, chromedp.ByQuery),
		chromedp.SendKeys(roleSearch, NormalizeRole(role), chromedp.ByQuery),
		chromedp.Sleep(defaultFilterDelay),
		chromedp.Click(roleOption, chromedp.ByQuery),
		chromedp.Sleep(defaultFilterDelay/2),
	)
	if err != nil {
		return nil, fmt.Errorf("applying filters: %w", err)
	}

	queue := NewQueue()
	for page := 1; page <= pages; page++ {
		var cards []Card
		if err := chromedp.Run(tabCtx, chromedp.Evaluate(collectCardsJS, &cards)); err != nil {
			return queue.All(), fmt.Errorf("collecting page %d: %w", page, err)
		}
		for _, c := range cards {
			listingCompany, listingRole := SplitTitle(c.Title, company, role)
			queue.Add(core.Listing{Company: listingCompany, Role: listingRole, Title: c.Title, URL: c.URL})
		}
		b.opts.Logger.Debug("collected listing page", "page", page, "cards", len(cards))

		if page == pages {
			break
		}
		var moved bool
		if err := chromedp.Run(tabCtx, chromedp.Evaluate(fmt.Sprintf(nextPageJS, page+1), &moved)); err != nil {
			return queue.All(), fmt.Errorf("opening page %d: %w", page+1, err)
		}
		if !moved {
			b.opts.Logger.Info("no further listing pages", "last", page)
			break
		}
		if err := chromedp.Run(tabCtx, chromedp.Sleep(defaultListingPageWait)); err != nil {
			return queue.All(), err
		}
	}
	return queue.All(), nil
}

// ScrapeDetail opens a write-up and returns its raw text in the dialect the
// extractor reads. An empty string means the page had no readable content.
func (b *Browser) ScrapeDetail(ctx context.Context, url string) (string, error) {
	tabCtx, cancel := b.tab(ctx, b.opts.PageTimeout)
	defer cancel()

	var detail Detail
	err := chromedp.Run(tabCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.Sleep(b.opts.SettleDelay),
		chromedp.Evaluate(detailJS, &detail),
	)
	if err != nil {
		return "", fmt.Errorf("scraping %s: %w", url, err)
	}
	return ComposeDescription(detail), nil
}

// Scrape turns one listing into a raw interview. It implements the per-job
// function handed to Run.
func (b *Browser) Scrape(ctx context.Context, l core.Listing) (core.RawInterview, error) {
	desc, err := b.ScrapeDetail(ctx, l.URL)
	if err != nil {
		return core.RawInterview{}, err
	}
	if desc == "" {
		return core.RawInterview{}, fmt.Errorf("no content at %s", l.URL)
	}
	return core.RawInterview{
		Company:     l.Company,
		Role:        l.Role,
		Title:       l.Title,
		URL:         l.URL,
		Description: desc,
	}, nil
}

// ComposeDescription writes a scraped page in the extractor's dialect:
// the journey under its marker, then "## Interview Rounds" and one
// "### Round N" block per round, each closed by a Problem Links line listing
// its links or "null". Without journey or rounds the fallback body is used.
func ComposeDescription(d Detail) string {
	var parts []string
	if j := strings.TrimSpace(d.Journey); j != "" {
		parts = append(parts, parse.JourneyMarker+"\n"+j)
	}
	for i, r := range d.Rounds {
		if i == 0 {
			parts = append(parts, "\n\n"+parse.RoundsMarker)
		}
		links := noProblemLinks
		if len(r.Links) > 0 {
			links = strings.Join(r.Links, ", ")
		}
		parts = append(parts, fmt.Sprintf("\n\n%s %d\n%s\n\n%s %s", parse.RoundMarker, i+1, strings.TrimSpace(r.Text), problemLinksLabel, links))
	}
	if len(parts) == 0 {
		return strings.TrimSpace(d.Fallback)
	}
	return strings.Join(parts, "\n")
}
