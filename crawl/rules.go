// URL filtering and listing-title rules shared by both scrapers.

package crawl

import (
	"net/url"
	"path"
	"regexp"
	"strconv"
	"strings"
)

// staticExtensions are file extensions never treated as write-up links.
var staticExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true,
	".svg": true, ".webp": true, ".ico": true, ".bmp": true,
	".css": true, ".js": true, ".mjs": true,
	".woff": true, ".woff2": true, ".ttf": true, ".eot": true,
	".mp4": true, ".webm": true, ".mp3": true, ".wav": true,
	".zip": true, ".tar": true, ".gz": true,
	".pdf": true, ".doc": true, ".docx": true, ".xls": true, ".xlsx": true,
}

var (
	yearsRegex     = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)\s*(?:yr|year)`)
	roleDashRegex  = regexp.MustCompile(`\s*-\s*`)
	whitespaceRuns = regexp.MustCompile(`\s+`)
)

// IsSameDomain checks if the given URL belongs to the specified domain.
func IsSameDomain(rawURL string, domain string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	return parsed.Host == domain
}

// IsStaticAsset checks if a URL points to a static asset (image, CSS, JS, etc.).
func IsStaticAsset(rawURL string) bool {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	ext := strings.ToLower(path.Ext(parsed.Path))
	return staticExtensions[ext]
}

// NormalizeURL strips fragments and trailing slashes for deduplication.
func NormalizeURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	parsed.Fragment = ""
	if parsed.Path != "/" {
		parsed.Path = strings.TrimSuffix(parsed.Path, "/")
	}
	return parsed.String()
}

// InferRole reads the years of experience from a listing title such as
// "Amazon Interview Experience for SDE (3 Years Experienced)" and maps them
// to a level: up to 2 years is SDE-1, up to 5 is SDE-2, anything more SDE-3.
// Titles without a year count are treated as 0 years.
func InferRole(title string) (years float64, role string) {
	if m := yearsRegex.FindStringSubmatch(title); m != nil {
		years, _ = strconv.ParseFloat(m[1], 64)
	}
	switch {
	case years <= 2:
		role = "SDE-1"
	case years <= 5:
		role = "SDE-2"
	default:
		role = "SDE-3"
	}
	return years, role
}

// NormalizeRole formats a role filter the way the listing site spells it:
// dashes padded with single spaces, whitespace collapsed, upper case.
// "sde-1" becomes "SDE - 1".
func NormalizeRole(role string) string {
	role = roleDashRegex.ReplaceAllString(strings.TrimSpace(role), " - ")
	return strings.ToUpper(whitespaceRuns.ReplaceAllString(role, " "))
}

// SplitTitle splits a "Company | Role" card title. When the title does not
// have exactly two non-empty parts the fallbacks are returned.
func SplitTitle(title, fallbackCompany, fallbackRole string) (company, role string) {
	parts := strings.Split(title, "|")
	if len(parts) == 2 {
		company, role = strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
		if company != "" && role != "" {
			return company, role
		}
	}
	return fallbackCompany, fallbackRole
}

// CompanyLabel is the "Name :" heading that opens a company's block on the
// company-wise index page.
func CompanyLabel(company string) string {
	company = strings.TrimSpace(company)
	if company == "" {
		return ""
	}
	return strings.ToUpper(company[:1]) + strings.ToLower(company[1:]) + " :"
}
