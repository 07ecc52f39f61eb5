package fetcher

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// FetchResult is the usable text of a job posting page.
type FetchResult struct {
	Title   string
	URL     string
	Content string
}

type Fetcher struct {
	http *http.Client
}

func NewFetcher() *Fetcher {
	return &Fetcher{http: &http.Client{}}
}

// Fetch downloads a job posting and extracts its title and description text,
// which seed interview question generation.
func (f *Fetcher) Fetch(ctx context.Context, rawURL, userAgent string) (*FetchResult, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported scheme: %s", u.Scheme)
	}

	req, err := http.NewRequestWithContext(ctx, "GET", rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch posting: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("fetch posting: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse posting: %w", err)
	}

	return ExtractPosting(doc, rawURL)
}

// ExtractPosting pulls the title and readable body text out of a parsed page.
func ExtractPosting(doc *goquery.Document, pageURL string) (*FetchResult, error) {
	title := strings.TrimSpace(doc.Find("h1").First().Text())
	if title == "" {
		title = strings.TrimSpace(doc.Find("title").First().Text())
	}

	body := doc.Find("main, article, div.job-description, div.description, body").First()
	body.Find("script, style, nav, header, footer, form, .ad, .advertisement").Remove()

	var parts []string
	body.Find("p, h2, h3, h4, li, pre").Each(func(i int, s *goquery.Selection) {
		if text := cleanText(s.Text()); text != "" {
			parts = append(parts, text)
		}
	})

	content := strings.Join(parts, "\n")
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("no readable content at %s", pageURL)
	}

	return &FetchResult{Title: title, URL: pageURL, Content: content}, nil
}

var whitespaceRE = regexp.MustCompile(`\s+`)

func cleanText(s string) string {
	return strings.TrimSpace(whitespaceRE.ReplaceAllString(s, " "))
}
