// Package page fetches a single article page and extracts headline and
// summary from common markup patterns.
package page

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"aipress/providers"
)

var headlineSelectors = []string{"h1", ".article-headline", ".article-title", ".headline"}

var paragraphSelectors = []string{"article p", ".article-body p", ".content p", ".story-body p"}

// Fetch downloads the article at rawURL and parses it into an Article.
func Fetch(ctx context.Context, rawURL string) (*providers.Article, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := providers.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bad status: %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, err
	}
	return Parse(doc, rawURL), nil
}

// Parse extracts the article fields from an already-loaded document.
func Parse(doc *goquery.Document, rawURL string) *providers.Article {
	headline := "No headline found"
	for _, sel := range headlineSelectors {
		if text := strings.TrimSpace(doc.Find(sel).First().Text()); text != "" {
			headline = text
			break
		}
	}

	summary := "No summary available."
	for _, sel := range paragraphSelectors {
		paragraphs := doc.Find(sel)
		if paragraphs.Length() == 0 {
			continue
		}
		var parts []string
		paragraphs.EachWithBreak(func(i int, s *goquery.Selection) bool {
			if text := strings.TrimSpace(s.Text()); text != "" {
				parts = append(parts, text)
			}
			return len(parts) < 2
		})
		if len(parts) > 0 {
			summary = strings.Join(parts, " ")
			break
		}
	}

	return &providers.Article{
		Headline: headline,
		Summary:  summary,
		URL:      rawURL,
		Source:   hostOf(rawURL),
	}
}

func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return "unknown"
	}
	return u.Host
}
