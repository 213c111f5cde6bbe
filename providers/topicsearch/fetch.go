// Package topicsearch finds news articles about a specific topic via a
// news-scoped web search.
package topicsearch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"aipress/providers"
	"aipress/providers/page"
)

const searchBaseURL = "https://www.google.com/search"

// Fetcher implements providers.Source for topic-scoped searches.
type Fetcher struct {
	logger     *zap.Logger
	maxResults int
}

var _ providers.Source = (*Fetcher)(nil)

func NewFetcher(logger *zap.Logger, maxResults int) *Fetcher {
	if maxResults <= 0 {
		maxResults = 10
	}
	return &Fetcher{logger: logger, maxResults: maxResults}
}

func (f *Fetcher) Name() string { return "topicsearch" }

// Fetch searches for "<topic> news Africa", then loads every result page.
func (f *Fetcher) Fetch(ctx context.Context, topic string) ([]providers.Article, error) {
	links, err := f.searchLinks(ctx, topic)
	if err != nil {
		return nil, err
	}

	var articles []providers.Article
	for _, link := range links {
		article, err := page.Fetch(ctx, link)
		if err != nil {
			f.logger.Debug("Article fetch failed", zap.String("url", link), zap.Error(err))
			continue
		}
		articles = append(articles, *article)
	}
	return articles, nil
}

func (f *Fetcher) searchLinks(ctx context.Context, topic string) ([]string, error) {
	query := url.Values{}
	query.Set("q", fmt.Sprintf("%s news Africa", topic))
	query.Set("tbm", "nws")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchBaseURL+"?"+query.Encode(), nil)
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
	return ExtractResultLinks(doc, f.maxResults), nil
}

// ExtractResultLinks pulls outbound result URLs from a news search page.
// Result anchors either link out directly or go through the "/url?q="
// redirect.
func ExtractResultLinks(doc *goquery.Document, max int) []string {
	seen := make(map[string]struct{})
	var links []string
	doc.Find("a").Each(func(i int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok || len(links) >= max {
			return
		}
		if strings.HasPrefix(href, "/url?q=") {
			if u, err := url.Parse(href); err == nil {
				href = u.Query().Get("q")
			}
		}
		if !strings.HasPrefix(href, "http") || strings.Contains(href, "google.com") {
			return
		}
		if _, ok := seen[href]; ok {
			return
		}
		seen[href] = struct{}{}
		links = append(links, href)
	})
	return links
}
