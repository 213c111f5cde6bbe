// Package newsfeed scrapes the front pages of a fixed set of African news
// sites and returns the latest articles.
package newsfeed

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"aipress/providers"
	"aipress/providers/page"
)

var feedSites = []string{
	"https://apnews.com/hub/africa",
	"https://www.thetimes.com/world/africa/",
	"https://www.reuters.com/world/africa/",
	"https://www.ft.com/middle-east-north-africa",
	"https://african.business/",
	"https://www.africanews.com/business/",
	"https://www.banquemondiale.org/fr/region/afr",
}

const linksPerSite = 3

// Fetcher implements providers.Source for the general news feed.
type Fetcher struct {
	logger *zap.Logger
}

var _ providers.Source = (*Fetcher)(nil)

func NewFetcher(logger *zap.Logger) *Fetcher {
	return &Fetcher{logger: logger}
}

func (f *Fetcher) Name() string { return "newsfeed" }

// Fetch scrapes every configured site for article links and loads each
// article. The topic argument is ignored; the feed is always general.
func (f *Fetcher) Fetch(ctx context.Context, _ string) ([]providers.Article, error) {
	var articles []providers.Article
	for _, site := range feedSites {
		links, err := f.scrapeLinks(ctx, site)
		if err != nil {
			f.logger.Warn("Feed scrape failed", zap.String("site", site), zap.Error(err))
			continue
		}
		for _, link := range links {
			article, err := page.Fetch(ctx, link)
			if err != nil {
				f.logger.Debug("Article fetch failed", zap.String("url", link), zap.Error(err))
				continue
			}
			articles = append(articles, *article)
		}
	}
	return articles, nil
}

// scrapeLinks extracts up to linksPerSite unique article URLs from one site.
func (f *Fetcher) scrapeLinks(ctx context.Context, site string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, site, nil)
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
	return ExtractLinks(doc, site), nil
}

// ExtractLinks applies per-site selectors with a generic fallback.
func ExtractLinks(doc *goquery.Document, site string) []string {
	var links []string
	switch {
	case strings.Contains(site, "apnews.com"):
		doc.Find("ul li a").Each(func(i int, s *goquery.Selection) {
			if href, ok := s.Attr("href"); ok && strings.HasPrefix(href, "https://apnews.com/article/") {
				links = append(links, href)
			}
		})
	case strings.Contains(site, "reuters.com"):
		doc.Find("a[href*='/article/']").Each(func(i int, s *goquery.Selection) {
			if href, ok := s.Attr("href"); ok {
				if !strings.HasPrefix(href, "http") {
					href = "https://www.reuters.com" + href
				}
				links = append(links, href)
			}
		})
	case strings.Contains(site, "african.business"):
		doc.Find("article a").Each(func(i int, s *goquery.Selection) {
			if href, ok := s.Attr("href"); ok {
				links = append(links, href)
			}
		})
	case strings.Contains(site, "africanews.com"):
		doc.Find(".just-in__article a").Each(func(i int, s *goquery.Selection) {
			if href, ok := s.Attr("href"); ok {
				links = append(links, href)
			}
		})
	default:
		doc.Find("a").Each(func(i int, s *goquery.Selection) {
			href, ok := s.Attr("href")
			if ok && (strings.Contains(href, "/article/") || strings.Contains(href, "/news/")) {
				links = append(links, href)
			}
		})
	}

	seen := make(map[string]struct{}, len(links))
	var unique []string
	for _, link := range links {
		if !strings.HasPrefix(link, "http") {
			link = strings.TrimSuffix(site, "/") + link
		}
		if _, ok := seen[link]; ok {
			continue
		}
		seen[link] = struct{}{}
		unique = append(unique, link)
		if len(unique) == linksPerSite {
			break
		}
	}
	return unique
}
