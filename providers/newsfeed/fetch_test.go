package newsfeed

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-playground/assert/v2"
)

func docFromHTML(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

func TestExtractLinks_APNews(t *testing.T) {
	html := `<html><body><ul>
		<li><a href="https://apnews.com/article/one">One</a></li>
		<li><a href="https://apnews.com/hub/africa">Hub</a></li>
		<li><a href="https://apnews.com/article/two">Two</a></li>
	</ul></body></html>`

	links := ExtractLinks(docFromHTML(t, html), "https://apnews.com/hub/africa")
	assert.Equal(t, []string{
		"https://apnews.com/article/one",
		"https://apnews.com/article/two",
	}, links)
}

func TestExtractLinks_ReutersRelativeURLs(t *testing.T) {
	html := `<html><body>
		<a href="/article/banks-expand">Banks</a>
		<a href="https://www.reuters.com/article/fintech">Fintech</a>
		<a href="/markets/africa">Not an article</a>
	</body></html>`

	links := ExtractLinks(docFromHTML(t, html), "https://www.reuters.com/world/africa/")
	assert.Equal(t, []string{
		"https://www.reuters.com/article/banks-expand",
		"https://www.reuters.com/article/fintech",
	}, links)
}

func TestExtractLinks_GenericFallback(t *testing.T) {
	html := `<html><body>
		<a href="/news/one">One</a>
		<a href="/about">About</a>
		<a href="https://example.com/article/two">Two</a>
	</body></html>`

	links := ExtractLinks(docFromHTML(t, html), "https://example.com/")
	assert.Equal(t, []string{
		"https://example.com/news/one",
		"https://example.com/article/two",
	}, links)
}

func TestExtractLinks_DeduplicatesAndCaps(t *testing.T) {
	var b strings.Builder
	b.WriteString("<html><body>")
	for i := 0; i < 3; i++ {
		b.WriteString(`<a href="/news/same">Same</a>`)
	}
	b.WriteString(`<a href="/news/one">1</a>`)
	b.WriteString(`<a href="/news/two">2</a>`)
	b.WriteString(`<a href="/news/three">3</a>`)
	b.WriteString("</body></html>")

	links := ExtractLinks(docFromHTML(t, b.String()), "https://example.com")
	assert.Equal(t, 3, len(links))
	assert.Equal(t, "https://example.com/news/same", links[0])
}
