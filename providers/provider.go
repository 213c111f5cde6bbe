package providers

import (
	"context"
	"net/http"
	"time"
)

// Article is the standardized shape every source returns. An entry is
// well-formed when headline, url and source are present.
type Article struct {
	Headline string `json:"headline"`
	Summary  string `json:"summary"`
	URL      string `json:"url"`
	Source   string `json:"source"`
}

// Source is the interface every article source (general feed, topic search)
// must implement.
type Source interface {
	// Fetch returns candidate articles. A topic may be empty for general
	// feeds; an empty result is not an error.
	Fetch(ctx context.Context, topic string) ([]Article, error)

	// Name returns the unique name of the source (e.g. "newsfeed").
	Name() string
}

// CustomTransport adds a browser User-Agent header to every request.
type CustomTransport struct {
	Transport http.RoundTripper
}

func (t *CustomTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36")
	return t.Transport.RoundTrip(req)
}

// HTTPClient is used for all external HTTP requests by the sources.
var HTTPClient = &http.Client{
	Timeout: 30 * time.Second,
	Transport: &CustomTransport{
		Transport: http.DefaultTransport,
	},
}
