// Package wikipedia provides a client for the Wikipedia REST page summary
// API, used to link features to encyclopedia articles.
package wikipedia

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

// Client defines the Wikipedia lookup operations.
type Client interface {
	// Summary fetches the page summary for a title in a single language.
	// Returns nil with no error when the page does not exist.
	Summary(ctx context.Context, lang, title string) (*PageSummary, error)
	// Lookup queries every configured language for a title and returns the
	// best match: a standard article over a disambiguation page, and the
	// longer extract when several languages have one.
	Lookup(ctx context.Context, title string) (*PageSummary, error)
}

// PageSummary is the REST API page summary object, trimmed to the fields
// the enrichment pipeline uses.
type PageSummary struct {
	Title       string      `json:"title"`
	Type        string      `json:"type"`
	Description string      `json:"description"`
	Extract     string      `json:"extract"`
	Lang        string      `json:"lang"`
	ContentURLs ContentURLs `json:"content_urls"`
}

// ContentURLs holds the canonical page links.
type ContentURLs struct {
	Desktop PageURLs `json:"desktop"`
	Mobile  PageURLs `json:"mobile"`
}

// PageURLs is one platform's set of page links.
type PageURLs struct {
	Page string `json:"page"`
}

// URL returns the canonical desktop page URL.
func (s *PageSummary) URL() string {
	return s.ContentURLs.Desktop.Page
}

// Option configures the Wikipedia client.
type Option func(*httpClient)

// WithBaseURL sets a custom base URL pattern (for testing). The pattern must
// contain one %s verb for the language code.
func WithBaseURL(pattern string) Option {
	return func(c *httpClient) {
		c.baseURL = pattern
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// WithLanguages sets the languages Lookup queries, in preference order.
func WithLanguages(langs ...string) Option {
	return func(c *httpClient) {
		c.langs = langs
	}
}

type httpClient struct {
	baseURL   string
	userAgent string
	langs     []string
	http      *http.Client
	limiter   *rate.Limiter
}

// NewClient creates a Wikipedia REST client. Lookups default to English and
// German, matching the historical atlas source material. Requests are
// limited to 10 per second across all languages.
func NewClient(userAgent string, opts ...Option) Client {
	c := &httpClient{
		baseURL:   "https://%s.wikipedia.org/api/rest_v1",
		userAgent: userAgent,
		langs:     []string{"en", "de"},
		http: &http.Client{
			Timeout: 15 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		limiter: rate.NewLimiter(rate.Limit(10), 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *httpClient) Summary(ctx context.Context, lang, title string) (*PageSummary, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "wikipedia: rate limiter")
	}

	base := fmt.Sprintf(c.baseURL, lang)
	reqURL := base + "/page/summary/" + url.PathEscape(title)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, eris.Wrap(err, "wikipedia: create request")
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrapf(err, "wikipedia: request %s/%s", lang, title)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "wikipedia: read response body")
	}

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("wikipedia: status %d for %s/%s", resp.StatusCode, lang, title)
	}

	var summary PageSummary
	if err := json.Unmarshal(body, &summary); err != nil {
		return nil, eris.Wrap(err, "wikipedia: unmarshal summary")
	}
	if summary.Lang == "" {
		summary.Lang = lang
	}
	return &summary, nil
}

func (c *httpClient) Lookup(ctx context.Context, title string) (*PageSummary, error) {
	var best *PageSummary
	for _, lang := range c.langs {
		summary, err := c.Summary(ctx, lang, title)
		if err != nil {
			return nil, err
		}
		if summary == nil {
			continue
		}
		if better(summary, best) {
			best = summary
		}
	}
	return best, nil
}

// better reports whether a is a stronger match than b. Standard articles
// beat disambiguation and redirect stubs; among standard articles the longer
// extract wins.
func better(a, b *PageSummary) bool {
	if b == nil {
		return true
	}
	aStd := a.Type == "standard"
	bStd := b.Type == "standard"
	if aStd != bStd {
		return aStd
	}
	return len(a.Extract) > len(b.Extract)
}
