// Package fetch retrieves raw page HTML for a source identifier. Any
// network, TLS, or non-success HTTP condition surfaces as an error; the
// orchestrator classifies those as fetch failures.
package fetch

import (
	"context"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

// Fetcher retrieves the raw content behind a source identifier.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Options tune the HTTP fetcher.
type Options struct {
	Timeout     time.Duration
	UserAgent   string
	MaxBodySize int64
	// RequestsPerSecond caps outbound fetches. Zero means unlimited.
	RequestsPerSecond float64
}

// HTTPFetcher fetches pages over net/http.
type HTTPFetcher struct {
	client    *http.Client
	limiter   *rate.Limiter
	userAgent string
	maxBody   int64
}

// NewHTTPFetcher creates an HTTPFetcher, filling in defaults for zero-value
// options.
func NewHTTPFetcher(opts Options) *HTTPFetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "Mozilla/5.0 (compatible; TermlensBot/1.0)"
	}
	if opts.MaxBodySize <= 0 {
		opts.MaxBodySize = 2 * 1024 * 1024
	}
	limit := rate.Inf
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
	}
	return &HTTPFetcher{
		client: &http.Client{
			Timeout: opts.Timeout,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 10 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
		limiter:   rate.NewLimiter(limit, 1),
		userAgent: opts.UserAgent,
		maxBody:   opts.MaxBodySize,
	}
}

// Fetch retrieves the page at url and returns its body as a string.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (string, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return "", eris.Wrap(err, "fetch: rate limit wait")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", eris.Wrap(err, "fetch: create request")
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", eris.Wrap(err, "fetch: request")
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBody))
	if err != nil {
		return "", eris.Wrap(err, "fetch: read body")
	}

	if blocked, blockType := DetectBlock(resp, body); blocked {
		return "", eris.Errorf("fetch: blocked (%s)", blockType)
	}

	if resp.StatusCode >= 400 {
		return "", eris.Errorf("fetch: status %d", resp.StatusCode)
	}

	return string(body), nil
}
