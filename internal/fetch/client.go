package fetch

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/Makepad-fr/listbench/internal/model"
)

// DefaultBaseURL is where the movies server listens by default.
const DefaultBaseURL = "http://localhost:3001"

// Client requests movie payloads of a given size.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

type Option func(*Client)

// WithTimeout bounds each request. Zero means no timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithRateLimit paces requests to rps per second. Zero or less is unlimited.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		limiter: rate.NewLimiter(rate.Inf, 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// URL builds the request URL for size.
func (c *Client) URL(size model.Size) string {
	q := url.Values{}
	q.Set("size", size.String())
	return c.baseURL + "/movies?" + q.Encode()
}

// Request sends GET /movies?size=<size>. Invalid sizes never reach the wire.
func (c *Client) Request(ctx context.Context, size model.Size) (*http.Response, error) {
	if err := size.Validate(); err != nil {
		return nil, err
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: rate limit: %w", ErrNetwork, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(size), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	return resp, nil
}

// FetchMovies requests and decodes a movie list of the given size.
func (c *Client) FetchMovies(ctx context.Context, size model.Size) Result[[]model.Item] {
	return Measure[[]model.Item](ctx, "fetchMovies", func(ctx context.Context) (*http.Response, error) {
		return c.Request(ctx, size)
	})
}
