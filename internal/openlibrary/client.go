// Package openlibrary provides a client for the OpenLibrary search API.
package openlibrary

import (
	"net/http"
	"strings"
	"time"

	"github.com/mlahtinen/bookfind/internal/ratelimit"
)

const (
	defaultBaseURL      = "https://openlibrary.org"
	defaultCoverBaseURL = "https://covers.openlibrary.org/b"
	defaultTimeout      = 10 * time.Second
	// OpenLibrary asks for at most 1 request per second from clients
	defaultRatePerSecond = 1
)

// HTTPDoer is an interface for making HTTP requests.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client is an OpenLibrary API client.
type Client struct {
	baseURL      string
	coverBaseURL string
	httpClient   HTTPDoer
	rateLimiter  *ratelimit.Limiter
	useCache     bool
}

// NewClient creates a new OpenLibrary API client.
func NewClient(opts ...Option) *Client {
	client := &Client{
		baseURL:      defaultBaseURL,
		coverBaseURL: defaultCoverBaseURL,
		httpClient:   &http.Client{Timeout: defaultTimeout},
		rateLimiter:  ratelimit.New("OpenLibrary", defaultRatePerSecond),
		useCache:     true,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c HTTPDoer) Option {
	return func(client *Client) {
		if c != nil {
			client.httpClient = c
		}
	}
}

// WithBaseURL sets a custom base URL for the OpenLibrary API.
func WithBaseURL(base string) Option {
	return func(client *Client) {
		if base != "" {
			client.baseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// WithCoverBaseURL sets a custom base URL for cover images.
func WithCoverBaseURL(base string) Option {
	return func(client *Client) {
		if base != "" {
			client.coverBaseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// WithRateLimiter sets a custom rate limiter for the client.
func WithRateLimiter(limiter *ratelimit.Limiter) Option {
	return func(client *Client) {
		if limiter != nil {
			client.rateLimiter = limiter
		}
	}
}

// WithoutCache disables the response cache in front of the fetcher.
func WithoutCache() Option {
	return func(client *Client) {
		client.useCache = false
	}
}
