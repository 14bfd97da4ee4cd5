// Package fetch provides HTTP retrieval for the compensation lookups.
// Fetchers compose: a plain HTTP fetcher, a headless-browser fetcher, a
// fallback chain and a redis-backed cache all satisfy Fetcher.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 15 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (compatible; AutoReply/1.0)"

// MaxBodyBytes caps how much of a response body is read.
const MaxBodyBytes = 8 << 20

// Result holds the raw content from a URL fetch.
type Result struct {
	URL         string `json:"url"`
	Body        string `json:"body"`
	ContentType string `json:"content_type"`
	StatusCode  int    `json:"status_code"`
	FromCache   bool   `json:"-"`
}

// Error represents an error during URL fetching.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Fetcher retrieves the body of a URL.
type Fetcher interface {
	Fetch(ctx context.Context, urlStr string) (*Result, error)
}

// Options configures the fetch behavior.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	Headers   map[string]string
	Client    *http.Client
}

// DefaultOptions returns sensible defaults for fetching.
func DefaultOptions() *Options {
	return &Options{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// HTTPFetcher fetches URLs with a plain GET.
type HTTPFetcher struct {
	Options *Options
}

// NewHTTPFetcher creates an HTTPFetcher. A nil opts uses DefaultOptions.
func NewHTTPFetcher(opts *Options) *HTTPFetcher {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &HTTPFetcher{Options: opts}
}

// Fetch implements Fetcher.
func (f *HTTPFetcher) Fetch(ctx context.Context, urlStr string) (*Result, error) {
	return URL(ctx, urlStr, f.Options)
}

// URL retrieves content from a URL. Any status outside 2xx is an error;
// the partial Result is still returned alongside it.
func URL(ctx context.Context, urlStr string, opts *Options) (*Result, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	parsedURL, err := url.Parse(urlStr)
	if err != nil || parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, &Error{
			URL:     urlStr,
			Message: "invalid URL",
			Cause:   err,
		}
	}

	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, &Error{
			URL:     urlStr,
			Message: "failed to create request",
			Cause:   err,
		}
	}

	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	req.Header.Set("User-Agent", userAgent)
	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &Error{
			URL:     urlStr,
			Message: "HTTP request failed",
			Cause:   err,
		}
	}
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodyBytes))
	if err != nil {
		return nil, &Error{
			URL:     urlStr,
			Message: "failed to read response body",
			Cause:   err,
		}
	}

	result := &Result{
		URL:         urlStr,
		Body:        string(bodyBytes),
		ContentType: resp.Header.Get("Content-Type"),
		StatusCode:  resp.StatusCode,
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return result, &Error{
			URL:     urlStr,
			Message: fmt.Sprintf("HTTP status %d", resp.StatusCode),
		}
	}

	return result, nil
}

// FallbackFetcher tries Primary and, if it fails, Secondary.
type FallbackFetcher struct {
	Primary   Fetcher
	Secondary Fetcher
}

// Fetch implements Fetcher.
func (f *FallbackFetcher) Fetch(ctx context.Context, urlStr string) (*Result, error) {
	result, err := f.Primary.Fetch(ctx, urlStr)
	if err == nil || f.Secondary == nil {
		return result, err
	}
	if ctx.Err() != nil {
		return nil, err
	}

	fallback, fallbackErr := f.Secondary.Fetch(ctx, urlStr)
	if fallbackErr != nil {
		return nil, &Error{
			URL:     urlStr,
			Message: fmt.Sprintf("fallback failed after: %v", err),
			Cause:   fallbackErr,
		}
	}
	return fallback, nil
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, urlStr string) (*Result, error)

// Fetch implements Fetcher.
func (f FetcherFunc) Fetch(ctx context.Context, urlStr string) (*Result, error) {
	return f(ctx, urlStr)
}
