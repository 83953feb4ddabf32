package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/wordspider/wordspider/internal/model"
)

// Fetcher retrieves one page: its text content and raw outbound links.
// Implementations decide how bytes are transported and parsed; the
// crawl core only branches on the returned page or error.
type Fetcher interface {
	// Fetch retrieves the page at addr. A transport failure or an HTTP
	// error status returns a non-nil error; the caller treats it as a
	// page that contributes nothing, never as a fatal condition.
	Fetch(ctx context.Context, addr string) (*model.Page, error)
}

// Default settings for the HTTP fetcher.
const (
	// DefaultTimeout bounds a single request end to end. The crawl core
	// imposes no timeout of its own, so an unbounded client could stall
	// a whole branch of the task tree on one slow server.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxBodySize limits how much of a response body is read.
	// 5MB covers HTML pages while keeping a hostile or misconfigured
	// server from exhausting memory.
	DefaultMaxBodySize = 5 * 1024 * 1024

	// DefaultUserAgent identifies wordspider in request logs.
	DefaultUserAgent = "wordspider/1.0 (+https://github.com/wordspider/wordspider)"
)

// HTTPFetcher fetches pages with net/http and parses HTML responses.
type HTTPFetcher struct {
	// client performs the requests. It carries the configured timeout.
	client *http.Client

	// userAgent is sent as the User-Agent header.
	userAgent string

	// maxBodySize caps the number of response bytes read per page.
	maxBodySize int64

	// headers are extra request headers applied to every fetch.
	headers map[string]string

	// cookie, when non-empty, is sent as the Cookie header.
	cookie string
}

// Option configures an HTTPFetcher.
type Option func(*HTTPFetcher)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(f *HTTPFetcher) {
		f.client.Timeout = d
	}
}

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *HTTPFetcher) {
		f.userAgent = ua
	}
}

// WithMaxBodySize sets the maximum response body size to read.
func WithMaxBodySize(size int64) Option {
	return func(f *HTTPFetcher) {
		f.maxBodySize = size
	}
}

// WithHeaders sets extra request headers applied to every fetch.
func WithHeaders(headers map[string]string) Option {
	return func(f *HTTPFetcher) {
		f.headers = headers
	}
}

// WithCookie sets the Cookie header sent with every fetch.
// Format: "name=value" or "name1=value1; name2=value2".
func WithCookie(cookie string) Option {
	return func(f *HTTPFetcher) {
		f.cookie = cookie
	}
}

// NewHTTPFetcher creates an HTTPFetcher with default settings.
func NewHTTPFetcher(opts ...Option) *HTTPFetcher {
	f := &HTTPFetcher{
		client:      &http.Client{Timeout: DefaultTimeout},
		userAgent:   DefaultUserAgent,
		maxBodySize: DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch performs a GET request and extracts text and links from the
// response body.
func (f *HTTPFetcher) Fetch(ctx context.Context, addr string) (*model.Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", addr, err)
	}

	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	for k, v := range f.headers {
		req.Header.Set(k, v)
	}
	if f.cookie != "" {
		req.Header.Set("Cookie", f.cookie)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", addr, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		// Drain a bounded amount so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096)) //nolint:errcheck // best effort
		return nil, fmt.Errorf("fetch %s: status %d", addr, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", addr, err)
	}

	page := &model.Page{
		URL:         addr,
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
	}

	doc, err := ExtractDocument(strings.NewReader(string(body)))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", addr, err)
	}
	page.Title = doc.Title
	page.Text = doc.Text
	page.Links = doc.Links

	return page, nil
}
