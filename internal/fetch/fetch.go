package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// DefaultTimeout bounds the whole HTTP round trip.
	DefaultTimeout = 30 * time.Second
	// DefaultUserAgent identifies the scraper to source servers.
	DefaultUserAgent = "swim-meets/1.0 (github.com/openswim/swim-meets)"
	// DefaultMaxRedirects caps redirect following.
	DefaultMaxRedirects = 5
	// DefaultMaxBytes caps the response body read.
	DefaultMaxBytes = 5 << 20
)

// ErrRobotsDisallowed is wrapped into the *FetchError when robots.txt forbids
// the requested path.
var ErrRobotsDisallowed = errors.New("disallowed by robots.txt")

// FetchError reports a failed page fetch: a non-2xx response (StatusCode set)
// or an underlying transport error (Err set).
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Options configures a Fetcher. Zero values fall back to the defaults above.
type Options struct {
	Timeout           time.Duration
	UserAgent         string
	MaxRedirects      int
	MaxBytes          int64
	RequestsPerSecond float64 // 0 disables rate limiting
	Burst             int
	RespectRobots     bool
}

// Fetcher performs single bounded GETs with redirect following.
type Fetcher struct {
	client    *http.Client
	userAgent string
	maxBytes  int64
	limiter   *Limiter
	robots    *RobotsChecker
}

// New creates a Fetcher from the given options.
func New(opts Options) *Fetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.MaxRedirects <= 0 {
		opts.MaxRedirects = DefaultMaxRedirects
	}
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = DefaultMaxBytes
	}

	f := &Fetcher{
		client: &http.Client{
			Timeout: opts.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= opts.MaxRedirects {
					return fmt.Errorf("stopped after %d redirects", opts.MaxRedirects)
				}
				return nil
			},
		},
		userAgent: opts.UserAgent,
		maxBytes:  opts.MaxBytes,
	}
	if opts.RequestsPerSecond > 0 {
		f.limiter = NewLimiter(opts.RequestsPerSecond, opts.Burst)
	}
	if opts.RespectRobots {
		f.robots = NewRobotsChecker(opts.UserAgent, opts.Timeout)
	}
	return f
}

// Fetch GETs the URL and returns the raw document body. It returns a
// *FetchError for any non-2xx response or transport failure; no retries.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	if f.limiter != nil {
		if err := f.limiter.Wait(ctx, rawURL); err != nil {
			return nil, &FetchError{URL: rawURL, Err: err}
		}
	}
	if f.robots != nil && !f.robots.IsAllowed(ctx, rawURL) {
		return nil, &FetchError{URL: rawURL, Err: ErrRobotsDisallowed}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &FetchError{URL: rawURL, Err: err}
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &FetchError{URL: rawURL, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return nil, &FetchError{URL: rawURL, Err: fmt.Errorf("read body: %w", err)}
	}
	return body, nil
}
