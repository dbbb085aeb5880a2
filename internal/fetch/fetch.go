// Package fetch loads the markup of a page to check, either over HTTP or
// from the local filesystem.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/leapstack-labs/leapa11y/pkg/dom"
)

// DefaultTimeout bounds a fetch when no timeout is configured.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is sent with every HTTP request.
const DefaultUserAgent = "Mozilla/5.0 (compatible; leapa11y/1.0; +https://github.com/leapstack-labs/leapa11y)"

// maxBodySize caps how much of a response body is read.
const maxBodySize = 32 << 20

// Page is a fetched document.
type Page struct {
	HTML   string
	URL    string // final URL after redirects
	Title  string
	Status int
}

// Fetcher loads pages.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient replaces the HTTP client. The fetcher's timeout still applies.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) {
		if c != nil {
			f.client = c
		}
	}
}

// WithUserAgent overrides DefaultUserAgent.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		if ua != "" {
			f.userAgent = ua
		}
	}
}

// New creates a Fetcher. A non-positive timeout means DefaultTimeout.
func New(timeout time.Duration, opts ...Option) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	f := &Fetcher{
		client:    &http.Client{},
		timeout:   timeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Timeout returns the configured timeout.
func (f *Fetcher) Timeout() time.Duration {
	return f.timeout
}

// Fetch loads target, which is an http(s) URL, a file:// URL or a local path.
func (f *Fetcher) Fetch(ctx context.Context, target string) (*Page, error) {
	if path, ok := localPath(target); ok {
		return f.fetchFile(target, path)
	}
	return f.fetchHTTP(ctx, target)
}

func (f *Fetcher) fetchHTTP(ctx context.Context, target string) (*Page, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, &FetchError{URL: target, Err: err}
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		if isTimeout(ctx, err) {
			return nil, &TimeoutError{URL: target, Timeout: f.timeout}
		}
		return nil, &FetchError{URL: target, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		if isTimeout(ctx, err) {
			return nil, &TimeoutError{URL: target, Timeout: f.timeout}
		}
		return nil, &FetchError{URL: target, Err: fmt.Errorf("failed to read body: %w", err)}
	}

	final := target
	if resp.Request != nil && resp.Request.URL != nil {
		final = resp.Request.URL.String()
	}
	return newPage(string(body), final, resp.StatusCode), nil
}

func (f *Fetcher) fetchFile(target, path string) (*Page, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: reading the user-supplied page is the point
	if err != nil {
		return nil, &FetchError{URL: target, Err: err}
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}
	return newPage(string(data), u.String(), http.StatusOK), nil
}

func newPage(markup, final string, status int) *Page {
	p := &Page{HTML: markup, URL: final, Status: status}
	if title := dom.Parse(markup).Find(dom.Tag("title")); title != nil {
		p.Title = strings.Join(strings.Fields(title.Text()), " ")
	}
	return p
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// localPath reports whether target refers to the filesystem and returns
// the path to read.
func localPath(target string) (string, bool) {
	if rest, ok := strings.CutPrefix(target, "file://"); ok {
		u, err := url.Parse(target)
		if err == nil && u.Path != "" {
			return filepath.FromSlash(u.Path), true
		}
		return rest, true
	}
	if strings.Contains(target, "://") {
		return "", false
	}
	if info, err := os.Stat(target); err == nil && !info.IsDir() {
		return target, true
	}
	return "", false
}

// ValidateURL accepts http and https URLs with a host, file:// URLs, and
// paths to existing files.
func ValidateURL(target string) error {
	if target == "" {
		return errors.New("url is empty")
	}
	if _, ok := localPath(target); ok {
		return nil
	}
	u, err := url.Parse(target)
	if err != nil {
		return fmt.Errorf("invalid url %q: %w", target, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid url %q: must start with http:// or https://, or name an existing file", target)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid url %q: missing host", target)
	}
	return nil
}
