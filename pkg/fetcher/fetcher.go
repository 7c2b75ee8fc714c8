// Package fetcher retrieves fbref pages politely: rate limited, browser
// disguised, and with a file cache so reruns do not hit the site again.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	browser "github.com/EDDYCJY/fake-useragent"
	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"

	"github.com/fbstats/fbrefscan/pkg/caching"
)

var (
	// ErrRateLimited means fbref answered 429 and retries were exhausted.
	ErrRateLimited = errors.New("rate limited by server")
	// ErrBlocked means fbref answered 403, usually a bot-detection block.
	ErrBlocked = errors.New("blocked by server")
)

const (
	requestTimeout = 30 * time.Second
	retryCount     = 3
	retryWaitMin   = 5 * time.Second
	retryWaitMax   = 60 * time.Second
)

// AccessFunc observes every network fetch after retries settle. A
// transport failure arrives with statusCode 0. Cache hits are not
// reported; no request was made.
type AccessFunc func(url string, statusCode int, err error)

// Fetcher is safe for concurrent use; the limiter serializes the request
// rate across goroutines.
type Fetcher struct {
	client  *resty.Client
	limiter *rate.Limiter
	cache   *caching.Cache
	logger  *slog.Logger
	access  AccessFunc
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithCache stores fetched HTML on disk and serves unexpired copies
// without touching the network.
func WithCache(c *caching.Cache) Option {
	return func(f *Fetcher) { f.cache = c }
}

// WithLogger overrides the default logger.
func WithLogger(l *slog.Logger) Option {
	return func(f *Fetcher) { f.logger = l }
}

// WithAccessFunc registers an observer for fetch results, used to feed
// the access audit table.
func WithAccessFunc(fn AccessFunc) Option {
	return func(f *Fetcher) { f.access = fn }
}

// New builds a Fetcher capped at requestsPerMinute. The transport runs
// through the cloudflare bypass round tripper and every request carries
// a fresh browser user agent.
func New(requestsPerMinute int, opts ...Option) *Fetcher {
	if requestsPerMinute <= 0 {
		requestsPerMinute = 10
	}

	jar, _ := cookiejar.New(nil)
	httpClient := &http.Client{
		Jar:     jar,
		Timeout: requestTimeout,
	}
	httpClient.Transport = cloudflarebp.AddCloudFlareByPass(httpClient.Transport)

	f := &Fetcher{
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMinute)), 1),
		logger:  slog.Default(),
	}

	client := resty.NewWithClient(httpClient).
		SetRetryCount(retryCount).
		SetRetryWaitTime(retryWaitMin).
		SetRetryMaxWaitTime(retryWaitMax).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			return r.StatusCode() == http.StatusTooManyRequests || r.StatusCode() >= 500
		})
	client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		req.SetHeader("User-Agent", browser.Random())
		return f.limiter.Wait(req.Context())
	})

	f.client = client
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// GetHTML fetches a page and returns its body. Cached copies short
// circuit both the limiter and the network.
func (f *Fetcher) GetHTML(ctx context.Context, url string) (string, error) {
	if f.cache != nil {
		if data, ok := f.cache.Get(url); ok {
			f.logger.Debug("cache hit", "url", url)
			return string(data), nil
		}
	}

	resp, err := f.client.R().SetContext(ctx).Get(url)
	if err != nil {
		f.report(url, 0, err)
		return "", fmt.Errorf("fetching %s: %w", url, err)
	}

	switch resp.StatusCode() {
	case http.StatusOK:
		f.report(url, resp.StatusCode(), nil)
	case http.StatusTooManyRequests:
		f.report(url, resp.StatusCode(), ErrRateLimited)
		return "", fmt.Errorf("fetching %s: %w", url, ErrRateLimited)
	case http.StatusForbidden:
		f.report(url, resp.StatusCode(), ErrBlocked)
		return "", fmt.Errorf("fetching %s: %w", url, ErrBlocked)
	default:
		err := fmt.Errorf("fetching %s: unexpected status %d", url, resp.StatusCode())
		f.report(url, resp.StatusCode(), err)
		return "", err
	}

	body := string(resp.Body())
	if f.cache != nil {
		if err := f.cache.Set(url, resp.Body()); err != nil {
			f.logger.Warn("cache write failed", "url", url, "error", err)
		}
	}
	return body, nil
}

func (f *Fetcher) report(url string, statusCode int, err error) {
	if f.access != nil {
		f.access(url, statusCode, err)
	}
}

// GetDocument fetches a page and parses it with goquery.
func (f *Fetcher) GetDocument(ctx context.Context, url string) (*goquery.Document, error) {
	body, err := f.GetHTML(ctx, url)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", url, err)
	}
	return doc, nil
}
