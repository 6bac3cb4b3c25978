package crawler

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/AnuroopSrivastava/Verdictify/internal/apperr"
	"github.com/AnuroopSrivastava/Verdictify/internal/metrics"
	"github.com/AnuroopSrivastava/Verdictify/internal/parser"
	"github.com/AnuroopSrivastava/Verdictify/pkg/logger"
)

// Options configures the scraping proxy client.
type Options struct {
	BaseURL     string
	APIKey      string
	Timeout     time.Duration // per attempt
	DialTimeout time.Duration
	SizeCap     int64
	MaxAttempts int
	RetryDelay  time.Duration
}

// ProxyClient fetches rendered product pages through a scraping proxy
// (ScrapingBee-style: GET <base>?api_key=...&url=...).
type ProxyClient struct {
	client    *http.Client
	opts      Options
	userAgent string
	retry     Retry
	log       *logger.Logger
}

func NewProxyClient(opts Options, l *logger.Logger) *ProxyClient {
	if opts.DialTimeout == 0 {
		opts.DialTimeout = 5 * time.Second
	}
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   opts.DialTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	return &ProxyClient{
		client: &http.Client{
			Transport: transport,
			Timeout:   opts.Timeout,
		},
		opts:      opts,
		userAgent: "verdictify/1.0",
		retry:     Retry{MaxAttempts: opts.MaxAttempts, BaseDelay: opts.RetryDelay, Logger: l},
		log:       l,
	}
}

// FetchRenderedPage returns the proxy-rendered page for productURL.
// A missing API key is a config error and is never retried; transport
// failures, timeouts and non-200 answers are upstream errors retried
// within the configured budget.
func (c *ProxyClient) FetchRenderedPage(ctx context.Context, productURL string) (parser.Page, error) {
	if c.opts.APIKey == "" {
		return parser.Page{}, apperr.Config("SCRAPER_API_KEY missing in env")
	}
	apiURL, err := c.requestURL(productURL)
	if err != nil {
		return parser.Page{}, apperr.Config("invalid scraper base url: %v", err)
	}

	var page parser.Page
	err = c.retry.Do(ctx, "fetch "+productURL, func(ctx context.Context) error {
		start := time.Now()
		p, err := c.fetchOnce(ctx, apiURL)
		metrics.FetchLatency.Observe(time.Since(start).Seconds())
		if err != nil {
			return err
		}
		c.log.Debugf("fetched %s in %s (%d bytes)", productURL, time.Since(start), len(p.Raw))
		page = p
		return nil
	})
	return page, err
}

func (c *ProxyClient) requestURL(productURL string) (string, error) {
	u, err := url.Parse(c.opts.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("invalid url %q", c.opts.BaseURL)
	}
	q := u.Query()
	q.Set("api_key", c.opts.APIKey)
	q.Set("url", productURL)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (c *ProxyClient) fetchOnce(ctx context.Context, apiURL string) (parser.Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return parser.Page{}, apperr.Upstream("build request", err)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Encoding", "gzip")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return parser.Page{}, apperr.Upstream("proxy request", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return parser.Page{}, apperr.Upstream(fmt.Sprintf("proxy status %d", resp.StatusCode), nil)
	}

	var body io.Reader = resp.Body
	if strings.EqualFold(resp.Header.Get("Content-Encoding"), "gzip") {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return parser.Page{}, apperr.Upstream("gzip", err)
		}
		defer gz.Close()
		body = gz
	}

	// enforce a size cap
	if c.opts.SizeCap > 0 {
		body = io.LimitReader(body, c.opts.SizeCap)
	}
	page, err := parser.Parse(body, resp.Header.Get("Content-Type"))
	if err != nil {
		return parser.Page{}, apperr.Upstream("read page", err)
	}
	return page, nil
}
