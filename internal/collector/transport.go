package collector

import (
	"bufio"
	"bytes"
	"context"
	"crypto/sha1"
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"StockDashboard/internal/cache"
)

// CachingTransport serves GET requests from a cache.Store and stores
// successful responses for TTL. Other methods and non-2xx responses pass
// straight through. A request carrying "Cache-Control: no-cache" always
// goes to the network and refreshes the stored copy.
type CachingTransport struct {
	Base  http.RoundTripper
	Store cache.Store
	TTL   time.Duration
	// OnLookup, when set, is told whether each cacheable request was a hit.
	OnLookup func(host string, hit bool)
	// Log is used when the request context carries no logger.
	Log zerolog.Logger
}

func (c *CachingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Method != http.MethodGet || c.Store == nil {
		return c.base().RoundTrip(req)
	}

	log := contextLogger(req.Context(), c.Log)
	key := cacheKey(req)
	if !noCache(req) {
		if content, err := c.Store.Get(req.Context(), key); err == nil {
			if resp, err := http.ReadResponse(bufio.NewReader(bytes.NewReader(content)), req); err == nil {
				c.observe(req, true)
				return resp, nil
			}
		}
		c.observe(req, false)
	}

	resp, err := c.base().RoundTrip(req)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("method", req.Method).Str("url", req.URL.Host+req.URL.Path).Str("status", resp.Status).Msg("http")
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp, nil
	}

	content, err := httputil.DumpResponse(resp, true)
	if err != nil {
		log.Warn().Err(err).Msg("cache dump failed (ignored)")
		return resp, nil
	}
	if err := c.Store.Put(req.Context(), key, content, c.TTL); err != nil {
		log.Warn().Err(err).Msg("cache write failed (ignored)")
	}
	return resp, nil
}

func noCache(req *http.Request) bool {
	return strings.Contains(strings.ToLower(req.Header.Get("Cache-Control")), "no-cache")
}

// contextLogger returns the logger carried by ctx, or fallback when there
// is none.
func contextLogger(ctx context.Context, fallback zerolog.Logger) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &fallback
}

func (c *CachingTransport) base() http.RoundTripper {
	if c.Base == nil {
		return http.DefaultTransport
	}
	return c.Base
}

func (c *CachingTransport) observe(req *http.Request, hit bool) {
	if c.OnLookup != nil {
		c.OnLookup(req.URL.Host, hit)
	}
}

func cacheKey(req *http.Request) string {
	return fmt.Sprintf("%x", sha1.Sum([]byte(req.Method+" "+req.URL.String())))
}

// HTTPOptions configures NewHTTPClient.
type HTTPOptions struct {
	Proxy    string
	Timeout  time.Duration
	Store    cache.Store
	TTL      time.Duration
	OnLookup func(host string, hit bool)
	Log      zerolog.Logger
}

// NewHTTPClient returns a client with optional proxy support whose GET
// responses are cached when a store is configured.
func NewHTTPClient(opts HTTPOptions) *http.Client {
	transport := &http.Transport{Proxy: http.ProxyFromEnvironment}
	if opts.Proxy != "" {
		if u, err := url.Parse(opts.Proxy); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	var rt http.RoundTripper = transport
	if opts.Store != nil {
		rt = &CachingTransport{Base: transport, Store: opts.Store, TTL: opts.TTL, OnLookup: opts.OnLookup, Log: opts.Log}
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &http.Client{Timeout: timeout, Transport: rt}
}
