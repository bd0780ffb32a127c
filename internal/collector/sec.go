package collector

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"StockDashboard/internal/model"
)

var (
	// ErrNoData means a concept has no usable facts for the company.
	ErrNoData = errors.New("no data")
	// ErrUnknownTicker means the ticker is not in the SEC ticker map.
	ErrUnknownTicker = errors.New("unknown ticker")
)

const (
	DefaultSECBaseURL    = "https://data.sec.gov"
	DefaultSECTickersURL = "https://www.sec.gov/files/company_tickers.json"
)

// SECFetcher reads company concepts from the SEC XBRL API.
type SECFetcher struct {
	BaseURL    string
	TickersURL string
	UserAgent  string
	Client     *http.Client
	Limiter    *rate.Limiter
	Log        zerolog.Logger

	mu      sync.Mutex
	tickers map[string]string
}

// NewSECFetcher creates a fetcher limited to rps requests per second.
// The SEC rejects requests without a descriptive User-Agent.
func NewSECFetcher(userAgent string, rps float64, client *http.Client, logger zerolog.Logger) *SECFetcher {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	burst := int(rps)
	if burst < 1 {
		burst = 1
	}
	return &SECFetcher{
		BaseURL:    DefaultSECBaseURL,
		TickersURL: DefaultSECTickersURL,
		UserAgent:  userAgent,
		Client:     client,
		Limiter:    rate.NewLimiter(rate.Limit(rps), burst),
		Log:        logger,
	}
}

func (f *SECFetcher) Name() string { return "sec" }

// conceptResponse is the companyconcept payload; only units are read.
type conceptResponse struct {
	CIK   json.Number             `json:"cik"`
	Tag   string                  `json:"tag"`
	Units map[string][]model.Fact `json:"units"`
}

// tickerEntry is one row of company_tickers.json.
type tickerEntry struct {
	CIK    int64  `json:"cik_str"`
	Ticker string `json:"ticker"`
	Title  string `json:"title"`
}

func (f *SECFetcher) FetchConcept(ctx context.Context, cik, concept string, unit model.Unit) ([]model.Fact, error) {
	u := fmt.Sprintf("%s/api/xbrl/companyconcept/CIK%s/us-gaap/%s.json",
		strings.TrimRight(f.BaseURL, "/"), cik, concept)

	body, err := f.get(ctx, u, false)
	if err != nil {
		return nil, fmt.Errorf("concept %s: %w", concept, err)
	}

	var resp conceptResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("concept %s: decode: %w", concept, err)
	}
	facts, ok := resp.Units[string(unit)]
	if !ok {
		return nil, fmt.Errorf("concept %s: unit %s: %w", concept, unit, ErrNoData)
	}
	return facts, nil
}

// Resolve returns the 10 digit CIK of ticker. The ticker map is downloaded
// on first successful use, bypassing any response cache, and kept for the
// lifetime of the fetcher.
func (f *SECFetcher) Resolve(ctx context.Context, ticker string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.tickers == nil {
		tickers, err := f.loadTickers(ctx)
		if err != nil {
			return "", err
		}
		f.tickers = tickers
	}
	cik, ok := f.tickers[strings.ToUpper(strings.TrimSpace(ticker))]
	if !ok {
		return "", fmt.Errorf("%s: %w", ticker, ErrUnknownTicker)
	}
	return cik, nil
}

func (f *SECFetcher) loadTickers(ctx context.Context) (map[string]string, error) {
	body, err := f.get(ctx, f.TickersURL, true)
	if err != nil {
		return nil, fmt.Errorf("ticker map: %w", err)
	}

	var rows map[string]tickerEntry
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("ticker map: decode: %w", err)
	}
	tickers := make(map[string]string, len(rows))
	for _, r := range rows {
		tickers[strings.ToUpper(r.Ticker)] = fmt.Sprintf("%010d", r.CIK)
	}
	contextLogger(ctx, f.Log).Debug().Int("tickers", len(tickers)).Msg("sec ticker map loaded")
	return tickers, nil
}

// get fetches u. A fresh request asks caches between here and the SEC not
// to answer from a stored copy.
func (f *SECFetcher) get(ctx context.Context, u string, fresh bool) ([]byte, error) {
	if err := f.Limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", f.UserAgent)
	req.Header.Set("Accept", "application/json")
	if fresh {
		req.Header.Set("Cache-Control", "no-cache")
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sec fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("sec read body: %w", err)
	}
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNoData
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("sec: status %d, body: %s", resp.StatusCode, truncate(body, 200))
	}
	return body, nil
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		return string(b[:n]) + "..."
	}
	return string(b)
}
