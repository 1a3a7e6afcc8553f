// Package pricing fetches end-of-day closing prices for the equity
// report's benchmark comparison.
package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// TokenEnv names the environment variable holding the provider API token.
const TokenEnv = "EOD_API_KEY"

const DefaultBaseURL = "https://eodhd.com"

// Close is one end-of-day price point as returned by the provider.
type Close struct {
	Date     string  `json:"date"`
	Close    float64 `json:"close"`
	AdjClose float64 `json:"adjusted_close"`
}

// Price returns the usable close, preferring the adjusted value.
func (c Close) Price() float64 {
	if c.AdjClose != 0 {
		return c.AdjClose
	}
	return c.Close
}

// QuoteSource supplies daily closes for a ticker over an inclusive
// [from, to] date range (YYYY-MM-DD).
type QuoteSource interface {
	DailyCloses(ctx context.Context, ticker, from, to string) ([]Close, error)
}

// Client is an HTTP QuoteSource speaking the EODHD-style JSON API:
// GET {base}/api/eod/{TICKER}?from=F&to=T&period=d&fmt=json&api_token=K
type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

func NewClient(baseURL, token string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL: baseURL,
		Token:   token,
		HTTP:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) DailyCloses(ctx context.Context, ticker, from, to string) ([]Close, error) {
	q := url.Values{}
	q.Set("from", from)
	q.Set("to", to)
	q.Set("period", "d")
	q.Set("fmt", "json")
	q.Set("api_token", c.Token)

	addr := fmt.Sprintf("%s/api/eod/%s?%s",
		strings.TrimRight(c.BaseURL, "/"), url.PathEscape(ticker), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch quotes for %s: %w", ticker, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch quotes for %s: %s", ticker, resp.Status)
	}

	var closes []Close
	if err := json.NewDecoder(resp.Body).Decode(&closes); err != nil {
		return nil, fmt.Errorf("decode quotes for %s: %w", ticker, err)
	}
	return closes, nil
}
