// Package yahoo fetches the last market price from the Yahoo Finance quote
// endpoint.
package yahoo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"sp500-advisor/internal/logger"
)

const defaultBaseURL = "https://query1.finance.yahoo.com"

type Client struct {
	httpClient *http.Client
	baseURL    string
	symbol     string

	// wait before the single retry a 429 earns; a field so tests don't
	// sleep five seconds
	retryDelay time.Duration
}

// New creates a Yahoo quote client for one symbol.
func New(symbol string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    defaultBaseURL,
		symbol:     symbol,
		retryDelay: 5 * time.Second,
	}
}

type quoteResponse struct {
	QuoteResponse struct {
		Result []struct {
			RegularMarketPrice float64 `json:"regularMarketPrice"`
		} `json:"result"`
	} `json:"quoteResponse"`
}

// LastPrice returns the regular market price for the configured symbol.
// A rate-limited first attempt (HTTP 429) is retried exactly once after a
// fixed delay; whatever the second attempt yields is final.
func (c *Client) LastPrice(ctx context.Context) (float64, error) {
	resp, err := c.get(ctx)
	if err != nil {
		return 0, err
	}
	if resp.StatusCode == http.StatusTooManyRequests {
		resp.Body.Close()
		logger.Warn(ctx, "Yahoo Finance rate limit hit, retrying after delay", "delay", c.retryDelay.String())

		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case <-time.After(c.retryDelay):
		}

		resp, err = c.get(ctx)
		if err != nil {
			return 0, err
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("yahoo http %d", resp.StatusCode)
	}

	var data quoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return 0, fmt.Errorf("parsing quote response: %w", err)
	}
	if len(data.QuoteResponse.Result) == 0 {
		return 0, errors.New("empty quote result")
	}
	return data.QuoteResponse.Result[0].RegularMarketPrice, nil
}

func (c *Client) get(ctx context.Context) (*http.Response, error) {
	u := fmt.Sprintf("%s/v7/finance/quote?symbols=%s", c.baseURL, url.QueryEscape(c.symbol))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	return c.httpClient.Do(req)
}
