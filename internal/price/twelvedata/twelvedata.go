// Package twelvedata fetches the last market price from the Twelve Data
// price endpoint.
package twelvedata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/time/rate"

	"sp500-advisor/internal/logger"
)

const defaultBaseURL = "https://api.twelvedata.com"

type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
	symbol     string
	apiKey     string

	retryInterval time.Duration
}

// New creates a Twelve Data price client with rate limiting.
func New(symbol, apiKey string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		limiter:    rate.NewLimiter(rate.Every(time.Second), 5),
		baseURL:    defaultBaseURL,
		symbol:     symbol,
		apiKey:     apiKey,

		retryInterval: 2 * time.Second,
	}
}

type priceResponse struct {
	Price string `json:"price"`
}

// LastPrice returns the latest price for the configured symbol. Transient
// failures earn a single bounded retry.
func (c *Client) LastPrice(ctx context.Context) (float64, error) {
	if c.apiKey == "" {
		return 0, fmt.Errorf("TWELVE_API_KEY missing")
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, fmt.Errorf("rate limiter: %w", err)
	}

	u := fmt.Sprintf("%s/price?symbol=%s&apikey=%s", c.baseURL, url.QueryEscape(c.symbol), c.apiKey)

	var body []byte
	operation := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		resp, err := c.httpClient.Do(req)
		if err != nil {
			return fmt.Errorf("HTTP request failed: %w", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("non-200 status code: %d", resp.StatusCode)
		}
		body, err = io.ReadAll(resp.Body)
		return err
	}

	strategy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewConstantBackOff(c.retryInterval), 1), ctx)
	if err := backoff.Retry(operation, strategy); err != nil {
		return 0, fmt.Errorf("after retry: %w", err)
	}

	if strings.Contains(string(body), `"status":"error"`) {
		logger.Warn(ctx, "Twelve Data API error", "response", string(body))
		return 0, fmt.Errorf("twelve data API error: %s", string(body))
	}

	var data priceResponse
	if err := json.Unmarshal(body, &data); err != nil {
		return 0, fmt.Errorf("parsing JSON: %w", err)
	}
	price, err := strconv.ParseFloat(data.Price, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing price %q: %w", data.Price, err)
	}
	return price, nil
}
