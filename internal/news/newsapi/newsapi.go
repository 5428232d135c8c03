// Package newsapi fetches S&P 500 headlines from the NewsAPI everything
// endpoint.
package newsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const defaultBaseURL = "https://newsapi.org"

// query matches index coverage under its common spellings.
const defaultQuery = `S&P 500 OR SP500 OR "S&P 500"`

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	query      string
}

// New creates a NewsAPI client.
func New(apiKey string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    defaultBaseURL,
		apiKey:     apiKey,
		query:      defaultQuery,
	}
}

type everythingResponse struct {
	Articles []struct {
		Title string `json:"title"`
	} `json:"articles"`
}

// Headlines returns up to limit article titles, newest first (API order).
func (c *Client) Headlines(ctx context.Context, limit int) ([]string, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("NEWS_API_KEY missing")
	}

	q := url.Values{}
	q.Set("q", c.query)
	q.Set("language", "en")
	q.Set("sortBy", "publishedAt")
	q.Set("pageSize", fmt.Sprint(limit))
	q.Set("apiKey", c.apiKey)

	u := fmt.Sprintf("%s/v2/everything?%s", c.baseURL, q.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("newsapi http %d", resp.StatusCode)
	}

	var data everythingResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, fmt.Errorf("parsing response: %w", err)
	}

	headlines := make([]string, 0, len(data.Articles))
	for _, a := range data.Articles {
		if a.Title != "" {
			headlines = append(headlines, a.Title)
		}
	}
	return headlines, nil
}
