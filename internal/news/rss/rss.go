// Package rss fetches market headlines from RSS feeds.
package rss

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"

	"sp500-advisor/internal/logger"
)

// Feed is one RSS source.
type Feed struct {
	Name string
	URL  string
}

// DefaultFeeds lists US market-report feeds tried in order.
var DefaultFeeds = []Feed{
	{Name: "Yahoo Finance", URL: "https://finance.yahoo.com/news/rssindex"},
	{Name: "CNBC Markets", URL: "https://www.cnbc.com/id/100003114/device/rss/rss.html"},
	{Name: "MarketWatch Top Stories", URL: "https://feeds.content.dowjones.io/public/rss/mw_topstories"},
}

type Client struct {
	feeds  []Feed
	parser *gofeed.Parser
}

// New creates an RSS headline source over the default feeds.
func New() *Client {
	return &Client{feeds: DefaultFeeds, parser: gofeed.NewParser()}
}

// NewWithFeeds creates an RSS headline source over custom feeds.
func NewWithFeeds(feeds []Feed) *Client {
	return &Client{feeds: feeds, parser: gofeed.NewParser()}
}

// Headlines collects up to limit item titles across the configured feeds,
// preserving feed order then item order. Failed feeds are skipped.
func (c *Client) Headlines(ctx context.Context, limit int) ([]string, error) {
	var headlines []string
	for _, feed := range c.feeds {
		if len(headlines) >= limit {
			break
		}
		parsed, err := c.parser.ParseURLWithContext(feed.URL, ctx)
		if err != nil {
			logger.Warn(ctx, "Skipping failed feed", "feed", feed.Name, "error", err.Error())
			continue
		}
		for _, item := range parsed.Items {
			if len(headlines) >= limit {
				break
			}
			title := cleanTitle(item.Title)
			if title != "" {
				headlines = append(headlines, title)
			}
		}
	}
	return headlines, nil
}

// cleanTitle strips any HTML markup and entities that feeds occasionally
// embed in item titles.
func cleanTitle(title string) string {
	title = strings.TrimSpace(title)
	if !strings.Contains(title, "<") && !strings.Contains(title, "&") {
		return title
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(title))
	if err != nil {
		return title
	}
	return strings.TrimSpace(doc.Text())
}
