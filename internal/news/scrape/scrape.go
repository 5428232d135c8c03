// Package scrape collects market headlines straight off a news site's
// topic page. Fallback source for when no news API credential is
// configured.
package scrape

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"

	"sp500-advisor/internal/logger"
)

// Source is one scrapeable news page.
type Source struct {
	Name          string
	URL           string
	TitleSelector string
}

// DefaultSources lists index-coverage pages tried in order.
var DefaultSources = []Source{
	{
		Name:          "Yahoo Finance",
		URL:           "https://finance.yahoo.com/topic/stock-market-news/",
		TitleSelector: "h3",
	},
	{
		Name:          "MarketWatch",
		URL:           "https://www.marketwatch.com/markets",
		TitleSelector: "h3.article__headline a",
	},
}

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

type Scraper struct {
	sources []Source
	timeout time.Duration
}

// New creates a scraper over the default sources.
func New() *Scraper {
	return &Scraper{sources: DefaultSources, timeout: 30 * time.Second}
}

// NewWithSources creates a scraper over custom sources.
func NewWithSources(sources []Source) *Scraper {
	return &Scraper{sources: sources, timeout: 30 * time.Second}
}

// Headlines visits each source page until limit titles are collected.
// Sources that fail or yield nothing are skipped.
func (s *Scraper) Headlines(ctx context.Context, limit int) ([]string, error) {
	var headlines []string
	seen := map[string]bool{}

	for _, src := range s.sources {
		if len(headlines) >= limit {
			break
		}
		titles, err := s.scrapeSource(ctx, src, limit-len(headlines))
		if err != nil {
			logger.Warn(ctx, "Skipping failed scrape source", "source", src.Name, "error", err.Error())
			continue
		}
		for _, t := range titles {
			if !seen[t] {
				seen[t] = true
				headlines = append(headlines, t)
			}
		}
	}
	return headlines, nil
}

func (s *Scraper) scrapeSource(ctx context.Context, src Source, max int) ([]string, error) {
	var titles []string

	c := colly.NewCollector(
		colly.AllowedDomains(hostOf(src.URL)),
		colly.MaxDepth(1),
	)
	c.SetRequestTimeout(s.timeout)

	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("User-Agent", userAgent)
	})

	c.OnHTML(src.TitleSelector, func(e *colly.HTMLElement) {
		if len(titles) >= max {
			return
		}
		title := strings.TrimSpace(e.Text)
		// drop nav fragments and one-word section labels
		if len(title) < 15 {
			return
		}
		titles = append(titles, title)
	})

	if err := c.Visit(src.URL); err != nil {
		return nil, err
	}
	c.Wait()

	return titles, nil
}

func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
