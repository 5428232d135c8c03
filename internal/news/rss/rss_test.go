package rss

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const feedXML = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Test Markets</title>
    <item><title>S&amp;P 500 closes higher</title></item>
    <item><title>&lt;b&gt;Fed&lt;/b&gt; signals patience</title></item>
    <item><title>Oil slides on demand worries</title></item>
  </channel>
</rss>`

func TestHeadlines(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(feedXML))
	}))
	defer srv.Close()

	c := NewWithFeeds([]Feed{{Name: "test", URL: srv.URL}})

	headlines, err := c.Headlines(context.Background(), 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(headlines) != 2 {
		t.Fatalf("headlines = %v, want 2 entries", headlines)
	}
	if headlines[0] != "S&P 500 closes higher" {
		t.Errorf("headlines[0] = %q, want entity-decoded title", headlines[0])
	}
	if headlines[1] != "Fed signals patience" {
		t.Errorf("headlines[1] = %q, want HTML-stripped title", headlines[1])
	}
}

func TestHeadlinesSkipsFailedFeed(t *testing.T) {
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer bad.Close()
	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(feedXML))
	}))
	defer good.Close()

	c := NewWithFeeds([]Feed{{Name: "bad", URL: bad.URL}, {Name: "good", URL: good.URL}})

	headlines, err := c.Headlines(context.Background(), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(headlines) != 3 {
		t.Errorf("headlines = %v, want 3 entries from the good feed", headlines)
	}
}

func TestCleanTitle(t *testing.T) {
	cases := []struct{ in, want string }{
		{"plain title", "plain title"},
		{"  padded  ", "padded"},
		{"<em>markup</em> inside", "markup inside"},
		{"A &amp; B", "A & B"},
	}
	for _, tc := range cases {
		if got := cleanTitle(tc.in); got != tc.want {
			t.Errorf("cleanTitle(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
