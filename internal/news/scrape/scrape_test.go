package scrape

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const page = `<html><body>
<h3>Markets</h3>
<h3>S&amp;P 500 ends the week at a record high</h3>
<h3>Treasury yields fall after inflation data</h3>
<h3>Treasury yields fall after inflation data</h3>
</body></html>`

func TestHeadlines(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(page))
	}))
	defer srv.Close()

	s := NewWithSources([]Source{{Name: "test", URL: srv.URL, TitleSelector: "h3"}})

	headlines, err := s.Headlines(context.Background(), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// short nav label dropped, duplicate collapsed
	want := []string{
		"S&P 500 ends the week at a record high",
		"Treasury yields fall after inflation data",
	}
	if len(headlines) != len(want) {
		t.Fatalf("headlines = %v, want %v", headlines, want)
	}
	for i := range want {
		if headlines[i] != want[i] {
			t.Errorf("headlines[%d] = %q, want %q", i, headlines[i], want[i])
		}
	}
}

func TestHeadlinesRespectsLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(page))
	}))
	defer srv.Close()

	s := NewWithSources([]Source{{Name: "test", URL: srv.URL, TitleSelector: "h3"}})

	headlines, err := s.Headlines(context.Background(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(headlines) != 1 {
		t.Errorf("headlines = %v, want a single entry", headlines)
	}
}

func TestHeadlinesSkipsFailedSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(page))
	}))
	defer srv.Close()

	s := NewWithSources([]Source{
		{Name: "bad", URL: "http://127.0.0.1:1/none", TitleSelector: "h3"},
		{Name: "good", URL: srv.URL, TitleSelector: "h3"},
	})

	headlines, err := s.Headlines(context.Background(), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(headlines) == 0 {
		t.Error("expected headlines from the good source")
	}
}
