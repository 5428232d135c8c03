package newsapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHeadlines(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("apiKey") != "test-key" {
			t.Errorf("missing apiKey: %q", r.URL.RawQuery)
		}
		if r.URL.Query().Get("pageSize") != "5" {
			t.Errorf("pageSize = %q, want 5", r.URL.Query().Get("pageSize"))
		}
		w.Write([]byte(`{"articles":[{"title":"Stocks rally"},{"title":""},{"title":"Fed pauses"}]}`))
	}))
	defer srv.Close()

	c := New("test-key")
	c.baseURL = srv.URL

	headlines, err := c.Headlines(context.Background(), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// order preserved, empty titles dropped
	want := []string{"Stocks rally", "Fed pauses"}
	if len(headlines) != len(want) {
		t.Fatalf("headlines = %v, want %v", headlines, want)
	}
	for i := range want {
		if headlines[i] != want[i] {
			t.Errorf("headlines[%d] = %q, want %q", i, headlines[i], want[i])
		}
	}
}

func TestHeadlinesMissingKey(t *testing.T) {
	if _, err := New("").Headlines(context.Background(), 5); err == nil {
		t.Fatal("expected error for missing API key")
	}
}

func TestHeadlinesHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := New("bad-key")
	c.baseURL = srv.URL

	if _, err := c.Headlines(context.Background(), 5); err == nil {
		t.Fatal("expected error for http 401")
	}
}
