package twelvedata

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(url string) *Client {
	c := New("SPX", "test-key")
	c.baseURL = url
	c.retryInterval = 10 * time.Millisecond
	return c
}

func TestLastPrice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("apikey") != "test-key" {
			t.Errorf("missing apikey in query: %q", r.URL.RawQuery)
		}
		w.Write([]byte(`{"price":"5847.33000"}`))
	}))
	defer srv.Close()

	price, err := newTestClient(srv.URL).LastPrice(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if price != 5847.33 {
		t.Errorf("price = %f, want 5847.33", price)
	}
}

func TestLastPriceRetriesTransientFailure(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"price":"6000"}`))
	}))
	defer srv.Close()

	price, err := newTestClient(srv.URL).LastPrice(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if price != 6000 {
		t.Errorf("price = %f, want 6000", price)
	}
	if calls != 2 {
		t.Errorf("server saw %d calls, want 2", calls)
	}
}

func TestLastPriceAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"error","message":"symbol not found"}`))
	}))
	defer srv.Close()

	if _, err := newTestClient(srv.URL).LastPrice(context.Background()); err == nil {
		t.Fatal("expected error for API error payload")
	}
}

func TestLastPriceMissingKey(t *testing.T) {
	c := New("SPX", "")
	if _, err := c.LastPrice(context.Background()); err == nil {
		t.Fatal("expected error for missing API key")
	}
}
