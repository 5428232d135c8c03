package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"sp500-advisor/internal/runner"
	"sp500-advisor/internal/store"
	"sp500-advisor/internal/types"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "server-test-logs-")
	if err != nil {
		panic(err)
	}
	os.Setenv("ADVISOR_LOG_DIR", dir)
	code := m.Run()
	os.RemoveAll(dir)
	os.Exit(code)
}

type fakePrice struct{ price float64 }

func (f *fakePrice) LastPrice(ctx context.Context) (float64, error) { return f.price, nil }

type fakeNews struct{ headlines []string }

func (f *fakeNews) Headlines(ctx context.Context, limit int) ([]string, error) {
	return f.headlines, nil
}

type fakeLLM struct{ reply string }

func (f *fakeLLM) Interpret(ctx context.Context, prompt string) (string, error) {
	return f.reply, nil
}

type fakeNotifier struct{ calls int }

func (f *fakeNotifier) Notify(ctx context.Context, subject, body string) error {
	f.calls++
	return nil
}

func newTestServer(reply string, headlines []string) *Server {
	cfg := store.DefaultConfig()
	r := runner.New(cfg,
		&fakePrice{price: 6000},
		&fakeNews{headlines: headlines},
		&fakeLLM{reply: reply},
		&fakeNotifier{},
	)
	return New(cfg, r)
}

func TestHealth(t *testing.T) {
	srv := newTestServer("HOLD", []string{"h"})

	rr := httptest.NewRecorder()
	srv.routes().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field %q", body["status"])
	}
	if body["symbol"] != "^GSPC" {
		t.Errorf("symbol field %q", body["symbol"])
	}
}

func TestRecommendationEndpoint(t *testing.T) {
	srv := newTestServer("BUY\nReason: breakout.\nStop Loss: 5900\nTake Profit: 6150",
		[]string{"Fed holds rates", "Earnings beat"})

	rr := httptest.NewRecorder()
	srv.routes().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/recommendation", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status %d: %s", rr.Code, rr.Body.String())
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type %q", ct)
	}

	var res types.JobResult
	if err := json.Unmarshal(rr.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Action != types.ActionBuy {
		t.Errorf("action %q", res.Action)
	}
	if res.StopLoss == nil || *res.StopLoss != "5900" {
		t.Errorf("stop loss %v", res.StopLoss)
	}
	if len(res.Headlines) != 2 {
		t.Errorf("headlines %v", res.Headlines)
	}
	if res.Error != "" {
		t.Errorf("unexpected error %q", res.Error)
	}
}

func TestRecommendationEndpointNoNews(t *testing.T) {
	srv := newTestServer("BUY", nil)

	rr := httptest.NewRecorder()
	srv.routes().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/recommendation", nil))

	// Job-level failures still answer 200; the error rides in the payload.
	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	var res types.JobResult
	if err := json.Unmarshal(rr.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Error != "no news found" {
		t.Errorf("error %q", res.Error)
	}
	if res.Action != types.ActionHold {
		t.Errorf("action %q", res.Action)
	}
}

func TestServesEmbeddedPage(t *testing.T) {
	srv := newTestServer("HOLD", []string{"h"})

	rr := httptest.NewRecorder()
	srv.routes().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status %d", rr.Code)
	}
	if body := rr.Body.String(); !strings.Contains(body, "S&amp;P 500 Advisor") {
		t.Error("embedded page not served")
	}
}

func TestStartStopsOnCancel(t *testing.T) {
	cfg := store.DefaultConfig()
	cfg.Server.Addr = "127.0.0.1:0"
	srv := New(cfg, runner.New(cfg, &fakePrice{}, &fakeNews{}, &fakeLLM{}, &fakeNotifier{}))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Start(ctx) }()

	cancel()
	if err := <-done; err != nil && !errors.Is(err, http.ErrServerClosed) {
		t.Fatalf("Start returned %v", err)
	}
}
