package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"sp500-advisor/internal/store"
)

func TestInterpret(t *testing.T) {
	var gotAuth string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{"choices":[{"message":{"content":"  BUY\nReason: momentum.  "}}]}`))
	}))
	defer srv.Close()

	t.Setenv("OPENAI_API_ENDPOINT", srv.URL)
	t.Setenv("OPENAI_API_KEY", "test-key")

	cfg := store.DefaultConfig()
	cfg.LLM.Model = "gpt-3.5-turbo"
	out, err := New(cfg).Interpret(context.Background(), "what now")
	if err != nil {
		t.Fatalf("Interpret: %v", err)
	}
	if out != "BUY\nReason: momentum." {
		t.Errorf("unexpected reply %q", out)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("auth header %q", gotAuth)
	}
	if gotBody["model"] != "gpt-3.5-turbo" {
		t.Errorf("model %v", gotBody["model"])
	}
}

func TestInterpretMissingKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	if _, err := New(store.DefaultConfig()).Interpret(context.Background(), "p"); err == nil {
		t.Fatal("expected error without api key")
	}
}

func TestInterpretHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	t.Setenv("OPENAI_API_ENDPOINT", srv.URL)
	t.Setenv("OPENAI_API_KEY", "k")

	if _, err := New(store.DefaultConfig()).Interpret(context.Background(), "p"); err == nil {
		t.Fatal("expected error on 429")
	}
}
