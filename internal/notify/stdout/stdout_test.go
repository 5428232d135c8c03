package stdout

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestNotifyWritesSubjectAndBody(t *testing.T) {
	var buf bytes.Buffer
	n := &Notifier{w: &buf}

	if err := n.Notify(context.Background(), "S&P 500 Trading Alert", "AI Trading Signal: HOLD"); err != nil {
		t.Fatalf("Notify: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "S&P 500 Trading Alert") {
		t.Errorf("subject missing from output:\n%s", out)
	}
	if !strings.Contains(out, "AI Trading Signal: HOLD") {
		t.Errorf("body missing from output:\n%s", out)
	}
}
