package stdout

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

// Notifier prints alerts to standard output. The default sink for local
// runs and for setups without SMTP credentials.
type Notifier struct {
	w io.Writer
}

func New() *Notifier { return &Notifier{w: os.Stdout} }

func (n *Notifier) Notify(ctx context.Context, subject, body string) error {
	rule := strings.Repeat("=", 60)
	_, err := fmt.Fprintf(n.w, "%s\n%s\n%s\n%s\n%s\n", rule, subject, rule, body, rule)
	return err
}
