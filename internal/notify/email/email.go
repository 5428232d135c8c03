package email

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/smtp"
	"strings"

	"sp500-advisor/internal/store"
	"sp500-advisor/internal/trace"
)

// Notifier delivers alerts over SMTP with implicit TLS (port 465 style),
// authenticating with a per-app password.
type Notifier struct {
	host  string
	port  int
	creds store.Creds
}

func New(cfg *store.Config, creds store.Creds) *Notifier {
	return &Notifier{
		host:  cfg.Notify.SMTPHost,
		port:  cfg.Notify.SMTPPort,
		creds: creds,
	}
}

func (n *Notifier) Notify(ctx context.Context, subject, body string) error {
	_, span := trace.StartSpan(ctx, "email-send")
	defer span.End()

	if n.creds.EmailFrom == "" || n.creds.EmailTo == "" || n.creds.EmailPassword == "" {
		return errors.New("email credentials missing: EMAIL_FROM, EMAIL_TO and EMAIL_PASSWORD required")
	}

	addr := net.JoinHostPort(n.host, fmt.Sprintf("%d", n.port))
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: n.host})
	if err != nil {
		return fmt.Errorf("tls dial %s: %w", addr, err)
	}

	c, err := smtp.NewClient(conn, n.host)
	if err != nil {
		conn.Close()
		return fmt.Errorf("smtp handshake: %w", err)
	}
	defer c.Close()

	auth := smtp.PlainAuth("", n.creds.EmailFrom, n.creds.EmailPassword, n.host)
	if err := c.Auth(auth); err != nil {
		return fmt.Errorf("smtp auth: %w", err)
	}
	if err := c.Mail(n.creds.EmailFrom); err != nil {
		return fmt.Errorf("smtp mail from: %w", err)
	}
	if err := c.Rcpt(n.creds.EmailTo); err != nil {
		return fmt.Errorf("smtp rcpt to: %w", err)
	}

	w, err := c.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := w.Write([]byte(n.message(subject, body))); err != nil {
		w.Close()
		return fmt.Errorf("smtp write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp close: %w", err)
	}

	return c.Quit()
}

func (n *Notifier) message(subject, body string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", n.creds.EmailFrom)
	fmt.Fprintf(&b, "To: %s\r\n", n.creds.EmailTo)
	fmt.Fprintf(&b, "Subject: %s\r\n", subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	b.WriteString("Content-Type: text/plain; charset=\"utf-8\"\r\n")
	b.WriteString("\r\n")
	b.WriteString(body)
	b.WriteString("\r\n")
	return b.String()
}
