package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"
)

// Mailer sends one HTML e-mail. Implementations must return a non-nil error
// for any delivery failure; callers treat an error and a failed send the
// same way.
type Mailer interface {
	SendEmail(ctx context.Context, to string, subject string, html string) error
}

// APIMailer posts messages to an HTTP mail API (SendGrid-style relay).
type APIMailer struct {
	ApiURL string
	ApiKey string
	From   string
	DryRun bool
}

var configuredMailer APIMailer

// SetMailConfig seeds the mailer defaults from the loaded configuration.
// The MAIL_* env vars still override per field.
func SetMailConfig(m APIMailer) {
	configuredMailer = m
}

// MailerFromEnv builds an APIMailer from the configured defaults plus
// MAIL_API_URL / MAIL_API_KEY / MAIL_FROM. Set MAIL_DRY_RUN=true to log
// instead of sending.
func MailerFromEnv() APIMailer {
	m := configuredMailer
	if v := strings.TrimSpace(os.Getenv("MAIL_API_URL")); v != "" {
		m.ApiURL = v
	}
	if v := strings.TrimSpace(os.Getenv("MAIL_API_KEY")); v != "" {
		m.ApiKey = v
	}
	if v := strings.TrimSpace(os.Getenv("MAIL_FROM")); v != "" {
		m.From = v
	}
	if v := strings.TrimSpace(os.Getenv("MAIL_DRY_RUN")); v != "" {
		m.DryRun = strings.EqualFold(v, "true")
	}
	return m
}

func (m APIMailer) SendEmail(ctx context.Context, to string, subject string, html string) error {
	if m.DryRun {
		log.Printf("mailer (dry-run): to=%s subject=%q bytes=%d", to, subject, len(html))
		return nil
	}
	if m.ApiURL == "" || m.ApiKey == "" {
		return fmt.Errorf("MAIL_API_URL or MAIL_API_KEY not set")
	}

	reqBody := map[string]any{
		"from":    m.From,
		"to":      to,
		"subject": subject,
		"html":    html,
	}

	b, _ := json.Marshal(reqBody)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.ApiURL, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+m.ApiKey)
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("mail api error: status=%d body=%s", resp.StatusCode, string(body))
	}
	return nil
}
