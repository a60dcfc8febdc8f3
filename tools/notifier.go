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

// TaskCompletionNotice is the payload sent once per completed task, with the
// full recipient list. Batching per recipient is the collaborator's concern.
type TaskCompletionNotice struct {
	TaskID          int64    `json:"task_id"`
	TaskName        string   `json:"task_name"`
	TransactionID   int64    `json:"transaction_id"`
	CustomerIDs     []int64  `json:"customer_ids"`
	CustomerEmails  []string `json:"customer_emails"`
	PropertyAddress string   `json:"property_address"`
}

// Notifier delivers task-completion notices to customers. Failures are
// absorbed by the caller; a broken notification path must never block a
// task update.
type Notifier interface {
	NotifyTaskCompletion(ctx context.Context, notice TaskCompletionNotice) error
}

// WebhookNotifier posts notices to a configured webhook.
type WebhookNotifier struct {
	WebhookURL string
	DryRun     bool
}

var configuredNotifier WebhookNotifier

// SetNotifyConfig seeds the notifier defaults from the loaded configuration.
// The NOTIFY_* env vars still override.
func SetNotifyConfig(n WebhookNotifier) {
	configuredNotifier = n
}

// NotifierFromEnv builds a WebhookNotifier from the configured defaults plus
// NOTIFY_WEBHOOK_URL. A missing URL behaves as dry-run so dev setups work
// without a receiver.
func NotifierFromEnv() WebhookNotifier {
	n := configuredNotifier
	if v := strings.TrimSpace(os.Getenv("NOTIFY_WEBHOOK_URL")); v != "" {
		n.WebhookURL = v
	}
	if v := strings.TrimSpace(os.Getenv("NOTIFY_DRY_RUN")); v != "" {
		n.DryRun = strings.EqualFold(v, "true")
	}
	if n.WebhookURL == "" {
		n.DryRun = true
	}
	return n
}

func (n WebhookNotifier) NotifyTaskCompletion(ctx context.Context, notice TaskCompletionNotice) error {
	if n.DryRun {
		log.Printf("notifier (dry-run): task_id=%d transaction_id=%d recipients=%d",
			notice.TaskID, notice.TransactionID, len(notice.CustomerEmails))
		return nil
	}

	b, _ := json.Marshal(notice)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.WebhookURL, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("notify webhook error: status=%d body=%s", resp.StatusCode, string(body))
	}
	return nil
}
