package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/twohoursonelife/collective-sync/internal/model"
)

// MaxMessageLength is Discord's hard cap on message content.
const MaxMessageLength = 2000

// ErrMessageTooLong is returned when a formatted batch would exceed the
// Discord message cap. Nothing is sent in that case.
var ErrMessageTooLong = errors.New("announcement exceeds discord message limit")

// WebhookError represents a rejected webhook execution.
type WebhookError struct {
	StatusCode int
	Body       []byte
}

func (e *WebhookError) Error() string {
	return fmt.Sprintf("discord webhook error %d: %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// Webhook posts announcements to a Discord incoming webhook URL.
type Webhook struct {
	url        string
	username   string
	avatarURL  string
	httpClient *http.Client
	logger     *slog.Logger
}

// WebhookOption configures a Webhook.
type WebhookOption func(*Webhook)

// NewWebhook creates a webhook client for the given URL.
func NewWebhook(url string, opts ...WebhookOption) *Webhook {
	w := &Webhook{
		url: url,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		logger: slog.Default(),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w
}

// WithUsername sets the display name on outgoing messages.
func WithUsername(name string) WebhookOption {
	return func(w *Webhook) {
		w.username = name
	}
}

// WithAvatarURL sets the avatar on outgoing messages.
func WithAvatarURL(url string) WebhookOption {
	return func(w *Webhook) {
		w.avatarURL = url
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) WebhookOption {
	return func(w *Webhook) {
		w.logger = logger
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) WebhookOption {
	return func(w *Webhook) {
		w.httpClient = hc
	}
}

// webhookPayload is the JSON body of a webhook execution.
type webhookPayload struct {
	Content   string `json:"content"`
	Username  string `json:"username,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// Announce sends one message thanking each contributor, in the order
// given (callers pass oldest first). A nil or empty batch is a no-op.
func (w *Webhook) Announce(ctx context.Context, txs []model.Transaction) error {
	if len(txs) == 0 {
		return nil
	}

	content, err := BuildMessage(txs)
	if err != nil {
		return err
	}

	body, err := json.Marshal(webhookPayload{
		Content:   content,
		Username:  w.username,
		AvatarURL: w.avatarURL,
	})
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := w.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("execute webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		respBody, _ := io.ReadAll(resp.Body)
		return &WebhookError{
			StatusCode: resp.StatusCode,
			Body:       respBody,
		}
	}

	w.logger.Debug("webhook delivered",
		"transactions", len(txs),
		"bytes", len(content),
		"duration", time.Since(start),
	)

	return nil
}

// BuildMessage formats the batch into a single message body. Returns
// ErrMessageTooLong if the result would not fit in one Discord message.
func BuildMessage(txs []model.Transaction) (string, error) {
	var b strings.Builder
	for _, tx := range txs {
		b.WriteString(FormatLine(tx))
	}

	if b.Len() >= MaxMessageLength {
		return "", fmt.Errorf("%w: %d characters for %d transactions", ErrMessageTooLong, b.Len(), len(txs))
	}

	return b.String(), nil
}

// FormatLine renders one thank-you line. The <t:...:R> markup is
// Discord's relative timestamp.
func FormatLine(tx model.Transaction) string {
	return fmt.Sprintf("Thank you **%s** for your contribution of **$%s**, <t:%d:R>!\n",
		tx.FromAccount,
		tx.DollarString(),
		tx.CreatedAt.Unix(),
	)
}
