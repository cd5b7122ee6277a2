package alert

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"commons/internal/domain/service"

	"github.com/pkg/errors"
)

const defaultWebhookTimeout = 10 * time.Second

// slackWebhookNotifier implements AlertNotifier by posting messages to a
// Slack-compatible incoming webhook.
type slackWebhookNotifier struct {
	webhookURL string
	httpClient *http.Client
	logger     *slog.Logger
}

// slackMessage is the incoming-webhook payload format.
type slackMessage struct {
	Text      string `json:"text"`
	Channel   string `json:"channel,omitempty"`
	Username  string `json:"username,omitempty"`
	IconEmoji string `json:"icon_emoji,omitempty"`
}

// NewSlackWebhookNotifier creates a new Slack webhook notifier.
func NewSlackWebhookNotifier(webhookURL string, timeout time.Duration, logger *slog.Logger) service.AlertNotifier {
	if timeout <= 0 {
		timeout = defaultWebhookTimeout
	}

	return &slackWebhookNotifier{
		webhookURL: webhookURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// Notify delivers the alert to the webhook endpoint.
func (n *slackWebhookNotifier) Notify(ctx context.Context, alert service.Alert) error {
	body, err := json.Marshal(slackMessage{
		Text:      alert.Message,
		Channel:   alert.Channel,
		Username:  alert.Sender,
		IconEmoji: alert.Icon,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(body))
	if err != nil {
		return errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/json")

	n.logger.Debug("[SlackAlert] Delivering alert",
		slog.String("channel", alert.Channel),
	)

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return errors.WithStack(err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.Errorf("webhook returned non-success status: %d", resp.StatusCode)
	}

	return nil
}
