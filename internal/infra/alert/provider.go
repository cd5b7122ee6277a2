// Package alert provides moderation alert sink implementations.
package alert

import (
	"context"
	"log/slog"

	"commons/config"
	"commons/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// noopNotifier drops alerts when the sink is disabled. Alerts are advisory;
// an environment without a webhook still resolves sign-ins normally.
type noopNotifier struct {
	logger *slog.Logger
}

func (n *noopNotifier) Notify(ctx context.Context, alert service.Alert) error {
	n.logger.Debug("[NoopAlert] Alert delivery disabled, dropping",
		slog.String("channel", alert.Channel),
		slog.String("message", alert.Message),
	)

	return nil
}

// NotifierParams holds dependencies for AlertNotifier, injected by Fx
type NotifierParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

// NewAlertNotifier creates an AlertNotifier based on configuration
func NewAlertNotifier(params NotifierParams) (service.AlertNotifier, error) {
	cfg := params.Config.Alerts
	logger := params.Logger

	if cfg == nil || !cfg.Enabled {
		logger.Info("Alerts not configured, using no-op notifier")

		return &noopNotifier{logger: logger}, nil
	}

	if cfg.WebhookURL == "" {
		return nil, errors.New("webhook URL is required when alerts are enabled")
	}

	logger.Info("Using Slack webhook alert notifier")

	return NewSlackWebhookNotifier(cfg.WebhookURL, cfg.Timeout, logger), nil
}

// Module provides the alert FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewAlertNotifier),
)
