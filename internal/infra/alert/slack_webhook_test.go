package alert

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"commons/config"
	"commons/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlackWebhookNotifier_Notify(t *testing.T) {
	var received slackMessage
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(body, &received))

		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	notifier := NewSlackWebhookNotifier(server.URL, 0, slog.Default())

	err := notifier.Notify(context.Background(), service.Alert{
		Message: "Potential spam account! https://community.example.com/octo",
		Channel: "potential-spam",
		Sender:  "spam_account_checker_bot",
		Icon:    ":exclamation:",
	})
	assert.NoError(t, err)

	assert.Equal(t, "Potential spam account! https://community.example.com/octo", received.Text)
	assert.Equal(t, "potential-spam", received.Channel)
	assert.Equal(t, "spam_account_checker_bot", received.Username)
	assert.Equal(t, ":exclamation:", received.IconEmoji)
}

func TestSlackWebhookNotifier_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	notifier := NewSlackWebhookNotifier(server.URL, 0, slog.Default())

	err := notifier.Notify(context.Background(), service.Alert{Message: "hello"})
	assert.ErrorContains(t, err, "non-success status: 500")
}

func TestSlackWebhookNotifier_UnreachableEndpoint(t *testing.T) {
	notifier := NewSlackWebhookNotifier("http://127.0.0.1:1/webhook", 0, slog.Default())

	err := notifier.Notify(context.Background(), service.Alert{Message: "hello"})
	assert.Error(t, err)
}

func TestNewAlertNotifier_Disabled(t *testing.T) {
	notifier, err := NewAlertNotifier(NotifierParams{
		Config: &config.Config{},
		Logger: slog.Default(),
	})
	assert.NoError(t, err)
	assert.NoError(t, notifier.Notify(context.Background(), service.Alert{Message: "dropped"}))
}

func TestNewAlertNotifier_EnabledWithoutURL(t *testing.T) {
	notifier, err := NewAlertNotifier(NotifierParams{
		Config: &config.Config{Alerts: &config.AlertsConfig{Enabled: true}},
		Logger: slog.Default(),
	})
	assert.Nil(t, notifier)
	assert.ErrorContains(t, err, "webhook URL is required")
}
