package omniauth

import (
	"log/slog"
	"testing"

	"commons/internal/domain/entity"
	domainerrors "commons/internal/domain/errors"

	"github.com/stretchr/testify/assert"
)

func fullPayload() map[string]any {
	return map[string]any{
		"provider": "twitter",
		"uid":      "12345",
		"credentials": map[string]any{
			"token":  "oauth-token",
			"secret": "oauth-secret",
		},
		"info": map[string]any{
			"nickname": "octo",
			"name":     "Octo Cat",
			"email":    "octo@example.com",
			"image":    "https://cdn.example.com/octo_normal.png",
		},
		"extra": map[string]any{
			"raw_info": map[string]any{
				"created_at":      "2024-01-01T00:00:00Z",
				"followers_count": "42",
			},
		},
	}
}

func TestReader_Read(t *testing.T) {
	reader := NewReader(slog.Default())

	assertion, err := reader.Read(fullPayload())
	assert.NoError(t, err)
	assert.Equal(t, entity.ProviderTypeTwitter, assertion.Provider)
	assert.Equal(t, "12345", assertion.UID)
	assert.Equal(t, "oauth-token", assertion.Credentials.Token)
	assert.Equal(t, "oauth-secret", assertion.Credentials.Secret)
	assert.Equal(t, "octo", assertion.Info.Nickname)
	assert.Equal(t, "Octo Cat", assertion.Info.Name)
	assert.Equal(t, "octo@example.com", assertion.Info.Email)
	assert.Equal(t, "https://cdn.example.com/octo_normal.png", assertion.Info.Image)
	assert.Equal(t, "2024-01-01T00:00:00Z", assertion.Raw["created_at"])
}

func TestReader_ReadMinimalPayload(t *testing.T) {
	reader := NewReader(slog.Default())

	assertion, err := reader.Read(map[string]any{
		"provider": "github",
		"uid":      "999",
	})
	assert.NoError(t, err)
	assert.Equal(t, entity.ProviderTypeGithub, assertion.Provider)
	assert.Empty(t, assertion.Credentials.Token)
	assert.Empty(t, assertion.Info.Email)
	assert.NotNil(t, assertion.Raw)
	assert.Empty(t, assertion.Raw)
}

func TestReader_ReadRejectsUnknownProvider(t *testing.T) {
	reader := NewReader(slog.Default())

	payload := fullPayload()
	payload["provider"] = "myspace"

	assertion, err := reader.Read(payload)
	assert.Nil(t, assertion)
	assert.ErrorContains(t, err, "unsupported provider")

	var appErr domainerrors.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, domainerrors.ErrUnknownProvider.ErrorCode(), appErr.ErrorCode())
}

func TestReader_ReadRejectsMissingUID(t *testing.T) {
	reader := NewReader(slog.Default())

	payload := fullPayload()
	delete(payload, "uid")

	assertion, err := reader.Read(payload)
	assert.Nil(t, assertion)
	assert.ErrorContains(t, err, "missing uid")
}

func TestReader_ReadNilPayload(t *testing.T) {
	reader := NewReader(slog.Default())

	assertion, err := reader.Read(nil)
	assert.Nil(t, assertion)
	assert.Error(t, err)
}
