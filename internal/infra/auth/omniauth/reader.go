// Package omniauth decodes OmniAuth-style callback payloads into sign-in assertions.
package omniauth

import (
	"log/slog"

	"commons/internal/domain/entity"
	domainerrors "commons/internal/domain/errors"
	"commons/internal/domain/service"
)

// Reader converts the raw payload delivered by the OAuth callback into a
// normalized sign-in assertion. The payload follows the OmniAuth hash
// layout: provider, uid, credentials.{token,secret}, info.{...} and
// extra.raw_info carrying the provider's unmodified profile document.
type Reader struct {
	logger *slog.Logger
}

// NewReader is the constructor for Reader.
func NewReader(logger *slog.Logger) *Reader {
	return &Reader{logger: logger}
}

// Read validates and extracts a sign-in assertion from a callback payload.
func (r *Reader) Read(payload map[string]any) (*service.Assertion, error) {
	if payload == nil {
		return nil, domainerrors.ErrInvalidAssertion.WrapMessage("callback payload is required")
	}

	provider := entity.ProviderType(stringValue(payload, "provider"))
	if !provider.IsValid() {
		return nil, domainerrors.ErrUnknownProvider.WrapMessage("unsupported provider: " + provider.String())
	}

	uid := stringValue(payload, "uid")
	if uid == "" {
		return nil, domainerrors.ErrInvalidAssertion.WrapMessage("callback payload is missing uid")
	}

	assertion := &service.Assertion{
		Provider: provider,
		UID:      uid,
	}

	if credentials, ok := payload["credentials"].(map[string]any); ok {
		assertion.Credentials = service.AssertionCredentials{
			Token:  stringValue(credentials, "token"),
			Secret: stringValue(credentials, "secret"),
		}
	}

	if info, ok := payload["info"].(map[string]any); ok {
		assertion.Info = service.AssertionProfile{
			Nickname: stringValue(info, "nickname"),
			Name:     stringValue(info, "name"),
			Email:    stringValue(info, "email"),
			Image:    stringValue(info, "image"),
		}
	}

	if extra, ok := payload["extra"].(map[string]any); ok {
		if raw, ok := extra["raw_info"].(map[string]any); ok {
			assertion.Raw = raw
		}
	}
	if assertion.Raw == nil {
		assertion.Raw = map[string]any{}
	}

	return assertion, nil
}

func stringValue(m map[string]any, key string) string {
	if s, ok := m[key].(string); ok {
		return s
	}

	return ""
}
