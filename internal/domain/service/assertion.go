package service

import "commons/internal/domain/entity"

// AssertionProfile carries the normalized profile block of a sign-in assertion.
type AssertionProfile struct {
	Nickname string // Provider-side handle, e.g. the GitHub login.
	Name     string // Human-readable display name; may be empty.
	Email    string // Email reported by the provider; may be empty.
	Image    string // Avatar URL as reported, including any provider size suffix.
}

// AssertionCredentials carries the credential pair issued by the provider for
// this sign-in. Credentials rotate, so they are re-persisted on every call.
type AssertionCredentials struct {
	Token  string
	Secret string
}

// Assertion is the parsed proof of identity received from an external sign-in
// provider for one sign-in attempt. It is ephemeral and caller-supplied; the
// OAuth handshake that produced it happens upstream of this service.
type Assertion struct {
	Provider    entity.ProviderType  // Which provider vouched for this sign-in.
	UID         string               // Provider-assigned subject identifier.
	Credentials AssertionCredentials // Credential token/secret for this sign-in.
	Info        AssertionProfile     // Normalized profile fields.
	Raw         map[string]any       // The provider's raw_info payload, opaque and provider-specific.
}

// RawString returns the raw payload value under key as a string, or "" when
// the key is absent or not a string.
func (a *Assertion) RawString(key string) string {
	if a.Raw == nil {
		return ""
	}
	if s, ok := a.Raw[key].(string); ok {
		return s
	}

	return ""
}

// HasRaw reports whether the assertion carries any raw provider payload.
// Assertions without raw data skip provider-specific sync but still resolve.
func (a *Assertion) HasRaw() bool {
	return len(a.Raw) > 0
}
