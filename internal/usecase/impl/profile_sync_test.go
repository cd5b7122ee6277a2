package impl

import (
	"testing"
	"time"

	"commons/internal/domain/entity"
	"commons/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeesOnboarding(t *testing.T) {
	testCases := []struct {
		name    string
		variant string
		want    bool
	}{
		{name: "empty variant", variant: "", want: false},
		{name: "navbar_basic matches exactly", variant: "navbar_basic", want: true},
		{name: "navbar_basic variant does not match", variant: "navbar_basic_v2", want: false},
		{name: "versioned in-feed-cta matches by substring", variant: "in-feed-cta-v2", want: true},
		{name: "notifications family", variant: "notifications-test", want: true},
		{name: "welcome-widget family", variant: "welcome-widget", want: true},
		{name: "unrelated variant", variant: "sidebar-banner", want: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, seesOnboarding(tc.variant))
		})
	}
}

func TestNormalizeAvatarURL(t *testing.T) {
	assert.Equal(t, "https://cdn.example.com/octo.png",
		normalizeAvatarURL("https://cdn.example.com/octo_normal.png"))
	// The suffix is stripped wherever it occurs, not only before the extension.
	assert.Equal(t, "https://cdn.example.com/octo/photo.jpg",
		normalizeAvatarURL("https://cdn.example.com/octo_normal/photo.jpg"))
	assert.Equal(t, "", normalizeAvatarURL(""))
	assert.Equal(t, "https://cdn.example.com/octo.png",
		normalizeAvatarURL("https://cdn.example.com/octo.png"))
}

func TestCoerceInt(t *testing.T) {
	assert.Equal(t, 42, coerceInt(42))
	assert.Equal(t, 42, coerceInt(int64(42)))
	assert.Equal(t, 42, coerceInt(float64(42.9)))
	assert.Equal(t, 42, coerceInt("42"))
	assert.Equal(t, -7, coerceInt("-7abc"))
	assert.Equal(t, 0, coerceInt("abc"))
	assert.Equal(t, 0, coerceInt(nil))
	assert.Equal(t, 0, coerceInt(map[string]any{}))
}

func TestParseProviderTime(t *testing.T) {
	ts, ok := parseProviderTime("2024-01-01T00:00:00Z")
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), ts.UTC())

	ts, ok = parseProviderTime("Mon Jan 02 15:04:05 +0000 2006")
	require.True(t, ok)
	assert.Equal(t, 2006, ts.Year())

	_, ok = parseProviderTime("not a timestamp")
	assert.False(t, ok)

	_, ok = parseProviderTime("")
	assert.False(t, ok)
}

func TestApplyProviderSync_Twitter(t *testing.T) {
	account := &entity.Account{}
	assertion := &service.Assertion{
		Provider: entity.ProviderTypeTwitter,
		Raw: map[string]any{
			"created_at":      "2024-06-01T12:00:00Z",
			"followers_count": "42",
			"friends_count":   float64(7),
		},
	}

	applyProviderSync(account, assertion)

	require.NotNil(t, account.TwitterCreatedAt)
	assert.Equal(t, time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC), account.TwitterCreatedAt.UTC())
	assert.Equal(t, 42, account.TwitterFollowersCount)
	assert.Equal(t, 7, account.TwitterFollowingCount)
	assert.Nil(t, account.GithubCreatedAt)
}

func TestApplyProviderSync_Github(t *testing.T) {
	account := &entity.Account{}
	assertion := &service.Assertion{
		Provider: entity.ProviderTypeGithub,
		Raw:      map[string]any{"created_at": "2024-06-01T12:00:00Z"},
	}

	applyProviderSync(account, assertion)

	require.NotNil(t, account.GithubCreatedAt)
	assert.Zero(t, account.TwitterFollowersCount)
	assert.Nil(t, account.TwitterCreatedAt)
}

func TestApplyProviderSync_NoRawPayload(t *testing.T) {
	account := &entity.Account{}
	assertion := &service.Assertion{Provider: entity.ProviderTypeTwitter}

	applyProviderSync(account, assertion)

	assert.Nil(t, account.TwitterCreatedAt)
	assert.Zero(t, account.TwitterFollowersCount)
}

func TestRandomToken(t *testing.T) {
	token, err := randomToken(20)
	require.NoError(t, err)
	assert.Len(t, token, 20)

	other, err := randomToken(20)
	require.NoError(t, err)
	assert.NotEqual(t, token, other)
}
