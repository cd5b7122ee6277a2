package impl

import (
	"testing"
	"time"

	"commons/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func timePtr(t time.Time) *time.Time {
	return &t
}

func TestAccountIsRecent(t *testing.T) {
	now := time.Date(2026, 9, 1, 15, 30, 0, 0, time.UTC)

	testCases := []struct {
		name     string
		account  *entity.Account
		identity *entity.ExternalIdentity
		want     bool
	}{
		{
			name:     "github account created three days ago",
			account:  &entity.Account{GithubCreatedAt: timePtr(now.Add(-3 * 24 * time.Hour))},
			identity: &entity.ExternalIdentity{},
			want:     true,
		},
		{
			name:     "twitter account created ten days ago",
			account:  &entity.Account{TwitterCreatedAt: timePtr(now.Add(-10 * 24 * time.Hour))},
			identity: &entity.ExternalIdentity{},
			want:     false,
		},
		{
			name:     "window start is inclusive",
			account:  &entity.Account{GithubCreatedAt: timePtr(time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC))},
			identity: &entity.ExternalIdentity{},
			want:     true,
		},
		{
			name:     "just before window start",
			account:  &entity.Account{GithubCreatedAt: timePtr(time.Date(2026, 8, 24, 23, 59, 59, 0, time.UTC))},
			identity: &entity.ExternalIdentity{},
			want:     false,
		},
		{
			name:     "future timestamp is not recent",
			account:  &entity.Account{GithubCreatedAt: timePtr(now.Add(time.Hour))},
			identity: &entity.ExternalIdentity{},
			want:     false,
		},
		{
			name: "github timestamp takes precedence over twitter",
			account: &entity.Account{
				GithubCreatedAt:  timePtr(now.Add(-30 * 24 * time.Hour)),
				TwitterCreatedAt: timePtr(now.Add(-time.Hour)),
			},
			identity: &entity.ExternalIdentity{},
			want:     false,
		},
		{
			name:    "raw payload fallback when no synced timestamp",
			account: &entity.Account{},
			identity: &entity.ExternalIdentity{
				AuthData: map[string]any{"created_at": now.Add(-2 * 24 * time.Hour).Format(time.RFC3339)},
			},
			want: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			recent, err := accountIsRecent(tc.account, tc.identity, now)
			require.NoError(t, err)
			assert.Equal(t, tc.want, recent)
		})
	}
}

func TestAccountIsRecent_NoReference(t *testing.T) {
	_, err := accountIsRecent(&entity.Account{}, &entity.ExternalIdentity{}, time.Now())

	require.Error(t, err)
	assert.ErrorIs(t, err, errNoAgeReference)
}

func TestAccountIsRecent_UnparseableFallback(t *testing.T) {
	identity := &entity.ExternalIdentity{
		AuthData: map[string]any{"created_at": "yesterday-ish"},
	}

	_, err := accountIsRecent(&entity.Account{}, identity, time.Now())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "unparseable provider creation timestamp")
}
