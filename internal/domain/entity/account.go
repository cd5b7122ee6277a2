// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Account is the core entity in the system, representing one member of the community.
// Accounts created through social sign-in never carry a usable local password;
// PasswordDigest holds the hash of a random throwaway credential instead.
type Account struct {
	ID                    uuid.UUID  // The Global Unique Identifier (GUID) for the account.
	Name                  string     // The account's display name.
	Email                 string     // The account's contact email; may be empty when the provider withholds it.
	Username              string     // The site-wide handle used in profile URLs.
	ProfileImageURL       string     // Remote avatar URL, already stripped of provider size suffixes.
	GithubUsername        string     // The account's GitHub login, set when a GitHub identity is linked.
	TwitterUsername       string     // The account's Twitter handle, set when a Twitter identity is linked.
	GithubCreatedAt       *time.Time // When the linked GitHub account was created, as reported by GitHub.
	TwitterCreatedAt      *time.Time // When the linked Twitter account was created, as reported by Twitter.
	TwitterFollowersCount int        // Follower count reported by Twitter at last sync.
	TwitterFollowingCount int        // Following count reported by Twitter at last sync.
	Confirmed             bool       // Whether the account's email is considered verified.
	SawOnboarding         bool       // Whether the onboarding flow has been shown (or suppressed) for this account.
	SignupCTAVariant      string     // The signup call-to-action variant the account came in through, if any.
	PasswordDigest        string     // Hash of the placeholder credential; never a user-chosen password.
	CreatedAt             time.Time  // Timestamp of when this account was created.
	UpdatedAt             time.Time  // Timestamp of the last modification to this account.
}

// ProviderUsername returns the stored per-provider username for the given provider.
func (a *Account) ProviderUsername(provider ProviderType) string {
	switch provider {
	case ProviderTypeGithub:
		return a.GithubUsername
	case ProviderTypeTwitter:
		return a.TwitterUsername
	default:
		return ""
	}
}

// SetProviderUsername stores the per-provider username for the given provider.
// Unrecognized providers are ignored.
func (a *Account) SetProviderUsername(provider ProviderType, username string) {
	switch provider {
	case ProviderTypeGithub:
		a.GithubUsername = username
	case ProviderTypeTwitter:
		a.TwitterUsername = username
	}
}
