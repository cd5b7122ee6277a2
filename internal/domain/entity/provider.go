// Package entity contains the core business objects of the project.
package entity

// ProviderType identifies an external sign-in provider.
type ProviderType string

const (
	// ProviderTypeGithub indicates a GitHub sign-in.
	ProviderTypeGithub ProviderType = "github"
	// ProviderTypeTwitter indicates a Twitter sign-in.
	ProviderTypeTwitter ProviderType = "twitter"
)

// String returns the string representation of the ProviderType.
func (p ProviderType) String() string {
	return string(p)
}

// IsValid checks if the ProviderType is a valid value.
func (p ProviderType) IsValid() bool {
	switch p {
	case ProviderTypeGithub, ProviderTypeTwitter:
		return true
	default:
		return false
	}
}
