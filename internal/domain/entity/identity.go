// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// ExternalIdentity is the durable record binding a (provider, uid) pair to at
// most one local Account. Credentials and the raw provider payload are
// refreshed on every sign-in; the account link is written once and never
// overwritten (first bind wins).
type ExternalIdentity struct {
	ID        uuid.UUID      // The unique ID for this identity record itself.
	Provider  ProviderType   // The external provider this identity belongs to, e.g. "github".
	UID       string         // The provider-assigned subject identifier for the user.
	Token     string         // The credential token from the most recent sign-in.
	Secret    string         // The credential secret from the most recent sign-in.
	AuthData  map[string]any // Snapshot of the provider's raw payload from the most recent sign-in.
	AccountID *uuid.UUID     // The linked Account, nil until the first successful resolution.
	CreatedAt time.Time      // Timestamp of when this identity was first seen.
	UpdatedAt time.Time      // Timestamp of the last credential refresh.
}

// Linked reports whether this identity has been bound to an account.
func (i *ExternalIdentity) Linked() bool {
	return i.AccountID != nil
}
