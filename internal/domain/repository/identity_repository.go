// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"commons/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrIdentityNotFound is returned when an external identity record is not found.
var ErrIdentityNotFound = errors.New("external identity not found")

// IdentityRepository defines the standard operations for external-identity persistence.
type IdentityRepository interface {
	// FindOrCreate retrieves the identity record for the (provider, uid) pair,
	// creating an unlinked one on first sight.
	FindOrCreate(ctx context.Context, provider entity.ProviderType, uid string) (*entity.ExternalIdentity, error)

	// Save persists the identity's mutable fields (credentials and raw payload
	// snapshot). The account link is not written through Save; use BindAccount.
	Save(ctx context.Context, identity *entity.ExternalIdentity) error

	// FindByProviderAndAccount retrieves the identity a given account has
	// linked for a provider, or ErrIdentityNotFound when no binding exists.
	FindByProviderAndAccount(ctx context.Context, provider entity.ProviderType, accountID uuid.UUID) (*entity.ExternalIdentity, error)

	// BindAccount sets the identity's account link if and only if it is still
	// unset (first write wins). The identity's AccountID is refreshed with
	// whatever value the row holds afterwards, so a concurrent winner's link
	// is observed rather than overwritten.
	BindAccount(ctx context.Context, identity *entity.ExternalIdentity, accountID uuid.UUID) error
}
