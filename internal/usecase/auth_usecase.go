// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"commons/internal/domain/entity"
	"commons/internal/domain/service"
)

// --- Input DTOs ---

// ResolveInput carries everything one sign-in resolution needs: the parsed
// assertion, the already-authenticated account when the requester holds a
// valid session, and the signup call-to-action variant when present.
type ResolveInput struct {
	Assertion      *service.Assertion
	CurrentAccount *entity.Account
	CTAVariant     string
}

// --- Output DTOs ---

// ResolveOutput returns the resolved account together with a fresh session.
type ResolveOutput struct {
	Account      *entity.Account
	AccessToken  string
	RefreshToken string
	NewAccount   bool // True when this resolution created the account.
}

// AuthUsecase defines the interface for sign-in resolution operations.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AuthUsecase interface {
	// Resolve maps a sign-in assertion onto exactly one local account,
	// creating or updating it and binding the external identity to it.
	Resolve(ctx context.Context, input *ResolveInput) (*ResolveOutput, error)
}
