package service

import (
	"context"
)

// AccountResolvedEvent is emitted after a sign-in assertion has been resolved
// to a local account, for downstream consumers such as analytics or moderation.
type AccountResolvedEvent struct {
	RequestID  string `json:"request_id,omitempty"` // For distributed tracing
	AccountID  string `json:"account_id"`
	Provider   string `json:"provider"`
	NewAccount bool   `json:"new_account"` // True when this resolution created the account.
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishAccountResolved publishes an account-resolved event for async processing
	PublishAccountResolved(ctx context.Context, event *AccountResolvedEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
