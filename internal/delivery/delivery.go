// Package delivery defines the contract every transport surface implements.
package delivery

import "context"

// Delivery is a long-running transport surface, started by the application
// container and stopped through its lifecycle hooks.
type Delivery interface {
	Serve(ctx context.Context) error
}
