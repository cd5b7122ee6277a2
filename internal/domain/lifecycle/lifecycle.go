// Package lifecycle holds shared constants for graceful startup and shutdown.
package lifecycle

import "time"

// DefaultTimeout bounds how long startup pings and shutdown drains may take.
const DefaultTimeout = 10 * time.Second
