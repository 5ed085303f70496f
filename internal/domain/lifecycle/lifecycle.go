// Package lifecycle holds shared start and stop constants.
package lifecycle

import "time"

// DefaultTimeout bounds graceful shutdown of servers and stores.
const DefaultTimeout = 10 * time.Second
