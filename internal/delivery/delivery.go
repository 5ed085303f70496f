// Package delivery holds the entrypoints that expose usecases to callers.
package delivery

import "context"

// Delivery is a long-running server started by the entrypoint.
type Delivery interface {
	Serve(ctx context.Context) error
}
