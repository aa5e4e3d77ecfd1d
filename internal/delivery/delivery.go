// Package delivery defines the transport-agnostic contract for servers started by cmd binaries.
package delivery

import "context"

// Delivery is a long-running server. Serve blocks until the server stops.
type Delivery interface {
	Serve(ctx context.Context) error
}
