// Package delivery defines the contract shared by all transport surfaces.
package delivery

import "context"

// Delivery is a long-running transport surface started by the composition root.
type Delivery interface {
	Serve(ctx context.Context) error
}
