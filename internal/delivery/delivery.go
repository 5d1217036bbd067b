// Package delivery defines the contract every transport (HTTP today) must
// satisfy so the composition root can serve them uniformly.
package delivery

import "context"

// Delivery is a serveable transport endpoint.
type Delivery interface {
	Serve(ctx context.Context) error
}
