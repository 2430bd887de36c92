package ports

import "context"

// SubmitGuard refuses a write while an identical one is still in flight.
type SubmitGuard interface {
	// Acquire reports false when key is already held.
	Acquire(ctx context.Context, key string) (bool, error)
	Release(ctx context.Context, key string) error
}
