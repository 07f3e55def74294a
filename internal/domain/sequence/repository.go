package sequence

import (
	"context"
)

type Repository interface {
	// IncrementAndGet creates the counter at zero when absent, increments it
	// and returns the new value. Must be called inside a transaction; the row
	// stays locked until that transaction ends.
	IncrementAndGet(ctx context.Context, key ScopeKey) (int64, error)
	// PeekNext returns last_number+1 without mutating anything.
	PeekNext(ctx context.Context, key ScopeKey) (int64, error)
	Get(ctx context.Context, key ScopeKey) (*Counter, error)
}
