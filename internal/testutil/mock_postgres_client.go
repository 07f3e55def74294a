package testutil

import (
	"context"
	"sync/atomic"

	"github.com/papertrails/papertrails/internal/postgres"
)

var _ postgres.IClient = (*MockPostgresClient)(nil) // Ensure MockPostgresClient implements IClient

// MockPostgresClient runs transactional work inline and counts how many
// transactions were opened
type MockPostgresClient struct {
	txCount atomic.Int64
}

// NewMockPostgresClient creates a new mock postgres client
func NewMockPostgresClient() *MockPostgresClient {
	return &MockPostgresClient{}
}

// WithTx executes the given function without a real transaction
func (c *MockPostgresClient) WithTx(ctx context.Context, fn func(context.Context) error) error {
	c.txCount.Add(1)
	return fn(ctx)
}

// TxCount returns the number of WithTx calls so far
func (c *MockPostgresClient) TxCount() int64 {
	return c.txCount.Load()
}
