// Package tx lets domain services group writes (a stock movement and the
// item quantity it changes, an edit and its audit entry) without knowing the
// backing store.
package tx

import "context"

// Manager is implemented by the postgres pool wrapper and by the memory store.
type Manager interface {
	// RunInTransaction commits when fn returns nil and rolls back otherwise.
	// A call made with a ctx that already carries a transaction joins it.
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// ReadOnly gives fn a consistent snapshot, used by ledger reads that
	// combine items with their movements.
	ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}
