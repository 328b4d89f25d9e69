// Package memory provides an in-process store for development and tests.
//
// Transactions are serialized: RunInTransaction holds a single writer lock
// for the whole callback and rolls back through an undo journal on error.
// Readers outside a transaction never block on it and may observe writes of
// a transaction still in progress.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// Store owns every table. Create one with New.
type Store struct {
	writeMu sync.Mutex   // held by the active transaction
	mu      sync.RWMutex // guards table contents
}

// New creates an empty store.
func New() *Store {
	return &Store{}
}

type txKey struct{}

type txState struct {
	undo []func()
}

func txFrom(ctx context.Context) (*txState, bool) {
	st, ok := ctx.Value(txKey{}).(*txState)
	return st, ok
}

// TxManager implements tx.Manager over a Store.
type TxManager struct {
	store *Store
}

// NewTxManager creates a transaction manager.
func NewTxManager(store *Store) *TxManager {
	return &TxManager{store: store}
}

// RunInTransaction executes fn holding the writer lock. Writes are undone in
// reverse order if fn returns an error or panics. Nested calls join the
// outer transaction.
func (m *TxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if _, ok := txFrom(ctx); ok {
		return fn(ctx)
	}

	m.store.writeMu.Lock()
	defer m.store.writeMu.Unlock()

	st := &txState{}
	defer func() {
		if p := recover(); p != nil {
			m.store.rollback(st)
			panic(p)
		}
		if err != nil {
			m.store.rollback(st)
		}
	}()
	return fn(context.WithValue(ctx, txKey{}, st))
}

// ReadOnly executes fn. Reads are individually consistent.
func (m *TxManager) ReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (s *Store) rollback(st *txState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := len(st.undo) - 1; i >= 0; i-- {
		st.undo[i]()
	}
}

// write applies a mutation under the table lock. Outside a transaction it
// takes the writer lock itself; inside one it records the undo step.
func (s *Store) write(ctx context.Context, apply func() (undo func(), err error)) error {
	st, inTx := txFrom(ctx)
	if !inTx {
		s.writeMu.Lock()
		defer s.writeMu.Unlock()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	undo, err := apply()
	if err != nil {
		return err
	}
	if inTx && undo != nil {
		st.undo = append(st.undo, undo)
	}
	return nil
}

func (s *Store) read(fn func()) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn()
}

// clone deep-copies v through its JSON form so callers never share state
// with stored rows.
func clone[T any](v T) T {
	var out T
	raw, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("memory: clone %T: %v", v, err))
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		panic(fmt.Sprintf("memory: clone %T: %v", v, err))
	}
	return out
}
