package memory

import (
	"context"

	"backoffice/internal/domain/registers/stock"
)

// MovementRepo is the append-only movement log.
type MovementRepo struct {
	store *Store
	log   []*stock.Movement
}

// NewMovementRepo creates an empty movement log.
func NewMovementRepo(store *Store) *MovementRepo {
	return &MovementRepo{store: store}
}

func (r *MovementRepo) Append(ctx context.Context, m *stock.Movement) error {
	return r.store.write(ctx, func() (func(), error) {
		r.log = append(r.log, clone(m))
		n := len(r.log) - 1
		return func() { r.log = r.log[:n] }, nil
	})
}

// List returns matching movements, oldest first.
func (r *MovementRepo) List(ctx context.Context, f stock.MovementFilter) ([]*stock.Movement, error) {
	var out []*stock.Movement
	r.store.read(func() {
		for _, m := range r.log {
			if f.Matches(m) {
				out = append(out, clone(m))
			}
		}
	})
	return page(out, f.Limit, f.Offset), nil
}
