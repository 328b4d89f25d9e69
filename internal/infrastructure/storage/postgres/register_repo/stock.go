// Package register_repo provides the PostgreSQL stock movement register.
package register_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"backoffice/internal/domain/registers/stock"
	"backoffice/internal/infrastructure/storage/postgres"
)

const stockMovementsTable = "stock_movements"

var movementColumns = []string{
	"id", "item_id", "direction", "quantity", "reason", "unit_cost",
	"supplier_id", "balance_after", "branch", "user_id", "recorded_at",
}

// StockRepo implements stock.Repository. Rows are insert-only; the seq
// column preserves append order.
type StockRepo struct {
	txm     *postgres.TxManager
	builder squirrel.StatementBuilderType
}

var _ stock.Repository = (*StockRepo)(nil)

// NewStockRepo creates a new stock register repository.
func NewStockRepo(txm *postgres.TxManager) *StockRepo {
	return &StockRepo{
		txm:     txm,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *StockRepo) insertQuery(m *stock.Movement) squirrel.InsertBuilder {
	return r.builder.Insert(stockMovementsTable).
		Columns(movementColumns...).
		Values(
			m.ID, m.ItemID, m.Direction, m.Quantity, m.Reason, m.UnitCost,
			m.SupplierID, m.BalanceAfter, m.Branch, m.UserID, m.RecordedAt,
		)
}

// Append inserts one movement.
func (r *StockRepo) Append(ctx context.Context, m *stock.Movement) error {
	sql, args, err := r.insertQuery(m).ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

func (r *StockRepo) listQuery(f stock.MovementFilter) squirrel.SelectBuilder {
	q := r.builder.Select(movementColumns...).From(stockMovementsTable)

	if f.ItemID != nil {
		q = q.Where(squirrel.Eq{"item_id": *f.ItemID})
	}
	if f.SupplierID != nil {
		q = q.Where(squirrel.Eq{"supplier_id": *f.SupplierID})
	}
	if f.Direction != "" {
		q = q.Where(squirrel.Eq{"direction": f.Direction})
	}
	if f.Branch != "" {
		q = q.Where(squirrel.Eq{"branch": f.Branch})
	}
	if f.From != nil {
		q = q.Where(squirrel.GtOrEq{"recorded_at": *f.From})
	}
	if f.To != nil {
		q = q.Where(squirrel.Lt{"recorded_at": *f.To})
	}

	q = q.OrderBy("seq ASC")

	if f.Limit > 0 {
		q = q.Limit(uint64(f.Limit))
	}
	if f.Offset > 0 {
		q = q.Offset(uint64(f.Offset))
	}
	return q
}

// List returns matching movements, oldest first.
func (r *StockRepo) List(ctx context.Context, f stock.MovementFilter) ([]*stock.Movement, error) {
	sql, args, err := r.listQuery(f).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	movements := []*stock.Movement{}
	if err := pgxscan.Select(ctx, r.txm.GetQuerier(ctx), &movements, sql, args...); err != nil {
		return nil, fmt.Errorf("select movements: %w", err)
	}
	return movements, nil
}
