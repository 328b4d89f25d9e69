package register_repo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/internal/core/id"
	"backoffice/internal/domain/registers/stock"
)

const movementSelect = "SELECT id, item_id, direction, quantity, reason, unit_cost, supplier_id, balance_after, branch, user_id, recorded_at FROM stock_movements"

func TestListQuery(t *testing.T) {
	repo := NewStockRepo(nil)
	itemID := id.New()
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	sql, args, err := repo.listQuery(stock.MovementFilter{
		ItemID:    &itemID,
		Direction: stock.DirectionIn,
		From:      &from,
		To:        &to,
		Limit:     10,
		Offset:    5,
	}).ToSql()
	require.NoError(t, err)

	assert.Equal(t, movementSelect+
		" WHERE item_id = $1 AND direction = $2 AND recorded_at >= $3 AND recorded_at < $4"+
		" ORDER BY seq ASC LIMIT 10 OFFSET 5", sql)
	assert.Len(t, args, 4)
}

func TestListQuery_NoFilter(t *testing.T) {
	sql, args, err := NewStockRepo(nil).listQuery(stock.MovementFilter{}).ToSql()
	require.NoError(t, err)
	assert.Equal(t, movementSelect+" ORDER BY seq ASC", sql)
	assert.Empty(t, args)
}

func TestInsertQuery(t *testing.T) {
	m := &stock.Movement{ID: id.New(), ItemID: id.New(), Direction: stock.DirectionOut}

	sql, args, err := NewStockRepo(nil).insertQuery(m).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO stock_movements (id,item_id,direction,quantity,reason,unit_cost,supplier_id,balance_after,branch,user_id,recorded_at) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)", sql)
	assert.Len(t, args, 11)
}
