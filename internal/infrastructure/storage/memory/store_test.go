package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/internal/core/apperror"
	"backoffice/internal/core/id"
	"backoffice/internal/core/types"
	"backoffice/internal/domain"
	"backoffice/internal/domain/audit"
	"backoffice/internal/domain/filter"
	"backoffice/internal/domain/inventory"
	"backoffice/internal/domain/registers/stock"
)

func newItem(name, category, branch string, qty, reorder int64) *inventory.Item {
	it := inventory.NewItem(name, category, "kg", branch)
	it.Quantity = types.NewQuantity(qty)
	it.ReorderLevel = types.NewQuantity(reorder)
	return it
}

func TestTable_CreateReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewItemRepo(New())
	item := newItem("Flour", "dry", "main", 5, 10)
	require.NoError(t, repo.Create(ctx, item))

	item.Name = "mutated"
	got, err := repo.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Flour", got.Name)

	got.Name = "also mutated"
	again, _ := repo.GetByID(ctx, item.ID)
	assert.Equal(t, "Flour", again.Name)
}

func TestTable_DuplicateCreate(t *testing.T) {
	ctx := context.Background()
	repo := NewItemRepo(New())
	item := newItem("Flour", "dry", "main", 5, 10)
	require.NoError(t, repo.Create(ctx, item))
	err := repo.Create(ctx, item)
	assert.True(t, apperror.HasCode(err, apperror.CodeConflict))
}

func TestTable_UpdateOptimisticLock(t *testing.T) {
	ctx := context.Background()
	repo := NewItemRepo(New())
	item := newItem("Flour", "dry", "main", 5, 10)
	require.NoError(t, repo.Create(ctx, item))

	stale, _ := repo.GetByID(ctx, item.ID)

	item.Name = "Wheat flour"
	require.NoError(t, repo.Update(ctx, item))
	assert.Equal(t, 2, item.Version)

	stale.Name = "Rye flour"
	err := repo.Update(ctx, stale)
	assert.True(t, apperror.IsConcurrentModification(err))

	got, _ := repo.GetByID(ctx, item.ID)
	assert.Equal(t, "Wheat flour", got.Name)
}

func TestTable_DeleteNotFound(t *testing.T) {
	repo := NewItemRepo(New())
	err := repo.Delete(context.Background(), id.New())
	assert.True(t, apperror.IsNotFound(err))
}

func TestTable_ListFilterSortPage(t *testing.T) {
	ctx := context.Background()
	repo := NewItemRepo(New())
	for _, it := range []*inventory.Item{
		newItem("Tomatoes", "produce", "main", 3, 5),
		newItem("Basil", "produce", "main", 1, 2),
		newItem("Olive oil", "dry", "main", 8, 2),
		newItem("Onions", "produce", "airport", 9, 2),
	} {
		require.NoError(t, repo.Create(ctx, it))
	}

	res, err := repo.List(ctx, domain.ListFilter{OrderBy: "-quantity", Limit: 2}.Where(
		filter.Eq("category", "produce"),
	))
	require.NoError(t, err)
	assert.EqualValues(t, 3, res.TotalCount)
	require.Len(t, res.Items, 2)
	assert.Equal(t, "Onions", res.Items[0].Name)
	assert.Equal(t, "Tomatoes", res.Items[1].Name)

	res, err = repo.List(ctx, domain.ListFilter{Search: "OIL"})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Olive oil", res.Items[0].Name)

	_, err = repo.List(ctx, domain.ListFilter{OrderBy: "nope"})
	assert.True(t, apperror.IsValidation(err))
}

func TestTxManager_RollbackUndoesAllWrites(t *testing.T) {
	ctx := context.Background()
	store := New()
	txm := NewTxManager(store)
	items := NewItemRepo(store)
	movements := NewMovementRepo(store)

	existing := newItem("Flour", "dry", "main", 5, 10)
	require.NoError(t, items.Create(ctx, existing))

	boom := errors.New("boom")
	err := txm.RunInTransaction(ctx, func(ctx context.Context) error {
		require.NoError(t, items.Create(ctx, newItem("Sugar", "dry", "main", 1, 1)))
		existing.Quantity = types.NewQuantity(50)
		require.NoError(t, items.Update(ctx, existing))
		require.NoError(t, items.Delete(ctx, existing.ID))
		require.NoError(t, movements.Append(ctx, &stock.Movement{ID: id.New(), ItemID: existing.ID, Direction: stock.DirectionIn, Quantity: types.NewQuantity(1), RecordedAt: time.Now()}))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	all, _ := items.All(ctx, "")
	require.Len(t, all, 1)
	assert.Equal(t, existing.ID, all[0].ID)
	assert.Equal(t, types.NewQuantity(5), all[0].Quantity)
	assert.Equal(t, 1, all[0].Version)

	log, _ := movements.List(ctx, stock.MovementFilter{})
	assert.Empty(t, log)
}

func TestTxManager_RollbackRestoresCallerVersion(t *testing.T) {
	ctx := context.Background()
	store := New()
	txm := NewTxManager(store)
	items := NewItemRepo(store)

	item := newItem("Flour", "dry", "main", 5, 10)
	require.NoError(t, items.Create(ctx, item))

	err := txm.RunInTransaction(ctx, func(ctx context.Context) error {
		item.Quantity = types.NewQuantity(7)
		require.NoError(t, items.Update(ctx, item))
		assert.Equal(t, 2, item.Version)
		return errors.New("audit unavailable")
	})
	require.Error(t, err)
	assert.Equal(t, 1, item.Version)

	require.NoError(t, items.Update(ctx, item))
	stored, err := items.GetByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, types.NewQuantity(7), stored.Quantity)
	assert.Equal(t, 2, stored.Version)
}

func TestTxManager_NestedJoinsOuter(t *testing.T) {
	ctx := context.Background()
	store := New()
	txm := NewTxManager(store)
	items := NewItemRepo(store)

	err := txm.RunInTransaction(ctx, func(ctx context.Context) error {
		return txm.RunInTransaction(ctx, func(ctx context.Context) error {
			return items.Create(ctx, newItem("Salt", "dry", "main", 1, 1))
		})
	})
	require.NoError(t, err)
	all, _ := items.All(ctx, "")
	assert.Len(t, all, 1)
}

func TestMovementRepo_FilterAndOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewMovementRepo(New())
	itemA, itemB := id.New(), id.New()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	for i, itemID := range []id.ID{itemA, itemB, itemA} {
		require.NoError(t, repo.Append(ctx, &stock.Movement{
			ID: id.New(), ItemID: itemID, Direction: stock.DirectionIn,
			Quantity: types.NewQuantity(int64(i + 1)), RecordedAt: base.Add(time.Duration(i) * time.Hour),
		}))
	}

	got, err := repo.List(ctx, stock.MovementFilter{ItemID: &itemA})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, types.NewQuantity(1), got[0].Quantity)
	assert.Equal(t, types.NewQuantity(3), got[1].Quantity)

	to := base.Add(2 * time.Hour)
	got, _ = repo.List(ctx, stock.MovementFilter{To: &to})
	assert.Len(t, got, 2)
}

func TestAuditLog_CompressesLargeChanges(t *testing.T) {
	ctx := context.Background()
	codec, err := audit.NewCodec(64)
	require.NoError(t, err)
	log := NewAuditLog(New(), codec)
	entityID := id.New()

	big := make([]string, 50)
	for i := range big {
		big[i] = "some fairly repetitive change payload"
	}
	require.NoError(t, audit.Record(ctx, log, "inventory_item", entityID, audit.ActionCreate, map[string]any{"notes": big}))
	require.NoError(t, audit.Record(ctx, log, "inventory_item", entityID, audit.ActionUpdate, map[string]any{"name": "x"}))
	require.NoError(t, audit.Record(ctx, log, "supplier", entityID, audit.ActionUpdate, nil))

	assert.Equal(t, audit.CompressionZstd, log.entries[0].algo)
	assert.Equal(t, audit.CompressionNone, log.entries[1].algo)

	hist, err := log.History(ctx, "inventory_item", entityID, 10)
	require.NoError(t, err)
	require.Len(t, hist, 2)
	assert.Equal(t, audit.ActionUpdate, hist[0].Action)
	assert.Contains(t, string(hist[1].Changes), "repetitive")
}
