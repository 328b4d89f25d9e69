package stock_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/internal/core/apperror"
	"backoffice/internal/core/id"
	"backoffice/internal/core/types"
	"backoffice/internal/domain/audit"
	"backoffice/internal/domain/inventory"
	"backoffice/internal/domain/registers/stock"
	"backoffice/internal/infrastructure/storage/memory"
)

type harness struct {
	repos     *memory.Repositories
	recorder  *stock.Recorder
	ledger    *stock.Ledger
	inventory *inventory.Service
	observer  *countingObserver
}

type countingObserver struct {
	mu       sync.Mutex
	recorded map[string]int
	rejected map[string]int
}

func (o *countingObserver) MovementRecorded(direction string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.recorded[direction]++
}

func (o *countingObserver) MovementRejected(_ string, code string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.rejected[code]++
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	codec, err := audit.NewCodec(0)
	require.NoError(t, err)
	repos := memory.NewRepositories(codec)
	obs := &countingObserver{recorded: map[string]int{}, rejected: map[string]int{}}
	rec := stock.NewRecorder(repos.Items, repos.Movements, repos.TxManager).WithObserver(obs)
	return &harness{
		repos:     repos,
		recorder:  rec,
		ledger:    stock.NewLedger(repos.Items, repos.Movements, repos.TxManager),
		inventory: inventory.NewService(repos.Items, repos.TxManager, rec, repos.Audit),
		observer:  obs,
	}
}

func (h *harness) item(t *testing.T, name string, qty, reorder int64) *inventory.Item {
	t.Helper()
	it := inventory.NewItem(name, "produce", "kg", "main")
	it.Quantity = types.NewQuantity(qty)
	it.ReorderLevel = types.NewQuantity(reorder)
	it.CostPerUnit = types.MustMoney("2.50")
	require.NoError(t, h.inventory.Create(context.Background(), it))
	return it
}

func TestRecordMovement_StockInRestoresGoodStatus(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	it := h.item(t, "Tomatoes", 5, 10)
	assert.Equal(t, inventory.StatusLow, it.Status())

	res, err := h.recorder.RecordMovement(ctx, stock.RecordRequest{
		ItemID:    it.ID,
		Direction: stock.DirectionIn,
		Quantity:  types.NewQuantity(20),
	})
	require.NoError(t, err)
	assert.Equal(t, types.NewQuantity(25), res.Item.Quantity)
	assert.Equal(t, types.NewQuantity(25), res.Movement.BalanceAfter)
	assert.Equal(t, inventory.StatusGood, res.Status)

	stored, err := h.inventory.Get(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, types.NewQuantity(25), stored.Quantity)
	assert.Equal(t, 2, h.observer.recorded["in"]) // opening balance is journaled too
}

func TestRecordMovement_InsufficientStockLeavesStateUnchanged(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	it := h.item(t, "Basil", 0, 2)
	assert.Equal(t, inventory.StatusOut, it.Status())

	_, err := h.recorder.RecordMovement(ctx, stock.RecordRequest{
		ItemID:    it.ID,
		Direction: stock.DirectionOut,
		Quantity:  types.NewQuantity(1),
		Reason:    "used in service",
	})
	require.Error(t, err)
	assert.True(t, apperror.IsInsufficientStock(err))

	stored, _ := h.inventory.Get(ctx, it.ID)
	assert.True(t, stored.Quantity.IsZero())
	assert.Equal(t, 1, stored.Version)

	log, _ := h.ledger.Movements(ctx, stock.MovementFilter{ItemID: &it.ID})
	assert.Empty(t, log)
	assert.Equal(t, 1, h.observer.rejected[apperror.CodeInsufficientStock])
}

func TestRecordMovement_ValidationRejectsBeforeStore(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	it := h.item(t, "Flour", 10, 2)
	cost := types.MustMoney("1.00")
	supplierID := id.New()

	cases := map[string]stock.RecordRequest{
		"empty reason on out": {ItemID: it.ID, Direction: stock.DirectionOut, Quantity: types.NewQuantity(1), Reason: "  "},
		"zero quantity":       {ItemID: it.ID, Direction: stock.DirectionIn, Quantity: 0},
		"negative quantity":   {ItemID: it.ID, Direction: stock.DirectionIn, Quantity: types.NewQuantity(-3)},
		"unknown direction":   {ItemID: it.ID, Direction: "sideways", Quantity: types.NewQuantity(1)},
		"cost on out":         {ItemID: it.ID, Direction: stock.DirectionOut, Quantity: types.NewQuantity(1), Reason: "waste", UnitCost: &cost},
		"supplier on out":     {ItemID: it.ID, Direction: stock.DirectionOut, Quantity: types.NewQuantity(1), Reason: "waste", SupplierID: &supplierID},
	}
	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := h.recorder.RecordMovement(ctx, req)
			assert.True(t, apperror.IsValidation(err), "got %v", err)
		})
	}

	stored, _ := h.inventory.Get(ctx, it.ID)
	assert.Equal(t, types.NewQuantity(10), stored.Quantity)
}

func TestRecordMovement_RejectsBalanceOverflow(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	it := h.item(t, "Rice", 0, 1)
	huge := types.NewQuantity(900_000_000_000_000)

	res, err := h.recorder.RecordMovement(ctx, stock.RecordRequest{ItemID: it.ID, Direction: stock.DirectionIn, Quantity: huge})
	require.NoError(t, err)
	assert.Equal(t, huge, res.Item.Quantity)

	_, err = h.recorder.RecordMovement(ctx, stock.RecordRequest{ItemID: it.ID, Direction: stock.DirectionIn, Quantity: huge})
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err), "got %v", err)

	stored, err := h.inventory.Get(ctx, it.ID)
	require.NoError(t, err)
	assert.Equal(t, huge, stored.Quantity)
	assert.Equal(t, inventory.StatusGood, stored.Status())

	log, _ := h.ledger.Movements(ctx, stock.MovementFilter{ItemID: &it.ID})
	assert.Len(t, log, 1)
}

type failingAuditLog struct{}

func (failingAuditLog) Append(context.Context, audit.Entry) error { return errors.New("audit unavailable") }

func (failingAuditLog) History(context.Context, string, id.ID, int) ([]audit.Entry, error) {
	return nil, nil
}

func TestRecordAdjustment_CountedOnlyAfterCommit(t *testing.T) {
	h := newHarness(t)
	svc := inventory.NewService(h.repos.Items, h.repos.TxManager, h.recorder, failingAuditLog{})
	ctx := context.Background()

	it := inventory.NewItem("Olive oil", "dry", "l", "main")
	it.Quantity = types.NewQuantity(4)
	require.Error(t, svc.Create(ctx, it))

	assert.Zero(t, h.observer.recorded["in"])
	log, _ := h.ledger.Movements(ctx, stock.MovementFilter{ItemID: &it.ID})
	assert.Empty(t, log)
}

func TestRecordMovement_UnknownItem(t *testing.T) {
	h := newHarness(t)
	_, err := h.recorder.RecordMovement(context.Background(), stock.RecordRequest{
		ItemID: id.New(), Direction: stock.DirectionIn, Quantity: types.NewQuantity(1),
	})
	assert.True(t, apperror.IsNotFound(err))
}

func TestRecordMovement_ConcurrentIssuesNeverOverdraw(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	it := h.item(t, "Eggs", 10, 2)

	var (
		wg sync.WaitGroup
		mu sync.Mutex
		ok int
	)
	for i := 0; i < 25; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := h.recorder.RecordMovement(ctx, stock.RecordRequest{
				ItemID: it.ID, Direction: stock.DirectionOut, Quantity: types.NewQuantity(1), Reason: "breakfast",
			})
			if err == nil {
				mu.Lock()
				ok++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 10, ok)
	stored, _ := h.inventory.Get(ctx, it.ID)
	assert.True(t, stored.Quantity.IsZero())

	drifts, err := h.ledger.Reconcile(ctx)
	require.NoError(t, err)
	assert.Empty(t, drifts)
}

func TestRecordMovement_SupplierReceiptFeedsMetrics(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	it := h.item(t, "Cheese", 0, 2)
	supplierID := id.New()
	cost := types.MustMoney("4.20")

	for i := 0; i < 2; i++ {
		_, err := h.recorder.RecordMovement(ctx, stock.RecordRequest{
			ItemID: it.ID, Direction: stock.DirectionIn, Quantity: types.NewQuantity(5),
			UnitCost: &cost, SupplierID: &supplierID,
		})
		require.NoError(t, err)
	}

	m, err := h.ledger.SupplierMetrics(ctx, supplierID)
	require.NoError(t, err)
	assert.Equal(t, 2, m.Deliveries)
	require.NotNil(t, m.LastDelivery)
	assert.True(t, types.MustMoney("42").Equal(m.TotalSpend))
}

func TestLedger_TurnoverAndValuation(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	it := h.item(t, "Rice", 4, 1)

	_, err := h.recorder.RecordMovement(ctx, stock.RecordRequest{ItemID: it.ID, Direction: stock.DirectionIn, Quantity: types.NewQuantity(6)})
	require.NoError(t, err)
	_, err = h.recorder.RecordMovement(ctx, stock.RecordRequest{ItemID: it.ID, Direction: stock.DirectionOut, Quantity: types.NewQuantity(3), Reason: "risotto"})
	require.NoError(t, err)

	from := time.Now().Add(-time.Hour)
	to := time.Now().Add(time.Hour)
	tr, err := h.ledger.Turnover(ctx, it.ID, from, to)
	require.NoError(t, err)
	assert.True(t, tr.Opening.IsZero())
	assert.Equal(t, types.NewQuantity(10), tr.Receipts)
	assert.Equal(t, types.NewQuantity(3), tr.Issues)
	assert.Equal(t, types.NewQuantity(7), tr.Closing)

	v, err := h.ledger.Valuation(ctx, "main")
	require.NoError(t, err)
	require.Len(t, v.Categories, 1)
	assert.True(t, types.MustMoney("17.50").Equal(v.Total))

	_, err = h.ledger.Turnover(ctx, it.ID, to, from)
	assert.True(t, apperror.IsValidation(err))
}

func TestFold(t *testing.T) {
	ms := []*stock.Movement{
		{Direction: stock.DirectionIn, Quantity: types.NewQuantity(5)},
		{Direction: stock.DirectionOut, Quantity: types.NewQuantity(2)},
		{Direction: stock.DirectionIn, Quantity: types.MustQuantity("0.5")},
	}
	assert.Equal(t, types.MustQuantity("3.5"), stock.Fold(ms))
}
