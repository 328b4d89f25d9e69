package alerts_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/internal/core/apperror"
	"backoffice/internal/core/id"
	"backoffice/internal/core/types"
	"backoffice/internal/domain/alerts"
	"backoffice/internal/domain/audit"
	"backoffice/internal/domain/inventory"
	"backoffice/internal/domain/supplier"
	"backoffice/internal/infrastructure/storage/memory"
)

type sent struct {
	supplier string
	message  string
}

type fakeNotifier struct {
	mu      sync.Mutex
	sent    []sent
	failFor map[string]bool
}

func (f *fakeNotifier) SendSupplierNotification(_ context.Context, s *supplier.Supplier, message string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failFor[s.Name] {
		return errors.New("mailbox full")
	}
	f.sent = append(f.sent, sent{supplier: s.Name, message: message})
	return nil
}

type fixture struct {
	repos    *memory.Repositories
	notifier *fakeNotifier
	svc      *alerts.Service
	farm     *supplier.Supplier
	mill     *supplier.Supplier
}

func setup(t *testing.T) *fixture {
	t.Helper()
	codec, err := audit.NewCodec(0)
	require.NoError(t, err)
	repos := memory.NewRepositories(codec)
	ctx := context.Background()

	farm := supplier.New("Green Farm")
	farm.ContactPerson = "Dana"
	mill := supplier.New("Stone Mill")
	require.NoError(t, repos.Suppliers.Create(ctx, farm))
	require.NoError(t, repos.Suppliers.Create(ctx, mill))

	n := &fakeNotifier{failFor: map[string]bool{}}
	return &fixture{
		repos:    repos,
		notifier: n,
		svc:      alerts.NewService(repos.Items, repos.Suppliers, n),
		farm:     farm,
		mill:     mill,
	}
}

func (f *fixture) item(t *testing.T, name, branch string, qty, reorder int64, sup *supplier.Supplier) *inventory.Item {
	t.Helper()
	it := inventory.NewItem(name, "produce", "kg", branch)
	it.Quantity = types.NewQuantity(qty)
	it.ReorderLevel = types.NewQuantity(reorder)
	if sup != nil {
		it.SupplierID = &sup.ID
	}
	require.NoError(t, f.repos.Items.Create(context.Background(), it))
	return it
}

func TestSuggestedOrder(t *testing.T) {
	it := inventory.NewItem("Tomatoes", "produce", "kg", "main")
	it.ReorderLevel = types.NewQuantity(10)

	it.Quantity = types.NewQuantity(4)
	assert.Equal(t, types.NewQuantity(16), alerts.SuggestedOrder(it))

	it.Quantity = types.NewQuantity(0)
	assert.Equal(t, types.NewQuantity(20), alerts.SuggestedOrder(it))

	it.Quantity = types.NewQuantity(15)
	assert.Equal(t, types.NewQuantity(10), alerts.SuggestedOrder(it))
}

func TestComposeMessage(t *testing.T) {
	s := supplier.New("Green Farm")
	s.ContactPerson = "Dana"
	it := inventory.NewItem("Tomatoes", "produce", "kg", "main")
	it.Quantity = types.NewQuantity(4)
	it.ReorderLevel = types.NewQuantity(10)

	msg := alerts.ComposeMessage(s, it)
	assert.Contains(t, msg, "Hello Dana")
	assert.Contains(t, msg, "running low on Tomatoes")
	assert.Contains(t, msg, "main branch")
	assert.Contains(t, msg, "delivery of 16 kg")

	it.Quantity = 0
	assert.Contains(t, alerts.ComposeMessage(s, it), "run out of Tomatoes")
}

func TestLowStock_Partition(t *testing.T) {
	f := setup(t)
	f.item(t, "Tomatoes", "main", 5, 10, f.farm)
	f.item(t, "Basil", "main", 0, 2, f.farm)
	f.item(t, "Rice", "main", 40, 5, f.mill)

	a, err := f.svc.LowStock(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, a.LowStock, 1)
	require.Len(t, a.OutOfStock, 1)
	assert.Equal(t, "Tomatoes", a.LowStock[0].Name)
	assert.Equal(t, "Basil", a.OutOfStock[0].Name)
}

func TestNotifySupplier(t *testing.T) {
	f := setup(t)
	ctx := context.Background()
	it := f.item(t, "Tomatoes", "main", 5, 10, f.farm)

	n, err := f.svc.NotifySupplier(ctx, it.ID, "")
	require.NoError(t, err)
	assert.True(t, n.Success)
	assert.Equal(t, f.farm.ID, n.SupplierID)
	require.Len(t, f.notifier.sent, 1)
	assert.Contains(t, f.notifier.sent[0].message, "Tomatoes")

	n, err = f.svc.NotifySupplier(ctx, it.ID, "custom text")
	require.NoError(t, err)
	assert.Equal(t, "custom text", n.Message)
}

func TestNotifySupplier_Errors(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	orphan := f.item(t, "Salt", "main", 0, 1, nil)
	_, err := f.svc.NotifySupplier(ctx, orphan.ID, "")
	assert.True(t, apperror.HasCode(err, apperror.CodeBusinessRule))

	ghost := supplier.New("Ghost")
	dangling := f.item(t, "Pepper", "main", 0, 1, ghost)
	_, err = f.svc.NotifySupplier(ctx, dangling.ID, "")
	assert.True(t, apperror.IsNotFound(err))

	_, err = f.svc.NotifySupplier(ctx, id.New(), "")
	assert.True(t, apperror.IsNotFound(err))

	f.notifier.failFor["Stone Mill"] = true
	flour := f.item(t, "Flour", "main", 1, 5, f.mill)
	n, err := f.svc.NotifySupplier(ctx, flour.ID, "")
	assert.True(t, apperror.HasCode(err, apperror.CodeNotificationFailed))
	require.NotNil(t, n)
	assert.False(t, n.Success)
	assert.Equal(t, "mailbox full", n.Error)
}

func TestScanAndNotify(t *testing.T) {
	f := setup(t)
	f.item(t, "Tomatoes", "main", 5, 10, f.farm)
	f.item(t, "Basil", "main", 0, 2, f.farm)
	flour := f.item(t, "Flour", "main", 1, 5, f.mill)
	orphan := f.item(t, "Salt", "main", 0, 1, nil)
	f.item(t, "Rice", "main", 40, 5, f.mill)
	f.item(t, "Onions", "airport", 0, 5, f.farm)
	f.notifier.failFor["Stone Mill"] = true

	report, err := f.svc.ScanAndNotify(context.Background(), "main")
	require.NoError(t, err)
	assert.Equal(t, 2, report.LowStock)
	assert.Equal(t, 2, report.OutOfStock)
	assert.Equal(t, []id.ID{orphan.ID}, report.Skipped)
	require.Len(t, report.Notifications, 3)
	assert.Equal(t, 1, report.Failed)

	// out-of-stock items are notified first
	assert.Equal(t, "Basil", report.Notifications[0].ItemName)
	for _, n := range report.Notifications {
		if n.ItemID == flour.ID {
			assert.False(t, n.Success)
		} else {
			assert.True(t, n.Success)
		}
	}
	assert.Len(t, f.notifier.sent, 2)
}
