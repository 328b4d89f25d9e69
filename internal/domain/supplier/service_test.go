package supplier_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/internal/core/apperror"
	"backoffice/internal/core/types"
	"backoffice/internal/domain"
	"backoffice/internal/domain/audit"
	"backoffice/internal/domain/inventory"
	"backoffice/internal/domain/registers/stock"
	"backoffice/internal/domain/supplier"
	"backoffice/internal/infrastructure/storage/memory"
)

func TestSupplier_Validate(t *testing.T) {
	ctx := context.Background()
	bad := 6
	cases := map[string]*supplier.Supplier{
		"missing name":  {Name: " "},
		"rating range":  {Name: "Farm", Rating: &bad},
		"invalid email": {Name: "Farm", Email: "not-an-email"},
	}
	for name, s := range cases {
		t.Run(name, func(t *testing.T) {
			assert.True(t, apperror.IsValidation(s.Validate(ctx)))
		})
	}

	ok := 4
	assert.NoError(t, (&supplier.Supplier{Name: "Farm", Email: "orders@farm.example", Rating: &ok}).Validate(ctx))
}

func TestSupplier_Contact(t *testing.T) {
	s := supplier.New("Farm")
	s.Phone = "+1 555 0100"
	assert.Equal(t, "+1 555 0100", s.Contact())
	s.Email = "orders@farm.example"
	assert.Equal(t, "orders@farm.example", s.Contact())
}

func TestService_GetWithMetrics(t *testing.T) {
	ctx := context.Background()
	codec, err := audit.NewCodec(0)
	require.NoError(t, err)
	repos := memory.NewRepositories(codec)
	ledger := stock.NewLedger(repos.Items, repos.Movements, repos.TxManager)
	recorder := stock.NewRecorder(repos.Items, repos.Movements, repos.TxManager)
	svc := supplier.NewService(repos.Suppliers, repos.TxManager, ledger)

	farm := supplier.New("Green Farm")
	farm.Categories = []string{"produce"}
	require.NoError(t, svc.Create(ctx, farm))

	it := inventory.NewItem("Tomatoes", "produce", "kg", "main")
	it.SupplierID = &farm.ID
	require.NoError(t, repos.Items.Create(ctx, it))

	cost := types.MustMoney("3.00")
	_, err = recorder.RecordMovement(ctx, stock.RecordRequest{
		ItemID: it.ID, Direction: stock.DirectionIn, Quantity: types.NewQuantity(10),
		UnitCost: &cost, SupplierID: &farm.ID,
	})
	require.NoError(t, err)

	got, err := svc.GetWithMetrics(ctx, farm.ID)
	require.NoError(t, err)
	assert.True(t, types.MustMoney("30").Equal(got.TotalSpend))
	require.NotNil(t, got.LastDelivery)

	res, err := svc.List(ctx, domain.ListFilter{Search: "green"})
	require.NoError(t, err)
	assert.Len(t, res.Items, 1)

	require.NoError(t, svc.Delete(ctx, farm.ID))
	_, err = svc.GetByID(ctx, farm.ID)
	assert.True(t, apperror.IsNotFound(err))
}
