package sales_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/internal/core/apperror"
	"backoffice/internal/core/entity"
	"backoffice/internal/core/id"
	"backoffice/internal/core/types"
	"backoffice/internal/domain/audit"
	"backoffice/internal/domain/sales"
	"backoffice/internal/infrastructure/storage/memory"
	"backoffice/pkg/aggregate"
)

func newService(t *testing.T) *sales.Service {
	t.Helper()
	codec, err := audit.NewCodec(0)
	require.NoError(t, err)
	repos := memory.NewRepositories(codec)
	return sales.NewService(sales.Repositories{
		Customers: repos.Customers,
		Staff:     repos.Staff,
		Orders:    repos.Orders,
		Expenses:  repos.Expenses,
	}, repos.TxManager)
}

func newOrder(date, branch string, lines ...sales.OrderLine) *sales.Order {
	return &sales.Order{BaseEntity: entity.NewBaseEntity(), Date: date, Branch: branch, Lines: lines}
}

func line(qty int, price string) sales.OrderLine {
	return sales.OrderLine{MenuItemID: id.New(), Name: "Burger", Category: "mains", Quantity: qty, UnitPrice: types.MustMoney(price)}
}

func TestOrders_CreateRecalculatesTotal(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	o := newOrder("2026-03-01", "main", line(2, "12.50"), line(1, "3.25"))
	o.Total = types.MustMoney("999")

	require.NoError(t, svc.Orders.Create(ctx, o))
	got, err := svc.Orders.GetByID(ctx, o.ID)
	require.NoError(t, err)
	assert.True(t, types.MustMoney("28.25").Equal(got.Total))
}

func TestOrders_Validate(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	cases := map[string]*sales.Order{
		"no lines":   newOrder("2026-03-01", "main"),
		"bad date":   newOrder("03/01/2026", "main", line(1, "1")),
		"zero qty":   newOrder("2026-03-01", "main", line(0, "1")),
		"zero price": newOrder("2026-03-01", "main", line(1, "0")),
	}
	for name, o := range cases {
		t.Run(name, func(t *testing.T) {
			assert.True(t, apperror.IsValidation(svc.Orders.Create(ctx, o)))
		})
	}
}

func TestOrdersIn_RangeAndBranch(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()
	for _, o := range []*sales.Order{
		newOrder("2026-02-28", "main", line(1, "5")),
		newOrder("2026-03-01", "main", line(1, "5")),
		newOrder("2026-03-31", "main", line(1, "5")),
		newOrder("2026-03-15", "airport", line(1, "5")),
		newOrder("2026-04-01", "main", line(1, "5")),
	} {
		require.NoError(t, svc.Orders.Create(ctx, o))
	}

	march := aggregate.DateRange{From: "2026-03-01", To: "2026-03-31"}
	got, err := svc.OrdersIn(ctx, march, "main")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "2026-03-01", got[0].Date)
	assert.Equal(t, "2026-03-31", got[1].Date)

	got, err = svc.OrdersIn(ctx, march, "")
	require.NoError(t, err)
	assert.Len(t, got, 3)

	_, err = svc.OrdersIn(ctx, aggregate.DateRange{From: "2026-04-01", To: "2026-03-01"}, "")
	assert.True(t, apperror.IsValidation(err))
}

func TestCustomer_SegmentValidation(t *testing.T) {
	ctx := context.Background()
	c := &sales.Customer{BaseEntity: entity.NewBaseEntity(), Name: "Alice", Segment: "platinum", JoinedOn: "2025-01-01"}
	assert.True(t, apperror.IsValidation(c.Validate(ctx)))
	c.Segment = sales.SegmentVIP
	assert.NoError(t, c.Validate(ctx))
}
