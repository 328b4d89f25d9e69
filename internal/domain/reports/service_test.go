package reports

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"backoffice/internal/core/apperror"
	"backoffice/internal/core/entity"
	"backoffice/internal/core/id"
	"backoffice/internal/core/types"
	"backoffice/internal/domain/inventory"
	"backoffice/internal/domain/registers/stock"
	"backoffice/internal/domain/sales"
	"backoffice/pkg/aggregate"
)

type stubSales struct {
	orders    []*sales.Order
	expenses  []*sales.Expense
	customers []*sales.Customer
	staff     []*sales.StaffMember
	err       error
}

func (s *stubSales) OrdersIn(_ context.Context, r aggregate.DateRange, branch string) ([]*sales.Order, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := aggregate.FilterByDate(s.orders, r, func(o *sales.Order) string { return o.Date })
	return aggregate.Filter(out, func(o *sales.Order) bool { return branch == "" || o.Branch == branch }), nil
}

func (s *stubSales) ExpensesIn(_ context.Context, r aggregate.DateRange, branch string) ([]*sales.Expense, error) {
	out := aggregate.FilterByDate(s.expenses, r, func(e *sales.Expense) string { return e.Date })
	return aggregate.Filter(out, func(e *sales.Expense) bool { return branch == "" || e.Branch == branch }), nil
}

func (s *stubSales) AllCustomers(context.Context) ([]*sales.Customer, error) { return s.customers, nil }
func (s *stubSales) AllStaff(context.Context) ([]*sales.StaffMember, error)  { return s.staff, nil }

type stubStock struct {
	alerts    inventory.Alerts
	valuation stock.Valuation
}

func (s stubStock) Alerts(context.Context, string) (inventory.Alerts, error) { return s.alerts, nil }
func (s stubStock) Valuation(context.Context, string) (stock.Valuation, error) {
	return s.valuation, nil
}

type mapCache struct {
	mu   sync.Mutex
	data map[string]Dashboard
	gets int
}

func (c *mapCache) Get(_ context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	d, ok := c.data[key]
	if ok {
		*dst.(*Dashboard) = d
	}
	return ok, nil
}

func (c *mapCache) Set(_ context.Context, key string, value any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = *value.(*Dashboard)
	return nil
}

func order(date, branch string, customer, staff *id.ID, lines ...sales.OrderLine) *sales.Order {
	o := &sales.Order{BaseEntity: entity.NewBaseEntity(), Date: date, Branch: branch, CustomerID: customer, StaffID: staff, Lines: lines}
	o.Recalculate()
	return o
}

func line(name, category string, qty int, price string) sales.OrderLine {
	return sales.OrderLine{MenuItemID: id.New(), Name: name, Category: category, Quantity: qty, UnitPrice: types.MustMoney(price)}
}

func fixture() (*stubSales, *sales.Customer, *sales.Customer, *sales.StaffMember) {
	alice := &sales.Customer{BaseEntity: entity.NewBaseEntity(), Name: "Alice", Segment: sales.SegmentVIP}
	bob := &sales.Customer{BaseEntity: entity.NewBaseEntity(), Name: "Bob", Segment: sales.SegmentRegular}
	waiter := &sales.StaffMember{BaseEntity: entity.NewBaseEntity(), Name: "Sam", Role: "waiter", Branch: "main"}

	burger := line("Burger", "mains", 2, "12.50")
	src := &stubSales{
		customers: []*sales.Customer{alice, bob},
		staff:     []*sales.StaffMember{waiter},
		orders: []*sales.Order{
			order("2026-03-01", "main", &alice.ID, &waiter.ID, burger, line("Cola", "drinks", 2, "3.00")),
			order("2026-03-02", "main", &bob.ID, nil, line("Salad", "starters", 1, "8.00")),
			order("2026-03-05", "main", &alice.ID, &waiter.ID, burger),
			order("2026-04-01", "main", &bob.ID, nil, line("Steak", "mains", 1, "30.00")),
		},
		expenses: []*sales.Expense{
			{BaseEntity: entity.NewBaseEntity(), Date: "2026-03-03", Category: "rent", Amount: types.MustMoney("1000"), Branch: "main"},
			{BaseEntity: entity.NewBaseEntity(), Date: "2026-03-04", Category: "utilities", Amount: types.MustMoney("150.40"), Branch: "main"},
			{BaseEntity: entity.NewBaseEntity(), Date: "2026-03-20", Category: "utilities", Amount: types.MustMoney("49.60"), Branch: "main"},
		},
	}
	return src, alice, bob, waiter
}

var march = aggregate.DateRange{From: "2026-03-01", To: "2026-03-31"}

func TestSalesByCategory(t *testing.T) {
	src, _, _, _ := fixture()
	svc := NewService(src, stubStock{}, stubStock{}, nil)

	rep, err := svc.SalesByCategory(context.Background(), Filter{Range: march})
	require.NoError(t, err)

	require.Len(t, rep.Rows, 3)
	assert.Equal(t, "drinks", rep.Rows[0].Key)
	assert.Equal(t, "mains", rep.Rows[1].Key)
	assert.Equal(t, 2, rep.Rows[1].Count)
	assert.True(t, types.MustMoney("50").Equal(rep.Rows[1].Sum))
	assert.True(t, types.MustMoney("64").Equal(rep.Total))
	assert.Equal(t, 4, rep.Count)
}

func TestTopMenuItems_Limit(t *testing.T) {
	src, _, _, _ := fixture()
	svc := NewService(src, stubStock{}, stubStock{}, nil)

	top, err := svc.TopMenuItems(context.Background(), Filter{Range: march, Limit: 1})
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "Burger", top[0].Name)
	assert.Equal(t, 4, top[0].Quantity)
	assert.True(t, types.MustMoney("50").Equal(top[0].Revenue))
}

func TestCustomerSegments(t *testing.T) {
	src, _, _, _ := fixture()
	svc := NewService(src, stubStock{}, stubStock{}, nil)

	segs, err := svc.CustomerSegments(context.Background(), Filter{Range: march})
	require.NoError(t, err)
	require.Len(t, segs, len(sales.Segments()))

	bySeg := map[sales.Segment]SegmentSummary{}
	for _, s := range segs {
		bySeg[s.Segment] = s
	}
	assert.Equal(t, 2, bySeg[sales.SegmentVIP].Orders)
	assert.True(t, types.MustMoney("56").Equal(bySeg[sales.SegmentVIP].Spend))
	assert.True(t, types.MustMoney("28").Equal(bySeg[sales.SegmentVIP].AvgOrder))
	assert.Equal(t, 0, bySeg[sales.SegmentNew].Customers)
}

func TestTopCustomers(t *testing.T) {
	src, alice, bob, _ := fixture()
	svc := NewService(src, stubStock{}, stubStock{}, nil)

	top, err := svc.TopCustomers(context.Background(), Filter{Range: march})
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, alice.ID, top[0].CustomerID)
	assert.Equal(t, bob.ID, top[1].CustomerID)
}

func TestExpensesByCategory(t *testing.T) {
	src, _, _, _ := fixture()
	svc := NewService(src, stubStock{}, stubStock{}, nil)

	rep, err := svc.ExpensesByCategory(context.Background(), Filter{Range: march})
	require.NoError(t, err)
	require.Len(t, rep.Rows, 2)
	assert.Equal(t, "utilities", rep.Rows[1].Key)
	assert.True(t, types.MustMoney("200").Equal(rep.Rows[1].Sum))
	assert.True(t, types.MustMoney("100").Equal(rep.Rows[1].Avg))
	assert.True(t, types.MustMoney("1200").Equal(rep.Total))
}

func TestStaffPerformance(t *testing.T) {
	src, _, _, waiter := fixture()
	svc := NewService(src, stubStock{}, stubStock{}, nil)

	perf, err := svc.StaffPerformance(context.Background(), Filter{Range: march})
	require.NoError(t, err)
	require.Len(t, perf, 1)
	assert.Equal(t, waiter.ID, perf[0].StaffID)
	assert.Equal(t, 2, perf[0].Orders)
	assert.True(t, types.MustMoney("28").Equal(perf[0].AvgTicket))
}

func TestReports_InvalidRange(t *testing.T) {
	src, _, _, _ := fixture()
	svc := NewService(src, stubStock{}, stubStock{}, nil)

	_, err := svc.SalesByCategory(context.Background(), Filter{Range: aggregate.DateRange{From: "2026-04-01", To: "2026-03-01"}})
	assert.True(t, apperror.IsValidation(err))
}

func TestDashboard_CachesResult(t *testing.T) {
	src, _, _, _ := fixture()
	st := stubStock{
		alerts:    inventory.Alerts{LowStock: []*inventory.Item{{}}, OutOfStock: []*inventory.Item{{}, {}}},
		valuation: stock.Valuation{Total: types.MustMoney("420")},
	}
	cache := &mapCache{data: map[string]Dashboard{}}
	svc := NewService(src, st, st, cache)

	d, err := svc.Dashboard(context.Background(), Filter{Range: march})
	require.NoError(t, err)
	assert.True(t, types.MustMoney("64").Equal(d.Revenue))
	assert.True(t, types.MustMoney("1200").Equal(d.Expenses))
	assert.True(t, types.MustMoney("-1136").Equal(d.Net))
	assert.Equal(t, 3, d.Orders)
	assert.Equal(t, 1, d.LowStockItems)
	assert.Equal(t, 2, d.OutOfStockItems)
	assert.True(t, types.MustMoney("420").Equal(d.StockValue))

	// second call is served from cache even if the source now fails
	src.err = errors.New("db down")
	again, err := svc.Dashboard(context.Background(), Filter{Range: march})
	require.NoError(t, err)
	assert.Equal(t, d.Orders, again.Orders)
	assert.Equal(t, 2, cache.gets)
}

func TestDashboard_SourceError(t *testing.T) {
	src, _, _, _ := fixture()
	src.err = errors.New("db down")
	svc := NewService(src, stubStock{}, stubStock{}, nil)

	_, err := svc.Dashboard(context.Background(), Filter{Range: march})
	assert.Error(t, err)
}
