package reports

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"backoffice/internal/core/apperror"
	"backoffice/internal/core/id"
	"backoffice/internal/core/types"
	"backoffice/internal/domain/inventory"
	"backoffice/internal/domain/registers/stock"
	"backoffice/internal/domain/sales"
	"backoffice/pkg/aggregate"
	"backoffice/pkg/logger"
)

// SalesSource loads the records reports aggregate over.
type SalesSource interface {
	OrdersIn(ctx context.Context, r aggregate.DateRange, branch string) ([]*sales.Order, error)
	ExpensesIn(ctx context.Context, r aggregate.DateRange, branch string) ([]*sales.Expense, error)
	AllCustomers(ctx context.Context) ([]*sales.Customer, error)
	AllStaff(ctx context.Context) ([]*sales.StaffMember, error)
}

// AlertSource partitions stock into low and out-of-stock items.
type AlertSource interface {
	Alerts(ctx context.Context, branch string) (inventory.Alerts, error)
}

// Valuer computes the cost of stock on hand.
type Valuer interface {
	Valuation(ctx context.Context, branch string) (stock.Valuation, error)
}

// Cache stores computed dashboards. Get reports whether dst was filled.
type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any) error
}

// Service provides report generation operations.
type Service struct {
	sales  SalesSource
	alerts AlertSource
	valuer Valuer
	cache  Cache
}

// NewService creates a new reports service. cache may be nil.
func NewService(salesSource SalesSource, alerts AlertSource, valuer Valuer, cache Cache) *Service {
	return &Service{sales: salesSource, alerts: alerts, valuer: valuer, cache: cache}
}

func normalize(f *Filter) error {
	if err := f.Range.Validate(); err != nil {
		return apperror.NewValidation(err.Error())
	}
	if f.Limit <= 0 {
		f.Limit = 10
	}
	if f.Limit > 100 {
		f.Limit = 100
	}
	return nil
}

type lineRow struct {
	sales.OrderLine
	order *sales.Order
}

func lines(orders []*sales.Order) []lineRow {
	var rows []lineRow
	for _, o := range orders {
		for _, l := range o.Lines {
			rows = append(rows, lineRow{OrderLine: l, order: o})
		}
	}
	return rows
}

func orderTotal(o *sales.Order) types.Money { return o.Total }

// SalesByCategory groups order line revenue by menu category.
func (s *Service) SalesByCategory(ctx context.Context, f Filter) (*GroupReport, error) {
	if err := normalize(&f); err != nil {
		return nil, err
	}
	orders, err := s.sales.OrdersIn(ctx, f.Range, f.Branch)
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}

	rows := lines(orders)
	return &GroupReport{
		Range:  f.Range,
		Branch: f.Branch,
		Rows: aggregate.GroupBy(rows,
			func(r lineRow) string { return r.Category },
			func(r lineRow) types.Money { return r.Amount() },
		),
		Count: len(rows),
		Total: aggregate.Sum(rows, func(r lineRow) types.Money { return r.Amount() }),
	}, nil
}

// TopMenuItems ranks menu items by revenue.
func (s *Service) TopMenuItems(ctx context.Context, f Filter) ([]MenuItemSales, error) {
	if err := normalize(&f); err != nil {
		return nil, err
	}
	orders, err := s.sales.OrdersIn(ctx, f.Range, f.Branch)
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}

	index := make(map[string]int)
	var items []MenuItemSales
	for _, r := range lines(orders) {
		key := r.MenuItemID.String()
		if id.IsNil(r.MenuItemID) {
			key = r.Name
		}
		i, ok := index[key]
		if !ok {
			i = len(items)
			index[key] = i
			items = append(items, MenuItemSales{MenuItemID: r.MenuItemID, Name: r.Name, Category: r.Category, Revenue: types.Zero()})
		}
		items[i].Quantity += r.Quantity
		items[i].Revenue = items[i].Revenue.Add(r.Amount())
	}

	return aggregate.TopN(items, f.Limit, func(m MenuItemSales) types.Money { return m.Revenue }), nil
}

func (s *Service) customerSpend(ctx context.Context, f Filter) ([]CustomerSpend, error) {
	orders, err := s.sales.OrdersIn(ctx, f.Range, f.Branch)
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}
	customers, err := s.sales.AllCustomers(ctx)
	if err != nil {
		return nil, fmt.Errorf("load customers: %w", err)
	}

	index := make(map[id.ID]int, len(customers))
	spend := make([]CustomerSpend, len(customers))
	for i, c := range customers {
		index[c.ID] = i
		spend[i] = CustomerSpend{CustomerID: c.ID, Name: c.Name, Segment: c.Segment, Spend: types.Zero()}
	}
	for _, o := range orders {
		if o.CustomerID == nil {
			continue
		}
		i, ok := index[*o.CustomerID]
		if !ok {
			continue
		}
		spend[i].Orders++
		spend[i].Spend = spend[i].Spend.Add(o.Total)
	}
	return spend, nil
}

// CustomerSegments summarises customers and their orders per segment.
// Every known segment is listed, even when empty.
func (s *Service) CustomerSegments(ctx context.Context, f Filter) ([]SegmentSummary, error) {
	if err := normalize(&f); err != nil {
		return nil, err
	}
	spend, err := s.customerSpend(ctx, f)
	if err != nil {
		return nil, err
	}

	out := make([]SegmentSummary, 0, len(sales.Segments()))
	for _, seg := range sales.Segments() {
		sum := SegmentSummary{Segment: seg, Spend: types.Zero()}
		for _, c := range spend {
			if c.Segment != seg {
				continue
			}
			sum.Customers++
			sum.Orders += c.Orders
			sum.Spend = sum.Spend.Add(c.Spend)
		}
		sum.AvgOrder = aggregate.Average(sum.Spend, sum.Orders)
		out = append(out, sum)
	}
	return out, nil
}

// TopCustomers ranks customers by spend in the range.
func (s *Service) TopCustomers(ctx context.Context, f Filter) ([]CustomerSpend, error) {
	if err := normalize(&f); err != nil {
		return nil, err
	}
	spend, err := s.customerSpend(ctx, f)
	if err != nil {
		return nil, err
	}
	active := aggregate.Filter(spend, func(c CustomerSpend) bool { return c.Orders > 0 })
	return aggregate.TopN(active, f.Limit, func(c CustomerSpend) types.Money { return c.Spend }), nil
}

// ExpensesByCategory groups expenses by category.
func (s *Service) ExpensesByCategory(ctx context.Context, f Filter) (*GroupReport, error) {
	if err := normalize(&f); err != nil {
		return nil, err
	}
	expenses, err := s.sales.ExpensesIn(ctx, f.Range, f.Branch)
	if err != nil {
		return nil, fmt.Errorf("load expenses: %w", err)
	}

	amount := func(e *sales.Expense) types.Money { return e.Amount }
	return &GroupReport{
		Range:  f.Range,
		Branch: f.Branch,
		Rows:   aggregate.GroupBy(expenses, func(e *sales.Expense) string { return e.Category }, amount),
		Count:  len(expenses),
		Total:  aggregate.Sum(expenses, amount),
	}, nil
}

// StaffPerformance lists staff by revenue served, highest first.
func (s *Service) StaffPerformance(ctx context.Context, f Filter) ([]StaffPerformance, error) {
	if err := normalize(&f); err != nil {
		return nil, err
	}
	orders, err := s.sales.OrdersIn(ctx, f.Range, f.Branch)
	if err != nil {
		return nil, fmt.Errorf("load orders: %w", err)
	}
	staff, err := s.sales.AllStaff(ctx)
	if err != nil {
		return nil, fmt.Errorf("load staff: %w", err)
	}

	perf := make([]StaffPerformance, 0, len(staff))
	index := make(map[id.ID]int, len(staff))
	for _, m := range staff {
		if f.Branch != "" && m.Branch != f.Branch {
			continue
		}
		index[m.ID] = len(perf)
		perf = append(perf, StaffPerformance{StaffID: m.ID, Name: m.Name, Role: m.Role, Revenue: types.Zero()})
	}
	for _, o := range orders {
		if o.StaffID == nil {
			continue
		}
		if i, ok := index[*o.StaffID]; ok {
			perf[i].Orders++
			perf[i].Revenue = perf[i].Revenue.Add(o.Total)
		}
	}
	for i := range perf {
		perf[i].AvgTicket = aggregate.Average(perf[i].Revenue, perf[i].Orders)
	}
	return aggregate.TopN(perf, 0, func(p StaffPerformance) types.Money { return p.Revenue }), nil
}

// Dashboard computes the summary, loading its sections concurrently.
// Results are cached when a cache is configured.
func (s *Service) Dashboard(ctx context.Context, f Filter) (*Dashboard, error) {
	if err := normalize(&f); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("dashboard:%s:%s:%s", f.Range.From, f.Range.To, f.Branch)
	if s.cache != nil {
		var cached Dashboard
		hit, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			logger.Warn(ctx, "dashboard cache read failed", "error", err)
		} else if hit {
			return &cached, nil
		}
	}

	var (
		orders    []*sales.Order
		expenses  []*sales.Expense
		alerts    inventory.Alerts
		valuation stock.Valuation
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		orders, err = s.sales.OrdersIn(gctx, f.Range, f.Branch)
		return err
	})
	g.Go(func() (err error) {
		expenses, err = s.sales.ExpensesIn(gctx, f.Range, f.Branch)
		return err
	})
	g.Go(func() (err error) {
		alerts, err = s.alerts.Alerts(gctx, f.Branch)
		return err
	})
	g.Go(func() (err error) {
		valuation, err = s.valuer.Valuation(gctx, f.Branch)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("build dashboard: %w", err)
	}

	d := &Dashboard{
		Range:           f.Range,
		Branch:          f.Branch,
		Revenue:         aggregate.Sum(orders, orderTotal),
		Expenses:        aggregate.Sum(expenses, func(e *sales.Expense) types.Money { return e.Amount }),
		Orders:          len(orders),
		LowStockItems:   len(alerts.LowStock),
		OutOfStockItems: len(alerts.OutOfStock),
		StockValue:      valuation.Total,
	}
	d.Net = d.Revenue.Sub(d.Expenses)
	d.AverageOrderValue = aggregate.Average(d.Revenue, d.Orders)

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, d); err != nil {
			logger.Warn(ctx, "dashboard cache write failed", "error", err)
		}
	}
	return d, nil
}

// DefaultRange is the range used when a request names no dates: the last 30 days.
func DefaultRange(now time.Time) aggregate.DateRange {
	return aggregate.LastDays(now, 30)
}
