package sales

import (
	"context"

	"backoffice/internal/core/apperror"
	"backoffice/internal/core/tx"
	"backoffice/internal/domain"
	"backoffice/internal/domain/filter"
	"backoffice/pkg/aggregate"
)

// Repositories groups the stores used by the sales service.
type Repositories struct {
	Customers domain.CatalogRepository[*Customer]
	Staff     domain.CatalogRepository[*StaffMember]
	Orders    domain.CatalogRepository[*Order]
	Expenses  domain.CatalogRepository[*Expense]
}

// Service maintains sales records and loads them for reports.
type Service struct {
	Customers *domain.CatalogService[*Customer]
	Staff     *domain.CatalogService[*StaffMember]
	Orders    *domain.CatalogService[*Order]
	Expenses  *domain.CatalogService[*Expense]
}

// NewService creates the sales service.
func NewService(repos Repositories, txManager tx.Manager) *Service {
	s := &Service{
		Customers: domain.NewCatalogService(domain.CatalogServiceConfig[*Customer]{
			Repo: repos.Customers, TxManager: txManager, EntityName: "customer",
		}),
		Staff: domain.NewCatalogService(domain.CatalogServiceConfig[*StaffMember]{
			Repo: repos.Staff, TxManager: txManager, EntityName: "staff_member",
		}),
		Orders: domain.NewCatalogService(domain.CatalogServiceConfig[*Order]{
			Repo: repos.Orders, TxManager: txManager, EntityName: "order",
		}),
		Expenses: domain.NewCatalogService(domain.CatalogServiceConfig[*Expense]{
			Repo: repos.Expenses, TxManager: txManager, EntityName: "expense",
		}),
	}
	s.Orders.Hooks().OnBeforeCreate(func(ctx context.Context, o *Order) error {
		o.Recalculate()
		return nil
	})
	return s
}

func dateFilter(column string, r aggregate.DateRange, branch string) (domain.ListFilter, error) {
	if err := r.Validate(); err != nil {
		return domain.ListFilter{}, apperror.NewValidation(err.Error())
	}
	lf := domain.ListFilter{OrderBy: column}
	if r.From != "" {
		lf = lf.Where(filter.Item{Field: column, Operator: filter.GreaterOrEqual, Value: r.From})
	}
	if r.To != "" {
		lf = lf.Where(filter.Item{Field: column, Operator: filter.LessOrEqual, Value: r.To})
	}
	if branch != "" {
		lf = lf.Where(filter.Eq("branch", branch))
	}
	return lf, nil
}

// OrdersIn returns every order dated within r (inclusive), optionally for one branch.
func (s *Service) OrdersIn(ctx context.Context, r aggregate.DateRange, branch string) ([]*Order, error) {
	lf, err := dateFilter("order_date", r, branch)
	if err != nil {
		return nil, err
	}
	res, err := s.Orders.List(ctx, lf)
	if err != nil {
		return nil, err
	}
	return res.Items, nil
}

// ExpensesIn returns every expense dated within r (inclusive), optionally for one branch.
func (s *Service) ExpensesIn(ctx context.Context, r aggregate.DateRange, branch string) ([]*Expense, error) {
	lf, err := dateFilter("expense_date", r, branch)
	if err != nil {
		return nil, err
	}
	res, err := s.Expenses.List(ctx, lf)
	if err != nil {
		return nil, err
	}
	return res.Items, nil
}

// AllCustomers returns every customer.
func (s *Service) AllCustomers(ctx context.Context) ([]*Customer, error) {
	res, err := s.Customers.List(ctx, domain.ListFilter{})
	if err != nil {
		return nil, err
	}
	return res.Items, nil
}

// AllStaff returns every staff member.
func (s *Service) AllStaff(ctx context.Context) ([]*StaffMember, error) {
	res, err := s.Staff.List(ctx, domain.ListFilter{})
	if err != nil {
		return nil, err
	}
	return res.Items, nil
}
