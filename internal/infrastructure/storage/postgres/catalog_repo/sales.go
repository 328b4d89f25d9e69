package catalog_repo

import (
	"backoffice/internal/domain/sales"
	"backoffice/internal/infrastructure/storage/postgres"
)

const (
	customerTable = "customers"
	staffTable    = "staff_members"
	orderTable    = "orders"
	expenseTable  = "expenses"
)

// NewCustomerRepo creates a customer repository.
func NewCustomerRepo(txm *postgres.TxManager) *BaseCatalogRepo[*sales.Customer] {
	return NewBaseCatalogRepo(txm, customerTable,
		[]string{"name", "email", "phone"},
		func() *sales.Customer { return &sales.Customer{} },
	)
}

// NewStaffRepo creates a staff repository.
func NewStaffRepo(txm *postgres.TxManager) *BaseCatalogRepo[*sales.StaffMember] {
	return NewBaseCatalogRepo(txm, staffTable,
		[]string{"name", "role"},
		func() *sales.StaffMember { return &sales.StaffMember{} },
	)
}

// NewOrderRepo creates an order repository. Lines are stored as JSONB; orders
// have no searchable text.
func NewOrderRepo(txm *postgres.TxManager) *BaseCatalogRepo[*sales.Order] {
	return NewBaseCatalogRepo(txm, orderTable,
		nil,
		func() *sales.Order { return &sales.Order{} },
	)
}

// NewExpenseRepo creates an expense repository.
func NewExpenseRepo(txm *postgres.TxManager) *BaseCatalogRepo[*sales.Expense] {
	return NewBaseCatalogRepo(txm, expenseTable,
		[]string{"category", "description"},
		func() *sales.Expense { return &sales.Expense{} },
	)
}
