package memory

import (
	"backoffice/internal/domain/audit"
	"backoffice/internal/domain/menu"
	"backoffice/internal/domain/promotions"
	"backoffice/internal/domain/sales"
	"backoffice/internal/domain/supplier"
)

// Repositories is every table of one store.
type Repositories struct {
	TxManager  *TxManager
	Items      *ItemRepo
	Movements  *MovementRepo
	Audit      *AuditLog
	Suppliers  *Table[*supplier.Supplier]
	Customers  *Table[*sales.Customer]
	Staff      *Table[*sales.StaffMember]
	Orders     *Table[*sales.Order]
	Expenses   *Table[*sales.Expense]
	Promotions *Table[*promotions.Promotion]
	Menu       *Table[*menu.MenuItem]
}

// NewRepositories creates a store with all tables.
func NewRepositories(codec *audit.Codec) *Repositories {
	s := New()
	return &Repositories{
		TxManager:  NewTxManager(s),
		Items:      NewItemRepo(s),
		Movements:  NewMovementRepo(s),
		Audit:      NewAuditLog(s, codec),
		Suppliers:  NewTable[*supplier.Supplier](s, "supplier"),
		Customers:  NewTable[*sales.Customer](s, "customer"),
		Staff:      NewTable[*sales.StaffMember](s, "staff_member"),
		Orders:     NewTable[*sales.Order](s, "order"),
		Expenses:   NewTable[*sales.Expense](s, "expense"),
		Promotions: NewTable[*promotions.Promotion](s, "promotion"),
		Menu:       NewTable[*menu.MenuItem](s, "menu_item"),
	}
}
