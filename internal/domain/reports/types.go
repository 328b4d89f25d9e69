// Package reports builds the aggregates behind the dashboard and report screens.
package reports

import (
	"backoffice/internal/core/id"
	"backoffice/internal/core/types"
	"backoffice/internal/domain/sales"
	"backoffice/pkg/aggregate"
)

// Filter selects the records a report covers.
type Filter struct {
	Range  aggregate.DateRange
	Branch string
	// Limit bounds top-N reports (default 10, max 100).
	Limit int
}

// GroupReport is a group-by reduction with its grand total.
type GroupReport struct {
	Range  aggregate.DateRange       `json:"range"`
	Branch string                    `json:"branch,omitempty"`
	Rows   []aggregate.Group[string] `json:"rows"`
	Count  int                       `json:"count"`
	Total  types.Money               `json:"total"`
}

// MenuItemSales is revenue for one menu item.
type MenuItemSales struct {
	MenuItemID id.ID       `json:"menuItemId"`
	Name       string      `json:"name"`
	Category   string      `json:"category"`
	Quantity   int         `json:"quantity"`
	Revenue    types.Money `json:"revenue"`
}

// SegmentSummary is customer activity per segment.
type SegmentSummary struct {
	Segment   sales.Segment `json:"segment"`
	Customers int           `json:"customers"`
	Orders    int           `json:"orders"`
	Spend     types.Money   `json:"spend"`
	AvgOrder  types.Money   `json:"avgOrder"`
}

// CustomerSpend is one customer's activity in the range.
type CustomerSpend struct {
	CustomerID id.ID         `json:"customerId"`
	Name       string        `json:"name"`
	Segment    sales.Segment `json:"segment"`
	Orders     int           `json:"orders"`
	Spend      types.Money   `json:"spend"`
}

// StaffPerformance is one staff member's served orders in the range.
type StaffPerformance struct {
	StaffID   id.ID       `json:"staffId"`
	Name      string      `json:"name"`
	Role      string      `json:"role"`
	Orders    int         `json:"orders"`
	Revenue   types.Money `json:"revenue"`
	AvgTicket types.Money `json:"avgTicket"`
}

// Dashboard is the landing-page summary.
type Dashboard struct {
	Range             aggregate.DateRange `json:"range"`
	Branch            string              `json:"branch,omitempty"`
	Revenue           types.Money         `json:"revenue"`
	Expenses          types.Money         `json:"expenses"`
	Net               types.Money         `json:"net"`
	Orders            int                 `json:"orders"`
	AverageOrderValue types.Money         `json:"averageOrderValue"`
	LowStockItems     int                 `json:"lowStockItems"`
	OutOfStockItems   int                 `json:"outOfStockItems"`
	StockValue        types.Money         `json:"stockValue"`
}
