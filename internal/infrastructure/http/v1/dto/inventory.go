package dto

import (
	"time"

	"backoffice/internal/core/id"
	"backoffice/internal/core/types"
	"backoffice/internal/domain/inventory"
)

// --- Request DTOs ---

type CreateInventoryItemRequest struct {
	Name            string         `json:"name" binding:"required"`
	Category        string         `json:"category"`
	Quantity        types.Quantity `json:"quantity"`
	Unit            string         `json:"unit" binding:"required"`
	ReorderLevel    types.Quantity `json:"reorderLevel"`
	CostPerUnit     types.Money    `json:"costPerUnit"`
	Branch          string         `json:"branch"`
	SupplierID      string         `json:"supplierId" binding:"omitempty,uuid"`
	ExpiryDate      string         `json:"expiryDate" binding:"omitempty,isodate"`
	LinkedMenuItems []string       `json:"linkedMenuItems" binding:"omitempty,dive,uuid"`
}

func (r *CreateInventoryItemRequest) ToEntity() *inventory.Item {
	item := inventory.NewItem(r.Name, r.Category, r.Unit, r.Branch)
	item.Quantity = r.Quantity
	item.ReorderLevel = r.ReorderLevel
	item.CostPerUnit = r.CostPerUnit
	item.SupplierID = parseIDPtr(r.SupplierID)
	item.ExpiryDate = parseDatePtr(r.ExpiryDate)
	item.LinkedMenuItems = parseIDs(r.LinkedMenuItems)
	return item
}

// UpdateInventoryItemRequest is a partial edit. An empty supplierId or
// expiryDate clears the field.
type UpdateInventoryItemRequest struct {
	Name            *string         `json:"name,omitempty"`
	Category        *string         `json:"category,omitempty"`
	Quantity        *types.Quantity `json:"quantity,omitempty"`
	Unit            *string         `json:"unit,omitempty"`
	ReorderLevel    *types.Quantity `json:"reorderLevel,omitempty"`
	CostPerUnit     *types.Money    `json:"costPerUnit,omitempty"`
	Branch          *string         `json:"branch,omitempty"`
	SupplierID      *string         `json:"supplierId,omitempty" binding:"omitempty,uuid|len=0"`
	ExpiryDate      *string         `json:"expiryDate,omitempty" binding:"omitempty,isodate"`
	LinkedMenuItems []string        `json:"linkedMenuItems,omitempty" binding:"omitempty,dive,uuid"`
	Version         int             `json:"version" binding:"required,min=1"`
}

func (r UpdateInventoryItemRequest) ExpectedVersion() int { return r.Version }

func (r *UpdateInventoryItemRequest) ApplyTo(item *inventory.Item) {
	if r.Name != nil {
		item.Name = *r.Name
	}
	if r.Category != nil {
		item.Category = *r.Category
	}
	if r.Quantity != nil {
		item.Quantity = *r.Quantity
	}
	if r.Unit != nil {
		item.Unit = *r.Unit
	}
	if r.ReorderLevel != nil {
		item.ReorderLevel = *r.ReorderLevel
	}
	if r.CostPerUnit != nil {
		item.CostPerUnit = *r.CostPerUnit
	}
	if r.Branch != nil {
		item.Branch = *r.Branch
	}
	if r.SupplierID != nil {
		item.SupplierID = parseIDPtr(*r.SupplierID)
	}
	if r.ExpiryDate != nil {
		item.ExpiryDate = parseDatePtr(*r.ExpiryDate)
	}
	if r.LinkedMenuItems != nil {
		item.LinkedMenuItems = parseIDs(r.LinkedMenuItems)
	}
	item.Version = r.Version
}

// InventoryListQuery filters GET /inventory.
type InventoryListQuery struct {
	ListQuery
	Branch     string `form:"branch"`
	Category   string `form:"category"`
	SupplierID string `form:"supplierId" binding:"omitempty,uuid"`
	Status     string `form:"status" binding:"omitempty,oneof=good low out"`
}

func (q InventoryListQuery) ToFilter() inventory.ListFilter {
	limit := q.Limit
	if limit == 0 {
		limit = 50
	}
	return inventory.ListFilter{
		Search:     q.Search,
		Branch:     q.Branch,
		Category:   q.Category,
		SupplierID: parseIDPtr(q.SupplierID),
		Status:     inventory.StockStatus(q.Status),
		OrderBy:    q.OrderBy,
		Limit:      limit,
		Offset:     q.Offset,
	}
}

// --- Response DTOs ---

type InventoryItemResponse struct {
	BaseResponse
	Name            string                `json:"name"`
	Category        string                `json:"category"`
	Quantity        types.Quantity        `json:"quantity"`
	Unit            string                `json:"unit"`
	ReorderLevel    types.Quantity        `json:"reorderLevel"`
	CostPerUnit     types.Money           `json:"costPerUnit"`
	StockValue      types.Money           `json:"stockValue"`
	Status          inventory.StockStatus `json:"status"`
	Branch          string                `json:"branch"`
	SupplierID      *string               `json:"supplierId,omitempty"`
	ExpiryDate      string                `json:"expiryDate,omitempty"`
	Expired         bool                  `json:"expired"`
	LinkedMenuItems []string              `json:"linkedMenuItems,omitempty"`
}

// FromInventoryItem maps an item, deriving its status from the classifier.
func FromInventoryItem(item *inventory.Item) InventoryItemResponse {
	resp := InventoryItemResponse{
		BaseResponse:    FromBase(item.BaseEntity),
		Name:            item.Name,
		Category:        item.Category,
		Quantity:        item.Quantity,
		Unit:            item.Unit,
		ReorderLevel:    item.ReorderLevel,
		CostPerUnit:     item.CostPerUnit,
		StockValue:      item.StockValue(),
		Status:          item.Status(),
		Branch:          item.Branch,
		Expired:         item.IsExpired(time.Now()),
		LinkedMenuItems: idStrings(item.LinkedMenuItems),
	}
	if item.SupplierID != nil {
		s := item.SupplierID.String()
		resp.SupplierID = &s
	}
	if item.ExpiryDate != nil {
		resp.ExpiryDate = item.ExpiryDate.Format(dateLayout)
	}
	return resp
}

func FromInventoryItems(items []*inventory.Item) []InventoryItemResponse {
	out := make([]InventoryItemResponse, len(items))
	for i, item := range items {
		out[i] = FromInventoryItem(item)
	}
	return out
}

// AlertsResponse is the low-stock partition.
type AlertsResponse struct {
	Branch          string                  `json:"branch,omitempty"`
	LowStockItems   []InventoryItemResponse `json:"lowStockItems"`
	OutOfStockItems []InventoryItemResponse `json:"outOfStockItems"`
	Count           int                     `json:"count"`
}

func FromAlerts(branch string, a inventory.Alerts) AlertsResponse {
	return AlertsResponse{
		Branch:          branch,
		LowStockItems:   FromInventoryItems(a.LowStock),
		OutOfStockItems: FromInventoryItems(a.OutOfStock),
		Count:           a.Count(),
	}
}

// --- helpers ---

const dateLayout = "2006-01-02"

// parseIDPtr parses an id already checked by the "uuid" binding rule.
func parseIDPtr(s string) *id.ID {
	parsed, err := id.ParsePtr(s)
	if err != nil {
		return nil
	}
	return parsed
}

func parseIDs(ss []string) []id.ID {
	if len(ss) == 0 {
		return nil
	}
	out := make([]id.ID, 0, len(ss))
	for _, s := range ss {
		if p := parseIDPtr(s); p != nil {
			out = append(out, *p)
		}
	}
	return out
}

func idStrings(ids []id.ID) []string {
	if len(ids) == 0 {
		return nil
	}
	out := make([]string, len(ids))
	for i, v := range ids {
		out[i] = v.String()
	}
	return out
}

// parseDatePtr parses a date already checked by the "isodate" binding rule.
func parseDatePtr(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil
	}
	return &t
}
