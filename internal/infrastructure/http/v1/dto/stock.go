package dto

import (
	"backoffice/internal/core/id"
	"backoffice/internal/core/types"
	"backoffice/internal/domain/registers/stock"
	"backoffice/pkg/aggregate"
)

// RecordMovementRequest is the body of POST /stock/movements. Quantity,
// direction and reason rules are enforced by the recorder.
type RecordMovementRequest struct {
	ItemID     string         `json:"itemId" binding:"required,uuid"`
	Direction  string         `json:"direction"`
	Quantity   types.Quantity `json:"quantity"`
	Reason     string         `json:"reason"`
	UnitCost   *types.Money   `json:"unitCost"`
	SupplierID string         `json:"supplierId" binding:"omitempty,uuid"`
}

func (r *RecordMovementRequest) ToRecordRequest() stock.RecordRequest {
	req := stock.RecordRequest{
		Direction:  stock.Direction(r.Direction),
		Quantity:   r.Quantity,
		Reason:     r.Reason,
		UnitCost:   r.UnitCost,
		SupplierID: parseIDPtr(r.SupplierID),
	}
	if p := parseIDPtr(r.ItemID); p != nil {
		req.ItemID = *p
	}
	return req
}

// MovementsQuery filters GET /stock/movements. Dates are inclusive days.
type MovementsQuery struct {
	ItemID     string `form:"itemId" binding:"omitempty,uuid"`
	SupplierID string `form:"supplierId" binding:"omitempty,uuid"`
	Direction  string `form:"direction" binding:"omitempty,oneof=in out"`
	Branch     string `form:"branch"`
	From       string `form:"from" binding:"omitempty,isodate"`
	To         string `form:"to" binding:"omitempty,isodate"`
	Limit      int    `form:"limit" binding:"omitempty,min=0,max=1000"`
	Offset     int    `form:"offset" binding:"omitempty,min=0"`
}

func (q MovementsQuery) ToFilter() stock.MovementFilter {
	from, to := aggregate.DateRange{From: q.From, To: q.To}.Times()
	return stock.MovementFilter{
		ItemID:     parseIDPtr(q.ItemID),
		SupplierID: parseIDPtr(q.SupplierID),
		Direction:  stock.Direction(q.Direction),
		Branch:     q.Branch,
		From:       from,
		To:         to,
		Limit:      q.Limit,
		Offset:     q.Offset,
	}
}

// MovementHistoryResponse is an item's movement log with its fold.
type MovementHistoryResponse struct {
	ItemID    id.ID             `json:"itemId"`
	Movements []*stock.Movement `json:"movements"`
	Balance   types.Quantity    `json:"balance"`
}
