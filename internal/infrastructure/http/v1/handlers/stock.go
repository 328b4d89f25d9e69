package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"backoffice/internal/core/apperror"
	"backoffice/internal/domain/registers/stock"
	"backoffice/internal/domain/reports"
	"backoffice/internal/infrastructure/http/v1/dto"
)

// StockHandler handles movement recording and ledger views.
type StockHandler struct {
	*BaseHandler
	recorder *stock.Recorder
	ledger   *stock.Ledger
}

// NewStockHandler creates a new stock handler.
func NewStockHandler(base *BaseHandler, recorder *stock.Recorder, ledger *stock.Ledger) *StockHandler {
	return &StockHandler{
		BaseHandler: base,
		recorder:    recorder,
		ledger:      ledger,
	}
}

// RecordMovement handles POST /stock/movements
func (h *StockHandler) RecordMovement(c *gin.Context) {
	var req dto.RecordMovementRequest
	if !h.BindJSON(c, &req) {
		return
	}

	result, err := h.recorder.RecordMovement(c.Request.Context(), req.ToRecordRequest())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, gin.H{
		"movement": result.Movement,
		"item":     dto.FromInventoryItem(result.Item),
		"status":   result.Status,
	})
}

// GetMovements handles GET /stock/movements
func (h *StockHandler) GetMovements(c *gin.Context) {
	var q dto.MovementsQuery
	if !h.BindQuery(c, &q) {
		return
	}

	movements, err := h.ledger.Movements(c.Request.Context(), q.ToFilter())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, gin.H{"items": movements, "count": len(movements)})
}

// GetItemHistory handles GET /stock/items/:id/movements
func (h *StockHandler) GetItemHistory(c *gin.Context) {
	itemID, ok := h.ParamID(c)
	if !ok {
		return
	}
	r, ok := h.DateRange(c)
	if !ok {
		return
	}

	from, to := r.Times()
	movements, err := h.ledger.Movements(c.Request.Context(), stock.MovementFilter{ItemID: &itemID, From: from, To: to})
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.MovementHistoryResponse{
		ItemID:    itemID,
		Movements: movements,
		Balance:   stock.Fold(movements),
	})
}

// GetTurnover handles GET /stock/items/:id/turnover. The range defaults to
// the last 30 days.
func (h *StockHandler) GetTurnover(c *gin.Context) {
	itemID, ok := h.ParamID(c)
	if !ok {
		return
	}
	r, ok := h.DateRange(c)
	if !ok {
		return
	}
	if r.From == "" || r.To == "" {
		def := reports.DefaultRange(time.Now().UTC())
		if r.From == "" {
			r.From = def.From
		}
		if r.To == "" {
			r.To = def.To
		}
		if r.From > r.To {
			h.Error(c, apperror.NewValidation("from date is after to date"))
			return
		}
	}

	from, to := r.Times()
	turnover, err := h.ledger.Turnover(c.Request.Context(), itemID, *from, *to)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, turnover)
}

// GetValuation handles GET /stock/valuation
func (h *StockHandler) GetValuation(c *gin.Context) {
	valuation, err := h.ledger.Valuation(c.Request.Context(), c.Query("branch"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, valuation)
}

// Reconcile handles GET /stock/reconcile
func (h *StockHandler) Reconcile(c *gin.Context) {
	drifts, err := h.ledger.Reconcile(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, gin.H{"consistent": len(drifts) == 0, "drifts": drifts})
}
