package stock

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"backoffice/internal/core/apperror"
	appctx "backoffice/internal/core/context"
	"backoffice/internal/core/id"
	"backoffice/internal/core/tx"
	"backoffice/internal/core/types"
	"backoffice/internal/domain/inventory"
	"backoffice/pkg/logger"
)

var tracer = otel.Tracer("backoffice/stock")

// Observer is notified about recorder outcomes (metrics).
type Observer interface {
	MovementRecorded(direction string)
	MovementRejected(direction, code string)
}

type nopObserver struct{}

func (nopObserver) MovementRecorded(string)         {}
func (nopObserver) MovementRejected(string, string) {}

// RecordRequest is the input of RecordMovement.
type RecordRequest struct {
	ItemID     id.ID
	Direction  Direction
	Quantity   types.Quantity
	Reason     string
	UnitCost   *types.Money
	SupplierID *id.ID
}

// Validate checks the request without touching stored state.
func (r RecordRequest) Validate() error {
	if id.IsNil(r.ItemID) {
		return apperror.NewFieldValidation("itemId", "item is required")
	}
	if !r.Quantity.IsPositive() {
		return apperror.NewFieldValidation("quantity", "quantity must be greater than zero")
	}
	if !r.Direction.Valid() {
		return apperror.NewFieldValidation("direction", "direction must be \"in\" or \"out\"")
	}
	if r.Direction == DirectionOut {
		if strings.TrimSpace(r.Reason) == "" {
			return apperror.NewFieldValidation("reason", "reason is required for stock out")
		}
		if r.UnitCost != nil || r.SupplierID != nil {
			return apperror.NewValidation("supplier and unit cost apply to stock in only")
		}
	}
	if r.UnitCost != nil && r.UnitCost.IsNegative() {
		return apperror.NewFieldValidation("unitCost", "unit cost cannot be negative")
	}
	return nil
}

// RecordResult is the committed movement and the item it changed.
type RecordResult struct {
	Movement *Movement             `json:"movement"`
	Item     *inventory.Item       `json:"item"`
	Status   inventory.StockStatus `json:"status"`
}

// Recorder appends movements and keeps item quantities in step with them.
type Recorder struct {
	items     inventory.Repository
	movements Repository
	txManager tx.Manager
	observer  Observer
	now       func() time.Time
}

// NewRecorder creates a movement recorder.
func NewRecorder(items inventory.Repository, movements Repository, txManager tx.Manager) *Recorder {
	return &Recorder{
		items:     items,
		movements: movements,
		txManager: txManager,
		observer:  nopObserver{},
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// WithObserver sets the outcome observer.
func (r *Recorder) WithObserver(o Observer) *Recorder {
	if o != nil {
		r.observer = o
	}
	return r
}

// RecordMovement validates the request, then in one transaction locks the
// item, re-checks available stock, appends the movement and writes the new
// quantity. On any error nothing is persisted.
func (r *Recorder) RecordMovement(ctx context.Context, req RecordRequest) (*RecordResult, error) {
	ctx, span := tracer.Start(ctx, "stock.RecordMovement")
	defer span.End()
	span.SetAttributes(
		attribute.String("item_id", req.ItemID.String()),
		attribute.String("direction", string(req.Direction)),
	)

	if err := req.Validate(); err != nil {
		r.reject(ctx, req, err)
		return nil, err
	}

	var result *RecordResult
	err := r.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		item, err := r.items.GetForUpdate(ctx, req.ItemID)
		if err != nil {
			if apperror.IsNotFound(err) {
				return apperror.NewNotFound("inventory_item", req.ItemID.String())
			}
			return fmt.Errorf("lock item: %w", err)
		}

		if req.Direction == DirectionOut && req.Quantity > item.Quantity {
			return apperror.NewInsufficientStock(item.ID.String(), req.Quantity.String(), item.Quantity.String()).
				WithDetail("item", item.Name)
		}

		balance, ok := item.Quantity.AddChecked(req.Direction.Sign(req.Quantity))
		if !ok {
			return apperror.NewFieldValidation("quantity", "resulting stock exceeds the supported maximum").
				WithDetail("available", item.Quantity.String())
		}

		m := &Movement{
			ID:         id.New(),
			ItemID:     item.ID,
			Direction:  req.Direction,
			Quantity:   req.Quantity,
			Reason:     strings.TrimSpace(req.Reason),
			UnitCost:   req.UnitCost,
			SupplierID: req.SupplierID,
			Branch:     item.Branch,
			UserID:     appctx.ActingUser(ctx),
			RecordedAt: r.now(),
		}
		item.Quantity = balance
		m.BalanceAfter = balance

		if err := r.movements.Append(ctx, m); err != nil {
			return fmt.Errorf("append movement: %w", err)
		}
		if err := r.items.Update(ctx, item); err != nil {
			return fmt.Errorf("update item quantity: %w", err)
		}

		result = &RecordResult{Movement: m, Item: item, Status: item.Status()}
		return nil
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		r.reject(ctx, req, err)
		return nil, err
	}

	r.observer.MovementRecorded(string(req.Direction))
	logger.Info(ctx, "stock movement recorded",
		"item_id", result.Item.ID,
		"direction", result.Movement.Direction,
		"quantity", result.Movement.Quantity.String(),
		"balance", result.Item.Quantity.String(),
		"status", result.Status,
	)
	return result, nil
}

// RecordAdjustment journals a quantity change already applied to item by a
// direct edit. It must run inside the caller's transaction, which reports the
// commit through AdjustmentCommitted.
func (r *Recorder) RecordAdjustment(ctx context.Context, item *inventory.Item, delta types.Quantity, reason string) error {
	if delta.IsZero() {
		return nil
	}
	direction := DirectionIn
	if delta.IsNegative() {
		direction = DirectionOut
	}

	m := &Movement{
		ID:           id.New(),
		ItemID:       item.ID,
		Direction:    direction,
		Quantity:     delta.Abs(),
		Reason:       reason,
		BalanceAfter: item.Quantity,
		Branch:       item.Branch,
		UserID:       appctx.ActingUser(ctx),
		RecordedAt:   r.now(),
	}
	if err := r.movements.Append(ctx, m); err != nil {
		return fmt.Errorf("append adjustment: %w", err)
	}
	return nil
}

// AdjustmentCommitted reports a journaled adjustment whose transaction committed.
func (r *Recorder) AdjustmentCommitted(delta types.Quantity) {
	switch {
	case delta.IsPositive():
		r.observer.MovementRecorded(string(DirectionIn))
	case delta.IsNegative():
		r.observer.MovementRecorded(string(DirectionOut))
	}
}

func (r *Recorder) reject(ctx context.Context, req RecordRequest, err error) {
	code := apperror.CodeInternal
	if appErr, ok := apperror.AsAppError(err); ok {
		code = appErr.Code
	}
	r.observer.MovementRejected(string(req.Direction), code)
	logger.Warn(ctx, "stock movement rejected",
		"item_id", req.ItemID,
		"direction", req.Direction,
		"quantity", req.Quantity.String(),
		"code", code,
	)
}
