package inventory

import (
	"context"
	"fmt"

	"backoffice/internal/core/apperror"
	"backoffice/internal/core/entity"
	"backoffice/internal/core/id"
	"backoffice/internal/core/tx"
	"backoffice/internal/core/types"
	"backoffice/internal/domain"
	"backoffice/internal/domain/audit"
	"backoffice/internal/domain/filter"
	"backoffice/pkg/logger"
)

const entityType = "inventory_item"

// Reasons recorded for quantity changes that bypass the movement recorder.
const (
	ReasonOpeningBalance   = "opening balance"
	ReasonManualAdjustment = "manual adjustment"
)

// QuantityJournal appends a movement for a quantity change made by a direct
// edit. RecordAdjustment runs inside the caller's transaction;
// AdjustmentCommitted is called once that transaction has committed.
type QuantityJournal interface {
	RecordAdjustment(ctx context.Context, item *Item, delta types.Quantity, reason string) error
	AdjustmentCommitted(delta types.Quantity)
}

// ChangeFunc is called after a create, update or delete has committed.
type ChangeFunc func(ctx context.Context, itemID id.ID)

// ListFilter narrows item lists. Status is derived, so it is applied after loading.
type ListFilter struct {
	Search     string
	Branch     string
	Category   string
	SupplierID *id.ID
	Status     StockStatus
	OrderBy    string
	Limit      int
	Offset     int
}

// Service implements inventory item maintenance.
type Service struct {
	repo      Repository
	txManager tx.Manager
	journal   QuantityJournal
	auditLog  audit.Log
	onChange  []ChangeFunc
}

// NewService creates the inventory service.
func NewService(repo Repository, txManager tx.Manager, journal QuantityJournal, auditLog audit.Log) *Service {
	return &Service{
		repo:      repo,
		txManager: txManager,
		journal:   journal,
		auditLog:  auditLog,
	}
}

// OnChange registers fn to run after every committed item write.
func (s *Service) OnChange(fn ChangeFunc) {
	s.onChange = append(s.onChange, fn)
}

func (s *Service) changed(ctx context.Context, itemID id.ID, delta types.Quantity) {
	if !delta.IsZero() {
		s.journal.AdjustmentCommitted(delta)
	}
	for _, fn := range s.onChange {
		fn(ctx, itemID)
	}
}

// Create validates and stores a new item. A non-zero starting quantity is
// journaled as an opening balance in the same transaction.
func (s *Service) Create(ctx context.Context, item *Item) error {
	if err := item.Validate(ctx); err != nil {
		return err
	}

	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Create(ctx, item); err != nil {
			return fmt.Errorf("create inventory item: %w", err)
		}
		if item.Quantity.IsPositive() {
			if err := s.journal.RecordAdjustment(ctx, item, item.Quantity, ReasonOpeningBalance); err != nil {
				return err
			}
		}
		return audit.Record(ctx, s.auditLog, entityType, item.ID, audit.ActionCreate, entity.Fields(item))
	})
	if err != nil {
		return err
	}
	s.changed(ctx, item.ID, item.Quantity)

	logger.Info(ctx, "inventory item created", "item_id", item.ID, "name", item.Name, "status", item.Status())
	return nil
}

// Get retrieves an item by ID.
func (s *Service) Get(ctx context.Context, itemID id.ID) (*Item, error) {
	item, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, notFound(err, itemID)
	}
	return item, nil
}

// Update applies a direct edit. A changed quantity is journaled as a manual
// adjustment so the movement log keeps folding to the stored quantity.
func (s *Service) Update(ctx context.Context, item *Item) error {
	if err := item.Validate(ctx); err != nil {
		return err
	}

	var delta types.Quantity
	version := item.Version
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		current, err := s.repo.GetForUpdate(ctx, item.ID)
		if err != nil {
			return notFound(err, item.ID)
		}
		if current.Version != item.Version {
			return apperror.NewConcurrentModification(entityType, item.ID)
		}

		item.CreatedAt = current.CreatedAt
		changes := audit.Diff(entity.Fields(current), entity.Fields(item))

		if err := s.repo.Update(ctx, item); err != nil {
			return fmt.Errorf("update inventory item: %w", err)
		}
		delta = item.Quantity.Sub(current.Quantity)
		if !delta.IsZero() {
			if err := s.journal.RecordAdjustment(ctx, item, delta, ReasonManualAdjustment); err != nil {
				return err
			}
		}
		if len(changes) == 0 {
			return nil
		}
		return audit.Record(ctx, s.auditLog, entityType, item.ID, audit.ActionUpdate, changes)
	})
	if err != nil {
		item.Version = version
		return err
	}
	s.changed(ctx, item.ID, delta)

	logger.Info(ctx, "inventory item updated", "item_id", item.ID, "status", item.Status())
	return nil
}

// Delete hard-deletes an item. Its movement history is kept.
func (s *Service) Delete(ctx context.Context, itemID id.ID) error {
	err := s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := s.repo.Delete(ctx, itemID); err != nil {
			return notFound(err, itemID)
		}
		return audit.Record(ctx, s.auditLog, entityType, itemID, audit.ActionDelete, nil)
	})
	if err != nil {
		return err
	}
	s.changed(ctx, itemID, 0)
	return nil
}

// List returns items matching f.
func (s *Service) List(ctx context.Context, f ListFilter) (domain.ListResult[*Item], error) {
	lf := domain.ListFilter{
		Search:  f.Search,
		OrderBy: f.OrderBy,
		Limit:   f.Limit,
		Offset:  f.Offset,
	}
	if f.Branch != "" {
		lf = lf.Where(filter.Eq("branch", f.Branch))
	}
	if f.Category != "" {
		lf = lf.Where(filter.Eq("category", f.Category))
	}
	if f.SupplierID != nil {
		lf = lf.Where(filter.Eq("supplier_id", *f.SupplierID))
	}

	if f.Status == "" {
		return s.repo.List(ctx, lf)
	}

	lf.Limit, lf.Offset = 0, 0
	all, err := s.repo.List(ctx, lf)
	if err != nil {
		return domain.ListResult[*Item]{}, err
	}

	matched := make([]*Item, 0, len(all.Items))
	for _, item := range all.Items {
		if item.Status() == f.Status {
			matched = append(matched, item)
		}
	}
	return paginate(matched, f.Limit, f.Offset), nil
}

// Alerts partitions the current inventory into low and out-of-stock items.
func (s *Service) Alerts(ctx context.Context, branch string) (Alerts, error) {
	items, err := s.repo.All(ctx, branch)
	if err != nil {
		return Alerts{}, err
	}
	return Partition(items, branch), nil
}

// History returns the audit trail of an item, newest first.
func (s *Service) History(ctx context.Context, itemID id.ID, limit int) ([]audit.Entry, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return s.auditLog.History(ctx, entityType, itemID, limit)
}

func paginate(items []*Item, limit, offset int) domain.ListResult[*Item] {
	res := domain.ListResult[*Item]{TotalCount: int64(len(items)), Limit: limit, Offset: offset}
	if offset > len(items) {
		offset = len(items)
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	res.Items = items
	return res
}

func notFound(err error, itemID id.ID) error {
	if apperror.IsNotFound(err) {
		return apperror.NewNotFound(entityType, itemID.String())
	}
	return err
}
