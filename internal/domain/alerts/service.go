package alerts

import (
	"context"
	"strings"
	"time"

	"backoffice/internal/core/apperror"
	"backoffice/internal/core/id"
	"backoffice/internal/domain/inventory"
	"backoffice/internal/domain/supplier"
	"backoffice/pkg/logger"
)

// Observer is told about each notification attempt (metrics).
type Observer interface {
	NotificationSent(success bool)
}

type nopObserver struct{}

func (nopObserver) NotificationSent(bool) {}

// Notification is the outcome of one supplier notification.
type Notification struct {
	ItemID     id.ID     `json:"itemId"`
	ItemName   string    `json:"itemName"`
	SupplierID id.ID     `json:"supplierId"`
	Supplier   string    `json:"supplier"`
	Message    string    `json:"message"`
	Success    bool      `json:"success"`
	Error      string    `json:"error,omitempty"`
	SentAt     time.Time `json:"sentAt"`
}

// ScanReport summarises a ScanAndNotify run.
type ScanReport struct {
	Branch        string         `json:"branch,omitempty"`
	LowStock      int            `json:"lowStock"`
	OutOfStock    int            `json:"outOfStock"`
	Notifications []Notification `json:"notifications"`
	Skipped       []id.ID        `json:"skipped"`
	Failed        int            `json:"failed"`
}

// Service computes alerts and notifies suppliers.
type Service struct {
	items     inventory.Repository
	suppliers supplier.Repository
	notifier  SupplierNotifier
	observer  Observer
}

// NewService creates the alert service.
func NewService(items inventory.Repository, suppliers supplier.Repository, notifier SupplierNotifier) *Service {
	return &Service{
		items:     items,
		suppliers: suppliers,
		notifier:  notifier,
		observer:  nopObserver{},
	}
}

// WithObserver sets the attempt observer.
func (s *Service) WithObserver(o Observer) *Service {
	if o != nil {
		s.observer = o
	}
	return s
}

// LowStock partitions the inventory (optionally one branch) into low and
// out-of-stock lists in insertion order.
func (s *Service) LowStock(ctx context.Context, branch string) (inventory.Alerts, error) {
	items, err := s.items.All(ctx, branch)
	if err != nil {
		return inventory.Alerts{}, err
	}
	return inventory.Partition(items, branch), nil
}

// NotifySupplier sends a restock request for one item. An empty message is
// replaced by the composed template.
func (s *Service) NotifySupplier(ctx context.Context, itemID id.ID, message string) (*Notification, error) {
	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("inventory_item", itemID.String())
		}
		return nil, err
	}
	sup, err := s.supplierOf(ctx, item)
	if err != nil {
		return nil, err
	}

	n, err := s.send(ctx, item, sup, message)
	if err != nil {
		return n, apperror.NewNotificationFailed(sup.Name, err)
	}
	return n, nil
}

// ScanAndNotify notifies the supplier of every low or out-of-stock item.
// Items without a resolvable supplier are skipped; a failed delivery does not
// stop the scan.
func (s *Service) ScanAndNotify(ctx context.Context, branch string) (*ScanReport, error) {
	alerts, err := s.LowStock(ctx, branch)
	if err != nil {
		return nil, err
	}

	report := &ScanReport{
		Branch:        branch,
		LowStock:      len(alerts.LowStock),
		OutOfStock:    len(alerts.OutOfStock),
		Notifications: []Notification{},
		Skipped:       []id.ID{},
	}

	pending := append(append([]*inventory.Item{}, alerts.OutOfStock...), alerts.LowStock...)
	for _, item := range pending {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		sup, err := s.supplierOf(ctx, item)
		if err != nil {
			logger.Warn(ctx, "skipping low-stock item", "item_id", item.ID, "reason", err)
			report.Skipped = append(report.Skipped, item.ID)
			continue
		}
		n, err := s.send(ctx, item, sup, "")
		if err != nil {
			report.Failed++
		}
		report.Notifications = append(report.Notifications, *n)
	}

	logger.Info(ctx, "low-stock scan finished",
		"branch", branch,
		"low", report.LowStock,
		"out", report.OutOfStock,
		"notified", len(report.Notifications)-report.Failed,
		"failed", report.Failed,
		"skipped", len(report.Skipped),
	)
	return report, nil
}

func (s *Service) supplierOf(ctx context.Context, item *inventory.Item) (*supplier.Supplier, error) {
	if item.SupplierID == nil {
		return nil, apperror.NewBusinessRule("item has no supplier").WithDetail("item_id", item.ID.String())
	}
	sup, err := s.suppliers.GetByID(ctx, *item.SupplierID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewNotFound("supplier", item.SupplierID.String())
		}
		return nil, err
	}
	return sup, nil
}

func (s *Service) send(ctx context.Context, item *inventory.Item, sup *supplier.Supplier, message string) (*Notification, error) {
	if strings.TrimSpace(message) == "" {
		message = ComposeMessage(sup, item)
	}
	n := &Notification{
		ItemID:     item.ID,
		ItemName:   item.Name,
		SupplierID: sup.ID,
		Supplier:   sup.Name,
		Message:    message,
		SentAt:     time.Now().UTC(),
	}

	err := s.notifier.SendSupplierNotification(ctx, sup, message)
	if err != nil {
		n.Error = err.Error()
		logger.Error(ctx, "supplier notification failed", "supplier_id", sup.ID, "item_id", item.ID, "error", err)
	} else {
		n.Success = true
	}
	s.observer.NotificationSent(n.Success)
	return n, err
}
