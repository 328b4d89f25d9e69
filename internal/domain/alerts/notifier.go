// Package alerts reports low stock and asks suppliers to restock.
package alerts

import (
	"context"

	"backoffice/internal/domain/supplier"
	"backoffice/pkg/logger"
)

// SupplierNotifier delivers a message to a supplier. A nil error means the
// notification was accepted.
type SupplierNotifier interface {
	SendSupplierNotification(ctx context.Context, s *supplier.Supplier, message string) error
}

// LogNotifier simulates delivery by logging the message. It always succeeds.
type LogNotifier struct{}

// SendSupplierNotification implements SupplierNotifier.
func (LogNotifier) SendSupplierNotification(ctx context.Context, s *supplier.Supplier, message string) error {
	logger.Info(ctx, "supplier notification (simulated)",
		"supplier_id", s.ID,
		"supplier", s.Name,
		"contact", s.Contact(),
		"message", message,
	)
	return nil
}
