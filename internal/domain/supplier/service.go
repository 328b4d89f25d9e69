package supplier

import (
	"context"

	"backoffice/internal/core/id"
	"backoffice/internal/core/tx"
	"backoffice/internal/domain"
	"backoffice/internal/domain/registers/stock"
)

// Service wraps the generic catalog service and fills derived metrics.
type Service struct {
	*domain.CatalogService[*Supplier]
	ledger *stock.Ledger
}

// NewService creates the supplier service.
func NewService(repo Repository, txManager tx.Manager, ledger *stock.Ledger) *Service {
	return &Service{
		CatalogService: domain.NewCatalogService(domain.CatalogServiceConfig[*Supplier]{
			Repo:       repo,
			TxManager:  txManager,
			EntityName: "supplier",
		}),
		ledger: ledger,
	}
}

// GetWithMetrics loads a supplier and populates LastDelivery and TotalSpend.
func (s *Service) GetWithMetrics(ctx context.Context, supplierID id.ID) (*Supplier, error) {
	sup, err := s.GetByID(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	metrics, err := s.ledger.SupplierMetrics(ctx, supplierID)
	if err != nil {
		return nil, err
	}
	sup.LastDelivery = metrics.LastDelivery
	sup.TotalSpend = metrics.TotalSpend
	return sup, nil
}
