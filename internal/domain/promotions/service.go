package promotions

import (
	"context"

	"backoffice/internal/core/tx"
	"backoffice/internal/domain"
	"backoffice/internal/domain/filter"
	"backoffice/internal/domain/sales"
)

// Service manages promotions.
type Service struct {
	*domain.CatalogService[*Promotion]
}

// NewService creates the promotion service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	return &Service{
		CatalogService: domain.NewCatalogService(domain.CatalogServiceConfig[*Promotion]{
			Repo:       repo,
			TxManager:  txManager,
			EntityName: "promotion",
		}),
	}
}

// ListActive returns promotions running on date, optionally only those
// applicable to seg.
func (s *Service) ListActive(ctx context.Context, date string, seg sales.Segment) ([]*Promotion, error) {
	lf := domain.ListFilter{OrderBy: "start_date"}.Where(
		filter.Eq("active", true),
		filter.Item{Field: "start_date", Operator: filter.LessOrEqual, Value: date},
		filter.Item{Field: "end_date", Operator: filter.GreaterOrEqual, Value: date},
	)
	res, err := s.List(ctx, lf)
	if err != nil {
		return nil, err
	}
	if seg == "" {
		return res.Items, nil
	}
	out := make([]*Promotion, 0, len(res.Items))
	for _, p := range res.Items {
		if p.AppliesTo(seg) {
			out = append(out, p)
		}
	}
	return out, nil
}
