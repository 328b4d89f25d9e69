package menu

import (
	"context"
	"fmt"
	"sort"

	"backoffice/internal/core/id"
	"backoffice/internal/core/tx"
	"backoffice/internal/core/types"
	"backoffice/internal/domain"
	"backoffice/internal/domain/inventory"
	"backoffice/pkg/aggregate"
)

// StockLookup lists inventory items so ingredient availability can be checked.
type StockLookup interface {
	All(ctx context.Context, branch string) ([]*inventory.Item, error)
}

// CategorySummary describes one menu category.
type CategorySummary struct {
	Category     string      `json:"category"`
	Items        int         `json:"items"`
	Available    int         `json:"available"`
	AveragePrice types.Money `json:"averagePrice"`
}

// Analytics are menu-wide figures.
type Analytics struct {
	TotalItems     int         `json:"totalItems"`
	AvailableItems int         `json:"availableItems"`
	AveragePrice   types.Money `json:"averagePrice"`
	MinPrice       types.Money `json:"minPrice"`
	MaxPrice       types.Money `json:"maxPrice"`
	// Blocked lists available items with at least one out-of-stock ingredient.
	Blocked []*MenuItem `json:"blocked"`
}

// Screen is the data behind a rendered view. Only the part matching Mode is set.
type Screen struct {
	Mode       Mode              `json:"mode"`
	Items      []*MenuItem       `json:"items,omitempty"`
	Item       *MenuItem         `json:"item,omitempty"`
	Categories []CategorySummary `json:"categories,omitempty"`
	Analytics  *Analytics        `json:"analytics,omitempty"`
}

// Service manages menu items.
type Service struct {
	*domain.CatalogService[*MenuItem]
	stock StockLookup
}

// NewService creates the menu service.
func NewService(repo Repository, txManager tx.Manager, stock StockLookup) *Service {
	return &Service{
		CatalogService: domain.NewCatalogService(domain.CatalogServiceConfig[*MenuItem]{
			Repo:       repo,
			TxManager:  txManager,
			EntityName: "menu_item",
		}),
		stock: stock,
	}
}

func (s *Service) all(ctx context.Context) ([]*MenuItem, error) {
	res, err := s.List(ctx, domain.ListFilter{OrderBy: "name"})
	if err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}
	return res.Items, nil
}

// Categories summarises items per category, ordered by name.
func (s *Service) Categories(ctx context.Context) ([]CategorySummary, error) {
	items, err := s.all(ctx)
	if err != nil {
		return nil, err
	}
	return summarize(items), nil
}

func summarize(items []*MenuItem) []CategorySummary {
	groups := aggregate.GroupBy(items,
		func(m *MenuItem) string { return m.Category },
		func(m *MenuItem) types.Money { return m.Price },
	)
	available := make(map[string]int)
	for _, m := range items {
		if m.Available {
			available[m.Category]++
		}
	}
	out := make([]CategorySummary, len(groups))
	for i, g := range groups {
		out[i] = CategorySummary{Category: g.Key, Items: g.Count, Available: available[g.Key], AveragePrice: g.Avg}
	}
	return out
}

// Analytics computes menu-wide figures.
func (s *Service) Analytics(ctx context.Context) (*Analytics, error) {
	items, err := s.all(ctx)
	if err != nil {
		return nil, err
	}

	a := &Analytics{TotalItems: len(items), AveragePrice: types.Zero(), MinPrice: types.Zero(), MaxPrice: types.Zero(), Blocked: []*MenuItem{}}
	if len(items) == 0 {
		return a, nil
	}

	price := func(m *MenuItem) types.Money { return m.Price }
	a.AveragePrice = aggregate.Average(aggregate.Sum(items, price), len(items))
	a.MinPrice, a.MaxPrice = items[0].Price, items[0].Price
	for _, m := range items {
		if m.Available {
			a.AvailableItems++
		}
		if m.Price.LessThan(a.MinPrice) {
			a.MinPrice = m.Price
		}
		if m.Price.GreaterThan(a.MaxPrice) {
			a.MaxPrice = m.Price
		}
	}

	if s.stock == nil {
		return a, nil
	}
	stock, err := s.stock.All(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("load stock: %w", err)
	}
	out := make(map[id.ID]bool)
	for _, it := range stock {
		if it.Status() == inventory.StatusOut {
			out[it.ID] = true
		}
	}
	for _, m := range items {
		if !m.Available {
			continue
		}
		for _, ing := range m.Ingredients {
			if out[ing] {
				a.Blocked = append(a.Blocked, m)
				break
			}
		}
	}
	sort.SliceStable(a.Blocked, func(i, j int) bool { return a.Blocked[i].Name < a.Blocked[j].Name })
	return a, nil
}

// Render loads the data a view displays.
func (s *Service) Render(ctx context.Context, v View) (*Screen, error) {
	screen := &Screen{Mode: v.Mode()}
	switch v := v.(type) {
	case ListView:
		items, err := s.all(ctx)
		if err != nil {
			return nil, err
		}
		screen.Items = items
	case FormView:
		if v.Editing != nil {
			item, err := s.GetByID(ctx, *v.Editing)
			if err != nil {
				return nil, err
			}
			screen.Item = item
		}
	case DetailsView:
		item, err := s.GetByID(ctx, v.ItemID)
		if err != nil {
			return nil, err
		}
		screen.Item = item
	case CategoriesView:
		cats, err := s.Categories(ctx)
		if err != nil {
			return nil, err
		}
		screen.Categories = cats
	case AnalyticsView:
		a, err := s.Analytics(ctx)
		if err != nil {
			return nil, err
		}
		screen.Analytics = a
	default:
		return nil, fmt.Errorf("unsupported view %T", v)
	}
	return screen, nil
}
