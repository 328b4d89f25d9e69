// Package main provides a CLI tool for seeding the store with demo data.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"backoffice/internal/app"
	"backoffice/internal/config"
	appctx "backoffice/internal/core/context"
	"backoffice/internal/core/entity"
	"backoffice/internal/core/id"
	"backoffice/internal/core/types"
	"backoffice/internal/domain/auth"
	"backoffice/internal/domain/inventory"
	"backoffice/internal/domain/menu"
	"backoffice/internal/domain/promotions"
	"backoffice/internal/domain/registers/stock"
	"backoffice/internal/domain/sales"
	"backoffice/internal/domain/supplier"
	"backoffice/pkg/aggregate"
	"backoffice/pkg/logger"
)

var (
	branches       = []string{"downtown", "harbor"}
	itemCategories = []string{"produce", "dairy", "meat", "dry goods", "beverages"}
	menuCategories = []string{"starters", "mains", "desserts", "drinks"}
	staffRoles     = []string{"chef", "server", "bartender", "manager"}
	expenseKinds   = []string{"rent", "utilities", "payroll", "maintenance", "marketing"}
	units          = []string{"kg", "l", "pcs"}
)

type seeder struct {
	app   *app.App
	faker *gofakeit.Faker
	log   *logger.Logger
	today time.Time

	suppliers []*supplier.Supplier
	items     []*inventory.Item
	menuItems []*menu.MenuItem
	customers []*sales.Customer
	staff     []*sales.StaffMember
}

func main() {
	envFile := flag.String("env", ".env", "optional dotenv file")
	seed := flag.Uint64("seed", 0, "faker seed; 0 picks a random one")
	days := flag.Int("days", 60, "days of order history to generate")
	flag.Parse()

	cfg, err := config.Load(*envFile)
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	if cfg.Storage.Driver == config.StorageMemory {
		log.Warn("seeding in-memory storage; data is discarded on exit")
	}

	operator := appctx.UserContext{UserID: "seed", Name: "Seed Operator", Roles: []string{"manager"}}
	ctx := appctx.WithUser(context.Background(), &operator)
	ctx = logger.WithLogger(ctx, log)

	application, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Fatalw("failed to initialize services", "error", err)
	}
	defer application.Close()

	s := &seeder{
		app:   application,
		faker: gofakeit.New(*seed),
		log:   log,
		today: time.Now().UTC(),
	}

	steps := []struct {
		name string
		run  func(context.Context) error
	}{
		{"suppliers", s.seedSuppliers},
		{"inventory", s.seedInventory},
		{"menu", s.seedMenu},
		{"people", s.seedPeople},
		{"promotions", s.seedPromotions},
		{"orders", func(ctx context.Context) error { return s.seedOrders(ctx, *days) }},
		{"expenses", func(ctx context.Context) error { return s.seedExpenses(ctx, *days) }},
		{"deliveries", s.seedDeliveries},
	}
	for _, step := range steps {
		if err := step.run(ctx); err != nil {
			log.Fatalw("seed step failed", "step", step.name, "error", err)
		}
		log.Infow("seeded", "step", step.name)
	}

	if cfg.JWT.Secret != "" {
		token, expires, err := auth.NewJWTService(auth.DefaultJWTConfig(cfg.JWT.Secret)).GenerateAccessToken(operator)
		if err != nil {
			log.Fatalw("failed to issue dev token", "error", err)
		}
		fmt.Printf("dev token (expires %s):\n%s\n", expires.Format(time.RFC3339), token)
	}

	log.Info("seeding completed successfully")
}

func (s *seeder) date(daysAgo int) string {
	return s.today.AddDate(0, 0, -daysAgo).Format(aggregate.DateLayout)
}

func (s *seeder) money(min, max float64) types.Money {
	return types.NewMoney(s.faker.Float64Range(min, max)).Round(2)
}

func (s *seeder) seedSuppliers(ctx context.Context) error {
	for i := 0; i < 5; i++ {
		sup := supplier.New(s.faker.Company())
		sup.ContactPerson = s.faker.Name()
		sup.Email = s.faker.Email()
		sup.Phone = s.faker.Phone()
		sup.Address = s.faker.Address().Address
		sup.Categories = []string{s.faker.RandomString(itemCategories)}
		rating := s.faker.IntRange(1, 5)
		sup.Rating = &rating
		if err := s.app.Suppliers.Create(ctx, sup); err != nil {
			return err
		}
		s.suppliers = append(s.suppliers, sup)
	}
	return nil
}

func (s *seeder) seedInventory(ctx context.Context) error {
	for i := 0; i < 25; i++ {
		var name string
		if s.faker.Bool() {
			name = s.faker.Vegetable()
		} else {
			name = s.faker.Fruit()
		}
		item := inventory.NewItem(name, s.faker.RandomString(itemCategories), s.faker.RandomString(units), s.faker.RandomString(branches))
		item.Quantity = types.NewQuantity(int64(s.faker.IntRange(0, 80)))
		item.ReorderLevel = types.NewQuantity(int64(s.faker.IntRange(5, 20)))
		item.CostPerUnit = s.money(0.5, 25)
		sup := s.suppliers[s.faker.IntRange(0, len(s.suppliers)-1)]
		item.SupplierID = &sup.ID
		if s.faker.IntRange(0, 4) == 0 {
			expiry := s.today.AddDate(0, 0, s.faker.IntRange(-5, 30))
			item.ExpiryDate = &expiry
		}
		if err := s.app.Inventory.Create(ctx, item); err != nil {
			return err
		}
		s.items = append(s.items, item)
	}
	return nil
}

func (s *seeder) seedMenu(ctx context.Context) error {
	for i := 0; i < 15; i++ {
		category := menuCategories[i%len(menuCategories)]
		var name string
		switch category {
		case "starters":
			name = s.faker.Breakfast()
		case "mains":
			name = s.faker.Dinner()
		case "desserts":
			name = s.faker.Dessert()
		default:
			name = s.faker.Drink()
		}
		m := menu.NewMenuItem(name, category, s.money(4, 40))
		m.Available = s.faker.IntRange(0, 9) > 0
		for j := 0; j < s.faker.IntRange(1, 3); j++ {
			m.Ingredients = append(m.Ingredients, s.items[s.faker.IntRange(0, len(s.items)-1)].ID)
		}
		if err := s.app.Menu.Create(ctx, m); err != nil {
			return err
		}
		s.menuItems = append(s.menuItems, m)
	}
	return nil
}

func (s *seeder) seedPeople(ctx context.Context) error {
	segments := []string{string(sales.SegmentNew), string(sales.SegmentRegular), string(sales.SegmentVIP), string(sales.SegmentInactive)}
	for i := 0; i < 30; i++ {
		c := &sales.Customer{
			BaseEntity: entity.NewBaseEntity(),
			Name:       s.faker.Name(),
			Email:      s.faker.Email(),
			Phone:      s.faker.Phone(),
			Segment:    sales.Segment(s.faker.RandomString(segments)),
			JoinedOn:   s.date(s.faker.IntRange(0, 720)),
		}
		if err := s.app.Sales.Customers.Create(ctx, c); err != nil {
			return err
		}
		s.customers = append(s.customers, c)
	}
	for i := 0; i < 8; i++ {
		m := &sales.StaffMember{
			BaseEntity: entity.NewBaseEntity(),
			Name:       s.faker.Name(),
			Role:       s.faker.RandomString(staffRoles),
			Branch:     s.faker.RandomString(branches),
			HiredOn:    s.date(s.faker.IntRange(30, 1500)),
		}
		if err := s.app.Sales.Staff.Create(ctx, m); err != nil {
			return err
		}
		s.staff = append(s.staff, m)
	}
	return nil
}

func (s *seeder) seedPromotions(ctx context.Context) error {
	p := promotions.New("Happy hour")
	p.DiscountType = promotions.DiscountPercent
	p.DiscountValue = types.NewMoney(15)
	p.ApplicableSegments = []sales.Segment{sales.SegmentRegular, sales.SegmentVIP}
	p.StartDate, p.EndDate = s.date(14), s.date(-14)
	p.Active = true
	if err := s.app.Promotions.Create(ctx, p); err != nil {
		return err
	}

	welcome := promotions.New("Welcome back")
	welcome.DiscountType = promotions.DiscountFixed
	welcome.DiscountValue = types.NewMoney(5)
	welcome.ApplicableSegments = []sales.Segment{sales.SegmentInactive}
	welcome.StartDate, welcome.EndDate = s.date(60), s.date(30)
	welcome.Active = true
	return s.app.Promotions.Create(ctx, welcome)
}

func (s *seeder) seedOrders(ctx context.Context, days int) error {
	for d := days; d >= 0; d-- {
		for n := s.faker.IntRange(2, 8); n > 0; n-- {
			o := &sales.Order{
				BaseEntity: entity.NewBaseEntity(),
				Date:       s.date(d),
				Branch:     s.faker.RandomString(branches),
			}
			if s.faker.IntRange(0, 3) > 0 {
				c := s.customers[s.faker.IntRange(0, len(s.customers)-1)]
				o.CustomerID = &c.ID
			}
			staff := s.staff[s.faker.IntRange(0, len(s.staff)-1)]
			o.StaffID = &staff.ID
			for l := s.faker.IntRange(1, 4); l > 0; l-- {
				m := s.menuItems[s.faker.IntRange(0, len(s.menuItems)-1)]
				o.Lines = append(o.Lines, sales.OrderLine{
					MenuItemID: m.ID,
					Name:       m.Name,
					Category:   m.Category,
					Quantity:   s.faker.IntRange(1, 3),
					UnitPrice:  m.Price,
				})
			}
			if err := s.app.Sales.Orders.Create(ctx, o); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *seeder) seedExpenses(ctx context.Context, days int) error {
	for d := days; d >= 0; d -= 7 {
		for _, branch := range branches {
			e := &sales.Expense{
				BaseEntity:  entity.NewBaseEntity(),
				Date:        s.date(d),
				Category:    s.faker.RandomString(expenseKinds),
				Amount:      s.money(50, 2500),
				Description: s.faker.Company(),
				Branch:      branch,
			}
			if err := s.app.Sales.Expenses.Create(ctx, e); err != nil {
				return err
			}
		}
	}
	return nil
}

// seedDeliveries records receipts from each item's supplier and some usage,
// giving supplier metrics and turnover something to report.
func (s *seeder) seedDeliveries(ctx context.Context) error {
	for _, item := range s.items {
		cost := item.CostPerUnit
		if _, err := s.app.Recorder.RecordMovement(ctx, stock.RecordRequest{
			ItemID:     item.ID,
			Direction:  stock.DirectionIn,
			Quantity:   types.NewQuantity(int64(s.faker.IntRange(5, 30))),
			Reason:     "delivery",
			UnitCost:   &cost,
			SupplierID: supplierOf(item),
		}); err != nil {
			return err
		}
		if _, err := s.app.Recorder.RecordMovement(ctx, stock.RecordRequest{
			ItemID:    item.ID,
			Direction: stock.DirectionOut,
			Quantity:  types.NewQuantity(int64(s.faker.IntRange(1, 5))),
			Reason:    "kitchen usage",
		}); err != nil {
			return err
		}
	}
	return nil
}

func supplierOf(item *inventory.Item) *id.ID {
	if item.SupplierID == nil {
		return nil
	}
	sid := *item.SupplierID
	return &sid
}
