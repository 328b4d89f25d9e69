// Package app assembles the back-office services from configuration.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"backoffice/internal/config"
	"backoffice/internal/core/id"
	"backoffice/internal/domain/alerts"
	"backoffice/internal/domain/audit"
	"backoffice/internal/domain/inventory"
	"backoffice/internal/domain/menu"
	"backoffice/internal/domain/promotions"
	"backoffice/internal/domain/registers/stock"
	"backoffice/internal/domain/reports"
	"backoffice/internal/domain/sales"
	"backoffice/internal/domain/supplier"
	"backoffice/internal/infrastructure/cache"
	"backoffice/internal/infrastructure/http/v1/handlers"
	"backoffice/internal/infrastructure/metrics"
	"backoffice/internal/infrastructure/notify"
	"backoffice/internal/infrastructure/storage"
	"backoffice/pkg/logger"
)

// auditCompressThreshold is the change-set size in bytes above which audit
// payloads are stored compressed.
const auditCompressThreshold = 1024

// dashboardPrefix matches every cached dashboard.
const dashboardPrefix = "dashboard:"

// App holds the wired services of one process.
type App struct {
	Repos   *storage.Repositories
	Metrics *metrics.Registry
	Cache   cache.ReportCache

	Inventory  *inventory.Service
	Recorder   *stock.Recorder
	Ledger     *stock.Ledger
	Alerts     *alerts.Service
	Suppliers  *supplier.Service
	Sales      *sales.Service
	Promotions *promotions.Service
	Menu       *menu.Service
	Reports    *reports.Service

	redis *redis.Client
	log   *logger.Logger
}

// New opens storage and the report cache and wires every service.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*App, error) {
	if log == nil {
		log = logger.NewNop()
	}

	codec, err := audit.NewCodec(auditCompressThreshold)
	if err != nil {
		return nil, fmt.Errorf("audit codec: %w", err)
	}

	repos, err := storage.Open(ctx, storage.Config{
		Driver:      cfg.Storage.Driver,
		DatabaseURL: cfg.Database.URL,
		MaxConns:    cfg.Database.MaxConns,
		MinConns:    cfg.Database.MinConns,
		Migrate:     true,
	}, codec, log)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	a := &App{Repos: repos, Metrics: metrics.New(), log: log}

	if err := a.openCache(ctx, cfg.Redis); err != nil {
		repos.Close()
		return nil, err
	}

	a.wire(notifier(cfg.Notify))
	log.Infow("services wired",
		"storage", cfg.Storage.Driver,
		"notifier", cfg.Notify.Driver,
		"redis", a.redis != nil,
	)
	return a, nil
}

func (a *App) openCache(ctx context.Context, cfg config.RedisConfig) error {
	if cfg.Addr == "" {
		a.Cache = cache.NewLocal(cfg.TTL)
		return nil
	}
	client, err := cache.NewRedisClient(ctx, cache.RedisConfig{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		TTL:      cfg.TTL,
	})
	if err != nil {
		return err
	}
	a.redis = client
	a.Cache = cache.NewRedis(client, cfg.TTL)
	return nil
}

func notifier(cfg config.NotifyConfig) alerts.SupplierNotifier {
	if cfg.Driver != config.NotifyWebhook {
		return alerts.LogNotifier{}
	}
	return notify.NewWebhook(notify.WebhookConfig{
		URL:           cfg.WebhookURL,
		Token:         cfg.Token,
		RatePerSecond: cfg.RatePerSecond,
		Burst:         cfg.Burst,
		Timeout:       cfg.Timeout,
		RetryCount:    2,
	})
}

func (a *App) wire(n alerts.SupplierNotifier) {
	r := a.Repos

	a.Recorder = stock.NewRecorder(r.Items, r.Movements, r.TxManager).
		WithObserver(movementObserver{app: a})
	a.Ledger = stock.NewLedger(r.Items, r.Movements, r.TxManager)
	a.Inventory = inventory.NewService(r.Items, r.TxManager, a.Recorder, r.Audit)
	a.Inventory.OnChange(func(ctx context.Context, _ id.ID) {
		a.invalidateDashboards(ctx)
	})
	a.Suppliers = supplier.NewService(r.Suppliers, r.TxManager, a.Ledger)
	a.Alerts = alerts.NewService(r.Items, r.Suppliers, n).WithObserver(a.Metrics)
	a.Sales = sales.NewService(r.Sales, r.TxManager)
	a.Promotions = promotions.NewService(r.Promotions, r.TxManager)
	a.Menu = menu.NewService(r.Menu, r.TxManager, r.Items)
	a.Reports = reports.NewService(a.Sales, a.Inventory, a.Ledger, a.Cache)

	audit.Attach(a.Suppliers.Hooks(), r.Audit, "supplier")
	audit.Attach(a.Promotions.Hooks(), r.Audit, "promotion")
	audit.Attach(a.Menu.Hooks(), r.Audit, "menu_item")
	audit.Attach(a.Sales.Customers.Hooks(), r.Audit, "customer")
	audit.Attach(a.Sales.Staff.Hooks(), r.Audit, "staff_member")
	audit.Attach(a.Sales.Orders.Hooks(), r.Audit, "order")
	audit.Attach(a.Sales.Expenses.Hooks(), r.Audit, "expense")

	a.Sales.Orders.Hooks().OnAfterCreate(func(ctx context.Context, _ *sales.Order) error {
		a.invalidateDashboards(ctx)
		return nil
	})
	a.Sales.Orders.Hooks().OnAfterDelete(func(ctx context.Context, _ *sales.Order) error {
		a.invalidateDashboards(ctx)
		return nil
	})
	a.Sales.Expenses.Hooks().OnAfterCreate(func(ctx context.Context, _ *sales.Expense) error {
		a.invalidateDashboards(ctx)
		return nil
	})
	a.Sales.Expenses.Hooks().OnAfterDelete(func(ctx context.Context, _ *sales.Expense) error {
		a.invalidateDashboards(ctx)
		return nil
	})
}

func (a *App) invalidateDashboards(ctx context.Context) {
	if err := a.Cache.Invalidate(ctx, dashboardPrefix); err != nil {
		a.log.Warnw("dashboard cache invalidation failed", "error", err)
	}
}

// movementObserver counts movements and drops cached dashboards, whose
// stock value and alert counts a movement changes.
type movementObserver struct {
	app *App
}

func (o movementObserver) MovementRecorded(direction string) {
	o.app.Metrics.MovementRecorded(direction)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	o.app.invalidateDashboards(ctx)
}

func (o movementObserver) MovementRejected(direction, code string) {
	o.app.Metrics.MovementRejected(direction, code)
}

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

// HealthChecks returns the readiness checks for the configured backends.
func (a *App) HealthChecks() map[string]handlers.Pinger {
	checks := map[string]handlers.Pinger{"storage": a.Repos}
	if a.redis != nil {
		checks["redis"] = pingFunc(func(ctx context.Context) error {
			return a.redis.Ping(ctx).Err()
		})
	}
	return checks
}

// Close releases storage and cache connections.
func (a *App) Close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.log.Warnw("close redis", "error", err)
		}
	}
	a.Repos.Close()
}
