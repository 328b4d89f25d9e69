// Package storage opens the configured store and exposes it through the domain repository interfaces.
package storage

import (
	"context"
	"fmt"

	"backoffice/internal/core/tx"
	"backoffice/internal/domain/audit"
	"backoffice/internal/domain/inventory"
	"backoffice/internal/domain/menu"
	"backoffice/internal/domain/promotions"
	"backoffice/internal/domain/registers/stock"
	"backoffice/internal/domain/sales"
	"backoffice/internal/domain/supplier"
	"backoffice/internal/infrastructure/storage/memory"
	"backoffice/internal/infrastructure/storage/postgres"
	"backoffice/internal/infrastructure/storage/postgres/catalog_repo"
	"backoffice/internal/infrastructure/storage/postgres/migrations"
	"backoffice/internal/infrastructure/storage/postgres/register_repo"
	"backoffice/pkg/logger"
)

// Storage drivers.
const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
)

// Config selects and configures the store.
type Config struct {
	Driver      string
	DatabaseURL string
	MaxConns    int32
	MinConns    int32
	// Migrate applies embedded migrations on open (postgres only).
	Migrate bool
}

// Repositories is every repository of one store sharing one transaction manager.
type Repositories struct {
	TxManager  tx.Manager
	Items      inventory.Repository
	Movements  stock.Repository
	Audit      audit.Log
	Suppliers  supplier.Repository
	Sales      sales.Repositories
	Promotions promotions.Repository
	Menu       menu.Repository

	close func()
	ping  func(ctx context.Context) error
}

// Close releases the store's connections.
func (r *Repositories) Close() {
	if r.close != nil {
		r.close()
	}
}

// Ping checks the store is reachable. The memory store always is.
func (r *Repositories) Ping(ctx context.Context) error {
	if r.ping == nil {
		return nil
	}
	return r.ping(ctx)
}

// Open creates the repositories for cfg.Driver.
func Open(ctx context.Context, cfg Config, codec *audit.Codec, log *logger.Logger) (*Repositories, error) {
	if log == nil {
		log = logger.NewNop()
	}
	switch cfg.Driver {
	case DriverMemory, "":
		return fromMemory(memory.NewRepositories(codec)), nil
	case DriverPostgres:
		return openPostgres(ctx, cfg, codec, log)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

func fromMemory(m *memory.Repositories) *Repositories {
	return &Repositories{
		TxManager: m.TxManager,
		Items:     m.Items,
		Movements: m.Movements,
		Audit:     m.Audit,
		Suppliers: m.Suppliers,
		Sales: sales.Repositories{
			Customers: m.Customers,
			Staff:     m.Staff,
			Orders:    m.Orders,
			Expenses:  m.Expenses,
		},
		Promotions: m.Promotions,
		Menu:       m.Menu,
	}
}

func openPostgres(ctx context.Context, cfg Config, codec *audit.Codec, log *logger.Logger) (*Repositories, error) {
	if cfg.Migrate {
		if err := migrate(cfg.DatabaseURL, log); err != nil {
			return nil, err
		}
	}

	poolCfg := postgres.DefaultPoolConfig(cfg.DatabaseURL)
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = cfg.MinConns
	}
	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		return nil, err
	}

	return NewPostgres(pool, codec), nil
}

// NewPostgres wires the PostgreSQL repositories on an open pool. Close closes the pool.
func NewPostgres(pool *postgres.Pool, codec *audit.Codec) *Repositories {
	txm := postgres.NewTxManager(pool)
	return &Repositories{
		TxManager: txm,
		Items:     catalog_repo.NewInventoryRepo(txm),
		Movements: register_repo.NewStockRepo(txm),
		Audit:     postgres.NewAuditLog(txm, codec),
		Suppliers: catalog_repo.NewSupplierRepo(txm),
		Sales: sales.Repositories{
			Customers: catalog_repo.NewCustomerRepo(txm),
			Staff:     catalog_repo.NewStaffRepo(txm),
			Orders:    catalog_repo.NewOrderRepo(txm),
			Expenses:  catalog_repo.NewExpenseRepo(txm),
		},
		Promotions: catalog_repo.NewPromotionRepo(txm),
		Menu:       catalog_repo.NewMenuRepo(txm),
		close: func() {
			pool.LogStats(context.Background())
			pool.Close()
		},
		ping: pool.Ping,
	}
}

func migrate(databaseURL string, log *logger.Logger) error {
	m, err := migrations.New(databaseURL, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := m.Close(); err != nil {
			log.Warnw("close migrator", "error", err)
		}
	}()
	return m.Up()
}
