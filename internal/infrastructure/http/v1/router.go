// Package v1 provides HTTP API version 1.
package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"backoffice/internal/domain/alerts"
	"backoffice/internal/domain/inventory"
	"backoffice/internal/domain/menu"
	"backoffice/internal/domain/promotions"
	"backoffice/internal/domain/registers/stock"
	"backoffice/internal/domain/reports"
	"backoffice/internal/domain/sales"
	"backoffice/internal/domain/supplier"
	"backoffice/internal/infrastructure/http/v1/handlers"
	"backoffice/internal/infrastructure/http/v1/middleware"
	"backoffice/pkg/logger"
)

// RouterConfig holds the services the API exposes.
type RouterConfig struct {
	// Logger for request logging
	Logger *logger.Logger

	// Metrics records request counts; MetricsHandler serves /metrics. Both optional.
	Metrics        middleware.HTTPObserver
	MetricsHandler http.Handler

	// JWTValidator identifies callers from bearer tokens. Optional.
	JWTValidator middleware.JWTValidator

	// Readiness checks by name, e.g. "database", "redis".
	HealthChecks map[string]handlers.Pinger

	Inventory  *inventory.Service
	Recorder   *stock.Recorder
	Ledger     *stock.Ledger
	Alerts     *alerts.Service
	Suppliers  *supplier.Service
	Sales      *sales.Service
	Promotions *promotions.Service
	Menu       *menu.Service
	Reports    *reports.Service

	// Navigator holds the menu screen state. A fresh one is used when nil.
	Navigator *menu.Navigator

	Development bool
}

// NewRouter creates and configures the Gin router.
func NewRouter(cfg RouterConfig) *gin.Engine {
	if cfg.Development {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.NewNop()
	}
	middleware.SetupValidator()

	router := gin.New()

	// Global middleware (order matters!)
	router.Use(middleware.Recovery())
	router.Use(middleware.Trace())
	router.Use(middleware.Logger(cfg.Logger))
	if cfg.Metrics != nil {
		router.Use(middleware.Metrics(cfg.Metrics))
	}
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.OptionalAuth(cfg.JWTValidator))

	healthHandler := handlers.NewHealthHandler(cfg.HealthChecks)
	health := router.Group("/health")
	{
		health.GET("/live", healthHandler.Live)
		health.GET("/ready", healthHandler.Ready)
	}
	if cfg.MetricsHandler != nil {
		router.GET("/metrics", gin.WrapH(cfg.MetricsHandler))
	}

	base := handlers.NewBaseHandler()
	api := router.Group("/api/v1")
	{
		api.GET("/auth/me", handlers.NewAuthHandler(base).Me)

		registerInventoryRoutes(api, base, cfg)
		registerStockRoutes(api, base, cfg)
		registerAlertRoutes(api, base, cfg)
		registerSupplierRoutes(api, base, cfg)
		registerSalesRoutes(api, base, cfg)
		registerPromotionRoutes(api, base, cfg)
		registerMenuRoutes(api, base, cfg)
		registerReportRoutes(api, base, cfg)
	}

	return router
}

func registerInventoryRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	if cfg.Inventory == nil {
		return
	}
	h := handlers.NewInventoryHandler(base, cfg.Inventory)
	items := rg.Group("/inventory")
	RegisterCatalogRoutes(items, h)
	items.GET("/:id/history", h.History)
}

func registerStockRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	if cfg.Recorder == nil || cfg.Ledger == nil {
		return
	}
	h := handlers.NewStockHandler(base, cfg.Recorder, cfg.Ledger)
	g := rg.Group("/stock")
	{
		g.POST("/movements", h.RecordMovement)
		g.GET("/movements", h.GetMovements)
		g.GET("/items/:id/movements", h.GetItemHistory)
		g.GET("/items/:id/turnover", h.GetTurnover)
		g.GET("/valuation", h.GetValuation)
		g.GET("/reconcile", h.Reconcile)
	}
}

func registerAlertRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	if cfg.Alerts == nil {
		return
	}
	h := handlers.NewAlertsHandler(base, cfg.Alerts)
	g := rg.Group("/alerts")
	{
		g.GET("/low-stock", h.LowStock)
		g.POST("/items/:id/notify", h.NotifySupplier)
		g.POST("/scan", h.Scan)
	}
}

func registerSupplierRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	if cfg.Suppliers == nil || cfg.Ledger == nil {
		return
	}
	h := handlers.NewSupplierHandler(base, cfg.Suppliers, cfg.Ledger)
	g := rg.Group("/suppliers")
	RegisterCatalogRoutes(g, h)
	g.GET("/:id/metrics", h.Metrics)
}

func registerSalesRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	if cfg.Sales == nil {
		return
	}
	RegisterCatalogRoutes(rg.Group("/customers"), handlers.NewCustomerHandler(base, cfg.Sales))
	RegisterCatalogRoutes(rg.Group("/staff"), handlers.NewStaffHandler(base, cfg.Sales))

	h := handlers.NewSalesHandler(base, cfg.Sales)
	orders := rg.Group("/orders")
	{
		orders.GET("", h.ListOrders)
		orders.POST("", h.CreateOrder)
		orders.GET("/:id", h.GetOrder)
		orders.DELETE("/:id", h.DeleteOrder)
	}
	expenses := rg.Group("/expenses")
	{
		expenses.GET("", h.ListExpenses)
		expenses.POST("", h.CreateExpense)
		expenses.DELETE("/:id", h.DeleteExpense)
	}
}

func registerPromotionRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	if cfg.Promotions == nil {
		return
	}
	h := handlers.NewPromotionHandler(base, cfg.Promotions)
	g := rg.Group("/promotions")
	g.GET("/active", h.Active)
	RegisterCatalogRoutes(g, h)
}

func registerMenuRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	if cfg.Menu == nil {
		return
	}
	h := handlers.NewMenuHandler(base, cfg.Menu, cfg.Navigator)
	g := rg.Group("/menu")
	g.GET("/categories", h.Categories)
	g.GET("/analytics", h.Analytics)
	g.GET("/view", h.CurrentView)
	g.GET("/views/:mode", h.SwitchView)
	RegisterCatalogRoutes(g.Group("/items"), h)
}

func registerReportRoutes(rg *gin.RouterGroup, base *handlers.BaseHandler, cfg RouterConfig) {
	if cfg.Reports == nil {
		return
	}
	h := handlers.NewReportsHandler(base, cfg.Reports)
	g := rg.Group("/reports")
	{
		g.GET("/sales-by-category", h.SalesByCategory)
		g.GET("/top-items", h.TopMenuItems)
		g.GET("/customer-segments", h.CustomerSegments)
		g.GET("/top-customers", h.TopCustomers)
		g.GET("/expenses", h.ExpensesByCategory)
		g.GET("/staff", h.StaffPerformance)
		g.GET("/dashboard", h.Dashboard)
	}
}
