package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"backoffice/internal/domain/reports"
	"backoffice/internal/infrastructure/http/v1/dto"
)

// ReportsHandler handles HTTP requests for reports.
type ReportsHandler struct {
	*BaseHandler
	service *reports.Service
	now     func() time.Time
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(base *BaseHandler, service *reports.Service) *ReportsHandler {
	return &ReportsHandler{
		BaseHandler: base,
		service:     service,
		now:         time.Now,
	}
}

func (h *ReportsHandler) filter(c *gin.Context) (reports.Filter, bool) {
	var q dto.ReportQuery
	if !h.BindQuery(c, &q) {
		return reports.Filter{}, false
	}
	return q.ToFilter(reports.DefaultRange(h.now())), true
}

// report runs fn with the request's filter and writes its result.
func report[R any](h *ReportsHandler, c *gin.Context, fn func(*gin.Context, reports.Filter) (R, error)) {
	f, ok := h.filter(c)
	if !ok {
		return
	}
	res, err := fn(c, f)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, res)
}

// SalesByCategory handles GET /reports/sales-by-category
func (h *ReportsHandler) SalesByCategory(c *gin.Context) {
	report(h, c, func(c *gin.Context, f reports.Filter) (*reports.GroupReport, error) {
		return h.service.SalesByCategory(c.Request.Context(), f)
	})
}

// TopMenuItems handles GET /reports/top-items
func (h *ReportsHandler) TopMenuItems(c *gin.Context) {
	report(h, c, func(c *gin.Context, f reports.Filter) ([]reports.MenuItemSales, error) {
		return h.service.TopMenuItems(c.Request.Context(), f)
	})
}

// CustomerSegments handles GET /reports/customer-segments
func (h *ReportsHandler) CustomerSegments(c *gin.Context) {
	report(h, c, func(c *gin.Context, f reports.Filter) ([]reports.SegmentSummary, error) {
		return h.service.CustomerSegments(c.Request.Context(), f)
	})
}

// TopCustomers handles GET /reports/top-customers
func (h *ReportsHandler) TopCustomers(c *gin.Context) {
	report(h, c, func(c *gin.Context, f reports.Filter) ([]reports.CustomerSpend, error) {
		return h.service.TopCustomers(c.Request.Context(), f)
	})
}

// ExpensesByCategory handles GET /reports/expenses
func (h *ReportsHandler) ExpensesByCategory(c *gin.Context) {
	report(h, c, func(c *gin.Context, f reports.Filter) (*reports.GroupReport, error) {
		return h.service.ExpensesByCategory(c.Request.Context(), f)
	})
}

// StaffPerformance handles GET /reports/staff
func (h *ReportsHandler) StaffPerformance(c *gin.Context) {
	report(h, c, func(c *gin.Context, f reports.Filter) ([]reports.StaffPerformance, error) {
		return h.service.StaffPerformance(c.Request.Context(), f)
	})
}

// Dashboard handles GET /reports/dashboard
func (h *ReportsHandler) Dashboard(c *gin.Context) {
	report(h, c, func(c *gin.Context, f reports.Filter) (*reports.Dashboard, error) {
		return h.service.Dashboard(c.Request.Context(), f)
	})
}
