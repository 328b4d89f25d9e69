package handlers

import (
	"github.com/gin-gonic/gin"

	"backoffice/internal/domain/sales"
	"backoffice/internal/infrastructure/http/v1/dto"
	"backoffice/pkg/aggregate"
)

// NewCustomerHandler creates the customer CRUD handler.
func NewCustomerHandler(base *BaseHandler, service *sales.Service) *CatalogHandler[*sales.Customer, dto.CreateCustomerRequest, dto.UpdateCustomerRequest] {
	return NewCatalogHandler(base, CatalogHandlerConfig[*sales.Customer, dto.CreateCustomerRequest, dto.UpdateCustomerRequest]{
		Service: service.Customers,
		MapCreateDTO: func(req dto.CreateCustomerRequest) *sales.Customer {
			return req.ToEntity()
		},
		MapUpdateDTO: func(req dto.UpdateCustomerRequest, existing *sales.Customer) *sales.Customer {
			req.ApplyTo(existing)
			return existing
		},
	})
}

// NewStaffHandler creates the staff CRUD handler.
func NewStaffHandler(base *BaseHandler, service *sales.Service) *CatalogHandler[*sales.StaffMember, dto.CreateStaffRequest, dto.UpdateStaffRequest] {
	return NewCatalogHandler(base, CatalogHandlerConfig[*sales.StaffMember, dto.CreateStaffRequest, dto.UpdateStaffRequest]{
		Service: service.Staff,
		MapCreateDTO: func(req dto.CreateStaffRequest) *sales.StaffMember {
			return req.ToEntity()
		},
		MapUpdateDTO: func(req dto.UpdateStaffRequest, existing *sales.StaffMember) *sales.StaffMember {
			req.ApplyTo(existing)
			return existing
		},
	})
}

// SalesHandler records orders and expenses. Both are immutable once
// recorded; a wrong record is deleted and re-entered.
type SalesHandler struct {
	*BaseHandler
	service *sales.Service
}

// NewSalesHandler creates a new sales handler.
func NewSalesHandler(base *BaseHandler, service *sales.Service) *SalesHandler {
	return &SalesHandler{
		BaseHandler: base,
		service:     service,
	}
}

// CreateOrder handles POST /orders
func (h *SalesHandler) CreateOrder(c *gin.Context) {
	var req dto.CreateOrderRequest
	if !h.BindJSON(c, &req) {
		return
	}

	order := req.ToEntity()
	if err := h.service.Orders.Create(c.Request.Context(), order); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, order)
}

// GetOrder handles GET /orders/:id
func (h *SalesHandler) GetOrder(c *gin.Context) {
	orderID, ok := h.ParamID(c)
	if !ok {
		return
	}

	order, err := h.service.Orders.GetByID(c.Request.Context(), orderID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, order)
}

// ListOrders handles GET /orders?from&to&branch
func (h *SalesHandler) ListOrders(c *gin.Context) {
	var q dto.RangeQuery
	if !h.BindQuery(c, &q) {
		return
	}

	orders, err := h.service.OrdersIn(c.Request.Context(), aggregate.DateRange{From: q.From, To: q.To}, q.Branch)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Page(c, orders, int64(len(orders)), 0, 0)
}

// DeleteOrder handles DELETE /orders/:id
func (h *SalesHandler) DeleteOrder(c *gin.Context) {
	orderID, ok := h.ParamID(c)
	if !ok {
		return
	}

	if err := h.service.Orders.Delete(c.Request.Context(), orderID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// CreateExpense handles POST /expenses
func (h *SalesHandler) CreateExpense(c *gin.Context) {
	var req dto.CreateExpenseRequest
	if !h.BindJSON(c, &req) {
		return
	}

	expense := req.ToEntity()
	if err := h.service.Expenses.Create(c.Request.Context(), expense); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, expense)
}

// ListExpenses handles GET /expenses?from&to&branch
func (h *SalesHandler) ListExpenses(c *gin.Context) {
	var q dto.RangeQuery
	if !h.BindQuery(c, &q) {
		return
	}

	expenses, err := h.service.ExpensesIn(c.Request.Context(), aggregate.DateRange{From: q.From, To: q.To}, q.Branch)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Page(c, expenses, int64(len(expenses)), 0, 0)
}

// DeleteExpense handles DELETE /expenses/:id
func (h *SalesHandler) DeleteExpense(c *gin.Context) {
	expenseID, ok := h.ParamID(c)
	if !ok {
		return
	}

	if err := h.service.Expenses.Delete(c.Request.Context(), expenseID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}
