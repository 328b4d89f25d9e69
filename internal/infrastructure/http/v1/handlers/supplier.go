package handlers

import (
	"github.com/gin-gonic/gin"

	"backoffice/internal/domain/registers/stock"
	"backoffice/internal/domain/supplier"
	"backoffice/internal/infrastructure/http/v1/dto"
)

// SupplierHandler serves supplier CRUD. Single reads carry the
// receipt-derived lastDelivery and totalSpend.
type SupplierHandler struct {
	*CatalogHandler[*supplier.Supplier, dto.CreateSupplierRequest, dto.UpdateSupplierRequest]
	service *supplier.Service
	ledger  *stock.Ledger
}

// NewSupplierHandler creates a new supplier handler.
func NewSupplierHandler(base *BaseHandler, service *supplier.Service, ledger *stock.Ledger) *SupplierHandler {
	catalog := NewCatalogHandler(base, CatalogHandlerConfig[*supplier.Supplier, dto.CreateSupplierRequest, dto.UpdateSupplierRequest]{
		Service: service,
		MapCreateDTO: func(req dto.CreateSupplierRequest) *supplier.Supplier {
			return req.ToEntity()
		},
		MapUpdateDTO: func(req dto.UpdateSupplierRequest, existing *supplier.Supplier) *supplier.Supplier {
			req.ApplyTo(existing)
			return existing
		},
	})
	return &SupplierHandler{CatalogHandler: catalog, service: service, ledger: ledger}
}

// Get handles GET /suppliers/:id
func (h *SupplierHandler) Get(c *gin.Context) {
	supplierID, ok := h.ParamID(c)
	if !ok {
		return
	}

	s, err := h.service.GetWithMetrics(c.Request.Context(), supplierID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, s)
}

// Metrics handles GET /suppliers/:id/metrics
func (h *SupplierHandler) Metrics(c *gin.Context) {
	supplierID, ok := h.ParamID(c)
	if !ok {
		return
	}

	if _, err := h.service.GetByID(c.Request.Context(), supplierID); err != nil {
		h.Error(c, err)
		return
	}
	metrics, err := h.ledger.SupplierMetrics(c.Request.Context(), supplierID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, metrics)
}
