package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"backoffice/internal/domain/promotions"
	"backoffice/internal/domain/sales"
	"backoffice/internal/infrastructure/http/v1/dto"
	"backoffice/pkg/aggregate"
)

// PromotionHandler serves promotion CRUD and the active listing.
type PromotionHandler struct {
	*CatalogHandler[*promotions.Promotion, dto.CreatePromotionRequest, dto.UpdatePromotionRequest]
	service *promotions.Service
}

// NewPromotionHandler creates a new promotion handler.
func NewPromotionHandler(base *BaseHandler, service *promotions.Service) *PromotionHandler {
	catalog := NewCatalogHandler(base, CatalogHandlerConfig[*promotions.Promotion, dto.CreatePromotionRequest, dto.UpdatePromotionRequest]{
		Service: service,
		MapCreateDTO: func(req dto.CreatePromotionRequest) *promotions.Promotion {
			return req.ToEntity()
		},
		MapUpdateDTO: func(req dto.UpdatePromotionRequest, existing *promotions.Promotion) *promotions.Promotion {
			req.ApplyTo(existing)
			return existing
		},
	})
	return &PromotionHandler{CatalogHandler: catalog, service: service}
}

// Active handles GET /promotions/active?date&segment. Date defaults to today.
func (h *PromotionHandler) Active(c *gin.Context) {
	var q dto.ActivePromotionsQuery
	if !h.BindQuery(c, &q) {
		return
	}
	if q.Date == "" {
		q.Date = time.Now().UTC().Format(aggregate.DateLayout)
	}

	items, err := h.service.ListActive(c.Request.Context(), q.Date, sales.Segment(q.Segment))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, gin.H{"date": q.Date, "items": items})
}
