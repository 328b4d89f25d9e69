package handlers

import (
	"github.com/gin-gonic/gin"

	"backoffice/internal/domain/inventory"
	"backoffice/internal/infrastructure/http/v1/dto"
)

// InventoryHandler handles inventory item endpoints.
type InventoryHandler struct {
	*BaseHandler
	service *inventory.Service
}

// NewInventoryHandler creates a new inventory handler.
func NewInventoryHandler(base *BaseHandler, service *inventory.Service) *InventoryHandler {
	return &InventoryHandler{
		BaseHandler: base,
		service:     service,
	}
}

// List handles GET /inventory
func (h *InventoryHandler) List(c *gin.Context) {
	var q dto.InventoryListQuery
	if !h.BindQuery(c, &q) {
		return
	}

	result, err := h.service.List(c.Request.Context(), q.ToFilter())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.Page(c, dto.FromInventoryItems(result.Items), result.TotalCount, result.Limit, result.Offset)
}

// Get handles GET /inventory/:id
func (h *InventoryHandler) Get(c *gin.Context) {
	itemID, ok := h.ParamID(c)
	if !ok {
		return
	}

	item, err := h.service.Get(c.Request.Context(), itemID)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromInventoryItem(item))
}

// Create handles POST /inventory
func (h *InventoryHandler) Create(c *gin.Context) {
	var req dto.CreateInventoryItemRequest
	if !h.BindJSON(c, &req) {
		return
	}

	item := req.ToEntity()
	if err := h.service.Create(c.Request.Context(), item); err != nil {
		h.Error(c, err)
		return
	}
	h.Created(c, dto.FromInventoryItem(item))
}

// Update handles PUT /inventory/:id
func (h *InventoryHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	itemID, ok := h.ParamID(c)
	if !ok {
		return
	}

	var req dto.UpdateInventoryItemRequest
	if !h.BindJSON(c, &req) {
		return
	}

	item, err := h.service.Get(ctx, itemID)
	if err != nil {
		h.Error(c, err)
		return
	}
	req.ApplyTo(item)

	if err := h.service.Update(ctx, item); err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromInventoryItem(item))
}

// Delete handles DELETE /inventory/:id
func (h *InventoryHandler) Delete(c *gin.Context) {
	itemID, ok := h.ParamID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), itemID); err != nil {
		h.Error(c, err)
		return
	}
	h.NoContent(c)
}

// History handles GET /inventory/:id/history
func (h *InventoryHandler) History(c *gin.Context) {
	itemID, ok := h.ParamID(c)
	if !ok {
		return
	}

	entries, err := h.service.History(c.Request.Context(), itemID, h.ParseIntQuery(c, "limit", 100))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, gin.H{"itemId": itemID, "entries": entries})
}
