package handlers

import (
	"github.com/gin-gonic/gin"

	"backoffice/internal/core/apperror"
	"backoffice/internal/domain/alerts"
	"backoffice/internal/infrastructure/http/v1/dto"
)

// AlertsHandler handles low-stock alerts and supplier notification.
type AlertsHandler struct {
	*BaseHandler
	service *alerts.Service
}

// NewAlertsHandler creates a new alerts handler.
func NewAlertsHandler(base *BaseHandler, service *alerts.Service) *AlertsHandler {
	return &AlertsHandler{
		BaseHandler: base,
		service:     service,
	}
}

// NotifyRequest optionally overrides the composed message.
type NotifyRequest struct {
	Message string `json:"message"`
}

// LowStock handles GET /alerts/low-stock
func (h *AlertsHandler) LowStock(c *gin.Context) {
	branch := c.Query("branch")
	a, err := h.service.LowStock(c.Request.Context(), branch)
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, dto.FromAlerts(branch, a))
}

// NotifySupplier handles POST /alerts/items/:id/notify. A delivery failure
// returns NOTIFICATION_FAILED with the attempted notification in details.
func (h *AlertsHandler) NotifySupplier(c *gin.Context) {
	itemID, ok := h.ParamID(c)
	if !ok {
		return
	}

	var req NotifyRequest
	if c.Request.ContentLength != 0 && !h.BindJSON(c, &req) {
		return
	}

	n, err := h.service.NotifySupplier(c.Request.Context(), itemID, req.Message)
	if err != nil {
		if appErr, ok := apperror.AsAppError(err); ok && n != nil {
			err = appErr.WithDetail("message", n.Message)
		}
		h.Error(c, err)
		return
	}
	h.OK(c, n)
}

// Scan handles POST /alerts/scan
func (h *AlertsHandler) Scan(c *gin.Context) {
	report, err := h.service.ScanAndNotify(c.Request.Context(), c.Query("branch"))
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, report)
}
