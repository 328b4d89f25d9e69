package handlers

import (
	"github.com/gin-gonic/gin"

	"backoffice/internal/domain/menu"
	"backoffice/internal/infrastructure/http/v1/dto"
)

// MenuHandler serves menu CRUD and the back-office menu screens.
type MenuHandler struct {
	*CatalogHandler[*menu.MenuItem, dto.CreateMenuItemRequest, dto.UpdateMenuItemRequest]
	service   *menu.Service
	navigator *menu.Navigator
}

// NewMenuHandler creates a new menu handler.
func NewMenuHandler(base *BaseHandler, service *menu.Service, navigator *menu.Navigator) *MenuHandler {
	catalog := NewCatalogHandler(base, CatalogHandlerConfig[*menu.MenuItem, dto.CreateMenuItemRequest, dto.UpdateMenuItemRequest]{
		Service: service,
		MapCreateDTO: func(req dto.CreateMenuItemRequest) *menu.MenuItem {
			return req.ToEntity()
		},
		MapUpdateDTO: func(req dto.UpdateMenuItemRequest, existing *menu.MenuItem) *menu.MenuItem {
			req.ApplyTo(existing)
			return existing
		},
	})
	if navigator == nil {
		navigator = menu.NewNavigator()
	}
	return &MenuHandler{CatalogHandler: catalog, service: service, navigator: navigator}
}

// Categories handles GET /menu/categories
func (h *MenuHandler) Categories(c *gin.Context) {
	cats, err := h.service.Categories(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, cats)
}

// Analytics handles GET /menu/analytics
func (h *MenuHandler) Analytics(c *gin.Context) {
	a, err := h.service.Analytics(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, a)
}

// SwitchView handles GET /menu/views/:mode. It makes the view current and
// renders it; details and form views take ?itemId=.
func (h *MenuHandler) SwitchView(c *gin.Context) {
	var q dto.MenuViewQuery
	if !h.BindQuery(c, &q) {
		return
	}
	itemID, ok := h.QueryID(c, "itemId")
	if !ok {
		return
	}

	view, err := menu.ParseView(c.Param("mode"), itemID)
	if err != nil {
		h.Error(c, err)
		return
	}

	screen, err := h.service.Render(c.Request.Context(), view)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.navigator.Switch(view)
	if itemID != nil {
		h.navigator.Select(*itemID)
	}
	h.OK(c, screen)
}

// CurrentView handles GET /menu/view
func (h *MenuHandler) CurrentView(c *gin.Context) {
	screen, err := h.service.Render(c.Request.Context(), h.navigator.Current())
	if err != nil {
		h.Error(c, err)
		return
	}
	h.OK(c, gin.H{"screen": screen, "selected": h.navigator.Selected()})
}
