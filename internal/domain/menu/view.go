package menu

import (
	"sync"

	"backoffice/internal/core/apperror"
	"backoffice/internal/core/id"
)

// Mode names a menu screen.
type Mode string

const (
	ModeList       Mode = "list"
	ModeForm       Mode = "form"
	ModeDetails    Mode = "details"
	ModeCategories Mode = "categories"
	ModeAnalytics  Mode = "analytics"
)

// View is the current menu screen. Exactly one of the concrete types below.
type View interface {
	Mode() Mode
	view()
}

// ListView shows all items.
type ListView struct{}

// FormView edits an item, or creates one when Editing is nil.
type FormView struct {
	Editing *id.ID
}

// DetailsView shows a single item.
type DetailsView struct {
	ItemID id.ID
}

// CategoriesView shows the per-category summary.
type CategoriesView struct{}

// AnalyticsView shows menu-wide figures.
type AnalyticsView struct{}

func (ListView) Mode() Mode       { return ModeList }
func (FormView) Mode() Mode       { return ModeForm }
func (DetailsView) Mode() Mode    { return ModeDetails }
func (CategoriesView) Mode() Mode { return ModeCategories }
func (AnalyticsView) Mode() Mode  { return ModeAnalytics }

func (ListView) view()       {}
func (FormView) view()       {}
func (DetailsView) view()    {}
func (CategoriesView) view() {}
func (AnalyticsView) view()  {}

// ParseView builds a view from its mode name. Details requires itemID;
// form uses it when editing.
func ParseView(mode string, itemID *id.ID) (View, error) {
	switch Mode(mode) {
	case ModeList:
		return ListView{}, nil
	case ModeForm:
		return FormView{Editing: itemID}, nil
	case ModeDetails:
		if itemID == nil {
			return nil, apperror.NewFieldValidation("itemId", "details view requires an item id")
		}
		return DetailsView{ItemID: *itemID}, nil
	case ModeCategories:
		return CategoriesView{}, nil
	case ModeAnalytics:
		return AnalyticsView{}, nil
	}
	return nil, apperror.NewValidation("unknown view mode " + mode)
}

// Navigator holds the current view and the selected item.
type Navigator struct {
	mu       sync.Mutex
	current  View
	selected *id.ID
}

// NewNavigator starts on the list view with nothing selected.
func NewNavigator() *Navigator {
	return &Navigator{current: ListView{}}
}

// Current returns the active view.
func (n *Navigator) Current() View {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

// Select marks an item as selected.
func (n *Navigator) Select(itemID id.ID) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.selected = &itemID
}

// Selected returns the selected item, if any.
func (n *Navigator) Selected() *id.ID {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.selected
}

// Switch replaces the current view and clears the selection.
func (n *Navigator) Switch(v View) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.current = v
	n.selected = nil
}
