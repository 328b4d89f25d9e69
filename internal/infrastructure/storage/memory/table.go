package memory

import (
	"context"
	"slices"
	"strings"

	"backoffice/internal/core/apperror"
	"backoffice/internal/core/entity"
	"backoffice/internal/core/id"
	"backoffice/internal/domain"
	"backoffice/internal/domain/filter"
)

// Table is a generic in-memory catalog repository. Rows keep insertion order.
type Table[T domain.Entity] struct {
	store   *Store
	name    string
	columns map[string]bool
	rows    map[id.ID]T
	order   []id.ID
}

// NewTable creates an empty table named name (used in error messages).
func NewTable[T domain.Entity](store *Store, name string) *Table[T] {
	cols := make(map[string]bool)
	for _, c := range entity.Columns[T]() {
		cols[c] = true
	}
	return &Table[T]{
		store:   store,
		name:    name,
		columns: cols,
		rows:    make(map[id.ID]T),
	}
}

// Create inserts a copy of e.
func (t *Table[T]) Create(ctx context.Context, e T) error {
	return t.store.write(ctx, func() (func(), error) {
		key := e.GetID()
		if _, exists := t.rows[key]; exists {
			return nil, apperror.NewConflict(t.name + " already exists").WithDetail("id", key.String())
		}
		t.rows[key] = clone(e)
		t.order = append(t.order, key)
		return func() {
			delete(t.rows, key)
			t.order = slices.DeleteFunc(t.order, func(k id.ID) bool { return k == key })
		}, nil
	})
}

// GetByID returns a copy of the row.
func (t *Table[T]) GetByID(ctx context.Context, entityID id.ID) (T, error) {
	var (
		out T
		ok  bool
	)
	t.store.read(func() {
		var row T
		if row, ok = t.rows[entityID]; ok {
			out = clone(row)
		}
	})
	if !ok {
		return out, apperror.NewNotFound(t.name, entityID.String())
	}
	return out, nil
}

// Update replaces the row if e carries the stored version, then advances
// e's version and timestamp. Rolling back the surrounding transaction puts
// both the row and e's version back.
func (t *Table[T]) Update(ctx context.Context, e T) error {
	return t.store.write(ctx, func() (func(), error) {
		key := e.GetID()
		prev, ok := t.rows[key]
		if !ok {
			return nil, apperror.NewNotFound(t.name, key.String())
		}
		if prev.GetVersion() != e.GetVersion() {
			return nil, apperror.NewConcurrentModification(t.name, key)
		}
		version := e.GetVersion()
		e.Touch()
		t.rows[key] = clone(e)
		return func() {
			t.rows[key] = prev
			e.SetVersion(version)
		}, nil
	})
}

// Delete removes the row.
func (t *Table[T]) Delete(ctx context.Context, entityID id.ID) error {
	return t.store.write(ctx, func() (func(), error) {
		prev, ok := t.rows[entityID]
		if !ok {
			return nil, apperror.NewNotFound(t.name, entityID.String())
		}
		pos := slices.Index(t.order, entityID)
		delete(t.rows, entityID)
		t.order = slices.Delete(t.order, pos, pos+1)
		return func() {
			t.rows[entityID] = prev
			t.order = slices.Insert(t.order, pos, entityID)
		}, nil
	})
}

// List filters, sorts and paginates. Limit <= 0 returns every match.
func (t *Table[T]) List(ctx context.Context, f domain.ListFilter) (domain.ListResult[T], error) {
	res := domain.ListResult[T]{Limit: f.Limit, Offset: f.Offset}

	for _, c := range f.Conditions {
		if !t.columns[c.Field] {
			return res, apperror.NewValidation("invalid filter column: " + c.Field)
		}
	}
	field, desc := strings.CutPrefix(f.OrderBy, "-")
	if field != "" && !t.columns[field] {
		return res, apperror.NewValidation("invalid order column: " + field)
	}

	var matched []T
	t.store.read(func() {
		for _, key := range t.order {
			row := t.rows[key]
			if !matchSearch(row, f.Search) || !filter.Match(entity.Fields(row), f.Conditions) {
				continue
			}
			matched = append(matched, clone(row))
		}
	})

	if field != "" {
		slices.SortStableFunc(matched, func(a, b T) int {
			c := filter.Compare(entity.Fields(a)[field], entity.Fields(b)[field])
			if desc {
				return -c
			}
			return c
		})
	}

	res.TotalCount = int64(len(matched))
	res.Items = page(matched, f.Limit, f.Offset)
	return res, nil
}

// Snapshot returns copies of every row in insertion order.
func (t *Table[T]) Snapshot() []T {
	var out []T
	t.store.read(func() {
		out = make([]T, 0, len(t.order))
		for _, key := range t.order {
			out = append(out, clone(t.rows[key]))
		}
	})
	return out
}

func matchSearch(row any, search string) bool {
	if search == "" {
		return true
	}
	s, ok := row.(domain.Searchable)
	if !ok {
		return true
	}
	needle := strings.ToLower(search)
	for _, term := range s.SearchTerms() {
		if strings.Contains(strings.ToLower(term), needle) {
			return true
		}
	}
	return false
}

func page[T any](items []T, limit, offset int) []T {
	if items == nil {
		items = []T{}
	}
	if offset > len(items) {
		offset = len(items)
	}
	if offset > 0 {
		items = items[offset:]
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
