// Package audit records who changed what on stored entities.
package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"reflect"
	"time"

	appctx "backoffice/internal/core/context"
	"backoffice/internal/core/entity"
	"backoffice/internal/core/id"
	"backoffice/internal/domain"
	"backoffice/pkg/logger"
)

// Action represents the type of audited operation.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Entry is a single audit log record. Changes holds plain JSON; stores may
// keep it compressed (see Codec).
type Entry struct {
	ID         id.ID           `db:"id" json:"id"`
	EntityType string          `db:"entity_type" json:"entityType"`
	EntityID   id.ID           `db:"entity_id" json:"entityId"`
	Action     Action          `db:"action" json:"action"`
	UserID     string          `db:"user_id" json:"userId"`
	Changes    json.RawMessage `db:"changes" json:"changes"`
	CreatedAt  time.Time       `db:"created_at" json:"createdAt"`
}

// Log persists and reads audit entries.
type Log interface {
	Append(ctx context.Context, entry Entry) error
	History(ctx context.Context, entityType string, entityID id.ID, limit int) ([]Entry, error)
}

// NewEntry builds an entry stamped with the acting user and current time.
func NewEntry(ctx context.Context, entityType string, entityID id.ID, action Action, changes map[string]any) (Entry, error) {
	raw, err := json.Marshal(changes)
	if err != nil {
		return Entry{}, fmt.Errorf("marshal changes: %w", err)
	}
	return Entry{
		ID:         id.New(),
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		UserID:     appctx.ActingUser(ctx),
		Changes:    raw,
		CreatedAt:  time.Now().UTC(),
	}, nil
}

// Record builds and appends an entry in one call.
func Record(ctx context.Context, log Log, entityType string, entityID id.ID, action Action, changes map[string]any) error {
	entry, err := NewEntry(ctx, entityType, entityID, action, changes)
	if err != nil {
		return err
	}
	return log.Append(ctx, entry)
}

// Diff returns {field: {old, new}} for every field that differs.
func Diff(oldState, newState map[string]any) map[string]any {
	changes := make(map[string]any)
	for key, newVal := range newState {
		oldVal, exists := oldState[key]
		if !exists || !sameValue(oldVal, newVal) {
			changes[key] = map[string]any{"old": oldVal, "new": newVal}
		}
	}
	for key, oldVal := range oldState {
		if _, exists := newState[key]; !exists {
			changes[key] = map[string]any{"old": oldVal, "new": nil}
		}
	}
	delete(changes, "version")
	delete(changes, "updated_at")
	return changes
}

// sameValue compares by JSON form when values differ structurally, so equal
// decimals and times with different internal representations match.
func sameValue(a, b any) bool {
	if reflect.DeepEqual(a, b) {
		return true
	}
	ja, errA := json.Marshal(a)
	jb, errB := json.Marshal(b)
	return errA == nil && errB == nil && bytes.Equal(ja, jb)
}

// Attach registers create/delete auditing on a catalog service's hooks.
// Failures are logged; the audited operation has already committed.
func Attach[T domain.Entity](hooks *domain.HookRegistry[T], log Log, entityType string) {
	hooks.OnAfterCreate(func(ctx context.Context, e T) error {
		if err := Record(ctx, log, entityType, e.GetID(), ActionCreate, entity.Fields(e)); err != nil {
			logger.Warn(ctx, "audit create failed", "entity", entityType, "error", err)
		}
		return nil
	})
	hooks.OnAfterDelete(func(ctx context.Context, e T) error {
		if err := Record(ctx, log, entityType, e.GetID(), ActionDelete, nil); err != nil {
			logger.Warn(ctx, "audit delete failed", "entity", entityType, "error", err)
		}
		return nil
	})
}
