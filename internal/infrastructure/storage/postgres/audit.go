package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"backoffice/internal/core/id"
	"backoffice/internal/domain/audit"
)

const auditTable = "audit_log"

// auditRow is the stored form of audit.Entry. Exactly one of Changes and
// ChangesCompressed is set.
type auditRow struct {
	ID                id.ID                 `db:"id"`
	EntityType        string                `db:"entity_type"`
	EntityID          id.ID                 `db:"entity_id"`
	Action            audit.Action          `db:"action"`
	UserID            string                `db:"user_id"`
	Changes           []byte                `db:"changes"`
	ChangesCompressed []byte                `db:"changes_compressed"`
	CompressionAlgo   audit.CompressionAlgo `db:"compression_algo"`
	CreatedAt         time.Time             `db:"created_at"`
}

// AuditLog implements audit.Log on the audit_log table.
type AuditLog struct {
	txm     *TxManager
	codec   *audit.Codec
	builder squirrel.StatementBuilderType
}

var _ audit.Log = (*AuditLog)(nil)

// NewAuditLog creates an audit log that compresses large change sets with codec.
func NewAuditLog(txm *TxManager, codec *audit.Codec) *AuditLog {
	return &AuditLog{
		txm:     txm,
		codec:   codec,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (l *AuditLog) toRow(e audit.Entry) auditRow {
	row := auditRow{
		ID:         e.ID,
		EntityType: e.EntityType,
		EntityID:   e.EntityID,
		Action:     e.Action,
		UserID:     e.UserID,
		CreatedAt:  e.CreatedAt,
	}
	payload, algo := l.codec.Encode(e.Changes)
	row.CompressionAlgo = algo
	if algo == audit.CompressionNone {
		row.Changes = payload
	} else {
		row.ChangesCompressed = payload
	}
	return row
}

// Append records an audit entry.
func (l *AuditLog) Append(ctx context.Context, e audit.Entry) error {
	row := l.toRow(e)
	sql, args, err := l.builder.Insert(auditTable).
		Columns("id", "entity_type", "entity_id", "action", "user_id",
			"changes", "changes_compressed", "compression_algo", "created_at").
		Values(row.ID, row.EntityType, row.EntityID, row.Action, row.UserID,
			row.Changes, row.ChangesCompressed, row.CompressionAlgo, row.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := l.txm.GetQuerier(ctx).Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// History returns entries for one entity, newest first. limit <= 0 returns all.
func (l *AuditLog) History(ctx context.Context, entityType string, entityID id.ID, limit int) ([]audit.Entry, error) {
	q := l.builder.Select("id", "entity_type", "entity_id", "action", "user_id",
		"changes", "changes_compressed", "compression_algo", "created_at").
		From(auditTable).
		Where(squirrel.Eq{"entity_type": entityType, "entity_id": entityID}).
		OrderBy("created_at DESC", "id DESC")
	if limit > 0 {
		q = q.Limit(uint64(limit))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var rows []auditRow
	if err := pgxscan.Select(ctx, l.txm.GetQuerier(ctx), &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}

	entries := make([]audit.Entry, 0, len(rows))
	for _, row := range rows {
		payload := row.Changes
		if row.CompressionAlgo != audit.CompressionNone {
			payload = row.ChangesCompressed
		}
		changes, err := l.codec.Decode(payload, row.CompressionAlgo)
		if err != nil {
			return nil, err
		}
		entries = append(entries, audit.Entry{
			ID:         row.ID,
			EntityType: row.EntityType,
			EntityID:   row.EntityID,
			Action:     row.Action,
			UserID:     row.UserID,
			Changes:    changes,
			CreatedAt:  row.CreatedAt,
		})
	}
	return entries, nil
}
