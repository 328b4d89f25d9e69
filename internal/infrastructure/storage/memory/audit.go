package memory

import (
	"bytes"
	"context"

	"backoffice/internal/core/id"
	"backoffice/internal/domain/audit"
)

type storedEntry struct {
	entry   audit.Entry
	payload []byte
	algo    audit.CompressionAlgo
}

// AuditLog keeps audit entries with change sets encoded by the codec.
type AuditLog struct {
	store   *Store
	codec   *audit.Codec
	entries []storedEntry
}

// NewAuditLog creates an empty audit log.
func NewAuditLog(store *Store, codec *audit.Codec) *AuditLog {
	return &AuditLog{store: store, codec: codec}
}

func (l *AuditLog) Append(ctx context.Context, e audit.Entry) error {
	payload, algo := l.codec.Encode(e.Changes)
	payload = bytes.Clone(payload)
	e.Changes = nil
	return l.store.write(ctx, func() (func(), error) {
		l.entries = append(l.entries, storedEntry{entry: e, payload: payload, algo: algo})
		n := len(l.entries) - 1
		return func() { l.entries = l.entries[:n] }, nil
	})
}

// History returns entries for one entity, newest first.
func (l *AuditLog) History(ctx context.Context, entityType string, entityID id.ID, limit int) ([]audit.Entry, error) {
	var matched []storedEntry
	l.store.read(func() {
		for i := len(l.entries) - 1; i >= 0; i-- {
			se := l.entries[i]
			if se.entry.EntityType == entityType && se.entry.EntityID == entityID {
				matched = append(matched, se)
			}
			if limit > 0 && len(matched) == limit {
				break
			}
		}
	})

	out := make([]audit.Entry, 0, len(matched))
	for _, se := range matched {
		changes, err := l.codec.Decode(se.payload, se.algo)
		if err != nil {
			return nil, err
		}
		e := se.entry
		e.Changes = bytes.Clone(changes)
		out = append(out, e)
	}
	return out, nil
}
