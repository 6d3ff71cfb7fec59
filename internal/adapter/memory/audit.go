package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/heartmarshall/flashdeck-backend/internal/domain"
)

// AuditRepo is an append-only audit log.
type AuditRepo struct {
	s *Store
}

// Log appends a record.
func (r *AuditRepo) Log(ctx context.Context, record domain.AuditRecord) error {
	return r.s.write(ctx, func(st *state) error {
		if record.ID == uuid.Nil {
			record.ID = uuid.New()
		}
		if record.CreatedAt.IsZero() {
			record.CreatedAt = r.s.stamp()
		}
		if record.Changes == nil {
			record.Changes = map[string]any{}
		}
		st.audit = append(st.audit, record)
		return nil
	})
}

// GetByEntity returns the newest records of an entity.
func (r *AuditRepo) GetByEntity(_ context.Context, entityType domain.EntityType, entityID uuid.UUID, limit int) ([]domain.AuditRecord, error) {
	var out []domain.AuditRecord
	err := r.s.read(func(st *state) error {
		for i := len(st.audit) - 1; i >= 0; i-- {
			rec := st.audit[i]
			if rec.EntityType != entityType || rec.EntityID == nil || *rec.EntityID != entityID {
				continue
			}
			out = append(out, rec)
			if limit > 0 && len(out) == limit {
				break
			}
		}
		return nil
	})
	return out, err
}
