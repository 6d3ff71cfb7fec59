package memory

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/flashdeck-backend/internal/domain"
)

// NotificationRepo is the owner notification outbox.
type NotificationRepo struct {
	s *Store
}

// Enqueue stores a notification for its recipient.
func (r *NotificationRepo) Enqueue(ctx context.Context, n domain.Notification) error {
	return r.s.write(ctx, func(st *state) error {
		if n.ID == uuid.Nil {
			n.ID = uuid.New()
		}
		if n.CreatedAt.IsZero() {
			n.CreatedAt = r.s.stamp()
		}
		st.notifications = append(st.notifications, n)
		return nil
	})
}

// ListByUser returns the newest notifications of a user.
func (r *NotificationRepo) ListByUser(_ context.Context, userID uuid.UUID, limit int) ([]domain.Notification, error) {
	var out []domain.Notification
	err := r.s.read(func(st *state) error {
		for _, n := range slices.Backward(st.notifications) {
			if n.UserID != userID {
				continue
			}
			out = append(out, n)
		}
		slices.SortStableFunc(out, func(a, b domain.Notification) int {
			return b.CreatedAt.Compare(a.CreatedAt)
		})
		if limit > 0 && len(out) > limit {
			out = out[:limit]
		}
		return nil
	})
	return out, err
}

// PurgeOlderThan deletes notifications created before cutoff.
func (r *NotificationRepo) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	var n int64
	err := r.s.write(ctx, func(st *state) error {
		kept := st.notifications[:0]
		for _, item := range st.notifications {
			if item.CreatedAt.Before(cutoff) {
				n++
				continue
			}
			kept = append(kept, item)
		}
		st.notifications = kept
		return nil
	})
	return n, err
}
