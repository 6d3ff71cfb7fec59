// Package notification implements the owner notification outbox using
// PostgreSQL. Delivery is done by another process reading the table.
package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/flashdeck-backend/internal/adapter/postgres"
	"github.com/heartmarshall/flashdeck-backend/internal/domain"
)

// Repo provides notification persistence backed by PostgreSQL.
type Repo struct {
	db postgres.DB
}

// New creates a new notification repository.
func New(db postgres.DB) *Repo {
	return &Repo{db: db}
}

const (
	insertSQL = `
INSERT INTO notifications (id, user_id, kind, entity_type, entity_id, message, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`

	listByUserSQL = `
SELECT id, user_id, kind, entity_type, entity_id, message, created_at
FROM notifications WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2`

	purgeSQL = `DELETE FROM notifications WHERE created_at < $1`
)

type notificationRow struct {
	ID         uuid.UUID `db:"id"`
	UserID     uuid.UUID `db:"user_id"`
	Kind       string    `db:"kind"`
	EntityType string    `db:"entity_type"`
	EntityID   uuid.UUID `db:"entity_id"`
	Message    string    `db:"message"`
	CreatedAt  time.Time `db:"created_at"`
}

// Enqueue stores a notification for its recipient.
func (r *Repo) Enqueue(ctx context.Context, n domain.Notification) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = postgres.Now()
	}

	_, err := q.Exec(ctx, insertSQL,
		n.ID, n.UserID, string(n.Kind), string(n.EntityType), n.EntityID, n.Message, n.CreatedAt,
	)
	if err != nil {
		return postgres.MapError(err, "notification", n.ID)
	}
	return nil
}

// ListByUser returns the newest notifications of a user.
func (r *Repo) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Notification, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var rows []notificationRow
	if err := pgxscan.Select(ctx, q, &rows, listByUserSQL, userID, limit); err != nil {
		return nil, fmt.Errorf("list notifications of user %s: %w", userID, err)
	}

	out := make([]domain.Notification, len(rows))
	for i, row := range rows {
		out[i] = domain.Notification{
			ID:         row.ID,
			UserID:     row.UserID,
			Kind:       domain.NotificationKind(row.Kind),
			EntityType: domain.EntityType(row.EntityType),
			EntityID:   row.EntityID,
			Message:    row.Message,
			CreatedAt:  row.CreatedAt,
		}
	}
	return out, nil
}

// PurgeOlderThan deletes notifications created before cutoff.
func (r *Repo) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	tag, err := q.Exec(ctx, purgeSQL, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge notifications: %w", err)
	}
	return tag.RowsAffected(), nil
}
