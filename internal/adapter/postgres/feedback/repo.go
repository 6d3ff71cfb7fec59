// Package feedback implements persistence for ratings and comments, which
// are scoped to a published deck.
package feedback

import (
	"context"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/flashdeck-backend/internal/adapter/postgres"
	"github.com/heartmarshall/flashdeck-backend/internal/domain"
)

// Repo provides rating and comment persistence backed by PostgreSQL.
type Repo struct {
	db postgres.DB
}

// New creates a new feedback repository.
func New(db postgres.DB) *Repo {
	return &Repo{db: db}
}

const (
	deleteRatingsSQL  = `DELETE FROM ratings WHERE published_id = $1`
	deleteCommentsSQL = `DELETE FROM comments WHERE published_id = $1`

	getCommentSQL = `
SELECT id, published_id, author_id, body,
       lifecycle_state, lifecycle_reason, lifecycle_by, lifecycle_at, created_at
FROM comments WHERE id = $1`

	setCommentLifecycleSQL = `
UPDATE comments SET lifecycle_state = $2, lifecycle_reason = $3, lifecycle_by = $4, lifecycle_at = $5
WHERE id = $1`
)

type commentRow struct {
	ID          uuid.UUID `db:"id"`
	PublishedID uuid.UUID `db:"published_id"`
	AuthorID    uuid.UUID `db:"author_id"`
	Body        string    `db:"body"`
	CreatedAt   time.Time `db:"created_at"`
	postgres.LifecycleColumns
}

// DeleteByPublishedID removes every rating and comment of a published deck
// and returns how many rows went. Nothing to delete is not an error.
func (r *Repo) DeleteByPublishedID(ctx context.Context, publishedID uuid.UUID) (int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	ratings, err := q.Exec(ctx, deleteRatingsSQL, publishedID)
	if err != nil {
		return 0, postgres.MapError(err, "ratings of published_deck", publishedID)
	}
	comments, err := q.Exec(ctx, deleteCommentsSQL, publishedID)
	if err != nil {
		return 0, postgres.MapError(err, "comments of published_deck", publishedID)
	}

	return ratings.RowsAffected() + comments.RowsAffected(), nil
}

// GetComment returns a comment regardless of its lifecycle state.
func (r *Repo) GetComment(ctx context.Context, id uuid.UUID) (*domain.Comment, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var row commentRow
	if err := pgxscan.Get(ctx, q, &row, getCommentSQL, id); err != nil {
		return nil, postgres.MapError(err, "comment", id)
	}

	return &domain.Comment{
		ID:          row.ID,
		PublishedID: row.PublishedID,
		AuthorID:    row.AuthorID,
		Body:        row.Body,
		Lifecycle:   row.LifecycleColumns.Domain(),
		CreatedAt:   row.CreatedAt,
	}, nil
}

// SetCommentLifecycle changes the moderation state of a comment.
func (r *Repo) SetCommentLifecycle(ctx context.Context, id uuid.UUID, l domain.Lifecycle) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	lc := postgres.ToLifecycleColumns(l)
	tag, err := q.Exec(ctx, setCommentLifecycleSQL, id, lc.State, lc.Reason, lc.By, lc.At)
	if err != nil {
		return postgres.MapError(err, "comment", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("comment %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
