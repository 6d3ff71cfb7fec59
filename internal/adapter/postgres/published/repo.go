// Package published implements the published (community) deck repository
// using PostgreSQL. Soft-deleted decks and cards stay in their tables; the
// public listing filters them out.
package published

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/flashdeck-backend/internal/adapter/postgres"
	"github.com/heartmarshall/flashdeck-backend/internal/domain"
)

// Repo provides published deck persistence backed by PostgreSQL.
type Repo struct {
	db postgres.DB
}

// New creates a new published deck repository.
func New(db postgres.DB) *Repo {
	return &Repo{db: db}
}

var columns = []string{
	"id", "original_deck_id", "author_id", "version",
	"name", "emoji", "color", "category", "subtopic", "difficulty",
	"card_count", "featured", "downloads",
	"lifecycle_state", "lifecycle_reason", "lifecycle_by", "lifecycle_at",
	"revision", "created_at", "updated_at",
}

var cardsSQL = postgres.SelectCardsSQL(postgres.PublishedCards)

const updateSQL = `
UPDATE published_decks SET
    version = $3,
    name = $4, emoji = $5, color = $6, category = $7, subtopic = $8, difficulty = $9,
    card_count = $10, featured = $11,
    lifecycle_state = $12, lifecycle_reason = $13, lifecycle_by = $14, lifecycle_at = $15,
    revision = revision + 1, updated_at = $16
WHERE id = $1 AND revision = $2
RETURNING revision`

const setCardLifecycleSQL = `
UPDATE published_cards SET
    lifecycle_state = $3, lifecycle_reason = $4, lifecycle_by = $5, lifecycle_at = $6
WHERE published_id = $1 AND id = $2`

const incrementDownloadsSQL = `UPDATE published_decks SET downloads = downloads + 1 WHERE id = $1`

const deleteSQL = `DELETE FROM published_decks WHERE id = $1`

const existsSQL = `SELECT EXISTS(SELECT 1 FROM published_decks WHERE id = $1)`

type publishedRow struct {
	ID             uuid.UUID `db:"id"`
	OriginalDeckID uuid.UUID `db:"original_deck_id"`
	AuthorID       uuid.UUID `db:"author_id"`
	Version        int       `db:"version"`
	Name           string    `db:"name"`
	Emoji          string    `db:"emoji"`
	Color          string    `db:"color"`
	Category       string    `db:"category"`
	Subtopic       string    `db:"subtopic"`
	Difficulty     string    `db:"difficulty"`
	CardCount      int       `db:"card_count"`
	Featured       bool      `db:"featured"`
	Downloads      int       `db:"downloads"`
	Revision       int64     `db:"revision"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
	postgres.LifecycleColumns
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a published deck with all of its cards, soft-deleted
// ones included. Read paths strip them with PublishedDeck.Public.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.PublishedDeck, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := postgres.Builder().
		Select(columns...).
		From("published_decks").
		Where("id = ?", id).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get published_deck: %w", err)
	}

	var row publishedRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return nil, postgres.MapError(err, "published_deck", id)
	}

	var cards []postgres.CardRow
	if err := pgxscan.Select(ctx, q, &cards, cardsSQL, id); err != nil {
		return nil, fmt.Errorf("get cards of published_deck %s: %w", id, err)
	}

	p := toDomain(row)
	p.Cards = postgres.ToDomainCards(cards)
	return p, nil
}

// ListPublic returns active published decks without cards, featured first,
// then most recently updated. The second return value is the total count.
func (r *Repo) ListPublic(ctx context.Context, filter domain.PublishedListFilter) ([]domain.PublishedDeck, int, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	where := squirrel.And{squirrel.Eq{"lifecycle_state": string(domain.LifecycleActive)}}
	if filter.Category != "" {
		where = append(where, squirrel.Eq{"category": filter.Category})
	}
	if filter.FeaturedOnly {
		where = append(where, squirrel.Eq{"featured": true})
	}
	if filter.AuthorID != nil {
		where = append(where, squirrel.Expr("author_id = ?", *filter.AuthorID))
	}

	countSQL, countArgs, err := postgres.Builder().
		Select("count(*)").
		From("published_decks").
		Where(where).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count published_decks: %w", err)
	}

	var total int
	if err := q.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count published_decks: %w", err)
	}

	sel := postgres.Builder().
		Select(columns...).
		From("published_decks").
		Where(where).
		OrderBy("featured DESC", "updated_at DESC", "id")
	if filter.Limit > 0 {
		sel = sel.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		sel = sel.Offset(uint64(filter.Offset))
	}

	sql, args, err := sel.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list published_decks: %w", err)
	}

	var rows []publishedRow
	if err := pgxscan.Select(ctx, q, &rows, sql, args...); err != nil {
		return nil, 0, fmt.Errorf("list published_decks: %w", err)
	}

	decks := make([]domain.PublishedDeck, len(rows))
	for i, row := range rows {
		decks[i] = *toDomain(row)
	}
	return decks, total, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a published deck and its card snapshot.
func (r *Repo) Create(ctx context.Context, p *domain.PublishedDeck) (*domain.PublishedDeck, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	now := postgres.Now()
	lc := postgres.ToLifecycleColumns(p.Lifecycle)

	ins := postgres.Builder().
		Insert("published_decks").
		Columns(columns...).
		Values(
			p.ID, p.OriginalDeckID, p.AuthorID, p.Version,
			p.Name, p.Emoji, p.Color, p.Category, p.Subtopic, string(difficultyOrDefault(p.Difficulty)),
			p.CardCount, p.Featured, p.Downloads,
			lc.State, lc.Reason, lc.By, lc.At,
			1, now, now,
		)
	if _, err := postgres.Exec(ctx, q, ins); err != nil {
		return nil, postgres.MapError(err, "published_deck", p.ID)
	}

	if err := postgres.InsertCards(ctx, q, postgres.PublishedCards, p.ID, p.Cards); err != nil {
		return nil, err
	}

	out := *p
	out.Cards = domain.CloneCards(p.Cards)
	out.Revision = 1
	out.CreatedAt = now
	out.UpdatedAt = now
	return &out, nil
}

// Update writes version, metadata, card count, featured and lifecycle when
// p.Revision still matches. Downloads and cards are written separately.
func (r *Repo) Update(ctx context.Context, p *domain.PublishedDeck) (*domain.PublishedDeck, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	now := postgres.Now()
	lc := postgres.ToLifecycleColumns(p.Lifecycle)

	var revision int64
	err := q.QueryRow(ctx, updateSQL,
		p.ID, p.Revision, p.Version,
		p.Name, p.Emoji, p.Color, p.Category, p.Subtopic, string(difficultyOrDefault(p.Difficulty)),
		p.CardCount, p.Featured,
		lc.State, lc.Reason, lc.By, lc.At,
		now,
	).Scan(&revision)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, r.casMiss(ctx, q, p)
	}
	if err != nil {
		return nil, postgres.MapError(err, "published_deck", p.ID)
	}

	out := *p
	out.Revision = revision
	out.UpdatedAt = now
	return &out, nil
}

func (r *Repo) casMiss(ctx context.Context, q postgres.Querier, p *domain.PublishedDeck) error {
	var exists bool
	if err := q.QueryRow(ctx, existsSQL, p.ID).Scan(&exists); err != nil {
		return postgres.MapError(err, "published_deck", p.ID)
	}
	if !exists {
		return fmt.Errorf("published_deck %s: %w", p.ID, domain.ErrNotFound)
	}
	return postgres.ErrStaleRevision("published_deck", p.ID, p.Revision)
}

// ReplaceCards swaps the stored card snapshot for cards.
func (r *Repo) ReplaceCards(ctx context.Context, publishedID uuid.UUID, cards []domain.Card) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	if err := postgres.DeleteCards(ctx, q, postgres.PublishedCards, publishedID); err != nil {
		return err
	}
	return postgres.InsertCards(ctx, q, postgres.PublishedCards, publishedID, cards)
}

// SetCardLifecycle changes the moderation state of one card in the snapshot.
func (r *Repo) SetCardLifecycle(ctx context.Context, publishedID, cardID uuid.UUID, l domain.Lifecycle) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	lc := postgres.ToLifecycleColumns(l)
	tag, err := q.Exec(ctx, setCardLifecycleSQL, publishedID, cardID, lc.State, lc.Reason, lc.By, lc.At)
	if err != nil {
		return postgres.MapError(err, "published_card", cardID)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("published_card %s: %w", cardID, domain.ErrNotFound)
	}
	return nil
}

// IncrementDownloads bumps the download counter. It does not touch the
// revision so it never conflicts with moderation writes.
func (r *Repo) IncrementDownloads(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	tag, err := q.Exec(ctx, incrementDownloadsSQL, id)
	if err != nil {
		return postgres.MapError(err, "published_deck", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("published_deck %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// Delete hard-deletes the published deck; its cards cascade.
func (r *Repo) Delete(ctx context.Context, id uuid.UUID) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	tag, err := q.Exec(ctx, deleteSQL, id)
	if err != nil {
		return postgres.MapError(err, "published_deck", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("published_deck %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Mapping helpers
// ---------------------------------------------------------------------------

func toDomain(row publishedRow) *domain.PublishedDeck {
	return &domain.PublishedDeck{
		ID:             row.ID,
		OriginalDeckID: row.OriginalDeckID,
		AuthorID:       row.AuthorID,
		Version:        row.Version,
		DeckMeta: domain.DeckMeta{
			Name:       row.Name,
			Emoji:      row.Emoji,
			Color:      row.Color,
			Category:   row.Category,
			Subtopic:   row.Subtopic,
			Difficulty: domain.Difficulty(row.Difficulty),
		},
		CardCount: row.CardCount,
		Featured:  row.Featured,
		Downloads: row.Downloads,
		Lifecycle: row.LifecycleColumns.Domain(),
		Revision:  row.Revision,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}

func difficultyOrDefault(d domain.Difficulty) domain.Difficulty {
	if d == "" {
		return domain.DifficultyBeginner
	}
	return d
}
