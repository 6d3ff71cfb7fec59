// Package deck implements the owner deck repository using PostgreSQL.
// Owner decks and imported replicas share the decks table; a replica is a
// row with source_* columns set.
package deck

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/flashdeck-backend/internal/adapter/postgres"
	"github.com/heartmarshall/flashdeck-backend/internal/domain"
)

// Repo provides owner deck persistence backed by PostgreSQL.
type Repo struct {
	db postgres.DB
}

// New creates a new deck repository.
func New(db postgres.DB) *Repo {
	return &Repo{db: db}
}

const deckColumns = `
id, owner_id, name, emoji, color, category, subtopic, difficulty,
published_ref, last_synced_version,
source_published_id, source_author_id, source_version, source_author_copy,
publication_state AS lifecycle_state, publication_reason AS lifecycle_reason,
publication_by AS lifecycle_by, publication_at AS lifecycle_at,
revision, created_at, updated_at`

var (
	getByIDSQL      = `SELECT ` + deckColumns + ` FROM decks WHERE id = $1`
	findBySourceSQL = `SELECT ` + deckColumns + ` FROM decks WHERE owner_id = $1 AND source_published_id = $2`
	cardsSQL        = postgres.SelectCardsSQL(postgres.DeckCards)
)

const insertDeckSQL = `
INSERT INTO decks (
    id, owner_id, name, emoji, color, category, subtopic, difficulty,
    published_ref, last_synced_version,
    source_published_id, source_author_id, source_version, source_author_copy,
    publication_state, publication_reason, publication_by, publication_at,
    revision, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, 1, $19, $19)`

const updateDeckSQL = `
UPDATE decks SET
    name = $3, emoji = $4, color = $5, category = $6, subtopic = $7, difficulty = $8,
    published_ref = $9, last_synced_version = $10,
    source_published_id = $11, source_author_id = $12, source_version = $13, source_author_copy = $14,
    publication_state = $15, publication_reason = $16, publication_by = $17, publication_at = $18,
    revision = revision + 1, updated_at = $19
WHERE id = $1 AND revision = $2
RETURNING revision`

const clearPublishedRefSQL = `
UPDATE decks SET published_ref = NULL, revision = revision + 1, updated_at = $2
WHERE published_ref = $1`

// Replicas are the decks whose source is the published deck; the author's
// original deck is linked through published_ref and is left alone.
const softDeleteReplicaCardSQL = `
UPDATE deck_cards SET
    lifecycle_state = $3, lifecycle_reason = $4, lifecycle_by = $5, lifecycle_at = $6
WHERE id = $2
  AND lifecycle_state = 'ACTIVE'
  AND deck_id IN (SELECT id FROM decks WHERE source_published_id = $1)`

const existsSQL = `SELECT EXISTS(SELECT 1 FROM decks WHERE id = $1)`

type deckRow struct {
	ID                uuid.UUID  `db:"id"`
	OwnerID           uuid.UUID  `db:"owner_id"`
	Name              string     `db:"name"`
	Emoji             string     `db:"emoji"`
	Color             string     `db:"color"`
	Category          string     `db:"category"`
	Subtopic          string     `db:"subtopic"`
	Difficulty        string     `db:"difficulty"`
	PublishedRef      *uuid.UUID `db:"published_ref"`
	LastSyncedVersion int        `db:"last_synced_version"`
	SourcePublishedID *uuid.UUID `db:"source_published_id"`
	SourceAuthorID    *uuid.UUID `db:"source_author_id"`
	SourceVersion     *int       `db:"source_version"`
	SourceAuthorCopy  bool       `db:"source_author_copy"`
	Revision          int64      `db:"revision"`
	CreatedAt         time.Time  `db:"created_at"`
	UpdatedAt         time.Time  `db:"updated_at"`

	// publication_* columns, aliased to lifecycle_* on select.
	postgres.LifecycleColumns
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a deck with its cards in position order.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.OwnerDeck, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var row deckRow
	if err := pgxscan.Get(ctx, q, &row, getByIDSQL, id); err != nil {
		return nil, postgres.MapError(err, "deck", id)
	}

	return r.withCards(ctx, q, row)
}

// FindBySource returns ownerID's replica of the published deck.
// Returns domain.ErrNotFound when the owner has not imported it.
func (r *Repo) FindBySource(ctx context.Context, ownerID, publishedID uuid.UUID) (*domain.OwnerDeck, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var row deckRow
	if err := pgxscan.Get(ctx, q, &row, findBySourceSQL, ownerID, publishedID); err != nil {
		return nil, postgres.MapError(err, "replica of published_deck", publishedID)
	}

	return r.withCards(ctx, q, row)
}

func (r *Repo) withCards(ctx context.Context, q postgres.Querier, row deckRow) (*domain.OwnerDeck, error) {
	var cards []postgres.CardRow
	if err := pgxscan.Select(ctx, q, &cards, cardsSQL, row.ID); err != nil {
		return nil, fmt.Errorf("get cards of deck %s: %w", row.ID, err)
	}

	d := toDomainDeck(row)
	d.Cards = postgres.ToDomainCards(cards)
	return d, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a deck and its cards. The stored revision starts at 1.
func (r *Repo) Create(ctx context.Context, d *domain.OwnerDeck) (*domain.OwnerDeck, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	now := postgres.Now()
	args := deckArgs(d)
	_, err := q.Exec(ctx, insertDeckSQL, append([]any{d.ID, d.OwnerID}, append(args, now)...)...)
	if err != nil {
		return nil, postgres.MapError(err, "deck", d.ID)
	}

	if err := postgres.InsertCards(ctx, q, postgres.DeckCards, d.ID, d.Cards); err != nil {
		return nil, err
	}

	out := *d
	out.Cards = domain.CloneCards(d.Cards)
	out.Revision = 1
	out.CreatedAt = now
	out.UpdatedAt = now
	return &out, nil
}

// Update writes every deck column except cards when d.Revision still matches
// the stored row. Returns domain.ErrConflict on a stale revision and
// domain.ErrNotFound when the deck is gone.
func (r *Repo) Update(ctx context.Context, d *domain.OwnerDeck) (*domain.OwnerDeck, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	now := postgres.Now()
	args := append([]any{d.ID, d.Revision}, deckArgs(d)...)
	args = append(args, now)

	var revision int64
	err := q.QueryRow(ctx, updateDeckSQL, args...).Scan(&revision)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, r.casMiss(ctx, q, d)
	}
	if err != nil {
		return nil, postgres.MapError(err, "deck", d.ID)
	}

	out := *d
	out.Revision = revision
	out.UpdatedAt = now
	return &out, nil
}

func (r *Repo) casMiss(ctx context.Context, q postgres.Querier, d *domain.OwnerDeck) error {
	var exists bool
	if err := q.QueryRow(ctx, existsSQL, d.ID).Scan(&exists); err != nil {
		return postgres.MapError(err, "deck", d.ID)
	}
	if !exists {
		return fmt.Errorf("deck %s: %w", d.ID, domain.ErrNotFound)
	}
	return postgres.ErrStaleRevision("deck", d.ID, d.Revision)
}

// ReplaceCards deletes the deck's cards and inserts cards in their place.
func (r *Repo) ReplaceCards(ctx context.Context, deckID uuid.UUID, cards []domain.Card) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	if err := postgres.DeleteCards(ctx, q, postgres.DeckCards, deckID); err != nil {
		return err
	}
	return postgres.InsertCards(ctx, q, postgres.DeckCards, deckID, cards)
}

// ClearPublishedRef unlinks every deck that still points at publishedID and
// returns how many were unlinked. Zero is not an error.
func (r *Repo) ClearPublishedRef(ctx context.Context, publishedID uuid.UUID) (int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	tag, err := q.Exec(ctx, clearPublishedRefSQL, publishedID, postgres.Now())
	if err != nil {
		return 0, postgres.MapError(err, "decks linked to published_deck", publishedID)
	}
	return tag.RowsAffected(), nil
}

// SoftDeleteCardInReplicas applies a moderation removal to cardID in every
// replica of publishedID and returns how many replicas were touched. Cards
// already removed are skipped. Zero is not an error.
func (r *Repo) SoftDeleteCardInReplicas(ctx context.Context, publishedID, cardID uuid.UUID, l domain.Lifecycle) (int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	lc := postgres.ToLifecycleColumns(l)
	tag, err := q.Exec(ctx, softDeleteReplicaCardSQL, publishedID, cardID, lc.State, lc.Reason, lc.By, lc.At)
	if err != nil {
		return 0, postgres.MapError(err, "replica card", cardID)
	}
	return tag.RowsAffected(), nil
}

// SetCardFlag sets one replica-local annotation on a card and returns the
// card. Cards removed by moderation are reported as not found.
func (r *Repo) SetCardFlag(ctx context.Context, deckID, cardID uuid.UUID, flag domain.CardFlag, value bool) (domain.Card, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var column string
	switch flag {
	case domain.CardFlagFavorite:
		column = "is_favorite"
	case domain.CardFlagIgnored:
		column = "is_ignored"
	default:
		return domain.Card{}, domain.NewValidationError("flag", "unknown card flag")
	}

	upd := postgres.Builder().
		Update("deck_cards").
		Set(column, value).
		Where("deck_id = ? AND id = ? AND lifecycle_state = ?", deckID, cardID, string(domain.LifecycleActive)).
		Suffix("RETURNING id, position, card_type, front, back, options, accepted_answers, is_favorite, is_ignored, " +
			"lifecycle_state, lifecycle_reason, lifecycle_by, lifecycle_at")

	sql, args, err := upd.ToSql()
	if err != nil {
		return domain.Card{}, fmt.Errorf("build set card flag: %w", err)
	}

	var row postgres.CardRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return domain.Card{}, postgres.MapError(err, "card", cardID)
	}
	return row.Domain(), nil
}

// ---------------------------------------------------------------------------
// Mapping helpers
// ---------------------------------------------------------------------------

// deckArgs returns the mutable columns in insert/update order, $3..$18.
func deckArgs(d *domain.OwnerDeck) []any {
	var (
		srcID, srcAuthor *uuid.UUID
		srcVersion       *int
		authorCopy       bool
	)
	if d.Source != nil {
		id, author, version := d.Source.CommunityDeckID, d.Source.AuthorID, d.Source.ImportedFromVersion
		srcID, srcAuthor, srcVersion = &id, &author, &version
		authorCopy = d.Source.AuthorCopy
	}

	pub := postgres.ToLifecycleColumns(d.Publication)
	difficulty := d.Difficulty
	if difficulty == "" {
		difficulty = domain.DifficultyBeginner
	}

	return []any{
		d.Name, d.Emoji, d.Color, d.Category, d.Subtopic, string(difficulty),
		d.PublishedRef, d.LastSyncedVersion,
		srcID, srcAuthor, srcVersion, authorCopy,
		pub.State, pub.Reason, pub.By, pub.At,
	}
}

func toDomainDeck(row deckRow) *domain.OwnerDeck {
	d := &domain.OwnerDeck{
		ID:      row.ID,
		OwnerID: row.OwnerID,
		DeckMeta: domain.DeckMeta{
			Name:       row.Name,
			Emoji:      row.Emoji,
			Color:      row.Color,
			Category:   row.Category,
			Subtopic:   row.Subtopic,
			Difficulty: domain.Difficulty(row.Difficulty),
		},
		PublishedRef:      row.PublishedRef,
		LastSyncedVersion: row.LastSyncedVersion,
		Publication:       row.LifecycleColumns.Domain(),
		Revision:          row.Revision,
		CreatedAt:         row.CreatedAt,
		UpdatedAt:         row.UpdatedAt,
	}

	if row.SourcePublishedID != nil && row.SourceAuthorID != nil && row.SourceVersion != nil {
		d.Source = &domain.ImportSource{
			CommunityDeckID:     *row.SourcePublishedID,
			AuthorID:            *row.SourceAuthorID,
			ImportedFromVersion: *row.SourceVersion,
			AuthorCopy:          row.SourceAuthorCopy,
		}
	}

	return d
}
