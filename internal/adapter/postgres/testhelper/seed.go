package testhelper

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/flashdeck-backend/internal/adapter/postgres"
	"github.com/heartmarshall/flashdeck-backend/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// BuildCards returns n BASIC cards with fresh ids and distinct content.
func BuildCards(n int) []domain.Card {
	suffix := uniqueSuffix()
	cards := make([]domain.Card, n)
	for i := range cards {
		cards[i] = domain.Card{
			ID:        uuid.New(),
			Position:  i,
			Type:      domain.CardTypeBasic,
			Front:     fmt.Sprintf("front %s-%d", suffix, i),
			Back:      fmt.Sprintf("back %s-%d", suffix, i),
			Lifecycle: domain.Active(),
		}
	}
	return cards
}

// SeedDeck creates an owner deck with n cards for ownerID.
func SeedDeck(t *testing.T, pool *pgxpool.Pool, ownerID uuid.UUID, n int) domain.OwnerDeck {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC().Truncate(time.Microsecond)
	deck := domain.OwnerDeck{
		ID:      uuid.New(),
		OwnerID: ownerID,
		DeckMeta: domain.DeckMeta{
			Name:       "Deck " + uniqueSuffix(),
			Emoji:      "📚",
			Color:      "#3366ff",
			Category:   "languages",
			Subtopic:   "spanish",
			Difficulty: domain.DifficultyBeginner,
		},
		Cards:       BuildCards(n),
		Publication: domain.Active(),
		Revision:    1,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO decks (id, owner_id, name, emoji, color, category, subtopic, difficulty, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)`,
		deck.ID, deck.OwnerID, deck.Name, deck.Emoji, deck.Color, deck.Category, deck.Subtopic,
		string(deck.Difficulty), now,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedDeck insert deck: %v", err)
	}

	if err := postgres.InsertCards(ctx, pool, postgres.DeckCards, deck.ID, deck.Cards); err != nil {
		t.Fatalf("testhelper: SeedDeck insert cards: %v", err)
	}

	return deck
}

// SeedPublished creates a version-1 published deck of a freshly seeded owner
// deck with n cards.
func SeedPublished(t *testing.T, pool *pgxpool.Pool, authorID uuid.UUID, n int) domain.PublishedDeck {
	t.Helper()
	ctx := context.Background()

	deck := SeedDeck(t, pool, authorID, n)
	now := time.Now().UTC().Truncate(time.Microsecond)

	p := domain.PublishedDeck{
		ID:             uuid.New(),
		OriginalDeckID: deck.ID,
		AuthorID:       authorID,
		Version:        1,
		DeckMeta:       deck.DeckMeta,
		Cards:          domain.CloneCards(deck.Cards),
		CardCount:      n,
		Lifecycle:      domain.Active(),
		Revision:       1,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO published_decks (id, original_deck_id, author_id, version, name, emoji, color,
		                              category, subtopic, difficulty, card_count, created_at, updated_at)
		 VALUES ($1, $2, $3, 1, $4, $5, $6, $7, $8, $9, $10, $11, $11)`,
		p.ID, p.OriginalDeckID, p.AuthorID, p.Name, p.Emoji, p.Color,
		p.Category, p.Subtopic, string(p.Difficulty), p.CardCount, now,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedPublished insert published_deck: %v", err)
	}

	if err := postgres.InsertCards(ctx, pool, postgres.PublishedCards, p.ID, p.Cards); err != nil {
		t.Fatalf("testhelper: SeedPublished insert cards: %v", err)
	}

	if _, err := pool.Exec(ctx,
		`UPDATE decks SET published_ref = $2, last_synced_version = 1 WHERE id = $1`, deck.ID, p.ID,
	); err != nil {
		t.Fatalf("testhelper: SeedPublished link deck: %v", err)
	}

	return p
}

// SeedComment creates an active comment on a published deck.
func SeedComment(t *testing.T, pool *pgxpool.Pool, publishedID, authorID uuid.UUID) domain.Comment {
	t.Helper()

	c := domain.Comment{
		ID:          uuid.New(),
		PublishedID: publishedID,
		AuthorID:    authorID,
		Body:        "comment " + uniqueSuffix(),
		Lifecycle:   domain.Active(),
		CreatedAt:   time.Now().UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO comments (id, published_id, author_id, body, created_at) VALUES ($1, $2, $3, $4, $5)`,
		c.ID, c.PublishedID, c.AuthorID, c.Body, c.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedComment: %v", err)
	}
	return c
}

// SeedRating creates a rating of a published deck.
func SeedRating(t *testing.T, pool *pgxpool.Pool, publishedID, userID uuid.UUID, score int) {
	t.Helper()

	_, err := pool.Exec(context.Background(),
		`INSERT INTO ratings (published_id, user_id, score) VALUES ($1, $2, $3)`,
		publishedID, userID, score,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedRating: %v", err)
	}
}

// SeedTicket creates an OPEN ticket reporting a published deck.
func SeedTicket(t *testing.T, pool *pgxpool.Pool, publishedID, reporterID uuid.UUID) domain.Ticket {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Microsecond)
	tk := domain.Ticket{
		ID:         uuid.New(),
		TargetType: domain.TargetTypeDeck,
		TargetID:   publishedID,
		ReporterID: reporterID,
		Reason:     "spam " + uniqueSuffix(),
		Status:     domain.TicketStatusOpen,
		Revision:   1,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	_, err := pool.Exec(context.Background(),
		`INSERT INTO tickets (id, target_type, target_id, reporter_id, reason, status, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $7)`,
		tk.ID, string(tk.TargetType), tk.TargetID, tk.ReporterID, tk.Reason, string(tk.Status), now,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedTicket: %v", err)
	}
	return tk
}
