// Package replica manages imported copies of published decks: import, the
// update-available check and wholesale update.
package replica

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/flashdeck-backend/internal/domain"
	"github.com/heartmarshall/flashdeck-backend/pkg/ctxutil"
)

type deckRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.OwnerDeck, error)
	FindBySource(ctx context.Context, ownerID, publishedID uuid.UUID) (*domain.OwnerDeck, error)
	Create(ctx context.Context, d *domain.OwnerDeck) (*domain.OwnerDeck, error)
	Update(ctx context.Context, d *domain.OwnerDeck) (*domain.OwnerDeck, error)
	ReplaceCards(ctx context.Context, deckID uuid.UUID, cards []domain.Card) error
	SetCardFlag(ctx context.Context, deckID, cardID uuid.UUID, flag domain.CardFlag, value bool) (domain.Card, error)
}

type publishedRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.PublishedDeck, error)
	IncrementDownloads(ctx context.Context, id uuid.UUID) error
}

type auditLogger interface {
	Log(ctx context.Context, record domain.AuditRecord) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements the import and replica update operations.
type Service struct {
	decks     deckRepo
	published publishedRepo
	audit     auditLogger
	tx        txManager
	log       *slog.Logger
}

// NewService creates a new replica service.
func NewService(
	log *slog.Logger,
	decks deckRepo,
	published publishedRepo,
	audit auditLogger,
	tx txManager,
) *Service {
	return &Service{
		decks:     decks,
		published: published,
		audit:     audit,
		tx:        tx,
		log:       log.With("service", "replica"),
	}
}

// GetDeck returns one of the caller's decks or replicas. Cards removed by
// moderation are left out.
func (s *Service) GetDeck(ctx context.Context, deckID uuid.UUID) (*domain.OwnerDeck, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	d, err := s.ownDeck(ctx, userID, deckID)
	if err != nil {
		return nil, err
	}
	return d.Visible(), nil
}

// ownDeck loads a deck and hides decks of other users as not found.
func (s *Service) ownDeck(ctx context.Context, userID, deckID uuid.UUID) (*domain.OwnerDeck, error) {
	d, err := s.decks.GetByID(ctx, deckID)
	if err != nil {
		return nil, fmt.Errorf("get deck: %w", err)
	}
	if d.OwnerID != userID {
		return nil, fmt.Errorf("deck %s: %w", deckID, domain.ErrNotFound)
	}
	return d, nil
}

// livePublished loads a published deck that is visible to readers.
func (s *Service) livePublished(ctx context.Context, id uuid.UUID) (*domain.PublishedDeck, error) {
	p, err := s.published.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get published deck: %w", err)
	}
	if p.IsDeleted() {
		return nil, fmt.Errorf("published_deck %s: %w", id, domain.ErrNotFound)
	}
	return p, nil
}

// replicaCards copies the visible cards of a snapshot. Card ids are kept so
// moderation can find the same card in every copy.
func replicaCards(cards []domain.Card) []domain.Card {
	out := domain.CloneCards(domain.ActiveCards(cards))
	for i := range out {
		out[i].Position = i
		out[i].IsFavorite = false
		out[i].IsIgnored = false
		out[i].Lifecycle = domain.Active()
	}
	return out
}
