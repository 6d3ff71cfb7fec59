package publication

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/flashdeck-backend/internal/domain"
	"github.com/heartmarshall/flashdeck-backend/internal/service/publication/diff"
	"github.com/heartmarshall/flashdeck-backend/pkg/ctxutil"
)

// Publish creates the published copy of a deck, or republishes it in place
// when the deck is already linked to one. A republish with no material
// change fails with NO_CHANGES and leaves the version untouched.
func (s *Service) Publish(ctx context.Context, input PublishInput) (*domain.PublishedDeck, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	if err := input.Validate(); err != nil {
		return nil, err
	}

	deck, err := s.decks.GetByID(ctx, input.DeckID)
	if err != nil {
		return nil, fmt.Errorf("get deck: %w", err)
	}
	if deck.OwnerID != userID {
		return nil, fmt.Errorf("deck %s: %w", deck.ID, domain.ErrNotFound)
	}

	if err := s.checkPublishable(deck, userID); err != nil {
		return nil, err
	}

	meta := deck.DeckMeta
	if c := strings.TrimSpace(input.Category); c != "" {
		meta.Category = c
	}
	if st := strings.TrimSpace(input.Subtopic); st != "" {
		meta.Subtopic = st
	}
	// Cards moderation removed from an author's copy stay in the snapshot so
	// they line up with the stored ones; publishCards keeps them removed.
	current := domain.Snapshot{Meta: meta, Cards: deck.Cards}

	var (
		result *domain.PublishedDeck
		first  bool
	)
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		existing, err := s.linkedPublished(txCtx, deck)
		if err != nil {
			return err
		}

		if existing == nil {
			first = true
			result, err = s.createPublished(txCtx, deck, userID, current)
		} else {
			result, err = s.republish(txCtx, existing, current)
		}
		if err != nil {
			return err
		}

		deck.DeckMeta = meta
		deck.PublishedRef = &result.ID
		deck.LastSyncedVersion = result.Version
		if deck.Source != nil && deck.Source.AuthorCopy {
			deck.Source.ImportedFromVersion = result.Version
		}
		if _, err := s.decks.Update(txCtx, deck); err != nil {
			return fmt.Errorf("link deck: %w", err)
		}

		action := domain.AuditActionUpdate
		if first {
			action = domain.AuditActionCreate
		}
		return s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     userID,
			EntityType: domain.EntityTypePublishedDeck,
			EntityID:   &result.ID,
			Action:     action,
			Changes: map[string]any{
				"version": map[string]any{"new": result.Version},
				"deck_id": deck.ID.String(),
			},
		})
	})
	if err != nil {
		return nil, err
	}

	msg := "deck republished"
	if first {
		msg = "deck published"
	}
	s.log.InfoContext(ctx, msg,
		slog.String("user_id", userID.String()),
		slog.String("deck_id", deck.ID.String()),
		slog.String("published_id", result.ID.String()),
		slog.Int("version", result.Version),
	)

	return result.Public(), nil
}

// checkPublishable runs the publish preconditions in their fixed order.
func (s *Service) checkPublishable(deck *domain.OwnerDeck, userID uuid.UUID) error {
	count := deck.CardCount()
	switch {
	case deck.IsPublishBanned():
		return domain.NewPreconditionError(domain.PreconditionPublishBanned,
			"this deck has been banned from publishing: "+deck.Publication.Reason)
	case count == 0:
		return domain.NewPreconditionError(domain.PreconditionEmptyDeck, "deck has no cards")
	case count < s.cfg.MinCards:
		return domain.NewPreconditionError(domain.PreconditionTooFewCards,
			fmt.Sprintf("deck needs at least %d cards to be published, has %d", s.cfg.MinCards, count))
	case deck.Source != nil && deck.Source.AuthorID != userID:
		return domain.NewPreconditionError(domain.PreconditionNotOwner,
			"imported decks can only be published by their original author")
	}
	return nil
}

// linkedPublished follows deck.PublishedRef. A dangling reference counts as
// never published; a moderation-removed target blocks the publish.
func (s *Service) linkedPublished(ctx context.Context, deck *domain.OwnerDeck) (*domain.PublishedDeck, error) {
	if deck.PublishedRef == nil {
		return nil, nil
	}

	p, err := s.published.GetByID(ctx, *deck.PublishedRef)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get published deck: %w", err)
	}

	if p.IsDeleted() {
		return nil, domain.NewPreconditionError(domain.PreconditionPublishBanned,
			"the published copy of this deck was removed by moderation")
	}
	return p, nil
}

func (s *Service) createPublished(ctx context.Context, deck *domain.OwnerDeck, authorID uuid.UUID, snap domain.Snapshot) (*domain.PublishedDeck, error) {
	cards := publishCards(snap.Cards, nil)
	p, err := s.published.Create(ctx, &domain.PublishedDeck{
		ID:             uuid.New(),
		OriginalDeckID: deck.ID,
		AuthorID:       authorID,
		Version:        1,
		DeckMeta:       snap.Meta,
		Cards:          cards,
		CardCount:      len(domain.ActiveCards(cards)),
		Lifecycle:      domain.Active(),
	})
	if err != nil {
		return nil, fmt.Errorf("create published deck: %w", err)
	}
	return p, nil
}

func (s *Service) republish(ctx context.Context, existing *domain.PublishedDeck, snap domain.Snapshot) (*domain.PublishedDeck, error) {
	res := diff.Compare(snap, existing.Snapshot())
	if !res.Changed {
		return nil, domain.NewPreconditionError(domain.PreconditionNoChanges,
			"this deck has already been published and nothing changed since")
	}

	s.log.DebugContext(ctx, "republish diff",
		slog.String("published_id", existing.ID.String()),
		slog.String("reason", res.Reason),
	)

	cards := publishCards(snap.Cards, existing.Cards)
	existing.Version++
	existing.DeckMeta = snap.Meta
	existing.CardCount = len(domain.ActiveCards(cards))

	updated, err := s.published.Update(ctx, existing)
	if err != nil {
		return nil, fmt.Errorf("update published deck: %w", err)
	}
	if err := s.published.ReplaceCards(ctx, updated.ID, cards); err != nil {
		return nil, fmt.Errorf("replace published cards: %w", err)
	}
	updated.Cards = cards
	return updated, nil
}

// publishCards turns owner cards into snapshot cards. Replica-local flags
// are dropped and cards that moderation removed, in prev or in the deck
// itself, stay removed.
func publishCards(cards, prev []domain.Card) []domain.Card {
	removed := make(map[uuid.UUID]domain.Lifecycle)
	for _, c := range prev {
		if c.Lifecycle.IsSoftDeleted() {
			removed[c.ID] = c.Lifecycle
		}
	}

	out := domain.CloneCards(cards)
	for i := range out {
		out[i].Position = i
		out[i].IsFavorite = false
		out[i].IsIgnored = false
		if l, ok := removed[out[i].ID]; ok {
			out[i].Lifecycle = l
		} else if !out[i].Lifecycle.IsSoftDeleted() {
			out[i].Lifecycle = domain.Active()
		}
	}
	return out
}
