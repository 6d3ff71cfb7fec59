package publication

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/flashdeck-backend/internal/domain"
	"github.com/heartmarshall/flashdeck-backend/pkg/ctxutil"
)

func moderatorFromCtx(ctx context.Context) (uuid.UUID, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return uuid.Nil, domain.ErrUnauthorized
	}
	if !ctxutil.IsModeratorCtx(ctx) {
		return uuid.Nil, domain.ErrForbidden
	}
	return userID, nil
}

// ModerationSoftDelete hides a published deck, bans its original deck from
// publishing with the same reason and notifies the author. Removing an
// already removed deck is a no-op.
func (s *Service) ModerationSoftDelete(ctx context.Context, publishedID uuid.UUID, reason string) error {
	modID, err := moderatorFromCtx(ctx)
	if err != nil {
		return err
	}
	if err := validateReason(reason, s.cfg.MaxReasonLength); err != nil {
		return err
	}

	p, err := s.published.GetByID(ctx, publishedID)
	if err != nil {
		return fmt.Errorf("get published deck: %w", err)
	}
	if p.IsDeleted() {
		return nil
	}

	at := now()
	banned := false
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		p.Lifecycle = domain.SoftDeleted(reason, modID, at)
		if _, err := s.published.Update(txCtx, p); err != nil {
			return fmt.Errorf("soft delete published deck: %w", err)
		}

		deck, err := s.decks.GetByID(txCtx, p.OriginalDeckID)
		switch {
		case errors.Is(err, domain.ErrNotFound):
			// The author deleted the original; nothing left to ban.
		case err != nil:
			return fmt.Errorf("get original deck: %w", err)
		default:
			deck.Publication = domain.PublishBanned(reason, modID, at)
			if _, err := s.decks.Update(txCtx, deck); err != nil {
				return fmt.Errorf("ban original deck: %w", err)
			}
			banned = true
		}

		return s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     modID,
			EntityType: domain.EntityTypePublishedDeck,
			EntityID:   &p.ID,
			Action:     domain.AuditActionUpdate,
			Changes: map[string]any{
				"lifecycle": map[string]any{"old": domain.LifecycleActive, "new": domain.LifecycleSoftDeleted},
				"reason":    reason,
				"deck_ban":  banned,
			},
		})
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "published deck removed by moderation",
		slog.String("user_id", modID.String()),
		slog.String("published_id", p.ID.String()),
		slog.String("deck_id", p.OriginalDeckID.String()),
		slog.Bool("deck_banned", banned),
	)

	s.enqueue(ctx, domain.Notification{
		UserID:     p.AuthorID,
		Kind:       domain.NotificationDeckRemoved,
		EntityType: domain.EntityTypePublishedDeck,
		EntityID:   p.ID,
		Message:    reason,
	})
	return nil
}

// ModerationSoftDeleteCard hides one card of a published deck and of every
// existing replica in one transaction, then notifies the author. The version
// is not bumped, so replicas get the removal without an update.
func (s *Service) ModerationSoftDeleteCard(ctx context.Context, publishedID, cardID uuid.UUID, reason string) error {
	modID, err := moderatorFromCtx(ctx)
	if err != nil {
		return err
	}
	if err := validateReason(reason, s.cfg.MaxReasonLength); err != nil {
		return err
	}

	p, err := s.published.GetByID(ctx, publishedID)
	if err != nil {
		return fmt.Errorf("get published deck: %w", err)
	}

	idx := -1
	for i, c := range p.Cards {
		if c.ID == cardID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("card %s: %w", cardID, domain.ErrNotFound)
	}
	if p.Cards[idx].Lifecycle.IsSoftDeleted() {
		return nil
	}

	var replicas int64
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		removed := domain.SoftDeleted(reason, modID, now())
		if err := s.published.SetCardLifecycle(txCtx, p.ID, cardID, removed); err != nil {
			return fmt.Errorf("soft delete card: %w", err)
		}

		var err error
		if replicas, err = s.decks.SoftDeleteCardInReplicas(txCtx, p.ID, cardID, removed); err != nil {
			return fmt.Errorf("soft delete card in replicas: %w", err)
		}

		p.Cards[idx].Lifecycle = removed
		p.CardCount = len(domain.ActiveCards(p.Cards))
		if _, err := s.published.Update(txCtx, p); err != nil {
			return fmt.Errorf("update card count: %w", err)
		}

		return s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     modID,
			EntityType: domain.EntityTypeCard,
			EntityID:   &cardID,
			Action:     domain.AuditActionUpdate,
			Changes: map[string]any{
				"published_id": p.ID.String(),
				"lifecycle":    map[string]any{"old": domain.LifecycleActive, "new": domain.LifecycleSoftDeleted},
				"reason":       reason,
				"replicas":     replicas,
			},
		})
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "published card removed by moderation",
		slog.String("user_id", modID.String()),
		slog.String("published_id", p.ID.String()),
		slog.String("card_id", cardID.String()),
		slog.Int64("replicas", replicas),
	)

	s.enqueue(ctx, domain.Notification{
		UserID:     p.AuthorID,
		Kind:       domain.NotificationCardRemoved,
		EntityType: domain.EntityTypeCard,
		EntityID:   cardID,
		Message:    reason,
	})
	return nil
}

// ModerationRemoveComment hides a comment and notifies its author.
func (s *Service) ModerationRemoveComment(ctx context.Context, commentID uuid.UUID, reason string) error {
	modID, err := moderatorFromCtx(ctx)
	if err != nil {
		return err
	}
	if err := validateReason(reason, s.cfg.MaxReasonLength); err != nil {
		return err
	}

	c, err := s.feedback.GetComment(ctx, commentID)
	if err != nil {
		return fmt.Errorf("get comment: %w", err)
	}
	if c.Lifecycle.IsSoftDeleted() {
		return nil
	}

	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.feedback.SetCommentLifecycle(txCtx, commentID, domain.SoftDeleted(reason, modID, now())); err != nil {
			return fmt.Errorf("soft delete comment: %w", err)
		}
		return s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     modID,
			EntityType: domain.EntityTypeComment,
			EntityID:   &commentID,
			Action:     domain.AuditActionUpdate,
			Changes:    map[string]any{"reason": reason},
		})
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "comment removed by moderation",
		slog.String("user_id", modID.String()),
		slog.String("comment_id", commentID.String()),
		slog.String("published_id", c.PublishedID.String()),
	)

	s.enqueue(ctx, domain.Notification{
		UserID:     c.AuthorID,
		Kind:       domain.NotificationCommentRemoved,
		EntityType: domain.EntityTypeComment,
		EntityID:   commentID,
		Message:    reason,
	})
	return nil
}

// ModerationRestore makes a removed published deck visible again. The ban on
// the original deck stays until LiftPublishBan.
func (s *Service) ModerationRestore(ctx context.Context, publishedID uuid.UUID) (*domain.PublishedDeck, error) {
	modID, err := moderatorFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	p, err := s.published.GetByID(ctx, publishedID)
	if err != nil {
		return nil, fmt.Errorf("get published deck: %w", err)
	}
	if !p.IsDeleted() {
		return p.Public(), nil
	}

	prevReason := p.Lifecycle.Reason
	var restored *domain.PublishedDeck
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		p.Lifecycle = domain.Active()
		var err error
		if restored, err = s.published.Update(txCtx, p); err != nil {
			return fmt.Errorf("restore published deck: %w", err)
		}
		return s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     modID,
			EntityType: domain.EntityTypePublishedDeck,
			EntityID:   &p.ID,
			Action:     domain.AuditActionUpdate,
			Changes: map[string]any{
				"lifecycle": map[string]any{"old": domain.LifecycleSoftDeleted, "new": domain.LifecycleActive},
				"reason":    prevReason,
			},
		})
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "published deck restored",
		slog.String("user_id", modID.String()),
		slog.String("published_id", p.ID.String()),
	)
	return restored.Public(), nil
}

// LiftPublishBan clears a deck's publish ban. A link to a published deck
// that is still removed is dropped with the ban, so the next publish starts
// a new published deck at version 1. There is no self-service path to this;
// only moderators reach it.
func (s *Service) LiftPublishBan(ctx context.Context, deckID uuid.UUID) (*domain.OwnerDeck, error) {
	modID, err := moderatorFromCtx(ctx)
	if err != nil {
		return nil, err
	}

	deck, err := s.decks.GetByID(ctx, deckID)
	if err != nil {
		return nil, fmt.Errorf("get deck: %w", err)
	}
	if !deck.IsPublishBanned() {
		return deck, nil
	}

	prevReason := deck.Publication.Reason
	var (
		updated  *domain.OwnerDeck
		unlinked bool
	)
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		if unlinked, err = s.removedLink(txCtx, deck); err != nil {
			return err
		}
		if unlinked {
			deck.PublishedRef = nil
		}

		deck.Publication = domain.Active()
		if updated, err = s.decks.Update(txCtx, deck); err != nil {
			return fmt.Errorf("lift publish ban: %w", err)
		}
		return s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     modID,
			EntityType: domain.EntityTypeDeck,
			EntityID:   &deck.ID,
			Action:     domain.AuditActionUpdate,
			Changes: map[string]any{
				"publication": map[string]any{"old": domain.LifecyclePublishBanned, "new": domain.LifecycleActive},
				"reason":      prevReason,
				"unlinked":    unlinked,
			},
		})
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "publish ban lifted",
		slog.String("user_id", modID.String()),
		slog.String("deck_id", deck.ID.String()),
		slog.Bool("unlinked", unlinked),
	)
	return updated, nil
}

// removedLink reports whether deck still points at a published deck that
// moderation removed.
func (s *Service) removedLink(ctx context.Context, deck *domain.OwnerDeck) (bool, error) {
	if deck.PublishedRef == nil {
		return false, nil
	}
	p, err := s.published.GetByID(ctx, *deck.PublishedRef)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("get published deck: %w", err)
	}
	return p.IsDeleted(), nil
}
