package replica

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/flashdeck-backend/internal/domain"
	"github.com/heartmarshall/flashdeck-backend/pkg/ctxutil"
)

// UpdateStatus describes a replica against its published source.
type UpdateStatus struct {
	Available      bool
	CurrentVersion int
	LatestVersion  int
	// SourceGone is set when the source was unpublished or removed.
	SourceGone bool
}

// CheckUpdateAvailable reports whether published holds a newer version than
// the replica was built from.
func CheckUpdateAvailable(replica *domain.OwnerDeck, published *domain.PublishedDeck) bool {
	return replica.UpdateAvailable(published)
}

// CheckUpdate loads a replica and its source and compares versions.
func (s *Service) CheckUpdate(ctx context.Context, replicaID uuid.UUID) (UpdateStatus, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return UpdateStatus{}, domain.ErrUnauthorized
	}

	replica, err := s.ownDeck(ctx, userID, replicaID)
	if err != nil {
		return UpdateStatus{}, err
	}
	if !replica.IsReplica() {
		return UpdateStatus{}, domain.NewValidationError("deck_id", "not an imported deck")
	}

	status := UpdateStatus{CurrentVersion: replica.Source.ImportedFromVersion}
	p, err := s.livePublished(ctx, replica.Source.CommunityDeckID)
	if errors.Is(err, domain.ErrNotFound) {
		status.SourceGone = true
		return status, nil
	}
	if err != nil {
		return UpdateStatus{}, err
	}

	status.LatestVersion = p.Version
	status.Available = CheckUpdateAvailable(replica, p)
	return status, nil
}

// ApplyUpdate overwrites a replica with the current snapshot of its source.
// Cards are deleted and recreated, so replica-local favorite and ignored
// flags are lost. An up-to-date replica is returned unchanged.
func (s *Service) ApplyUpdate(ctx context.Context, replicaID, publishedID uuid.UUID) (*domain.OwnerDeck, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	replica, err := s.ownDeck(ctx, userID, replicaID)
	if err != nil {
		return nil, err
	}
	if !replica.IsReplica() || replica.Source.CommunityDeckID != publishedID {
		return nil, domain.NewValidationError("published_id", "not the source of this deck")
	}

	p, err := s.livePublished(ctx, publishedID)
	if err != nil {
		return nil, err
	}
	if !CheckUpdateAvailable(replica, p) {
		return replica.Visible(), nil
	}

	from := replica.Source.ImportedFromVersion
	cards := replicaCards(p.Cards)

	var updated *domain.OwnerDeck
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.decks.ReplaceCards(txCtx, replica.ID, cards); err != nil {
			return fmt.Errorf("replace replica cards: %w", err)
		}

		replica.DeckMeta = p.DeckMeta
		replica.Source.ImportedFromVersion = p.Version
		replica.LastSyncedVersion = p.Version

		var err error
		if updated, err = s.decks.Update(txCtx, replica); err != nil {
			return fmt.Errorf("update replica: %w", err)
		}

		return s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     userID,
			EntityType: domain.EntityTypeDeck,
			EntityID:   &replica.ID,
			Action:     domain.AuditActionUpdate,
			Changes: map[string]any{
				"imported_from_version": map[string]any{"old": from, "new": p.Version},
			},
		})
	})
	if err != nil {
		return nil, err
	}

	updated.Cards = cards
	s.log.InfoContext(ctx, "replica updated",
		slog.String("user_id", userID.String()),
		slog.String("deck_id", replica.ID.String()),
		slog.String("published_id", p.ID.String()),
		slog.Int("from_version", from),
		slog.Int("version", p.Version),
	)
	return updated, nil
}

// SetCardFlag sets a favorite or ignored annotation on one of the caller's
// cards. The annotation never reaches a published snapshot.
func (s *Service) SetCardFlag(ctx context.Context, deckID, cardID uuid.UUID, flag domain.CardFlag, value bool) (domain.Card, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.Card{}, domain.ErrUnauthorized
	}
	if !flag.IsValid() {
		return domain.Card{}, domain.NewValidationError("flag", "must be favorite or ignored")
	}

	if _, err := s.ownDeck(ctx, userID, deckID); err != nil {
		return domain.Card{}, err
	}

	card, err := s.decks.SetCardFlag(ctx, deckID, cardID, flag, value)
	if err != nil {
		return domain.Card{}, fmt.Errorf("set card flag: %w", err)
	}

	s.log.InfoContext(ctx, "card flag set",
		slog.String("user_id", userID.String()),
		slog.String("deck_id", deckID.String()),
		slog.String("card_id", cardID.String()),
		slog.String("flag", flag.String()),
		slog.Bool("value", value),
	)
	return card, nil
}
