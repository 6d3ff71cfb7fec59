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

// Import copies the current snapshot of a published deck into a new replica
// owned by the caller. When the caller is the author the replica is marked
// as the author's copy and linked to the published deck, with its version
// pinned so no update is reported right away.
func (s *Service) Import(ctx context.Context, publishedID uuid.UUID) (*domain.OwnerDeck, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	p, err := s.livePublished(ctx, publishedID)
	if err != nil {
		return nil, err
	}

	_, err = s.decks.FindBySource(ctx, userID, p.ID)
	switch {
	case err == nil:
		return nil, alreadyImported()
	case !errors.Is(err, domain.ErrNotFound):
		return nil, fmt.Errorf("find replica: %w", err)
	}

	authorCopy := p.AuthorID == userID
	replica := &domain.OwnerDeck{
		ID:                uuid.New(),
		OwnerID:           userID,
		DeckMeta:          p.DeckMeta,
		Cards:             replicaCards(p.Cards),
		LastSyncedVersion: p.Version,
		Source: &domain.ImportSource{
			CommunityDeckID:     p.ID,
			AuthorID:            p.AuthorID,
			ImportedFromVersion: p.Version,
			AuthorCopy:          authorCopy,
		},
		Publication: domain.Active(),
	}
	if authorCopy {
		replica.PublishedRef = &p.ID
	}

	var created *domain.OwnerDeck
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		created, err = s.decks.Create(txCtx, replica)
		if errors.Is(err, domain.ErrAlreadyExists) {
			return alreadyImported()
		}
		if err != nil {
			return fmt.Errorf("create replica: %w", err)
		}

		if err := s.published.IncrementDownloads(txCtx, p.ID); err != nil {
			return fmt.Errorf("count download: %w", err)
		}

		return s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     userID,
			EntityType: domain.EntityTypeDeck,
			EntityID:   &created.ID,
			Action:     domain.AuditActionCreate,
			Changes: map[string]any{
				"source_published_id": p.ID.String(),
				"version":             p.Version,
				"author_copy":         authorCopy,
			},
		})
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "deck imported",
		slog.String("user_id", userID.String()),
		slog.String("deck_id", created.ID.String()),
		slog.String("published_id", p.ID.String()),
		slog.Int("version", p.Version),
		slog.Bool("author_copy", authorCopy),
	)
	return created, nil
}

func alreadyImported() error {
	return domain.NewPreconditionError(domain.PreconditionAlreadyImported, "you have already imported this deck")
}
