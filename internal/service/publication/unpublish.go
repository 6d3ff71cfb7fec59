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

// Unpublish hard-deletes a published deck with its ratings, comments and
// cards, and unlinks every deck that still points at it. Imported replicas
// keep their copy. Only the author or a moderator may unpublish.
func (s *Service) Unpublish(ctx context.Context, publishedID uuid.UUID) error {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return domain.ErrUnauthorized
	}

	p, err := s.published.GetByID(ctx, publishedID)
	if err != nil {
		return fmt.Errorf("get published deck: %w", err)
	}
	if p.AuthorID != userID && !ctxutil.IsModeratorCtx(ctx) {
		return domain.ErrForbidden
	}

	var feedback, unlinked int64
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		if feedback, err = s.feedback.DeleteByPublishedID(txCtx, publishedID); err != nil {
			return fmt.Errorf("delete feedback: %w", err)
		}
		if err := s.published.Delete(txCtx, publishedID); err != nil && !errors.Is(err, domain.ErrNotFound) {
			return fmt.Errorf("delete published deck: %w", err)
		}
		if unlinked, err = s.decks.ClearPublishedRef(txCtx, publishedID); err != nil {
			return fmt.Errorf("unlink decks: %w", err)
		}

		return s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     userID,
			EntityType: domain.EntityTypePublishedDeck,
			EntityID:   &publishedID,
			Action:     domain.AuditActionDelete,
			Changes: map[string]any{
				"version":  map[string]any{"old": p.Version},
				"feedback": feedback,
			},
		})
	})
	if err != nil {
		return err
	}

	s.log.InfoContext(ctx, "deck unpublished",
		slog.String("user_id", userID.String()),
		slog.String("published_id", publishedID.String()),
		slog.Int64("feedback_deleted", feedback),
		slog.Int64("decks_unlinked", unlinked),
	)
	return nil
}
