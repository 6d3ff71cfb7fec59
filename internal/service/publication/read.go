package publication

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/flashdeck-backend/internal/domain"
)

// GetPublished returns a published deck without its removed cards. Removed
// decks are reported as not found.
func (s *Service) GetPublished(ctx context.Context, id uuid.UUID) (*domain.PublishedDeck, error) {
	p, err := s.published.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get published deck: %w", err)
	}
	if p.IsDeleted() {
		return nil, fmt.Errorf("published_deck %s: %w", id, domain.ErrNotFound)
	}
	return p.Public(), nil
}

// ListPublic returns a page of the community listing and the total count.
func (s *Service) ListPublic(ctx context.Context, input ListInput) ([]domain.PublishedDeck, int, error) {
	limit := input.Limit
	if limit <= 0 || limit > s.cfg.ListingPageSize {
		limit = s.cfg.ListingPageSize
	}

	decks, total, err := s.published.ListPublic(ctx, domain.PublishedListFilter{
		Category:     input.Category,
		FeaturedOnly: input.FeaturedOnly,
		AuthorID:     input.AuthorID,
		Limit:        limit,
		Offset:       max(input.Offset, 0),
	})
	if err != nil {
		return nil, 0, fmt.Errorf("list published decks: %w", err)
	}
	return decks, total, nil
}

// FeatureToggle flips the featured flag and returns its new value. Featuring
// is not content, so the version stays as it is.
func (s *Service) FeatureToggle(ctx context.Context, publishedID uuid.UUID) (bool, error) {
	modID, err := moderatorFromCtx(ctx)
	if err != nil {
		return false, err
	}

	p, err := s.published.GetByID(ctx, publishedID)
	if err != nil {
		return false, fmt.Errorf("get published deck: %w", err)
	}
	if p.IsDeleted() {
		return false, fmt.Errorf("published_deck %s: %w", publishedID, domain.ErrNotFound)
	}

	old := p.Featured
	err = s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		p.Featured = !old
		if _, err := s.published.Update(txCtx, p); err != nil {
			return fmt.Errorf("toggle featured: %w", err)
		}
		return s.audit.Log(txCtx, domain.AuditRecord{
			UserID:     modID,
			EntityType: domain.EntityTypePublishedDeck,
			EntityID:   &p.ID,
			Action:     domain.AuditActionUpdate,
			Changes:    map[string]any{"featured": map[string]any{"old": old, "new": !old}},
		})
	})
	if err != nil {
		return false, err
	}

	s.log.InfoContext(ctx, "featured toggled",
		slog.String("user_id", modID.String()),
		slog.String("published_id", p.ID.String()),
		slog.Bool("featured", !old),
	)
	return !old, nil
}
