// Package publication owns the lifecycle of published (community) decks:
// publish and republish, unpublish, featuring and moderation removals.
package publication

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/flashdeck-backend/internal/config"
	"github.com/heartmarshall/flashdeck-backend/internal/domain"
)

type deckRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.OwnerDeck, error)
	Update(ctx context.Context, d *domain.OwnerDeck) (*domain.OwnerDeck, error)
	ClearPublishedRef(ctx context.Context, publishedID uuid.UUID) (int64, error)
	SoftDeleteCardInReplicas(ctx context.Context, publishedID, cardID uuid.UUID, l domain.Lifecycle) (int64, error)
}

type publishedRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.PublishedDeck, error)
	ListPublic(ctx context.Context, filter domain.PublishedListFilter) ([]domain.PublishedDeck, int, error)
	Create(ctx context.Context, p *domain.PublishedDeck) (*domain.PublishedDeck, error)
	Update(ctx context.Context, p *domain.PublishedDeck) (*domain.PublishedDeck, error)
	ReplaceCards(ctx context.Context, publishedID uuid.UUID, cards []domain.Card) error
	SetCardLifecycle(ctx context.Context, publishedID, cardID uuid.UUID, l domain.Lifecycle) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type feedbackRepo interface {
	DeleteByPublishedID(ctx context.Context, publishedID uuid.UUID) (int64, error)
	GetComment(ctx context.Context, id uuid.UUID) (*domain.Comment, error)
	SetCommentLifecycle(ctx context.Context, id uuid.UUID, l domain.Lifecycle) error
}

type notifier interface {
	Enqueue(ctx context.Context, n domain.Notification) error
}

type auditLogger interface {
	Log(ctx context.Context, record domain.AuditRecord) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements the publication store.
type Service struct {
	decks     deckRepo
	published publishedRepo
	feedback  feedbackRepo
	notify    notifier
	audit     auditLogger
	tx        txManager
	cfg       config.PublicationConfig
	log       *slog.Logger
}

// NewService creates a new publication service.
func NewService(
	log *slog.Logger,
	decks deckRepo,
	published publishedRepo,
	feedback feedbackRepo,
	notify notifier,
	audit auditLogger,
	tx txManager,
	cfg config.PublicationConfig,
) *Service {
	return &Service{
		decks:     decks,
		published: published,
		feedback:  feedback,
		notify:    notify,
		audit:     audit,
		tx:        tx,
		cfg:       cfg,
		log:       log.With("service", "publication"),
	}
}

func now() time.Time {
	return time.Now().UTC()
}

// enqueue delivers an owner notification. Failures are logged and dropped:
// the moderation action that triggered it has already been committed.
func (s *Service) enqueue(ctx context.Context, n domain.Notification) {
	if err := s.notify.Enqueue(ctx, n); err != nil {
		s.log.WarnContext(ctx, "owner notification failed",
			slog.String("user_id", n.UserID.String()),
			slog.String("kind", n.Kind.String()),
			slog.String("entity_id", n.EntityID.String()),
			slog.String("error", err.Error()),
		)
	}
}
