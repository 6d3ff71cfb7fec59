// Package moderation implements the ticket workflow over reported content:
// OPEN -> REVIEWING -> RESOLVED | DISMISSED, with an orthogonal escalation
// flag and an append-only action log.
package moderation

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/flashdeck-backend/internal/config"
	"github.com/heartmarshall/flashdeck-backend/internal/domain"
	"github.com/heartmarshall/flashdeck-backend/pkg/ctxutil"
)

type ticketRepo interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Ticket, error)
	List(ctx context.Context, filter domain.TicketListFilter) ([]domain.Ticket, int, error)
	ListActions(ctx context.Context, ticketID uuid.UUID) ([]domain.TicketAction, error)
	Create(ctx context.Context, t *domain.Ticket) (*domain.Ticket, error)
	Update(ctx context.Context, t *domain.Ticket) (*domain.Ticket, error)
	AppendActions(ctx context.Context, ticketID uuid.UUID, actions []domain.TicketAction) ([]domain.TicketAction, error)
}

// contentRemover soft-deletes reported content and notifies its owner.
type contentRemover interface {
	ModerationSoftDelete(ctx context.Context, publishedID uuid.UUID, reason string) error
	ModerationSoftDeleteCard(ctx context.Context, publishedID, cardID uuid.UUID, reason string) error
	ModerationRemoveComment(ctx context.Context, commentID uuid.UUID, reason string) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service implements the moderation ticket workflow.
type Service struct {
	tickets ticketRepo
	content contentRemover
	tx      txManager
	cfg     config.ModerationConfig
	log     *slog.Logger
}

// NewService creates a new moderation service.
func NewService(
	log *slog.Logger,
	tickets ticketRepo,
	content contentRemover,
	tx txManager,
	cfg config.ModerationConfig,
) *Service {
	return &Service{
		tickets: tickets,
		content: content,
		tx:      tx,
		cfg:     cfg,
		log:     log.With("service", "moderation"),
	}
}

func now() time.Time { return time.Now().UTC() }

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

// openTicket loads a ticket that still accepts changes.
func (s *Service) openTicket(ctx context.Context, id uuid.UUID) (*domain.Ticket, error) {
	t, err := s.tickets.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get ticket: %w", err)
	}
	if t.Status.IsTerminal() {
		return nil, domain.NewPreconditionError(domain.PreconditionInvalidTransition,
			fmt.Sprintf("ticket is %s and can no longer change", t.Status))
	}
	return t, nil
}

// commit writes the ticket and its action log entries atomically.
func (s *Service) commit(ctx context.Context, t *domain.Ticket, actions []domain.TicketAction) (*domain.Ticket, error) {
	var updated *domain.Ticket
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		if updated, err = s.tickets.Update(txCtx, t); err != nil {
			return fmt.Errorf("update ticket: %w", err)
		}
		if _, err := s.tickets.AppendActions(txCtx, t.ID, actions); err != nil {
			return fmt.Errorf("append ticket actions: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func action(actor uuid.UUID, field, oldValue, newValue string) domain.TicketAction {
	return domain.TicketAction{ActorID: actor, Field: field, OldValue: oldValue, NewValue: newValue}
}

func idString(id *uuid.UUID) string {
	if id == nil {
		return ""
	}
	return id.String()
}
