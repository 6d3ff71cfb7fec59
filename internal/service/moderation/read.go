package moderation

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/flashdeck-backend/internal/domain"
)

// Get returns a ticket in any status.
func (s *Service) Get(ctx context.Context, ticketID uuid.UUID) (*domain.Ticket, error) {
	if _, err := moderatorFromCtx(ctx); err != nil {
		return nil, err
	}
	t, err := s.tickets.GetByID(ctx, ticketID)
	if err != nil {
		return nil, fmt.Errorf("get ticket: %w", err)
	}
	return t, nil
}

// History returns the ticket's action log in seq order.
func (s *Service) History(ctx context.Context, ticketID uuid.UUID) ([]domain.TicketAction, error) {
	if _, err := moderatorFromCtx(ctx); err != nil {
		return nil, err
	}
	if _, err := s.tickets.GetByID(ctx, ticketID); err != nil {
		return nil, fmt.Errorf("get ticket: %w", err)
	}
	actions, err := s.tickets.ListActions(ctx, ticketID)
	if err != nil {
		return nil, fmt.Errorf("list ticket actions: %w", err)
	}
	return actions, nil
}

// ListQueue returns the moderator queue, escalated tickets first.
func (s *Service) ListQueue(ctx context.Context, input QueueInput) ([]domain.Ticket, int, error) {
	if _, err := moderatorFromCtx(ctx); err != nil {
		return nil, 0, err
	}
	if input.Status != nil && !input.Status.IsValid() {
		return nil, 0, domain.NewValidationError("status", "invalid status")
	}

	limit := input.Limit
	if limit <= 0 || limit > s.cfg.QueuePageSize {
		limit = s.cfg.QueuePageSize
	}
	offset := max(input.Offset, 0)

	tickets, total, err := s.tickets.List(ctx, domain.TicketListFilter{
		Status:        input.Status,
		AssignedTo:    input.AssignedTo,
		Unassigned:    input.Unassigned,
		EscalatedOnly: input.EscalatedOnly,
		Limit:         limit,
		Offset:        offset,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("list tickets: %w", err)
	}
	return tickets, total, nil
}
