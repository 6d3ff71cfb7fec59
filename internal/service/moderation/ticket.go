package moderation

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/flashdeck-backend/internal/domain"
	"github.com/heartmarshall/flashdeck-backend/pkg/ctxutil"
)

// Create files a report. Any authenticated user may report content.
func (s *Service) Create(ctx context.Context, input CreateInput) (*domain.Ticket, error) {
	userID, ok := ctxutil.UserIDFromCtx(ctx)
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := input.Validate(s.cfg.MaxReasonLength); err != nil {
		return nil, err
	}

	t := &domain.Ticket{
		ID:           uuid.New(),
		TargetType:   input.TargetType,
		TargetID:     input.TargetID,
		TargetDeckID: input.TargetDeckID,
		ReporterID:   userID,
		Reason:       strings.TrimSpace(input.Reason),
		Status:       domain.TicketStatusOpen,
	}

	var created *domain.Ticket
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		var err error
		if created, err = s.tickets.Create(txCtx, t); err != nil {
			return fmt.Errorf("create ticket: %w", err)
		}
		_, err = s.tickets.AppendActions(txCtx, t.ID, []domain.TicketAction{
			action(userID, domain.TicketFieldStatus, "", domain.TicketStatusOpen.String()),
		})
		if err != nil {
			return fmt.Errorf("append ticket actions: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "ticket created",
		slog.String("user_id", userID.String()),
		slog.String("ticket_id", t.ID.String()),
		slog.String("target_type", t.TargetType.String()),
		slog.String("target_id", t.TargetID.String()),
	)
	return created, nil
}

// Assign hands a ticket to a moderator. An OPEN ticket moves to REVIEWING; a
// REVIEWING ticket keeps its status and the log records the previous
// assignee.
func (s *Service) Assign(ctx context.Context, ticketID, moderatorID uuid.UUID) (*domain.Ticket, error) {
	actor, err := moderatorFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	if moderatorID == uuid.Nil {
		return nil, domain.NewValidationError("moderator_id", "required")
	}

	t, err := s.openTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if t.AssignedTo != nil && *t.AssignedTo == moderatorID {
		return t, nil
	}

	var actions []domain.TicketAction
	if t.Status == domain.TicketStatusOpen {
		actions = append(actions, action(actor, domain.TicketFieldStatus, t.Status.String(), domain.TicketStatusReviewing.String()))
		t.Status = domain.TicketStatusReviewing
	}
	actions = append(actions, action(actor, domain.TicketFieldAssignedTo, idString(t.AssignedTo), moderatorID.String()))
	t.AssignedTo = &moderatorID

	updated, err := s.commit(ctx, t, actions)
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "ticket assigned",
		slog.String("user_id", actor.String()),
		slog.String("ticket_id", t.ID.String()),
		slog.String("assigned_to", moderatorID.String()),
	)
	return updated, nil
}

// SetStatus moves a ticket to another status. OPEN clears the assignee,
// REVIEWING assigns the actor when nobody holds the ticket, and a terminal
// status stamps the resolution. With RemoveContent the reported content is
// removed first; if that fails the ticket is left untouched.
func (s *Service) SetStatus(ctx context.Context, input SetStatusInput) (*domain.Ticket, error) {
	actor, err := moderatorFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	if err := input.Validate(s.cfg.MaxReasonLength); err != nil {
		return nil, err
	}

	t, err := s.openTicket(ctx, input.TicketID)
	if err != nil {
		return nil, err
	}
	if t.Status == input.Status {
		return t, nil
	}

	note := strings.TrimSpace(input.Note)
	actions := []domain.TicketAction{
		action(actor, domain.TicketFieldStatus, t.Status.String(), input.Status.String()),
	}

	switch input.Status {
	case domain.TicketStatusOpen:
		if t.AssignedTo != nil {
			actions = append(actions, action(actor, domain.TicketFieldAssignedTo, t.AssignedTo.String(), ""))
			t.AssignedTo = nil
		}
	case domain.TicketStatusReviewing:
		if t.AssignedTo == nil {
			actions = append(actions, action(actor, domain.TicketFieldAssignedTo, "", actor.String()))
			t.AssignedTo = &actor
		}
	default:
		if input.RemoveContent {
			if err := s.removeContent(ctx, t, note); err != nil {
				return nil, fmt.Errorf("remove reported content: %w", err)
			}
			actions = append(actions, action(actor, domain.TicketFieldContent, "", "removed"))
		}
		if note != "" {
			actions = append(actions, action(actor, domain.TicketFieldResolution, "", note))
		}
		t.Resolution = &domain.Resolution{
			By:             actor,
			At:             now(),
			Note:           note,
			ContentRemoved: input.RemoveContent,
		}
	}
	t.Status = input.Status

	updated, err := s.commit(ctx, t, actions)
	if err != nil {
		if input.RemoveContent {
			s.log.ErrorContext(ctx, "content removed but ticket not resolved",
				slog.String("ticket_id", t.ID.String()),
				slog.String("error", err.Error()),
			)
		}
		return nil, err
	}

	s.log.InfoContext(ctx, "ticket status changed",
		slog.String("user_id", actor.String()),
		slog.String("ticket_id", t.ID.String()),
		slog.String("status", t.Status.String()),
		slog.Bool("content_removed", input.RemoveContent),
	)
	return updated, nil
}

// removeContent removes the ticket's target. The resolution note becomes the
// removal reason shown to the owner; the report reason is used without one.
func (s *Service) removeContent(ctx context.Context, t *domain.Ticket, note string) error {
	reason := note
	if reason == "" {
		reason = t.Reason
	}

	switch t.TargetType {
	case domain.TargetTypeDeck:
		return s.content.ModerationSoftDelete(ctx, t.TargetID, reason)
	case domain.TargetTypeCard:
		if t.TargetDeckID == nil {
			return domain.NewValidationError("target_deck_id", "card ticket has no deck")
		}
		return s.content.ModerationSoftDeleteCard(ctx, *t.TargetDeckID, t.TargetID, reason)
	case domain.TargetTypeComment:
		return s.content.ModerationRemoveComment(ctx, t.TargetID, reason)
	}
	return domain.NewValidationError("target_type", "unsupported")
}

// Escalate raises the urgency flag. It is independent of the status and
// setting it twice is a no-op.
func (s *Service) Escalate(ctx context.Context, ticketID uuid.UUID, reason string) (*domain.Ticket, error) {
	actor, err := moderatorFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	reason = strings.TrimSpace(reason)
	if errs := appendTextErrors(nil, "reason", reason, s.cfg.MaxReasonLength, true); len(errs) > 0 {
		return nil, domain.NewValidationErrors(errs)
	}

	t, err := s.openTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}
	if t.IsEscalated() {
		return t, nil
	}

	t.Escalation = &domain.Escalation{By: actor, At: now(), Reason: reason}
	updated, err := s.commit(ctx, t, []domain.TicketAction{
		action(actor, domain.TicketFieldEscalated, strconv.FormatBool(false), strconv.FormatBool(true)),
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "ticket escalated",
		slog.String("user_id", actor.String()),
		slog.String("ticket_id", t.ID.String()),
	)
	return updated, nil
}

// AddNote appends a free-text note to the ticket history.
func (s *Service) AddNote(ctx context.Context, ticketID uuid.UUID, note string) (*domain.Ticket, error) {
	actor, err := moderatorFromCtx(ctx)
	if err != nil {
		return nil, err
	}
	note = strings.TrimSpace(note)
	if errs := appendTextErrors(nil, "note", note, s.cfg.MaxReasonLength, true); len(errs) > 0 {
		return nil, domain.NewValidationErrors(errs)
	}

	t, err := s.openTicket(ctx, ticketID)
	if err != nil {
		return nil, err
	}

	updated, err := s.commit(ctx, t, []domain.TicketAction{
		action(actor, domain.TicketFieldNote, "", note),
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "ticket note added",
		slog.String("user_id", actor.String()),
		slog.String("ticket_id", t.ID.String()),
	)
	return updated, nil
}
