package moderation

import (
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/flashdeck-backend/internal/domain"
)

// CreateInput is a user report.
type CreateInput struct {
	TargetType domain.TargetType
	TargetID   uuid.UUID
	// TargetDeckID is the published deck holding a card or comment target.
	TargetDeckID *uuid.UUID
	Reason       string
}

// Validate checks all fields and collects all errors.
func (i CreateInput) Validate(maxReason int) error {
	var errs []domain.FieldError

	if !i.TargetType.IsValid() {
		errs = append(errs, domain.FieldError{Field: "target_type", Message: "must be deck, card or comment"})
	}
	if i.TargetID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "target_id", Message: "required"})
	}
	if i.TargetType == domain.TargetTypeCard && (i.TargetDeckID == nil || *i.TargetDeckID == uuid.Nil) {
		errs = append(errs, domain.FieldError{Field: "target_deck_id", Message: "required for card reports"})
	}
	errs = appendTextErrors(errs, "reason", i.Reason, maxReason, true)

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// SetStatusInput moves a ticket through the workflow. RemoveContent is only
// valid with RESOLVED.
type SetStatusInput struct {
	TicketID      uuid.UUID
	Status        domain.TicketStatus
	Note          string
	RemoveContent bool
}

// Validate checks all fields and collects all errors.
func (i SetStatusInput) Validate(maxNote int) error {
	var errs []domain.FieldError

	if i.TicketID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "ticket_id", Message: "required"})
	}
	if !i.Status.IsValid() {
		errs = append(errs, domain.FieldError{Field: "status", Message: "invalid status"})
	}
	if i.RemoveContent && i.Status != domain.TicketStatusResolved {
		errs = append(errs, domain.FieldError{Field: "remove_content", Message: "only allowed when resolving"})
	}
	errs = appendTextErrors(errs, "note", i.Note, maxNote, false)

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// QueueInput narrows the moderator queue.
type QueueInput struct {
	Status        *domain.TicketStatus
	AssignedTo    *uuid.UUID
	Unassigned    bool
	EscalatedOnly bool
	Limit         int
	Offset        int
}

func appendTextErrors(errs []domain.FieldError, field, value string, maxLen int, required bool) []domain.FieldError {
	value = strings.TrimSpace(value)
	switch {
	case value == "" && required:
		errs = append(errs, domain.FieldError{Field: field, Message: "required"})
	case len(value) > maxLen:
		errs = append(errs, domain.FieldError{Field: field, Message: "too long"})
	}
	return errs
}
