package publication

import (
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/flashdeck-backend/internal/domain"
)

// PublishInput holds the parameters for publishing or republishing a deck.
// Empty Category or Subtopic keep the deck's own values.
type PublishInput struct {
	DeckID   uuid.UUID
	Category string
	Subtopic string
}

// Validate checks all fields and collects all errors.
func (i PublishInput) Validate() error {
	var errs []domain.FieldError

	if i.DeckID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "deck_id", Message: "required"})
	}
	if len(strings.TrimSpace(i.Category)) > 100 {
		errs = append(errs, domain.FieldError{Field: "category", Message: "max 100 characters"})
	}
	if len(strings.TrimSpace(i.Subtopic)) > 100 {
		errs = append(errs, domain.FieldError{Field: "subtopic", Message: "max 100 characters"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func validateReason(reason string, maxLen int) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return domain.NewValidationError("reason", "required")
	}
	if len(reason) > maxLen {
		return domain.NewValidationError("reason", "too long")
	}
	return nil
}

// ListInput narrows the public listing. Limit falls back to the configured
// page size and is capped by it.
type ListInput struct {
	Category     string
	FeaturedOnly bool
	AuthorID     *uuid.UUID
	Limit        int
	Offset       int
}
