package domain

import (
	"slices"

	"github.com/google/uuid"
)

// Card is one flashcard inside an owner deck, replica or published snapshot.
// ID is stable across copies and revisions so moderation can target a card
// in every representation of the same deck.
type Card struct {
	ID              uuid.UUID
	Position        int
	Type            CardType
	Front           string
	Back            string
	Options         []string // MULTIPLE_CHOICE only, ordered
	AcceptedAnswers []string // TYPE_ANSWER only, ordered

	// Replica-local annotations. Never published, never diffed.
	IsFavorite bool
	IsIgnored  bool

	Lifecycle Lifecycle
}

// Clone returns a deep copy of the card.
func (c Card) Clone() Card {
	c.Options = slices.Clone(c.Options)
	c.AcceptedAnswers = slices.Clone(c.AcceptedAnswers)
	if c.Lifecycle.By != nil {
		by := *c.Lifecycle.By
		c.Lifecycle.By = &by
	}
	if c.Lifecycle.At != nil {
		at := *c.Lifecycle.At
		c.Lifecycle.At = &at
	}
	return c
}

// ActiveCards returns the cards that are not soft-deleted, preserving order.
func ActiveCards(cards []Card) []Card {
	out := make([]Card, 0, len(cards))
	for _, c := range cards {
		if c.Lifecycle.IsActive() {
			out = append(out, c)
		}
	}
	return out
}

// CloneCards deep-copies a card slice.
func CloneCards(cards []Card) []Card {
	if cards == nil {
		return nil
	}
	out := make([]Card, len(cards))
	for i, c := range cards {
		out[i] = c.Clone()
	}
	return out
}
