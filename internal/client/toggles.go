package client

import (
	"context"

	"github.com/google/uuid"

	"github.com/heartmarshall/flashdeck-backend/internal/domain"
	"github.com/heartmarshall/flashdeck-backend/pkg/toggle"
)

const attrFeatured = "featured"

// FeaturedField returns the toggle state of a community deck's featured
// flag, seeding it with current on first use.
func (c *Client) FeaturedField(publishedID uuid.UUID, current bool) *toggle.Field {
	return c.toggleSet(publishedID).Field(attrFeatured, current)
}

// FlagField returns the toggle state of a card annotation inside one deck.
// Card ids repeat across an owner deck and its replicas, so the deck is part
// of the key.
func (c *Client) FlagField(deckID, cardID uuid.UUID, flag domain.CardFlag, current bool) *toggle.Field {
	return c.toggleSet(deckID).Field(cardID.String()+"/"+flag.String(), current)
}

// ToggleFeatured flips the featured flag optimistically. It returns
// toggle.ErrPending while a previous flip of the same deck is in flight.
func (c *Client) ToggleFeatured(ctx context.Context, publishedID uuid.UUID, current bool) (bool, error) {
	return c.FeaturedField(publishedID, current).Do(ctx, func(ctx context.Context, desired bool) (bool, error) {
		return c.SetFeatured(ctx, publishedID, desired)
	})
}

// ToggleFavorite flips a card's favorite flag optimistically.
func (c *Client) ToggleFavorite(ctx context.Context, deckID, cardID uuid.UUID, current bool) (bool, error) {
	return c.FlagField(deckID, cardID, domain.CardFlagFavorite, current).Do(ctx, func(ctx context.Context, desired bool) (bool, error) {
		return c.SetCardFavorite(ctx, deckID, cardID, desired)
	})
}

// ToggleIgnored flips a card's ignored flag optimistically.
func (c *Client) ToggleIgnored(ctx context.Context, deckID, cardID uuid.UUID, current bool) (bool, error) {
	return c.FlagField(deckID, cardID, domain.CardFlagIgnored, current).Do(ctx, func(ctx context.Context, desired bool) (bool, error) {
		card, err := c.SetCardFlag(ctx, deckID, cardID, domain.CardFlagIgnored, desired)
		return card.IsIgnored, err
	})
}
