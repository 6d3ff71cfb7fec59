package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/heartmarshall/flashdeck-backend/internal/domain"
	"github.com/heartmarshall/flashdeck-backend/internal/service/replica"
)

// ListOptions narrows the community listing.
type ListOptions struct {
	Category     string
	FeaturedOnly bool
	AuthorID     *uuid.UUID
	Limit        int
	Offset       int
}

// Publish publishes or republishes one of the caller's decks. Empty category
// and subtopic keep the deck's own values.
func (c *Client) Publish(ctx context.Context, deckID uuid.UUID, category, subtopic string) (*domain.PublishedDeck, error) {
	var out wirePublished
	in := map[string]string{"category": category, "subtopic": subtopic}
	if err := c.do(ctx, http.MethodPost, "/decks/"+deckID.String()+"/publish", in, &out); err != nil {
		return nil, err
	}
	return out.toDomain(), nil
}

// Unpublish removes a published deck from the community.
func (c *Client) Unpublish(ctx context.Context, publishedID uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/community/"+publishedID.String(), nil, nil)
}

// GetPublished fetches one community deck.
func (c *Client) GetPublished(ctx context.Context, publishedID uuid.UUID) (*domain.PublishedDeck, error) {
	var out wirePublished
	if err := c.do(ctx, http.MethodGet, "/community/"+publishedID.String(), nil, &out); err != nil {
		return nil, err
	}
	return out.toDomain(), nil
}

// ListPublic fetches a page of the community listing and the total count.
func (c *Client) ListPublic(ctx context.Context, opts ListOptions) ([]*domain.PublishedDeck, int, error) {
	q := url.Values{}
	if opts.Category != "" {
		q.Set("category", opts.Category)
	}
	if opts.FeaturedOnly {
		q.Set("featured", "true")
	}
	if opts.AuthorID != nil {
		q.Set("author", opts.AuthorID.String())
	}
	if opts.Limit > 0 {
		q.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Offset > 0 {
		q.Set("offset", strconv.Itoa(opts.Offset))
	}

	path := "/community"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var out wireList
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, 0, err
	}
	decks := make([]*domain.PublishedDeck, len(out.Items))
	for i, p := range out.Items {
		decks[i] = p.toDomain()
	}
	return decks, out.Total, nil
}

// Import copies a community deck into the caller's library.
func (c *Client) Import(ctx context.Context, publishedID uuid.UUID) (*domain.OwnerDeck, error) {
	var out wireDeck
	if err := c.do(ctx, http.MethodPost, "/community/"+publishedID.String()+"/import", nil, &out); err != nil {
		return nil, err
	}
	return out.toDomain(), nil
}

// GetDeck fetches one of the caller's decks or replicas.
func (c *Client) GetDeck(ctx context.Context, deckID uuid.UUID) (*domain.OwnerDeck, error) {
	var out wireDeck
	if err := c.do(ctx, http.MethodGet, "/decks/"+deckID.String(), nil, &out); err != nil {
		return nil, err
	}
	return out.toDomain(), nil
}

// CheckUpdate fetches the replica and its source and compares versions
// locally. A source that is gone reports no update and a nil deck.
func (c *Client) CheckUpdate(ctx context.Context, replicaID uuid.UUID) (bool, *domain.PublishedDeck, error) {
	deck, err := c.GetDeck(ctx, replicaID)
	if err != nil {
		return false, nil, err
	}
	if !deck.IsReplica() {
		return false, nil, fmt.Errorf("client: deck %s is not an imported deck: %w", replicaID, domain.ErrValidation)
	}

	p, err := c.GetPublished(ctx, deck.Source.CommunityDeckID)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil, nil
	}
	if err != nil {
		return false, nil, err
	}
	return replica.CheckUpdateAvailable(deck, p), p, nil
}

// ApplyUpdate overwrites the replica with the latest published version.
func (c *Client) ApplyUpdate(ctx context.Context, replicaID, publishedID uuid.UUID) (*domain.OwnerDeck, error) {
	var out wireDeck
	in := map[string]uuid.UUID{"publishedId": publishedID}
	if err := c.do(ctx, http.MethodPost, "/decks/"+replicaID.String()+"/apply-update", in, &out); err != nil {
		return nil, err
	}
	return out.toDomain(), nil
}

// SetCardFlag sets a replica-local annotation and returns the stored card.
func (c *Client) SetCardFlag(ctx context.Context, deckID, cardID uuid.UUID, flag domain.CardFlag, value bool) (domain.Card, error) {
	var out wireCard
	path := fmt.Sprintf("/decks/%s/cards/%s/flags/%s", deckID, cardID, url.PathEscape(flag.String()))
	if err := c.do(ctx, http.MethodPut, path, map[string]bool{"value": value}, &out); err != nil {
		return domain.Card{}, err
	}
	return out.toDomain(), nil
}

// SetCardFavorite is SetCardFlag for the favorite flag.
func (c *Client) SetCardFavorite(ctx context.Context, deckID, cardID uuid.UUID, value bool) (bool, error) {
	card, err := c.SetCardFlag(ctx, deckID, cardID, domain.CardFlagFavorite, value)
	if err != nil {
		return false, err
	}
	return card.IsFavorite, nil
}

// FeatureToggle flips a community deck's featured flag (moderators only)
// and returns the new value.
func (c *Client) FeatureToggle(ctx context.Context, publishedID uuid.UUID) (bool, error) {
	var out wireFeatured
	if err := c.do(ctx, http.MethodPost, "/moderation/community/"+publishedID.String()+"/feature", nil, &out); err != nil {
		return false, err
	}
	return out.Featured, nil
}

// SetFeatured sets the featured flag to value. Unlike FeatureToggle it is
// idempotent, so a retried or reordered request cannot flip it back.
func (c *Client) SetFeatured(ctx context.Context, publishedID uuid.UUID, value bool) (bool, error) {
	var out wireFeatured
	in := map[string]bool{"featured": value}
	if err := c.do(ctx, http.MethodPost, "/moderation/community/"+publishedID.String()+"/feature", in, &out); err != nil {
		return false, err
	}
	return out.Featured, nil
}
