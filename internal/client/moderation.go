package client

import (
	"context"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/heartmarshall/flashdeck-backend/internal/domain"
)

type wireTicket struct {
	ID         uuid.UUID `json:"id"`
	TargetType string    `json:"targetType"`
	TargetID   uuid.UUID `json:"targetId"`
	Status     string    `json:"status"`
}

type wireNotification struct {
	ID         uuid.UUID `json:"id"`
	Kind       string    `json:"kind"`
	EntityType string    `json:"entityType"`
	EntityID   uuid.UUID `json:"entityId"`
	Message    string    `json:"message"`
}

// Report files a moderation ticket against a deck, card or comment.
// deckID is required for card reports and returns the new ticket id.
func (c *Client) Report(ctx context.Context, target domain.TargetType, targetID uuid.UUID, deckID *uuid.UUID, reason string) (uuid.UUID, error) {
	in := map[string]any{"targetType": target, "targetId": targetID, "reason": reason}
	if deckID != nil {
		in["targetDeckId"] = *deckID
	}
	var out wireTicket
	if err := c.do(ctx, http.MethodPost, "/tickets", in, &out); err != nil {
		return uuid.Nil, err
	}
	return out.ID, nil
}

// RemovePublished soft-deletes a community deck and bans its source deck
// from publishing (moderators only).
func (c *Client) RemovePublished(ctx context.Context, publishedID uuid.UUID, reason string) error {
	return c.do(ctx, http.MethodPost, "/moderation/community/"+publishedID.String()+"/delete",
		map[string]string{"reason": reason}, nil)
}

// RemoveCard soft-deletes one card of a community deck (moderators only).
func (c *Client) RemoveCard(ctx context.Context, publishedID, cardID uuid.UUID, reason string) error {
	return c.do(ctx, http.MethodPost, "/moderation/community/"+publishedID.String()+"/cards/"+cardID.String()+"/delete",
		map[string]string{"reason": reason}, nil)
}

// Notifications returns the caller's newest notifications.
func (c *Client) Notifications(ctx context.Context, limit int) ([]domain.Notification, error) {
	path := "/notifications"
	if limit > 0 {
		path += "?limit=" + strconv.Itoa(limit)
	}
	var out struct {
		Items []wireNotification `json:"items"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	items := make([]domain.Notification, len(out.Items))
	for i, n := range out.Items {
		items[i] = domain.Notification{
			ID:         n.ID,
			Kind:       domain.NotificationKind(n.Kind),
			EntityType: domain.EntityType(n.EntityType),
			EntityID:   n.EntityID,
			Message:    n.Message,
		}
	}
	return items, nil
}
