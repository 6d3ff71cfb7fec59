package rest

import (
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/flashdeck-backend/internal/domain"
	"github.com/heartmarshall/flashdeck-backend/internal/service/replica"
)

type cardResponse struct {
	ID              string   `json:"id"`
	Position        int      `json:"position"`
	Type            string   `json:"type"`
	Front           string   `json:"front"`
	Back            string   `json:"back"`
	Options         []string `json:"options,omitempty"`
	AcceptedAnswers []string `json:"acceptedAnswers,omitempty"`
	IsFavorite      *bool    `json:"isFavorite,omitempty"`
	IsIgnored       *bool    `json:"isIgnored,omitempty"`
}

type sourceResponse struct {
	CommunityDeckID     string `json:"communityDeckId"`
	AuthorID            string `json:"authorId"`
	ImportedFromVersion int    `json:"importedFromVersion"`
	AuthorCopy          bool   `json:"authorCopy"`
}

type deckResponse struct {
	ID                string          `json:"id"`
	OwnerID           string          `json:"ownerId"`
	Name              string          `json:"name"`
	Emoji             string          `json:"emoji,omitempty"`
	Color             string          `json:"color,omitempty"`
	Category          string          `json:"category,omitempty"`
	Subtopic          string          `json:"subtopic,omitempty"`
	Difficulty        string          `json:"difficulty,omitempty"`
	Cards             []cardResponse  `json:"cards"`
	PublishedID       *string         `json:"publishedId,omitempty"`
	LastSyncedVersion int             `json:"lastSyncedVersion"`
	Source            *sourceResponse `json:"source,omitempty"`
	PublishBanned     bool            `json:"publishBanned"`
	BanReason         string          `json:"banReason,omitempty"`
	Revision          int64           `json:"revision"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

type publishedResponse struct {
	ID             string         `json:"id"`
	OriginalDeckID string         `json:"originalDeckId"`
	AuthorID       string         `json:"authorId"`
	Version        int            `json:"version"`
	Name           string         `json:"name"`
	Emoji          string         `json:"emoji,omitempty"`
	Color          string         `json:"color,omitempty"`
	Category       string         `json:"category,omitempty"`
	Subtopic       string         `json:"subtopic,omitempty"`
	Difficulty     string         `json:"difficulty,omitempty"`
	Cards          []cardResponse `json:"cards,omitempty"`
	CardCount      int            `json:"cardCount"`
	Featured       bool           `json:"featured"`
	Downloads      int            `json:"downloads"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

type listResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

type updateStatusResponse struct {
	Available      bool `json:"available"`
	CurrentVersion int  `json:"currentVersion"`
	LatestVersion  int  `json:"latestVersion"`
	SourceGone     bool `json:"sourceGone"`
}

type escalationResponse struct {
	By     string    `json:"by"`
	At     time.Time `json:"at"`
	Reason string    `json:"reason"`
}

type resolutionResponse struct {
	By             string    `json:"by"`
	At             time.Time `json:"at"`
	Note           string    `json:"note,omitempty"`
	ContentRemoved bool      `json:"contentRemoved"`
}

type actionResponse struct {
	Seq       int64     `json:"seq"`
	ActorID   string    `json:"actorId"`
	Field     string    `json:"field"`
	OldValue  string    `json:"oldValue"`
	NewValue  string    `json:"newValue"`
	CreatedAt time.Time `json:"createdAt"`
}

type ticketResponse struct {
	ID           string              `json:"id"`
	TargetType   string              `json:"targetType"`
	TargetID     string              `json:"targetId"`
	TargetDeckID *string             `json:"targetDeckId,omitempty"`
	ReporterID   string              `json:"reporterId"`
	Reason       string              `json:"reason"`
	Status       string              `json:"status"`
	AssignedTo   *string             `json:"assignedTo,omitempty"`
	Escalation   *escalationResponse `json:"escalation,omitempty"`
	Resolution   *resolutionResponse `json:"resolution,omitempty"`
	History      []actionResponse    `json:"history,omitempty"`
	CreatedAt    time.Time           `json:"createdAt"`
	UpdatedAt    time.Time           `json:"updatedAt"`
}

type notificationResponse struct {
	ID         string    `json:"id"`
	Kind       string    `json:"kind"`
	EntityType string    `json:"entityType"`
	EntityID   string    `json:"entityId"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"createdAt"`
}

func optID(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func toCards(cards []domain.Card, withFlags bool) []cardResponse {
	out := make([]cardResponse, len(cards))
	for i, c := range cards {
		out[i] = cardResponse{
			ID:              c.ID.String(),
			Position:        c.Position,
			Type:            c.Type.String(),
			Front:           c.Front,
			Back:            c.Back,
			Options:         c.Options,
			AcceptedAnswers: c.AcceptedAnswers,
		}
		if withFlags {
			fav, ign := c.IsFavorite, c.IsIgnored
			out[i].IsFavorite = &fav
			out[i].IsIgnored = &ign
		}
	}
	return out
}

func toDeckResponse(d *domain.OwnerDeck) deckResponse {
	resp := deckResponse{
		ID:                d.ID.String(),
		OwnerID:           d.OwnerID.String(),
		Name:              d.Name,
		Emoji:             d.Emoji,
		Color:             d.Color,
		Category:          d.Category,
		Subtopic:          d.Subtopic,
		Difficulty:        d.Difficulty.String(),
		Cards:             toCards(domain.ActiveCards(d.Cards), true),
		PublishedID:       optID(d.PublishedRef),
		LastSyncedVersion: d.LastSyncedVersion,
		PublishBanned:     d.IsPublishBanned(),
		Revision:          d.Revision,
		UpdatedAt:         d.UpdatedAt,
	}
	if d.IsPublishBanned() {
		resp.BanReason = d.Publication.Reason
	}
	if d.Source != nil {
		resp.Source = &sourceResponse{
			CommunityDeckID:     d.Source.CommunityDeckID.String(),
			AuthorID:            d.Source.AuthorID.String(),
			ImportedFromVersion: d.Source.ImportedFromVersion,
			AuthorCopy:          d.Source.AuthorCopy,
		}
	}
	return resp
}

// toPublishedResponse expects a deck already stripped of removed cards.
func toPublishedResponse(p *domain.PublishedDeck) publishedResponse {
	return publishedResponse{
		ID:             p.ID.String(),
		OriginalDeckID: p.OriginalDeckID.String(),
		AuthorID:       p.AuthorID.String(),
		Version:        p.Version,
		Name:           p.Name,
		Emoji:          p.Emoji,
		Color:          p.Color,
		Category:       p.Category,
		Subtopic:       p.Subtopic,
		Difficulty:     p.Difficulty.String(),
		Cards:          toCards(p.Cards, false),
		CardCount:      p.CardCount,
		Featured:       p.Featured,
		Downloads:      p.Downloads,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func toUpdateStatus(s replica.UpdateStatus) updateStatusResponse {
	return updateStatusResponse{
		Available:      s.Available,
		CurrentVersion: s.CurrentVersion,
		LatestVersion:  s.LatestVersion,
		SourceGone:     s.SourceGone,
	}
}

func toTicketResponse(t *domain.Ticket, history []domain.TicketAction) ticketResponse {
	resp := ticketResponse{
		ID:           t.ID.String(),
		TargetType:   t.TargetType.String(),
		TargetID:     t.TargetID.String(),
		TargetDeckID: optID(t.TargetDeckID),
		ReporterID:   t.ReporterID.String(),
		Reason:       t.Reason,
		Status:       t.Status.String(),
		AssignedTo:   optID(t.AssignedTo),
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
	if e := t.Escalation; e != nil {
		resp.Escalation = &escalationResponse{By: e.By.String(), At: e.At, Reason: e.Reason}
	}
	if res := t.Resolution; res != nil {
		resp.Resolution = &resolutionResponse{
			By:             res.By.String(),
			At:             res.At,
			Note:           res.Note,
			ContentRemoved: res.ContentRemoved,
		}
	}
	for _, a := range history {
		resp.History = append(resp.History, actionResponse{
			Seq:       a.Seq,
			ActorID:   a.ActorID.String(),
			Field:     a.Field,
			OldValue:  a.OldValue,
			NewValue:  a.NewValue,
			CreatedAt: a.CreatedAt,
		})
	}
	return resp
}

func toNotificationResponse(n domain.Notification) notificationResponse {
	return notificationResponse{
		ID:         n.ID.String(),
		Kind:       n.Kind.String(),
		EntityType: n.EntityType.String(),
		EntityID:   n.EntityID.String(),
		Message:    n.Message,
		CreatedAt:  n.CreatedAt,
	}
}
