package client

import (
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/flashdeck-backend/internal/domain"
)

type wireError struct {
	Error  string `json:"error"`
	Kind   string `json:"kind"`
	Reason string `json:"reason"`
}

type wireCard struct {
	ID              uuid.UUID `json:"id"`
	Position        int       `json:"position"`
	Type            string    `json:"type"`
	Front           string    `json:"front"`
	Back            string    `json:"back"`
	Options         []string  `json:"options"`
	AcceptedAnswers []string  `json:"acceptedAnswers"`
	IsFavorite      *bool     `json:"isFavorite"`
	IsIgnored       *bool     `json:"isIgnored"`
}

type wireSource struct {
	CommunityDeckID     uuid.UUID `json:"communityDeckId"`
	AuthorID            uuid.UUID `json:"authorId"`
	ImportedFromVersion int       `json:"importedFromVersion"`
	AuthorCopy          bool      `json:"authorCopy"`
}

type wireDeck struct {
	ID                uuid.UUID   `json:"id"`
	OwnerID           uuid.UUID   `json:"ownerId"`
	Name              string      `json:"name"`
	Emoji             string      `json:"emoji"`
	Color             string      `json:"color"`
	Category          string      `json:"category"`
	Subtopic          string      `json:"subtopic"`
	Difficulty        string      `json:"difficulty"`
	Cards             []wireCard  `json:"cards"`
	PublishedID       *uuid.UUID  `json:"publishedId"`
	LastSyncedVersion int         `json:"lastSyncedVersion"`
	Source            *wireSource `json:"source"`
	PublishBanned     bool        `json:"publishBanned"`
	BanReason         string      `json:"banReason"`
	Revision          int64       `json:"revision"`
	UpdatedAt         time.Time   `json:"updatedAt"`
}

type wirePublished struct {
	ID             uuid.UUID  `json:"id"`
	OriginalDeckID uuid.UUID  `json:"originalDeckId"`
	AuthorID       uuid.UUID  `json:"authorId"`
	Version        int        `json:"version"`
	Name           string     `json:"name"`
	Emoji          string     `json:"emoji"`
	Color          string     `json:"color"`
	Category       string     `json:"category"`
	Subtopic       string     `json:"subtopic"`
	Difficulty     string     `json:"difficulty"`
	Cards          []wireCard `json:"cards"`
	CardCount      int        `json:"cardCount"`
	Featured       bool       `json:"featured"`
	Downloads      int        `json:"downloads"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

type wireList struct {
	Items []wirePublished `json:"items"`
	Total int             `json:"total"`
}

type wireFeatured struct {
	Featured bool `json:"featured"`
}

func (c wireCard) toDomain() domain.Card {
	card := domain.Card{
		ID:              c.ID,
		Position:        c.Position,
		Type:            domain.CardType(c.Type),
		Front:           c.Front,
		Back:            c.Back,
		Options:         c.Options,
		AcceptedAnswers: c.AcceptedAnswers,
		Lifecycle:       domain.Active(),
	}
	if c.IsFavorite != nil {
		card.IsFavorite = *c.IsFavorite
	}
	if c.IsIgnored != nil {
		card.IsIgnored = *c.IsIgnored
	}
	return card
}

func toDomainCards(in []wireCard) []domain.Card {
	out := make([]domain.Card, len(in))
	for i, c := range in {
		out[i] = c.toDomain()
	}
	return out
}

func (d wireDeck) toDomain() *domain.OwnerDeck {
	deck := &domain.OwnerDeck{
		ID:      d.ID,
		OwnerID: d.OwnerID,
		DeckMeta: domain.DeckMeta{
			Name:       d.Name,
			Emoji:      d.Emoji,
			Color:      d.Color,
			Category:   d.Category,
			Subtopic:   d.Subtopic,
			Difficulty: domain.Difficulty(d.Difficulty),
		},
		Cards:             toDomainCards(d.Cards),
		PublishedRef:      d.PublishedID,
		LastSyncedVersion: d.LastSyncedVersion,
		Publication:       domain.Active(),
		Revision:          d.Revision,
		UpdatedAt:         d.UpdatedAt,
	}
	if d.PublishBanned {
		deck.Publication = domain.Lifecycle{State: domain.LifecyclePublishBanned, Reason: d.BanReason}
	}
	if s := d.Source; s != nil {
		deck.Source = &domain.ImportSource{
			CommunityDeckID:     s.CommunityDeckID,
			AuthorID:            s.AuthorID,
			ImportedFromVersion: s.ImportedFromVersion,
			AuthorCopy:          s.AuthorCopy,
		}
	}
	return deck
}

func (p wirePublished) toDomain() *domain.PublishedDeck {
	return &domain.PublishedDeck{
		ID:             p.ID,
		OriginalDeckID: p.OriginalDeckID,
		AuthorID:       p.AuthorID,
		Version:        p.Version,
		DeckMeta: domain.DeckMeta{
			Name:       p.Name,
			Emoji:      p.Emoji,
			Color:      p.Color,
			Category:   p.Category,
			Subtopic:   p.Subtopic,
			Difficulty: domain.Difficulty(p.Difficulty),
		},
		Cards:     toDomainCards(p.Cards),
		CardCount: p.CardCount,
		Featured:  p.Featured,
		Downloads: p.Downloads,
		Lifecycle: domain.Active(),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
