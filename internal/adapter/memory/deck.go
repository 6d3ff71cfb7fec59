package memory

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/flashdeck-backend/internal/domain"
)

// DeckRepo stores owner decks and imported replicas.
type DeckRepo struct {
	s *Store
}

func deckCards(cards []domain.Card) []domain.Card {
	return normalizeCards(cards, true)
}

// GetByID returns a copy of the deck.
func (r *DeckRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.OwnerDeck, error) {
	var out *domain.OwnerDeck
	err := r.s.read(func(st *state) error {
		d, ok := st.deckByID(id)
		if !ok {
			return notFound("deck", id)
		}
		out = cloneDeck(d)
		return nil
	})
	return out, err
}

// FindBySource returns ownerID's replica of publishedID.
func (r *DeckRepo) FindBySource(_ context.Context, ownerID, publishedID uuid.UUID) (*domain.OwnerDeck, error) {
	var out *domain.OwnerDeck
	err := r.s.read(func(st *state) error {
		for _, d := range st.decks {
			if d.OwnerID == ownerID && d.Source != nil && d.Source.CommunityDeckID == publishedID {
				out = cloneDeck(d)
				return nil
			}
		}
		return fmt.Errorf("replica of published_deck %s: %w", publishedID, domain.ErrNotFound)
	})
	return out, err
}

// Create stores a new deck with revision 1. An owner may hold one replica per
// published deck.
func (r *DeckRepo) Create(ctx context.Context, d *domain.OwnerDeck) (*domain.OwnerDeck, error) {
	var out *domain.OwnerDeck
	err := r.s.write(ctx, func(st *state) error {
		if _, ok := st.deckKeys[d.ID]; ok {
			return fmt.Errorf("deck %s: %w", d.ID, domain.ErrAlreadyExists)
		}
		if d.Source != nil {
			for _, other := range st.decks {
				if other.OwnerID == d.OwnerID && other.Source != nil && other.Source.CommunityDeckID == d.Source.CommunityDeckID {
					return fmt.Errorf("deck %s: %w", d.ID, domain.ErrAlreadyExists)
				}
			}
		}

		now := r.s.stamp()
		stored := cloneDeck(d)
		stored.Cards = deckCards(d.Cards)
		if stored.Publication.State == "" {
			stored.Publication = domain.Active()
		}
		stored.Revision = 1
		stored.CreatedAt = now
		stored.UpdatedAt = now

		st.decks[stored.Key()] = stored
		st.deckKeys[stored.ID] = stored.Key()
		out = cloneDeck(stored)
		return nil
	})
	return out, err
}

// Update writes every field except cards when d.Revision matches.
func (r *DeckRepo) Update(ctx context.Context, d *domain.OwnerDeck) (*domain.OwnerDeck, error) {
	var out *domain.OwnerDeck
	err := r.s.write(ctx, func(st *state) error {
		cur, ok := st.deckByID(d.ID)
		if !ok {
			return notFound("deck", d.ID)
		}
		if cur.Revision != d.Revision {
			return stale("deck", d.ID, d.Revision)
		}

		next := cloneDeck(d)
		next.OwnerID = cur.OwnerID
		next.Cards = cur.Cards
		next.CreatedAt = cur.CreatedAt
		next.Revision = cur.Revision + 1
		next.UpdatedAt = r.s.stamp()
		st.decks[cur.Key()] = next

		out = cloneDeck(next)
		out.Cards = domain.CloneCards(d.Cards)
		return nil
	})
	return out, err
}

// ReplaceCards swaps the deck's cards. It does not bump the revision.
func (r *DeckRepo) ReplaceCards(ctx context.Context, deckID uuid.UUID, cards []domain.Card) error {
	return r.s.write(ctx, func(st *state) error {
		d, ok := st.deckByID(deckID)
		if !ok {
			return notFound("deck", deckID)
		}
		d.Cards = deckCards(cards)
		return nil
	})
}

// ClearPublishedRef unlinks every deck pointing at publishedID.
func (r *DeckRepo) ClearPublishedRef(ctx context.Context, publishedID uuid.UUID) (int64, error) {
	var n int64
	err := r.s.write(ctx, func(st *state) error {
		now := r.s.stamp()
		for _, d := range st.decks {
			if d.PublishedRef != nil && *d.PublishedRef == publishedID {
				d.PublishedRef = nil
				d.Revision++
				d.UpdatedAt = now
				n++
			}
		}
		return nil
	})
	return n, err
}

// SoftDeleteCardInReplicas marks cardID removed in every replica of
// publishedID and returns how many replicas changed.
func (r *DeckRepo) SoftDeleteCardInReplicas(ctx context.Context, publishedID, cardID uuid.UUID, l domain.Lifecycle) (int64, error) {
	var n int64
	err := r.s.write(ctx, func(st *state) error {
		for _, d := range st.decks {
			if d.Source == nil || d.Source.CommunityDeckID != publishedID {
				continue
			}
			for i := range d.Cards {
				if d.Cards[i].ID == cardID && d.Cards[i].Lifecycle.IsActive() {
					d.Cards[i].Lifecycle = l
					n++
				}
			}
		}
		return nil
	})
	return n, err
}

// SetCardFlag sets a replica-local annotation and returns the card. Removed
// cards are not found.
func (r *DeckRepo) SetCardFlag(ctx context.Context, deckID, cardID uuid.UUID, flag domain.CardFlag, value bool) (domain.Card, error) {
	var out domain.Card
	err := r.s.write(ctx, func(st *state) error {
		d, ok := st.deckByID(deckID)
		if !ok {
			return notFound("card", cardID)
		}
		for i := range d.Cards {
			if d.Cards[i].ID != cardID || !d.Cards[i].Lifecycle.IsActive() {
				continue
			}
			switch flag {
			case domain.CardFlagFavorite:
				d.Cards[i].IsFavorite = value
			case domain.CardFlagIgnored:
				d.Cards[i].IsIgnored = value
			default:
				return domain.NewValidationError("flag", "unknown card flag")
			}
			out = d.Cards[i].Clone()
			return nil
		}
		return notFound("card", cardID)
	})
	return out, err
}

func (st *state) deckByID(id uuid.UUID) (*domain.OwnerDeck, bool) {
	key, ok := st.deckKeys[id]
	if !ok {
		return nil, false
	}
	d, ok := st.decks[key]
	return d, ok
}
