package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/heartmarshall/flashdeck-backend/internal/domain"
)

// PublishedRepo stores published decks with their full card snapshots.
type PublishedRepo struct {
	s *Store
}

// GetByID returns the deck with every card, soft-deleted ones included.
func (r *PublishedRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.PublishedDeck, error) {
	var out *domain.PublishedDeck
	err := r.s.read(func(st *state) error {
		p, ok := st.publishedByID(id)
		if !ok {
			return notFound("published_deck", id)
		}
		out = clonePublished(p)
		return nil
	})
	return out, err
}

// ListPublic returns active decks without cards, featured first, then most
// recently updated, with the total count for the filter.
func (r *PublishedRepo) ListPublic(_ context.Context, filter domain.PublishedListFilter) ([]domain.PublishedDeck, int, error) {
	var (
		out   []domain.PublishedDeck
		total int
	)
	err := r.s.read(func(st *state) error {
		var matched []domain.PublishedDeck
		for _, p := range st.published {
			if !p.Lifecycle.IsActive() {
				continue
			}
			if filter.Category != "" && p.Category != filter.Category {
				continue
			}
			if filter.FeaturedOnly && !p.Featured {
				continue
			}
			if filter.AuthorID != nil && p.AuthorID != *filter.AuthorID {
				continue
			}
			cp := *p
			cp.Cards = nil
			matched = append(matched, cp)
		}

		slices.SortFunc(matched, func(a, b domain.PublishedDeck) int {
			if a.Featured != b.Featured {
				if a.Featured {
					return -1
				}
				return 1
			}
			if c := b.UpdatedAt.Compare(a.UpdatedAt); c != 0 {
				return c
			}
			return cmp.Compare(a.ID.String(), b.ID.String())
		})

		total = len(matched)
		start := min(max(filter.Offset, 0), total)
		end := total
		if filter.Limit > 0 {
			end = min(start+filter.Limit, total)
		}
		out = matched[start:end]
		return nil
	})
	return out, total, err
}

// Create stores a new published deck with revision 1.
func (r *PublishedRepo) Create(ctx context.Context, p *domain.PublishedDeck) (*domain.PublishedDeck, error) {
	var out *domain.PublishedDeck
	err := r.s.write(ctx, func(st *state) error {
		if _, ok := st.pubKeys[p.ID]; ok {
			return fmt.Errorf("published_deck %s: %w", p.ID, domain.ErrAlreadyExists)
		}

		now := r.s.stamp()
		stored := clonePublished(p)
		stored.Cards = normalizeCards(p.Cards, false)
		if stored.Lifecycle.State == "" {
			stored.Lifecycle = domain.Active()
		}
		stored.Revision = 1
		stored.CreatedAt = now
		stored.UpdatedAt = now

		st.published[stored.Key()] = stored
		st.pubKeys[stored.ID] = stored.Key()
		out = clonePublished(stored)
		return nil
	})
	return out, err
}

// Update writes version, metadata, card count, featured and lifecycle when
// p.Revision matches. Cards and downloads are left alone.
func (r *PublishedRepo) Update(ctx context.Context, p *domain.PublishedDeck) (*domain.PublishedDeck, error) {
	var out *domain.PublishedDeck
	err := r.s.write(ctx, func(st *state) error {
		cur, ok := st.publishedByID(p.ID)
		if !ok {
			return notFound("published_deck", p.ID)
		}
		if cur.Revision != p.Revision {
			return stale("published_deck", p.ID, p.Revision)
		}

		cur.Version = p.Version
		cur.DeckMeta = p.DeckMeta
		cur.CardCount = p.CardCount
		cur.Featured = p.Featured
		cur.Lifecycle = p.Lifecycle
		cur.Revision++
		cur.UpdatedAt = r.s.stamp()

		out = clonePublished(p)
		out.Revision = cur.Revision
		out.UpdatedAt = cur.UpdatedAt
		return nil
	})
	return out, err
}

// ReplaceCards swaps the stored snapshot.
func (r *PublishedRepo) ReplaceCards(ctx context.Context, publishedID uuid.UUID, cards []domain.Card) error {
	return r.s.write(ctx, func(st *state) error {
		p, ok := st.publishedByID(publishedID)
		if !ok {
			return notFound("published_deck", publishedID)
		}
		p.Cards = normalizeCards(cards, false)
		return nil
	})
}

// SetCardLifecycle changes the moderation state of one card.
func (r *PublishedRepo) SetCardLifecycle(ctx context.Context, publishedID, cardID uuid.UUID, l domain.Lifecycle) error {
	return r.s.write(ctx, func(st *state) error {
		p, ok := st.publishedByID(publishedID)
		if !ok {
			return notFound("published_card", cardID)
		}
		for i := range p.Cards {
			if p.Cards[i].ID == cardID {
				p.Cards[i].Lifecycle = l
				return nil
			}
		}
		return notFound("published_card", cardID)
	})
}

// IncrementDownloads bumps the download counter without touching the revision.
func (r *PublishedRepo) IncrementDownloads(ctx context.Context, id uuid.UUID) error {
	return r.s.write(ctx, func(st *state) error {
		p, ok := st.publishedByID(id)
		if !ok {
			return notFound("published_deck", id)
		}
		p.Downloads++
		return nil
	})
}

// Delete removes the deck and its snapshot.
func (r *PublishedRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.s.write(ctx, func(st *state) error {
		key, ok := st.pubKeys[id]
		if !ok {
			return notFound("published_deck", id)
		}
		delete(st.published, key)
		delete(st.pubKeys, id)
		return nil
	})
}

func (st *state) publishedByID(id uuid.UUID) (*domain.PublishedDeck, bool) {
	key, ok := st.pubKeys[id]
	if !ok {
		return nil, false
	}
	p, ok := st.published[key]
	return p, ok
}
