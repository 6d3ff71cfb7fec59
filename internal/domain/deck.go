package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DeckMeta is the descriptive part of a deck that is copied into snapshots.
type DeckMeta struct {
	Name       string
	Emoji      string
	Color      string
	Category   string
	Subtopic   string
	Difficulty Difficulty
}

// Snapshot is the comparable content of a deck: metadata plus ordered cards.
type Snapshot struct {
	Meta  DeckMeta
	Cards []Card
}

// ImportSource links a replica to the published deck it was copied from.
type ImportSource struct {
	CommunityDeckID     uuid.UUID
	AuthorID            uuid.UUID
	ImportedFromVersion int
	// AuthorCopy marks the author's own re-import of their published deck.
	AuthorCopy bool
}

// OwnerDeck is a user's private working copy. A deck with a non-nil Source is
// an imported replica; it is still owned exclusively by OwnerID.
type OwnerDeck struct {
	ID      uuid.UUID
	OwnerID uuid.UUID
	DeckMeta
	Cards []Card

	PublishedRef      *uuid.UUID
	LastSyncedVersion int
	Source            *ImportSource

	// Publication is Active or PublishBanned.
	Publication Lifecycle

	// Revision guards compare-and-swap writes; it is not a content version.
	Revision  int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CardCount returns the number of cards that count towards publishing.
func (d *OwnerDeck) CardCount() int {
	return len(ActiveCards(d.Cards))
}

// Visible returns a copy without the cards moderation removed from a replica.
func (d *OwnerDeck) Visible() *OwnerDeck {
	cp := *d
	cp.Cards = CloneCards(ActiveCards(d.Cards))
	return &cp
}

// IsReplica reports whether the deck was imported from a published deck.
func (d *OwnerDeck) IsReplica() bool {
	return d.Source != nil
}

// IsPublishBanned reports whether publishing this deck is blocked by moderation.
func (d *OwnerDeck) IsPublishBanned() bool {
	return d.Publication.IsPublishBanned()
}

// Snapshot builds the publishable snapshot of the deck from its active cards.
func (d *OwnerDeck) Snapshot() Snapshot {
	return Snapshot{Meta: d.DeckMeta, Cards: CloneCards(ActiveCards(d.Cards))}
}

// UpdateAvailable reports whether p holds a newer version than this replica.
// Decks that are not replicas of p never have an update.
func (d *OwnerDeck) UpdateAvailable(p *PublishedDeck) bool {
	if d.Source == nil || p == nil || d.Source.CommunityDeckID != p.ID {
		return false
	}
	return p.Version > d.Source.ImportedFromVersion
}

// Key returns the composite record key of the deck.
func (d *OwnerDeck) Key() RecordKey {
	return NewRecordKey("deck", d.OwnerID, d.ID)
}

// PublishedDeck is the public, read-only snapshot of an owner deck.
type PublishedDeck struct {
	ID             uuid.UUID
	OriginalDeckID uuid.UUID
	AuthorID       uuid.UUID
	// Version starts at 1 and increases only on a material change.
	Version int
	DeckMeta
	// Cards includes soft-deleted cards; read paths filter them.
	Cards     []Card
	CardCount int
	Featured  bool
	Downloads int
	Lifecycle Lifecycle

	Revision  int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Snapshot returns the full stored snapshot, removed cards included.
func (p *PublishedDeck) Snapshot() Snapshot {
	return Snapshot{Meta: p.DeckMeta, Cards: CloneCards(p.Cards)}
}

// IsDeleted reports whether moderation removed the deck.
func (p *PublishedDeck) IsDeleted() bool {
	return p.Lifecycle.IsSoftDeleted()
}

// Public returns a copy with soft-deleted cards stripped, for read paths.
func (p *PublishedDeck) Public() *PublishedDeck {
	cp := *p
	cp.Cards = CloneCards(ActiveCards(p.Cards))
	cp.CardCount = len(cp.Cards)
	return &cp
}

// Key returns the composite record key of the published deck.
func (p *PublishedDeck) Key() RecordKey {
	return NewRecordKey("published", p.AuthorID, p.ID)
}

// PublishedListFilter narrows the public community listing.
type PublishedListFilter struct {
	Category     string
	FeaturedOnly bool
	AuthorID     *uuid.UUID
	Limit        int
	Offset       int
}

// RecordKey is the flat composite identifier <kind>:<ownerId>:<entityId>.
type RecordKey string

// NewRecordKey formats a composite record key.
func NewRecordKey(kind string, ownerID, entityID uuid.UUID) RecordKey {
	return RecordKey(fmt.Sprintf("%s:%s:%s", kind, ownerID, entityID))
}

func (k RecordKey) String() string { return string(k) }
