package publication

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/flashdeck-backend/internal/adapter/memory"
	"github.com/heartmarshall/flashdeck-backend/internal/domain"
)

func newMemoryService(t *testing.T) (*Service, *memory.Store) {
	t.Helper()
	store := memory.New()
	svc := NewService(slog.Default(),
		store.Decks(), store.Published(), store.Feedback(), store.Notifications(), store.Audit(), store,
		testCfg,
	)
	return svc, store
}

func seedDeck(t *testing.T, store *memory.Store, owner uuid.UUID, n int) *domain.OwnerDeck {
	t.Helper()
	d, err := store.Decks().Create(context.Background(), ownerDeck(owner, n))
	require.NoError(t, err)
	return d
}

func editDeck(t *testing.T, store *memory.Store, deckID uuid.UUID, edit func(d *domain.OwnerDeck)) {
	t.Helper()
	ctx := context.Background()
	d, err := store.Decks().GetByID(ctx, deckID)
	require.NoError(t, err)
	edit(d)
	require.NoError(t, store.Decks().ReplaceCards(ctx, d.ID, d.Cards))
	_, err = store.Decks().Update(ctx, d)
	require.NoError(t, err)
}

func TestFlow_TooFewCardsBeforeAndAfterPublish(t *testing.T) {
	t.Parallel()
	svc, store := newMemoryService(t)
	owner := uuid.New()
	ctx := userCtx(owner)

	short := seedDeck(t, store, owner, 9)
	_, err := svc.Publish(ctx, PublishInput{DeckID: short.ID})
	assertReason(t, err, domain.PreconditionTooFewCards)

	deck := seedDeck(t, store, owner, 10)
	first, err := svc.Publish(ctx, PublishInput{DeckID: deck.ID})
	require.NoError(t, err)

	editDeck(t, store, deck.ID, func(d *domain.OwnerDeck) { d.Cards = d.Cards[:9] })
	_, err = svc.Publish(ctx, PublishInput{DeckID: deck.ID})
	assertReason(t, err, domain.PreconditionTooFewCards)

	p, err := svc.GetPublished(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Version)
}

func TestFlow_RepublishWithoutChanges(t *testing.T) {
	t.Parallel()
	svc, store := newMemoryService(t)
	owner := uuid.New()
	ctx := userCtx(owner)
	deck := seedDeck(t, store, owner, 10)

	first, err := svc.Publish(ctx, PublishInput{DeckID: deck.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, first.Version)

	_, err = svc.Publish(ctx, PublishInput{DeckID: deck.ID})
	assertReason(t, err, domain.PreconditionNoChanges)
	assert.Equal(t, domain.KindPreconditionFailed, domain.KindOf(err))

	p, err := svc.GetPublished(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, p.Version)
}

func TestFlow_RepublishAfterEditBumpsVersionByOne(t *testing.T) {
	t.Parallel()
	svc, store := newMemoryService(t)
	owner := uuid.New()
	ctx := userCtx(owner)
	deck := seedDeck(t, store, owner, 10)

	first, err := svc.Publish(ctx, PublishInput{DeckID: deck.ID})
	require.NoError(t, err)

	editDeck(t, store, deck.ID, func(d *domain.OwnerDeck) { d.Cards[3].Back = "corrected" })

	second, err := svc.Publish(ctx, PublishInput{DeckID: deck.ID})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "republish updates in place")
	assert.Equal(t, first.Version+1, second.Version)

	p, err := svc.GetPublished(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, "corrected", p.Cards[3].Back)

	d, err := store.Decks().GetByID(ctx, deck.ID)
	require.NoError(t, err)
	assert.Equal(t, second.Version, d.LastSyncedVersion)
}

func TestFlow_ModerationSoftDeleteBansDeck(t *testing.T) {
	t.Parallel()
	svc, store := newMemoryService(t)
	author := uuid.New()
	deck := seedDeck(t, store, author, 10)

	p, err := svc.Publish(userCtx(author), PublishInput{DeckID: deck.ID})
	require.NoError(t, err)

	require.NoError(t, svc.ModerationSoftDelete(moderatorCtx(uuid.New()), p.ID, "plagiarism"))

	listed, total, err := svc.ListPublic(context.Background(), ListInput{})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, listed)

	_, err = svc.GetPublished(context.Background(), p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	d, err := store.Decks().GetByID(context.Background(), deck.ID)
	require.NoError(t, err)
	assert.True(t, d.IsPublishBanned())
	assert.Equal(t, "plagiarism", d.Publication.Reason)

	// Fixing the deck does not help.
	editDeck(t, store, deck.ID, func(d *domain.OwnerDeck) {
		d.Cards = append(d.Cards, makeCards(5)...)
	})
	_, err = svc.Publish(userCtx(author), PublishInput{DeckID: deck.ID})
	assertReason(t, err, domain.PreconditionPublishBanned)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	notes, err := store.Notifications().ListByUser(context.Background(), author, 10)
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, domain.NotificationDeckRemoved, notes[0].Kind)

	// Restoring the record does not lift the ban.
	_, err = svc.ModerationRestore(moderatorCtx(uuid.New()), p.ID)
	require.NoError(t, err)
	_, err = svc.Publish(userCtx(author), PublishInput{DeckID: deck.ID})
	assertReason(t, err, domain.PreconditionPublishBanned)

	_, err = svc.LiftPublishBan(moderatorCtx(uuid.New()), deck.ID)
	require.NoError(t, err)
	republished, err := svc.Publish(userCtx(author), PublishInput{DeckID: deck.ID})
	require.NoError(t, err)
	assert.Equal(t, 2, republished.Version)
}

func TestFlow_LiftBanWithoutRestoreStartsFresh(t *testing.T) {
	t.Parallel()
	svc, store := newMemoryService(t)
	author := uuid.New()
	deck := seedDeck(t, store, author, 10)

	p, err := svc.Publish(userCtx(author), PublishInput{DeckID: deck.ID})
	require.NoError(t, err)
	require.NoError(t, svc.ModerationSoftDelete(moderatorCtx(uuid.New()), p.ID, "plagiarism"))

	lifted, err := svc.LiftPublishBan(moderatorCtx(uuid.New()), deck.ID)
	require.NoError(t, err)
	assert.False(t, lifted.IsPublishBanned())
	assert.Nil(t, lifted.PublishedRef, "link to the removed deck is dropped")

	fresh, err := svc.Publish(userCtx(author), PublishInput{DeckID: deck.ID})
	require.NoError(t, err)
	assert.NotEqual(t, p.ID, fresh.ID)
	assert.Equal(t, 1, fresh.Version)

	// The removed record stays hidden.
	_, err = svc.GetPublished(context.Background(), p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestFlow_CardRemovalSurvivesRepublish(t *testing.T) {
	t.Parallel()
	svc, store := newMemoryService(t)
	author := uuid.New()
	deck := seedDeck(t, store, author, 11)

	p, err := svc.Publish(userCtx(author), PublishInput{DeckID: deck.ID})
	require.NoError(t, err)

	target := p.Cards[2].ID
	require.NoError(t, svc.ModerationSoftDeleteCard(moderatorCtx(uuid.New()), p.ID, target, "offensive"))

	got, err := svc.GetPublished(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Len(t, got.Cards, 10)
	assert.Equal(t, 1, got.Version, "card removal is not a content version")

	_, err = svc.Publish(userCtx(author), PublishInput{DeckID: deck.ID})
	assertReason(t, err, domain.PreconditionNoChanges)

	editDeck(t, store, deck.ID, func(d *domain.OwnerDeck) { d.Name = "Renamed" })
	_, err = svc.Publish(userCtx(author), PublishInput{DeckID: deck.ID})
	require.NoError(t, err)

	got, err = svc.GetPublished(context.Background(), p.ID)
	require.NoError(t, err)
	for _, c := range got.Cards {
		assert.NotEqual(t, target, c.ID, "removed card came back")
	}
}

func TestFlow_UnpublishCascades(t *testing.T) {
	t.Parallel()
	svc, store := newMemoryService(t)
	author := uuid.New()
	deck := seedDeck(t, store, author, 10)
	ctx := userCtx(author)

	p, err := svc.Publish(ctx, PublishInput{DeckID: deck.ID})
	require.NoError(t, err)

	_, err = store.Feedback().AddComment(ctx, domain.Comment{PublishedID: p.ID, AuthorID: uuid.New(), Body: "nice"})
	require.NoError(t, err)
	require.NoError(t, store.Feedback().AddRating(ctx, domain.Rating{PublishedID: p.ID, UserID: uuid.New(), Score: 5}))

	err = svc.Unpublish(userCtx(uuid.New()), p.ID)
	require.ErrorIs(t, err, domain.ErrForbidden)

	require.NoError(t, svc.Unpublish(ctx, p.ID))

	_, err = svc.GetPublished(ctx, p.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	ratings, comments := store.Feedback().CountByPublishedID(ctx, p.ID)
	assert.Zero(t, ratings)
	assert.Zero(t, comments)

	d, err := store.Decks().GetByID(ctx, deck.ID)
	require.NoError(t, err)
	assert.Nil(t, d.PublishedRef)

	again, err := svc.Publish(ctx, PublishInput{DeckID: deck.ID})
	require.NoError(t, err)
	assert.NotEqual(t, p.ID, again.ID)
	assert.Equal(t, 1, again.Version)
}

func TestFlow_FeatureToggle(t *testing.T) {
	t.Parallel()
	svc, store := newMemoryService(t)
	author := uuid.New()
	deck := seedDeck(t, store, author, 10)
	p, err := svc.Publish(userCtx(author), PublishInput{DeckID: deck.ID})
	require.NoError(t, err)

	_, err = svc.FeatureToggle(userCtx(author), p.ID)
	require.ErrorIs(t, err, domain.ErrForbidden)

	mod := moderatorCtx(uuid.New())
	on, err := svc.FeatureToggle(mod, p.ID)
	require.NoError(t, err)
	assert.True(t, on)

	listed, _, err := svc.ListPublic(context.Background(), ListInput{FeaturedOnly: true})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, 1, listed[0].Version)

	off, err := svc.FeatureToggle(mod, p.ID)
	require.NoError(t, err)
	assert.False(t, off)
}
