// Package memory is an in-process implementation of the repository contracts
// of the postgres adapter. It backs the server in `database.driver: memory`
// mode and the end-to-end service tests.
//
// Writes are revision-checked exactly like the SQL repositories. RunInTx
// serializes transactions and restores the pre-transaction state when the
// callback fails.
package memory

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/flashdeck-backend/internal/domain"
)

type txKey struct{}

// Store holds every record kind behind one lock.
type Store struct {
	// txMu serializes writers: a transaction holds it for its whole callback,
	// a write outside a transaction holds it for that single write.
	txMu sync.Mutex
	mu   sync.RWMutex

	state state
	now   func() time.Time
}

type state struct {
	decks     map[domain.RecordKey]*domain.OwnerDeck
	deckKeys  map[uuid.UUID]domain.RecordKey
	published map[domain.RecordKey]*domain.PublishedDeck
	pubKeys   map[uuid.UUID]domain.RecordKey

	comments map[uuid.UUID]*domain.Comment
	ratings  map[uuid.UUID][]domain.Rating

	tickets map[uuid.UUID]*domain.Ticket
	actions map[uuid.UUID][]domain.TicketAction

	notifications []domain.Notification
	audit         []domain.AuditRecord
}

// New creates an empty store.
func New() *Store {
	return &Store{state: newState(), now: func() time.Time { return time.Now().UTC() }}
}

func newState() state {
	return state{
		decks:     make(map[domain.RecordKey]*domain.OwnerDeck),
		deckKeys:  make(map[uuid.UUID]domain.RecordKey),
		published: make(map[domain.RecordKey]*domain.PublishedDeck),
		pubKeys:   make(map[uuid.UUID]domain.RecordKey),
		comments:  make(map[uuid.UUID]*domain.Comment),
		ratings:   make(map[uuid.UUID][]domain.Rating),
		tickets:   make(map[uuid.UUID]*domain.Ticket),
		actions:   make(map[uuid.UUID][]domain.TicketAction),
	}
}

// Ping always succeeds; it lets the store stand in for the pool in health checks.
func (s *Store) Ping(context.Context) error { return nil }

// Decks returns the owner deck repository view of the store.
func (s *Store) Decks() *DeckRepo { return &DeckRepo{s: s} }

// Published returns the published deck repository view of the store.
func (s *Store) Published() *PublishedRepo { return &PublishedRepo{s: s} }

// Feedback returns the ratings and comments repository view of the store.
func (s *Store) Feedback() *FeedbackRepo { return &FeedbackRepo{s: s} }

// Tickets returns the moderation ticket repository view of the store.
func (s *Store) Tickets() *TicketRepo { return &TicketRepo{s: s} }

// Notifications returns the owner notification repository view of the store.
func (s *Store) Notifications() *NotificationRepo { return &NotificationRepo{s: s} }

// Audit returns the audit log repository view of the store.
func (s *Store) Audit() *AuditRepo { return &AuditRepo{s: s} }

// RunInTx runs fn with exclusive write access. If fn returns an error every
// change it made is discarded. A nested call joins the outer transaction.
func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if inTx(ctx) {
		return fn(ctx)
	}

	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	saved := s.state.clone()
	s.mu.RUnlock()

	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		s.mu.Lock()
		s.state = saved
		s.mu.Unlock()
		return err
	}
	return nil
}

func inTx(ctx context.Context) bool {
	v, _ := ctx.Value(txKey{}).(bool)
	return v
}

// write runs fn under the write lock, taking the writer lock first unless
// ctx already belongs to a transaction.
func (s *Store) write(ctx context.Context, fn func(st *state) error) error {
	if !inTx(ctx) {
		s.txMu.Lock()
		defer s.txMu.Unlock()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(&s.state)
}

func (s *Store) read(fn func(st *state) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(&s.state)
}

func (s *Store) stamp() time.Time {
	return s.now().Truncate(time.Microsecond)
}

func (st state) clone() state {
	out := newState()
	for k, d := range st.decks {
		out.decks[k] = cloneDeck(d)
	}
	maps.Copy(out.deckKeys, st.deckKeys)
	for k, p := range st.published {
		out.published[k] = clonePublished(p)
	}
	maps.Copy(out.pubKeys, st.pubKeys)
	for id, c := range st.comments {
		cp := *c
		out.comments[id] = &cp
	}
	for id, r := range st.ratings {
		out.ratings[id] = slices.Clone(r)
	}
	for id, t := range st.tickets {
		out.tickets[id] = cloneTicket(t)
	}
	for id, a := range st.actions {
		out.actions[id] = slices.Clone(a)
	}
	out.notifications = slices.Clone(st.notifications)
	out.audit = slices.Clone(st.audit)
	return out
}

func notFound(entity string, id uuid.UUID) error {
	return fmt.Errorf("%s %s: %w", entity, id, domain.ErrNotFound)
}

func stale(entity string, id uuid.UUID, revision int64) error {
	return fmt.Errorf("%s %s: revision %d is stale: %w", entity, id, revision, domain.ErrConflict)
}

func cloneDeck(d *domain.OwnerDeck) *domain.OwnerDeck {
	cp := *d
	cp.Cards = domain.CloneCards(d.Cards)
	if d.PublishedRef != nil {
		ref := *d.PublishedRef
		cp.PublishedRef = &ref
	}
	if d.Source != nil {
		src := *d.Source
		cp.Source = &src
	}
	return &cp
}

func clonePublished(p *domain.PublishedDeck) *domain.PublishedDeck {
	cp := *p
	cp.Cards = domain.CloneCards(p.Cards)
	return &cp
}

func cloneTicket(t *domain.Ticket) *domain.Ticket {
	cp := *t
	if t.TargetDeckID != nil {
		id := *t.TargetDeckID
		cp.TargetDeckID = &id
	}
	if t.AssignedTo != nil {
		id := *t.AssignedTo
		cp.AssignedTo = &id
	}
	if t.Escalation != nil {
		e := *t.Escalation
		cp.Escalation = &e
	}
	if t.Resolution != nil {
		r := *t.Resolution
		cp.Resolution = &r
	}
	return &cp
}

// normalizeCards renumbers positions and defaults the lifecycle, matching
// what the SQL adapter stores.
func normalizeCards(cards []domain.Card, withFlags bool) []domain.Card {
	out := domain.CloneCards(cards)
	for i := range out {
		out[i].Position = i
		if out[i].Lifecycle.State == "" {
			out[i].Lifecycle = domain.Active()
		}
		if !withFlags {
			out[i].IsFavorite, out[i].IsIgnored = false, false
		}
	}
	return out
}
