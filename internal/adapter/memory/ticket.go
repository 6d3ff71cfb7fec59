package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/heartmarshall/flashdeck-backend/internal/domain"
)

// TicketRepo stores moderation tickets and their action logs.
type TicketRepo struct {
	s *Store
}

// GetByID returns a copy of the ticket.
func (r *TicketRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Ticket, error) {
	var out *domain.Ticket
	err := r.s.read(func(st *state) error {
		t, ok := st.tickets[id]
		if !ok {
			return notFound("ticket", id)
		}
		out = cloneTicket(t)
		return nil
	})
	return out, err
}

// List returns the moderator queue: escalated first, then oldest first.
func (r *TicketRepo) List(_ context.Context, filter domain.TicketListFilter) ([]domain.Ticket, int, error) {
	var (
		out   []domain.Ticket
		total int
	)
	err := r.s.read(func(st *state) error {
		var matched []domain.Ticket
		for _, t := range st.tickets {
			if filter.Status != nil && t.Status != *filter.Status {
				continue
			}
			if filter.AssignedTo != nil && (t.AssignedTo == nil || *t.AssignedTo != *filter.AssignedTo) {
				continue
			}
			if filter.Unassigned && t.AssignedTo != nil {
				continue
			}
			if filter.EscalatedOnly && !t.IsEscalated() {
				continue
			}
			matched = append(matched, *cloneTicket(t))
		}

		slices.SortFunc(matched, func(a, b domain.Ticket) int {
			if a.IsEscalated() != b.IsEscalated() {
				if a.IsEscalated() {
					return -1
				}
				return 1
			}
			if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
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

// ListActions returns the action log of a ticket in seq order.
func (r *TicketRepo) ListActions(_ context.Context, ticketID uuid.UUID) ([]domain.TicketAction, error) {
	var out []domain.TicketAction
	err := r.s.read(func(st *state) error {
		out = slices.Clone(st.actions[ticketID])
		return nil
	})
	return out, err
}

// Create stores a new ticket with revision 1.
func (r *TicketRepo) Create(ctx context.Context, t *domain.Ticket) (*domain.Ticket, error) {
	var out *domain.Ticket
	err := r.s.write(ctx, func(st *state) error {
		if _, ok := st.tickets[t.ID]; ok {
			return fmt.Errorf("ticket %s: %w", t.ID, domain.ErrAlreadyExists)
		}
		now := r.s.stamp()
		stored := cloneTicket(t)
		stored.Revision = 1
		stored.CreatedAt = now
		stored.UpdatedAt = now
		st.tickets[t.ID] = stored
		out = cloneTicket(stored)
		return nil
	})
	return out, err
}

// Update writes the mutable ticket fields when t.Revision matches.
func (r *TicketRepo) Update(ctx context.Context, t *domain.Ticket) (*domain.Ticket, error) {
	var out *domain.Ticket
	err := r.s.write(ctx, func(st *state) error {
		cur, ok := st.tickets[t.ID]
		if !ok {
			return notFound("ticket", t.ID)
		}
		if cur.Revision != t.Revision {
			return stale("ticket", t.ID, t.Revision)
		}

		next := cloneTicket(cur)
		next.Status = t.Status
		next.AssignedTo = cloneTicket(t).AssignedTo
		next.Escalation = cloneTicket(t).Escalation
		next.Resolution = cloneTicket(t).Resolution
		next.Revision = cur.Revision + 1
		next.UpdatedAt = r.s.stamp()
		st.tickets[t.ID] = next

		out = cloneTicket(next)
		return nil
	})
	return out, err
}

// AppendActions appends entries with consecutive seq numbers.
func (r *TicketRepo) AppendActions(ctx context.Context, ticketID uuid.UUID, actions []domain.TicketAction) ([]domain.TicketAction, error) {
	if len(actions) == 0 {
		return nil, nil
	}

	var out []domain.TicketAction
	err := r.s.write(ctx, func(st *state) error {
		if _, ok := st.tickets[ticketID]; !ok {
			return notFound("ticket", ticketID)
		}

		log := st.actions[ticketID]
		var seq int64
		if len(log) > 0 {
			seq = log[len(log)-1].Seq
		}

		now := r.s.stamp()
		out = make([]domain.TicketAction, len(actions))
		for i, a := range actions {
			seq++
			a.ID = uuid.New()
			a.TicketID = ticketID
			a.Seq = seq
			a.CreatedAt = now
			out[i] = a
		}
		st.actions[ticketID] = append(log, out...)
		return nil
	})
	return out, err
}
