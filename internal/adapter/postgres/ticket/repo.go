// Package ticket implements the moderation ticket repository using
// PostgreSQL. The ticket row is mutable and revision-guarded; the action
// log is append-only.
package ticket

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/flashdeck-backend/internal/adapter/postgres"
	"github.com/heartmarshall/flashdeck-backend/internal/domain"
)

// Repo provides ticket persistence backed by PostgreSQL.
type Repo struct {
	db postgres.DB
}

// New creates a new ticket repository.
func New(db postgres.DB) *Repo {
	return &Repo{db: db}
}

var columns = []string{
	"id", "target_type", "target_id", "target_deck_id", "reporter_id", "reason",
	"status", "assigned_to",
	"escalated_by", "escalated_at", "escalation_reason",
	"resolved_by", "resolved_at", "resolution_note", "content_removed",
	"revision", "created_at", "updated_at",
}

const updateSQL = `
UPDATE tickets SET
    status = $3, assigned_to = $4,
    escalated_by = $5, escalated_at = $6, escalation_reason = $7,
    resolved_by = $8, resolved_at = $9, resolution_note = $10, content_removed = $11,
    revision = revision + 1, updated_at = $12
WHERE id = $1 AND revision = $2
RETURNING revision`

const existsSQL = `SELECT EXISTS(SELECT 1 FROM tickets WHERE id = $1)`

const nextSeqSQL = `SELECT COALESCE(MAX(seq), 0) FROM ticket_actions WHERE ticket_id = $1`

const listActionsSQL = `
SELECT id, ticket_id, seq, actor_id, field, old_value, new_value, created_at
FROM ticket_actions WHERE ticket_id = $1
ORDER BY seq`

type ticketRow struct {
	ID               uuid.UUID  `db:"id"`
	TargetType       string     `db:"target_type"`
	TargetID         uuid.UUID  `db:"target_id"`
	TargetDeckID     *uuid.UUID `db:"target_deck_id"`
	ReporterID       uuid.UUID  `db:"reporter_id"`
	Reason           string     `db:"reason"`
	Status           string     `db:"status"`
	AssignedTo       *uuid.UUID `db:"assigned_to"`
	EscalatedBy      *uuid.UUID `db:"escalated_by"`
	EscalatedAt      *time.Time `db:"escalated_at"`
	EscalationReason string     `db:"escalation_reason"`
	ResolvedBy       *uuid.UUID `db:"resolved_by"`
	ResolvedAt       *time.Time `db:"resolved_at"`
	ResolutionNote   string     `db:"resolution_note"`
	ContentRemoved   bool       `db:"content_removed"`
	Revision         int64      `db:"revision"`
	CreatedAt        time.Time  `db:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at"`
}

type actionRow struct {
	ID        uuid.UUID `db:"id"`
	TicketID  uuid.UUID `db:"ticket_id"`
	Seq       int64     `db:"seq"`
	ActorID   uuid.UUID `db:"actor_id"`
	Field     string    `db:"field"`
	OldValue  string    `db:"old_value"`
	NewValue  string    `db:"new_value"`
	CreatedAt time.Time `db:"created_at"`
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a ticket by id.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Ticket, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := postgres.Builder().
		Select(columns...).
		From("tickets").
		Where("id = ?", id).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get ticket: %w", err)
	}

	var row ticketRow
	if err := pgxscan.Get(ctx, q, &row, sql, args...); err != nil {
		return nil, postgres.MapError(err, "ticket", id)
	}
	return toDomain(row), nil
}

// List returns the moderator queue: escalated tickets first, then oldest
// first. The second return value is the total count for the filter.
func (r *Repo) List(ctx context.Context, filter domain.TicketListFilter) ([]domain.Ticket, int, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	where := squirrel.And{}
	if filter.Status != nil {
		where = append(where, squirrel.Eq{"status": string(*filter.Status)})
	}
	if filter.AssignedTo != nil {
		where = append(where, squirrel.Expr("assigned_to = ?", *filter.AssignedTo))
	}
	if filter.Unassigned {
		where = append(where, squirrel.Expr("assigned_to IS NULL"))
	}
	if filter.EscalatedOnly {
		where = append(where, squirrel.Expr("escalated_at IS NOT NULL"))
	}

	countSQL, countArgs, err := postgres.Builder().Select("count(*)").From("tickets").Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count tickets: %w", err)
	}

	var total int
	if err := q.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count tickets: %w", err)
	}

	sel := postgres.Builder().
		Select(columns...).
		From("tickets").
		Where(where).
		OrderBy("(escalated_at IS NULL)", "created_at", "id")
	if filter.Limit > 0 {
		sel = sel.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		sel = sel.Offset(uint64(filter.Offset))
	}

	sql, args, err := sel.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list tickets: %w", err)
	}

	var rows []ticketRow
	if err := pgxscan.Select(ctx, q, &rows, sql, args...); err != nil {
		return nil, 0, fmt.Errorf("list tickets: %w", err)
	}

	tickets := make([]domain.Ticket, len(rows))
	for i, row := range rows {
		tickets[i] = *toDomain(row)
	}
	return tickets, total, nil
}

// ListActions returns the action log of a ticket in seq order.
func (r *Repo) ListActions(ctx context.Context, ticketID uuid.UUID) ([]domain.TicketAction, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var rows []actionRow
	if err := pgxscan.Select(ctx, q, &rows, listActionsSQL, ticketID); err != nil {
		return nil, fmt.Errorf("list actions of ticket %s: %w", ticketID, err)
	}

	actions := make([]domain.TicketAction, len(rows))
	for i, row := range rows {
		actions[i] = domain.TicketAction{
			ID:        row.ID,
			TicketID:  row.TicketID,
			Seq:       row.Seq,
			ActorID:   row.ActorID,
			Field:     row.Field,
			OldValue:  row.OldValue,
			NewValue:  row.NewValue,
			CreatedAt: row.CreatedAt,
		}
	}
	return actions, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a new ticket with revision 1.
func (r *Repo) Create(ctx context.Context, t *domain.Ticket) (*domain.Ticket, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	now := postgres.Now()
	esc, res := escalationCols(t.Escalation), resolutionCols(t.Resolution)

	ins := postgres.Builder().
		Insert("tickets").
		Columns(columns...).
		Values(
			t.ID, string(t.TargetType), t.TargetID, t.TargetDeckID, t.ReporterID, t.Reason,
			string(t.Status), t.AssignedTo,
			esc.by, esc.at, esc.reason,
			res.by, res.at, res.note, res.removed,
			1, now, now,
		)
	if _, err := postgres.Exec(ctx, q, ins); err != nil {
		return nil, postgres.MapError(err, "ticket", t.ID)
	}

	out := *t
	out.Revision = 1
	out.CreatedAt = now
	out.UpdatedAt = now
	return &out, nil
}

// Update writes the mutable ticket columns when t.Revision still matches.
func (r *Repo) Update(ctx context.Context, t *domain.Ticket) (*domain.Ticket, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	now := postgres.Now()
	esc, res := escalationCols(t.Escalation), resolutionCols(t.Resolution)

	var revision int64
	err := q.QueryRow(ctx, updateSQL,
		t.ID, t.Revision,
		string(t.Status), t.AssignedTo,
		esc.by, esc.at, esc.reason,
		res.by, res.at, res.note, res.removed,
		now,
	).Scan(&revision)
	if errors.Is(err, pgx.ErrNoRows) {
		var exists bool
		if err := q.QueryRow(ctx, existsSQL, t.ID).Scan(&exists); err != nil {
			return nil, postgres.MapError(err, "ticket", t.ID)
		}
		if !exists {
			return nil, fmt.Errorf("ticket %s: %w", t.ID, domain.ErrNotFound)
		}
		return nil, postgres.ErrStaleRevision("ticket", t.ID, t.Revision)
	}
	if err != nil {
		return nil, postgres.MapError(err, "ticket", t.ID)
	}

	out := *t
	out.Revision = revision
	out.UpdatedAt = now
	return &out, nil
}

// AppendActions appends entries to a ticket's action log, assigning
// consecutive seq numbers after the current maximum. Callers hold the ticket
// row (via a revision-checked update) in the same transaction, so seq
// allocation does not race.
func (r *Repo) AppendActions(ctx context.Context, ticketID uuid.UUID, actions []domain.TicketAction) ([]domain.TicketAction, error) {
	if len(actions) == 0 {
		return nil, nil
	}

	q := postgres.QuerierFromCtx(ctx, r.db)

	var seq int64
	if err := q.QueryRow(ctx, nextSeqSQL, ticketID).Scan(&seq); err != nil {
		return nil, postgres.MapError(err, "ticket", ticketID)
	}

	now := postgres.Now()
	out := make([]domain.TicketAction, len(actions))
	ins := postgres.Builder().
		Insert("ticket_actions").
		Columns("id", "ticket_id", "seq", "actor_id", "field", "old_value", "new_value", "created_at")
	for i, a := range actions {
		seq++
		a.ID = uuid.New()
		a.TicketID = ticketID
		a.Seq = seq
		a.CreatedAt = now
		ins = ins.Values(a.ID, a.TicketID, a.Seq, a.ActorID, a.Field, a.OldValue, a.NewValue, a.CreatedAt)
		out[i] = a
	}

	if _, err := postgres.Exec(ctx, q, ins); err != nil {
		err = postgres.MapError(err, "ticket", ticketID)
		if errors.Is(err, domain.ErrAlreadyExists) {
			// Another writer took the same seq.
			return nil, fmt.Errorf("ticket %s: action log: %w", ticketID, domain.ErrConflict)
		}
		return nil, err
	}
	return out, nil
}

// ---------------------------------------------------------------------------
// Mapping helpers
// ---------------------------------------------------------------------------

type escCols struct {
	by     *uuid.UUID
	at     *time.Time
	reason string
}

func escalationCols(e *domain.Escalation) escCols {
	if e == nil {
		return escCols{}
	}
	by, at := e.By, e.At
	return escCols{by: &by, at: &at, reason: e.Reason}
}

type resCols struct {
	by      *uuid.UUID
	at      *time.Time
	note    string
	removed bool
}

func resolutionCols(r *domain.Resolution) resCols {
	if r == nil {
		return resCols{}
	}
	by, at := r.By, r.At
	return resCols{by: &by, at: &at, note: r.Note, removed: r.ContentRemoved}
}

func toDomain(row ticketRow) *domain.Ticket {
	t := &domain.Ticket{
		ID:           row.ID,
		TargetType:   domain.TargetType(row.TargetType),
		TargetID:     row.TargetID,
		TargetDeckID: row.TargetDeckID,
		ReporterID:   row.ReporterID,
		Reason:       row.Reason,
		Status:       domain.TicketStatus(row.Status),
		AssignedTo:   row.AssignedTo,
		Revision:     row.Revision,
		CreatedAt:    row.CreatedAt,
		UpdatedAt:    row.UpdatedAt,
	}
	if row.EscalatedBy != nil && row.EscalatedAt != nil {
		t.Escalation = &domain.Escalation{By: *row.EscalatedBy, At: *row.EscalatedAt, Reason: row.EscalationReason}
	}
	if row.ResolvedBy != nil && row.ResolvedAt != nil {
		t.Resolution = &domain.Resolution{
			By:             *row.ResolvedBy,
			At:             *row.ResolvedAt,
			Note:           row.ResolutionNote,
			ContentRemoved: row.ContentRemoved,
		}
	}
	return t
}
