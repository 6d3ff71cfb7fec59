package domain

import (
	"time"

	"github.com/google/uuid"
)

// Ticket is a moderation record tracking one report through its lifecycle.
type Ticket struct {
	ID         uuid.UUID
	TargetType TargetType
	TargetID   uuid.UUID
	// TargetDeckID is the published deck that contains a card or comment target.
	TargetDeckID *uuid.UUID
	ReporterID   uuid.UUID
	Reason       string

	Status     TicketStatus
	AssignedTo *uuid.UUID
	Escalation *Escalation
	Resolution *Resolution

	Revision  int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsEscalated reports whether the orthogonal urgency flag is set.
func (t *Ticket) IsEscalated() bool {
	return t.Escalation != nil
}

// Escalation records who raised a ticket's urgency and why.
type Escalation struct {
	By     uuid.UUID
	At     time.Time
	Reason string
}

// Resolution is stamped when a ticket reaches a terminal status.
type Resolution struct {
	By             uuid.UUID
	At             time.Time
	Note           string
	ContentRemoved bool
}

// TicketAction is one immutable entry of a ticket's action log. The log, not
// the mutable ticket row, is the source of truth for ticket history.
type TicketAction struct {
	ID        uuid.UUID
	TicketID  uuid.UUID
	Seq       int64
	ActorID   uuid.UUID
	Field     string
	OldValue  string
	NewValue  string
	CreatedAt time.Time
}

// Action log field names.
const (
	TicketFieldStatus     = "status"
	TicketFieldAssignedTo = "assigned_to"
	TicketFieldEscalated  = "escalated"
	TicketFieldResolution = "resolution_note"
	TicketFieldNote       = "note"
	TicketFieldContent    = "content"
)

// TicketListFilter narrows the moderator queue.
type TicketListFilter struct {
	Status        *TicketStatus
	AssignedTo    *uuid.UUID
	Unassigned    bool
	EscalatedOnly bool
	Limit         int
	Offset        int
}
