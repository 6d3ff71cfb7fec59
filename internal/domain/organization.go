package domain

import (
	"time"

	"github.com/google/uuid"
)

// Comment is a user comment scoped to a published deck.
type Comment struct {
	ID          uuid.UUID
	PublishedID uuid.UUID
	AuthorID    uuid.UUID
	Body        string
	Lifecycle   Lifecycle
	CreatedAt   time.Time
}

// Rating is a user's score of a published deck. Averages are computed elsewhere.
type Rating struct {
	PublishedID uuid.UUID
	UserID      uuid.UUID
	Score       int
	CreatedAt   time.Time
}

// Notification is a message queued for a content owner.
type Notification struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	Kind       NotificationKind
	EntityType EntityType
	EntityID   uuid.UUID
	Message    string
	CreatedAt  time.Time
}

// AuditRecord logs a mutation event on a domain entity.
type AuditRecord struct {
	ID         uuid.UUID
	UserID     uuid.UUID
	EntityType EntityType
	EntityID   *uuid.UUID
	Action     AuditAction
	Changes    map[string]any
	CreatedAt  time.Time
}
