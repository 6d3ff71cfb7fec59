package domain

import (
	"time"

	"github.com/google/uuid"
)

// LifecycleState is the visibility state shared by published decks, cards,
// comments and the publish permission of an owner deck.
type LifecycleState string

const (
	LifecycleActive        LifecycleState = "ACTIVE"
	LifecycleSoftDeleted   LifecycleState = "SOFT_DELETED"
	LifecyclePublishBanned LifecycleState = "PUBLISH_BANNED"
)

func (s LifecycleState) String() string { return string(s) }

func (s LifecycleState) IsValid() bool {
	switch s {
	case LifecycleActive, LifecycleSoftDeleted, LifecyclePublishBanned:
		return true
	}
	return false
}

// Lifecycle is a tagged state: Active, or a removal carrying who/why/when.
// The zero value is Active.
type Lifecycle struct {
	State  LifecycleState
	Reason string
	By     *uuid.UUID
	At     *time.Time
}

// Active returns the active lifecycle.
func Active() Lifecycle {
	return Lifecycle{State: LifecycleActive}
}

// SoftDeleted returns a removal lifecycle stamped with the acting moderator.
func SoftDeleted(reason string, by uuid.UUID, at time.Time) Lifecycle {
	return Lifecycle{State: LifecycleSoftDeleted, Reason: reason, By: &by, At: &at}
}

// PublishBanned returns the lifecycle of a deck that may no longer be published.
func PublishBanned(reason string, by uuid.UUID, at time.Time) Lifecycle {
	return Lifecycle{State: LifecyclePublishBanned, Reason: reason, By: &by, At: &at}
}

// IsActive reports whether the record is visible/usable. Empty state counts as active.
func (l Lifecycle) IsActive() bool {
	return l.State == "" || l.State == LifecycleActive
}

// IsSoftDeleted reports whether the record is hidden from read paths.
func (l Lifecycle) IsSoftDeleted() bool {
	return l.State == LifecycleSoftDeleted
}

// IsPublishBanned reports whether publishing is blocked.
func (l Lifecycle) IsPublishBanned() bool {
	return l.State == LifecyclePublishBanned
}
