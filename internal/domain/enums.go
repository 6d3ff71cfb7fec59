package domain

// CardType selects which type-specific fields of a Card are meaningful.
type CardType string

const (
	CardTypeBasic          CardType = "BASIC"
	CardTypeMultipleChoice CardType = "MULTIPLE_CHOICE"
	CardTypeTypeAnswer     CardType = "TYPE_ANSWER"
)

func (t CardType) String() string { return string(t) }

func (t CardType) IsValid() bool {
	switch t {
	case CardTypeBasic, CardTypeMultipleChoice, CardTypeTypeAnswer:
		return true
	}
	return false
}

// Difficulty is the author-declared difficulty of a deck.
type Difficulty string

const (
	DifficultyBeginner     Difficulty = "BEGINNER"
	DifficultyIntermediate Difficulty = "INTERMEDIATE"
	DifficultyAdvanced     Difficulty = "ADVANCED"
)

func (d Difficulty) String() string { return string(d) }

func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

// TicketStatus is the moderation ticket state.
// OPEN -> REVIEWING -> {RESOLVED, DISMISSED}; the last two are terminal.
type TicketStatus string

const (
	TicketStatusOpen      TicketStatus = "OPEN"
	TicketStatusReviewing TicketStatus = "REVIEWING"
	TicketStatusResolved  TicketStatus = "RESOLVED"
	TicketStatusDismissed TicketStatus = "DISMISSED"
)

func (s TicketStatus) String() string { return string(s) }

func (s TicketStatus) IsValid() bool {
	switch s {
	case TicketStatusOpen, TicketStatusReviewing, TicketStatusResolved, TicketStatusDismissed:
		return true
	}
	return false
}

// IsTerminal reports whether no transition is defined out of s.
func (s TicketStatus) IsTerminal() bool {
	return s == TicketStatusResolved || s == TicketStatusDismissed
}

// TargetType is the kind of content a ticket reports.
type TargetType string

const (
	TargetTypeDeck    TargetType = "deck"
	TargetTypeCard    TargetType = "card"
	TargetTypeComment TargetType = "comment"
)

func (t TargetType) String() string { return string(t) }

func (t TargetType) IsValid() bool {
	switch t {
	case TargetTypeDeck, TargetTypeCard, TargetTypeComment:
		return true
	}
	return false
}

// CardFlag is a replica-local per-card annotation.
type CardFlag string

const (
	CardFlagFavorite CardFlag = "favorite"
	CardFlagIgnored  CardFlag = "ignored"
)

func (f CardFlag) String() string { return string(f) }

func (f CardFlag) IsValid() bool {
	return f == CardFlagFavorite || f == CardFlagIgnored
}

// NotificationKind identifies why an owner is being notified.
type NotificationKind string

const (
	NotificationDeckRemoved    NotificationKind = "DECK_REMOVED"
	NotificationCardRemoved    NotificationKind = "CARD_REMOVED"
	NotificationCommentRemoved NotificationKind = "COMMENT_REMOVED"
)

func (k NotificationKind) String() string { return string(k) }

// EntityType identifies the kind of domain entity (used in audit logs).
type EntityType string

const (
	EntityTypeDeck          EntityType = "DECK"
	EntityTypePublishedDeck EntityType = "PUBLISHED_DECK"
	EntityTypeCard          EntityType = "CARD"
	EntityTypeComment       EntityType = "COMMENT"
)

func (e EntityType) String() string { return string(e) }

func (e EntityType) IsValid() bool {
	switch e {
	case EntityTypeDeck, EntityTypePublishedDeck, EntityTypeCard, EntityTypeComment:
		return true
	}
	return false
}

// AuditAction represents the kind of mutation recorded in the audit log.
type AuditAction string

const (
	AuditActionCreate AuditAction = "CREATE"
	AuditActionUpdate AuditAction = "UPDATE"
	AuditActionDelete AuditAction = "DELETE"
)

func (a AuditAction) String() string { return string(a) }

func (a AuditAction) IsValid() bool {
	switch a {
	case AuditActionCreate, AuditActionUpdate, AuditActionDelete:
		return true
	}
	return false
}

// UserRole represents the authorization level of a user.
type UserRole string

const (
	UserRoleUser      UserRole = "user"
	UserRoleModerator UserRole = "moderator"
	UserRoleAdmin     UserRole = "admin"
)

func (r UserRole) String() string { return string(r) }

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleUser, UserRoleModerator, UserRoleAdmin:
		return true
	}
	return false
}

func (r UserRole) IsAdmin() bool {
	return r == UserRoleAdmin
}

// IsModerator reports whether r may use the moderation tools. Admins are moderators.
func (r UserRole) IsModerator() bool {
	return r == UserRoleModerator || r == UserRoleAdmin
}
