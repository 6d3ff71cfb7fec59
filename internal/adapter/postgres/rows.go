package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/flashdeck-backend/internal/domain"
)

// LifecycleColumns is the column form of domain.Lifecycle. Tables prefix the
// columns (lifecycle_*, publication_*); repositories alias them on select.
type LifecycleColumns struct {
	State  string     `db:"lifecycle_state"`
	Reason string     `db:"lifecycle_reason"`
	By     *uuid.UUID `db:"lifecycle_by"`
	At     *time.Time `db:"lifecycle_at"`
}

// ToLifecycleColumns flattens l for storage. The empty state is stored as ACTIVE.
func ToLifecycleColumns(l domain.Lifecycle) LifecycleColumns {
	state := l.State
	if state == "" {
		state = domain.LifecycleActive
	}
	return LifecycleColumns{State: string(state), Reason: l.Reason, By: l.By, At: l.At}
}

// Domain converts the columns back to a domain.Lifecycle.
func (c LifecycleColumns) Domain() domain.Lifecycle {
	return domain.Lifecycle{
		State:  domain.LifecycleState(c.State),
		Reason: c.Reason,
		By:     c.By,
		At:     c.At,
	}
}

// CardRow is the shared shape of deck_cards and published_cards rows.
// Flag columns only exist on deck_cards; selects fill them with constants
// for published_cards.
type CardRow struct {
	ID              uuid.UUID `db:"id"`
	Position        int       `db:"position"`
	Type            string    `db:"card_type"`
	Front           string    `db:"front"`
	Back            string    `db:"back"`
	Options         []string  `db:"options"`
	AcceptedAnswers []string  `db:"accepted_answers"`
	IsFavorite      bool      `db:"is_favorite"`
	IsIgnored       bool      `db:"is_ignored"`
	LifecycleColumns
}

// Domain converts a card row to a domain.Card.
func (r CardRow) Domain() domain.Card {
	return domain.Card{
		ID:              r.ID,
		Position:        r.Position,
		Type:            domain.CardType(r.Type),
		Front:           r.Front,
		Back:            r.Back,
		Options:         r.Options,
		AcceptedAnswers: r.AcceptedAnswers,
		IsFavorite:      r.IsFavorite,
		IsIgnored:       r.IsIgnored,
		Lifecycle:       r.LifecycleColumns.Domain(),
	}
}

// CardTable describes where a card list is stored.
type CardTable struct {
	Name      string
	ParentCol string
	// Flags stores the replica-local favorite/ignored annotations.
	Flags bool
	// Lifecycle stores per-card moderation state.
	Lifecycle bool
}

var (
	DeckCards      = CardTable{Name: "deck_cards", ParentCol: "deck_id", Flags: true, Lifecycle: true}
	PublishedCards = CardTable{Name: "published_cards", ParentCol: "published_id", Lifecycle: true}
)

// InsertCards bulk-inserts cards under parentID with a single statement.
// Positions are taken from the slice order.
func InsertCards(ctx context.Context, q Querier, table CardTable, parentID uuid.UUID, cards []domain.Card) error {
	if len(cards) == 0 {
		return nil
	}

	cols := []string{table.ParentCol, "id", "position", "card_type", "front", "back", "options", "accepted_answers"}
	if table.Flags {
		cols = append(cols, "is_favorite", "is_ignored")
	}
	if table.Lifecycle {
		cols = append(cols, "lifecycle_state", "lifecycle_reason", "lifecycle_by", "lifecycle_at")
	}

	ins := Builder().Insert(table.Name).Columns(cols...)
	for i, c := range cards {
		vals := []any{parentID, c.ID, i, string(c.Type), c.Front, c.Back, nonNil(c.Options), nonNil(c.AcceptedAnswers)}
		if table.Flags {
			vals = append(vals, c.IsFavorite, c.IsIgnored)
		}
		if table.Lifecycle {
			lc := ToLifecycleColumns(c.Lifecycle)
			vals = append(vals, lc.State, lc.Reason, lc.By, lc.At)
		}
		ins = ins.Values(vals...)
	}

	if _, err := Exec(ctx, q, ins); err != nil {
		return MapError(err, table.Name, parentID)
	}
	return nil
}

// DeleteCards removes every card under parentID. No rows is not an error.
func DeleteCards(ctx context.Context, q Querier, table CardTable, parentID uuid.UUID) error {
	del := Builder().Delete(table.Name).Where(fmt.Sprintf("%s = ?", table.ParentCol), parentID)
	if _, err := Exec(ctx, q, del); err != nil {
		return MapError(err, table.Name, parentID)
	}
	return nil
}

// SelectCardsSQL returns the ordered card select for table, with constants
// standing in for the columns the table does not have.
func SelectCardsSQL(table CardTable) string {
	flags := "false AS is_favorite, false AS is_ignored"
	if table.Flags {
		flags = "is_favorite, is_ignored"
	}
	lifecycle := "'ACTIVE' AS lifecycle_state, '' AS lifecycle_reason, NULL::uuid AS lifecycle_by, NULL::timestamptz AS lifecycle_at"
	if table.Lifecycle {
		lifecycle = "lifecycle_state, lifecycle_reason, lifecycle_by, lifecycle_at"
	}
	return fmt.Sprintf(`
SELECT id, position, card_type, front, back, options, accepted_answers, %s, %s
FROM %s
WHERE %s = $1
ORDER BY position`, flags, lifecycle, table.Name, table.ParentCol)
}

// ToDomainCards converts rows preserving order.
func ToDomainCards(rows []CardRow) []domain.Card {
	cards := make([]domain.Card, len(rows))
	for i, r := range rows {
		cards[i] = r.Domain()
	}
	return cards
}

// Now returns the current time at database precision.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
