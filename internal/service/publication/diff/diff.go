// Package diff decides whether a deck snapshot differs materially from the
// last published one. Only content is compared: card lifecycle, the
// replica-local favorite/ignored flags and the featured flag never count.
package diff

import (
	"fmt"
	"slices"

	"github.com/heartmarshall/flashdeck-backend/internal/domain"
)

// Result is the outcome of a comparison. Reason names the first difference
// found and is meant for logs only.
type Result struct {
	Changed bool
	Reason  string
}

var unchanged = Result{}

func changed(format string, args ...any) Result {
	return Result{Changed: true, Reason: fmt.Sprintf(format, args...)}
}

// Compare reports whether current differs from previous. Options and
// accepted answers are compared in order, so reordering them is a change.
func Compare(current, previous domain.Snapshot) Result {
	if r := compareMeta(current.Meta, previous.Meta); r.Changed {
		return r
	}

	if len(current.Cards) != len(previous.Cards) {
		return changed("card count %d -> %d", len(previous.Cards), len(current.Cards))
	}

	for i := range current.Cards {
		if r := compareCard(i, current.Cards[i], previous.Cards[i]); r.Changed {
			return r
		}
	}
	return unchanged
}

func compareMeta(cur, prev domain.DeckMeta) Result {
	switch {
	case cur.Name != prev.Name:
		return changed("name")
	case cur.Emoji != prev.Emoji:
		return changed("emoji")
	case cur.Color != prev.Color:
		return changed("color")
	case cur.Category != prev.Category:
		return changed("category")
	case cur.Subtopic != prev.Subtopic:
		return changed("subtopic")
	case cur.Difficulty != prev.Difficulty:
		return changed("difficulty")
	}
	return unchanged
}

func compareCard(i int, cur, prev domain.Card) Result {
	switch {
	case cur.Front != prev.Front:
		return changed("card %d: front", i)
	case cur.Back != prev.Back:
		return changed("card %d: back", i)
	case cur.Type != prev.Type:
		return changed("card %d: type", i)
	}

	switch cur.Type {
	case domain.CardTypeMultipleChoice:
		if !equalOrdered(cur.Options, prev.Options) {
			return changed("card %d: options", i)
		}
	case domain.CardTypeTypeAnswer:
		if !equalOrdered(cur.AcceptedAnswers, prev.AcceptedAnswers) {
			return changed("card %d: accepted answers", i)
		}
	}
	return unchanged
}

// equalOrdered treats nil and empty as equal.
func equalOrdered(a, b []string) bool {
	if len(a) == 0 && len(b) == 0 {
		return true
	}
	return slices.Equal(a, b)
}
