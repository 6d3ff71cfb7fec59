// Package csvdeck parses deck CSV files into cards.
// Pure function: file path in, domain structs out. No database dependencies.
//
// The header row is required and names the columns; "front" and "back" are
// mandatory, "type", "options" and "answers" are optional. Options and
// accepted answers are "|"-separated.
package csvdeck

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"

	"github.com/heartmarshall/flashdeck-backend/internal/domain"
)

// Parse reads the CSV file at path.
func Parse(path string) ([]domain.Card, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open deck file: %w", err)
	}
	defer f.Close()

	cards, err := parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cards, nil
}

func parse(r io.Reader) ([]domain.Card, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // allow variable column count
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"front", "back"} {
		if _, ok := cols[required]; !ok {
			return nil, fmt.Errorf("header: missing %q column", required)
		}
	}

	field := func(record []string, name string) string {
		i, ok := cols[name]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var cards []domain.Card
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if len(record) == 0 || strings.Join(record, "") == "" {
			continue
		}

		card := domain.Card{
			ID:              uuid.New(),
			Position:        len(cards),
			Type:            domain.CardTypeBasic,
			Front:           field(record, "front"),
			Back:            field(record, "back"),
			Options:         splitList(field(record, "options")),
			AcceptedAnswers: splitList(field(record, "answers")),
			Lifecycle:       domain.Active(),
		}
		if t := field(record, "type"); t != "" {
			card.Type = domain.CardType(strings.ToUpper(t))
		}
		if err := validate(card); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		cards = append(cards, card)
	}

	return cards, nil
}

func validate(c domain.Card) error {
	switch {
	case !c.Type.IsValid():
		return fmt.Errorf("unknown card type %q", c.Type)
	case c.Front == "":
		return errors.New("front is empty")
	case c.Type == domain.CardTypeMultipleChoice && len(c.Options) < 2:
		return errors.New("multiple choice card needs at least two options")
	case c.Type == domain.CardTypeTypeAnswer && len(c.AcceptedAnswers) == 0 && c.Back == "":
		return errors.New("type answer card needs a back or accepted answers")
	}
	return nil
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, "|") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
