// Package toggle keeps optimistic boolean toggles consistent when mutation
// responses arrive out of order.
//
// A Field belongs to one attribute of one entity. Every Issue flips the
// displayed value, marks the field pending and allocates the next sequence
// number. Complete only takes effect for the most recently issued attempt;
// older responses are dropped.
package toggle

import (
	"context"
	"errors"
	"sync"
)

// ErrPending is returned by TryIssue and Do while a mutation is in flight.
var ErrPending = errors.New("toggle: mutation in flight")

// Attempt identifies one issued mutation.
type Attempt struct {
	Seq uint64
	// Value is the optimistic value the mutation asks for.
	Value bool
	prev  bool
}

// Field is the toggle state of a single (entity, attribute) pair.
// The zero value is an unset, idle field.
type Field struct {
	mu      sync.Mutex
	value   bool
	pending bool
	seq     uint64
}

// NewField returns an idle field showing initial.
func NewField(initial bool) *Field {
	return &Field{value: initial}
}

// Value returns the displayed value.
func (f *Field) Value() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value
}

// Pending reports whether the latest attempt has not completed yet.
func (f *Field) Pending() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pending
}

// Seq returns the latest issued sequence number.
func (f *Field) Seq() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seq
}

// Issue flips the displayed value and starts a new attempt, superseding any
// attempt still in flight.
func (f *Field) Issue() Attempt {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.issueLocked()
}

// TryIssue is Issue guarded against double submission.
func (f *Field) TryIssue() (Attempt, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pending {
		return Attempt{}, ErrPending
	}
	return f.issueLocked(), nil
}

func (f *Field) issueLocked() Attempt {
	f.seq++
	a := Attempt{Seq: f.seq, Value: !f.value, prev: f.value}
	f.value = a.Value
	f.pending = true
	return a
}

// Complete settles attempt a. On success the server-confirmed value is
// shown, on failure the value from before a was issued. It reports false and
// changes nothing when a newer attempt has been issued since.
func (f *Field) Complete(a Attempt, confirmed bool, err error) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if a.Seq != f.seq {
		return false
	}
	if err != nil {
		f.value = a.prev
	} else {
		f.value = confirmed
	}
	f.pending = false
	return true
}

// Sync overwrites the displayed value with fresh server state unless a
// mutation is in flight. It reports whether the value was taken.
func (f *Field) Sync(value bool) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.pending {
		return false
	}
	f.value = value
	return true
}

// MutateFunc sends the desired value and returns the value the server holds.
type MutateFunc func(ctx context.Context, desired bool) (bool, error)

// Do runs one guarded toggle round trip and returns the displayed value
// after it settles.
func (f *Field) Do(ctx context.Context, mutate MutateFunc) (bool, error) {
	a, err := f.TryIssue()
	if err != nil {
		return f.Value(), err
	}

	confirmed, err := mutate(ctx, a.Value)
	f.Complete(a, confirmed, err)
	return f.Value(), err
}

// Set groups the toggle fields of one entity by attribute name.
type Set struct {
	mu     sync.Mutex
	fields map[string]*Field
}

// NewSet returns an empty set.
func NewSet() *Set {
	return &Set{fields: make(map[string]*Field)}
}

// Field returns the field for attr, creating it with initial when missing.
func (s *Set) Field(attr string, initial bool) *Field {
	s.mu.Lock()
	defer s.mu.Unlock()
	if f, ok := s.fields[attr]; ok {
		return f
	}
	f := NewField(initial)
	s.fields[attr] = f
	return f
}

// Lookup returns the field for attr if it exists.
func (s *Set) Lookup(attr string) (*Field, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.fields[attr]
	return f, ok
}
