// Package ledger implements the point transitions over a kid collection.
//
// Every transition is total: it never fails, and an unknown id or an invalid
// new profile degrades to a no-op reported as Ignored. Input collections are
// never mutated; each transition returns a fresh slice.
package ledger

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"parentpoints/internal/domain"
)

// Outcome reports whether a transition changed the collection.
type Outcome int

const (
	Ignored Outcome = iota
	Applied
)

func (o Outcome) String() string {
	if o == Applied {
		return "applied"
	}
	return "ignored"
}

// Engine computes transitions. The clock and id source are injectable so
// tests can pin them.
type Engine struct {
	now   func() time.Time
	newID func() string
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// WithIDGenerator overrides uuid.NewString.
func WithIDGenerator(newID func() string) Option {
	return func(e *Engine) { e.newID = newID }
}

// NewEngine creates an Engine.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{now: time.Now, newID: uuid.NewString}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// AddPoint increments the kid's points and records a +1 entry. A blank note
// becomes domain.NoteGoodBehavior.
func (e *Engine) AddPoint(kids []domain.Kid, id, note string) ([]domain.Kid, Outcome) {
	note = strings.TrimSpace(note)
	if note == "" {
		note = domain.NoteGoodBehavior
	}
	return e.update(kids, id, func(k *domain.Kid) {
		k.Points++
		k.History = e.prepend(k.History, 1, note)
	})
}

// RemovePoint decrements the kid's points, floored at zero, and always
// records a -1 entry, even when points were already zero.
func (e *Engine) RemovePoint(kids []domain.Kid, id string) ([]domain.Kid, Outcome) {
	return e.update(kids, id, func(k *domain.Kid) {
		k.Points = max(0, k.Points-1)
		k.History = e.prepend(k.History, -1, domain.NotePointRemoved)
	})
}

// AddKid appends a new profile. An empty trimmed name or a color outside the
// palette is ignored.
func (e *Engine) AddKid(kids []domain.Kid, name, color string) ([]domain.Kid, Outcome) {
	kid, err := domain.NewKid(e.newID(), name, color)
	if err != nil {
		return kids, Ignored
	}
	out := make([]domain.Kid, 0, len(kids)+1)
	out = append(out, kids...)
	out = append(out, kid)
	return out, Applied
}

// DeleteKid removes the profile with the given id. There is no recovery.
func (e *Engine) DeleteKid(kids []domain.Kid, id string) ([]domain.Kid, Outcome) {
	idx := domain.FindKid(kids, id)
	if idx < 0 {
		return kids, Ignored
	}
	out := make([]domain.Kid, 0, len(kids)-1)
	out = append(out, kids[:idx]...)
	out = append(out, kids[idx+1:]...)
	return out, Applied
}

func (e *Engine) update(kids []domain.Kid, id string, fn func(*domain.Kid)) ([]domain.Kid, Outcome) {
	idx := domain.FindKid(kids, id)
	if idx < 0 {
		return kids, Ignored
	}
	out := make([]domain.Kid, len(kids))
	copy(out, kids)
	kid := out[idx]
	fn(&kid)
	out[idx] = kid
	return out, Applied
}

// prepend returns a new slice with the entry at index 0.
func (e *Engine) prepend(history []domain.HistoryItem, amount int, note string) []domain.HistoryItem {
	out := make([]domain.HistoryItem, 0, len(history)+1)
	out = append(out, domain.NewHistoryItem(e.newID(), e.now(), amount, note))
	return append(out, history...)
}
