// internal/domain/kid.go
package domain

import (
	"strings"

	"parentpoints/internal/util"
)

// Kid is one tracked profile.
// Points is a clamped running total and is not recomputable from History
// once a removal at zero has been recorded.
type Kid struct {
	ID      string        `json:"id"`
	Name    string        `json:"name"`
	Points  int           `json:"points"`
	Color   string        `json:"color"`
	History []HistoryItem `json:"history"` // Newest first
}

// NewKid creates a Kid with zero points and an empty history.
// The name is trimmed and must not be empty; the color must be in the palette.
func NewKid(id, name, color string) (Kid, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Kid{}, util.ErrEmptyName
	}
	if !IsValidColor(color) {
		return Kid{}, util.ErrUnknownColor
	}
	return Kid{
		ID:      id,
		Name:    name,
		Points:  0,
		Color:   color,
		History: []HistoryItem{},
	}, nil
}

// Clone returns a copy of k whose History does not share storage with k.
func (k Kid) Clone() Kid {
	out := k
	out.History = make([]HistoryItem, len(k.History))
	copy(out.History, k.History)
	return out
}

// FindKid returns the index of the kid with the given id, or -1.
func FindKid(kids []Kid, id string) int {
	for i := range kids {
		if kids[i].ID == id {
			return i
		}
	}
	return -1
}

// CloneKids deep-copies a collection.
func CloneKids(kids []Kid) []Kid {
	out := make([]Kid, len(kids))
	for i, k := range kids {
		out[i] = k.Clone()
	}
	return out
}
