package suggest

import (
	"sync"
	"time"
)

// State is the suggestion display state of one profile.
type State struct {
	Seq       uint64    `json:"seq"`
	Loading   bool      `json:"loading"`
	Text      string    `json:"text"`
	Points    int       `json:"points"` // Points the text was requested for
	UpdatedAt time.Time `json:"updatedAt"`
}

// Tracker keeps one State per profile. Each request gets the next sequence
// number for its profile; a response is applied only if its sequence is
// still the latest, so a slow older response cannot overwrite a newer one.
type Tracker struct {
	mu     sync.Mutex
	states map[string]*State
	now    func() time.Time
}

// NewTracker creates an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{states: make(map[string]*State), now: time.Now}
}

// Begin marks the profile as loading and returns the new request's sequence.
func (t *Tracker) Begin(kidID string, points int) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	st, ok := t.states[kidID]
	if !ok {
		st = &State{}
		t.states[kidID] = st
	}
	st.Seq++
	st.Loading = true
	st.Points = points
	st.UpdatedAt = t.now()
	return st.Seq
}

// Complete records the response for seq. It reports false, and changes
// nothing, when seq is stale or the profile has been forgotten.
func (t *Tracker) Complete(kidID string, seq uint64, text string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	st, ok := t.states[kidID]
	if !ok || st.Seq != seq {
		return false
	}
	st.Loading = false
	st.Text = text
	st.UpdatedAt = t.now()
	return true
}

// Get returns a copy of the profile's state.
func (t *Tracker) Get(kidID string) (State, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	st, ok := t.states[kidID]
	if !ok {
		return State{}, false
	}
	return *st, true
}

// Forget drops the profile's state. In-flight responses for it are discarded.
func (t *Tracker) Forget(kidID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.states, kidID)
}
