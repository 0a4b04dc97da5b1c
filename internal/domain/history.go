// internal/domain/history.go
package domain

import "time"

// Default notes recorded on history entries.
const (
	NoteGoodBehavior = "Good behavior"
	NotePointRemoved = "Point removed"
)

// HistoryItem is one immutable ledger entry on a kid's history.
type HistoryItem struct {
	ID        string `json:"id"`
	Timestamp int64  `json:"timestamp"` // Milliseconds since the Unix epoch
	Amount    int    `json:"amount"`    // +1 or -1
	Note      string `json:"note"`
}

// NewHistoryItem creates a HistoryItem stamped at the given instant.
func NewHistoryItem(id string, at time.Time, amount int, note string) HistoryItem {
	return HistoryItem{
		ID:        id,
		Timestamp: at.UnixMilli(),
		Amount:    amount,
		Note:      note,
	}
}

// Time returns the entry's timestamp as a time.Time.
func (h HistoryItem) Time() time.Time {
	return time.UnixMilli(h.Timestamp)
}
