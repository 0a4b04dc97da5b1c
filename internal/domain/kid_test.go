package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parentpoints/internal/util"
)

func TestNewKid(t *testing.T) {
	tests := []struct {
		name     string
		kidName  string
		color    string
		wantName string
		wantErr  error
	}{
		{name: "valid", kidName: "Max", color: "blue", wantName: "Max"},
		{name: "trims name", kidName: "  Freya \t", color: "pink", wantName: "Freya"},
		{name: "empty name", kidName: "", color: "blue", wantErr: util.ErrEmptyName},
		{name: "whitespace name", kidName: "   ", color: "blue", wantErr: util.ErrEmptyName},
		{name: "unknown color", kidName: "Max", color: "beige", wantErr: util.ErrUnknownColor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kid, err := NewKid("id-1", tt.kidName, tt.color)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "id-1", kid.ID)
			assert.Equal(t, tt.wantName, kid.Name)
			assert.Equal(t, 0, kid.Points)
			assert.Equal(t, tt.color, kid.Color)
			assert.NotNil(t, kid.History)
			assert.Empty(t, kid.History)
		})
	}
}

func TestKidCloneDoesNotShareHistory(t *testing.T) {
	kid := Kid{ID: "1", Name: "Max", Color: "blue", History: []HistoryItem{{ID: "h1", Amount: 1}}}
	clone := kid.Clone()
	clone.History[0].Note = "changed"

	assert.Empty(t, kid.History[0].Note)
}

func TestFindKid(t *testing.T) {
	kids := []Kid{{ID: "a"}, {ID: "b"}}
	assert.Equal(t, 1, FindKid(kids, "b"))
	assert.Equal(t, -1, FindKid(kids, "c"))
	assert.Equal(t, -1, FindKid(nil, "a"))
}

func TestNewHistoryItem(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	item := NewHistoryItem("h1", at, -1, NotePointRemoved)

	assert.Equal(t, at.UnixMilli(), item.Timestamp)
	assert.Equal(t, -1, item.Amount)
	assert.Equal(t, "Point removed", item.Note)
	assert.True(t, at.Equal(item.Time()))
}

func TestPalette(t *testing.T) {
	colors := Colors()
	require.Len(t, colors, 17)
	assert.Equal(t, "red", colors[0].Name)
	assert.Equal(t, "rose", colors[16].Name)

	assert.True(t, IsValidColor("fuchsia"))
	assert.False(t, IsValidColor("Blue"))
	assert.Equal(t, "#ec4899", ColorHex("pink"))
	assert.Equal(t, DefaultColorHex, ColorHex("mauve"))
}
