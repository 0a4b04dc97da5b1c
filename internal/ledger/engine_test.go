package ledger

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parentpoints/internal/domain"
)

func newTestEngine() *Engine {
	n := 0
	clock := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	return NewEngine(
		WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		}),
		WithClock(func() time.Time {
			clock = clock.Add(time.Second)
			return clock
		}),
	)
}

func TestScenarioAddKidThenPoints(t *testing.T) {
	e := newTestEngine()

	kids, outcome := e.AddKid([]domain.Kid{}, "Max", "blue")
	require.Equal(t, Applied, outcome)
	require.Len(t, kids, 1)
	kid := kids[0]
	assert.Equal(t, "Max", kid.Name)
	assert.Equal(t, 0, kid.Points)
	assert.Equal(t, "blue", kid.Color)
	assert.Empty(t, kid.History)

	kids, outcome = e.AddPoint(kids, kid.ID, "")
	require.Equal(t, Applied, outcome)
	assert.Equal(t, 1, kids[0].Points)
	require.Len(t, kids[0].History, 1)
	assert.Equal(t, 1, kids[0].History[0].Amount)
	assert.Equal(t, "Good behavior", kids[0].History[0].Note)

	kids, _ = e.RemovePoint(kids, kid.ID)
	kids, _ = e.RemovePoint(kids, kid.ID)
	assert.Equal(t, 0, kids[0].Points)
	assert.Len(t, kids[0].History, 3)
	assert.Equal(t, -1, kids[0].History[0].Amount)
	assert.Equal(t, "Point removed", kids[0].History[0].Note)
}

func TestAddPoint(t *testing.T) {
	e := newTestEngine()
	kids := []domain.Kid{
		{ID: "a", Name: "Harvey", Points: 5, Color: "blue", History: []domain.HistoryItem{}},
		{ID: "b", Name: "Freya", Points: 8, Color: "pink", History: []domain.HistoryItem{}},
	}

	t.Run("CustomNoteIsTrimmed", func(t *testing.T) {
		out, outcome := e.AddPoint(kids, "b", "  Tidied room  ")
		require.Equal(t, Applied, outcome)
		assert.Equal(t, 9, out[1].Points)
		assert.Equal(t, "Tidied room", out[1].History[0].Note)
		assert.Equal(t, kids[0], out[0], "other kids untouched")
	})

	t.Run("UnknownIDIsIgnored", func(t *testing.T) {
		out, outcome := e.AddPoint(kids, "zzz", "")
		assert.Equal(t, Ignored, outcome)
		assert.Equal(t, kids, out)
	})

	t.Run("InputIsNotMutated", func(t *testing.T) {
		_, _ = e.AddPoint(kids, "a", "")
		assert.Equal(t, 5, kids[0].Points)
		assert.Empty(t, kids[0].History)
	})
}

func TestRemovePointAtZeroStillRecordsHistory(t *testing.T) {
	e := newTestEngine()
	kids := []domain.Kid{{ID: "a", Name: "Max", Color: "blue", History: []domain.HistoryItem{}}}

	out, outcome := e.RemovePoint(kids, "a")
	require.Equal(t, Applied, outcome)
	assert.Equal(t, 0, out[0].Points)
	require.Len(t, out[0].History, 1)
	assert.Equal(t, -1, out[0].History[0].Amount)

	_, outcome = e.RemovePoint(kids, "missing")
	assert.Equal(t, Ignored, outcome)
}

func TestHistoryNewestFirst(t *testing.T) {
	e := newTestEngine()
	kids, _ := e.AddKid(nil, "Max", "blue")
	id := kids[0].ID

	kids, _ = e.AddPoint(kids, id, "first")
	kids, _ = e.RemovePoint(kids, id)
	kids, _ = e.AddPoint(kids, id, "third")

	history := kids[0].History
	require.Len(t, history, 3)
	assert.Equal(t, "third", history[0].Note)
	assert.Equal(t, "Point removed", history[1].Note)
	assert.Equal(t, "first", history[2].Note)
	assert.Greater(t, history[0].Timestamp, history[2].Timestamp)
}

func TestAddKid(t *testing.T) {
	e := newTestEngine()
	start := []domain.Kid{{ID: "a", Name: "Harvey", Color: "blue", History: []domain.HistoryItem{}}}

	for _, name := range []string{"", "   ", "\t\n"} {
		out, outcome := e.AddKid(start, name, "blue")
		assert.Equal(t, Ignored, outcome, "name %q", name)
		assert.Equal(t, start, out)
	}

	out, outcome := e.AddKid(start, "Freya", "not-a-color")
	assert.Equal(t, Ignored, outcome)
	assert.Equal(t, start, out)

	out, outcome = e.AddKid(start, " Freya ", "pink")
	require.Equal(t, Applied, outcome)
	require.Len(t, out, 2)
	assert.Equal(t, "a", out[0].ID, "insertion order kept")
	assert.Equal(t, "Freya", out[1].Name)
	assert.NotEqual(t, out[0].ID, out[1].ID)
	assert.Len(t, start, 1)
}

func TestDeleteKid(t *testing.T) {
	e := newTestEngine()
	kids := []domain.Kid{{ID: "a"}, {ID: "b"}, {ID: "c"}}

	out, outcome := e.DeleteKid(kids, "missing")
	assert.Equal(t, Ignored, outcome)
	assert.Equal(t, kids, out)

	out, outcome = e.DeleteKid(kids, "b")
	require.Equal(t, Applied, outcome)
	assert.Equal(t, []domain.Kid{{ID: "a"}, {ID: "c"}}, out)
	assert.Len(t, kids, 3)
}

func TestRandomTransitionsKeepInvariants(t *testing.T) {
	e := NewEngine()
	rng := rand.New(rand.NewSource(42))
	kids, _ := e.AddKid(nil, "Harvey", "blue")
	kids, _ = e.AddKid(kids, "Freya", "pink")

	for i := 0; i < 500; i++ {
		idx := rng.Intn(len(kids))
		before := kids[idx]
		var outcome Outcome
		if rng.Intn(3) == 0 {
			kids, outcome = e.RemovePoint(kids, before.ID)
			assert.Equal(t, max(0, before.Points-1), kids[idx].Points)
		} else {
			kids, outcome = e.AddPoint(kids, before.ID, "")
			assert.Equal(t, before.Points+1, kids[idx].Points)
		}
		require.Equal(t, Applied, outcome)
		assert.Len(t, kids[idx].History, len(before.History)+1)
		assert.GreaterOrEqual(t, kids[idx].Points, 0)
	}

	for _, kid := range kids {
		seen := map[string]bool{}
		for _, item := range kid.History {
			assert.False(t, seen[item.ID], "duplicate history id %s", item.ID)
			seen[item.ID] = true
		}
	}
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "applied", Applied.String())
	assert.Equal(t, "ignored", Ignored.String())
}
