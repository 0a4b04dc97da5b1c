// Package persistence hydrates and saves the kid collection through a
// BlobRepository under a single fixed key.
package persistence

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync/atomic"

	"parentpoints/internal/domain"
	"parentpoints/internal/repository"
	"parentpoints/internal/util"
)

// StorageKey is the key the whole collection is stored under.
const StorageKey = "parent-points-data"

// Adapter loads, migrates and saves the kid collection.
// Save is refused until the first successful Load so an empty initial state
// can never overwrite stored data.
type Adapter struct {
	repo   repository.BlobRepository
	logger *slog.Logger
	loaded atomic.Bool
}

// NewAdapter creates an Adapter over repo.
func NewAdapter(repo repository.BlobRepository, logger *slog.Logger) *Adapter {
	return &Adapter{repo: repo, logger: logger}
}

// Seed returns the demo collection used when nothing has been stored yet.
// The seed carries points without history; that is left as is.
func Seed() []domain.Kid {
	return []domain.Kid{
		{ID: "1", Name: "Harvey", Points: 5, Color: "blue", History: []domain.HistoryItem{}},
		{ID: "2", Name: "Freya", Points: 8, Color: "pink", History: []domain.HistoryItem{}},
	}
}

// Load reads the stored collection.
//
// Absent blob: the seed collection. Malformed blob: a logged warning and an
// empty collection. Every record passes through Migrate. An error is
// returned only if the substrate read itself fails; the adapter then stays
// unloaded.
func (a *Adapter) Load(ctx context.Context) ([]domain.Kid, error) {
	raw, ok, err := a.repo.GetBlob(ctx, StorageKey)
	if err != nil {
		return nil, fmt.Errorf("load: failed to read %q: %w", StorageKey, err)
	}
	defer a.loaded.Store(true)

	if !ok {
		a.logger.Info("No saved data found, starting with demo profiles")
		return Seed(), nil
	}

	kids, err := decode(raw)
	if err != nil {
		a.logger.Warn("Failed to parse saved data, starting empty", "error", err)
		return []domain.Kid{}, nil
	}

	a.logger.Info("Loaded saved data", "kids", len(kids))
	return Migrate(kids), nil
}

// Save serializes the whole collection and overwrites the stored blob.
func (a *Adapter) Save(ctx context.Context, kids []domain.Kid) error {
	if !a.loaded.Load() {
		return util.ErrNotLoaded
	}
	data, err := json.Marshal(Migrate(kids))
	if err != nil {
		return fmt.Errorf("save: failed to encode kids: %w", err)
	}
	if err := a.repo.PutBlob(ctx, StorageKey, data); err != nil {
		return fmt.Errorf("save: failed to write %q: %w", StorageKey, err)
	}
	return nil
}

// Loaded reports whether Load has completed.
func (a *Adapter) Loaded() bool {
	return a.loaded.Load()
}

// Migrate gives every kid without a history an empty one. Nothing else,
// points included, is touched. It is idempotent and does not modify kids.
func Migrate(kids []domain.Kid) []domain.Kid {
	out := make([]domain.Kid, len(kids))
	for i, kid := range kids {
		if kid.History == nil {
			kid.History = []domain.HistoryItem{}
		}
		out[i] = kid
	}
	return out
}

// storedKid mirrors domain.Kid with history left raw so that a record whose
// history is missing or not an array can be recognised.
type storedKid struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Points  int             `json:"points"`
	Color   string          `json:"color"`
	History json.RawMessage `json:"history"`
}

func decode(raw []byte) ([]domain.Kid, error) {
	var records []storedKid
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, err
	}
	if records == nil {
		return nil, fmt.Errorf("stored value is null, want an array")
	}

	kids := make([]domain.Kid, len(records))
	for i, rec := range records {
		kid := domain.Kid{ID: rec.ID, Name: rec.Name, Points: rec.Points, Color: rec.Color}
		if isArray(rec.History) {
			if err := json.Unmarshal(rec.History, &kid.History); err != nil {
				return nil, fmt.Errorf("kid %q: invalid history: %w", rec.ID, err)
			}
		}
		kids[i] = kid
	}
	return kids, nil
}

func isArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}
