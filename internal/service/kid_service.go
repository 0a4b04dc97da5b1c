// internal/service/kid_service.go
package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"parentpoints/internal/domain"
	"parentpoints/internal/ledger"
	"parentpoints/internal/persistence"
	"parentpoints/internal/suggest"
	"parentpoints/internal/util"
)

// Store is the persistence port the service saves through.
// *persistence.Adapter implements it.
type Store interface {
	Load(ctx context.Context) ([]domain.Kid, error)
	Save(ctx context.Context, kids []domain.Kid) error
}

var _ Store = (*persistence.Adapter)(nil)

// Result is the outcome of a transition plus the affected kid when it
// still exists afterwards.
type Result struct {
	Outcome ledger.Outcome
	Kid     *domain.Kid
}

// KidService defines the interface for kid and point business logic.
type KidService interface {
	// Start hydrates the collection. Mutations before Start are ignored.
	Start(ctx context.Context) error
	// Close cancels in-flight suggestion requests and waits for them.
	Close()

	List(ctx context.Context) []domain.Kid
	Get(ctx context.Context, kidID string) (*domain.Kid, error)
	History(ctx context.Context, kidID string, limit, offset int) ([]domain.HistoryItem, int, error)
	Leaderboard(ctx context.Context) Leaderboard

	AddKid(ctx context.Context, name, color string) Result
	DeleteKid(ctx context.Context, kidID string) Result
	AddPoint(ctx context.Context, kidID, note string) Result
	RemovePoint(ctx context.Context, kidID string) Result

	RequestSuggestions(ctx context.Context, kidID string) (suggest.State, error)
	Suggestions(ctx context.Context, kidID string) (suggest.State, error)
}

// kidService implements the KidService interface.
type kidService struct {
	mu      sync.RWMutex
	kids    []domain.Kid
	started bool

	engine  *ledger.Engine
	store   Store
	gateway suggest.Gateway
	tracker *suggest.Tracker
	logger  *slog.Logger

	suggestTimeout time.Duration
	baseCtx        context.Context
	cancel         context.CancelFunc
	inflight       sync.WaitGroup
}

// NewKidService creates a new instance of KidService.
func NewKidService(
	engine *ledger.Engine,
	store Store,
	gateway suggest.Gateway,
	tracker *suggest.Tracker,
	suggestTimeout time.Duration,
	logger *slog.Logger,
) KidService {
	baseCtx, cancel := context.WithCancel(context.Background())
	return &kidService{
		kids:           []domain.Kid{},
		engine:         engine,
		store:          store,
		gateway:        gateway,
		tracker:        tracker,
		logger:         logger,
		suggestTimeout: suggestTimeout,
		baseCtx:        baseCtx,
		cancel:         cancel,
	}
}

func (s *kidService) Start(ctx context.Context) error {
	kids, err := s.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("start: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.kids = kids
	s.started = true
	return nil
}

func (s *kidService) Close() {
	s.cancel()
	s.inflight.Wait()
}

func (s *kidService) List(ctx context.Context) []domain.Kid {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.CloneKids(s.kids)
}

func (s *kidService) Get(ctx context.Context, kidID string) (*domain.Kid, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := domain.FindKid(s.kids, kidID)
	if idx < 0 {
		return nil, util.ErrKidNotFound
	}
	kid := s.kids[idx].Clone()
	return &kid, nil
}

// History returns a page of the kid's history, newest first, and its total length.
func (s *kidService) History(ctx context.Context, kidID string, limit, offset int) ([]domain.HistoryItem, int, error) {
	if limit <= 0 || offset < 0 {
		return nil, 0, util.ErrInvalidInput
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := domain.FindKid(s.kids, kidID)
	if idx < 0 {
		return nil, 0, util.ErrKidNotFound
	}
	history := s.kids[idx].History
	total := len(history)
	if offset >= total {
		return []domain.HistoryItem{}, total, nil
	}
	end := min(offset+limit, total)
	page := make([]domain.HistoryItem, end-offset)
	copy(page, history[offset:end])
	return page, total, nil
}

func (s *kidService) Leaderboard(ctx context.Context) Leaderboard {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return BuildLeaderboard(s.kids)
}

func (s *kidService) AddKid(ctx context.Context, name, color string) Result {
	var added string
	return s.apply(ctx, "add kid", func(kids []domain.Kid) ([]domain.Kid, ledger.Outcome) {
		next, outcome := s.engine.AddKid(kids, name, color)
		if outcome == ledger.Applied {
			added = next[len(next)-1].ID
		}
		return next, outcome
	}, func() string { return added })
}

func (s *kidService) DeleteKid(ctx context.Context, kidID string) Result {
	res := s.apply(ctx, "delete kid", func(kids []domain.Kid) ([]domain.Kid, ledger.Outcome) {
		return s.engine.DeleteKid(kids, kidID)
	}, nil)
	if res.Outcome == ledger.Applied {
		s.tracker.Forget(kidID)
	}
	return res
}

func (s *kidService) AddPoint(ctx context.Context, kidID, note string) Result {
	return s.apply(ctx, "add point", func(kids []domain.Kid) ([]domain.Kid, ledger.Outcome) {
		return s.engine.AddPoint(kids, kidID, note)
	}, func() string { return kidID })
}

func (s *kidService) RemovePoint(ctx context.Context, kidID string) Result {
	return s.apply(ctx, "remove point", func(kids []domain.Kid) ([]domain.Kid, ledger.Outcome) {
		return s.engine.RemovePoint(kids, kidID)
	}, func() string { return kidID })
}

// apply runs a transition under the write lock and, when it changed the
// collection, saves the new state before releasing the lock so that saves
// land in commit order. A failed save is logged; the in-memory state is
// kept. affected, if non-nil, names the kid to return in the Result.
func (s *kidService) apply(
	ctx context.Context,
	op string,
	transition func([]domain.Kid) ([]domain.Kid, ledger.Outcome),
	affected func() string,
) Result {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		s.logger.Warn("Transition before state was loaded, ignoring", "op", op)
		return Result{Outcome: ledger.Ignored}
	}

	next, outcome := transition(s.kids)
	if outcome == ledger.Ignored {
		s.logger.Debug("Transition ignored", "op", op)
		return Result{Outcome: ledger.Ignored}
	}
	s.kids = next

	// The save must not be cut short by the caller going away.
	if err := s.store.Save(context.WithoutCancel(ctx), next); err != nil {
		s.logger.Error("Failed to save kids", "op", op, "error", err)
	}

	res := Result{Outcome: outcome}
	if affected != nil {
		if idx := domain.FindKid(next, affected()); idx >= 0 {
			kid := next[idx].Clone()
			res.Kid = &kid
		}
	}
	return res
}

// RequestSuggestions starts a suggestion request for the kid and returns
// the loading state immediately. The provider call runs on its own
// goroutine and never holds the collection lock.
func (s *kidService) RequestSuggestions(ctx context.Context, kidID string) (suggest.State, error) {
	kid, err := s.Get(ctx, kidID)
	if err != nil {
		return suggest.State{}, err
	}

	seq := s.tracker.Begin(kid.ID, kid.Points)
	state, _ := s.tracker.Get(kid.ID)

	s.inflight.Add(1)
	go func(name string, points int) {
		defer s.inflight.Done()
		callCtx, cancel := context.WithTimeout(s.baseCtx, s.suggestTimeout)
		defer cancel()

		text := s.gateway.FetchSuggestions(callCtx, name, points)
		if !s.tracker.Complete(kidID, seq, text) {
			s.logger.Debug("Discarding stale suggestion response", "kid_id", kidID, "seq", seq)
		}
	}(kid.Name, kid.Points)

	return state, nil
}

func (s *kidService) Suggestions(ctx context.Context, kidID string) (suggest.State, error) {
	if _, err := s.Get(ctx, kidID); err != nil {
		return suggest.State{}, err
	}
	state, _ := s.tracker.Get(kidID)
	return state, nil
}
