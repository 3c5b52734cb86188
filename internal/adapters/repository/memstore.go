package repository

import (
	"context"
	"sync"

	"github.com/fairwaylabs/swingsense/internal/domain/model"
	"github.com/fairwaylabs/swingsense/pkg/metrics"
)

// defaultMaxSwings bounds the session history. A full round produces well
// under a hundred swings; the cap only guards against runaway emission.
const defaultMaxSwings = 500

// MemStore is an in-memory Store implementation.
//
// Ordering: insertion order, which follows detection time because the engine
// emits swings as they happen. The session cardinality is small enough that
// Best and Recent scan rather than maintain an index.
type MemStore struct {
	mu        sync.RWMutex
	swings    []model.SwingDetectionResult
	byID      map[string]int
	maxSwings int
}

// NewMemStore constructs a memory store with configuration options.
func NewMemStore(opts ...Option) *MemStore {
	s := &MemStore{
		byID:      make(map[string]int),
		maxSwings: defaultMaxSwings,
	}

	for _, opt := range opts {
		opt(s)
	}

	metrics.UpdateSessionSwings(0)
	return s
}

// Add records a detected swing.
func (s *MemStore) Add(_ context.Context, result model.SwingDetectionResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if result.ID == "" {
		return ErrMissingID
	}
	if _, ok := s.byID[result.ID]; ok {
		return ErrDuplicateID
	}

	if len(s.swings) >= s.maxSwings {
		// Evict the oldest swing to stay bounded.
		oldest := s.swings[0]
		s.swings = s.swings[1:]
		delete(s.byID, oldest.ID)
		for id, idx := range s.byID {
			s.byID[id] = idx - 1
		}
	}

	s.byID[result.ID] = len(s.swings)
	s.swings = append(s.swings, result)
	metrics.UpdateSessionSwings(len(s.swings))
	return nil
}

// Get returns the swing with the given ID.
func (s *MemStore) Get(_ context.Context, id string) (model.SwingDetectionResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx, ok := s.byID[id]
	if !ok {
		return model.SwingDetectionResult{}, ErrNotFound
	}
	return s.swings[idx], nil
}

// Recent returns up to limit swings, newest first.
func (s *MemStore) Recent(_ context.Context, limit int) ([]model.SwingDetectionResult, error) {
	if limit < 1 {
		return nil, ErrInvalidLimit
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	n := limit
	if n > len(s.swings) {
		n = len(s.swings)
	}
	out := make([]model.SwingDetectionResult, 0, n)
	for i := len(s.swings) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, s.swings[i])
	}
	return out, nil
}

// Best returns the highest-confidence swing. Ties keep the earlier swing.
func (s *MemStore) Best(_ context.Context) (model.SwingDetectionResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.swings) == 0 {
		return model.SwingDetectionResult{}, ErrNoSwings
	}

	best := s.swings[0]
	for _, sw := range s.swings[1:] {
		if sw.Confidence > best.Confidence {
			best = sw
		}
	}
	return best, nil
}

// Count returns the number of swings recorded this session.
func (s *MemStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.swings)
}

// Clear drops all recorded swings.
func (s *MemStore) Clear(_ context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.swings = nil
	s.byID = make(map[string]int)
	metrics.UpdateSessionSwings(0)
}
