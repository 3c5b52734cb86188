// Package calibration owns the per-session detection thresholds and the
// personalized-tempo feedback loop.
//
// A store holds exactly one Calibration for one user session; it is never
// shared across sessions. Confirmed swings feed Observe, which nudges the
// personalized expected tempo toward the observed value with exponential
// smoothing. No other field changes after creation.
package calibration

import (
	"sync"

	"github.com/fairwaylabs/swingsense/internal/domain/model"
)

// Default calibration constants.
const (
	// smoothingAlpha is the exponential-smoothing weight applied to each
	// confirmed observation.
	smoothingAlpha = 0.1

	DefaultBaselineNoise  = 1.5
	DefaultSwingThreshold = 8.0
	DefaultExpectedTempo  = 3.0
)

// Defaults returns a session-start calibration for a user with no history.
func Defaults(userID string) model.Calibration {
	return model.Calibration{
		UserID:                    userID,
		BaselineNoise:             DefaultBaselineNoise,
		SwingThreshold:            DefaultSwingThreshold,
		Handedness:                model.RightHanded,
		LastKnownClub:             model.ClubIron,
		PersonalizedExpectedTempo: DefaultExpectedTempo,
	}
}

// Store holds the active session's calibration.
type Store struct {
	mu  sync.RWMutex
	cal model.Calibration
}

// NewStore creates a store seeded with the given calibration.
func NewStore(cal model.Calibration) *Store {
	return &Store{cal: cal}
}

// Snapshot returns a copy of the current calibration.
func (s *Store) Snapshot() model.Calibration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cal
}

// Replace swaps in a new calibration, e.g. at session start.
func (s *Store) Replace(cal model.Calibration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cal = cal
}

// Observe folds a confirmed swing's tempo into the personalized expectation:
// new = (1-α)·old + α·observed, α = 0.1.
func (s *Store) Observe(m model.SwingMetrics) {
	s.mu.Lock()
	defer s.mu.Unlock()
	old := s.cal.PersonalizedExpectedTempo
	s.cal.PersonalizedExpectedTempo = (1-smoothingAlpha)*old + smoothingAlpha*m.SwingTempo
}
