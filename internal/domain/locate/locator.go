// Package locate scans filtered magnitude series for intervals that could be
// a swing.
//
// The scan keeps a boolean in-swing state with hysteresis: it enters when the
// motion magnitude crosses above the calibrated swing threshold and exits
// when it drops below 30% of it. On exit the interval duration is validated
// against the candidate bounds; intervals outside them are discarded.
package locate

import (
	"time"

	"github.com/fairwaylabs/swingsense/internal/domain/model"
)

// Default candidate duration bounds.
const (
	defaultMinDuration = 800 * time.Millisecond
	defaultMaxDuration = 2500 * time.Millisecond

	// exitFraction is the hysteresis exit level relative to the entry
	// threshold.
	exitFraction = 0.3
)

// Candidate is a contiguous interval of samples whose magnitude profile
// plausibly represents a swing. Indices reference the scanned slice.
type Candidate struct {
	StartIndex int
	EndIndex   int
}

// Locator finds swing candidates in a filtered sample window.
type Locator struct {
	threshold   float64
	minDuration time.Duration
	maxDuration time.Duration
}

// NewLocator creates a locator entering at the given threshold.
func NewLocator(threshold float64, opts ...Option) *Locator {
	l := &Locator{
		threshold:   threshold,
		minDuration: defaultMinDuration,
		maxDuration: defaultMaxDuration,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Scan walks the samples left to right and returns every valid candidate, in
// discovery order. Disjoint candidates never overlap.
func (l *Locator) Scan(samples []model.MotionSample) []Candidate {
	var (
		candidates []Candidate
		inSwing    bool
		start      int
	)

	exitLevel := l.threshold * exitFraction

	for i, s := range samples {
		mag := s.MotionMagnitude()
		switch {
		case !inSwing && mag > l.threshold:
			inSwing = true
			start = i
		case inSwing && mag < exitLevel:
			inSwing = false
			if c, ok := l.validate(samples, start, i); ok {
				candidates = append(candidates, c)
			}
		}
	}

	// A swing still in progress at the window end is not a candidate yet;
	// it completes on a later pass once the magnitude drops below the exit
	// level.
	return candidates
}

func (l *Locator) validate(samples []model.MotionSample, start, end int) (Candidate, bool) {
	if end <= start {
		return Candidate{}, false
	}
	dur := time.Duration(samples[end].TimestampMs-samples[start].TimestampMs) * time.Millisecond
	if dur < l.minDuration || dur > l.maxDuration {
		return Candidate{}, false
	}
	return Candidate{StartIndex: start, EndIndex: end}, true
}
