// Package segment partitions a swing candidate into mechanical phases.
//
// Segmentation works on the candidate's raw (unfiltered) samples. The index
// of maximum motion magnitude is treated as the impact point and the other
// phases are laid out around it. A phase whose computed end index is not
// strictly after its start index is omitted rather than raising an error;
// confidence scoring penalizes the omission downstream.
package segment

import (
	"github.com/fairwaylabs/swingsense/internal/domain/model"
)

const (
	// backswingThreshold is the magnitude a sample must exceed to end the
	// address phase.
	backswingThreshold = 2.0

	// addressMaxFraction caps the address phase at 10% of the window.
	addressMaxFraction = 10

	// addressMaxSamples caps the address phase at 10 samples outright.
	addressMaxSamples = 10

	// transitionSamples is the nominal transition length.
	transitionSamples = 3
)

// Segmenter partitions candidates into ordered swing phases.
type Segmenter struct{}

// NewSegmenter creates a segmenter.
func NewSegmenter() *Segmenter {
	return &Segmenter{}
}

// Split returns the ordered phase sequence for the candidate samples. Phases
// are temporally non-overlapping with non-decreasing start times; absent
// phases are simply missing from the result.
func (sg *Segmenter) Split(samples []model.MotionSample) []model.SwingPhase {
	n := len(samples)
	if n < 2 {
		return nil
	}

	mags := make([]float64, n)
	peakIdx := 0
	for i, s := range samples {
		mags[i] = s.MotionMagnitude()
		if mags[i] > mags[peakIdx] {
			peakIdx = i
		}
	}

	addressEnd := addressBound(mags)
	backswingEnd := minInt(n/2, peakIdx-5)
	transitionEnd := minInt(backswingEnd+transitionSamples, peakIdx-2)
	impactEnd := minInt(peakIdx+2, n-1)

	bounds := []struct {
		kind       model.PhaseKind
		start, end int
	}{
		{model.PhaseAddress, 0, addressEnd},
		{model.PhaseBackswing, addressEnd, backswingEnd},
		{model.PhaseTransition, backswingEnd, transitionEnd},
		{model.PhaseDownswing, transitionEnd, peakIdx},
		{model.PhaseImpact, peakIdx, impactEnd},
		{model.PhaseFollowThrough, impactEnd, n - 1},
	}

	phases := make([]model.SwingPhase, 0, len(bounds))
	for _, b := range bounds {
		if b.start < 0 || b.end <= b.start || b.end >= n {
			continue
		}
		phases = append(phases, buildPhase(samples, b.kind, b.start, b.end))
	}
	return phases
}

// addressBound finds the index where the address phase ends: the first sample
// exceeding the backswing threshold, capped by the window-fraction and
// absolute limits.
func addressBound(mags []float64) int {
	limit := minInt(len(mags)/addressMaxFraction, addressMaxSamples)
	for i := 0; i < limit; i++ {
		if mags[i] > backswingThreshold {
			return i
		}
	}
	return limit
}

func buildPhase(samples []model.MotionSample, kind model.PhaseKind, start, end int) model.SwingPhase {
	p := model.SwingPhase{
		Kind:        kind,
		StartTimeMs: samples[start].TimestampMs,
		EndTimeMs:   samples[end].TimestampMs,
	}
	for i := start; i <= end; i++ {
		if a := samples[i].Acceleration.Magnitude(); a > p.PeakAcceleration {
			p.PeakAcceleration = a
		}
		if g := samples[i].AngularVelocity.Magnitude(); g > p.PeakAngularVelocity {
			p.PeakAngularVelocity = g
		}
	}
	return p
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
