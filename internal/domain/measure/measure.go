// Package measure derives numeric swing metrics from segmented phases and
// raw samples.
//
// All computations are pure functions of their inputs. The clubhead-speed
// model and the angle-from-angular-velocity integration are empirical
// heuristics carried over for behavioral compatibility; neither is
// physically calibrated.
package measure

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/fairwaylabs/swingsense/internal/domain/model"
)

const (
	maxPhaseAngleDeg = 180.0
	maxPlaneDeg      = 90.0

	// clubheadSpeedFactor converts peak motion magnitude to an mph
	// estimate. Empirical, not physically calibrated.
	clubheadSpeedFactor = 4.5

	// tempoReference is the tempo at which no clubhead-speed adjustment
	// applies.
	tempoReference = 3.0

	tempoAdjustMin = 0.8
	tempoAdjustMax = 1.2

	// minPhaseDurationMs floors phase durations to avoid division by zero.
	minPhaseDurationMs = 1

	planeEpsilon = 1e-9

	msPerSecond = 1000.0
)

// Compute returns the metrics for a candidate given its phases and raw
// samples.
func Compute(phases []model.SwingPhase, samples []model.MotionSample) model.SwingMetrics {
	m := model.SwingMetrics{
		MaxSpeed:              maxMotionMagnitude(samples),
		BackswingAngleDeg:     phaseAngle(phases, samples, model.PhaseBackswing),
		DownswingAngleDeg:     phaseAngle(phases, samples, model.PhaseDownswing),
		FollowThroughAngleDeg: phaseAngle(phases, samples, model.PhaseFollowThrough),
		SwingPlaneDeg:         swingPlane(samples),
	}
	m.ImpactTimingMs = impactTiming(phases)
	m.SwingTempo = tempo(phases)
	m.EstimatedClubheadSpeedMph = clubheadSpeed(m.MaxSpeed, m.SwingTempo)
	return m
}

func maxMotionMagnitude(samples []model.MotionSample) float64 {
	var max float64
	for _, s := range samples {
		if mag := s.MotionMagnitude(); mag > max {
			max = mag
		}
	}
	return max
}

// phaseAngle estimates the angle swept during a phase by integrating the
// mean absolute Y-axis angular velocity over the phase duration. Zero when
// the phase is absent or empty.
func phaseAngle(phases []model.SwingPhase, samples []model.MotionSample, kind model.PhaseKind) float64 {
	p, ok := model.FindPhase(phases, kind)
	if !ok {
		return 0
	}

	var absGyroY []float64
	for _, s := range samples {
		if s.TimestampMs >= p.StartTimeMs && s.TimestampMs <= p.EndTimeMs {
			absGyroY = append(absGyroY, math.Abs(s.AngularVelocity.Y))
		}
	}
	if len(absGyroY) == 0 {
		return 0
	}

	durSeconds := float64(p.DurationMs()) / msPerSecond
	angle := stat.Mean(absGyroY, nil) * durSeconds
	return math.Min(maxPhaseAngleDeg, angle)
}

// impactTiming is the time from backswing start to impact start, zero when
// either phase is absent.
func impactTiming(phases []model.SwingPhase) int64 {
	back, okBack := model.FindPhase(phases, model.PhaseBackswing)
	impact, okImpact := model.FindPhase(phases, model.PhaseImpact)
	if !okBack || !okImpact {
		return 0
	}
	return impact.StartTimeMs - back.StartTimeMs
}

// tempo is the ratio of backswing to downswing duration, with both floored
// at 1ms.
func tempo(phases []model.SwingPhase) float64 {
	back, _ := model.FindPhase(phases, model.PhaseBackswing)
	down, _ := model.FindPhase(phases, model.PhaseDownswing)

	backMs := back.DurationMs()
	if backMs < minPhaseDurationMs {
		backMs = minPhaseDurationMs
	}
	downMs := down.DurationMs()
	if downMs < minPhaseDurationMs {
		downMs = minPhaseDurationMs
	}
	return float64(backMs) / float64(downMs)
}

// clubheadSpeed applies the empirical mph model with a tempo adjustment
// clamped to [0.8, 1.2].
func clubheadSpeed(maxSpeed, swingTempo float64) float64 {
	adjust := tempoReference / swingTempo
	adjust = math.Max(tempoAdjustMin, math.Min(tempoAdjustMax, adjust))
	return maxSpeed * clubheadSpeedFactor * adjust
}

// swingPlane estimates the swing-plane angle from the ratio of lateral to
// vertical absolute acceleration sums over the whole candidate.
func swingPlane(samples []model.MotionSample) float64 {
	var lateral, vertical float64
	for _, s := range samples {
		lateral += math.Abs(s.Acceleration.X) + math.Abs(s.Acceleration.Z)
		vertical += math.Abs(s.Acceleration.Y) + math.Abs(s.Acceleration.Z)
	}
	angle := math.Atan(lateral/(vertical+planeEpsilon)) * 180.0 / math.Pi
	return math.Min(maxPlaneDeg, angle)
}
