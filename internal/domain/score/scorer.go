// Package score combines phase completeness and metric plausibility into a
// 0-100 swing confidence.
//
// Every contribution is independent and additive; the only multiplicative
// term is the calibration penalty applied when the observed tempo strays far
// from the user's personalized expectation.
package score

import (
	"math"

	"github.com/fairwaylabs/swingsense/internal/domain/model"
)

// Default scoring constants.
const (
	maxScore = 100.0

	phaseCompletenessWeight = 40.0

	strongImpactSpeed  = 12.0
	strongImpactScore  = 20.0
	weakImpactSpeed    = 5.0
	weakImpactScore    = 10.0

	tempoMin   = 1.5
	tempoMax   = 5.0
	tempoScore = 10.0

	backswingAngleMin   = 30.0
	backswingAngleMax   = 120.0
	backswingAngleScore = 10.0

	followThroughAngleMin = 20.0
	followThroughScore    = 10.0

	clubheadSpeedMin   = 20.0
	clubheadSpeedMax   = 150.0
	clubheadSpeedScore = 10.0

	tempoDeviationLimit = 2.0
	calibrationPenalty  = 0.9
)

// corePhases are the phases whose presence drives the completeness term.
var corePhases = []model.PhaseKind{
	model.PhaseBackswing,
	model.PhaseDownswing,
	model.PhaseImpact,
}

// Input bundles everything the scorer reads for one candidate.
type Input struct {
	Phases      []model.SwingPhase
	Metrics     model.SwingMetrics
	Calibration model.Calibration
}

// Result is the scored outcome for one candidate.
type Result struct {
	Confidence float64
	IsSwing    bool
}

// Scorer computes swing confidence from segmentation and metrics.
type Scorer struct{}

// NewScorer creates a scorer.
func NewScorer() *Scorer {
	return &Scorer{}
}

// Score evaluates one candidate. Confidence is always within [0, 100] and
// IsSwing holds exactly when confidence exceeds 60.
func (s *Scorer) Score(in Input) Result {
	var total float64

	present := 0
	for _, kind := range corePhases {
		if _, ok := model.FindPhase(in.Phases, kind); ok {
			present++
		}
	}
	total += float64(present) / float64(len(corePhases)) * phaseCompletenessWeight

	switch {
	case in.Metrics.MaxSpeed > strongImpactSpeed:
		total += strongImpactScore
	case in.Metrics.MaxSpeed > weakImpactSpeed:
		total += weakImpactScore
	}

	if in.Metrics.SwingTempo > tempoMin && in.Metrics.SwingTempo < tempoMax {
		total += tempoScore
	}
	if in.Metrics.BackswingAngleDeg > backswingAngleMin && in.Metrics.BackswingAngleDeg < backswingAngleMax {
		total += backswingAngleScore
	}
	if in.Metrics.FollowThroughAngleDeg > followThroughAngleMin {
		total += followThroughScore
	}
	if in.Metrics.EstimatedClubheadSpeedMph > clubheadSpeedMin && in.Metrics.EstimatedClubheadSpeedMph < clubheadSpeedMax {
		total += clubheadSpeedScore
	}

	if math.Abs(in.Metrics.SwingTempo-in.Calibration.PersonalizedExpectedTempo) > tempoDeviationLimit {
		total *= calibrationPenalty
	}

	total = math.Max(0, math.Min(maxScore, total))

	return Result{
		Confidence: total,
		IsSwing:    total > model.SwingThresholdConfidence,
	}
}
