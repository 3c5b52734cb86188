package score_test

import (
	"testing"

	"github.com/fairwaylabs/swingsense/internal/domain/model"
	"github.com/fairwaylabs/swingsense/internal/domain/score"
	. "github.com/smartystreets/goconvey/convey"
)

func fullPhases() []model.SwingPhase {
	return []model.SwingPhase{
		{Kind: model.PhaseBackswing, StartTimeMs: 0, EndTimeMs: 750},
		{Kind: model.PhaseDownswing, StartTimeMs: 800, EndTimeMs: 1050},
		{Kind: model.PhaseImpact, StartTimeMs: 1050, EndTimeMs: 1090},
		{Kind: model.PhaseFollowThrough, StartTimeMs: 1090, EndTimeMs: 1500},
	}
}

func goodMetrics() model.SwingMetrics {
	return model.SwingMetrics{
		MaxSpeed:                  14.0,
		BackswingAngleDeg:         75.0,
		FollowThroughAngleDeg:     45.0,
		SwingTempo:                3.0,
		EstimatedClubheadSpeedMph: 85.0,
	}
}

func defaultCalibration() model.Calibration {
	return model.Calibration{
		UserID:                    "user-1",
		BaselineNoise:             1.5,
		SwingThreshold:            8.0,
		PersonalizedExpectedTempo: 3.0,
	}
}

func TestScoreCleanCandidate(t *testing.T) {
	Convey("Given a scorer and a fully plausible candidate", t, func() {
		s := score.NewScorer()
		res := s.Score(score.Input{
			Phases:      fullPhases(),
			Metrics:     goodMetrics(),
			Calibration: defaultCalibration(),
		})

		Convey("Then every contribution lands and the score maxes out", func() {
			So(res.Confidence, ShouldEqual, 100.0)
			So(res.IsSwing, ShouldBeTrue)
		})
	})
}

func TestScoreBounds(t *testing.T) {
	Convey("Given a scorer", t, func() {
		s := score.NewScorer()

		Convey("When scoring an empty candidate", func() {
			res := s.Score(score.Input{Calibration: defaultCalibration()})

			Convey("Then the score is zero and it is not a swing", func() {
				So(res.Confidence, ShouldEqual, 0.0)
				So(res.IsSwing, ShouldBeFalse)
			})
		})

		Convey("When scoring assorted partial candidates", func() {
			inputs := []score.Input{
				{Phases: fullPhases()[:1], Calibration: defaultCalibration()},
				{Metrics: goodMetrics(), Calibration: defaultCalibration()},
				{Phases: fullPhases(), Metrics: model.SwingMetrics{MaxSpeed: 6.0}, Calibration: defaultCalibration()},
			}

			Convey("Then confidence always stays within [0, 100]", func() {
				for _, in := range inputs {
					res := s.Score(in)
					So(res.Confidence, ShouldBeGreaterThanOrEqualTo, 0.0)
					So(res.Confidence, ShouldBeLessThanOrEqualTo, 100.0)
					So(res.IsSwing, ShouldEqual, res.Confidence > 60.0)
				}
			})
		})
	})
}

func TestScoreContributions(t *testing.T) {
	Convey("Given a scorer", t, func() {
		s := score.NewScorer()

		Convey("When only the three core phases are present", func() {
			res := s.Score(score.Input{
				Phases:      fullPhases()[:3],
				Calibration: model.Calibration{PersonalizedExpectedTempo: 1.0},
			})

			Convey("Then completeness contributes its full 40 points", func() {
				// Zero tempo sits within 2.0 of the 1.0 expectation, so no
				// penalty applies.
				So(res.Confidence, ShouldEqual, 40.0)
			})
		})

		Convey("When max speed is only moderate", func() {
			weak := goodMetrics()
			weak.MaxSpeed = 6.0
			weak.EstimatedClubheadSpeedMph = 27.0
			res := s.Score(score.Input{
				Phases:      fullPhases(),
				Metrics:     weak,
				Calibration: defaultCalibration(),
			})

			Convey("Then the impact term drops from 20 to 10", func() {
				So(res.Confidence, ShouldEqual, 90.0)
			})
		})
	})
}

func TestCalibrationPenalty(t *testing.T) {
	Convey("Given a candidate whose tempo is far from the user's norm", t, func() {
		s := score.NewScorer()
		cal := defaultCalibration()
		cal.PersonalizedExpectedTempo = 6.0 // observed 3.0, deviation > 2.0

		res := s.Score(score.Input{
			Phases:      fullPhases(),
			Metrics:     goodMetrics(),
			Calibration: cal,
		})

		Convey("Then the total is scaled by 0.9", func() {
			So(res.Confidence, ShouldEqual, 90.0)
			So(res.IsSwing, ShouldBeTrue)
		})
	})
}
