package model_test

import (
	"math"
	"testing"

	"github.com/fairwaylabs/swingsense/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestVec3Magnitude(t *testing.T) {
	Convey("Given a 3-axis vector", t, func() {
		Convey("When computing the magnitude of a unit axis", func() {
			So(model.Vec3{X: 1}.Magnitude(), ShouldEqual, 1.0)
			So(model.Vec3{Y: -1}.Magnitude(), ShouldEqual, 1.0)
		})

		Convey("When computing the magnitude of a 3-4-0 vector", func() {
			So(model.Vec3{X: 3, Y: 4}.Magnitude(), ShouldEqual, 5.0)
		})

		Convey("When the vector is zero", func() {
			So(model.Vec3{}.Magnitude(), ShouldEqual, 0.0)
		})
	})
}

func TestMotionMagnitude(t *testing.T) {
	Convey("Given a motion sample", t, func() {
		s := model.MotionSample{
			Acceleration:    model.Vec3{X: 3, Y: 4},
			AngularVelocity: model.Vec3{Z: 200},
			TimestampMs:     1000,
		}

		Convey("Then the gyro contribution is scaled down by 100", func() {
			So(s.MotionMagnitude(), ShouldAlmostEqual, 5.0+2.0, 1e-9)
		})

		Convey("And a pure-acceleration sample equals its accel magnitude", func() {
			quiet := model.MotionSample{Acceleration: model.Vec3{Z: 9.81}}
			So(quiet.MotionMagnitude(), ShouldAlmostEqual, 9.81, 1e-9)
		})
	})
}

func TestPhaseKindString(t *testing.T) {
	Convey("Given the closed set of phase kinds", t, func() {
		names := map[model.PhaseKind]string{
			model.PhaseAddress:       "address",
			model.PhaseBackswing:     "backswing",
			model.PhaseTransition:    "transition",
			model.PhaseDownswing:     "downswing",
			model.PhaseImpact:        "impact",
			model.PhaseFollowThrough: "follow_through",
		}

		Convey("Then every kind has a stable lowercase name", func() {
			for kind, want := range names {
				So(kind.String(), ShouldEqual, want)
			}
		})

		Convey("And an out-of-range kind reports unknown", func() {
			So(model.PhaseKind(99).String(), ShouldEqual, "unknown")
		})
	})
}

func TestFindPhase(t *testing.T) {
	Convey("Given an ordered phase sequence", t, func() {
		phases := []model.SwingPhase{
			{Kind: model.PhaseBackswing, StartTimeMs: 0, EndTimeMs: 600},
			{Kind: model.PhaseDownswing, StartTimeMs: 600, EndTimeMs: 850},
		}

		Convey("When looking up a present phase", func() {
			p, ok := model.FindPhase(phases, model.PhaseDownswing)
			So(ok, ShouldBeTrue)
			So(p.DurationMs(), ShouldEqual, 250)
		})

		Convey("When looking up an absent phase", func() {
			_, ok := model.FindPhase(phases, model.PhaseImpact)
			So(ok, ShouldBeFalse)
		})
	})
}

func TestMotionMagnitudeIsFinite(t *testing.T) {
	Convey("Given large but finite sensor values", t, func() {
		s := model.MotionSample{
			Acceleration:    model.Vec3{X: 160, Y: 160, Z: 160},
			AngularVelocity: model.Vec3{X: 2000, Y: 2000, Z: 2000},
		}

		Convey("Then the motion magnitude stays finite", func() {
			So(math.IsInf(s.MotionMagnitude(), 0), ShouldBeFalse)
			So(math.IsNaN(s.MotionMagnitude()), ShouldBeFalse)
		})
	})
}
