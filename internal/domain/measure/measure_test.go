package measure_test

import (
	"testing"
	"time"

	"github.com/fairwaylabs/swingsense/internal/domain/measure"
	"github.com/fairwaylabs/swingsense/internal/domain/model"
	"github.com/fairwaylabs/swingsense/internal/domain/segment"
	"github.com/fairwaylabs/swingsense/internal/simulate"
	. "github.com/smartystreets/goconvey/convey"
)

func TestComputeCleanSwing(t *testing.T) {
	Convey("Given a segmented clean swing", t, func() {
		gen := simulate.NewGenerator(simulate.WithStartTime(0))
		samples := gen.CleanSwing()
		phases := segment.NewSegmenter().Split(samples)
		m := measure.Compute(phases, samples)

		Convey("Then max speed reflects the impact peak", func() {
			So(m.MaxSpeed, ShouldBeGreaterThan, 12.0)
		})

		Convey("And the tempo is in a plausible swing range", func() {
			So(m.SwingTempo, ShouldBeGreaterThan, 1.5)
			So(m.SwingTempo, ShouldBeLessThan, 5.0)
		})

		Convey("And the backswing angle is plausible", func() {
			So(m.BackswingAngleDeg, ShouldBeGreaterThan, 30.0)
			So(m.BackswingAngleDeg, ShouldBeLessThan, 120.0)
		})

		Convey("And the follow-through shows real rotation", func() {
			So(m.FollowThroughAngleDeg, ShouldBeGreaterThan, 20.0)
		})

		Convey("And impact comes after the backswing started", func() {
			So(m.ImpactTimingMs, ShouldBeGreaterThan, 0)
		})

		Convey("And the clubhead-speed estimate is plausible", func() {
			So(m.EstimatedClubheadSpeedMph, ShouldBeGreaterThan, 20.0)
			So(m.EstimatedClubheadSpeedMph, ShouldBeLessThan, 150.0)
		})

		Convey("And the plane angle stays within its cap", func() {
			So(m.SwingPlaneDeg, ShouldBeGreaterThanOrEqualTo, 0.0)
			So(m.SwingPlaneDeg, ShouldBeLessThanOrEqualTo, 90.0)
		})
	})
}

func TestComputeMissingPhases(t *testing.T) {
	Convey("Given no phases at all", t, func() {
		samples := simulate.NewGenerator(simulate.WithStartTime(0)).Quiet(500 * time.Millisecond)
		m := measure.Compute(nil, samples)

		Convey("Then angles and timing are zero", func() {
			So(m.BackswingAngleDeg, ShouldEqual, 0)
			So(m.DownswingAngleDeg, ShouldEqual, 0)
			So(m.FollowThroughAngleDeg, ShouldEqual, 0)
			So(m.ImpactTimingMs, ShouldEqual, 0)
		})

		Convey("And the tempo falls back to the 1ms floors", func() {
			So(m.SwingTempo, ShouldEqual, 1.0)
		})
	})
}

func TestComputeDeterminism(t *testing.T) {
	Convey("Given a fixed sample window", t, func() {
		gen := simulate.NewGenerator(simulate.WithStartTime(0))
		samples := gen.CleanSwing()
		phases := segment.NewSegmenter().Split(samples)

		Convey("When computing metrics repeatedly", func() {
			a := measure.Compute(phases, samples)
			b := measure.Compute(phases, samples)

			Convey("Then the outputs are identical", func() {
				So(a, ShouldResemble, b)
			})
		})
	})
}

func TestPhaseAngleCap(t *testing.T) {
	Convey("Given a long phase with extreme angular velocity", t, func() {
		samples := make([]model.MotionSample, 100)
		for i := range samples {
			samples[i] = model.MotionSample{
				AngularVelocity: model.Vec3{Y: 2000},
				TimestampMs:     int64(i) * 20,
			}
		}
		phases := []model.SwingPhase{{
			Kind:        model.PhaseBackswing,
			StartTimeMs: 0,
			EndTimeMs:   samples[len(samples)-1].TimestampMs,
		}}

		Convey("Then the integrated angle is capped at 180 degrees", func() {
			m := measure.Compute(phases, samples)
			So(m.BackswingAngleDeg, ShouldEqual, 180.0)
		})
	})
}
