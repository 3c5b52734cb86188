package segment_test

import (
	"testing"

	"github.com/fairwaylabs/swingsense/internal/domain/model"
	"github.com/fairwaylabs/swingsense/internal/domain/segment"
	"github.com/fairwaylabs/swingsense/internal/simulate"
	. "github.com/smartystreets/goconvey/convey"
)

func TestSplitCleanSwing(t *testing.T) {
	Convey("Given a clean synthetic swing", t, func() {
		gen := simulate.NewGenerator(simulate.WithStartTime(0))
		samples := gen.CleanSwing()
		sg := segment.NewSegmenter()

		Convey("When segmenting the full window", func() {
			phases := sg.Split(samples)

			Convey("Then the core phases are present", func() {
				for _, kind := range []model.PhaseKind{
					model.PhaseBackswing,
					model.PhaseDownswing,
					model.PhaseImpact,
					model.PhaseFollowThrough,
				} {
					_, ok := model.FindPhase(phases, kind)
					So(ok, ShouldBeTrue)
				}
			})

			Convey("And phase start times never decrease", func() {
				for i := 1; i < len(phases); i++ {
					So(phases[i].StartTimeMs, ShouldBeGreaterThanOrEqualTo, phases[i-1].StartTimeMs)
				}
			})

			Convey("And phases do not overlap", func() {
				for i := 1; i < len(phases); i++ {
					So(phases[i].StartTimeMs, ShouldBeGreaterThanOrEqualTo, phases[i-1].EndTimeMs)
				}
			})

			Convey("And every phase has positive duration", func() {
				for _, p := range phases {
					So(p.DurationMs(), ShouldBeGreaterThan, 0)
				}
			})

			Convey("And the impact phase carries the window's peak acceleration", func() {
				impact, ok := model.FindPhase(phases, model.PhaseImpact)
				So(ok, ShouldBeTrue)
				var maxAccel float64
				for _, s := range samples {
					if a := s.Acceleration.Magnitude(); a > maxAccel {
						maxAccel = a
					}
				}
				So(impact.PeakAcceleration, ShouldAlmostEqual, maxAccel, 1e-9)
			})
		})
	})
}

func TestSplitDegenerateWindows(t *testing.T) {
	Convey("Given a segmenter", t, func() {
		sg := segment.NewSegmenter()

		Convey("When the window is empty or has one sample", func() {
			So(sg.Split(nil), ShouldBeEmpty)
			So(sg.Split([]model.MotionSample{{TimestampMs: 1}}), ShouldBeEmpty)
		})

		Convey("When the peak sits at the very start of the window", func() {
			samples := make([]model.MotionSample, 20)
			for i := range samples {
				mag := 1.0
				if i == 0 {
					mag = 14.0
				}
				samples[i] = model.MotionSample{
					Acceleration: model.Vec3{Z: mag},
					TimestampMs:  int64(i) * 20,
				}
			}

			phases := sg.Split(samples)

			Convey("Then early phases are omitted instead of failing", func() {
				_, hasBackswing := model.FindPhase(phases, model.PhaseBackswing)
				_, hasDownswing := model.FindPhase(phases, model.PhaseDownswing)
				So(hasBackswing, ShouldBeFalse)
				So(hasDownswing, ShouldBeFalse)
			})

			Convey("And the follow-through still covers the tail", func() {
				follow, ok := model.FindPhase(phases, model.PhaseFollowThrough)
				So(ok, ShouldBeTrue)
				So(follow.EndTimeMs, ShouldEqual, samples[len(samples)-1].TimestampMs)
			})
		})
	})
}
