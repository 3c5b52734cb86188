package buffer_test

import (
	"sync"
	"testing"

	"github.com/fairwaylabs/swingsense/internal/domain/buffer"
	"github.com/fairwaylabs/swingsense/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func sampleAt(ts int64) model.MotionSample {
	return model.MotionSample{
		Acceleration: model.Vec3{Z: 9.81},
		TimestampMs:  ts,
	}
}

func TestRingAppendAndEviction(t *testing.T) {
	Convey("Given a ring with small capacity", t, func() {
		r := buffer.NewRing(buffer.WithCapacity(3))

		Convey("When appending within capacity", func() {
			So(r.Append(sampleAt(1)), ShouldBeTrue)
			So(r.Append(sampleAt(2)), ShouldBeTrue)
			So(r.Len(), ShouldEqual, 2)

			Convey("Then a snapshot preserves order", func() {
				snap := r.Snapshot()
				So(snap[0].TimestampMs, ShouldEqual, 1)
				So(snap[1].TimestampMs, ShouldEqual, 2)
			})
		})

		Convey("When appending past capacity", func() {
			for ts := int64(1); ts <= 5; ts++ {
				So(r.Append(sampleAt(ts)), ShouldBeTrue)
			}

			Convey("Then length never exceeds capacity", func() {
				So(r.Len(), ShouldEqual, 3)
			})

			Convey("And the oldest samples were evicted first", func() {
				snap := r.Snapshot()
				So(snap[0].TimestampMs, ShouldEqual, 3)
				So(snap[2].TimestampMs, ShouldEqual, 5)
			})
		})
	})
}

func TestRingOrderingGuard(t *testing.T) {
	Convey("Given a ring holding a sample", t, func() {
		r := buffer.NewRing(buffer.WithCapacity(8))
		So(r.Append(sampleAt(100)), ShouldBeTrue)

		Convey("When appending an older timestamp", func() {
			So(r.Append(sampleAt(50)), ShouldBeFalse)
			So(r.Len(), ShouldEqual, 1)
		})

		Convey("When appending a duplicate timestamp", func() {
			So(r.Append(sampleAt(100)), ShouldBeFalse)
			So(r.Len(), ShouldEqual, 1)
		})

		Convey("When appending a newer timestamp", func() {
			So(r.Append(sampleAt(120)), ShouldBeTrue)
			So(r.Len(), ShouldEqual, 2)
		})
	})
}

func TestRingTruncateToNewest(t *testing.T) {
	Convey("Given a full ring", t, func() {
		r := buffer.NewRing(buffer.WithCapacity(10))
		for ts := int64(1); ts <= 10; ts++ {
			r.Append(sampleAt(ts))
		}

		Convey("When truncating to the newest 3", func() {
			r.TruncateToNewest(3)

			So(r.Len(), ShouldEqual, 3)
			snap := r.Snapshot()
			So(snap[0].TimestampMs, ShouldEqual, 8)
			So(snap[2].TimestampMs, ShouldEqual, 10)

			Convey("And appends continue normally afterwards", func() {
				So(r.Append(sampleAt(11)), ShouldBeTrue)
				So(r.Len(), ShouldEqual, 4)
			})
		})

		Convey("When truncating to more than the current length", func() {
			r.TruncateToNewest(50)
			So(r.Len(), ShouldEqual, 10)
		})

		Convey("When clearing", func() {
			r.Clear()
			So(r.Len(), ShouldEqual, 0)
			So(r.Snapshot(), ShouldBeEmpty)
		})
	})
}

func TestRingInvariantUnderConcurrentAppends(t *testing.T) {
	Convey("Given concurrent producers with disjoint timestamp ranges", t, func() {
		r := buffer.NewRing(buffer.WithCapacity(64))

		var wg sync.WaitGroup
		for g := 0; g < 4; g++ {
			wg.Add(1)
			go func(base int64) {
				defer wg.Done()
				for ts := base; ts < base+100; ts++ {
					r.Append(sampleAt(ts))
				}
			}(int64(g * 1000))
		}
		wg.Wait()

		Convey("Then length stays bounded and the snapshot is ordered", func() {
			So(r.Len(), ShouldBeLessThanOrEqualTo, 64)
			snap := r.Snapshot()
			for i := 1; i < len(snap); i++ {
				So(snap[i].TimestampMs, ShouldBeGreaterThan, snap[i-1].TimestampMs)
			}
		})
	})
}
