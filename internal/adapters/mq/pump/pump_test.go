package pump_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/smartystreets/goconvey/convey"

	"github.com/fairwaylabs/swingsense/internal/adapters/mq/pump"
	"github.com/fairwaylabs/swingsense/internal/domain/model"
	logging "github.com/fairwaylabs/swingsense/pkg/logger"
)

// Mock implementations for testing.
type mockQueue struct {
	sampleChan chan pump.Sample
}

func newMockQueue() *mockQueue {
	return &mockQueue{
		sampleChan: make(chan pump.Sample, 64),
	}
}

func (mq *mockQueue) Dequeue(ctx context.Context) <-chan pump.Sample {
	return mq.sampleChan
}

func (mq *mockQueue) Close() error {
	close(mq.sampleChan)
	return nil
}

func (mq *mockQueue) addSample(s pump.Sample) {
	mq.sampleChan <- s
}

type mockSink struct {
	mu      sync.Mutex
	samples []model.MotionSample
}

func (ms *mockSink) AddSample(s model.MotionSample) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.samples = append(ms.samples, s)
}

func (ms *mockSink) received() []model.MotionSample {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	out := make([]model.MotionSample, len(ms.samples))
	copy(out, ms.samples)
	return out
}

func sampleAt(ts int64) model.MotionSample {
	return model.MotionSample{
		Acceleration: model.Vec3{Z: 1.0},
		TimestampMs:  ts,
	}
}

func TestPump(t *testing.T) {
	convey.Convey("Given a new Pump", t, func() {
		_ = logging.Init()

		queue := newMockQueue()
		sink := &mockSink{}

		convey.Convey("When creating a pump with default options", func() {
			p := pump.New(queue, sink)

			convey.Convey("Then it should be created successfully", func() {
				convey.So(p, convey.ShouldNotBeNil)
			})
		})

		convey.Convey("When running a pump", func() {
			p := pump.New(queue, sink, pump.WithName("test-pump"))
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			go p.Run(ctx)
			time.Sleep(10 * time.Millisecond)

			convey.Convey("And when samples arrive in order", func() {
				for i := 0; i < 5; i++ {
					queue.addSample(sampleAt(int64(1000 + i*20)))
				}
				time.Sleep(50 * time.Millisecond)

				convey.Convey("Then the sink receives them in the same order", func() {
					got := sink.received()
					convey.So(len(got), convey.ShouldEqual, 5)
					for i := 1; i < len(got); i++ {
						convey.So(got[i].TimestampMs, convey.ShouldBeGreaterThan, got[i-1].TimestampMs)
					}
				})
			})

			convey.Convey("And when shutting down", func() {
				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
				defer shutdownCancel()

				err := p.Shutdown(shutdownCtx)

				convey.Convey("Then it should shutdown gracefully", func() {
					convey.So(err, convey.ShouldBeNil)
				})
			})
		})

		convey.Convey("When the queue channel closes", func() {
			p := pump.New(queue, sink)
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			go p.Run(ctx)
			time.Sleep(10 * time.Millisecond)

			queue.addSample(sampleAt(1000))
			_ = queue.Close()
			time.Sleep(50 * time.Millisecond)

			convey.Convey("Then buffered samples drain before the pump stops", func() {
				got := sink.received()
				convey.So(len(got), convey.ShouldEqual, 1)

				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
				defer shutdownCancel()
				convey.So(p.Shutdown(shutdownCtx), convey.ShouldBeNil)
			})
		})

		convey.Convey("When context is cancelled", func() {
			p := pump.New(queue, sink)
			ctx, cancel := context.WithCancel(context.Background())

			go p.Run(ctx)
			time.Sleep(10 * time.Millisecond)
			cancel()
			time.Sleep(50 * time.Millisecond)

			convey.Convey("Then no further samples are delivered", func() {
				queue.addSample(sampleAt(2000))
				time.Sleep(50 * time.Millisecond)
				convey.So(len(sink.received()), convey.ShouldEqual, 0)
			})
		})
	})
}
