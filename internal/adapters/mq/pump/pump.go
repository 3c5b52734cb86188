// Package pump drains the sample queue into the detection engine.
//
// Unlike a fan-out worker pool, the pump is deliberately a single consumer:
// the engine's buffer enforces timestamp monotonicity, so samples must be
// delivered in queue order. One goroutine keeps ordering trivially correct.
package pump

import (
	"context"
	"fmt"
	"time"

	"github.com/fairwaylabs/swingsense/internal/domain/model"
	"github.com/fairwaylabs/swingsense/pkg/logger"
)

// Default pump configuration constants.
const (
	shutdownTimeout = 5 * time.Second
)

// Sample is the payload the pump reads off the queue.
type Sample = model.MotionSample

// Sink receives samples in delivery order.
type Sink interface {
	AddSample(s Sample)
}

// Queue defines how the pump receives samples.
type Queue interface {
	Dequeue(ctx context.Context) <-chan Sample
}

// Pump moves samples from the queue to the sink until stopped.
type Pump struct {
	queue Queue
	sink  Sink
	name  string

	// Shutdown control
	shutdown chan struct{}
	done     chan struct{}

	// Logging
	logger logger.Logger
}

// New creates a pump with configuration options.
func New(queue Queue, sink Sink, opts ...Option) *Pump {
	p := &Pump{
		queue:    queue,
		sink:     sink,
		name:     "pump",
		shutdown: make(chan struct{}),
		done:     make(chan struct{}),
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = logger.Get().Named(p.name)
	}

	return p
}

// Run starts the drain loop and blocks until ctx is cancelled, Shutdown is
// called, or the queue closes.
func (p *Pump) Run(ctx context.Context) {
	defer close(p.done)

	sampleChan := p.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-p.shutdown:
			return
		case s, ok := <-sampleChan:
			if !ok {
				// Queue closed, nothing more to drain.
				return
			}
			p.sink.AddSample(s)
		}
	}
}

// Shutdown gracefully stops the pump.
func (p *Pump) Shutdown(ctx context.Context) error {
	close(p.shutdown)

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	select {
	case <-p.done:
		return nil
	case <-shutdownCtx.Done():
		p.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", shutdownCtx.Err())
	}
}
