// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"sync"

	samplequeue "github.com/fairwaylabs/swingsense/internal/adapters/mq/queue"
	"github.com/fairwaylabs/swingsense/internal/adapters/mq/pump"
	"github.com/fairwaylabs/swingsense/internal/adapters/repository"
	"github.com/fairwaylabs/swingsense/internal/adapters/ws"
	"github.com/fairwaylabs/swingsense/internal/domain/calibration"
	"github.com/fairwaylabs/swingsense/internal/domain/model"
	"github.com/fairwaylabs/swingsense/internal/engine"
	"github.com/fairwaylabs/swingsense/pkg/logger"
	"github.com/fairwaylabs/swingsense/pkg/metrics"
)

// Service wires the detection engine, queue, history store, and result
// fan-out for one session.
type Service struct {
	mu sync.RWMutex

	// Core components
	engine      *engine.Engine
	history     repository.Store
	sampleQueue samplequeue.Queue
	pump        *pump.Pump
	hub         *ws.Hub

	// Configuration
	queueSize          int
	bufferCapacity     int
	minAnalysisSamples int
	emitConfidence     float64
	truncateKeep       int
	maxSessionSwings   int
	defaultUserID      string
	baselineNoise      float64
	swingThreshold     float64
	expectedTempo      float64
	wsSendBuffer       int

	// State
	started bool
	cancel  context.CancelFunc
	drained chan struct{}

	// Logging
	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		queueSize:          4096,
		bufferCapacity:     200,
		minAnalysisSamples: 50,
		emitConfidence:     70.0,
		truncateKeep:       25,
		maxSessionSwings:   500,
		defaultUserID:      "default",
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}

	s.logger.Info(ctx, "starting swing detection service...")

	s.engine = engine.New(
		engine.WithBufferCapacity(s.bufferCapacity),
		engine.WithMinAnalysisSamples(s.minAnalysisSamples),
		engine.WithEmitConfidence(s.emitConfidence),
		engine.WithTruncateKeep(s.truncateKeep),
	)
	cal := calibration.Defaults(s.defaultUserID)
	if s.baselineNoise > 0 {
		cal.BaselineNoise = s.baselineNoise
	}
	if s.swingThreshold > 0 {
		cal.SwingThreshold = s.swingThreshold
	}
	if s.expectedTempo > 0 {
		cal.PersonalizedExpectedTempo = s.expectedTempo
	}
	s.engine.Initialize(cal)

	s.history = repository.NewMemStore(
		repository.WithMaxSwings(s.maxSessionSwings),
	)
	s.sampleQueue = samplequeue.NewInMemoryQueue(
		samplequeue.WithCapacity(s.queueSize),
		samplequeue.WithBufferSize(s.queueSize),
	)
	hubOpts := []ws.Option{}
	if s.wsSendBuffer > 0 {
		hubOpts = append(hubOpts, ws.WithSendBuffer(s.wsSendBuffer))
	}
	s.hub = ws.NewHub(hubOpts...)

	runCtx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.drained = make(chan struct{})

	s.pump = pump.New(s.sampleQueue, s.engine)
	go s.pump.Run(runCtx)
	go s.consumeResults(runCtx)
	go s.consumeErrors(runCtx)

	s.started = true
	s.logger.Info(ctx, "swing detection service started",
		logger.Int("queueSize", s.queueSize),
		logger.Int("bufferCapacity", s.bufferCapacity),
		logger.Float64("emitConfidence", s.emitConfidence),
	)

	return nil
}

// consumeResults records emitted detections and fans them out to stream
// subscribers.
func (s *Service) consumeResults(ctx context.Context) {
	defer close(s.drained)

	results, cancel := s.engine.SubscribeResults()
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return
		case result, ok := <-results:
			if !ok {
				return
			}
			if err := s.history.Add(ctx, result); err != nil {
				s.logger.Error(ctx, "failed to record swing",
					logger.String("id", result.ID),
					logger.Error(err),
				)
				continue
			}
			s.hub.Broadcast(result)
		}
	}
}

// consumeErrors surfaces internal engine failures in the service log.
func (s *Service) consumeErrors(ctx context.Context) {
	errs, cancel := s.engine.SubscribeErrors()
	defer cancel()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-errs:
			if !ok {
				return
			}
			s.logger.Error(ctx, "engine failure", logger.String("detail", msg))
		}
	}
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	ctx := context.Background()
	s.logger.Info(ctx, "stopping swing detection service...")

	if q, ok := s.sampleQueue.(*samplequeue.InMemoryQueue); ok {
		_ = q.Close()
	}
	if s.pump != nil {
		_ = s.pump.Shutdown(ctx)
	}
	if s.cancel != nil {
		s.cancel()
	}
	if s.engine != nil {
		s.engine.Close()
	}
	if s.drained != nil {
		<-s.drained
	}
	if s.hub != nil {
		s.hub.Close()
	}

	s.started = false
	s.logger.Info(ctx, "swing detection service stopped")
}

// Enqueue submits a sample for asynchronous processing.
func (s *Service) Enqueue(ctx context.Context, sample model.MotionSample) bool {
	return s.sampleQueue.Enqueue(ctx, sample)
}

// Recent returns up to limit swings from this session, newest first.
func (s *Service) Recent(ctx context.Context, limit int) ([]model.SwingDetectionResult, error) {
	return s.history.Recent(ctx, limit)
}

// Best returns the session's highest-confidence swing.
func (s *Service) Best(ctx context.Context) (model.SwingDetectionResult, error) {
	return s.history.Best(ctx)
}

// Swing returns one recorded swing by ID.
func (s *Service) Swing(ctx context.Context, id string) (model.SwingDetectionResult, error) {
	return s.history.Get(ctx, id)
}

// ConfirmSwing acknowledges a recorded swing as a real one and folds its
// metrics into the personalized calibration. Detection alone never adapts
// calibration; confirmation is the only feedback path.
func (s *Service) ConfirmSwing(ctx context.Context, id string) error {
	result, err := s.history.Get(ctx, id)
	if err != nil {
		return err
	}
	if result.Metrics == nil {
		s.logger.Warn(ctx, "confirmed swing has no metrics", logger.String("id", id))
		return nil
	}
	s.engine.UpdateCalibration(*result.Metrics)
	s.logger.Info(ctx, "swing confirmed", logger.String("id", id))
	return nil
}

// Calibration returns the active calibration.
func (s *Service) Calibration(_ context.Context) (model.Calibration, bool) {
	return s.engine.Calibration()
}

// ReplaceCalibration restarts the session with the given calibration. The
// sample buffer is cleared; the swing history survives because recorded
// swings already happened.
func (s *Service) ReplaceCalibration(ctx context.Context, cal model.Calibration) {
	s.engine.Initialize(cal)
	s.logger.Info(ctx, "calibration replaced", logger.String("userID", cal.UserID))
}

// ResetSession clears the buffer and swing history between holes.
// Calibration is retained.
func (s *Service) ResetSession(ctx context.Context) {
	s.engine.Reset()
	s.history.Clear(ctx)
	s.logger.Info(ctx, "session reset")
}

// StreamHandler exposes the WebSocket result stream endpoint.
func (s *Service) StreamHandler() *ws.Hub {
	return s.hub
}

// DetectSwing runs the synchronous detection pipeline over the given
// samples. Exposed for calibration tooling and offline analysis.
func (s *Service) DetectSwing(samples []model.MotionSample) model.SwingDetectionResult {
	return s.engine.DetectSwing(samples)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":        s.started,
		"queueSize":      s.queueSize,
		"bufferCapacity": s.bufferCapacity,
		"emitConfidence": s.emitConfidence,
	}

	if s.started {
		queueLen := s.sampleQueue.Len(ctx)
		stats["queueLength"] = queueLen
		stats["bufferedSamples"] = s.engine.BufferLen()
		stats["sessionSwings"] = s.history.Count(ctx)
		stats["streamClients"] = s.hub.ClientCount()

		metrics.UpdateQueueSize(queueLen)
		metrics.UpdateSessionSwings(s.history.Count(ctx))
	}

	return stats
}
