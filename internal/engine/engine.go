// Package engine owns the swing-detection orchestration.
//
// One Engine serves one user session. It owns the sample buffer and the
// calibration store, triggers asynchronous analysis passes as samples
// arrive, and guarantees at most one pass is in flight at a time. The
// deterministic core algorithm lives in DetectSwing and can be called in
// isolation; everything else is buffering, guarding, and event delivery
// around it.
package engine

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/fairwaylabs/swingsense/internal/domain/buffer"
	"github.com/fairwaylabs/swingsense/internal/domain/calibration"
	"github.com/fairwaylabs/swingsense/internal/domain/filter"
	"github.com/fairwaylabs/swingsense/internal/domain/locate"
	"github.com/fairwaylabs/swingsense/internal/domain/measure"
	"github.com/fairwaylabs/swingsense/internal/domain/model"
	"github.com/fairwaylabs/swingsense/internal/domain/score"
	"github.com/fairwaylabs/swingsense/internal/domain/segment"
	"github.com/fairwaylabs/swingsense/pkg/logger"
	"github.com/fairwaylabs/swingsense/pkg/metrics"
)

// Default engine configuration constants.
const (
	// defaultMinAnalysisSamples is the buffer floor below which analysis
	// does not trigger.
	defaultMinAnalysisSamples = 50

	// defaultEmitConfidence gates the outbound detection stream and the
	// post-detection buffer truncation.
	defaultEmitConfidence = 70.0

	// defaultTruncateKeep is how many recent samples survive truncation
	// after an emitted detection, so the same swing is not found twice.
	defaultTruncateKeep = 25

	// defaultSubscriberBuffer sizes each subscriber channel.
	defaultSubscriberBuffer = 8
)

// Engine is the detection orchestrator for one session.
type Engine struct {
	buf *buffer.Ring
	cal *calibration.Store

	minAnalysisSamples int
	emitConfidence     float64
	truncateKeep       int
	subscriberBuffer   int
	bufferCapacity     int

	// analyzing enforces the at-most-one-pass invariant; set with a CAS
	// so the sample producer never blocks, cleared in a deferred release.
	analyzing atomic.Bool

	// epoch invalidates in-flight passes across Initialize/Reset.
	epoch atomic.Int64

	initialized atomic.Bool

	// analyzeStarted, when set, runs synchronously at the start of every
	// analysis pass. Tests use it to observe pass concurrency.
	analyzeStarted func()

	results *stream[model.SwingDetectionResult]
	errors  *stream[string]

	logger logger.Logger
}

// New creates an engine with configuration options. Initialize must be
// called before samples are accepted.
func New(opts ...Option) *Engine {
	e := &Engine{
		minAnalysisSamples: defaultMinAnalysisSamples,
		emitConfidence:     defaultEmitConfidence,
		truncateKeep:       defaultTruncateKeep,
		subscriberBuffer:   defaultSubscriberBuffer,
	}

	for _, opt := range opts {
		opt(e)
	}

	bufOpts := []buffer.Option{}
	if e.bufferCapacity > 0 {
		bufOpts = append(bufOpts, buffer.WithCapacity(e.bufferCapacity))
	}
	e.buf = buffer.NewRing(bufOpts...)
	e.cal = calibration.NewStore(calibration.Defaults(""))
	e.results = newStream[model.SwingDetectionResult](e.subscriberBuffer)
	e.errors = newStream[string](e.subscriberBuffer)

	if e.logger == nil {
		e.logger = logger.Get().Named("engine")
	}

	return e
}

// Initialize replaces the session calibration, clears the buffer, and aborts
// any in-flight analysis (its result is discarded, not delivered).
func (e *Engine) Initialize(cal model.Calibration) {
	e.epoch.Add(1)
	e.cal.Replace(cal)
	e.buf.Clear()
	e.initialized.Store(true)
	metrics.UpdateBufferSize(0)
	metrics.UpdateExpectedTempo(cal.PersonalizedExpectedTempo)
	e.logger.Info(context.Background(), "engine initialized",
		logger.String("userID", cal.UserID),
		logger.Float64("swingThreshold", cal.SwingThreshold),
	)
}

// Reset clears the buffer and in-flight state between holes or sessions.
// Calibration is retained.
func (e *Engine) Reset() {
	e.epoch.Add(1)
	e.buf.Clear()
	metrics.UpdateBufferSize(0)
	e.logger.Info(context.Background(), "engine reset")
}

// AddSample appends a sample to the buffer and triggers an analysis pass
// when the buffer is full enough and no pass is already running. It never
// blocks: called before Initialize it logs and drops the sample.
func (e *Engine) AddSample(s model.MotionSample) {
	if !e.initialized.Load() {
		metrics.RecordSampleRejected()
		e.logger.Warn(context.Background(), "sample dropped: engine not initialized")
		return
	}

	if !e.buf.Append(s) {
		// Out-of-order or duplicate timestamp.
		metrics.RecordSampleRejected()
		return
	}
	metrics.RecordSampleIngested()
	metrics.UpdateBufferSize(e.buf.Len())

	if e.buf.Len() < e.minAnalysisSamples {
		return
	}

	if e.analyzing.CompareAndSwap(false, true) {
		go e.analyze(e.epoch.Load())
	}
	// Otherwise a pass is already in flight; this sample simply waits in
	// the buffer for the next one.
}

// DetectSwing runs the full detection pipeline over the given samples using
// the current calibration. It is deterministic: identical input and
// calibration produce identical output. Result identity fields (ID,
// DetectedAt) are left zero; the asynchronous path stamps them on emission.
// Called before Initialize it logs and returns an empty result.
func (e *Engine) DetectSwing(samples []model.MotionSample) model.SwingDetectionResult {
	if !e.initialized.Load() {
		e.logger.Warn(context.Background(), "detection skipped: engine not initialized")
		return model.SwingDetectionResult{}
	}

	cal := e.cal.Snapshot()

	filtered := filter.NewNoise(cal.BaselineNoise).Apply(samples)
	candidates := locate.NewLocator(cal.SwingThreshold).Scan(filtered)
	metrics.RecordCandidates(len(candidates))

	best := model.SwingDetectionResult{RawData: samples}
	segmenter := segment.NewSegmenter()
	scorer := score.NewScorer()

	for _, c := range candidates {
		raw := sliceByTime(samples, filtered[c.StartIndex].TimestampMs, filtered[c.EndIndex].TimestampMs)
		phases := segmenter.Split(raw)
		m := measure.Compute(phases, raw)
		res := scorer.Score(score.Input{Phases: phases, Metrics: m, Calibration: cal})

		// Strict comparison keeps the first-found candidate on ties.
		if res.Confidence > best.Confidence {
			best = model.SwingDetectionResult{
				IsSwing:    res.IsSwing,
				Confidence: res.Confidence,
				Metrics:    &m,
				Phases:     phases,
				RawData:    raw,
			}
		}
	}

	return best
}

// UpdateCalibration folds a confirmed swing's metrics into the personalized
// expectations. Called by the consumer once a detection is acknowledged; the
// pipeline never invokes it on its own.
func (e *Engine) UpdateCalibration(m model.SwingMetrics) {
	e.cal.Observe(m)
	metrics.UpdateExpectedTempo(e.cal.Snapshot().PersonalizedExpectedTempo)
}

// Calibration returns the current calibration; ok is false before
// Initialize.
func (e *Engine) Calibration() (model.Calibration, bool) {
	if !e.initialized.Load() {
		return model.Calibration{}, false
	}
	return e.cal.Snapshot(), true
}

// BufferLen reports the current number of buffered samples.
func (e *Engine) BufferLen() int {
	return e.buf.Len()
}

// SubscribeResults registers for emitted detections (IsSwing with
// confidence above the emit gate). The cancel func is idempotent.
func (e *Engine) SubscribeResults() (<-chan model.SwingDetectionResult, func()) {
	return e.results.subscribe()
}

// SubscribeErrors registers for internal failure diagnostics.
func (e *Engine) SubscribeErrors() (<-chan string, func()) {
	return e.errors.subscribe()
}

// Close shuts down the outbound streams. The engine itself holds no
// goroutines beyond in-flight passes, which finish on their own.
func (e *Engine) Close() {
	e.results.closeAll()
	e.errors.closeAll()
}

// analyze runs one guarded analysis pass over a buffer snapshot.
func (e *Engine) analyze(epoch int64) {
	defer e.analyzing.Store(false)
	defer func() {
		if r := recover(); r != nil {
			metrics.RecordAnalysisPanic()
			e.logger.Error(context.Background(), "analysis pass panicked",
				logger.Any("panic", r),
			)
			e.errors.publish(fmt.Sprintf("analysis aborted: %v", r))
		}
	}()

	if e.analyzeStarted != nil {
		e.analyzeStarted()
	}

	start := time.Now()
	samples := e.buf.Snapshot()
	result := e.DetectSwing(samples)

	metrics.RecordAnalysisRun()
	metrics.RecordAnalysisLatency(float64(time.Since(start).Microseconds()) / 1000.0)
	metrics.RecordConfidence(result.Confidence)

	if e.epoch.Load() != epoch {
		// Initialize or Reset happened mid-pass; discard silently.
		metrics.RecordStalePass()
		return
	}

	if !result.IsSwing || result.Confidence <= e.emitConfidence {
		return
	}

	result.ID = uuid.New().String()
	result.DetectedAt = time.Now()

	e.buf.TruncateToNewest(e.truncateKeep)
	metrics.UpdateBufferSize(e.buf.Len())
	metrics.RecordSwingDetected()

	e.logger.Info(context.Background(), "swing detected",
		logger.String("id", result.ID),
		logger.Float64("confidence", result.Confidence),
	)
	e.results.publish(result)
}

// sliceByTime returns the samples whose timestamps fall inside [fromMs,
// toMs].
func sliceByTime(samples []model.MotionSample, fromMs, toMs int64) []model.MotionSample {
	out := make([]model.MotionSample, 0, len(samples))
	for _, s := range samples {
		if s.TimestampMs >= fromMs && s.TimestampMs <= toMs {
			out = append(out, s)
		}
	}
	return out
}
