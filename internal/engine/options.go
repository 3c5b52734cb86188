package engine

import "github.com/fairwaylabs/swingsense/pkg/logger"

// Option configures an Engine.
type Option func(*Engine)

// WithBufferCapacity overrides the sample ring capacity.
func WithBufferCapacity(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.bufferCapacity = n
		}
	}
}

// WithMinAnalysisSamples sets the buffer floor below which no analysis pass
// is triggered.
func WithMinAnalysisSamples(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.minAnalysisSamples = n
		}
	}
}

// WithEmitConfidence sets the confidence a detection must exceed to be
// published and to truncate the buffer.
func WithEmitConfidence(c float64) Option {
	return func(e *Engine) {
		if c >= 0 {
			e.emitConfidence = c
		}
	}
}

// WithTruncateKeep sets how many recent samples survive the post-detection
// truncation.
func WithTruncateKeep(n int) Option {
	return func(e *Engine) {
		if n >= 0 {
			e.truncateKeep = n
		}
	}
}

// WithSubscriberBuffer sets the channel buffer for result and error
// subscribers.
func WithSubscriberBuffer(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.subscriberBuffer = n
		}
	}
}

// WithLogger sets the engine logger.
func WithLogger(l logger.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}
