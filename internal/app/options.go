package service

import (
	"github.com/fairwaylabs/swingsense/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithQueueSize sets the maximum size of the sample queue.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithBufferCapacity sets the engine's sample ring capacity.
func WithBufferCapacity(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.bufferCapacity = n
		}
	}
}

// WithMinAnalysisSamples sets the buffer floor for triggering analysis.
func WithMinAnalysisSamples(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.minAnalysisSamples = n
		}
	}
}

// WithEmitConfidence sets the publication gate for detections.
func WithEmitConfidence(c float64) Option {
	return func(s *Service) {
		if c >= 0 {
			s.emitConfidence = c
		}
	}
}

// WithTruncateKeep sets how many samples survive post-detection truncation.
func WithTruncateKeep(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.truncateKeep = n
		}
	}
}

// WithMaxSessionSwings bounds the session swing history.
func WithMaxSessionSwings(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxSessionSwings = n
		}
	}
}

// WithDefaultUserID seeds the session calibration at startup.
func WithDefaultUserID(id string) Option {
	return func(s *Service) {
		if id != "" {
			s.defaultUserID = id
		}
	}
}

// WithCalibrationDefaults seeds the startup calibration thresholds. Zero
// values keep the built-in defaults.
func WithCalibrationDefaults(baselineNoise, swingThreshold, expectedTempo float64) Option {
	return func(s *Service) {
		if baselineNoise > 0 {
			s.baselineNoise = baselineNoise
		}
		if swingThreshold > 0 {
			s.swingThreshold = swingThreshold
		}
		if expectedTempo > 0 {
			s.expectedTempo = expectedTempo
		}
	}
}

// WithWSSendBuffer sizes the per-client WebSocket outbound buffer.
func WithWSSendBuffer(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.wsSendBuffer = n
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}
