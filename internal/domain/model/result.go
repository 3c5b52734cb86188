package model

import "time"

// SwingThresholdConfidence is the score above which a window counts as a swing.
const SwingThresholdConfidence = 60.0

// SwingDetectionResult is the unit returned to callers for one analysis pass.
// Created fresh per pass and never mutated afterwards. IsSwing holds exactly
// when Confidence > 60.
type SwingDetectionResult struct {
	ID         string         `json:"id"`
	IsSwing    bool           `json:"is_swing"`
	Confidence float64        `json:"confidence"`
	Metrics    *SwingMetrics  `json:"metrics,omitempty"`
	Phases     []SwingPhase   `json:"phases,omitempty"`
	RawData    []MotionSample `json:"raw_data,omitempty"`
	DetectedAt time.Time      `json:"detected_at"`
}
