// Package filter smooths and denoises sample windows ahead of candidate
// scanning.
//
// Smoothing is a 3-sample centered moving average over both the acceleration
// and angular-velocity vectors; edge samples use a truncated window instead
// of padding. Smoothed samples whose acceleration magnitude falls below the
// calibration's noise floor are dropped. Output preserves timestamp order
// and is never longer than the input.
package filter

import (
	"github.com/fairwaylabs/swingsense/internal/domain/model"
)

// windowRadius gives the 3-sample centered window.
const windowRadius = 1

// Noise applies smoothing and magnitude gating to a sample window.
type Noise struct {
	baselineNoise float64
}

// NewNoise creates a filter gated at the given magnitude floor.
func NewNoise(baselineNoise float64) *Noise {
	return &Noise{baselineNoise: baselineNoise}
}

// Apply returns the smoothed, gated copy of samples. The input is not
// modified.
func (f *Noise) Apply(samples []model.MotionSample) []model.MotionSample {
	if len(samples) == 0 {
		return nil
	}

	out := make([]model.MotionSample, 0, len(samples))
	for i := range samples {
		lo := i - windowRadius
		if lo < 0 {
			lo = 0
		}
		hi := i + windowRadius
		if hi > len(samples)-1 {
			hi = len(samples) - 1
		}

		smoothed := model.MotionSample{TimestampMs: samples[i].TimestampMs}
		n := float64(hi - lo + 1)
		for j := lo; j <= hi; j++ {
			smoothed.Acceleration.X += samples[j].Acceleration.X
			smoothed.Acceleration.Y += samples[j].Acceleration.Y
			smoothed.Acceleration.Z += samples[j].Acceleration.Z
			smoothed.AngularVelocity.X += samples[j].AngularVelocity.X
			smoothed.AngularVelocity.Y += samples[j].AngularVelocity.Y
			smoothed.AngularVelocity.Z += samples[j].AngularVelocity.Z
		}
		smoothed.Acceleration.X /= n
		smoothed.Acceleration.Y /= n
		smoothed.Acceleration.Z /= n
		smoothed.AngularVelocity.X /= n
		smoothed.AngularVelocity.Y /= n
		smoothed.AngularVelocity.Z /= n

		if smoothed.Acceleration.Magnitude() < f.baselineNoise {
			continue
		}
		out = append(out, smoothed)
	}
	return out
}
