// Package simulate generates synthetic motion-sample streams for exercising
// the detection pipeline without a physical device.
//
// The waveforms follow the numeric profiles the detector is tuned for: a
// clean swing ramps the motion magnitude from ~1 up through ~14 and back
// down with a matching gyro spike, noise stays flat around 1, and a short
// spike bursts for well under the candidate duration floor.
package simulate

import (
	"math/rand"
	"time"

	"github.com/fairwaylabs/swingsense/internal/domain/model"
)

// Default generator configuration constants.
const (
	defaultSampleRateHz = 50
	defaultSeed         = 42

	quietMagnitude = 1.0

	backswingStartMag = 8.5
	backswingEndMag   = 11.0
	backswingSamples  = 40 // 0.8s at 50 Hz

	transitionMag     = 9.0
	transitionSamples = 3

	downswingPeakMag = 14.0
	downswingSamples = 12 // 0.24s at 50 Hz

	impactDecaySamples = 3

	followStartMag    = 10.0
	followEndMag      = 3.0
	followSamples     = 20 // 0.4s at 50 Hz
	followGyroStart   = 300.0
	followGyroEnd     = 50.0

	backswingGyroY = 90.0
	downswingGyroY = 400.0
	impactGyroPeak = 800.0

	spikeMag     = 14.0
	spikeSamples = 10 // 200ms at 50 Hz
)

// Generator emits deterministic synthetic sample streams.
type Generator struct {
	sampleRate int
	startMs    int64
	jitter     float64
	rng        *rand.Rand
}

// NewGenerator creates a generator with configuration options.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		sampleRate: defaultSampleRateHz,
		startMs:    time.Now().UnixMilli(),
		rng:        rand.New(rand.NewSource(defaultSeed)), //nolint:gosec // deterministic seed for reproducible streams
	}

	for _, opt := range opts {
		opt(g)
	}

	return g
}

// periodMs returns the sample period for the configured rate.
func (g *Generator) periodMs() int64 {
	return int64(1000 / g.sampleRate)
}

// next builds one sample and advances the clock.
func (g *Generator) next(accelZ, gyroY float64) model.MotionSample {
	if g.jitter > 0 {
		accelZ += (g.rng.Float64()*2 - 1) * g.jitter
		gyroY += (g.rng.Float64()*2 - 1) * g.jitter * 10
	}
	s := model.MotionSample{
		Acceleration:    model.Vec3{Z: accelZ},
		AngularVelocity: model.Vec3{Y: gyroY},
		TimestampMs:     g.startMs,
	}
	g.startMs += g.periodMs()
	return s
}

// Quiet emits a flat near-gravity stream with near-zero gyro for the given
// duration.
func (g *Generator) Quiet(d time.Duration) []model.MotionSample {
	n := int(d.Milliseconds() / g.periodMs())
	out := make([]model.MotionSample, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, g.next(quietMagnitude, 0))
	}
	return out
}

// CleanSwing emits a full swing profile: quiet address, ramping backswing,
// brief transition, accelerating downswing into an impact peak, decaying
// follow-through, then quiet again. Roughly 2.1s of motion at the default
// rate.
func (g *Generator) CleanSwing() []model.MotionSample {
	out := g.Quiet(300 * time.Millisecond)

	// Backswing: slow ramp with moderate wrist rotation.
	for i := 0; i < backswingSamples; i++ {
		frac := float64(i) / float64(backswingSamples-1)
		mag := backswingStartMag + frac*(backswingEndMag-backswingStartMag)
		out = append(out, g.next(mag, backswingGyroY))
	}

	// Transition pause at the top.
	for i := 0; i < transitionSamples; i++ {
		out = append(out, g.next(transitionMag, backswingGyroY/2))
	}

	// Downswing: sharp ramp into the impact peak.
	for i := 0; i < downswingSamples; i++ {
		frac := float64(i) / float64(downswingSamples-1)
		mag := backswingEndMag + frac*(downswingPeakMag-backswingEndMag)
		gyro := downswingGyroY + frac*(impactGyroPeak-downswingGyroY)
		out = append(out, g.next(mag, gyro))
	}

	// Impact decay.
	for i := 0; i < impactDecaySamples; i++ {
		frac := float64(i+1) / float64(impactDecaySamples)
		out = append(out, g.next(downswingPeakMag-frac*(downswingPeakMag-followStartMag), impactGyroPeak/2))
	}

	// Follow-through: long decay staying above the hysteresis exit level.
	for i := 0; i < followSamples; i++ {
		frac := float64(i) / float64(followSamples-1)
		mag := followStartMag + frac*(followEndMag-followStartMag)
		gyro := followGyroStart + frac*(followGyroEnd-followGyroStart)
		out = append(out, g.next(mag, gyro))
	}

	out = append(out, g.Quiet(400*time.Millisecond)...)
	return out
}

// ShortSpike emits a 200ms magnitude burst, below the candidate duration
// floor, surrounded by quiet.
func (g *Generator) ShortSpike() []model.MotionSample {
	out := g.Quiet(300 * time.Millisecond)
	for i := 0; i < spikeSamples; i++ {
		out = append(out, g.next(spikeMag, impactGyroPeak))
	}
	out = append(out, g.Quiet(300*time.Millisecond)...)
	return out
}

// Noise emits pure sensor noise for the given duration. Alias of Quiet with
// the scenario's name.
func (g *Generator) Noise(d time.Duration) []model.MotionSample {
	return g.Quiet(d)
}
