package simulate

import "math/rand"

// Option applies a configuration option to the Generator.
type Option func(*Generator)

// WithSampleRate sets the sample rate in Hz.
func WithSampleRate(hz int) Option {
	return func(g *Generator) {
		if hz > 0 {
			g.sampleRate = hz
		}
	}
}

// WithStartTime sets the epoch-millisecond timestamp of the first sample.
func WithStartTime(startMs int64) Option {
	return func(g *Generator) {
		g.startMs = startMs
	}
}

// WithJitter adds bounded uniform noise to generated magnitudes. Zero (the
// default) keeps streams fully deterministic.
func WithJitter(amplitude float64) Option {
	return func(g *Generator) {
		if amplitude > 0 {
			g.jitter = amplitude
		}
	}
}

// WithSeed reseeds the jitter source for reproducible randomized streams.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.rng = rand.New(rand.NewSource(seed)) //nolint:gosec // reproducibility over cryptographic strength
	}
}
