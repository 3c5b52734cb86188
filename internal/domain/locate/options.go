package locate

import "time"

// Option applies a configuration option to the Locator.
type Option func(*Locator)

// WithMinDuration sets the shortest interval accepted as a candidate.
func WithMinDuration(d time.Duration) Option {
	return func(l *Locator) {
		if d > 0 {
			l.minDuration = d
		}
	}
}

// WithMaxDuration sets the longest interval accepted as a candidate.
func WithMaxDuration(d time.Duration) Option {
	return func(l *Locator) {
		if d > 0 {
			l.maxDuration = d
		}
	}
}
