package pump

import (
	"github.com/fairwaylabs/swingsense/pkg/logger"
)

// Option applies a configuration option to the Pump.
type Option func(*Pump)

// WithName sets the pump name for identification and logging.
func WithName(name string) Option {
	return func(p *Pump) {
		if name != "" {
			p.name = name
		}
	}
}

// WithLogger sets a custom logger for the pump.
func WithLogger(l logger.Logger) Option {
	return func(p *Pump) {
		if l != nil {
			p.logger = l
		}
	}
}
