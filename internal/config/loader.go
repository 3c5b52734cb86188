package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New())
//  2. file (YAML) if SWINGSENSE_CONFIG is set
//  3. env (prefix SWINGSENSE_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	// Load from file if provided
	if path := os.Getenv("SWINGSENSE_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
		}
	}

	// Environment variables: SWINGSENSE_ADDR, SWINGSENSE_QUEUE_SIZE, ...
	// Map env keys like SWINGSENSE_QUEUE_SIZE -> queue_size (flat keys).
	// Preserve underscores to match koanf tags on the struct.
	envProvider := env.Provider("SWINGSENSE_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "swingsense_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	// Unmarshal into a copy
	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// validate enforces invariants that would otherwise surface as runtime
// misbehavior deep inside the pipeline.
func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.BufferCapacity < c.MinAnalysisSamples:
		return fmt.Errorf("%w: buffer_capacity must be at least min_analysis_samples", ErrInvalidConfig)
	case c.TruncateKeep >= c.BufferCapacity:
		return fmt.Errorf("%w: truncate_keep must be below buffer_capacity", ErrInvalidConfig)
	case c.EmitConfidence < 0 || c.EmitConfidence > 100:
		return fmt.Errorf("%w: emit_confidence must be within [0,100]", ErrInvalidConfig)
	case c.BaselineNoise <= 0:
		return fmt.Errorf("%w: baseline_noise must be positive", ErrInvalidConfig)
	case c.SwingThreshold <= c.BaselineNoise:
		return fmt.Errorf("%w: swing_threshold must exceed baseline_noise", ErrInvalidConfig)
	case c.ExpectedTempo <= 0:
		return fmt.Errorf("%w: expected_tempo must be positive", ErrInvalidConfig)
	case c.MQTTEnabled && c.MQTTBroker == "":
		return fmt.Errorf("%w: mqtt_broker required when mqtt_enabled", ErrInvalidConfig)
	case c.MQTTQoS < 0 || c.MQTTQoS > 2:
		return fmt.Errorf("%w: mqtt_qos must be 0, 1, or 2", ErrInvalidConfig)
	}
	return nil
}
