// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(...) initializer to build a Config with defaults.
// - Load layers defaults, optional YAML file, and environment variables.
// - External errors must be wrapped via this package's error helpers.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// QueueSize bounds the in-memory sample queue.
	QueueSize int `koanf:"queue_size"`

	// BufferCapacity sets the engine's sample ring capacity.
	BufferCapacity int `koanf:"buffer_capacity"`

	// MinAnalysisSamples is the buffer floor below which analysis does not
	// trigger.
	MinAnalysisSamples int `koanf:"min_analysis_samples"`

	// EmitConfidence gates which detections are published to subscribers.
	EmitConfidence float64 `koanf:"emit_confidence"`

	// TruncateKeep is how many samples survive the post-detection buffer
	// truncation.
	TruncateKeep int `koanf:"truncate_keep"`

	// MaxHistoryLimit caps GET /swings?limit.
	MaxHistoryLimit int `koanf:"max_history_limit"`

	// MaxSessionSwings bounds the session swing history.
	MaxSessionSwings int `koanf:"max_session_swings"`

	// DefaultUserID seeds the session calibration at startup.
	DefaultUserID string `koanf:"default_user_id"`

	// BaselineNoise seeds the calibration's noise floor (m/s^2).
	BaselineNoise float64 `koanf:"baseline_noise"`

	// SwingThreshold seeds the calibration's candidate entry threshold.
	SwingThreshold float64 `koanf:"swing_threshold"`

	// ExpectedTempo seeds the personalized tempo expectation.
	ExpectedTempo float64 `koanf:"expected_tempo"`

	// MQTTEnabled toggles the device ingest transport.
	MQTTEnabled bool `koanf:"mqtt_enabled"`

	// MQTTBroker is the broker URL, e.g. "tcp://localhost:1883".
	MQTTBroker string `koanf:"mqtt_broker"`

	// MQTTTopic is the subscription filter for device samples.
	MQTTTopic string `koanf:"mqtt_topic"`

	// MQTTQoS is the subscription quality-of-service level (0..2).
	MQTTQoS int `koanf:"mqtt_qos"`

	// WSSendBuffer sizes the per-client WebSocket outbound buffer.
	WSSendBuffer int `koanf:"ws_send_buffer"`
}

// New creates a Config with service defaults.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		Addr:               ":9080",
		QueueSize:          4096,
		BufferCapacity:     200,
		MinAnalysisSamples: 50,
		EmitConfidence:     70.0,
		TruncateKeep:       25,
		MaxHistoryLimit:    100,
		MaxSessionSwings:   500,
		DefaultUserID:      "default",
		BaselineNoise:      1.5,
		SwingThreshold:     8.0,
		ExpectedTempo:      3.0,
		MQTTEnabled:        false,
		MQTTBroker:         "tcp://localhost:1883",
		MQTTTopic:          "swingsense/+/samples",
		MQTTQoS:            1,
		WSSendBuffer:       16,
	}
}
