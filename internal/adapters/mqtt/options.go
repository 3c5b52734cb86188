package mqtt

import (
	"github.com/fairwaylabs/swingsense/pkg/logger"
)

// Option applies a configuration option to the Ingest client.
type Option func(*Ingest)

// WithTopic overrides the subscription topic filter.
func WithTopic(topic string) Option {
	return func(i *Ingest) {
		if topic != "" {
			i.topic = topic
		}
	}
}

// WithClientID sets a fixed MQTT client identifier.
func WithClientID(id string) Option {
	return func(i *Ingest) {
		if id != "" {
			i.clientID = id
		}
	}
}

// WithQoS sets the subscription quality-of-service level.
func WithQoS(qos byte) Option {
	return func(i *Ingest) {
		if qos <= 2 {
			i.qos = qos
		}
	}
}

// WithLogger sets a custom logger for the ingest client.
func WithLogger(l logger.Logger) Option {
	return func(i *Ingest) {
		if l != nil {
			i.logger = l
		}
	}
}
