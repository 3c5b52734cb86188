// Package mqtt ingests motion samples published by on-device firmware.
//
// Devices publish one JSON-encoded MotionSample per message to
// swingsense/<session>/samples. The ingest client subscribes with a wildcard
// session segment, decodes each payload, and hands it to the sample queue.
// Backpressure is the queue's concern; a full queue drops the sample and the
// device never blocks.
package mqtt

import (
	"context"
	"encoding/json"
	"fmt"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/fairwaylabs/swingsense/internal/domain/model"
	"github.com/fairwaylabs/swingsense/pkg/logger"
	"github.com/fairwaylabs/swingsense/pkg/metrics"
)

// Default ingest configuration constants.
const (
	defaultTopic        = "swingsense/+/samples"
	defaultQoS          = 0
	defaultClientPrefix = "swingsense-ingest"

	disconnectQuiesceMs = 250
)

// Enqueuer is where decoded samples go.
type Enqueuer interface {
	Enqueue(ctx context.Context, s model.MotionSample) bool
}

// Ingest subscribes to the device sample topic and feeds the queue.
type Ingest struct {
	broker   string
	topic    string
	clientID string
	qos      byte

	queue  Enqueuer
	client paho.Client
	logger logger.Logger
}

// NewIngest creates an MQTT ingest client with configuration options.
func NewIngest(broker string, queue Enqueuer, opts ...Option) *Ingest {
	i := &Ingest{
		broker:   broker,
		topic:    defaultTopic,
		clientID: fmt.Sprintf("%s-%s", defaultClientPrefix, uuid.New().String()[:8]),
		qos:      defaultQoS,
		queue:    queue,
	}

	for _, opt := range opts {
		opt(i)
	}

	if i.logger == nil {
		i.logger = logger.Get().Named("mqtt")
	}

	return i
}

// Start connects to the broker and subscribes to the sample topic. It returns
// once the subscription is established.
func (i *Ingest) Start(ctx context.Context) error {
	clientOpts := paho.NewClientOptions().
		AddBroker(i.broker).
		SetClientID(i.clientID).
		SetAutoReconnect(true).
		SetConnectionLostHandler(func(_ paho.Client, err error) {
			metrics.RecordMQTTError()
			i.logger.Warn(context.Background(), "broker connection lost", logger.Error(err))
		})

	i.client = paho.NewClient(clientOpts)
	if token := i.client.Connect(); token.Wait() && token.Error() != nil {
		return fmt.Errorf("mqtt connect: %w", token.Error())
	}

	token := i.client.Subscribe(i.topic, i.qos, func(_ paho.Client, msg paho.Message) {
		i.handle(ctx, msg)
	})
	if token.Wait() && token.Error() != nil {
		return fmt.Errorf("mqtt subscribe %s: %w", i.topic, token.Error())
	}

	i.logger.Info(ctx, "subscribed to sample topic",
		logger.String("broker", i.broker),
		logger.String("topic", i.topic),
	)
	return nil
}

// handle decodes one device message and enqueues the sample.
func (i *Ingest) handle(ctx context.Context, msg paho.Message) {
	var s model.MotionSample
	if err := json.Unmarshal(msg.Payload(), &s); err != nil {
		metrics.RecordMQTTError()
		i.logger.Warn(ctx, "sample payload unmarshal failed",
			logger.String("topic", msg.Topic()),
			logger.Error(err),
		)
		return
	}

	if s.TimestampMs <= 0 {
		metrics.RecordMQTTError()
		i.logger.Warn(ctx, "sample missing timestamp", logger.String("topic", msg.Topic()))
		return
	}

	metrics.RecordMQTTMessage()
	if !i.queue.Enqueue(ctx, s) {
		i.logger.Warn(ctx, "queue rejected sample", logger.Int64("timestampMs", s.TimestampMs))
	}
}

// Stop unsubscribes and disconnects from the broker.
func (i *Ingest) Stop(ctx context.Context) {
	if i.client == nil {
		return
	}
	if token := i.client.Unsubscribe(i.topic); token.Wait() && token.Error() != nil {
		i.logger.Warn(ctx, "unsubscribe failed", logger.Error(token.Error()))
	}
	i.client.Disconnect(disconnectQuiesceMs)
	i.logger.Info(ctx, "disconnected from broker")
}
