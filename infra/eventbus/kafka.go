package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/segmentio/kafka-go"

	"github.com/ozanselte/bankcore/pkg/domain/common"
	"github.com/ozanselte/bankcore/pkg/eventbus"
)

type envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// KafkaBus publishes domain events to Kafka, one topic per event type
// under a common prefix. Local handlers registered on this bus are also
// dispatched synchronously on Emit, so a single-process deployment
// behaves like the memory bus while still feeding downstream consumers.
type KafkaBus struct {
	writer *kafka.Writer
	prefix string

	handlers    map[string][]eventbus.HandlerFunc
	handlersMtx sync.RWMutex

	logger *slog.Logger
}

// NewWithKafka creates a Kafka-backed event bus.
// brokers is a comma-separated list, e.g. "localhost:9092,localhost:9093".
func NewWithKafka(brokers, topicPrefix string, logger *slog.Logger) (*KafkaBus, error) {
	parsed := parseBrokers(brokers)
	if len(parsed) == 0 {
		return nil, fmt.Errorf("kafka event bus: brokers are required")
	}
	if strings.TrimSpace(topicPrefix) == "" {
		topicPrefix = "bankcore.events"
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(parsed...),
		AllowAutoTopicCreation: true,
		RequiredAcks:           kafka.RequireOne,
		Balancer:               &kafka.Hash{},
	}

	return &KafkaBus{
		writer:   writer,
		prefix:   topicPrefix,
		handlers: make(map[string][]eventbus.HandlerFunc),
		logger:   logger.With("bus", "kafka"),
	}, nil
}

// Register subscribes a local handler to a specific event type.
func (b *KafkaBus) Register(eventType string, handler eventbus.HandlerFunc) {
	b.handlersMtx.Lock()
	defer b.handlersMtx.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// Emit writes the event to its topic and dispatches local handlers.
func (b *KafkaBus) Emit(ctx context.Context, event common.Event) error {
	eventType := event.Type()

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("kafka event bus: marshal %s: %w", eventType, err)
	}
	value, err := json.Marshal(envelope{Type: eventType, Payload: payload})
	if err != nil {
		return fmt.Errorf("kafka event bus: envelope %s: %w", eventType, err)
	}

	if err := b.writer.WriteMessages(ctx, kafka.Message{
		Topic: b.prefix + "." + eventType,
		Key:   []byte(eventType),
		Value: value,
	}); err != nil {
		return fmt.Errorf("kafka event bus: write %s: %w", eventType, err)
	}

	b.handlersMtx.RLock()
	handlers := b.handlers[eventType]
	b.handlersMtx.RUnlock()
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			b.logger.Error("event handler failed", "event_type", eventType, "error", err)
		}
	}
	return nil
}

// Close flushes and closes the underlying writer.
func (b *KafkaBus) Close() error {
	return b.writer.Close()
}

func parseBrokers(brokers string) []string {
	var out []string
	for _, b := range strings.Split(brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			out = append(out, b)
		}
	}
	return out
}

var _ eventbus.Bus = (*KafkaBus)(nil)
