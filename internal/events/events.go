package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"

	"multasapi/internal/config"
)

// Type names a domain event. It is sent as the "event-type" header.
type Type string

const (
	ProcessedFileDeleted Type = "processed_file.deleted"
	ObjectUploaded       Type = "storage.object.uploaded"
	ObjectDeleted        Type = "storage.object.deleted"
	FolderCreated        Type = "storage.folder.created"
)

// Event is the JSON message value. Key is the bucket key the event is about and
// doubles as the Kafka partition key, so events for one file stay ordered.
type Event struct {
	ID         string    `json:"id"`
	Type       Type      `json:"type"`
	Key        string    `json:"key"`
	RequestID  string    `json:"requestId,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
	Data       any       `json:"data,omitempty"`
}

// New stamps an event with a fresh ID and the current time.
func New(t Type, key, requestID string, data any) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       t,
		Key:        key,
		RequestID:  requestID,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	}
}

// Publisher sends domain events to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// KafkaPublisher writes events to a single topic.
type KafkaPublisher struct {
	writer  messageWriter
	timeout time.Duration
}

// NewKafkaPublisher builds a publisher from the KAFKA_* settings.
func NewKafkaPublisher(cfg config.KafkaConfig) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafkago.Writer{
			Addr:         kafkago.TCP(cfg.Brokers...),
			Topic:        cfg.Topic,
			Balancer:     &kafkago.Hash{},
			BatchSize:    cfg.BatchSize,
			BatchTimeout: cfg.BatchTimeout,
			WriteTimeout: cfg.PublishTimeout,
			RequiredAcks: kafkago.RequireAll,
			Compression:  CompressionFromString(cfg.CompressionCodec),
			MaxAttempts:  cfg.Retries,
		},
		timeout: cfg.PublishTimeout,
	}
}

// Publish writes one event and waits for the brokers to acknowledge it.
// The write, retries included, is abandoned once the publish timeout elapses.
func (p *KafkaPublisher) Publish(ctx context.Context, e Event) error {
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	value, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	msg := kafkago.Message{
		Key:   []byte(e.Key),
		Value: value,
		Time:  e.OccurredAt,
		Headers: []kafkago.Header{
			{Key: "event-type", Value: []byte(e.Type)},
			{Key: "event-id", Value: []byte(e.ID)},
		},
	}
	if e.RequestID != "" {
		msg.Headers = append(msg.Headers, kafkago.Header{Key: "request-id", Value: []byte(e.RequestID)})
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("publish %s: %w", e.Type, err)
	}
	return nil
}

// Close flushes and closes the underlying writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

type noopPublisher struct{}

// Noop returns a Publisher that drops every event. Used when no brokers are configured.
func Noop() Publisher { return noopPublisher{} }

func (noopPublisher) Publish(context.Context, Event) error { return nil }
func (noopPublisher) Close() error                         { return nil }

// NewPublisher returns a Kafka publisher when brokers are configured and Noop otherwise.
func NewPublisher(cfg config.KafkaConfig) Publisher {
	if !cfg.Enabled() {
		return Noop()
	}
	return NewKafkaPublisher(cfg)
}

// CompressionFromString maps textual codec to kafka-go value.
func CompressionFromString(name string) kafkago.Compression {
	switch strings.ToLower(name) {
	case "gzip":
		return kafkago.Gzip
	case "snappy":
		return kafkago.Snappy
	case "lz4":
		return kafkago.Lz4
	case "zstd":
		return kafkago.Zstd
	default:
		return kafkago.Snappy
	}
}
