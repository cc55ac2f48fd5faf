// Package events publishes service request lifecycle changes.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/UnknownOlympus/pitstop/internal/models"
	"github.com/segmentio/kafka-go"
)

// Kind names what happened to a service request.
type Kind string

const (
	KindCreated       Kind = "created"
	KindStatusChanged Kind = "status_changed"
)

// RequestEvent is emitted whenever a request is created or changes status.
type RequestEvent struct {
	Kind        Kind                 `json:"kind"`
	RequestID   int64                `json:"request_id"`
	GarageID    int64                `json:"garage_id"`
	UserID      int64                `json:"user_id"`
	ServiceType string               `json:"service_type"`
	Status      models.RequestStatus `json:"status"`
	Previous    models.RequestStatus `json:"previous,omitempty"`
	OccurredAt  time.Time            `json:"occurred_at"`
}

// NewRequestEvent builds an event from the stored request.
func NewRequestEvent(kind Kind, req models.ServiceRequest, previous models.RequestStatus) RequestEvent {
	return RequestEvent{
		Kind:        kind,
		RequestID:   req.ID,
		GarageID:    req.GarageID,
		UserID:      req.UserID,
		ServiceType: req.ServiceType,
		Status:      req.Status,
		Previous:    previous,
		OccurredAt:  time.Now().UTC(),
	}
}

// Publisher delivers request events to interested consumers.
type Publisher interface {
	Publish(ctx context.Context, event RequestEvent) error
}

// MessageWriter is the part of *kafka.Writer used by KafkaPublisher.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes events to a Kafka topic keyed by garage, so all events of
// one garage land in the same partition and keep their order.
type KafkaPublisher struct {
	writer MessageWriter
	log    *slog.Logger
}

// NewKafkaWriter creates an asynchronous writer for the topic with hash partitioning on
// the key. WriteMessages returns once a message is queued; delivery failures surface
// only through the completion log.
func NewKafkaWriter(brokers []string, topic string, log *slog.Logger) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		BatchTimeout:           50 * time.Millisecond,
		Async:                  true,
		Completion:             completionLogger(log),
	}
}

func completionLogger(log *slog.Logger) func([]kafka.Message, error) {
	return func(messages []kafka.Message, err error) {
		if err != nil {
			log.Error("Failed to deliver request events", "count", len(messages), "error", err)
		}
	}
}

// NewKafkaPublisher wraps a writer.
func NewKafkaPublisher(writer MessageWriter, log *slog.Logger) *KafkaPublisher {
	return &KafkaPublisher{writer: writer, log: log}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event RequestEvent) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode request event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(strconv.FormatInt(event.GarageID, 10)),
		Value: value,
		Headers: []kafka.Header{
			{Key: "kind", Value: []byte(event.Kind)},
		},
	}

	if err = p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish request event: %w", err)
	}

	p.log.DebugContext(ctx, "Request event published", "kind", event.Kind, "request", event.RequestID)
	return nil
}

// Close flushes pending messages and releases the writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher drops every event. Used when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, RequestEvent) error { return nil }
