package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"tourshield/internal/platform/kafka/producer"
)

// DefaultTopic is the kafka topic audit events are published to.
const DefaultTopic = "tourshield.audit"

// MessageProducer is the subset of the kafka producer the publisher needs.
type MessageProducer interface {
	ProduceAsync(msg *producer.Message) error
}

// Publisher serializes audit events and hands them to kafka. Delivery is
// async; audit emission must never block or fail a domain operation.
type Publisher struct {
	producer MessageProducer
	topic    string
	logger   *slog.Logger
}

// PublisherOption configures the Publisher.
type PublisherOption func(*Publisher)

// WithTopic overrides the kafka topic.
func WithTopic(topic string) PublisherOption {
	return func(p *Publisher) {
		if topic != "" {
			p.topic = topic
		}
	}
}

// WithPublisherLogger sets a logger for delivery error reporting.
func WithPublisherLogger(logger *slog.Logger) PublisherOption {
	return func(p *Publisher) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewPublisher builds a kafka-backed audit publisher.
func NewPublisher(mp MessageProducer, opts ...PublisherOption) *Publisher {
	p := &Publisher{
		producer: mp,
		topic:    DefaultTopic,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

type eventJSON struct {
	Timestamp string `json:"timestamp"`
	UserID    string `json:"user_id,omitempty"`
	Subject   string `json:"subject,omitempty"`
	Action    string `json:"action"`
	Reason    string `json:"reason,omitempty"`
}

// Emit publishes an audit event. The event is keyed by user so per-user
// ordering is preserved within a partition.
func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	value, err := json.Marshal(eventJSON{
		Timestamp: event.Timestamp.Format(time.RFC3339Nano),
		UserID:    event.UserID,
		Subject:   event.Subject,
		Action:    event.Action,
		Reason:    event.Reason,
	})
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}

	err = p.producer.ProduceAsync(&producer.Message{
		Topic: p.topic,
		Key:   []byte(event.UserID),
		Value: value,
	})
	if err != nil {
		p.logger.ErrorContext(ctx, "audit event dropped",
			"action", event.Action,
			"error", err,
		)
		return fmt.Errorf("publish audit event: %w", err)
	}
	return nil
}
