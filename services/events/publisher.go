package events

import (
	"context"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Publisher delivers domain events to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, event *Event) error
	Close() error
}

// messageWriter is the subset of *kafka.Writer the publisher uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes events to a single topic.
type KafkaPublisher struct {
	writer messageWriter
	topic  string
	logger *zap.Logger
}

// NewKafkaPublisher creates a synchronous publisher for topic on brokers.
func NewKafkaPublisher(brokers []string, topic string, logger *zap.Logger) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafka.RequireAll,
	}
	return &KafkaPublisher{writer: w, topic: topic, logger: logger}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event *Event) error {
	data, err := event.Marshal()
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.AggregateID),
		Value: data,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("failed to publish event",
			zap.String("topic", p.topic),
			zap.String("event_type", event.EventType),
			zap.Error(err),
		)
		return fmt.Errorf("publish event to %s: %w", p.topic, err)
	}

	p.logger.Debug("event published",
		zap.String("topic", p.topic),
		zap.String("event_type", event.EventType),
		zap.String("aggregate_id", event.AggregateID),
	)
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher drops every event. Used when no brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, *Event) error { return nil }
func (NoopPublisher) Close() error { return nil }

// Emit builds and publishes an event, logging instead of returning errors.
// Events are best effort and never fail the operation that produced them.
func Emit(ctx context.Context, pub Publisher, logger *zap.Logger, eventType, aggregateID string, data any) {
	if pub == nil {
		return
	}
	event, err := NewEvent(eventType, aggregateID, data)
	if err != nil {
		logger.Warn("failed to build event", zap.String("event_type", eventType), zap.Error(err))
		return
	}
	if err := pub.Publish(ctx, event); err != nil {
		logger.Warn("event not published", zap.String("event_type", eventType), zap.Error(err))
	}
}
