// Package events publishes domain events to Kafka, or to the log when no
// broker is configured.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/comitanigiacomo/ecotrack-api/internal/core/domain"
)

var (
	_ domain.EventPublisher = (*KafkaPublisher)(nil)
	_ domain.EventPublisher = (*LogPublisher)(nil)
)

// MessageWriter is the part of a Kafka producer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, topic string, msgs ...kafka.Message) error
	Close() error
}

// KafkaProducer lazily manages one writer per topic.
type KafkaProducer struct {
	brokers []string
	mu      sync.Mutex
	writers map[string]*kafka.Writer
}

func NewKafkaProducer(brokers []string) *KafkaProducer {
	return &KafkaProducer{
		brokers: brokers,
		writers: make(map[string]*kafka.Writer),
	}
}

func (p *KafkaProducer) WriteMessages(ctx context.Context, topic string, msgs ...kafka.Message) error {
	return p.writerForTopic(topic).WriteMessages(ctx, msgs...)
}

func (p *KafkaProducer) writerForTopic(topic string) *kafka.Writer {
	p.mu.Lock()
	defer p.mu.Unlock()

	if writer, ok := p.writers[topic]; ok {
		return writer
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(p.brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		BatchTimeout:           50 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}
	p.writers[topic] = writer
	return writer
}

func (p *KafkaProducer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var firstErr error
	for topic, writer := range p.writers {
		if err := writer.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(p.writers, topic)
	}
	return firstErr
}

// KafkaPublisher routes activity.* events to one topic and goal.* events
// to another, keyed by user so a user's events stay ordered.
type KafkaPublisher struct {
	writer      MessageWriter
	topicPrefix string
	timeout     time.Duration
}

func NewKafkaPublisher(writer MessageWriter, topicPrefix string, timeout time.Duration) *KafkaPublisher {
	return &KafkaPublisher{writer: writer, topicPrefix: topicPrefix, timeout: timeout}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event domain.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("events: marshal %s: %w", event.Type, err)
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	return p.writer.WriteMessages(ctx, p.Topic(event.Type), kafka.Message{
		Key:   []byte(event.UserID),
		Value: payload,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(event.Type)},
		},
	})
}

// Topic maps "activity.logged" to "<prefix>.activity".
func (p *KafkaPublisher) Topic(eventType string) string {
	entity, _, _ := strings.Cut(eventType, ".")
	if p.topicPrefix == "" {
		return entity
	}
	return p.topicPrefix + "." + entity
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// LogPublisher writes events to the structured log.
type LogPublisher struct {
	logger zerolog.Logger
}

func NewLogPublisher(logger zerolog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger.With().Str("component", "events").Logger()}
}

func (p *LogPublisher) Publish(_ context.Context, event domain.Event) error {
	p.logger.Debug().
		Str("type", event.Type).
		Str("user_id", event.UserID).
		Str("entity_id", event.EntityID).
		Str("status", event.Status).
		Float64("co2e", event.CO2e).
		Time("occurred_at", event.OccurredAt).
		Msg("domain event")
	return nil
}
