package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Luyzz22/contract-analyzer-backend/pkg/events"
	pkgkafka "github.com/Luyzz22/contract-analyzer-backend/pkg/kafka"
)

// Header names set on every published record.
const (
	HeaderEventType     = "event_type"
	HeaderAggregateType = "aggregate_type"
	HeaderTenantID      = "tenant_id"
)

// MessageWriter is the producer side used by Publisher. *pkgkafka.Producer satisfies it.
type MessageWriter interface {
	Publish(ctx context.Context, topic string, messages ...pkgkafka.Message) error
}

// Envelope is the wire format of a domain event on the contract topic.
type Envelope struct {
	EventID       uuid.UUID       `json:"event_id"`
	EventType     string          `json:"event_type"`
	AggregateID   uuid.UUID       `json:"aggregate_id"`
	AggregateType string          `json:"aggregate_type"`
	TenantID      uuid.UUID       `json:"tenant_id"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Payload       json.RawMessage `json:"payload"`
}

// Publisher implements port.EventPublisher using Kafka.
type Publisher struct {
	writer MessageWriter
	logger *slog.Logger
	topic  string
}

// NewPublisher creates a new Kafka event publisher.
func NewPublisher(writer MessageWriter, topic string, logger *slog.Logger) *Publisher {
	return &Publisher{
		writer: writer,
		topic:  topic,
		logger: logger,
	}
}

// Publish sends domain events to Kafka keyed by aggregate ID, so all events
// of one analysis land on the same partition.
func (p *Publisher) Publish(ctx context.Context, domainEvents ...events.DomainEvent) error {
	messages := make([]pkgkafka.Message, 0, len(domainEvents))
	for _, evt := range domainEvents {
		eventType := evt.EventType()

		value, err := json.Marshal(Envelope{
			EventID:       evt.EventID(),
			EventType:     eventType,
			AggregateID:   evt.AggregateID(),
			AggregateType: evt.AggregateType(),
			TenantID:      evt.TenantID(),
			OccurredAt:    evt.OccurredAt(),
			Payload:       evt.Payload(),
		})
		if err != nil {
			return fmt.Errorf("failed to marshal event %s: %w", eventType, err)
		}

		p.logger.DebugContext(ctx, "publishing event",
			slog.String("event_type", eventType),
			slog.String("tenant_id", evt.TenantID().String()),
			slog.String("topic", p.topic),
			slog.Int("payload_size", len(value)),
		)

		messages = append(messages, pkgkafka.Message{
			Key:   []byte(evt.AggregateID().String()),
			Value: value,
			Headers: map[string]string{
				HeaderEventType:     eventType,
				HeaderAggregateType: evt.AggregateType(),
				HeaderTenantID:      evt.TenantID().String(),
			},
		})
	}

	if len(messages) == 0 {
		return nil
	}

	if err := p.writer.Publish(ctx, p.topic, messages...); err != nil {
		return fmt.Errorf("failed to publish events to topic %s: %w", p.topic, err)
	}

	return nil
}
