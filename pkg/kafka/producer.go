package kafka

import (
	"context"
	"fmt"
	"sync"
	"time"

	kafkago "github.com/segmentio/kafka-go"
)

// Message is a single Kafka record.
type Message struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}

// Producer publishes messages, keeping one writer per topic.
type Producer struct {
	mu        sync.Mutex
	writers   map[string]*kafkago.Writer
	transport *kafkago.Transport
	brokers   []string
}

// NewProducer creates a Producer. It fails only on an unknown SASL mechanism.
func NewProducer(cfg Config) (*Producer, error) {
	mechanism, err := cfg.saslMechanism()
	if err != nil {
		return nil, err
	}
	return &Producer{
		writers: make(map[string]*kafkago.Writer),
		transport: &kafkago.Transport{
			TLS:  cfg.tlsConfig(),
			SASL: mechanism,
		},
		brokers: cfg.Brokers,
	}, nil
}

// Publish sends messages to topic.
func (p *Producer) Publish(ctx context.Context, topic string, messages ...Message) error {
	if len(messages) == 0 {
		return nil
	}
	w := p.writer(topic)

	records := make([]kafkago.Message, 0, len(messages))
	for _, msg := range messages {
		records = append(records, toRecord(msg))
	}

	if err := w.WriteMessages(ctx, records...); err != nil {
		return fmt.Errorf("kafka publish to %s: %w", topic, err)
	}
	return nil
}

// Close flushes and closes all writers.
func (p *Producer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var firstErr error
	for topic, w := range p.writers {
		if err := w.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("closing writer for topic %s: %w", topic, err)
		}
	}
	p.writers = make(map[string]*kafkago.Writer)
	return firstErr
}

func (p *Producer) writer(topic string) *kafkago.Writer {
	p.mu.Lock()
	defer p.mu.Unlock()

	if w, ok := p.writers[topic]; ok {
		return w
	}

	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(p.brokers...),
		Topic:                  topic,
		Balancer:               &kafkago.Hash{},
		BatchTimeout:           10 * time.Millisecond,
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
		Transport:              p.transport,
	}
	p.writers[topic] = w
	return w
}

func toRecord(msg Message) kafkago.Message {
	record := kafkago.Message{Key: msg.Key, Value: msg.Value}
	for k, v := range msg.Headers {
		record.Headers = append(record.Headers, kafkago.Header{Key: k, Value: []byte(v)})
	}
	return record
}

func fromRecord(record kafkago.Message) Message {
	msg := Message{
		Key:     record.Key,
		Value:   record.Value,
		Headers: make(map[string]string, len(record.Headers)),
	}
	for _, h := range record.Headers {
		msg.Headers[h.Key] = string(h.Value)
	}
	return msg
}
