package kafka

import (
	"testing"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProducer(t *testing.T) {
	p, err := NewProducer(Config{Brokers: []string{"localhost:9092", "localhost:9093"}})
	require.NoError(t, err)

	assert.Equal(t, []string{"localhost:9092", "localhost:9093"}, p.brokers)
	assert.Empty(t, p.writers)
	assert.Nil(t, p.transport.TLS)
	assert.Nil(t, p.transport.SASL)
}

func TestNewProducer_SecurityOptions(t *testing.T) {
	p, err := NewProducer(Config{
		Brokers:       []string{"kafka:9093"},
		TLS:           true,
		SASLEnabled:   true,
		SASLMechanism: "SCRAM-SHA-512",
		SASLUsername:  "svc",
		SASLPassword:  "secret",
	})
	require.NoError(t, err)

	require.NotNil(t, p.transport.TLS)
	require.NotNil(t, p.transport.SASL)
	assert.Equal(t, "SCRAM-SHA-512", p.transport.SASL.Name())
}

func TestSASLMechanism(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		wantName  string
		wantError bool
	}{
		{name: "disabled", cfg: Config{SASLMechanism: "PLAIN"}},
		{name: "default is plain", cfg: Config{SASLEnabled: true}, wantName: "PLAIN"},
		{name: "scram 256", cfg: Config{SASLEnabled: true, SASLMechanism: "SCRAM-SHA-256"}, wantName: "SCRAM-SHA-256"},
		{name: "unknown", cfg: Config{SASLEnabled: true, SASLMechanism: "GSSAPI"}, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := tt.cfg.saslMechanism()
			if tt.wantError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.wantName == "" {
				assert.Nil(t, m)
				return
			}
			assert.Equal(t, tt.wantName, m.Name())
		})
	}
}

func TestNewConsumer_RejectsUnknownMechanism(t *testing.T) {
	_, err := NewConsumer(Config{SASLEnabled: true, SASLMechanism: "OAUTHBEARER"}, "topic", nil, nil)
	assert.Error(t, err)
}

func TestProducer_WriterPerTopic(t *testing.T) {
	p, err := NewProducer(Config{Brokers: []string{"localhost:9092"}})
	require.NoError(t, err)

	a1 := p.writer("topic-a")
	a2 := p.writer("topic-a")
	b := p.writer("topic-b")

	assert.Same(t, a1, a2)
	assert.NotSame(t, a1, b)
	assert.Equal(t, "topic-b", b.Topic)
	assert.Same(t, p.transport, a1.Transport)

	require.NoError(t, p.Close())
	assert.Empty(t, p.writers)
}

func TestRecordConversion(t *testing.T) {
	msg := Message{
		Key:     []byte("analysis-1"),
		Value:   []byte(`{"risk_score":91}`),
		Headers: map[string]string{"event_type": "contract.analysis.completed"},
	}

	record := toRecord(msg)
	assert.Equal(t, msg.Key, record.Key)
	assert.Equal(t, []kafkago.Header{{Key: "event_type", Value: []byte("contract.analysis.completed")}}, record.Headers)

	back := fromRecord(record)
	assert.Equal(t, msg, back)
}
