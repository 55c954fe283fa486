package events_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Luyzz22/contract-analyzer-backend/pkg/events"
)

func analysisMeta(eventType string) events.Metadata {
	return events.Metadata{
		EventType:     eventType,
		AggregateID:   uuid.New(),
		AggregateType: "ContractAnalysis",
		TenantID:      uuid.New(),
	}
}

func TestNewBaseEvent(t *testing.T) {
	meta := analysisMeta("contract.analysis.completed")

	before := time.Now().UTC()
	e := events.NewBaseEvent(meta, []byte(`{"risk_score":42}`))
	after := time.Now().UTC()

	assert.NotEqual(t, uuid.Nil, e.EventID())
	assert.Equal(t, "contract.analysis.completed", e.EventType())
	assert.Equal(t, meta.AggregateID, e.AggregateID())
	assert.Equal(t, "ContractAnalysis", e.AggregateType())
	assert.Equal(t, meta.TenantID, e.TenantID())
	assert.Equal(t, meta, e.Metadata())
	assert.JSONEq(t, `{"risk_score":42}`, string(e.Payload()))
	assert.False(t, e.OccurredAt().Before(before))
	assert.False(t, e.OccurredAt().After(after))
}

func TestNewBaseEvent_UniqueIDs(t *testing.T) {
	meta := analysisMeta("contract.analysis.failed")
	a := events.NewBaseEvent(meta, nil)
	b := events.NewBaseEvent(meta, nil)
	assert.NotEqual(t, a.EventID(), b.EventID())
	assert.Equal(t, a.TenantID(), b.TenantID())
}

func TestBuffer(t *testing.T) {
	var buf events.Buffer
	assert.Zero(t, buf.Len())
	assert.Empty(t, buf.Drain())

	buf.Record(events.NewBaseEvent(analysisMeta("first"), nil))
	buf.Record(events.NewBaseEvent(analysisMeta("second"), nil))
	require.Equal(t, 2, buf.Len())

	drained := buf.Drain()
	require.Len(t, drained, 2)
	assert.Equal(t, "first", drained[0].EventType())
	assert.Equal(t, "second", drained[1].EventType())
	assert.Zero(t, buf.Len())
	assert.Empty(t, buf.Drain())
}
