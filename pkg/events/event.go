package events

import (
	"time"

	"github.com/google/uuid"
)

// DomainEvent is a fact raised by a tenant-owned aggregate. Payload holds
// the event-specific body; identity and ownership travel beside it.
type DomainEvent interface {
	EventID() uuid.UUID
	EventType() string
	AggregateID() uuid.UUID
	AggregateType() string
	TenantID() uuid.UUID
	OccurredAt() time.Time
	Payload() []byte
}

// Metadata names the aggregate an event belongs to and the tenant owning it.
type Metadata struct {
	EventType     string
	AggregateID   uuid.UUID
	AggregateType string
	TenantID      uuid.UUID
}

// BaseEvent implements DomainEvent. Embed it in concrete events.
type BaseEvent struct {
	meta       Metadata
	id         uuid.UUID
	occurredAt time.Time
	payload    []byte
}

// NewBaseEvent stamps meta with a fresh event ID and the current UTC time.
func NewBaseEvent(meta Metadata, payload []byte) BaseEvent {
	return BaseEvent{
		meta:       meta,
		id:         uuid.New(),
		occurredAt: time.Now().UTC(),
		payload:    payload,
	}
}

func (e BaseEvent) EventID() uuid.UUID     { return e.id }
func (e BaseEvent) EventType() string      { return e.meta.EventType }
func (e BaseEvent) AggregateID() uuid.UUID { return e.meta.AggregateID }
func (e BaseEvent) AggregateType() string  { return e.meta.AggregateType }
func (e BaseEvent) TenantID() uuid.UUID    { return e.meta.TenantID }
func (e BaseEvent) OccurredAt() time.Time  { return e.occurredAt }
func (e BaseEvent) Payload() []byte        { return e.payload }

// Metadata returns the identity the event was created with.
func (e BaseEvent) Metadata() Metadata { return e.meta }
