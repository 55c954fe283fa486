package events

// Buffer holds the events an aggregate raised since they were last drained.
// The zero value is ready to use.
type Buffer struct {
	pending []DomainEvent
}

// Record appends events in the order they happened.
func (b *Buffer) Record(evts ...DomainEvent) {
	b.pending = append(b.pending, evts...)
}

// Len returns the number of undrained events.
func (b *Buffer) Len() int {
	return len(b.pending)
}

// Drain returns the recorded events and empties the buffer.
func (b *Buffer) Drain() []DomainEvent {
	drained := b.pending
	b.pending = nil
	return drained
}
