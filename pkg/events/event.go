package events

import "time"

// Event is the contract for audit events relayed to the NATS bus.
type Event interface {
	// EventType returns the unique code for this event (e.g. "FILTERS_CHANGED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NewFiltersChanged records a filter-state emission.
func NewFiltersChanged(signature string) Event {
	return BaseEvent{
		Type:       "FILTERS_CHANGED",
		Data:       map[string]interface{}{"signature": signature},
		OccurredAt: time.Now(),
	}
}

// NewNavigationApplied records a language-driven view switch.
func NewNavigationApplied(view string, signature string) Event {
	return BaseEvent{
		Type:       "NAVIGATION_APPLIED",
		Data:       map[string]interface{}{"view": view, "signature": signature},
		OccurredAt: time.Now(),
	}
}
