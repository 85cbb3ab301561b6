package events

import (
	"context"
	"time"
)

// Publisher pushes domain events onto the notification bus. Services hold
// this interface so event emission stays optional and fakeable.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Event is the contract for everything published on the events bus.
type Event interface {
	// EventType returns the notification type code (e.g. "RANK_CHANGED").
	EventType() string

	// Payload returns the template variables for the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is a ready-made Event for ad-hoc publishers.
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
