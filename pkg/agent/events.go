package agent

import "github.com/google/uuid"

// EventType discriminates the records on the turn stream.
type EventType string

const (
	EventProgress EventType = "progress"
	EventMessage  EventType = "message"
	EventError    EventType = "error"
)

// Event is one record pushed to the caller during a turn. A turn emits zero
// or more progress events followed by exactly one terminal message or error.
type Event struct {
	Type           EventType              `json:"type"`
	Status         string                 `json:"status,omitempty"`          // progress
	Text           string                 `json:"text,omitempty"`            // message
	ConversationID *uuid.UUID             `json:"conversation_id,omitempty"` // message
	Metadata       map[string]interface{} `json:"metadata,omitempty"`        // message
	Error          string                 `json:"error,omitempty"`           // error
}

// Sink receives turn events in order. Implementations must not reorder.
type Sink interface {
	Send(event Event) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(event Event) error

func (f SinkFunc) Send(event Event) error {
	return f(event)
}
