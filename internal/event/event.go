package event

import "time"

// Event is a published notification.
type Event struct {
	Topic     Topic
	Payload   map[string]any
	Timestamp time.Time
}

// New creates an event stamped with the current time.
func New(topic Topic, payload map[string]any) Event {
	if payload == nil {
		payload = map[string]any{}
	}
	return Event{Topic: topic, Payload: payload, Timestamp: time.Now()}
}

// Handler receives events.
type Handler func(Event) error
