// Package outbox defines the event ports connecting the notification
// endpoint to the background workers applying fraud decisions.
package outbox

import "context"

// Event is any domain event carrying a stable name identifier.
type Event interface {
	EventName() string
}

// Handler processes one published event.
type Handler func(ctx context.Context, e Event) error

// Publisher hands events to the bus for asynchronous fan-out.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
}

// Subscriber registers handlers by event name.
type Subscriber interface {
	Subscribe(eventName string, h Handler)
}
