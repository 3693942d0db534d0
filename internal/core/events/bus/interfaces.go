package bus

import "time"

// EventBus is a thread-safe, in-process pub/sub bus.
//
// Handlers subscribe by event type and are called synchronously in the
// publisher's goroutine, in subscription order. Handler errors are joined
// and returned from Publish.
type EventBus interface {
	Publish(event Event) error
	PublishBatch(events ...Event) error
	Subscribe(eventType string, handler EventHandler) (Subscription, error)
	// Unsubscribe is safe to call with nil.
	Unsubscribe(Subscription) error
	// Subscribers counts the active handlers for eventType.
	Subscribers(eventType string) int
}

// Event is an immutable message transported by the EventBus.
type Event struct {
	Type      string
	Source    string
	Timestamp time.Time
	Data      any
}

type EventHandler func(event Event) error

// Subscription is a registered handler. Cancel may be called more than once.
type Subscription interface {
	ID() string
	EventType() string
	IsActive() bool
	Cancel() error
}
