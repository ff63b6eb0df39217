package ports

import "context"

const (
	// EventAddinLocated is emitted when the locator picks a candidate file.
	EventAddinLocated = "addin.located"
	// EventActivationStarted is emitted once an automation session is open.
	EventActivationStarted = "addin.activation_started"
	// EventAddinRegistered is emitted when a file had to be opened to register it.
	EventAddinRegistered = "addin.registered"
	// EventAddinActivated is emitted when the installed flag was verified.
	EventAddinActivated = "addin.activated"
	// EventActivationFailed is emitted for every ActivationFailed outcome.
	EventActivationFailed = "addin.activation_failed"
)

// DomainEvent represents a significant occurrence within the domain or
// application layer.
type DomainEvent interface {
	EventType() string
	Payload() interface{}
}

// EventPublisher distributes events to interested subscribers. Publish blocks
// until all handlers have run so that every signal is written before the
// process exits.
type EventPublisher interface {
	Publish(ctx context.Context, event DomainEvent) error
	Subscribe(eventType string, handler EventHandler) (Subscription, error)
}

// EventHandler processes an event of a specific type. Failures are returned,
// not panicked, so the publisher can keep delivering.
type EventHandler func(context.Context, DomainEvent) error

// Subscription represents a registered handler.
type Subscription interface {
	Unsubscribe()
}
