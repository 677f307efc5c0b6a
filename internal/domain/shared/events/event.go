package events

// Event is implemented by every domain event.
type Event interface {
	EventName() string
}

// Handler consumes one event. Returning an error only logs it; delivery is
// best effort.
type Handler func(event Event) error

type Publisher interface {
	Publish(event Event) error
	PublishAll(events []Event) error
}

type Subscriber interface {
	Subscribe(eventName string, handler Handler)
}

// Bus combines publishing and subscribing with lifecycle control.
type Bus interface {
	Publisher
	Subscriber
	Start() error
	Stop() error
}
