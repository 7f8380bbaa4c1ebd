// internal/event/event.go
package event

import "log"

// EventType names an event kind.
type EventType string

// Event is a typed notification with an optional payload.
type Event struct {
	Type EventType
	Data interface{}
}

// Listener receives events it subscribed to.
type Listener interface {
	OnEvent(event Event)
}

// ListenerFunc adapts a function to Listener.
type ListenerFunc func(event Event)

func (f ListenerFunc) OnEvent(event Event) { f(event) }

// Publisher is what simulation components emit through.
type Publisher interface {
	Publish(event Event)
}

// Nop discards every event. Used by components built without a dispatcher.
var Nop Publisher = nopPublisher{}

type nopPublisher struct{}

func (nopPublisher) Publish(Event) {}

// maxFlushRounds bounds listener chains that keep publishing during Flush.
const maxFlushRounds = 64

// Dispatcher fans events out to subscribers. Dispatch delivers immediately,
// Publish defers delivery until Flush, which the game calls once per tick.
// Not safe for concurrent use.
type Dispatcher struct {
	listeners map[EventType][]Listener
	any       []Listener
	queue     []Event
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		listeners: make(map[EventType][]Listener),
	}
}

// Subscribe registers listener for one event type.
func (d *Dispatcher) Subscribe(eventType EventType, listener Listener) {
	d.listeners[eventType] = append(d.listeners[eventType], listener)
}

// SubscribeAll registers listener for every event type.
func (d *Dispatcher) SubscribeAll(listener Listener) {
	d.any = append(d.any, listener)
}

// Unsubscribe removes listener from eventType.
func (d *Dispatcher) Unsubscribe(eventType EventType, listener Listener) {
	if listeners, exists := d.listeners[eventType]; exists {
		for i, l := range listeners {
			if l == listener {
				d.listeners[eventType] = append(listeners[:i], listeners[i+1:]...)
				break
			}
		}
	}
}

// Dispatch delivers event to its subscribers right away.
func (d *Dispatcher) Dispatch(event Event) {
	for _, listener := range d.listeners[event.Type] {
		listener.OnEvent(event)
	}
	for _, listener := range d.any {
		listener.OnEvent(event)
	}
}

// Publish queues event for the next Flush.
func (d *Dispatcher) Publish(event Event) {
	d.queue = append(d.queue, event)
}

// Pending returns the number of queued events.
func (d *Dispatcher) Pending() int {
	return len(d.queue)
}

// Flush delivers queued events in publish order. Events published by
// listeners during the flush are delivered in the same call.
func (d *Dispatcher) Flush() {
	for round := 0; len(d.queue) > 0; round++ {
		if round == maxFlushRounds {
			log.Printf("Dispatcher: dropping %d events after %d flush rounds", len(d.queue), round)
			d.queue = d.queue[:0]
			return
		}
		batch := d.queue
		d.queue = nil
		for _, e := range batch {
			d.Dispatch(e)
		}
	}
}
