package tetris

import "errors"

// Event is an input delivered to the controller through the queue.
type Event interface {
	gameEvent()
}

// TouchEvent is a press reported by the touch digitizer.
type TouchEvent struct {
	Point TouchPoint
}

func (TouchEvent) gameEvent() {}

// ButtonEvent is an edge on the drop button.
type ButtonEvent struct{}

func (ButtonEvent) gameEvent() {}

// TickEvent carries a clock sample for the gravity gate.
type TickEvent struct {
	Millis uint32
}

func (TickEvent) gameEvent() {}

// ErrQueueFull is returned when an event is dropped because the queue is at
// capacity.
var ErrQueueFull = errors.New("event queue full")

// DefaultQueueSize is the queue capacity used when none is configured.
const DefaultQueueSize = 64

// EventQueue is a bounded multi-producer, single-consumer queue. Producers
// never block; the consumer drains it once per loop iteration.
type EventQueue struct {
	ch chan Event
}

// NewEventQueue creates a queue holding up to size events.
func NewEventQueue(size int) *EventQueue {
	if size <= 0 {
		size = DefaultQueueSize
	}
	return &EventQueue{ch: make(chan Event, size)}
}

// Push enqueues ev, or returns ErrQueueFull without blocking.
func (q *EventQueue) Push(ev Event) error {
	select {
	case q.ch <- ev:
		return nil
	default:
		return ErrQueueFull
	}
}

// Len returns the number of queued events.
func (q *EventQueue) Len() int {
	return len(q.ch)
}

// Drain hands every event queued at the time of the call to fn, in order.
// Events pushed while draining wait for the next call.
func (q *EventQueue) Drain(fn func(Event)) int {
	n := len(q.ch)
	for i := 0; i < n; i++ {
		fn(<-q.ch)
	}
	return n
}
