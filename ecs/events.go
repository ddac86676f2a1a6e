package ecs

// Event is a generic ECS event payload.
type Event struct {
	Type string
	Data any
}

// RigEventKind identifies camera rig event types.
type RigEventKind string

const (
	// RigEventParamChanged fires when a rig's configuration is swapped.
	RigEventParamChanged RigEventKind = "param_changed"
	// RigEventBound fires when a rig (re)binds its named rig points.
	RigEventBound    RigEventKind = "bound"
	RigEventOccluded RigEventKind = "occluded"
)

const RigEventType = "rig"

// RigEvent is carried in Event.Data for events of RigEventType.
type RigEvent struct {
	Entity Entity
	Kind   RigEventKind
	// Source names who caused the event, such as "director" or a prefab path.
	Source string
}

// EventQueue is a simple FIFO queue.
type EventQueue struct {
	items []Event
}

func (q *EventQueue) Push(evt Event) {
	if q == nil {
		return
	}
	q.items = append(q.items, evt)
}

// Peek returns the queued events without removing them.
func (q *EventQueue) Peek() []Event {
	if q == nil {
		return nil
	}
	return q.items
}

// Drain returns all events and clears the queue.
func (q *EventQueue) Drain() []Event {
	if q == nil || len(q.items) == 0 {
		return nil
	}
	out := q.items
	q.items = nil
	return out
}

func (q *EventQueue) flush() {
	if q == nil {
		return
	}
	q.items = nil
}
