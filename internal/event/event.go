package event

// ImmediatePropagationStopper is implemented by events that can halt a
// dispatch pass. The queue checks it before every slot.
type ImmediatePropagationStopper interface {
	IsImmediatePropagationStopped() bool
}

// DefaultPreventer is implemented by events with a cancellable default action.
type DefaultPreventer interface {
	PreventDefault()
}

// PropagationStopper is implemented by events that can stop propagating to
// further targets.
type PropagationStopper interface {
	StopPropagation()
}

// Event is a concrete event carrying the flags the queue reads and sets.
// Any value can be dispatched; Event is a convenience.
type Event struct {
	Type string
	Data any

	defaultPrevented   bool
	propagationStopped bool
	immediateStopped   bool
}

// NewEvent creates an event of the given type.
func NewEvent(typ string, data any) *Event {
	return &Event{Type: typ, Data: data}
}

func (e *Event) PreventDefault() {
	e.defaultPrevented = true
}

func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

func (e *Event) StopPropagation() {
	e.propagationStopped = true
}

func (e *Event) PropagationStopped() bool {
	return e.propagationStopped
}

// StopImmediatePropagation stops propagation and prevents any further
// handler in the current queue from running.
func (e *Event) StopImmediatePropagation() {
	e.propagationStopped = true
	e.immediateStopped = true
}

func (e *Event) IsImmediatePropagationStopped() bool {
	return e.immediateStopped
}
