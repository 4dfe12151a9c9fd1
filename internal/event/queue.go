// Package event provides an ordered, deduplicating event handler queue.
package event

import "log/slog"

// Compaction thresholds. Tombstones are only reclaimed outside Execute.
const (
	compactMinSlots = 16
	compactRatio    = 2
)

// Queue holds handler registrations and runs them in registration order.
//
// Removal leaves a tombstone in place of the registration so that handlers
// may add or remove registrations while Execute is walking the queue. A
// Queue is not safe for concurrent use. The zero value is an empty queue.
type Queue struct {
	slots    []*Registration // nil entries are tombstones
	dead     int             // number of tombstones in slots
	running  int             // nesting depth of Execute
	disposed bool
}

// New creates an empty queue.
func New() *Queue {
	return &Queue{}
}

// Add registers h. If a live registration already has the same handler and
// an equal receiver, Add does nothing.
func (q *Queue) Add(h Handler, opts ...Option) error {
	if q.disposed {
		return ErrDisposed
	}
	if reason := checkHandler(h); reason != "" {
		return &InvalidHandlerError{Handler: h, Reason: reason}
	}

	reg := newRegistration(h, opts)
	if reason := checkReceiver(reg.Receiver); reason != "" {
		return &InvalidReceiverError{Receiver: reg.Receiver, Reason: reason}
	}
	if q.find(h, reg.Receiver) >= 0 {
		slog.Debug("duplicate handler ignored", "handler", handlerName(h))
		return nil
	}

	q.compact()
	q.slots = append(q.slots, reg)
	return nil
}

// Remove tombstones the registration of h bound to receiver (none when
// omitted). A nil h or SuppressDefault removes everything, like Clear.
func (q *Queue) Remove(h Handler, receiver ...any) {
	if q.disposed {
		return
	}
	if h == nil || h == SuppressDefault {
		q.Clear()
		return
	}
	if checkHandler(h) != "" {
		return
	}

	var recv any
	if len(receiver) > 0 {
		recv = receiver[0]
	}
	// Add dedups, so at most one slot matches.
	if i := q.find(h, recv); i >= 0 {
		q.tombstone(i)
	}
}

// Clear removes every registration.
func (q *Queue) Clear() {
	if q.disposed {
		return
	}
	clear(q.slots)
	q.slots = q.slots[:0]
	q.dead = 0
}

// Execute runs each registration against ev in order. Handlers without a
// bound receiver get receiver.
//
// Registrations added during the pass are reached in the same pass. The pass
// ends early when ev reports IsImmediatePropagationStopped, or when a handler
// returns an error, which is returned unchanged.
func (q *Queue) Execute(ev any, receiver any) error {
	if q.disposed {
		return ErrDisposed
	}

	q.running++
	defer func() { q.running-- }()

	stopper, _ := ev.(ImmediatePropagationStopper)
	for i := 0; i < len(q.slots); i++ {
		if stopper != nil && stopper.IsImmediatePropagationStopped() {
			return nil
		}

		reg := q.slots[i]
		if reg == nil {
			continue
		}

		if reg.Handler == SuppressDefault {
			suppress(ev)
		} else {
			recv := receiver
			if !isAbsent(reg.Receiver) {
				recv = reg.Receiver
			}
			if err := reg.Handler.HandleEvent(recv, ev); err != nil {
				slog.Debug("handler failed", "handler", handlerName(reg.Handler), "slot", i, "error", err)
				return err
			}
		}

		if reg.Once {
			q.drop(i, reg)
		}
	}
	return nil
}

// Dispose releases the queue. Add and Execute then return ErrDisposed;
// Remove and Clear do nothing.
func (q *Queue) Dispose() {
	if q.disposed {
		return
	}
	slog.Debug("queue disposed", "live", q.Len())
	q.slots = nil
	q.dead = 0
	q.disposed = true
}

// Disposed reports whether Dispose has been called.
func (q *Queue) Disposed() bool {
	return q.disposed
}

// Len returns the number of live registrations.
func (q *Queue) Len() int {
	return len(q.slots) - q.dead
}

// Has reports whether h is registered with the given receiver (none when
// omitted).
func (q *Queue) Has(h Handler, receiver ...any) bool {
	if checkHandler(h) != "" {
		return false
	}
	var recv any
	if len(receiver) > 0 {
		recv = receiver[0]
	}
	return q.find(h, recv) >= 0
}

func (q *Queue) find(h Handler, receiver any) int {
	for i, reg := range q.slots {
		if reg != nil && reg.Handler == h && sameReceiver(reg.Receiver, receiver) {
			return i
		}
	}
	return -1
}

func (q *Queue) tombstone(i int) {
	q.slots[i] = nil
	q.dead++
}

// drop tombstones slot i if it still holds reg. The handler may have removed
// itself or cleared the queue while it ran.
func (q *Queue) drop(i int, reg *Registration) {
	if i < len(q.slots) && q.slots[i] == reg {
		q.tombstone(i)
	}
}

// compact squeezes out tombstones once they dominate the queue. Indices
// shift, so it never runs while Execute is on the stack.
func (q *Queue) compact() {
	if q.running > 0 || len(q.slots) < compactMinSlots || q.dead*compactRatio < len(q.slots) {
		return
	}
	live := q.slots[:0]
	for _, reg := range q.slots {
		if reg != nil {
			live = append(live, reg)
		}
	}
	clear(q.slots[len(live):])
	q.slots = live
	q.dead = 0
}

func suppress(ev any) {
	if p, ok := ev.(DefaultPreventer); ok {
		p.PreventDefault()
	}
	if s, ok := ev.(PropagationStopper); ok {
		s.StopPropagation()
	}
}

func handlerName(h Handler) string {
	if h == SuppressDefault {
		return "suppress-default"
	}
	if n, ok := h.(interface{ Name() string }); ok {
		return n.Name()
	}
	return "anonymous"
}
