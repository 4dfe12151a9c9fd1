package event

import "reflect"

// Handler reacts to an event dispatched by a Queue.
//
// Handlers are identified by interface equality, so the dynamic type must be
// comparable. Pointer types are the usual choice; Func returns one.
type Handler interface {
	HandleEvent(receiver, ev any) error
}

// HandlerFunc is the signature wrapped by Func.
type HandlerFunc func(receiver, ev any) error

type funcHandler struct {
	fn HandlerFunc
}

func (h *funcHandler) HandleEvent(receiver, ev any) error {
	return h.fn(receiver, ev)
}

// Func wraps fn in a Handler with its own identity. Every call returns a
// distinct Handler, so keep the result to remove the registration later.
func Func(fn HandlerFunc) Handler {
	return &funcHandler{fn: fn}
}

type suppressDefault struct{}

func (suppressDefault) HandleEvent(_, _ any) error { return nil }

// SuppressDefault is a sentinel handler. When its slot is reached the queue
// calls PreventDefault and StopPropagation on the event, if it has them, and
// runs no user code. Passing it to Remove clears the queue, like nil.
var SuppressDefault Handler = suppressDefault{}

// checkHandler reports why h cannot be registered, or "" if it can.
func checkHandler(h Handler) string {
	if isAbsent(h) {
		return "handler is nil"
	}
	// Interface fields can hide uncomparable values inside a comparable type.
	if !reflect.ValueOf(h).Comparable() {
		return "handler value is not comparable"
	}
	if fh, ok := h.(*funcHandler); ok && fh.fn == nil {
		return "handler func is nil"
	}
	return ""
}
