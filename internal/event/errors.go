package event

import (
	"errors"
	"fmt"
)

// Sentinel errors for queue operations.
// These can be checked using errors.Is().
var (
	// ErrInvalidHandler is returned by Add when the handler cannot be registered.
	ErrInvalidHandler = errors.New("event: handler must be a comparable Handler or SuppressDefault")

	// ErrInvalidReceiver is returned by Add when the bound receiver cannot be
	// compared with itself.
	ErrInvalidReceiver = errors.New("event: receiver must be comparable, a map, a func or a slice")

	// ErrDisposed is returned when Add or Execute is called on a disposed queue.
	ErrDisposed = errors.New("event: queue disposed")
)

// InvalidHandlerError describes why a handler was rejected by Add.
type InvalidHandlerError struct {
	Handler Handler
	Reason  string
}

func (e *InvalidHandlerError) Error() string {
	if e.Handler == nil {
		return fmt.Sprintf("invalid handler: %s", e.Reason)
	}
	return fmt.Sprintf("invalid handler %T: %s", e.Handler, e.Reason)
}

func (e *InvalidHandlerError) Unwrap() error {
	return ErrInvalidHandler
}

// InvalidReceiverError describes a receiver rejected by Add.
type InvalidReceiverError struct {
	Receiver any
	Reason   string
}

func (e *InvalidReceiverError) Error() string {
	return fmt.Sprintf("invalid receiver %T: %s", e.Receiver, e.Reason)
}

func (e *InvalidReceiverError) Unwrap() error {
	return ErrInvalidReceiver
}
