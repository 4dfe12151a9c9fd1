package scenario

import (
	"errors"
	"fmt"

	"github.com/tessro/evq/internal/config"
	"github.com/tessro/evq/internal/event"
)

// Validation errors.
var (
	ErrUnknownHandler  = errors.New("unknown handler")
	ErrUnknownReceiver = errors.New("unknown receiver")
	ErrDuplicateName   = errors.New("duplicate name")
	ErrReservedName    = errors.New("reserved name")
	ErrInvalidStep     = errors.New("invalid step")
)

// Validate checks names, actions and references. All problems are reported
// together.
func (s *Scenario) Validate() error {
	var errs []error
	add := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	add(config.ValidateName("name", s.Name))

	receivers := make(map[string]bool, len(s.Receivers))
	for i, r := range s.Receivers {
		field := fmt.Sprintf("receivers[%d]", i)
		add(config.ValidateName(field, r))
		if receivers[r] {
			add(fmt.Errorf("%s: %w %q", field, ErrDuplicateName, r))
		}
		receivers[r] = true
	}

	handlers := make(map[string]bool, len(s.Handlers))
	for i, h := range s.Handlers {
		field := fmt.Sprintf("handlers[%d]", i)
		add(config.ValidateName(field, h.Name))
		if h.Name == SuppressDefaultName {
			add(fmt.Errorf("%s: %w %q", field, ErrReservedName, h.Name))
		}
		if handlers[h.Name] {
			add(fmt.Errorf("%s: %w %q", field, ErrDuplicateName, h.Name))
		}
		handlers[h.Name] = true
	}

	checkRef := func(field, handler, receiver string) {
		if handler != SuppressDefaultName && !handlers[handler] {
			add(fmt.Errorf("%s: %w %q", field, ErrUnknownHandler, handler))
		}
		if receiver != "" && !receivers[receiver] {
			add(fmt.Errorf("%s: %w %q", field, ErrUnknownReceiver, receiver))
		}
	}

	for i, h := range s.Handlers {
		for j, raw := range h.Actions {
			field := fmt.Sprintf("handlers[%d].actions[%d]", i, j)
			a, err := ParseAction(raw)
			if err != nil {
				add(fmt.Errorf("%s: %w", field, err))
				continue
			}
			if a.Handler != "" {
				checkRef(field, a.Handler, a.Receiver)
			}
		}
	}

	for i, st := range s.Steps {
		field := fmt.Sprintf("steps[%d]", i)
		if !validOps[st.Op] {
			add(fmt.Errorf("%s: %w: unknown op %q", field, ErrInvalidStep, st.Op))
			continue
		}
		switch st.Op {
		case OpAdd:
			if st.Handler == "" {
				add(fmt.Errorf("%s: %w: add needs a handler", field, ErrInvalidStep))
				continue
			}
			if _, ok := st.Options[event.OptionReceiver]; ok {
				add(fmt.Errorf("%s: %w: bind receivers with the receiver field", field, ErrInvalidStep))
			}
			checkRef(field, st.Handler, st.Receiver)
		case OpRemove:
			// An empty handler removes everything.
			if st.Handler != "" {
				checkRef(field, st.Handler, st.Receiver)
			}
		case OpDispatch:
			if st.Event == "" {
				add(fmt.Errorf("%s: %w: dispatch needs an event", field, ErrInvalidStep))
			}
			if st.Receiver != "" && !receivers[st.Receiver] {
				add(fmt.Errorf("%s: %w %q", field, ErrUnknownReceiver, st.Receiver))
			}
			if st.Expect != nil {
				for _, name := range *st.Expect {
					if !handlers[name] {
						add(fmt.Errorf("%s.expect: %w %q", field, ErrUnknownHandler, name))
					}
				}
			}
		}
	}

	return errors.Join(errs...)
}
