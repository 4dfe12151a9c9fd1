package scenario

import (
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/tessro/evq/internal/event"
	"github.com/tessro/evq/internal/id"
	"github.com/tessro/evq/internal/logging"
)

// Errors returned by Run and scripted handlers.
var (
	ErrHandlerFailed = errors.New("handler failed")
	ErrRunFailed     = errors.New("scenario failed")
)

// Receiver is a named receiver. Each name maps to one pointer, so bound
// registrations compare by name.
type Receiver struct {
	Name string
}

// Options controls a run.
type Options struct {
	// ContinueOnError keeps executing steps after a failure.
	ContinueOnError bool
}

// Runner replays a scenario against a fresh queue.
type Runner struct {
	scenario  *Scenario
	opts      Options
	queue     *event.Queue
	handlers  map[string]event.Handler
	receivers map[string]*Receiver

	// current is the entry of the dispatch in progress.
	current *Entry
}

// NewRunner validates s and prepares its handlers and receivers.
func NewRunner(s *Scenario, opts Options) (*Runner, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}

	r := &Runner{
		scenario:  s,
		opts:      opts,
		queue:     event.New(),
		handlers:  make(map[string]event.Handler, len(s.Handlers)+1),
		receivers: make(map[string]*Receiver, len(s.Receivers)),
	}
	for _, name := range s.Receivers {
		r.receivers[name] = &Receiver{Name: name}
	}
	for _, spec := range s.Handlers {
		h := &scriptedHandler{name: spec.Name, runner: r}
		for _, raw := range spec.Actions {
			a, err := ParseAction(raw)
			if err != nil {
				return nil, err
			}
			h.actions = append(h.actions, a)
		}
		r.handlers[spec.Name] = h
	}
	r.handlers[SuppressDefaultName] = event.SuppressDefault
	return r, nil
}

// Queue returns the queue the runner drives.
func (r *Runner) Queue() *event.Queue {
	return r.queue
}

// Run executes every step and returns the trace. The trace is returned even
// when the run fails.
func (r *Runner) Run() (*Trace, error) {
	s := r.scenario
	t := &Trace{RunID: id.Run(), Scenario: s.Name, Description: s.Description}
	log := slog.With("run", t.RunID, "scenario", s.Name)

	log.Info("scenario started", "steps", len(s.Steps))
	for i, st := range s.Steps {
		e := r.step(i, st)
		t.Entries = append(t.Entries, e)

		if e.Failed() {
			log.Warn("step failed",
				"step", i,
				"op", st.Op,
				"error", e.Err,
				"mismatches", len(e.Mismatches),
			)
			if !r.opts.ContinueOnError {
				t.Aborted = true
				break
			}
		}
	}

	failures := t.Failures()
	log.Info("scenario finished",
		"steps", len(t.Entries),
		"calls", t.CallCount(),
		"failures", len(failures),
	)
	if len(failures) > 0 {
		return t, fmt.Errorf("%w: %d of %d steps failed", ErrRunFailed, len(failures), len(t.Entries))
	}
	return t, nil
}

func (r *Runner) step(i int, st Step) *Entry {
	e := &Entry{Index: i, Op: st.Op}
	slog.Debug("step", "index", i, "op", st.Op, "handler", st.Handler, "event", st.Event)

	switch st.Op {
	case OpAdd:
		e.Target = label(st.Handler, st.Receiver)
		e.Err = r.queue.Add(r.handlers[st.Handler], r.addOptions(st.Receiver, st.Once, st.Options)...)
	case OpRemove:
		if st.Handler == "" {
			e.Target = "*"
			r.queue.Remove(nil)
		} else {
			e.Target = label(st.Handler, st.Receiver)
			r.queue.Remove(r.handlers[st.Handler], r.receiver(st.Receiver))
		}
	case OpClear:
		r.queue.Clear()
	case OpDispose:
		r.queue.Dispose()
	case OpDispatch:
		r.dispatch(e, st)
	}

	e.Live = r.queue.Len()
	return e
}

func (r *Runner) dispatch(e *Entry, st Step) {
	e.Target = label(st.Event, st.Receiver)
	ev := event.NewEvent(st.Event, nil)

	r.current = e
	err := r.execute(ev, r.receiver(st.Receiver))
	r.current = nil

	e.Err = err
	e.Prevented = ev.DefaultPrevented()
	e.Stopped = ev.PropagationStopped()
	e.ImmediateStopped = ev.IsImmediatePropagationStopped()

	if st.ExpectError != "" {
		switch {
		case err == nil:
			e.Mismatches = append(e.Mismatches, fmt.Sprintf("expected error containing %q, got none", st.ExpectError))
		case !strings.Contains(err.Error(), st.ExpectError):
			e.Mismatches = append(e.Mismatches, fmt.Sprintf("error %q does not contain %q", err, st.ExpectError))
		default:
			e.ErrExpected = true
		}
	}
	if st.Expect != nil {
		got := make([]string, len(e.Calls))
		for i, c := range e.Calls {
			got[i] = c.Handler
		}
		if !slices.Equal(got, *st.Expect) {
			e.Mismatches = append(e.Mismatches, fmt.Sprintf("calls %v, want %v", got, *st.Expect))
		}
	}
	if st.ExpectPrevented != nil && *st.ExpectPrevented != e.Prevented {
		e.Mismatches = append(e.Mismatches, fmt.Sprintf("prevented = %v, want %v", e.Prevented, *st.ExpectPrevented))
	}
	if st.ExpectStopped != nil && *st.ExpectStopped != e.Stopped {
		e.Mismatches = append(e.Mismatches, fmt.Sprintf("stopped = %v, want %v", e.Stopped, *st.ExpectStopped))
	}
}

// execute runs the queue, turning a handler panic into an error.
func (r *Runner) execute(ev *event.Event, receiver any) (err error) {
	defer logging.Recover("dispatch "+ev.Type, &err)
	return r.queue.Execute(ev, receiver)
}

// addOptions merges the step's free-form options with its receiver and once
// flag.
func (r *Runner) addOptions(receiver string, once bool, extra map[string]any) []event.Option {
	m := make(map[string]any, len(extra)+2)
	maps.Copy(m, extra)
	if receiver != "" {
		m[event.OptionReceiver] = r.receivers[receiver]
	}
	if once {
		m[event.OptionOnce] = true
	}
	return event.OptionsFromMap(m)
}

func (r *Runner) receiver(name string) any {
	if name == "" {
		return nil
	}
	return r.receivers[name]
}

type scriptedHandler struct {
	name    string
	actions []Action
	runner  *Runner
}

func (h *scriptedHandler) Name() string {
	return h.name
}

func (h *scriptedHandler) HandleEvent(receiver, ev any) error {
	r := h.runner
	if r.current != nil {
		r.current.Calls = append(r.current.Calls, Call{Handler: h.name, Receiver: receiverName(receiver)})
	}
	for _, a := range h.actions {
		if err := h.apply(a, receiver, ev); err != nil {
			return err
		}
	}
	return nil
}

func (h *scriptedHandler) apply(a Action, receiver, ev any) error {
	r := h.runner
	switch a.Kind {
	case ActionLog:
		var typ string
		if e, ok := ev.(*event.Event); ok {
			typ = e.Type
		}
		slog.Info("handler invoked", "handler", h.name, "event", typ, "receiver", receiverName(receiver))
	case ActionFail:
		return fmt.Errorf("%w: %s", ErrHandlerFailed, h.name)
	case ActionPanic:
		panic(fmt.Sprintf("handler %s panicked", h.name))
	case ActionStop:
		if s, ok := ev.(event.PropagationStopper); ok {
			s.StopPropagation()
		}
	case ActionStopImmediate:
		if s, ok := ev.(interface{ StopImmediatePropagation() }); ok {
			s.StopImmediatePropagation()
		}
	case ActionPrevent:
		if p, ok := ev.(event.DefaultPreventer); ok {
			p.PreventDefault()
		}
	case ActionClear:
		r.queue.Clear()
	case ActionDispose:
		r.queue.Dispose()
	case ActionAdd, ActionAddOnce:
		return r.queue.Add(r.handlers[a.Handler], r.addOptions(a.Receiver, a.Kind == ActionAddOnce, nil)...)
	case ActionRemove:
		r.queue.Remove(r.handlers[a.Handler], r.receiver(a.Receiver))
	}
	return nil
}

func receiverName(receiver any) string {
	if rc, ok := receiver.(*Receiver); ok && rc != nil {
		return rc.Name
	}
	return ""
}

func label(name, receiver string) string {
	if receiver == "" {
		return name
	}
	return name + "@" + receiver
}
