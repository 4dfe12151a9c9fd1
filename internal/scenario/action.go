package scenario

import (
	"errors"
	"fmt"
	"strings"
)

// ActionKind identifies what a scripted handler does when it runs.
type ActionKind string

const (
	ActionLog           ActionKind = "log"
	ActionFail          ActionKind = "fail"
	ActionPanic         ActionKind = "panic"
	ActionStop          ActionKind = "stop"
	ActionStopImmediate ActionKind = "stop-immediate"
	ActionPrevent       ActionKind = "prevent"
	ActionClear         ActionKind = "clear"
	ActionDispose       ActionKind = "dispose"
	ActionAdd           ActionKind = "add"
	ActionAddOnce       ActionKind = "add-once"
	ActionRemove        ActionKind = "remove"
)

// ErrInvalidAction is returned for malformed action strings.
var ErrInvalidAction = errors.New("invalid action")

var simpleActions = map[ActionKind]bool{
	ActionLog:           true,
	ActionFail:          true,
	ActionPanic:         true,
	ActionStop:          true,
	ActionStopImmediate: true,
	ActionPrevent:       true,
	ActionClear:         true,
	ActionDispose:       true,
}

var targetActions = map[ActionKind]bool{
	ActionAdd:     true,
	ActionAddOnce: true,
	ActionRemove:  true,
}

// Action is a parsed handler action. Target actions are written
// "kind:handler" or "kind:handler@receiver".
type Action struct {
	Kind     ActionKind
	Handler  string
	Receiver string
}

// ParseAction parses a single action string.
func ParseAction(s string) (Action, error) {
	kind, target, hasTarget := strings.Cut(strings.TrimSpace(s), ":")
	k := ActionKind(kind)

	if !hasTarget {
		if !simpleActions[k] {
			return Action{}, fmt.Errorf("%w: %q", ErrInvalidAction, s)
		}
		return Action{Kind: k}, nil
	}

	if !targetActions[k] {
		return Action{}, fmt.Errorf("%w: %q does not take a target", ErrInvalidAction, kind)
	}
	handler, receiver, _ := strings.Cut(target, "@")
	if handler == "" {
		return Action{}, fmt.Errorf("%w: %q is missing a handler", ErrInvalidAction, s)
	}
	return Action{Kind: k, Handler: handler, Receiver: receiver}, nil
}

func (a Action) String() string {
	if a.Handler == "" {
		return string(a.Kind)
	}
	if a.Receiver == "" {
		return fmt.Sprintf("%s:%s", a.Kind, a.Handler)
	}
	return fmt.Sprintf("%s:%s@%s", a.Kind, a.Handler, a.Receiver)
}
