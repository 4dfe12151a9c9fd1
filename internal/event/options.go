package event

import "sort"

// Option keys recognised by OptionsFromMap.
const (
	OptionReceiver = "thisObject"
	OptionOnce     = "once"
)

// Registration is one entry in a Queue.
type Registration struct {
	// Handler is the registered handler or SuppressDefault.
	Handler Handler

	// Receiver is passed to the handler instead of the Execute receiver
	// when set.
	Receiver any

	// Once removes the registration after its first successful run.
	Once bool

	// Fields holds option values the queue does not interpret.
	Fields map[string]any
}

// Option configures a Registration during Add.
// Options are applied in order, so later ones overwrite earlier ones.
type Option func(*Registration)

// WithReceiver binds r as the handler's receiver.
func WithReceiver(r any) Option {
	return func(reg *Registration) {
		reg.Receiver = r
	}
}

// Once marks the registration as one-shot.
func Once() Option {
	return func(reg *Registration) {
		reg.Once = true
	}
}

// WithField stores an uninterpreted value on the registration.
func WithField(key string, value any) Option {
	return func(reg *Registration) {
		if reg.Fields == nil {
			reg.Fields = make(map[string]any)
		}
		reg.Fields[key] = value
	}
}

// OptionsFromMap converts a loosely typed options map (as decoded from a
// config file) into Options. "thisObject" binds the receiver and a boolean
// "once" marks the registration one-shot; every other key, including a
// non-boolean "once", is copied into Fields.
func OptionsFromMap(m map[string]any) []Option {
	if len(m) == 0 {
		return nil
	}

	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	opts := make([]Option, 0, len(keys))
	for _, k := range keys {
		v := m[k]
		switch k {
		case OptionReceiver:
			opts = append(opts, WithReceiver(v))
		case OptionOnce:
			if once, ok := v.(bool); ok {
				opts = append(opts, func(reg *Registration) { reg.Once = once })
				continue
			}
			opts = append(opts, WithField(k, v))
		default:
			opts = append(opts, WithField(k, v))
		}
	}
	return opts
}

func newRegistration(h Handler, opts []Option) *Registration {
	reg := &Registration{Handler: h}
	for _, opt := range opts {
		if opt != nil {
			opt(reg)
		}
	}
	return reg
}
