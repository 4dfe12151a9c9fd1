// Package scenario loads declarative dispatch scripts and replays them
// against an event.Queue.
package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// SuppressDefaultName refers to event.SuppressDefault in steps and actions.
const SuppressDefaultName = "suppress-default"

// Step operations.
const (
	OpAdd      = "add"
	OpRemove   = "remove"
	OpClear    = "clear"
	OpDispatch = "dispatch"
	OpDispose  = "dispose"
)

var validOps = map[string]bool{
	OpAdd:      true,
	OpRemove:   true,
	OpClear:    true,
	OpDispatch: true,
	OpDispose:  true,
}

// Errors returned while loading scenarios.
var (
	ErrUnsupportedFormat = errors.New("unsupported scenario format")
	ErrUnknownField      = errors.New("unknown scenario field")
)

// Scenario is a dispatch script.
type Scenario struct {
	Name        string        `toml:"name" yaml:"name"`
	Description string        `toml:"description,omitempty" yaml:"description,omitempty"`
	Receivers   []string      `toml:"receivers,omitempty" yaml:"receivers,omitempty"`
	Handlers    []HandlerSpec `toml:"handlers" yaml:"handlers"`
	Steps       []Step        `toml:"steps" yaml:"steps"`
}

// HandlerSpec declares a scripted handler. Actions run in order each time
// the handler is invoked.
type HandlerSpec struct {
	Name    string   `toml:"name" yaml:"name"`
	Actions []string `toml:"actions,omitempty" yaml:"actions,omitempty"`
}

// Step is one queue operation.
type Step struct {
	Op string `toml:"op" yaml:"op"`

	// add, remove
	Handler  string         `toml:"handler,omitempty" yaml:"handler,omitempty"`
	Receiver string         `toml:"receiver,omitempty" yaml:"receiver,omitempty"`
	Once     bool           `toml:"once,omitempty" yaml:"once,omitempty"`
	Options  map[string]any `toml:"options,omitempty" yaml:"options,omitempty"`

	// dispatch
	Event           string    `toml:"event,omitempty" yaml:"event,omitempty"`
	Expect          *[]string `toml:"expect,omitempty" yaml:"expect,omitempty"`
	ExpectPrevented *bool     `toml:"expect_prevented,omitempty" yaml:"expect_prevented,omitempty"`
	ExpectStopped   *bool     `toml:"expect_stopped,omitempty" yaml:"expect_stopped,omitempty"`
	ExpectError     string    `toml:"expect_error,omitempty" yaml:"expect_error,omitempty"`
}

// Load reads a scenario file. The format follows the extension: .toml,
// .yaml or .yml.
func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	s, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return s, nil
}

// Parse decodes scenario data in the format named by ext. Unknown fields
// are rejected.
func Parse(data []byte, ext string) (*Scenario, error) {
	var s Scenario
	switch strings.ToLower(ext) {
	case ".toml":
		md, err := toml.Decode(string(data), &s)
		if err != nil {
			return nil, fmt.Errorf("parse toml: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			// options tables are free-form
			var unknown []string
			for _, key := range undecoded {
				if !isOptionsKey(key) {
					unknown = append(unknown, key.String())
				}
			}
			if len(unknown) > 0 {
				return nil, fmt.Errorf("%w: %s", ErrUnknownField, strings.Join(unknown, ", "))
			}
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&s); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	return &s, nil
}

func isOptionsKey(key toml.Key) bool {
	for _, part := range key {
		if part == "options" {
			return true
		}
	}
	return false
}

// HandlerNames returns declared handler names in declaration order.
func (s *Scenario) HandlerNames() []string {
	names := make([]string, len(s.Handlers))
	for i, h := range s.Handlers {
		names[i] = h.Name
	}
	return names
}
