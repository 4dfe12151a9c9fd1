// Package render formats scenario traces for the terminal.
package render

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
	"github.com/tessro/evq/internal/scenario"
)

var (
	// Colors
	primaryColor   = lipgloss.Color("#7C3AED") // Purple
	secondaryColor = lipgloss.Color("#10B981") // Green
	mutedColor     = lipgloss.Color("#6B7280") // Gray
	errorColor     = lipgloss.Color("#EF4444") // Red
	warningColor   = lipgloss.Color("#F59E0B") // Amber/Yellow

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	opStyle = lipgloss.NewStyle().
		Bold(true)

	callStyle = lipgloss.NewStyle().
			Foreground(secondaryColor)

	flagStyle = lipgloss.NewStyle().
			Foreground(warningColor)

	failStyle = lipgloss.NewStyle().
			Foreground(errorColor).
			Bold(true)

	okStyle = lipgloss.NewStyle().
		Foreground(secondaryColor).
		Bold(true)
)

// detailIndent is the indentation of lines under a step.
const detailIndent = 8

// Renderer formats traces. Color can be disabled for logs and pipes.
type Renderer struct {
	color bool
	width int
}

// New creates a renderer wrapping detail lines at width columns.
func New(color bool, width int) *Renderer {
	return &Renderer{color: color, width: width}
}

func (r *Renderer) paint(style lipgloss.Style, s string) string {
	if !r.color {
		return s
	}
	return style.Render(s)
}

// detail wraps s to the renderer width and indents it under a step line.
func (r *Renderer) detail(b *strings.Builder, s string) {
	width := r.width - detailIndent
	if width < 10 {
		width = 10
	}
	b.WriteString(indent.String(wordwrap.String(s, width), detailIndent))
	b.WriteByte('\n')
}

// Trace renders a full run.
func (r *Renderer) Trace(t *scenario.Trace) string {
	var b strings.Builder

	b.WriteString(r.paint(titleStyle, "evq ▸ "+t.Scenario))
	b.WriteByte('\n')
	if t.Description != "" {
		r.detail(&b, r.paint(mutedStyle, t.Description))
	}

	for _, e := range t.Entries {
		r.entry(&b, e)
	}

	b.WriteString(r.summary(t))
	b.WriteByte('\n')
	return b.String()
}

func (r *Renderer) entry(b *strings.Builder, e *scenario.Entry) {
	status := r.paint(okStyle, "✓")
	if e.Failed() {
		status = r.paint(failStyle, "✗")
	}

	fmt.Fprintf(b, "  %s #%-3d %s %-24s %s\n",
		status,
		e.Index,
		r.paint(opStyle, fmt.Sprintf("%-8s", e.Op)),
		e.Target,
		r.paint(mutedStyle, fmt.Sprintf("live=%d", e.Live)),
	)

	if e.Op == scenario.OpDispatch {
		r.detail(b, "→ "+r.calls(e.Calls))
		if flags := flagNames(e); flags != "" {
			r.detail(b, r.paint(flagStyle, "flags: "+flags))
		}
	}
	if e.Err != nil {
		msg := "error: " + e.Err.Error()
		if e.ErrExpected {
			r.detail(b, r.paint(mutedStyle, msg+" (expected)"))
		} else {
			r.detail(b, r.paint(failStyle, msg))
		}
	}
	for _, m := range e.Mismatches {
		r.detail(b, r.paint(failStyle, "mismatch: "+m))
	}
}

func (r *Renderer) calls(calls []scenario.Call) string {
	if len(calls) == 0 {
		return r.paint(mutedStyle, "(no handlers ran)")
	}
	parts := make([]string, len(calls))
	for i, c := range calls {
		name := c.Handler
		if c.Receiver != "" {
			name += "@" + c.Receiver
		}
		parts[i] = r.paint(callStyle, name)
	}
	return strings.Join(parts, ", ")
}

func flagNames(e *scenario.Entry) string {
	var flags []string
	if e.Prevented {
		flags = append(flags, "prevented")
	}
	if e.ImmediateStopped {
		flags = append(flags, "stopped-immediate")
	} else if e.Stopped {
		flags = append(flags, "stopped")
	}
	return strings.Join(flags, " ")
}

func (r *Renderer) summary(t *scenario.Trace) string {
	failures := len(t.Failures())
	line := fmt.Sprintf("%d steps, %d calls, %d failures", len(t.Entries), t.CallCount(), failures)
	if t.Aborted {
		line += " (aborted)"
	}
	if failures > 0 {
		return r.paint(failStyle, "FAIL ") + line
	}
	return r.paint(okStyle, "PASS ") + line
}

// Check renders the result of validating a scenario.
func (r *Renderer) Check(s *scenario.Scenario, err error) string {
	var b strings.Builder
	b.WriteString(r.paint(titleStyle, "evq ▸ "+s.Name))
	b.WriteByte('\n')

	if err != nil {
		for _, line := range strings.Split(err.Error(), "\n") {
			r.detail(&b, r.paint(failStyle, "✗ "+line))
		}
		return b.String()
	}

	r.detail(&b, fmt.Sprintf("%d receivers, %d handlers, %d steps",
		len(s.Receivers), len(s.Handlers), len(s.Steps)))
	b.WriteString(r.paint(okStyle, "OK"))
	b.WriteByte('\n')
	return b.String()
}
