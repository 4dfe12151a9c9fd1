package cli

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tessro/evq/internal/paths"
	"github.com/tessro/evq/internal/scenario"
)

// execute runs the root command in an isolated EVQ_DIR and returns its output.
func execute(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()

	t.Setenv(paths.EnvEvqDir, dir)
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	// Flags keep their values between runs of the package-level command.
	evqDir, logLevel, verbose, noColor, width = "", "", false, false, 0
	runContinueOnError = false

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(append([]string{"--evq-dir", dir, "--no-color"}, args...))

	err := Execute()
	return out.String(), err
}

func testdata(name string) string {
	return filepath.Join("..", "scenario", "testdata", name)
}

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestVersion(t *testing.T) {
	out, err := execute(t, t.TempDir(), "version")
	if err != nil {
		t.Fatalf("version error = %v", err)
	}
	if !strings.HasPrefix(out, "evq dev") {
		t.Errorf("output = %q", out)
	}
}

func TestRun(t *testing.T) {
	t.Run("toml scenario passes", func(t *testing.T) {
		out, err := execute(t, t.TempDir(), "run", testdata("form.toml"))
		if err != nil {
			t.Fatalf("run error = %v\n%s", err, out)
		}
		if !strings.Contains(out, "evq ▸ form-submit") || !strings.Contains(out, "PASS") {
			t.Errorf("unexpected output:\n%s", out)
		}
	})

	t.Run("yaml scenario passes", func(t *testing.T) {
		out, err := execute(t, t.TempDir(), "run", testdata("reentrant.yaml"))
		if err != nil {
			t.Fatalf("run error = %v\n%s", err, out)
		}
		if !strings.Contains(out, "error: handler failed: broken (expected)") {
			t.Errorf("unexpected output:\n%s", out)
		}
	})

	t.Run("named scenario from scenarios dir", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "scenarios", "tiny.yaml"), `
name: tiny
handlers: [{name: h}]
steps:
  - {op: add, handler: h}
  - {op: dispatch, event: ping, expect: [h]}
`)
		out, err := execute(t, dir, "run", "tiny")
		if err != nil {
			t.Fatalf("run error = %v\n%s", err, out)
		}
		if !strings.Contains(out, "→ h") {
			t.Errorf("unexpected output:\n%s", out)
		}
	})

	t.Run("failing scenario", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "bad.toml")
		writeFile(t, path, `
name = "bad"

[[handlers]]
name = "h"

[[steps]]
op = "dispatch"
event = "ping"
expect = ["h"]

[[steps]]
op = "clear"
`)
		out, err := execute(t, dir, "run", path)
		if !errors.Is(err, scenario.ErrRunFailed) {
			t.Fatalf("run error = %v, want ErrRunFailed", err)
		}
		if !strings.Contains(out, "FAIL 1 steps") || !strings.Contains(out, "(aborted)") {
			t.Errorf("unexpected output:\n%s", out)
		}

		out, err = execute(t, dir, "run", "--continue-on-error", path)
		if !errors.Is(err, scenario.ErrRunFailed) {
			t.Fatalf("run error = %v, want ErrRunFailed", err)
		}
		if !strings.Contains(out, "FAIL 2 steps") {
			t.Errorf("unexpected output:\n%s", out)
		}
	})

	t.Run("missing scenario", func(t *testing.T) {
		_, err := execute(t, t.TempDir(), "run", "does-not-exist")
		if !errors.Is(err, os.ErrNotExist) {
			t.Errorf("run error = %v, want ErrNotExist", err)
		}
	})

	t.Run("config enables continue on error", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "config", "config.toml"), "[replay]\ncontinue_on_error = true\n")
		path := filepath.Join(dir, "s.yaml")
		writeFile(t, path, `
name: s
handlers: [{name: h, actions: [fail]}]
steps:
  - {op: add, handler: h}
  - {op: dispatch, event: a}
  - {op: dispatch, event: b}
`)
		out, err := execute(t, dir, "run", path)
		if err == nil {
			t.Fatal("run error = nil, want failure")
		}
		if !strings.Contains(out, "FAIL 3 steps, 2 calls, 2 failures") {
			t.Errorf("unexpected output:\n%s", out)
		}
	})
}

func TestRun_WritesLogFile(t *testing.T) {
	dir := t.TempDir()
	if _, err := execute(t, dir, "--log-level", "debug", "run", testdata("form.toml")); err != nil {
		t.Fatalf("run error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "evq.log"))
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "scenario finished") {
		t.Errorf("log missing run entry:\n%s", data)
	}
}

func TestRootFlagValidation(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"bad log level", []string{"--log-level", "loud", "run", testdata("form.toml")}},
		{"bad width", []string{"--width", "3", "run", testdata("form.toml")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := execute(t, t.TempDir(), tt.args...); err == nil {
				t.Error("error = nil, want validation error")
			}
		})
	}
}

func TestCheck(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		out, err := execute(t, t.TempDir(), "check", testdata("form.toml"))
		if err != nil {
			t.Fatalf("check error = %v", err)
		}
		if !strings.Contains(out, "2 receivers, 3 handlers") || !strings.Contains(out, "OK") {
			t.Errorf("unexpected output:\n%s", out)
		}
	})

	t.Run("invalid", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "broken.yaml")
		writeFile(t, path, `
name: broken
handlers: [{name: h, actions: [jump]}]
steps:
  - {op: add, handler: ghost}
`)
		out, err := execute(t, dir, "check", path)
		if !errors.Is(err, ErrInvalidScenario) {
			t.Fatalf("check error = %v, want ErrInvalidScenario", err)
		}
		if !strings.Contains(out, "invalid action") || !strings.Contains(out, `unknown handler "ghost"`) {
			t.Errorf("unexpected output:\n%s", out)
		}
	})
}
