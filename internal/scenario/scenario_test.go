package scenario

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_TOML(t *testing.T) {
	s, err := Load(filepath.Join("testdata", "form.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if s.Name != "form-submit" {
		t.Errorf("Name = %q", s.Name)
	}
	if len(s.Receivers) != 2 || len(s.Handlers) != 3 {
		t.Errorf("receivers = %v, handlers = %v", s.Receivers, s.HandlerNames())
	}
	if got := s.Steps[1].Options["tag"]; got != "analytics" {
		t.Errorf("steps[1].options.tag = %v, want analytics", got)
	}
	if !s.Steps[0].Once {
		t.Error("steps[0].once = false, want true")
	}
	if err := s.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestLoad_YAML(t *testing.T) {
	s, err := Load(filepath.Join("testdata", "reentrant.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if s.Name != "reentrant" {
		t.Errorf("Name = %q", s.Name)
	}
	if s.Steps[5].Expect == nil || len(*s.Steps[5].Expect) != 5 {
		t.Errorf("steps[5].expect = %v", s.Steps[5].Expect)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestLoad_NameFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "unnamed.yml")
	if err := os.WriteFile(path, []byte("steps: []\n"), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.Name != "unnamed" {
		t.Errorf("Name = %q, want unnamed", s.Name)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		ext     string
		wantErr error
	}{
		{"unsupported format", "{}", ".json", ErrUnsupportedFormat},
		{"unknown toml field", "name = \"x\"\ncolour = \"red\"\n", ".toml", ErrUnknownField},
		{"unknown nested toml field", "[[steps]]\nop = \"clear\"\nwhen = 3\n", ".toml", ErrUnknownField},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), tt.ext)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Parse() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestParse_RejectsUnknownYAMLField(t *testing.T) {
	_, err := Parse([]byte("name: x\ncolour: red\n"), ".yaml")
	if err == nil {
		t.Error("Parse() error = nil, want unknown field error")
	}
}

func TestParse_TOMLOptionsAreFreeForm(t *testing.T) {
	data := `
name = "opts"

[[handlers]]
name = "h"

[[steps]]
op = "add"
handler = "h"

[steps.options]
priority = 1
nested = { deep = true }
`
	s, err := Parse([]byte(data), ".toml")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if s.Steps[0].Options["priority"] != int64(1) {
		t.Errorf("options = %v", s.Steps[0].Options)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load() error = %v, want ErrNotExist", err)
	}
}
