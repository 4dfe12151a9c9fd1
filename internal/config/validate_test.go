package config

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{"valid simple", "click", nil},
		{"valid with dash", "on-click", nil},
		{"valid with underscore", "on_click", nil},
		{"valid with dot", "form.submit", nil},
		{"valid mixed", "Handler-1_a.b", nil},
		{"empty", "", ErrEmptyName},
		{"starts with dash", "-click", ErrInvalidName},
		{"starts with dot", ".click", ErrInvalidName},
		{"contains space", "on click", ErrInvalidName},
		{"contains at", "h@r", ErrInvalidName},
		{"contains colon", "add:x", ErrInvalidName},
		{"too long", strings.Repeat("a", MaxNameLength+1), ErrNameTooLong},
		{"max length", strings.Repeat("a", MaxNameLength), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateName("handler", tt.input)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateName(%q) = %v, want nil", tt.input, err)
				}
			} else {
				if err == nil {
					t.Errorf("ValidateName(%q) = nil, want error", tt.input)
				} else if !errors.Is(err, tt.wantErr) {
					t.Errorf("ValidateName(%q) = %v, want %v", tt.input, err, tt.wantErr)
				}
			}
		})
	}
}

func TestValidateLogLevel(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "DEBUG"} {
		if err := ValidateLogLevel(level); err != nil {
			t.Errorf("ValidateLogLevel(%q) = %v", level, err)
		}
	}
	if err := ValidateLogLevel("trace"); !errors.Is(err, ErrInvalidLogLevel) {
		t.Errorf("ValidateLogLevel(trace) = %v, want ErrInvalidLogLevel", err)
	}
}

func TestValidateWidth(t *testing.T) {
	tests := []struct {
		width   int
		wantErr bool
	}{
		{MinWidth - 1, true},
		{MinWidth, false},
		{80, false},
		{MaxWidth, false},
		{MaxWidth + 1, true},
	}

	for _, tt := range tests {
		err := ValidateWidth(tt.width)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateWidth(%d) = %v, wantErr %v", tt.width, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, ErrInvalidWidth) {
			t.Errorf("ValidateWidth(%d) = %v, want ErrInvalidWidth", tt.width, err)
		}
	}
}

func TestValidationError(t *testing.T) {
	err := &ValidationError{Field: "handler", Value: "a b", Message: "bad", Err: ErrInvalidName}
	if err.Error() != `handler: bad (got "a b")` {
		t.Errorf("Error() = %q", err.Error())
	}

	err = &ValidationError{Field: "handler", Message: "cannot be empty", Err: ErrEmptyName}
	if err.Error() != "handler: cannot be empty" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, ErrEmptyName) {
		t.Error("errors.Is should match ErrEmptyName")
	}
}
