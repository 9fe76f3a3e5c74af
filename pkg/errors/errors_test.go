package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeInvalidGraph, "duplicate node id %q", "a")

	if err.Code != ErrCodeInvalidGraph {
		t.Errorf("Code = %v, want %v", err.Code, ErrCodeInvalidGraph)
	}

	want := `INVALID_GRAPH: duplicate node id "a"`
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}
}

func TestWrap(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := Wrap(ErrCodeInvalidInput, cause, "decode graph.json")

	if errors.Unwrap(err) != cause {
		t.Errorf("Unwrap() = %v, want %v", errors.Unwrap(err), cause)
	}
	if !errors.Is(err, cause) {
		t.Error("errors.Is(err, cause) = false, want true")
	}
	if !strings.HasSuffix(err.Error(), "unexpected EOF") {
		t.Errorf("Error() = %q, want cause suffix", err.Error())
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{"matching code", New(ErrCodeInvalidConfig, "x"), ErrCodeInvalidConfig, true},
		{"different code", New(ErrCodeInvalidConfig, "x"), ErrCodeInvalidRules, false},
		{"wrapped by fmt", fmt.Errorf("load: %w", New(ErrCodeFileNotFound, "x")), ErrCodeFileNotFound, true},
		{"plain error", errors.New("x"), ErrCodeInternal, false},
		{"nested code", Wrap(ErrCodeInvalidRules, New(ErrCodeInvalidInput, "category"), "rule 2"), ErrCodeInvalidInput, true},
		{"nested outer code", Wrap(ErrCodeInvalidRules, New(ErrCodeInvalidInput, "category"), "rule 2"), ErrCodeInvalidRules, true},
		{"nil", nil, ErrCodeInternal, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.want {
				t.Errorf("Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetCode(t *testing.T) {
	if got := GetCode(fmt.Errorf("ctx: %w", New(ErrCodeRenderFailed, "png"))); got != ErrCodeRenderFailed {
		t.Errorf("GetCode() = %q, want %q", got, ErrCodeRenderFailed)
	}
	if got := GetCode(errors.New("plain")); got != "" {
		t.Errorf("GetCode(plain) = %q, want empty", got)
	}
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{New(ErrCodeInvalidFormat, "invalid format: bmp"), "invalid format: bmp"},
		{Wrap(ErrCodeInvalidInput, errors.New("EOF"), "decode graph"), "decode graph: EOF"},
		{errors.New("plain"), "plain"},
		{Wrap(ErrCodeInvalidRules, New(ErrCodeInvalidInput, "unknown category"), "rule 2"), "rule 2: unknown category"},
	}
	for _, tt := range tests {
		if got := UserMessage(tt.err); got != tt.want {
			t.Errorf("UserMessage() = %q, want %q", got, tt.want)
		}
	}
}

func TestValidateNodeID(t *testing.T) {
	tests := []struct {
		id      string
		wantErr bool
	}{
		{"src/main.py", false},
		{"my-repo", false},
		{"", true},
		{"   ", true},
		{"bad\x00id", true},
		{strings.Repeat("a", maxIDLength+1), true},
	}
	for _, tt := range tests {
		err := ValidateNodeID(tt.id)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateNodeID(%q) error = %v, wantErr %v", tt.id, err, tt.wantErr)
		}
		if err != nil && !Is(err, ErrCodeInvalidGraph) {
			t.Errorf("ValidateNodeID(%q) code = %q, want %q", tt.id, GetCode(err), ErrCodeInvalidGraph)
		}
	}
}

func TestValidateFormat(t *testing.T) {
	allowed := []string{"png", "svg"}
	if err := ValidateFormat("png", allowed); err != nil {
		t.Errorf("ValidateFormat(png) = %v", err)
	}
	if err := ValidateFormat("PNG", allowed); !Is(err, ErrCodeInvalidFormat) {
		t.Errorf("ValidateFormat(PNG) = %v, want INVALID_FORMAT", err)
	}
}

func TestHint(t *testing.T) {
	if Hint(New(ErrCodeInvalidFormat, "bmp")) == "" {
		t.Error("Hint(INVALID_FORMAT) should suggest valid formats")
	}
	if got := Hint(New(ErrCodeInternal, "boom")); got != "" {
		t.Errorf("Hint(INTERNAL_ERROR) = %q, want empty", got)
	}
	if got := Hint(errors.New("plain")); got != "" {
		t.Errorf("Hint(plain) = %q, want empty", got)
	}
}
