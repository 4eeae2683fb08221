package core

import (
	"testing"

	"github.com/pkg/errors"
)

func TestIsShutdown(t *testing.T) {
	err := NewShutdownError("integrity gone")
	if !IsShutdown(err) {
		t.Error("IsShutdown() = false, want true")
	}
	if !IsShutdown(errors.Wrap(err, "handling request")) {
		t.Error("IsShutdown() on wrapped error = false, want true")
	}
	if IsShutdown(errors.New("lol")) {
		t.Error("IsShutdown() = true, want false")
	}
}

func TestValidationError(t *testing.T) {
	vErr := NewValidationError(errors.New("bad input"), FieldError{Field: "email", Error: "invalid"})
	if vErr.Error() != "bad input" {
		t.Errorf("Error() = %q, want %q", vErr.Error(), "bad input")
	}
	cast, ok := vErr.(*ValidationError)
	if !ok {
		t.Fatalf("NewValidationError() returned %T", vErr)
	}
	if len(cast.Fields) != 1 || cast.Fields[0].Field != "email" {
		t.Errorf("Fields = %+v", cast.Fields)
	}
}
