package tur_test

import (
	"strings"
	"testing"

	"github.com/turlang/tur"
)

const invertSource = `name: invert
blank: .
tape: 1, 0, 1
rules:
  scan:
    1 -> 0, R, scan
    0 -> 1, R, scan
    _ -> S, halt
`

func TestFacade_RoundTrip(t *testing.T) {
	program, err := tur.Parse(invertSource)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	encoded, err := tur.Encode(program)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}

	decoded, err := tur.Decode(encoded)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if err := tur.Validate(decoded); err != nil {
		t.Fatalf("decoded program does not validate: %v", err)
	}

	// State names are resynthesized on decode, but behavior survives.
	if decoded.InitialState != "start" {
		t.Errorf("expected initial state 'start', got %q", decoded.InitialState)
	}

	m := tur.NewMachine(decoded)
	if _, err := m.Run(); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if got := m.TapeStrings()[0]; got != "010_" {
		t.Errorf("expected final tape %q, got %q", "010_", got)
	}
	if m.State() != "halt" {
		t.Errorf("expected machine to reach halt, got %q", m.State())
	}
}

func TestFacade_ValidateRejectsUnreachable(t *testing.T) {
	source := `name: broken
tape: a
rules:
  start:
    a -> R, halt
  orphan:
    a -> R, halt
`

	_, err := tur.Parse(source)
	if err == nil {
		t.Fatal("expected a validation error for the unreachable state")
	}
	if !strings.Contains(err.Error(), "orphan") {
		t.Errorf("error should name the unreachable state, got: %v", err)
	}
}

func TestFacade_Builtins(t *testing.T) {
	catalog, err := tur.Builtins()
	if err != nil {
		t.Fatalf("Builtins failed: %v", err)
	}

	names := catalog.List()
	if len(names) == 0 {
		t.Fatal("expected at least one built-in program")
	}

	for _, name := range names {
		program, err := catalog.Get(name)
		if err != nil {
			t.Errorf("Get(%q) failed: %v", name, err)
			continue
		}
		if err := tur.Validate(program); err != nil {
			t.Errorf("built-in %q does not validate: %v", name, err)
		}
	}
}
