package analysis

import (
	"fmt"
	"strings"

	"github.com/turlang/tur/pkg/domain"
)

// StructuralError reports basic consistency problems: missing tapes,
// mismatched head counts, or transitions whose arity disagrees with the
// tape count.
type StructuralError struct {
	Msg string
}

func (e *StructuralError) Error() string {
	return e.Msg
}

// InvalidHeadError reports an initial head offset that falls outside its
// non-empty tape.
type InvalidHeadError struct {
	Tape     int
	Position int
}

func (e *InvalidHeadError) Error() string {
	return fmt.Sprintf("invalid head position: %d", e.Position)
}

// UnknownStartStateError reports an initial state that is not a rules key.
type UnknownStartStateError struct {
	State string
}

func (e *UnknownStartStateError) Error() string {
	return fmt.Sprintf("invalid start state: %s", e.State)
}

// UnreachableStatesError lists rules keys that no path from the initial
// state visits. States are sorted for deterministic output.
type UnreachableStatesError struct {
	States []string
}

func (e *UnreachableStatesError) Error() string {
	return fmt.Sprintf("unreachable states detected: [%s]", strings.Join(e.States, ", "))
}

// UnhandledSymbolsError lists initial tape symbols that no transition reads.
// Symbols are sorted and deduplicated.
type UnhandledSymbolsError struct {
	Symbols []rune
}

func (e *UnhandledSymbolsError) Error() string {
	return "initial tape contains symbols not handled by any transition: " +
		domain.FormatSymbols(e.Symbols)
}
