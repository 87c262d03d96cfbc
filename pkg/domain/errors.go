package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSessionNotFound is returned when a session id cannot be found in a store.
var ErrSessionNotFound = errors.New("session not found")

// Position locates an error inside program source. Lines and columns are
// 1-based.
type Position struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

func (p Position) String() string {
	return fmt.Sprintf("line %d, column %d", p.Line, p.Column)
}

// ParseError reports malformed source. It always carries the position of the
// offending text so presentation layers can highlight it.
type ParseError struct {
	Pos Position
	Msg string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %s: %s", e.Pos, e.Msg)
}

// ValidationError reports a well-formed but illegal program. Detail, when
// set, carries one of the typed analysis errors for callers that need more
// than the message.
type ValidationError struct {
	Msg    string
	Detail error
}

func (e *ValidationError) Error() string {
	return "program validation error: " + e.Msg
}

func (e *ValidationError) Unwrap() error {
	return e.Detail
}

// Validation wraps a typed detail error into a ValidationError, reusing the
// detail's message.
func Validation(detail error) *ValidationError {
	return &ValidationError{Msg: detail.Error(), Detail: detail}
}

// Validationf builds a ValidationError from a format string, with no typed
// detail.
func Validationf(format string, args ...any) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// InvalidStateError reports an internal inconsistency: the machine reached a
// state that validation should have ruled out.
type InvalidStateError struct {
	State string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("invalid state: %s", e.State)
}

// UndefinedTransitionError is the strict-mode halt reason: the machine found
// no transition for the current state and the symbols under its heads.
type UndefinedTransitionError struct {
	State   string
	Symbols []rune
}

func (e *UndefinedTransitionError) Error() string {
	return fmt.Sprintf("no transition defined for state %s and symbols %s",
		e.State, FormatSymbols(e.Symbols))
}

// FormatSymbols renders a symbol list as ['a', 'b'] for error messages.
func FormatSymbols(symbols []rune) string {
	quoted := make([]string, len(symbols))
	for i, s := range symbols {
		quoted[i] = fmt.Sprintf("'%c'", s)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}
