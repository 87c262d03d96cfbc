package runner

import "github.com/turlang/tur/pkg/domain"

// Command is one instruction read from the user or the driving process.
type Command struct {
	// Name is the verb: step, run, reset, tape, show, help or quit.
	Name string `json:"command"`

	// Count is the number of steps for "step". Zero means one.
	Count int `json:"count,omitempty"`

	// Tape and Text carry the arguments of "tape".
	Tape int    `json:"tape,omitempty"`
	Text string `json:"text,omitempty"`
}

// IOHandler defines the strategy for interacting with the user.
// This allows switching between Text (CLI/TUI) and JSON (Structured) modes.
type IOHandler interface {
	// Output presents the current execution state.
	Output(snap domain.Snapshot, blank rune) error

	// Notify delivers an out-of-band message: help text, errors,
	// confirmation of a command that does not change the tape view.
	Notify(message string) error

	// Input reads the next command. Returning io.EOF ends the loop.
	Input() (Command, error)
}
