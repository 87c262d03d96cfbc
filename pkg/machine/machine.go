/*
Package machine executes validated programs step by step.

A Machine owns its mutable execution state (tapes, heads, current state,
step counter) exclusively and keeps a read-only reference to the
originating Program for rule lookup and reset. Programs that passed
pkg/analysis never make the machine fail: in Normal mode an unmatched
transition is an ordinary halt.
*/
package machine

import (
	"github.com/turlang/tur/pkg/domain"
)

// MaxSteps bounds Run as a termination safety net. Exhausting the budget is
// not a semantic halt; it only stops the loop.
const MaxSteps = 10000

// Outcome is the result of one step of execution.
type Outcome int

const (
	// Continue means the machine applied a transition and can keep going.
	Continue Outcome = iota
	// Halted means the machine stopped: a state without transitions, an
	// unmatched transition in Normal mode, or a strict-mode error.
	Halted
)

func (o Outcome) String() string {
	if o == Continue {
		return "continue"
	}
	return "halted"
}

// Machine is a deterministic multi-tape Turing machine interpreter.
// It is not safe for concurrent use; run one goroutine per Machine.
type Machine struct {
	program *domain.Program
	state   string
	tapes   [][]rune
	heads   []int
	steps   int
	halted  bool
	haltErr error
}

// New builds a machine positioned at the program's initial configuration.
// The program is only read, never written; it may back many machines at once.
func New(p *domain.Program) *Machine {
	m := &Machine{program: p}
	m.Reset()
	return m
}

// Reset restores the initial configuration from the program and zeroes the
// step counter, clearing any halt.
func (m *Machine) Reset() {
	m.state = m.program.InitialState
	m.tapes = make([][]rune, len(m.program.Tapes))
	for i, tape := range m.program.Tapes {
		m.tapes[i] = []rune(tape)
	}
	m.heads = append([]int(nil), m.program.Heads...)
	m.steps = 0
	m.halted = false
	m.haltErr = nil
}

// Step performs one unit of forward progress.
//
// It returns Continue after applying a transition, or Halted when the
// machine stops. The error is non-nil only for a strict-mode halt, in which
// case it is a *domain.UndefinedTransitionError. A halt is terminal: further
// Step calls return the same outcome until Reset.
func (m *Machine) Step() (Outcome, error) {
	if m.halted {
		return Halted, m.haltErr
	}

	transitions, ok := m.program.Rules[m.state]
	if !ok || len(transitions) == 0 {
		m.halted = true
		return Halted, nil
	}

	// Grow tapes so every head is on a materialized cell.
	for i, head := range m.heads {
		for head >= len(m.tapes[i]) {
			m.tapes[i] = append(m.tapes[i], m.program.Blank)
		}
	}

	symbols := m.CurrentSymbols()
	transition := matchTransition(transitions, symbols, m.program.Blank)
	if transition == nil {
		m.halted = true
		if m.program.Mode == domain.ModeStrict {
			m.haltErr = &domain.UndefinedTransitionError{State: m.state, Symbols: symbols}
		}
		return Halted, m.haltErr
	}

	// Apply to every tape conceptually simultaneously: all writes land
	// before any head moves matter, since each tape has its own head.
	for i := range m.tapes {
		write := transition.Write[i]
		if write == domain.WildcardBlank {
			write = m.program.Blank
		}
		m.tapes[i][m.heads[i]] = write

		switch transition.Directions[i] {
		case domain.Left:
			if m.heads[i] == 0 {
				// Left growth: a new blank cell appears at position 0 and
				// the head stays on it.
				m.tapes[i] = append([]rune{m.program.Blank}, m.tapes[i]...)
			} else {
				m.heads[i]--
			}
		case domain.Right:
			m.heads[i]++
			if m.heads[i] >= len(m.tapes[i]) {
				m.tapes[i] = append(m.tapes[i], m.program.Blank)
			}
		case domain.Stay:
		}
	}

	m.state = transition.NextState
	m.steps++
	return Continue, nil
}

// matchTransition scans transitions in declaration order and returns the
// first whose read list matches, or nil. A WildcardBlank read position
// matches exactly the program's blank symbol.
func matchTransition(transitions []domain.Transition, symbols []rune, blank rune) *domain.Transition {
	for i := range transitions {
		t := &transitions[i]
		if len(t.Read) != len(symbols) {
			continue
		}
		matched := true
		for j, want := range t.Read {
			got := symbols[j]
			if want == domain.WildcardBlank {
				if got != blank {
					matched = false
					break
				}
			} else if want != got {
				matched = false
				break
			}
		}
		if matched {
			return t
		}
	}
	return nil
}

// Run repeats Step until the machine halts or the MaxSteps budget runs out.
// A budget exhaustion returns Halted with a nil error but does not mark the
// machine halted; callers may keep stepping manually.
func (m *Machine) Run() (Outcome, error) {
	for i := 0; i < MaxSteps; i++ {
		outcome, err := m.Step()
		if outcome == Halted {
			return Halted, err
		}
	}
	return Halted, nil
}

// SetTapeContent overwrites one tape's content before execution. A
// WildcardBlank in the text is rewritten to the program's blank symbol.
func (m *Machine) SetTapeContent(index int, text string) error {
	if index < 0 || index >= len(m.tapes) {
		return domain.Validationf("tape index %d out of range (machine has %d tapes)",
			index, len(m.tapes))
	}
	tape := []rune(text)
	for i, symbol := range tape {
		if symbol == domain.WildcardBlank {
			tape[i] = m.program.Blank
		}
	}
	m.tapes[index] = tape
	return nil
}

// SetTapesContent overwrites the first len(texts) tapes. Supplying more
// inputs than the machine has tapes is an error.
func (m *Machine) SetTapesContent(texts []string) error {
	if len(texts) > len(m.tapes) {
		return domain.Validationf("%d tape inputs supplied but machine has %d tapes",
			len(texts), len(m.tapes))
	}
	for i, text := range texts {
		if err := m.SetTapeContent(i, text); err != nil {
			return err
		}
	}
	return nil
}

// State returns the current state identifier.
func (m *Machine) State() string { return m.state }

// StepCount returns the number of transitions applied since construction or
// the last Reset.
func (m *Machine) StepCount() int { return m.steps }

// Blank returns the program's blank symbol.
func (m *Machine) Blank() rune { return m.program.Blank }

// Program returns the immutable program backing this machine.
func (m *Machine) Program() *domain.Program { return m.program }

// Halted reports whether the machine has reached a terminal halt.
func (m *Machine) Halted() bool {
	if m.halted {
		return true
	}
	transitions, ok := m.program.Rules[m.state]
	return !ok || len(transitions) == 0
}

// HaltError returns the strict-mode halt reason, if any.
func (m *Machine) HaltError() error { return m.haltErr }

// Tapes returns a copy of the current tape contents.
func (m *Machine) Tapes() [][]rune {
	out := make([][]rune, len(m.tapes))
	for i, tape := range m.tapes {
		out[i] = append([]rune(nil), tape...)
	}
	return out
}

// TapeStrings returns the current tape contents as strings.
func (m *Machine) TapeStrings() []string {
	out := make([]string, len(m.tapes))
	for i, tape := range m.tapes {
		out[i] = string(tape)
	}
	return out
}

// Heads returns a copy of the current head offsets.
func (m *Machine) Heads() []int {
	return append([]int(nil), m.heads...)
}

// CurrentSymbols returns the symbol under each head, substituting the blank
// symbol for heads past the materialized end of their tape.
func (m *Machine) CurrentSymbols() []rune {
	symbols := make([]rune, len(m.heads))
	for i, head := range m.heads {
		if head < len(m.tapes[i]) {
			symbols[i] = m.tapes[i][head]
		} else {
			symbols[i] = m.program.Blank
		}
	}
	return symbols
}

// Snapshot captures the current execution state for persistence or display.
func (m *Machine) Snapshot() domain.Snapshot {
	return domain.Snapshot{
		State:  m.state,
		Tapes:  m.TapeStrings(),
		Heads:  m.Heads(),
		Steps:  m.steps,
		Halted: m.Halted(),
	}
}

// Restore resumes execution from a snapshot taken against the same program.
func (m *Machine) Restore(snap domain.Snapshot) error {
	if len(snap.Tapes) != len(m.program.Tapes) || len(snap.Heads) != len(snap.Tapes) {
		return &domain.InvalidStateError{State: snap.State}
	}
	m.state = snap.State
	m.tapes = make([][]rune, len(snap.Tapes))
	for i, tape := range snap.Tapes {
		m.tapes[i] = []rune(tape)
	}
	m.heads = append([]int(nil), snap.Heads...)
	m.steps = snap.Steps
	m.halted = snap.Halted
	m.haltErr = nil
	return nil
}
