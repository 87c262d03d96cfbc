package domain

import (
	"encoding/json"
	"fmt"
)

// Program is a fully parsed Turing machine definition. It is created once, by
// the DSL parser or the codec decoder, and treated as immutable afterwards: a
// Program may be shared read-only across any number of machines without
// synchronization.
//
// Invariants (enforced by analysis.Analyze): len(Heads) == len(Tapes), every
// transition's read/write/directions have the tape count's length, and
// InitialState is a key of Rules.
type Program struct {
	Name         string
	Mode         Mode
	InitialState string
	Tapes        []string
	Heads        []int
	Blank        rune
	Rules        map[string][]Transition
}

// InitialTape returns the initial content of the first tape.
// Single-tape convenience.
func (p *Program) InitialTape() string {
	if len(p.Tapes) == 0 {
		return ""
	}
	return p.Tapes[0]
}

// HeadPosition returns the initial head offset of the first tape.
// Single-tape convenience.
func (p *Program) HeadPosition() int {
	if len(p.Heads) == 0 {
		return 0
	}
	return p.Heads[0]
}

// IsSingleTape reports whether the program drives exactly one tape.
func (p *Program) IsSingleTape() bool {
	return len(p.Tapes) == 1
}

// TapeCount returns the number of tapes the program drives.
func (p *Program) TapeCount() int {
	return len(p.Tapes)
}

// TransitionCount returns the total number of transitions across all states.
func (p *Program) TransitionCount() int {
	n := 0
	for _, ts := range p.Rules {
		n += len(ts)
	}
	return n
}

// Clone returns a deep copy. Useful for callers that need to derive a
// modified program without touching a shared one.
func (p *Program) Clone() *Program {
	cp := *p
	cp.Tapes = append([]string(nil), p.Tapes...)
	cp.Heads = append([]int(nil), p.Heads...)
	cp.Rules = make(map[string][]Transition, len(p.Rules))
	for state, ts := range p.Rules {
		cloned := make([]Transition, len(ts))
		for i, t := range ts {
			cloned[i] = Transition{
				Read:       append([]rune(nil), t.Read...),
				Write:      append([]rune(nil), t.Write...),
				Directions: append([]Direction(nil), t.Directions...),
				NextState:  t.NextState,
			}
		}
		cp.Rules[state] = cloned
	}
	return &cp
}

type programJSON struct {
	Name         string                  `json:"name"`
	Mode         Mode                    `json:"mode"`
	InitialState string                  `json:"initial_state"`
	Tapes        []string                `json:"tapes"`
	Heads        []int                   `json:"heads"`
	Blank        string                  `json:"blank"`
	Rules        map[string][]Transition `json:"rules"`
}

// MarshalJSON encodes the blank symbol as a one-character string.
func (p Program) MarshalJSON() ([]byte, error) {
	return json.Marshal(programJSON{
		Name:         p.Name,
		Mode:         p.Mode,
		InitialState: p.InitialState,
		Tapes:        p.Tapes,
		Heads:        p.Heads,
		Blank:        string(p.Blank),
		Rules:        p.Rules,
	})
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (p *Program) UnmarshalJSON(data []byte) error {
	var raw programJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	blank := []rune(raw.Blank)
	if len(blank) != 1 {
		return fmt.Errorf("blank must be a single character, got %q", raw.Blank)
	}
	p.Name = raw.Name
	p.Mode = raw.Mode
	p.InitialState = raw.InitialState
	p.Tapes = raw.Tapes
	p.Heads = raw.Heads
	p.Blank = blank[0]
	p.Rules = raw.Rules
	return nil
}
