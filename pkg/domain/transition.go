package domain

import (
	"encoding/json"
	"fmt"
)

// Transition is a single rule of the machine's control graph. It fires when
// every per-tape read symbol matches the symbol under the corresponding head.
// A WildcardBlank in a read position matches the program's blank symbol; in a
// write position it writes the blank symbol.
//
// A Transition is owned by the rule map of exactly one Program and is never
// mutated after parsing.
type Transition struct {
	Read       []rune
	Write      []rune
	Directions []Direction
	NextState  string
}

// Arity returns the number of tapes this transition addresses.
func (t Transition) Arity() int {
	return len(t.Read)
}

// Equal reports whether two transitions are identical rule for rule.
func (t Transition) Equal(o Transition) bool {
	if t.NextState != o.NextState || len(t.Read) != len(o.Read) ||
		len(t.Write) != len(o.Write) || len(t.Directions) != len(o.Directions) {
		return false
	}
	for i := range t.Read {
		if t.Read[i] != o.Read[i] {
			return false
		}
	}
	for i := range t.Write {
		if t.Write[i] != o.Write[i] {
			return false
		}
	}
	for i := range t.Directions {
		if t.Directions[i] != o.Directions[i] {
			return false
		}
	}
	return true
}

type transitionJSON struct {
	Read      []string    `json:"read"`
	Write     []string    `json:"write"`
	Direction []Direction `json:"directions"`
	NextState string      `json:"next_state"`
}

// MarshalJSON encodes symbols as single-character strings rather than raw
// code points.
func (t Transition) MarshalJSON() ([]byte, error) {
	return json.Marshal(transitionJSON{
		Read:      runesToStrings(t.Read),
		Write:     runesToStrings(t.Write),
		Direction: t.Directions,
		NextState: t.NextState,
	})
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (t *Transition) UnmarshalJSON(data []byte) error {
	var raw transitionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	read, err := stringsToRunes(raw.Read)
	if err != nil {
		return err
	}
	write, err := stringsToRunes(raw.Write)
	if err != nil {
		return err
	}
	t.Read = read
	t.Write = write
	t.Directions = raw.Direction
	t.NextState = raw.NextState
	return nil
}

func runesToStrings(rs []rune) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = string(r)
	}
	return out
}

func stringsToRunes(ss []string) ([]rune, error) {
	out := make([]rune, len(ss))
	for i, s := range ss {
		rs := []rune(s)
		if len(rs) != 1 {
			return nil, fmt.Errorf("symbol must be a single character, got %q", s)
		}
		out[i] = rs[0]
	}
	return out, nil
}
