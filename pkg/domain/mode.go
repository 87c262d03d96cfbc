package domain

import (
	"encoding/json"
	"fmt"
)

// Mode governs what happens when no transition matches the symbols under
// the heads. In Normal mode an undefined transition is an ordinary halt,
// matching classical automata theory. In Strict mode it halts with an
// UndefinedTransitionError.
type Mode int

const (
	ModeNormal Mode = iota
	ModeStrict
)

// ParseMode reads the value of a "mode:" section.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "normal":
		return ModeNormal, nil
	case "strict":
		return ModeStrict, nil
	}
	return ModeNormal, fmt.Errorf("unsupported mode: %s", s)
}

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeStrict:
		return "strict"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// MarshalJSON encodes the mode as its section value.
func (m Mode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON decodes a mode section value.
func (m *Mode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseMode(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
