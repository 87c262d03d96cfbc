package domain

import (
	"encoding/json"
	"fmt"
)

// Direction tells a tape head where to move after a transition fires.
type Direction int

const (
	Left Direction = iota
	Right
	Stay
)

// ParseDirection accepts both the arrow form ("<", ">", "-") and the
// letter form ("L", "R", "S") used in program sources.
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "<", "L":
		return Left, nil
	case ">", "R":
		return Right, nil
	case "-", "S":
		return Stay, nil
	}
	return Stay, fmt.Errorf("unsupported direction: %s", s)
}

func (d Direction) String() string {
	switch d {
	case Left:
		return "L"
	case Right:
		return "R"
	case Stay:
		return "S"
	}
	return fmt.Sprintf("Direction(%d)", int(d))
}

// MarshalJSON encodes the direction as its letter form.
func (d Direction) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

// UnmarshalJSON decodes either letter or arrow form.
func (d *Direction) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseDirection(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
