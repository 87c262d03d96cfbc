package domain

import "time"

// Session is a persistable execution: the program being run plus the machine
// state it has reached. Stores serialize it as JSON, so everything here must
// survive a marshal round trip.
type Session struct {
	ID        string    `json:"id"`
	Program   *Program  `json:"program,omitempty"`
	Snapshot  Snapshot  `json:"snapshot"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Sealed carries an opaque encrypted payload when a store middleware
	// encrypts sessions at rest. An envelope session has Sealed set and no
	// Program.
	Sealed string `json:"sealed,omitempty"`
}

// NewSession starts a session at the program's initial configuration.
func NewSession(id string, p *Program) *Session {
	now := time.Now().UTC()
	return &Session{
		ID:      id,
		Program: p,
		Snapshot: Snapshot{
			State: p.InitialState,
			Tapes: append([]string(nil), p.Tapes...),
			Heads: append([]int(nil), p.Heads...),
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch updates the modification timestamp.
func (s *Session) Touch() {
	s.UpdatedAt = time.Now().UTC()
}
