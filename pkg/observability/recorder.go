// Package observability collects statistics about a machine execution,
// for profiling programs and for the --stats output of the CLI.
package observability

import (
	"sort"

	"github.com/turlang/tur/pkg/domain"
)

// Recorder accumulates statistics across the snapshots of one execution.
// Feed it every snapshot in step order; it is cheap enough to keep on for
// whole runs.
type Recorder struct {
	visits     map[string]int
	lastState  string
	steps      int
	maxCells   int
	haltedSeen bool
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{visits: make(map[string]int)}
}

// Observe folds one snapshot into the statistics.
func (r *Recorder) Observe(snap domain.Snapshot) {
	r.visits[snap.State]++
	r.lastState = snap.State
	r.steps = snap.Steps
	r.haltedSeen = snap.Halted

	cells := 0
	for _, tape := range snap.Tapes {
		cells += len([]rune(tape))
	}
	if cells > r.maxCells {
		r.maxCells = cells
	}
}

// StateVisit pairs a state with how often execution passed through it.
type StateVisit struct {
	State  string `json:"state"`
	Visits int    `json:"visits"`
}

// Summary is the aggregated view of one execution.
type Summary struct {
	Steps        int          `json:"steps"`
	FinalState   string       `json:"final_state"`
	Halted       bool         `json:"halted"`
	MaxTapeCells int          `json:"max_tape_cells"`
	StateVisits  []StateVisit `json:"state_visits"`
}

// Summary returns the statistics gathered so far. Visit counts come back
// sorted by frequency, most visited first, ties broken by name.
func (r *Recorder) Summary() Summary {
	visits := make([]StateVisit, 0, len(r.visits))
	for state, n := range r.visits {
		visits = append(visits, StateVisit{State: state, Visits: n})
	}
	sort.Slice(visits, func(i, j int) bool {
		if visits[i].Visits != visits[j].Visits {
			return visits[i].Visits > visits[j].Visits
		}
		return visits[i].State < visits[j].State
	})

	return Summary{
		Steps:        r.steps,
		FinalState:   r.lastState,
		Halted:       r.haltedSeen,
		MaxTapeCells: r.maxCells,
		StateVisits:  visits,
	}
}
