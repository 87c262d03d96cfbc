package domain

// Snapshot is a serializable picture of a machine's mutable execution state.
// Together with the originating Program it is enough to resume execution,
// which is how sessions survive a round trip through a store.
type Snapshot struct {
	State  string   `json:"state"`
	Tapes  []string `json:"tapes"`
	Heads  []int    `json:"heads"`
	Steps  int      `json:"steps"`
	Halted bool     `json:"halted"`
}

// SymbolsUnderHeads returns the symbol under each head, substituting blank
// for heads that sit past the materialized end of their tape.
func (s Snapshot) SymbolsUnderHeads(blank rune) []rune {
	symbols := make([]rune, len(s.Heads))
	for i, head := range s.Heads {
		tape := []rune(s.Tapes[i])
		if head < len(tape) {
			symbols[i] = tape[head]
		} else {
			symbols[i] = blank
		}
	}
	return symbols
}
