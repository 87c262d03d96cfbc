/*
Package analysis validates parsed programs before execution.

Analyze runs a fixed sequence of checks and stops at the first failure, so
the result for a given bad program is deterministic. It never mutates the
program and is safe to call any number of times.
*/
package analysis

import (
	"fmt"
	"sort"

	"github.com/turlang/tur/pkg/domain"
)

// Analyze checks a program for structural and logical errors. The checks run
// in a fixed order: structure, head bounds, start state, reachability, tape
// symbol coverage. The returned error is a *domain.ValidationError wrapping
// one of the typed errors in this package, or nil when the program is valid.
func Analyze(p *domain.Program) error {
	checks := []func(*domain.Program) error{
		checkStructure,
		checkHeads,
		checkStartState,
		checkReachability,
		checkTapeSymbols,
	}
	for _, check := range checks {
		if err := check(p); err != nil {
			return domain.Validation(err)
		}
	}
	return nil
}

func checkStructure(p *domain.Program) error {
	if len(p.Tapes) == 0 {
		return &StructuralError{Msg: "no tapes defined"}
	}
	if len(p.Heads) != len(p.Tapes) {
		return &StructuralError{Msg: fmt.Sprintf(
			"number of head positions (%d) does not match number of tapes (%d)",
			len(p.Heads), len(p.Tapes))}
	}
	for state, transitions := range p.Rules {
		for _, t := range transitions {
			if len(t.Read) != len(p.Tapes) || len(t.Write) != len(p.Tapes) ||
				len(t.Directions) != len(p.Tapes) {
				return &StructuralError{Msg: fmt.Sprintf(
					"transition in state '%s' has inconsistent tape counts", state)}
			}
		}
	}
	return nil
}

func checkHeads(p *domain.Program) error {
	for i, head := range p.Heads {
		tape := []rune(p.Tapes[i])
		// Offset 0 on an empty tape is always valid; the machine grows the
		// tape on demand.
		if head >= len(tape) && len(tape) > 0 {
			return &InvalidHeadError{Tape: i, Position: head}
		}
	}
	return nil
}

func checkStartState(p *domain.Program) error {
	if _, ok := p.Rules[p.InitialState]; !ok {
		return &UnknownStartStateError{State: p.InitialState}
	}
	return nil
}

func checkReachability(p *domain.Program) error {
	visited := make(map[string]bool, len(p.Rules))
	queue := []string{p.InitialState}

	for len(queue) > 0 {
		state := queue[len(queue)-1]
		queue = queue[:len(queue)-1]
		if visited[state] {
			continue
		}
		visited[state] = true

		for _, t := range p.Rules[state] {
			if !visited[t.NextState] {
				queue = append(queue, t.NextState)
			}
		}
	}

	var unreachable []string
	for state := range p.Rules {
		// "halt" is exempt by virtue of never being required as a rules key;
		// a declared halt block is reachable only through transitions like
		// any other state.
		if !visited[state] {
			unreachable = append(unreachable, state)
		}
	}
	if len(unreachable) > 0 {
		sort.Strings(unreachable)
		return &UnreachableStatesError{States: unreachable}
	}
	return nil
}

func checkTapeSymbols(p *domain.Program) error {
	onTape := make(map[rune]bool)
	for _, tape := range p.Tapes {
		for _, symbol := range tape {
			onTape[symbol] = true
		}
	}
	if len(onTape) == 0 {
		return nil
	}

	handled := map[rune]bool{p.Blank: true}
	for _, transitions := range p.Rules {
		for _, t := range transitions {
			for _, symbol := range t.Read {
				handled[symbol] = true
			}
		}
	}

	var unhandled []rune
	for symbol := range onTape {
		if !handled[symbol] {
			unhandled = append(unhandled, symbol)
		}
	}
	if len(unhandled) > 0 {
		sort.Slice(unhandled, func(i, j int) bool { return unhandled[i] < unhandled[j] })
		return &UnhandledSymbolsError{Symbols: unhandled}
	}
	return nil
}
