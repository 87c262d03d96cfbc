/*
Package tur is a multi-tape Turing machine toolkit: a small text DSL for
writing programs, a validating parser, a deterministic step interpreter, and
a canonical single-tape wire encoding.

# Concept

A program declares its tapes, an optional blank symbol and execution mode,
and a set of state blocks with transition rules. The parser turns source
text into an immutable Program; the analyzer rejects programs with
unreachable states, unhandled tape symbols or structural mistakes before
they ever run; the machine executes one transition per step, growing tapes
on demand.

# Key Features

  - Deterministic execution: transitions match in declaration order, so a
    program behaves the same on every run.
  - Multi-tape support with simultaneous per-tape read/write/move.
  - Strict mode: an unmatched transition halts with a typed error instead
    of silently stopping.
  - Session persistence: runs can be stopped and resumed through a
    pluggable store (in-memory or Redis).

# Usage

	package main

	import (
		"fmt"
		"log"

		"github.com/turlang/tur"
	)

	func main() {
		program, err := tur.Parse(`name: demo
	tape: a
	rules:
	  start:
	    a -> b, R, halt
	`)
		if err != nil {
			log.Fatal(err)
		}

		m := tur.NewMachine(program)
		if _, err := m.Run(); err != nil {
			log.Fatal(err)
		}
		fmt.Println(m.TapeStrings(), m.StepCount())
	}

The cmd/tur binary wraps the same operations for the command line, and the
pkg/adapters tree exposes them over HTTP and MCP.
*/
package tur
