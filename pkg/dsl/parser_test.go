package dsl_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turlang/tur/pkg/domain"
	"github.com/turlang/tur/pkg/dsl"
)

func TestParseMinimalProgram(t *testing.T) {
	source := `name: T
tape: a
rules:
  start:
    a -> b, R, halt
`
	p, err := dsl.Parse(source)
	require.NoError(t, err)

	assert.Equal(t, "T", p.Name)
	assert.Equal(t, "start", p.InitialState)
	assert.Equal(t, []string{"a"}, p.Tapes)
	assert.Equal(t, []int{0}, p.Heads)
	assert.Equal(t, rune(domain.DefaultBlank), p.Blank)
	assert.Equal(t, domain.ModeNormal, p.Mode)

	require.Len(t, p.Rules["start"], 1)
	tr := p.Rules["start"][0]
	assert.Equal(t, []rune{'a'}, tr.Read)
	assert.Equal(t, []rune{'b'}, tr.Write)
	assert.Equal(t, []domain.Direction{domain.Right}, tr.Directions)
	assert.Equal(t, domain.HaltState, tr.NextState)
}

func TestParseTransitionShorthands(t *testing.T) {
	source := `name: shorthands
tape: a, b, c
rules:
  start:
    a -> x, R, start
    b -> R, start
    c, R, halt
`
	p, err := dsl.Parse(source)
	require.NoError(t, err)
	require.Len(t, p.Rules["start"], 3)

	// Explicit write.
	assert.Equal(t, []rune{'x'}, p.Rules["start"][0].Write)
	// Omitted write preserves the read symbol.
	assert.Equal(t, []rune{'b'}, p.Rules["start"][1].Write)
	// Arrow-free form.
	assert.Equal(t, []rune{'c'}, p.Rules["start"][2].Write)
	assert.Equal(t, domain.HaltState, p.Rules["start"][2].NextState)
}

func TestParseFirstStateIsInitial(t *testing.T) {
	source := `name: order
tape: a
rules:
  begin:
    a -> b, R, other
  other:
    b -> a, L, begin
`
	p, err := dsl.Parse(source)
	require.NoError(t, err)
	assert.Equal(t, "begin", p.InitialState)
}

func TestParseMultiTapeProgram(t *testing.T) {
	source := `name: copier
tapes:
  [a, b]
  [_, _]
heads: [0, 0]
rules:
  copy:
    [a, _] -> [a, a], [R, R], copy
    [b, _] -> [b, b], [R, R], copy
    [_, _] -> [_, _], [-, -], halt
`
	p, err := dsl.Parse(source)
	require.NoError(t, err)

	assert.Equal(t, 2, p.TapeCount())
	assert.Equal(t, []int{0, 0}, p.Heads)
	// Tape wildcards resolve to the blank symbol.
	assert.Equal(t, "  ", p.Tapes[1])

	require.Len(t, p.Rules["copy"], 3)
	tr := p.Rules["copy"][0]
	assert.Equal(t, []rune{'a', domain.WildcardBlank}, tr.Read)
	assert.Equal(t, []rune{'a', 'a'}, tr.Write)
	assert.Equal(t, []domain.Direction{domain.Right, domain.Right}, tr.Directions)
}

func TestParseBlankAfterTape(t *testing.T) {
	// The blank declaration may follow the tape section; wildcards still
	// resolve against it.
	source := `name: late-blank
tape: a, _, a
blank: '.'
rules:
  start:
    a -> a, R, start
`
	p, err := dsl.Parse(source)
	require.NoError(t, err)
	assert.Equal(t, '.', p.Blank)
	assert.Equal(t, "a.a", p.Tapes[0])
}

func TestParseQuotedSymbols(t *testing.T) {
	source := `name: quoted
blank: '_'
tape: 'a', ','
rules:
  start:
    'a' -> ',', R, halt
    ',' -> R, halt
`
	// A quoted comma cannot survive splitList; the parser rejects the
	// fragmentary token rather than guessing.
	_, err := dsl.Parse(source)
	require.Error(t, err)
}

func TestParseModeSection(t *testing.T) {
	source := `name: strict-run
mode: strict
tape: a
rules:
  start:
    a -> b, R, halt
`
	p, err := dsl.Parse(source)
	require.NoError(t, err)
	assert.Equal(t, domain.ModeStrict, p.Mode)
}

func TestParseHeadSection(t *testing.T) {
	source := `name: offset
tape: a, b, c
head: 2
rules:
  start:
    c -> c, L, halt
    a -> a, -, halt
    b -> b, -, halt
`
	p, err := dsl.Parse(source)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, p.Heads)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"duplicate section", "name: a\nname: b\ntape: a\nrules:\n  s:\n    a -> a, R, halt\n"},
		{"tape and tapes", "name: a\ntape: a\ntapes:\n  [a]\nrules:\n  s:\n    a -> a, R, halt\n"},
		{"head and heads", "name: a\ntape: a\nhead: 0\nheads: [0]\nrules:\n  s:\n    a -> a, R, halt\n"},
		{"unknown section", "name: a\nbogus: x\ntape: a\nrules:\n  s:\n    a -> a, R, halt\n"},
		{"invalid symbol", "name: a\ntape: ab\nrules:\n  s:\n    a -> a, R, halt\n"},
		{"invalid direction", "name: a\ntape: a\nrules:\n  s:\n    a -> a, U, halt\n"},
		{"missing next state", "name: a\ntape: a\nrules:\n  s:\n    a -> a, R,\n"},
		{"duplicate state block", "name: a\ntape: a\nrules:\n  s:\n    a -> a, R, halt\n  s:\n    a -> a, L, halt\n"},
		{"transition outside state", "name: a\ntape: a\nrules:\n  a -> a, R, halt\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := dsl.Parse(tt.source)
			require.Error(t, err)

			var perr *domain.ParseError
			require.True(t, errors.As(err, &perr), "expected *domain.ParseError, got %v", err)
			assert.Greater(t, perr.Pos.Line, 0)
		})
	}
}

func TestParseMissingSections(t *testing.T) {
	tests := []struct {
		name   string
		source string
		msg    string
	}{
		{"no name", "tape: a\nrules:\n  s:\n    a -> a, R, halt\n", "missing 'name' section"},
		{"no tape", "name: a\nrules:\n  s:\n    a -> a, R, halt\n", "missing 'tape' or 'tapes' section"},
		{"no rules", "name: a\ntape: a\n", "missing 'rules' section"},
		{"empty rules", "name: a\ntape: a\nrules:\n", "'rules' section declares no states"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := dsl.Parse(tt.source)
			require.Error(t, err)

			var verr *domain.ValidationError
			require.True(t, errors.As(err, &verr), "expected *domain.ValidationError, got %v", err)
			assert.Contains(t, verr.Error(), tt.msg)
		})
	}
}

func TestParseRunsAnalysis(t *testing.T) {
	source := `name: orphaned
tape: a
rules:
  start:
    a -> a, R, halt
  orphan:
    a -> a, R, halt
`
	_, err := dsl.Parse(source)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unreachable states")
}
