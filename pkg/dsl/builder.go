package dsl

import (
	"strings"

	"github.com/turlang/tur/pkg/analysis"
	"github.com/turlang/tur/pkg/domain"
)

// Builder assembles a program programmatically. The zero value is not
// usable; create one with NewBuilder.
type Builder struct {
	name    string
	mode    domain.Mode
	blank   rune
	tapes   []string
	heads   []int
	order   []string
	states  map[string]*StateBuilder
	initial string
}

// NewBuilder creates a builder for a program with the given name.
func NewBuilder(name string) *Builder {
	return &Builder{
		name:   name,
		blank:  domain.DefaultBlank,
		states: make(map[string]*StateBuilder),
	}
}

// Blank sets the blank symbol. Defaults to a space.
func (b *Builder) Blank(r rune) *Builder {
	b.blank = r
	return b
}

// Mode sets the undefined-transition behavior. Defaults to normal.
func (b *Builder) Mode(m domain.Mode) *Builder {
	b.mode = m
	return b
}

// Tape appends a tape with its initial content and head position. A
// program built without any Tape call gets a single empty tape.
func (b *Builder) Tape(content string, head int) *Builder {
	b.tapes = append(b.tapes, content)
	b.heads = append(b.heads, head)
	return b
}

// Initial overrides the initial state. Without it, the first state
// declared is the initial one, like in the textual format.
func (b *Builder) Initial(state string) *Builder {
	b.initial = state
	return b
}

// State declares a state and returns its builder. Declaring the same
// state twice returns the existing builder, so rules can be added in
// several passes.
func (b *Builder) State(name string) *StateBuilder {
	if sb, ok := b.states[name]; ok {
		return sb
	}
	sb := &StateBuilder{name: name, builder: b}
	b.states[name] = sb
	b.order = append(b.order, name)
	return sb
}

// Build assembles the program and runs the full analysis on it.
func (b *Builder) Build() (*domain.Program, error) {
	tapes := b.tapes
	heads := b.heads
	if len(tapes) == 0 {
		tapes = []string{""}
		heads = []int{0}
	}
	// Tape wildcards resolve to the configured blank, as in sources.
	resolved := make([]string, len(tapes))
	for i, t := range tapes {
		resolved[i] = strings.ReplaceAll(t, string(domain.WildcardBlank), string(b.blank))
	}

	initial := b.initial
	if initial == "" && len(b.order) > 0 {
		initial = b.order[0]
	}

	rules := make(map[string][]domain.Transition, len(b.states))
	for _, name := range b.order {
		rules[name] = append([]domain.Transition(nil), b.states[name].rules...)
	}

	p := &domain.Program{
		Name:         b.name,
		Mode:         b.mode,
		InitialState: initial,
		Tapes:        resolved,
		Heads:        heads,
		Blank:        b.blank,
		Rules:        rules,
	}
	if err := analysis.Analyze(p); err != nil {
		return nil, err
	}
	return p, nil
}

// StateBuilder collects the transitions of one state.
type StateBuilder struct {
	name    string
	builder *Builder
	rules   []domain.Transition
}

// On starts a transition that fires when the given symbols sit under the
// heads, one symbol per tape.
func (s *StateBuilder) On(symbols ...rune) *RuleBuilder {
	return &RuleBuilder{
		state:      s,
		read:       symbols,
		directions: make([]domain.Direction, len(symbols)),
	}
}

// State forwards to the parent builder, so state declarations chain.
func (s *StateBuilder) State(name string) *StateBuilder {
	return s.builder.State(name)
}

// Build forwards to the parent builder.
func (s *StateBuilder) Build() (*domain.Program, error) {
	return s.builder.Build()
}

// RuleBuilder configures one transition. Write defaults to the read
// symbols and movement defaults to Stay; To finalizes the rule.
type RuleBuilder struct {
	state      *StateBuilder
	read       []rune
	write      []rune
	directions []domain.Direction
}

// Write sets the symbols written back, one per tape.
func (r *RuleBuilder) Write(symbols ...rune) *RuleBuilder {
	r.write = symbols
	return r
}

// Move sets the head movement for every tape.
func (r *RuleBuilder) Move(directions ...domain.Direction) *RuleBuilder {
	r.directions = directions
	return r
}

// Left moves the single head left. Single-tape convenience.
func (r *RuleBuilder) Left() *RuleBuilder {
	return r.Move(domain.Left)
}

// Right moves the single head right. Single-tape convenience.
func (r *RuleBuilder) Right() *RuleBuilder {
	return r.Move(domain.Right)
}

// Stay keeps the single head in place. Single-tape convenience.
func (r *RuleBuilder) Stay() *RuleBuilder {
	return r.Move(domain.Stay)
}

// To sets the target state and appends the finished transition to the
// source state.
func (r *RuleBuilder) To(next string) *StateBuilder {
	write := r.write
	if write == nil {
		write = append([]rune(nil), r.read...)
	}
	r.state.rules = append(r.state.rules, domain.Transition{
		Read:       r.read,
		Write:      write,
		Directions: r.directions,
		NextState:  next,
	})
	return r.state
}
