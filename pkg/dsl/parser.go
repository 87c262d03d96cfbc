/*
Package dsl parses the textual Turing machine language into a validated
domain.Program.

The parser is a hand-written, line-oriented recursive descent. Syntax is
checked first; section-uniqueness and defaulting rules form a second pass;
the result is then handed to pkg/analysis, so a Program returned by Parse
is always safe to execute. Every error carries the position of the
offending source text.
*/
package dsl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/turlang/tur/pkg/analysis"
	"github.com/turlang/tur/pkg/domain"
)

// Parse converts program source into a validated Program. It returns a
// *domain.ParseError for malformed source and a *domain.ValidationError
// (from pkg/analysis or the section checks) for well-formed but illegal
// programs.
func Parse(source string) (*domain.Program, error) {
	p := &parser{lines: scan(source)}
	program, err := p.parseProgram()
	if err != nil {
		return nil, err
	}
	if err := analysis.Analyze(program); err != nil {
		return nil, err
	}
	return program, nil
}

type parser struct {
	lines []line
	pos   int
}

// sectionNames are the legal top-level sections.
var sectionNames = map[string]bool{
	"name": true, "blank": true, "mode": true,
	"tape": true, "tapes": true,
	"head": true, "heads": true,
	"rules": true,
}

func (p *parser) parseProgram() (*domain.Program, error) {
	var (
		name      *string
		blank     *rune
		mode      *domain.Mode
		tapes     [][]rune
		wildcards [][]int
		tapesSet  bool
		heads     []int
		headsSet  bool
		rules     map[string][]domain.Transition
		initial   string
		rulesSet  bool
	)
	seen := make(map[string]line)

	for p.pos < len(p.lines) {
		l := p.lines[p.pos]
		p.pos++

		key, rest, err := splitSection(l)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[key]; dup {
			return nil, parseErr(l, 1, `duplicate "%s:" declaration`, key)
		}
		seen[key] = l

		switch key {
		case "name":
			if rest == "" {
				return nil, parseErr(l, 1, "'name' section is empty")
			}
			name = &rest
		case "blank":
			symbol, err := parseSymbol(l, rest)
			if err != nil {
				return nil, err
			}
			blank = &symbol
		case "mode":
			m, err := domain.ParseMode(rest)
			if err != nil {
				return nil, parseErr(l, 1, "%v", err)
			}
			mode = &m
		case "tape", "tapes":
			if tapesSet {
				return nil, parseErr(l, 1, "only one of 'tape' or 'tapes' is allowed")
			}
			if key == "tape" {
				tape, wild, err := p.parseTapeLine(l, rest)
				if err != nil {
					return nil, err
				}
				tapes, wildcards = [][]rune{tape}, [][]int{wild}
			} else {
				tapes, wildcards, err = p.parseTapesBody(l, rest)
				if err != nil {
					return nil, err
				}
			}
			tapesSet = true
		case "head", "heads":
			if headsSet {
				return nil, parseErr(l, 1, "only one of 'head' or 'heads' is allowed")
			}
			if key == "head" {
				pos, err := parseIndex(l, rest)
				if err != nil {
					return nil, err
				}
				heads = []int{pos}
			} else {
				heads, err = parseHeadList(l, rest)
				if err != nil {
					return nil, err
				}
			}
			headsSet = true
		case "rules":
			if rest != "" {
				return nil, parseErr(l, 1, "'rules' takes no value on the section line")
			}
			rules, initial, err = p.parseRulesBody(l)
			if err != nil {
				return nil, err
			}
			rulesSet = true
		}
	}

	if name == nil {
		return nil, domain.Validationf("missing 'name' section")
	}
	if !tapesSet {
		return nil, domain.Validationf("missing 'tape' or 'tapes' section")
	}
	if !rulesSet {
		return nil, domain.Validationf("missing 'rules' section")
	}
	if initial == "" {
		return nil, domain.Validationf("'rules' section declares no states")
	}

	resolvedBlank := rune(domain.DefaultBlank)
	if blank != nil {
		resolvedBlank = *blank
	}
	// Tape wildcards are rewritten only now: the blank declaration may
	// appear after the tape section in source.
	for ti, positions := range wildcards {
		for _, pi := range positions {
			tapes[ti][pi] = resolvedBlank
		}
	}

	if !headsSet {
		heads = make([]int, len(tapes))
	}

	resolvedMode := domain.ModeNormal
	if mode != nil {
		resolvedMode = *mode
	}

	tapeStrings := make([]string, len(tapes))
	for i, tape := range tapes {
		tapeStrings[i] = string(tape)
	}

	return &domain.Program{
		Name:         *name,
		Mode:         resolvedMode,
		InitialState: initial,
		Tapes:        tapeStrings,
		Heads:        heads,
		Blank:        resolvedBlank,
		Rules:        rules,
	}, nil
}

// splitSection splits a top-level "key: rest" line.
func splitSection(l line) (string, string, error) {
	if l.indent != 0 {
		return "", "", parseErr(l, 1, "unexpected indented line outside a section body")
	}
	idx := strings.IndexByte(l.text, ':')
	if idx < 0 {
		return "", "", parseErr(l, 1, "expected a 'section:' declaration")
	}
	key := strings.TrimSpace(l.text[:idx])
	if !sectionNames[key] {
		return "", "", parseErr(l, 1, "unknown section: %q", key)
	}
	return key, strings.TrimSpace(l.text[idx+1:]), nil
}

// parseTapeLine parses the single-tape form: comma-separated symbols.
// Wildcard positions are returned for later rewriting.
func (p *parser) parseTapeLine(l line, rest string) ([]rune, []int, error) {
	if rest == "" {
		return nil, nil, parseErr(l, 1, "'tape' section is empty")
	}
	var tape []rune
	var wild []int
	for _, token := range splitList(rest) {
		symbol, err := parseSymbol(l, token)
		if err != nil {
			return nil, nil, err
		}
		if symbol == domain.WildcardBlank {
			wild = append(wild, len(tape))
		}
		tape = append(tape, symbol)
	}
	return tape, wild, nil
}

// parseTapesBody parses the multi-tape form: one bracketed symbol list per
// indented line.
func (p *parser) parseTapesBody(header line, rest string) ([][]rune, [][]int, error) {
	if rest != "" {
		return nil, nil, parseErr(header, 1, "'tapes' takes no value on the section line")
	}
	var tapes [][]rune
	var wildcards [][]int
	for p.pos < len(p.lines) && p.lines[p.pos].indent > header.indent {
		l := p.lines[p.pos]
		p.pos++
		inner, ok := stripBrackets(l.text)
		if !ok {
			return nil, nil, parseErr(l, 1, "expected a bracketed symbol list, got %q", l.text)
		}
		var tape []rune
		var wild []int
		if strings.TrimSpace(inner) != "" {
			for _, token := range splitList(inner) {
				symbol, err := parseSymbol(l, token)
				if err != nil {
					return nil, nil, err
				}
				if symbol == domain.WildcardBlank {
					wild = append(wild, len(tape))
				}
				tape = append(tape, symbol)
			}
		}
		tapes = append(tapes, tape)
		wildcards = append(wildcards, wild)
	}
	return tapes, wildcards, nil
}

// parseRulesBody parses state blocks. The first state encountered becomes
// the program's initial state.
func (p *parser) parseRulesBody(header line) (map[string][]domain.Transition, string, error) {
	rules := make(map[string][]domain.Transition)
	initial := ""
	current := ""

	for p.pos < len(p.lines) && p.lines[p.pos].indent > header.indent {
		l := p.lines[p.pos]
		p.pos++

		if state, ok := stateHeader(l.text); ok {
			if _, dup := rules[state]; dup {
				return nil, "", parseErr(l, 1, "duplicate transition rule: %s", state)
			}
			rules[state] = []domain.Transition{}
			if initial == "" {
				initial = state
			}
			current = state
			continue
		}

		if current == "" {
			return nil, "", parseErr(l, 1, "transition line outside a state block")
		}
		t, err := parseTransitionLine(l)
		if err != nil {
			return nil, "", err
		}
		rules[current] = append(rules[current], t)
	}
	return rules, initial, nil
}

// stateHeader recognizes "state:" lines inside the rules section. A header
// ends with a colon and contains none of the transition punctuation.
func stateHeader(text string) (string, bool) {
	if !strings.HasSuffix(text, ":") {
		return "", false
	}
	name := strings.TrimSpace(text[:len(text)-1])
	if name == "" || strings.ContainsAny(name, ",[]>'") {
		return "", false
	}
	return name, true
}

func parseTransitionLine(l line) (domain.Transition, error) {
	if strings.HasPrefix(l.text, "[") {
		return parseMultiTapeAction(l)
	}
	return parseSingleTapeAction(l)
}

// parseSingleTapeAction handles both shorthand shapes:
//
//	read -> write, direction, next
//	read -> direction, next
//	read, direction, next
//
// An omitted write defaults to the read symbol (self-preserving write).
func parseSingleTapeAction(l line) (domain.Transition, error) {
	var readToken string
	var tail []string

	if idx := strings.Index(l.text, "->"); idx >= 0 {
		readToken = strings.TrimSpace(l.text[:idx])
		tail = splitList(l.text[idx+2:])
	} else {
		parts := splitList(l.text)
		if len(parts) != 3 {
			return domain.Transition{}, parseErr(l, 1,
				"expected 'read, direction, next_state', got %q", l.text)
		}
		readToken, tail = parts[0], parts[1:]
	}

	read, err := parseSymbol(l, readToken)
	if err != nil {
		return domain.Transition{}, err
	}

	var writeToken, dirToken, next string
	switch len(tail) {
	case 3:
		writeToken, dirToken, next = tail[0], tail[1], tail[2]
	case 2:
		writeToken, dirToken, next = readToken, tail[0], tail[1]
	default:
		return domain.Transition{}, parseErr(l, 1,
			"expected 'write, direction, next_state' after '->', got %q", l.text)
	}

	write, err := parseSymbol(l, writeToken)
	if err != nil {
		return domain.Transition{}, err
	}
	dir, err := domain.ParseDirection(dirToken)
	if err != nil {
		return domain.Transition{}, parseErr(l, 1, "%v", err)
	}
	if next == "" {
		return domain.Transition{}, parseErr(l, 1, "missing next state")
	}

	return domain.Transition{
		Read:       []rune{read},
		Write:      []rune{write},
		Directions: []domain.Direction{dir},
		NextState:  next,
	}, nil
}

// parseMultiTapeAction handles the bracketed multi-tape shape:
//
//	[r1, r2] -> [w1, w2], [d1, d2], next
func parseMultiTapeAction(l line) (domain.Transition, error) {
	readPart, rest, err := takeBracketList(l, l.text)
	if err != nil {
		return domain.Transition{}, err
	}
	rest = strings.TrimSpace(rest)
	if !strings.HasPrefix(rest, "->") {
		return domain.Transition{}, parseErr(l, 1, "expected '->' after read symbols")
	}

	writePart, rest, err := takeBracketList(l, strings.TrimSpace(rest[2:]))
	if err != nil {
		return domain.Transition{}, err
	}
	rest = strings.TrimSpace(rest)
	if !strings.HasPrefix(rest, ",") {
		return domain.Transition{}, parseErr(l, 1, "expected ',' after write symbols")
	}

	dirPart, rest, err := takeBracketList(l, strings.TrimSpace(rest[1:]))
	if err != nil {
		return domain.Transition{}, err
	}
	rest = strings.TrimSpace(rest)
	if !strings.HasPrefix(rest, ",") {
		return domain.Transition{}, parseErr(l, 1, "expected ',' before next state")
	}
	next := strings.TrimSpace(rest[1:])
	if next == "" {
		return domain.Transition{}, parseErr(l, 1, "missing next state")
	}

	read, err := parseSymbolList(l, readPart)
	if err != nil {
		return domain.Transition{}, err
	}
	write, err := parseSymbolList(l, writePart)
	if err != nil {
		return domain.Transition{}, err
	}
	var dirs []domain.Direction
	for _, token := range splitList(dirPart) {
		d, derr := domain.ParseDirection(token)
		if derr != nil {
			return domain.Transition{}, parseErr(l, 1, "%v", derr)
		}
		dirs = append(dirs, d)
	}

	if len(read) != len(write) || len(read) != len(dirs) {
		return domain.Transition{}, parseErr(l, 1,
			"inconsistent multi-tape action: read=%d, write=%d, directions=%d",
			len(read), len(write), len(dirs))
	}

	return domain.Transition{
		Read:       read,
		Write:      write,
		Directions: dirs,
		NextState:  next,
	}, nil
}

// takeBracketList consumes a leading "[...]" group and returns its inner
// text plus the remainder of the line.
func takeBracketList(l line, s string) (string, string, error) {
	if !strings.HasPrefix(s, "[") {
		return "", "", parseErr(l, 1, "expected '[', got %q", s)
	}
	end := strings.IndexByte(s, ']')
	if end < 0 {
		return "", "", parseErr(l, 1, "unterminated '[' list")
	}
	return s[1:end], s[end+1:], nil
}

func parseSymbolList(l line, s string) ([]rune, error) {
	var symbols []rune
	for _, token := range splitList(s) {
		symbol, err := parseSymbol(l, token)
		if err != nil {
			return nil, err
		}
		symbols = append(symbols, symbol)
	}
	return symbols, nil
}

// parseSymbol parses a single symbol token, optionally single-quoted.
func parseSymbol(l line, token string) (rune, error) {
	runes := []rune(token)
	if len(runes) >= 2 && runes[0] == '\'' && runes[len(runes)-1] == '\'' {
		runes = runes[1 : len(runes)-1]
	}
	if len(runes) != 1 {
		return 0, parseErr(l, symbolColumn(l, token), "invalid symbol: %q", token)
	}
	return runes[0], nil
}

func parseIndex(l line, token string) (int, error) {
	n, err := strconv.Atoi(token)
	if err != nil || n < 0 {
		return 0, parseErr(l, 1, "invalid head position: %q", token)
	}
	return n, nil
}

func parseHeadList(l line, rest string) ([]int, error) {
	inner, ok := stripBrackets(rest)
	if !ok {
		return nil, parseErr(l, 1, "expected a bracketed position list, got %q", rest)
	}
	var heads []int
	for _, token := range splitList(inner) {
		n, err := parseIndex(l, token)
		if err != nil {
			return nil, err
		}
		heads = append(heads, n)
	}
	return heads, nil
}

// symbolColumn locates a token inside its line for error reporting. Falls
// back to column 1 when the token is ambiguous.
func symbolColumn(l line, token string) int {
	if idx := strings.Index(l.text, token); idx >= 0 {
		return l.indent + idx + 1
	}
	return 1
}

func parseErr(l line, column int, format string, args ...any) *domain.ParseError {
	if column <= 1 {
		column = l.indent + 1
	}
	return &domain.ParseError{
		Pos: domain.Position{Line: l.number, Column: column},
		Msg: fmt.Sprintf(format, args...),
	}
}
