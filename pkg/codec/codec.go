/*
Package codec serializes single-tape programs to and from the canonical
`name:tape:rules` wire format used by universal machine tooling.

Encoding renumbers states deterministically, so two structurally identical
programs encode to the same text. Decoding is a structural inverse: state
count, transition semantics and tape content survive a round trip, but
state names outside the conventional halting set are resynthesized.
*/
package codec

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/turlang/tur/pkg/domain"
)

// DecodedBlank is the blank symbol assigned to decoded programs. The wire
// format does not carry the blank, and '_' keeps wildcard reads meaningful
// on the reconstructed program.
const DecodedBlank = domain.WildcardBlank

// Conventional halting-state names and their fixed single-letter codes.
var specialStates = map[string]string{
	domain.HaltState: "h",
	"accept":         "a",
	"stop":           "s",
	"reject":         "r",
}

var specialCodes = map[string]string{
	"h": domain.HaltState,
	"a": "accept",
	"s": "stop",
	"r": "reject",
}

// Encode serializes a single-tape program as `name:tape:rules`. The tape
// section is the comma-joined initial tape; the rules section is a
// `|`-joined list of `state,read,write,direction,next` quintuples sorted by
// source-state name. Multi-tape programs have no representation in this
// format and are rejected.
func Encode(p *domain.Program) (string, error) {
	if !p.IsSingleTape() {
		return "", domain.Validationf(
			"cannot encode program '%s': format supports exactly one tape, program has %d",
			p.Name, p.TapeCount())
	}

	mapping := stateMapping(p)
	return fmt.Sprintf("%s:%s:%s", p.Name, encodeTape(p), encodeRules(p, mapping)), nil
}

// stateMapping assigns wire codes to states: the initial state is always
// "0", conventional halting names get their fixed letters, and everything
// else gets sequential numbers in sorted-name order.
func stateMapping(p *domain.Program) map[string]string {
	mapping := map[string]string{p.InitialState: "0"}
	counter := 1

	var states []string
	for state, transitions := range p.Rules {
		states = append(states, state)
		for _, t := range transitions {
			states = append(states, t.NextState)
		}
	}
	sort.Strings(states)

	for _, state := range states {
		if _, done := mapping[state]; done {
			continue
		}
		if code, special := specialStates[state]; special {
			mapping[state] = code
			continue
		}
		mapping[state] = strconv.Itoa(counter)
		counter++
	}
	return mapping
}

func encodeTape(p *domain.Program) string {
	tape := []rune(p.InitialTape())
	symbols := make([]string, len(tape))
	for i, symbol := range tape {
		symbols[i] = string(symbol)
	}
	return strings.Join(symbols, ",")
}

func encodeRules(p *domain.Program, mapping map[string]string) string {
	states := make([]string, 0, len(p.Rules))
	for state := range p.Rules {
		states = append(states, state)
	}
	sort.Strings(states)

	var rules []string
	for _, state := range states {
		for _, t := range p.Rules[state] {
			rules = append(rules, fmt.Sprintf("%s,%c,%c,%s,%s",
				mapping[state], t.Read[0], t.Write[0], t.Directions[0],
				mapping[t.NextState]))
		}
	}
	return strings.Join(rules, "|")
}

// Decode reconstructs a single-tape program from its `name:tape:rules`
// encoding. State names are synthesized from the wire codes: "0" becomes
// "start", the letter codes become their conventional halting names, and
// numeric codes become "s2", "s3", and so on.
func Decode(encoded string) (*domain.Program, error) {
	parts := strings.Split(encoded, ":")
	if len(parts) != 3 {
		return nil, domain.Validationf(
			"invalid encoding: expected 3 sections separated by ':', got %d", len(parts))
	}
	name, tapeSection, rulesSection := parts[0], parts[1], parts[2]

	mapping, err := decodeStates(rulesSection)
	if err != nil {
		return nil, err
	}
	rules, err := decodeRules(rulesSection, mapping)
	if err != nil {
		return nil, err
	}

	return &domain.Program{
		Name:         name,
		Mode:         domain.ModeNormal,
		InitialState: mapping["0"],
		Tapes:        []string{decodeTape(tapeSection)},
		Heads:        []int{0},
		Blank:        DecodedBlank,
		Rules:        rules,
	}, nil
}

// decodeStates scans every state code referenced by the rules section, plus
// the implicit "0", and builds the code-to-name mapping.
func decodeStates(rulesSection string) (map[string]string, error) {
	codes := map[string]bool{"0": true}
	if rulesSection != "" {
		for _, rule := range strings.Split(rulesSection, "|") {
			parts := strings.Split(rule, ",")
			if len(parts) != 5 {
				return nil, domain.Validationf("invalid rule format: %s", rule)
			}
			codes[parts[0]] = true
			codes[parts[4]] = true
		}
	}

	mapping := make(map[string]string, len(codes))
	for code := range codes {
		mapping[code] = stateName(code)
	}
	return mapping, nil
}

// stateName synthesizes a readable name for a wire code.
func stateName(code string) string {
	if name, ok := specialCodes[code]; ok {
		return name
	}
	if code == "0" {
		return "start"
	}
	if n, err := strconv.Atoi(code); err == nil {
		return fmt.Sprintf("s%d", n+1)
	}
	return code
}

func decodeRules(rulesSection string, mapping map[string]string) (map[string][]domain.Transition, error) {
	rules := make(map[string][]domain.Transition)
	if rulesSection == "" {
		return rules, nil
	}

	for _, rule := range strings.Split(rulesSection, "|") {
		parts := strings.Split(rule, ",")
		if len(parts) != 5 {
			return nil, domain.Validationf("invalid rule format: %s", rule)
		}

		read, err := decodeSymbol(parts[1], rule)
		if err != nil {
			return nil, err
		}
		write, err := decodeSymbol(parts[2], rule)
		if err != nil {
			return nil, err
		}
		direction, err := domain.ParseDirection(parts[3])
		if err != nil {
			return nil, domain.Validationf("invalid direction in rule %s: %s", rule, parts[3])
		}

		state := mapping[parts[0]]
		rules[state] = append(rules[state], domain.Transition{
			Read:       []rune{read},
			Write:      []rune{write},
			Directions: []domain.Direction{direction},
			NextState:  mapping[parts[4]],
		})
	}
	return rules, nil
}

func decodeSymbol(s, rule string) (rune, error) {
	symbols := []rune(s)
	if len(symbols) != 1 {
		return 0, domain.Validationf("invalid symbol in rule %s: %q", rule, s)
	}
	return symbols[0], nil
}

func decodeTape(tapeSection string) string {
	if tapeSection == "" {
		return ""
	}
	return strings.Join(strings.Split(tapeSection, ","), "")
}
