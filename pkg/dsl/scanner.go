package dsl

import (
	"strings"
)

// line is a physical source line with its 1-based number and indentation
// already measured. Blank lines are dropped by the scanner, so consumers
// only see meaningful lines.
type line struct {
	number int
	indent int
	text   string // content with indentation stripped
}

// scan splits source into meaningful lines. Tabs count as a single
// indentation column; the DSL only cares about "more indented than the
// enclosing section", not exact widths.
func scan(source string) []line {
	var lines []line
	for i, raw := range strings.Split(source, "\n") {
		trimmed := strings.TrimRight(raw, " \t\r")
		content := strings.TrimLeft(trimmed, " \t")
		if content == "" {
			continue
		}
		lines = append(lines, line{
			number: i + 1,
			indent: len(trimmed) - len(content),
			text:   content,
		})
	}
	return lines
}

// splitList splits a comma-separated list, trimming surrounding space from
// each item. Empty items are preserved so callers can report them.
func splitList(s string) []string {
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

// stripBrackets removes one pair of surrounding square brackets.
func stripBrackets(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '[' && s[len(s)-1] == ']' {
		return s[1 : len(s)-1], true
	}
	return s, false
}
