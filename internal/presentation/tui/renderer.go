package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/termenv"

	"github.com/turlang/tur/pkg/domain"
)

// NewRenderer returns a function that renders markdown using glamour.
// It detects light/dark backgrounds automatically.
func NewRenderer() func(string) (string, error) {
	r, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
	)
	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// RenderSnapshot draws the tapes of an execution state, one line per tape,
// with the cell under each head highlighted.
func RenderSnapshot(snap domain.Snapshot, blank rune) string {
	p := termenv.ColorProfile()
	var b strings.Builder

	for i, tape := range snap.Tapes {
		head := 0
		if i < len(snap.Heads) {
			head = snap.Heads[i]
		}

		cells := []rune(tape)
		// The head may sit one past the materialized end of the tape.
		for head >= len(cells) {
			cells = append(cells, blank)
		}

		fmt.Fprintf(&b, "tape %d: ", i)
		for j, cell := range cells {
			text := string(cell)
			if j == head {
				b.WriteString(termenv.String(text).Reverse().Foreground(p.Color("#c084fc")).String())
			} else {
				b.WriteString(text)
			}
		}
		b.WriteByte('\n')
	}

	fmt.Fprintf(&b, "state: %s  steps: %d", snap.State, snap.Steps)
	if snap.Halted {
		b.WriteString("  (halted)")
	}
	b.WriteByte('\n')
	return b.String()
}

// ProgramMarkdown builds a markdown summary of a program for glamour
// rendering.
func ProgramMarkdown(p *domain.Program, description string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", p.Name)
	if description != "" {
		fmt.Fprintf(&b, "%s\n\n", description)
	}
	fmt.Fprintf(&b, "- **Mode**: %s\n", p.Mode)
	fmt.Fprintf(&b, "- **Tapes**: %d\n", p.TapeCount())
	fmt.Fprintf(&b, "- **States**: %d\n", len(p.Rules))
	fmt.Fprintf(&b, "- **Transitions**: %d\n", p.TransitionCount())
	fmt.Fprintf(&b, "- **Initial state**: `%s`\n", p.InitialState)
	fmt.Fprintf(&b, "- **Blank symbol**: `%c`\n", p.Blank)
	return b.String()
}
