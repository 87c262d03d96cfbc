package runner

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/turlang/tur/pkg/domain"
)

// SnapshotRenderer turns a snapshot into the text shown to the user.
// It decouples this package from any particular terminal styling.
type SnapshotRenderer func(snap domain.Snapshot, blank rune) string

// TextHandler implements the standard text-based interface.
type TextHandler struct {
	Reader   *bufio.Reader
	Writer   io.Writer
	Renderer SnapshotRenderer
}

// NewTextHandler creates a handler for standard text IO.
func NewTextHandler(r io.Reader, w io.Writer) *TextHandler {
	if r == nil {
		r = os.Stdin
	}
	if w == nil {
		w = os.Stdout
	}
	return &TextHandler{
		Reader: bufio.NewReader(r),
		Writer: w,
	}
}

func (h *TextHandler) Output(snap domain.Snapshot, blank rune) error {
	if h.Renderer != nil {
		_, err := fmt.Fprint(h.Writer, h.Renderer(snap, blank))
		return err
	}
	for i, tape := range snap.Tapes {
		if _, err := fmt.Fprintf(h.Writer, "tape %d: %q\n", i, tape); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(h.Writer, "state: %s  steps: %d\n", snap.State, snap.Steps)
	return err
}

func (h *TextHandler) Notify(message string) error {
	_, err := fmt.Fprintln(h.Writer, message)
	return err
}

// Input prompts until it reads a well-formed command. Malformed lines are
// reported and do not end the session; IO errors do.
func (h *TextHandler) Input() (Command, error) {
	for {
		fmt.Fprint(h.Writer, "> ")

		text, err := h.Reader.ReadString('\n')
		if err != nil {
			return Command{}, err
		}
		cmd, perr := parseCommand(strings.TrimSpace(text))
		if perr != nil {
			if err := h.Notify(perr.Error()); err != nil {
				return Command{}, err
			}
			continue
		}
		return cmd, nil
	}
}

// parseCommand turns a line like "step 3" or "tape 0 abba" into a Command.
func parseCommand(text string) (Command, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return Command{Name: "show"}, nil
	}

	switch fields[0] {
	case "step", "s":
		cmd := Command{Name: "step"}
		if len(fields) > 1 {
			n, err := strconv.Atoi(fields[1])
			if err != nil || n < 1 {
				return Command{}, fmt.Errorf("step wants a positive count, got %q", fields[1])
			}
			cmd.Count = n
		}
		return cmd, nil
	case "run", "r":
		return Command{Name: "run"}, nil
	case "reset":
		return Command{Name: "reset"}, nil
	case "show":
		return Command{Name: "show"}, nil
	case "tape", "t":
		if len(fields) < 3 {
			return Command{}, fmt.Errorf("usage: tape <index> <content>")
		}
		index, err := strconv.Atoi(fields[1])
		if err != nil {
			return Command{}, fmt.Errorf("tape wants a numeric index, got %q", fields[1])
		}
		return Command{Name: "tape", Tape: index, Text: strings.Join(fields[2:], " ")}, nil
	case "help", "h", "?":
		return Command{Name: "help"}, nil
	case "quit", "q", "exit":
		return Command{Name: "quit"}, nil
	}
	return Command{}, fmt.Errorf("unknown command: %s (try 'help')", fields[0])
}
