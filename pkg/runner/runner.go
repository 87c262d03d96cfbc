package runner

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/turlang/tur/pkg/domain"
	"github.com/turlang/tur/pkg/machine"
)

const helpText = `commands:
  step [n] (s)      apply one or n transitions
  run (r)           run until the machine halts
  reset             restore the initial configuration
  tape <i> <text>   overwrite tape i with text
  show              print the current state
  help (h, ?)       this text
  quit (q, exit)    leave the session`

// Runner drives a machine interactively using the provided IO.
// It uses an IOHandler strategy to abstract the interaction mode
// (Text vs JSON), which also makes the loop easy to test.
type Runner struct {
	// Handler is the strategy for IO. If nil, a TextHandler on
	// Input/Output is used.
	Handler IOHandler

	// Logger is used for internal debug logging.
	// If nil, a no-op logger is used.
	Logger *slog.Logger

	// Input and Output back the default TextHandler when Handler is nil.
	Input  io.Reader
	Output io.Writer

	// Renderer styles snapshots in the default TextHandler.
	Renderer SnapshotRenderer
}

// NewRunner creates a new Runner with default Stdin/Stdout.
func NewRunner() *Runner {
	return &Runner{
		Input:  os.Stdin,
		Output: os.Stdout,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

// Run executes the command loop until quit or end of input. The machine's
// state at return reflects every command that was applied.
func (r *Runner) Run(m *machine.Machine) error {
	handler := r.resolveHandler()

	if err := handler.Output(m.Snapshot(), m.Blank()); err != nil {
		return fmt.Errorf("output error: %w", err)
	}

	for {
		cmd, err := handler.Input()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("input error: %w", err)
		}
		r.Logger.Debug("command received", "command", cmd.Name)

		show := true
		switch cmd.Name {
		case "step":
			count := cmd.Count
			if count < 1 {
				count = 1
			}
			if err := r.step(handler, m, count); err != nil {
				return err
			}
		case "run":
			if _, err := m.Run(); err != nil {
				if err := notifyHalt(handler, err); err != nil {
					return err
				}
			}
		case "reset":
			m.Reset()
		case "tape":
			if err := m.SetTapeContent(cmd.Tape, cmd.Text); err != nil {
				if err := handler.Notify(err.Error()); err != nil {
					return err
				}
				show = false
			}
		case "show":
		case "help":
			if err := handler.Notify(helpText); err != nil {
				return err
			}
			show = false
		case "quit":
			return nil
		default:
			if err := handler.Notify(fmt.Sprintf("unknown command: %s (try 'help')", cmd.Name)); err != nil {
				return err
			}
			show = false
		}

		if show {
			if err := handler.Output(m.Snapshot(), m.Blank()); err != nil {
				return fmt.Errorf("output error: %w", err)
			}
		}
	}
}

func (r *Runner) step(handler IOHandler, m *machine.Machine, count int) error {
	for i := 0; i < count; i++ {
		outcome, err := m.Step()
		if err != nil {
			return notifyHalt(handler, err)
		}
		if outcome == machine.Halted {
			return handler.Notify("machine halted")
		}
	}
	return nil
}

// notifyHalt reports a strict-mode halt through the handler; any other
// error is a real failure and propagates.
func notifyHalt(handler IOHandler, err error) error {
	var uerr *domain.UndefinedTransitionError
	if errors.As(err, &uerr) {
		return handler.Notify("machine halted: " + uerr.Error())
	}
	return err
}

// resolveHandler ensures a valid IOHandler is set.
func (r *Runner) resolveHandler() IOHandler {
	if r.Handler != nil {
		return r.Handler
	}
	th := NewTextHandler(r.Input, r.Output)
	th.Renderer = r.Renderer
	r.Handler = th
	return th
}
