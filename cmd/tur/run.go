package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/turlang/tur/internal/presentation/tui"
	"github.com/turlang/tur/pkg/domain"
	"github.com/turlang/tur/pkg/dsl"
	"github.com/turlang/tur/pkg/machine"
	"github.com/turlang/tur/pkg/observability"
	"github.com/turlang/tur/pkg/registry"
)

// runCmd executes a program to completion (or a bounded number of steps)
// and renders the reached state.
var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Execute a program and print the final state",
	Long: `Parses, validates and executes a program.

The program comes from a file argument, from stdin, or from the built-in
catalog via --builtin. Initial tape contents can be overridden with --tape
(repeatable, one flag per tape).`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		builtin, _ := cmd.Flags().GetString("builtin")
		tapes, _ := cmd.Flags().GetStringArray("tape")
		steps, _ := cmd.Flags().GetInt("steps")
		jsonMode, _ := cmd.Flags().GetBool("json")
		stats, _ := cmd.Flags().GetBool("stats")
		logger := newLogger(cmd)

		program, err := resolveProgram(builtin, args)
		if err != nil {
			return err
		}

		m := machine.New(program)
		if len(tapes) > 0 {
			if err := m.SetTapesContent(tapes); err != nil {
				return err
			}
		}

		logger.Debug("executing program", "program", program.Name, "mode", program.Mode.String())

		var recorder *observability.Recorder
		if stats {
			recorder = observability.NewRecorder()
			recorder.Observe(m.Snapshot())
		}

		limit := steps
		if limit <= 0 {
			limit = machine.MaxSteps
		}
		var outcome machine.Outcome
		var runErr error
		for i := 0; i < limit; i++ {
			outcome, runErr = m.Step()
			if recorder != nil {
				recorder.Observe(m.Snapshot())
			}
			if outcome == machine.Halted {
				break
			}
		}

		var uerr *domain.UndefinedTransitionError
		if runErr != nil && !errors.As(runErr, &uerr) {
			return runErr
		}

		snap := m.Snapshot()
		if jsonMode {
			out := struct {
				Snapshot   domain.Snapshot        `json:"snapshot"`
				Outcome    string                 `json:"outcome"`
				HaltReason string                 `json:"halt_reason,omitempty"`
				Stats      *observability.Summary `json:"stats,omitempty"`
			}{Snapshot: snap, Outcome: outcome.String()}
			if uerr != nil {
				out.HaltReason = uerr.Error()
			}
			if recorder != nil {
				summary := recorder.Summary()
				out.Stats = &summary
			}
			return json.NewEncoder(os.Stdout).Encode(out)
		}

		fmt.Print(tui.RenderSnapshot(snap, m.Blank()))
		if uerr != nil {
			fmt.Printf("halted: %v\n", uerr)
		}
		if recorder != nil {
			summary := recorder.Summary()
			fmt.Printf("max tape cells: %d\n", summary.MaxTapeCells)
			for _, visit := range summary.StateVisits {
				fmt.Printf("  %-20s %d\n", visit.State, visit.Visits)
			}
		}
		return nil
	},
}

// resolveProgram picks between the built-in catalog and source input.
func resolveProgram(builtin string, args []string) (*domain.Program, error) {
	if builtin != "" {
		r, err := registry.Builtin()
		if err != nil {
			return nil, err
		}
		return r.Get(builtin)
	}

	source, err := loadSource(args)
	if err != nil {
		return nil, err
	}
	return dsl.Parse(source)
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().String("builtin", "", "Run a program from the built-in catalog")
	runCmd.Flags().StringArray("tape", nil, "Override a tape's initial content (repeatable)")
	runCmd.Flags().Int("steps", 0, "Execute at most this many steps (0 = run to halt)")
	runCmd.Flags().Bool("json", false, "Print the result as JSON")
	runCmd.Flags().Bool("stats", false, "Collect and print execution statistics")
}
