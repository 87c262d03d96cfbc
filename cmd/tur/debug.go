package main

import (
	"github.com/spf13/cobra"

	"github.com/turlang/tur"
	"github.com/turlang/tur/internal/presentation/tui"
	"github.com/turlang/tur/pkg/machine"
	"github.com/turlang/tur/pkg/runner"
)

var debugCmd = &cobra.Command{
	Use:   "debug [file]",
	Short: "Step through a program interactively",
	Long: `Opens an interactive session on a program: step, run, reset and
rewrite tapes from a prompt. With --json the session speaks line-delimited
JSON instead, for driving from another process.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		builtin, _ := cmd.Flags().GetString("builtin")
		jsonMode, _ := cmd.Flags().GetBool("json")

		program, err := resolveProgram(builtin, args)
		if err != nil {
			return err
		}

		r := runner.NewRunner()
		r.Logger = newLogger(cmd)
		if jsonMode {
			r.Handler = runner.NewJSONHandler(nil, nil)
		} else {
			tui.PrintBanner(tur.Version)
			r.Renderer = tui.RenderSnapshot
		}

		return r.Run(machine.New(program))
	},
}

func init() {
	rootCmd.AddCommand(debugCmd)

	debugCmd.Flags().String("builtin", "", "Debug a program from the built-in catalog")
	debugCmd.Flags().Bool("json", false, "Speak line-delimited JSON on stdin/stdout")
}
