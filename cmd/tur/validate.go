package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/turlang/tur/pkg/dsl"
)

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Check a program for errors without running it",
	Long:  `Parses the program and runs the full analysis: structure, head bounds, start state, reachability and tape symbol coverage.`,
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		source, err := loadSource(args)
		if err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}

		program, err := dsl.Parse(source)
		if err != nil {
			fmt.Printf("Validation failed: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Program '%s' is valid! ✅ (%d states, %d transitions, %d tapes)\n",
			program.Name, len(program.Rules), program.TransitionCount(), program.TapeCount())
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
