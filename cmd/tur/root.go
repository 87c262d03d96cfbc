package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/turlang/tur/internal/logging"
	"github.com/turlang/tur/pkg/adapters/file"
)

var rootCmd = &cobra.Command{
	Use:   "tur",
	Short: "Tur is a multi-tape Turing machine interpreter",
	Long:  `Tur parses, validates and executes Turing machine programs written in a small text DSL.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
}

func newLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelInfo
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = slog.LevelDebug
	}
	return logging.New(level)
}

// loadSource resolves program source from a file argument or, when stdin is
// not a terminal, from a pipe.
func loadSource(args []string) (string, error) {
	if len(args) > 0 {
		return file.LoadFile(args[0])
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return file.LoadReader(io.Reader(os.Stdin))
	}
	return "", fmt.Errorf("provide a program file or pipe source on stdin")
}
