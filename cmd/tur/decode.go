package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/turlang/tur/pkg/codec"
)

var decodeCmd = &cobra.Command{
	Use:   "decode <encoded>",
	Short: "Decode a canonical program string and print it as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		program, err := codec.Decode(args[0])
		if err != nil {
			return err
		}

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(program)
	},
}

func init() {
	rootCmd.AddCommand(decodeCmd)
}
