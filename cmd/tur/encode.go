package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/turlang/tur/pkg/codec"
	"github.com/turlang/tur/pkg/dsl"
)

var encodeCmd = &cobra.Command{
	Use:   "encode [file]",
	Short: "Encode a single-tape program into its canonical text form",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := loadSource(args)
		if err != nil {
			return err
		}

		program, err := dsl.Parse(source)
		if err != nil {
			return err
		}

		encoded, err := codec.Encode(program)
		if err != nil {
			return err
		}
		fmt.Println(encoded)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(encodeCmd)
}
