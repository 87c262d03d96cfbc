package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/turlang/tur"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of tur",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("tur version %s\n", strings.TrimSpace(tur.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
