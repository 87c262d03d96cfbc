package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/turlang/tur/internal/presentation/tui"
	"github.com/turlang/tur/pkg/registry"
)

var programsCmd = &cobra.Command{
	Use:   "programs [name]",
	Short: "List the built-in programs, or show one in detail",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := registry.Builtin()
		if err != nil {
			return err
		}
		render := tui.NewRenderer()

		if len(args) == 0 {
			var b strings.Builder
			b.WriteString("# Built-in programs\n\n")
			for _, info := range r.Infos() {
				fmt.Fprintf(&b, "- **%s**: %s", info.Name, info.Description)
				if len(info.Tags) > 0 {
					fmt.Fprintf(&b, " _(%s)_", strings.Join(info.Tags, ", "))
				}
				b.WriteByte('\n')
			}
			out, err := render(b.String())
			if err != nil {
				return err
			}
			fmt.Print(out)
			return nil
		}

		name := args[0]
		info, err := r.Describe(name)
		if err != nil {
			return err
		}
		program, err := r.Get(name)
		if err != nil {
			return err
		}
		source, err := r.LoadSource(name)
		if err != nil {
			return err
		}

		md := tui.ProgramMarkdown(program, info.Description)
		out, err := render(md)
		if err != nil {
			return err
		}
		fmt.Print(out)
		fmt.Println(source)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(programsCmd)
}
