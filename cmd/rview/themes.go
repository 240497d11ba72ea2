package main

import (
	"fmt"

	"github.com/kk-code-lab/rview/internal/theme"
	"github.com/spf13/cobra"
)

func newThemesCmd(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List available color themes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, id := range theme.IDs() {
				p, _ := theme.Lookup(id)
				marker := " "
				if id == global.cfg.Theme {
					marker = "*"
				}
				if _, err := fmt.Fprintf(out, "%s %-18s %s\n", marker, id, p.Name); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
