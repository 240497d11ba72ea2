package main

import (
	"fmt"

	fsutil "github.com/kk-code-lab/rview/internal/fs"
	"github.com/kk-code-lab/rview/internal/search"
	"github.com/spf13/cobra"
)

func newCountCmd() *cobra.Command {
	var locate int
	cmd := &cobra.Command{
		Use:   "count FILE QUERY",
		Short: "Count case-insensitive matches of QUERY in FILE",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := fsutil.LoadText(args[0])
			if err != nil {
				return err
			}
			query := args[1]
			out := cmd.OutOrStdout()

			if !cmd.Flags().Changed("locate") {
				_, err := fmt.Fprintln(out, search.CountMatches(file.Text, query))
				return err
			}
			line, ok := search.LocateMatch(file.Text, query, locate)
			if !ok {
				return fmt.Errorf("match %d not found", locate)
			}
			_, err = fmt.Fprintln(out, line+1)
			return err
		},
	}
	cmd.Flags().IntVar(&locate, "locate", 0, "print the 1-based line of match N (0-based) instead of the count")
	return cmd
}
