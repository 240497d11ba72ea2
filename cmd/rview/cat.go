package main

import (
	"github.com/kk-code-lab/rview/internal/config"
	fsutil "github.com/kk-code-lab/rview/internal/fs"
	"github.com/kk-code-lab/rview/internal/highlight"
	textutil "github.com/kk-code-lab/rview/internal/textutil"
	"github.com/kk-code-lab/rview/internal/ui/ansi"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

type catOptions struct {
	query       string
	current     int
	noSyntax    bool
	lineNumbers bool
	noColor     bool
	wrap        int
}

func newCatCmd(global *globalOptions) *cobra.Command {
	opts := &catOptions{}
	cmd := &cobra.Command{
		Use:   "cat FILE",
		Short: "Print a file with highlighting as ANSI escape sequences",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := fsutil.LoadText(args[0])
			if err != nil {
				return err
			}

			palette, err := config.PaletteFor(global.cfg.Theme, global.cfg.Colors)
			if err != nil {
				return err
			}
			hl := highlight.Options{
				Language:     highlight.LanguageForPath(file.Path),
				Query:        opts.query,
				Palette:      palette,
				Syntax:       global.cfg.Syntax && !opts.noSyntax,
				CurrentMatch: opts.current,
			}

			profile := termenv.EnvColorProfile()
			if opts.noColor {
				profile = termenv.Ascii
			}
			return ansi.Write(cmd.OutOrStdout(), textutil.SplitLines(file.Text), hl, ansi.Options{
				LineNumbers: opts.lineNumbers,
				TabWidth:    global.cfg.TabWidth,
				Profile:     profile,
				Wrap:        opts.wrap,
			})
		},
	}

	cmd.Flags().StringVarP(&opts.query, "query", "q", "", "highlight case-insensitive matches of this text")
	cmd.Flags().IntVar(&opts.current, "current", -1, "ordinal of the match drawn as current (0-based)")
	cmd.Flags().BoolVar(&opts.noSyntax, "no-syntax", false, "disable syntax coloring")
	cmd.Flags().BoolVarP(&opts.lineNumbers, "line-numbers", "n", false, "prefix lines with their number")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false, "print plain text")
	cmd.Flags().IntVarP(&opts.wrap, "wrap", "w", 0, "hard-wrap rows at this many columns (0 disables)")
	return cmd
}
