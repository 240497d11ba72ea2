package main

import (
	"fmt"
	"os"

	apppkg "github.com/kk-code-lab/rview/internal/app"
	"github.com/kk-code-lab/rview/internal/config"
	"github.com/kk-code-lab/rview/internal/logging"
	"github.com/kk-code-lab/rview/internal/theme"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	configFile string
	debug      bool
	theme      string

	cfg     config.Config
	cfgPath string
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:           "rview [file]",
		Short:         "Terminal text viewer with syntax and search highlighting",
		Long:          `rview shows a text file with lightweight syntax coloring, bracket depth colors and case-insensitive search highlighting.`,
		Version:       version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return opts.load()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return runViewer(opts, path)
		},
	}

	opts.addFlags(root.PersistentFlags())

	root.AddCommand(newCatCmd(opts), newCountCmd(), newThemesCmd(opts))
	return root
}

func (o *globalOptions) addFlags(flags *pflag.FlagSet) {
	flags.StringVarP(&o.configFile, "config", "c", "", "config file (default: "+config.DefaultPath()+")")
	flags.BoolVar(&o.debug, "debug", false, "enable debug logging")
	flags.StringVar(&o.theme, "theme", "", "color theme (see 'rview themes')")
}

// load reads the config file, applies flag overrides and sets up logging.
func (o *globalOptions) load() error {
	cfg, path, err := config.Load(o.configFile)
	if err != nil {
		return err
	}
	if o.theme != "" {
		if _, ok := theme.Lookup(o.theme); !ok {
			return fmt.Errorf("unknown theme %q", o.theme)
		}
		cfg.Theme = theme.Resolve(o.theme)
	}
	cfg.Log.Debug = cfg.Log.Debug || o.debug
	o.cfg = cfg
	o.cfgPath = path
	return logging.Init(cfg.Log)
}

func runViewer(opts *globalOptions, path string) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return fmt.Errorf("stdout is not a terminal; use 'rview cat' for piped output")
	}

	// Log lines on stderr would tear the screen.
	logCfg := opts.cfg.Log
	logCfg.Stderr = "never"
	if err := logging.Init(logCfg); err != nil {
		return err
	}
	defer func() {
		_ = logging.Close()
	}()

	app, err := apppkg.NewApplication(apppkg.Options{
		Path:       path,
		Config:     opts.cfg,
		ConfigPath: opts.cfgPath,
	})
	if err != nil {
		return fmt.Errorf("initializing terminal: %w", err)
	}
	defer func() {
		_ = app.Close()
	}()

	app.Run()
	return nil
}
