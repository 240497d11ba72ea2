// Package config provides configuration types, defaults, loading and
// persistence for rview.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kk-code-lab/rview/internal/highlight"
	"github.com/kk-code-lab/rview/internal/logging"
	"github.com/kk-code-lab/rview/internal/textutil"
	"github.com/kk-code-lab/rview/internal/theme"
	"github.com/spf13/viper"
)

// MaxRecentFiles bounds the recent files list.
const MaxRecentFiles = 10

// EnvPrefix prefixes environment overrides, e.g. RVIEW_THEME.
const EnvPrefix = "RVIEW"

// Config holds all configuration options for rview.
type Config struct {
	Theme           string            `mapstructure:"theme" yaml:"theme"`
	ShowLineNumbers bool              `mapstructure:"show_line_numbers" yaml:"show_line_numbers"`
	WordWrap        bool              `mapstructure:"word_wrap" yaml:"word_wrap"`
	Syntax          bool              `mapstructure:"syntax" yaml:"syntax"`
	TabWidth        int               `mapstructure:"tab_width" yaml:"tab_width"`
	RecentFiles     []string          `mapstructure:"recent_files" yaml:"recent_files"`
	Colors          map[string]string `mapstructure:"colors" yaml:"colors,omitempty"`
	Log             logging.Config    `mapstructure:"log" yaml:"log"`
}

// Defaults returns the configuration used when no file exists.
func Defaults() Config {
	return Config{
		Theme:           theme.DefaultID,
		ShowLineNumbers: true,
		WordWrap:        false,
		Syntax:          true,
		TabWidth:        textutil.DefaultTabWidth,
		Log: logging.Config{
			Level:  "info",
			Format: "text",
		},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/rview/config.yaml or its platform
// equivalent.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "rview", "config.yaml")
}

// Load reads the config file at path (DefaultPath when empty) into a fresh
// viper instance layered over Defaults and RVIEW_* environment variables. A
// missing file is not an error. It returns the config and the path used.
func Load(path string) (Config, string, error) {
	v := viper.New()
	setDefaults(v, Defaults())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path == "" {
		path = DefaultPath()
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return Defaults(), path, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Defaults(), path, fmt.Errorf("decoding config: %w", err)
	}
	cfg.normalize()
	return cfg, path, nil
}

func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("theme", d.Theme)
	v.SetDefault("show_line_numbers", d.ShowLineNumbers)
	v.SetDefault("word_wrap", d.WordWrap)
	v.SetDefault("syntax", d.Syntax)
	v.SetDefault("tab_width", d.TabWidth)
	v.SetDefault("recent_files", []string{})
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.format", d.Log.Format)
	v.SetDefault("log.stderr", d.Log.Stderr)
}

func (c *Config) normalize() {
	c.Theme = theme.Resolve(c.Theme)
	if c.TabWidth <= 0 {
		c.TabWidth = textutil.DefaultTabWidth
	}
	c.RecentFiles = dedupeRecent(c.RecentFiles)
}

// Palette resolves the configured theme and applies color overrides.
func (c Config) Palette() (highlight.Palette, error) {
	return PaletteFor(c.Theme, c.Colors)
}

// PaletteFor resolves id with the given overrides. Unknown ids fall back to
// the default palette.
func PaletteFor(id string, colors map[string]string) (highlight.Palette, error) {
	p, ok := theme.Lookup(id)
	if !ok {
		p = theme.Default()
	}
	p, err := theme.ApplyOverrides(p, colors)
	if err != nil {
		return p, fmt.Errorf("theme colors: %w", err)
	}
	return p, nil
}

// AddRecent moves path to the front of list, removing duplicates and keeping
// at most MaxRecentFiles entries.
func AddRecent(list []string, path string) []string {
	if path == "" {
		return list
	}
	out := make([]string, 0, MaxRecentFiles)
	out = append(out, path)
	for _, p := range list {
		if p == path {
			continue
		}
		if len(out) == MaxRecentFiles {
			break
		}
		out = append(out, p)
	}
	return out
}

func dedupeRecent(list []string) []string {
	out := make([]string, 0, len(list))
	seen := make(map[string]struct{}, len(list))
	for _, p := range list {
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
		if len(out) == MaxRecentFiles {
			break
		}
	}
	return out
}
