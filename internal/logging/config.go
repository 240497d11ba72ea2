package logging

// Config controls where and how log entries are written.
type Config struct {
	// Level is the minimum level ("debug", "info", "warn", "error").
	// RVIEW_LOG_LEVEL overrides it.
	Level string `mapstructure:"level" yaml:"level"`
	// File, when set, receives every entry. A leading ~ expands to the home dir.
	File string `mapstructure:"file" yaml:"file"`
	// Format is "text" (default) or "json".
	Format string `mapstructure:"format" yaml:"format"`
	// Stderr is "auto" (default), "always" or "never". In auto mode entries go
	// to stderr when debugging or when stderr is not a terminal.
	Stderr string `mapstructure:"stderr" yaml:"stderr,omitempty"`
	// Debug forces the debug level, as RVIEW_DEBUG=1 does.
	Debug bool `mapstructure:"-" yaml:"-"`
}
