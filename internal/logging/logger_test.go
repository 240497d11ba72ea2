package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerIsCachedPerComponent(t *testing.T) {
	a := NewLogger("viewer")
	b := NewLogger("viewer")
	require.Same(t, a, b)
	require.Equal(t, "viewer", a.Data["component"])
	require.NotSame(t, a, NewLogger("watcher"))
}

func TestTextFormatter(t *testing.T) {
	f := &TextFormatter{DisableTimestamp: true}
	out, err := f.Format(&logrus.Entry{
		Level:   logrus.WarnLevel,
		Message: "reload failed",
		Data:    logrus.Fields{"component": "app", "path": "/tmp/x", "attempt": 2},
	})
	require.NoError(t, err)
	require.Equal(t, "[WARN] [app] reload failed attempt=2 path=/tmp/x\n", string(out))
}

func TestInitWritesToFile(t *testing.T) {
	t.Setenv("RVIEW_LOG_LEVEL", "")
	t.Setenv("RVIEW_DEBUG", "")
	path := filepath.Join(t.TempDir(), "logs", "rview.log")

	require.NoError(t, Init(Config{Level: "debug", File: path, Stderr: "never"}))
	t.Cleanup(func() { _ = Close() })

	NewLogger("test").WithField("n", 1).Debug("hello")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "[DEBUG] [test] hello n=1")
}

func TestInitLevelFromEnvironment(t *testing.T) {
	t.Setenv("RVIEW_LOG_LEVEL", "error")
	require.NoError(t, Init(Config{Level: "debug", Stderr: "never"}))
	t.Cleanup(func() { _ = Close() })

	var buf bytes.Buffer
	SetOutput(&buf)
	logger := NewLogger("env")
	logger.Info("hidden")
	logger.Error("shown")

	require.False(t, strings.Contains(buf.String(), "hidden"))
	require.Contains(t, buf.String(), "shown")
}

func TestInitJSONFormat(t *testing.T) {
	t.Setenv("RVIEW_LOG_LEVEL", "")
	require.NoError(t, Init(Config{Format: "json", Stderr: "never"}))
	t.Cleanup(func() { _ = Close() })

	var buf bytes.Buffer
	SetOutput(&buf)
	NewLogger("json").Info("structured")
	require.Contains(t, buf.String(), `"component":"json"`)
	require.Contains(t, buf.String(), `"msg":"structured"`)
}
