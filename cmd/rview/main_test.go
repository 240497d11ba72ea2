package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kk-code-lab/rview/internal/theme"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cfg := filepath.Join(t.TempDir(), "config.yaml")
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--config", cfg}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func sampleFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample.rs")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCountCommand(t *testing.T) {
	path := sampleFile(t, "foo\nFoo bar\nfoo\n")

	out, err := execute(t, "count", path, "FOO")
	require.NoError(t, err)
	assert.Equal(t, "3\n", out)

	out, err = execute(t, "count", path, "foo", "--locate", "1")
	require.NoError(t, err)
	assert.Equal(t, "2\n", out)

	_, err = execute(t, "count", path, "foo", "--locate", "3")
	require.Error(t, err)
}

func TestCatCommandPlain(t *testing.T) {
	path := sampleFile(t, "fn main() {}\n")
	out, err := execute(t, "cat", "--no-color", "-n", path)
	require.NoError(t, err)
	assert.Equal(t, "1 fn main() {}\n", out)
}

func TestCatCommandWraps(t *testing.T) {
	path := sampleFile(t, "abcdefgh\nxy\n")
	out, err := execute(t, "cat", "--no-color", "--wrap", "5", path)
	require.NoError(t, err)
	assert.Equal(t, "abcde\nfgh\nxy\n", out)
}

func TestThemesCommandMarksConfigured(t *testing.T) {
	out, err := execute(t, "--theme", "dracula", "themes")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, len(theme.IDs()))
	for _, line := range lines {
		if strings.Contains(line, "dracula") {
			assert.True(t, strings.HasPrefix(line, "*"))
		} else {
			assert.True(t, strings.HasPrefix(line, " "))
		}
	}
}

func TestUnknownThemeFlagFails(t *testing.T) {
	_, err := execute(t, "--theme", "nope", "themes")
	require.Error(t, err)
}
