package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with args and stdin, resetting flag state
// left over from earlier runs.
func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	cfgFile, debug, quiet = "", false, false
	evalDisplay, evalRPN, evalPrecision = false, false, -1
	serveAddress = ""
	appConfig = nil

	var stdout, stderr bytes.Buffer
	root := GetRootCmd()
	if f := root.Flags().Lookup("version"); f != nil {
		require.NoError(t, f.Value.Set("false"))
	}
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestEval(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected string
	}{
		{name: "arithmetic", args: []string{"eval", "2+3*4"}, expected: "14\n"},
		{name: "joined args", args: []string{"eval", "2", "+", "3"}, expected: "5\n"},
		{name: "remainder", args: []string{"eval", "7%3"}, expected: "1\n"},
		{name: "factorial", args: []string{"eval", "5!"}, expected: "120\n"},
		{name: "infinity", args: []string{"eval", "1/0"}, expected: "Infinity\n"},
		{name: "nan", args: []string{"eval", "sqrt(0-1)"}, expected: "NaN\n"},
		{name: "rpn", args: []string{"eval", "--rpn", "(2+3)*4"}, expected: "2 3 + 4 *\n20\n"},
		{name: "precision", args: []string{"eval", "-p", "4", "1/3"}, expected: "0.3333\n"},
		{name: "display percent", args: []string{"eval", "--display", "50%"}, expected: "0.5\n"},
		{name: "display glyphs", args: []string{"eval", "--display", "2×π"}, expected: "6.283185307179586\n"},
		{name: "display error", args: []string{"eval", "--display", "(2"}, expected: "Error\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := execute(t, "", tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out)
		})
	}
}

func TestEval_Errors(t *testing.T) {
	tests := []struct {
		expr string
		kind string
	}{
		{expr: "(2+3", kind: "UnbalancedParenthesis"},
		{expr: "2+", kind: "InvalidExpression"},
		{expr: "foo", kind: "InvalidToken"},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			out, _, err := execute(t, "", "eval", tt.expr)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.kind)
			assert.Empty(t, out)
		})
	}
}

func TestEval_Stdin(t *testing.T) {
	out, stderr, err := execute(t, "1+1\n\n2^10\n", "eval")
	require.NoError(t, err)
	assert.Equal(t, "2\n1024\n", out)
	assert.Empty(t, stderr)

	out, stderr, err = execute(t, "1+1\n(2\n3*3\n", "eval")
	assert.ErrorIs(t, err, errSomeFailed)
	assert.Equal(t, "2\n9\n", out)
	assert.Contains(t, stderr, "(2: UnbalancedParenthesis")
}

func TestEval_PrecisionFromConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("display:\n  precision: 3\n"), 0644))

	out, _, err := execute(t, "", "--config", path, "eval", "2/3")
	require.NoError(t, err)
	assert.Equal(t, "0.667\n", out)
}

func TestEval_InvalidPrecision(t *testing.T) {
	_, _, err := execute(t, "", "eval", "-p", "40", "1")
	assert.Error(t, err)
}

func TestInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("display:\n  history_size: 0\n"), 0644))

	_, _, err := execute(t, "", "--config", path, "eval", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "display.history_size")
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "calculator version "+Version)

	out, _, err = execute(t, "", "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "Calculator "+Version)
}

func TestSubcommandsRegistered(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range GetRootCmd().Commands() {
		names[c.Name()] = true
	}
	for _, name := range []string{"eval", "serve", "mcp", "tui", "version"} {
		assert.True(t, names[name], "missing subcommand %s", name)
	}
}

func TestStdioCommandsLogToStderr(t *testing.T) {
	for _, c := range []string{"eval", "mcp", "tui"} {
		sub, _, err := GetRootCmd().Find([]string{c})
		require.NoError(t, err)
		assert.Equal(t, "true", sub.Annotations[annotationStdio], c)
	}
}
