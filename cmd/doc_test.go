// Copyright © 2024 The ELPS authors

package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/luthersystems/eclj/lisp"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs cmd with args and returns its stdout and stderr.
func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd.SetArgs(args)
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestDocCommand_DefaultFlags(t *testing.T) {
	cmd := DocCommand()
	assert.Equal(t, "doc [flags] NAME", cmd.Use)
	for _, name := range []string{"source-file", "list"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "missing flag: %s", name)
	}
}

func TestDocCommand_Primitive(t *testing.T) {
	out, _, err := execute(t, DocCommand(), "cons")
	require.NoError(t, err)
	lines := strings.Split(out, "\n")
	assert.Equal(t, "primitive (cons head tail)", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "  Returns a new list"), lines[1])
	for _, line := range lines[1:] {
		assert.LessOrEqual(t, len(line), 74)
	}
}

func TestDocCommand_SpecialForm(t *testing.T) {
	out, _, err := execute(t, DocCommand(), "if")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "special form (if test then [else])\n  Evaluates test."), out)
}

func TestDocCommand_EveryName(t *testing.T) {
	for _, name := range lisp.BuiltinNames() {
		out, _, err := execute(t, DocCommand(), name)
		if assert.NoError(t, err, name) {
			assert.True(t, strings.HasPrefix(out, "primitive ("+name), out)
			assert.Greater(t, strings.Count(out, "\n"), 1, "%s has no docstring", name)
		}
	}
	for _, form := range lisp.SpecialForms() {
		out, _, err := execute(t, DocCommand(), form.Name)
		if assert.NoError(t, err, form.Name) {
			assert.True(t, strings.HasPrefix(out, "special form "+form.Formals+"\n"), out)
		}
	}
}

func TestDocCommand_SourceFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lib.clj")
	src := `(defn my-func "Adds one to x." [x] (+ x 1))
(def limit 10)
(println "loading")
`
	require.NoError(t, os.WriteFile(path, []byte(src), 0o600))

	out, _, err := execute(t, DocCommand(), "-f", path, "my-func")
	require.NoError(t, err)
	assert.Equal(t, "compound (my-func x)\n  Adds one to x.\n", out)

	out, _, err = execute(t, DocCommand(), "-f", path, "limit")
	require.NoError(t, err)
	assert.Equal(t, "number limit 10\n", out)
}

func TestDocCommand_SourceFileError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.clj")
	require.NoError(t, os.WriteFile(path, []byte("(car 1)\n"), 0o600))

	_, stderr, err := execute(t, DocCommand(), "-f", path, "car")
	assert.ErrorIs(t, err, errReported)
	assert.Contains(t, stderr, "--> "+path+":1:1")
}

func TestDocCommand_List(t *testing.T) {
	out, _, err := execute(t, DocCommand(), "-l")
	require.NoError(t, err)
	assert.Contains(t, out, "car          primitive\n")
	assert.Contains(t, out, "cond         special form\n")
	assert.Contains(t, out, "println      primitive\n")

	_, _, err = execute(t, DocCommand(), "-l", "car")
	assert.Error(t, err)
}

func TestDocCommand_Unknown(t *testing.T) {
	_, _, err := execute(t, DocCommand(), "no-such-thing")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no documentation for no-such-thing")
	assert.Equal(t, lisp.CondUnboundVariable, lisp.Condition(err))

	_, _, err = execute(t, DocCommand(), "(car)")
	assert.Error(t, err)

	_, _, err = execute(t, DocCommand())
	assert.Error(t, err)
}
