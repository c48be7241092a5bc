// Copyright © 2024 The ELPS authors

package cmd

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCommand_Expression(t *testing.T) {
	out, _, err := execute(t, RunCommand(), "-p", "-e", "(+ 1 2)", `(cons 1 [2 3]) (println "x")`)
	require.NoError(t, err)
	assert.Equal(t, "3\n(1 2 3)\nx\n\"x\"\n", out)

	out, _, err = execute(t, RunCommand(), "-e", `(println "quiet")`)
	require.NoError(t, err)
	assert.Equal(t, "quiet\n", out)
}

func TestRunCommand_Files(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"lib/a.clj": "(defn twice [x] (+ x x))",
		"lib/b.clj": "(def four (twice 2))",
		"main.clj":  "(println four)\n(println (twice four))\n",
	})
	out, _, err := execute(t, RunCommand(), filepath.Join(dir, "lib")+"/...", filepath.Join(dir, "main.clj"))
	require.NoError(t, err)
	assert.Equal(t, "4\n8\n", out)
}

func TestRunCommand_Error(t *testing.T) {
	out, stderr, err := execute(t, RunCommand(), "-e", "(println 1)\n(car 1)\n(println 2)")
	assert.ErrorIs(t, err, errReported)
	assert.Equal(t, "1\n", out)
	assert.Contains(t, stderr, "error: native-error:")
	assert.Contains(t, stderr, "--> <expr 1>:2:1")
	assert.Contains(t, stderr, "2 |  (car 1)")
	assert.Contains(t, stderr, "^^^^^^^")
}

func TestRunCommand_ParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.clj")
	writeFiles(t, filepath.Dir(path), map[string]string{"bad.clj": "(println 1"})
	out, stderr, err := execute(t, RunCommand(), path)
	assert.ErrorIs(t, err, errReported)
	assert.Empty(t, out)
	assert.Contains(t, stderr, "--> "+path+":1:1")
}

func TestRunCommand_MissingFile(t *testing.T) {
	_, _, err := execute(t, RunCommand(), filepath.Join(t.TempDir(), "missing.clj"))
	require.Error(t, err)
	assert.NotErrorIs(t, err, errReported)
}

func TestRunCommand_Trace(t *testing.T) {
	for _, kind := range []string{traceOpenTelemetry, traceOpenCensus} {
		out, stderr, err := execute(t, RunCommand(), "--trace", kind, "-p", "-e", "(defn add [a b] (+ a b)) (add 1 2)")
		require.NoError(t, err, kind)
		assert.Equal(t, "ok\n3\n", out, kind)
		assert.Contains(t, stderr, "msg=span", kind)
		assert.Contains(t, stderr, "span=add", kind)
		assert.Contains(t, stderr, "parent_id=", kind)
	}
}

func TestRunCommand_TraceDocs(t *testing.T) {
	src := `(defn traced "@trace{ Traced Call }" [x] x) (defn plain [x] (traced x)) (plain 1)`
	_, stderr, err := execute(t, RunCommand(), "--trace", traceOpenTelemetry, "--trace-docs", "-e", src)
	require.NoError(t, err)
	assert.Contains(t, stderr, "span=Traced_Call")
	assert.NotContains(t, stderr, "span=plain")
}

func TestRunCommand_BadTrace(t *testing.T) {
	_, _, err := execute(t, RunCommand(), "--trace", "zipkin", "-e", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown trace kind "zipkin"`)
}
