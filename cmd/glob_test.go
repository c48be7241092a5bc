// Copyright © 2024 The ELPS authors

package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	}
}

func TestExpandArgs(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"b.clj":          "2",
		"a.eclj":         "1",
		"notes.txt":      "ignored",
		"sub/c.clj":      "3",
		"sub/deep/d.clj": "4",
	})

	got, err := expandArgs([]string{"first.clj", dir + "/..."})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"first.clj",
		filepath.Join(dir, "a.eclj"),
		filepath.Join(dir, "b.clj"),
		filepath.Join(dir, "sub", "c.clj"),
		filepath.Join(dir, "sub", "deep", "d.clj"),
	}, got)
}

func TestExpandArgsNoFiles(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"README": "none"})
	_, err := expandArgs([]string{dir + "/..."})
	assert.Error(t, err)

	_, err = expandArgs([]string{filepath.Join(dir, "missing") + "/..."})
	assert.Error(t, err)
}

func TestExpandArgsPassThrough(t *testing.T) {
	got, err := expandArgs([]string{"a.clj", "b/c.clj"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.clj", "b/c.clj"}, got)
}
