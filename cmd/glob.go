// Copyright © 2024 The ELPS authors

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// sourceExtensions are the file extensions collected by "dir/..." patterns.
var sourceExtensions = map[string]bool{
	".clj":  true,
	".eclj": true,
}

// expandArgs expands arguments, resolving patterns ending with "/..." to all
// source files found recursively under the given directory in lexical
// order. Non-pattern arguments pass through unchanged.
func expandArgs(args []string) ([]string, error) {
	var out []string
	for _, arg := range args {
		dir, ok := strings.CutSuffix(arg, "/...")
		if !ok {
			out = append(out, arg)
			continue
		}
		if dir == "" {
			dir = "."
		}
		files, err := findSourceFiles(dir)
		if err != nil {
			return nil, fmt.Errorf("expanding %s: %w", arg, err)
		}
		if len(files) == 0 {
			return nil, fmt.Errorf("expanding %s: no source files found", arg)
		}
		out = append(out, files...)
	}
	return out, nil
}

func findSourceFiles(root string) ([]string, error) {
	var files []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && sourceExtensions[filepath.Ext(path)] {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}
