// Copyright © 2024 The ELPS authors

package cmd

import (
	"io"
	"os"

	"github.com/luthersystems/eclj/diagnostic"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

func colorMode() diagnostic.ColorMode {
	mode, err := diagnostic.ParseColorMode(viper.GetString(keyColor))
	if err != nil {
		logrus.WithError(err).Warn("using automatic color mode")
	}
	return mode
}

// newRenderer returns a diagnostic renderer which reads source from sources
// before falling back to the file system.
func newRenderer(sources map[string][]byte) *diagnostic.Renderer {
	return &diagnostic.Renderer{
		Color: colorMode(),
		SourceReader: func(name string) ([]byte, error) {
			if src, ok := sources[name]; ok {
				return src, nil
			}
			return os.ReadFile(name) //nolint:gosec // reads user-specified source files for display
		},
	}
}

// renderError renders err to w as a diagnostic and returns errReported.
func renderError(w io.Writer, sources map[string][]byte, err error) error {
	rerr := newRenderer(sources).RenderError(w, err)
	if rerr != nil {
		return rerr
	}
	return errReported
}
