// Copyright © 2018 The ELPS authors

package cmd

import (
	"fmt"
	"io"

	"github.com/luthersystems/eclj/lisp"
	"github.com/luthersystems/eclj/parser"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// newLogger returns a logger writing to w at the configured log-level.
func newLogger(w io.Writer) (*logrus.Logger, error) {
	level, err := logrus.ParseLevel(viper.GetString(keyLogLevel))
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", keyLogLevel, err)
	}
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetLevel(level)
	return logger, nil
}

// envConfig returns the environment configuration shared by every command.
func envConfig(stdout, stderr io.Writer, logger *logrus.Logger) []lisp.Config {
	return []lisp.Config{
		lisp.WithReader(parser.NewReader()),
		lisp.WithStdout(stdout),
		lisp.WithStderr(stderr),
		lisp.WithLogger(logger),
		lisp.WithMaximumStackHeight(viper.GetInt(keyMaxDepth)),
	}
}

// newEnv returns an initialized root environment for a command.
func newEnv(stdout, stderr io.Writer) (*lisp.LEnv, error) {
	logger, err := newLogger(stderr)
	if err != nil {
		return nil, err
	}
	env := lisp.NewEnvRuntime(nil)
	err = lisp.InitializeUserEnv(env, envConfig(stdout, stderr, logger)...)
	if err != nil {
		return nil, fmt.Errorf("language initialization failure: %w", err)
	}
	return env, nil
}
