// Copyright © 2018 The ELPS authors

package lisp

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Config is a function that configures a root environment or its runtime.
type Config func(env *LEnv) error

// WithMaximumStackHeight returns a Config that will prevent an execution
// environment from allowing the call stack height to exceed n.  A value of
// zero removes the limit.
func WithMaximumStackHeight(n int) Config {
	return func(env *LEnv) error {
		env.Runtime.Stack.MaxHeight = n
		return nil
	}
}

// WithReader returns a Config that makes environments use r to parse source
// streams.  There is no default Reader for an environment.
func WithReader(r Reader) Config {
	return func(env *LEnv) error {
		env.Runtime.Reader = r
		return nil
	}
}

// WithStdout returns a Config that makes environments write program output
// to w instead of the default, os.Stdout.
func WithStdout(w io.Writer) Config {
	return func(env *LEnv) error {
		env.Runtime.Stdout = w
		return nil
	}
}

// WithStderr returns a Config that makes environments write debugging output
// to w instead of the default, os.Stderr.  The runtime logger is redirected
// to w as well.
func WithStderr(w io.Writer) Config {
	return func(env *LEnv) error {
		env.Runtime.Stderr = w
		env.Runtime.log().SetOutput(w)
		return nil
	}
}

// WithLogger returns a Config that replaces the runtime logger.
func WithLogger(logger *logrus.Logger) Config {
	return func(env *LEnv) error {
		env.Runtime.Logger = logger
		return nil
	}
}

// WithProfiler returns a Config that enables p for the environment's
// runtime.
func WithProfiler(p Profiler) Config {
	return func(env *LEnv) error {
		env.Runtime.Profiler = p
		if p.IsEnabled() {
			return nil
		}
		return p.Enable()
	}
}
