// Copyright © 2018 The ELPS authors

package lisp

import (
	"io"
	"os"
	"sync/atomic"

	"github.com/sirupsen/logrus"
)

// Reader parses source streams into top-level forms.
type Reader interface {
	Read(name string, r io.Reader) ([]*LVal, error)
}

// Runtime is an object underlying a tree of LEnv values.  It is responsible
// for holding shared interpreter state, generating identifiers, and writing
// program and debugging output.
type Runtime struct {
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *logrus.Logger
	Stack    *CallStack
	Reader   Reader
	Profiler Profiler
	numenv   atomicCounter
}

// StandardRuntime returns a new Runtime that writes to os.Stdout and
// os.Stderr.  The runtime's logger writes warnings and errors to os.Stderr.
func StandardRuntime() *Runtime {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.WarnLevel)
	return &Runtime{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Logger: logger,
		Stack:  &CallStack{MaxHeight: DefaultMaxHeight},
	}
}

// GenEnvID returns a new identifier for an LEnv.
func (r *Runtime) GenEnvID() uint {
	return r.numenv.Add(1)
}

func (r *Runtime) getStdout() io.Writer {
	if r.Stdout == nil {
		return os.Stdout
	}
	return r.Stdout
}

func (r *Runtime) log() *logrus.Logger {
	if r.Logger == nil {
		r.Logger = logrus.StandardLogger()
	}
	return r.Logger
}

type atomicCounter uint64

func (c *atomicCounter) Add(n uint) uint {
	return uint(atomic.AddUint64((*uint64)(c), uint64(n)))
}
