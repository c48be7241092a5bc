// Copyright © 2018 The ELPS authors

// Package lisptest provides table driven test helpers for lisp environments.
package lisptest

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/luthersystems/eclj/lisp"
	"github.com/luthersystems/eclj/parser"
	"github.com/sirupsen/logrus"
)

// NewEnv returns an initialized root environment whose debugging output is
// written to the test log.  Additional config is applied after the default
// test configuration.
func NewEnv(t testing.TB, config ...Config) (*lisp.LEnv, error) {
	logger := NewLogger(t)
	t.Cleanup(logger.Flush)
	log := logrus.New()
	log.SetOutput(logger)
	log.SetLevel(logrus.WarnLevel)
	env := lisp.NewEnvRuntime(nil)
	base := []lisp.Config{
		lisp.WithReader(parser.NewReader()),
		lisp.WithStderr(logger),
		lisp.WithLogger(log),
	}
	err := lisp.InitializeUserEnv(env, append(base, config...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize lisp environment: %w", err)
	}
	return env, nil
}

// Config is an alias of lisp.Config accepted by NewEnv.
type Config = lisp.Config

// LispError reports err as a test error, including the lisp stack trace when
// err is a *lisp.ErrorVal.
func LispError(t testing.TB, err error) {
	var lerr *lisp.ErrorVal
	if !errors.As(err, &lerr) {
		t.Error(err)
		return
	}
	var buf bytes.Buffer
	_, ioerr := lerr.WriteTrace(&buf)
	if ioerr != nil {
		t.Errorf("io error: %v", ioerr)
		t.Error(err)
		return
	}
	t.Error(buf.String())
}

// TestSequence is a sequence of lisp expressions which are evaluated
// sequentially by a lisp.LEnv.
type TestSequence []struct {
	Expr   string // a lisp expression
	Result string // the printed result, or the condition of the error raised
	Output string // program output written to Runtime.Stdout
}

// TestSuite is a set of named TestSequences
type TestSuite []struct {
	Name string
	TestSequence
}

// ErrorResult returns the string compared against TestSequence results when
// evaluation fails with the given condition.
func ErrorResult(condition string) string {
	return "#<error " + condition + ">"
}

// RunTestSuite runs each TestSequence in tests on isolated lisp.LEnvs.
func RunTestSuite(t *testing.T, tests TestSuite) {
	for i, test := range tests {
		var stdout bytes.Buffer
		env, err := NewEnv(t, lisp.WithStdout(&stdout))
		if err != nil {
			t.Errorf("test %d %q: %v", i, test.Name, err)
			continue
		}
		for j, expr := range test.TestSequence {
			stdout.Reset()
			v, err := env.Runtime.Reader.Read("test", strings.NewReader(expr.Expr))
			if err != nil {
				t.Errorf("test %d %q: expr %d: parse error: %v", i, test.Name, j, err)
				continue
			}
			if len(v) == 0 {
				t.Errorf("test %d %q: expr %d: no expression parsed", i, test.Name, j)
				continue
			}
			if len(v) != 1 {
				t.Errorf("test %d %q: expr %d: more than one expression parsed (%d)", i, test.Name, j, len(v))
				continue
			}
			var result string
			res, err := env.Eval(v[0])
			if err != nil {
				result = ErrorResult(lisp.Condition(err))
			} else {
				result = res.String()
			}
			if result != expr.Result {
				t.Errorf("test %d %q: expr %d: expected result %s (got %s)", i, test.Name, j, expr.Result, result)
				if err != nil {
					t.Log(err)
				}
			}
			if stdout.String() != expr.Output {
				t.Errorf("test %d %q: expr %d: expected output %q (got %q)", i, test.Name, j, expr.Output, stdout.String())
			}
			if h := env.Runtime.Stack.Height(); h != 0 {
				t.Errorf("test %d %q: expr %d: call stack not empty after evaluation: %d frames", i, test.Name, j, h)
			}
		}
	}
}

// RunBenchmark runs a standard benchmark that executes expressions parsed from
// source.
func RunBenchmark(b *testing.B, source string) {
	b.StopTimer()
	exprs, err := parser.ParseString("benchmark", source)
	if err != nil {
		b.Fatalf("parse error: %v", err)
	}
	for i := 0; i < b.N; i++ {
		env, err := NewEnv(b, lisp.WithStdout(&bytes.Buffer{}))
		if err != nil {
			b.Fatal(err)
		}
		b.StartTimer()
		for i, expr := range exprs {
			_, err := env.Eval(expr)
			if err != nil {
				b.Fatalf("expr %d: %v", i, err)
			}
		}
		b.StopTimer()
	}
}
