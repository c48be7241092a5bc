// Copyright © 2018 The ELPS authors

// Package profiler contains lisp.Profiler implementations that annotate
// procedure applications with tracing spans.
package profiler

import (
	"fmt"
	"strings"

	"github.com/luthersystems/eclj/lisp"
	"github.com/luthersystems/eclj/parser/token"
)

// profiler is a minimal lisp.Profiler
type profiler struct {
	runtime    *lisp.Runtime
	enabled    bool
	skipFilter SkipFilter
	funLabeler FunLabeler
}

var _ lisp.Profiler = &profiler{}

func (p *profiler) IsEnabled() bool {
	return p.enabled
}

type Option func(*profiler)

func (p *profiler) applyConfigs(opts ...Option) {
	for _, opt := range opts {
		opt(p)
	}
}

func (p *profiler) Enable() error {
	if p.enabled {
		return fmt.Errorf("profiler already enabled")
	}
	p.enabled = true
	return nil
}

func (p *profiler) Complete() error {
	return nil
}

func (p *profiler) Start(fun *lisp.LVal) func() {
	return func() {}
}

// defaultFunName returns the name a procedure was defined with.  Anonymous
// procedures are named "fn".
func defaultFunName(fun *lisp.LVal) string {
	if fun.Type != lisp.LFun {
		return ""
	}
	if fun.Str == "" {
		return "fn"
	}
	return fun.Str
}

// prettyFunName returns a pretty name and original name for a fun. If there is
// no pretty name, then the pretty name is the original name.
func (p *profiler) prettyFunName(fun *lisp.LVal) (string, string) {
	origLabel := defaultFunName(fun)
	if origLabel == "" {
		return "", ""
	}
	prettyLabel := origLabel
	if p.funLabeler != nil {
		prettyLabel = p.funLabeler(p.runtime, fun)
	}
	if prettyLabel == "" {
		prettyLabel = origLabel
	}
	return prettyLabel, origLabel
}

// skipTrace is a helper function to decide whether to skip tracing.
func (p *profiler) skipTrace(v *lisp.LVal) bool {
	return !p.enabled || defaultSkipFilter(v) || p.skipFilter != nil && p.skipFilter(v)
}

// funNamespace returns the namespace of a qualified procedure name.
// Primitives belong to the "lisp" namespace and unqualified compound
// procedures to "user".
func funNamespace(fun *lisp.LVal) string {
	if fun.IsPrimitive() {
		return "lisp"
	}
	if i := strings.Index(fun.Str, "/"); i > 0 {
		return fun.Str[:i]
	}
	return "user"
}

// getSourceLoc returns the location where fun was defined, or nil for
// primitives.
func getSourceLoc(fun *lisp.LVal) *token.Location {
	if lisp.IsNativeSource(fun.Source) {
		return nil
	}
	return fun.Source
}
