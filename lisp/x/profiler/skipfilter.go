// Copyright © 2018 The ELPS authors

package profiler

import (
	"regexp"

	"github.com/luthersystems/eclj/lisp"
)

// SkipFilter returns true for procedures which should not produce spans.
type SkipFilter func(fun *lisp.LVal) bool

func defaultSkipFilter(fun *lisp.LVal) bool {
	return fun.Type != lisp.LFun
}

// WithDocFilter filters to only include spans for procedures with
// docstrings that denote tracing.
func WithDocFilter() Option {
	return WithSkipFilter(docSkipFilter)
}

// WithPrimitiveFilter excludes primitive procedures from tracing.
func WithPrimitiveFilter() Option {
	return WithSkipFilter(func(fun *lisp.LVal) bool {
		return fun.IsPrimitive()
	})
}

// WithSkipFilter sets the filter for tracing spans.
func WithSkipFilter(skipFilter SkipFilter) Option {
	return func(p *profiler) {
		p.skipFilter = skipFilter
	}
}

// DocTrace is a magic string used to enable tracing in a profiler configured
// WithDocFilter. All procedures with a docstring that contains this string
// will be traced.
const DocTrace = "@trace"

var docTraceRegExp = regexp.MustCompile(DocTrace)

func docSkipFilter(fun *lisp.LVal) bool {
	if fun.IsPrimitive() || fun.Doc == "" {
		return true
	}
	return !docTraceRegExp.MatchString(fun.Doc)
}
