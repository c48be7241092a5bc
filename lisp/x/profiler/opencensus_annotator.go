// Copyright © 2018 The ELPS authors

package profiler

import (
	"context"
	"errors"

	"github.com/luthersystems/eclj/lisp"
	"go.opencensus.io/trace"
)

var _ lisp.Profiler = &ocAnnotator{}

type ocAnnotator struct {
	profiler
	currentContext context.Context
	currentSpan    *trace.Span
}

// NewOpenCensusAnnotator returns a profiler that starts an OpenCensus span
// for each procedure application.  Spans are exported to the exporters
// registered with the opencensus trace package.
func NewOpenCensusAnnotator(runtime *lisp.Runtime, parentContext context.Context, opts ...Option) lisp.Profiler {
	p := &ocAnnotator{
		profiler: profiler{
			runtime: runtime,
		},
		currentContext: parentContext,
	}
	p.profiler.applyConfigs(opts...)
	return p
}

func (p *ocAnnotator) Enable() error {
	p.runtime.Profiler = p
	if p.currentContext == nil {
		return errors.New("we can only append spans to a context that is linked to opencensus")
	}
	return p.profiler.Enable()
}

func (p *ocAnnotator) Complete() error {
	if p.currentSpan != nil {
		p.currentSpan.End()
	}
	return nil
}

func (p *ocAnnotator) Start(fun *lisp.LVal) func() {
	if p.skipTrace(fun) {
		return func() {}
	}
	oldContext := p.currentContext
	prettyLabel, funName := p.prettyFunName(fun)
	p.currentContext, p.currentSpan = trace.StartSpan(p.currentContext, prettyLabel)
	attrs := []trace.Attribute{
		trace.StringAttribute("namespace", funNamespace(fun)),
		trace.StringAttribute("function", funName),
	}
	if loc := getSourceLoc(fun); loc != nil {
		attrs = append(attrs,
			trace.StringAttribute("file", loc.File),
			trace.Int64Attribute("line", int64(loc.Line)),
			trace.Int64Attribute("column", int64(loc.Col)),
		)
	}
	p.currentSpan.AddAttributes(attrs...)
	return func() {
		p.currentSpan.End()
		p.currentContext = oldContext
		p.currentSpan = trace.FromContext(p.currentContext)
	}
}
