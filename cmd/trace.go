// Copyright © 2018 The ELPS authors

package cmd

import (
	"context"
	"fmt"

	"github.com/luthersystems/eclj/lisp"
	"github.com/luthersystems/eclj/lisp/x/profiler"
	"github.com/sirupsen/logrus"
	octrace "go.opencensus.io/trace"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// Span profiler kinds accepted by run --trace.
const (
	traceOpenTelemetry = "otel"
	traceOpenCensus    = "opencensus"
)

// enableTracing attaches a span profiler of the given kind to env.  Finished
// spans are logged to logger at info level.  The returned function ends the
// profiling session and flushes any pending spans.
func enableTracing(ctx context.Context, kind string, env *lisp.LEnv, logger *logrus.Logger, opts ...profiler.Option) (func() error, error) {
	if !logger.IsLevelEnabled(logrus.InfoLevel) {
		logger.SetLevel(logrus.InfoLevel)
	}
	switch kind {
	case traceOpenTelemetry:
		tp := sdktrace.NewTracerProvider(
			sdktrace.WithSyncer(&otelLogExporter{logger: logger}),
			sdktrace.WithSampler(sdktrace.AlwaysSample()),
		)
		otel.SetTracerProvider(tp)
		p := profiler.NewOpenTelemetryAnnotator(env.Runtime, ctx, opts...)
		if err := lisp.WithProfiler(p)(env); err != nil {
			return nil, err
		}
		return func() error {
			if err := p.Complete(); err != nil {
				return err
			}
			return tp.Shutdown(ctx)
		}, nil
	case traceOpenCensus:
		octrace.ApplyConfig(octrace.Config{DefaultSampler: octrace.AlwaysSample()})
		exporter := &ocLogExporter{logger: logger}
		octrace.RegisterExporter(exporter)
		p := profiler.NewOpenCensusAnnotator(env.Runtime, ctx, opts...)
		if err := lisp.WithProfiler(p)(env); err != nil {
			octrace.UnregisterExporter(exporter)
			return nil, err
		}
		return func() error {
			defer octrace.UnregisterExporter(exporter)
			return p.Complete()
		}, nil
	default:
		return nil, fmt.Errorf("unknown trace kind %q (expected %s or %s)", kind, traceOpenTelemetry, traceOpenCensus)
	}
}

// otelLogExporter is an OpenTelemetry span exporter which logs spans.
type otelLogExporter struct {
	logger *logrus.Logger
}

var _ sdktrace.SpanExporter = (*otelLogExporter)(nil)

func (e *otelLogExporter) ExportSpans(ctx context.Context, spans []sdktrace.ReadOnlySpan) error {
	for _, span := range spans {
		fields := logrus.Fields{
			"span":     span.Name(),
			"duration": span.EndTime().Sub(span.StartTime()),
			"trace_id": span.SpanContext().TraceID().String(),
			"span_id":  span.SpanContext().SpanID().String(),
		}
		if parent := span.Parent(); parent.IsValid() {
			fields["parent_id"] = parent.SpanID().String()
		}
		e.logger.WithFields(fields).Info("span")
	}
	return nil
}

func (e *otelLogExporter) Shutdown(ctx context.Context) error {
	return nil
}

// ocLogExporter is an OpenCensus span exporter which logs spans.
type ocLogExporter struct {
	logger *logrus.Logger
}

var _ octrace.Exporter = (*ocLogExporter)(nil)

func (e *ocLogExporter) ExportSpan(sd *octrace.SpanData) {
	fields := logrus.Fields{
		"span":     sd.Name,
		"duration": sd.EndTime.Sub(sd.StartTime),
		"trace_id": sd.TraceID.String(),
		"span_id":  sd.SpanID.String(),
	}
	if sd.ParentSpanID != (octrace.SpanID{}) {
		fields["parent_id"] = sd.ParentSpanID.String()
	}
	e.logger.WithFields(fields).Info("span")
}
