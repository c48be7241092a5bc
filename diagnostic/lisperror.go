// Copyright © 2024 The ELPS authors

package diagnostic

import (
	"errors"
	"fmt"
	"io"

	"github.com/luthersystems/eclj/lisp"
)

// MaxFrameNotes is the number of innermost call frames noted by FromError.
const MaxFrameNotes = 20

// FromError converts err to a Diagnostic.  Interpreter errors are annotated
// with the location of the failing form and one note per call frame,
// innermost first, up to MaxFrameNotes.  Other errors produce a diagnostic containing only their
// message.
func FromError(err error) Diagnostic {
	var lerr *lisp.ErrorVal
	if !errors.As(err, &lerr) {
		return Diagnostic{
			Severity: SeverityError,
			Message:  err.Error(),
		}
	}
	d := Diagnostic{
		Severity: SeverityError,
		Message:  lerr.Condition() + ": " + lerr.ErrorMessage(),
	}
	if src := lerr.Source; !lisp.IsNativeSource(src) {
		d.Spans = append(d.Spans, Span{
			File: src.File,
			Line: src.Line,
			Col:  src.Col,
		})
	}
	if lerr.Stack != nil {
		frames := lerr.Stack.Frames
		stop := 0
		if len(frames) > MaxFrameNotes {
			stop = len(frames) - MaxFrameNotes
		}
		for i := len(frames) - 1; i >= stop; i-- {
			frame := &lerr.Stack.Frames[i]
			loc := "native code"
			if !lisp.IsNativeSource(frame.Source) {
				loc = frame.Source.String()
			}
			d.Notes = append(d.Notes, "in "+frame.FunName()+" at "+loc)
		}
		if stop > 0 {
			d.Notes = append(d.Notes, fmt.Sprintf("... %d more frames", stop))
		}
	}
	return d
}

// RenderError renders err to w as a single diagnostic.
func (r *Renderer) RenderError(w io.Writer, err error) error {
	return r.Render(w, FromError(err))
}
