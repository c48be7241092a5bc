// Copyright © 2024 The ELPS authors

// Package diagnostic renders interpreter errors as annotated source
// snippets in the style of the Rust compiler:
//
//	error: native-error: car: argument is not a sequence: number
//	  --> test.clj:1:5
//	   |
//	 1 |  (do (car 1))
//	   |      ^^^^^^^
//	   |
//	   = note: in car at test.clj:1:5
package diagnostic

// Severity indicates the severity level of a diagnostic.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityNote
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityNote:
		return "note"
	default:
		return "unknown"
	}
}

// Span identifies a region of source code to highlight in the diagnostic.
type Span struct {
	File   string // source name passed to the Renderer's SourceReader
	Line   int    // 1-based line number
	Col    int    // 1-based start column
	EndCol int    // 1-based end column (0 = extent of the form at Col)
	Label  string // text shown after the underline
}

// Diagnostic is a single error, warning, or note with optional source
// annotations and trailing notes.
type Diagnostic struct {
	Severity Severity
	Message  string
	Spans    []Span
	Notes    []string // "= note:" lines, one per call frame
}
