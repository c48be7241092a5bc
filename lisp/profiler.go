// Copyright © 2018 The ELPS authors

package lisp

// Profiler observes procedure applications.
type Profiler interface {
	// IsEnabled returns true if the profiler is collecting data.
	IsEnabled() bool
	// Enable attaches the profiler to its runtime.
	Enable() error
	// Complete ends the profiling session.
	Complete() error
	// Start marks the beginning of an application of fun and returns a
	// function that marks its end.
	Start(fun *LVal) func()
}
