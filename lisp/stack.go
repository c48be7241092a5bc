// Copyright © 2018 The ELPS authors

package lisp

import (
	"fmt"
	"io"

	"github.com/luthersystems/eclj/parser/token"
)

// DefaultMaxHeight is the default maximum height of a CallStack.
const DefaultMaxHeight = 10000

// CallStack is a procedure call stack.
type CallStack struct {
	Frames []CallFrame
	// MaxHeight limits the number of frames on the stack.  A value less than
	// or equal to zero disables the limit.
	MaxHeight int
}

// CallFrame is one frame in the CallStack
type CallFrame struct {
	// Source is the location of the application that pushed the frame.
	Source    *token.Location
	Name      string
	Primitive bool
}

// FunName returns the name of the procedure executing in f.  Anonymous
// procedures are named "fn".
func (f *CallFrame) FunName() string {
	if f == nil {
		return ""
	}
	if f.Name == "" {
		return "fn"
	}
	return f.Name
}

func (f *CallFrame) String() string {
	if !IsNativeSource(f.Source) {
		return fmt.Sprintf("%s: %s", f.Source, f.desc())
	}
	return f.desc()
}

func (f *CallFrame) desc() string {
	if f.Primitive {
		return f.FunName() + " [primitive]"
	}
	return f.FunName()
}

// Copy creates a copy of the current stack so that it can be attach to a
// runtime error.
func (s *CallStack) Copy() *CallStack {
	if s == nil {
		return nil
	}
	frames := make([]CallFrame, len(s.Frames))
	copy(frames, s.Frames)
	return &CallStack{
		Frames:    frames,
		MaxHeight: s.MaxHeight,
	}
}

// Height returns the number of frames on the stack.
func (s *CallStack) Height() int {
	if s == nil {
		return 0
	}
	return len(s.Frames)
}

// Top returns the CallFrame at the top of the stack or nil if none exists.
func (s *CallStack) Top() *CallFrame {
	if s == nil || len(s.Frames) == 0 {
		return nil
	}
	return &s.Frames[len(s.Frames)-1]
}

// PushFrame pushes a new frame for the procedure fun onto s.  PushFrame
// returns a StackOverflowError, leaving s unmodified, if the push would
// exceed s.MaxHeight.
func (s *CallStack) PushFrame(src *token.Location, fun *LVal) error {
	if s.MaxHeight > 0 && len(s.Frames) >= s.MaxHeight {
		return &StackOverflowError{Height: len(s.Frames) + 1, Max: s.MaxHeight}
	}
	s.Frames = append(s.Frames, CallFrame{
		Source:    src,
		Name:      fun.Str,
		Primitive: fun.IsPrimitive(),
	})
	return nil
}

// Pop removes the top CallFrame from the stack and returns it.  Pop panics if
// the stack is empty.
func (s *CallStack) Pop() CallFrame {
	if len(s.Frames) < 1 {
		panic("pop called on an empty stack")
	}
	f := s.Frames[len(s.Frames)-1]
	s.Frames[len(s.Frames)-1] = CallFrame{}
	s.Frames = s.Frames[:len(s.Frames)-1]
	return f
}

// Reset discards every frame on the stack.
func (s *CallStack) Reset() {
	for i := range s.Frames {
		s.Frames[i] = CallFrame{}
	}
	s.Frames = s.Frames[:0]
}

// DebugPrint prints s
func (s *CallStack) DebugPrint(w io.Writer) (int, error) {
	n, err := fmt.Fprintf(w, "Stack Trace [%d frames -- entrypoint last]:\n", len(s.Frames))
	if err != nil {
		return n, err
	}
	indent := "  "
	for i := len(s.Frames) - 1; i >= 0; i-- {
		fstr := s.Frames[i].String()
		_n, err := fmt.Fprintf(w, "%sheight %d: %s\n", indent, i, fstr)
		n += _n
		if err != nil {
			return n, err
		}
	}
	return n, nil
}

// StackOverflowError is returned by PushFrame when the stack height limit
// would be exceeded.
type StackOverflowError struct {
	Height int
	Max    int
}

func (e *StackOverflowError) Error() string {
	return fmt.Sprintf("stack height %d exceeded maximum: %d", e.Height, e.Max)
}
