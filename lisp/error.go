// Copyright © 2018 The ELPS authors

package lisp

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/luthersystems/eclj/parser/token"
)

// Error conditions raised by the reader and the evaluator.
const (
	CondParseError           = "parse-error"
	CondUnboundVariable      = "unbound-variable"
	CondArityError           = "arity-error"
	CondMalformedCond        = "malformed-cond"
	CondMalformedForm        = "malformed-form"
	CondUnknownExpression    = "unknown-expression"
	CondUnknownProcedureType = "unknown-procedure-type"
	CondNativeError          = "native-error"
	CondStackOverflow        = "stack-overflow"
)

// ErrorVal is an interpreter error.  Every ErrorVal has a condition which
// classifies the failure.  Errors raised during evaluation carry a copy of
// the call stack at the time they were raised.
type ErrorVal struct {
	// Source is the location of the innermost form being evaluated when the
	// error occurred.
	Source *token.Location
	// Stack is the call stack when the error was raised.  Errors raised by
	// the reader have no stack.
	Stack *CallStack

	condition string
	msg       string
	cause     error
}

// ErrorConditionf returns an ErrorVal with the given condition and a message
// rendered using fmt.Sprintf.  The returned error has no source location or
// stack.
func ErrorConditionf(condition string, format string, v ...interface{}) *ErrorVal {
	return &ErrorVal{
		condition: condition,
		msg:       fmt.Sprintf(format, v...),
	}
}

// WrapError returns an ErrorVal with the given condition whose message is
// taken from err.  The returned error unwraps to err.
func WrapError(condition string, err error) *ErrorVal {
	return &ErrorVal{
		condition: condition,
		msg:       err.Error(),
		cause:     err,
	}
}

// Error implements the error interface.
func (e *ErrorVal) Error() string {
	if !IsNativeSource(e.Source) {
		return fmt.Sprintf("%s: %s", e.Source, e.baseMessage())
	}
	return e.baseMessage()
}

func (e *ErrorVal) baseMessage() string {
	return fmt.Sprintf("%s: %s", e.condition, e.msg)
}

// Condition returns the error condition name (e.g. "parse-error").
func (e *ErrorVal) Condition() string {
	return e.condition
}

// ErrorMessage returns the message in the error without its location or
// condition.
func (e *ErrorVal) ErrorMessage() string {
	return e.msg
}

// Unwrap returns the Go error wrapped by e, if any.
func (e *ErrorVal) Unwrap() error {
	return e.cause
}

// FunName returns the name of the procedure on the top of the call stack
// when the error occurred.
func (e *ErrorVal) FunName() string {
	return e.Stack.Top().FunName()
}

// WriteTrace writes the error and a stack trace to w
func (e *ErrorVal) WriteTrace(w io.Writer) (int, error) {
	bw := bufio.NewWriter(w)
	var n int
	var err error
	wrote := func(_n int, _err error) bool {
		n += _n
		err = _err
		return err == nil
	}
	if !wrote(bw.WriteString(e.Error())) {
		return n, err
	}
	if !wrote(bw.WriteString("\n")) {
		return n, err
	}
	if e.Stack != nil {
		if !wrote(e.Stack.DebugPrint(bw)) {
			return n, err
		}
	}
	return n, bw.Flush()
}

// Condition returns the condition of the first ErrorVal in err's chain.  If
// err is not an interpreter error Condition returns the empty string.
func Condition(err error) string {
	var lerr *ErrorVal
	if errors.As(err, &lerr) {
		return lerr.Condition()
	}
	return ""
}

// associate attaches src to err if err is an ErrorVal that does not yet
// know where it occurred.
func associate(err error, src *token.Location) error {
	var lerr *ErrorVal
	if !errors.As(err, &lerr) {
		return err
	}
	if IsNativeSource(lerr.Source) && !IsNativeSource(src) {
		lerr.Source = src
	}
	return err
}
