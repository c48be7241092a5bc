// Copyright © 2018 The ELPS authors

package lisp

import (
	"bytes"
	"fmt"
	"sort"
)

// LBuiltin is a Go function implementing a primitive procedure.  It receives
// evaluated arguments.
type LBuiltin func(env *LEnv, args []*LVal) (*LVal, error)

// VarArgSymbol marks the final formal argument of a variadic builtin.
const VarArgSymbol = "&rest"

// LBuiltinDef is a built-in function
type LBuiltinDef interface {
	Name() string
	Formals() []string
	Docstring() string
	Eval(env *LEnv, args []*LVal) (*LVal, error)
}

type langBuiltin struct {
	name    string
	formals []string
	doc     string
	fun     LBuiltin
}

func (fun *langBuiltin) Name() string {
	return fun.name
}

func (fun *langBuiltin) Formals() []string {
	return fun.formals
}

func (fun *langBuiltin) Docstring() string {
	return fun.doc
}

// Eval checks the number of arguments against the formals of fun and calls
// its implementation.
func (fun *langBuiltin) Eval(env *LEnv, args []*LVal) (*LVal, error) {
	nreq, variadic := formalArity(fun.formals)
	switch {
	case len(args) < nreq:
		return nil, fmt.Errorf("too few arguments: expected %s, got %d", arityString(nreq, variadic), len(args))
	case !variadic && len(args) > nreq:
		return nil, fmt.Errorf("too many arguments: expected %d, got %d", nreq, len(args))
	}
	return fun.fun(env, args)
}

func formalArity(formals []string) (nreq int, variadic bool) {
	for i, f := range formals {
		if f == VarArgSymbol {
			return i, true
		}
	}
	return len(formals), false
}

func arityString(nreq int, variadic bool) string {
	if variadic {
		return fmt.Sprintf("at least %d", nreq)
	}
	return fmt.Sprint(nreq)
}

func builtinDocstring(f LBuiltinDef) string {
	var buf bytes.Buffer
	buf.WriteString("(")
	buf.WriteString(f.Name())
	for _, formal := range f.Formals() {
		buf.WriteString(" ")
		buf.WriteString(formal)
	}
	buf.WriteString(")")
	if doc := f.Docstring(); doc != "" {
		buf.WriteString("\n\n")
		buf.WriteString(doc)
	}
	return buf.String()
}

var langBuiltins = []*langBuiltin{
	{"car", []string{"seq"}, "Returns the first element of seq, or nil if seq is empty.", builtinCAR},
	{"cdr", []string{"seq"}, "Returns a list of every element of seq after the first.  The result is the empty list if seq has fewer than two elements.", builtinCDR},
	{"cons", []string{"head", "tail"}, "Returns a new list with head as its first element followed by the elements of tail.  Tail must be a list, a vector, or nil.", builtinCons},
	{"nil?", []string{"expr"}, "Returns true if expr is nil.", builtinIsNil},
	{"true?", []string{"expr"}, "Returns true if expr is the literal true.", builtinIsTrue},
	{"false?", []string{"expr"}, "Returns true if expr is the literal false.", builtinIsFalse},
	{"+", []string{VarArgSymbol, "x"}, "Returns the sum of its arguments.  Returns 0 when called without arguments.", builtinAdd},
	{"-", []string{"x", VarArgSymbol, "rest"}, "Returns x minus the sum of rest.  Returns the negation of x when called with a single argument.", builtinSub},
	{"=", []string{"a", "b", VarArgSymbol, "rest"}, "Returns true if a and b are structurally equal.  Values of different types are never equal.", builtinEqual},
	{"println", []string{"expr"}, "Writes the display form of expr to standard output followed by a newline and returns expr.  Strings are written without quotes.", builtinPrintln},
}

// DefaultBuiltins returns the default set of LBuiltinDefs added to LEnv
// objects when LEnv.AddBuiltins is called without arguments.
func DefaultBuiltins() []LBuiltinDef {
	ops := make([]LBuiltinDef, len(langBuiltins))
	for i := range ops {
		ops[i] = langBuiltins[i]
	}
	return ops
}

// BuiltinNames returns the sorted names of the default builtins.
func BuiltinNames() []string {
	names := make([]string, len(langBuiltins))
	for i, b := range langBuiltins {
		names[i] = b.name
	}
	sort.Strings(names)
	return names
}

func seqCells(v *LVal) ([]*LVal, error) {
	switch {
	case v.Type == LList, v.Type == LVector:
		return v.Cells, nil
	case v.IsNil():
		return nil, nil
	}
	return nil, fmt.Errorf("argument is not a sequence: %v", v.Type)
}

func builtinCAR(env *LEnv, args []*LVal) (*LVal, error) {
	cells, err := seqCells(args[0])
	if err != nil {
		return nil, err
	}
	if len(cells) == 0 {
		return Nil(), nil
	}
	return cells[0], nil
}

func builtinCDR(env *LEnv, args []*LVal) (*LVal, error) {
	cells, err := seqCells(args[0])
	if err != nil {
		return nil, err
	}
	if len(cells) < 2 {
		return List(nil), nil
	}
	rest := make([]*LVal, len(cells)-1)
	copy(rest, cells[1:])
	return List(rest), nil
}

func builtinCons(env *LEnv, args []*LVal) (*LVal, error) {
	head, tail := args[0], args[1]
	cells, err := seqCells(tail)
	if err != nil {
		return nil, fmt.Errorf("second argument is not a sequence: %v", tail.Type)
	}
	lis := make([]*LVal, 0, 1+len(cells))
	lis = append(lis, head)
	lis = append(lis, cells...)
	return List(lis), nil
}

func builtinIsNil(env *LEnv, args []*LVal) (*LVal, error) {
	return Bool(args[0].IsNil()), nil
}

func builtinIsTrue(env *LEnv, args []*LVal) (*LVal, error) {
	v := args[0]
	return Bool(v.Type == LLiteral && v.Str == TrueSymbol), nil
}

func builtinIsFalse(env *LEnv, args []*LVal) (*LVal, error) {
	v := args[0]
	return Bool(v.Type == LLiteral && v.Str == FalseSymbol), nil
}

func builtinAdd(env *LEnv, args []*LVal) (*LVal, error) {
	var sum float64
	for i, v := range args {
		if v.Type != LNumber {
			return nil, fmt.Errorf("argument %d is not a number: %v", i+1, v.Type)
		}
		sum += v.Num
	}
	return Number(sum), nil
}

func builtinSub(env *LEnv, args []*LVal) (*LVal, error) {
	for i, v := range args {
		if v.Type != LNumber {
			return nil, fmt.Errorf("argument %d is not a number: %v", i+1, v.Type)
		}
	}
	if len(args) == 1 {
		return Number(-args[0].Num), nil
	}
	diff := args[0].Num
	for _, v := range args[1:] {
		diff -= v.Num
	}
	return Number(diff), nil
}

// builtinEqual compares only its first two arguments.
func builtinEqual(env *LEnv, args []*LVal) (*LVal, error) {
	return Bool(args[0].Equal(args[1])), nil
}

func builtinPrintln(env *LEnv, args []*LVal) (*LVal, error) {
	_, err := fmt.Fprintln(env.Runtime.getStdout(), args[0].Display())
	if err != nil {
		return nil, err
	}
	return args[0], nil
}
