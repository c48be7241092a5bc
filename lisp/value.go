// Copyright © 2018 The ELPS authors

package lisp

import (
	"bytes"
	"fmt"
	"math"
	"strconv"

	"github.com/luthersystems/eclj/parser/token"
)

// LType is the type of an LVal
type LType uint

// Possible LType values
const (
	// LInvalid (0) is not a valid lisp type.
	LInvalid LType = iota
	// LNumber values store a float64 in the LVal.Num field.  Integers and
	// floating point numbers share a single representation.
	LNumber
	// LString values store a string in the LVal.Str field.
	LString
	// LSymbol values store the symbol name in LVal.Str and an optional
	// namespace in LVal.Namespace.
	LSymbol
	// LKeyword values are self-evaluating atoms.  They use the same fields
	// as LSymbol values.
	LKeyword
	// LLiteral values are one of the shared singletons true, false, and nil.
	// The literal name is stored in LVal.Str.
	LLiteral
	// LList values store their elements in LVal.Cells.
	LList
	// LVector values store their elements in LVal.Cells.  Vectors evaluate
	// to themselves.
	LVector
	// LFun values are procedures.  See LFunType for the fields used by each
	// kind of procedure.
	LFun
	// LTypeMax is not a real type but represents a value numerically greater
	// than all valid LType values.
	LTypeMax
)

var lvalTypeStrings = []string{
	LInvalid: "INVALID",
	LNumber:  "number",
	LString:  "string",
	LSymbol:  "symbol",
	LKeyword: "keyword",
	LLiteral: "literal",
	LList:    "list",
	LVector:  "vector",
	LFun:     "procedure",
}

func (t LType) String() string {
	if t >= LType(len(lvalTypeStrings)) {
		return lvalTypeStrings[LInvalid]
	}
	return lvalTypeStrings[t]
}

// LFunType distinguishes procedures implemented in Go from procedures
// defined in lisp.
type LFunType uint8

// LFunType constants.
const (
	// FunPrimitive values store their Go implementation in LVal.Builtin and
	// their name in LVal.Str.
	FunPrimitive LFunType = iota
	// FunCompound values use the following fields in an LVal:
	//		LVal.Str      The name given by defn (if any)
	//		LVal.Doc      The docstring given by defn (if any)
	//		LVal.Env      The captured lexical environment
	//		LVal.Cells[0] A vector of parameter symbols
	//		LVal.Cells[1:] Body expressions (at least one)
	FunCompound
)

var lfunTypeStrings = []string{
	FunPrimitive: "primitive",
	FunCompound:  "compound",
}

func (ft LFunType) String() string {
	if ft >= LFunType(len(lfunTypeStrings)) {
		return "invalid-procedure-type"
	}
	return lfunTypeStrings[ft]
}

// Names of the literal values.
const (
	TrueSymbol  = "true"
	FalseSymbol = "false"
	NilSymbol   = "nil"
)

// LVal is a lisp value
type LVal struct {
	// Source is the value's originating location in source code.  Programs
	// should not modify the contents of Source as the reference may be shared
	// by multiple LVals.
	Source *token.Location

	// Env is the closure environment of a compound procedure.
	Env *LEnv

	// Builtin is the implementation of a primitive procedure.
	Builtin LBuiltin

	// Str used by LString, LSymbol, LKeyword, LLiteral and LFun values.
	Str string

	// Namespace qualifies LSymbol and LKeyword values.  It is empty for
	// plain names.
	Namespace string

	// Doc is a procedure docstring.
	Doc string

	// Cells stores the elements of sequences and the parameters and body of
	// compound procedures.
	Cells []*LVal

	// Num is used by LNumber values.
	Num float64

	// Type is the native type for a value in lisp.
	Type LType

	// FunType further classifies LFun values.
	FunType LFunType
}

// Singleton literals.  Callers must never mutate the values returned by Nil
// and Bool.
var (
	singletonNil   = &LVal{Source: nativeSource(), Type: LLiteral, Str: NilSymbol}
	singletonTrue  = &LVal{Source: nativeSource(), Type: LLiteral, Str: TrueSymbol}
	singletonFalse = &LVal{Source: nativeSource(), Type: LLiteral, Str: FalseSymbol}
)

// Nil returns the literal nil.
func Nil() *LVal {
	return singletonNil
}

// Bool returns the literal true or false.
func Bool(b bool) *LVal {
	if b {
		return singletonTrue
	}
	return singletonFalse
}

// Ok returns the symbol returned by definition and assignment forms.
func Ok() *LVal {
	return Symbol("ok")
}

// Number returns an LVal representing the number x.
func Number(x float64) *LVal {
	return &LVal{
		Source: nativeSource(),
		Type:   LNumber,
		Num:    x,
	}
}

// Int returns an LVal representing the integer x.
func Int(x int) *LVal {
	return Number(float64(x))
}

// String returns an LVal representing the string str.
func String(str string) *LVal {
	return &LVal{
		Source: nativeSource(),
		Type:   LString,
		Str:    str,
	}
}

// Symbol returns an LVal representing the plain symbol s.
func Symbol(s string) *LVal {
	return QualifiedSymbol("", s)
}

// QualifiedSymbol returns an LVal representing the symbol ns/name.
func QualifiedSymbol(ns string, name string) *LVal {
	return &LVal{
		Source:    nativeSource(),
		Type:      LSymbol,
		Namespace: ns,
		Str:       name,
	}
}

// Keyword returns an LVal representing the plain keyword :name.
func Keyword(name string) *LVal {
	return QualifiedKeyword("", name)
}

// QualifiedKeyword returns an LVal representing the keyword :ns/name.
func QualifiedKeyword(ns string, name string) *LVal {
	return &LVal{
		Source:    nativeSource(),
		Type:      LKeyword,
		Namespace: ns,
		Str:       name,
	}
}

// List returns an LVal representing a list.  Provided cells are used as
// backing storage for the returned list and are not copied.
func List(cells []*LVal) *LVal {
	return &LVal{
		Source: nativeSource(),
		Type:   LList,
		Cells:  cells,
	}
}

// Vector returns an LVal representing a vector.  Provided cells are used as
// backing storage for the returned vector and are not copied.
func Vector(cells []*LVal) *LVal {
	return &LVal{
		Source: nativeSource(),
		Type:   LVector,
		Cells:  cells,
	}
}

// Primitive returns a procedure implemented by fn.
func Primitive(name string, doc string, fn LBuiltin) *LVal {
	return &LVal{
		Source:  nativeSource(),
		Type:    LFun,
		FunType: FunPrimitive,
		Str:     name,
		Doc:     doc,
		Builtin: fn,
	}
}

// Compound returns a procedure closing over env.  The params vector must
// contain only plain symbols.
func Compound(env *LEnv, params *LVal, body []*LVal) *LVal {
	cells := make([]*LVal, 0, len(body)+1)
	cells = append(cells, params)
	cells = append(cells, body...)
	return &LVal{
		Source:  nativeSource(),
		Type:    LFun,
		FunType: FunCompound,
		Env:     env,
		Cells:   cells,
	}
}

// Quote returns the form (quote v).
func Quote(v *LVal) *LVal {
	return List([]*LVal{Symbol("quote"), v})
}

// Len returns the number of elements in a sequence.  Len returns 0 for
// values that are not sequences.
func (v *LVal) Len() int {
	switch v.Type {
	case LList, LVector:
		return len(v.Cells)
	}
	return 0
}

// IsNil returns true if v is the literal nil.
func (v *LVal) IsNil() bool {
	return v.Type == LLiteral && v.Str == NilSymbol
}

// IsPrimitive returns true if v is a procedure implemented in Go.
func (v *LVal) IsPrimitive() bool {
	return v.Type == LFun && v.FunType == FunPrimitive
}

// IsCompound returns true if v is a procedure defined in lisp.
func (v *LVal) IsCompound() bool {
	return v.Type == LFun && v.FunType == FunCompound
}

// Params returns the parameter vector of a compound procedure.
func (v *LVal) Params() *LVal {
	if !v.IsCompound() {
		return nil
	}
	return v.Cells[0]
}

// Body returns the body expressions of a compound procedure.
func (v *LVal) Body() []*LVal {
	if !v.IsCompound() {
		return nil
	}
	return v.Cells[1:]
}

// QualifiedName returns the namespace-qualified name of a symbol or keyword
// (without the leading colon).
func (v *LVal) QualifiedName() string {
	if v.Namespace == "" {
		return v.Str
	}
	return v.Namespace + "/" + v.Str
}

// True returns true if v is truthy.  Only the literals false and nil are
// falsy.
func True(v *LVal) bool {
	if v.Type != LLiteral {
		return true
	}
	return v.Str == TrueSymbol
}

// Not returns true if v is falsy.
func Not(v *LVal) bool {
	return !True(v)
}

// Equal returns true if v and other are structurally equal.  Values of
// different types are never equal.  Procedures are equal only to
// themselves.
func (v *LVal) Equal(other *LVal) bool {
	if v.Type != other.Type {
		return false
	}
	switch v.Type {
	case LNumber:
		return v.Num == other.Num
	case LString, LLiteral:
		return v.Str == other.Str
	case LSymbol, LKeyword:
		return v.Namespace == other.Namespace && v.Str == other.Str
	case LList, LVector:
		if len(v.Cells) != len(other.Cells) {
			return false
		}
		for i := range v.Cells {
			if !v.Cells[i].Equal(other.Cells[i]) {
				return false
			}
		}
		return true
	case LFun:
		return v == other
	}
	return false
}

func (v *LVal) String() string {
	return v.str(false)
}

// Display returns the human readable form of v used by println.  Strings
// are rendered without quotes or escapes.
func (v *LVal) Display() string {
	return v.str(true)
}

func (v *LVal) str(display bool) string {
	switch v.Type {
	case LNumber:
		return formatNumber(v.Num)
	case LString:
		if display {
			return v.Str
		}
		return strconv.Quote(v.Str)
	case LSymbol:
		return v.QualifiedName()
	case LKeyword:
		return ":" + v.QualifiedName()
	case LLiteral:
		return v.Str
	case LList:
		return seqString(v.Cells, display, "(", ")")
	case LVector:
		return seqString(v.Cells, display, "[", "]")
	case LFun:
		if v.FunType == FunPrimitive {
			return fmt.Sprintf("#<primitive %s>", v.Str)
		}
		if v.Str != "" {
			return fmt.Sprintf("#<fn %s>", v.Str)
		}
		return fmt.Sprintf("#<fn %s>", v.Cells[0])
	default:
		return fmt.Sprintf("#<%s>", v.Type)
	}
}

// formatNumber renders integral values without a fractional part.
func formatNumber(x float64) string {
	if x == math.Trunc(x) && math.Abs(x) < 1e21 {
		return strconv.FormatFloat(x, 'f', -1, 64)
	}
	return strconv.FormatFloat(x, 'g', -1, 64)
}

func seqString(cells []*LVal, display bool, left string, right string) string {
	var buf bytes.Buffer
	buf.WriteString(left)
	for i, c := range cells {
		if i > 0 {
			buf.WriteString(" ")
		}
		buf.WriteString(c.str(display))
	}
	buf.WriteString(right)
	return buf.String()
}

var defaultSourceLocation = &token.Location{
	File: "<native code>",
	Pos:  -1,
}

func nativeSource() *token.Location {
	return defaultSourceLocation
}

// IsNativeSource returns true if loc does not refer to source text.
func IsNativeSource(loc *token.Location) bool {
	return loc == nil || loc.Pos < 0
}
