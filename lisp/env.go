// Copyright © 2018 The ELPS authors

package lisp

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

// LEnv is a lisp environment: one frame of a lexical scope chain.
type LEnv struct {
	Scope   map[string]*LVal
	Parent  *LEnv
	Runtime *Runtime
	ID      uint
}

// InitializeUserEnv applies config to the root environment env and installs
// the default primitives.
func InitializeUserEnv(env *LEnv, config ...Config) error {
	for _, fn := range config {
		err := fn(env)
		if err != nil {
			return err
		}
	}
	return env.AddBuiltins()
}

// NewEnvRuntime initializes a new root LEnv which uses the runtime rt.  When
// rt is nil StandardRuntime() is called to create a new Runtime for the
// returned LEnv.
func NewEnvRuntime(rt *Runtime) *LEnv {
	if rt == nil {
		rt = StandardRuntime()
	}
	return &LEnv{
		ID:      rt.GenEnvID(),
		Scope:   make(map[string]*LVal),
		Runtime: rt,
	}
}

// NewEnv returns a new LEnv whose enclosing frame is parent.  If parent is
// nil the returned LEnv is a root frame with a new standard runtime.
func NewEnv(parent *LEnv) *LEnv {
	return newEnvN(parent, 0)
}

func newEnvN(parent *LEnv, n int) *LEnv {
	if parent == nil {
		return NewEnvRuntime(nil)
	}
	return &LEnv{
		ID:      parent.Runtime.GenEnvID(),
		Scope:   make(map[string]*LVal, n),
		Parent:  parent,
		Runtime: parent.Runtime,
	}
}

// Root returns the root frame of env's scope chain.
func (env *LEnv) Root() *LEnv {
	for env.Parent != nil {
		env = env.Parent
	}
	return env
}

// Lookup returns the value bound to sym in the nearest frame that binds it.
func (env *LEnv) Lookup(sym *LVal) (*LVal, error) {
	if sym.Type != LSymbol {
		return nil, env.Errorf(CondMalformedForm, "not a symbol: %v", sym)
	}
	k := sym.QualifiedName()
	for e := env; e != nil; e = e.Parent {
		if v, ok := e.Scope[k]; ok {
			return v, nil
		}
	}
	return nil, env.errorAt(sym, CondUnboundVariable, "unbound variable: %s", k)
}

// Define binds sym to v in env, replacing any existing binding in env.
// Enclosing frames are not consulted.
func (env *LEnv) Define(sym *LVal, v *LVal) error {
	if sym.Type != LSymbol {
		return env.Errorf(CondMalformedForm, "not a symbol: %v", sym)
	}
	k := sym.QualifiedName()
	env.Scope[k] = v
	env.logBinding("define", k)
	return nil
}

// Assign replaces the value of sym in the nearest frame that binds it.
// Assign never creates a binding.
func (env *LEnv) Assign(sym *LVal, v *LVal) error {
	if sym.Type != LSymbol {
		return env.Errorf(CondMalformedForm, "not a symbol: %v", sym)
	}
	k := sym.QualifiedName()
	for e := env; e != nil; e = e.Parent {
		if _, ok := e.Scope[k]; ok {
			e.Scope[k] = v
			e.logBinding("assign", k)
			return nil
		}
	}
	return env.errorAt(sym, CondUnboundVariable, "cannot set unbound variable: %s", k)
}

// Extend returns a new frame enclosed by env which binds each symbol in
// names to the corresponding element of values.  Extend fails with an
// arity-error, without creating a frame, when the number of names and values
// differ.
func (env *LEnv) Extend(names []*LVal, values []*LVal) (*LEnv, error) {
	switch {
	case len(values) < len(names):
		return nil, env.Errorf(CondArityError, "too few arguments: expected %d, got %d", len(names), len(values))
	case len(values) > len(names):
		return nil, env.Errorf(CondArityError, "too many arguments: expected %d, got %d", len(names), len(values))
	}
	frame := newEnvN(env, len(names))
	for i, name := range names {
		if name.Type != LSymbol {
			return nil, env.Errorf(CondMalformedForm, "parameter is not a symbol: %v", name)
		}
		frame.Scope[name.QualifiedName()] = values[i]
	}
	return frame, nil
}

// Names returns the sorted names bound in env and all enclosing frames.
func (env *LEnv) Names() []string {
	seen := make(map[string]bool)
	var names []string
	for e := env; e != nil; e = e.Parent {
		for k := range e.Scope {
			if !seen[k] {
				seen[k] = true
				names = append(names, k)
			}
		}
	}
	sort.Strings(names)
	return names
}

// AddBuiltins binds funs in the root frame of env.  When called without
// arguments AddBuiltins adds the DefaultBuiltins to env.
func (env *LEnv) AddBuiltins(funs ...LBuiltinDef) error {
	if len(funs) == 0 {
		funs = DefaultBuiltins()
	}
	root := env.Root()
	for _, f := range funs {
		k := f.Name()
		if _, exists := root.Scope[k]; exists {
			return fmt.Errorf("symbol already defined: %s", k)
		}
		root.Scope[k] = Primitive(k, builtinDocstring(f), f.Eval)
	}
	return nil
}

// LoadString parses exprs and evaluates the resulting forms in env.
func (env *LEnv) LoadString(name, exprs string) (*LVal, error) {
	return env.Load(name, strings.NewReader(exprs))
}

// Load reads forms from r and evaluates them sequentially in env.  Load
// returns the value of the last form, or nil if r contains no forms.
func (env *LEnv) Load(name string, r io.Reader) (*LVal, error) {
	if env.Runtime.Reader == nil {
		return nil, fmt.Errorf("no reader for environment runtime")
	}
	exprs, err := env.Runtime.Reader.Read(name, r)
	if err != nil {
		return nil, err
	}
	res := Nil()
	for _, expr := range exprs {
		res, err = env.Eval(expr)
		if err != nil {
			return nil, err
		}
	}
	return res, nil
}

// Errorf returns an ErrorVal with the given condition and a formatted
// message.  The returned error carries a copy of the current call stack.
func (env *LEnv) Errorf(condition string, format string, v ...interface{}) *ErrorVal {
	lerr := ErrorConditionf(condition, format, v...)
	lerr.Stack = env.Runtime.Stack.Copy()
	return lerr
}

// Error returns an ErrorVal with the given condition wrapping err.  The
// returned error carries a copy of the current call stack.
func (env *LEnv) Error(condition string, err error) *ErrorVal {
	lerr := WrapError(condition, err)
	lerr.Stack = env.Runtime.Stack.Copy()
	return lerr
}

func (env *LEnv) errorAt(v *LVal, condition string, format string, args ...interface{}) *ErrorVal {
	lerr := env.Errorf(condition, format, args...)
	lerr.Source = v.Source
	return lerr
}

func (env *LEnv) logBinding(op string, k string) {
	logger := env.Runtime.log()
	if !logger.IsLevelEnabled(logrus.DebugLevel) {
		return
	}
	logger.WithFields(logrus.Fields{
		"symbol": k,
		"frame":  env.ID,
	}).Debug(op)
}
