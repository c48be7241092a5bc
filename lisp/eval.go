// Copyright © 2018 The ELPS authors

package lisp

import (
	"errors"

	"github.com/luthersystems/eclj/parser/token"
	"github.com/sirupsen/logrus"
)

// Eval evaluates v in the context (scope) of env and returns the resulting
// LVal.  Eval does not modify v.
func (env *LEnv) Eval(v *LVal) (*LVal, error) {
	switch v.Type {
	case LNumber, LString, LKeyword, LLiteral, LVector:
		return v, nil
	case LSymbol:
		return env.Lookup(v)
	case LList:
		res, err := env.evalList(v)
		if err != nil {
			return nil, associate(err, v.Source)
		}
		return res, nil
	default:
		return nil, env.errorAt(v, CondUnknownExpression, "unknown expression type: %v", v.Type)
	}
}

// EvalBody evaluates each expression in body sequentially and returns the
// value of the last one.
func (env *LEnv) EvalBody(body []*LVal) (*LVal, error) {
	if len(body) == 0 {
		return nil, env.Errorf(CondMalformedForm, "empty body")
	}
	var res *LVal
	var err error
	for _, expr := range body {
		res, err = env.Eval(expr)
		if err != nil {
			return nil, err
		}
	}
	return res, nil
}

func (env *LEnv) evalList(s *LVal) (*LVal, error) {
	if len(s.Cells) == 0 {
		return nil, env.errorAt(s, CondMalformedForm, "cannot evaluate the empty list")
	}
	head := s.Cells[0]
	if head.Type == LSymbol && head.Namespace == "" {
		if op, ok := specialOps[head.Str]; ok {
			return op(env, s)
		}
	}
	return env.evalApplication(s)
}

func (env *LEnv) evalApplication(s *LVal) (*LVal, error) {
	fun, err := env.Eval(s.Cells[0])
	if err != nil {
		return nil, err
	}
	args := make([]*LVal, len(s.Cells)-1)
	for i, expr := range s.Cells[1:] {
		args[i], err = env.Eval(expr)
		if err != nil {
			return nil, err
		}
	}
	return env.apply(s.Source, fun, args)
}

// Apply calls the procedure fun with the (evaluated) arguments args.
func (env *LEnv) Apply(fun *LVal, args []*LVal) (*LVal, error) {
	return env.apply(nativeSource(), fun, args)
}

func (env *LEnv) apply(src *token.Location, fun *LVal, args []*LVal) (*LVal, error) {
	if fun.Type != LFun {
		return nil, env.Errorf(CondUnknownProcedureType, "not a procedure: %v", fun)
	}
	rt := env.Runtime
	err := rt.Stack.PushFrame(src, fun)
	if err != nil {
		return nil, env.Error(CondStackOverflow, err)
	}
	defer rt.Stack.Pop()

	if rt.Profiler != nil {
		defer rt.Profiler.Start(fun)()
	}
	if logger := rt.log(); logger.IsLevelEnabled(logrus.TraceLevel) {
		logger.WithFields(logrus.Fields{
			"procedure": rt.Stack.Top().FunName(),
			"argc":      len(args),
		}).Trace("apply")
	}

	switch fun.FunType {
	case FunPrimitive:
		return env.callPrimitive(fun, args)
	case FunCompound:
		frame, err := fun.Env.Extend(fun.Params().Cells, args)
		if err != nil {
			return nil, err
		}
		return frame.EvalBody(fun.Body())
	default:
		return nil, env.Errorf(CondUnknownProcedureType, "invalid procedure type: %v", fun.FunType)
	}
}

func (env *LEnv) callPrimitive(fun *LVal, args []*LVal) (*LVal, error) {
	res, err := fun.Builtin(env, args)
	if err != nil {
		var lerr *ErrorVal
		if errors.As(err, &lerr) && lerr.Condition() == CondNativeError {
			return nil, err
		}
		msg := err.Error()
		if lerr != nil {
			msg = lerr.ErrorMessage()
		}
		nerr := env.Errorf(CondNativeError, "%s: %s", fun.Str, msg)
		nerr.cause = err
		return nil, nerr
	}
	if res == nil {
		return Nil(), nil
	}
	return res, nil
}
