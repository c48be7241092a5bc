// Copyright © 2018 The ELPS authors

package lisp

import "sort"

type specialOp func(env *LEnv, form *LVal) (*LVal, error)

// SpecialFormDef documents a special form recognized by the evaluator.
type SpecialFormDef struct {
	Name    string
	Formals string
	Doc     string
}

// specialOps is populated in init to break the initialization cycle through
// Eval.
var specialOps map[string]specialOp

func init() {
	specialOps = map[string]specialOp{
		"quote": opQuote,
		"set!":  opSet,
		"def":   opDef,
		"defn":  opDefn,
		"if":    opIf,
		"fn":    opFn,
		"do":    opDo,
		"begin": opDo,
		"cond":  opCond,
	}
}

var specialFormDocs = []SpecialFormDef{
	{"quote", "(quote expr)", "Returns expr without evaluating it.  The reader expands 'expr to (quote expr)."},
	{"set!", "(set! sym expr)", "Evaluates expr and replaces the value of sym in the nearest enclosing scope that binds it.  It is an error to set! a symbol that is not bound.  Returns the symbol ok."},
	{"def", "(def sym expr)", "Evaluates expr and binds the result to sym in the current scope, replacing any existing binding in that scope.  Returns the symbol ok."},
	{"defn", "(defn name [docstring] [params ...] body ...)", "Defines a named procedure.  Equivalent to (def name (fn [params ...] body ...)) with an optional docstring recorded on the procedure."},
	{"if", "(if test then [else])", "Evaluates test.  When test is neither false nor nil evaluates and returns then.  Otherwise evaluates and returns else, or false when else is omitted."},
	{"fn", "(fn [params ...] body ...)", "Returns a procedure which binds params to its arguments in a new scope enclosed by the current scope and evaluates body.  The procedure must be called with exactly as many arguments as it has params."},
	{"do", "(do expr ...)", "Evaluates each expr in order and returns the value of the last one."},
	{"begin", "(begin expr ...)", "Equivalent to do."},
	{"cond", "(cond test expr ... [else expr])", "Evaluates each test in order and returns the value of the expr following the first test that is neither false nor nil.  A final else or :else clause matches unconditionally.  Returns false when no clause matches."},
}

// SpecialForms returns documentation for every special form, sorted by
// name.
func SpecialForms() []SpecialFormDef {
	forms := make([]SpecialFormDef, len(specialFormDocs))
	copy(forms, specialFormDocs)
	sort.Slice(forms, func(i, j int) bool { return forms[i].Name < forms[j].Name })
	return forms
}

// IsSpecialForm returns true if name is the name of a special form.
func IsSpecialForm(name string) bool {
	_, ok := specialOps[name]
	return ok
}

func opQuote(env *LEnv, form *LVal) (*LVal, error) {
	if len(form.Cells) != 2 {
		return nil, malformed(env, form, "quote takes exactly one operand")
	}
	return form.Cells[1], nil
}

func opSet(env *LEnv, form *LVal) (*LVal, error) {
	sym, val, err := bindingOperands(env, form)
	if err != nil {
		return nil, err
	}
	err = env.Assign(sym, val)
	if err != nil {
		return nil, err
	}
	return Ok(), nil
}

func opDef(env *LEnv, form *LVal) (*LVal, error) {
	sym, val, err := bindingOperands(env, form)
	if err != nil {
		return nil, err
	}
	err = env.Define(sym, val)
	if err != nil {
		return nil, err
	}
	return Ok(), nil
}

// bindingOperands validates a (op sym expr) form and evaluates expr.
func bindingOperands(env *LEnv, form *LVal) (*LVal, *LVal, error) {
	op := form.Cells[0].Str
	if len(form.Cells) != 3 {
		return nil, nil, malformed(env, form, "%s takes exactly two operands", op)
	}
	sym := form.Cells[1]
	if sym.Type != LSymbol {
		return nil, nil, malformed(env, form, "%s target is not a symbol: %v", op, sym)
	}
	val, err := env.Eval(form.Cells[2])
	if err != nil {
		return nil, nil, err
	}
	return sym, val, nil
}

func opDefn(env *LEnv, form *LVal) (*LVal, error) {
	if len(form.Cells) < 3 {
		return nil, malformed(env, form, "defn requires a name and a parameter vector")
	}
	name := form.Cells[1]
	if name.Type != LSymbol {
		return nil, malformed(env, form, "defn name is not a symbol: %v", name)
	}
	rest := form.Cells[2:]
	var doc string
	if rest[0].Type == LString {
		doc = rest[0].Str
		rest = rest[1:]
	}
	if len(rest) == 0 {
		return nil, malformed(env, form, "defn requires a parameter vector")
	}
	fun, err := makeCompound(env, form, rest[0], rest[1:])
	if err != nil {
		return nil, err
	}
	fun.Str = name.QualifiedName()
	fun.Doc = doc
	err = env.Define(name, fun)
	if err != nil {
		return nil, err
	}
	return Ok(), nil
}

func opIf(env *LEnv, form *LVal) (*LVal, error) {
	if len(form.Cells) != 3 && len(form.Cells) != 4 {
		return nil, malformed(env, form, "if takes two or three operands")
	}
	test, err := env.Eval(form.Cells[1])
	if err != nil {
		return nil, err
	}
	if True(test) {
		return env.Eval(form.Cells[2])
	}
	if len(form.Cells) == 4 {
		return env.Eval(form.Cells[3])
	}
	return Bool(false), nil
}

func opFn(env *LEnv, form *LVal) (*LVal, error) {
	if len(form.Cells) < 2 {
		return nil, malformed(env, form, "fn requires a parameter vector")
	}
	return makeCompound(env, form, form.Cells[1], form.Cells[2:])
}

func makeCompound(env *LEnv, form *LVal, params *LVal, body []*LVal) (*LVal, error) {
	if params.Type != LVector {
		return nil, malformed(env, form, "parameter list is not a vector: %v", params)
	}
	seen := make(map[string]bool, len(params.Cells))
	for _, p := range params.Cells {
		if p.Type != LSymbol || p.Namespace != "" {
			return nil, malformed(env, form, "parameter is not a plain symbol: %v", p)
		}
		if seen[p.Str] {
			return nil, malformed(env, form, "duplicate parameter: %v", p)
		}
		seen[p.Str] = true
	}
	if len(body) == 0 {
		return nil, malformed(env, form, "procedure body is empty")
	}
	fun := Compound(env, params, body)
	fun.Source = form.Source
	return fun, nil
}

func opDo(env *LEnv, form *LVal) (*LVal, error) {
	if len(form.Cells) < 2 {
		return nil, malformed(env, form, "%s requires at least one expression", form.Cells[0].Str)
	}
	return env.EvalBody(form.Cells[1:])
}

func opCond(env *LEnv, form *LVal) (*LVal, error) {
	expr, err := desugarCond(env, form)
	if err != nil {
		return nil, err
	}
	return env.Eval(expr)
}

// desugarCond rewrites (cond p1 e1 p2 e2 ...) as nested if forms.
func desugarCond(env *LEnv, form *LVal) (*LVal, error) {
	clauses := form.Cells[1:]
	if len(clauses)%2 != 0 {
		return nil, env.errorAt(form, CondMalformedCond, "cond requires an even number of forms")
	}
	for i := 0; i < len(clauses); i += 2 {
		if isElse(clauses[i]) && i != len(clauses)-2 {
			return nil, env.errorAt(form, CondMalformedCond, "else clause not last")
		}
	}
	expr := Bool(false)
	for i := len(clauses) - 2; i >= 0; i -= 2 {
		pred, action := clauses[i], clauses[i+1]
		if isElse(pred) {
			expr = action
			continue
		}
		nested := List([]*LVal{Symbol("if"), pred, action, expr})
		nested.Source = pred.Source
		expr = nested
	}
	return expr, nil
}

func isElse(v *LVal) bool {
	return (v.Type == LSymbol || v.Type == LKeyword) && v.Namespace == "" && v.Str == "else"
}

func malformed(env *LEnv, form *LVal, format string, v ...interface{}) *ErrorVal {
	return env.errorAt(form, CondMalformedForm, format, v...)
}
