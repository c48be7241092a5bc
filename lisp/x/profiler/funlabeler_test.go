// Copyright © 2018 The ELPS authors

package profiler

import (
	"testing"

	"github.com/luthersystems/eclj/lisp"
	"github.com/stretchr/testify/assert"
)

func TestCleanLabel(t *testing.T) {
	tests := []struct {
		name     string
		label    string
		expected string
	}{
		{
			name:     "empty",
			label:    "",
			expected: "",
		},
		{
			name:     "normal",
			label:    "@trace{ Add-It }",
			expected: "Add-It",
		},
		{
			name:     "setter",
			label:    "@trace{ user-add! }",
			expected: "user-add!",
		},
		{
			name:     "predicate",
			label:    "@trace { user-exists? }",
			expected: "user-exists?",
		},
		{
			name:     "spaces",
			label:    "@trace{Add  It}",
			expected: "Add_It",
		},
		{
			name:     "no label",
			label:    "Adds things. @trace",
			expected: "",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			actual := cleanLabel(tc.label)
			assert.Equal(t, tc.expected, actual, "cleanLabel(%s)", tc.label)
		})
	}
}

func TestDocFilter(t *testing.T) {
	traced := lisp.Compound(nil, lisp.Vector(nil), []*lisp.LVal{lisp.Nil()})
	traced.Doc = "Does a thing. @trace"
	untraced := lisp.Compound(nil, lisp.Vector(nil), []*lisp.LVal{lisp.Nil()})
	untraced.Doc = "Does a thing."
	prim := lisp.Primitive("car", "@trace", nil)

	assert.False(t, docSkipFilter(traced))
	assert.True(t, docSkipFilter(untraced))
	assert.True(t, docSkipFilter(lisp.Compound(nil, lisp.Vector(nil), []*lisp.LVal{lisp.Nil()})))
	assert.True(t, docSkipFilter(prim))
	assert.True(t, defaultSkipFilter(lisp.Int(1)))
	assert.False(t, defaultSkipFilter(prim))
}

func TestPrettyFunName(t *testing.T) {
	p := &profiler{funLabeler: docFunLabeler}
	fun := lisp.Compound(nil, lisp.Vector(nil), []*lisp.LVal{lisp.Nil()})
	pretty, orig := p.prettyFunName(fun)
	assert.Equal(t, "fn", pretty)
	assert.Equal(t, "fn", orig)

	fun.Str = "ns/add"
	fun.Doc = "@trace{ Adder }"
	pretty, orig = p.prettyFunName(fun)
	assert.Equal(t, "Adder", pretty)
	assert.Equal(t, "ns/add", orig)
	assert.Equal(t, "ns", funNamespace(fun))

	pretty, orig = p.prettyFunName(lisp.Int(1))
	assert.Empty(t, pretty)
	assert.Empty(t, orig)
}
