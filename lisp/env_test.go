// Copyright © 2018 The ELPS authors

package lisp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvDefineLookup(t *testing.T) {
	root := NewEnv(nil)
	child := NewEnv(root)
	require.NoError(t, root.Define(Symbol("a"), Int(1)))
	require.NoError(t, child.Define(Symbol("b"), Int(2)))

	v, err := child.Lookup(Symbol("a"))
	require.NoError(t, err)
	assert.Equal(t, "1", v.String())

	_, err = root.Lookup(Symbol("b"))
	assert.Equal(t, CondUnboundVariable, Condition(err))

	// shadowing only affects the nearest frame
	require.NoError(t, child.Define(Symbol("a"), Int(3)))
	v, err = child.Lookup(Symbol("a"))
	require.NoError(t, err)
	assert.Equal(t, "3", v.String())
	v, err = root.Lookup(Symbol("a"))
	require.NoError(t, err)
	assert.Equal(t, "1", v.String())
}

func TestEnvAssign(t *testing.T) {
	root := NewEnv(nil)
	mid := NewEnv(root)
	leaf := NewEnv(mid)
	require.NoError(t, root.Define(Symbol("x"), Int(1)))

	require.NoError(t, leaf.Assign(Symbol("x"), Int(2)))
	assert.Empty(t, leaf.Scope)
	assert.Empty(t, mid.Scope)
	assert.Equal(t, "2", root.Scope["x"].String())

	err := leaf.Assign(Symbol("missing"), Int(1))
	assert.Equal(t, CondUnboundVariable, Condition(err))
	_, exists := root.Scope["missing"]
	assert.False(t, exists)
}

func TestEnvExtend(t *testing.T) {
	root := NewEnv(nil)
	names := []*LVal{Symbol("a"), Symbol("b")}

	frame, err := root.Extend(names, []*LVal{Int(1), Int(2)})
	require.NoError(t, err)
	assert.Same(t, root, frame.Parent)
	assert.Same(t, root.Runtime, frame.Runtime)
	assert.Len(t, frame.Scope, 2)

	_, err = root.Extend(names, []*LVal{Int(1)})
	require.Error(t, err)
	assert.Equal(t, CondArityError, Condition(err))
	assert.Contains(t, err.Error(), "too few")

	_, err = root.Extend(names, []*LVal{Int(1), Int(2), Int(3)})
	require.Error(t, err)
	assert.Equal(t, CondArityError, Condition(err))
	assert.Contains(t, err.Error(), "too many")
	assert.Empty(t, root.Scope)
}

func TestEnvNamesAndRoot(t *testing.T) {
	root := NewEnv(nil)
	require.NoError(t, root.AddBuiltins())
	child := NewEnv(root)
	require.NoError(t, child.Define(Symbol("zzz"), Nil()))
	require.NoError(t, child.Define(Symbol("car"), Nil()))

	assert.Same(t, root, child.Root())
	assert.Same(t, root, root.Root())

	names := child.Names()
	assert.Contains(t, names, "zzz")
	assert.Contains(t, names, "println")
	// names are unique even when shadowed
	count := 0
	for _, name := range names {
		if name == "car" {
			count++
		}
	}
	assert.Equal(t, 1, count)
	assert.IsIncreasing(t, names)
}

func TestAddBuiltinsTwice(t *testing.T) {
	env := NewEnv(nil)
	require.NoError(t, env.AddBuiltins())
	assert.Error(t, env.AddBuiltins())
}

func TestLoadWithoutReader(t *testing.T) {
	env := NewEnv(nil)
	_, err := env.LoadString("test", "1")
	assert.Error(t, err)
}
