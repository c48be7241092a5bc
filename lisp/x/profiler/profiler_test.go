// Copyright © 2018 The ELPS authors

package profiler_test

import (
	"testing"

	"github.com/luthersystems/eclj/lisp"
	"github.com/luthersystems/eclj/lisptest"
	"github.com/stretchr/testify/require"
)

const testLisp = `(defn add-it "@trace{ Add It }" [x y] (+ x y))
(defn add-again "Adds again. @trace{ Add It Again }" [x y] (add-it x y))
(defn quiet [x] x)
(add-again (quiet 1) 2)
((fn [] (add-it 1 1)))
`

// spanOrder lists the spans produced by testLisp in the order they end.
var spanOrder = []string{"quiet", "+", "add-it", "add-again", "+", "add-it", "fn"}

func newEnv(t *testing.T) *lisp.LEnv {
	env, err := lisptest.NewEnv(t)
	require.NoError(t, err)
	return env
}

func runTestLisp(t *testing.T, env *lisp.LEnv, p lisp.Profiler) {
	require.NoError(t, p.Enable())
	require.True(t, p.IsEnabled())
	v, err := env.LoadString("test.lisp", testLisp)
	if err != nil {
		lisptest.LispError(t, err)
		t.FailNow()
	}
	require.Equal(t, "2", v.String())
	require.NoError(t, p.Complete())
}
