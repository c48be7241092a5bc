// Copyright © 2024 The ELPS authors

package diagnostic_test

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/luthersystems/eclj/diagnostic"
	"github.com/luthersystems/eclj/lisp"
	"github.com/luthersystems/eclj/lisptest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderLispError(t *testing.T) {
	const source = "(defn first-of [x] (car x))\n(do (first-of 3))"
	env, err := lisptest.NewEnv(t)
	require.NoError(t, err)
	_, err = env.LoadString("test.clj", source)
	require.Error(t, err)

	r := &diagnostic.Renderer{
		Color: diagnostic.ColorNever,
		SourceReader: func(name string) ([]byte, error) {
			if name != "test.clj" {
				return nil, errors.New("no such source")
			}
			return []byte(source), nil
		},
	}
	var buf bytes.Buffer
	require.NoError(t, r.RenderError(&buf, err))
	expect := `error: native-error: car: argument is not a sequence: number
  --> test.clj:1:20
   |
 1 |  (defn first-of [x] (car x))
   |                     ^^^^^^^
   |
   = note: in car at test.clj:1:20
   = note: in first-of at test.clj:2:5
`
	assert.Equal(t, expect, buf.String())
}

func TestFromErrorDeepStack(t *testing.T) {
	env, err := lisptest.NewEnv(t, lisp.WithMaximumStackHeight(500))
	require.NoError(t, err)
	_, err = env.LoadString("test.clj", "(defn loop [] (loop))\n(loop)")
	require.Error(t, err)
	var lerr *lisp.ErrorVal
	require.True(t, errors.As(err, &lerr))
	require.Greater(t, lerr.Stack.Height(), diagnostic.MaxFrameNotes)

	d := diagnostic.FromError(err)
	require.Len(t, d.Notes, diagnostic.MaxFrameNotes+1)
	assert.Equal(t, "in loop at test.clj:1:15", d.Notes[0])
	more := lerr.Stack.Height() - diagnostic.MaxFrameNotes
	assert.Equal(t, fmt.Sprintf("... %d more frames", more), d.Notes[diagnostic.MaxFrameNotes])
}

func TestFromErrorParse(t *testing.T) {
	env, err := lisptest.NewEnv(t)
	require.NoError(t, err)
	_, err = env.LoadString("test.clj", "(a b]")
	require.Error(t, err)

	d := diagnostic.FromError(err)
	assert.Equal(t, diagnostic.SeverityError, d.Severity)
	assert.Contains(t, d.Message, "parse-error: mismatched")
	require.Len(t, d.Spans, 1)
	assert.Equal(t, diagnostic.Span{File: "test.clj", Line: 1, Col: 5}, d.Spans[0])
	assert.Empty(t, d.Notes)
}

func TestFromErrorPlain(t *testing.T) {
	d := diagnostic.FromError(errors.New("open foo.clj: no such file or directory"))
	assert.Equal(t, "open foo.clj: no such file or directory", d.Message)
	assert.Empty(t, d.Spans)
	assert.Empty(t, d.Notes)
}
