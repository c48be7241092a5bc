// Copyright © 2018 The ELPS authors

package parser

import (
	"github.com/luthersystems/eclj/lisp"
	"github.com/luthersystems/eclj/parser/token"
)

// accumulator collects the children of a container which has been opened
// but not yet closed.
type accumulator struct {
	// open is the token which opened the container: PAREN_L, BRACE_L, or
	// QUOTE.
	open  *token.Token
	cells []*lisp.LVal
}

func (acc *accumulator) kind() string {
	switch acc.open.Type {
	case token.PAREN_L:
		return "list"
	case token.BRACE_L:
		return "vector"
	default:
		return "quote"
	}
}

func (acc *accumulator) value() *lisp.LVal {
	var v *lisp.LVal
	switch acc.open.Type {
	case token.PAREN_L:
		v = lisp.List(acc.cells)
	case token.BRACE_L:
		v = lisp.Vector(acc.cells)
	default:
		v = lisp.Quote(acc.cells[0])
		v.Cells[0].Source = acc.open.Source
	}
	v.Source = acc.open.Source
	return v
}

// builder assembles values into nested sequences using a stack of open
// containers.  Values added while the stack is empty are top-level forms.
type builder struct {
	stack []*accumulator
	forms []*lisp.LVal
}

func (b *builder) top() *accumulator {
	if len(b.stack) == 0 {
		return nil
	}
	return b.stack[len(b.stack)-1]
}

func (b *builder) pop() *accumulator {
	acc := b.top()
	b.stack[len(b.stack)-1] = nil
	b.stack = b.stack[:len(b.stack)-1]
	return acc
}

// open pushes a new container opened by tok.
func (b *builder) open(tok *token.Token) {
	b.stack = append(b.stack, &accumulator{open: tok})
}

// add appends v to the innermost open container.  Quote containers are
// complete once they contain a value and are closed immediately.
func (b *builder) add(v *lisp.LVal) {
	for {
		acc := b.top()
		if acc == nil {
			b.forms = append(b.forms, v)
			return
		}
		acc.cells = append(acc.cells, v)
		if acc.open.Type != token.QUOTE {
			return
		}
		b.pop()
		v = acc.value()
	}
}

// close finalizes the innermost open container, which must have been opened
// by the delimiter matching tok.
func (b *builder) close(tok *token.Token) error {
	acc := b.top()
	if acc == nil {
		return parseErrorf(tok.Source, "unexpected %q with no open list or vector", tok.Text)
	}
	switch {
	case acc.open.Type == token.QUOTE:
		return parseErrorf(acc.open.Source, "quote is missing an expression before %q", tok.Text)
	case acc.open.Type == token.PAREN_L && tok.Type != token.PAREN_R,
		acc.open.Type == token.BRACE_L && tok.Type != token.BRACE_R:
		return parseErrorf(tok.Source, "mismatched %q closes %s opened at %s", tok.Text, acc.kind(), acc.open.Source)
	}
	b.pop()
	b.add(acc.value())
	return nil
}

// finish returns the top-level forms once the input is exhausted.
func (b *builder) finish() ([]*lisp.LVal, error) {
	if acc := b.top(); acc != nil {
		if acc.open.Type == token.QUOTE {
			return nil, parseErrorf(acc.open.Source, "quote is missing an expression before end of input")
		}
		return nil, parseErrorf(acc.open.Source, "unterminated %s: missing %q", acc.kind(), closerFor(acc.open.Type))
	}
	return b.forms, nil
}

func closerFor(typ token.Type) string {
	if typ == token.BRACE_L {
		return token.BRACE_R.String()
	}
	return token.PAREN_R.String()
}
