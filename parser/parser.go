// Copyright © 2018 The ELPS authors

/*
Package parser implements the eclj reader.

	expr    := number | string | keyword | symbol | literal | list | vector | quoted
	list    := '(' expr* ')'
	vector  := '[' expr* ']'
	quoted  := '\'' expr
	keyword := ':' [ns '/'] name
	symbol  := [ns '/'] name
	literal := 'true' | 'false' | 'nil'
	comment := ';' {any rune except newline}

Commas are treated as whitespace.
*/
package parser

import (
	"io"
	"strings"

	"github.com/luthersystems/eclj/lisp"
	"github.com/luthersystems/eclj/parser/lexer"
	"github.com/luthersystems/eclj/parser/token"
)

// NewReader returns a new lisp.Reader
func NewReader() lisp.Reader {
	return &reader{}
}

type reader struct{}

func (*reader) Read(name string, r io.Reader) ([]*lisp.LVal, error) {
	return Parse(name, r)
}

// ParseString parses the forms in src.  Source locations in the returned
// values refer to name.
func ParseString(name string, src string) ([]*lisp.LVal, error) {
	return Parse(name, strings.NewReader(src))
}

// Parse reads every top-level form from r.  All reader failures are
// returned as *lisp.ErrorVal errors with the condition parse-error.
func Parse(name string, r io.Reader) ([]*lisp.LVal, error) {
	lex := lexer.New(token.NewScanner(name, r))
	var b builder
	for {
		tok := lex.ReadToken()
		switch tok.Type {
		case token.EOF:
			return b.finish()
		case token.ERROR:
			return nil, parseErrorf(tok.Source, "%s", tok.Text)
		case token.COMMENT:
		case token.PAREN_L, token.BRACE_L, token.QUOTE:
			b.open(tok)
		case token.PAREN_R, token.BRACE_R:
			err := b.close(tok)
			if err != nil {
				return nil, err
			}
		case token.STRING:
			s, err := unquoteString(tok.Text)
			if err != nil {
				return nil, parseErrorf(tok.Source, "%v", err)
			}
			v := lisp.String(s)
			v.Source = tok.Source
			b.add(v)
		case token.BARE:
			v, err := classify(tok.Text)
			if err != nil {
				return nil, parseErrorf(tok.Source, "%v", err)
			}
			if v.Type == lisp.LLiteral {
				// literals are shared singletons
				cp := *v
				v = &cp
			}
			v.Source = tok.Source
			b.add(v)
		default:
			return nil, parseErrorf(tok.Source, "unexpected token: %v", tok)
		}
	}
}

func parseErrorf(src *token.Location, format string, v ...interface{}) error {
	lerr := lisp.ErrorConditionf(lisp.CondParseError, format, v...)
	lerr.Source = src
	return lerr
}
