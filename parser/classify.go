// Copyright © 2018 The ELPS authors

package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/luthersystems/eclj/lisp"
	parsec "github.com/prataprc/goparsec"
)

// Terminal names produced by the bare token grammar.
const (
	termNumber  = "NUMBER"
	termLiteral = "LITERAL"
	termSymbol  = "SYMBOL"
	termKeyword = "KEYWORD"
)

const (
	numberPattern = `[+-]?[0-9]+(?:\.[0-9]+)?(?:[eE][+-]?[0-9]+)?`

	// nameChar matches any character allowed in a symbol or keyword name.
	// The slash is reserved as the namespace separator.
	nameChar  = `[^\s:/";()\[\],]`
	nameStart = `[^\s0-9+\-:/"';()\[\],]`
	// A name may begin with a sign only when the sign is not followed by a
	// digit, so that malformed numbers like -1x are rejected.
	symbolName  = `(?:[+\-](?:` + nameStart + nameChar + `*|[+\-]` + nameChar + `*)?|` + nameStart + nameChar + `*)`
	keywordName = `[^\s:/"';()\[\],]` + nameChar + `*`

	symbolPattern  = `(?:(?:` + symbolName + `/)?` + symbolName + `|/)`
	keywordPattern = `:(?:` + keywordName + `/)?` + keywordName
)

// bareGrammar is an ordered choice between the classes of bare token.  Each
// alternative must consume the entire token.
var bareGrammar = parsec.OrdChoice(terminalValue,
	parsec.Token(`^`+numberPattern+`$`, termNumber),
	parsec.Token(`^(?:true|false|nil)$`, termLiteral),
	parsec.Token(`^`+symbolPattern+`$`, termSymbol),
	parsec.Token(`^`+keywordPattern+`$`, termKeyword),
)

// classify determines the value represented by the bare token text.
func classify(text string) (*lisp.LVal, error) {
	s := parsec.NewScanner([]byte(text))
	node, s := bareGrammar(s)
	if node == nil || !s.Endof() {
		return nil, fmt.Errorf("invalid token: %s", text)
	}
	switch v := node.(type) {
	case *lisp.LVal:
		return v, nil
	case error:
		return nil, v
	default:
		return nil, fmt.Errorf("invalid token: %s", text)
	}
}

func terminalValue(nodes []parsec.ParsecNode) parsec.ParsecNode {
	term, ok := nodes[0].(*parsec.Terminal)
	if !ok {
		return fmt.Errorf("unexpected parse node: %T", nodes[0])
	}
	switch term.Name {
	case termNumber:
		x, err := strconv.ParseFloat(term.Value, 64)
		if err != nil {
			return fmt.Errorf("bad number: %s", term.Value)
		}
		return lisp.Number(x)
	case termLiteral:
		switch term.Value {
		case lisp.TrueSymbol:
			return lisp.Bool(true)
		case lisp.FalseSymbol:
			return lisp.Bool(false)
		default:
			return lisp.Nil()
		}
	case termSymbol:
		ns, name := splitName(term.Value)
		return lisp.QualifiedSymbol(ns, name)
	case termKeyword:
		ns, name := splitName(term.Value[1:])
		return lisp.QualifiedKeyword(ns, name)
	default:
		return fmt.Errorf("unknown terminal: %s", term.Name)
	}
}

// splitName separates an optional namespace from a name.  The lone symbol
// "/" has no namespace.
func splitName(s string) (string, string) {
	if s == "/" {
		return "", s
	}
	ns, name, ok := strings.Cut(s, "/")
	if !ok {
		return "", s
	}
	return ns, name
}

// unquoteString decodes the escape sequences in a lexed string literal,
// including its surrounding quotes.
func unquoteString(lit string) (string, error) {
	body := lit[1 : len(lit)-1]
	if !strings.Contains(body, `\`) {
		return body, nil
	}
	var buf strings.Builder
	buf.Grow(len(body))
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c != '\\' {
			buf.WriteByte(c)
			continue
		}
		i++
		switch body[i] {
		case '"':
			buf.WriteByte('"')
		case '\\':
			buf.WriteByte('\\')
		case 'n':
			buf.WriteByte('\n')
		case 't':
			buf.WriteByte('\t')
		case 'r':
			buf.WriteByte('\r')
		default:
			return "", fmt.Errorf("invalid escape sequence in string literal: \\%c", body[i])
		}
	}
	return buf.String(), nil
}
