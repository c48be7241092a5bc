// Copyright © 2018 The ELPS authors

package token

import "fmt"

type Token struct {
	Type   Type
	Text   string
	Source *Location
}

func (tok *Token) String() string {
	if tok.Type == STRING || tok.Type == BARE {
		return fmt.Sprintf("%s %q", tok.Type, tok.Text)
	}
	return tok.Type.String()
}

type Type uint

// Type constants used by the eclj lexer and parser.
const (
	INVALID Type = iota
	ERROR
	EOF

	// BARE tokens are runs of non-delimiter characters.  Their final type
	// (number, literal, symbol, keyword) is decided by the parser.
	BARE
	STRING

	COMMENT
	QUOTE

	// Delimiters
	PAREN_L
	PAREN_R
	BRACE_L
	BRACE_R

	numTokenTypes
)

func (typ Type) String() string {
	typeStrings := [numTokenTypes]string{
		INVALID: "invalid",
		ERROR:   "error",
		EOF:     "EOF",
		BARE:    "bare",
		STRING:  "string",
		COMMENT: ";",
		QUOTE:   "'",
		PAREN_L: "(",
		PAREN_R: ")",
		BRACE_L: "[",
		BRACE_R: "]",
	}
	if typ >= numTokenTypes {
		return typeStrings[INVALID]
	}
	return typeStrings[typ]
}

// Location is a position in a named source stream.  A negative Pos denotes
// a value that did not originate from source text.
type Location struct {
	File string
	Pos  int
	Line int // starting at 1
	Col  int // starting at 1
}

func (loc *Location) String() string {
	switch {
	case loc.Pos < 0:
		return loc.File
	case loc.Line == 0:
		return fmt.Sprintf("%s[%d]", loc.File, loc.Pos)
	case loc.Col == 0:
		return fmt.Sprintf("%s:%d", loc.File, loc.Line)
	default:
		return fmt.Sprintf("%s:%d:%d", loc.File, loc.Line, loc.Col)
	}
}
