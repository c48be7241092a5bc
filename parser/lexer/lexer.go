// Copyright © 2018 The ELPS authors

package lexer

import (
	"fmt"
	"unicode"

	"github.com/luthersystems/eclj/parser/token"
)

type LexFn func(*Lexer) *token.Token

// Lexer splits source text into delimiter, string, comment, quote and bare
// tokens.  Bare tokens are not classified by the lexer.
type Lexer struct {
	scanner *token.Scanner
	lex     LexFn
}

func New(s *token.Scanner) *Lexer {
	lex := &Lexer{
		scanner: s,
		lex:     (*Lexer).readToken,
	}
	return lex
}

// ReadToken returns the next token in the stream.  Once the stream is
// exhausted ReadToken returns a token with type token.EOF on every call.
// Lexical failures are reported as token.ERROR tokens whose text is the
// error message.
func (lex *Lexer) ReadToken() *token.Token {
	return lex.lex(lex)
}

func (lex *Lexer) readToken() *token.Token {
	lex.skipWhitespace()
	if _, ok := lex.scanner.Next(); !ok {
		if err := lex.scanner.Err(); err != nil {
			lex.lex = (*Lexer).readError
			return lex.emitError(err)
		}
		return lex.emit(token.EOF, "")
	}
	switch lex.scanner.Rune() {
	case '(':
		return lex.emitText(token.PAREN_L)
	case ')':
		return lex.emitText(token.PAREN_R)
	case '[':
		return lex.emitText(token.BRACE_L)
	case ']':
		return lex.emitText(token.BRACE_R)
	case '\'':
		return lex.emitText(token.QUOTE)
	case ';':
		lex.scanner.AcceptSeq(func(c rune) bool { return c != '\n' })
		return lex.emitText(token.COMMENT)
	case '"':
		return lex.readString()
	default:
		lex.scanner.AcceptSeq(isBare)
		return lex.emitText(token.BARE)
	}
}

// readString scans the remainder of a string literal.  Escape sequences are
// validated by the parser, the lexer only ensures that an escaped quote does
// not terminate the literal.
func (lex *Lexer) readString() *token.Token {
	for {
		c, ok := lex.scanner.Next()
		if !ok {
			return lex.unterminatedString()
		}
		switch c {
		case '"':
			return lex.emitText(token.STRING)
		case '\\':
			if _, ok := lex.scanner.Next(); !ok {
				return lex.unterminatedString()
			}
		}
	}
}

func (lex *Lexer) unterminatedString() *token.Token {
	if err := lex.scanner.Err(); err != nil {
		lex.lex = (*Lexer).readError
		return lex.emitError(err)
	}
	return lex.errorf("unterminated string literal")
}

// readError is the terminal state after an unrecoverable read error.
func (lex *Lexer) readError() *token.Token {
	return lex.emitError(lex.scanner.Err())
}

func (lex *Lexer) emit(typ token.Type, text string) *token.Token {
	tok := &token.Token{
		Type:   typ,
		Text:   text,
		Source: lex.scanner.LocStart(),
	}
	lex.scanner.Ignore()
	return tok
}

func (lex *Lexer) emitText(typ token.Type) *token.Token {
	return lex.scanner.EmitToken(typ)
}

func (lex *Lexer) emitError(err error) *token.Token {
	return lex.emit(token.ERROR, err.Error())
}

func (lex *Lexer) errorf(format string, v ...interface{}) *token.Token {
	return lex.emitError(fmt.Errorf(format, v...))
}

func (lex *Lexer) skipWhitespace() {
	lex.scanner.AcceptSeq(isSpace)
	lex.scanner.Ignore()
}

func isSpace(c rune) bool {
	return unicode.IsSpace(c) || c == ','
}

func isDelimiter(c rune) bool {
	switch c {
	case '(', ')', '[', ']', '"', ';':
		return true
	}
	return false
}

func isBare(c rune) bool {
	return !isSpace(c) && !isDelimiter(c)
}
