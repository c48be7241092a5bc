// Copyright © 2018 The ELPS authors

package token

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

// Scanner reads runes from a byte stream (io.Reader) and accumulates them
// into token text.  Scanner provides a single rune of lookahead.
type Scanner struct {
	file string
	r    *bufio.Reader

	// position of the rune returned by the most recent call to Next
	pos  int
	line int
	col  int

	// position just past the current rune
	nextPos  int
	nextLine int
	nextCol  int

	start   *Location
	text    strings.Builder
	c       rune
	peek    rune
	peekN   int
	peeked  bool
	readErr error
}

// NewScanner initializes and returns a new Scanner.
func NewScanner(file string, r io.Reader) *Scanner {
	s := &Scanner{
		file:     file,
		r:        bufio.NewReader(r),
		nextLine: 1,
		nextCol:  1,
	}
	s.Ignore()
	return s
}

// Rune returns the most recently scanned rune.
func (s *Scanner) Rune() rune {
	return s.c
}

// Peek returns the next rune in the stream without consuming it.  Peek
// returns false when the stream is exhausted or cannot be decoded.
func (s *Scanner) Peek() (rune, bool) {
	if s.peeked {
		return s.peek, s.peekN > 0
	}
	s.peeked = true
	c, n, err := s.r.ReadRune()
	if err != nil {
		s.readErr = err
		s.peek, s.peekN = 0, 0
		return 0, false
	}
	if c == utf8.RuneError && n == 1 {
		s.readErr = fmt.Errorf("invalid utf-8 sequence in source text at byte %d", s.nextPos)
		s.peek, s.peekN = 0, 0
		return 0, false
	}
	s.peek, s.peekN = c, n
	return c, true
}

// Next consumes the next rune, adding it to the current token text.
func (s *Scanner) Next() (rune, bool) {
	c, ok := s.Peek()
	if !ok {
		return 0, false
	}
	s.peeked = false
	s.c = c
	s.pos, s.line, s.col = s.nextPos, s.nextLine, s.nextCol
	s.nextPos += s.peekN
	if c == '\n' {
		s.nextLine++
		s.nextCol = 1
	} else {
		s.nextCol++
	}
	s.text.WriteRune(c)
	return c, true
}

// Accept consumes the next rune if fn returns true for it.
func (s *Scanner) Accept(fn func(rune) bool) bool {
	c, ok := s.Peek()
	if !ok || !fn(c) {
		return false
	}
	s.Next()
	return true
}

// AcceptSeq consumes runes for as long as fn returns true and returns the
// number of runes consumed.
func (s *Scanner) AcceptSeq(fn func(rune) bool) int {
	var n int
	for s.Accept(fn) {
		n++
	}
	return n
}

// Text returns the text scanned since the last call to EmitToken or Ignore.
func (s *Scanner) Text() string {
	return s.text.String()
}

// EmitToken returns a token containing the text scanned since the last call
// to either EmitToken or Ignore.
func (s *Scanner) EmitToken(typ Type) *Token {
	tok := &Token{
		Type:   typ,
		Text:   s.Text(),
		Source: s.start,
	}
	s.Ignore()
	return tok
}

// Ignore discards the text scanned since the last call to EmitToken or
// Ignore.  The next token starts at the following rune.
func (s *Scanner) Ignore() {
	s.text.Reset()
	s.start = &Location{
		File: s.file,
		Pos:  s.nextPos,
		Line: s.nextLine,
		Col:  s.nextCol,
	}
}

// LocStart returns the location of the first rune of the current token.
func (s *Scanner) LocStart() *Location {
	return s.start
}

// Loc returns the location of the most recently scanned rune.
func (s *Scanner) Loc() *Location {
	return &Location{
		File: s.file,
		Pos:  s.pos,
		Line: s.line,
		Col:  s.col,
	}
}

// EOF returns true when the input stream has been read completely.
func (s *Scanner) EOF() bool {
	_, ok := s.Peek()
	return !ok && s.readErr == io.EOF
}

// Err returns a read or decoding error preventing further scanning.  Err
// returns nil at a clean end of the input stream.
func (s *Scanner) Err() error {
	if s.readErr == nil || s.readErr == io.EOF {
		return nil
	}
	return s.readErr
}
