// Copyright © 2024 The ELPS authors

package diagnostic

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
)

// Renderer formats diagnostics as annotated source snippets.
type Renderer struct {
	// Color controls ANSI color output. Default is ColorAuto.
	Color ColorMode

	// SourceReader reads source contents by name. If nil, os.ReadFile is
	// used.
	SourceReader func(string) ([]byte, error)
}

// Render writes a single diagnostic to w.
func (r *Renderer) Render(w io.Writer, d Diagnostic) error {
	p := choosePalette(r.Color, w)
	bw := bufio.NewWriter(w)
	ew := &errWriter{w: bw}

	r.writeHeader(ew, d, p)
	for _, span := range d.Spans {
		r.writeSpan(ew, span, p)
	}
	for _, note := range d.Notes {
		ew.printf("   %s=%s note: %s\n", p.boldCyan, p.reset, note)
	}

	if ew.err != nil {
		return ew.err
	}
	return bw.Flush()
}

// RenderAll writes all diagnostics to w separated by blank lines.
func (r *Renderer) RenderAll(w io.Writer, diags []Diagnostic) error {
	for i, d := range diags {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if err := r.Render(w, d); err != nil {
			return err
		}
	}
	return nil
}

// errWriter captures the first write error and drops subsequent writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, a ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, a...)
}

func (ew *errWriter) print(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = io.WriteString(ew.w, s)
}

func (r *Renderer) writeHeader(ew *errWriter, d Diagnostic, p palette) {
	var sevColor string
	switch d.Severity {
	case SeverityError:
		sevColor = p.boldRed
	case SeverityWarning:
		sevColor = p.yellow
	case SeverityNote:
		sevColor = p.boldCyan
	}
	ew.printf("%s%s%s%s: %s%s%s\n",
		sevColor, p.bold, d.Severity, p.reset,
		p.bold, d.Message, p.reset)
}

func (r *Renderer) writeSpan(ew *errWriter, span Span, p palette) {
	loc := span.File
	if span.Line > 0 {
		loc = fmt.Sprintf("%s:%d", span.File, span.Line)
		if span.Col > 0 {
			loc = fmt.Sprintf("%s:%d:%d", span.File, span.Line, span.Col)
		}
	}
	ew.printf("  %s-->%s %s\n", p.boldBlue, p.reset, loc)

	source, ok := r.readSourceLine(span.File, span.Line)
	if !ok {
		ew.printf("   %s|%s\n", p.boldBlue, p.reset)
		return
	}

	lineStr := fmt.Sprint(span.Line)
	pad := strings.Repeat(" ", len(lineStr))
	line := []rune(source)

	ew.printf(" %s%s |%s\n", p.boldBlue, pad, p.reset)
	ew.printf(" %s%s |%s  %s\n", p.boldBlue, lineStr, p.reset, strings.ReplaceAll(source, "\t", "    "))

	col := span.Col
	if col <= 0 || col > len(line)+1 {
		col = 1
	}
	endCol := span.EndCol
	if endCol <= 0 {
		endCol = formEnd(line, col)
	}
	if endCol < col {
		endCol = col
	}

	underPad := strings.Repeat(" ", displayWidth(line[:col-1]))
	underline := strings.Repeat("^", endCol-col+1)
	ew.printf(" %s%s |%s  %s%s%s%s", p.boldBlue, pad, p.reset, underPad, p.boldRed, underline, p.reset)
	if span.Label != "" {
		ew.printf(" %s%s%s", p.boldRed, span.Label, p.reset)
	}
	ew.print("\n")
	ew.printf(" %s%s |%s\n", p.boldBlue, pad, p.reset)
}

func (r *Renderer) readSourceLine(file string, line int) (string, bool) {
	if line <= 0 || file == "" || file == "<native code>" {
		return "", false
	}
	reader := r.SourceReader
	if reader == nil {
		reader = os.ReadFile
	}
	data, err := reader(file)
	if err != nil {
		return "", false
	}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for i := 1; scanner.Scan(); i++ {
		if i == line {
			return scanner.Text(), true
		}
	}
	return "", false
}

// formEnd returns the 1-based column of the last character of the form
// starting at col.  Lists and vectors extend to their matching bracket, or
// to the end of the line when the bracket is on a later line.
func formEnd(line []rune, col int) int {
	i := col - 1
	if i >= len(line) {
		return col
	}
	end := scanForm(line, i)
	if end < i {
		return col
	}
	return end + 1
}

// scanForm returns the index of the last rune of the form starting at i.
func scanForm(line []rune, i int) int {
	switch line[i] {
	case '(', '[':
		depth := 0
		for j := i; j < len(line); j++ {
			switch line[j] {
			case '(', '[':
				depth++
			case ')', ']':
				depth--
				if depth == 0 {
					return j
				}
			case '"':
				j = scanString(line, j)
			case ';':
				return trimRight(line, j-1)
			}
		}
		return trimRight(line, len(line)-1)
	case '"':
		return scanString(line, i)
	case '\'':
		if i+1 < len(line) && quotable(line[i+1]) {
			return scanForm(line, i+1)
		}
		return i
	}
	j := i
	for j+1 < len(line) && !isDelimiter(line[j+1]) {
		j++
	}
	return j
}

// scanString returns the index of the quote closing the string literal
// opened at i, or the last index of line if it is not closed.
func scanString(line []rune, i int) int {
	for j := i + 1; j < len(line); j++ {
		switch line[j] {
		case '\\':
			j++
		case '"':
			return j
		}
	}
	return len(line) - 1
}

func trimRight(line []rune, j int) int {
	for j >= 0 && (line[j] == ' ' || line[j] == '\t' || line[j] == ',') {
		j--
	}
	return j
}

// quotable returns true if c can begin the form following a quote.
func quotable(c rune) bool {
	switch c {
	case ' ', '\t', ',', ')', ']', ';':
		return false
	}
	return true
}

func isDelimiter(c rune) bool {
	switch c {
	case ' ', '\t', ',', '(', ')', '[', ']', '"', ';':
		return true
	}
	return false
}

// displayWidth returns the display width of s, expanding tabs to 4 spaces.
func displayWidth(s []rune) int {
	w := 0
	for _, ch := range s {
		if ch == '\t' {
			w += 4
		} else {
			w++
		}
	}
	return w
}
