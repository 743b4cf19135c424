// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jevents

import (
	"fmt"
	"io"

	"go4.org/mem"
)

// lexToken is the type of a lexical token in the JSON grammar.
type lexToken byte

// Constants defining the valid lexToken values.
const (
	lexInvalid lexToken = iota // invalid token
	lexLBrace                  // left brace "{"
	lexRBrace                  // right brace "}"
	lexLSquare                 // left square bracket "["
	lexRSquare                 // right square bracket "]"
	lexComma                   // comma ","
	lexColon                   // colon ":"
	lexNumber                  // number
	lexString                  // quoted string
	lexTrue                    // constant: true
	lexFalse                   // constant: false
	lexNull                    // constant: null
	lexComment                 // comment: // ... <LF> or /* ... */
)

var lexStr = [...]string{
	lexInvalid: "invalid token",
	lexLBrace:  `"{"`,
	lexRBrace:  `"}"`,
	lexLSquare: `"["`,
	lexRSquare: `"]"`,
	lexComma:   `","`,
	lexColon:   `":"`,
	lexNumber:  "number",
	lexString:  "string",
	lexTrue:    "true",
	lexFalse:   "false",
	lexNull:    "null",
	lexComment: "comment",
}

func (t lexToken) String() string {
	v := int(t)
	if v >= len(lexStr) {
		return lexStr[lexInvalid]
	}
	return lexStr[v]
}

// A lexer reads lexical tokens from a source buffer. Each call to next
// advances the lexer to the next token, or reports an error. The lexer does
// not copy token text; it records byte offsets into the buffer so that
// tokens can refer back to the source.
type lexer struct {
	data     []byte
	comments bool // allow comments

	cur      int // scan cursor
	tok      lexToken
	pos, end int // span of the current token; for strings, excludes the quotes
	err      error
}

// next advances l to the next token of the input, or reports an error.
// At the end of the input, next returns io.EOF.
func (l *lexer) next() error {
	l.err = nil
	l.tok = lexInvalid

	for l.cur < len(l.data) && isSpace(l.data[l.cur]) {
		l.cur++
	}
	l.pos = l.cur
	if l.cur >= len(l.data) {
		return l.setErr(io.EOF)
	}

	ch := l.data[l.cur]

	// Handle punctuation.
	if t, ok := selfDelim(ch); ok {
		l.cur++
		l.end = l.cur
		l.tok = t
		return nil
	}

	// Handle numbers.
	if ch == '-' || isDigit(ch) {
		return l.scanNumber()
	}

	// Handle string values.
	if ch == '"' {
		return l.scanString()
	}

	// Handle comments, if enabled.
	if ch == '/' && l.comments {
		return l.scanComment()
	}

	// Handle constants: true, false, null
	if isNameByte(ch) {
		return l.scanName()
	}
	return l.failf("unexpected %q", ch)
}

// text returns the undecoded text of the current token.
func (l *lexer) text() []byte { return l.data[l.pos:l.end] }

func (l *lexer) scanString() error {
	l.cur++ // skip the opening quote
	l.pos = l.cur
	for l.cur < len(l.data) {
		switch ch := l.data[l.cur]; {
		case ch == '"':
			l.end = l.cur
			l.cur++
			l.tok = lexString
			return nil
		case ch == '\\':
			if err := l.scanEscape(); err != nil {
				return err
			}
		case ch < ' ':
			return l.failf("unescaped control %q", ch)
		default:
			l.cur++
		}
	}
	return l.failf("unterminated string")
}

// scanEscape consumes a single \-escape sequence.
// Precondition: the cursor is on the backslash.
func (l *lexer) scanEscape() error {
	l.cur++
	if l.cur >= len(l.data) {
		return l.failf("incomplete escape")
	}
	switch ch := l.data[l.cur]; ch {
	case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
		l.cur++
	case 'u':
		l.cur++
		for i := 0; i < 4; i++ {
			if l.cur >= len(l.data) || !isHexDigit(l.data[l.cur]) {
				return l.failf("invalid Unicode escape")
			}
			l.cur++
		}
	default:
		return l.failf("invalid %q after escape", ch)
	}
	return nil
}

func (l *lexer) scanNumber() error {
	if l.data[l.cur] == '-' {
		l.cur++
		if l.cur >= len(l.data) || !isDigit(l.data[l.cur]) {
			return l.failf("want digit")
		}
	}

	// Consume the integer part.
	digs := l.readWhile(isDigit)

	// Check for extra leading zeroes, which are disallowed by the JSON spec.
	// That is: 0.12 is OK, 01.2 is not.
	if digs > 1 && l.data[l.pos] == '0' || digs > 1 && l.data[l.pos] == '-' && l.data[l.pos+1] == '0' {
		return l.failf("extra leading zeroes")
	}

	// If a decimal point follows, consume a fractional part.
	if l.cur < len(l.data) && l.data[l.cur] == '.' {
		l.cur++
		if l.readWhile(isDigit) == 0 {
			return l.failf("no digits after decimal point")
		}
	}

	// If an exponent follows, consume it.
	if l.cur < len(l.data) && (l.data[l.cur] == 'e' || l.data[l.cur] == 'E') {
		l.cur++
		if l.cur < len(l.data) && (l.data[l.cur] == '-' || l.data[l.cur] == '+') {
			l.cur++
		}
		if l.readWhile(isDigit) == 0 {
			return l.failf("missing exponent digits")
		}
	}
	l.end = l.cur
	l.tok = lexNumber
	return nil
}

func (l *lexer) scanComment() error {
	l.cur++
	if l.cur >= len(l.data) {
		return l.failf("invalid comment")
	}
	switch l.data[l.cur] {
	case '/': // line comment to LF
		l.cur++
		l.readWhile(func(ch byte) bool { return ch != '\n' })
		if l.cur < len(l.data) {
			l.cur++ // consume the newline
		}
	case '*': // block comment
		l.cur++
		for {
			l.readWhile(func(ch byte) bool { return ch != '*' })
			if l.cur >= len(l.data) {
				return l.failf("unterminated block comment")
			}
			l.cur++ // consume the "*"
			if l.cur < len(l.data) && l.data[l.cur] == '/' {
				l.cur++
				break
			}
		}
	default:
		return l.failf("invalid %q in comment", l.data[l.cur])
	}
	l.end = l.cur
	l.tok = lexComment
	return nil
}

func (l *lexer) scanName() error {
	l.readWhile(isNameByte)
	l.end = l.cur

	got := mem.B(l.text())
	switch {
	case got.Equal(mem.S("true")):
		l.tok = lexTrue
	case got.Equal(mem.S("false")):
		l.tok = lexFalse
	case got.Equal(mem.S("null")):
		l.tok = lexNull
	default:
		return l.failf("unknown constant %q", got.StringCopy())
	}
	return nil
}

// readWhile consumes bytes matching f from the input until the end of input
// or until a byte not matching f is found, and reports the number of bytes
// consumed.
func (l *lexer) readWhile(f func(byte) bool) int {
	var n int
	for l.cur < len(l.data) && f(l.data[l.cur]) {
		l.cur++
		n++
	}
	return n
}

type posError struct {
	pos int
	err error
}

func (p posError) Error() string {
	return fmt.Sprintf("%s (offset %d)", p.err.Error(), p.pos)
}

func (p posError) Unwrap() error { return p.err }

func (l *lexer) setErr(err error) error {
	l.err = err
	return err
}

func (l *lexer) failf(msg string, args ...any) error {
	return l.setErr(posError{l.cur, fmt.Errorf(msg, args...)})
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\r' || ch == '\n' || ch == '\t'
}

func isDigit(ch byte) bool    { return '0' <= ch && ch <= '9' }
func isNameByte(ch byte) bool { return ch >= 'a' && ch <= 'z' }

func isHexDigit(ch byte) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

var self = [...]lexToken{lexLBrace, lexRBrace, lexLSquare, lexRSquare, lexComma, lexColon}

func selfDelim(ch byte) (lexToken, bool) {
	const delims = "{}[],:"
	for i := 0; i < len(delims); i++ {
		if delims[i] == ch {
			return self[i], true
		}
	}
	return lexInvalid, false
}
