// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package pjson

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"go4.org/mem"
)

// Token is the type of a lexical token in the JSON grammar.
type Token byte

// Constants defining the valid Token values.
const (
	Invalid Token = iota // invalid token
	LBrace               // left brace "{"
	RBrace               // right brace "}"
	LSquare              // left square bracket "["
	RSquare              // right square bracket "]"
	Comma                // comma ","
	Colon                // colon ":"
	Integer              // number: integer with no fraction or exponent
	Number               // number with fraction and/or exponent
	String               // quoted string
	True                 // constant: true
	False                // constant: false
	Null                 // constant: null
)

var tokenStr = [...]string{
	Invalid: "invalid token",
	LBrace:  `"{"`,
	RBrace:  `"}"`,
	LSquare: `"["`,
	RSquare: `"]"`,
	Comma:   `","`,
	Colon:   `":"`,
	Integer: "integer",
	Number:  "number",
	String:  "string",
	True:    "true",
	False:   "false",
	Null:    "null",
}

func (t Token) String() string {
	v := int(t)
	if v >= len(tokenStr) {
		return tokenStr[Invalid]
	}
	return tokenStr[v]
}

// A Scanner reads lexical tokens from a buffered input. Each call to Next
// advances the scanner to the next token, or reports an error.
type Scanner struct {
	input []byte
	tok   Token
	err   error

	pos, end int // start and end offsets of current token

	// Apparent line and column offsets (0-based)
	pline, pcol int
	eline, ecol int
}

// NewScanner constructs a new lexical scanner that consumes input.
// The scanner does not modify input, and token text aliases it.
func NewScanner(input []byte) *Scanner { return &Scanner{input: input} }

// Next advances s to the next token of the input. It returns false when the
// input is exhausted or an error occurs; after Next returns false, Err
// reports nil at a clean end of input, otherwise the error that occurred.
func (s *Scanner) Next() bool {
	s.err = nil
	s.tok = Invalid

	// Discard whitespace.
	for s.end < len(s.input) && isSpace(s.input[s.end]) {
		if s.input[s.end] == '\n' {
			s.eline++
			s.ecol = 0
		} else {
			s.ecol++
		}
		s.end++
	}
	s.pos, s.pline, s.pcol = s.end, s.eline, s.ecol
	if s.end >= len(s.input) {
		return false
	}

	ch := s.input[s.end]
	if t, ok := selfDelim(ch); ok {
		s.advance(1)
		s.tok = t
		return true
	}
	switch {
	case ch == '"':
		return s.scanString()
	case isNumStart(ch):
		return s.scanNumber()
	case ch >= 'a' && ch <= 'z':
		return s.scanName()
	}
	return s.failf("unexpected %q", ch)
}

// Token returns the type of the current token.
func (s *Scanner) Token() Token { return s.tok }

// Err returns the last error reported by Next.
func (s *Scanner) Err() error { return s.err }

// Text returns the undecoded text of the current token. The returned slice
// aliases the input and must not be modified.
func (s *Scanner) Text() []byte { return s.input[s.pos:s.end] }

// Span returns the location span of the current token.
func (s *Scanner) Span() Span { return Span{Pos: s.pos, End: s.end} }

// Location returns the complete location of the current token.
func (s *Scanner) Location() Location {
	return Location{
		Span:  s.Span(),
		First: LineCol{Line: s.pline + 1, Column: s.pcol},
		Last:  LineCol{Line: s.eline + 1, Column: s.ecol},
	}
}

func (s *Scanner) advance(n int) {
	s.end += n
	s.ecol += n
}

func (s *Scanner) scanString() bool {
	s.advance(1) // opening quote
	for s.end < len(s.input) {
		ch := s.input[s.end]
		switch {
		case ch == '"':
			s.advance(1)
			s.tok = String
			return true
		case ch == '\\':
			s.advance(1)
			if !s.scanEscape() {
				return false
			}
		case ch < ' ':
			return s.failf("unescaped control %q", ch)
		case ch < utf8.RuneSelf:
			s.advance(1)
		default:
			r, n := utf8.DecodeRune(s.input[s.end:])
			if r == utf8.RuneError && n == 1 {
				return s.failf("invalid UTF-8 encoding")
			}
			s.advance(n)
		}
	}
	return s.failf("unterminated string")
}

// scanEscape consumes the remainder of a \-escape, the leading backslash
// having already been consumed.
func (s *Scanner) scanEscape() bool {
	if s.end >= len(s.input) {
		return s.failf("incomplete escape sequence")
	}
	ch := s.input[s.end]
	switch ch {
	case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
		s.advance(1)
		return true
	case 'u':
		s.advance(1)
		for range 4 {
			if s.end >= len(s.input) || !isHexDigit(s.input[s.end]) {
				return s.failf("invalid Unicode escape")
			}
			s.advance(1)
		}
		return true
	}
	return s.failf("invalid %q after escape", ch)
}

func (s *Scanner) scanNumber() bool {
	if s.input[s.end] == '-' {
		// If there is a leading sign, we need at least one digit.
		s.advance(1)
		if s.end >= len(s.input) || !isDigit(s.input[s.end]) {
			return s.failf("want digit after minus sign")
		}
	}
	s.digits()

	// Check for extra leading zeroes, which are disallowed by the JSON spec.
	// That is: 0.12 is OK, 01.2 is not.
	if hasExtraLeadingZeroes(s.Text()) {
		return s.failf("extra leading zeroes")
	}
	s.tok = Integer

	// If a decimal point follows, consume a fractional part.
	if s.end < len(s.input) && s.input[s.end] == '.' {
		s.advance(1)
		if s.digits() == 0 {
			return s.failf("no digits after decimal point")
		}
		s.tok = Number
	}

	// If an exponent follows, consume it.
	if s.end < len(s.input) && (s.input[s.end] == 'e' || s.input[s.end] == 'E') {
		s.advance(1)
		if s.end < len(s.input) && (s.input[s.end] == '-' || s.input[s.end] == '+') {
			s.advance(1)
		}
		if s.digits() == 0 {
			return s.failf("missing exponent digits")
		}
		s.tok = Number
	}
	return true
}

func (s *Scanner) scanName() bool {
	for s.end < len(s.input) && isNameByte(s.input[s.end]) {
		s.advance(1)
	}
	got := mem.B(s.Text())
	switch {
	case got.Equal(mem.S("true")):
		s.tok = True
	case got.Equal(mem.S("false")):
		s.tok = False
	case got.Equal(mem.S("null")):
		s.tok = Null
	default:
		return s.failf("unknown constant %q", got.StringCopy())
	}
	return true
}

// digits consumes a run of decimal digits, reporting how many were consumed.
func (s *Scanner) digits() int {
	var nd int
	for s.end < len(s.input) && isDigit(s.input[s.end]) {
		s.advance(1)
		nd++
	}
	return nd
}

type posError struct {
	pos int
	err error
}

func (p posError) Error() string {
	return fmt.Sprintf("%s (offset %d)", p.err.Error(), p.pos)
}

func (p posError) Unwrap() error { return p.err }

func (s *Scanner) failf(msg string, args ...any) bool {
	s.err = posError{s.end, fmt.Errorf(msg, args...)}
	return false
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\r' || ch == '\n' || ch == '\t'
}

func isNumStart(ch byte) bool { return ch == '-' || isDigit(ch) }
func isDigit(ch byte) bool    { return '0' <= ch && ch <= '9' }
func isNameByte(ch byte) bool { return ch >= 'a' && ch <= 'z' }

func isHexDigit(ch byte) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

// hasExtraLeadingZeroes reports whether the representation of an integer in
// buf has redundant leading zeroes, disallowed by the spec.
//
// OK: 0, 0.1, -1.0, -0.1 are all OK.
// Bad: -01, 01.2, -01.0, 00.1.
func hasExtraLeadingZeroes(buf []byte) bool {
	if buf[0] == '-' {
		buf = buf[1:] // skip leading sign
	}
	if buf[0] == '0' {
		// A leading zero is OK if it's the only digit.
		return len(buf) > 1
	}
	return false
}

var self = [...]Token{LBrace, RBrace, LSquare, RSquare, Comma, Colon}

func selfDelim(ch byte) (Token, bool) {
	if i := strings.IndexByte("{}[],:", ch); i >= 0 {
		return self[i], true
	}
	return Invalid, false
}
