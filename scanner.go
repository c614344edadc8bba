// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jvalid

import (
	"fmt"
	"iter"
	"strings"
	"unicode/utf8"

	"github.com/creachadair/jvalid/internal/escape"
	"go4.org/mem"
)

// A Scanner reads lexical tokens from an input buffer.  Each call to Next
// advances the scanner to the next token, or reports an error.
//
// Once the end of the input has been reached, either at the end of the buffer
// or at a NUL byte, the scanner stays there and every subsequent call to Next
// reports an EOF token.  After a lexical error, Next reports the same error
// until the scanner is Reset.
type Scanner struct {
	src  []byte
	pos  int  // offset of the next unread byte
	done bool // end of input has been reported
	err  error
}

// NewScanner constructs a new lexical scanner that consumes input from src.
// The scanner does not modify src, but the caller must not modify it while
// the scanner is in use.
func NewScanner(src []byte) *Scanner { return &Scanner{src: src} }

// Reset rewinds s to the beginning of its input and discards any error.
func (s *Scanner) Reset() { s.pos, s.done, s.err = 0, false, nil }

// Offset reports the byte offset of the next unread input.
func (s *Scanner) Offset() int { return s.pos }

// Next returns the next token of the input, or reports an error.  The error,
// if any, has concrete type [*LexError].
func (s *Scanner) Next() (Token, error) {
	if s.err != nil {
		return Token{}, s.err
	} else if s.done {
		return Token{Kind: EOF, Span: Span{Pos: len(s.src), End: len(s.src)}}, nil
	}

	// Discard whitespace.
	for s.pos < len(s.src) && isSpace(s.src[s.pos]) {
		s.pos++
	}

	start := s.pos
	if start == len(s.src) || s.src[start] == 0 {
		s.done = true
		s.pos = len(s.src)
		return Token{Kind: EOF, Span: Span{Pos: start, End: min(start+1, len(s.src))}}, nil
	}

	// Handle punctuation.
	ch := s.src[start]
	if k, ok := selfDelim(ch); ok {
		s.pos++
		return Token{Kind: k, Span: Span{Pos: start, End: s.pos}}, nil
	}

	switch {
	case ch == '"':
		return s.scanString(start)
	case isNumStart(ch):
		return s.scanNumber(start)
	case isNameByte(ch):
		return s.scanName(start)
	}
	if ch >= utf8.RuneSelf {
		r, n := utf8.DecodeRune(s.src[start:])
		if r == utf8.RuneError && n == 1 {
			return Token{}, s.failf(start, "unexpected byte %#x", ch)
		}
		return Token{}, s.failf(start, "unexpected %q", r)
	}
	return Token{}, s.failf(start, "unexpected %q", ch)
}

func (s *Scanner) scanString(start int) (Token, error) {
	i := start + 1
	for {
		if i >= len(s.src) {
			return Token{}, s.failf(start, "unterminated string")
		}
		switch ch := s.src[i]; {
		case ch == '"':
			text := s.src[start+1 : i]
			if !utf8.Valid(text) {
				return Token{}, s.failf(start, "invalid UTF-8 in string")
			}
			s.pos = i + 1
			return Token{Kind: String, Text: string(text), Span: Span{Pos: start, End: s.pos}}, nil

		case ch == '\\':
			// We are awaiting the completion of a \-escape.
			if i+1 >= len(s.src) {
				return Token{}, s.failf(start, "unterminated string")
			}
			switch esc := s.src[i+1]; esc {
			case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
				i += 2
			case 'u':
				if i+6 > len(s.src) {
					return Token{}, s.failf(i, "invalid Unicode escape")
				} else if _, ok := escape.ParseHex4(mem.B(s.src[i+2 : i+6])); !ok {
					return Token{}, s.failf(i, "invalid Unicode escape")
				}
				i += 6
			default:
				return Token{}, s.failf(i, "invalid %q after escape", esc)
			}

		case ch < ' ':
			return Token{}, s.failf(i, "unescaped control %q", ch)

		default:
			i++
		}
	}
}

func (s *Scanner) scanNumber(start int) (Token, error) {
	i := start
	if s.src[i] == '-' {
		// If there is a leading sign, we need at least one digit.
		i++
		if i >= len(s.src) || !isDigit(s.src[i]) {
			return Token{}, s.failf(i, "want digit after sign")
		}
	}

	// Consume the integer part. Leading zeroes are preserved as written; they
	// are a structural rule, not a lexical one.
	i = s.skipWhile(i, isDigit)
	kind := Integer

	// If a decimal point follows, consume a fractional part.
	if i < len(s.src) && s.src[i] == '.' {
		j := s.skipWhile(i+1, isDigit)
		if j == i+1 {
			return Token{}, s.failf(j, "no digits after decimal point")
		}
		i, kind = j, Number
	}

	// If an exponent follows, consume it.
	if i < len(s.src) && (s.src[i] == 'e' || s.src[i] == 'E') {
		i++
		if i < len(s.src) && (s.src[i] == '+' || s.src[i] == '-') {
			i++
		}
		j := s.skipWhile(i, isDigit)
		if j == i {
			return Token{}, s.failf(j, "missing exponent digits")
		}
		i, kind = j, Number
	}

	s.pos = i
	return Token{Kind: kind, Text: string(s.src[start:i]), Span: Span{Pos: start, End: i}}, nil
}

// constants are the keywords recognized as literal values.
var constants = [...]struct {
	text string
	kind Kind
}{
	{"true", True},
	{"false", False},
	{"null", Null},
}

func (s *Scanner) scanName(start int) (Token, error) {
	end := s.skipWhile(start, isNameByte)
	word := mem.B(s.src[start:end])
	for _, c := range constants {
		if word.Equal(mem.S(c.text)) {
			s.pos = end
			return Token{Kind: c.kind, Span: Span{Pos: start, End: end}}, nil
		}
	}
	return Token{}, s.failf(start, "unknown constant %q", word.StringCopy())
}

// skipWhile returns the offset of the first byte at or after i that does not
// satisfy f, or len(s.src) if there is none.
func (s *Scanner) skipWhile(i int, f func(byte) bool) int {
	for i < len(s.src) && f(s.src[i]) {
		i++
	}
	return i
}

func (s *Scanner) failf(offset int, msg string, args ...any) error {
	s.err = &LexError{
		Offset:  offset,
		Pos:     Position(s.src, offset),
		Message: fmt.Sprintf(msg, args...),
	}
	return s.err
}

// Scan scans the complete contents of src and returns its tokens, ending with
// a single EOF token. Scanning stops at the first lexical error, whose
// concrete type is [*LexError].
func Scan(src []byte) ([]Token, error) {
	var out []Token
	for tok, err := range Tokens(src) {
		if err != nil {
			return nil, err
		}
		out = append(out, tok)
	}
	return out, nil
}

// Tokens returns a sequence of the tokens of src. The sequence ends after the
// EOF token, or after the first error. Each iteration of the sequence starts
// over from the beginning of src.
func Tokens(src []byte) iter.Seq2[Token, error] {
	return func(yield func(Token, error) bool) {
		s := NewScanner(src)
		for {
			tok, err := s.Next()
			if err != nil {
				yield(Token{}, err)
				return
			} else if !yield(tok, nil) || tok.Kind == EOF {
				return
			}
		}
	}
}

// LexError is the concrete type of errors reported by the Scanner.
type LexError struct {
	Offset  int     // byte offset of the offending input
	Pos     LineCol // line and column of Offset
	Message string
}

// Error satisfies the error interface.
func (e *LexError) Error() string {
	return fmt.Sprintf("at %s: %s (offset %d)", e.Pos, e.Message, e.Offset)
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\r' || ch == '\n' || ch == '\t'
}

func isNumStart(ch byte) bool { return ch == '-' || isDigit(ch) }
func isDigit(ch byte) bool    { return '0' <= ch && ch <= '9' }
func isNameByte(ch byte) bool { return 'a' <= ch && ch <= 'z' }

var self = [...]Kind{LBrace, RBrace, LSquare, RSquare, Comma, Colon}

func selfDelim(ch byte) (Kind, bool) {
	i := strings.IndexByte("{}[],:", ch)
	if i >= 0 {
		return self[i], true
	}
	return Invalid, false
}
