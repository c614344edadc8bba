// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jvalid

import (
	"fmt"
	"slices"
	"strings"
)

// MaxDepth is the maximum nesting depth of objects and arrays accepted by Walk.
const MaxDepth = 10000

// A Handler handles events from walking a token sequence.  If a method
// reports an error, the walk stops and that error is returned to the caller.
// The walker ensures objects and arrays are correctly balanced.
type Handler interface {
	// Begin a new object, whose open brace is tok.
	BeginObject(tok Token) error

	// End the most-recently-opened object, whose close brace is tok.
	EndObject(tok Token) error

	// Begin a new array, whose open bracket is tok.
	BeginArray(tok Token) error

	// End the most-recently-opened array, whose close bracket is tok.
	EndArray(tok Token) error

	// Begin a new object member, whose key is tok.  The text of the key is
	// not unescaped; the handler is responsible for decoding it if the plain
	// string is required (see Token.Unquote).
	BeginMember(key Token) error

	// End the current object member giving the token that terminated the
	// member (either Comma or RBrace).
	EndMember(tok Token) error

	// Report a scalar data value.
	Value(tok Token) error

	// EndOfInput reports the end of the token sequence.
	EndOfInput(tok Token)
}

// Walk checks that tokens consist of exactly one JSON value followed by an EOF
// token, and delivers events to h describing the structure of the value.
//
// In case of a syntax error, the returned error has type [*SyntaxError].
// If a method of h reports an error, the walk stops and that error is
// returned.
func Walk(tokens []Token, h Handler) (err error) {
	w := &walker{toks: tokens}
	defer w.recoverWalkError(&err)

	if w.advance() == EOF {
		w.syntaxError("no value before end of input")
	}
	w.parseElement(h)
	w.advance(EOF)
	h.EndOfInput(w.tok)
	if w.next != len(w.toks) {
		w.syntaxError("%d tokens after end of input", len(w.toks)-w.next)
	}
	return nil
}

type walker struct {
	toks  []Token
	next  int   // index of the next unread token
	tok   Token // the current token, toks[next-1]
	depth int
}

func (w *walker) recoverWalkError(errp *error) {
	if werr := recover(); werr != nil {
		switch err := werr.(type) {
		case *SyntaxError:
			*errp = err
		case handlerError:
			*errp = err.error
		default:
			panic(werr)
		}
	}
}

// parseElement consumes a single value of any type.
// Precondition: the current token is the first token of the value.
func (w *walker) parseElement(h Handler) {
	switch tok := w.tok; tok.Kind {
	case LBrace:
		w.push()
		w.checkError(h.BeginObject(tok))
		w.parseMembers(h)
		w.checkError(h.EndObject(w.tok))
		w.depth--
	case LSquare:
		w.push()
		w.checkError(h.BeginArray(tok))
		w.parseElements(h)
		w.checkError(h.EndArray(w.tok))
		w.depth--
	case Integer, Number, String, True, False, Null:
		w.checkError(h.Value(tok))
	case RBrace, RSquare, Comma, Colon:
		w.syntaxError("unexpected %v", tok.Kind)
	case EOF:
		w.syntaxError("unexpected end of input")
	default:
		w.syntaxError("unknown token %v", tok.Kind)
	}
}

// parseMembers consumes zero of more key:value object members.
// Precondition: token == LBrace.
// Postcondition: token == RBrace.
func (w *walker) parseMembers(h Handler) {
	if w.advance(RBrace, String) == RBrace {
		return // end of object
	}
	for {
		// Parse a single member: "key": value
		w.checkError(h.BeginMember(w.tok))
		w.advance(Colon)
		w.advance()
		w.parseElement(h)

		// Check whether we have more members (",") or are done ("}").
		tok := w.advance(RBrace, Comma)
		w.checkError(h.EndMember(w.tok))
		if tok == RBrace {
			return // end of object
		}
		w.advance(String) // advance to next key
	}
}

// parseElements consumes zero or more comma-separated array values.
// Precondition: token == LSquare.
// Postcondition: token == RSquare.
func (w *walker) parseElements(h Handler) {
	if w.advance() == RSquare {
		return // end of array
	}
	w.parseElement(h)
	for {
		if w.advance(RSquare, Comma) == RSquare {
			return // end of array
		}
		w.advance()
		w.parseElement(h)
	}
}

func (w *walker) push() {
	w.depth++
	if w.depth > MaxDepth {
		w.syntaxError("nesting exceeds maximum depth %d", MaxDepth)
	}
}

// advance moves to the next token and returns its kind. If any kinds are
// given, the token must be one of them.
func (w *walker) advance(kinds ...Kind) Kind {
	if w.next >= len(w.toks) {
		w.next = len(w.toks) + 1 // report the position past the end
		w.syntaxError("token sequence ends without %v", EOF)
	}
	w.tok = w.toks[w.next]
	w.next++
	if len(kinds) != 0 && !slices.Contains(kinds, w.tok.Kind) {
		w.syntaxError("%s", kindLabel(kinds, w.tok.Kind))
	}
	return w.tok.Kind
}

func (w *walker) syntaxError(msg string, args ...any) {
	serr := &SyntaxError{
		Index:   w.next - 1,
		Message: fmt.Sprintf(msg, args...),
	}
	if serr.Index >= 0 && serr.Index < len(w.toks) {
		serr.Span = w.toks[serr.Index].Span
	}
	panic(serr)
}

func (w *walker) checkError(err error) {
	if err != nil {
		panic(handlerError{err})
	}
}

type handlerError struct{ error }

func (h handlerError) Unwrap() error { return h.error }

// kindLabel makes a human-readable summary string for the given token kinds.
func kindLabel(kinds []Kind, got Kind) string {
	var exp string
	if len(kinds) == 1 {
		exp = kinds[0].String()
	} else {
		last := len(kinds) - 1
		ss := make([]string, last)
		for i, k := range kinds[:last] {
			ss[i] = k.String()
		}
		exp = strings.Join(ss, ", ") + " or " + kinds[last].String()
	}
	return fmt.Sprintf("expected %s, got %v", exp, got)
}

// SyntaxError is the concrete type of errors reported by Walk.
type SyntaxError struct {
	Index   int  // index of the offending token in the sequence
	Span    Span // location of the offending token, if it exists
	Message string
}

// Error satisfies the error interface.
func (s *SyntaxError) Error() string {
	return fmt.Sprintf("at token %d (offset %d): %s", s.Index, s.Span.Pos, s.Message)
}

// nopHandler is a Handler that ignores all events.
type nopHandler struct{}

func (nopHandler) BeginObject(Token) error { return nil }
func (nopHandler) EndObject(Token) error   { return nil }
func (nopHandler) BeginArray(Token) error  { return nil }
func (nopHandler) EndArray(Token) error    { return nil }
func (nopHandler) BeginMember(Token) error { return nil }
func (nopHandler) EndMember(Token) error   { return nil }
func (nopHandler) Value(Token) error       { return nil }
func (nopHandler) EndOfInput(Token)        {}
