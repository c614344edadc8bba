// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"fmt"

	"github.com/creachadair/jvalid"
)

// Parse scans src and parses a single JSON value from it. Scanning errors
// have concrete type [*jvalid.LexError], and parsing errors have concrete
// type [*jvalid.SyntaxError].
//
// Parse does not apply the structural rules of [jvalid.Validate] beyond the
// grammar, so for example a top-level scalar value is accepted.
func Parse(src []byte) (Value, error) {
	tokens, err := jvalid.Scan(src)
	if err != nil {
		return nil, err
	}
	return ParseTokens(tokens)
}

// ParseTokens parses a single JSON value from a complete token sequence.
func ParseTokens(tokens []jvalid.Token) (Value, error) {
	h := new(parseHandler)
	if err := jvalid.Walk(tokens, h); err != nil {
		return nil, err
	}
	return h.root, nil
}

// A parseHandler implements the jvalid.Handler interface to construct
// abstract syntax trees for JSON values.
type parseHandler struct {
	stk  []Value // open objects, arrays, and members
	root Value
}

func (h *parseHandler) top() Value { return h.stk[len(h.stk)-1] }

func (h *parseHandler) pop() Value {
	last := h.top()
	h.stk = h.stk[:len(h.stk)-1]
	return last
}

func (h *parseHandler) push(v Value) { h.stk = append(h.stk, v) }

// reduce attaches a completed value v to the innermost open value, or
// records it as the root if nothing is open.
func (h *parseHandler) reduce(v Value) error {
	if len(h.stk) == 0 {
		h.root = v
		return nil
	}
	switch prev := h.top().(type) {
	case *Member:
		prev.Value = v
	case *Array:
		prev.Values = append(prev.Values, v)
	default:
		return fmt.Errorf("unexpected %T in %T", v, prev)
	}
	return nil
}

func (h *parseHandler) BeginObject(tok jvalid.Token) error {
	h.push(&Object{span: tok.Span})
	return nil
}

func (h *parseHandler) EndObject(tok jvalid.Token) error {
	obj := h.pop().(*Object)
	obj.span.End = tok.Span.End
	return h.reduce(obj)
}

func (h *parseHandler) BeginArray(tok jvalid.Token) error {
	h.push(&Array{span: tok.Span})
	return nil
}

func (h *parseHandler) EndArray(tok jvalid.Token) error {
	arr := h.pop().(*Array)
	arr.span.End = tok.Span.End
	return h.reduce(arr)
}

func (h *parseHandler) BeginMember(key jvalid.Token) error {
	// The object this member belongs to is atop the stack.  Add the new
	// member to its collection eagerly, so that the value can be attached to
	// the member directly when it is complete.
	mem := &Member{span: key.Span, Key: String{datum{span: key.Span, text: key.Text}}}
	obj := h.top().(*Object)
	obj.Members = append(obj.Members, mem)
	h.push(mem)
	return nil
}

func (h *parseHandler) EndMember(jvalid.Token) error {
	mem := h.pop().(*Member)
	mem.span.End = mem.Value.Span().End
	return nil
}

func (h *parseHandler) Value(tok jvalid.Token) error {
	d := datum{span: tok.Span, text: tok.Text}
	switch tok.Kind {
	case jvalid.String:
		return h.reduce(String{d})
	case jvalid.Integer:
		return h.reduce(Integer{d})
	case jvalid.Number:
		return h.reduce(Number{d})
	case jvalid.True, jvalid.False:
		ok := tok.Kind == jvalid.True
		d.text = tok.Kind.String()
		return h.reduce(Bool{datum: d, value: ok})
	case jvalid.Null:
		d.text = tok.Kind.String()
		return h.reduce(Null{d})
	default:
		return fmt.Errorf("unknown value %v", tok.Kind)
	}
}

func (h *parseHandler) EndOfInput(jvalid.Token) {}
