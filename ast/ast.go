// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package ast defines an abstract syntax tree for JSON values,
// and a parser that constructs syntax trees from JSON source.
package ast

import (
	"strconv"
	"strings"

	"github.com/creachadair/jvalid"
)

// A Value is an arbitrary JSON value.
type Value interface {
	// Span reports the location of the value in its source. Values that
	// were constructed in code have a zero span.
	Span() jvalid.Span

	// JSON renders the value as compact JSON text.
	JSON() string
}

// A Datum is a Value with a text representation.
type Datum interface {
	Value
	Text() string
}

// An Object is a collection of key-value members.
type Object struct {
	span    jvalid.Span
	Members []*Member
}

// NewObject constructs an object with the given members.
func NewObject(ms ...*Member) *Object { return &Object{Members: ms} }

// Span satisfies the Value interface.
func (o *Object) Span() jvalid.Span { return o.span }

// JSON satisfies the Value interface.
func (o *Object) JSON() string {
	ss := make([]string, len(o.Members))
	for i, m := range o.Members {
		ss[i] = m.JSON()
	}
	return "{" + strings.Join(ss, ",") + "}"
}

// Find returns the first member of o with the given key, or nil.
func (o *Object) Find(key string) *Member {
	for _, m := range o.Members {
		if m.Key.Unquote() == key {
			return m
		}
	}
	return nil
}

// A Member is a single key-value pair belonging to an Object.
type Member struct {
	span jvalid.Span

	Key   String
	Value Value
}

// Field constructs an object member with the given key and value.
func Field(key string, v Value) *Member { return &Member{Key: NewString(key), Value: v} }

// Span satisfies the Value interface.
func (m *Member) Span() jvalid.Span { return m.span }

// JSON satisfies the Value interface.
func (m *Member) JSON() string { return m.Key.JSON() + ":" + m.Value.JSON() }

// An Array is a sequence of values.
type Array struct {
	span   jvalid.Span
	Values []Value
}

// NewArray constructs an array with the given values.
func NewArray(vs ...Value) *Array { return &Array{Values: vs} }

// Span satisfies the Value interface.
func (a *Array) Span() jvalid.Span { return a.span }

// JSON satisfies the Value interface.
func (a *Array) JSON() string {
	ss := make([]string, len(a.Values))
	for i, v := range a.Values {
		ss[i] = v.JSON()
	}
	return "[" + strings.Join(ss, ",") + "]"
}

type datum struct {
	span jvalid.Span
	text string
}

// Span satisfies the Value interface.
func (d datum) Span() jvalid.Span { return d.span }

// Text satisfies the Datum interface.
func (d datum) Text() string { return d.text }

// JSON satisfies the Value interface.
func (d datum) JSON() string { return d.text }

// An Integer is an integer value. Its text is exactly as written in the
// source.
type Integer struct{ datum }

// NewInt constructs an integer value.
func NewInt(z int64) Integer { return Integer{datum{text: strconv.FormatInt(z, 10)}} }

// Int64 reports the value of z as an int64, or an error if it is out of
// range.
func (z Integer) Int64() (int64, error) { return strconv.ParseInt(z.text, 10, 64) }

// A Number is a floating-point value.
type Number struct{ datum }

// NewFloat constructs a number value.
func NewFloat(f float64) Number {
	return Number{datum{text: strconv.FormatFloat(f, 'g', -1, 64)}}
}

// Float64 reports the value of n as a float64.
func (n Number) Float64() (float64, error) { return strconv.ParseFloat(n.text, 64) }

// A Bool is a Boolean constant, true or false.
type Bool struct {
	datum
	value bool
}

// NewBool constructs a Boolean value.
func NewBool(b bool) Bool { return Bool{datum: datum{text: strconv.FormatBool(b)}, value: b} }

// Value reports the truth value of b.
func (b Bool) Value() bool { return b.value }

// A String is a string value. Its text is the undecoded content between the
// quotation marks.
type String struct{ datum }

// NewString constructs a string value with the given content.
func NewString(s string) String {
	q := jvalid.Quote(s)
	return String{datum{text: q[1 : len(q)-1]}}
}

// JSON satisfies the Value interface.
func (s String) JSON() string { return `"` + s.text + `"` }

// Unquote returns the decoded content of s. Invalid escapes are replaced by
// the Unicode replacement rune.
func (s String) Unquote() string {
	dec, err := jvalid.Unquote(s.JSON())
	if err != nil {
		return s.text // the scanner does not produce incomplete escapes
	}
	return string(dec)
}

// Null represents the null constant.
type Null struct{ datum }

// NewNull constructs a null value.
func NewNull() Null { return Null{datum{text: "null"}} }
