// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jvalid

import "fmt"

// Kind is the type of a lexical token in the JSON grammar.
type Kind byte

// Constants defining the valid Kind values.
const (
	Invalid Kind = iota // invalid token
	LBrace              // left brace "{"
	RBrace              // right brace "}"
	LSquare             // left square bracket "["
	RSquare             // right square bracket "]"
	Comma               // comma ","
	Colon               // colon ":"
	Integer             // number: integer with no fraction or exponent
	Number              // number with fraction and/or exponent
	String              // quoted string
	True                // constant: true
	False               // constant: false
	Null                // constant: null
	EOF                 // end of input

	// Do not modify the order of these constants without updating the
	// self-delimiting token table in the scanner.
)

var kindStr = [...]string{
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
	EOF:     "end of input",
}

func (k Kind) String() string {
	v := int(k)
	if v >= len(kindStr) {
		return kindStr[Invalid]
	}
	return kindStr[v]
}

// IsOpen reports whether k opens an object or an array.
func (k Kind) IsOpen() bool { return k == LBrace || k == LSquare }

// IsClose reports whether k closes an object or an array.
func (k Kind) IsClose() bool { return k == RBrace || k == RSquare }

// Opener returns the kind of bracket that is closed by k. For any kind that
// is not a close bracket, Opener returns k unchanged.
func (k Kind) Opener() Kind {
	switch k {
	case RBrace:
		return LBrace
	case RSquare:
		return LSquare
	}
	return k
}

// IsValue reports whether k is a scalar value token.
func (k Kind) IsValue() bool {
	switch k {
	case Integer, Number, String, True, False, Null:
		return true
	}
	return false
}

// A Token is a single lexical unit of the input. Tokens are values and do not
// refer back to the scanner that produced them.
type Token struct {
	Kind Kind

	// Text is the payload of String, Integer, and Number tokens, and is empty
	// for all other kinds. For strings it is the content between the quotes
	// with escape sequences left undecoded; for numbers it is the exact text of
	// the input, including any leading zeroes.
	Text string

	// Span is the location of the lexeme in the input.
	Span Span
}

// Unquote returns the decoded content of a String token.
// It reports an error if t is not a String.
func (t Token) Unquote() (string, error) {
	if t.Kind != String {
		return "", fmt.Errorf("unquote: token is %v, not string", t.Kind)
	}
	dec, err := Unquote(`"` + t.Text + `"`)
	if err != nil {
		return "", err
	}
	return string(dec), nil
}

func (t Token) String() string {
	switch t.Kind {
	case String:
		return `"` + t.Text + `"`
	case Integer, Number:
		return t.Text
	}
	return t.Kind.String()
}
