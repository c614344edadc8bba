// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jvalid_test

import (
	"errors"
	"testing"

	"github.com/creachadair/jvalid"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func kinds(t *testing.T, input string) []jvalid.Kind {
	t.Helper()
	toks, err := jvalid.Scan([]byte(input))
	if err != nil {
		t.Fatalf("Scan %#q: unexpected error: %v", input, err)
	}
	out := make([]jvalid.Kind, len(toks))
	for i, tok := range toks {
		out[i] = tok.Kind
	}
	return out
}

func TestScanner(t *testing.T) {
	tests := []struct {
		input string
		want  []jvalid.Kind
	}{
		// Empty inputs
		{"", []jvalid.Kind{jvalid.EOF}},
		{"  ", []jvalid.Kind{jvalid.EOF}},
		{"\n\n  \n", []jvalid.Kind{jvalid.EOF}},
		{"\t  \r\n \t  \r\n", []jvalid.Kind{jvalid.EOF}},

		// Constants
		{"true false null", []jvalid.Kind{jvalid.True, jvalid.False, jvalid.Null, jvalid.EOF}},

		// Punctuation
		{"{ [ ] } , :", []jvalid.Kind{
			jvalid.LBrace, jvalid.LSquare, jvalid.RSquare, jvalid.RBrace, jvalid.Comma, jvalid.Colon, jvalid.EOF,
		}},

		// Strings
		{`"" "a b c" "a\nb\tc"`, []jvalid.Kind{jvalid.String, jvalid.String, jvalid.String, jvalid.EOF}},
		{`"\"\\\/\b\f\n\r\t"`, []jvalid.Kind{jvalid.String, jvalid.EOF}},
		{`"\u0000\u01fc\uAA9c"`, []jvalid.Kind{jvalid.String, jvalid.EOF}},
		{`"caf` + "\xc3\xa9" + `"`, []jvalid.Kind{jvalid.String, jvalid.EOF}},

		// Numbers
		{`0 -1 5139 2.3 5e+9 3.6E+4 -0.001E-100`, []jvalid.Kind{
			jvalid.Integer, jvalid.Integer, jvalid.Integer,
			jvalid.Number, jvalid.Number, jvalid.Number, jvalid.Number, jvalid.EOF,
		}},

		// Leading zeroes are not a lexical error.
		{`0123 -007 00.5`, []jvalid.Kind{jvalid.Integer, jvalid.Integer, jvalid.Number, jvalid.EOF}},

		// Structure is not checked by the scanner.
		{`{:}`, []jvalid.Kind{jvalid.LBrace, jvalid.Colon, jvalid.RBrace, jvalid.EOF}},
		{`{true,"false":-15 null[]}`, []jvalid.Kind{
			jvalid.LBrace, jvalid.True, jvalid.Comma, jvalid.String, jvalid.Colon,
			jvalid.Integer, jvalid.Null, jvalid.LSquare, jvalid.RSquare, jvalid.RBrace, jvalid.EOF,
		}},
		{`{"a": true, "b":[null, 1, 0.5]}`, []jvalid.Kind{
			jvalid.LBrace,
			jvalid.String, jvalid.Colon, jvalid.True, jvalid.Comma,
			jvalid.String, jvalid.Colon,
			jvalid.LSquare,
			jvalid.Null, jvalid.Comma, jvalid.Integer, jvalid.Comma, jvalid.Number,
			jvalid.RSquare,
			jvalid.RBrace,
			jvalid.EOF,
		}},

		// A NUL byte ends the input, wherever it occurs.
		{"{}\x00 garbage", []jvalid.Kind{jvalid.LBrace, jvalid.RBrace, jvalid.EOF}},
		{"\x00", []jvalid.Kind{jvalid.EOF}},
	}

	for _, test := range tests {
		got := kinds(t, test.input)
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("Input: %#q\nTokens: (-want, +got)\n%s", test.input, diff)
		}
	}
}

func TestScannerText(t *testing.T) {
	toks, err := jvalid.Scan([]byte(` {"key" : 0123, "n": -1.5e3, "s": "a\"b"} `))
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	want := []jvalid.Token{
		{Kind: jvalid.LBrace, Span: jvalid.Span{Pos: 1, End: 2}},
		{Kind: jvalid.String, Text: "key", Span: jvalid.Span{Pos: 2, End: 7}},
		{Kind: jvalid.Colon, Span: jvalid.Span{Pos: 8, End: 9}},
		{Kind: jvalid.Integer, Text: "0123", Span: jvalid.Span{Pos: 10, End: 14}},
		{Kind: jvalid.Comma, Span: jvalid.Span{Pos: 14, End: 15}},
		{Kind: jvalid.String, Text: "n", Span: jvalid.Span{Pos: 16, End: 19}},
		{Kind: jvalid.Colon, Span: jvalid.Span{Pos: 19, End: 20}},
		{Kind: jvalid.Number, Text: "-1.5e3", Span: jvalid.Span{Pos: 21, End: 27}},
		{Kind: jvalid.Comma, Span: jvalid.Span{Pos: 27, End: 28}},
		{Kind: jvalid.String, Text: "s", Span: jvalid.Span{Pos: 29, End: 32}},
		{Kind: jvalid.Colon, Span: jvalid.Span{Pos: 32, End: 33}},
		{Kind: jvalid.String, Text: `a\"b`, Span: jvalid.Span{Pos: 34, End: 40}},
		{Kind: jvalid.RBrace, Span: jvalid.Span{Pos: 40, End: 41}},
		{Kind: jvalid.EOF, Span: jvalid.Span{Pos: 42, End: 42}},
	}
	if diff := cmp.Diff(want, toks); diff != "" {
		t.Errorf("Tokens: (-want, +got)\n%s", diff)
	}
}

func TestScannerErrors(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{`x`, `at 1:0: unknown constant "x" (offset 0)`},
		{`@`, `at 1:0: unexpected '@' (offset 0)`},
		{`{"a": tru}`, `at 1:6: unknown constant "tru" (offset 6)`},
		{`[truest]`, `at 1:1: unknown constant "truest" (offset 1)`},
		{`[True]`, `at 1:1: unexpected 'T' (offset 1)`},
		{`["abc`, `at 1:1: unterminated string (offset 1)`},
		{`["abc\`, `at 1:1: unterminated string (offset 1)`},
		{`"\x"`, `at 1:1: invalid 'x' after escape (offset 1)`},
		{`"\u12"`, `at 1:1: invalid Unicode escape (offset 1)`},
		{`"\u12`, `at 1:1: invalid Unicode escape (offset 1)`},
		{`"\u12g4"`, `at 1:1: invalid Unicode escape (offset 1)`},
		{"\"a\tb\"", `at 1:2: unescaped control '\t' (offset 2)`},
		{"\"\xff\"", `at 1:0: invalid UTF-8 in string (offset 0)`},
		{"{\n  -}", `at 2:3: want digit after sign (offset 5)`},
		{`1.`, `at 1:2: no digits after decimal point (offset 2)`},
		{`1e+`, `at 1:3: missing exponent digits (offset 3)`},
		{`['x']`, `at 1:1: unexpected '\'' (offset 1)`},
		{"[é]", `at 1:1: unexpected 'é' (offset 1)`},
		{"[\xff]", `at 1:1: unexpected byte 0xff (offset 1)`},
	}
	for _, test := range tests {
		_, err := jvalid.Scan([]byte(test.input))
		var lerr *jvalid.LexError
		if !errors.As(err, &lerr) {
			t.Errorf("Scan %#q: got error %v, want *LexError", test.input, err)
			continue
		}
		if got := err.Error(); got != test.want {
			t.Errorf("Scan %#q: got error %q, want %q", test.input, got, test.want)
		}
	}
}

func TestScannerEOF(t *testing.T) {
	s := jvalid.NewScanner([]byte(" {} "))
	for _, want := range []jvalid.Kind{jvalid.LBrace, jvalid.RBrace} {
		if tok, err := s.Next(); err != nil || tok.Kind != want {
			t.Fatalf("Next: got (%v, %v), want %v", tok, err, want)
		}
	}

	// Once the input is exhausted, every call reports EOF.
	for range 3 {
		tok, err := s.Next()
		if err != nil || tok.Kind != jvalid.EOF {
			t.Errorf("Next: got (%v, %v), want EOF", tok, err)
		}
		if got := s.Offset(); got != 4 {
			t.Errorf("Offset: got %d, want 4", got)
		}
	}

	// Reset restarts from the beginning.
	s.Reset()
	if tok, err := s.Next(); err != nil || tok.Kind != jvalid.LBrace {
		t.Errorf("Next after Reset: got (%v, %v), want %v", tok, err, jvalid.LBrace)
	}
}

func TestScannerStickyError(t *testing.T) {
	s := jvalid.NewScanner([]byte("[?]"))
	if _, err := s.Next(); err != nil {
		t.Fatalf("Next: unexpected error: %v", err)
	}
	_, err1 := s.Next()
	_, err2 := s.Next()
	if err1 == nil || err1 != err2 {
		t.Errorf("Next: got errors %v, %v; want the same error twice", err1, err2)
	}
	s.Reset()
	if _, err := s.Next(); err != nil {
		t.Errorf("Next after Reset: unexpected error: %v", err)
	}
}

func TestTokens(t *testing.T) {
	seq := jvalid.Tokens([]byte(`[1, 2]`))
	ignoreSpan := cmpopts.IgnoreFields(jvalid.Token{}, "Span")
	want := []jvalid.Token{
		{Kind: jvalid.LSquare},
		{Kind: jvalid.Integer, Text: "1"},
		{Kind: jvalid.Comma},
		{Kind: jvalid.Integer, Text: "2"},
		{Kind: jvalid.RSquare},
		{Kind: jvalid.EOF},
	}

	// The sequence can be consumed more than once, starting over each time.
	for i := range 2 {
		var got []jvalid.Token
		for tok, err := range seq {
			if err != nil {
				t.Fatalf("Pass %d: unexpected error: %v", i+1, err)
			}
			got = append(got, tok)
		}
		if diff := cmp.Diff(want, got, ignoreSpan); diff != "" {
			t.Errorf("Pass %d: tokens (-want, +got)\n%s", i+1, diff)
		}
	}

	// Stopping early is fine.
	for tok := range seq {
		if tok.Kind != jvalid.LSquare {
			t.Errorf("First token: got %v, want %v", tok.Kind, jvalid.LSquare)
		}
		break
	}

	// The sequence ends at the first error.
	var n int
	var last error
	for _, err := range jvalid.Tokens([]byte(`[1, ?, 2]`)) {
		n++
		last = err
	}
	if n != 4 || last == nil {
		t.Errorf("Error sequence: got %d items ending with %v, want 4 ending with an error", n, last)
	}
}

func TestTokenUnquote(t *testing.T) {
	toks, err := jvalid.Scan([]byte(`["a\tb c\n", 5]`))
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	const wantText = `a\tb c\n` // as written, without quotes
	const wantDec = "a\tb c\n"  // with escapes undone
	if got := toks[1].Text; got != wantText {
		t.Errorf("Text: got %#q, want %#q", got, wantText)
	}
	if got, err := toks[1].Unquote(); err != nil {
		t.Errorf("Unquote failed: %v", err)
	} else if got != wantDec {
		t.Errorf("Unquote: got %#q, want %#q", got, wantDec)
	}
	if got, err := toks[3].Unquote(); err == nil {
		t.Errorf("Unquote integer: got %q, want error", got)
	}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", `""`},
		{" ", `" "`},
		{"a\t\nb", `"a\t\nb"`},
		{"\x00\x01\x02", `"\u0000\u0001\u0002"`},
		{`a "b c\" d"`, `"a \"b c\\\" d\""`},
		{`\ufffd`, `"\\ufffd"`},
		{"\u2028 \u2029 \ufffd", `"\u2028 \u2029 \ufffd"`},
		{"This is the end\v", `"This is the end\u000b"`},
		{"<\x1e>", `"<\u001e>"`},
		{"café", "\"café\""},
	}
	for _, test := range tests {
		got := jvalid.Quote(test.input)
		if got != test.want {
			t.Errorf("Input: %#q\nGot:  %#q\nWant: %#q", test.input, got, test.want)
		}
	}
}

func TestUnquote(t *testing.T) {
	tests := []struct {
		input string
		want  string
		fail  bool
	}{
		{``, ``, true},                          // missing quotes
		{`"missing quote`, ``, true},            // missing quotes
		{`missing quote"`, ``, true},            // missing quotes
		{`""`, ``, false},                       // ok
		{`"ok go"`, "ok go", false},             // ok
		{`"abc\ndef"`, "abc\ndef", false},       // C escapes
		{`"\tabc\n"`, "\tabc\n", false},         // C escapes
		{`"\b\f\n\r\t"`, "\b\f\n\r\t", false},   // C escapes
		{`"a \u0026 b"`, "a & b", false},        // short Unicode escape
		{`"\u"`, ``, true},                      // incomplete Unicode escape
		{`"\u00"`, ``, true},                    // incomplete Unicode escape
		{`"\u00x9"`, "\ufffd", false},           // invalid Unicode escape
		{`"\u019 "`, "\ufffd", false},           // invalid Unicode escape
		{`"\ud83d\ude00"`, "\U0001f600", false}, // surrogate pair
		{`"\ud83d!"`, "\ufffd!", false},         // unpaired surrogate
		{`"a\"b"`, `a"b`, false},                // ok
		{`"a\\b\\cd"`, `a\b\cd`, false},         // ok
		{`"trailing\"`, ``, true},               // incomplete escape
	}

	for _, test := range tests {
		got, err := jvalid.Unquote(test.input)
		if err != nil {
			if !test.fail {
				t.Errorf("Unquote(%#q): got %v, want no error", test.input, err)
			} else {
				t.Logf("Unquote(%#q): got expected error: %v", test.input, err)
			}
		} else if test.fail {
			t.Errorf("Unquote(%#q): got nil, want error", test.input)
		}
		if cmp := string(got); cmp != test.want {
			t.Errorf("Unquote(%#q): got %#q, want %#q", test.input, cmp, test.want)
		}
	}
}

func TestPosition(t *testing.T) {
	src := []byte("ab\ncd\n\nef")
	tests := []struct {
		offset int
		want   jvalid.LineCol
	}{
		{-1, jvalid.LineCol{Line: 1, Column: 0}},
		{0, jvalid.LineCol{Line: 1, Column: 0}},
		{2, jvalid.LineCol{Line: 1, Column: 2}},
		{3, jvalid.LineCol{Line: 2, Column: 0}},
		{7, jvalid.LineCol{Line: 4, Column: 0}},
		{8, jvalid.LineCol{Line: 4, Column: 1}},
		{100, jvalid.LineCol{Line: 4, Column: 2}},
	}
	for _, test := range tests {
		if got := jvalid.Position(src, test.offset); got != test.want {
			t.Errorf("Position(%d): got %v, want %v", test.offset, got, test.want)
		}
	}
}
