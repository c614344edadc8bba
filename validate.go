// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jvalid

import (
	"errors"
	"fmt"

	"github.com/creachadair/mds/stack"
)

// A Rule identifies one of the structural rules applied by Validate.
type Rule byte

// Constants defining the rules checked by Validate, in the order they are
// applied.
const (
	Wrapping      Rule = iota + 1 // the value is a single object or array ending at EOF
	Balance                       // brackets are balanced and matched by kind
	TrailingComma                 // no comma precedes a close bracket
	LeadingZero                   // numbers have no redundant leading zeroes
	Grammar                       // members and elements are well-formed
)

var ruleStr = [...]string{
	Wrapping:      "wrapping",
	Balance:       "balance",
	TrailingComma: "trailing-comma",
	LeadingZero:   "leading-zero",
	Grammar:       "grammar",
}

func (r Rule) String() string {
	if r == 0 || int(r) >= len(ruleStr) {
		return fmt.Sprintf("rule(%d)", r)
	}
	return ruleStr[r]
}

// A Violation describes a rule that a token sequence fails to satisfy.
type Violation struct {
	Rule    Rule
	Index   int // index of the offending token, or -1 for the whole sequence
	Message string
}

func (v Violation) String() string {
	if v.Index < 0 {
		return fmt.Sprintf("%v: %s", v.Rule, v.Message)
	}
	return fmt.Sprintf("%v: token %d: %s", v.Rule, v.Index, v.Message)
}

// rules lists the checks applied by Validate. Each reports the first
// violation of its rule, or nil.
var rules = [...]func([]Token) *Violation{
	checkWrapping,
	checkBalance,
	checkTrailingComma,
	checkLeadingZero,
	checkGrammar,
}

// Validate applies every structural rule to tokens and returns the violations
// found, ordered by rule. It returns nil if tokens denote a well-formed
// document. Every rule is checked, regardless of whether an earlier rule
// failed.
func Validate(tokens []Token) []Violation {
	var out []Violation
	for _, check := range rules {
		if v := check(tokens); v != nil {
			out = append(out, *v)
		}
	}
	return out
}

// IsValid reports whether tokens denote a well-formed document. An empty
// sequence is not valid, nor is one whose objects and arrays nest more than
// [MaxDepth] levels deep.
func IsValid(tokens []Token) bool { return len(Validate(tokens)) == 0 }

func violation(r Rule, i int, msg string, args ...any) *Violation {
	return &Violation{Rule: r, Index: i, Message: fmt.Sprintf(msg, args...)}
}

// checkWrapping requires that tokens begin with an open bracket, end with the
// matching close bracket and EOF, and contain no other EOF.
func checkWrapping(tokens []Token) *Violation {
	n := len(tokens)
	if n < 2 {
		return violation(Wrapping, -1, "sequence has %d tokens, want at least 2", n)
	}
	for i, tok := range tokens[:n-1] {
		if tok.Kind == EOF {
			return violation(Wrapping, i, "end of input before the last token")
		}
	}
	first, last, end := tokens[0].Kind, tokens[n-2].Kind, tokens[n-1].Kind
	switch {
	case end != EOF:
		return violation(Wrapping, n-1, "sequence ends with %v, not %v", end, EOF)
	case !first.IsOpen():
		return violation(Wrapping, 0, "document begins with %v, want %v or %v", first, LBrace, LSquare)
	case !last.IsClose() || last.Opener() != first:
		return violation(Wrapping, n-2, "document opened with %v ends with %v", first, last)
	}
	return nil
}

// checkBalance requires that every close bracket matches the kind of the most
// recent unclosed open bracket, and that no bracket is left open.
func checkBalance(tokens []Token) *Violation {
	open := stack.New[Kind]()
	for i, tok := range tokens {
		switch {
		case tok.Kind.IsOpen():
			open.Add(tok.Kind)
		case tok.Kind.IsClose():
			top, ok := open.Pop()
			if !ok {
				return violation(Balance, i, "unmatched %v", tok.Kind)
			} else if top != tok.Kind.Opener() {
				return violation(Balance, i, "%v closes %v", tok.Kind, top)
			}
		}
	}
	if n := open.Len(); n != 0 {
		return violation(Balance, -1, "%d unclosed brackets", n)
	}
	return nil
}

// checkTrailingComma requires that no comma is immediately followed by a
// close bracket.
func checkTrailingComma(tokens []Token) *Violation {
	for i := 1; i < len(tokens); i++ {
		if tokens[i-1].Kind == Comma && tokens[i].Kind.IsClose() {
			return violation(TrailingComma, i-1, "comma before %v", tokens[i].Kind)
		}
	}
	return nil
}

// checkLeadingZero requires that no number has redundant leading zeroes.
func checkLeadingZero(tokens []Token) *Violation {
	for i, tok := range tokens {
		if (tok.Kind == Integer || tok.Kind == Number) && hasExtraLeadingZeroes(tok.Text) {
			return violation(LeadingZero, i, "extra leading zeroes in %q", tok.Text)
		}
	}
	return nil
}

// checkGrammar requires that tokens form exactly one value in which object
// members are "key": value pairs and elements are separated by commas.
func checkGrammar(tokens []Token) *Violation {
	err := Walk(tokens, nopHandler{})
	if err == nil {
		return nil
	}
	var serr *SyntaxError
	if errors.As(err, &serr) {
		return violation(Grammar, serr.Index, "%s", serr.Message)
	}
	return violation(Grammar, -1, "%v", err)
}

// hasExtraLeadingZeroes reports whether the representation of a number in
// text has redundant leading zeroes in its integer part.
//
// OK: 0, 0.1, -1.0, -0.1, 0e5.
// Bad: -01, 01.2, -01.0, 00.1, 0123.
func hasExtraLeadingZeroes(text string) bool {
	if text != "" && text[0] == '-' {
		text = text[1:] // skip leading sign
	}
	return len(text) > 1 && text[0] == '0' && isDigit(text[1])
}
