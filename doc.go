// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package jvalid implements a JSON scanner and a structural validator.
//
// # Scanning
//
// The Scanner type implements a lexical scanner for JSON over an in-memory
// buffer.  Construct a scanner and call its Next method to iterate over the
// input. Next returns the next token, or reports an error:
//
//	s := jvalid.NewScanner(input)
//	for {
//	   tok, err := s.Next()
//	   if err != nil {
//	      log.Fatalf("Scanning failed: %v", err)
//	   }
//	   log.Printf("Next token: %v", tok)
//	   if tok.Kind == jvalid.EOF {
//	      break
//	   }
//	}
//
// At the end of the input, and at a NUL byte, Next reports an EOF token, and
// continues to do so on every later call. Any error has concrete type
// *jvalid.LexError. The Scan function collects all the tokens of an input,
// and Tokens returns them as an iterator.
//
// # Validation
//
// The Validate function checks a complete token sequence against a set of
// structural rules:
//
//	Rule          | Requirement
//	------------- | ------------------------------------------------------
//	Wrapping      | the document is an object or array, followed by EOF
//	Balance       | every close bracket matches the most recent open one
//	TrailingComma | no comma is directly followed by a close bracket
//	LeadingZero   | no number has redundant leading zeroes
//	Grammar       | objects hold "key": value members, values are separated
//
// Every rule is checked, and each failure is reported as a Violation. IsValid
// reports whether there were none. For a buffer, Valid combines scanning and
// validation, and Check reports the details:
//
//	vs, err := jvalid.Check(input)
//	if err != nil {
//	   log.Printf("Not valid, cannot scan: %v", err)
//	} else if len(vs) != 0 {
//	   log.Printf("Not valid: %v", vs)
//	}
//
// # Walking
//
// The Walk function checks the grammar of a token sequence and reports its
// structure to a Handler:
//
//	JSON type  | Methods                   | Description
//	---------- | ------------------------- | ---------------------------------
//	object     | BeginObject, EndObject    | { ... }
//	array      | BeginArray, EndArray      | [ ... ]
//	member     | BeginMember, EndMember    | "key": value
//	value      | Value                     | true, false, null, number, string
//	--         | EndOfInput                | end of input
//
// The walker ensures that corresponding Begin and End methods are correctly
// paired, or that a *jvalid.SyntaxError is reported.
package jvalid
