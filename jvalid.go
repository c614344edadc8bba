// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jvalid

// Valid reports whether src is a well-formed document. Input that cannot be
// scanned is not valid, nor is input whose objects and arrays nest more than
// [MaxDepth] levels deep.
func Valid(src []byte) bool {
	vs, err := Check(src)
	return err == nil && len(vs) == 0
}

// Check scans src and validates the resulting tokens. If src cannot be
// scanned, Check returns a [*LexError]. Otherwise it returns the violations
// reported by [Validate], which are empty if src is well-formed.
func Check(src []byte) ([]Violation, error) {
	tokens, err := Scan(src)
	if err != nil {
		return nil, err
	}
	return Validate(tokens), nil
}
