// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package escape handles quoting and unquoting of JSON strings.
package escape

import (
	"errors"
	"unicode/utf16"
	"unicode/utf8"

	"go4.org/mem"
)

// Unquote decodes a byte slice containing the JSON encoding of a string. The
// input must have the enclosing double quotation marks already removed.
//
// Escape sequences are replaced with their unescaped equivalents. A valid
// surrogate pair of \u escapes decodes to a single rune. Invalid escapes are
// replaced by the Unicode replacement rune. Unquote reports an error for an
// incomplete escape sequence.
func Unquote(src mem.RO) ([]byte, error) {
	dec := make([]byte, 0, src.Len())
	for {
		i := mem.IndexByte(src, '\\')
		if i < 0 {
			return mem.Append(dec, src), nil
		}
		dec = mem.Append(dec, src.SliceTo(i))
		src = src.SliceFrom(i + 1)
		if src.Len() == 0 {
			return nil, errors.New("incomplete escape sequence")
		}

		c := src.At(0)
		src = src.SliceFrom(1)
		switch c {
		case '"', '\\', '/':
			dec = append(dec, c)
		case 'b':
			dec = append(dec, '\b')
		case 'f':
			dec = append(dec, '\f')
		case 'n':
			dec = append(dec, '\n')
		case 'r':
			dec = append(dec, '\r')
		case 't':
			dec = append(dec, '\t')
		case 'u':
			if src.Len() < 4 {
				return nil, errors.New("incomplete Unicode escape")
			}
			r, ok := ParseHex4(src.SliceTo(4))
			src = src.SliceFrom(4)
			if !ok {
				r = utf8.RuneError
			} else if hi := r; utf16.IsSurrogate(hi) {
				r = utf8.RuneError
				if lo, ok := lowSurrogate(src); ok {
					r = utf16.DecodeRune(hi, lo)
					if r != utf8.RuneError {
						src = src.SliceFrom(6)
					}
				}
			}
			dec = utf8.AppendRune(dec, r)
		default:
			dec = utf8.AppendRune(dec, utf8.RuneError)
		}
	}
}

// lowSurrogate reports whether src begins with a \u escape, and if so
// returns its value.
func lowSurrogate(src mem.RO) (rune, bool) {
	if src.Len() < 6 || src.At(0) != '\\' || src.At(1) != 'u' {
		return 0, false
	}
	return ParseHex4(src.Slice(2, 6))
}

// ParseHex4 decodes data as a hexadecimal value. It reports false if any byte
// of data is not a hex digit.
func ParseHex4(data mem.RO) (rune, bool) {
	var v rune
	for i := 0; i < data.Len(); i++ {
		b := data.At(i)
		v <<= 4
		switch {
		case '0' <= b && b <= '9':
			v += rune(b - '0')
		case 'a' <= b && b <= 'f':
			v += rune(b - 'a' + 10)
		case 'A' <= b && b <= 'F':
			v += rune(b - 'A' + 10)
		default:
			return 0, false
		}
	}
	return v, true
}
