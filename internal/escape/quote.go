// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package escape

import (
	"unicode/utf8"

	"go4.org/mem"
)

// shortEsc maps control bytes with a two-character escape to the letter
// following the backslash.
var shortEsc = [...]byte{
	'\b': 'b',
	'\f': 'f',
	'\n': 'n',
	'\r': 'r',
	'\t': 't',
	' ':  0, // sentinel
}

const hexDigit = "0123456789abcdef"

// Quote escapes src for inclusion in a JSON string. The result does not
// include the enclosing quotation marks.
//
// Control characters, quotation marks, and backslashes are escaped, as are
// the replacement rune and the Unicode line and paragraph separators. Invalid
// UTF-8 sequences are replaced by escaped replacement runes.
func Quote(src mem.RO) []byte {
	buf := make([]byte, 0, src.Len()+2)
	for src.Len() != 0 {
		r, n := mem.DecodeRune(src)
		src = src.SliceFrom(max(n, 1))

		switch {
		case r < ' ':
			if b := shortEsc[r]; b != 0 {
				buf = append(buf, '\\', b)
			} else {
				buf = append(buf, '\\', 'u', '0', '0', hexDigit[r>>4], hexDigit[r&15])
			}
		case r == '\\' || r == '"':
			buf = append(buf, '\\', byte(r))
		case r < utf8.RuneSelf:
			buf = append(buf, byte(r))
		case r == utf8.RuneError:
			buf = append(buf, `\ufffd`...)
		case r == '\u2028':
			buf = append(buf, `\u2028`...)
		case r == '\u2029':
			buf = append(buf, `\u2029`...)
		default:
			buf = utf8.AppendRune(buf, r)
		}
	}
	return buf
}
