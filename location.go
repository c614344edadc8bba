// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package jvalid

import (
	"bytes"
	"fmt"
)

// A Span describes a contiguous span of a source input.
type Span struct {
	Pos int // the start offset, 0-based
	End int // the end offset, 0-based (noninclusive)
}

func (s Span) String() string { return fmt.Sprintf("%d-%d", s.Pos, s.End) }

// A LineCol describes the line number and column offset of a location in
// source text.
type LineCol struct {
	Line   int // line number, 1-based
	Column int // byte offset of column in line, 0-based
}

func (lc LineCol) String() string { return fmt.Sprintf("%d:%d", lc.Line, lc.Column) }

// Position reports the line and column of the given byte offset in src.
// Offsets past the end of src are clamped to len(src).
func Position(src []byte, offset int) LineCol {
	offset = max(0, min(offset, len(src)))
	head := src[:offset]
	line := bytes.Count(head, []byte{'\n'})
	col := offset - (bytes.LastIndexByte(head, '\n') + 1)
	return LineCol{Line: line + 1, Column: col}
}
