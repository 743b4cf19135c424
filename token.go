// Copyright (C) 2025 Michael J. Fromberger. All Rights Reserved.

package jevents

import (
	"bytes"

	"go4.org/mem"
)

// Kind is the type of a token in a tokenized source buffer.
type Kind byte

// Constants defining the valid Kind values.
const (
	Invalid   Kind = iota // invalid token
	Object                // object "{...}"
	Array                 // array "[...]"
	String                // quoted string
	Primitive             // number, true, false, or null
)

var kindStr = [...]string{
	Invalid:   "invalid token",
	Object:    "object",
	Array:     "array",
	String:    "string",
	Primitive: "primitive",
}

func (k Kind) String() string {
	v := int(k)
	if v >= len(kindStr) {
		return kindStr[Invalid]
	}
	return kindStr[v]
}

// A Token is a typed span of a source buffer. Tokens form an implicit tree
// flattened into a sequence in source order; traversal is purely positional.
//
// For String tokens the span excludes the enclosing quotation marks, and
// escape sequences are left undecoded.
type Token struct {
	Kind Kind
	Pos  int // start offset in the source, 0-based
	End  int // end offset, 0-based (noninclusive)
	Size int // direct child tokens: keys plus values for an object, elements for an array
}

// Len returns the length in bytes of the token's span.
func (t Token) Len() int { return t.End - t.Pos }

// Text returns a view of the token's text in data. The slice aliases data;
// the caller must not modify it.
func (t Token) Text(data []byte) []byte { return data[t.Pos:t.End] }

// Equal reports whether the token's text in data equals s.
func (t Token) Equal(data []byte, s string) bool {
	return mem.B(t.Text(data)).Equal(mem.S(s))
}

// Line returns the 1-based source line on which the token begins.
func (t Token) Line(data []byte) int {
	pos := t.Pos
	if pos > len(data) {
		pos = len(data)
	}
	return 1 + bytes.Count(data[:pos], []byte{'\n'})
}
