// Package inspect computes how text is laid out under compact (1, 2 or 4
// byte) and fixed 4-byte wide code unit representations.
package inspect

import (
	"unicode/utf8"
)

// CodePoints is a decoded sequence of Unicode scalar values.
// Values are only produced by Decode and are never mutated afterwards.
type CodePoints []rune

// Decode validates b as UTF-8 and returns its code points.
// Truncated sequences, overlong forms, encoded surrogates and values beyond
// U+10FFFF all yield a *DecodeError pointing at the offending byte.
func Decode(b []byte) (CodePoints, error) {
	seq := make(CodePoints, 0, utf8.RuneCount(b))
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size <= 1 {
			return nil, &DecodeError{Offset: i, Byte: b[i]}
		}
		seq = append(seq, r)
		i += size
	}
	return seq, nil
}

// DecodeString is Decode for string input.
func DecodeString(s string) (CodePoints, error) {
	return Decode([]byte(s))
}

// LengthInCodePoints returns the number of code points, not encoded bytes.
func LengthInCodePoints(seq CodePoints) int {
	return len(seq)
}

// Len returns the number of code points.
func (s CodePoints) Len() int {
	return len(s)
}

// At returns the code point at index.
func (s CodePoints) At(index int) (rune, error) {
	if index < 0 || index >= len(s) {
		return 0, &IndexOutOfRangeError{Index: index, Length: len(s)}
	}
	return s[index], nil
}

// Max returns the largest code point, or 0 for an empty sequence.
func (s CodePoints) Max() rune {
	var m rune
	for _, r := range s {
		if r > m {
			m = r
		}
	}
	return m
}

// Width returns the compact code unit width of the sequence.
func (s CodePoints) Width() Width {
	return CompactWidth(s)
}

// IsASCII reports whether every code point is at most U+007F.
func (s CodePoints) IsASCII() bool {
	return s.Max() < utf8.RuneSelf
}

// UTF8 re-encodes the sequence as UTF-8.
func (s CodePoints) UTF8() []byte {
	buf := make([]byte, 0, s.UTF8Len())
	for _, r := range s {
		buf = utf8.AppendRune(buf, r)
	}
	return buf
}

// UTF8Len returns the UTF-8 encoded length in bytes.
func (s CodePoints) UTF8Len() int {
	n := 0
	for _, r := range s {
		n += utf8.RuneLen(r)
	}
	return n
}

// String returns the text as a Go string.
func (s CodePoints) String() string {
	return string(s)
}
