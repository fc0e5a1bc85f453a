package inspect

import (
	"fmt"
)

// DecodeError occurs when input bytes are not well-formed UTF-8.
type DecodeError struct {
	// Offset is the byte offset of the first invalid sequence.
	Offset int
	// Byte is the byte found at Offset.
	Byte byte
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid UTF-8 at byte offset %d (0x%02x)", e.Offset, e.Byte)
}

// IndexOutOfRangeError occurs when a code point index is outside the sequence.
type IndexOutOfRangeError struct {
	Index  int
	Length int
}

func (e *IndexOutOfRangeError) Error() string {
	return fmt.Sprintf("code point index %d out of range (length %d)", e.Index, e.Length)
}

// WidthError occurs when a code unit width cannot hold the requested code point.
type WidthError struct {
	Width     Width
	CodePoint rune
}

func (e *WidthError) Error() string {
	if !e.Width.Valid() {
		return fmt.Sprintf("unsupported code unit width %d (must be 1, 2 or 4)", int(e.Width))
	}
	return fmt.Sprintf("code point U+%04X does not fit in %d-byte code unit", e.CodePoint, int(e.Width))
}

// ProbeError occurs when a byte window falls outside a representation buffer.
type ProbeError struct {
	Representation string
	Offset         int
	Length         int
	Size           int
}

func (e *ProbeError) Error() string {
	return fmt.Sprintf("probe out of bounds (repr=%s, offset=%d, len=%d, size=%d)",
		e.Representation, e.Offset, e.Length, e.Size)
}
