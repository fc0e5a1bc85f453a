package inspect

import (
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/encoding/unicode/utf32"
)

// Width is the number of bytes per code unit of a fixed-width representation.
type Width int

const (
	Width1 Width = 1 // latin-1
	Width2 Width = 2 // ucs-2
	Width4 Width = 4 // ucs-4
)

// WideSize is the width of the native wide representation. It never
// compacts: every code point takes 4 bytes regardless of content.
const WideSize = Width4

// Valid reports whether w is one of 1, 2 or 4.
func (w Width) Valid() bool {
	return w == Width1 || w == Width2 || w == Width4
}

// Fits reports whether r can be stored in a single code unit of width w.
func (w Width) Fits(r rune) bool {
	switch w {
	case Width1:
		return r <= 0xFF
	case Width2:
		return r <= 0xFFFF
	case Width4:
		return true
	default:
		return false
	}
}

// String returns the conventional name of the fixed-width encoding.
func (w Width) String() string {
	switch w {
	case Width1:
		return "latin-1"
	case Width2:
		return "ucs-2"
	case Width4:
		return "ucs-4"
	default:
		return "invalid"
	}
}

// WidthFor returns the narrowest width that holds r.
func WidthFor(r rune) Width {
	switch {
	case r <= 0xFF:
		return Width1
	case r <= 0xFFFF:
		return Width2
	default:
		return Width4
	}
}

// CompactWidth returns the minimum width covering every code point in seq.
// An empty sequence has width 1.
func CompactWidth(seq CodePoints) Width {
	w := Width1
	for _, r := range seq {
		if rw := WidthFor(r); rw > w {
			w = rw
			if w == Width4 {
				break
			}
		}
	}
	return w
}

// encodingFor returns the little-endian encoding whose code units are w bytes.
// UTF-16LE equals UCS-2 here because Width2 is only used for code points up to
// U+FFFF, and decoded sequences never contain surrogates.
func encodingFor(w Width) encoding.Encoding {
	switch w {
	case Width1:
		return charmap.ISO8859_1
	case Width2:
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
	default:
		return utf32.UTF32(utf32.LittleEndian, utf32.IgnoreBOM)
	}
}

// encodeAs encodes the UTF-8 text b into width-w code units.
func encodeAs(w Width, b []byte) ([]byte, error) {
	return encodingFor(w).NewEncoder().Bytes(b)
}
