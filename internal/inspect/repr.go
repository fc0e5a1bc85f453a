package inspect

import (
	"fmt"
)

// Representation is an owned buffer holding a whole text in fixed-width
// little-endian code units.
type Representation struct {
	name  string
	width Width
	units int
	buf   []byte
}

// Compact encodes seq at CompactWidth(seq), the way a compacting runtime
// stores it: latin-1, ucs-2 or ucs-4.
func Compact(seq CodePoints) (*Representation, error) {
	return newRepresentation("compact", CompactWidth(seq), seq)
}

// Wide encodes seq at WideSize regardless of its content.
func Wide(seq CodePoints) (*Representation, error) {
	return newRepresentation("wide", WideSize, seq)
}

func newRepresentation(name string, w Width, seq CodePoints) (*Representation, error) {
	buf, err := encodeAs(w, seq.UTF8())
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s representation: %w", name, err)
	}
	return &Representation{
		name:  name,
		width: w,
		units: len(seq),
		buf:   buf,
	}, nil
}

// Name returns "compact" or "wide".
func (r *Representation) Name() string {
	return r.name
}

// Width returns the bytes per code unit.
func (r *Representation) Width() Width {
	return r.width
}

// Len returns the buffer length in bytes: code points times width.
func (r *Representation) Len() int {
	return len(r.buf)
}

// Units returns the number of code units.
func (r *Representation) Units() int {
	return r.units
}

// Unit returns the bytes of code unit index.
func (r *Representation) Unit(index int) (ByteView, error) {
	if index < 0 || index >= r.units {
		return ByteView{}, &IndexOutOfRangeError{Index: index, Length: r.units}
	}
	w := int(r.width)
	return ByteView{b: r.buf[index*w : (index+1)*w]}, nil
}

// Probe returns n bytes starting at byte offset.
func (r *Representation) Probe(offset, n int) (ByteView, error) {
	if offset < 0 || n < 0 || offset > len(r.buf) || n > len(r.buf)-offset {
		return ByteView{}, &ProbeError{
			Representation: r.name,
			Offset:         offset,
			Length:         n,
			Size:           len(r.buf),
		}
	}
	return ByteView{b: r.buf[offset : offset+n]}, nil
}

// Bytes returns a copy of the whole buffer.
func (r *Representation) Bytes() []byte {
	c := make([]byte, len(r.buf))
	copy(c, r.buf)
	return c
}
