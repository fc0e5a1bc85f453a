package inspect

import (
	"github.com/woxQAQ/boundary-probe/pkg/protocol"
)

// ByteView is an immutable view of encoded bytes.
type ByteView struct {
	b []byte
}

// Len returns the number of bytes in the view.
func (v ByteView) Len() int {
	return len(v.b)
}

// ByteSlice returns a copy of the bytes.
func (v ByteView) ByteSlice() []byte {
	c := make([]byte, len(v.b))
	copy(c, v.b)
	return c
}

// Hex returns the bytes as a protocol.HexBytes copy.
func (v ByteView) Hex() protocol.HexBytes {
	return protocol.HexBytes(v.ByteSlice())
}

// String renders the bytes as hexadecimal octets.
func (v ByteView) String() string {
	return protocol.HexBytes(v.b).String()
}
