// Package record allocates a fixed-layout three-field record in a guest's
// linear memory and reads it back.
package record

import (
	"fmt"
)

// Record is {int32, float64, int64} laid out as the equivalent C struct on
// a 64-bit target.
type Record struct {
	A int32
	B float64
	C int64
}

// Default returns the record the demonstration constructs.
func Default() Record {
	return Record{A: 1, B: 2.0, C: 3}
}

// String formats the record fields.
func (r Record) String() string {
	return fmt.Sprintf("Record(a=%d, b=%f, c=%d)", r.A, r.B, r.C)
}

// RecordLayout is the memory layout of Record: a at 0, b at 8, c at 16,
// 24 bytes, 8-byte aligned.
var RecordLayout = Calculate(
	Field{Name: "a", Size: 4, Align: 4},
	Field{Name: "b", Size: 8, Align: 8},
	Field{Name: "c", Size: 8, Align: 8},
)
