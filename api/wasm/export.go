//go:build wasm

package wasm

import "unsafe"

// NOTE: uint32 is used for pointers and lengths because WebAssembly uses a 32-bit
// linear memory model.

//go:wasmimport hello greet
func greet(ptr, length uint32)

//go:wasmimport hello compact_width
func compactWidth(ptr, length uint32) int32

func stringToPtr(s string) (uint32, uint32) {
	if len(s) == 0 {
		return 0, 0
	}
	ptr := unsafe.Pointer(unsafe.StringData(s))
	return uint32(uintptr(ptr)), uint32(len(s))
}

// Greet asks the host to print "Hello <name>".
func Greet(name string) {
	greet(stringToPtr(name))
}

// CompactWidth returns the host's compact code unit width for text (1, 2 or
// 4), or CompactWidthInvalid.
func CompactWidth(text string) int32 {
	return compactWidth(stringToPtr(text))
}
