// Package wasm is the guest side of the "hello" host module.
//
// Guests built with GOOS=wasip1 GOARCH=wasm call the host through Greet and
// CompactWidth. Text crosses the boundary as a (ptr, len) pair of UTF-8
// bytes in the guest's linear memory.
package wasm

// Import names shared by the host and its guests.
const (
	ModuleName       = "hello"
	GreetFunc        = "greet"
	CompactWidthFunc = "compact_width"

	// EntryFunc is the export the host calls with a (ptr, len) text argument.
	EntryFunc = "run"
)

// CompactWidthInvalid is returned by compact_width when the argument cannot
// be read or is not valid UTF-8.
const CompactWidthInvalid int32 = -1
