package wasm

// demoModule is a hand-assembled guest that exercises the "hello" host module.
//
//	(module
//	  (import "hello" "greet" (func (param i32 i32)))
//	  (import "hello" "compact_width" (func (param i32 i32) (result i32)))
//	  (memory (export "memory") 1)
//	  (func (export "run") (param i32 i32)
//	    local.get 0 local.get 1 call 0)
//	  (func (export "width") (param i32 i32) (result i32)
//	    local.get 0 local.get 1 call 1))
var demoModule = []byte{
	0x00, 0x61, 0x73, 0x6d, // magic
	0x01, 0x00, 0x00, 0x00, // version

	// type section: (i32 i32) -> (), (i32 i32) -> i32
	0x01, 0x0c, 0x02,
	0x60, 0x02, 0x7f, 0x7f, 0x00,
	0x60, 0x02, 0x7f, 0x7f, 0x01, 0x7f,

	// import section
	0x02, 0x25, 0x02,
	0x05, 'h', 'e', 'l', 'l', 'o', 0x05, 'g', 'r', 'e', 'e', 't', 0x00, 0x00,
	0x05, 'h', 'e', 'l', 'l', 'o',
	0x0d, 'c', 'o', 'm', 'p', 'a', 'c', 't', '_', 'w', 'i', 'd', 't', 'h', 0x00, 0x01,

	// function section
	0x03, 0x03, 0x02, 0x00, 0x01,

	// memory section: 1 page, no maximum
	0x05, 0x03, 0x01, 0x00, 0x01,

	// export section
	0x07, 0x18, 0x03,
	0x06, 'm', 'e', 'm', 'o', 'r', 'y', 0x02, 0x00,
	0x03, 'r', 'u', 'n', 0x00, 0x02,
	0x05, 'w', 'i', 'd', 't', 'h', 0x00, 0x03,

	// code section
	0x0a, 0x13, 0x02,
	0x08, 0x00, 0x20, 0x00, 0x20, 0x01, 0x10, 0x00, 0x0b,
	0x08, 0x00, 0x20, 0x00, 0x20, 0x01, 0x10, 0x01, 0x0b,
}

// DemoModuleName is the cache name of the built-in demo guest.
const DemoModuleName = "hello-demo"

// DemoModule returns a copy of the built-in demo guest binary.
// It exports "memory", "run(ptr, len)" forwarding to hello.greet and
// "width(ptr, len) -> i32" forwarding to hello.compact_width.
func DemoModule() []byte {
	b := make([]byte, len(demoModule))
	copy(b, demoModule)
	return b
}
