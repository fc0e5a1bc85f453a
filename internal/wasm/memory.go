package wasm

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/tetratelabs/wazero/api"
)

const pageSize = 65536

// Memory provides bounds-checked access to a guest's linear memory and a
// simple allocator for host-written data.
//
// When the guest exports "malloc" and "free" they are used. Otherwise the
// host reserves fresh pages past the guest's initial memory and bump-allocates
// inside them, so host writes never overlap guest-owned data.
type Memory struct {
	mem   api.Memory
	alloc allocator
}

type allocator interface {
	alloc(ctx context.Context, size, align uint32) (uint32, error)
	free(ctx context.Context, ptr uint32) error
}

// NewMemory creates a memory helper for module.
func NewMemory(module api.Module) *Memory {
	mem := module.Memory()
	m := &Memory{mem: mem}

	malloc := module.ExportedFunction("malloc")
	free := module.ExportedFunction("free")
	if malloc != nil && free != nil {
		m.alloc = &guestAllocator{malloc: malloc, release: free}
	} else if mem != nil {
		m.alloc = newBumpAllocator(mem)
	}

	return m
}

// Size returns the current memory size in bytes.
func (m *Memory) Size() uint32 {
	if m.mem == nil {
		return 0
	}
	return m.mem.Size()
}

// ReadString reads a null-terminated string from guest memory.
func (m *Memory) ReadString(ptr uint32, maxLen uint32) (string, bool) {
	buf, ok := m.ReadBytes(ptr, maxLen)
	if !ok {
		return "", false
	}

	end := len(buf)
	for i, b := range buf {
		if b == 0 {
			end = i
			break
		}
	}

	return string(buf[:end]), true
}

// ReadBytes reads a copy of raw bytes from guest memory.
func (m *Memory) ReadBytes(ptr uint32, length uint32) ([]byte, bool) {
	if m.mem == nil {
		return nil, false
	}
	view, ok := m.mem.Read(ptr, length)
	if !ok {
		return nil, false
	}
	out := make([]byte, len(view))
	copy(out, view)
	return out, true
}

// Alloc reserves size bytes aligned to align (a power of two).
func (m *Memory) Alloc(ctx context.Context, size, align uint32) (uint32, error) {
	if m.alloc == nil {
		return 0, &AllocationError{Size: size, Align: align, Err: errors.New("module has no memory")}
	}
	if align == 0 || align&(align-1) != 0 {
		return 0, &AllocationError{Size: size, Align: align, Err: errors.New("alignment must be a power of two")}
	}
	return m.alloc.alloc(ctx, size, align)
}

// Free releases memory returned by Alloc.
func (m *Memory) Free(ctx context.Context, ptr uint32) error {
	if m.alloc == nil {
		return &MemoryAccessError{Operation: "free", Address: ptr, Err: errors.New("module has no memory")}
	}
	return m.alloc.free(ctx, ptr)
}

// WriteBytes allocates guest memory and copies data into it.
// Returns pointer and length.
func (m *Memory) WriteBytes(ctx context.Context, data []byte) (uint32, uint32, error) {
	ptr, err := m.Alloc(ctx, uint32(len(data)), 1)
	if err != nil {
		return 0, 0, err
	}
	if !m.mem.Write(ptr, data) {
		return 0, 0, &MemoryAccessError{Operation: "write", Address: ptr, Length: uint32(len(data))}
	}
	return ptr, uint32(len(data)), nil
}

// WriteString allocates guest memory and copies s into it (no terminator).
func (m *Memory) WriteString(ctx context.Context, s string) (uint32, uint32, error) {
	return m.WriteBytes(ctx, []byte(s))
}

// WriteUint32Le writes v in little-endian order at offset.
func (m *Memory) WriteUint32Le(offset, v uint32) error {
	if m.mem == nil || !m.mem.WriteUint32Le(offset, v) {
		return &MemoryAccessError{Operation: "write_u32", Address: offset, Length: 4}
	}
	return nil
}

// WriteUint64Le writes v in little-endian order at offset.
func (m *Memory) WriteUint64Le(offset uint32, v uint64) error {
	if m.mem == nil || !m.mem.WriteUint64Le(offset, v) {
		return &MemoryAccessError{Operation: "write_u64", Address: offset, Length: 8}
	}
	return nil
}

// WriteFloat64Le writes v in little-endian IEEE 754 form at offset.
func (m *Memory) WriteFloat64Le(offset uint32, v float64) error {
	if m.mem == nil || !m.mem.WriteFloat64Le(offset, v) {
		return &MemoryAccessError{Operation: "write_f64", Address: offset, Length: 8}
	}
	return nil
}

// ReadUint32Le reads a little-endian uint32 at offset.
func (m *Memory) ReadUint32Le(offset uint32) (uint32, error) {
	if m.mem == nil {
		return 0, &MemoryAccessError{Operation: "read_u32", Address: offset, Length: 4}
	}
	v, ok := m.mem.ReadUint32Le(offset)
	if !ok {
		return 0, &MemoryAccessError{Operation: "read_u32", Address: offset, Length: 4}
	}
	return v, nil
}

// ReadUint64Le reads a little-endian uint64 at offset.
func (m *Memory) ReadUint64Le(offset uint32) (uint64, error) {
	if m.mem == nil {
		return 0, &MemoryAccessError{Operation: "read_u64", Address: offset, Length: 8}
	}
	v, ok := m.mem.ReadUint64Le(offset)
	if !ok {
		return 0, &MemoryAccessError{Operation: "read_u64", Address: offset, Length: 8}
	}
	return v, nil
}

// ReadFloat64Le reads a little-endian float64 at offset.
func (m *Memory) ReadFloat64Le(offset uint32) (float64, error) {
	if m.mem == nil {
		return 0, &MemoryAccessError{Operation: "read_f64", Address: offset, Length: 8}
	}
	v, ok := m.mem.ReadFloat64Le(offset)
	if !ok {
		return 0, &MemoryAccessError{Operation: "read_f64", Address: offset, Length: 8}
	}
	return v, nil
}

// bumpAllocator hands out memory from pages grown past the guest's initial
// memory. Only the most recent allocation is reclaimed on free.
type bumpAllocator struct {
	mu   sync.Mutex
	mem  api.Memory
	base uint32
	top  uint32
	live map[uint32]uint32 // ptr -> end
}

func newBumpAllocator(mem api.Memory) *bumpAllocator {
	base := mem.Size()
	return &bumpAllocator{
		mem:  mem,
		base: base,
		top:  base,
		live: make(map[uint32]uint32),
	}
}

func (b *bumpAllocator) alloc(_ context.Context, size, align uint32) (uint32, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ptr := (b.top + align - 1) &^ (align - 1)
	end := uint64(ptr) + uint64(size)
	if end > 1<<32 || ptr < b.top {
		return 0, &AllocationError{Size: size, Align: align, Err: errors.New("address space exhausted")}
	}

	if cur := uint64(b.mem.Size()); end > cur {
		pages := uint32((end - cur + pageSize - 1) / pageSize)
		if _, ok := b.mem.Grow(pages); !ok {
			return 0, &AllocationError{
				Size:  size,
				Align: align,
				Err:   fmt.Errorf("cannot grow memory by %d pages", pages),
			}
		}
	}

	b.live[ptr] = uint32(end)
	b.top = uint32(end)
	return ptr, nil
}

func (b *bumpAllocator) free(_ context.Context, ptr uint32) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	end, ok := b.live[ptr]
	if !ok {
		return &MemoryAccessError{Operation: "free", Address: ptr, Err: errors.New("not an allocated pointer")}
	}
	delete(b.live, ptr)

	if end == b.top {
		b.top = b.base
		for _, e := range b.live {
			if e > b.top {
				b.top = e
			}
		}
	}
	return nil
}

// guestAllocator delegates to the guest's exported malloc and free.
type guestAllocator struct {
	malloc  api.Function
	release api.Function
}

func (g *guestAllocator) alloc(ctx context.Context, size, align uint32) (uint32, error) {
	res, err := g.malloc.Call(ctx, api.EncodeU32(size))
	if err != nil {
		return 0, &AllocationError{Size: size, Align: align, Err: err}
	}
	if len(res) != 1 {
		return 0, &AllocationError{Size: size, Align: align, Err: errors.New("malloc returned no pointer")}
	}
	ptr := api.DecodeU32(res[0])
	if ptr == 0 {
		return 0, &AllocationError{Size: size, Align: align, Err: errors.New("malloc returned null")}
	}
	if ptr&(align-1) != 0 {
		return 0, &AllocationError{Size: size, Align: align, Err: fmt.Errorf("malloc returned misaligned pointer %d", ptr)}
	}
	return ptr, nil
}

func (g *guestAllocator) free(ctx context.Context, ptr uint32) error {
	if _, err := g.release.Call(ctx, api.EncodeU32(ptr)); err != nil {
		return &MemoryAccessError{Operation: "free", Address: ptr, Err: err}
	}
	return nil
}
