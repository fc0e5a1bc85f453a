package record

import (
	"context"
	"errors"
	"sync"

	"github.com/woxQAQ/boundary-probe/internal/wasm"
	"go.uber.org/zap"
)

// ErrReleased is returned when a handle is used after Release.
var ErrReleased = errors.New("record already released")

// Allocator places records in guest memory.
type Allocator struct {
	mem    *wasm.Memory
	logger *zap.Logger
}

// NewAllocator creates an allocator backed by mem.
func NewAllocator(mem *wasm.Memory, logger *zap.Logger) *Allocator {
	return &Allocator{
		mem:    mem,
		logger: logger.With(zap.String("component", "record-allocator")),
	}
}

// Handle owns one allocated record until Release is called.
type Handle struct {
	alloc *Allocator
	addr  uint32

	mu       sync.Mutex
	released bool
}

// Create allocates space for r, writes its fields and returns the owning handle.
func (a *Allocator) Create(ctx context.Context, r Record) (*Handle, error) {
	addr, err := a.mem.Alloc(ctx, RecordLayout.Size, RecordLayout.Align)
	if err != nil {
		return nil, err
	}

	if err := a.write(addr, r); err != nil {
		_ = a.mem.Free(ctx, addr)
		return nil, err
	}

	a.logger.Debug("Record created",
		zap.Uint32("addr", addr),
		zap.Stringer("record", r),
	)

	return &Handle{alloc: a, addr: addr}, nil
}

func (a *Allocator) write(addr uint32, r Record) error {
	if err := a.mem.WriteUint32Le(addr+offsetOf("a"), uint32(r.A)); err != nil {
		return err
	}
	if err := a.mem.WriteFloat64Le(addr+offsetOf("b"), r.B); err != nil {
		return err
	}
	return a.mem.WriteUint64Le(addr+offsetOf("c"), uint64(r.C))
}

func (a *Allocator) read(addr uint32) (Record, error) {
	av, err := a.mem.ReadUint32Le(addr + offsetOf("a"))
	if err != nil {
		return Record{}, err
	}
	bv, err := a.mem.ReadFloat64Le(addr + offsetOf("b"))
	if err != nil {
		return Record{}, err
	}
	cv, err := a.mem.ReadUint64Le(addr + offsetOf("c"))
	if err != nil {
		return Record{}, err
	}
	return Record{A: int32(av), B: bv, C: int64(cv)}, nil
}

// Addr returns the record's address in guest memory.
func (h *Handle) Addr() uint32 {
	return h.addr
}

// Load reads the record back from guest memory.
func (h *Handle) Load() (Record, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.released {
		return Record{}, ErrReleased
	}
	return h.alloc.read(h.addr)
}

// Store overwrites the record in guest memory.
func (h *Handle) Store(r Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.released {
		return ErrReleased
	}
	return h.alloc.write(h.addr, r)
}

// Release frees the record. The handle cannot be used afterwards.
func (h *Handle) Release(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.released {
		return ErrReleased
	}
	if err := h.alloc.mem.Free(ctx, h.addr); err != nil {
		return err
	}
	h.released = true

	h.alloc.logger.Debug("Record released", zap.Uint32("addr", h.addr))
	return nil
}

func offsetOf(name string) uint32 {
	off, ok := RecordLayout.Offset(name)
	if !ok {
		panic("record: unknown field " + name)
	}
	return off
}
