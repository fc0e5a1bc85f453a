package wasm

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/tetratelabs/wazero/api"
	guestapi "github.com/woxQAQ/boundary-probe/api/wasm"
	"github.com/woxQAQ/boundary-probe/internal/inspect"
	"go.uber.org/zap"
)

// HostModuleName is the import module name guests use for host functions.
const HostModuleName = guestapi.ModuleName

// HostFunctionsImpl implements host functions for guest modules.
type HostFunctionsImpl struct {
	logger *zap.Logger

	mu  sync.Mutex
	out io.Writer
}

// NewHostFunctions creates a new host functions implementation.
// Greetings are written to out; a nil out discards them.
func NewHostFunctions(logger *zap.Logger, out io.Writer) *HostFunctionsImpl {
	if out == nil {
		out = io.Discard
	}
	return &HostFunctionsImpl{
		logger: logger.With(zap.String("component", "wasm-host")),
		out:    out,
	}
}

// readText reads and validates a UTF-8 argument from the caller's memory.
func (h *HostFunctionsImpl) readText(fn string, mod api.Module, ptr, length uint32) (inspect.CodePoints, []byte, bool) {
	mem := mod.Memory()
	if mem == nil {
		h.logger.Error("Caller has no memory", zap.String("function", fn))
		return nil, nil, false
	}

	buf, ok := mem.Read(ptr, length)
	if !ok {
		h.logger.Error("Failed to read argument from guest memory",
			zap.String("function", fn),
			zap.Uint32("ptr", ptr),
			zap.Uint32("length", length),
		)
		return nil, nil, false
	}

	seq, err := inspect.Decode(buf)
	if err != nil {
		h.logger.Warn("Argument is not valid text",
			zap.String("function", fn),
			zap.Error(err),
		)
		return nil, nil, false
	}

	return seq, buf, true
}

// greet is called by guests with a text argument.
// Signature: greet(ptr, length)
func (h *HostFunctionsImpl) greet(ctx context.Context, mod api.Module, ptr uint32, length uint32) {
	seq, buf, ok := h.readText(guestapi.GreetFunc, mod, ptr, length)
	if !ok {
		return
	}

	h.mu.Lock()
	_, err := fmt.Fprintf(h.out, "Hello %s\n", buf)
	h.mu.Unlock()
	if err != nil {
		h.logger.Error("Failed to write greeting", zap.Error(err))
		return
	}

	h.logger.Debug("Greeted",
		zap.String("caller", mod.Name()),
		zap.Int("code_points", seq.Len()),
		zap.Uint32("utf8_bytes", length),
	)
}

// compactWidth is called by guests to learn the compact code unit width of
// a text argument.
// Signature: compact_width(ptr, length) -> i32
// Returns 1, 2 or 4, or -1 when the argument cannot be read or decoded.
func (h *HostFunctionsImpl) compactWidth(ctx context.Context, mod api.Module, ptr uint32, length uint32) int32 {
	seq, _, ok := h.readText(guestapi.CompactWidthFunc, mod, ptr, length)
	if !ok {
		return guestapi.CompactWidthInvalid
	}
	return int32(inspect.CompactWidth(seq))
}
