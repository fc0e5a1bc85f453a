package extension

import (
	"time"

	"github.com/woxQAQ/boundary-probe/internal/wasm"
)

// Extension is a loaded guest extension with its manifest and compiled module.
type Extension struct {
	Manifest *Manifest
	Compiled *wasm.CompiledModule
	LoadedAt time.Time
}

// Name returns the extension name.
func (e *Extension) Name() string {
	return e.Manifest.Name
}

// Version returns the extension version.
func (e *Extension) Version() string {
	return e.Manifest.Version
}

// Entry returns the exported function that receives text.
func (e *Extension) Entry() string {
	return e.Manifest.Entry
}
