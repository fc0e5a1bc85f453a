package extension

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/woxQAQ/boundary-probe/internal/wasm"
)

// writeExtension creates base/dirName with the given manifest and, when
// wasmFile is non-empty, the demo guest binary under that name.
func writeExtension(t *testing.T, base, dirName, manifest, wasmFile string) string {
	t.Helper()

	dir := filepath.Join(base, dirName)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "manifest.yaml"), []byte(manifest), 0o644); err != nil {
		t.Fatal(err)
	}
	if wasmFile != "" {
		if err := os.WriteFile(filepath.Join(dir, wasmFile), wasm.DemoModule(), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

const helloManifest = `name: hello
version: 1.0.0
description: Greets through the host module
wasm:
  file: hello.wasm
`

func writeRaw(t *testing.T, path string, data []byte) {
	t.Helper()

	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
}
