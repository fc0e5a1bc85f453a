package extension

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/woxQAQ/boundary-probe/internal/config"
	"github.com/woxQAQ/boundary-probe/internal/inspect"
	"github.com/woxQAQ/boundary-probe/internal/wasm"
	"go.uber.org/zap/zaptest"
)

func newTestManager(t *testing.T, paths ...string) (*Manager, *bytes.Buffer) {
	t.Helper()

	logger := zaptest.NewLogger(t)
	out := &bytes.Buffer{}
	cfg := &config.Config{ExtensionPaths: paths}

	return NewManager(cfg, newTestRuntime(t), wasm.NewHostFunctions(logger, out), logger), out
}

func TestManager_NewManager(t *testing.T) {
	manager, _ := newTestManager(t, "/tmp/extensions")

	if manager.IsLoaded() {
		t.Error("Manager should not be loaded initially")
	}
	if manager.Registry().Count() != 0 {
		t.Error("Registry should be empty initially")
	}
}

func TestManager_LoadAll_NoExtensions(t *testing.T) {
	manager, _ := newTestManager(t, t.TempDir())

	if err := manager.LoadAll(context.Background()); err != nil {
		t.Fatalf("LoadAll() should tolerate empty paths: %v", err)
	}
	if !manager.IsLoaded() {
		t.Error("Manager should be loaded")
	}
	if err := manager.LoadAll(context.Background()); err == nil {
		t.Error("second LoadAll() should fail")
	}
}

func TestManager_Get_NotFound(t *testing.T) {
	manager, _ := newTestManager(t)

	_, err := manager.Get("nonexistent")
	if err == nil {
		t.Fatal("Get() should fail for non-existent extension")
	}

	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Errorf("expected NotFoundError, got %T", err)
	}
}

func TestManager_Greet(t *testing.T) {
	ctx := context.Background()
	base := t.TempDir()
	writeExtension(t, base, "hello", helloManifest, "hello.wasm")

	manager, out := newTestManager(t, base)
	if err := manager.LoadAll(ctx); err != nil {
		t.Fatalf("LoadAll() failed: %v", err)
	}
	if len(manager.List()) != 1 {
		t.Fatalf("expected 1 extension, got %d", len(manager.List()))
	}

	for _, name := range []string{"World", "Zo\u00eb", "\u4e16\u754c", "\U0001F600"} {
		if err := manager.Greet(ctx, "hello", name); err != nil {
			t.Fatalf("Greet(%q) failed: %v", name, err)
		}
	}

	want := "Hello World\nHello Zo\u00eb\nHello \u4e16\u754c\nHello \U0001F600\n"
	if out.String() != want {
		t.Errorf("unexpected output:\n%q\nwant\n%q", out.String(), want)
	}
}

func TestManager_Greet_InvalidText(t *testing.T) {
	ctx := context.Background()
	base := t.TempDir()
	writeExtension(t, base, "hello", helloManifest, "hello.wasm")

	manager, out := newTestManager(t, base)
	if err := manager.LoadAll(ctx); err != nil {
		t.Fatal(err)
	}

	err := manager.Greet(ctx, "hello", "bad\xffname")

	var decodeErr *inspect.DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected DecodeError, got %v", err)
	}
	if decodeErr.Offset != 3 {
		t.Errorf("expected offset 3, got %d", decodeErr.Offset)
	}
	if out.Len() != 0 {
		t.Errorf("nothing should be written, got %q", out.String())
	}
}

func TestManager_Greet_MissingEntry(t *testing.T) {
	ctx := context.Background()
	base := t.TempDir()
	writeExtension(t, base, "odd", `name: odd
version: 1.0.0
entry: nowhere
wasm:
  file: odd.wasm
`, "odd.wasm")

	manager, _ := newTestManager(t, base)
	if err := manager.LoadAll(ctx); err != nil {
		t.Fatal(err)
	}

	err := manager.Greet(ctx, "odd", "World")

	var fnErr *wasm.FunctionNotFoundError
	if !errors.As(err, &fnErr) {
		t.Fatalf("expected FunctionNotFoundError, got %v", err)
	}
	if fnErr.FunctionName != "nowhere" {
		t.Errorf("expected function 'nowhere', got '%s'", fnErr.FunctionName)
	}
}

func TestManager_Greet_UnknownExtension(t *testing.T) {
	manager, _ := newTestManager(t)

	var notFound *NotFoundError
	if err := manager.Greet(context.Background(), "ghost", "World"); !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
}

func TestManager_Shutdown(t *testing.T) {
	ctx := context.Background()
	base := t.TempDir()
	writeExtension(t, base, "hello", helloManifest, "hello.wasm")

	manager, _ := newTestManager(t, base)
	if err := manager.LoadAll(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := manager.Instantiate(ctx, "hello"); err != nil {
		t.Fatal(err)
	}

	if err := manager.Shutdown(ctx); err != nil {
		t.Fatalf("Shutdown() failed: %v", err)
	}
	if _, err := manager.Instantiate(ctx, "hello"); err == nil {
		t.Error("Instantiate() should fail after shutdown")
	}
}
