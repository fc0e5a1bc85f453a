package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "probe.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.LogLevel != "info" {
		t.Errorf("Default log level mismatch: got %s, want info", cfg.LogLevel)
	}

	if cfg.Inspect.Output != "text" {
		t.Errorf("Default output mismatch: got %s, want text", cfg.Inspect.Output)
	}

	if cfg.Wasm.MemoryPages != 256 {
		t.Errorf("Default memory pages mismatch: got %d, want 256", cfg.Wasm.MemoryPages)
	}

	if cfg.Wasm.ExecutionTimeout != 30 {
		t.Errorf("Default execution timeout mismatch: got %d, want 30", cfg.Wasm.ExecutionTimeout)
	}

	if len(cfg.ExtensionPaths) != 1 || cfg.ExtensionPaths[0] != "./extensions" {
		t.Errorf("Default extension paths mismatch: got %v, want [./extensions]", cfg.ExtensionPaths)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
log_level: debug
extension_paths:
  - /opt/probe/extensions
inspect:
  output: json
wasm:
  memory_pages: 32
  max_instances: 4
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("Log level mismatch: got %s, want debug", cfg.LogLevel)
	}

	if cfg.Inspect.Output != "json" {
		t.Errorf("Output mismatch: got %s, want json", cfg.Inspect.Output)
	}

	if cfg.Wasm.MemoryPages != 32 {
		t.Errorf("Memory pages mismatch: got %d, want 32", cfg.Wasm.MemoryPages)
	}

	if cfg.Wasm.MaxInstances != 4 {
		t.Errorf("Max instances mismatch: got %d, want 4", cfg.Wasm.MaxInstances)
	}

	if len(cfg.ExtensionPaths) != 1 || cfg.ExtensionPaths[0] != "/opt/probe/extensions" {
		t.Errorf("Extension paths mismatch: got %v", cfg.ExtensionPaths)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("PROBE_LOG_LEVEL", "warn")
	t.Setenv("PROBE_INSPECT_OUTPUT", "json")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.LogLevel != "warn" {
		t.Errorf("Log level mismatch: got %s, want warn", cfg.LogLevel)
	}

	if cfg.Inspect.Output != "json" {
		t.Errorf("Output mismatch: got %s, want json", cfg.Inspect.Output)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := map[string]string{
		"output":    "inspect:\n  output: xml\n",
		"log level": "log_level: loud\n",
		"timeout":   "wasm:\n  execution_timeout: -1\n",
		"yaml":      "log_level: [unterminated\n",
	}

	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, content)); err == nil {
				t.Error("Load() should fail")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() should fail for a missing file")
	}
}
