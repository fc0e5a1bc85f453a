package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/woxQAQ/boundary-probe/internal/config"
	"github.com/woxQAQ/boundary-probe/internal/inspect"
	"github.com/woxQAQ/boundary-probe/internal/wasm"
	"go.uber.org/zap/zaptest"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	out := &bytes.Buffer{}
	app := newApp(out, &bytes.Buffer{}, zaptest.NewLogger(t))

	err := app.Run(append([]string{"probe"}, args...))
	return out.String(), err
}

func TestInspectText(t *testing.T) {
	out, err := run(t, "inspect", "Hello", "0")
	require.NoError(t, err)

	assert.Contains(t, out, "width 1")
	assert.Contains(t, out, "U+0048")
	assert.Contains(t, out, "0x48 0x00 0x00 0x00")
}

func TestInspectJSON(t *testing.T) {
	tests := []struct {
		text    string
		index   string
		width   int
		compact []string
		wide    []string
	}{
		{"Hello", "0", 1, []string{"0x48"}, []string{"0x48", "0x00", "0x00", "0x00"}},
		{"caf\u00e9", "3", 1, []string{"0xe9"}, []string{"0xe9", "0x00", "0x00", "0x00"}},
		{"a\u20acb", "1", 2, []string{"0xac", "0x20"}, []string{"0xac", "0x20", "0x00", "0x00"}},
		{"x\U0001F600", "1", 4, []string{"0x00", "0xf6", "0x01", "0x00"}, []string{"0x00", "0xf6", "0x01", "0x00"}},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			out, err := run(t, "inspect", "--output", "json", tt.text, tt.index)
			require.NoError(t, err)

			var got struct {
				CompactWidth int `json:"compact_width"`
				Compact      struct {
					Bytes []string `json:"bytes"`
				} `json:"compact"`
				Wide struct {
					Bytes []string `json:"bytes"`
				} `json:"wide"`
			}
			require.NoError(t, json.Unmarshal([]byte(out), &got))

			assert.Equal(t, tt.width, got.CompactWidth)
			assert.Equal(t, tt.compact, got.Compact.Bytes)
			assert.Equal(t, tt.wide, got.Wide.Bytes)
		})
	}
}

func TestInspectDefaultIndex(t *testing.T) {
	out, err := run(t, "inspect", "-o", "json", "Zed")
	require.NoError(t, err)

	var got struct {
		Index     int    `json:"index"`
		CodePoint string `json:"code_point"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 0, got.Index)
	assert.Equal(t, "U+005A", got.CodePoint)
}

func TestInspectErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		kind string
		code int
	}{
		{"decode", []string{"inspect", "bad\xff"}, "DecodeError", exitDecode},
		{"out of range", []string{"inspect", "abc", "3"}, "IndexOutOfRange", exitOutOfRange},
		{"negative index", []string{"inspect", "abc", "-1"}, "IndexOutOfRange", exitOutOfRange},
		{"empty text", []string{"inspect", ""}, "IndexOutOfRange", exitOutOfRange},
		{"bad index", []string{"inspect", "abc", "x"}, "Error", exitFailure},
		{"no args", []string{"inspect"}, "Error", exitFailure},
		{"bad output", []string{"inspect", "-o", "xml", "abc"}, "Error", exitFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.args...)
			require.Error(t, err)
			assert.Empty(t, out)
			assert.Equal(t, tt.kind, errorKind(err))
			assert.Equal(t, tt.code, exitCode(err))
		})
	}
}

func TestReportError(t *testing.T) {
	buf := &bytes.Buffer{}
	reportError(buf, &inspect.IndexOutOfRangeError{Index: 5, Length: 2})
	assert.Equal(t, "IndexOutOfRange: code point index 5 out of range (length 2)\n", buf.String())

	buf.Reset()
	reportError(buf, errors.New("boom"))
	assert.Equal(t, "Error: boom\n", buf.String())
}

func TestGreetDemo(t *testing.T) {
	out, err := run(t, "greet", "World")
	require.NoError(t, err)
	assert.Equal(t, "Hello World\n", out)
}

func TestGreetInvalidName(t *testing.T) {
	out, err := run(t, "greet", "\xc3")
	require.Error(t, err)
	assert.Equal(t, exitDecode, exitCode(err))
	assert.Empty(t, out)
}

func TestGreetWasmFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hello.wasm")
	require.NoError(t, os.WriteFile(path, wasm.DemoModule(), 0o644))

	out, err := run(t, "greet", "--wasm", path, "\u4e16\u754c")
	require.NoError(t, err)
	assert.Equal(t, "Hello \u4e16\u754c\n", out)
}

func TestGreetExtension(t *testing.T) {
	base := t.TempDir()
	dir := filepath.Join(base, "hello")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hello.wasm"), wasm.DemoModule(), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "manifest.yaml"),
		[]byte("name: hello\nversion: 1.0.0\nwasm:\n  file: hello.wasm\n"), 0o644))

	t.Setenv("PROBE_EXTENSION_PATHS", base)

	out, err := run(t, "greet", "-e", "hello", "Ext")
	require.NoError(t, err)
	assert.Equal(t, "Hello Ext\n", out)
}

func TestRecord(t *testing.T) {
	out, err := run(t, "record", "--dump")
	require.NoError(t, err)

	assert.Contains(t, out, "Record(a=1, b=2.000000, c=3) at 0x")
	assert.Contains(t, out, "(24 bytes)")
	assert.Contains(t, out, "A: (int32) 1")
	assert.Contains(t, out, "C: (int64) 3")
}

func TestGlobalFlags(t *testing.T) {
	_, err := run(t, "--log-level", "loud", "inspect", "a")
	require.Error(t, err)
	assert.Equal(t, exitFailure, exitCode(err))

	_, err = run(t, "--config", filepath.Join(t.TempDir(), "missing.yaml"), "inspect", "a")
	require.Error(t, err)
}

func TestConfigOutputFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "probe.yaml")
	require.NoError(t, os.WriteFile(path, []byte("inspect:\n  output: json\n"), 0o644))

	out, err := run(t, "--config", path, "inspect", "A")
	require.NoError(t, err)
	assert.True(t, json.Valid([]byte(out)), "expected JSON, got %q", out)
}

func TestRuntimeConfig(t *testing.T) {
	rc := runtimeConfig(config.WasmConfig{MemoryPages: 4, MaxInstances: 2, ExecutionTimeout: 5})

	assert.Equal(t, uint32(4), rc.MemoryPages)
	assert.Equal(t, 2, rc.MaxInstances)
	assert.Equal(t, 5*time.Second, rc.ExecutionTimeout)
}
