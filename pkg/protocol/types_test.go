package protocol

import (
	"encoding/json"
	"testing"
)

func TestHexBytesString(t *testing.T) {
	h := HexBytes{0x60, 0x4f, 0x00, 0x00}
	if got, want := h.String(), "0x60 0x4f 0x00 0x00"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}

	if got := HexBytes(nil).String(); got != "" {
		t.Errorf("empty String() = %q, want empty", got)
	}
}

func TestHexBytesMarshalJSON(t *testing.T) {
	data, err := json.Marshal(HexBytes{0x41, 0x00})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if got, want := string(data), `["0x41","0x00"]`; got != want {
		t.Errorf("JSON = %s, want %s", got, want)
	}
}

func TestReportJSON(t *testing.T) {
	r := Report{
		Text:         "A",
		CodePoints:   1,
		UTF8Bytes:    1,
		CompactWidth: 1,
		CompactKind:  "latin-1",
		CompactBytes: 1,
		WideWidth:    4,
		WideBytes:    4,
		ASCII:        true,
		CodePoint:    "U+0041",
		Char:         "A",
		Compact:      Probe{Representation: "compact", Width: 1, Bytes: HexBytes{0x41}},
		Wide:         Probe{Representation: "wide", Width: 4, Bytes: HexBytes{0x41, 0, 0, 0}},
	}

	data, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if decoded["code_points"] != float64(1) {
		t.Errorf("code_points = %v, want 1", decoded["code_points"])
	}
	wide, ok := decoded["wide"].(map[string]any)
	if !ok {
		t.Fatalf("wide is %T, want object", decoded["wide"])
	}
	bytes, ok := wide["bytes"].([]any)
	if !ok || len(bytes) != 4 || bytes[0] != "0x41" {
		t.Errorf("wide bytes = %v, want [0x41 0x00 0x00 0x00]", wide["bytes"])
	}
}

func TestCodePointLabel(t *testing.T) {
	tests := []struct {
		r    rune
		want string
	}{
		{'A', "U+0041"},
		{0x4f60, "U+4F60"},
		{0x1f928, "U+1F928"},
	}
	for _, tt := range tests {
		if got := CodePointLabel(tt.r); got != tt.want {
			t.Errorf("CodePointLabel(%U) = %s, want %s", tt.r, got, tt.want)
		}
	}
}
