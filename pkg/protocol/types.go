package protocol

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Shared output types for the boundary-probe tools.
// This package has no dependencies on internal packages.

// HexBytes is a raw byte dump printed as hexadecimal octets.
type HexBytes []byte

// String renders the bytes as "0x41 0x00 0x00 0x00".
func (h HexBytes) String() string {
	parts := make([]string, len(h))
	for i, b := range h {
		parts[i] = fmt.Sprintf("0x%02x", b)
	}
	return strings.Join(parts, " ")
}

// MarshalJSON encodes the bytes as an array of hex strings.
func (h HexBytes) MarshalJSON() ([]byte, error) {
	parts := make([]string, len(h))
	for i, b := range h {
		parts[i] = fmt.Sprintf("0x%02x", b)
	}
	return json.Marshal(parts)
}

// Probe is the byte layout of one code point under one representation.
type Probe struct {
	Representation string   `json:"representation"`
	Width          int      `json:"width"`
	Offset         int      `json:"offset"`
	Bytes          HexBytes `json:"bytes"`
}

// Report describes a text value and one of its code points.
type Report struct {
	Text         string `json:"text"`
	CodePoints   int    `json:"code_points"`
	UTF8Bytes    int    `json:"utf8_bytes"`
	CompactWidth int    `json:"compact_width"`
	CompactKind  string `json:"compact_kind"`
	CompactBytes int    `json:"compact_bytes"`
	WideWidth    int    `json:"wide_width"`
	WideBytes    int    `json:"wide_bytes"`
	ASCII        bool   `json:"ascii"`

	Index     int    `json:"index"`
	CodePoint string `json:"code_point"`
	Char      string `json:"char"`
	Compact   Probe  `json:"compact"`
	Wide      Probe  `json:"wide"`
}

// CodePointLabel formats r as U+XXXX.
func CodePointLabel(r rune) string {
	return fmt.Sprintf("U+%04X", r)
}
