package inspect

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInspect(t *testing.T) {
	report, err := Inspect([]byte(helloWorld), 13)
	require.NoError(t, err)

	assert.Equal(t, helloWorld, report.Text)
	assert.Equal(t, 15, report.CodePoints)
	assert.Equal(t, 17, report.UTF8Bytes)
	assert.Equal(t, 2, report.CompactWidth)
	assert.Equal(t, "ucs-2", report.CompactKind)
	assert.Equal(t, 30, report.CompactBytes)
	assert.Equal(t, 4, report.WideWidth)
	assert.Equal(t, 60, report.WideBytes)
	assert.False(t, report.ASCII)

	assert.Equal(t, 13, report.Index)
	assert.Equal(t, "U+4F60", report.CodePoint)
	assert.Equal(t, "你", report.Char)
	assert.Equal(t, 26, report.Compact.Offset)
	assert.Equal(t, "0x60 0x4f", report.Compact.Bytes.String())
	assert.Equal(t, 52, report.Wide.Offset)
	assert.Equal(t, "0x60 0x4f 0x00 0x00", report.Wide.Bytes.String())
}

func TestInspect_DefaultIndex(t *testing.T) {
	report, err := Inspect([]byte("A"), 0)
	require.NoError(t, err)

	assert.True(t, report.ASCII)
	assert.Equal(t, "latin-1", report.CompactKind)
	assert.Equal(t, "0x41", report.Compact.Bytes.String())
	assert.Equal(t, "0x41 0x00 0x00 0x00", report.Wide.Bytes.String())
}

func TestInspect_Errors(t *testing.T) {
	_, err := Inspect([]byte("ab\xe4\xbd"), 0)
	var decErr *DecodeError
	assert.True(t, errors.As(err, &decErr), "expected DecodeError, got %v", err)

	report, err := Inspect([]byte(helloWorld), 15)
	var idxErr *IndexOutOfRangeError
	assert.True(t, errors.As(err, &idxErr), "expected IndexOutOfRangeError, got %v", err)
	assert.Nil(t, report)

	_, err = Inspect(nil, 0)
	assert.True(t, errors.As(err, &idxErr), "expected IndexOutOfRangeError for empty text, got %v", err)
}
