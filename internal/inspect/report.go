package inspect

import (
	"github.com/woxQAQ/boundary-probe/pkg/protocol"
)

// Inspect decodes text and reports its lengths, widths and the byte layout of
// the code point at index. It either returns a complete report or an error.
func Inspect(text []byte, index int) (*protocol.Report, error) {
	seq, err := Decode(text)
	if err != nil {
		return nil, err
	}

	w := CompactWidth(seq)

	compact, err := CompactBytesAt(seq, index, w)
	if err != nil {
		return nil, err
	}

	wide, err := WideBytesAt(seq, index)
	if err != nil {
		return nil, err
	}

	r := seq[index]

	return &protocol.Report{
		Text:         seq.String(),
		CodePoints:   seq.Len(),
		UTF8Bytes:    len(text),
		CompactWidth: int(w),
		CompactKind:  w.String(),
		CompactBytes: seq.Len() * int(w),
		WideWidth:    int(WideSize),
		WideBytes:    seq.Len() * int(WideSize),
		ASCII:        seq.IsASCII(),
		Index:        index,
		CodePoint:    protocol.CodePointLabel(r),
		Char:         string(r),
		Compact: protocol.Probe{
			Representation: "compact",
			Width:          int(w),
			Offset:         index * int(w),
			Bytes:          compact.Hex(),
		},
		Wide: protocol.Probe{
			Representation: "wide",
			Width:          int(WideSize),
			Offset:         index * int(WideSize),
			Bytes:          wide.Hex(),
		},
	}, nil
}
