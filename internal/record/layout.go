package record

// Field describes one member of a C-layout struct.
type Field struct {
	Name   string
	Size   uint32
	Align  uint32
	Offset uint32
}

// Layout is the computed memory layout of a struct.
type Layout struct {
	Fields []Field
	Size   uint32
	Align  uint32
}

// Calculate assigns natural-alignment offsets to fields in declaration order
// and pads the total size to the struct alignment.
func Calculate(fields ...Field) Layout {
	if len(fields) == 0 {
		return Layout{Size: 0, Align: 1}
	}

	out := make([]Field, len(fields))
	maxAlign := uint32(1)
	offset := uint32(0)

	for i, f := range fields {
		offset = alignTo(offset, f.Align)
		f.Offset = offset
		out[i] = f
		offset += f.Size
		if f.Align > maxAlign {
			maxAlign = f.Align
		}
	}

	return Layout{
		Fields: out,
		Size:   alignTo(offset, maxAlign),
		Align:  maxAlign,
	}
}

// Offset returns the offset of the named field.
func (l Layout) Offset(name string) (uint32, bool) {
	for _, f := range l.Fields {
		if f.Name == name {
			return f.Offset, true
		}
	}
	return 0, false
}

func alignTo(offset, align uint32) uint32 {
	if align <= 1 {
		return offset
	}
	return (offset + align - 1) &^ (align - 1)
}
