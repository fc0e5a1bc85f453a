package inspect

// CompactBytesAt returns the little-endian bytes of seq[index] stored in a
// single code unit of width w.
func CompactBytesAt(seq CodePoints, index int, w Width) (ByteView, error) {
	r, err := seq.At(index)
	if err != nil {
		return ByteView{}, err
	}
	if !w.Fits(r) {
		return ByteView{}, &WidthError{Width: w, CodePoint: r}
	}
	return encodeRune(w, r)
}

// WideBytesAt returns the WideSize little-endian bytes of seq[index].
// The length is the same for every code point of every sequence.
func WideBytesAt(seq CodePoints, index int) (ByteView, error) {
	r, err := seq.At(index)
	if err != nil {
		return ByteView{}, err
	}
	return encodeRune(WideSize, r)
}

func encodeRune(w Width, r rune) (ByteView, error) {
	b, err := encodeAs(w, []byte(string(r)))
	if err != nil {
		return ByteView{}, err
	}
	return ByteView{b: b}, nil
}
