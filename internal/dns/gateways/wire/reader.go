package wire

import "encoding/binary"

// byteReader is a bounds-checked cursor over an immutable byte slice. Every
// read fails with a ParseError when fewer bytes remain than required; it
// never reads past the end of the slice.
type byteReader struct {
	data []byte
	off  int
}

func newByteReader(data []byte) *byteReader {
	return &byteReader{data: data}
}

// offset returns the current cursor position.
func (r *byteReader) offset() int {
	return r.off
}

// remaining returns the number of unread bytes.
func (r *byteReader) remaining() int {
	return len(r.data) - r.off
}

// readByte consumes a single byte.
func (r *byteReader) readByte() (byte, error) {
	if r.remaining() < 1 {
		return 0, parseErrorf(r.off, "need 1 byte, have 0")
	}
	b := r.data[r.off]
	r.off++
	return b, nil
}

// readUint16 consumes a big-endian 16 bit unsigned integer.
func (r *byteReader) readUint16() (uint16, error) {
	if r.remaining() < 2 {
		return 0, parseErrorf(r.off, "need 2 bytes, have %d", r.remaining())
	}
	v := binary.BigEndian.Uint16(r.data[r.off : r.off+2])
	r.off += 2
	return v, nil
}

// readUint32 consumes a big-endian 32 bit unsigned integer.
func (r *byteReader) readUint32() (uint32, error) {
	if r.remaining() < 4 {
		return 0, parseErrorf(r.off, "need 4 bytes, have %d", r.remaining())
	}
	v := binary.BigEndian.Uint32(r.data[r.off : r.off+4])
	r.off += 4
	return v, nil
}

// take consumes exactly n bytes, returning a subslice of the input.
func (r *byteReader) take(n int) ([]byte, error) {
	if n < 0 || r.remaining() < n {
		return nil, parseErrorf(r.off, "need %d bytes, have %d", n, r.remaining())
	}
	b := r.data[r.off : r.off+n]
	r.off += n
	return b, nil
}

// bitReader extracts big-endian bit fields of 1 to 14 bits from the
// underlying byte stream, consuming whole bytes from the byteReader as
// needed. It is used for the header flag word and for classifying name
// compression tags.
type bitReader struct {
	r     *byteReader
	acc   uint32
	nbits uint
}

func newBitReader(r *byteReader) *bitReader {
	return &bitReader{r: r}
}

// read consumes width bits and returns them right-aligned.
func (b *bitReader) read(width uint) (uint16, error) {
	for b.nbits < width {
		by, err := b.r.readByte()
		if err != nil {
			return 0, err
		}
		b.acc = b.acc<<8 | uint32(by)
		b.nbits += 8
	}
	shift := b.nbits - width
	v := uint16(b.acc >> shift)
	b.acc &= (1 << shift) - 1
	b.nbits = shift
	return v, nil
}
