package fontmul

import (
	"encoding/binary"
	"io"
)

// reader walks a byte slice with an explicit cursor. Every read is checked
// against the slice length and reports io.ErrUnexpectedEOF instead of
// running past the end.
type reader struct {
	data []byte
	pos  int
}

func newReader(data []byte) *reader {
	return &reader{data: data}
}

func (r *reader) Remaining() int { return len(r.data) - r.pos }

func (r *reader) seek(pos int) error {
	if pos < 0 || pos > len(r.data) {
		return io.ErrUnexpectedEOF
	}
	r.pos = pos
	return nil
}

func (r *reader) skip(n int) error {
	return r.seek(r.pos + n)
}

func (r *reader) u8() (uint8, error) {
	if r.Remaining() < 1 {
		return 0, io.ErrUnexpectedEOF
	}
	v := r.data[r.pos]
	r.pos++
	return v, nil
}

func (r *reader) i8() (int8, error) {
	v, err := r.u8()
	return int8(v), err
}

func (r *reader) u16() (uint16, error) {
	if r.Remaining() < 2 {
		return 0, io.ErrUnexpectedEOF
	}
	v := binary.LittleEndian.Uint16(r.data[r.pos:])
	r.pos += 2
	return v, nil
}

func (r *reader) u32() (uint32, error) {
	if r.Remaining() < 4 {
		return 0, io.ErrUnexpectedEOF
	}
	v := binary.LittleEndian.Uint32(r.data[r.pos:])
	r.pos += 4
	return v, nil
}

// bytes returns the next n bytes without copying.
func (r *reader) bytes(n int) ([]byte, error) {
	if n < 0 || r.Remaining() < n {
		return nil, io.ErrUnexpectedEOF
	}
	b := r.data[r.pos : r.pos+n : r.pos+n]
	r.pos += n
	return b, nil
}
