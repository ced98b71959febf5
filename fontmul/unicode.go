package fontmul

import (
	"errors"
	"fmt"
	"os"
)

const (
	// UnicodeFontCount is the number of unifont files a client may ship.
	UnicodeFontCount = 20

	unicodeTableEntries = 0x10000
	unicodeTableSize    = unicodeTableEntries * 4
	unicodeGlyphHeader  = 4
	missingOffset       = 0xFFFFFFFF
)

var errTruncatedTable = errors.New("unicode jump table truncated")

// UnicodeGlyph is a 1-bit glyph record. Rows holds Height scanlines of
// Stride bytes each, most significant bit first.
type UnicodeGlyph struct {
	OffX   int
	OffY   int
	Width  int
	Height int
	Stride int
	Rows   []byte
}

// Bit reports whether the pixel at x, y is set.
func (g UnicodeGlyph) Bit(x, y int) bool {
	if x < 0 || y < 0 || x >= g.Width || y >= g.Height {
		return false
	}
	i := y*g.Stride + x>>3
	if i >= len(g.Rows) {
		return false
	}
	return g.Rows[i]&(1<<(7-uint(x&7))) != 0
}

// UnicodeFont is one unifont{N}.mul file: a 64K jump table followed by
// glyph records.
type UnicodeFont struct {
	data []byte
}

// LoadUnicode reads and parses a unifont file.
func LoadUnicode(path string) (*UnicodeFont, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := ParseUnicode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// ParseUnicode wraps an in-memory unifont image. Only the jump table is
// validated up front; glyph records are checked on access.
func ParseUnicode(data []byte) (*UnicodeFont, error) {
	if len(data) < unicodeTableSize {
		return nil, errTruncatedTable
	}
	return &UnicodeFont{data: data}, nil
}

func (f *UnicodeFont) offset(c uint16) uint32 {
	r := newReader(f.data)
	if err := r.seek(int(c) * 4); err != nil {
		return 0
	}
	v, err := r.u32()
	if err != nil {
		return 0
	}
	return v
}

// Missing reports whether the jump table has no record for c.
func (f *UnicodeFont) Missing(c uint16) bool {
	if f == nil {
		return true
	}
	off := f.offset(c)
	return off == 0 || off == missingOffset
}

// Glyph decodes the record for c. ok is false when the entry is missing,
// points outside the file or has a non-positive size.
func (f *UnicodeFont) Glyph(c uint16) (UnicodeGlyph, bool) {
	if f.Missing(c) {
		return UnicodeGlyph{}, false
	}
	off := f.offset(c)
	if uint64(off) >= uint64(len(f.data)) {
		return UnicodeGlyph{}, false
	}
	r := newReader(f.data)
	if err := r.seek(int(off)); err != nil {
		return UnicodeGlyph{}, false
	}
	if r.Remaining() < unicodeGlyphHeader {
		return UnicodeGlyph{}, false
	}
	offX, _ := r.i8()
	offY, _ := r.i8()
	w, _ := r.u8()
	h, _ := r.u8()
	g := UnicodeGlyph{
		OffX:   int(offX),
		OffY:   int(offY),
		Width:  int(w),
		Height: int(h),
	}
	if g.Width <= 0 || g.Height <= 0 {
		return g, false
	}
	g.Stride = ((g.Width - 1) >> 3) + 1
	rows, err := r.bytes(g.Stride * g.Height)
	if err != nil {
		return UnicodeGlyph{}, false
	}
	g.Rows = rows
	return g, true
}
