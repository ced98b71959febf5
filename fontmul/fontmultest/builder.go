// Package fontmultest builds small fonts.mul and unifont images in memory
// for tests.
package fontmultest

import (
	"encoding/binary"
	"strings"
)

const (
	asciiChars   = 224
	unicodeTable = 0x10000
)

// ASCIIChar describes one record of an ASCII font.
type ASCIIChar struct {
	Width, Height int
	Pixels        []uint16
}

// Solid returns a w x h glyph filled with colour c.
func Solid(w, h int, c uint16) ASCIIChar {
	px := make([]uint16, w*h)
	for i := range px {
		px[i] = c
	}
	return ASCIIChar{Width: w, Height: h, Pixels: px}
}

// ASCIIFont maps a byte (32..255) to its glyph. Bytes without an entry are
// written as empty records.
type ASCIIFont map[byte]ASCIIChar

// BuildASCII encodes fonts in the fonts.mul layout.
func BuildASCII(fonts ...ASCIIFont) []byte {
	var out []byte
	for _, f := range fonts {
		out = append(out, 0)
		for i := 0; i < asciiChars; i++ {
			c := f[byte(i+32)]
			out = append(out, byte(c.Width), byte(c.Height), 0)
			for _, p := range c.Pixels {
				out = binary.LittleEndian.AppendUint16(out, p)
			}
		}
	}
	return out
}

// UnicodeGlyph describes one unifont record. Art is a list of rows where
// '#' marks a set pixel; Width and Height are taken from it.
type UnicodeGlyph struct {
	OffX, OffY int8
	Art        []string
}

// Bitmap returns a glyph from art rows.
func Bitmap(offX, offY int8, art ...string) UnicodeGlyph {
	return UnicodeGlyph{OffX: offX, OffY: offY, Art: art}
}

func (g UnicodeGlyph) size() (int, int) {
	w := 0
	for _, row := range g.Art {
		if len(row) > w {
			w = len(row)
		}
	}
	return w, len(g.Art)
}

// BuildUnicode encodes glyphs in the unifont layout. Codepoints listed in
// missing are written with the 0xFFFFFFFF sentinel instead of 0.
func BuildUnicode(glyphs map[uint16]UnicodeGlyph, missing ...uint16) []byte {
	out := make([]byte, unicodeTable*4)
	for _, c := range missing {
		binary.LittleEndian.PutUint32(out[int(c)*4:], 0xFFFFFFFF)
	}
	for c := 0; c < unicodeTable; c++ {
		g, ok := glyphs[uint16(c)]
		if !ok {
			continue
		}
		binary.LittleEndian.PutUint32(out[c*4:], uint32(len(out)))
		w, h := g.size()
		out = append(out, byte(g.OffX), byte(g.OffY), byte(w), byte(h))
		stride := 1
		if w > 0 {
			stride = ((w - 1) >> 3) + 1
		}
		for _, row := range g.Art {
			line := make([]byte, stride)
			for x := 0; x < len(row); x++ {
				if row[x] == '#' {
					line[x>>3] |= 1 << (7 - uint(x&7))
				}
			}
			out = append(out, line...)
		}
	}
	return out
}

// Block returns art for a w x h filled rectangle.
func Block(w, h int) []string {
	rows := make([]string, h)
	for i := range rows {
		rows[i] = strings.Repeat("#", w)
	}
	return rows
}
