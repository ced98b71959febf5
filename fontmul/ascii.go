package fontmul

import (
	"errors"
	"fmt"
	"log"
	"os"
)

const (
	// ASCIICharsCount is the number of glyph records per ASCII font
	// (codepoints 32..255).
	ASCIICharsCount = 224

	asciiFirstPrintable = 32
	asciiHeaderSize     = 3
)

// ASCIIChar is one glyph of the 8-bit font family. Pixels is row-major,
// Width*Height RGB555 values where 0 is transparent.
type ASCIIChar struct {
	Width  int
	Height int
	Pixels []uint16
}

// At returns the packed colour at x, y or 0 when out of range.
func (c ASCIIChar) At(x, y int) uint16 {
	if x < 0 || y < 0 || x >= c.Width || y >= c.Height {
		return 0
	}
	i := y*c.Width + x
	if i >= len(c.Pixels) {
		return 0
	}
	return c.Pixels[i]
}

// ASCIIFonts holds every font decoded from fonts.mul.
type ASCIIFonts struct {
	fonts [][ASCIICharsCount]ASCIIChar
}

// ASCIIIndex maps a byte to its slot in the 224-entry table. Non-printable
// bytes share slot 0.
func ASCIIIndex(b byte) int {
	if b < asciiFirstPrintable {
		return 0
	}
	return int(b) - asciiFirstPrintable
}

// LoadASCII reads and parses a fonts.mul file.
func LoadASCII(path string) (*ASCIIFonts, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := ParseASCII(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// ParseASCII decodes an in-memory fonts.mul image. A font is only counted
// when all of its records fit in the data; a trailing partial font is
// ignored and logged.
func ParseASCII(data []byte) (*ASCIIFonts, error) {
	if len(data) == 0 {
		return nil, errors.New("empty ascii font file")
	}
	count := countASCIIFonts(data)
	if count == 0 {
		return nil, errors.New("no complete ascii font")
	}
	fonts := &ASCIIFonts{fonts: make([][ASCIICharsCount]ASCIIChar, count)}

	r := newReader(data)
	defer func() {
		if r.Remaining() > 0 {
			log.Printf("fontmul: ignoring %d trailing bytes after %d fonts", r.Remaining(), count)
		}
	}()
	for k := 0; k < count; k++ {
		if _, err := r.u8(); err != nil {
			return nil, fmt.Errorf("font %d header: %w", k, err)
		}
		for i := 0; i < ASCIICharsCount; i++ {
			w, _ := r.u8()
			h, _ := r.u8()
			if err := r.skip(1); err != nil {
				return nil, fmt.Errorf("font %d char %d: %w", k, i, err)
			}
			raw, err := r.bytes(int(w) * int(h) * 2)
			if err != nil {
				return nil, fmt.Errorf("font %d char %d: %w", k, i, err)
			}
			px := make([]uint16, int(w)*int(h))
			pr := newReader(raw)
			for p := range px {
				px[p], _ = pr.u16()
			}
			fonts.fonts[k][i] = ASCIIChar{Width: int(w), Height: int(h), Pixels: px}
		}
	}
	return fonts, nil
}

// countASCIIFonts performs the scanning pass over the record headers and
// returns how many complete fonts the data holds.
func countASCIIFonts(data []byte) int {
	r := newReader(data)
	count := 0
	for r.Remaining() > 0 {
		if err := r.skip(1); err != nil {
			break
		}
		for i := 0; i < ASCIICharsCount; i++ {
			if r.Remaining() < asciiHeaderSize {
				return count
			}
			w, _ := r.u8()
			h, _ := r.u8()
			_ = r.skip(1)
			if err := r.skip(int(w) * int(h) * 2); err != nil {
				return count
			}
		}
		count++
	}
	return count
}

// Count returns the number of decoded fonts.
func (f *ASCIIFonts) Count() int {
	if f == nil {
		return 0
	}
	return len(f.fonts)
}

// Char returns the glyph at the given table index. ok is false for an
// unknown font, an index outside the table or an empty glyph.
func (f *ASCIIFonts) Char(font, index int) (ASCIIChar, bool) {
	if f == nil || font < 0 || font >= len(f.fonts) || index < 0 || index >= ASCIICharsCount {
		return ASCIIChar{}, false
	}
	c := f.fonts[font][index]
	if c.Width <= 0 || c.Height <= 0 {
		return ASCIIChar{}, false
	}
	return c, true
}
