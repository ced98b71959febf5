package fontrender

import "uoglyph/fontmul"

const (
	defaultHue    uint32 = 0xFFFFFFFF
	uoBlack       uint32 = 0xFF010101
	italicSlant          = 3.3
	spaceWidth           = 8
	opaqueMask    uint32 = 0xFF000000
	boldSentinel         = uoBlack
)

// canvas is a bounds-checked view over a row-major pixel buffer.
type canvas struct {
	pix  []uint32
	w, h int
}

func (c *canvas) at(x, y int) uint32 {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return 0
	}
	return c.pix[y*c.w+x]
}

func (c *canvas) set(x, y int, v uint32) {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return
	}
	c.pix[y*c.w+x] = v
}

// italicOffset is the shear for row y of a glyph dh rows tall.
func italicOffset(dh, y int) int {
	return int(float32(dh-y) / italicSlant)
}

// composeASCII renders an 8-bit font glyph. The texture is one row taller
// than the glyph to leave room for the per-font baseline shift.
func composeASCII(ch fontmul.ASCIIChar, font uint8, code byte) canvas {
	c := canvas{w: ch.Width, h: ch.Height + 1}
	c.pix = getPixels(c.w * c.h)
	offY := fontOffsetY(font, code)
	for y := 0; y < ch.Height; y++ {
		ty := y + offY
		if ty >= c.h {
			break
		}
		for x := 0; x < ch.Width; x++ {
			if p := ch.At(x, y); p != 0 {
				c.set(x, ty, fontmul.Color16To32(p)|opaqueMask)
			}
		}
	}
	return c
}

var (
	offsetCharTable   = [10]int{2, 0, 2, 2, 0, 0, 2, 2, 0, 0}
	offsetSymbolTable = [10]int{1, 0, 1, 1, -1, 0, 1, 1, 0, 0}
)

// fontOffsetY lowers lowercase letters and symbols relative to capitals in
// the ASCII fonts.
func fontOffsetY(font uint8, code byte) int {
	if code == 0xB8 {
		return 1
	}
	capital := (code >= 0x41 && code <= 0x5A) || (code >= 0xC0 && code <= 0xDF) || code == 0xA8
	if capital {
		return 0
	}
	if font >= 10 {
		return 2
	}
	if code >= 0x61 && code <= 0x7A {
		return offsetCharTable[font]
	}
	return offsetSymbolTable[font]
}

// unicodeLayout holds the placement of a unicode glyph inside its texture.
type unicodeLayout struct {
	offX, offY int
	dw, dh     int
}

// composeUnicode renders a 1-bit glyph with the requested effects. ok is
// false when the resulting texture would be empty.
func composeUnicode(g fontmul.UnicodeGlyph, s FontSettings) (canvas, bool) {
	l := unicodeLayout{offX: g.OffX + 1, offY: g.OffY, dw: g.Width, dh: g.Height}
	if l.dw <= 0 || l.dh <= 0 {
		return canvas{}, false
	}

	extraX, extraY := 0, 0
	if s.Border {
		extraX++
		extraY++
	}
	if s.Italic {
		extraX += 3
	}
	if s.Bold {
		extraX++
		extraY++
	}

	c := canvas{w: l.dw + l.offX + extraX, h: l.dh + l.offY + extraY}
	if c.w <= 0 || c.h <= 0 {
		return canvas{}, false
	}
	c.pix = getPixels(c.w * c.h)

	shift := 0
	if s.Bold {
		shift = 1
	}
	for y := 0; y < l.dh; y++ {
		ty := l.offY + y
		if ty < 0 {
			ty = 0
		}
		if ty >= c.h {
			break
		}
		tx := l.offX + shift
		if s.Italic {
			tx += italicOffset(l.dh, y)
		}
		for x := 0; x < l.dw; x++ {
			if tx+x >= c.w {
				break
			}
			if g.Bit(x, y) {
				c.set(tx+x, ty, defaultHue)
			}
		}
	}

	if s.Bold {
		embolden(&c)
	}
	if s.Border {
		outline(&c)
	}
	return c, true
}

// embolden widens every stroke by one pixel to the left. Transparent
// pixels whose right neighbour is lit are first marked with a sentinel so
// the widening does not run on across the row, then promoted to white.
func embolden(c *canvas) {
	for y := 0; y < c.h; y++ {
		for x := 0; x < c.w; x++ {
			if c.at(x, y) != 0 {
				continue
			}
			if n := c.at(x+1, y); n != 0 && n != boldSentinel {
				c.set(x, y, boldSentinel)
			}
		}
	}
	for i, v := range c.pix {
		if v == boldSentinel {
			c.pix[i] = defaultHue
		}
	}
}

// outline paints UO black on every transparent pixel that touches a lit
// pixel in its 8-neighbourhood. Lit pixels are never changed.
func outline(c *canvas) {
	lit := func(x, y int) bool {
		v := c.at(x, y)
		return v != 0 && v != uoBlack
	}
	for y := 0; y < c.h; y++ {
		for x := 0; x < c.w; x++ {
			if c.at(x, y) != 0 {
				continue
			}
		scan:
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if (dx != 0 || dy != 0) && lit(x+dx, y+dy) {
						c.set(x, y, uoBlack)
						break scan
					}
				}
			}
		}
	}
}
