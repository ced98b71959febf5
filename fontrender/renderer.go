// Package fontrender rasterizes Ultima Online bitmap fonts into a texture
// atlas and lays out, measures and draws text with them.
//
// A Renderer owns its glyph cache, atlas and hit-test masks. Glyphs are
// decoded on first use and kept for the renderer's lifetime. A Renderer is
// meant to be driven from the render loop and is not safe for concurrent
// use.
package fontrender

import (
	"image"
	"log"

	"golang.org/x/text/encoding/charmap"

	"uoglyph/fontmul"
)

// Sprite is a cached glyph: its atlas region and the picker key of its
// hit-test mask.
type Sprite struct {
	Region
	Char rune
	Key  uint32
}

// Width and Height return the sprite size in texels.
func (s Sprite) Width() int  { return s.Rect.Dx() }
func (s Sprite) Height() int { return s.Rect.Dy() }

// Pointer supplies the pointer position in screen pixels.
type Pointer interface {
	Position() (x, y int)
}

// Stats counts glyph cache activity.
type Stats struct {
	Decodes     int
	Hits        int
	Unavailable int
	Sprites     int
}

// Renderer rasterizes and caches glyphs from a font set.
type Renderer struct {
	fonts   *fontmul.Set
	atlas   *Atlas
	picker  *Picker
	sprites map[uint32]Sprite
	pointer Pointer
	logger  *log.Logger
	stats   Stats
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithAtlasSize sets the atlas page edge length.
func WithAtlasSize(size int) Option {
	return func(r *Renderer) { r.atlas = NewAtlas(size) }
}

// WithPointer enables hover detection against p.
func WithPointer(p Pointer) Option {
	return func(r *Renderer) { r.pointer = p }
}

// WithLogger sends debug output to l.
func WithLogger(l *log.Logger) Option {
	return func(r *Renderer) { r.logger = l }
}

// New returns a renderer over fonts.
func New(fonts *fontmul.Set, opts ...Option) *Renderer {
	r := &Renderer{
		fonts:   fonts,
		picker:  NewPicker(),
		sprites: make(map[uint32]Sprite),
	}
	for _, o := range opts {
		o(r)
	}
	if r.atlas == nil {
		r.atlas = NewAtlas(DefaultAtlasSize)
	}
	if r.fonts == nil {
		r.fonts = &fontmul.Set{}
	}
	return r
}

// Atlas returns the renderer's atlas.
func (r *Renderer) Atlas() *Atlas { return r.atlas }

// Picker returns the renderer's hit-test masks.
func (r *Renderer) Picker() *Picker { return r.picker }

// Stats returns cache counters.
func (r *Renderer) Stats() Stats {
	st := r.stats
	st.Sprites = len(r.sprites)
	return st
}

func (r *Renderer) debugf(format string, v ...any) {
	if r.logger != nil {
		r.logger.Printf(format, v...)
	}
}

// Glyph returns the cached sprite for c, rasterizing it on first use. ok is
// false when the font has nothing to draw for c.
func (r *Renderer) Glyph(c rune, s FontSettings) (Sprite, bool) {
	if c == ' ' {
		// Spaces only advance the pen.
		return Sprite{}, false
	}
	if s.IsUnicode {
		return r.unicodeGlyph(c, s)
	}
	return r.asciiGlyph(c, s)
}

func (r *Renderer) lookup(key uint32) (Sprite, bool) {
	sp, ok := r.sprites[key]
	if ok {
		r.stats.Hits++
	}
	return sp, ok
}

// store uploads a composed canvas and records it under key.
func (r *Renderer) store(key uint32, c rune, cv canvas) (Sprite, bool) {
	defer putPixels(cv.pix)
	region, ok := r.atlas.Add(cv.pix, cv.w, cv.h)
	if !ok {
		r.debugf("fontrender: no atlas space for %q (%dx%d)", c, cv.w, cv.h)
		r.stats.Unavailable++
		return Sprite{}, false
	}
	r.stats.Decodes++
	sp := Sprite{Region: region, Char: c, Key: key}
	r.sprites[key] = sp
	r.picker.Set(key, cv.w, cv.h, cv.pix)
	return sp, true
}

func (r *Renderer) asciiGlyph(c rune, s FontSettings) (Sprite, bool) {
	fonts := r.fonts.ASCII
	if int(s.FontIndex) >= fonts.Count() {
		r.stats.Unavailable++
		return Sprite{}, false
	}
	code, ok := charmap.ISO8859_1.EncodeRune(c)
	if !ok {
		code = '?'
		c = '?'
	}
	key := s.key(c)
	if sp, ok := r.lookup(key); ok {
		return sp, true
	}
	ch, ok := fonts.Char(int(s.FontIndex), fontmul.ASCIIIndex(code))
	if !ok {
		r.stats.Unavailable++
		return Sprite{}, false
	}
	return r.store(key, c, composeASCII(ch, s.FontIndex, code))
}

func (r *Renderer) unicodeGlyph(c rune, s FontSettings) (Sprite, bool) {
	if c == '\r' {
		return Sprite{}, false
	}
	key := s.key(c)
	if sp, ok := r.lookup(key); ok {
		return sp, true
	}
	font := r.fonts.UnicodeFont(int(s.FontIndex))
	if font == nil {
		r.stats.Unavailable++
		return Sprite{}, false
	}
	if c > 0xFFFF || font.Missing(uint16(c)) {
		if c == '?' {
			r.stats.Unavailable++
			return Sprite{}, false
		}
		// Share the '?' sprite so the substitution costs one bitmap.
		sp, ok := r.unicodeGlyph('?', s)
		if ok {
			r.sprites[key] = sp
		}
		return sp, ok
	}
	g, ok := font.Glyph(uint16(c))
	if !ok {
		r.stats.Unavailable++
		return Sprite{}, false
	}
	cv, ok := composeUnicode(g, s)
	if !ok {
		r.stats.Unavailable++
		return Sprite{}, false
	}
	return r.store(key, c, cv)
}

// SpaceWidth returns the pen advance of a space at scale 1. Unicode fonts
// use a fixed width; ASCII fonts use their own space glyph when it has one.
func (r *Renderer) SpaceWidth(s FontSettings) int {
	if !s.IsUnicode {
		if ch, ok := r.fonts.ASCII.Char(int(s.FontIndex), fontmul.ASCIIIndex(' ')); ok {
			return ch.Width
		}
	}
	return spaceWidth
}

// Mask returns a copy of the sprite's pixels as an RGBA image.
func (r *Renderer) Mask(sp Sprite) *image.RGBA {
	if sp.Page == nil {
		return nil
	}
	out := image.NewRGBA(image.Rect(0, 0, sp.Width(), sp.Height()))
	src := sp.Page.Image()
	for y := 0; y < sp.Height(); y++ {
		so := src.PixOffset(sp.Rect.Min.X, sp.Rect.Min.Y+y)
		copy(out.Pix[y*out.Stride:y*out.Stride+4*sp.Width()], src.Pix[so:so+4*sp.Width()])
	}
	return out
}
