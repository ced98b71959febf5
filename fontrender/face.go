package fontrender

import (
	"image"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

// Face exposes one font and style of a Renderer as a font.Face so UO fonts
// can be drawn with font.Drawer. Glyph masks come straight from the atlas,
// so border and ASCII colours are reduced to coverage.
type Face struct {
	r       *Renderer
	s       FontSettings
	ascent  int
	descent int
}

var _ font.Face = (*Face)(nil)

// NewFace returns a face for settings s. The baseline sits at the bottom
// of the 'W' glyph.
func NewFace(r *Renderer, s FontSettings) *Face {
	f := &Face{r: r, s: s}
	if sp, ok := r.Glyph('W', s); ok {
		f.ascent = sp.Height()
	}
	f.descent = int(r.LineHeight(s, 1)) - f.ascent
	if f.descent < 0 {
		f.descent = 0
	}
	return f
}

func (f *Face) Close() error { return nil }

func (f *Face) Glyph(dot fixed.Point26_6, r rune) (dr image.Rectangle, mask image.Image, maskp image.Point, advance fixed.Int26_6, ok bool) {
	if r == ' ' {
		return image.Rectangle{}, nil, image.Point{}, fixed.I(f.r.SpaceWidth(f.s)), true
	}
	sp, ok := f.r.Glyph(r, f.s)
	if !ok {
		return image.Rectangle{}, nil, image.Point{}, 0, false
	}
	x := dot.X.Floor()
	y := dot.Y.Floor() - f.ascent
	dr = image.Rect(x, y, x+sp.Width(), y+sp.Height())
	return dr, sp.Page.Image(), sp.Rect.Min, fixed.I(sp.Width()), true
}

func (f *Face) GlyphBounds(r rune) (bounds fixed.Rectangle26_6, advance fixed.Int26_6, ok bool) {
	if r == ' ' {
		return fixed.Rectangle26_6{}, fixed.I(f.r.SpaceWidth(f.s)), true
	}
	sp, ok := f.r.Glyph(r, f.s)
	if !ok {
		return fixed.Rectangle26_6{}, 0, false
	}
	bounds = fixed.Rectangle26_6{
		Min: fixed.P(0, -f.ascent),
		Max: fixed.P(sp.Width(), sp.Height()-f.ascent),
	}
	return bounds, fixed.I(sp.Width()), true
}

func (f *Face) GlyphAdvance(r rune) (advance fixed.Int26_6, ok bool) {
	if r == ' ' {
		return fixed.I(f.r.SpaceWidth(f.s)), true
	}
	sp, ok := f.r.Glyph(r, f.s)
	if !ok {
		return 0, false
	}
	return fixed.I(sp.Width()), true
}

// Kern is always zero; UO fonts have no kerning.
func (f *Face) Kern(r0, r1 rune) fixed.Int26_6 { return 0 }

func (f *Face) Metrics() font.Metrics {
	return font.Metrics{
		Height:     fixed.I(f.ascent + f.descent),
		Ascent:     fixed.I(f.ascent),
		Descent:    fixed.I(f.descent),
		CapHeight:  fixed.I(f.ascent),
		CaretSlope: image.Point{X: 0, Y: 1},
	}
}
