package fontrender

import "math"

// Vec2 is a screen-space position or size.
type Vec2 struct {
	X, Y float32
}

// Align selects the horizontal placement of drawn text.
type Align int

const (
	// AlignLeft starts the text at the draw position.
	AlignLeft Align = iota
	// AlignCenter centres the text block on the draw position.
	AlignCenter
)

// limit truncates text to the settings' character budget.
func limit(text string, s FontSettings) string {
	if s.CharsCount <= 0 {
		return text
	}
	n := 0
	for i := range text {
		if n == s.CharsCount {
			return text[:i]
		}
		n++
	}
	return text
}

func maxf(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

// Measure returns the size of text where each line is as tall as its
// tallest glyph.
func (r *Renderer) Measure(text string, s FontSettings, scale float32) Vec2 {
	var size Vec2
	var returns int
	var maxWidth, maxHeight float32
	space := float32(r.SpaceWidth(s))

	for _, c := range limit(text, s) {
		switch c {
		case '\r':
			continue
		case '\n':
			returns++
			maxWidth = maxf(maxWidth, size.X)
			size.X = 0
			continue
		case ' ':
			size.X += space * scale
			continue
		}
		if sp, ok := r.Glyph(c, s); ok {
			maxHeight = maxf(maxHeight, float32(sp.Height())*scale)
			size.X += float32(sp.Width()) * scale
		}
	}
	size.X = maxf(size.X, maxWidth)
	size.Y = float32(returns+1) * maxHeight
	return size
}

// LineHeight is the advance of one line: the taller of 'W' and 'g' plus one
// pixel, scaled.
func (r *Renderer) LineHeight(s FontSettings, scale float32) float32 {
	var h int
	if sp, ok := r.Glyph('W', s); ok {
		h = sp.Height()
	}
	if sp, ok := r.Glyph('g', s); ok && sp.Height() > h {
		h = sp.Height()
	}
	return float32(h+1) * scale
}

// MeasureAdvanced measures text laid out at pos and reports whether the
// pointer is over one of its opaque pixels. lineHeight is the vertical
// advance between lines.
func (r *Renderer) MeasureAdvanced(text string, s FontSettings, scale float32, pos Vec2) (size Vec2, mouseOver bool, lineHeight float32) {
	return r.measure(text, s, scale, pos, r.pointer != nil)
}

func (r *Renderer) measure(text string, s FontSettings, scale float32, pos Vec2, hitTest bool) (Vec2, bool, float32) {
	var size Vec2
	var returns int
	var maxWidth float32
	var mx, my float64
	if scale <= 0 {
		scale = 1
	}
	if hitTest {
		x, y := r.pointer.Position()
		mx, my = float64(x), float64(y)
	}

	maxHeight := r.LineHeight(s, scale)
	space := float32(r.SpaceWidth(s))
	over := false

	for _, c := range limit(text, s) {
		switch c {
		case '\r':
			continue
		case '\n':
			returns++
			maxWidth = maxf(maxWidth, size.X)
			size.X = 0
			continue
		case ' ':
			size.X += space * scale
			continue
		}
		sp, ok := r.Glyph(c, s)
		if !ok {
			continue
		}
		maxHeight = maxf(maxHeight, float32(sp.Height())*scale)
		if hitTest && !over {
			lx := (mx - float64(pos.X+size.X)) / float64(scale)
			ly := (my - float64(pos.Y+maxHeight*float32(returns))) / float64(scale)
			over = r.picker.Get(sp.Key, int(math.Floor(lx)), int(math.Floor(ly)))
		}
		size.X += float32(sp.Width()) * scale
	}
	size.X = maxf(size.X, maxWidth)
	size.Y = float32(returns+1) * maxHeight
	return size, over, maxHeight
}
