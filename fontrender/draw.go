package fontrender

import "image"

// Quad is a textured rectangle. Src selects texels of Page; a nil Page
// fills a Src-sized rectangle with white before the hue is applied.
type Quad struct {
	Page  *Page
	Src   image.Rectangle
	Pos   Vec2
	Scale float32
	Hue   HueVector
}

// Size returns the on-screen size of the quad.
func (q Quad) Size() Vec2 {
	return Vec2{float32(q.Src.Dx()) * q.Scale, float32(q.Src.Dy()) * q.Scale}
}

// Line is a straight stroke between two screen positions.
type Line struct {
	Start, End Vec2
	Stroke     float32
	Hue        HueVector
}

// Batcher receives the primitives produced by Draw.
type Batcher interface {
	DrawQuad(q Quad)
	DrawLine(l Line)
}

const underlineStroke = 1

// Draw lays out text at pos and submits one quad per glyph to b. Text
// under the pointer is drawn with HoverHue. Underlined text gets a line
// below the measured block, over a black shadow when Border is set.
func (r *Renderer) Draw(b Batcher, text string, pos Vec2, scale float32, s FontSettings, hue HueVector, align Align) {
	if scale <= 0 {
		scale = 1
	}
	text = limit(text, s)

	start := pos
	if align == AlignCenter {
		size, _, _ := r.measure(text, s, scale, pos, false)
		start.X -= size.X / 2
	}
	size, over, lineHeight := r.MeasureAdvanced(text, s, scale, start)

	hue = fixHue(hue, s)
	if over {
		hue.X = HoverHue
		hue = fixHue(hue, s)
	}

	space := float32(r.SpaceWidth(s))
	pen := start
	for _, c := range text {
		switch c {
		case '\r':
			continue
		case '\n':
			pen.X = start.X
			pen.Y += lineHeight
			continue
		case ' ':
			pen.X += space * scale
			continue
		}
		sp, ok := r.Glyph(c, s)
		if !ok {
			continue
		}
		b.DrawQuad(Quad{Page: sp.Page, Src: sp.Rect, Pos: pen, Scale: scale, Hue: hue})
		pen.X += float32(sp.Width()) * scale
	}

	if s.Underline {
		r.drawUnderline(b, start, size, scale, s, hue)
	}
}

func (r *Renderer) drawUnderline(b Batcher, start, size Vec2, scale float32, s FontSettings, hue HueVector) {
	end := Vec2{start.X + size.X, start.Y + size.Y}
	start.Y += size.Y
	stroke := float32(underlineStroke) * scale

	if s.Border {
		shadow := Vec2{start.X - stroke, start.Y - stroke}
		w := int(((end.X + stroke) - shadow.X) / scale)
		h := int(((end.Y + 2*stroke) - shadow.Y) / scale)
		b.DrawQuad(Quad{
			Src:   image.Rect(0, 0, w, h),
			Pos:   shadow,
			Scale: scale,
			Hue:   HueVector{X: 0, Y: ShaderHued},
		})
	}
	b.DrawLine(Line{Start: start, End: end, Stroke: stroke, Hue: hue})
}
