package fontrender

import (
	"image"
	"image/color"
	"math"

	xdraw "golang.org/x/image/draw"
)

// ImageBatcher is a software Batcher that composites onto an RGBA image.
// Quads are scaled with nearest-neighbour sampling so glyph pixels stay
// crisp. Dst may be nil to only collect Bounds.
type ImageBatcher struct {
	Dst    *image.RGBA
	bounds image.Rectangle
	quads  int
	lines  int
}

func NewImageBatcher(dst *image.RGBA) *ImageBatcher {
	return &ImageBatcher{Dst: dst}
}

// Bounds is the union of every destination rectangle drawn so far.
func (b *ImageBatcher) Bounds() image.Rectangle { return b.bounds }

// Counts returns the number of quads and lines received.
func (b *ImageBatcher) Counts() (quads, lines int) { return b.quads, b.lines }

func (b *ImageBatcher) grow(r image.Rectangle) {
	if r.Empty() {
		return
	}
	if b.bounds.Empty() {
		b.bounds = r
		return
	}
	b.bounds = b.bounds.Union(r)
}

func floorInt(v float32) int { return int(math.Floor(float64(v))) }

// DrawQuad implements Batcher.
func (b *ImageBatcher) DrawQuad(q Quad) {
	b.quads++
	size := q.Size()
	x0, y0 := floorInt(q.Pos.X), floorInt(q.Pos.Y)
	dr := image.Rect(x0, y0, x0+floorInt(size.X), y0+floorInt(size.Y))
	b.grow(dr)
	if b.Dst == nil || dr.Empty() {
		return
	}

	tmp := image.NewRGBA(image.Rect(0, 0, dr.Dx(), dr.Dy()))
	if q.Page == nil {
		xdraw.Draw(tmp, tmp.Bounds(), image.White, image.Point{}, xdraw.Src)
	} else {
		xdraw.NearestNeighbor.Scale(tmp, tmp.Bounds(), q.Page.Image(), q.Src, xdraw.Src, nil)
	}
	b.composite(tmp, dr, q.Hue)
}

// DrawLine implements Batcher. The stroke is stamped as a square along the
// line.
func (b *ImageBatcher) DrawLine(l Line) {
	b.lines++
	stroke := floorInt(l.Stroke)
	if stroke < 1 {
		stroke = 1
	}
	dx, dy := l.End.X-l.Start.X, l.End.Y-l.Start.Y
	steps := int(math.Ceil(math.Max(math.Abs(float64(dx)), math.Abs(float64(dy)))))
	if steps == 0 {
		return
	}
	c := ApplyHue(color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}, l.Hue)
	for i := 0; i < steps; i++ {
		t := float32(i) / float32(steps)
		x := floorInt(l.Start.X + dx*t)
		y := floorInt(l.Start.Y + dy*t)
		r := image.Rect(x, y, x+stroke, y+stroke)
		b.grow(r)
		if b.Dst != nil {
			xdraw.Draw(b.Dst, r, image.NewUniform(premultiply(c)), image.Point{}, xdraw.Over)
		}
	}
}

// composite applies the hue to src and blends it over Dst at dr.
func (b *ImageBatcher) composite(src *image.RGBA, dr image.Rectangle, hue HueVector) {
	for i := 0; i < len(src.Pix); i += 4 {
		if src.Pix[i+3] == 0 {
			continue
		}
		px := ApplyHue(color.RGBA{src.Pix[i], src.Pix[i+1], src.Pix[i+2], src.Pix[i+3]}, hue)
		px = premultiply(px)
		src.Pix[i], src.Pix[i+1], src.Pix[i+2], src.Pix[i+3] = px.R, px.G, px.B, px.A
	}
	xdraw.Draw(b.Dst, dr, src, image.Point{}, xdraw.Over)
}

func premultiply(c color.RGBA) color.RGBA {
	if c.A == 0xFF {
		return c
	}
	a := uint16(c.A)
	return color.RGBA{
		R: uint8(uint16(c.R) * a / 0xFF),
		G: uint8(uint16(c.G) * a / 0xFF),
		B: uint8(uint16(c.B) * a / 0xFF),
		A: c.A,
	}
}
