package main

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"uoglyph/fontrender"
)

var whitePixel *ebiten.Image

// pageImage mirrors one atlas page on the GPU.
type pageImage struct {
	img     *ebiten.Image
	version uint64
}

// ebitenBatcher draws renderer quads onto an ebiten image. Atlas pages are
// uploaded once and rewritten when the renderer adds sprites to them.
type ebitenBatcher struct {
	dst   *ebiten.Image
	pages map[*fontrender.Page]*pageImage
}

func newEbitenBatcher() *ebitenBatcher {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(color.White)
	}
	return &ebitenBatcher{pages: make(map[*fontrender.Page]*pageImage)}
}

func (b *ebitenBatcher) page(p *fontrender.Page) *ebiten.Image {
	pi := b.pages[p]
	if pi == nil {
		pi = &pageImage{img: ebiten.NewImageFromImage(p.Image()), version: p.Version()}
		b.pages[p] = pi
		logDebug("uploaded atlas page %d", p.Index())
		return pi.img
	}
	if pi.version != p.Version() {
		pi.img.WritePixels(p.Image().Pix)
		pi.version = p.Version()
	}
	return pi.img
}

func (b *ebitenBatcher) DrawQuad(q fontrender.Quad) {
	if b.dst == nil || q.Src.Empty() {
		return
	}
	op := &ebiten.DrawImageOptions{Filter: ebiten.FilterNearest}
	var src *ebiten.Image
	if q.Page == nil {
		src = whitePixel
		op.GeoM.Scale(float64(q.Src.Dx()), float64(q.Src.Dy()))
	} else {
		src = b.page(q.Page).SubImage(q.Src).(*ebiten.Image)
	}
	op.GeoM.Scale(float64(q.Scale), float64(q.Scale))
	op.GeoM.Translate(float64(q.Pos.X), float64(q.Pos.Y))
	hueScale(&op.ColorScale, q.Hue)
	b.dst.DrawImage(src, op)
}

func (b *ebitenBatcher) DrawLine(l fontrender.Line) {
	if b.dst == nil {
		return
	}
	c := fontrender.ApplyHue(color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}, l.Hue)
	vector.StrokeLine(b.dst, l.Start.X, l.Start.Y, l.End.X, l.End.Y, l.Stroke, c, false)
}

// hueScale approximates the text shaders with a colour scale. Black edges
// stay black under multiplication; partially hued fonts tint every pixel.
func hueScale(cs *ebiten.ColorScale, h fontrender.HueVector) {
	if h.Y != fontrender.ShaderNone {
		cs.ScaleWithColor(fontrender.HueColor(h))
	}
	if h.Z > 0 {
		a := 1 - h.Z
		if a < 0 {
			a = 0
		}
		cs.ScaleAlpha(a)
	}
}
