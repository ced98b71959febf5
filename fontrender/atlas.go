package fontrender

import (
	"image"
)

// DefaultAtlasSize is the edge length of each atlas page.
const DefaultAtlasSize = 1024

const atlasPadding = 1

// Page is one atlas image. Backends that mirror pages on the GPU compare
// Version against the last upload.
type Page struct {
	index   int
	img     *image.RGBA
	packer  *shelfPacker
	version uint64
}

// Index is the page's position in its atlas.
func (p *Page) Index() int { return p.index }

// Image returns the CPU copy of the page.
func (p *Page) Image() *image.RGBA { return p.img }

// Version increases every time a sprite is written to the page.
func (p *Page) Version() uint64 { return p.version }

// Region is a sprite's placement inside a page.
type Region struct {
	Page *Page
	Rect image.Rectangle
}

// Atlas packs glyph bitmaps into fixed-size pages. Pages are only ever
// appended; a sprite keeps its region for the lifetime of the atlas.
type Atlas struct {
	size  int
	pages []*Page
}

// NewAtlas returns an atlas whose pages are size x size pixels.
func NewAtlas(size int) *Atlas {
	if size <= 0 {
		size = DefaultAtlasSize
	}
	return &Atlas{size: size}
}

// Pages returns the pages allocated so far.
func (a *Atlas) Pages() []*Page { return a.pages }

func (a *Atlas) newPage() *Page {
	p := &Page{
		index:  len(a.pages),
		img:    image.NewRGBA(image.Rect(0, 0, a.size, a.size)),
		packer: newShelfPacker(a.size, a.size, atlasPadding),
	}
	a.pages = append(a.pages, p)
	return p
}

// Add copies a w x h sprite of 0xAABBGGRR pixels into the atlas. It fails
// when the sprite is empty or larger than a page.
func (a *Atlas) Add(pix []uint32, w, h int) (Region, bool) {
	if w <= 0 || h <= 0 || w > a.size || h > a.size || len(pix) < w*h {
		return Region{}, false
	}
	var (
		page *Page
		x, y int
		ok   bool
	)
	if n := len(a.pages); n > 0 {
		page = a.pages[n-1]
		x, y, ok = page.packer.allocate(w, h)
	}
	if !ok {
		page = a.newPage()
		if x, y, ok = page.packer.allocate(w, h); !ok {
			return Region{}, false
		}
	}

	img := page.img
	for row := 0; row < h; row++ {
		o := img.PixOffset(x, y+row)
		for col := 0; col < w; col++ {
			v := pix[row*w+col]
			img.Pix[o+0] = uint8(v)
			img.Pix[o+1] = uint8(v >> 8)
			img.Pix[o+2] = uint8(v >> 16)
			img.Pix[o+3] = uint8(v >> 24)
			o += 4
		}
	}
	page.version++
	return Region{Page: page, Rect: image.Rect(x, y, x+w, y+h)}, true
}

// AtlasStats summarises atlas usage.
type AtlasStats struct {
	Pages       int
	Bytes       int
	Utilization float64
}

// Stats reports page count, backing memory and the fill ratio of the last
// page.
func (a *Atlas) Stats() AtlasStats {
	st := AtlasStats{Pages: len(a.pages)}
	for _, p := range a.pages {
		st.Bytes += len(p.img.Pix)
	}
	if n := len(a.pages); n > 0 {
		st.Utilization = a.pages[n-1].packer.utilization()
	}
	return st
}
