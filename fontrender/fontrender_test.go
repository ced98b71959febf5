package fontrender

import (
	"image"
	"testing"

	"github.com/google/go-cmp/cmp"

	"uoglyph/fontmul"
	"uoglyph/fontmul/fontmultest"
)

var (
	ascii0   = FontSettings{FontIndex: 0}
	unicode0 = FontSettings{FontIndex: 0, IsUnicode: true}
)

// testSet builds one ASCII font and one unicode font with a handful of
// glyphs. ASCII textures are one row taller than the glyph.
func testSet(t testing.TB) *fontmul.Set {
	t.Helper()
	asciiData := fontmultest.BuildASCII(fontmultest.ASCIIFont{
		' ': {Width: 4, Height: 1, Pixels: make([]uint16, 4)},
		'H': fontmultest.Solid(3, 5, 0x7FFF),
		'i': fontmultest.Solid(1, 5, 0x7FFF),
		'W': fontmultest.Solid(5, 7, 0x7FFF),
		'g': fontmultest.Solid(4, 8, 0x7FFF),
		'A': fontmultest.Solid(4, 5, 0x7C00),
		'B': fontmultest.Solid(3, 5, 0x03E0),
		'?': fontmultest.Solid(3, 6, 0x001F),
	})
	ascii, err := fontmul.ParseASCII(asciiData)
	if err != nil {
		t.Fatalf("ParseASCII: %v", err)
	}
	uniData := fontmultest.BuildUnicode(map[uint16]fontmultest.UnicodeGlyph{
		'a': fontmultest.Bitmap(0, 0, "##", "##"),
		'b': fontmultest.Bitmap(0, 1, "#", "#", "#"),
		'x': fontmultest.Bitmap(0, 0, "#"),
		'W': fontmultest.Bitmap(0, 0, fontmultest.Block(6, 8)...),
		'g': fontmultest.Bitmap(0, 2, fontmultest.Block(4, 7)...),
		'?': fontmultest.Bitmap(0, 0, "###", "#.#", "..#", ".#."),
	}, 'z')
	uni, err := fontmul.ParseUnicode(uniData)
	if err != nil {
		t.Fatalf("ParseUnicode: %v", err)
	}
	set := &fontmul.Set{ASCII: ascii}
	set.Unicode[0] = uni
	return set
}

func newTestRenderer(t testing.TB, opts ...Option) *Renderer {
	t.Helper()
	return New(testSet(t), opts...)
}

type fixedPointer struct{ x, y int }

func (p *fixedPointer) Position() (int, int) { return p.x, p.y }

// recorder captures everything a Draw call submits.
type recorder struct {
	quads []Quad
	lines []Line
}

func (r *recorder) DrawQuad(q Quad) { r.quads = append(r.quads, q) }
func (r *recorder) DrawLine(l Line) { r.lines = append(r.lines, l) }

func TestGlyphIsCachedOnce(t *testing.T) {
	for _, s := range []FontSettings{ascii0, unicode0, {IsUnicode: true, Bold: true, Border: true, Italic: true}} {
		r := newTestRenderer(t)
		c := 'H'
		if s.IsUnicode {
			c = 'a'
		}
		first, ok := r.Glyph(c, s)
		if !ok {
			t.Fatalf("%+v: glyph %q missing", s, c)
		}
		second, ok := r.Glyph(c, s)
		if !ok {
			t.Fatalf("%+v: second lookup failed", s)
		}
		if first != second || first.Page != second.Page {
			t.Fatalf("%+v: sprites differ: %+v vs %+v", s, first, second)
		}
		st := r.Stats()
		if st.Decodes != 1 || st.Hits != 1 || st.Sprites != 1 {
			t.Fatalf("%+v: unexpected stats %+v", s, st)
		}
		if !r.Picker().Has(first.Key) {
			t.Fatalf("%+v: no pick mask stored", s)
		}
	}
}

func TestUnderlineSharesCacheEntry(t *testing.T) {
	plain := unicode0
	under := unicode0
	under.Underline = true
	if plain.key('a') != under.key('a') {
		t.Fatalf("underline changed the key")
	}
	bold := plain
	bold.Bold = true
	if plain.key('a') == bold.key('a') {
		t.Fatalf("bold did not change the key")
	}

	r := newTestRenderer(t)
	a, _ := r.Glyph('a', plain)
	b, _ := r.Glyph('a', under)
	if a != b {
		t.Fatalf("underlined glyph not shared: %+v vs %+v", a, b)
	}
	if st := r.Stats(); st.Decodes != 1 {
		t.Fatalf("decoded %d times", st.Decodes)
	}
}

func TestMissingUnicodeFallsBackToQuestionMark(t *testing.T) {
	r := newTestRenderer(t)
	want, ok := r.Glyph('?', unicode0)
	if !ok {
		t.Fatalf("no '?' glyph")
	}
	// 'z' carries the 0xFFFFFFFF sentinel, 'q' a zero offset, and U+1F600
	// is outside the 16-bit table.
	for _, c := range []rune{'z', 'q', 0x1F600} {
		got, ok := r.Glyph(c, unicode0)
		if !ok {
			t.Fatalf("%q: no fallback glyph", c)
		}
		if got != want {
			t.Fatalf("%q: got %+v want the '?' sprite %+v", c, got, want)
		}
	}
	if st := r.Stats(); st.Decodes != 1 {
		t.Fatalf("fallback rasterized %d bitmaps", st.Decodes)
	}
	if diff := cmp.Diff(r.Mask(want).Pix, r.Mask(mustGlyph(t, r, 'z', unicode0)).Pix); diff != "" {
		t.Fatalf("bitmaps differ:\n%s", diff)
	}
}

func TestASCIIOutOfRangeUsesQuestionMark(t *testing.T) {
	r := newTestRenderer(t)
	q := mustGlyph(t, r, '?', ascii0)
	euro := mustGlyph(t, r, '€', ascii0)
	if q != euro {
		t.Fatalf("'€' not mapped to '?': %+v vs %+v", euro, q)
	}
}

func mustGlyph(t *testing.T, r *Renderer, c rune, s FontSettings) Sprite {
	t.Helper()
	sp, ok := r.Glyph(c, s)
	if !ok {
		t.Fatalf("glyph %q unavailable", c)
	}
	return sp
}

func TestSpaceNeverAllocates(t *testing.T) {
	r := newTestRenderer(t)
	for _, s := range []FontSettings{ascii0, unicode0} {
		if _, ok := r.Glyph(' ', s); ok {
			t.Fatalf("%+v: space produced a sprite", s)
		}
	}
	if n := len(r.Atlas().Pages()); n != 0 {
		t.Fatalf("space allocated %d atlas pages", n)
	}

	if got := r.Measure("  ", unicode0, 1.5).X; got != 2*8*1.5 {
		t.Fatalf("unicode space advance %v", got)
	}
	if got := r.Measure(" ", ascii0, 1.5).X; got != 4*1.5 {
		t.Fatalf("ascii space advance %v", got)
	}
	if len(r.Atlas().Pages()) != 0 {
		t.Fatalf("measuring spaces allocated atlas pages")
	}
}

func TestUnavailableGlyphs(t *testing.T) {
	r := newTestRenderer(t)
	cases := []struct {
		c rune
		s FontSettings
	}{
		{'H', FontSettings{FontIndex: 3}},
		{'a', FontSettings{FontIndex: 7, IsUnicode: true}},
		{'a', FontSettings{FontIndex: 200, IsUnicode: true}},
		{'Z', ascii0},
		{'\r', unicode0},
	}
	for _, c := range cases {
		if sp, ok := r.Glyph(c.c, c.s); ok {
			t.Errorf("%q %+v: got sprite %+v", c.c, c.s, sp)
		}
	}

	// Nothing to draw is not an error.
	rec := &recorder{}
	r.Draw(rec, "abc", Vec2{}, 1, FontSettings{FontIndex: 9, IsUnicode: true}, HueVector{}, AlignLeft)
	if len(rec.quads) != 0 {
		t.Fatalf("drew %d quads with a missing font", len(rec.quads))
	}
	empty := New(nil)
	if _, ok := empty.Glyph('a', ascii0); ok {
		t.Fatalf("renderer without fonts produced a glyph")
	}
}

func TestMeasureMatchesDraw(t *testing.T) {
	r := newTestRenderer(t)
	b := NewImageBatcher(nil)
	pos := Vec2{10, 20}
	r.Draw(b, "Hi", pos, 1, ascii0, HueVector{}, AlignLeft)

	h := mustGlyph(t, r, 'H', ascii0)
	i := mustGlyph(t, r, 'i', ascii0)
	size, _, _ := r.MeasureAdvanced("Hi", ascii0, 1, pos)
	if want := float32(h.Width() + i.Width()); size.X != want {
		t.Fatalf("measured width %v want %v", size.X, want)
	}

	got := b.Bounds()
	want := image.Rect(10, 20, 10+int(size.X), 20+int(r.Measure("Hi", ascii0, 1).Y))
	if got != want {
		t.Fatalf("drawn bounds %v want %v", got, want)
	}
	if q, l := b.Counts(); q != 2 || l != 0 {
		t.Fatalf("got %d quads %d lines", q, l)
	}
}

func TestNewlineAccounting(t *testing.T) {
	for _, s := range []FontSettings{ascii0, unicode0} {
		r := newTestRenderer(t)
		first, second := 'A', 'B'
		if s.IsUnicode {
			first, second = 'a', 'b'
		}
		text := string(first) + "\n" + string(second)
		for _, scale := range []float32{1, 2} {
			size, _, lineHeight := r.MeasureAdvanced(text, s, scale, Vec2{})
			if want := r.LineHeight(s, scale); lineHeight != want {
				t.Fatalf("%+v: line height %v want %v", s, lineHeight, want)
			}
			if size.Y != 2*lineHeight {
				t.Fatalf("%+v scale %v: height %v want %v", s, scale, size.Y, 2*lineHeight)
			}
			a := mustGlyph(t, r, first, s)
			b := mustGlyph(t, r, second, s)
			w := a.Width()
			if b.Width() > w {
				w = b.Width()
			}
			if size.X != float32(w)*scale {
				t.Fatalf("%+v scale %v: width %v want %v", s, scale, size.X, float32(w)*scale)
			}
		}
	}
}

func TestLineHeight(t *testing.T) {
	r := newTestRenderer(t)
	// 'g' is 8 rows plus the ASCII padding row.
	if got := r.LineHeight(ascii0, 1); got != 10 {
		t.Fatalf("ascii line height %v want 10", got)
	}
	// 'W' is 8 rows; 'g' is 7 rows lowered by 2.
	if got := r.LineHeight(unicode0, 2); got != 20 {
		t.Fatalf("unicode line height %v want 20", got)
	}
}

func TestMouseOver(t *testing.T) {
	p := &fixedPointer{}
	r := newTestRenderer(t, WithPointer(p))
	pos := Vec2{10, 20}

	p.x, p.y = 11, 22
	if _, over, _ := r.MeasureAdvanced("Hi", ascii0, 1, pos); !over {
		t.Fatalf("pointer on 'H' not detected")
	}
	// The padding row below each ASCII glyph is transparent.
	p.x, p.y = 11, 25
	if _, over, _ := r.MeasureAdvanced("Hi", ascii0, 1, pos); over {
		t.Fatalf("transparent pixel reported as hit")
	}
	p.x, p.y = 9, 22
	if _, over, _ := r.MeasureAdvanced("Hi", ascii0, 1, pos); over {
		t.Fatalf("pixel left of the text reported as hit")
	}
	// Second line, scaled.
	p.x, p.y = 10+2*2, 20+10*2+1
	if _, over, _ := r.MeasureAdvanced("i\nH", ascii0, 2, pos); !over {
		t.Fatalf("pointer on second line not detected")
	}

	rec := &recorder{}
	p.x, p.y = 11, 22
	r.Draw(rec, "Hi", pos, 1, ascii0, HueVector{X: 0x22}, AlignLeft)
	if len(rec.quads) != 2 {
		t.Fatalf("got %d quads", len(rec.quads))
	}
	if h := rec.quads[0].Hue; h.X != HoverHue || h.Y != ShaderPartialHued {
		t.Fatalf("hover hue not applied: %+v", h)
	}
}

func TestFixHue(t *testing.T) {
	cases := []struct {
		name string
		hue  float32
		s    FontSettings
		want float32
	}{
		{"NoHue", 0, unicode0, ShaderNone},
		{"Unicode", 5, unicode0, ShaderTextHueNoBlack},
		{"ASCII", 5, ascii0, ShaderPartialHued},
		{"Font5", 5, FontSettings{FontIndex: 5}, ShaderHued},
		{"Font8", 5, FontSettings{FontIndex: 8}, ShaderHued},
	}
	for _, c := range cases {
		if got := fixHue(HueVector{X: c.hue}, c.s).Y; got != c.want {
			t.Errorf("%s: mode %v want %v", c.name, got, c.want)
		}
	}
}

func TestDrawLayout(t *testing.T) {
	r := newTestRenderer(t)
	rec := &recorder{}
	r.Draw(rec, "H i\r\nH", Vec2{5, 5}, 2, ascii0, HueVector{}, AlignLeft)
	want := []Vec2{{5, 5}, {5 + 6 + 8, 5}, {5, 5 + 20}}
	if len(rec.quads) != len(want) {
		t.Fatalf("got %d quads want %d", len(rec.quads), len(want))
	}
	for i, q := range rec.quads {
		if q.Pos != want[i] {
			t.Errorf("quad %d at %v want %v", i, q.Pos, want[i])
		}
		if q.Scale != 2 || q.Hue.Y != ShaderNone {
			t.Errorf("quad %d: scale %v hue %+v", i, q.Scale, q.Hue)
		}
	}
}

func TestDrawCenter(t *testing.T) {
	r := newTestRenderer(t)
	rec := &recorder{}
	r.Draw(rec, "Hi\nH", Vec2{100, 0}, 1, ascii0, HueVector{}, AlignCenter)
	// Block width 4 is centred on the anchor: every line starts at 100-2.
	if rec.quads[0].Pos.X != 98 || rec.quads[2].Pos.X != 98 {
		t.Fatalf("centred quads at %v and %v", rec.quads[0].Pos, rec.quads[2].Pos)
	}

	rec = &recorder{}
	r.Draw(rec, "Hi", Vec2{100, 0}, 2, ascii0, HueVector{}, AlignCenter)
	last := rec.quads[len(rec.quads)-1]
	left, right := rec.quads[0].Pos.X, last.Pos.X+last.Size().X
	if left != 96 || right != 104 {
		t.Fatalf("block spans %v..%v, want 96..104 around the anchor", left, right)
	}
}

func TestDrawCharsCount(t *testing.T) {
	r := newTestRenderer(t)
	s := ascii0
	s.CharsCount = 2
	rec := &recorder{}
	r.Draw(rec, "HiHi", Vec2{}, 1, s, HueVector{}, AlignLeft)
	if len(rec.quads) != 2 {
		t.Fatalf("budget of 2 drew %d quads", len(rec.quads))
	}
	if w := r.Measure("HiHi", s, 1).X; w != 4 {
		t.Fatalf("budget of 2 measured %v", w)
	}
}

func TestDrawUnderline(t *testing.T) {
	r := newTestRenderer(t)
	s := ascii0
	s.Underline = true
	rec := &recorder{}
	r.Draw(rec, "Hi", Vec2{10, 20}, 1, s, HueVector{X: 3}, AlignLeft)
	if len(rec.lines) != 1 {
		t.Fatalf("got %d lines", len(rec.lines))
	}
	l := rec.lines[0]
	// Two lines of height 10 would be 20; one line is 10 tall.
	want := Line{Start: Vec2{10, 30}, End: Vec2{14, 30}, Stroke: 1, Hue: HueVector{X: 3, Y: ShaderPartialHued}}
	if diff := cmp.Diff(want, l); diff != "" {
		t.Fatalf("underline mismatch (-want +got):\n%s", diff)
	}

	s.Border = true
	rec = &recorder{}
	r.Draw(rec, "Hi", Vec2{10, 20}, 1, s, HueVector{X: 3}, AlignLeft)
	shadow := rec.quads[len(rec.quads)-1]
	if shadow.Page != nil || shadow.Pos != (Vec2{9, 29}) || shadow.Src != image.Rect(0, 0, 6, 3) {
		t.Fatalf("unexpected shadow quad %+v", shadow)
	}
	if shadow.Hue != (HueVector{Y: ShaderHued}) {
		t.Fatalf("shadow hue %+v", shadow.Hue)
	}
}
