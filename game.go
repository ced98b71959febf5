package main

import (
	"fmt"
	"image/color"
	"log"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	dark "github.com/thiagokokada/dark-mode-go"
	"golang.org/x/time/rate"

	"uoglyph/fontrender"
)

const initialWindowW, initialWindowH = 960, 540

const margin = 20

// cursor reports the mouse position to the renderer for hover hues.
type cursor struct{}

func (cursor) Position() (int, int) { return ebiten.CursorPosition() }

type Game struct {
	r       *fontrender.Renderer
	b       *ebitenBatcher
	dark    bool
	w, h    int
	statLog *rate.Limiter
}

func newGame(r *fontrender.Renderer) *Game {
	g := &Game{
		r:       r,
		b:       newEbitenBatcher(),
		statLog: rate.NewLimiter(rate.Every(5*time.Second), 1),
	}
	darkMode, err := dark.IsDarkMode()
	if err != nil {
		logDebug("dark mode: %v", err)
	}
	g.dark = err != nil || darkMode
	return g
}

func (g *Game) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		return ebiten.Termination
	case inpututil.IsKeyJustPressed(ebiten.KeyB):
		gs.Bold = !gs.Bold
	case inpututil.IsKeyJustPressed(ebiten.KeyI):
		gs.Italic = !gs.Italic
	case inpututil.IsKeyJustPressed(ebiten.KeyU):
		gs.Underline = !gs.Underline
	case inpututil.IsKeyJustPressed(ebiten.KeyO):
		gs.Border = !gs.Border
	case inpututil.IsKeyJustPressed(ebiten.KeyN):
		gs.Unicode = !gs.Unicode
		gs.Font = 0
	case inpututil.IsKeyJustPressed(ebiten.KeyUp):
		gs.Font = (gs.Font + 1) & 0xFF
	case inpututil.IsKeyJustPressed(ebiten.KeyDown):
		gs.Font = (gs.Font - 1) & 0xFF
	case inpututil.IsKeyJustPressed(ebiten.KeyEqual):
		gs.Scale++
	case inpututil.IsKeyJustPressed(ebiten.KeyMinus):
		if gs.Scale > 1 {
			gs.Scale--
		}
	}

	if debugLogger != nil && g.statLog.Allow() {
		st := g.r.Stats()
		as := g.r.Atlas().Stats()
		logDebug("glyphs: %d decoded, %d hits, %d unavailable; atlas %d pages (%s) %.0f%% full",
			st.Decodes, st.Hits, st.Unavailable, as.Pages,
			humanize.Bytes(uint64(as.Bytes)), as.Utilization*100)
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.dark {
		screen.Fill(color.RGBA{0x20, 0x20, 0x24, 0xFF})
	} else {
		screen.Fill(color.RGBA{0xF0, 0xF0, 0xF0, 0xFF})
	}
	g.b.dst = screen

	fs := gs.fontSettings()
	scale := float32(gs.Scale)
	width := float32(g.w - 2*margin)
	if gs.Wrap > 0 {
		width = float32(gs.Wrap)
	}
	lines := g.r.Wrap(gs.Text, fs, scale, width)
	y := float32(margin)
	for _, line := range lines {
		pos := fontrender.Vec2{X: float32(g.w) / 2, Y: y}
		g.r.Draw(g.b, line, pos, scale, fs, gs.hue(), fontrender.AlignCenter)
		y += g.r.LineHeight(fs, scale)
	}

	g.drawStatus()
}

// drawStatus prints the active style along the bottom edge in ASCII font 1.
func (g *Game) drawStatus() {
	family := "ascii"
	if gs.Unicode {
		family = "unicode"
	}
	flags := ""
	for _, f := range []struct {
		on  bool
		tag string
	}{{gs.Bold, " bold"}, {gs.Italic, " italic"}, {gs.Underline, " underline"}, {gs.Border, " border"}} {
		if f.on {
			flags += f.tag
		}
	}
	msg := fmt.Sprintf("%s font %d x%g%s  [B I U O N Up Down + -]", family, gs.Font, gs.Scale, flags)

	s := fontrender.FontSettings{FontIndex: 1}
	if gs.Unicode {
		s.FontIndex = 0
	}
	// ASCII glyphs are white; darken them on a light background.
	hue := fontrender.HueVector{}
	if !g.dark {
		hue.X = 0x0421
	}
	y := float32(g.h) - g.r.LineHeight(s, 1) - 4
	g.r.Draw(g.b, msg, fontrender.Vec2{X: 4, Y: y}, 1, s, hue, fontrender.AlignLeft)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.w, g.h = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

func runGame(r *fontrender.Renderer) {
	ebiten.SetWindowTitle("uoglyph")
	ebiten.SetWindowSize(initialWindowW, initialWindowH)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(newGame(r)); err != nil {
		log.Printf("ebiten: %v", err)
	}
}
