package main

import (
	"bufio"
	"image"
	"image/png"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"uoglyph/fontrender"
)

const defaultTermWidth = 80

// renderImage rasterizes s.Text onto a transparent image cropped to the
// drawn pixels. maxWidth wraps the text in screen pixels when positive.
func renderImage(r *fontrender.Renderer, s Settings, maxWidth int) *image.RGBA {
	fs := s.fontSettings()
	scale := float32(s.Scale)
	text := s.Text
	if maxWidth > 0 {
		text = strings.Join(r.Wrap(text, fs, scale, float32(maxWidth)), "\n")
	}

	sizer := fontrender.NewImageBatcher(nil)
	r.Draw(sizer, text, fontrender.Vec2{}, scale, fs, s.hue(), fontrender.AlignLeft)
	b := sizer.Bounds()
	if b.Empty() {
		return image.NewRGBA(image.Rect(0, 0, 0, 0))
	}

	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	origin := fontrender.Vec2{X: float32(-b.Min.X), Y: float32(-b.Min.Y)}
	r.Draw(fontrender.NewImageBatcher(dst), text, origin, scale, fs, s.hue(), fontrender.AlignLeft)
	return dst
}

func writePNG(path string, r *fontrender.Renderer, s Settings) error {
	img := renderImage(r, s, s.Wrap)
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	logDebug("wrote %s (%dx%d)", path, img.Bounds().Dx(), img.Bounds().Dy())
	return f.Close()
}

// printPreview draws the text as block characters, two pixel rows per
// terminal row, wrapped to the terminal width.
func printPreview(w io.Writer, r *fontrender.Renderer, s Settings) error {
	width := s.Wrap
	if width == 0 {
		width = terminalWidth()
	}
	img := renderImage(r, s, width)
	bw := bufio.NewWriter(w)
	writeBlocks(bw, img)
	return bw.Flush()
}

func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return defaultTermWidth
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return defaultTermWidth
	}
	return w
}

func writeBlocks(w *bufio.Writer, img *image.RGBA) {
	b := img.Bounds()
	lit := func(x, y int) bool {
		return y < b.Max.Y && img.RGBAAt(x, y).A != 0
	}
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		line := make([]rune, 0, b.Dx())
		for x := b.Min.X; x < b.Max.X; x++ {
			top, bottom := lit(x, y), lit(x, y+1)
			switch {
			case top && bottom:
				line = append(line, '█')
			case top:
				line = append(line, '▀')
			case bottom:
				line = append(line, '▄')
			default:
				line = append(line, ' ')
			}
		}
		w.WriteString(strings.TrimRight(string(line), " "))
		w.WriteByte('\n')
	}
}
