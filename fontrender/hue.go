package fontrender

import (
	"image/color"

	"uoglyph/fontmul"
)

// Shader modes carried in HueVector.Y.
const (
	ShaderNone           float32 = 0
	ShaderHued           float32 = 1
	ShaderPartialHued    float32 = 2
	ShaderTextHueNoBlack float32 = 3
)

// HoverHue replaces the caller's hue while the pointer is over the text.
const HoverHue = 0x35

// HueVector is the per-quad colour transform: X is the hue, Y the shader
// mode and Z the transparency (0 opaque, 1 invisible).
type HueVector struct {
	X, Y, Z float32
}

// fixHue picks the shader mode for text drawn with s. ASCII fonts 5 and 8
// have black glyph edges and are hued as a whole.
func fixHue(h HueVector, s FontSettings) HueVector {
	switch {
	case h.X == 0:
		h.Y = ShaderNone
	case s.IsUnicode:
		h.Y = ShaderTextHueNoBlack
	case s.FontIndex != 8 && s.FontIndex != 5:
		h.Y = ShaderPartialHued
	default:
		h.Y = ShaderHued
	}
	return h
}

// HueColor returns the tint for h. Without a hue table the hue is read as
// an RGB555 colour.
func HueColor(h HueVector) color.RGBA {
	c := fontmul.Color16To32(uint16(h.X))
	return color.RGBA{R: uint8(c), G: uint8(c >> 8), B: uint8(c >> 16), A: 0xFF}
}

// ApplyHue transforms one straight-alpha pixel the way the text shaders do.
func ApplyHue(px color.RGBA, h HueVector) color.RGBA {
	tint := false
	switch h.Y {
	case ShaderHued:
		tint = true
	case ShaderPartialHued:
		tint = px.R == px.G && px.G == px.B
	case ShaderTextHueNoBlack:
		tint = px.R > 1 || px.G > 1 || px.B > 1
	}
	if tint {
		t := HueColor(h)
		px.R = uint8(uint16(px.R) * uint16(t.R) / 0xFF)
		px.G = uint8(uint16(px.G) * uint16(t.G) / 0xFF)
		px.B = uint8(uint16(px.B) * uint16(t.B) / 0xFF)
	}
	if h.Z > 0 {
		a := 1 - h.Z
		if a < 0 {
			a = 0
		}
		px.A = uint8(float32(px.A) * a)
	}
	return px
}
