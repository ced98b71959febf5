package main

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"

	"uoglyph/fontrender"
)

type Settings struct {
	DataDir   string  `json:"dataDir"`
	Text      string  `json:"text"`
	Font      int     `json:"font"`
	Unicode   bool    `json:"unicode"`
	Bold      bool    `json:"bold"`
	Italic    bool    `json:"italic"`
	Underline bool    `json:"underline"`
	Border    bool    `json:"border"`
	Scale     float64 `json:"scale"`
	Hue       int     `json:"hue"`
	Wrap      int     `json:"wrap"`
}

var gsdef = Settings{
	Text:  "The quick brown fox jumps over the lazy dog",
	Scale: 2,
}

var gs = gsdef

func loadSettings() bool {
	path := filepath.Join(baseDir, "settings.json")
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	s := gsdef
	if err := json.Unmarshal(data, &s); err != nil {
		log.Printf("load settings: %v", err)
		return false
	}
	s.sanitize()
	gs = s
	return true
}

func saveSettings() {
	data, err := json.MarshalIndent(gs, "", "  ")
	if err != nil {
		log.Printf("save settings: %v", err)
		return
	}
	path := filepath.Join(baseDir, "settings.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		log.Printf("save settings: %v", err)
	}
}

// sanitize clamps values a hand-edited file or flag could push out of range.
func (s *Settings) sanitize() {
	if s.Scale <= 0 {
		s.Scale = gsdef.Scale
	}
	if s.Font < 0 || s.Font > 0xFF {
		s.Font = 0
	}
	if s.Hue < 0 || s.Hue > 0x7FFF {
		s.Hue = 0
	}
	if s.Wrap < 0 {
		s.Wrap = 0
	}
}

// fontSettings converts the saved style into renderer settings.
func (s Settings) fontSettings() fontrender.FontSettings {
	return fontrender.FontSettings{
		FontIndex: uint8(s.Font),
		IsUnicode: s.Unicode,
		Bold:      s.Bold,
		Italic:    s.Italic,
		Underline: s.Underline,
		Border:    s.Border,
	}
}

func (s Settings) hue() fontrender.HueVector {
	return fontrender.HueVector{X: float32(s.Hue)}
}
