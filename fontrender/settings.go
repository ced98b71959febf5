package fontrender

// FontSettings selects the font family, font and the effects applied to
// every glyph of a draw or measure call.
type FontSettings struct {
	FontIndex uint8
	IsUnicode bool
	IsHTML    bool
	// CharsCount caps the number of runes laid out. Zero means no limit.
	CharsCount int
	Bold       bool
	Italic     bool
	Underline  bool
	Border     bool
}

func boolHash(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

// key hashes a character together with the settings that change its
// bitmap. Underline is drawn as a separate line and is left out so that
// underlined and plain text share glyphs.
func (s FontSettings) key(c rune) uint32 {
	hash := uint32(17)
	hash = hash*31 + uint32(c)
	hash = hash*31 + uint32(s.FontIndex)
	hash = hash*31 + boolHash(s.Bold)
	hash = hash*31 + boolHash(s.Italic)
	hash = hash*31 + boolHash(s.Border)
	hash = hash*31 + boolHash(s.IsHTML)
	hash = hash*31 + boolHash(s.IsUnicode)
	return hash
}
