package fontrender

import "strings"

// Wrap splits text into lines no wider than maxWidth when drawn with s at
// scale. Words are kept intact when possible; a word wider than maxWidth
// is broken across lines.
func (r *Renderer) Wrap(text string, s FontSettings, scale, maxWidth float32) []string {
	width := func(str string) float32 {
		return r.Measure(str, s, scale).X
	}

	var lines []string
	for _, para := range strings.Split(strings.ReplaceAll(text, "\r", ""), "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		cur := ""
		for i, w := range words {
			if i > 0 {
				if cand := cur + " " + w; width(cand) <= maxWidth {
					cur = cand
					continue
				}
				lines = append(lines, cur)
			}
			if width(w) <= maxWidth {
				cur = w
				continue
			}
			// Break an over-long word rune by rune.
			var runes []rune
			for _, c := range w {
				runes = append(runes, c)
				if width(string(runes)) > maxWidth && len(runes) > 1 {
					lines = append(lines, string(runes[:len(runes)-1]))
					runes = runes[len(runes)-1:]
				}
			}
			cur = string(runes)
		}
		lines = append(lines, cur)
	}
	return lines
}
