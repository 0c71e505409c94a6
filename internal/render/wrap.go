package render

import (
	"strings"
	"unicode/utf8"
)

// estimateWidth approximates the rendered width of s as rune count times half
// the font size. It is intentionally coarse: wrap points are approximate.
func estimateWidth(s string, fontSize float64) float64 {
	return float64(utf8.RuneCountInString(s)) * fontSize / 2
}

// Wrap greedily packs words onto lines whose estimated width stays within
// maxWidth. Words are never split; a word wider than maxWidth gets a line of
// its own.
func Wrap(text string, maxWidth, fontSize float64) []string {
	var (
		lines   []string
		current []string
	)

	for _, word := range strings.Fields(text) {
		candidate := append(current, word)
		if len(current) > 0 && estimateWidth(strings.Join(candidate, " "), fontSize) > maxWidth {
			lines = append(lines, strings.Join(current, " "))
			current = []string{word}
			continue
		}
		current = candidate
	}

	if len(current) > 0 {
		lines = append(lines, strings.Join(current, " "))
	}

	return lines
}
