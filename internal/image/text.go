package imagepkg

import "strings"

// Name autoshrink bounds.
const (
	NameFontMax  = 120.0
	NameFontMin  = 30.0
	NameFontStep = 5.0
)

// SizedMeasureFunc returns the width of text rendered at size.
type SizedMeasureFunc func(text string, size float64) float64

// MeasureFunc returns the width of text in an already chosen font.
type MeasureFunc func(text string) float64

// ChooseFontSize shrinks from NameFontMax in NameFontStep steps until text
// fits maxWidth. It never goes below NameFontMin, even if text still
// overflows there.
func ChooseFontSize(text string, maxWidth float64, measure SizedMeasureFunc) float64 {
	size := NameFontMax
	for measure(text, size) > maxWidth && size > NameFontMin {
		size -= NameFontStep
	}
	return size
}

// WrapLines breaks text into lines greedily. A word joins the current line
// while the line, the word and a trailing space still fit maxWidth. A word
// wider than maxWidth on its own gets a line to itself and is not split.
func WrapLines(text string, maxWidth float64, measure MeasureFunc) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	line := ""
	for i, word := range words {
		candidate := line + word + " "
		if i > 0 && measure(candidate) > maxWidth {
			lines = append(lines, strings.TrimSpace(line))
			line = word + " "
			continue
		}
		line = candidate
	}
	return append(lines, strings.TrimSpace(line))
}
