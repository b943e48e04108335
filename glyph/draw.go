package glyph

import (
	"strconv"

	"github.com/gogpu/cardkit"
	"github.com/gogpu/cardkit/surface"
)

// Box places a glyph sequence. Left is the horizontal center of the
// sequence; Width and Height size each glyph.
type Box struct {
	Left, Top     float64
	Width, Height float64
}

// Draw draws value one glyph per character, centered on box.Left.
//
// Glyph i lands at box.Left + box.Width*i - box.Width*n/2 for n characters.
// Characters without an index or table entry leave their slot empty.
func Draw(s surface.Surface, value string, box Box, table Table) {
	runes := []rune(value)
	total := box.Width * float64(len(runes))

	for i, r := range runes {
		idx, ok := Index(r)
		img := table.At(idx)
		if !ok || img == nil {
			cardkit.Logger().Debug("glyph: skipped", "char", string(r), "index", idx)
			continue
		}
		x := box.Left + box.Width*float64(i) - total/2
		s.DrawImage(img, x, box.Top, box.Width, box.Height)
	}
}

// DrawNumber draws v in its shortest decimal form.
func DrawNumber(s surface.Surface, v float64, box Box, table Table) {
	Draw(s, FormatNumber(v), box, table)
}

// FormatNumber formats v the way a JavaScript number prints for ordinary
// magnitudes: shortest round-trip digits, no exponent, no trailing zeros.
func FormatNumber(v float64) string {
	if v == 0 {
		return "0"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
