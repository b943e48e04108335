// Package layout draws card text: greedy multi-line layout with an ellipsis
// on the last visible line, single-line labels and fixed-advance text.
//
// Layout is character based. Lines break at the first character that makes
// the line at least MaxWidth wide, with no word-boundary handling, which suits
// CJK-heavy card copy.
package layout

import (
	"strconv"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/gogpu/cardkit"
	"github.com/gogpu/cardkit/surface"
)

const (
	// DefaultFontFamily is used when Style.FontFamily is empty.
	DefaultFontFamily = "Microsoft YaHei"

	// Ellipsis replaces the tail of a truncated last line.
	Ellipsis = "..."

	// truncateRunes is the number of characters Ellipsis replaces.
	truncateRunes = 3
)

// Style configures text drawing.
type Style struct {
	// X, Y is the position of the first line's alphabetic baseline start.
	X, Y float64

	// MaxWidth is the width at which lines break. FillText also compresses
	// wider lines to it.
	MaxWidth float64

	// Color is a CSS color. Empty keeps the surface fill paint.
	Color string

	Bold       bool
	FontSize   float64
	FontFamily string

	// MaxLines caps the number of lines; <= 0 means unlimited.
	MaxLines int

	// LineHeight is the baseline advance between lines.
	LineHeight float64
}

// Font returns the surface font string for the style,
// e.g. "bold 28px Microsoft YaHei".
func (st Style) Font() string {
	family := st.FontFamily
	if family == "" {
		family = DefaultFontFamily
	}
	prefix := ""
	if st.Bold {
		prefix = "bold "
	}
	return prefix + strconv.FormatFloat(st.FontSize, 'f', -1, 64) + "px " + family
}

// Line is a laid-out line of text.
type Line struct {
	Text string
	X, Y float64

	// Truncated marks the last line of overflowing text, which ends in Ellipsis.
	Truncated bool
}

// Layout breaks text into lines using measure for line widths.
//
// Characters are appended to a line one at a time. The last character always
// ends the final line, whatever its width. Otherwise, once the line measures
// at least MaxWidth it is emitted and the next line starts LineHeight lower;
// if that line was the MaxLines-th, its last three characters are replaced
// with Ellipsis and layout stops.
//
// Text is NFC-normalized first so that combining sequences count as one
// character where possible. Empty text yields no lines.
func Layout(measure func(string) float64, text string, st Style) []Line {
	runes := []rune(norm.NFC.String(text))
	if len(runes) == 0 {
		return nil
	}

	var (
		lines []Line
		buf   = make([]rune, 0, len(runes))
		y     = st.Y
		count = 1
	)
	for i, r := range runes {
		buf = append(buf, r)
		if i == len(runes)-1 {
			lines = append(lines, Line{Text: string(buf), X: st.X, Y: y})
			break
		}
		if measure(string(buf)) < st.MaxWidth {
			continue
		}
		if st.MaxLines > 0 && count >= st.MaxLines {
			keep := max(0, len(buf)-truncateRunes)
			lines = append(lines, Line{
				Text:      string(buf[:keep]) + Ellipsis,
				X:         st.X,
				Y:         y,
				Truncated: true,
			})
			break
		}
		lines = append(lines, Line{Text: string(buf), X: st.X, Y: y})
		buf = buf[:0]
		y += st.LineHeight
		count++
	}
	return lines
}

// Draw lays out text with the surface's measurement in the style's font and
// draws every line. Font and fill changes are undone before Draw returns.
func Draw(s surface.Surface, text string, st Style) []Line {
	defer surface.Scoped(s)()
	setFont(s, st)

	lines := Layout(s.MeasureText, text, st)
	for _, l := range lines {
		s.FillText(l.Text, l.X, l.Y, st.MaxWidth)
	}
	return lines
}

// DrawLabel draws text as a single line at (st.X, st.Y), compressed to
// st.MaxWidth when that is positive. Line-breaking fields are ignored.
func DrawLabel(s surface.Surface, text string, st Style) {
	if text == "" {
		return
	}
	defer surface.Scoped(s)()
	setFont(s, st)
	s.FillText(text, st.X, st.Y, st.MaxWidth)
}

// DrawSpaced draws each character of text advance units after the previous
// one, ignoring glyph widths.
func DrawSpaced(s surface.Surface, text string, st Style, advance float64) {
	if text == "" {
		return
	}
	defer surface.Scoped(s)()
	setFont(s, st)

	text = norm.NFC.String(text)
	i := 0
	for len(text) > 0 {
		_, size := utf8.DecodeRuneInString(text)
		s.FillText(text[:size], st.X+advance*float64(i), st.Y, 0)
		text = text[size:]
		i++
	}
}

func setFont(s surface.Surface, st Style) {
	s.SetFont(st.Font())
	if st.Color == "" {
		return
	}
	p, err := surface.ParsePaint(st.Color)
	if err != nil {
		cardkit.Logger().Warn("layout: invalid text color", "color", st.Color, "err", err)
		return
	}
	s.SetFillStyle(p)
}
