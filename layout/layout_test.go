package layout

import (
	"fmt"
	"image/color"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/gogpu/cardkit/surface"
)

// tenPerRune measures every character as 10 units wide.
func tenPerRune(s string) float64 { return float64(utf8.RuneCountInString(s)) * 10 }

func TestLayoutSingleLine(t *testing.T) {
	// Every text narrower than MaxWidth is one line at the anchor.
	for n := 1; n <= 9; n++ {
		text := strings.Repeat("字", n)
		st := Style{X: 12, Y: 34, MaxWidth: 100, MaxLines: 2, LineHeight: 20}
		lines := Layout(tenPerRune, text, st)
		if len(lines) != 1 {
			t.Fatalf("n=%d: %d lines, want 1", n, len(lines))
		}
		l := lines[0]
		if l.Text != text || l.X != 12 || l.Y != 34 || l.Truncated {
			t.Errorf("n=%d: line = %+v", n, l)
		}
	}
}

func TestLayoutLastCharacterAlwaysFlushes(t *testing.T) {
	// The final character ends the line even when it reaches MaxWidth.
	lines := Layout(tenPerRune, "abcde", Style{MaxWidth: 50, MaxLines: 1})
	if len(lines) != 1 || lines[0].Text != "abcde" || lines[0].Truncated {
		t.Errorf("lines = %+v", lines)
	}
}

func TestLayoutEmpty(t *testing.T) {
	if lines := Layout(tenPerRune, "", Style{MaxWidth: 50, MaxLines: 1}); len(lines) != 0 {
		t.Errorf("lines = %+v, want none", lines)
	}
}

func TestLayoutTruncates(t *testing.T) {
	for maxLines := 1; maxLines <= 4; maxLines++ {
		t.Run(fmt.Sprint(maxLines), func(t *testing.T) {
			st := Style{X: 5, Y: 100, MaxWidth: 50, MaxLines: maxLines, LineHeight: 24}
			text := strings.Repeat("abcdefghij", 5)
			lines := Layout(tenPerRune, text, st)

			if len(lines) != maxLines {
				t.Fatalf("%d lines, want %d", len(lines), maxLines)
			}
			last := lines[len(lines)-1]
			if !strings.HasSuffix(last.Text, Ellipsis) || !last.Truncated {
				t.Errorf("last line = %+v, want ellipsis", last)
			}
			if last.Text != "ab"+Ellipsis && last.Text != "fg"+Ellipsis {
				t.Errorf("last line text = %q", last.Text)
			}
			for i := 1; i < len(lines); i++ {
				if d := lines[i].Y - lines[i-1].Y; d != st.LineHeight {
					t.Errorf("line %d offset = %v, want %v", i, d, st.LineHeight)
				}
				if lines[i-1].Truncated {
					t.Errorf("line %d truncated but not last", i-1)
				}
			}
		})
	}
}

func TestLayoutShortTruncation(t *testing.T) {
	// Two characters overflow: nothing is left before the ellipsis.
	lines := Layout(tenPerRune, "abcdef", Style{MaxWidth: 15, MaxLines: 1})
	if len(lines) != 1 || lines[0].Text != Ellipsis {
		t.Errorf("lines = %+v, want [%q]", lines, Ellipsis)
	}
}

func TestLayoutUnlimited(t *testing.T) {
	lines := Layout(tenPerRune, "abcdefghijk", Style{MaxWidth: 30, LineHeight: 10})
	want := []string{"abc", "def", "ghi", "jk"}
	if len(lines) != len(want) {
		t.Fatalf("lines = %+v", lines)
	}
	for i, w := range want {
		if lines[i].Text != w || lines[i].Y != float64(i*10) {
			t.Errorf("line %d = %+v, want %q at %d", i, lines[i], w, i*10)
		}
	}
}

func TestLayoutNormalizes(t *testing.T) {
	// "e" + combining acute composes into one character.
	lines := Layout(tenPerRune, "ce\u0301", Style{MaxWidth: 20, MaxLines: 1})
	if len(lines) != 1 || lines[0].Text != "c\u00e9" {
		t.Errorf("lines = %+v, want one composed line", lines)
	}
}

func TestDrawScopesState(t *testing.T) {
	rec := surface.NewRecorder(surface.WithMeasurer(surface.FixedAdvance(10)))
	st := Style{X: 1, Y: 2, MaxWidth: 30, MaxLines: 2, LineHeight: 15, FontSize: 28, Bold: true, Color: "#ff0000"}

	lines := Draw(rec, "abcdefghijk", st)
	if len(lines) != 2 {
		t.Fatalf("lines = %+v", lines)
	}
	if rec.Depth() != 0 {
		t.Errorf("Depth = %d after Draw, want 0", rec.Depth())
	}
	if rec.State().Font != surface.DefaultFont {
		t.Errorf("font leaked: %q", rec.State().Font)
	}

	texts := rec.OpsOf(surface.OpFillText)
	if len(texts) != 2 {
		t.Fatalf("FillText calls = %d, want 2", len(texts))
	}
	first := texts[0]
	if first.State.Font != "bold 28px Microsoft YaHei" {
		t.Errorf("font = %q", first.State.Font)
	}
	if got := color.NRGBAModel.Convert(first.State.Fill.ColorAt(0, 0)); got != (color.NRGBA{255, 0, 0, 255}) {
		t.Errorf("fill = %v, want red", got)
	}
	if first.Args[2] != 30 {
		t.Errorf("maxWidth = %v, want 30", first.Args[2])
	}
	if texts[1].Text != Ellipsis {
		t.Errorf("second line = %q", texts[1].Text)
	}
}

func TestDrawEmptyBalanced(t *testing.T) {
	rec := surface.NewRecorder()
	if lines := Draw(rec, "", Style{MaxWidth: 10, MaxLines: 1}); lines != nil {
		t.Errorf("lines = %+v", lines)
	}
	if rec.Depth() != 0 || len(rec.OpsOf(surface.OpFillText)) != 0 {
		t.Error("empty Draw must balance and draw nothing")
	}
}

func TestStyleFont(t *testing.T) {
	tests := []struct {
		st   Style
		want string
	}{
		{Style{FontSize: 28, Bold: true}, "bold 28px Microsoft YaHei"},
		{Style{FontSize: 24, FontFamily: "PingFang SC"}, "24px PingFang SC"},
		{Style{FontSize: 13.5}, "13.5px Microsoft YaHei"},
	}
	for _, tt := range tests {
		if got := tt.st.Font(); got != tt.want {
			t.Errorf("Font() = %q, want %q", got, tt.want)
		}
		if spec := surface.ParseFont(tt.want); spec.Size != tt.st.FontSize || spec.Bold != tt.st.Bold {
			t.Errorf("ParseFont(%q) = %+v", tt.want, spec)
		}
	}
}

func TestDrawSpaced(t *testing.T) {
	rec := surface.NewRecorder()
	DrawSpaced(rec, "1月2", Style{X: 10, Y: 50, FontSize: 20}, 15)

	texts := rec.OpsOf(surface.OpFillText)
	want := []struct {
		text string
		x    float64
	}{{"1", 10}, {"月", 25}, {"2", 40}}
	if len(texts) != len(want) {
		t.Fatalf("FillText calls = %d, want %d", len(texts), len(want))
	}
	for i, w := range want {
		if texts[i].Text != w.text || texts[i].Args[0] != w.x || texts[i].Args[1] != 50 {
			t.Errorf("char %d = %q at %v, want %q at %v", i, texts[i].Text, texts[i].Args, w.text, w.x)
		}
	}
	if rec.Depth() != 0 {
		t.Error("DrawSpaced left state saved")
	}
}

func TestDrawLabel(t *testing.T) {
	rec := surface.NewRecorder()
	DrawLabel(rec, "Hi", Style{X: 3, Y: 4, FontSize: 12, Color: "bogus"})
	texts := rec.OpsOf(surface.OpFillText)
	if len(texts) != 1 || texts[0].Text != "Hi" || texts[0].Args[0] != 3 || texts[0].Args[1] != 4 {
		t.Errorf("FillText = %+v", texts)
	}
	if len(rec.OpsOf(surface.OpSetFillStyle)) != 0 {
		t.Error("invalid color must keep the previous paint")
	}

	rec.Reset()
	DrawLabel(rec, "", Style{})
	if len(rec.Ops()) != 0 {
		t.Error("empty label should not touch the surface")
	}
}
