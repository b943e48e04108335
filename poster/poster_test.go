package poster

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gogpu/cardkit/media"
	"github.com/gogpu/cardkit/shape"
	"github.com/gogpu/cardkit/surface"
)

const cardYAML = `
width: 300
height: 200
background: "#ffffff"
elements:
  - kind: rect
    width: 300
    height: 200
    radius: 12
    fill: "#ff7e5f"
    gradient_end: "#feb47b"
  - kind: bubble
    x: 10
    y: 20
    width: 100
    height: 40
    radius: "6px"
    border_width: 1
    border_color: "#333"
  - kind: image
    x: 20
    y: 20
    width: 64
    height: 64
    radius: {tl: 8, tr: 8, br: 0, bl: 0}
    clip: true
    url: "https://img.example.com/avatar.png"
  - kind: text
    text: "Hello"
    x: 20
    y: 120
    max_width: 200
    max_lines: 2
    line_height: 30
    font_size: 24
    bold: true
    color: "#fff"
`

const cardTOML = `
width = 300
height = 200
background = "#ffffff"

[[elements]]
kind = "rect"
width = 300
height = 200
radius = 12
fill = "#ff7e5f"
gradient_end = "#feb47b"

[[elements]]
kind = "bubble"
x = 10
y = 20
width = 100
height = 40
radius = "6px"
border_width = 1
border_color = "#333"

[[elements]]
kind = "image"
x = 20
y = 20
width = 64
height = 64
radius = { tl = 8, tr = 8, br = 0, bl = 0 }
clip = true
url = "https://img.example.com/avatar.png"

[[elements]]
kind = "text"
text = "Hello"
x = 20
y = 120
max_width = 200
max_lines = 2
line_height = 30
font_size = 24
bold = true
color = "#fff"
`

func TestDecodeFormatsAgree(t *testing.T) {
	y, err := Decode([]byte(cardYAML), FormatYAML)
	if err != nil {
		t.Fatalf("yaml: %v", err)
	}
	tm, err := Decode([]byte(cardTOML), FormatTOML)
	if err != nil {
		t.Fatalf("toml: %v", err)
	}

	for _, doc := range []*Document{y, tm} {
		if doc.Width != 300 || doc.Height != 200 || len(doc.Elements) != 4 {
			t.Fatalf("doc = %dx%d with %d elements", doc.Width, doc.Height, len(doc.Elements))
		}
	}
	for i := range y.Elements {
		ys, ts := y.Elements[i].ShapeStyle(), tm.Elements[i].ShapeStyle()
		if ys != ts {
			t.Errorf("element %d: yaml %+v != toml %+v", i, ys, ts)
		}
		if y.Elements[i].TextStyle() != tm.Elements[i].TextStyle() {
			t.Errorf("element %d: text styles differ", i)
		}
	}

	if got := y.Elements[0].ShapeStyle(); got.Radius != shape.Uniform(12) || !got.Gradient {
		t.Errorf("rect style = %+v", got)
	}
	if got := y.Elements[2].ShapeStyle().Radius; got != shape.PerCorner(8, 8, 0, 0) {
		t.Errorf("image radius = %v", got)
	}
}

func TestRadiusValues(t *testing.T) {
	tests := []struct {
		in      any
		want    shape.Radius
		wantErr bool
	}{
		{nil, shape.Radius{}, false},
		{8, shape.Uniform(8), false},
		{int64(8), shape.Uniform(8), false},
		{2.5, shape.Uniform(2.5), false},
		{"12px", shape.Uniform(12), false},
		{"1 2 3 4", shape.PerCorner(1, 2, 3, 4), false},
		{map[string]any{"tl": 1, "br": "3px"}, shape.PerCorner(1, 0, 3, 0), false},
		{"wide", shape.Radius{}, true},
		{map[string]any{"tl": true}, shape.Radius{}, true},
		{[]any{1, 2}, shape.Radius{}, true},
	}
	for _, tt := range tests {
		got, err := radius(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("radius(%v) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err != nil {
			if !errors.Is(err, shape.ErrInvalidRadius) {
				t.Errorf("radius(%v) err = %v, want ErrInvalidRadius", tt.in, err)
			}
			continue
		}
		if got != tt.want {
			t.Errorf("radius(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format string
		want   error
	}{
		{"no size", "elements: []", FormatYAML, ErrInvalidSize},
		{"unknown kind", "width: 1\nheight: 1\nelements:\n  - kind: circle", FormatYAML, ErrUnknownKind},
		{"bad radius", "width: 1\nheight: 1\nelements:\n  - kind: rect\n    radius: wide", FormatYAML, shape.ErrInvalidRadius},
		{"unknown format", "{}", "json", ErrUnknownFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data), tt.format)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := Decode([]byte("width: 1\nheight: 1\ncolour: red"), FormatYAML); err == nil {
		t.Error("unknown yaml field should fail")
	}
	if _, err := Decode([]byte("width = 1\nheight = 1\ncolour = \"red\""), FormatTOML); err == nil {
		t.Error("unknown toml field should fail")
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "card.yml")
	if err := os.WriteFile(path, []byte(cardYAML), 0o600); err != nil {
		t.Fatal(err)
	}
	doc, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if doc.dir != dir {
		t.Errorf("dir = %q, want %q", doc.dir, dir)
	}

	if _, err := Load(filepath.Join(dir, "card.json")); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("json err = %v, want ErrUnknownFormat", err)
	}
	if _, err := Load(filepath.Join(dir, "missing.toml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing err = %v, want not exist", err)
	}
}

func pngData(t testing.TB, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// imageFetcher serves a 1x1 PNG for every URL and counts fetches.
func imageFetcher(t testing.TB, fetched *[]string) media.Fetcher {
	data := pngData(t, 1, 1)
	return media.FetcherFunc(func(_ context.Context, url string) (io.ReadCloser, error) {
		*fetched = append(*fetched, url)
		return io.NopCloser(bytes.NewReader(data)), nil
	})
}

func TestRenderOrder(t *testing.T) {
	doc, err := Decode([]byte(cardYAML), FormatYAML)
	if err != nil {
		t.Fatal(err)
	}
	var fetched []string
	loader := media.NewLoader(media.WithFetcher(imageFetcher(t, &fetched)))
	rec := surface.NewRecorder()

	if err := Render(context.Background(), doc, rec, WithLoader(loader)); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if rec.Depth() != 0 {
		t.Errorf("Depth = %d, want 0", rec.Depth())
	}
	if !slices.Equal(fetched, []string{"https://img.example.com/avatar.png"}) {
		t.Errorf("fetched = %v", fetched)
	}

	kinds := rec.Kinds()
	img := slices.Index(kinds, surface.OpDrawImage)
	txt := slices.Index(kinds, surface.OpFillText)
	clip := slices.Index(kinds, surface.OpClip)
	if img < 0 || txt < 0 || clip < 0 {
		t.Fatalf("missing ops in %v", kinds)
	}
	if !(clip < img && img < txt) {
		t.Errorf("want clip < image < text, got %d, %d, %d", clip, img, txt)
	}
	if n := len(rec.OpsOf(surface.OpStroke)); n != 1 {
		t.Errorf("Stroke ops = %d, want 1 (bubble only)", n)
	}
	if n := len(rec.OpsOf(surface.OpCreateGradient)); n != 1 {
		t.Errorf("gradients = %d, want 1", n)
	}
}

func TestRenderProxyAndCDN(t *testing.T) {
	doc := &Document{
		Width: 10, Height: 10,
		Proxy: "https://proxy.example.com/?u=",
		Elements: []Element{{
			Kind: KindImage, Width: 10, Height: 10, CDN: true,
			URL: "https://img.qlchat.com/a.png@100w",
		}},
	}
	var fetched []string
	loader := media.NewLoader(media.WithFetcher(imageFetcher(t, &fetched)))
	if err := Render(context.Background(), doc, surface.NewRecorder(), WithLoader(loader)); err != nil {
		t.Fatal(err)
	}
	want := "https://proxy.example.com/?u=" + media.EncodeURIComponent("https://img.qlchat.com/a.png"+media.DefaultOSSSuffix)
	if len(fetched) != 1 || fetched[0] != want {
		t.Errorf("fetched %v, want %q", fetched, want)
	}
}

func TestRenderDigitsLoadsTableOnce(t *testing.T) {
	doc := &Document{
		Width: 100, Height: 50,
		Glyphs: []string{
			"https://g/0.png", "https://g/1.png", "https://g/2.png", "https://g/3.png", "https://g/4.png",
			"https://g/5.png", "https://g/6.png", "https://g/7.png", "https://g/8.png", "https://g/9.png",
			"https://g/point.png",
		},
		Elements: []Element{
			{Kind: KindDigits, Value: "12.5", X: 50, Width: 10, Height: 20},
			{Kind: KindDigits, Value: "7", X: 50, Y: 25, Width: 10, Height: 20},
		},
	}
	var (
		mu      sync.Mutex
		fetched []string
	)
	data := pngData(t, 1, 1)
	loader := media.NewLoader(media.WithFetcher(media.FetcherFunc(func(_ context.Context, url string) (io.ReadCloser, error) {
		mu.Lock()
		fetched = append(fetched, url)
		mu.Unlock()
		return io.NopCloser(bytes.NewReader(data)), nil
	})), media.WithCache(false))

	rec := surface.NewRecorder()
	if err := Render(context.Background(), doc, rec, WithLoader(loader)); err != nil {
		t.Fatal(err)
	}
	if len(fetched) != len(doc.Glyphs) {
		t.Errorf("fetched %d glyphs, want %d", len(fetched), len(doc.Glyphs))
	}
	draws := rec.OpsOf(surface.OpDrawImage)
	if len(draws) != 5 {
		t.Fatalf("DrawImage ops = %d, want 5", len(draws))
	}
	if draws[0].Args[0] != 30 {
		t.Errorf("first glyph x = %v, want 30", draws[0].Args[0])
	}
}

func TestRenderTime(t *testing.T) {
	doc := &Document{
		Width: 100, Height: 50,
		Elements: []Element{
			{Kind: KindTime, Time: "2024-03-08T09:05:00Z", Separator: "/", FontSize: 12},
			{Kind: KindTime, UnixMilli: 0, FontSize: 12},
			{Kind: KindSpaced, Text: "ab", Spacing: 20, FontSize: 12},
		},
	}
	rec := surface.NewRecorder()
	if err := Render(context.Background(), doc, rec, WithLocation(time.UTC)); err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, op := range rec.OpsOf(surface.OpFillText) {
		got = append(got, op.Text)
	}
	want := []string{"2024/03/08 星期五 09:05", "1970-01-01 星期四 00:00", "a", "b"}
	if !slices.Equal(got, want) {
		t.Errorf("texts = %q, want %q", got, want)
	}

	doc.Elements = []Element{{Kind: KindTime, Time: "yesterday"}}
	if err := Render(context.Background(), doc, surface.NewRecorder()); err == nil {
		t.Error("bad time should fail")
	}
}

func TestRenderFailedImageContinues(t *testing.T) {
	doc := &Document{
		Width: 10, Height: 10,
		Elements: []Element{
			{Kind: KindImage, Width: 10, Height: 10, URL: "data:image/png;base64,AAAA"},
			{Kind: KindLabel, Text: "after"},
		},
	}
	rec := surface.NewRecorder()
	if err := Render(context.Background(), doc, rec); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if n := len(rec.OpsOf(surface.OpDrawImage)); n != 0 {
		t.Errorf("DrawImage ops = %d, want 0", n)
	}
	if n := len(rec.OpsOf(surface.OpFillText)); n != 1 {
		t.Errorf("FillText ops = %d, want 1", n)
	}
}

func TestRenderDataImage(t *testing.T) {
	uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngData(t, 2, 2))
	doc := &Document{
		Width: 10, Height: 10,
		Proxy:    "https://proxy.example.com/?u=",
		Elements: []Element{{Kind: KindImage, X: 1, Y: 2, Width: 3, Height: 4, URL: uri}},
	}
	rec := surface.NewRecorder()
	if err := Render(context.Background(), doc, rec); err != nil {
		t.Fatal(err)
	}
	draws := rec.OpsOf(surface.OpDrawImage)
	if len(draws) != 1 || !slices.Equal(draws[0].Args, []float64{1, 2, 3, 4}) {
		t.Errorf("draws = %+v", draws)
	}
}

func TestRenderCanceled(t *testing.T) {
	doc, err := Decode([]byte(cardYAML), FormatYAML)
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := Render(ctx, doc, surface.NewRecorder()); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want canceled", err)
	}
}

func TestRenderFonts(t *testing.T) {
	reg := surface.NewFontRegistry(surface.WithSystemFonts(false))
	doc := &Document{
		Width: 10, Height: 10,
		Fonts: []Font{{Family: "Brand", Path: "missing.ttf"}},
		dir:   t.TempDir(),
	}
	err := Render(context.Background(), doc, surface.NewRecorder(), WithFontRegistry(reg))
	if err == nil || !strings.Contains(err.Error(), "missing.ttf") {
		t.Errorf("err = %v, want a font load error", err)
	}
}

func TestExampleDocuments(t *testing.T) {
	paths, err := filepath.Glob(filepath.Join("..", "examples", "poster", "*"))
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) == 0 {
		t.Skip("no example documents")
	}
	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			doc, err := Load(path)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			rec := surface.NewRecorder()
			if err := Render(context.Background(), doc, rec, WithLocation(time.UTC)); err != nil {
				t.Fatalf("Render: %v", err)
			}
			if rec.Depth() != 0 {
				t.Errorf("Depth = %d, want 0", rec.Depth())
			}
		})
	}
}
