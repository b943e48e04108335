// Package poster renders declarative card documents.
//
// A document lists elements in paint order:
//
//	width: 750
//	height: 420
//	background: "#fff"
//	proxy: "https://api.example.com/image-proxy?url="
//	elements:
//	  - kind: rect
//	    width: 750
//	    height: 420
//	    radius: 24
//	    fill: "#ff7e5f"
//	    gradient_end: "#feb47b"
//	  - kind: text
//	    text: "Weekly picks"
//	    x: 40
//	    y: 80
//	    max_width: 670
//	    max_lines: 2
//	    line_height: 48
//	    font_size: 36
//	    bold: true
//	    color: "#fff"
//
// Documents are YAML or TOML; see Load and Decode. Render draws a document
// onto any surface.Surface.
package poster

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gogpu/cardkit/glyph"
	"github.com/gogpu/cardkit/layout"
	"github.com/gogpu/cardkit/media"
	"github.com/gogpu/cardkit/shape"
)

// Kind names an element type.
type Kind string

// Element kinds.
const (
	KindRect   Kind = "rect"
	KindBubble Kind = "bubble"
	KindText   Kind = "text"
	KindLabel  Kind = "label"
	KindSpaced Kind = "spaced"
	KindImage  Kind = "image"
	KindDigits Kind = "digits"
	KindTime   Kind = "time"
)

// Document errors.
var (
	ErrInvalidSize = errors.New("poster: width and height must be positive")
	ErrUnknownKind = errors.New("poster: unknown element kind")
)

// Document describes a card.
type Document struct {
	Width      int    `yaml:"width" toml:"width"`
	Height     int    `yaml:"height" toml:"height"`
	Background string `yaml:"background" toml:"background"`

	// Proxy is the image proxy prefix. Empty loads image URLs directly.
	Proxy string `yaml:"proxy" toml:"proxy"`

	Fonts []Font `yaml:"fonts" toml:"fonts"`

	// Glyphs are the digit image URLs. Empty uses glyph.DefaultURLs.
	Glyphs []string `yaml:"glyphs" toml:"glyphs"`

	Elements []Element `yaml:"elements" toml:"elements"`

	// dir resolves relative font paths. Set by Load.
	dir string
}

// Font registers a font file under a family name.
type Font struct {
	Family string `yaml:"family" toml:"family"`
	Bold   bool   `yaml:"bold" toml:"bold"`
	Path   string `yaml:"path" toml:"path"`
}

// Element is one drawing step. Which fields apply depends on Kind.
type Element struct {
	Kind Kind `yaml:"kind" toml:"kind"`

	X      float64 `yaml:"x" toml:"x"`
	Y      float64 `yaml:"y" toml:"y"`
	Width  float64 `yaml:"width" toml:"width"`
	Height float64 `yaml:"height" toml:"height"`

	// Radius is a number, a numeric string like "12px", a four-value string
	// "tl tr br bl" or a table with tl, tr, br and bl keys.
	Radius any `yaml:"radius" toml:"radius"`

	BorderWidth float64 `yaml:"border_width" toml:"border_width"`
	BorderColor string  `yaml:"border_color" toml:"border_color"`
	Fill        string  `yaml:"fill" toml:"fill"`
	GradientEnd string  `yaml:"gradient_end" toml:"gradient_end"`

	// Text fields.
	Text       string  `yaml:"text" toml:"text"`
	Color      string  `yaml:"color" toml:"color"`
	FontSize   float64 `yaml:"font_size" toml:"font_size"`
	FontFamily string  `yaml:"font_family" toml:"font_family"`
	Bold       bool    `yaml:"bold" toml:"bold"`
	MaxWidth   float64 `yaml:"max_width" toml:"max_width"`
	MaxLines   int     `yaml:"max_lines" toml:"max_lines"`
	LineHeight float64 `yaml:"line_height" toml:"line_height"`
	Spacing    float64 `yaml:"spacing" toml:"spacing"`

	// Image fields. Clip clips to the element box rounded by Radius.
	URL       string `yaml:"url" toml:"url"`
	Clip      bool   `yaml:"clip" toml:"clip"`
	PaintClip bool   `yaml:"paint_clip" toml:"paint_clip"`
	CDN       bool   `yaml:"cdn" toml:"cdn"`

	// Value is the digits string; Width and Height size each glyph.
	Value string `yaml:"value" toml:"value"`

	// Time fields: an RFC 3339 time or Unix milliseconds.
	Time      string `yaml:"time" toml:"time"`
	UnixMilli int64  `yaml:"unix_milli" toml:"unix_milli"`
	Separator string `yaml:"separator" toml:"separator"`
}

// Validate checks the document size and element kinds.
func (d *Document) Validate() error {
	if d.Width <= 0 || d.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, d.Width, d.Height)
	}
	var errs []error
	for i, el := range d.Elements {
		switch el.Kind {
		case KindRect, KindBubble, KindText, KindLabel, KindSpaced, KindImage, KindDigits, KindTime:
		default:
			errs = append(errs, fmt.Errorf("element %d: %w %q", i, ErrUnknownKind, el.Kind))
			continue
		}
		if _, err := radius(el.Radius); err != nil {
			errs = append(errs, fmt.Errorf("element %d: %w", i, err))
		}
	}
	return errors.Join(errs...)
}

// ShapeStyle returns the element's box and paints as a shape style.
func (el *Element) ShapeStyle() shape.Style {
	r, _ := radius(el.Radius)
	return shape.Style{
		X: el.X, Y: el.Y, Width: el.Width, Height: el.Height,
		Radius:           r,
		BorderWidth:      el.BorderWidth,
		BorderColor:      el.BorderColor,
		FillColor:        el.Fill,
		Gradient:         el.GradientEnd != "",
		GradientEndColor: el.GradientEnd,
	}
}

// TextStyle returns the element's text settings as a layout style.
func (el *Element) TextStyle() layout.Style {
	return layout.Style{
		X: el.X, Y: el.Y,
		MaxWidth:   el.MaxWidth,
		Color:      el.Color,
		Bold:       el.Bold,
		FontSize:   el.FontSize,
		FontFamily: el.FontFamily,
		MaxLines:   el.MaxLines,
		LineHeight: el.LineHeight,
	}
}

// ImageStyle returns the element's image placement.
func (el *Element) ImageStyle() media.ImageStyle {
	st := el.ShapeStyle()
	return media.ImageStyle{
		Left: el.X, Top: el.Y, Width: el.Width, Height: el.Height,
		Clip:           el.Clip,
		ClipShape:      st,
		PaintClipShape: el.PaintClip,
	}
}

// GlyphBox returns the digits placement. X is the sequence center.
func (el *Element) GlyphBox() glyph.Box {
	return glyph.Box{Left: el.X, Top: el.Y, Width: el.Width, Height: el.Height}
}

// radius converts a decoded radius value.
func radius(v any) (shape.Radius, error) {
	switch r := v.(type) {
	case nil:
		return shape.Radius{}, nil
	case int:
		return shape.Uniform(float64(r)), nil
	case int64:
		return shape.Uniform(float64(r)), nil
	case float64:
		return shape.Uniform(r), nil
	case string:
		return shape.ParseRadius(r)
	case map[string]any:
		var c [4]float64
		for i, key := range [...]string{"tl", "tr", "br", "bl"} {
			f, err := number(r[key])
			if err != nil {
				return shape.Radius{}, fmt.Errorf("%w: %s: %v", shape.ErrInvalidRadius, key, err)
			}
			c[i] = f
		}
		return shape.PerCorner(c[0], c[1], c[2], c[3]), nil
	}
	return shape.Radius{}, fmt.Errorf("%w: unsupported value %v", shape.ErrInvalidRadius, v)
}

func number(v any) (float64, error) {
	switch n := v.(type) {
	case nil:
		return 0, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case float64:
		if math.IsNaN(n) {
			return 0, errors.New("NaN")
		}
		return n, nil
	case string:
		return strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(n), "px"), 64)
	}
	return 0, fmt.Errorf("unsupported value %v", v)
}
