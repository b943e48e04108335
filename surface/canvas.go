// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package surface

import (
	"image"
	"image/color"
	"image/draw"
	"io"
	"math"

	"github.com/disintegration/imaging"
	"github.com/gogpu/cardkit"
	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
)

// CanvasOption configures a Canvas.
type CanvasOption func(*canvasOptions)

type canvasOptions struct {
	fonts *FontRegistry
}

// WithFontRegistry sets the registry used to resolve font strings.
// The default is DefaultFontRegistry.
func WithFontRegistry(r *FontRegistry) CanvasOption {
	return func(o *canvasOptions) {
		if r != nil {
			o.fonts = r
		}
	}
}

// canvasState is the saved state of a Canvas: the public State plus the
// resolved face and the clip mask (nil when unclipped).
type canvasState struct {
	State
	face text.Face
	clip *gg.Mask
}

// Canvas is a raster Surface backed by a gg.Context.
//
// Fill and stroke paints are tracked separately and installed on the
// context right before each operation. Clipping is done with alpha masks:
// while a clip is active every operation is drawn into a scratch layer and
// composited through the mask.
//
// Example:
//
//	cv := surface.NewCanvas(750, 1334)
//	defer cv.Close()
//
//	cv.SetFillStyle(surface.Solid{Color: color.White})
//	cv.BeginPath()
//	cv.MoveTo(0, 0)
//	cv.LineTo(750, 0)
//	cv.LineTo(750, 1334)
//	cv.LineTo(0, 1334)
//	cv.Fill()
//
//	err := cv.SavePNG("card.png")
type Canvas struct {
	dc    *gg.Context
	fonts *FontRegistry

	state canvasState
	stack []canvasState
	path  path
}

// NewCanvas creates a transparent canvas of the given size.
func NewCanvas(width, height int, opts ...CanvasOption) *Canvas {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	return newCanvas(gg.NewContext(width, height), opts)
}

// NewCanvasForImage creates a canvas initialized with a copy of img.
func NewCanvasForImage(img image.Image, opts ...CanvasOption) *Canvas {
	return newCanvas(gg.NewContextForImage(img), opts)
}

func newCanvas(dc *gg.Context, opts []CanvasOption) *Canvas {
	o := canvasOptions{fonts: defaultFonts}
	for _, opt := range opts {
		opt(&o)
	}
	c := &Canvas{dc: dc, fonts: o.fonts}
	c.state.State = DefaultState()
	c.state.face = c.fonts.Face(ParseFont(c.state.Font))
	return c
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int { return c.dc.Width() }

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int { return c.dc.Height() }

// Context returns the underlying gg context for drawing outside the
// Surface API. Paths built through the Canvas are not visible there.
func (c *Canvas) Context() *gg.Context { return c.dc }

// Image returns a snapshot of the canvas pixels.
func (c *Canvas) Image() image.Image { return c.dc.Image() }

// SavePNG writes the canvas to a PNG file.
func (c *Canvas) SavePNG(path string) error { return c.dc.SavePNG(path) }

// EncodePNG writes the canvas as PNG to w.
func (c *Canvas) EncodePNG(w io.Writer) error { return c.dc.EncodePNG(w) }

// EncodeJPEG writes the canvas as JPEG to w with the given quality (1-100).
func (c *Canvas) EncodeJPEG(w io.Writer, quality int) error {
	return c.dc.EncodeJPEG(w, quality)
}

// Close releases the underlying context.
func (c *Canvas) Close() error { return c.dc.Close() }

// Save implements Surface.
func (c *Canvas) Save() {
	c.stack = append(c.stack, c.state)
}

// Restore implements Surface.
func (c *Canvas) Restore() {
	n := len(c.stack)
	if n == 0 {
		return
	}
	c.state = c.stack[n-1]
	c.stack = c.stack[:n-1]
}

// SetFont implements Surface.
func (c *Canvas) SetFont(font string) {
	c.state.Font = font
	c.state.face = c.fonts.Face(ParseFont(font))
}

// SetFillStyle implements Surface.
func (c *Canvas) SetFillStyle(p Paint) {
	if p != nil {
		c.state.Fill = p
	}
}

// SetStrokeStyle implements Surface.
func (c *Canvas) SetStrokeStyle(p Paint) {
	if p != nil {
		c.state.Stroke = p
	}
}

// SetLineWidth implements Surface.
func (c *Canvas) SetLineWidth(w float64) {
	if w > 0 && !math.IsInf(w, 0) {
		c.state.LineWidth = w
	}
}

// MeasureText implements Surface.
func (c *Canvas) MeasureText(s string) float64 {
	if s == "" || c.state.face == nil {
		return 0
	}
	w, _ := text.Measure(s, c.state.face)
	return w
}

// FillText implements Surface.
func (c *Canvas) FillText(s string, x, y, maxWidth float64) {
	face := c.state.face
	if s == "" || face == nil {
		return
	}
	col := c.state.Fill.ColorAt(x, y)
	width, _ := text.Measure(s, face)

	if maxWidth > 0 && width > maxWidth {
		img, originX, ascent := rasterizeText(s, face, col, width)
		scale := maxWidth / width
		b := img.Bounds()
		c.draw(func(dc *gg.Context) {
			dc.DrawImageEx(gg.ImageBufFromImage(img), gg.DrawImageOptions{
				X:             x - originX*scale,
				Y:             y - ascent,
				DstWidth:      float64(b.Dx()) * scale,
				DstHeight:     float64(b.Dy()),
				Interpolation: gg.InterpBilinear,
				Opacity:       1,
				BlendMode:     gg.BlendNormal,
			})
		})
		return
	}

	c.draw(func(dc *gg.Context) {
		dc.SetFont(face)
		dc.SetColor(col)
		dc.DrawString(s, x, y)
	})
}

// rasterizeText draws s into an image tall enough for the face. It returns
// the image, the x of the pen origin and the distance from the image top to
// the baseline.
func rasterizeText(s string, face text.Face, col color.Color, width float64) (image.Image, float64, float64) {
	const pad = 1
	m := face.Metrics()
	w := int(math.Ceil(width)) + 2*pad
	h := int(math.Ceil(m.Ascent+m.Descent)) + 2*pad

	tmp := gg.NewContext(w, h)
	defer func() { _ = tmp.Close() }()
	tmp.SetFont(face)
	tmp.SetColor(col)
	tmp.DrawString(s, pad, pad+m.Ascent)
	return tmp.Image(), pad, pad + m.Ascent
}

// BeginPath implements Surface.
func (c *Canvas) BeginPath() { c.path.reset() }

// MoveTo implements Surface.
func (c *Canvas) MoveTo(x, y float64) { c.path.moveTo(Point{x, y}) }

// LineTo implements Surface.
func (c *Canvas) LineTo(x, y float64) { c.path.lineTo(Point{x, y}) }

// ArcTo implements Surface.
func (c *Canvas) ArcTo(x1, y1, x2, y2, r float64) {
	c.path.arcTo(Point{x1, y1}, Point{x2, y2}, r)
}

// ClosePath implements Surface.
func (c *Canvas) ClosePath() { c.path.close() }

// Stroke implements Surface.
func (c *Canvas) Stroke() {
	if c.path.empty() {
		return
	}
	brush := toBrush(c.state.Stroke)
	lw := c.state.LineWidth
	c.draw(func(dc *gg.Context) {
		c.path.replay(dc)
		dc.SetLineWidth(lw)
		dc.SetStrokeBrush(brush)
		if err := dc.StrokePreserve(); err != nil {
			cardkit.Logger().Warn("surface: stroke failed", "err", err)
		}
	})
}

// Fill implements Surface.
func (c *Canvas) Fill() {
	if c.path.empty() {
		return
	}
	brush := toBrush(c.state.Fill)
	c.draw(func(dc *gg.Context) {
		c.path.replay(dc)
		dc.SetFillBrush(brush)
		if err := dc.FillPreserve(); err != nil {
			cardkit.Logger().Warn("surface: fill failed", "err", err)
		}
	})
}

// Clip implements Surface.
func (c *Canvas) Clip() {
	c.path.replay(c.dc)
	m := c.dc.AsMask()
	c.dc.ClearPath()

	if prev := c.state.clip; prev != nil {
		dst, src := m.Data(), prev.Data()
		for i := range dst {
			dst[i] = uint8(uint16(dst[i]) * uint16(src[i]) / 255)
		}
	}
	// Saved states keep their own mask, so the new one is never shared.
	c.state.clip = m
}

// DrawImage implements Surface.
func (c *Canvas) DrawImage(img image.Image, x, y, w, h float64) {
	if img == nil || !(w > 0) || !(h > 0) {
		return
	}
	iw := max(1, int(math.Round(w)))
	ih := max(1, int(math.Round(h)))
	resized := imaging.Resize(img, iw, ih, imaging.Lanczos)

	c.draw(func(dc *gg.Context) {
		dc.DrawImageEx(gg.ImageBufFromImage(resized), gg.DrawImageOptions{
			X:             x,
			Y:             y,
			DstWidth:      w,
			DstHeight:     h,
			Interpolation: gg.InterpBilinear,
			Opacity:       1,
			BlendMode:     gg.BlendNormal,
		})
	})
}

// CreateLinearGradient implements Surface.
func (c *Canvas) CreateLinearGradient(x0, y0, x1, y1 float64) *Gradient {
	return NewLinearGradient(x0, y0, x1, y1)
}

// draw runs op on the canvas, or on a scratch layer composited through the
// clip mask when a clip is active.
func (c *Canvas) draw(op func(dc *gg.Context)) {
	mask := c.state.clip
	if mask == nil {
		op(c.dc)
		c.dc.ClearPath()
		return
	}

	layer := gg.NewContext(c.dc.Width(), c.dc.Height())
	defer func() { _ = layer.Close() }()
	op(layer)

	img := layer.Image()
	rgba, ok := img.(*image.RGBA)
	if !ok {
		rgba = image.NewRGBA(img.Bounds())
		draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
	}
	applyMask(rgba, mask)
	c.dc.DrawImageEx(gg.ImageBufFromImage(rgba), gg.DrawImageOptions{
		Interpolation: gg.InterpNearest,
		Opacity:       1,
		BlendMode:     gg.BlendNormal,
	})
}

// applyMask scales the premultiplied pixels of img by the mask coverage.
func applyMask(img *image.RGBA, m *gg.Mask) {
	b := img.Bounds()
	w, h := min(b.Dx(), m.Width()), min(b.Dy(), m.Height())
	for y := range b.Dy() {
		row := img.Pix[y*img.Stride : y*img.Stride+4*b.Dx()]
		for x := range b.Dx() {
			var a uint8
			if x < w && y < h {
				a = m.At(x, y)
			}
			if a == 255 {
				continue
			}
			px := row[4*x : 4*x+4]
			for k := range px {
				px[k] = uint8(uint16(px[k]) * uint16(a) / 255)
			}
		}
	}
}

// toBrush converts a Paint to a gg brush.
func toBrush(p Paint) gg.Brush {
	switch p := p.(type) {
	case Solid:
		return gg.Solid(gg.FromColor(p.ColorAt(0, 0)))
	case *Gradient:
		if len(p.Stops) == 0 {
			return gg.Solid(gg.Transparent)
		}
		g := gg.NewLinearGradientBrush(p.X0, p.Y0, p.X1, p.Y1)
		for _, s := range p.Stops {
			g.AddColorStop(s.Offset, gg.FromColor(s.Color))
		}
		return g
	default:
		return gg.Solid(gg.Black)
	}
}

var _ Surface = (*Canvas)(nil)
