package poster

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/gogpu/cardkit"
	"github.com/gogpu/cardkit/glyph"
	"github.com/gogpu/cardkit/layout"
	"github.com/gogpu/cardkit/media"
	"github.com/gogpu/cardkit/shape"
	"github.com/gogpu/cardkit/surface"
)

// RenderOption configures Render.
type RenderOption func(*renderOptions)

type renderOptions struct {
	loader *media.Loader
	proxy  media.ProxyFunc
	fonts  *surface.FontRegistry
	loc    *time.Location
}

// WithLoader loads images with l instead of a fresh media.NewLoader().
// Sharing a loader across renders shares its image cache.
func WithLoader(l *media.Loader) RenderOption {
	return func(o *renderOptions) {
		o.loader = l
	}
}

// WithProxy overrides the document's proxy prefix.
func WithProxy(p media.ProxyFunc) RenderOption {
	return func(o *renderOptions) {
		o.proxy = p
	}
}

// WithFontRegistry registers the document fonts in r instead of
// surface.DefaultFontRegistry().
func WithFontRegistry(r *surface.FontRegistry) RenderOption {
	return func(o *renderOptions) {
		o.fonts = r
	}
}

// WithLocation formats time elements in loc instead of time.Local.
func WithLocation(loc *time.Location) RenderOption {
	return func(o *renderOptions) {
		o.loc = loc
	}
}

// Render draws doc onto s in element order.
//
// Each image element is drawn before the next element starts, so the
// document order is the paint order. Failed image loads are logged and
// leave their element blank. The digit glyph table is loaded once, on the
// first digits element.
//
// Render returns an error for bad fonts and when ctx ends.
func Render(ctx context.Context, doc *Document, s surface.Surface, opts ...RenderOption) error {
	o := renderOptions{fonts: surface.DefaultFontRegistry()}
	for _, opt := range opts {
		opt(&o)
	}
	if o.proxy == nil {
		o.proxy = media.Identity
		if doc.Proxy != "" {
			o.proxy = media.Proxy(doc.Proxy)
		}
	}
	if o.loader == nil {
		o.loader = media.NewLoader()
	}

	if err := doc.registerFonts(o.fonts); err != nil {
		return err
	}

	r := &renderer{
		doc:  doc,
		s:    s,
		opts: o,
		img:  media.NewRenderer(s, o.loader, o.proxy),
	}
	return r.render(ctx)
}

func (d *Document) registerFonts(reg *surface.FontRegistry) error {
	for _, f := range d.Fonts {
		path := f.Path
		if !filepath.IsAbs(path) && d.dir != "" {
			path = filepath.Join(d.dir, path)
		}
		if err := reg.RegisterFile(f.Family, f.Bold, path); err != nil {
			return fmt.Errorf("poster: %w", err)
		}
	}
	return nil
}

type renderer struct {
	doc  *Document
	s    surface.Surface
	opts renderOptions
	img  *media.Renderer

	glyphs       glyph.Table
	glyphsLoaded bool
}

func (r *renderer) render(ctx context.Context) error {
	start := time.Now()
	r.background()

	for i := range r.doc.Elements {
		if err := ctx.Err(); err != nil {
			return err
		}
		el := &r.doc.Elements[i]
		if err := r.element(ctx, el); err != nil {
			return fmt.Errorf("poster: element %d (%s): %w", i, el.Kind, err)
		}
	}

	cardkit.Logger().Debug("poster: rendered",
		"elements", len(r.doc.Elements),
		"elapsed", time.Since(start))
	return nil
}

func (r *renderer) background() {
	if r.doc.Background == "" {
		return
	}
	p, err := surface.ParsePaint(r.doc.Background)
	if err != nil {
		cardkit.Logger().Warn("poster: bad background", "color", r.doc.Background, "err", err)
		return
	}

	defer surface.Scoped(r.s)()
	w, h := float64(r.doc.Width), float64(r.doc.Height)
	r.s.BeginPath()
	r.s.MoveTo(0, 0)
	r.s.LineTo(w, 0)
	r.s.LineTo(w, h)
	r.s.LineTo(0, h)
	r.s.ClosePath()
	r.s.SetFillStyle(p)
	r.s.Fill()
}

func (r *renderer) element(ctx context.Context, el *Element) error {
	switch el.Kind {
	case KindRect:
		defer surface.Scoped(r.s)()
		r.s.BeginPath()
		shape.RoundedPath(r.s, el.ShapeStyle())
		r.s.ClosePath()
	case KindBubble:
		defer surface.Scoped(r.s)()
		r.s.BeginPath()
		if !shape.BubblePath(r.s, el.ShapeStyle()) {
			cardkit.Logger().Warn("poster: bubble needs a uniform radius", "radius", el.Radius)
		}
	case KindText:
		layout.Draw(r.s, el.Text, el.TextStyle())
	case KindLabel:
		layout.DrawLabel(r.s, el.Text, el.TextStyle())
	case KindSpaced:
		layout.DrawSpaced(r.s, el.Text, el.TextStyle(), el.Spacing)
	case KindTime:
		ts, err := r.timestamp(el)
		if err != nil {
			return err
		}
		layout.DrawLabel(r.s, ts.String(), el.TextStyle())
	case KindImage:
		return r.image(ctx, el)
	case KindDigits:
		table, err := r.glyphTable(ctx)
		if err != nil {
			return err
		}
		glyph.Draw(r.s, el.Value, el.GlyphBox(), table)
	default:
		return ErrUnknownKind
	}
	return nil
}

func (r *renderer) image(ctx context.Context, el *Element) error {
	url := el.URL
	if el.CDN {
		url = media.RewriteKnownCDN(url)
	}
	r.img.DrawClippedImage(ctx, url, el.ImageStyle(), nil)

	err := r.img.Wait(ctx)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if err != nil {
		cardkit.Logger().Warn("poster: image skipped", "err", err)
	}
	return nil
}

// glyphTable loads the digit table on first use. A failed load is logged
// once and leaves every digits element blank.
func (r *renderer) glyphTable(ctx context.Context) (glyph.Table, error) {
	if r.glyphsLoaded {
		return r.glyphs, nil
	}
	table, err := glyph.LoadTable(ctx, r.opts.loader, r.doc.Glyphs, r.opts.proxy)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if err != nil {
		cardkit.Logger().Warn("poster: glyph table unavailable", "err", err)
	}
	r.glyphs, r.glyphsLoaded = table, true
	return table, nil
}

func (r *renderer) timestamp(el *Element) (layout.Timestamp, error) {
	loc := r.opts.loc
	if loc == nil {
		loc = time.Local
	}
	if el.Time == "" {
		return layout.FormatUnixMilli(el.UnixMilli, el.Separator, loc), nil
	}
	t, err := time.Parse(time.RFC3339, el.Time)
	if err != nil {
		return layout.Timestamp{}, fmt.Errorf("bad time: %w", err)
	}
	return layout.FormatTimestamp(t.In(loc), el.Separator), nil
}
