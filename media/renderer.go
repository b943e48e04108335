package media

import (
	"context"
	"errors"
	"image"
	"image/color"
	"sync"

	"github.com/gogpu/cardkit"
	"github.com/gogpu/cardkit/shape"
	"github.com/gogpu/cardkit/surface"
)

// ImageStyle places an image on a card.
type ImageStyle struct {
	// Destination box. Images are scaled to fill it exactly.
	Left, Top     float64
	Width, Height float64

	// Clip restricts the draw to ClipShape when it has a nonzero radius.
	Clip      bool
	ClipShape shape.Style

	// PaintClipShape also strokes and fills the clip shape with its paints
	// before the image is drawn inside it.
	PaintClipShape bool
}

func (st ImageStyle) clips() bool {
	return st.Clip && !st.ClipShape.Radius.IsZero()
}

// placeholderPaint fills the box of a draw with no URL.
var placeholderPaint = surface.Solid{Color: color.White}

// Renderer draws proxied images onto a surface.
//
// Draw calls start loads right away but queue the drawing itself; Wait runs
// the queued work on the calling goroutine in completion order. A Renderer
// is not safe for concurrent use; its methods must be called from the
// goroutine that owns the surface.
type Renderer struct {
	s      surface.Surface
	loader *Loader
	proxy  ProxyFunc

	mu     sync.Mutex
	ready  []func()
	signal chan struct{}

	// Owned by the calling goroutine.
	pending  int
	inflight map[*Future]struct{}
	errs     []error
}

// NewRenderer creates a renderer. A nil loader gets NewLoader() and a nil
// proxy gets Identity.
func NewRenderer(s surface.Surface, loader *Loader, proxy ProxyFunc) *Renderer {
	if loader == nil {
		loader = NewLoader()
	}
	if proxy == nil {
		proxy = Identity
	}
	return &Renderer{
		s:        s,
		loader:   loader,
		proxy:    proxy,
		signal:   make(chan struct{}, 1),
		inflight: make(map[*Future]struct{}),
	}
}

// Surface returns the surface the renderer draws on.
func (r *Renderer) Surface() surface.Surface { return r.s }

// Pending returns the number of draws waiting for their image.
func (r *Renderer) Pending() int { return r.pending }

// DrawImage draws the image at url into the style's box.
//
// An empty url draws a white placeholder box immediately and calls onDone
// with nil. Otherwise the proxied URL is loaded and, from Wait, the image is
// drawn and onDone is called with nil, or onDone gets the load error and
// nothing is drawn. onDone may be nil.
func (r *Renderer) DrawImage(ctx context.Context, url string, st ImageStyle, onDone func(error)) {
	r.draw(ctx, url, onDone, func(img image.Image) {
		r.paint(img, st)
	})
}

// DrawClippedImage is DrawImage inside the style's clip shape.
//
// When the image is ready the drawing state is saved, the clip shape is
// traced and clipped (if Clip is set and the radius is nonzero), the image or
// placeholder is drawn and the state is restored.
func (r *Renderer) DrawClippedImage(ctx context.Context, url string, st ImageStyle, onDone func(error)) {
	r.draw(ctx, url, onDone, func(img image.Image) {
		defer surface.Scoped(r.s)()
		if st.clips() {
			r.s.BeginPath()
			if st.PaintClipShape {
				shape.RoundedPath(r.s, st.ClipShape)
			} else {
				shape.TracePath(r.s, st.ClipShape)
			}
			r.s.ClosePath()
			r.s.Clip()
		}
		r.paint(img, st)
	})
}

func (r *Renderer) draw(ctx context.Context, url string, onDone func(error), paint func(image.Image)) {
	done := func(err error) {
		if onDone != nil {
			onDone(err)
		}
	}

	if url != "" {
		url = r.proxy(url)
	}
	if url == "" {
		paint(nil)
		done(nil)
		return
	}

	f := r.loader.Load(ctx, url)
	r.pending++
	r.inflight[f] = struct{}{}
	go func() {
		<-f.Done()
		r.enqueue(func() {
			delete(r.inflight, f)
			img, err := f.Result()
			if err != nil {
				cardkit.Logger().Warn("media: image draw skipped", "err", err)
				r.errs = append(r.errs, err)
				done(err)
				return
			}
			paint(img)
			done(nil)
		})
	}()
}

// paint draws img, or the placeholder when img is nil, into the box.
func (r *Renderer) paint(img image.Image, st ImageStyle) {
	if img != nil {
		r.s.DrawImage(img, st.Left, st.Top, st.Width, st.Height)
		return
	}

	defer surface.Scoped(r.s)()
	r.s.BeginPath()
	r.s.MoveTo(st.Left, st.Top)
	r.s.LineTo(st.Left+st.Width, st.Top)
	r.s.LineTo(st.Left+st.Width, st.Top+st.Height)
	r.s.LineTo(st.Left, st.Top+st.Height)
	r.s.ClosePath()
	r.s.SetFillStyle(placeholderPaint)
	r.s.Fill()
}

func (r *Renderer) enqueue(fn func()) {
	r.mu.Lock()
	r.ready = append(r.ready, fn)
	r.mu.Unlock()

	select {
	case r.signal <- struct{}{}:
	default:
	}
}

func (r *Renderer) take() []func() {
	r.mu.Lock()
	defer r.mu.Unlock()
	fns := r.ready
	r.ready = nil
	return fns
}

// Wait runs queued draws until none are pending, including draws started by
// onDone callbacks. It returns the load errors seen since the last Wait,
// joined.
//
// When ctx is done first, the outstanding loads are cancelled; their
// callbacks still run (with the cancellation error) before Wait returns.
func (r *Renderer) Wait(ctx context.Context) error {
	var ctxErr error
	done := ctx.Done()

	for r.pending > 0 {
		fns := r.take()
		for _, fn := range fns {
			r.pending--
			fn()
		}
		if ctxErr != nil {
			// Callbacks may have started more loads.
			r.cancelInflight()
		}
		if len(fns) > 0 || r.pending == 0 {
			continue
		}

		select {
		case <-r.signal:
		case <-done:
			ctxErr = ctx.Err()
			done = nil
			r.cancelInflight()
		}
	}

	errs := r.errs
	r.errs = nil
	if ctxErr != nil {
		return ctxErr
	}
	return errors.Join(errs...)
}

func (r *Renderer) cancelInflight() {
	for f := range r.inflight {
		f.Cancel()
	}
}
