package media

import (
	"context"
	"errors"
	"image"
	"sync"
)

// ErrPending is returned by Future.Result before the load has finished.
var ErrPending = errors.New("media: load pending")

// Future is the pending result of an image load.
type Future struct {
	url string

	done   chan struct{}
	once   sync.Once
	cancel context.CancelFunc

	img image.Image
	err error
}

func newFuture(url string, cancel context.CancelFunc) *Future {
	return &Future{url: url, done: make(chan struct{}), cancel: cancel}
}

// resolve completes the future. Only the first call has an effect.
func (f *Future) resolve(img image.Image, err error) {
	f.once.Do(func() {
		f.img, f.err = img, err
		close(f.done)
		if f.cancel != nil {
			f.cancel()
		}
	})
}

// URL returns the loaded URL.
func (f *Future) URL() string { return f.url }

// Done returns a channel closed when the load has finished.
func (f *Future) Done() <-chan struct{} { return f.done }

// Result returns the loaded image, or ErrPending before Done is closed.
func (f *Future) Result() (image.Image, error) {
	select {
	case <-f.done:
		return f.img, f.err
	default:
		return nil, ErrPending
	}
}

// Wait blocks until the load finishes or ctx is done. A done ctx does not
// cancel the load; use Cancel for that.
func (f *Future) Wait(ctx context.Context) (image.Image, error) {
	select {
	case <-f.done:
		return f.img, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Cancel abandons the load. The future resolves with context.Canceled
// unless it has already finished.
func (f *Future) Cancel() {
	if f.cancel != nil {
		f.cancel()
	}
}
