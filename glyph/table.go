package glyph

import (
	"context"
	"fmt"
	"image"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/gogpu/cardkit/media"
)

// Table holds one image per glyph index. Entries may be nil.
type Table []image.Image

// At returns the image for index i, or nil.
func (t Table) At(i int) image.Image {
	if i < 0 || i >= len(t) {
		return nil
	}
	return t[i]
}

// PartialError reports a table load that stopped at the first failure.
type PartialError struct {
	Loaded int
	Total  int
	Err    error
}

// Error implements the error interface.
func (e *PartialError) Error() string {
	return fmt.Sprintf("glyph: loaded %d of %d images: %v", e.Loaded, e.Total, e.Err)
}

// Unwrap returns the first load error.
func (e *PartialError) Unwrap() error {
	return e.Err
}

// LoadTable loads one image per URL through proxy and returns them in URL
// order once all have loaded. An empty urls loads DefaultURLs; a nil proxy
// leaves URLs unchanged.
//
// The first failure cancels the remaining loads and returns a
// *PartialError.
func LoadTable(ctx context.Context, loader *media.Loader, urls []string, proxy media.ProxyFunc) (Table, error) {
	if len(urls) == 0 {
		urls = DefaultURLs
	}
	if proxy == nil {
		proxy = media.Identity
	}
	if loader == nil {
		loader = media.NewLoader()
	}

	table := make(Table, len(urls))
	var loaded atomic.Int32

	g, gctx := errgroup.WithContext(ctx)
	for i, url := range urls {
		g.Go(func() error {
			f := loader.Load(gctx, proxy(url))
			img, err := f.Wait(gctx)
			if err != nil {
				f.Cancel()
				return err
			}
			table[i] = img
			loaded.Add(1)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, &PartialError{Loaded: int(loaded.Load()), Total: len(urls), Err: err}
	}
	return table, nil
}

// LoadTableAsync runs LoadTable in the background and calls onReady exactly
// once with its result.
func LoadTableAsync(ctx context.Context, loader *media.Loader, urls []string, proxy media.ProxyFunc, onReady func(Table, error)) {
	go func() {
		onReady(LoadTable(ctx, loader, urls, proxy))
	}()
}
