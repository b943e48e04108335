// Package media loads images and draws them onto card surfaces.
//
// URLs pass through a ProxyFunc before loading, so that cross-origin
// assets can be routed through an image proxy API:
//
//	proxy := media.Proxy("https://api.example.com/image-proxy?url=")
//	proxy("https://cdn.example.com/a.png")
//	// https://api.example.com/image-proxy?url=https%3A%2F%2Fcdn.example.com%2Fa.png
//
// A Loader fetches and decodes images asynchronously, returning a Future.
// Loads are cancellable, time out, are cached by URL, and concurrent loads
// of one URL share a single fetch.
//
// A Renderer binds a surface, a loader and a proxy. Its draws start loads
// immediately but touch the surface only from Renderer.Wait, on the caller's
// goroutine, so surfaces never need locking:
//
//	r := media.NewRenderer(cv, loader, proxy)
//	r.DrawClippedImage(ctx, avatarURL, media.ImageStyle{...}, nil)
//	r.DrawImage(ctx, coverURL, media.ImageStyle{...}, nil)
//	if err := r.Wait(ctx); err != nil {
//	    return err
//	}
package media
