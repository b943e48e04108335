package media

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	// Extra decoders next to the standard png, jpeg and gif.
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/disintegration/imaging"
	"golang.org/x/sync/singleflight"

	"github.com/gogpu/cardkit"
	"github.com/gogpu/cardkit/cache"
)

// DefaultTimeout bounds a single image load.
const DefaultTimeout = 15 * time.Second

// Loader errors.
var (
	// ErrEmptyURL is returned for loads of "".
	ErrEmptyURL = errors.New("media: empty image url")

	// ErrUnsupportedSource is returned for URLs the loader cannot read,
	// such as non-base64 data URIs.
	ErrUnsupportedSource = errors.New("media: unsupported image source")
)

// LoadError reports a failed image load.
type LoadError struct {
	URL string
	Err error
}

// Error implements the error interface.
func (e *LoadError) Error() string {
	return fmt.Sprintf("media: load %s: %v", shortURL(e.URL), e.Err)
}

// Unwrap returns the cause.
func (e *LoadError) Unwrap() error {
	return e.Err
}

// shortURL keeps data URIs out of error messages.
func shortURL(url string) string {
	const limit = 64
	if len(url) <= limit {
		return fmt.Sprintf("%q", url)
	}
	return fmt.Sprintf("%q...", url[:limit])
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithFetcher sets the fetcher used for http and https URLs.
func WithFetcher(f Fetcher) LoaderOption {
	return func(l *Loader) {
		if f != nil {
			l.fetcher = f
		}
	}
}

// WithHTTPClient fetches http and https URLs with c.
func WithHTTPClient(c *http.Client) LoaderOption {
	return func(l *Loader) {
		l.fetcher = &HTTPFetcher{Client: c}
	}
}

// WithTimeout sets the per-load timeout. Non-positive values keep the default.
func WithTimeout(d time.Duration) LoaderOption {
	return func(l *Loader) {
		if d > 0 {
			l.timeout = d
		}
	}
}

// WithCache enables or disables caching decoded images by URL.
// It is enabled by default.
func WithCache(enabled bool) LoaderOption {
	return func(l *Loader) {
		l.cacheEnabled = enabled
	}
}

// WithCacheSize bounds the image cache to n entries, evicting the least
// recently used. Non-positive values keep cache.DefaultCapacity.
func WithCacheSize(n int) LoaderOption {
	return func(l *Loader) {
		l.cacheSize = n
	}
}

// Loader loads and decodes images asynchronously.
//
// Supported sources are base64 data URIs, http and https URLs (through the
// Fetcher), file:// URLs and plain file paths. PNG, JPEG, GIF, BMP, TIFF and
// WebP are decoded, with JPEG EXIF orientation applied.
//
// Loader is safe for concurrent use.
type Loader struct {
	fetcher      Fetcher
	timeout      time.Duration
	cacheEnabled bool
	cacheSize    int

	cache *cache.LRU[string, image.Image]
	group singleflight.Group
}

// NewLoader creates a loader fetching over HTTP with http.DefaultClient.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		fetcher:      &HTTPFetcher{},
		timeout:      DefaultTimeout,
		cacheEnabled: true,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.cache = cache.New[string, image.Image](l.cacheSize)
	return l
}

// Load starts loading url and returns its future.
//
// Cancelling ctx or the future abandons the wait; the underlying fetch is
// shared with concurrent loads of the same URL and stops at the timeout.
func (l *Loader) Load(ctx context.Context, url string) *Future {
	if url == "" {
		f := newFuture(url, nil)
		f.resolve(nil, &LoadError{URL: url, Err: ErrEmptyURL})
		return f
	}
	if img, ok := l.cached(url); ok {
		f := newFuture(url, nil)
		f.resolve(img, nil)
		return f
	}

	ctx, cancel := context.WithCancel(ctx)
	f := newFuture(url, cancel)
	ch := l.group.DoChan(url, func() (any, error) {
		return l.load(url)
	})

	go func() {
		select {
		case res := <-ch:
			if res.Err != nil {
				f.resolve(nil, &LoadError{URL: url, Err: res.Err})
				return
			}
			f.resolve(res.Val.(image.Image), nil)
		case <-ctx.Done():
			f.resolve(nil, &LoadError{URL: url, Err: ctx.Err()})
		}
	}()
	return f
}

// LoadSync loads url and waits for the result.
func (l *Loader) LoadSync(ctx context.Context, url string) (image.Image, error) {
	return l.Load(ctx, url).Wait(ctx)
}

// Forget drops url from the cache.
func (l *Loader) Forget(url string) {
	l.cache.Delete(url)
}

// CacheLen returns the number of cached images.
func (l *Loader) CacheLen() int {
	return l.cache.Len()
}

// CacheStats returns the image cache counters.
func (l *Loader) CacheStats() cache.Stats {
	return l.cache.Stats()
}

func (l *Loader) cached(url string) (image.Image, bool) {
	if !l.cacheEnabled {
		return nil, false
	}
	return l.cache.Get(url)
}

// load fetches and decodes url. It runs once per URL at a time.
func (l *Loader) load(url string) (image.Image, error) {
	ctx, cancel := context.WithTimeout(context.Background(), l.timeout)
	defer cancel()

	start := time.Now()
	rc, err := l.open(ctx, url)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	img, err := decode(ctx, rc)
	if err != nil {
		return nil, err
	}

	cardkit.Logger().Debug("media: image loaded",
		"url", shortURL(url),
		"size", img.Bounds().Size().String(),
		"elapsed", time.Since(start))

	if l.cacheEnabled && !strings.HasPrefix(url, "data:") {
		l.cache.Set(url, img)
	}
	return img, nil
}

func (l *Loader) open(ctx context.Context, url string) (io.ReadCloser, error) {
	switch {
	case strings.HasPrefix(url, "data:"):
		data, err := decodeDataURI(url)
		if err != nil {
			return nil, err
		}
		return io.NopCloser(bytes.NewReader(data)), nil
	case strings.HasPrefix(url, "http://"), strings.HasPrefix(url, "https://"):
		return l.fetcher.Fetch(ctx, url)
	case strings.HasPrefix(url, "file://"):
		return os.Open(strings.TrimPrefix(url, "file://"))
	case strings.Contains(url, "://"):
		return nil, ErrUnsupportedSource
	}
	return os.Open(url) //nolint:gosec // local paths are caller-provided
}

// decode decodes r, giving up when ctx expires. A blocked reader is
// released by the caller closing it.
func decode(ctx context.Context, r io.Reader) (image.Image, error) {
	type result struct {
		img image.Image
		err error
	}
	ch := make(chan result, 1)
	go func() {
		img, err := imaging.Decode(r, imaging.AutoOrientation(true))
		ch <- result{img, err}
	}()
	select {
	case res := <-ch:
		if res.err != nil {
			return nil, fmt.Errorf("media: decode: %w", res.err)
		}
		return res.img, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// decodeDataURI returns the payload of a base64 data URI.
func decodeDataURI(url string) ([]byte, error) {
	header, payload, ok := strings.Cut(url, ",")
	if !ok || !strings.HasSuffix(header, ";base64") {
		return nil, ErrUnsupportedSource
	}
	payload = strings.TrimRight(payload, "=")
	data, err := base64.RawStdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("media: data uri: %w", err)
	}
	return data, nil
}
