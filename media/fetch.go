package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrHTTPStatus is wrapped by HTTPFetcher for non-2xx responses.
var ErrHTTPStatus = errors.New("media: unexpected http status")

// Fetcher retrieves the bytes behind an http(s) image URL.
type Fetcher interface {
	// Fetch returns the response body. The caller closes it.
	Fetch(ctx context.Context, url string) (io.ReadCloser, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, url string) (io.ReadCloser, error)

// Fetch implements Fetcher.
func (f FetcherFunc) Fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	return f(ctx, url)
}

// HTTPFetcher fetches images with an http.Client.
type HTTPFetcher struct {
	// Client defaults to http.DefaultClient.
	Client *http.Client

	// UserAgent is sent when non-empty.
	UserAgent string
}

// Fetch implements Fetcher.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("media: new request: %w", err)
	}
	if f.UserAgent != "" {
		req.Header.Set("User-Agent", f.UserAgent)
	}

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_ = resp.Body.Close()
		return nil, fmt.Errorf("%w: %s", ErrHTTPStatus, resp.Status)
	}
	return resp.Body, nil
}
