package artwork

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"  // GIF decoder
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"io"
	"net/http"
	"path"
	"strings"

	"fyne.io/fyne/v2"
	_ "golang.org/x/image/webp" // WebP decoder
)

// MaxImageBytes caps the size of a downloaded image
const MaxImageBytes = 4 << 20

// HTTPFetcher downloads artwork over HTTP(S)
type HTTPFetcher struct {
	client *http.Client
}

// NewHTTPFetcher creates a fetcher using the default HTTP client. Timeouts
// come from the request context.
func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{client: http.DefaultClient}
}

// Fetch downloads url and wraps the body in a static resource. Bodies that
// no registered image decoder recognises are rejected.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (fyne.Resource, error) {
	if strings.TrimSpace(url) == "" {
		return nil, ErrEmptyURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch %s: %s", url, resp.Status)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "image/") {
		return nil, fmt.Errorf("unexpected content type %q for %s", ct, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", url, err)
	}
	if len(body) > MaxImageBytes {
		return nil, fmt.Errorf("image %s exceeds %d bytes", url, MaxImageBytes)
	}
	if _, _, err := image.DecodeConfig(bytes.NewReader(body)); err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", url, err)
	}

	name := path.Base(req.URL.Path)
	if name == "" || name == "/" || name == "." {
		name = "artwork"
	}
	return fyne.NewStaticResource(name, body), nil
}
