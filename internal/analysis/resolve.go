package analysis

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path"
	"strings"
	"time"
)

const (
	defaultMIMEType     = "image/jpeg"
	defaultFetchTimeout = 30 * time.Second
	maxImageBytes       = 20 << 20 // cap on fetched image size
)

// ImageResolver turns an image reference into raw bytes plus a MIME type.
// References are storage keys, local filesystem paths, or http(s) URLs.
type ImageResolver interface {
	Resolve(ctx context.Context, imageRef string) (data []byte, mimeType string, err error)
}

// ObjectOpener reads stored objects by storage key. The object store
// implements this, so the driver resolves images without going through
// their public URLs.
type ObjectOpener interface {
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
}

// Resolver fetches remote references over HTTP and reads the rest through
// the object store when one is configured, or straight from disk otherwise.
type Resolver struct {
	HTTPClient *http.Client
	Store      ObjectOpener
}

// NewResolver constructs a Resolver with a bounded fetch timeout.
func NewResolver() *Resolver {
	return &Resolver{
		HTTPClient: &http.Client{Timeout: defaultFetchTimeout},
	}
}

// Resolve reads the image bytes behind imageRef. For URLs the MIME type comes
// from the response Content-Type when present; for storage keys and local
// paths it is inferred from the extension. All fall back to image/jpeg.
func (r *Resolver) Resolve(ctx context.Context, imageRef string) ([]byte, string, error) {
	if strings.HasPrefix(imageRef, "http://") || strings.HasPrefix(imageRef, "https://") {
		return r.fetchRemote(ctx, imageRef)
	}
	if r.Store != nil {
		return r.readStored(ctx, imageRef)
	}
	return readLocal(imageRef)
}

func (r *Resolver) readStored(ctx context.Context, storageKey string) ([]byte, string, error) {
	rc, err := r.Store.Open(ctx, storageKey)
	if err != nil {
		return nil, "", fmt.Errorf("open stored image: %w", err)
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, maxImageBytes))
	if err != nil {
		return nil, "", fmt.Errorf("read stored image: %w", err)
	}
	return data, mimeFromExtension(storageKey), nil
}

func (r *Resolver) fetchRemote(ctx context.Context, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("build image request: %w", err)
	}

	client := r.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: defaultFetchTimeout}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("fetch image: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, "", fmt.Errorf("read image body: %w", err)
	}

	mimeType := mimeFromContentType(resp.Header.Get("Content-Type"))
	if mimeType == "" {
		mimeType = mimeFromExtension(url)
	}
	return data, mimeType, nil
}

func readLocal(imagePath string) ([]byte, string, error) {
	data, err := os.ReadFile(imagePath)
	if err != nil {
		return nil, "", fmt.Errorf("read image file: %w", err)
	}
	return data, mimeFromExtension(imagePath), nil
}

func mimeFromContentType(header string) string {
	if strings.TrimSpace(header) == "" {
		return ""
	}
	mediaType, _, err := mime.ParseMediaType(header)
	if err != nil || !strings.HasPrefix(mediaType, "image/") {
		return ""
	}
	return mediaType
}

func mimeFromExtension(ref string) string {
	switch strings.ToLower(path.Ext(ref)) {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	default:
		return defaultMIMEType
	}
}
