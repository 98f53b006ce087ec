package analysis

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

type stubOpener struct {
	objects map[string][]byte
}

func (o stubOpener) Open(ctx context.Context, storageKey string) (io.ReadCloser, error) {
	data, ok := o.objects[storageKey]
	if !ok {
		return nil, fmt.Errorf("no such object %q", storageKey)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func TestResolveLocalFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "look.png")
	if err := os.WriteFile(path, []byte("png bytes"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	data, mimeType, err := NewResolver().Resolve(context.Background(), path)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if string(data) != "png bytes" {
		t.Fatalf("data = %q", data)
	}
	if mimeType != "image/png" {
		t.Fatalf("mimeType = %q, want image/png", mimeType)
	}
}

func TestResolveLocalMissing(t *testing.T) {
	_, _, err := NewResolver().Resolve(context.Background(), filepath.Join(t.TempDir(), "gone.jpg"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestResolveStoredObject(t *testing.T) {
	resolver := NewResolver()
	resolver.Store = stubOpener{objects: map[string][]byte{
		"users/abc/look.webp": []byte("webp bytes"),
	}}

	data, mimeType, err := resolver.Resolve(context.Background(), "users/abc/look.webp")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if string(data) != "webp bytes" {
		t.Fatalf("data = %q", data)
	}
	if mimeType != "image/webp" {
		t.Fatalf("mimeType = %q, want image/webp", mimeType)
	}
}

func TestResolveStoredObjectMissing(t *testing.T) {
	resolver := NewResolver()
	resolver.Store = stubOpener{}

	if _, _, err := resolver.Resolve(context.Background(), "users/abc/gone.jpg"); err == nil {
		t.Fatal("expected error for missing object")
	}
}

func TestResolveRemoteBypassesStore(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write([]byte("jpeg bytes"))
	}))
	t.Cleanup(srv.Close)

	resolver := NewResolver()
	resolver.Store = stubOpener{}

	data, _, err := resolver.Resolve(context.Background(), srv.URL+"/img.jpg")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if string(data) != "jpeg bytes" {
		t.Fatalf("data = %q", data)
	}
}

func TestResolveRemote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/webp")
		_, _ = w.Write([]byte("webp bytes"))
	}))
	t.Cleanup(srv.Close)

	data, mimeType, err := NewResolver().Resolve(context.Background(), srv.URL+"/img")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if string(data) != "webp bytes" {
		t.Fatalf("data = %q", data)
	}
	if mimeType != "image/webp" {
		t.Fatalf("mimeType = %q, want image/webp", mimeType)
	}
}

func TestResolveRemoteBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	t.Cleanup(srv.Close)

	if _, _, err := NewResolver().Resolve(context.Background(), srv.URL+"/img.jpg"); err == nil {
		t.Fatal("expected error for 404 response")
	}
}

func TestResolveRemoteFallsBackToExtension(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/octet-stream")
		_, _ = w.Write([]byte("bytes"))
	}))
	t.Cleanup(srv.Close)

	_, mimeType, err := NewResolver().Resolve(context.Background(), srv.URL+"/photo.png")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if mimeType != "image/png" {
		t.Fatalf("mimeType = %q, want image/png", mimeType)
	}
}
