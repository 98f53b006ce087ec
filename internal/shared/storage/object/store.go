package object

import (
	"context"
	"io"
)

// ObjectStore defines the contract for saving, retrieving, and deleting
// binary objects. Outfit images live here; the database keeps only the
// storage key and public URL.
type ObjectStore interface {
	Save(ctx context.Context, userID string, fileName string, r io.Reader) (storageKey string, sizeBytes int64, mimeType string, err error)
	Open(ctx context.Context, storageKey string) (io.ReadCloser, error)
	Delete(ctx context.Context, storageKey string) error
}
