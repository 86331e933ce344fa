package storage

import (
	"context"
	"io"
)

// BlobStore persists uploaded photo bytes and maps stored names to the
// URLs handed back to clients.
type BlobStore interface {
	// Save writes the blob under the given name and returns its public URL.
	Save(ctx context.Context, name string, r io.Reader) (string, error)

	// Remove deletes a previously saved blob. Used to roll back partial
	// uploads, so removing a missing blob is not an error.
	Remove(ctx context.Context, name string) error
}
