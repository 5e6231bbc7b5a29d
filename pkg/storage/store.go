// Package storage defines the durable artifact store used for generated media.
package storage

import (
	"context"
	"io"
)

// ArtifactStore persists generated media and returns a stable public URL.
type ArtifactStore interface {
	// Put stores the content under key.
	Put(ctx context.Context, key string, contentType string, content io.Reader) (string, error)
	// PutFromURL copies a transient upstream URL into durable storage.
	PutFromURL(ctx context.Context, key string, sourceURL string) (string, error)
	// Delete removes a stored object; a missing object is not an error.
	Delete(ctx context.Context, key string) error
}
