package blob

import "context"

// Store defines the blob storage operations interface following hexagonal
// architecture. This is a port that can be implemented by different storage
// providers (local disk, S3, etc.).
type Store interface {
	// Write stores content under the given key and returns a reference
	// (a URL path) usable to retrieve it later.
	Write(ctx context.Context, key string, content []byte) (string, error)
}
