package storage

import (
	"context"
)

// Client defines the interface for the chart object store.
type Client interface {
	// Close closes the storage client
	Close() error

	// StoreFile stores a file under the given object key
	StoreFile(ctx context.Context, key string, data []byte) error

	// GetFile retrieves a file by object key
	GetFile(ctx context.Context, key string) ([]byte, error)

	// FileExists checks if an object with that exact key already exists
	FileExists(ctx context.Context, key string) (bool, error)

	// List lists object keys with the given prefix
	List(ctx context.Context, prefix string, limit int) ([]string, error)

	// PublicURL returns the stable public URL for an object key
	PublicURL(key string) string
}
