package storage

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// LocalClient handles local file system storage operations. It backs the
// standalone and local deployment modes, where no bucket is available.
type LocalClient struct {
	baseDir string
}

// NewLocalClient creates a new local storage client rooted at baseDir.
func NewLocalClient(baseDir string) (*LocalClient, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory %s: %w", baseDir, err)
	}

	return &LocalClient{baseDir: baseDir}, nil
}

// Close is a no-op for local storage (implements the same interface as GCSClient).
func (l *LocalClient) Close() error {
	return nil
}

// StoreFile writes an object under the base directory.
func (l *LocalClient) StoreFile(ctx context.Context, key string, data []byte) error {
	path := filepath.Join(l.baseDir, key)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", path, err)
	}

	return nil
}

// GetFile reads an object from under the base directory.
func (l *LocalClient) GetFile(ctx context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(l.baseDir, key))
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", key, err)
	}
	return data, nil
}

// FileExists reports whether the object is present on disk.
func (l *LocalClient) FileExists(ctx context.Context, key string) (bool, error) {
	_, err := os.Stat(filepath.Join(l.baseDir, key))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to stat file %s: %w", key, err)
	}
	return true, nil
}

// List lists stored object keys with the given prefix, up to limit.
func (l *LocalClient) List(ctx context.Context, prefix string, limit int) ([]string, error) {
	var keys []string

	err := filepath.WalkDir(l.baseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip unreadable entries
		}
		if d.IsDir() {
			return nil
		}
		key, err := filepath.Rel(l.baseDir, path)
		if err != nil {
			return nil
		}
		key = filepath.ToSlash(key)
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk storage directory: %w", err)
	}

	sort.Strings(keys)
	if limit > 0 && limit < len(keys) {
		keys = keys[:limit]
	}

	return keys, nil
}

// PublicURL returns a file URL for the stored object.
func (l *LocalClient) PublicURL(key string) string {
	path := filepath.Join(l.baseDir, key)
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return "file://" + filepath.ToSlash(path)
}
