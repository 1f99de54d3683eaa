package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"cloud.google.com/go/storage"
	"go.uber.org/zap"
	"google.golang.org/api/iterator"
)

// GCSClient handles Google Cloud Storage operations
type GCSClient struct {
	client *storage.Client
	bucket string
	log    *zap.Logger
}

// NewGCSClient creates a new GCS client
func NewGCSClient(ctx context.Context, bucketName string, log *zap.Logger) (*GCSClient, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}

	return &GCSClient{
		client: client,
		bucket: bucketName,
		log:    log,
	}, nil
}

// Close closes the GCS client
func (g *GCSClient) Close() error {
	return g.client.Close()
}

// StoreFile uploads an object under the given key.
func (g *GCSClient) StoreFile(ctx context.Context, key string, data []byte) error {
	g.log.Info("storing file to GCS",
		zap.String("bucket", g.bucket),
		zap.String("key", key),
		zap.Int("bytes", len(data)))

	obj := g.client.Bucket(g.bucket).Object(key)

	writer := obj.NewWriter(ctx)
	writer.ContentType = GetContentType(key)
	writer.CacheControl = "public, max-age=3600"
	writer.Metadata = map[string]string{
		"generated-at": time.Now().UTC().Format(time.RFC3339),
	}

	if _, err := writer.Write(data); err != nil {
		writer.Close()
		return fmt.Errorf("failed to write object %s: %w", key, err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize upload of %s: %w", key, err)
	}

	return nil
}

// GetFile retrieves an object by key.
func (g *GCSClient) GetFile(ctx context.Context, key string) ([]byte, error) {
	obj := g.client.Bucket(g.bucket).Object(key)

	reader, err := obj.NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create reader for object %s: %w", key, err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read object %s: %w", key, err)
	}

	return data, nil
}

// FileExists reports whether an object with that exact key is present.
func (g *GCSClient) FileExists(ctx context.Context, key string) (bool, error) {
	_, err := g.client.Bucket(g.bucket).Object(key).Attrs(ctx)
	if err == storage.ErrObjectNotExist {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to stat object %s: %w", key, err)
	}
	return true, nil
}

// List lists object keys with the given prefix, up to limit.
func (g *GCSClient) List(ctx context.Context, prefix string, limit int) ([]string, error) {
	it := g.client.Bucket(g.bucket).Objects(ctx, &storage.Query{Prefix: prefix})

	var keys []string
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", err)
		}
		keys = append(keys, attrs.Name)
		if limit > 0 && len(keys) >= limit {
			break
		}
	}

	return keys, nil
}

// PublicURL returns the well-known public URL for an object in the bucket.
func (g *GCSClient) PublicURL(key string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", g.bucket, key)
}
