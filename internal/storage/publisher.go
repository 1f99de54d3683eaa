package storage

import (
	"context"

	"go.uber.org/zap"
)

// Publisher implements check-then-upload-or-skip publishing against the
// object store. Keys are content-addressed by name, so an existing object is
// treated as a cache hit: nothing is rendered and nothing is uploaded.
type Publisher struct {
	client Client
	log    *zap.Logger
}

// NewPublisher creates a publisher on top of a storage client.
func NewPublisher(client Client, log *zap.Logger) *Publisher {
	return &Publisher{client: client, log: log}
}

// Publish stores the artifact produced by render under key, unless the key
// already exists. The render callback only runs on a cache miss. Returns the
// public URL for the object and whether this was a cache hit.
func (p *Publisher) Publish(ctx context.Context, key string, render func() ([]byte, error)) (string, bool, error) {
	exists, err := p.client.FileExists(ctx, key)
	if err != nil {
		return "", false, err
	}
	if exists {
		url := p.client.PublicURL(key)
		p.log.Info("found existing object, no need to generate a new chart",
			zap.String("key", key),
			zap.String("url", url))
		return url, true, nil
	}

	data, err := render()
	if err != nil {
		return "", false, err
	}

	if err := p.client.StoreFile(ctx, key, data); err != nil {
		return "", false, err
	}

	url := p.client.PublicURL(key)
	p.log.Info("chart published", zap.String("key", key), zap.String("url", url))
	return url, false, nil
}
