package storage

import (
	"context"
)

// Provider uploads generated cards to a remote bucket.
type Provider interface {
	// Upload stores data under key and returns its location (s3://bucket/key).
	Upload(ctx context.Context, key string, data []byte) (string, error)

	// CheckBucket ensures the bucket exists, creating it if necessary.
	CheckBucket(ctx context.Context) error
}
