package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"cloupeer.io/fleetcard/pkg/log"
	"cloupeer.io/fleetcard/pkg/options"
)

const cardContentType = "application/yaml"

type minioProvider struct {
	client     *minio.Client
	bucketName string
	region     string
	prefix     string
}

// NewMinIOProvider returns a Provider backed by an S3-compatible endpoint.
func NewMinIOProvider(opts *options.S3Options) (Provider, error) {
	client, err := minio.New(opts.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(opts.AccessKeyID, opts.SecretAccessKey, ""),
		Secure: opts.UseSSL,
		Region: opts.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	return &minioProvider{
		client:     client,
		bucketName: opts.BucketName,
		region:     opts.Region,
		prefix:     opts.Prefix,
	}, nil
}

func (p *minioProvider) CheckBucket(ctx context.Context) error {
	exists, err := p.client.BucketExists(ctx, p.bucketName)
	if err != nil {
		return fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if exists {
		return nil
	}

	log.Info("Bucket does not exist, creating...", "bucket", p.bucketName)
	if err := p.client.MakeBucket(ctx, p.bucketName, minio.MakeBucketOptions{Region: p.region}); err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

func (p *minioProvider) Upload(ctx context.Context, key string, data []byte) (string, error) {
	objectKey := ObjectKey(p.prefix, key)

	info, err := p.client.PutObject(ctx, p.bucketName, objectKey, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: cardContentType})
	if err != nil {
		return "", fmt.Errorf("failed to upload %s: %w", objectKey, err)
	}

	log.Debug("Uploaded card", "bucket", info.Bucket, "key", info.Key, "etag", info.ETag, "size", info.Size)
	return fmt.Sprintf("s3://%s/%s", p.bucketName, objectKey), nil
}

// ObjectKey joins prefix and name into a slash-separated object key.
func ObjectKey(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return path.Join(prefix, name)
}
