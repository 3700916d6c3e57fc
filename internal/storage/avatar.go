// internal/storage/avatar.go
package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/konnethq/konnet/internal/config"
)

// Asset is a stored binary object: a public URL for clients and a key the
// store can delete by.
type Asset struct {
	URL string
	Key string
}

// AvatarStore accepts an image stream and returns its public asset. The
// core only records the returned URL and key on the principal.
type AvatarStore interface {
	Upload(ctx context.Context, r io.Reader, size int64, contentType string) (*Asset, error)
	Remove(ctx context.Context, key string) error
}

// MinioStore keeps avatars in an S3-compatible bucket.
type MinioStore struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

func NewMinioStore(cfg *config.Config) (*MinioStore, error) {
	client, err := minio.New(cfg.Storage.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
		Secure: cfg.Storage.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to object storage: %w", err)
	}

	publicURL := cfg.Storage.PublicURL
	if publicURL == "" {
		scheme := "http"
		if cfg.Storage.UseSSL {
			scheme = "https"
		}
		publicURL = fmt.Sprintf("%s://%s", scheme, cfg.Storage.Endpoint)
	}

	return &MinioStore{
		client:    client,
		bucket:    cfg.Storage.Bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
	}, nil
}

func (s *MinioStore) Upload(ctx context.Context, r io.Reader, size int64, contentType string) (*Asset, error) {
	key := "avatars/" + uuid.NewString()

	_, err := s.client.PutObject(ctx, s.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("uploading avatar: %w", err)
	}

	return &Asset{
		URL: fmt.Sprintf("%s/%s/%s", s.publicURL, s.bucket, key),
		Key: key,
	}, nil
}

func (s *MinioStore) Remove(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("removing avatar: %w", err)
	}
	return nil
}
