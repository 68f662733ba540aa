// Package media stores uploaded binary objects such as profile photos.
package media

import (
	"context"
	"fmt"
	"path"

	"github.com/google/uuid"
	"gocloud.dev/blob"

	// Register the bucket schemes used in production and tests.
	_ "gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/memblob"

	apperrors "github.com/socioclub/membership/internal/errors"
)

// Storage writes media objects to a blob bucket. The bucket URL decides the
// backing store (file://, mem://, or any driver registered by the binary).
type Storage struct {
	bucket *blob.Bucket
}

// OpenStorage opens the bucket behind the given URL.
func OpenStorage(ctx context.Context, bucketURL string) (*Storage, error) {
	bucket, err := blob.OpenBucket(ctx, bucketURL)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to open media bucket")
	}
	return &Storage{bucket: bucket}, nil
}

// NewStorage wraps an already-open bucket. Useful for tests.
func NewStorage(bucket *blob.Bucket) *Storage {
	return &Storage{bucket: bucket}
}

// Save writes the object under a fresh key derived from the owner id and the
// original file name, and returns the key.
func (s *Storage) Save(ctx context.Context, ownerID uuid.UUID, filename, contentType string, data []byte) (string, error) {
	key := fmt.Sprintf("profiles/%s/%s%s", ownerID, uuid.Must(uuid.NewV7()), path.Ext(filename))

	opts := &blob.WriterOptions{ContentType: contentType}
	if err := s.bucket.WriteAll(ctx, key, data, opts); err != nil {
		return "", apperrors.Wrap(err, "failed to write media object")
	}
	return key, nil
}

// Delete removes the object stored under key.
func (s *Storage) Delete(ctx context.Context, key string) error {
	if err := s.bucket.Delete(ctx, key); err != nil {
		return apperrors.Wrap(err, "failed to delete media object")
	}
	return nil
}

// Read returns the object stored under key.
func (s *Storage) Read(ctx context.Context, key string) ([]byte, error) {
	data, err := s.bucket.ReadAll(ctx, key)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to read media object")
	}
	return data, nil
}

// Exists reports whether an object is stored under key.
func (s *Storage) Exists(ctx context.Context, key string) (bool, error) {
	exists, err := s.bucket.Exists(ctx, key)
	if err != nil {
		return false, apperrors.Wrap(err, "failed to check media object")
	}
	return exists, nil
}

// Close releases the underlying bucket.
func (s *Storage) Close() error {
	return s.bucket.Close()
}
