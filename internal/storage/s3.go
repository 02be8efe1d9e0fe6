package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"study-team-api/internal/client"
)

// S3Store keeps uploads under a key prefix of an S3 (or MinIO) bucket
type S3Store struct {
	client client.S3ClientInterface
	prefix string
}

func NewS3Store(s3Client client.S3ClientInterface, prefix string) *S3Store {
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &S3Store{client: s3Client, prefix: prefix}
}

func (s *S3Store) Save(ctx context.Context, name string, r io.Reader, contentType string) error {
	return s.client.UploadFile(ctx, s.prefix+name, r, contentType)
}

func (s *S3Store) List(ctx context.Context) ([]File, error) {
	objects, err := s.client.ListFiles(ctx, s.prefix)
	if err != nil {
		return nil, err
	}

	files := make([]File, 0, len(objects))
	for _, o := range objects {
		name := strings.TrimPrefix(o.Key, s.prefix)
		if name == "" || strings.Contains(name, "/") {
			continue
		}
		files = append(files, File{Name: name, Size: o.Size, CreatedAt: o.LastModified})
	}
	return files, nil
}

// Delete removes the object. S3 deletes are idempotent, so existence is checked first to report
// ErrNotExist for objects another sweep already removed.
func (s *S3Store) Delete(ctx context.Context, name string) error {
	key := s.prefix + name
	exists, err := s.client.FileExists(ctx, key)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotExist
	}
	if err := s.client.DeleteFile(ctx, key); err != nil {
		return fmt.Errorf("failed to delete %s: %w", name, err)
	}
	return nil
}

func (s *S3Store) Location(name string) string {
	return s.client.Bucket() + "/" + s.prefix + name
}
