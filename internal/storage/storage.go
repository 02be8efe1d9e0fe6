// Package storage holds the backends that keep uploaded images: a local directory or an S3 prefix.
package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrNotExist is returned when the named object is not in the store
var ErrNotExist = errors.New("storage: object does not exist")

// File describes a stored upload
type File struct {
	Name      string
	Size      int64
	CreatedAt time.Time
}

// Store keeps uploaded files addressed by a flat name
type Store interface {
	Save(ctx context.Context, name string, r io.Reader, contentType string) error
	List(ctx context.Context) ([]File, error)
	Delete(ctx context.Context, name string) error
	Location(name string) string
}
