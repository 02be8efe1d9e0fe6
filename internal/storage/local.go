package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// LocalStore keeps uploads in a single directory on disk
type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) *LocalStore {
	return &LocalStore{dir: dir}
}

// Dir returns the directory backing the store
func (s *LocalStore) Dir() string {
	return s.dir
}

func (s *LocalStore) Save(ctx context.Context, name string, r io.Reader, contentType string) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create upload dir: %w", err)
	}

	f, err := os.OpenFile(s.Location(name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", name, err)
	}
	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(s.Location(name))
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return f.Close()
}

// List returns the regular files in the directory. A missing directory is an empty store.
// Uploads are written once, so the modification time is the creation time.
func (s *LocalStore) List(ctx context.Context) ([]File, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read upload dir: %w", err)
	}

	files := make([]File, 0, len(entries))
	for _, e := range entries {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if !e.Type().IsRegular() {
			continue
		}
		info, err := e.Info()
		if err != nil {
			// removed between ReadDir and Info
			continue
		}
		files = append(files, File{
			Name:      e.Name(),
			Size:      info.Size(),
			CreatedAt: info.ModTime(),
		})
	}
	return files, nil
}

func (s *LocalStore) Delete(ctx context.Context, name string) error {
	if err := os.Remove(s.Location(name)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrNotExist
		}
		return fmt.Errorf("failed to delete %s: %w", name, err)
	}
	return nil
}

func (s *LocalStore) Location(name string) string {
	return filepath.Join(s.dir, name)
}
