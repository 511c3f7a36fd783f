package store

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Store persists generated cards by file name.
type Store interface {
	// Write stores data under name and returns the path it was written to.
	Write(ctx context.Context, name string, data []byte) (string, error)

	// Read returns the content previously written under name.
	Read(ctx context.Context, name string) ([]byte, error)
}

var _ Store = (*FileStore)(nil)

// FileStore keeps cards as flat files in one directory.
type FileStore struct {
	fs  afero.Fs
	dir string
}

// NewFileStore returns a store rooted at dir on fs.
func NewFileStore(fs afero.Fs, dir string) *FileStore {
	return &FileStore{fs: fs, dir: dir}
}

// NewOsStore returns a store rooted at dir on the local disk.
func NewOsStore(dir string) *FileStore {
	return NewFileStore(afero.NewOsFs(), dir)
}

// Dir returns the root directory.
func (s *FileStore) Dir() string { return s.dir }

func (s *FileStore) Write(ctx context.Context, name string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	if err := s.fs.MkdirAll(s.dir, dirPerm); err != nil {
		return "", fmt.Errorf("creating output directory %s: %w", s.dir, err)
	}

	path := filepath.Join(s.dir, name)
	if err := afero.WriteFile(s.fs, path, data, filePerm); err != nil {
		return "", fmt.Errorf("writing card %s: %w", name, err)
	}

	return path, nil
}

func (s *FileStore) Read(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := afero.ReadFile(s.fs, filepath.Join(s.dir, name))
	if err != nil {
		return nil, fmt.Errorf("reading card %s: %w", name, err)
	}
	return data, nil
}
