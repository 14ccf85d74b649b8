package fs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/tendant/simple-document/pkg/simpledocument"
)

// Backend is a filesystem implementation of the simpledocument.BlobStore
// interface, storing one file per document id under a base directory.
type Backend struct {
	baseDir string
}

// Config options for the filesystem backend
type Config struct {
	BaseDir string // Base directory for storing blobs
}

// New creates a new filesystem storage backend
func New(config Config) (*Backend, error) {
	if config.BaseDir == "" {
		return nil, errors.New("base directory is required")
	}

	if err := os.MkdirAll(config.BaseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}

	return &Backend{baseDir: config.BaseDir}, nil
}

func (b *Backend) blobPath(id uuid.UUID) string {
	return filepath.Join(b.baseDir, id.String()+".blob")
}

// Write creates or overwrites the blob for id. The content goes to a temp
// file first and is renamed into place, so a concurrent Read never observes
// a half-written blob.
func (b *Backend) Write(ctx context.Context, id uuid.UUID, reader io.Reader) error {
	tmp, err := os.CreateTemp(b.baseDir, "."+id.String()+"-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := io.Copy(tmp, reader); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write blob: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close blob: %w", err)
	}

	if err := os.Rename(tmpPath, b.blobPath(id)); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace blob: %w", err)
	}
	return nil
}

// Read returns the blob for id
func (b *Backend) Read(ctx context.Context, id uuid.UUID) (io.ReadCloser, error) {
	file, err := os.Open(b.blobPath(id))
	if os.IsNotExist(err) {
		return nil, simpledocument.ErrBlobNotFound
	} else if err != nil {
		return nil, fmt.Errorf("failed to open blob: %w", err)
	}

	return file, nil
}

// Delete removes the blob for id
func (b *Backend) Delete(ctx context.Context, id uuid.UUID) error {
	err := os.Remove(b.blobPath(id))
	if os.IsNotExist(err) {
		return simpledocument.ErrBlobNotFound
	} else if err != nil {
		return fmt.Errorf("failed to delete blob: %w", err)
	}
	return nil
}
