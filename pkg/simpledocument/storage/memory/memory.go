package memory

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/google/uuid"
	"github.com/tendant/simple-document/pkg/simpledocument"
)

// Backend is an in-memory implementation of the simpledocument.BlobStore interface
type Backend struct {
	mu    sync.RWMutex
	blobs map[uuid.UUID][]byte
}

// New creates a new in-memory storage backend
func New() *Backend {
	return &Backend{
		blobs: make(map[uuid.UUID][]byte),
	}
}

// Write creates or overwrites the blob for id
func (b *Backend) Write(ctx context.Context, id uuid.UUID, reader io.Reader) error {
	data, err := io.ReadAll(reader)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.blobs[id] = data
	return nil
}

// Read returns the blob for id
func (b *Backend) Read(ctx context.Context, id uuid.UUID) (io.ReadCloser, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	data, exists := b.blobs[id]
	if !exists {
		return nil, simpledocument.ErrBlobNotFound
	}

	return io.NopCloser(bytes.NewReader(data)), nil
}

// Delete removes the blob for id
func (b *Backend) Delete(ctx context.Context, id uuid.UUID) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.blobs[id]; !exists {
		return simpledocument.ErrBlobNotFound
	}

	delete(b.blobs, id)
	return nil
}
