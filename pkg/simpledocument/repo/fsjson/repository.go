// Package fsjson persists the document index as a single JSON file holding
// the whole ordered collection. Every call loads the file, mutates the
// collection in memory, and writes it back through a temp-file rename, all
// under one exclusive mutex: a deliberately small-scale layout hardened into
// a single-writer store so concurrent mutations cannot lose updates.
package fsjson

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"github.com/tendant/simple-document/pkg/simpledocument"
)

// Repository implements simpledocument.Repository on a JSON index file.
type Repository struct {
	mu   sync.Mutex
	path string
}

// Config options for the JSON file repository
type Config struct {
	Path string // Path of the index file, e.g. data/documents.json
}

// New creates a JSON file repository, creating the parent directory and an
// empty index file if they do not exist yet.
func New(config Config) (*Repository, error) {
	if config.Path == "" {
		return nil, errors.New("index file path is required")
	}

	if err := os.MkdirAll(filepath.Dir(config.Path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create index directory: %w", err)
	}

	r := &Repository{path: config.Path}
	if _, err := os.Stat(config.Path); os.IsNotExist(err) {
		if err := r.save(nil); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, fmt.Errorf("failed to stat index file: %w", err)
	}

	return r, nil
}

// load reads the whole collection. Caller must hold mu.
func (r *Repository) load() ([]simpledocument.Document, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read index file: %w", err)
	}

	var docs []simpledocument.Document
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("failed to parse index file: %w", err)
	}
	return docs, nil
}

// save writes the whole collection back atomically. Caller must hold mu.
func (r *Repository) save(docs []simpledocument.Document) error {
	if docs == nil {
		docs = []simpledocument.Document{}
	}

	data, err := json.MarshalIndent(docs, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode index: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.path), ".documents-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp index file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write index: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close index: %w", err)
	}

	if err := os.Rename(tmpPath, r.path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace index file: %w", err)
	}
	return nil
}

func (r *Repository) ListDocuments(ctx context.Context) ([]*simpledocument.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	docs, err := r.load()
	if err != nil {
		return nil, err
	}

	result := make([]*simpledocument.Document, 0, len(docs))
	for i := range docs {
		docCopy := docs[i]
		result = append(result, &docCopy)
	}
	return result, nil
}

func (r *Repository) GetDocument(ctx context.Context, id uuid.UUID) (*simpledocument.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	docs, err := r.load()
	if err != nil {
		return nil, err
	}

	for i := range docs {
		if docs[i].ID == id {
			docCopy := docs[i]
			return &docCopy, nil
		}
	}
	return nil, simpledocument.ErrDocumentNotFound
}

func (r *Repository) InsertDocument(ctx context.Context, doc *simpledocument.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	docs, err := r.load()
	if err != nil {
		return err
	}

	for i := range docs {
		if docs[i].ID == doc.ID {
			return simpledocument.ErrDocumentExists
		}
	}

	docs = append(docs, *doc)
	return r.save(docs)
}

func (r *Repository) ReplaceDocument(ctx context.Context, id uuid.UUID, update func(simpledocument.Document) simpledocument.Document) (*simpledocument.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	docs, err := r.load()
	if err != nil {
		return nil, err
	}

	for i := range docs {
		if docs[i].ID != id {
			continue
		}
		updated := update(docs[i])
		updated.ID = id
		docs[i] = updated
		if err := r.save(docs); err != nil {
			return nil, err
		}
		docCopy := updated
		return &docCopy, nil
	}
	return nil, simpledocument.ErrDocumentNotFound
}

func (r *Repository) DeleteDocument(ctx context.Context, id uuid.UUID) (*simpledocument.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	docs, err := r.load()
	if err != nil {
		return nil, err
	}

	for i := range docs {
		if docs[i].ID != id {
			continue
		}
		removed := docs[i]
		docs = append(docs[:i], docs[i+1:]...)
		if err := r.save(docs); err != nil {
			return nil, err
		}
		return &removed, nil
	}
	return nil, simpledocument.ErrDocumentNotFound
}
