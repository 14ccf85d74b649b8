package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/tendant/simple-document/pkg/simpledocument"
)

// Repository implements simpledocument.Repository using in-memory storage.
// A single mutex serializes mutations, so the read-modify-write cycle of
// ReplaceDocument can never lose a concurrent update.
type Repository struct {
	mu        sync.RWMutex
	documents map[uuid.UUID]*simpledocument.Document
	order     []uuid.UUID // insertion order, the index is an ordered collection
}

// New creates a new in-memory repository
func New() *Repository {
	return &Repository{
		documents: make(map[uuid.UUID]*simpledocument.Document),
	}
}

func (r *Repository) ListDocuments(ctx context.Context) ([]*simpledocument.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*simpledocument.Document, 0, len(r.order))
	for _, id := range r.order {
		if doc, exists := r.documents[id]; exists {
			docCopy := *doc
			result = append(result, &docCopy)
		}
	}
	return result, nil
}

func (r *Repository) GetDocument(ctx context.Context, id uuid.UUID) (*simpledocument.Document, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	doc, exists := r.documents[id]
	if !exists {
		return nil, simpledocument.ErrDocumentNotFound
	}

	// Return a copy to prevent external modifications
	docCopy := *doc
	return &docCopy, nil
}

func (r *Repository) InsertDocument(ctx context.Context, doc *simpledocument.Document) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.documents[doc.ID]; exists {
		return simpledocument.ErrDocumentExists
	}

	docCopy := *doc
	r.documents[doc.ID] = &docCopy
	r.order = append(r.order, doc.ID)
	return nil
}

func (r *Repository) ReplaceDocument(ctx context.Context, id uuid.UUID, update func(simpledocument.Document) simpledocument.Document) (*simpledocument.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, exists := r.documents[id]
	if !exists {
		return nil, simpledocument.ErrDocumentNotFound
	}

	updated := update(*doc)
	updated.ID = id // the id is immutable regardless of what the updater returns
	r.documents[id] = &updated

	docCopy := updated
	return &docCopy, nil
}

func (r *Repository) DeleteDocument(ctx context.Context, id uuid.UUID) (*simpledocument.Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, exists := r.documents[id]
	if !exists {
		return nil, simpledocument.ErrDocumentNotFound
	}

	delete(r.documents, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	docCopy := *doc
	return &docCopy, nil
}
