package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tendant/simple-document/pkg/simpledocument"
)

func newTestStore(t *testing.T) *Store {
	store, err := NewStore(filepath.Join(t.TempDir(), "documents.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func newTestDocument() *simpledocument.Document {
	now := time.Now().UTC()
	return &simpledocument.Document{
		ID:          uuid.New(),
		ClientRef:   "client-1",
		DocType:     "A",
		FileName:    "doc.txt",
		ContentType: "text/plain",
		SizeBytes:   5,
		Checksum:    "abc123",
		Status:      simpledocument.StatusValidated,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestNewStore(t *testing.T) {
	t.Run("requires a path", func(t *testing.T) {
		_, err := NewStore("")
		assert.Error(t, err)
	})

	t.Run("creates missing directories", func(t *testing.T) {
		store, err := NewStore(filepath.Join(t.TempDir(), "nested", "documents.db"))
		require.NoError(t, err)
		defer store.Close()

		docs, err := store.ListDocuments(context.Background())
		require.NoError(t, err)
		assert.Empty(t, docs)
	})
}

func TestDocumentRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	doc := newTestDocument()

	require.NoError(t, store.InsertDocument(ctx, doc))

	got, err := store.GetDocument(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, doc.ID, got.ID)
	assert.Equal(t, doc.Checksum, got.Checksum)
	assert.Equal(t, doc.Status, got.Status)
	assert.True(t, doc.CreatedAt.Equal(got.CreatedAt))
	assert.True(t, doc.UpdatedAt.Equal(got.UpdatedAt))

	t.Run("duplicate insert", func(t *testing.T) {
		err := store.InsertDocument(ctx, doc)
		assert.ErrorIs(t, err, simpledocument.ErrDocumentExists)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := store.GetDocument(ctx, uuid.New())
		assert.ErrorIs(t, err, simpledocument.ErrDocumentNotFound)
	})
}

func TestStoreReplaceDocument(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	doc := newTestDocument()
	require.NoError(t, store.InsertDocument(ctx, doc))

	updated, err := store.ReplaceDocument(ctx, doc.ID, func(d simpledocument.Document) simpledocument.Document {
		d.Status = simpledocument.StatusRejected
		d.Reason = "manual review failed"
		d.UpdatedAt = time.Now().UTC()
		return d
	})
	require.NoError(t, err)
	assert.Equal(t, simpledocument.StatusRejected, updated.Status)

	got, err := store.GetDocument(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, simpledocument.StatusRejected, got.Status)
	assert.Equal(t, "manual review failed", got.Reason)

	t.Run("id cannot be rewritten", func(t *testing.T) {
		replaced, err := store.ReplaceDocument(ctx, doc.ID, func(d simpledocument.Document) simpledocument.Document {
			d.ID = uuid.New()
			return d
		})
		require.NoError(t, err)
		assert.Equal(t, doc.ID, replaced.ID)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := store.ReplaceDocument(ctx, uuid.New(), func(d simpledocument.Document) simpledocument.Document {
			return d
		})
		assert.ErrorIs(t, err, simpledocument.ErrDocumentNotFound)
	})
}

func TestStoreDeleteDocument(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	doc := newTestDocument()
	require.NoError(t, store.InsertDocument(ctx, doc))

	deleted, err := store.DeleteDocument(ctx, doc.ID)
	require.NoError(t, err)
	assert.Equal(t, doc.ID, deleted.ID)

	_, err = store.GetDocument(ctx, doc.ID)
	assert.ErrorIs(t, err, simpledocument.ErrDocumentNotFound)

	t.Run("second delete fails", func(t *testing.T) {
		_, err := store.DeleteDocument(ctx, doc.ID)
		assert.ErrorIs(t, err, simpledocument.ErrDocumentNotFound)
	})
}

func TestStoreAppendAuditEvent(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	event := &simpledocument.AuditEvent{
		ID:         uuid.New(),
		DocumentID: uuid.New(),
		Action:     simpledocument.AuditActionCreate,
		ClientRef:  "client-1",
		Status:     simpledocument.StatusValidated,
		CreatedAt:  time.Now().UTC(),
	}
	require.NoError(t, store.Append(ctx, event))

	var count int
	err := store.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM audit_events WHERE document_id = ?`,
		event.DocumentID.String()).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
