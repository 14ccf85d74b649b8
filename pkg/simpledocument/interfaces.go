package simpledocument

import (
	"context"
	"io"

	"github.com/google/uuid"
)

// Repository defines the interface for the document metadata index.
//
// Implementations must serialize mutating calls: the read-modify-write cycle
// of InsertDocument, ReplaceDocument, and DeleteDocument for a given call is
// atomic with respect to other calls, so two concurrent mutations can never
// produce a lost update. GetDocument and ListDocuments always reflect the
// most recently completed mutation.
type Repository interface {
	// ListDocuments returns all document records.
	ListDocuments(ctx context.Context) ([]*Document, error)

	// GetDocument returns the record for id, or ErrDocumentNotFound.
	GetDocument(ctx context.Context, id uuid.UUID) (*Document, error)

	// InsertDocument adds a new record. The id is pre-generated by the
	// caller; ErrDocumentExists is returned if it is already present.
	InsertDocument(ctx context.Context, doc *Document) error

	// ReplaceDocument applies update to the current record for id and
	// persists the result. The updater receives a copy of the whole record
	// and must return its full replacement; untouched fields survive only
	// if the updater carries them over.
	ReplaceDocument(ctx context.Context, id uuid.UUID, update func(Document) Document) (*Document, error)

	// DeleteDocument removes the record for id and returns it, or
	// ErrDocumentNotFound.
	DeleteDocument(ctx context.Context, id uuid.UUID) (*Document, error)
}

// BlobStore defines the interface for document content storage. It is pure
// id-keyed storage with no knowledge of document status or metadata.
//
// Writes are atomic from a reader's point of view: a concurrent Read never
// observes a half-written blob.
type BlobStore interface {
	// Write creates or overwrites the blob for id.
	Write(ctx context.Context, id uuid.UUID, reader io.Reader) error

	// Read returns the blob for id, or ErrBlobNotFound.
	Read(ctx context.Context, id uuid.UUID) (io.ReadCloser, error)

	// Delete removes the blob for id, or returns ErrBlobNotFound.
	Delete(ctx context.Context, id uuid.UUID) error
}

// AuditLog defines the interface for the append-only audit trail. Events are
// never read back by this library; the log exists for external inspection.
type AuditLog interface {
	// Append records one audit event. Events for a single logical operation
	// are appended in causal order and must be kept in that order.
	Append(ctx context.Context, event *AuditEvent) error
}

// ValidationResult is the outcome of running the content validator.
// A rejection always carries a non-empty human-readable reason.
type ValidationResult struct {
	Accepted bool
	Reason   string
}

// ValidatorFunc classifies document content at ingestion time. It must be
// pure and deterministic: no side effects, no I/O.
type ValidatorFunc func(content []byte, filename, contentType string) ValidationResult

// TransitionFunc validates an explicit status change. It returns nil when
// the transition is allowed, an error wrapping ErrInvalidStatus or
// ErrReasonRequired for structurally bad input, and an error wrapping
// ErrInvalidTransition for a transition the state machine disallows.
type TransitionFunc func(current, next DocumentStatus, reason string) error
