package simpledocument

import (
	"context"

	"github.com/google/uuid"
)

// Service defines the main interface for the simple-document library
type Service interface {
	// ListDocuments returns document records matching the given filters.
	// Pure read; no audit entry.
	ListDocuments(ctx context.Context, filters ListDocumentsFilters) ([]*Document, error)

	// GetDocument returns the record for id, or (nil, nil) when the id does
	// not exist: an absent document is a valid outcome, not a failure.
	GetDocument(ctx context.Context, id uuid.UUID) (*Document, error)

	// GetDocumentContent returns the record together with its blob content.
	// Every successful content read appends a CONTENT_READ audit event.
	GetDocumentContent(ctx context.Context, id uuid.UUID) (*DocumentContent, error)

	// CreateDocument ingests a document: writes the blob, runs the content
	// validator, and persists a record in status VALIDATED or REJECTED.
	CreateDocument(ctx context.Context, req CreateDocumentRequest) (*Document, error)

	// UpdateDocument applies a sparse update and optionally replaces the
	// blob content. PROCESSED documents are immutable.
	UpdateDocument(ctx context.Context, req UpdateDocumentRequest) (*Document, error)

	// ChangeDocumentStatus performs an explicit status transition validated
	// by the configured transition policy.
	ChangeDocumentStatus(ctx context.Context, req ChangeStatusRequest) (*Document, error)

	// DeleteDocument deletes a document: logically (mark REJECTED, content
	// retained) unless the document is already REJECTED, in which case both
	// blob and record are removed for good.
	DeleteDocument(ctx context.Context, id uuid.UUID, reason string) (*DeleteResult, error)
}
