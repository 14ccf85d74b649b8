package simpledocument

import "github.com/google/uuid"

// Request/Response DTOs

// CreateDocumentRequest contains parameters for ingesting a new document.
// Content is the already-decoded payload; decoding of transport encodings
// (multipart, base64) is the caller's responsibility.
type CreateDocumentRequest struct {
	ClientRef   string
	DocType     string
	FileName    string
	ContentType string
	Content     []byte
}

// UpdateDocumentRequest contains parameters for a sparse document update.
// Nil pointer fields are left unchanged. A non-nil Content replaces the
// blob and recomputes SizeBytes and Checksum; status is never altered.
type UpdateDocumentRequest struct {
	ID          uuid.UUID
	ClientRef   *string
	DocType     *string
	FileName    *string
	ContentType *string
	Content     []byte
}

// ChangeStatusRequest contains parameters for an explicit status transition.
// Reason is required when Status is REJECTED and ignored otherwise.
type ChangeStatusRequest struct {
	ID     uuid.UUID
	Status DocumentStatus
	Reason string
}
