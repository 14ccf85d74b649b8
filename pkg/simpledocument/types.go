package simpledocument

import (
    "time"

    "github.com/google/uuid"
)

// DocumentStatus is the domain type for document lifecycle states.
type DocumentStatus string

// Document status constants (typed).
//
// StatusReceived is a transient in-memory baseline: a freshly ingested
// document is immediately re-evaluated by the content validator, so a
// persisted record is always VALIDATED, REJECTED, or PROCESSED.
const (
    StatusReceived  DocumentStatus = "RECEIVED"
    StatusValidated DocumentStatus = "VALIDATED"
    StatusRejected  DocumentStatus = "REJECTED"
    StatusProcessed DocumentStatus = "PROCESSED"
)

// AuditAction identifies the kind of state-affecting or content-read action
// an audit event records.
type AuditAction string

// Audit action constants (typed).
const (
    AuditActionCreate          AuditAction = "CREATE"
    AuditActionUpdate          AuditAction = "UPDATE"
    AuditActionContentRead     AuditAction = "CONTENT_READ"
    AuditActionContentReplaced AuditAction = "CONTENT_REPLACED"
    AuditActionStatusChange    AuditAction = "STATUS_CHANGE"
    AuditActionDelete          AuditAction = "DELETE"
    AuditActionPhysicalDelete  AuditAction = "PHYSICAL_DELETE"
)

// Document represents a document metadata record stored in the index.
//
// Checksum and SizeBytes always describe the blob currently stored under ID;
// both are recomputed whenever content is replaced. Reason is populated only
// while Status is REJECTED and cleared on any other transition.
type Document struct {
    ID          uuid.UUID      `json:"id"`
    ClientRef   string         `json:"client_ref,omitempty"`
    DocType     string         `json:"doc_type,omitempty"`
    FileName    string         `json:"file_name,omitempty"`
    ContentType string         `json:"content_type,omitempty"`
    SizeBytes   int64          `json:"size_bytes"`
    Checksum    string         `json:"checksum"`
    Status      DocumentStatus `json:"status"`
    Reason      string         `json:"reason,omitempty"`
    CreatedAt   time.Time      `json:"created_at"`
    UpdatedAt   time.Time      `json:"updated_at"`
}

// AuditEvent is an immutable record of one document action. Events are
// append-only; ordering within the log is append order.
type AuditEvent struct {
    ID         uuid.UUID      `json:"id"`
    DocumentID uuid.UUID      `json:"document_id"`
    Action     AuditAction    `json:"action"`
    ClientRef  string         `json:"client_ref,omitempty"`
    DocType    string         `json:"doc_type,omitempty"`
    Status     DocumentStatus `json:"status,omitempty"`
    From       DocumentStatus `json:"from,omitempty"`
    To         DocumentStatus `json:"to,omitempty"`
    Reason     string         `json:"reason,omitempty"`
    CreatedAt  time.Time      `json:"created_at"`
}

// DocumentContent bundles a document record with its blob content.
type DocumentContent struct {
    Document *Document `json:"document"`
    Content  []byte    `json:"content"`
}

// ListDocumentsFilters defines filtering options for listing documents.
// Status and DocType are exact matches; ClientRef is a substring match.
type ListDocumentsFilters struct {
    Status    *DocumentStatus
    DocType   *string
    ClientRef *string
}

// DeleteMode distinguishes the two phases of document deletion.
type DeleteMode string

// Delete mode constants (typed).
const (
    DeleteModeLogical  DeleteMode = "logical"
    DeleteModePhysical DeleteMode = "physical"
)

// DeleteResult describes the outcome of a delete operation. Document is the
// updated record for a logical delete and nil for a physical delete.
type DeleteResult struct {
    Mode     DeleteMode `json:"mode"`
    Document *Document  `json:"document,omitempty"`
}
