package simpledocument

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Error types
var (
	// ErrDocumentNotFound indicates a document was not found in the index
	ErrDocumentNotFound = errors.New("document not found")

	// ErrDocumentExists indicates an insert collided with an existing id
	ErrDocumentExists = errors.New("document already exists")

	// ErrBlobNotFound indicates no blob is stored under the given id
	ErrBlobNotFound = errors.New("blob not found")

	// ErrDocumentImmutable indicates a modification or deletion was attempted
	// on a PROCESSED document
	ErrDocumentImmutable = errors.New("processed documents are immutable")

	// ErrInvalidTransition indicates a disallowed status transition
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrInvalidStatus indicates an unknown document status value
	ErrInvalidStatus = errors.New("invalid document status")

	// ErrReasonRequired indicates a rejection was requested without a reason
	ErrReasonRequired = errors.New("reason is required when rejecting a document")

	// ErrAuditAppendFailed indicates an audit event could not be recorded
	ErrAuditAppendFailed = errors.New("audit append failed")
)

// DocumentError represents an error related to document operations
type DocumentError struct {
	DocumentID uuid.UUID
	Op         string
	Err        error
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("document operation %s failed for document %s: %v", e.Op, e.DocumentID, e.Err)
}

func (e *DocumentError) Unwrap() error {
	return e.Err
}

// StorageError represents an error related to blob storage operations
type StorageError struct {
	DocumentID uuid.UUID
	Op         string
	Err        error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage operation %s failed for document %s: %v", e.Op, e.DocumentID, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// ValidationError carries one or more structural input problems, such as an
// unknown status value or a missing rejection reason.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Errors, "; "))
}

// IsNotFound reports whether err means the document or blob does not exist.
// The transport layer typically maps this to 404.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrDocumentNotFound) || errors.Is(err, ErrBlobNotFound)
}

// IsConflict reports whether err means the operation is disallowed by the
// document's current status. The transport layer typically maps this to 409.
func IsConflict(err error) bool {
	return errors.Is(err, ErrDocumentImmutable) || errors.Is(err, ErrInvalidTransition)
}

// IsValidationFailed reports whether err describes structurally invalid
// input. The transport layer typically maps this to 400.
func IsValidationFailed(err error) bool {
	if errors.Is(err, ErrInvalidStatus) || errors.Is(err, ErrReasonRequired) {
		return true
	}
	var ve *ValidationError
	return errors.As(err, &ve)
}
