package simpledocument

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

// AuditFailurePolicy controls what happens when an audit append fails after
// the primary state change has already been committed.
type AuditFailurePolicy int

const (
	// AuditFailWarn logs a warning and keeps the committed state change.
	AuditFailWarn AuditFailurePolicy = iota
	// AuditFailAbort fails the enclosing operation. The state change is not
	// rolled back; the caller sees the audit gap instead of a silent one.
	AuditFailAbort
)

// DefaultDeleteReason is recorded when a logical delete is requested without
// a caller-supplied reason.
const DefaultDeleteReason = "Deleted by user"

// service implements the Service interface
type service struct {
	repository         Repository
	blobStore          BlobStore
	auditLog           AuditLog
	validateContent    ValidatorFunc
	validateTransition TransitionFunc
	auditPolicy        AuditFailurePolicy
	logger             *slog.Logger
}

// Option represents a functional option for configuring the service
type Option func(*service)

// WithRepository sets the metadata index for the service
func WithRepository(repo Repository) Option {
	return func(s *service) {
		s.repository = repo
	}
}

// WithBlobStore sets the blob storage backend for the service
func WithBlobStore(store BlobStore) Option {
	return func(s *service) {
		s.blobStore = store
	}
}

// WithAuditLog sets the audit log for the service
func WithAuditLog(log AuditLog) Option {
	return func(s *service) {
		s.auditLog = log
	}
}

// WithValidator sets the content validation policy. DefaultValidator is used
// when none is provided.
func WithValidator(fn ValidatorFunc) Option {
	return func(s *service) {
		s.validateContent = fn
	}
}

// WithTransitionValidator sets the status transition policy.
// ValidateStatusChange is used when none is provided.
func WithTransitionValidator(fn TransitionFunc) Option {
	return func(s *service) {
		s.validateTransition = fn
	}
}

// WithAuditFailurePolicy sets the behavior for audit append failures
func WithAuditFailurePolicy(policy AuditFailurePolicy) Option {
	return func(s *service) {
		s.auditPolicy = policy
	}
}

// WithLogger sets the logger used for audit failure warnings
func WithLogger(logger *slog.Logger) Option {
	return func(s *service) {
		s.logger = logger
	}
}

// New creates a new service instance with the given options
func New(options ...Option) (Service, error) {
	s := &service{
		validateContent:    DefaultValidator,
		validateTransition: ValidateStatusChange,
		auditPolicy:        AuditFailWarn,
		logger:             slog.Default(),
	}

	for _, option := range options {
		option(s)
	}

	if s.repository == nil {
		return nil, fmt.Errorf("repository is required")
	}
	if s.blobStore == nil {
		return nil, fmt.Errorf("blob store is required")
	}
	if s.auditLog == nil {
		return nil, fmt.Errorf("audit log is required")
	}

	return s, nil
}

// checksumHex returns the hex-encoded SHA-256 digest of content.
func checksumHex(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// appendAudit records one audit event, applying the configured failure
// policy. The primary state change is already durable when this runs.
func (s *service) appendAudit(ctx context.Context, event *AuditEvent) error {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}

	err := s.auditLog.Append(ctx, event)
	if err == nil {
		return nil
	}
	if s.auditPolicy == AuditFailAbort {
		return fmt.Errorf("%w: %s for document %s: %v", ErrAuditAppendFailed, event.Action, event.DocumentID, err)
	}
	s.logger.Warn("audit append failed",
		"action", event.Action,
		"document_id", event.DocumentID,
		"err", err)
	return nil
}

// Document operations

func (s *service) ListDocuments(ctx context.Context, filters ListDocumentsFilters) ([]*Document, error) {
	docs, err := s.repository.ListDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	result := make([]*Document, 0, len(docs))
	for _, doc := range docs {
		if filters.Status != nil && doc.Status != *filters.Status {
			continue
		}
		if filters.DocType != nil && doc.DocType != *filters.DocType {
			continue
		}
		if filters.ClientRef != nil && !strings.Contains(doc.ClientRef, *filters.ClientRef) {
			continue
		}
		result = append(result, doc)
	}

	return result, nil
}

func (s *service) GetDocument(ctx context.Context, id uuid.UUID) (*Document, error) {
	doc, err := s.repository.GetDocument(ctx, id)
	if errors.Is(err, ErrDocumentNotFound) {
		// Absent is a valid, non-error outcome for a plain lookup.
		return nil, nil
	}
	if err != nil {
		return nil, &DocumentError{DocumentID: id, Op: "get", Err: err}
	}
	return doc, nil
}

func (s *service) GetDocumentContent(ctx context.Context, id uuid.UUID) (*DocumentContent, error) {
	doc, err := s.repository.GetDocument(ctx, id)
	if err != nil {
		return nil, &DocumentError{DocumentID: id, Op: "get_content", Err: err}
	}

	reader, err := s.blobStore.Read(ctx, id)
	if err != nil {
		return nil, &StorageError{DocumentID: id, Op: "read", Err: err}
	}
	defer reader.Close()

	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, &StorageError{DocumentID: id, Op: "read", Err: err}
	}

	if err := s.appendAudit(ctx, &AuditEvent{
		DocumentID: id,
		Action:     AuditActionContentRead,
	}); err != nil {
		return nil, err
	}

	return &DocumentContent{Document: doc, Content: content}, nil
}

func (s *service) CreateDocument(ctx context.Context, req CreateDocumentRequest) (*Document, error) {
	id := uuid.New()
	now := time.Now().UTC()

	doc := &Document{
		ID:          id,
		ClientRef:   req.ClientRef,
		DocType:     req.DocType,
		FileName:    req.FileName,
		ContentType: req.ContentType,
		SizeBytes:   int64(len(req.Content)),
		Checksum:    checksumHex(req.Content),
		Status:      StatusReceived,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	// The blob is written before validation so that even a rejected document
	// retains its original content for audit and inspection.
	if err := s.blobStore.Write(ctx, id, bytes.NewReader(req.Content)); err != nil {
		return nil, &StorageError{DocumentID: id, Op: "write", Err: err}
	}

	validation := s.validateContent(req.Content, req.FileName, req.ContentType)
	if validation.Accepted {
		doc.Status = StatusValidated
	} else {
		doc.Status = StatusRejected
		doc.Reason = validation.Reason
	}

	// An insert failure here leaves an orphan blob behind. That is an
	// accepted edge case requiring out-of-band cleanup; the index and the
	// returned error stay authoritative.
	if err := s.repository.InsertDocument(ctx, doc); err != nil {
		return nil, &DocumentError{DocumentID: id, Op: "create", Err: err}
	}

	if err := s.appendAudit(ctx, &AuditEvent{
		DocumentID: id,
		Action:     AuditActionCreate,
		ClientRef:  req.ClientRef,
		DocType:    req.DocType,
		Status:     doc.Status,
	}); err != nil {
		return nil, err
	}

	if doc.Status != StatusReceived {
		if err := s.appendAudit(ctx, &AuditEvent{
			DocumentID: id,
			Action:     AuditActionStatusChange,
			From:       StatusReceived,
			To:         doc.Status,
			Reason:     doc.Reason,
		}); err != nil {
			return nil, err
		}
	}

	return doc, nil
}

func (s *service) UpdateDocument(ctx context.Context, req UpdateDocumentRequest) (*Document, error) {
	existing, err := s.repository.GetDocument(ctx, req.ID)
	if err != nil {
		return nil, &DocumentError{DocumentID: req.ID, Op: "update", Err: err}
	}
	if existing.Status == StatusProcessed {
		return nil, &DocumentError{DocumentID: req.ID, Op: "update", Err: ErrDocumentImmutable}
	}

	// Content first, so a completed update always has checksum and size
	// matching the stored blob.
	if req.Content != nil {
		if err := s.blobStore.Write(ctx, req.ID, bytes.NewReader(req.Content)); err != nil {
			return nil, &StorageError{DocumentID: req.ID, Op: "write", Err: err}
		}
	}

	updated, err := s.repository.ReplaceDocument(ctx, req.ID, func(doc Document) Document {
		if req.ClientRef != nil {
			doc.ClientRef = *req.ClientRef
		}
		if req.DocType != nil {
			doc.DocType = *req.DocType
		}
		if req.FileName != nil {
			doc.FileName = *req.FileName
		}
		if req.ContentType != nil {
			doc.ContentType = *req.ContentType
		}
		if req.Content != nil {
			doc.SizeBytes = int64(len(req.Content))
			doc.Checksum = checksumHex(req.Content)
		}
		doc.UpdatedAt = time.Now().UTC()
		return doc
	})
	if err != nil {
		return nil, &DocumentError{DocumentID: req.ID, Op: "update", Err: err}
	}

	if req.Content != nil {
		if err := s.appendAudit(ctx, &AuditEvent{
			DocumentID: req.ID,
			Action:     AuditActionContentReplaced,
		}); err != nil {
			return nil, err
		}
	}

	if err := s.appendAudit(ctx, &AuditEvent{
		DocumentID: req.ID,
		Action:     AuditActionUpdate,
	}); err != nil {
		return nil, err
	}

	return updated, nil
}

func (s *service) ChangeDocumentStatus(ctx context.Context, req ChangeStatusRequest) (*Document, error) {
	existing, err := s.repository.GetDocument(ctx, req.ID)
	if err != nil {
		return nil, &DocumentError{DocumentID: req.ID, Op: "change_status", Err: err}
	}

	if err := s.validateTransition(existing.Status, req.Status, req.Reason); err != nil {
		return nil, &DocumentError{DocumentID: req.ID, Op: "change_status", Err: err}
	}

	reason := ""
	if req.Status == StatusRejected {
		reason = req.Reason
	}

	updated, err := s.repository.ReplaceDocument(ctx, req.ID, func(doc Document) Document {
		doc.Status = req.Status
		doc.Reason = reason
		doc.UpdatedAt = time.Now().UTC()
		return doc
	})
	if err != nil {
		return nil, &DocumentError{DocumentID: req.ID, Op: "change_status", Err: err}
	}

	if err := s.appendAudit(ctx, &AuditEvent{
		DocumentID: req.ID,
		Action:     AuditActionStatusChange,
		From:       existing.Status,
		To:         req.Status,
		Reason:     reason,
	}); err != nil {
		return nil, err
	}

	return updated, nil
}

func (s *service) DeleteDocument(ctx context.Context, id uuid.UUID, reason string) (*DeleteResult, error) {
	existing, err := s.repository.GetDocument(ctx, id)
	if err != nil {
		return nil, &DocumentError{DocumentID: id, Op: "delete", Err: err}
	}
	if existing.Status == StatusProcessed {
		return nil, &DocumentError{DocumentID: id, Op: "delete", Err: ErrDocumentImmutable}
	}

	// Already REJECTED: second phase, purge blob and record for good.
	if existing.Status == StatusRejected {
		if err := s.blobStore.Delete(ctx, id); err != nil && !errors.Is(err, ErrBlobNotFound) {
			return nil, &StorageError{DocumentID: id, Op: "delete", Err: err}
		}
		if _, err := s.repository.DeleteDocument(ctx, id); err != nil {
			return nil, &DocumentError{DocumentID: id, Op: "delete", Err: err}
		}
		if err := s.appendAudit(ctx, &AuditEvent{
			DocumentID: id,
			Action:     AuditActionPhysicalDelete,
		}); err != nil {
			return nil, err
		}
		return &DeleteResult{Mode: DeleteModePhysical}, nil
	}

	// First phase: mark REJECTED, keep the blob for audit.
	if reason == "" {
		reason = DefaultDeleteReason
	}

	updated, err := s.repository.ReplaceDocument(ctx, id, func(doc Document) Document {
		doc.Status = StatusRejected
		doc.Reason = reason
		doc.UpdatedAt = time.Now().UTC()
		return doc
	})
	if err != nil {
		return nil, &DocumentError{DocumentID: id, Op: "delete", Err: err}
	}

	if err := s.appendAudit(ctx, &AuditEvent{
		DocumentID: id,
		Action:     AuditActionDelete,
		Reason:     reason,
	}); err != nil {
		return nil, err
	}
	if err := s.appendAudit(ctx, &AuditEvent{
		DocumentID: id,
		Action:     AuditActionStatusChange,
		From:       existing.Status,
		To:         StatusRejected,
		Reason:     reason,
	}); err != nil {
		return nil, err
	}

	return &DeleteResult{Mode: DeleteModeLogical, Document: updated}, nil
}
