package postgres

import (
	"context"
	"fmt"

	"github.com/tendant/simple-document/pkg/simpledocument"
)

// AuditLog implements simpledocument.AuditLog on an append-only
// audit_events table. Rows are never updated or deleted; append order is
// preserved by the seq column.
type AuditLog struct {
	db DBTX
}

// NewAuditLog creates a new PostgreSQL audit log
func NewAuditLog(db DBTX) *AuditLog {
	return &AuditLog{db: db}
}

func (a *AuditLog) Append(ctx context.Context, event *simpledocument.AuditEvent) error {
	query := `
		INSERT INTO audit_events (
			id, document_id, action, client_ref, doc_type, status,
			from_status, to_status, reason, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := a.db.Exec(ctx, query,
		event.ID, event.DocumentID, event.Action, event.ClientRef,
		event.DocType, event.Status, event.From, event.To, event.Reason,
		event.CreatedAt)
	if err != nil {
		return fmt.Errorf("append audit event: %w", err)
	}
	return nil
}
