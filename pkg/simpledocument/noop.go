package simpledocument

import "context"

// NoopAuditLog discards every event. Useful for tooling and tests that do
// not care about the trail; choosing it is an explicit opt-out of auditing.
type NoopAuditLog struct{}

// NewNoopAuditLog creates a no-op audit log
func NewNoopAuditLog() *NoopAuditLog {
	return &NoopAuditLog{}
}

// Append implements AuditLog
func (n *NoopAuditLog) Append(ctx context.Context, event *AuditEvent) error {
	return nil
}
