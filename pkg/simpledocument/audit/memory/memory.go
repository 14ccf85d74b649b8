package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/tendant/simple-document/pkg/simpledocument"
)

// Log is an in-memory implementation of the simpledocument.AuditLog
// interface. It retains events in append order, which makes it the fixture
// of choice for asserting audit ordering in tests.
type Log struct {
	mu     sync.RWMutex
	events []simpledocument.AuditEvent
}

// New creates a new in-memory audit log
func New() *Log {
	return &Log{}
}

// Append records one audit event
func (l *Log) Append(ctx context.Context, event *simpledocument.AuditEvent) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.events = append(l.events, *event)
	return nil
}

// Events returns a copy of all recorded events in append order.
func (l *Log) Events() []simpledocument.AuditEvent {
	l.mu.RLock()
	defer l.mu.RUnlock()

	result := make([]simpledocument.AuditEvent, len(l.events))
	copy(result, l.events)
	return result
}

// EventsFor returns recorded events for one document in append order.
func (l *Log) EventsFor(documentID uuid.UUID) []simpledocument.AuditEvent {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var result []simpledocument.AuditEvent
	for _, event := range l.events {
		if event.DocumentID == documentID {
			result = append(result, event)
		}
	}
	return result
}
