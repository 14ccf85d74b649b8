// Package file implements the audit log as a JSON-lines file: one event per
// line, appended with O_APPEND under a mutex. The file is never rewritten,
// truncated, or compacted; the trail exists for external inspection only.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/tendant/simple-document/pkg/simpledocument"
)

// Log is a JSONL file implementation of the simpledocument.AuditLog interface.
type Log struct {
	mu   sync.Mutex
	path string
}

// Config options for the file audit log
type Config struct {
	Path string // Path of the audit file, e.g. data/audit.log
}

// New creates a file audit log, creating the parent directory if needed.
func New(config Config) (*Log, error) {
	if config.Path == "" {
		return nil, errors.New("audit file path is required")
	}

	if err := os.MkdirAll(filepath.Dir(config.Path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create audit directory: %w", err)
	}

	return &Log{path: config.Path}, nil
}

// Append records one audit event as a single JSON line.
func (l *Log) Append(ctx context.Context, event *simpledocument.AuditEvent) error {
	line, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode audit event: %w", err)
	}
	line = append(line, '\n')

	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open audit file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(line); err != nil {
		return fmt.Errorf("failed to append audit event: %w", err)
	}
	return nil
}
