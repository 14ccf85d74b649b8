// Package sqlite provides a single-file embedded implementation of both the
// document index and the audit log, backed by modernc.org/sqlite.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/google/uuid"
	"github.com/tendant/simple-document/pkg/simpledocument"
)

const schema = `
CREATE TABLE IF NOT EXISTS documents (
    id           TEXT PRIMARY KEY,
    client_ref   TEXT NOT NULL DEFAULT '',
    doc_type     TEXT NOT NULL DEFAULT '',
    file_name    TEXT NOT NULL DEFAULT '',
    content_type TEXT NOT NULL DEFAULT '',
    size_bytes   INTEGER NOT NULL DEFAULT 0,
    checksum     TEXT NOT NULL DEFAULT '',
    status       TEXT NOT NULL,
    reason       TEXT NOT NULL DEFAULT '',
    created_at   TEXT NOT NULL,
    updated_at   TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS audit_events (
    seq          INTEGER PRIMARY KEY AUTOINCREMENT,
    id           TEXT NOT NULL,
    document_id  TEXT NOT NULL,
    action       TEXT NOT NULL,
    client_ref   TEXT NOT NULL DEFAULT '',
    doc_type     TEXT NOT NULL DEFAULT '',
    status       TEXT NOT NULL DEFAULT '',
    from_status  TEXT NOT NULL DEFAULT '',
    to_status    TEXT NOT NULL DEFAULT '',
    reason       TEXT NOT NULL DEFAULT '',
    created_at   TEXT NOT NULL
);
`

// Store is a SQLite-backed store providing both the Repository and AuditLog
// interfaces. SQLite's single-writer model plus WAL and a busy timeout give
// the serialized read-modify-write cycle the index contract requires.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens (or creates) a SQLite store at path, creating parent
// directories and applying the schema as needed.
func NewStore(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("database path is required")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

const documentColumns = `id, client_ref, doc_type, file_name, content_type,
       size_bytes, checksum, status, reason, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanDocument(row rowScanner) (*simpledocument.Document, error) {
	var doc simpledocument.Document
	var id, createdAt, updatedAt string

	err := row.Scan(
		&id, &doc.ClientRef, &doc.DocType, &doc.FileName, &doc.ContentType,
		&doc.SizeBytes, &doc.Checksum, &doc.Status, &doc.Reason,
		&createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, simpledocument.ErrDocumentNotFound
		}
		return nil, err
	}

	if doc.ID, err = uuid.Parse(id); err != nil {
		return nil, fmt.Errorf("parsing document id: %w", err)
	}
	if doc.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}
	if doc.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &doc, nil
}

func (s *Store) ListDocuments(ctx context.Context) ([]*simpledocument.Document, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+documentColumns+` FROM documents ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("listing documents: %w", err)
	}
	defer rows.Close()

	var result []*simpledocument.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, doc)
	}
	return result, rows.Err()
}

func (s *Store) GetDocument(ctx context.Context, id uuid.UUID) (*simpledocument.Document, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+documentColumns+` FROM documents WHERE id = ?`, id.String())
	return scanDocument(row)
}

func (s *Store) InsertDocument(ctx context.Context, doc *simpledocument.Document) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO documents (
			id, client_ref, doc_type, file_name, content_type,
			size_bytes, checksum, status, reason, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		doc.ID.String(), doc.ClientRef, doc.DocType, doc.FileName, doc.ContentType,
		doc.SizeBytes, doc.Checksum, doc.Status, doc.Reason,
		doc.CreatedAt.UTC().Format(time.RFC3339Nano),
		doc.UpdatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return simpledocument.ErrDocumentExists
		}
		return fmt.Errorf("inserting document: %w", err)
	}
	return nil
}

func (s *Store) ReplaceDocument(ctx context.Context, id uuid.UUID, update func(simpledocument.Document) simpledocument.Document) (*simpledocument.Document, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("replacing document: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, `SELECT `+documentColumns+` FROM documents WHERE id = ?`, id.String())
	current, err := scanDocument(row)
	if err != nil {
		return nil, err
	}

	updated := update(*current)
	updated.ID = id

	_, err = tx.ExecContext(ctx, `
		UPDATE documents SET
			client_ref = ?, doc_type = ?, file_name = ?, content_type = ?,
			size_bytes = ?, checksum = ?, status = ?, reason = ?, updated_at = ?
		WHERE id = ?`,
		updated.ClientRef, updated.DocType, updated.FileName, updated.ContentType,
		updated.SizeBytes, updated.Checksum, updated.Status, updated.Reason,
		updated.UpdatedAt.UTC().Format(time.RFC3339Nano),
		id.String())
	if err != nil {
		return nil, fmt.Errorf("replacing document: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("replacing document: %w", err)
	}
	return &updated, nil
}

func (s *Store) DeleteDocument(ctx context.Context, id uuid.UUID) (*simpledocument.Document, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("deleting document: %w", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, `SELECT `+documentColumns+` FROM documents WHERE id = ?`, id.String())
	doc, err := scanDocument(row)
	if err != nil {
		return nil, err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM documents WHERE id = ?`, id.String()); err != nil {
		return nil, fmt.Errorf("deleting document: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("deleting document: %w", err)
	}
	return doc, nil
}

// Append implements simpledocument.AuditLog.
func (s *Store) Append(ctx context.Context, event *simpledocument.AuditEvent) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO audit_events (
			id, document_id, action, client_ref, doc_type, status,
			from_status, to_status, reason, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		event.ID.String(), event.DocumentID.String(), event.Action,
		event.ClientRef, event.DocType, event.Status, event.From, event.To,
		event.Reason, event.CreatedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("appending audit event: %w", err)
	}
	return nil
}
