package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tendant/simple-document/pkg/simpledocument"
)

// DBTX is the subset of pgxpool.Pool the repository needs. Begin is required
// because replace and delete run their read-modify-write cycle inside a
// transaction with a row lock.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Repository implements simpledocument.Repository using PostgreSQL
type Repository struct {
	db DBTX
}

// New creates a new PostgreSQL repository
func New(db DBTX) *Repository {
	return &Repository{db: db}
}

// NewWithPool creates a new PostgreSQL repository with connection pool
func NewWithPool(pool *pgxpool.Pool) *Repository {
	return &Repository{db: pool}
}

const documentColumns = `id, client_ref, doc_type, file_name, content_type,
       size_bytes, checksum, status, reason, created_at, updated_at`

func scanDocument(row pgx.Row) (*simpledocument.Document, error) {
	var doc simpledocument.Document
	err := row.Scan(
		&doc.ID, &doc.ClientRef, &doc.DocType, &doc.FileName, &doc.ContentType,
		&doc.SizeBytes, &doc.Checksum, &doc.Status, &doc.Reason,
		&doc.CreatedAt, &doc.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, simpledocument.ErrDocumentNotFound
		}
		return nil, err
	}
	return &doc, nil
}

func (r *Repository) ListDocuments(ctx context.Context) ([]*simpledocument.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents ORDER BY created_at, id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
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

func (r *Repository) GetDocument(ctx context.Context, id uuid.UUID) (*simpledocument.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`
	return scanDocument(r.db.QueryRow(ctx, query, id))
}

func (r *Repository) InsertDocument(ctx context.Context, doc *simpledocument.Document) error {
	query := `
		INSERT INTO documents (
			id, client_ref, doc_type, file_name, content_type,
			size_bytes, checksum, status, reason, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.Exec(ctx, query,
		doc.ID, doc.ClientRef, doc.DocType, doc.FileName, doc.ContentType,
		doc.SizeBytes, doc.Checksum, doc.Status, doc.Reason,
		doc.CreatedAt, doc.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return simpledocument.ErrDocumentExists
		}
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

func (r *Repository) ReplaceDocument(ctx context.Context, id uuid.UUID, update func(simpledocument.Document) simpledocument.Document) (*simpledocument.Document, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("replace document: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `SELECT ` + documentColumns + ` FROM documents WHERE id = $1 FOR UPDATE`
	current, err := scanDocument(tx.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}

	updated := update(*current)
	updated.ID = id

	updateQuery := `
		UPDATE documents SET
			client_ref = $2, doc_type = $3, file_name = $4, content_type = $5,
			size_bytes = $6, checksum = $7, status = $8, reason = $9,
			updated_at = $10
		WHERE id = $1`

	_, err = tx.Exec(ctx, updateQuery,
		updated.ID, updated.ClientRef, updated.DocType, updated.FileName,
		updated.ContentType, updated.SizeBytes, updated.Checksum,
		updated.Status, updated.Reason, updated.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("replace document: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("replace document: %w", err)
	}
	return &updated, nil
}

func (r *Repository) DeleteDocument(ctx context.Context, id uuid.UUID) (*simpledocument.Document, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("delete document: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `SELECT ` + documentColumns + ` FROM documents WHERE id = $1 FOR UPDATE`
	doc, err := scanDocument(tx.QueryRow(ctx, query, id))
	if err != nil {
		return nil, err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id); err != nil {
		return nil, fmt.Errorf("delete document: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("delete document: %w", err)
	}
	return doc, nil
}
