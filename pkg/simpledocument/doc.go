// Package simpledocument provides a reusable library for document lifecycle
// management with pluggable metadata, blob storage, and audit backends.
//
// It exposes a single Service interface that orchestrates document ingestion,
// content validation, status transitions, and two-phase deletion. Document
// metadata (the index) and document payload (the blob store) are kept in
// independent stores; the service is the only component responsible for
// keeping them consistent. Every mutating or content-read operation appends
// to an append-only audit log.
//
// Implementations of repositories (memory, JSON file, Postgres, SQLite),
// blob stores (memory, filesystem, S3), and audit logs (memory, JSONL file)
// are provided under subpackages.
//
// Status Model
//
// A document is created in the transient RECEIVED state, which is resolved to
// VALIDATED or REJECTED by the content validator before the record is ever
// persisted. PROCESSED is terminal: processed documents can neither be
// modified nor deleted. Deletion is two-phase: the first delete on a
// non-rejected document only marks it REJECTED (content retained for audit);
// deleting an already-rejected document removes both the blob and the record.
package simpledocument
