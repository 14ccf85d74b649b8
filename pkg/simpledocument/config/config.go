// Package config wires repository, storage, and audit backends into a ready
// simpledocument.Service from declarative settings.
package config

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tendant/simple-document/pkg/simpledocument"
	auditfile "github.com/tendant/simple-document/pkg/simpledocument/audit/file"
	auditmemory "github.com/tendant/simple-document/pkg/simpledocument/audit/memory"
	repofsjson "github.com/tendant/simple-document/pkg/simpledocument/repo/fsjson"
	repomemory "github.com/tendant/simple-document/pkg/simpledocument/repo/memory"
	repopostgres "github.com/tendant/simple-document/pkg/simpledocument/repo/postgres"
	reposqlite "github.com/tendant/simple-document/pkg/simpledocument/repo/sqlite"
	fsstorage "github.com/tendant/simple-document/pkg/simpledocument/storage/fs"
	memorystorage "github.com/tendant/simple-document/pkg/simpledocument/storage/memory"
	s3storage "github.com/tendant/simple-document/pkg/simpledocument/storage/s3"
)

// Config describes which backends to build and where they keep their data.
type Config struct {
	Environment string `env:"ENVIRONMENT" env-default:"development"`
	DataDir     string `env:"DATA_DIR" env-default:"data"`

	// Repository configuration: "memory", "fsjson", "sqlite", "postgres"
	RepositoryType string `env:"REPOSITORY_TYPE" env-default:"fsjson"`
	DatabaseURL    string `env:"DATABASE_URL" env-default:""`

	// Storage configuration: "memory", "fs", "s3"
	StorageType string `env:"STORAGE_TYPE" env-default:"fs"`

	// Audit configuration: "file", "memory", "db" (db requires a sqlite or
	// postgres repository)
	AuditType string `env:"AUDIT_TYPE" env-default:"file"`

	// AuditStrict fails operations whose audit append fails instead of
	// logging a warning.
	AuditStrict bool `env:"AUDIT_STRICT" env-default:"false"`

	S3 S3Config
}

// S3Config holds settings for the S3 storage backend
type S3Config struct {
	Endpoint        string `env:"AWS_S3_ENDPOINT" env-default:""`
	AccessKeyID     string `env:"AWS_ACCESS_KEY_ID" env-default:""`
	SecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY" env-default:""`
	Bucket          string `env:"AWS_S3_BUCKET" env-default:""`
	Region          string `env:"AWS_S3_REGION" env-default:"us-east-1"`
	KeyPrefix       string `env:"AWS_S3_KEY_PREFIX" env-default:"documents"`
	UsePathStyle    bool   `env:"AWS_S3_USE_PATH_STYLE" env-default:"false"`
	CreateBucket    bool   `env:"AWS_S3_CREATE_BUCKET" env-default:"false"`
}

// LoadFromEnv builds a Config from process environment variables, falling
// back to the defaults declared on the struct tags.
func LoadFromEnv() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.RepositoryType {
	case "memory", "fsjson", "sqlite", "postgres":
	default:
		return fmt.Errorf("repository type must be 'memory', 'fsjson', 'sqlite', or 'postgres', got %q", c.RepositoryType)
	}

	if c.RepositoryType == "postgres" && c.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required when using the postgres repository")
	}
	if (c.RepositoryType == "fsjson" || c.RepositoryType == "sqlite") && c.DataDir == "" {
		return errors.New("DATA_DIR is required when using a file-based repository")
	}

	switch c.StorageType {
	case "memory", "fs", "s3":
	default:
		return fmt.Errorf("storage type must be 'memory', 'fs', or 's3', got %q", c.StorageType)
	}
	if c.StorageType == "s3" && c.S3.Bucket == "" {
		return errors.New("AWS_S3_BUCKET is required when using s3 storage")
	}

	switch c.AuditType {
	case "file", "memory":
	case "db":
		if c.RepositoryType != "sqlite" && c.RepositoryType != "postgres" {
			return errors.New("audit type 'db' requires a sqlite or postgres repository")
		}
	default:
		return fmt.Errorf("audit type must be 'file', 'memory', or 'db', got %q", c.AuditType)
	}

	return nil
}

// BuildService creates a Service instance from the configuration
func (c *Config) BuildService(ctx context.Context) (simpledocument.Service, error) {
	var options []simpledocument.Option

	repo, dbAudit, err := c.buildRepository(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build repository: %w", err)
	}
	options = append(options, simpledocument.WithRepository(repo))

	store, err := c.buildStorage()
	if err != nil {
		return nil, fmt.Errorf("failed to build storage backend: %w", err)
	}
	options = append(options, simpledocument.WithBlobStore(store))

	audit, err := c.buildAuditLog(dbAudit)
	if err != nil {
		return nil, fmt.Errorf("failed to build audit log: %w", err)
	}
	options = append(options, simpledocument.WithAuditLog(audit))

	if c.AuditStrict {
		options = append(options, simpledocument.WithAuditFailurePolicy(simpledocument.AuditFailAbort))
	}

	return simpledocument.New(options...)
}

// buildRepository returns the repository plus, for database-backed
// repositories, an AuditLog sharing the same database.
func (c *Config) buildRepository(ctx context.Context) (simpledocument.Repository, simpledocument.AuditLog, error) {
	switch c.RepositoryType {
	case "memory":
		return repomemory.New(), nil, nil
	case "fsjson":
		repo, err := repofsjson.New(repofsjson.Config{
			Path: filepath.Join(c.DataDir, "documents.json"),
		})
		return repo, nil, err
	case "sqlite":
		store, err := reposqlite.NewStore(filepath.Join(c.DataDir, "documents.db"))
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil
	case "postgres":
		pool, err := pgxpool.New(ctx, c.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create connection pool: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			return nil, nil, fmt.Errorf("failed to ping database: %w", err)
		}
		return repopostgres.NewWithPool(pool), repopostgres.NewAuditLog(pool), nil
	default:
		return nil, nil, fmt.Errorf("unsupported repository type: %s", c.RepositoryType)
	}
}

func (c *Config) buildStorage() (simpledocument.BlobStore, error) {
	switch c.StorageType {
	case "memory":
		return memorystorage.New(), nil
	case "fs":
		return fsstorage.New(fsstorage.Config{
			BaseDir: filepath.Join(c.DataDir, "blobs"),
		})
	case "s3":
		return s3storage.New(s3storage.Config{
			Region:                 c.S3.Region,
			Bucket:                 c.S3.Bucket,
			AccessKeyID:            c.S3.AccessKeyID,
			SecretAccessKey:        c.S3.SecretAccessKey,
			Endpoint:               c.S3.Endpoint,
			UsePathStyle:           c.S3.UsePathStyle,
			KeyPrefix:              c.S3.KeyPrefix,
			CreateBucketIfNotExist: c.S3.CreateBucket,
		})
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", c.StorageType)
	}
}

func (c *Config) buildAuditLog(dbAudit simpledocument.AuditLog) (simpledocument.AuditLog, error) {
	switch c.AuditType {
	case "memory":
		return auditmemory.New(), nil
	case "file":
		return auditfile.New(auditfile.Config{
			Path: filepath.Join(c.DataDir, "audit.log"),
		})
	case "db":
		if dbAudit == nil {
			return nil, errors.New("audit type 'db' requires a database-backed repository")
		}
		return dbAudit, nil
	default:
		return nil, fmt.Errorf("unsupported audit type: %s", c.AuditType)
	}
}
