package config

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tendant/simple-document/pkg/simpledocument"
)

func TestLoadFromEnv(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := LoadFromEnv()
		require.NoError(t, err)

		assert.Equal(t, "development", cfg.Environment)
		assert.Equal(t, "data", cfg.DataDir)
		assert.Equal(t, "fsjson", cfg.RepositoryType)
		assert.Equal(t, "fs", cfg.StorageType)
		assert.Equal(t, "file", cfg.AuditType)
		assert.False(t, cfg.AuditStrict)
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("REPOSITORY_TYPE", "sqlite")
		t.Setenv("STORAGE_TYPE", "memory")
		t.Setenv("AUDIT_TYPE", "db")
		t.Setenv("AUDIT_STRICT", "true")
		t.Setenv("DATA_DIR", t.TempDir())

		cfg, err := LoadFromEnv()
		require.NoError(t, err)

		assert.Equal(t, "sqlite", cfg.RepositoryType)
		assert.Equal(t, "memory", cfg.StorageType)
		assert.Equal(t, "db", cfg.AuditType)
		assert.True(t, cfg.AuditStrict)
	})
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			DataDir:        "data",
			RepositoryType: "fsjson",
			StorageType:    "fs",
			AuditType:      "file",
		}
	}

	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *Config) {},
		},
		{
			name:        "unknown repository type",
			mutate:      func(c *Config) { c.RepositoryType = "mongo" },
			expectError: true,
		},
		{
			name:        "postgres without database url",
			mutate:      func(c *Config) { c.RepositoryType = "postgres" },
			expectError: true,
		},
		{
			name: "postgres with database url",
			mutate: func(c *Config) {
				c.RepositoryType = "postgres"
				c.DatabaseURL = "postgres://localhost/documents"
			},
		},
		{
			name: "fsjson without data dir",
			mutate: func(c *Config) {
				c.DataDir = ""
			},
			expectError: true,
		},
		{
			name:        "unknown storage type",
			mutate:      func(c *Config) { c.StorageType = "gcs" },
			expectError: true,
		},
		{
			name:        "s3 without bucket",
			mutate:      func(c *Config) { c.StorageType = "s3" },
			expectError: true,
		},
		{
			name: "s3 with bucket",
			mutate: func(c *Config) {
				c.StorageType = "s3"
				c.S3.Bucket = "documents"
			},
		},
		{
			name:        "unknown audit type",
			mutate:      func(c *Config) { c.AuditType = "kafka" },
			expectError: true,
		},
		{
			name:        "db audit needs a database repository",
			mutate:      func(c *Config) { c.AuditType = "db" },
			expectError: true,
		},
		{
			name: "db audit with sqlite repository",
			mutate: func(c *Config) {
				c.RepositoryType = "sqlite"
				c.AuditType = "db"
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBuildService(t *testing.T) {
	ctx := context.Background()

	t.Run("memory stack", func(t *testing.T) {
		cfg := &Config{
			RepositoryType: "memory",
			StorageType:    "memory",
			AuditType:      "memory",
		}

		svc, err := cfg.BuildService(ctx)
		require.NoError(t, err)
		require.NotNil(t, svc)

		doc, err := svc.CreateDocument(ctx, simpledocument.CreateDocumentRequest{
			FileName:    "doc.txt",
			ContentType: "text/plain",
			Content:     []byte("hello"),
		})
		require.NoError(t, err)
		assert.Equal(t, simpledocument.StatusValidated, doc.Status)
	})

	t.Run("sqlite stack with db audit", func(t *testing.T) {
		cfg := &Config{
			DataDir:        t.TempDir(),
			RepositoryType: "sqlite",
			StorageType:    "memory",
			AuditType:      "db",
		}

		svc, err := cfg.BuildService(ctx)
		require.NoError(t, err)

		doc, err := svc.CreateDocument(ctx, simpledocument.CreateDocumentRequest{
			FileName:    "doc.txt",
			ContentType: "text/plain",
			Content:     []byte("hello"),
		})
		require.NoError(t, err)

		got, err := svc.GetDocument(ctx, doc.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
	})

	t.Run("invalid config fails", func(t *testing.T) {
		cfg := &Config{RepositoryType: "mongo"}
		_, err := cfg.BuildService(ctx)
		assert.Error(t, err)
	})
}
