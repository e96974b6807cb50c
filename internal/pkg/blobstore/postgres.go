package blobstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const createBlobsTable = `
	CREATE TABLE IF NOT EXISTS blobs (
		key        TEXT PRIMARY KEY,
		data       BYTEA NOT NULL,
		version    BIGINT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)
`

type blobRow struct {
	Data    []byte `db:"data"`
	Version int64  `db:"version"`
}

// PostgresStore keeps blobs in a single table keyed by name. The version
// column is checked in the WHERE clause so only one writer wins.
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore creates a Postgres backed store
func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the blobs table if needed
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, createBlobsTable); err != nil {
		return fmt.Errorf("failed to create blobs table: %w", err)
	}
	return nil
}

// Get reads the blob stored under key
func (s *PostgresStore) Get(ctx context.Context, key string) (Blob, error) {
	query := `SELECT data, version FROM blobs WHERE key = $1`

	var row blobRow
	if err := s.db.GetContext(ctx, &row, query, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Blob{}, ErrNotFound
		}
		return Blob{}, fmt.Errorf("failed to get blob %s: %w", key, err)
	}

	return Blob{Data: row.Data, Version: row.Version}, nil
}

// Set upserts the blob and bumps its version
func (s *PostgresStore) Set(ctx context.Context, key string, data []byte) (int64, error) {
	query := `
		INSERT INTO blobs (key, data, version, updated_at)
		VALUES ($1, $2, 1, now())
		ON CONFLICT (key) DO UPDATE
		SET data = EXCLUDED.data, version = blobs.version + 1, updated_at = now()
		RETURNING version
	`

	var version int64
	if err := s.db.GetContext(ctx, &version, query, key, data); err != nil {
		return 0, fmt.Errorf("failed to set blob %s: %w", key, err)
	}
	return version, nil
}

// CompareAndSwap writes only if the stored version equals version
func (s *PostgresStore) CompareAndSwap(ctx context.Context, key string, version int64, data []byte) (int64, error) {
	var (
		res sql.Result
		err error
	)

	if version == 0 {
		query := `
			INSERT INTO blobs (key, data, version, updated_at)
			VALUES ($1, $2, 1, now())
			ON CONFLICT (key) DO NOTHING
		`
		res, err = s.db.ExecContext(ctx, query, key, data)
	} else {
		query := `
			UPDATE blobs
			SET data = $1, version = version + 1, updated_at = now()
			WHERE key = $2 AND version = $3
		`
		res, err = s.db.ExecContext(ctx, query, data, key, version)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to swap blob %s: %w", key, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to swap blob %s: %w", key, err)
	}
	if affected == 0 {
		return 0, ErrVersionConflict
	}

	return version + 1, nil
}

// Delete removes the key
func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM blobs WHERE key = $1`, key); err != nil {
		return fmt.Errorf("failed to delete blob %s: %w", key, err)
	}
	return nil
}
