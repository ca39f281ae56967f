package share

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore keeps share records in the shares table.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore creates a PostgresStore with the given connection pool.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// Put upserts the record; the last write for a code wins.
func (s *PostgresStore) Put(ctx context.Context, r *Record) error {
	_, err := s.db.Exec(ctx,
		`INSERT INTO shares (file_code, s3_key, created_at)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (file_code)
		 DO UPDATE SET s3_key = EXCLUDED.s3_key, created_at = EXCLUDED.created_at`,
		r.Code, r.StorageKey, r.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("put share %q: %w", r.Code, err)
	}
	return nil
}

// Get fetches a record by its code.
func (s *PostgresStore) Get(ctx context.Context, code string) (*Record, error) {
	r := &Record{}
	err := s.db.QueryRow(ctx,
		`SELECT file_code, s3_key, created_at FROM shares WHERE file_code = $1`,
		code,
	).Scan(&r.Code, &r.StorageKey, &r.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get share %q: %w", code, err)
	}
	return r, nil
}

// Exists returns true if a record with the given code is stored.
func (s *PostgresStore) Exists(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM shares WHERE file_code = $1)`,
		code,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check share %q: %w", code, err)
	}
	return exists, nil
}

// ScanAll reads the whole table. Unbounded: only meant for the admin listing.
func (s *PostgresStore) ScanAll(ctx context.Context) ([]map[string]string, error) {
	rows, err := s.db.Query(ctx,
		`SELECT file_code AS "fileCode", s3_key AS "s3Key", created_at AS "createdAt" FROM shares`,
	)
	if err != nil {
		return nil, fmt.Errorf("scan shares: %w", err)
	}
	items, err := pgx.CollectRows(rows, pgx.RowToMap)
	if err != nil {
		return nil, fmt.Errorf("collect shares: %w", err)
	}

	out := make([]map[string]string, 0, len(items))
	for _, item := range items {
		out = append(out, Simplify(item))
	}
	return out, nil
}
