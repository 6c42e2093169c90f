// Package postgres provides a PostgreSQL-backed run store.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/maximecaron/deepresearch/store"
)

// DBPool defines the interface for database connection pool
type DBPool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// PostgresRunStore implements store.RunStore using PostgreSQL.
type PostgresRunStore struct {
	pool      DBPool
	tableName string
}

// PostgresOptions configuration for Postgres connection
type PostgresOptions struct {
	ConnString string
	TableName  string // Default "runs"
}

// NewPostgresRunStore creates a new Postgres run store.
func NewPostgresRunStore(ctx context.Context, opts PostgresOptions) (*PostgresRunStore, error) {
	pool, err := pgxpool.New(ctx, opts.ConnString)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}

	tableName := opts.TableName
	if tableName == "" {
		tableName = "runs"
	}

	return &PostgresRunStore{
		pool:      pool,
		tableName: tableName,
	}, nil
}

// NewPostgresRunStoreWithPool creates a new Postgres run store with an existing pool.
// Useful for testing with mocks.
func NewPostgresRunStoreWithPool(pool DBPool, tableName string) *PostgresRunStore {
	if tableName == "" {
		tableName = "runs"
	}
	return &PostgresRunStore{
		pool:      pool,
		tableName: tableName,
	}
}

// InitSchema creates the necessary table if it doesn't exist.
func (s *PostgresRunStore) InitSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			query TEXT NOT NULL,
			goal TEXT NOT NULL,
			report TEXT NOT NULL,
			steps INTEGER NOT NULL,
			created_at TIMESTAMPTZ NOT NULL
		);
	`, s.tableName)

	if _, err := s.pool.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Close closes the connection pool.
func (s *PostgresRunStore) Close() {
	s.pool.Close()
}

// Save stores a run record.
func (s *PostgresRunStore) Save(ctx context.Context, record *store.RunRecord) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, query, goal, report, steps, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			query = EXCLUDED.query,
			goal = EXCLUDED.goal,
			report = EXCLUDED.report,
			steps = EXCLUDED.steps,
			created_at = EXCLUDED.created_at
	`, s.tableName)

	_, err := s.pool.Exec(ctx, query,
		record.ID,
		record.Query,
		record.Goal,
		record.Report,
		record.Steps,
		record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	return nil
}

// Load retrieves a run record by ID.
func (s *PostgresRunStore) Load(ctx context.Context, id string) (*store.RunRecord, error) {
	query := fmt.Sprintf(`
		SELECT id, query, goal, report, steps, created_at
		FROM %s WHERE id = $1
	`, s.tableName)

	var record store.RunRecord
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&record.ID,
		&record.Query,
		&record.Goal,
		&record.Report,
		&record.Steps,
		&record.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load run: %w", err)
	}
	return &record, nil
}

// List returns all run records, newest first.
func (s *PostgresRunStore) List(ctx context.Context) ([]*store.RunRecord, error) {
	query := fmt.Sprintf(`
		SELECT id, query, goal, report, steps, created_at
		FROM %s ORDER BY created_at DESC
	`, s.tableName)

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var records []*store.RunRecord
	for rows.Next() {
		var record store.RunRecord
		if err := rows.Scan(
			&record.ID,
			&record.Query,
			&record.Goal,
			&record.Report,
			&record.Steps,
			&record.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		records = append(records, &record)
	}
	return records, rows.Err()
}

// Delete removes a run record.
func (s *PostgresRunStore) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, s.tableName)

	tag, err := s.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}
