// Package sqlite provides a SQLite-backed run store.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/maximecaron/deepresearch/store"
)

// SqliteRunStore implements store.RunStore using SQLite.
type SqliteRunStore struct {
	db        *sql.DB
	tableName string
}

// SqliteOptions configuration for SQLite connection
type SqliteOptions struct {
	Path      string
	TableName string // Default "runs"
}

// NewSqliteRunStore creates a new SQLite run store.
func NewSqliteRunStore(opts SqliteOptions) (*SqliteRunStore, error) {
	db, err := sql.Open("sqlite3", opts.Path)
	if err != nil {
		return nil, fmt.Errorf("unable to open database: %w", err)
	}

	tableName := opts.TableName
	if tableName == "" {
		tableName = "runs"
	}

	s := &SqliteRunStore{
		db:        db,
		tableName: tableName,
	}

	if err := s.InitSchema(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// InitSchema creates the necessary table if it doesn't exist.
func (s *SqliteRunStore) InitSchema(ctx context.Context) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			query TEXT NOT NULL,
			goal TEXT NOT NULL,
			report TEXT NOT NULL,
			steps INTEGER NOT NULL,
			created_at DATETIME NOT NULL
		);
	`, s.tableName)

	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SqliteRunStore) Close() error {
	return s.db.Close()
}

// Save stores a run record.
func (s *SqliteRunStore) Save(ctx context.Context, record *store.RunRecord) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, query, goal, report, steps, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			query = excluded.query,
			goal = excluded.goal,
			report = excluded.report,
			steps = excluded.steps,
			created_at = excluded.created_at
	`, s.tableName)

	_, err := s.db.ExecContext(ctx, query,
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
func (s *SqliteRunStore) Load(ctx context.Context, id string) (*store.RunRecord, error) {
	query := fmt.Sprintf(`
		SELECT id, query, goal, report, steps, created_at
		FROM %s WHERE id = ?
	`, s.tableName)

	var record store.RunRecord
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&record.ID,
		&record.Query,
		&record.Goal,
		&record.Report,
		&record.Steps,
		&record.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load run: %w", err)
	}
	return &record, nil
}

// List returns all run records, newest first.
func (s *SqliteRunStore) List(ctx context.Context) ([]*store.RunRecord, error) {
	query := fmt.Sprintf(`
		SELECT id, query, goal, report, steps, created_at
		FROM %s ORDER BY created_at DESC
	`, s.tableName)

	rows, err := s.db.QueryContext(ctx, query)
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
func (s *SqliteRunStore) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, s.tableName)

	res, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}
