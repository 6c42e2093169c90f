// Package store persists completed research runs.
package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a run record does not exist.
var ErrNotFound = errors.New("run not found")

// RunRecord is one completed research run.
type RunRecord struct {
	ID        string    `json:"id"`
	Query     string    `json:"query"`
	Goal      string    `json:"goal"`
	Report    string    `json:"report"`
	Steps     int       `json:"steps"`
	CreatedAt time.Time `json:"created_at"`
}

// RunStore defines the interface for run persistence.
type RunStore interface {
	// Save stores a run record, replacing any record with the same ID.
	Save(ctx context.Context, record *RunRecord) error

	// Load retrieves a run record by ID.
	Load(ctx context.Context, id string) (*RunRecord, error)

	// List returns all run records, newest first.
	List(ctx context.Context) ([]*RunRecord, error)

	// Delete removes a run record.
	Delete(ctx context.Context, id string) error
}
