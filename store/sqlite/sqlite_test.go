package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maximecaron/deepresearch/store"
)

func newTestStore(t *testing.T) *SqliteRunStore {
	t.Helper()

	s, err := NewSqliteRunStore(SqliteOptions{Path: ":memory:"})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSqliteRunStore_SaveAndLoad(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	record := &store.RunRecord{
		ID:        "run-1",
		Query:     "which container runtime should I use?",
		Goal:      "Compare container runtimes",
		Report:    "# Report",
		Steps:     3,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
	}
	require.NoError(t, s.Save(ctx, record))

	loaded, err := s.Load(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, record.ID, loaded.ID)
	assert.Equal(t, record.Query, loaded.Query)
	assert.Equal(t, record.Goal, loaded.Goal)
	assert.Equal(t, record.Report, loaded.Report)
	assert.Equal(t, record.Steps, loaded.Steps)
	assert.True(t, record.CreatedAt.Equal(loaded.CreatedAt))
}

func TestSqliteRunStore_SaveReplacesExisting(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, s.Save(ctx, &store.RunRecord{ID: "run-1", Report: "v1", CreatedAt: now}))
	require.NoError(t, s.Save(ctx, &store.RunRecord{ID: "run-1", Report: "v2", CreatedAt: now}))

	loaded, err := s.Load(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, "v2", loaded.Report)

	records, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestSqliteRunStore_LoadNonExistent(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Load(context.Background(), "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSqliteRunStore_ListNewestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	base := time.Now().UTC()

	require.NoError(t, s.Save(ctx, &store.RunRecord{ID: "old", CreatedAt: base.Add(-time.Hour)}))
	require.NoError(t, s.Save(ctx, &store.RunRecord{ID: "new", CreatedAt: base}))

	records, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "new", records[0].ID)
	assert.Equal(t, "old", records[1].ID)
}

func TestSqliteRunStore_Delete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, &store.RunRecord{ID: "run-1", CreatedAt: time.Now().UTC()}))
	require.NoError(t, s.Delete(ctx, "run-1"))

	_, err := s.Load(ctx, "run-1")
	assert.ErrorIs(t, err, store.ErrNotFound)

	assert.ErrorIs(t, s.Delete(ctx, "run-1"), store.ErrNotFound)
}
