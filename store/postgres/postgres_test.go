package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"

	"github.com/maximecaron/deepresearch/store"
)

func testRecord() *store.RunRecord {
	return &store.RunRecord{
		ID:        "run-1",
		Query:     "which container runtime should I use?",
		Goal:      "Compare container runtimes",
		Report:    "# Report",
		Steps:     3,
		CreatedAt: time.Now().UTC(),
	}
}

func TestPostgresRunStore_Save(t *testing.T) {
	mock, err := pgxmock.NewPool()
	assert.NoError(t, err)
	defer mock.Close()

	s := NewPostgresRunStoreWithPool(mock, "runs")
	record := testRecord()

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO runs")).
		WithArgs(
			record.ID,
			record.Query,
			record.Goal,
			record.Report,
			record.Steps,
			record.CreatedAt,
		).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = s.Save(context.Background(), record)
	assert.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRunStore_Load(t *testing.T) {
	mock, err := pgxmock.NewPool()
	assert.NoError(t, err)
	defer mock.Close()

	s := NewPostgresRunStoreWithPool(mock, "runs")
	record := testRecord()

	rows := pgxmock.NewRows([]string{"id", "query", "goal", "report", "steps", "created_at"}).
		AddRow(record.ID, record.Query, record.Goal, record.Report, record.Steps, record.CreatedAt)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, query, goal, report, steps, created_at")).
		WithArgs(record.ID).
		WillReturnRows(rows)

	loaded, err := s.Load(context.Background(), record.ID)
	assert.NoError(t, err)
	assert.Equal(t, record.ID, loaded.ID)
	assert.Equal(t, record.Report, loaded.Report)
	assert.Equal(t, record.Steps, loaded.Steps)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRunStore_LoadNonExistent(t *testing.T) {
	mock, err := pgxmock.NewPool()
	assert.NoError(t, err)
	defer mock.Close()

	s := NewPostgresRunStoreWithPool(mock, "runs")

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, query, goal, report, steps, created_at")).
		WithArgs("missing").
		WillReturnRows(pgxmock.NewRows([]string{"id", "query", "goal", "report", "steps", "created_at"}))

	_, err = s.Load(context.Background(), "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRunStore_List(t *testing.T) {
	mock, err := pgxmock.NewPool()
	assert.NoError(t, err)
	defer mock.Close()

	s := NewPostgresRunStoreWithPool(mock, "runs")
	base := time.Now().UTC()

	rows := pgxmock.NewRows([]string{"id", "query", "goal", "report", "steps", "created_at"}).
		AddRow("new", "q", "g", "r", 1, base).
		AddRow("old", "q", "g", "r", 1, base.Add(-time.Hour))

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY created_at DESC")).
		WillReturnRows(rows)

	records, err := s.List(context.Background())
	assert.NoError(t, err)
	assert.Len(t, records, 2)
	assert.Equal(t, "new", records[0].ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRunStore_Delete(t *testing.T) {
	mock, err := pgxmock.NewPool()
	assert.NoError(t, err)
	defer mock.Close()

	s := NewPostgresRunStoreWithPool(mock, "runs")

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM runs WHERE id = $1")).
		WithArgs("run-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	assert.NoError(t, s.Delete(context.Background(), "run-1"))

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM runs WHERE id = $1")).
		WithArgs("missing").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	assert.ErrorIs(t, s.Delete(context.Background(), "missing"), store.ErrNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}
