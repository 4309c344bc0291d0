package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadforge/b2b-api/internal/repository"
)

var queryCols = []string{
	"query_id", "sector", "location", "type", "maps_results",
	"search_results", "user_id", "project_id", "is_active",
	"started_at", "finished_at",
}

func TestQueryGetByIDAndUserRunningQuery(t *testing.T) {
	db, mock := newMock(t)
	started := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	// A running query has NULL counts and NULL finished_at; the scan must
	// land those in nil pointers, not zero values.
	mock.ExpectQuery("FROM queries").
		WithArgs(uint64(6), testUser).
		WillReturnRows(sqlmock.NewRows(queryCols).
			AddRow(6, "plumbers", "leeds", "standard", nil, nil,
				testUser, 2, true, started, nil))

	repo := repository.NewQueryRepo(db)
	q, err := repo.GetByIDAndUser(context.Background(), 6, testUser)
	require.NoError(t, err)

	assert.Nil(t, q.MapsResults)
	assert.Nil(t, q.FinishedAt)
	assert.False(t, q.Run().Finished)
}

func TestQueryGetByIDAndUserFinishedQuery(t *testing.T) {
	db, mock := newMock(t)
	started := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	finished := started.Add(10 * time.Minute)
	mock.ExpectQuery("FROM queries").
		WithArgs(uint64(6), testUser).
		WillReturnRows(sqlmock.NewRows(queryCols).
			AddRow(6, "plumbers", "leeds", "standard", int64(40), int64(120),
				testUser, 2, true, started, finished))

	repo := repository.NewQueryRepo(db)
	q, err := repo.GetByIDAndUser(context.Background(), 6, testUser)
	require.NoError(t, err)

	require.NotNil(t, q.MapsResults)
	assert.Equal(t, int64(40), *q.MapsResults)
	run := q.Run()
	assert.True(t, run.Finished)
	assert.Equal(t, finished, run.FinishedAt)
}

func TestQuerySoftDeleteIsIdempotent(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("SELECT 1 FROM queries").
		WithArgs(uint64(6), testUser).
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectExec("UPDATE queries SET is_active = FALSE").
		WithArgs(uint64(6), testUser).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := repository.NewQueryRepo(db)
	assert.NoError(t, repo.SoftDelete(context.Background(), 6, testUser))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQueryListByUserOptionalProjectFilter(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(`AND project_id = \?`).
		WithArgs(testUser, uint64(2), 100, 0).
		WillReturnRows(sqlmock.NewRows(queryCols))

	repo := repository.NewQueryRepo(db)
	items, err := repo.ListByUser(context.Background(), testUser, 2, 0, 100)
	require.NoError(t, err)
	assert.Empty(t, items)
	assert.NotNil(t, items)
}
