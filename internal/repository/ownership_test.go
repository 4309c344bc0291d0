package repository_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadforge/b2b-api/internal/repository"
)

const testUser = "3f1c9f0a-90f5-4f2a-9c51-6f7a2d3b8e11"

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestGuardProjectOwned(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("SELECT 1 FROM projects").
		WithArgs(uint64(4), testUser).
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

	g := repository.NewGuard(db)
	assert.NoError(t, g.Project(context.Background(), 4, testUser))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGuardProjectForeignIsNotFound(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("SELECT 1 FROM projects").
		WithArgs(uint64(4), testUser).
		WillReturnError(sql.ErrNoRows)

	g := repository.NewGuard(db)
	// A project owned by someone else is indistinguishable from a missing one.
	assert.ErrorIs(t, g.Project(context.Background(), 4, testUser), repository.ErrNotFound)
}

func TestGuardEmployeeChain(t *testing.T) {
	db, mock := newMock(t)
	// The employee guard resolves employee -> company -> query -> user with
	// joins and requires the query to be active.
	mock.ExpectQuery(`SELECT 1 FROM employees e\s+JOIN companies c ON c.company_id = e.company_id\s+JOIN queries q ON q.query_id = c.query_id`).
		WithArgs(uint64(77), testUser).
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

	g := repository.NewGuard(db)
	assert.NoError(t, g.Employee(context.Background(), 77, testUser))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGuardCompanySoftDeletedQueryIsNotFound(t *testing.T) {
	db, mock := newMock(t)
	// A company under a soft-deleted query matches no rows because the join
	// filters on q.is_active = TRUE.
	mock.ExpectQuery("SELECT 1 FROM companies c").
		WithArgs(uint64(5), testUser).
		WillReturnError(sql.ErrNoRows)

	g := repository.NewGuard(db)
	assert.ErrorIs(t, g.Company(context.Background(), 5, testUser), repository.ErrNotFound)
}

func TestGuardQueryAnyStateIgnoresSoftDelete(t *testing.T) {
	db, mock := newMock(t)
	// The delete-path variant has no is_active filter in its SQL.
	mock.ExpectQuery(`SELECT 1 FROM queries WHERE query_id = \? AND user_id = \?$`).
		WithArgs(uint64(9), testUser).
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

	g := repository.NewGuard(db)
	assert.NoError(t, g.QueryAnyState(context.Background(), 9, testUser))
	assert.NoError(t, mock.ExpectationsWereMet())
}
