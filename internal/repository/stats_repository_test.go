package repository_test

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadforge/b2b-api/internal/repository"
)

func countRow(n int) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"count"}).AddRow(n)
}

func TestQueryTotals(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM companies c`).
		WithArgs(uint64(5)).WillReturnRows(countRow(10))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM employees e\s+JOIN companies c`).
		WithArgs(uint64(5)).WillReturnRows(countRow(42))
	mock.ExpectQuery(`AND e.email != ''`).
		WithArgs(uint64(5)).WillReturnRows(countRow(7))

	repo := repository.NewStatsRepo(db)
	totals, err := repo.QueryTotals(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, repository.QueryTotals{Companies: 10, Employees: 42, Emails: 7}, totals)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompanySizes(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("GROUP BY e.company_id").
		WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"company_id", "count", "has_email"}).
			AddRow(1, 3, 1).
			AddRow(2, 1, 0))

	repo := repository.NewStatsRepo(db)
	sizes, err := repo.CompanySizes(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, sizes, 2)
	assert.Equal(t, repository.CompanySize{CompanyID: 1, Employees: 3, HasEmail: true}, sizes[0])
	assert.Equal(t, repository.CompanySize{CompanyID: 2, Employees: 1, HasEmail: false}, sizes[1])
}

func TestProjectTotalsScopedToProject(t *testing.T) {
	db, mock := newMock(t)
	// With a project filter every count carries (userID, projectID); all
	// four queries exclude soft-deleted queries.
	mock.ExpectQuery(`finished_at IS NULL`).
		WithArgs(testUser, uint64(2)).WillReturnRows(countRow(1))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM companies c`).
		WithArgs(testUser, uint64(2)).WillReturnRows(countRow(20))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM employees e`).
		WithArgs(testUser, uint64(2)).WillReturnRows(countRow(80))
	mock.ExpectQuery(`AND e.email != ''`).
		WithArgs(testUser, uint64(2)).WillReturnRows(countRow(15))

	repo := repository.NewStatsRepo(db)
	totals, err := repo.ProjectTotals(context.Background(), testUser, 2)
	require.NoError(t, err)
	assert.Equal(t, repository.ProjectTotals{
		Companies: 20, Employees: 80, Emails: 15, QueriesInProgress: 1,
	}, totals)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectTotalsAllProjects(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(`finished_at IS NULL`).
		WithArgs(testUser).WillReturnRows(countRow(0))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM companies c`).
		WithArgs(testUser).WillReturnRows(countRow(0))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM employees e`).
		WithArgs(testUser).WillReturnRows(countRow(0))
	mock.ExpectQuery(`AND e.email != ''`).
		WithArgs(testUser).WillReturnRows(countRow(0))

	repo := repository.NewStatsRepo(db)
	totals, err := repo.ProjectTotals(context.Background(), testUser, 0)
	require.NoError(t, err)
	assert.Equal(t, repository.ProjectTotals{}, totals)
}
