package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadforge/b2b-api/internal/model"
	"github.com/leadforge/b2b-api/internal/repository"
)

func TestProjectCreatePopulatesRecord(t *testing.T) {
	db, mock := newMock(t)
	now := time.Now()

	mock.ExpectExec("INSERT INTO projects").
		WithArgs("spring campaign", testUser).
		WillReturnResult(sqlmock.NewResult(12, 1))
	mock.ExpectQuery("SELECT name, is_active, user_id, created_at, updated_at").
		WithArgs(uint64(12)).
		WillReturnRows(sqlmock.NewRows([]string{"name", "is_active", "user_id", "created_at", "updated_at"}).
			AddRow("spring campaign", true, testUser, now, now))

	repo := repository.NewProjectRepo(db)
	p := &model.Project{Name: "spring campaign", UserID: testUser}
	require.NoError(t, repo.Create(context.Background(), p))

	assert.Equal(t, uint64(12), p.ID)
	assert.True(t, p.IsActive)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectCreateConstraintViolation(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectExec("INSERT INTO projects").
		WithArgs("dup", testUser).
		WillReturnError(errors.New("Error 1062: Duplicate entry"))

	repo := repository.NewProjectRepo(db)
	err := repo.Create(context.Background(), &model.Project{Name: "dup", UserID: testUser})
	assert.ErrorIs(t, err, repository.ErrConstraint)
}

func TestProjectSoftDeleteIsIdempotent(t *testing.T) {
	db, mock := newMock(t)
	// The existence check deliberately skips is_active, so a second delete
	// of the same project finds the row and the UPDATE is a no-op.
	mock.ExpectQuery("SELECT 1 FROM projects").
		WithArgs(uint64(3), testUser).
		WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectExec("UPDATE projects").
		WithArgs(uint64(3), testUser).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := repository.NewProjectRepo(db)
	assert.NoError(t, repo.SoftDelete(context.Background(), 3, testUser))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProjectSoftDeleteForeignIsNotFound(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery("SELECT 1 FROM projects").
		WithArgs(uint64(3), testUser).
		WillReturnError(sql.ErrNoRows)

	repo := repository.NewProjectRepo(db)
	assert.ErrorIs(t, repo.SoftDelete(context.Background(), 3, testUser), repository.ErrNotFound)
}

func TestProjectGetByIDAndUserFiltersInactive(t *testing.T) {
	db, mock := newMock(t)
	// Soft-deleted projects are filtered in SQL, so the read path sees no
	// row at all.
	mock.ExpectQuery("SELECT project_id, name, is_active").
		WithArgs(uint64(8), testUser).
		WillReturnError(sql.ErrNoRows)

	repo := repository.NewProjectRepo(db)
	_, err := repo.GetByIDAndUser(context.Background(), 8, testUser)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}
