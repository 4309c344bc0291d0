// Package repository contains data access logic separated from HTTP handlers.
// This file defines repository methods for projects.  A project is the
// top-level container a user creates to group lead-generation queries.
// Deletion is always a soft delete: is_active flips to FALSE and the row
// stays, so child queries keep their parent.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/leadforge/b2b-api/internal/model"
)

// ProjectRepo encapsulates all database queries related to projects.  It
// depends on a sql.DB connection which should be configured elsewhere.
type ProjectRepo struct {
	db *sql.DB // db is the underlying database connection pool
}

// NewProjectRepo constructs a ProjectRepo with the provided DB handle.  This
// function allows dependency injection of the database in tests and at
// startup.
func NewProjectRepo(db *sql.DB) *ProjectRepo {
	return &ProjectRepo{db: db}
}

// Create inserts a new project for the user.  On success the project's ID
// and timestamp fields are populated with a follow-up SELECT so callers
// receive a fully populated record.  Constraint violations surface as
// ErrConstraint.
func (r *ProjectRepo) Create(ctx context.Context, p *model.Project) error {
	const qInsert = "INSERT INTO projects (name, user_id) VALUES (?, ?)"
	res, err := r.db.ExecContext(ctx, qInsert, p.Name, p.UserID)
	if err != nil {
		if isConstraintErr(err) {
			return ErrConstraint
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	p.ID = uint64(id)

	const qSelect = `SELECT name, is_active, user_id, created_at, updated_at
	                 FROM projects WHERE project_id = ?`
	return r.db.QueryRowContext(ctx, qSelect, p.ID).
		Scan(&p.Name, &p.IsActive, &p.UserID, &p.CreatedAt, &p.UpdatedAt)
}

// GetByIDAndUser fetches an active project by id but only if it belongs to
// the given user.  Absent, foreign or soft-deleted projects all return
// ErrNotFound.
func (r *ProjectRepo) GetByIDAndUser(ctx context.Context, id uint64, userID string) (*model.Project, error) {
	const q = `SELECT project_id, name, is_active, user_id, created_at, updated_at
	           FROM projects
	           WHERE project_id = ? AND user_id = ? AND is_active = TRUE`
	var p model.Project
	err := r.db.QueryRowContext(ctx, q, id, userID).
		Scan(&p.ID, &p.Name, &p.IsActive, &p.UserID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// ListByUser returns the user's active projects ordered by id, with
// offset/limit pagination.
func (r *ProjectRepo) ListByUser(ctx context.Context, userID string, offset, limit int) ([]*model.Project, error) {
	const q = `SELECT project_id, name, is_active, user_id, created_at, updated_at
	           FROM projects
	           WHERE user_id = ? AND is_active = TRUE
	           ORDER BY project_id LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, q, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.Project{}
	for rows.Next() {
		p := new(model.Project)
		if err := rows.Scan(&p.ID, &p.Name, &p.IsActive, &p.UserID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// SoftDelete marks a project inactive.  The lookup ignores is_active so a
// second delete of the same project succeeds and changes nothing; the row
// itself is never removed.  Returns ErrNotFound when the project does not
// exist or is owned by someone else.
func (r *ProjectRepo) SoftDelete(ctx context.Context, id uint64, userID string) error {
	var exists int
	const qCheck = `SELECT 1 FROM projects WHERE project_id = ? AND user_id = ?`
	if err := r.db.QueryRowContext(ctx, qCheck, id, userID).Scan(&exists); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	const q = `UPDATE projects
	           SET is_active = FALSE, updated_at = CURRENT_TIMESTAMP
	           WHERE project_id = ? AND user_id = ?`
	_, err := r.db.ExecContext(ctx, q, id, userID)
	return err
}

// isConstraintErr reports whether a MySQL error is a constraint violation
// (duplicate key, bad foreign key, or NOT NULL breach).
func isConstraintErr(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "1062") || // duplicate entry
		strings.Contains(msg, "1452") || // foreign key
		strings.Contains(msg, "1048") // column cannot be null
}
