// Package repository contains data access logic separated from HTTP
// handlers.  This file implements the single ownership and soft-delete
// guard applied before every read or mutation.  Each entity kind has one
// resolution chain to the owning user:
//
//	project, query, image template, image  -> direct user_id column
//	company                                -> company.query.user_id
//	employee                               -> employee.company.query.user_id
//
// The chain is always verified with a join; the redundant user_id columns
// on query/project are the authority, while companies and employees inherit
// ownership only transitively.  Soft-deleted projects and queries are
// treated as absent on the read paths.  Every failure mode collapses into
// ErrNotFound so callers cannot distinguish "does not exist" from "not
// yours".
package repository

import (
	"context"
	"database/sql"
	"errors"
)

// Guard resolves entity ownership chains against the database.  All checks
// are read-only; handlers call the guard before touching an entity and
// translate ErrNotFound into a 404.
type Guard struct {
	db *sql.DB
}

// NewGuard constructs a Guard with the provided DB handle.
func NewGuard(db *sql.DB) *Guard {
	return &Guard{db: db}
}

// ownedRow runs a single-column EXISTS-style query and normalizes the
// outcome: sql.ErrNoRows becomes ErrNotFound, other errors pass through.
func (g *Guard) ownedRow(ctx context.Context, q string, args ...any) error {
	var one int
	if err := g.db.QueryRowContext(ctx, q, args...).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

// Project verifies that an active project exists and belongs to the user.
func (g *Guard) Project(ctx context.Context, projectID uint64, userID string) error {
	const q = `SELECT 1 FROM projects
	           WHERE project_id = ? AND user_id = ? AND is_active = TRUE`
	return g.ownedRow(ctx, q, projectID, userID)
}

// ProjectAnyState is the delete-path variant: it ignores is_active so that
// soft-deleting an already-deleted project stays idempotent.
func (g *Guard) ProjectAnyState(ctx context.Context, projectID uint64, userID string) error {
	const q = `SELECT 1 FROM projects WHERE project_id = ? AND user_id = ?`
	return g.ownedRow(ctx, q, projectID, userID)
}

// Query verifies that an active query exists and belongs to the user.
func (g *Guard) Query(ctx context.Context, queryID uint64, userID string) error {
	const q = `SELECT 1 FROM queries
	           WHERE query_id = ? AND user_id = ? AND is_active = TRUE`
	return g.ownedRow(ctx, q, queryID, userID)
}

// QueryAnyState ignores is_active, for the idempotent soft-delete path.
func (g *Guard) QueryAnyState(ctx context.Context, queryID uint64, userID string) error {
	const q = `SELECT 1 FROM queries WHERE query_id = ? AND user_id = ?`
	return g.ownedRow(ctx, q, queryID, userID)
}

// Company resolves company -> query -> user and requires the query to be
// active.
func (g *Guard) Company(ctx context.Context, companyID uint64, userID string) error {
	const q = `SELECT 1 FROM companies c
	           JOIN queries q ON q.query_id = c.query_id
	           WHERE c.company_id = ? AND q.user_id = ? AND q.is_active = TRUE`
	return g.ownedRow(ctx, q, companyID, userID)
}

// Employee resolves employee -> company -> query -> user and requires the
// query to be active.
func (g *Guard) Employee(ctx context.Context, employeeID uint64, userID string) error {
	const q = `SELECT 1 FROM employees e
	           JOIN companies c ON c.company_id = e.company_id
	           JOIN queries q ON q.query_id = c.query_id
	           WHERE e.employee_id = ? AND q.user_id = ? AND q.is_active = TRUE`
	return g.ownedRow(ctx, q, employeeID, userID)
}

// Template verifies direct ownership of an image template.  Templates have
// no soft-delete flag; deletion removes the row.
func (g *Guard) Template(ctx context.Context, templateID uint64, userID string) error {
	const q = `SELECT 1 FROM image_templates
	           WHERE image_template_id = ? AND user_id = ?`
	return g.ownedRow(ctx, q, templateID, userID)
}

// Image verifies direct ownership of a generated image.
func (g *Guard) Image(ctx context.Context, imageID uint64, userID string) error {
	const q = `SELECT 1 FROM images WHERE image_id = ? AND user_id = ?`
	return g.ownedRow(ctx, q, imageID, userID)
}
