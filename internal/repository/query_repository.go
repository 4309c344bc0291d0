// This file defines repository methods for queries.  Query rows are created
// by the scraping worker when it consumes a new-query job; the API only
// reads them and soft-deletes them, so there is no Create method here.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/leadforge/b2b-api/internal/model"
)

// QueryRepo encapsulates all database queries related to lead-generation
// queries.
type QueryRepo struct {
	db *sql.DB // db is the underlying database connection pool
}

// NewQueryRepo constructs a QueryRepo with the provided DB handle.
func NewQueryRepo(db *sql.DB) *QueryRepo {
	return &QueryRepo{db: db}
}

const queryColumns = `query_id, sector, location, type, maps_results,
	search_results, user_id, project_id, is_active, started_at, finished_at`

func scanQuery(row interface{ Scan(...any) error }, q *model.Query) error {
	return row.Scan(&q.ID, &q.Sector, &q.Location, &q.Type, &q.MapsResults,
		&q.SearchResults, &q.UserID, &q.ProjectID, &q.IsActive,
		&q.StartedAt, &q.FinishedAt)
}

// GetByIDAndUser fetches an active query owned by the user.  Absent,
// foreign or soft-deleted queries return ErrNotFound.
func (r *QueryRepo) GetByIDAndUser(ctx context.Context, id uint64, userID string) (*model.Query, error) {
	const q = `SELECT ` + queryColumns + `
	           FROM queries
	           WHERE query_id = ? AND user_id = ? AND is_active = TRUE`
	var out model.Query
	if err := scanQuery(r.db.QueryRowContext(ctx, q, id, userID), &out); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}

// ListByUser returns the user's active queries ordered by id, optionally
// filtered to one project (projectID > 0), with offset/limit pagination.
func (r *QueryRepo) ListByUser(ctx context.Context, userID string, projectID uint64, offset, limit int) ([]*model.Query, error) {
	q := `SELECT ` + queryColumns + `
	      FROM queries WHERE user_id = ? AND is_active = TRUE`
	args := []any{userID}
	if projectID > 0 {
		q += ` AND project_id = ?`
		args = append(args, projectID)
	}
	q += ` ORDER BY query_id LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.Query{}
	for rows.Next() {
		item := new(model.Query)
		if err := scanQuery(rows, item); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// SoftDelete marks a query inactive without touching its companies or
// employees.  The lookup ignores is_active so deleting an already-deleted
// query is a no-op rather than an error.
func (r *QueryRepo) SoftDelete(ctx context.Context, id uint64, userID string) error {
	var exists int
	const qCheck = `SELECT 1 FROM queries WHERE query_id = ? AND user_id = ?`
	if err := r.db.QueryRowContext(ctx, qCheck, id, userID).Scan(&exists); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	const q = `UPDATE queries SET is_active = FALSE WHERE query_id = ? AND user_id = ?`
	_, err := r.db.ExecContext(ctx, q, id, userID)
	return err
}
