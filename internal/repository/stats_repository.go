// This file defines the read-only aggregation queries behind the stats
// endpoints.  Counts are computed in SQL; the dense size histogram is
// shaped afterwards by the leads package.
package repository

import (
	"context"
	"database/sql"
)

// StatsRepo runs aggregate count queries across the query/company/employee
// graph.
type StatsRepo struct {
	db *sql.DB // db is the underlying database connection pool
}

// NewStatsRepo constructs a StatsRepo with the provided DB handle.
func NewStatsRepo(db *sql.DB) *StatsRepo {
	return &StatsRepo{db: db}
}

// QueryTotals are the flat counts for a single query.
type QueryTotals struct {
	Companies int // companies the query discovered
	Employees int // employees across those companies
	Emails    int // employees with a non-empty email
}

// CompanySize is one GROUP BY row: how many employees a company has and
// whether at least one of them carries a non-empty email.  Companies with
// zero employees do not appear here; the totals still count them.
type CompanySize struct {
	CompanyID uint64
	Employees int
	HasEmail  bool
}

// QueryTotals returns the flat counts for one query.  A query with no data
// yields zeroes, never an error.
func (r *StatsRepo) QueryTotals(ctx context.Context, queryID uint64) (QueryTotals, error) {
	var t QueryTotals
	const qCompanies = `SELECT COUNT(*) FROM companies c WHERE c.query_id = ?`
	if err := r.db.QueryRowContext(ctx, qCompanies, queryID).Scan(&t.Companies); err != nil {
		return t, err
	}
	const qEmployees = `SELECT COUNT(*) FROM employees e
	                    JOIN companies c ON c.company_id = e.company_id
	                    WHERE c.query_id = ?`
	if err := r.db.QueryRowContext(ctx, qEmployees, queryID).Scan(&t.Employees); err != nil {
		return t, err
	}
	const qEmails = `SELECT COUNT(*) FROM employees e
	                 JOIN companies c ON c.company_id = e.company_id
	                 WHERE c.query_id = ? AND e.email != ''`
	if err := r.db.QueryRowContext(ctx, qEmails, queryID).Scan(&t.Emails); err != nil {
		return t, err
	}
	return t, nil
}

// CompanySizes returns one row per company with at least one employee:
// the employee count and whether any employee has a non-empty email.
func (r *StatsRepo) CompanySizes(ctx context.Context, queryID uint64) ([]CompanySize, error) {
	const q = `SELECT e.company_id, COUNT(*),
	                  MAX(CASE WHEN e.email != '' THEN 1 ELSE 0 END)
	           FROM employees e
	           JOIN companies c ON c.company_id = e.company_id
	           WHERE c.query_id = ?
	           GROUP BY e.company_id
	           ORDER BY e.company_id`
	rows, err := r.db.QueryContext(ctx, q, queryID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []CompanySize{}
	for rows.Next() {
		var cs CompanySize
		var hasEmail int
		if err := rows.Scan(&cs.CompanyID, &cs.Employees, &hasEmail); err != nil {
			return nil, err
		}
		cs.HasEmail = hasEmail == 1
		out = append(out, cs)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ProjectTotals are the aggregate counts across a user's active queries.
type ProjectTotals struct {
	Companies         int // companies across active queries
	Employees         int // employees across those companies
	Emails            int // employees with a non-empty email
	QueriesInProgress int // active queries with finished_at IS NULL
}

// ProjectTotals aggregates across every active query the user owns,
// optionally filtered to one project (projectID > 0).  Soft-deleted
// queries are excluded from all four counts.
func (r *StatsRepo) ProjectTotals(ctx context.Context, userID string, projectID uint64) (ProjectTotals, error) {
	var t ProjectTotals

	projectFilter := ""
	args := func() []any {
		if projectID > 0 {
			return []any{userID, projectID}
		}
		return []any{userID}
	}
	if projectID > 0 {
		projectFilter = ` AND q.project_id = ?`
	}

	qInProgress := `SELECT COUNT(*) FROM queries q
	                WHERE q.is_active = TRUE AND q.user_id = ?
	                AND q.finished_at IS NULL` + projectFilter
	if err := r.db.QueryRowContext(ctx, qInProgress, args()...).Scan(&t.QueriesInProgress); err != nil {
		return t, err
	}

	qCompanies := `SELECT COUNT(*) FROM companies c
	               JOIN queries q ON q.query_id = c.query_id
	               WHERE q.user_id = ? AND q.is_active = TRUE` + projectFilter
	if err := r.db.QueryRowContext(ctx, qCompanies, args()...).Scan(&t.Companies); err != nil {
		return t, err
	}

	qEmployees := `SELECT COUNT(*) FROM employees e
	               JOIN companies c ON c.company_id = e.company_id
	               JOIN queries q ON q.query_id = c.query_id
	               WHERE q.user_id = ? AND q.is_active = TRUE` + projectFilter
	if err := r.db.QueryRowContext(ctx, qEmployees, args()...).Scan(&t.Employees); err != nil {
		return t, err
	}

	qEmails := `SELECT COUNT(*) FROM employees e
	            JOIN companies c ON c.company_id = e.company_id
	            JOIN queries q ON q.query_id = c.query_id
	            WHERE q.user_id = ? AND q.is_active = TRUE
	            AND e.email != ''` + projectFilter
	if err := r.db.QueryRowContext(ctx, qEmails, args()...).Scan(&t.Emails); err != nil {
		return t, err
	}
	return t, nil
}
