// This file defines repository methods for employees.  Like companies,
// employee rows come from the scraping worker; the API is read-only here.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/leadforge/b2b-api/internal/model"
)

// EmployeeRepo encapsulates database reads for employees.
type EmployeeRepo struct {
	db *sql.DB // db is the underlying database connection pool
}

// NewEmployeeRepo constructs an EmployeeRepo with the provided DB handle.
func NewEmployeeRepo(db *sql.DB) *EmployeeRepo {
	return &EmployeeRepo{db: db}
}

const employeeColumns = `employee_id, full_name, first_name, last_name,
	position, extracted_company, email, rank_score, search_title,
	COALESCE(pre_snippet, ''), linkedin_url, company_id`

func scanEmployee(row interface{ Scan(...any) error }, e *model.Employee) error {
	return row.Scan(&e.ID, &e.FullName, &e.FirstName, &e.LastName,
		&e.Position, &e.ExtractedCompany, &e.Email, &e.RankScore,
		&e.SearchTitle, &e.PreSnippet, &e.LinkedinURL, &e.CompanyID)
}

// GetByID fetches a single employee without an ownership filter; callers
// must apply the Guard first.
func (r *EmployeeRepo) GetByID(ctx context.Context, id uint64) (*model.Employee, error) {
	const q = `SELECT ` + employeeColumns + ` FROM employees WHERE employee_id = ?`
	var e model.Employee
	if err := scanEmployee(r.db.QueryRowContext(ctx, q, id), &e); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &e, nil
}

// ListByCompany returns a company's employees ordered by id, with
// offset/limit pagination.
func (r *EmployeeRepo) ListByCompany(ctx context.Context, companyID uint64, offset, limit int) ([]*model.Employee, error) {
	const q = `SELECT ` + employeeColumns + `
	           FROM employees WHERE company_id = ?
	           ORDER BY employee_id LIMIT ? OFFSET ?`
	return r.list(ctx, q, companyID, limit, offset)
}

// ListByQuery returns every employee of every company a query discovered,
// ordered by id, with offset/limit pagination.
func (r *EmployeeRepo) ListByQuery(ctx context.Context, queryID uint64, offset, limit int) ([]*model.Employee, error) {
	const q = `SELECT e.employee_id, e.full_name, e.first_name, e.last_name,
	                  e.position, e.extracted_company, e.email, e.rank_score,
	                  e.search_title, COALESCE(e.pre_snippet, ''),
	                  e.linkedin_url, e.company_id
	           FROM employees e
	           JOIN companies c ON c.company_id = e.company_id
	           WHERE c.query_id = ?
	           ORDER BY e.employee_id LIMIT ? OFFSET ?`
	return r.list(ctx, q, queryID, limit, offset)
}

func (r *EmployeeRepo) list(ctx context.Context, q string, id uint64, limit, offset int) ([]*model.Employee, error) {
	rows, err := r.db.QueryContext(ctx, q, id, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.Employee{}
	for rows.Next() {
		e := new(model.Employee)
		if err := scanEmployee(rows, e); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
