// This file defines repository methods for companies and their optional
// maps enrichment.  Companies are written exclusively by the scraping
// worker; the API reads them, so this repository is query-only.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/leadforge/b2b-api/internal/model"
)

// CompanyRepo encapsulates database reads for companies and maps data.
type CompanyRepo struct {
	db *sql.DB // db is the underlying database connection pool
}

// NewCompanyRepo constructs a CompanyRepo with the provided DB handle.
func NewCompanyRepo(db *sql.DB) *CompanyRepo {
	return &CompanyRepo{db: db}
}

const companyColumns = `company_id, name, website, phone, full_address,
	borough, line1, city, zip, region, country_code, contact_email,
	COALESCE(other_emails, ''), linkedin, twitter, facebook, instagram,
	youtube, query_id`

func scanCompany(row interface{ Scan(...any) error }, c *model.Company) error {
	return row.Scan(&c.ID, &c.Name, &c.Website, &c.Phone, &c.FullAddress,
		&c.Borough, &c.Line1, &c.City, &c.Zip, &c.Region, &c.CountryCode,
		&c.ContactEmail, &c.OtherEmails, &c.Linkedin, &c.Twitter,
		&c.Facebook, &c.Instagram, &c.Youtube, &c.QueryID)
}

// GetByID fetches a single company without an ownership filter; callers
// must apply the Guard first.
func (r *CompanyRepo) GetByID(ctx context.Context, id uint64) (*model.Company, error) {
	const q = `SELECT ` + companyColumns + ` FROM companies WHERE company_id = ?`
	var c model.Company
	if err := scanCompany(r.db.QueryRowContext(ctx, q, id), &c); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// ListByQuery returns the companies a query discovered, ordered by id, with
// offset/limit pagination.  Employees are not loaded; use LoadEmployees.
func (r *CompanyRepo) ListByQuery(ctx context.Context, queryID uint64, offset, limit int) ([]*model.Company, error) {
	const q = `SELECT ` + companyColumns + `
	           FROM companies WHERE query_id = ?
	           ORDER BY company_id LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, q, queryID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.Company{}
	for rows.Next() {
		c := new(model.Company)
		if err := scanCompany(rows, c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// LoadEmployees attaches every employee row belonging to the given
// companies in a single IN query.  The aggregation layer relies on the
// Employees slice being populated before PopulateEmails runs.
func (r *CompanyRepo) LoadEmployees(ctx context.Context, companies []*model.Company) error {
	if len(companies) == 0 {
		return nil
	}
	byID := make(map[uint64]*model.Company, len(companies))
	placeholders := make([]string, 0, len(companies))
	args := make([]any, 0, len(companies))
	for _, c := range companies {
		byID[c.ID] = c
		placeholders = append(placeholders, "?")
		args = append(args, c.ID)
	}

	q := `SELECT employee_id, full_name, first_name, last_name, position,
	             extracted_company, email, rank_score, search_title,
	             COALESCE(pre_snippet, ''), linkedin_url, company_id
	      FROM employees
	      WHERE company_id IN (` + strings.Join(placeholders, ",") + `)
	      ORDER BY employee_id`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var e model.Employee
		if err := rows.Scan(&e.ID, &e.FullName, &e.FirstName, &e.LastName,
			&e.Position, &e.ExtractedCompany, &e.Email, &e.RankScore,
			&e.SearchTitle, &e.PreSnippet, &e.LinkedinURL, &e.CompanyID); err != nil {
			return err
		}
		if c, ok := byID[e.CompanyID]; ok {
			c.Employees = append(c.Employees, e)
		}
	}
	return rows.Err()
}

// MapsData returns the company's maps enrichment row, or nil when the
// worker found no maps listing (absence is valid, not an error).
func (r *CompanyRepo) MapsData(ctx context.Context, companyID uint64) (*model.CompanyMapsData, error) {
	const q = `SELECT maps_data_id, search_position, lat, lng, rating,
	                  reviews, type, thumbnail, company_id
	           FROM companies_maps_data WHERE company_id = ?`
	var m model.CompanyMapsData
	err := r.db.QueryRowContext(ctx, q, companyID).
		Scan(&m.ID, &m.SearchPosition, &m.Lat, &m.Lng, &m.Rating,
			&m.Reviews, &m.Type, &m.Thumbnail, &m.CompanyID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}
