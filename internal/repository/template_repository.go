// This file defines repository methods for image templates.  Template
// deletion is a hard delete — the only one in the schema — and generated
// images intentionally keep their rows afterwards.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/leadforge/b2b-api/internal/model"
)

// TemplateRepo encapsulates database access for image templates.
type TemplateRepo struct {
	db *sql.DB // db is the underlying database connection pool
}

// NewTemplateRepo constructs a TemplateRepo with the provided DB handle.
func NewTemplateRepo(db *sql.DB) *TemplateRepo {
	return &TemplateRepo{db: db}
}

const templateColumns = "image_template_id, top, `left`, font_weight, " +
	`font_style, font_size, font_family, font_underline, font_color,
	rotation, box_width, box_height, content, base_image,
	COALESCE(base_image_format, ''), user_id, created_at, updated_at`

func scanTemplate(row interface{ Scan(...any) error }, t *model.ImageTemplate) error {
	return row.Scan(&t.ID, &t.Top, &t.Left, &t.FontWeight, &t.FontStyle,
		&t.FontSize, &t.FontFamily, &t.FontUnderline, &t.FontColor,
		&t.Rotation, &t.BoxWidth, &t.BoxHeight, &t.Content, &t.BaseImage,
		&t.BaseImageFormat, &t.UserID, &t.CreatedAt, &t.UpdatedAt)
}

// Create inserts a template and populates its ID and timestamps.
// Constraint violations surface as ErrConstraint.
func (r *TemplateRepo) Create(ctx context.Context, t *model.ImageTemplate) error {
	const qInsert = "INSERT INTO image_templates " +
		"(top, `left`, font_weight, font_style, font_size, font_family, " +
		"font_underline, font_color, rotation, box_width, box_height, " +
		"content, base_image, base_image_format, user_id) " +
		"VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)"
	res, err := r.db.ExecContext(ctx, qInsert,
		t.Top, t.Left, t.FontWeight, t.FontStyle, t.FontSize, t.FontFamily,
		t.FontUnderline, t.FontColor, t.Rotation, t.BoxWidth, t.BoxHeight,
		t.Content, t.BaseImage, t.BaseImageFormat, t.UserID)
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
	t.ID = uint64(id)

	const qSelect = `SELECT created_at, updated_at FROM image_templates WHERE image_template_id = ?`
	return r.db.QueryRowContext(ctx, qSelect, t.ID).Scan(&t.CreatedAt, &t.UpdatedAt)
}

// GetByIDAndUser fetches a template owned by the user, including the base
// image bytes.
func (r *TemplateRepo) GetByIDAndUser(ctx context.Context, id uint64, userID string) (*model.ImageTemplate, error) {
	const q = `SELECT ` + templateColumns + `
	           FROM image_templates WHERE image_template_id = ? AND user_id = ?`
	var t model.ImageTemplate
	if err := scanTemplate(r.db.QueryRowContext(ctx, q, id, userID), &t); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// ListByUser returns the user's templates ordered by id, with offset/limit
// pagination.  Base image bytes are included because the preview publisher
// needs them; handlers never serialize them.
func (r *TemplateRepo) ListByUser(ctx context.Context, userID string, offset, limit int) ([]*model.ImageTemplate, error) {
	const q = `SELECT ` + templateColumns + `
	           FROM image_templates WHERE user_id = ?
	           ORDER BY image_template_id LIMIT ? OFFSET ?`
	rows, err := r.db.QueryContext(ctx, q, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.ImageTemplate{}
	for rows.Next() {
		t := new(model.ImageTemplate)
		if err := scanTemplate(rows, t); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes a template row permanently.  Returns ErrNotFound when no
// row matched the id/owner pair.
func (r *TemplateRepo) Delete(ctx context.Context, id uint64, userID string) error {
	const q = `DELETE FROM image_templates WHERE image_template_id = ? AND user_id = ?`
	res, err := r.db.ExecContext(ctx, q, id, userID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
