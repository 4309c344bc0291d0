// This file defines repository methods for generated images.  Image rows
// are written by the image-generation worker; the API reads them and joins
// the per-template preview into template listings.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/leadforge/b2b-api/internal/model"
)

// ImageRepo encapsulates database reads for generated images.
type ImageRepo struct {
	db *sql.DB // db is the underlying database connection pool
}

// NewImageRepo constructs an ImageRepo with the provided DB handle.
func NewImageRepo(db *sql.DB) *ImageRepo {
	return &ImageRepo{db: db}
}

// GetByIDAndUser fetches an image with its binary payloads, but only if it
// belongs to the user.
func (r *ImageRepo) GetByIDAndUser(ctx context.Context, id uint64, userID string) (*model.Image, error) {
	const q = `SELECT image_id, image, thumbnail, image_format, preview,
	                  parameters, COALESCE(template_id, 0), user_id, created_at
	           FROM images WHERE image_id = ? AND user_id = ?`
	var img model.Image
	err := r.db.QueryRowContext(ctx, q, id, userID).
		Scan(&img.ID, &img.Image, &img.Thumbnail, &img.ImageFormat,
			&img.Preview, &img.Parameters, &img.TemplateID, &img.UserID,
			&img.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &img, nil
}

// Preview returns the single auto-generated preview image for a template,
// or nil when the worker has not produced it yet.  The thumbnail bytes are
// loaded; the full image is not needed for listings.
func (r *ImageRepo) Preview(ctx context.Context, templateID uint64, userID string) (*model.Image, error) {
	const q = `SELECT image_id, thumbnail, image_format, preview,
	                  COALESCE(template_id, 0), user_id, created_at
	           FROM images
	           WHERE template_id = ? AND user_id = ? AND preview = TRUE
	           ORDER BY image_id LIMIT 1`
	var img model.Image
	err := r.db.QueryRowContext(ctx, q, templateID, userID).
		Scan(&img.ID, &img.Thumbnail, &img.ImageFormat, &img.Preview,
			&img.TemplateID, &img.UserID, &img.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &img, nil
}

// CountGenerated returns the number of non-preview images produced from a
// template.
func (r *ImageRepo) CountGenerated(ctx context.Context, templateID uint64) (int, error) {
	const q = `SELECT COUNT(*) FROM images WHERE template_id = ? AND preview = FALSE`
	var n int
	if err := r.db.QueryRowContext(ctx, q, templateID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// ListByUser returns image metadata (no blobs) for the user, optionally
// filtered to one template (templateID > 0), newest first.
func (r *ImageRepo) ListByUser(ctx context.Context, userID string, templateID uint64, offset, limit int) ([]*model.Image, error) {
	q := `SELECT image_id, image_format, preview, COALESCE(template_id, 0),
	             user_id, created_at
	      FROM images WHERE user_id = ?`
	args := []any{userID}
	if templateID > 0 {
		q += ` AND template_id = ?`
		args = append(args, templateID)
	}
	q += ` ORDER BY image_id DESC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*model.Image{}
	for rows.Next() {
		img := new(model.Image)
		if err := rows.Scan(&img.ID, &img.ImageFormat, &img.Preview,
			&img.TemplateID, &img.UserID, &img.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, img)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
