package model

import "time"

// Image is a rendered output written by the image-generation worker.  The
// first image for each template is always the auto-generated preview
// (Preview=true); every other row is a real generated output.  Parameters
// stores the substitution values the worker applied, as an opaque JSON
// object.  Corresponds to the `images` table.
type Image struct {
	ID          uint64    `json:"image_id"`     // images.image_id
	Image       []byte    `json:"-"`            // images.image (blob)
	Thumbnail   []byte    `json:"-"`            // images.thumbnail (blob)
	ImageFormat string    `json:"image_format"` // images.image_format
	Preview     bool      `json:"preview"`      // images.preview
	Parameters  []byte    `json:"-"`            // images.parameters (raw JSON, may be NULL)
	TemplateID  uint64    `json:"template_id"`  // images.template_id
	UserID      string    `json:"-"`            // images.user_id (UUID)
	CreatedAt   time.Time `json:"created_at"`   // images.created_at
}
