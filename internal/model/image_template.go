package model

import "time"

// ImageTemplate describes how a marketing image is rendered: a base image
// plus a positioned text box whose content may contain the substitution
// tokens {FNAME}, {LNAME}, {FULLNAME}, {COMPANY} and {POSITION}.  The
// rendering itself happens in an external worker; the API stores templates
// and dispatches generation jobs.  Corresponds to the `image_templates`
// table.
//
// Fields:
//  Top/Left        – text box offset in pixels.
//  FontWeight..FontColor – font styling for the text box.
//  Rotation        – text rotation in degrees.
//  BoxWidth/BoxHeight – text box dimensions.
//  Content         – text with optional substitution tokens.
//  BaseImage       – raw bytes of the uploaded base image (never serialized).
//  BaseImageFormat – "png", "jpg" or "jpeg".
type ImageTemplate struct {
	ID              uint64    `json:"image_template_id"` // image_templates.image_template_id
	Top             int       `json:"top"`               // image_templates.top
	Left            int       `json:"left"`              // image_templates.left
	FontWeight      int       `json:"font_weight"`       // image_templates.font_weight
	FontStyle       string    `json:"font_style"`        // image_templates.font_style
	FontSize        int       `json:"font_size"`         // image_templates.font_size
	FontFamily      string    `json:"font_family"`       // image_templates.font_family
	FontUnderline   bool      `json:"font_underline"`    // image_templates.font_underline
	FontColor       string    `json:"font_color"`        // image_templates.font_color
	Rotation        int       `json:"rotation"`          // image_templates.rotation
	BoxWidth        int       `json:"box_width"`         // image_templates.box_width
	BoxHeight       int       `json:"box_height"`        // image_templates.box_height
	Content         string    `json:"content"`           // image_templates.content
	BaseImage       []byte    `json:"-"`                 // image_templates.base_image (blob)
	BaseImageFormat string    `json:"-"`                 // image_templates.base_image_format
	UserID          string    `json:"-"`                 // image_templates.user_id (UUID)
	CreatedAt       time.Time `json:"created_at"`        // image_templates.created_at
	UpdatedAt       time.Time `json:"updated_at"`        // image_templates.updated_at
}
