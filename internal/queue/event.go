// Package queue defines the message payloads exchanged over the broker.
// Two logical queues hang off the durable "B2B" exchange: new_queries for
// scrape jobs and image_generation for rendering jobs.  Both are consumed
// by out-of-process workers.  The worker that consumes a NewQueryEvent is
// the party that inserts the Query row (with started_at) — the API never
// creates query rows itself.
package queue

import (
	"encoding/base64"
	"time"

	"github.com/leadforge/b2b-api/internal/model"
)

// Exchange and queue names shared with the workers.  Changing any of these
// breaks running consumers.
const (
	Exchange        = "B2B"
	NewQueriesQueue = "new_queries"
	ImageGenQueue   = "image_generation"
)

// QueryParams carries the validated search terms of a new-query job.
type QueryParams struct {
	Sector   string `json:"sector"`
	Location string `json:"location"`
}

// NewQueryEvent is published when a user launches a query.  user_id is the
// UUID string of the owner; the worker stores it on the Query row it
// creates.
type NewQueryEvent struct {
	QueryType string      `json:"query_type"`
	UserID    string      `json:"user_id"`
	ProjectID uint64      `json:"project_id"`
	Params    QueryParams `json:"params"`
}

// TemplatePayload is the full image template as the rendering worker
// expects it: every layout field plus the base image re-encoded as base64
// text and timestamps as plain strings.
type TemplatePayload struct {
	ID              uint64 `json:"image_template_id"`
	Top             int    `json:"top"`
	Left            int    `json:"left"`
	FontWeight      int    `json:"font_weight"`
	FontStyle       string `json:"font_style"`
	FontSize        int    `json:"font_size"`
	FontFamily      string `json:"font_family"`
	FontUnderline   bool   `json:"font_underline"`
	FontColor       string `json:"font_color"`
	Rotation        int    `json:"rotation"`
	BoxWidth        int    `json:"box_width"`
	BoxHeight       int    `json:"box_height"`
	Content         string `json:"content"`
	BaseImage       string `json:"base_image"`
	BaseImageFormat string `json:"base_image_format"`
	UserID          string `json:"user_id"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
}

// ImageParams are the substitution values the renderer applies to the
// template content.  The worker replaces the tokens {FNAME}, {LNAME},
// {FULLNAME}, {COMPANY} and {POSITION} verbatim; this token contract must
// not change without coordinating a worker release.
type ImageParams struct {
	TemplateID uint64 `json:"image_template_id"`
	Fname      string `json:"fname"`
	Lname      string `json:"lname"`
	FullName   string `json:"full_name"`
	Company    string `json:"company"`
	Position   string `json:"position"`
}

// ImageGenerationEvent is published for every rendering job.  Preview jobs
// (fired right after template creation) omit Parameters; the worker then
// renders the template as-is and stores the result with preview=true.
type ImageGenerationEvent struct {
	Template   TemplatePayload `json:"template"`
	Parameters *ImageParams    `json:"parameters,omitempty"`
}

// NewTemplatePayload converts a stored template into its wire form.
func NewTemplatePayload(t *model.ImageTemplate) TemplatePayload {
	return TemplatePayload{
		ID:              t.ID,
		Top:             t.Top,
		Left:            t.Left,
		FontWeight:      t.FontWeight,
		FontStyle:       t.FontStyle,
		FontSize:        t.FontSize,
		FontFamily:      t.FontFamily,
		FontUnderline:   t.FontUnderline,
		FontColor:       t.FontColor,
		Rotation:        t.Rotation,
		BoxWidth:        t.BoxWidth,
		BoxHeight:       t.BoxHeight,
		Content:         t.Content,
		BaseImage:       base64.StdEncoding.EncodeToString(t.BaseImage),
		BaseImageFormat: t.BaseImageFormat,
		UserID:          t.UserID,
		CreatedAt:       t.CreatedAt.UTC().Format(time.DateTime),
		UpdatedAt:       t.UpdatedAt.UTC().Format(time.DateTime),
	}
}
