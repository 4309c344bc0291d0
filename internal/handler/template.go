package handler // handler package contains image template handlers

import (
	"encoding/base64" // base64 encodes thumbnails into data URIs
	"encoding/json"   // json decodes the image_template form field
	"fmt"             // fmt builds the data URI string
	"io"              // io reads the uploaded base image
	"net/http"        // http provides status code constants
	"strconv"         // strconv parses the include_thumbnail flag
	"strings"         // strings lowercases the uploaded file extension

	"github.com/labstack/echo/v4" // echo is the web framework used for handlers

	"github.com/leadforge/b2b-api/internal/logs"  // logs exposes the shared structured logger
	"github.com/leadforge/b2b-api/internal/model" // model holds database entities
	"github.com/leadforge/b2b-api/internal/queue" // queue defines the broker payloads
)

// templateResp is the template read shape: layout fields plus the preview
// thumbnail (as a data URI when requested) and the generated-image count.
type templateResp struct {
	model.ImageTemplate
	Thumbnail       *string `json:"thumbnail"`
	ThumbnailID     *uint64 `json:"thumbnail_id"`
	ImagesGenerated int     `json:"images_generated"`
}

// thumbnailDataURI renders raw thumbnail bytes as an inline data URI.  The
// "jpg" format maps to the image/jpeg MIME type; everything else is used
// as-is, lowercased.
func thumbnailDataURI(format string, thumbnail []byte) string {
	f := strings.ToLower(format)
	if f == "jpg" {
		f = "jpeg"
	}
	return fmt.Sprintf("data:image/%s;base64,%s", f, base64.StdEncoding.EncodeToString(thumbnail))
}

// CreateTemplate handles POST /v1/image-templates/new.  The request is
// multipart: an image_template form field carrying the layout JSON and a
// base_image file.  On success a preview render job is published, so the
// first image for each template is always the auto-generated preview.
func (h *APIHandler) CreateTemplate(c echo.Context) error { // begin CreateTemplate handler
	userID, err := getUserID(c) // extract the user ID from context
	if err != nil {             // invalid user means unauthorized
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"}) // respond unauthorized
	}

	raw := c.FormValue("image_template") // the layout JSON travels as a plain form field
	if raw == "" {                       // the field is mandatory
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "image_template field is required"}) // respond with bad request
	}
	var tmpl model.ImageTemplate                            // decode the layout into the entity
	if err := json.Unmarshal([]byte(raw), &tmpl); err != nil { // malformed JSON is a client error
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid image_template JSON"}) // respond with bad request
	}

	fileHeader, err := c.FormFile("base_image") // the uploaded base image file
	if err != nil {                             // the file part is mandatory
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "base_image file is required"}) // respond with bad request
	}
	// The format comes from the uploaded filename's extension; only png and
	// jpg/jpeg are renderable by the worker.
	parts := strings.Split(fileHeader.Filename, ".")
	format := strings.ToLower(parts[len(parts)-1])
	if format != "png" && format != "jpg" && format != "jpeg" {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{
			"error": fmt.Sprintf("Image must be of .png or .jpg format. You uploaded a %s format image, which is not supported. Please upload a compatible image to create the template.", format),
		}) // unsupported format is 422, mirroring other validation failures
	}

	file, err := fileHeader.Open() // open the multipart file for reading
	if err != nil {                // handle file errors
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not read base_image"}) // respond with internal server error
	}
	defer file.Close()
	imageBytes, err := io.ReadAll(file) // slurp the base image bytes
	if err != nil {                     // handle read errors
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not read base_image"}) // respond with internal server error
	}

	tmpl.ID = 0 // ignore any client-supplied id; the DB assigns it
	tmpl.UserID = userID
	tmpl.BaseImage = imageBytes
	tmpl.BaseImageFormat = format

	ctx := c.Request().Context()
	if err := h.Templates.Create(ctx, &tmpl); err != nil { // insert and populate id/timestamps
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "invalid image template"}) // constraint breaches are 422
	}

	// Publish the preview job.  A preview event carries the full template
	// and no parameters; the worker renders it as-is with preview=true.
	event := queue.ImageGenerationEvent{Template: queue.NewTemplatePayload(&tmpl)}
	if err := h.Broker.PublishImageGeneration(ctx, event); err != nil { // publish to the image_generation queue
		// The preview is rendered exactly once, at creation; with no
		// re-trigger endpoint a dropped job leaves the template without one.
		// The row stays committed, the caller resubmits.
		logs.Logger.WithError(err).Error("publish preview job failed")                                  // log the broker failure with context
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not dispatch preview job"}) // publish failure surfaces as 500
	}

	return c.JSON(http.StatusCreated, templateResp{ImageTemplate: tmpl}) // return the created template; no preview exists yet
}

// templateToResp assembles the read shape for one template, optionally
// loading the preview thumbnail.  A nil image with includeThumbnail set is
// reported via the ok flag so the single-get can 404.
func (h *APIHandler) templateToResp(c echo.Context, t *model.ImageTemplate, includeThumbnail bool) (templateResp, bool, error) {
	resp := templateResp{ImageTemplate: *t}
	ctx := c.Request().Context()

	hasPreview := false
	if includeThumbnail {
		preview, err := h.Images.Preview(ctx, t.ID, t.UserID) // nil when the worker has not rendered yet
		if err != nil {
			return resp, false, err
		}
		if preview != nil {
			uri := thumbnailDataURI(t.BaseImageFormat, preview.Thumbnail)
			resp.Thumbnail = &uri
			id := preview.ID
			resp.ThumbnailID = &id
			hasPreview = true
		}
	}

	count, err := h.Images.CountGenerated(ctx, t.ID) // previews excluded from the count
	if err != nil {
		return resp, false, err
	}
	resp.ImagesGenerated = count
	return resp, hasPreview, nil
}

// ListTemplates handles GET /v1/image-templates?include_thumbnail=
func (h *APIHandler) ListTemplates(c echo.Context) error { // begin ListTemplates handler
	userID, err := getUserID(c) // extract the user ID from context
	if err != nil {             // invalid user means unauthorized
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"}) // respond unauthorized
	}
	includeThumbnail, _ := strconv.ParseBool(c.QueryParam("include_thumbnail")) // malformed flag values read as false
	offset, limit := pagination(c)                                              // read offset/limit query params

	templates, err := h.Templates.ListByUser(c.Request().Context(), userID, offset, limit) // fetch the user's templates
	if err != nil {                                                                        // handle repository errors
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"}) // respond with internal server error
	}

	out := make([]templateResp, 0, len(templates)) // assemble the read shapes
	for _, t := range templates {
		// In the listing a template without a preview simply has a null
		// thumbnail; only the single-get treats that as 404.
		resp, _, err := h.templateToResp(c, t, includeThumbnail)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"}) // respond with internal server error
		}
		out = append(out, resp)
	}
	return c.JSON(http.StatusOK, out) // return the list (possibly empty) with OK status
}

// GetTemplate handles GET /v1/image-templates/:id?include_thumbnail=.  When
// the thumbnail is requested but the preview has not been rendered yet, the
// endpoint answers 404 so clients can poll until the worker catches up.
func (h *APIHandler) GetTemplate(c echo.Context) error { // begin GetTemplate handler
	userID, err := getUserID(c) // extract the user ID from context
	if err != nil {             // invalid user means unauthorized
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"}) // respond unauthorized
	}
	id, err := pathID(c, "id") // parse the template ID from the URL
	if err != nil {            // validate that the ID is numeric
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"}) // invalid ID error response
	}
	includeThumbnail, _ := strconv.ParseBool(c.QueryParam("include_thumbnail")) // malformed flag values read as false

	tmpl, err := h.Templates.GetByIDAndUser(c.Request().Context(), id, userID) // fetch, scoped to the owner
	if err != nil {                                                            // absent and foreign collapse to 404
		return notFoundOrDB(c, err, "image template")
	}
	resp, hasPreview, err := h.templateToResp(c, tmpl, includeThumbnail) // assemble the read shape
	if err != nil {                                                      // handle repository errors
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"}) // respond with internal server error
	}
	if includeThumbnail && !hasPreview { // thumbnail explicitly requested but not rendered yet
		return c.JSON(http.StatusNotFound, echo.Map{"error": "image template preview not found"}) // respond with not found
	}
	return c.JSON(http.StatusOK, resp) // return the template with OK status
}

// DeleteTemplate handles DELETE /v1/image-templates/:id.  This is a hard
// delete; images generated from the template keep their rows.
func (h *APIHandler) DeleteTemplate(c echo.Context) error { // begin DeleteTemplate handler
	userID, err := getUserID(c) // extract the user ID from context
	if err != nil {             // invalid user means unauthorized
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"}) // respond unauthorized
	}
	id, err := pathID(c, "id") // parse the template ID from the URL
	if err != nil {            // validate that the ID is numeric
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"}) // invalid ID error response
	}
	if err := h.Templates.Delete(c.Request().Context(), id, userID); err != nil { // remove the row permanently
		return notFoundOrDB(c, err, "image template")
	}
	return c.NoContent(http.StatusNoContent) // 204 with no body on success
}
