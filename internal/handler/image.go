package handler // handler package contains generated-image handlers

import (
	"net/http" // http provides status code constants
	"strconv"  // strconv parses the optional template_id filter

	"github.com/labstack/echo/v4" // echo is the web framework used for handlers

	"github.com/leadforge/b2b-api/internal/logs"  // logs exposes the shared structured logger
	"github.com/leadforge/b2b-api/internal/model" // model holds database entities
	"github.com/leadforge/b2b-api/internal/queue" // queue defines the broker payloads
)

// imageResp is the single-image read shape: the metadata plus both binaries
// rendered as inline data URIs.
type imageResp struct {
	model.Image
	ImageURI     string `json:"image"`
	ThumbnailURI string `json:"thumbnail"`
}

// GetImage handles GET /v1/images/:id and returns the image with its full
// render and thumbnail inlined as data URIs.
func (h *APIHandler) GetImage(c echo.Context) error { // begin GetImage handler
	userID, err := getUserID(c) // extract the user ID from context
	if err != nil {             // invalid user means unauthorized
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"}) // respond unauthorized
	}
	id, err := pathID(c, "id") // parse the image ID from the URL
	if err != nil {            // validate that the ID is numeric
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"}) // invalid ID error response
	}
	img, err := h.Images.GetByIDAndUser(c.Request().Context(), id, userID) // fetch with blobs, scoped to the owner
	if err != nil {                                                        // absent and foreign collapse to 404
		return notFoundOrDB(c, err, "image")
	}
	return c.JSON(http.StatusOK, imageResp{
		Image:        *img,
		ImageURI:     thumbnailDataURI(img.ImageFormat, img.Image),     // same jpg→jpeg MIME mapping as templates
		ThumbnailURI: thumbnailDataURI(img.ImageFormat, img.Thumbnail), // thumbnail shares the image's format
	})
}

// ListImages handles GET /v1/images?template_id= and returns image metadata
// (no binaries) for the user, newest first.
func (h *APIHandler) ListImages(c echo.Context) error { // begin ListImages handler
	userID, err := getUserID(c) // extract the user ID from context
	if err != nil {             // invalid user means unauthorized
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"}) // respond unauthorized
	}
	var templateID uint64                          // zero means no template filter
	if v := c.QueryParam("template_id"); v != "" { // optional template filter
		templateID, err = strconv.ParseUint(v, 10, 64) // parse the filter value
		if err != nil {                                // validate that the filter is numeric
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid template_id"}) // invalid filter error response
		}
	}
	offset, limit := pagination(c)                                                                // read offset/limit query params
	items, err := h.Images.ListByUser(c.Request().Context(), userID, templateID, offset, limit) // fetch image metadata for this user
	if err != nil {                                                                               // handle repository errors
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"}) // respond with internal server error
	}
	return c.JSON(http.StatusOK, items) // return the list (possibly empty) with OK status
}

// GenerateSingleImage handles POST /v1/images/generate_single_image and
// dispatches one rendering job.  The substitution values are length-capped
// to match what the renderer can fit into a text box.
func (h *APIHandler) GenerateSingleImage(c echo.Context) error { // begin GenerateSingleImage handler
	userID, err := getUserID(c) // extract the user ID from context
	if err != nil {             // invalid user means unauthorized
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"}) // respond unauthorized
	}
	var params queue.ImageParams          // the request body is exactly the wire parameter shape
	if err := c.Bind(&params); err != nil { // attempt to bind the request body
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"}) // return bad request when binding fails
	}
	if params.TemplateID == 0 { // a job needs a template
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "image_template_id is required"}) // respond with bad request
	}
	// Substitution value limits: fname/lname 50, the rest 100.
	if len(params.Fname) > 50 || len(params.Lname) > 50 ||
		len(params.FullName) > 100 || len(params.Company) > 100 || len(params.Position) > 100 {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "parameter value too long"}) // over-long values are 422
	}

	ctx := c.Request().Context()
	tmpl, err := h.Templates.GetByIDAndUser(ctx, params.TemplateID, userID) // the full template travels in the message
	if err != nil {                                                         // absent and foreign collapse to 404
		return notFoundOrDB(c, err, "image template")
	}

	event := queue.ImageGenerationEvent{ // build the rendering job
		Template:   queue.NewTemplatePayload(tmpl),
		Parameters: &params, // presence of parameters marks a real render, not a preview
	}
	if err := h.Broker.PublishImageGeneration(ctx, event); err != nil { // publish to the image_generation queue
		logs.Logger.WithError(err).Error("publish image generation failed") // log the broker failure with context
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not dispatch image generation"}) // publish failure surfaces as 500
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true, "message": SuccessMessage}) // acknowledge with the standard success message
}
