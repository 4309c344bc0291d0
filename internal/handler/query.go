package handler // handler package contains query handlers

import (
	"net/http" // http provides status code constants
	"strconv"  // strconv parses optional numeric query params
	"strings"  // strings offers trimming utilities

	"github.com/labstack/echo/v4" // echo is the web framework used for handlers

	"github.com/leadforge/b2b-api/internal/logs"  // logs exposes the shared structured logger
	"github.com/leadforge/b2b-api/internal/queue" // queue defines the broker payloads
)

// LaunchLocationQuery handles POST /v1/queries/new/location and dispatches a
// scrape job to the worker.  The query row itself is created by the worker
// when it consumes the message; the API only validates and publishes.
func (h *APIHandler) LaunchLocationQuery(c echo.Context) error { // begin LaunchLocationQuery handler
	userID, err := getUserID(c) // extract the user ID from context
	if err != nil {             // invalid user means unauthorized
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"}) // respond unauthorized
	}
	var body struct { // anonymous struct to bind incoming JSON
		Sector    string `json:"sector"`     // business sector to search
		Location  string `json:"location"`   // location to search in
		ProjectID uint64 `json:"project_id"` // project the query belongs to
	}
	if err := c.Bind(&body); err != nil { // attempt to bind the request body
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"}) // return bad request when binding fails
	}
	sector := strings.TrimSpace(body.Sector)     // trim spaces around the sector
	location := strings.TrimSpace(body.Location) // trim spaces around the location
	if body.ProjectID == 0 {                     // a query must hang off a project
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "project_id is required"}) // respond with bad request
	}
	// Both terms must be strictly alphanumeric; anything else is refused
	// with 403 before a message is published.
	if !isAlnum(sector) || !isAlnum(location) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "sector and location must be alphanumeric"}) // reject invalid search terms
	}
	if len(sector) > 50 || len(location) > 50 { // both columns are VARCHAR(50)
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "sector/location too long"}) // reject over-long terms
	}

	event := queue.NewQueryEvent{ // build the job message for the scraping worker
		QueryType: "location",     // the only launch kind exposed over HTTP
		UserID:    userID,         // owner UUID, stored on the query row by the worker
		ProjectID: body.ProjectID, // target project
		Params:    queue.QueryParams{Sector: sector, Location: location},
	}
	if err := h.Broker.PublishNewQuery(c.Request().Context(), event); err != nil { // publish to the new_queries queue
		logs.Logger.WithError(err).Error("publish new query failed") // log the broker failure with context
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not dispatch query"}) // publish failure surfaces as 500
	}
	return c.JSON(http.StatusOK, echo.Map{"ok": true}) // acknowledge; the query row appears once the worker picks it up
}

// GetQuery handles GET /v1/queries/:id and returns one active query owned by the user
func (h *APIHandler) GetQuery(c echo.Context) error { // begin GetQuery handler
	userID, err := getUserID(c) // extract the user ID from context
	if err != nil {             // invalid user means unauthorized
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"}) // respond unauthorized
	}
	id, err := pathID(c, "id") // parse the query ID from the URL
	if err != nil {            // validate that the ID is numeric
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"}) // invalid ID error response
	}
	query, err := h.Queries.GetByIDAndUser(c.Request().Context(), id, userID) // fetch, scoped to the owner
	if err != nil {                                                           // absent, foreign and soft-deleted all collapse to 404
		return notFoundOrDB(c, err, "query")
	}
	return c.JSON(http.StatusOK, query) // return the query with OK status
}

// ListQueries handles GET /v1/queries and returns the user's active queries,
// optionally filtered by ?project_id=
func (h *APIHandler) ListQueries(c echo.Context) error { // begin ListQueries handler
	userID, err := getUserID(c) // extract the user ID from context
	if err != nil {             // invalid user means unauthorized
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"}) // respond unauthorized
	}
	var projectID uint64                                // zero means no project filter
	if v := c.QueryParam("project_id"); v != "" {       // optional project filter
		projectID, err = strconv.ParseUint(v, 10, 64) // parse the filter value
		if err != nil {                               // validate that the filter is numeric
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid project_id"}) // invalid filter error response
		}
	}
	offset, limit := pagination(c)                                                            // read offset/limit query params
	items, err := h.Queries.ListByUser(c.Request().Context(), userID, projectID, offset, limit) // fetch queries for this user
	if err != nil {                                                                           // handle repository errors
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"}) // respond with internal server error
	}
	return c.JSON(http.StatusOK, items) // return the list (possibly empty) with OK status
}

// DeleteQuery handles DELETE /v1/queries/:id and soft-deletes a query
func (h *APIHandler) DeleteQuery(c echo.Context) error { // begin DeleteQuery handler
	userID, err := getUserID(c) // extract the user ID from context
	if err != nil {             // invalid user means unauthorized
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"}) // respond unauthorized
	}
	id, err := pathID(c, "id") // parse the query ID from the URL
	if err != nil {            // validate that the ID is numeric
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"}) // invalid ID error response
	}
	// SoftDelete ignores is_active on lookup, so deleting twice succeeds.
	if err := h.Queries.SoftDelete(c.Request().Context(), id, userID); err != nil { // flip is_active to FALSE
		return notFoundOrDB(c, err, "query")
	}
	return c.NoContent(http.StatusNoContent) // 204 with no body on success
}
