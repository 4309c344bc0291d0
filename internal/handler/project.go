package handler // handler package contains project CRUD handlers

import (
	"errors"   // errors provides sentinel comparison via errors.Is
	"net/http" // http provides status code constants
	"strings"  // strings offers trimming utilities

	"github.com/labstack/echo/v4" // echo is the web framework used for handlers

	"github.com/leadforge/b2b-api/internal/model"      // model holds database entities
	"github.com/leadforge/b2b-api/internal/repository" // repository holds database access
)

// CreateProject handles POST /v1/projects and creates a new project for the authenticated user
func (h *APIHandler) CreateProject(c echo.Context) error { // begin CreateProject handler
	userID, err := getUserID(c) // extract the user ID from context
	if err != nil {             // check if the user ID was not available or invalid
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"}) // respond with unauthorized when user ID cannot be obtained
	}
	var body struct { // anonymous struct to bind incoming JSON
		Name string `json:"name"` // Name is the only required field for a project
	}
	if err := c.Bind(&body); err != nil { // attempt to bind the request body into the struct
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"}) // return bad request when binding fails
	}
	name := strings.TrimSpace(body.Name) // trim spaces around the project name
	if name == "" {                      // ensure the name is not empty after trimming
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"}) // respond with error when name is empty
	}
	if len(name) > 100 { // the name column is VARCHAR(100)
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "name too long"}) // reject over-long names before hitting the DB
	}
	project := &model.Project{ // instantiate a new project model
		Name:   name,   // assign the trimmed name
		UserID: userID, // assign the owning user
	}
	if err := h.Projects.Create(c.Request().Context(), project); err != nil { // delegate creation to the repository
		if errors.Is(err, repository.ErrConstraint) { // constraint violations map to 422
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "invalid project"}) // respond with unprocessable entity
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create project"}) // respond with internal error for other failures
	}
	return c.JSON(http.StatusCreated, project) // return 201 and the created project on success
}

// GetProject handles GET /v1/projects/:id and returns one active project owned by the user
func (h *APIHandler) GetProject(c echo.Context) error { // begin GetProject handler
	userID, err := getUserID(c) // extract the user ID from context
	if err != nil {             // invalid user means unauthorized
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"}) // respond unauthorized
	}
	id, err := pathID(c, "id") // parse the project ID from the URL
	if err != nil {            // validate that the ID is numeric
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"}) // invalid ID error response
	}
	project, err := h.Projects.GetByIDAndUser(c.Request().Context(), id, userID) // fetch, scoped to the owner
	if err != nil {                                                              // absent, foreign and soft-deleted all collapse to 404
		return notFoundOrDB(c, err, "project")
	}
	return c.JSON(http.StatusOK, project) // return the project with OK status
}

// ListProjects handles GET /v1/projects and returns the user's active projects
func (h *APIHandler) ListProjects(c echo.Context) error { // begin ListProjects handler
	userID, err := getUserID(c) // extract the user ID from context
	if err != nil {             // invalid user means unauthorized
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"}) // respond unauthorized
	}
	offset, limit := pagination(c)                                                // read offset/limit query params
	items, err := h.Projects.ListByUser(c.Request().Context(), userID, offset, limit) // fetch projects for this user
	if err != nil {                                                               // handle repository errors
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"}) // respond with internal server error
	}
	return c.JSON(http.StatusOK, items) // return the list (possibly empty) with OK status
}

// DeleteProject handles DELETE /v1/projects/:id and soft-deletes a project
func (h *APIHandler) DeleteProject(c echo.Context) error { // begin DeleteProject handler
	userID, err := getUserID(c) // extract the user ID from context
	if err != nil {             // invalid user means unauthorized
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"}) // respond unauthorized
	}
	id, err := pathID(c, "id") // parse the project ID from the URL
	if err != nil {            // validate that the ID is numeric
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"}) // invalid ID error response
	}
	// SoftDelete ignores is_active on lookup, so deleting twice succeeds.
	if err := h.Projects.SoftDelete(c.Request().Context(), id, userID); err != nil { // flip is_active to FALSE
		return notFoundOrDB(c, err, "project")
	}
	return c.NoContent(http.StatusNoContent) // 204 with no body on success
}
