package handler // handler package contains company handlers

import (
	"net/http" // http provides status code constants
	"strconv"  // strconv parses the include_loc_data flag

	"github.com/labstack/echo/v4" // echo is the web framework used for handlers

	"github.com/leadforge/b2b-api/internal/leads" // leads applies the email aggregation
	"github.com/leadforge/b2b-api/internal/model" // model holds database entities
)

// ListCompaniesByQuery handles GET /v1/companies/all/:query_id and returns
// every company the query discovered, each with its aggregated best contact
// email attached (absent when no employee has one).
func (h *APIHandler) ListCompaniesByQuery(c echo.Context) error { // begin ListCompaniesByQuery handler
	userID, err := getUserID(c) // extract the user ID from context
	if err != nil {             // invalid user means unauthorized
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"}) // respond unauthorized
	}
	queryID, err := pathID(c, "query_id") // parse the query ID from the URL
	if err != nil {                       // validate that the ID is numeric
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid query_id"}) // invalid ID error response
	}
	ctx := c.Request().Context()
	// The guard resolves query -> user and respects soft delete; a foreign
	// or deleted query is indistinguishable from a missing one.
	if err := h.Guard.Query(ctx, queryID, userID); err != nil {
		return notFoundOrDB(c, err, "query")
	}
	offset, limit := pagination(c)                                            // read offset/limit query params
	companies, err := h.Companies.ListByQuery(ctx, queryID, offset, limit) // fetch the query's companies
	if err != nil {                                                           // handle repository errors
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"}) // respond with internal server error
	}
	if err := h.Companies.LoadEmployees(ctx, companies); err != nil { // attach employees for the aggregation
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"}) // respond with internal server error
	}
	return c.JSON(http.StatusOK, leads.PopulateEmails(companies)) // return company views with the best email per company
}

// GetCompany handles GET /v1/companies/:id?include_loc_data= and returns a
// single company; with include_loc_data=true the maps enrichment row is
// joined in (loc_data stays null when the worker found no maps listing).
func (h *APIHandler) GetCompany(c echo.Context) error { // begin GetCompany handler
	userID, err := getUserID(c) // extract the user ID from context
	if err != nil {             // invalid user means unauthorized
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"}) // respond unauthorized
	}
	id, err := pathID(c, "id") // parse the company ID from the URL
	if err != nil {            // validate that the ID is numeric
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"}) // invalid ID error response
	}
	ctx := c.Request().Context()
	// Ownership is transitive: company -> query -> user.
	if err := h.Guard.Company(ctx, id, userID); err != nil {
		return notFoundOrDB(c, err, "company")
	}
	company, err := h.Companies.GetByID(ctx, id) // fetch the company row
	if err != nil {                              // the guard passed, so this is a true failure
		return notFoundOrDB(c, err, "company")
	}

	includeLoc, _ := strconv.ParseBool(c.QueryParam("include_loc_data")) // malformed flag values read as false
	if !includeLoc {                                                     // plain company response without the maps join
		return c.JSON(http.StatusOK, company)
	}

	locData, err := h.Companies.MapsData(ctx, id) // nil when no maps listing exists; that is not an error
	if err != nil {                               // handle repository errors
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"}) // respond with internal server error
	}
	return c.JSON(http.StatusOK, struct { // embed the company and attach loc_data alongside
		model.Company
		LocData *model.CompanyMapsData `json:"loc_data"`
	}{Company: *company, LocData: locData})
}
