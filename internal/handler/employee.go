package handler // handler package contains employee handlers

import (
	"net/http" // http provides status code constants

	"github.com/labstack/echo/v4" // echo is the web framework used for handlers
)

// GetEmployee handles GET /v1/employees/:id and returns one employee.  The
// ownership chain employee -> company -> query -> user is verified before
// the row is fetched.
func (h *APIHandler) GetEmployee(c echo.Context) error { // begin GetEmployee handler
	userID, err := getUserID(c) // extract the user ID from context
	if err != nil {             // invalid user means unauthorized
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"}) // respond unauthorized
	}
	id, err := pathID(c, "id") // parse the employee ID from the URL
	if err != nil {            // validate that the ID is numeric
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"}) // invalid ID error response
	}
	ctx := c.Request().Context()
	if err := h.Guard.Employee(ctx, id, userID); err != nil { // walk the full chain to the owning user
		return notFoundOrDB(c, err, "employee")
	}
	employee, err := h.Employees.GetByID(ctx, id) // fetch the employee row
	if err != nil {                               // the guard passed, so this is a true failure
		return notFoundOrDB(c, err, "employee")
	}
	return c.JSON(http.StatusOK, employee) // return the employee with OK status
}

// ListEmployeesByCompany handles GET /v1/employees/company/:company_id
func (h *APIHandler) ListEmployeesByCompany(c echo.Context) error { // begin ListEmployeesByCompany handler
	userID, err := getUserID(c) // extract the user ID from context
	if err != nil {             // invalid user means unauthorized
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"}) // respond unauthorized
	}
	companyID, err := pathID(c, "company_id") // parse the company ID from the URL
	if err != nil {                           // validate that the ID is numeric
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid company_id"}) // invalid ID error response
	}
	ctx := c.Request().Context()
	if err := h.Guard.Company(ctx, companyID, userID); err != nil { // resolve company -> query -> user
		return notFoundOrDB(c, err, "company")
	}
	offset, limit := pagination(c)                                              // read offset/limit query params
	items, err := h.Employees.ListByCompany(ctx, companyID, offset, limit) // fetch the company's employees
	if err != nil {                                                             // handle repository errors
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"}) // respond with internal server error
	}
	return c.JSON(http.StatusOK, items) // return the list (possibly empty) with OK status
}

// ListEmployeesByQuery handles GET /v1/employees/query/:query_id and flattens
// every employee of every company the query discovered.
func (h *APIHandler) ListEmployeesByQuery(c echo.Context) error { // begin ListEmployeesByQuery handler
	userID, err := getUserID(c) // extract the user ID from context
	if err != nil {             // invalid user means unauthorized
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"}) // respond unauthorized
	}
	queryID, err := pathID(c, "query_id") // parse the query ID from the URL
	if err != nil {                       // validate that the ID is numeric
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid query_id"}) // invalid ID error response
	}
	ctx := c.Request().Context()
	if err := h.Guard.Query(ctx, queryID, userID); err != nil { // the query must be active and owned
		return notFoundOrDB(c, err, "query")
	}
	offset, limit := pagination(c)                                          // read offset/limit query params
	items, err := h.Employees.ListByQuery(ctx, queryID, offset, limit) // fetch across all the query's companies
	if err != nil {                                                         // handle repository errors
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"}) // respond with internal server error
	}
	return c.JSON(http.StatusOK, items) // return the list (possibly empty) with OK status
}
