package handler // handler package contains the export endpoints

import (
	"bytes"    // bytes buffers the CSV before writing the response
	"context"  // context scopes the export queries to the request
	"fmt"      // fmt formats the attachment filename
	"net/http" // http provides status code constants

	"github.com/labstack/echo/v4" // echo is the web framework used for handlers

	"github.com/leadforge/b2b-api/internal/export" // export shapes the CSV and sheet data
	"github.com/leadforge/b2b-api/internal/leads"  // leads applies the email aggregation
	"github.com/leadforge/b2b-api/internal/logs"   // logs exposes the shared structured logger
	"github.com/leadforge/b2b-api/internal/model"  // model holds database entities
)

// exportCompanies loads the full company graph (employees attached) for an
// owned, active query.  Both export formats start from this.  Errors come
// back unmapped; the caller translates them to a response.
func (h *APIHandler) exportCompanies(ctx context.Context, queryID uint64, userID string) (*model.Query, []*model.Company, error) {
	query, err := h.Queries.GetByIDAndUser(ctx, queryID, userID) // the query itself carries the export title fields
	if err != nil {
		return nil, nil, err
	}
	// Exports are not paginated; the whole result set goes out.
	companies, err := h.Companies.ListByQuery(ctx, queryID, 0, 1<<30)
	if err != nil {
		return nil, nil, err
	}
	if err := h.Companies.LoadEmployees(ctx, companies); err != nil {
		return nil, nil, err
	}
	return query, companies, nil
}

// ExportCSV handles GET /v1/export/:query_id/csv and streams the company
// list as a CSV attachment named B2B_export_{id}.csv.
func (h *APIHandler) ExportCSV(c echo.Context) error { // begin ExportCSV handler
	userID, err := getUserID(c) // extract the user ID from context
	if err != nil {             // invalid user means unauthorized
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"}) // respond unauthorized
	}
	queryID, err := pathID(c, "query_id") // parse the query ID from the URL
	if err != nil {                       // validate that the ID is numeric
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid query_id"}) // invalid ID error response
	}
	query, companies, err := h.exportCompanies(c.Request().Context(), queryID, userID) // load the owned query and its companies
	if err != nil {                                                                   // absent, foreign and soft-deleted all collapse to 404
		return notFoundOrDB(c, err, "query")
	}

	var buf bytes.Buffer                                                 // render into memory so a late failure never truncates a download
	if err := export.WriteCSV(&buf, leads.PopulateEmails(companies)); err != nil { // one row per company with its best email
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "export failed"}) // respond with internal server error
	}

	filename := fmt.Sprintf("B2B_export_%d.csv", query.ID) // fixed attachment name pattern
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename=%q`, filename))
	return c.Blob(http.StatusOK, "text/csv", buf.Bytes()) // stream the rendered CSV
}

// ExportSheet handles GET /v1/export/:query_id/sheet?share_email= and
// creates a four-worksheet spreadsheet from the query's data.  When a
// share_email is given that address gets write access; otherwise the sheet
// is readable by anyone with the link.
func (h *APIHandler) ExportSheet(c echo.Context) error { // begin ExportSheet handler
	userID, err := getUserID(c) // extract the user ID from context
	if err != nil {             // invalid user means unauthorized
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"}) // respond unauthorized
	}
	if h.Sheets == nil { // the integration is optional; without credentials the endpoint is off
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "sheet export not configured"}) // respond with service unavailable
	}
	queryID, err := pathID(c, "query_id") // parse the query ID from the URL
	if err != nil {                       // validate that the ID is numeric
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid query_id"}) // invalid ID error response
	}
	ctx := c.Request().Context()
	query, companies, err := h.exportCompanies(ctx, queryID, userID) // load the owned query and its companies
	if err != nil {                                                  // absent, foreign and soft-deleted all collapse to 404
		return notFoundOrDB(c, err, "query")
	}

	maps := make(map[uint64]*model.CompanyMapsData, len(companies)) // per-company maps rows keyed by company id
	for _, company := range companies {
		m, err := h.Companies.MapsData(ctx, company.ID) // nil when no maps listing exists
		if err != nil {                                 // handle repository errors
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"}) // respond with internal server error
		}
		if m != nil {
			maps[company.ID] = m
		}
	}

	exp := export.BuildSheetExport(query, companies, maps)                   // shape the four worksheets
	result, err := h.Sheets.Export(ctx, exp, c.QueryParam("share_email")) // create and share the spreadsheet
	if err != nil {                                                          // the sheets API call failed
		logs.Logger.WithError(err).Error("sheet export failed")                           // log the failure with context
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "export failed"}) // respond with internal server error
	}
	return c.JSON(http.StatusOK, result) // {sheet_url, sheet_title}
}
