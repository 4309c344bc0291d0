package handler // handler package contains the stats endpoints

import (
	"net/http" // http provides status code constants
	"strconv"  // strconv parses the optional id query params

	"github.com/labstack/echo/v4" // echo is the web framework used for handlers

	"github.com/leadforge/b2b-api/internal/leads" // leads shapes the histogram and derived math
)

// queryStatsResp is the full stats payload for a single query: flat totals,
// run duration and the dense company-size histogram for charting.
type queryStatsResp struct {
	TotalCompanies        int      `json:"total_companies"`
	TotalEmployees        int      `json:"total_employees"`
	TotalEmails           int      `json:"total_emails"`
	MinutesTaken          int      `json:"minutes_taken"`
	CompaniesBySizeLabels []string `json:"companies_by_size_labels"`
	CompaniesBySizeData   []int    `json:"companies_by_size_data"`
	EmailsFoundBySizeData []int    `json:"emails_found_by_size_data"`
}

// projectStatsResp aggregates across the user's active queries.
type projectStatsResp struct {
	TotalCompanies    int `json:"total_companies"`
	TotalEmployees    int `json:"total_employees"`
	TotalEmails       int `json:"total_emails"`
	QueriesInProgress int `json:"queries_in_progress"`
}

// GetQueryStats handles GET /v1/stats/query?query_id=.  A query that does
// not exist, is soft-deleted or belongs to someone else yields an all-zero
// payload with 200, matching the project stats behaviour, so dashboards can
// always render.
func (h *APIHandler) GetQueryStats(c echo.Context) error { // begin GetQueryStats handler
	userID, err := getUserID(c) // extract the user ID from context
	if err != nil {             // invalid user means unauthorized
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"}) // respond unauthorized
	}
	queryID, err := strconv.ParseUint(c.QueryParam("query_id"), 10, 64) // parse the query id from the query string
	if err != nil {                                                     // validate that the id is numeric
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid query_id"}) // invalid id error response
	}

	zero := queryStatsResp{ // the zeroed fallback payload; slices are empty, not null
		CompaniesBySizeLabels: []string{},
		CompaniesBySizeData:   []int{},
		EmailsFoundBySizeData: []int{},
	}

	ctx := c.Request().Context()
	query, err := h.Queries.GetByIDAndUser(ctx, queryID, userID) // the run timestamps are needed for minutes_taken
	if err != nil {                                              // unowned or missing query falls back to zeroes
		return c.JSON(http.StatusOK, zero)
	}

	totals, err := h.Stats.QueryTotals(ctx, queryID) // flat SQL counts
	if err != nil {                                  // handle repository errors
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"}) // respond with internal server error
	}
	sizes, err := h.Stats.CompanySizes(ctx, queryID) // one row per company with >=1 employee
	if err != nil {                                  // handle repository errors
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"}) // respond with internal server error
	}
	samples := make([]leads.SizeSample, 0, len(sizes)) // convert rows into histogram samples
	for _, s := range sizes {
		samples = append(samples, leads.SizeSample{Employees: s.Employees, HasEmail: s.HasEmail})
	}
	hist := leads.SizeHistogram(samples) // dense 1..max buckets

	minutes := leads.RunMinutes(query.StartedAt, query.FinishedAt) // 0 while the query is still running
	if totals.Companies == 0 {                                     // a run with no results reports no duration
		minutes = 0
	}

	return c.JSON(http.StatusOK, queryStatsResp{
		TotalCompanies:        totals.Companies,
		TotalEmployees:        totals.Employees,
		TotalEmails:           totals.Emails,
		MinutesTaken:          minutes,
		CompaniesBySizeLabels: hist.Labels,
		CompaniesBySizeData:   hist.Companies,
		EmailsFoundBySizeData: hist.Emails,
	})
}

// GetProjectStats handles GET /v1/stats/project?project_id=.  Without a
// project_id the totals span every active query the user owns.
func (h *APIHandler) GetProjectStats(c echo.Context) error { // begin GetProjectStats handler
	userID, err := getUserID(c) // extract the user ID from context
	if err != nil {             // invalid user means unauthorized
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"}) // respond unauthorized
	}
	var projectID uint64                          // zero means all projects
	if v := c.QueryParam("project_id"); v != "" { // optional project filter
		projectID, err = strconv.ParseUint(v, 10, 64) // parse the filter value
		if err != nil {                               // validate that the filter is numeric
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid project_id"}) // invalid filter error response
		}
	}
	totals, err := h.Stats.ProjectTotals(c.Request().Context(), userID, projectID) // aggregate over active queries only
	if err != nil {                                                                // handle repository errors
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"}) // respond with internal server error
	}
	return c.JSON(http.StatusOK, projectStatsResp{
		TotalCompanies:    totals.Companies,
		TotalEmployees:    totals.Employees,
		TotalEmails:       totals.Emails,
		QueriesInProgress: totals.QueriesInProgress,
	})
}
