package handler_test

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadforge/b2b-api/internal/export"
)

// fakeSheets records export calls in place of the Google Sheets client.
type fakeSheets struct {
	exports []export.SheetExport
	result  export.SheetResult
	err     error
}

func (f *fakeSheets) Export(_ context.Context, exp export.SheetExport, _ string) (export.SheetResult, error) {
	if f.err != nil {
		return export.SheetResult{}, f.err
	}
	f.exports = append(f.exports, exp)
	return f.result, nil
}

func exportRequest(t *testing.T, target, queryID string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("query_id")
	c.SetParamValues(queryID)
	c.Set("user_id", testUser)
	return c, rec
}

func TestExportCSVAttachment(t *testing.T) {
	h, mock, _ := newTestAPI(t)
	started := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery("FROM queries").
		WithArgs(uint64(9), testUser).
		WillReturnRows(sqlmock.NewRows([]string{
			"query_id", "sector", "location", "type", "maps_results",
			"search_results", "user_id", "project_id", "is_active",
			"started_at", "finished_at",
		}).AddRow(9, "plumbers", "leeds", "standard", nil, nil,
			testUser, 2, true, started, nil))
	mock.ExpectQuery("FROM companies WHERE query_id").
		WillReturnRows(companyRow(5))
	mock.ExpectQuery("FROM employees").
		WithArgs(uint64(5)).
		WillReturnRows(sqlmock.NewRows([]string{
			"employee_id", "full_name", "first_name", "last_name", "position",
			"extracted_company", "email", "rank_score", "search_title",
			"pre_snippet", "linkedin_url", "company_id",
		}))

	c, rec := exportRequest(t, "/v1/export/9/csv", "9")
	require.NoError(t, h.ExportCSV(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), `B2B_export_9.csv`)
	assert.Contains(t, rec.Body.String(), "Company,Website,Employee name")
	assert.Contains(t, rec.Body.String(), "Acme")
}

func TestExportSheetNotConfigured(t *testing.T) {
	h, _, _ := newTestAPI(t) // sheet service is nil
	c, rec := exportRequest(t, "/v1/export/9/sheet", "9")

	require.NoError(t, h.ExportSheet(c))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestExportCSVForeignQueryIs404(t *testing.T) {
	h, mock, _ := newTestAPI(t)
	mock.ExpectQuery("FROM queries").
		WithArgs(uint64(9), testUser).
		WillReturnError(sql.ErrNoRows)

	c, rec := exportRequest(t, "/v1/export/9/csv", "9")
	require.NoError(t, h.ExportCSV(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "query not found")
	assert.Empty(t, rec.Header().Get(echo.HeaderContentDisposition)) // no attachment on a miss
}

func TestExportSheetForeignQueryIs404(t *testing.T) {
	h, mock, _ := newTestAPI(t)
	sheets := &fakeSheets{}
	h.Sheets = sheets
	mock.ExpectQuery("FROM queries").
		WithArgs(uint64(9), testUser).
		WillReturnError(sql.ErrNoRows)

	c, rec := exportRequest(t, "/v1/export/9/sheet", "9")
	require.NoError(t, h.ExportSheet(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, sheets.exports) // no spreadsheet for a query the user does not own
}
