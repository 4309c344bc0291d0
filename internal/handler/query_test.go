package handler_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadforge/b2b-api/internal/queue"
)

func launchRequest(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/queries/new/location", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", testUser)
	return c, rec
}

func TestLaunchLocationQueryPublishes(t *testing.T) {
	h, _, broker := newTestAPI(t)
	c, rec := launchRequest(t, `{"sector":"plumbers","location":"leeds","project_id":2}`)

	require.NoError(t, h.LaunchLocationQuery(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())

	require.Len(t, broker.queries, 1)
	event := broker.queries[0]
	assert.Equal(t, "location", event.QueryType)
	assert.Equal(t, testUser, event.UserID)
	assert.Equal(t, uint64(2), event.ProjectID)
	assert.Equal(t, queue.QueryParams{Sector: "plumbers", Location: "leeds"}, event.Params)
}

func TestLaunchLocationQueryRejectsNonAlphanumeric(t *testing.T) {
	h, _, broker := newTestAPI(t)
	// Spaces are refused, so multi-word locations like "New York" do not
	// pass validation.
	c, rec := launchRequest(t, `{"sector":"plumbers","location":"New York","project_id":2}`)

	require.NoError(t, h.LaunchLocationQuery(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, broker.queries)
}

func TestLaunchLocationQueryRejectsEmptyTerms(t *testing.T) {
	h, _, broker := newTestAPI(t)
	c, rec := launchRequest(t, `{"sector":"","location":"leeds","project_id":2}`)

	require.NoError(t, h.LaunchLocationQuery(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, broker.queries)
}

func TestLaunchLocationQueryRequiresProject(t *testing.T) {
	h, _, broker := newTestAPI(t)
	c, rec := launchRequest(t, `{"sector":"plumbers","location":"leeds"}`)

	require.NoError(t, h.LaunchLocationQuery(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, broker.queries)
}

func TestLaunchLocationQueryPublishFailure(t *testing.T) {
	h, _, broker := newTestAPI(t)
	broker.err = assert.AnError

	c, rec := launchRequest(t, `{"sector":"plumbers","location":"leeds","project_id":2}`)
	require.NoError(t, h.LaunchLocationQuery(c))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestLaunchLocationQueryUnauthorized(t *testing.T) {
	h, _, _ := newTestAPI(t)
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/queries/new/location", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec) // no user_id in context

	require.NoError(t, h.LaunchLocationQuery(c))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
