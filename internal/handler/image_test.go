package handler_test

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leadforge/b2b-api/internal/handler"
)

func generateRequest(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/images/generate_single_image", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", testUser)
	return c, rec
}

var templateCols = []string{
	"image_template_id", "top", "left", "font_weight", "font_style",
	"font_size", "font_family", "font_underline", "font_color", "rotation",
	"box_width", "box_height", "content", "base_image", "base_image_format",
	"user_id", "created_at", "updated_at",
}

func templateRow() *sqlmock.Rows {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	return sqlmock.NewRows(templateCols).
		AddRow(4, 10, 20, 400, "normal", 16, "Arial", false, "#000000", 0,
			200, 50, "Hello {FNAME}", []byte{0x89, 0x50}, "png",
			testUser, now, now)
}

func TestGenerateSingleImagePublishes(t *testing.T) {
	h, mock, broker := newTestAPI(t)
	mock.ExpectQuery("FROM image_templates").
		WithArgs(uint64(4), testUser).
		WillReturnRows(templateRow())

	c, rec := generateRequest(t, `{"image_template_id":4,"fname":"Jane","company":"Acme"}`)
	require.NoError(t, h.GenerateSingleImage(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), handler.SuccessMessage)

	require.Len(t, broker.images, 1)
	event := broker.images[0]
	require.NotNil(t, event.Parameters)
	assert.Equal(t, "Jane", event.Parameters.Fname)
	assert.Equal(t, "Acme", event.Parameters.Company)
	assert.Equal(t, uint64(4), event.Template.ID)
	assert.Equal(t, "Hello {FNAME}", event.Template.Content)
	assert.NotEmpty(t, event.Template.BaseImage) // base image travels base64-encoded
}

func TestGenerateSingleImageParameterTooLong(t *testing.T) {
	h, _, broker := newTestAPI(t)
	long := strings.Repeat("x", 51)
	c, rec := generateRequest(t, `{"image_template_id":4,"fname":"`+long+`"}`)

	require.NoError(t, h.GenerateSingleImage(c))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Empty(t, broker.images)
}

func TestGenerateSingleImageTemplateNotFound(t *testing.T) {
	h, mock, broker := newTestAPI(t)
	mock.ExpectQuery("FROM image_templates").
		WithArgs(uint64(4), testUser).
		WillReturnError(sql.ErrNoRows)

	c, rec := generateRequest(t, `{"image_template_id":4}`)
	require.NoError(t, h.GenerateSingleImage(c))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, broker.images)
}

func TestGenerateSingleImageRequiresTemplateID(t *testing.T) {
	h, _, broker := newTestAPI(t)
	c, rec := generateRequest(t, `{"fname":"Jane"}`)

	require.NoError(t, h.GenerateSingleImage(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, broker.images)
}
