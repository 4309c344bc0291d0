package handler_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func templateUpload(t *testing.T, templateJSON, filename string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if templateJSON != "" {
		require.NoError(t, w.WriteField("image_template", templateJSON))
	}
	if filename != "" {
		part, err := w.CreateFormFile("base_image", filename)
		require.NoError(t, err)
		_, err = part.Write([]byte{0x89, 0x50, 0x4e, 0x47})
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/image-templates/new", &body)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", testUser)
	return c, rec
}

const validTemplateJSON = `{"top":10,"left":20,"font_size":16,"font_family":"Arial",` +
	`"font_color":"#000000","box_width":200,"box_height":50,"content":"Hi {FNAME}"}`

func expectTemplateInsert(mock sqlmock.Sqlmock, id int64) {
	now := time.Now()
	mock.ExpectExec("INSERT INTO image_templates").
		WillReturnResult(sqlmock.NewResult(id, 1))
	mock.ExpectQuery("SELECT created_at, updated_at FROM image_templates").
		WithArgs(uint64(id)).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
}

func TestCreateTemplatePublishesPreviewJob(t *testing.T) {
	h, mock, broker := newTestAPI(t)
	expectTemplateInsert(mock, 4)

	c, rec := templateUpload(t, validTemplateJSON, "base.png")
	require.NoError(t, h.CreateTemplate(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	require.Len(t, broker.images, 1)
	assert.EqualValues(t, 4, broker.images[0].Template.ID)
	assert.Nil(t, broker.images[0].Parameters) // preview jobs render the template as-is
}

func TestCreateTemplatePublishFailureIs500(t *testing.T) {
	h, mock, broker := newTestAPI(t)
	broker.err = assert.AnError
	expectTemplateInsert(mock, 4)

	c, rec := templateUpload(t, validTemplateJSON, "base.png")
	require.NoError(t, h.CreateTemplate(c))

	// The row is committed but the render job never reached the broker;
	// without the job no preview will ever exist, so the caller must see
	// the failure and resubmit.
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Empty(t, broker.images)
}

func TestCreateTemplateRejectsUnsupportedFormat(t *testing.T) {
	h, _, broker := newTestAPI(t)
	c, rec := templateUpload(t, validTemplateJSON, "base.gif")

	require.NoError(t, h.CreateTemplate(c))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "gif")
	assert.Empty(t, broker.images) // no preview job for a rejected upload
}

func TestCreateTemplateRequiresTemplateField(t *testing.T) {
	h, _, _ := newTestAPI(t)
	c, rec := templateUpload(t, "", "base.png")

	require.NoError(t, h.CreateTemplate(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateTemplateRequiresBaseImage(t *testing.T) {
	h, _, _ := newTestAPI(t)
	c, rec := templateUpload(t, validTemplateJSON, "")

	require.NoError(t, h.CreateTemplate(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateTemplateRejectsMalformedJSON(t *testing.T) {
	h, _, _ := newTestAPI(t)
	c, rec := templateUpload(t, "{not json", "base.png")

	require.NoError(t, h.CreateTemplate(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
