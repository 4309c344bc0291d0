package handler // handler defines http handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"unicode"

	"github.com/labstack/echo/v4"

	"github.com/leadforge/b2b-api/internal/export"
	"github.com/leadforge/b2b-api/internal/queue"
	"github.com/leadforge/b2b-api/internal/repository"
)

// SuccessMessage acknowledges an accepted image-generation job.  The image
// appears in the user's list once the worker has processed the message.
const SuccessMessage = "Image has been submitted for generation. " +
	"Please allow up to a minute for it to be processed. " +
	"It will appear in your image list when done."

// Publisher is the broker surface handlers depend on; the real
// implementation lives in internal/service and tests substitute a fake.
type Publisher interface {
	PublishNewQuery(ctx context.Context, event queue.NewQueryEvent) error
	PublishImageGeneration(ctx context.Context, event queue.ImageGenerationEvent) error
}

// APIHandler bundles every dependency the resource handlers need.  Sheets
// may be nil when the spreadsheet integration is not configured; the
// export endpoint then reports the dependency as unavailable.
type APIHandler struct {
	Guard     *repository.Guard
	Projects  *repository.ProjectRepo
	Queries   *repository.QueryRepo
	Companies *repository.CompanyRepo
	Employees *repository.EmployeeRepo
	Templates *repository.TemplateRepo
	Images    *repository.ImageRepo
	Stats     *repository.StatsRepo
	Broker    Publisher
	Sheets    export.SheetService
}

// NewAPIHandler constructs an APIHandler and panics when a required
// dependency is missing.  Sheets is optional.
func NewAPIHandler(guard *repository.Guard, projects *repository.ProjectRepo,
	queries *repository.QueryRepo, companies *repository.CompanyRepo,
	employees *repository.EmployeeRepo, templates *repository.TemplateRepo,
	images *repository.ImageRepo, stats *repository.StatsRepo,
	broker Publisher, sheets export.SheetService) *APIHandler {
	if guard == nil || projects == nil || queries == nil || companies == nil ||
		employees == nil || templates == nil || images == nil || stats == nil ||
		broker == nil {
		panic("nil dependency passed to NewAPIHandler")
	}
	return &APIHandler{
		Guard:     guard,
		Projects:  projects,
		Queries:   queries,
		Companies: companies,
		Employees: employees,
		Templates: templates,
		Images:    images,
		Stats:     stats,
		Broker:    broker,
		Sheets:    sheets,
	}
}

// getUserID extracts the authenticated user's UUID from the echo context.
func getUserID(c echo.Context) (string, error) {
	if s, ok := c.Get("user_id").(string); ok && s != "" {
		return s, nil
	}
	return "", errors.New("invalid user_id in context")
}

// pathID parses a numeric path parameter.
func pathID(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}

// pagination reads offset/limit query parameters.  Limit defaults to 100
// and is capped at 100.
func pagination(c echo.Context) (offset, limit int) {
	offset, _ = strconv.Atoi(c.QueryParam("offset"))
	if offset < 0 {
		offset = 0
	}
	limit = 100
	if v := c.QueryParam("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	return offset, limit
}

// isAlnum reports whether s is non-empty and contains only letters and
// digits.  This is the deliberately strict query-term validator: it
// rejects spaces and punctuation, so multi-word terms like "New York" are
// refused.  Relaxing it requires coordinating with the scraping worker.
func isAlnum(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// notFoundOrDB maps repository errors to the uniform 404 or a generic 500.
func notFoundOrDB(c echo.Context, err error, what string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": what + " not found"})
	}
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "db error"})
}
