package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing
	"github.com/redis/go-redis/v9"

	"github.com/leadforge/b2b-api/internal/config"     // cache and rate-limit configuration loaders
	"github.com/leadforge/b2b-api/internal/handler"    // import the handlers that implement business logic
	"github.com/leadforge/b2b-api/internal/middleware" // import middleware for JWT authentication and role enforcement
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Map the GET request at path "/healthz" to the Health handler.  This
	// endpoint can be used by load balancers or monitoring systems to verify
	// that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication‑related routes and applies the
// necessary middleware.  Unauthenticated operations live under /v1/auth,
// while protected endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	// Create a route group under the /v1/auth prefix for operations that do
	// not require an existing session (register, login, refresh).  Each of
	// these handlers is responsible for generating or exchanging tokens.
	g := e.Group("/v1/auth")
	// Register a POST endpoint to handle user registration at /v1/auth/register.
	g.POST("/register", a.Register)
	// Register a POST endpoint to handle user login at /v1/auth/login.
	g.POST("/login", a.Login)
	// Register a POST endpoint to refresh access tokens at /v1/auth/refresh. This rotates the refresh token.
	g.POST("/refresh", a.Refresh)
	// Register a POST endpoint to issue a new access token without rotating the refresh token.
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout does not require JWT authentication: the handler accepts either
	// a refresh_token body (revokes that session) or a bearer token (revokes
	// every session of the user).
	g.POST("/logout", a.Logout)

	// Create another group for routes that require a valid access token.  All
	// handlers registered on this group will execute the JWTAuth middleware
	// before being invoked.
	auth := e.Group("/v1")
	// Apply the JWTAuth middleware to the protected group using the provided secret.
	auth.Use(middleware.JWTAuth(jwtSecret))
	// Register a GET endpoint at /v1/me that returns the authenticated user's information.
	auth.GET("/me", a.Me)

	// Additionally map POST /v1/logout to the same handler, outside of the
	// protected group, so clients can terminate a session with only a
	// refresh token in the body.
	e.POST("/v1/logout", a.Logout)
}

// RegisterAPI registers every resource endpoint under /v1.  All routes
// require a valid JWT with a known role.  The Redis client powers the
// token-bucket rate limiter across the group and a short-lived response
// cache on the stats endpoints; both degrade to no-ops when rdb is nil.
func RegisterAPI(e *echo.Echo, h *handler.APIHandler, jwtSecret string, rdb *redis.Client) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("USER", "ADMIN"),
		middleware.RequestLogger(),
		middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb),
	)

	// ---- Projects ----
	g.POST("/projects/new", h.CreateProject)
	g.GET("/projects", h.ListProjects)
	g.GET("/projects/:id", h.GetProject)
	g.DELETE("/projects/:id", h.DeleteProject)

	// ---- Queries ----
	// Launching publishes a job; the query row shows up in the listing once
	// the scraping worker has picked the message up.
	g.POST("/queries/new/location", h.LaunchLocationQuery)
	g.GET("/queries", h.ListQueries)
	g.GET("/queries/:id", h.GetQuery)
	g.DELETE("/queries/:id", h.DeleteQuery)

	// ---- Companies & employees (read-only, worker-written) ----
	g.GET("/companies/all/:query_id", h.ListCompaniesByQuery)
	g.GET("/companies/:id", h.GetCompany)
	g.GET("/employees/company/:company_id", h.ListEmployeesByCompany)
	g.GET("/employees/query/:query_id", h.ListEmployeesByQuery)
	g.GET("/employees/:id", h.GetEmployee)

	// ---- Stats ----
	// The aggregate queries are the most expensive reads in the API, so the
	// Redis response cache sits on these two routes only.  Keys include the
	// user ID; aggregates are always per-tenant.
	cache := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	g.GET("/stats/query", h.GetQueryStats, cache)
	g.GET("/stats/project", h.GetProjectStats, cache)

	// ---- Exports ----
	g.GET("/export/:query_id/csv", h.ExportCSV)
	g.GET("/export/:query_id/sheet", h.ExportSheet)

	// ---- Image templates ----
	g.POST("/image-templates/new", h.CreateTemplate)
	g.GET("/image-templates", h.ListTemplates)
	g.GET("/image-templates/:id", h.GetTemplate)
	g.DELETE("/image-templates/:id", h.DeleteTemplate)

	// ---- Images ----
	g.POST("/images/generate_single_image", h.GenerateSingleImage)
	g.GET("/images", h.ListImages)
	g.GET("/images/:id", h.GetImage)
}
