package main // Entry point package

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"    // loads .env files into the environment in development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/leadforge/b2b-api/internal/config"   // Internal config loader
	"github.com/leadforge/b2b-api/internal/database" // DB connection and schema migration
	"github.com/leadforge/b2b-api/internal/export"   // spreadsheet export service
	"github.com/leadforge/b2b-api/internal/handler"  // HTTP handlers
	"github.com/leadforge/b2b-api/internal/logs"     // shared structured logger
	"github.com/leadforge/b2b-api/internal/repository"
	"github.com/leadforge/b2b-api/internal/router"                    // Internal router setup
	service "github.com/leadforge/b2b-api/internal/service"           // queue_publisher lives here
)

func main() {
	_ = godotenv.Load() // best effort; real deployments set env vars directly

	cfg := config.Load()                          // Load environment config
	logs.Init(cfg.Env, os.Getenv("LOG_LEVEL"))    // Configure the global logger

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName) // Open the MySQL pool
	if err != nil {
		logs.Logger.WithError(err).Fatal("database connection failed")
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second) // bound the startup migration
	defer cancel()
	if err := database.Migrate(ctx, db); err != nil { // Create missing tables
		logs.Logger.WithError(err).Fatal("schema migration failed")
	}

	// Redis is optional: without it the rate limiter and the stats response
	// cache silently become pass-throughs.
	rdb := config.NewRedisClient()

	// Repositories and the ownership guard share the one DB pool.
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	guard := repository.NewGuard(db)
	projects := repository.NewProjectRepo(db)
	queries := repository.NewQueryRepo(db)
	companies := repository.NewCompanyRepo(db)
	employees := repository.NewEmployeeRepo(db)
	templates := repository.NewTemplateRepo(db)
	images := repository.NewImageRepo(db)
	stats := repository.NewStatsRepo(db)

	broker := service.NewBroker(cfg.RabbitURL) // job publisher; dials per publish

	// The spreadsheet export only comes up when credentials are configured.
	var sheets export.SheetService
	if cfg.SheetsCredsFile != "" {
		gs, err := export.NewGoogleSheets(ctx, cfg.SheetsCredsFile)
		if err != nil {
			logs.Logger.WithError(err).Fatal("sheets service init failed")
		}
		sheets = gs
	} else {
		logs.Logger.Info("sheet export disabled: SHEETS_CREDENTIALS_FILE not set")
	}

	authHandler := handler.NewAuthHandler(cfg, users, tokens)
	apiHandler := handler.NewAPIHandler(guard, projects, queries, companies,
		employees, templates, images, stats, broker, sheets)

	e := echo.New()          // Create Echo instance
	e.HideBanner = true
	router.RegisterRoutes(e) // Health check
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterAPI(e, apiHandler, cfg.JWTSecret, rdb)

	addr := ":" + cfg.Port // Address string with port
	logs.Logger.WithField("addr", addr).WithField("env", cfg.Env).Info("listening")

	if err := e.Start(addr); err != nil { // Start HTTP server
		logs.Logger.WithError(err).Fatal("server stopped")
	}
}
