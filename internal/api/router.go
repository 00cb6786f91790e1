package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/workmania/timetrack/docs"
	"github.com/workmania/timetrack/internal/api/handler"
	"github.com/workmania/timetrack/internal/api/middleware"
	"github.com/workmania/timetrack/internal/core/service"
	"github.com/workmania/timetrack/internal/infrastructure/config"
	timetrackmongo "github.com/workmania/timetrack/internal/infrastructure/db/mongo"
	timetrackredis "github.com/workmania/timetrack/internal/infrastructure/db/redis"
	healthhandlers "github.com/workmania/timetrack/internal/infrastructure/http/handlers"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *redis.Client, loc *time.Location, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("timetrack"))

	// --- Dependencies ---
	entryRepo := timetrackmongo.NewEntryRepository(db)
	categoryRepo := timetrackmongo.NewCategoryRepository(db)
	userRepo := timetrackmongo.NewUserRepository(db)
	toggleGuard := timetrackredis.NewToggleGuard(rdb)

	timerService := service.NewTimerService(entryRepo, toggleGuard, log)
	reportService := service.NewReportService(entryRepo, categoryRepo, loc, log)
	categoryService := service.NewCategoryService(categoryRepo, entryRepo, log)
	authService := service.NewAuthService(userRepo, cfg.SessionSecret, 30*24*time.Hour)

	authHandler := handler.NewAuthHandler(authService, 30*24*time.Hour, cfg.IsProduction())
	timerHandler := handler.NewTimerHandler(timerService)
	entryHandler := handler.NewEntryHandler(reportService)
	reportHandler := handler.NewReportHandler(reportService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	session := middleware.Session(cfg.SessionSecret)

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout)
	e.POST("/auth/register", authHandler.Register)
	e.GET("/auth/me", authHandler.Me, session)

	// --- Timer & log routes ---
	v1 := e.Group("/v1", session)
	v1.GET("/time-entries/active", timerHandler.Active)
	v1.POST("/time-entries", timerHandler.Start)
	v1.POST("/time-entries/:id/stop", timerHandler.Stop)
	v1.POST("/timer/toggle", timerHandler.Toggle)
	v1.GET("/time-entries", entryHandler.List)
	v1.PATCH("/time-entries/:id", entryHandler.Update)
	v1.DELETE("/time-entries/:id", entryHandler.Delete)
	v1.GET("/report", reportHandler.Get)
	v1.GET("/categories", categoryHandler.List)
	v1.POST("/categories", categoryHandler.Create)
	v1.PATCH("/categories/:id", categoryHandler.Update)
	v1.DELETE("/categories/:id", categoryHandler.Delete)

	// --- Health probes (no auth required) ---
	healthHandler := healthhandlers.NewHealthHandler()
	healthDepsHandler := healthhandlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
