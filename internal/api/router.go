package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taskdesk/taskdesk/internal/api/handler"
	"github.com/taskdesk/taskdesk/internal/api/middleware"
	"github.com/taskdesk/taskdesk/internal/core/ports"
	"github.com/taskdesk/taskdesk/internal/core/service"
	"github.com/taskdesk/taskdesk/internal/infrastructure/config"
	"github.com/taskdesk/taskdesk/internal/infrastructure/db/kvrepo"
)

// Deps carries the infrastructure the router wires into services. Mongo and
// Redis are nil unless the corresponding backend is configured; Denylist and
// Activity may be nil to disable token revocation and the feed.
type Deps struct {
	Store        ports.KVStore
	ActivityRepo ports.ActivityRepository
	Denylist     ports.TokenDenylist
	Activity     service.ActivitySink
	Mongo        *mongo.Database
	Redis        *redis.Client
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, deps Deps, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("taskdesk"))

	// --- Dependencies ---
	userRepo := kvrepo.NewUserRepository(deps.Store)
	sessionRepo := kvrepo.NewSessionRepository(deps.Store)
	taskRepo := kvrepo.NewTaskRepository(deps.Store)

	authService := service.NewAuthService(userRepo, sessionRepo, deps.Denylist, cfg.JWTSecret, cfg.TokenTTL, log)
	taskService := service.NewTaskService(taskRepo, deps.Activity, log)

	authHandler := handler.NewAuthHandler(authService)
	taskHandler := handler.NewTaskHandler(taskService)
	authMiddleware := middleware.Auth(cfg.JWTSecret, deps.Denylist)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/auth/session", authHandler.Session)
	e.POST("/auth/logout", authHandler.Logout, authMiddleware)

	// --- Task routes ---
	v1 := e.Group("/v1", authMiddleware)
	v1.GET("/tasks", taskHandler.List)
	v1.POST("/tasks", taskHandler.Create)
	v1.GET("/tasks/:id", taskHandler.Get)
	v1.PATCH("/tasks/:id", taskHandler.Update)
	v1.DELETE("/tasks/:id", taskHandler.Delete)
	v1.POST("/tasks/:id/toggle", taskHandler.Toggle)
	v1.GET("/stats", taskHandler.Stats)

	// --- Activity feed ---
	if deps.ActivityRepo != nil {
		activityHandler := handler.NewActivityHandler(service.NewActivityService(deps.ActivityRepo, log))
		v1.GET("/activity", activityHandler.Recent)
	}

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)          // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
