package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/trainmetrics/coaching-api/docs"
	"github.com/trainmetrics/coaching-api/internal/api/handler"
	"github.com/trainmetrics/coaching-api/internal/api/middleware"
	"github.com/trainmetrics/coaching-api/internal/core/domain"
	"github.com/trainmetrics/coaching-api/internal/core/ports"
	"github.com/trainmetrics/coaching-api/internal/core/service"
	"github.com/trainmetrics/coaching-api/internal/infrastructure/config"
	mongodb "github.com/trainmetrics/coaching-api/internal/infrastructure/db/mongo"
	redisdb "github.com/trainmetrics/coaching-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// usageRecorder is constructed (and started) by the caller so its worker
// lifecycle stays with the process, not the router.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger, usageRecorder ports.KeyUsageRecorder) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("coaching"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	apiKeyRepo := mongodb.NewAPIKeyRepository(db)
	clientRepo := mongodb.NewClientRepository(db)
	workoutRepo := mongodb.NewWorkoutRepository(db)
	templateRepo := mongodb.NewTemplateRepository(db)

	tokenService := service.NewTokenService(service.TokenServiceOptions{
		Algorithm:      cfg.Auth.JWTAlgorithm,
		Secret:         cfg.Auth.JWTSecret,
		ExternalSecret: cfg.Auth.ExternalJWTSecret,
		AccessTTL:      cfg.Auth.AccessTokenTTL(),
		Diagnostics:    !cfg.IsProduction(),
	}, log)
	apiKeyService := service.NewAPIKeyService(apiKeyRepo, usageRecorder, log)
	resolver := service.NewIdentityResolver(tokenService, apiKeyService, userRepo, cfg.Auth.DevAPIKey, log)
	authService := service.NewAuthService(userRepo, tokenService, redisdb.NewResetTokenGuard(rdb))
	clientService := service.NewClientService(clientRepo, log)
	workoutService := service.NewWorkoutService(workoutRepo, clientRepo, log)
	templateService := service.NewTemplateService(templateRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	apiKeyHandler := handler.NewAPIKeyHandler(apiKeyService)
	clientHandler := handler.NewClientHandler(clientService)
	workoutHandler := handler.NewWorkoutHandler(workoutService)
	templateHandler := handler.NewTemplateHandler(templateService)

	// --- Auth routes (public) ---
	e.POST("/v1/auth/register", authHandler.Register)
	e.POST("/v1/auth/login", authHandler.Login)
	e.POST("/v1/auth/refresh", authHandler.Refresh)
	e.POST("/v1/auth/password/forgot", authHandler.ForgotPassword)
	e.POST("/v1/auth/password/reset", authHandler.ResetPassword)

	// --- Protected routes ---
	authenticated := e.Group("/v1", middleware.Authenticate(resolver, log))

	readGuard := middleware.RequirePermission(domain.PermReadOwnData)

	authenticated.POST("/keys", apiKeyHandler.Create)
	authenticated.GET("/keys", apiKeyHandler.List)
	authenticated.DELETE("/keys/:id", apiKeyHandler.Revoke)

	authenticated.GET("/clients", clientHandler.List, readGuard)
	authenticated.GET("/clients/:id", clientHandler.Get, readGuard)
	authenticated.POST("/clients", clientHandler.Create, middleware.RequirePermission(domain.PermWriteClients))
	authenticated.PUT("/clients/:id", clientHandler.Update, middleware.RequirePermission(domain.PermWriteClients))
	authenticated.DELETE("/clients/:id", clientHandler.Delete, middleware.RequirePermission(domain.PermWriteClients))

	authenticated.GET("/clients/:clientID/workouts", workoutHandler.ListByClient, readGuard)
	authenticated.GET("/workouts/:id", workoutHandler.Get, readGuard)
	authenticated.POST("/workouts", workoutHandler.Create, middleware.RequirePermission(domain.PermWriteWorkouts))
	authenticated.PUT("/workouts/:id", workoutHandler.Update, middleware.RequirePermission(domain.PermWriteWorkouts))
	authenticated.DELETE("/workouts/:id", workoutHandler.Delete, middleware.RequirePermission(domain.PermWriteWorkouts))

	authenticated.GET("/templates", templateHandler.List, readGuard)
	authenticated.GET("/templates/:id", templateHandler.Get, readGuard)
	authenticated.POST("/templates", templateHandler.Create, middleware.RequirePermission(domain.PermWriteTemplates))
	authenticated.PUT("/templates/:id", templateHandler.Update, middleware.RequirePermission(domain.PermWriteTemplates))
	authenticated.DELETE("/templates/:id", templateHandler.Delete, middleware.RequirePermission(domain.PermWriteTemplates))

	// --- Health probes and operational endpoints (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
