// Package main is the entrypoint for the transfer-pricing documentation
// API server.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/tpdocs/tpdocs/internal/auth"
	"github.com/tpdocs/tpdocs/internal/cache"
	"github.com/tpdocs/tpdocs/internal/config"
	"github.com/tpdocs/tpdocs/internal/handler"
	"github.com/tpdocs/tpdocs/internal/middleware"
	"github.com/tpdocs/tpdocs/internal/repository"
	"github.com/tpdocs/tpdocs/internal/server"
	"github.com/tpdocs/tpdocs/internal/service"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)

	repo, err := repository.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to connect to database",
			slog.Any("error", err),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		os.Exit(1)
	}
	defer repo.Close()
	logger.Info("connected to database")

	cacheClient, err := cache.New(ctx, cfg.RedisURL)
	if err != nil {
		logger.Error("failed to connect to Redis",
			slog.Any("error", err),
			slog.String("redis_url", redactURL(cfg.RedisURL)),
		)
		os.Exit(1)
	}
	defer cacheClient.Close()
	logger.Info("connected to Redis")

	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTExpiresIn)

	userService := service.NewUserService(repo)
	authService := service.NewAuthService(repo, tokens)
	entityService := service.NewEntityService(repo)
	transactionService := service.NewTransactionService(repo)
	templateService := service.NewTemplateService(repo)
	uploadService := service.NewUploadService(repo)

	healthHandler := handler.NewHealthHandler(repo, cacheClient)
	userHandler := handler.NewUserHandler(userService, logger)
	authHandler := handler.NewAuthHandler(authService, logger)
	entityHandler := handler.NewEntityHandler(entityService, uploadService, logger)
	transactionHandler := handler.NewTransactionHandler(transactionService, logger)
	templateHandler := handler.NewTemplateHandler(templateService, logger)
	uploadHandler := handler.NewUploadHandler(uploadService, logger, cfg.MaxUploadSize)

	r := setupRouter(routerDeps{
		cfg:          cfg,
		logger:       logger,
		tokens:       tokens,
		cache:        cacheClient,
		health:       healthHandler,
		users:        userHandler,
		auth:         authHandler,
		entities:     entityHandler,
		transactions: transactionHandler,
		templates:    templateHandler,
		uploads:      uploadHandler,
	})

	srv := server.New(
		r,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}

	var h slog.Handler
	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts a string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// routerDeps bundles everything the router needs.
type routerDeps struct {
	cfg          *config.Config
	logger       *slog.Logger
	tokens       *auth.TokenIssuer
	cache        *cache.Cache
	health       *handler.HealthHandler
	users        *handler.UserHandler
	auth         *handler.AuthHandler
	entities     *handler.EntityHandler
	transactions *handler.TransactionHandler
	templates    *handler.TemplateHandler
	uploads      *handler.UploadHandler
}

// setupRouter configures the chi router with all routes and middleware.
// Signup, login and the health check are open; every other route sits
// behind bearer-token authentication.
func setupRouter(d routerDeps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(d.logger))
	r.Use(middleware.Recoverer(d.logger))
	if origins := d.cfg.GetCORSAllowedOrigins(); len(origins) > 0 {
		corsCfg := middleware.DefaultCORSConfig()
		corsCfg.AllowedOrigins = origins
		r.Use(middleware.CORS(corsCfg))
	}

	authCfg := middleware.AuthConfig{
		Logger:   d.logger,
		Verifier: d.tokens,
	}
	rateLimitCfg := middleware.RateLimitConfig{
		Logger:  d.logger,
		Cache:   d.cache,
		Enabled: d.cfg.RateLimitLoginEnabled,
		RPS:     d.cfg.RateLimitLoginRPS,
		Burst:   d.cfg.RateLimitLoginBurst,
	}
	bodyLimit := middleware.BodyLimit(d.cfg.MaxRequestBodySize)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health-check", d.health.HealthCheck)

		// Open routes: signup and login.
		r.With(bodyLimit).Post("/users", d.users.Create)
		r.With(bodyLimit, middleware.RateLimitLogin(rateLimitCfg)).Post("/auth/login", d.auth.Login)

		// Everything below requires a valid token. Role gating happens
		// in the service layer.
		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(authCfg))

			r.Route("/users", func(r chi.Router) {
				r.Get("/", d.users.List)
				r.Get("/{userId}", d.users.Get)
				r.With(bodyLimit).Put("/{userId}", d.users.Update)
				r.Delete("/{userId}", d.users.Delete)
			})

			r.Route("/entities", func(r chi.Router) {
				r.Get("/", d.entities.List)
				r.With(bodyLimit).Post("/", d.entities.Create)
				r.Get("/{entityId}", d.entities.Get)
				r.With(bodyLimit).Put("/{entityId}", d.entities.Update)
				r.Delete("/{entityId}", d.entities.Delete)
				r.Get("/{entityId}/attachments", d.entities.Attachments)
			})

			r.Route("/transactions", func(r chi.Router) {
				r.Get("/", d.transactions.List)
				r.With(bodyLimit).Post("/", d.transactions.Create)
				r.Get("/{transactionId}", d.transactions.Get)
				r.With(bodyLimit).Put("/{transactionId}", d.transactions.Update)
				r.Delete("/{transactionId}", d.transactions.Delete)
			})

			r.Route("/templates", func(r chi.Router) {
				r.Get("/", d.templates.List)
				r.With(bodyLimit).Post("/", d.templates.Create)
				r.Get("/{templateId}", d.templates.Get)
				r.With(bodyLimit).Put("/{templateId}", d.templates.Update)
				r.Delete("/{templateId}", d.templates.Delete)
			})

			r.Route("/uploads", func(r chi.Router) {
				r.Get("/", d.uploads.List)
				r.Post("/", d.uploads.Create)
				r.Get("/{uploadId}", d.uploads.Get)
				r.Delete("/{uploadId}", d.uploads.Delete)
			})
		})
	})

	r.NotFound(handler.NotFound)
	r.MethodNotAllowed(handler.MethodNotAllowed)

	return r
}

// redactURL strips credentials from a connection URL before logging.
func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		if username := parsed.User.Username(); username != "" {
			parsed.User = url.User(username)
		} else {
			parsed.User = url.User("redacted")
		}
	}

	return parsed.String()
}
